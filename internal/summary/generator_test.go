package summary

import (
	"regexp"
	"strings"
	"testing"

	"github.com/gitgoal/gitgoal/internal/analysis"
	"github.com/gitgoal/gitgoal/internal/config"
	"github.com/gitgoal/gitgoal/internal/diff"
	"github.com/gitgoal/gitgoal/internal/model"
)

func TestTitleSubsystemRecognition(t *testing.T) {
	g := NewGenerator(config.Default())

	got := g.Title([]string{"goal/deep_analyzer.py", "goal/cli.py"}, nil)
	if got != "code analysis engine" {
		t.Errorf("Title = %q", got)
	}
}

func TestTitleCapabilityWithSupportingModules(t *testing.T) {
	g := NewGenerator(config.Default())

	caps := []model.Capability{
		{ID: "ast_analysis", Label: "deep code analysis engine", Priority: 10},
		{ID: "quality_metrics", Label: "code quality metrics", Priority: 8},
		{ID: "changelog", Label: "changelog generation", Priority: 2},
	}
	got := g.Title([]string{"x.py"}, caps)
	if got != "deep code analysis engine with 2 supporting modules" {
		t.Errorf("Title = %q", got)
	}

	// With fewer than 3 capabilities the label stands alone.
	if got := g.Title([]string{"x.py"}, caps[:1]); got != "deep code analysis engine" {
		t.Errorf("Title = %q", got)
	}
}

func TestTitleFallback(t *testing.T) {
	g := NewGenerator(config.Default())

	if got := g.Title([]string{"x.py"}, nil); got != fallbackTitle {
		t.Errorf("Title = %q", got)
	}
}

func TestMapRoles(t *testing.T) {
	g := NewGenerator(config.Default())

	entities := []model.Entity{
		{Name: "push", Kind: model.EntityFunction},
		{Name: "_private_helper", Kind: model.EntityFunction}, // noise
		{Name: "SummaryGenerator", Kind: model.EntityClass},
		{Name: "plainname", Kind: model.EntityFunction}, // no mapping
	}
	roles := g.MapRoles(entities)
	if len(roles) != 2 {
		t.Fatalf("roles = %v", roles)
	}
	if roles[0].Entity != "push" || roles[0].Role != "push workflow" {
		t.Errorf("roles[0] = %+v", roles[0])
	}
	if roles[1].Entity != "SummaryGenerator" || roles[1].Role != "generator" {
		t.Errorf("roles[1] = %+v", roles[1])
	}
}

func TestValueScoreBounds(t *testing.T) {
	g := NewGenerator(config.Default())

	empty := g.ValueScore(&analysis.Result{})
	if empty != 50 {
		t.Errorf("base score = %d, want 50", empty)
	}

	rich := &analysis.Result{
		Capabilities:  make([]model.Capability, 8),
		Relations:     make([]model.Relation, 6),
		OldComplexity: 40,
		NewComplexity: 10,
	}
	if got := g.ValueScore(rich); got != 100 {
		t.Errorf("capped score = %d, want 100", got)
	}
}

func TestBodyOmitsEmptySections(t *testing.T) {
	g := NewGenerator(config.Default())

	s := &model.Summary{
		Metrics: model.Metrics{OldComplexity: 1, NewComplexity: 1, ValueScore: 50},
	}
	body := g.Body(s)
	for _, header := range []string{"NEW CAPABILITIES:", "FUNCTIONAL COMPONENTS:", "DEPENDENCY FLOW:", "Files:"} {
		if strings.Contains(body, header) {
			t.Errorf("empty section %q rendered:\n%s", header, body)
		}
	}
	if !strings.Contains(body, "Value score: 50/100") {
		t.Errorf("impact section missing:\n%s", body)
	}
}

func TestBodySections(t *testing.T) {
	g := NewGenerator(config.Default())

	s := &model.Summary{
		Capabilities: []model.Capability{{ID: "ast_analysis", Label: "deep code analysis engine", Impact: "intelligent change detection", Priority: 10}},
		Roles:        []model.Role{{Entity: "push", Role: "push workflow"}},
		Relations:    []model.Relation{{From: "cli", To: "analyzer", Type: "imports"}},
		Chain:        "cli->analyzer",
		Files:        []string{"goal/cli.py", "README.md"},
		Metrics:      model.Metrics{OldComplexity: 10, NewComplexity: 12, ValueScore: 75},
	}
	body := g.Body(s)

	for _, want := range []string{
		"NEW CAPABILITIES:",
		"└── deep code analysis engine: intelligent change detection",
		"FUNCTIONAL COMPONENTS:",
		"✅ push workflow (push)",
		"🔗 Relations: 1 dependencies detected",
		"⭐ Value score: 75/100",
		"DEPENDENCY FLOW:\n  cli->analyzer",
		"Files: 1 core; 1 docs",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q:\n%s", want, body)
		}
	}
}

func TestFormatComplexityDelta(t *testing.T) {
	tests := []struct {
		oldC, newC int
		wantDesc   string
	}{
		{0, 5, "New module (baseline established)"},
		{10, 50, "Large structural change (normalized)"},
		{100, 60, "-40% complexity (refactor win)"},
		{100, 180, "+80% complexity (monitor)"},
		{100, 120, "+20% complexity (new features)"},
		{100, 102, "Stable complexity"},
	}
	for _, tt := range tests {
		_, desc := FormatComplexityDelta(tt.oldC, tt.newC, 200)
		if desc != tt.wantDesc {
			t.Errorf("FormatComplexityDelta(%d, %d) = %q, want %q", tt.oldC, tt.newC, desc, tt.wantDesc)
		}
	}
}

func TestNetDescriptor(t *testing.T) {
	if got := NetDescriptor(model.Metrics{LinesAdded: 50, LinesDeleted: 900}); got != "📉 NET -850 lines (94% deletion churn)" {
		t.Errorf("NetDescriptor = %q", got)
	}
	if got := NetDescriptor(model.Metrics{LinesAdded: 120, LinesDeleted: 20}); got != "📈 NET +100 lines (feature growth)" {
		t.Errorf("NetDescriptor = %q", got)
	}
	if got := NetDescriptor(model.Metrics{LinesAdded: 5, LinesDeleted: 5}); got != "➡️ NET 0 lines (neutral churn)" {
		t.Errorf("NetDescriptor = %q", got)
	}
}

// End-to-end: a pure docs change yields a docs-typed conventional title.
func TestGenerateDocsChange(t *testing.T) {
	cfg := config.Default()
	a := analysis.New(cfg)
	g := NewGenerator(cfg)

	raw := "diff --git a/README.md b/README.md\n" +
		"--- a/README.md\n+++ b/README.md\n@@ -1,2 +1,40 @@\n" +
		"+## Usage Walkthrough\n"
	cs := &diff.ChangeSet{Files: []string{"README.md"}, Added: 40, Deleted: 2, Raw: raw}

	s := g.Generate(a.Run(cs, ""), cs)
	if s.Intent != model.IntentDocs || s.Scope != model.DomainDocs {
		t.Errorf("intent=%v scope=%v", s.Intent, s.Scope)
	}
	if ok, _ := regexp.MatchString(`^docs\(.*\): .+`, s.Header()); !ok {
		t.Errorf("Header = %q", s.Header())
	}
}

// End-to-end: a new top-level function with low deletion ratio is a feat.
func TestGenerateNewFunctionFeat(t *testing.T) {
	cfg := config.Default()
	a := analysis.New(cfg)
	g := NewGenerator(cfg)

	raw := "diff --git a/goal/cli.py b/goal/cli.py\n" +
		"--- a/goal/cli.py\n+++ b/goal/cli.py\n@@ -1,3 +1,120 @@\n" +
		"+def push(remote):\n+    return remote\n"
	cs := &diff.ChangeSet{Files: []string{"goal/cli.py"}, Added: 120, Deleted: 3, Raw: raw}

	s := g.Generate(a.Run(cs, ""), cs)
	if s.Intent != model.IntentFeat {
		t.Errorf("intent = %v, want feat", s.Intent)
	}
	if !strings.HasPrefix(s.Header(), "feat(") {
		t.Errorf("Header = %q", s.Header())
	}
}
