// Package summary turns analysis results into a conventional-commit title
// and body, validates them against quality gates, and auto-fixes what it can.
package summary

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gitgoal/gitgoal/internal/analysis"
	"github.com/gitgoal/gitgoal/internal/config"
	"github.com/gitgoal/gitgoal/internal/diff"
	"github.com/gitgoal/gitgoal/internal/model"
)

// MaxRoles caps the role-mapped entities shown in the body.
const MaxRoles = 5

// fallbackTitle is used when nothing more specific can be named.
const fallbackTitle = "code improvements"

type compiledRole struct {
	re   *regexp.Regexp
	role string
}

// Generator assembles a Summary from an analysis Result. All naming tables
// come from the injected config; rule order is precedence.
type Generator struct {
	cfg        *config.Config
	roles      []compiledRole
	noise      []*regexp.Regexp
	subsystems []config.SubsystemRule
	domains    *analysis.DomainClassifier
}

func NewGenerator(cfg *config.Config) *Generator {
	g := &Generator{
		cfg:        cfg,
		subsystems: cfg.Subsystems,
		domains:    analysis.NewDomainClassifier(cfg.DomainMapping),
	}
	for _, rp := range cfg.Roles {
		if re, err := regexp.Compile(rp.Pattern); err == nil {
			g.roles = append(g.roles, compiledRole{re: re, role: rp.Role})
		}
	}
	for _, p := range cfg.NoisePatterns {
		if re, err := regexp.Compile(p); err == nil {
			g.noise = append(g.noise, re)
		}
	}
	return g
}

// Generate builds the full Summary for one change.
func (g *Generator) Generate(res *analysis.Result, cs *diff.ChangeSet) *model.Summary {
	files := diff.DedupeFiles(cs.Files)

	s := &model.Summary{
		Intent:       res.Intent,
		Scope:        res.PrimaryDomain,
		Capabilities: res.Capabilities,
		Roles:        g.MapRoles(res.Entities),
		Relations:    res.Relations,
		Chain:        res.Chain,
		Files:        files,
		Metrics: model.Metrics{
			OldComplexity: res.OldComplexity,
			NewComplexity: res.NewComplexity,
			LinesAdded:    cs.Added,
			LinesDeleted:  cs.Deleted,
		},
	}
	s.Metrics.ValueScore = g.ValueScore(res)
	s.Title = g.Title(files, res.Capabilities)
	s.Body = g.Body(s)
	return s
}

// Title picks the most specific name available: a recognized subsystem from
// the file stems, then the top capability, then a generic fallback.
func (g *Generator) Title(files []string, caps []model.Capability) string {
	stems := make([]string, 0, len(files))
	for _, f := range files {
		stems = append(stems, strings.ToLower(stemOf(f)))
	}

	for _, rule := range g.subsystems {
		for _, want := range rule.Stems {
			for _, s := range stems {
				if strings.Contains(s, want) {
					return rule.Title
				}
			}
		}
	}

	if len(caps) > 0 {
		if len(caps) >= 3 {
			return fmt.Sprintf("%s with %d supporting modules", caps[0].Label, len(caps)-1)
		}
		return caps[0].Label
	}

	return fallbackTitle
}

// MapRoles translates raw entity names to functional roles through the
// pattern table, dropping noise entities and anything without a mapping.
func (g *Generator) MapRoles(entities []model.Entity) []model.Role {
	var roles []model.Role
	for _, e := range entities {
		if g.isNoise(e.Name) {
			continue
		}
		role, ok := g.mapRole(e.Name)
		if !ok {
			continue
		}
		roles = append(roles, model.Role{Entity: e.Name, Role: role, Kind: e.Kind})
		if len(roles) >= MaxRoles {
			break
		}
	}
	return roles
}

func (g *Generator) mapRole(name string) (string, bool) {
	for _, cr := range g.roles {
		if cr.re.MatchString(name) {
			return cr.role, true
		}
	}
	return "", false
}

func (g *Generator) isNoise(name string) bool {
	for _, re := range g.noise {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}

// ValueScore derives the 0-100 composite score: a 50-point base plus capped
// bonuses for functional areas, relations, test entities, and simplification.
func (g *Generator) ValueScore(res *analysis.Result) int {
	score := 50
	score += min(30, len(res.Capabilities)*10)
	score += min(10, len(res.Relations)*5)

	testImpact := 0
	for _, e := range res.Entities {
		if strings.HasPrefix(e.Name, "test_") || strings.HasPrefix(e.Name, "Test") {
			testImpact += 5
		}
	}
	score += min(10, testImpact)

	if res.NewComplexity < res.OldComplexity {
		score += min(10, res.OldComplexity-res.NewComplexity)
	}
	return min(100, score)
}

// Body renders the ordered sections of the commit body. Sections with no
// data are omitted entirely so the body never carries empty headers.
func (g *Generator) Body(s *model.Summary) string {
	var sections []string

	if len(s.Capabilities) > 0 {
		lines := []string{"NEW CAPABILITIES:"}
		shown := s.Capabilities
		if len(shown) > 5 {
			shown = shown[:5]
		}
		for i, c := range shown {
			prefix := "├──"
			if i == len(shown)-1 {
				prefix = "└──"
			}
			lines = append(lines, fmt.Sprintf("%s %s: %s", prefix, c.Label, c.Impact))
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}

	if len(s.Roles) > 0 {
		lines := []string{"FUNCTIONAL COMPONENTS:"}
		for _, r := range s.Roles {
			lines = append(lines, fmt.Sprintf("✅ %s (%s)", r.Role, r.Entity))
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}

	{
		lines := []string{"IMPACT:"}
		if s.Metrics.OldComplexity != s.Metrics.NewComplexity {
			emoji, desc := FormatComplexityDelta(s.Metrics.OldComplexity, s.Metrics.NewComplexity, g.cfg.Gates.MaxComplexityPercent)
			lines = append(lines, fmt.Sprintf("%s %s", emoji, desc))
		}
		if n := len(s.Relations); n > 0 {
			lines = append(lines, fmt.Sprintf("🔗 Relations: %d dependencies detected", n))
		}
		lines = append(lines, fmt.Sprintf("⭐ Value score: %d/100", s.Metrics.ValueScore))
		sections = append(sections, strings.Join(lines, "\n"))
	}

	if s.Chain != "" {
		sections = append(sections, "DEPENDENCY FLOW:\n  "+s.Chain)
	}

	if footer := g.FilesFooter(s.Files); footer != "" {
		sections = append(sections, footer)
	}

	return strings.Join(sections, "\n\n")
}

// FilesFooter renders the per-domain file counts, e.g. "Files: 3 core; 1 docs".
// Domains appear in their enum order so the footer is deterministic.
func (g *Generator) FilesFooter(files []string) string {
	byDomain := g.domains.Categorize(files)
	var parts []string
	for d := model.DomainCore; d <= model.DomainOther; d++ {
		if n := len(byDomain[d]); n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, d))
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return "Files: " + strings.Join(parts, "; ")
}

// FormatComplexityDelta renders the before/after complexity change as an
// interpretable one-liner. Deltas beyond maxPercent are reported as
// structural moves rather than real complexity growth.
func FormatComplexityDelta(oldC, newC, maxPercent int) (emoji, desc string) {
	if oldC == 0 {
		return "➡️", "New module (baseline established)"
	}

	pct := float64(newC-oldC) / float64(oldC) * 100
	switch {
	case pct > float64(maxPercent) || pct < -float64(maxPercent):
		return "➡️", "Large structural change (normalized)"
	case pct < -10:
		return "📉", fmt.Sprintf("-%.0f%% complexity (refactor win)", -pct)
	case pct > 50:
		return "⚠️", fmt.Sprintf("+%.0f%% complexity (monitor)", pct)
	case pct > 10:
		return "📊", fmt.Sprintf("+%.0f%% complexity (new features)", pct)
	default:
		return "➡️", "Stable complexity"
	}
}

// NetDescriptor renders the net line movement as an emoji plus sentence.
func NetDescriptor(m model.Metrics) string {
	switch net := m.Net(); {
	case net < 0:
		return fmt.Sprintf("📉 NET %d lines (%d%% deletion churn)", net, m.DeletionPercent())
	case net > 0:
		return fmt.Sprintf("📈 NET +%d lines (feature growth)", net)
	default:
		return "➡️ NET 0 lines (neutral churn)"
	}
}

func stemOf(path string) string {
	base := path
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[i+1:]
	}
	if i := strings.LastIndexByte(base, '.'); i > 0 {
		base = base[:i]
	}
	return base
}
