package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gitgoal/gitgoal/internal/config"
	"github.com/gitgoal/gitgoal/internal/diff"
	"github.com/gitgoal/gitgoal/internal/model"
	"github.com/gitgoal/gitgoal/internal/summary"
)

const testDiff = `diff --git a/goal/analyzer.py b/goal/analyzer.py
index abc1234..def5678 100644
--- a/goal/analyzer.py
+++ b/goal/analyzer.py
@@ -1,4 +1,5 @@
 import ast

 def analyze(tree):
-    return walk(tree)
+    visitor = Visitor()
+    return visitor.visit(tree)
diff --git a/goal/cli.py b/goal/cli.py
new file mode 100644
--- /dev/null
+++ b/goal/cli.py
@@ -0,0 +1,5 @@
+import click
+
+def main():
+    run()
+    return 0
`

func testSummary() *model.Summary {
	return &model.Summary{
		Title:  "code analysis engine",
		Intent: model.IntentFeat,
		Scope:  model.DomainCore,
		Metrics: model.Metrics{
			OldComplexity: 2,
			NewComplexity: 3,
			LinesAdded:    7,
			LinesDeleted:  1,
			ValueScore:    60,
		},
		Files: []string{"goal/analyzer.py", "goal/cli.py"},
	}
}

func setupModel(t *testing.T) Model {
	t.Helper()
	ds, err := diff.Parse(testDiff)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	cfg := config.Default()
	sum := testSummary()
	validator := summary.NewValidator(cfg)
	fixer := summary.NewFixer(cfg)
	m := New(ds, sum, validator.Validate(sum), fixer, validator)
	// Simulate window size
	newM, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return newM.(Model)
}

func TestModelInit(t *testing.T) {
	m := setupModel(t)

	if m.fileIndex != 0 {
		t.Errorf("expected fileIndex 0, got %d", m.fileIndex)
	}
	if len(m.lines) == 0 {
		t.Error("expected lines to be rendered")
	}
	for i := range m.diffSet.Files {
		if !m.included[i] {
			t.Errorf("expected file %d to start included", i)
		}
	}
}

func TestNavigation(t *testing.T) {
	m := setupModel(t)

	// Move to next file
	newM, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	m = newM.(Model)
	if m.fileIndex != 1 {
		t.Errorf("expected fileIndex 1 after next, got %d", m.fileIndex)
	}

	// Move past end — should stay
	newM, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	m = newM.(Model)
	if m.fileIndex != 1 {
		t.Errorf("expected fileIndex 1 at end, got %d", m.fileIndex)
	}

	// Move back
	newM, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'N'}})
	m = newM.(Model)
	if m.fileIndex != 0 {
		t.Errorf("expected fileIndex 0 after prev, got %d", m.fileIndex)
	}
}

func TestScrolling(t *testing.T) {
	m := setupModel(t)

	newM, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	m = newM.(Model)
	if m.scrollOffset != 1 {
		t.Errorf("expected scrollOffset 1, got %d", m.scrollOffset)
	}

	newM, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	m = newM.(Model)
	if m.scrollOffset != 0 {
		t.Errorf("expected scrollOffset 0, got %d", m.scrollOffset)
	}

	// Can't scroll above 0
	newM, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	m = newM.(Model)
	if m.scrollOffset != 0 {
		t.Errorf("expected scrollOffset 0 at top, got %d", m.scrollOffset)
	}
}

func TestToggleInclude(t *testing.T) {
	m := setupModel(t)

	newM, _ := m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m = newM.(Model)
	if m.included[0] {
		t.Error("expected file 0 excluded after toggle")
	}

	newM, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m = newM.(Model)
	if !m.included[0] {
		t.Error("expected file 0 included after second toggle")
	}
}

func TestAccept(t *testing.T) {
	m := setupModel(t)

	newM, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	m = newM.(Model)
	if !m.accepted {
		t.Error("expected accepted after 'a'")
	}
	if cmd == nil {
		t.Error("expected quit command after accept")
	}
}

func TestQuitDoesNotAccept(t *testing.T) {
	m := setupModel(t)

	newM, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m = newM.(Model)
	if m.accepted {
		t.Error("expected not accepted after 'q'")
	}
	if cmd == nil {
		t.Error("expected quit command")
	}
}

func TestHunkNavigation(t *testing.T) {
	m := setupModel(t)

	start := m.scrollOffset
	newM, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{']'}})
	m = newM.(Model)
	// Only one hunk in the first file; offset stays put
	if m.scrollOffset != start {
		t.Errorf("expected scrollOffset unchanged, got %d", m.scrollOffset)
	}
}

func TestViewRenders(t *testing.T) {
	m := setupModel(t)

	out := m.View()
	if out == "" {
		t.Fatal("expected non-empty view")
	}
	if !strings.Contains(out, "analyzer.py") {
		t.Error("expected view to include the current file name")
	}
	if !strings.Contains(out, "feat(core)") {
		t.Error("expected view to include the commit header")
	}
}

func TestHelpView(t *testing.T) {
	m := setupModel(t)

	newM, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	m = newM.(Model)
	out := m.View()
	if !strings.Contains(out, "Keyboard Shortcuts") {
		t.Error("expected help view")
	}
}

func TestFixKeyRevalidates(t *testing.T) {
	ds, err := diff.Parse(testDiff)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	cfg := config.Default()
	sum := testSummary()
	sum.Title = "update logging"
	validator := summary.NewValidator(cfg)
	fixer := summary.NewFixer(cfg)
	m := New(ds, sum, validator.Validate(sum), fixer, validator)
	newM, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = newM.(Model)

	if m.validation.Valid {
		t.Fatal("expected banned title to fail validation")
	}

	newM, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'f'}})
	m = newM.(Model)

	if len(m.summary.AppliedFixes) == 0 {
		t.Error("expected fixes to be applied")
	}
	for _, w := range summary.NewValidator(cfg).BannedWords(m.summary.Title) {
		t.Errorf("banned word %q survived fix", w)
	}
}

func TestResult(t *testing.T) {
	m := setupModel(t)

	newM, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	m = newM.(Model)
	newM, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m = newM.(Model)
	newM, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	m = newM.(Model)

	r := m.result()
	if !r.Accepted {
		t.Error("expected accepted result")
	}
	if !r.PartialSelection() {
		t.Error("expected partial selection after excluding a file")
	}
	paths := r.IncludedPaths()
	if len(paths) != 1 || paths[0] != "goal/analyzer.py" {
		t.Errorf("unexpected included paths %v", paths)
	}
}
