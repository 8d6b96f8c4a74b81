package cli

import (
	"testing"
)

func TestRootCommandHasSubcommands(t *testing.T) {
	cmds := rootCmd.Commands()
	names := make(map[string]bool)
	for _, c := range cmds {
		names[c.Name()] = true
	}

	for _, want := range []string{"commit", "push", "validate", "fix-summary", "stat", "changelog", "bump", "outdated", "init", "serve", "version"} {
		if !names[want] {
			t.Errorf("root command missing subcommand %q", want)
		}
	}
}

func TestVersionOutput(t *testing.T) {
	// version vars are set via ldflags; in tests they have their defaults
	if version != "dev" {
		t.Errorf("expected default version %q, got %q", "dev", version)
	}
}

func TestRunPipelineEmptyDiff(t *testing.T) {
	p, err := runPipeline("   \n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != nil {
		t.Error("expected nil pipeline for empty diff")
	}
}

func TestRunPipeline(t *testing.T) {
	const raw = `diff --git a/goal/analyzer.py b/goal/analyzer.py
index abc1234..def5678 100644
--- a/goal/analyzer.py
+++ b/goal/analyzer.py
@@ -1,1 +1,4 @@
 import ast
+
+def new_visitor(tree):
+    return ast.walk(tree)
`
	p, err := runPipeline(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p == nil {
		t.Fatal("expected pipeline for non-empty diff")
	}
	if p.summary == nil || p.summary.Title == "" {
		t.Fatal("expected a generated summary with a title")
	}
	if got := p.validator.Validate(p.summary); got == nil {
		t.Fatal("expected a validation result")
	}
}
