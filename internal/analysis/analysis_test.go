package analysis

import (
	"testing"

	"github.com/gitgoal/gitgoal/internal/config"
	"github.com/gitgoal/gitgoal/internal/diff"
	"github.com/gitgoal/gitgoal/internal/model"
)

const analyzerDiff = `diff --git a/goal/cli.py b/goal/cli.py
index 1111111..2222222 100644
--- a/goal/cli.py
+++ b/goal/cli.py
@@ -10,6 +10,12 @@ import click
+def push(remote):
+    if remote:
+        run_analyzer(remote)
+    return remote
diff --git a/README.md b/README.md
index 3333333..4444444 100644
--- a/README.md
+++ b/README.md
@@ -1,3 +1,5 @@
 # goal
+
+## Smart Push Support
`

func TestAnalyzerRun(t *testing.T) {
	a := New(config.Default())
	a.Relations.readFile = fakeFS(nil)

	cs := &diff.ChangeSet{
		Files:   []string{"goal/cli.py", "README.md"},
		Added:   6,
		Deleted: 0,
		Raw:     analyzerDiff,
	}

	r := a.Run(cs, "")

	var names []string
	for _, e := range r.Entities {
		names = append(names, e.Name)
	}
	if len(names) != 2 || names[0] != "push" || names[1] != "Smart Push Support" {
		t.Errorf("entities = %v", names)
	}

	// Entities attribute to the file whose diff section produced them.
	if r.Entities[0].File != "goal/cli.py" || r.Entities[1].File != "README.md" {
		t.Errorf("entity files = %s, %s", r.Entities[0].File, r.Entities[1].File)
	}

	if r.PrimaryDomain != model.DomainCore {
		t.Errorf("primary domain = %v", r.PrimaryDomain)
	}
	if len(r.ByDomain[model.DomainDocs]) != 1 {
		t.Errorf("docs group = %v", r.ByDomain[model.DomainDocs])
	}

	if r.Intent != model.IntentFeat {
		t.Errorf("intent = %v, want feat", r.Intent)
	}

	if r.OldComplexity != 1 || r.NewComplexity != 2 {
		t.Errorf("complexity = (%d, %d)", r.OldComplexity, r.NewComplexity)
	}
}

func TestAnalyzerRunDeterministic(t *testing.T) {
	a := New(config.Default())
	a.Relations.readFile = fakeFS(nil)

	cs := &diff.ChangeSet{
		Files: []string{"goal/cli.py", "README.md"},
		Added: 6,
		Raw:   analyzerDiff,
	}

	first := a.Run(cs, "")
	for i := 0; i < 5; i++ {
		r := a.Run(cs, "")
		if r.Intent != first.Intent || r.Chain != first.Chain ||
			len(r.Entities) != len(first.Entities) ||
			len(r.Capabilities) != len(first.Capabilities) {
			t.Fatalf("run %d diverged: %+v vs %+v", i, r, first)
		}
	}
}
