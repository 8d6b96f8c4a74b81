package analysis

import (
	"fmt"
	"testing"

	"github.com/gitgoal/gitgoal/internal/config"
	"github.com/gitgoal/gitgoal/internal/model"
)

func newIntentClassifier() *IntentClassifier {
	return NewIntentClassifier(config.Default())
}

func TestClassifyDocsOnly(t *testing.T) {
	ic := newIntentClassifier()

	got := ic.Classify([]string{"README.md", "docs/guide.rst"}, nil, 40, 2)
	if got != model.IntentDocs {
		t.Errorf("Classify = %v, want docs", got)
	}
}

func TestClassifyConfigOnly(t *testing.T) {
	ic := newIntentClassifier()

	got := ic.Classify([]string{"goal.yaml", "pyproject.toml"}, nil, 5, 1)
	if got != model.IntentChore {
		t.Errorf("Classify = %v, want chore", got)
	}
}

// A thousand deleted lines is a refactor no matter how feature-flavored the
// file names look.
func TestClassifyMassiveDeletion(t *testing.T) {
	ic := newIntentClassifier()

	got := ic.Classify([]string{"goal/new_handler.py"}, nil, 200, 1200)
	if got != model.IntentRefactor {
		t.Errorf("Classify = %v, want refactor", got)
	}
}

func TestClassifyDeletionRatio(t *testing.T) {
	ic := newIntentClassifier()

	// deleted 300 of 800 churned lines: 37% deletion ratio.
	got := ic.Classify([]string{"goal/new_feature.py"}, nil, 500, 300)
	if got != model.IntentRefactor {
		t.Errorf("Classify = %v, want refactor", got)
	}
}

func TestClassifyNetDrop(t *testing.T) {
	ic := newIntentClassifier()

	got := ic.Classify([]string{"goal/module.py"}, nil, 10, 150)
	if got != model.IntentRefactor {
		t.Errorf("Classify = %v, want refactor", got)
	}
}

func TestClassifyFeatKeywords(t *testing.T) {
	ic := newIntentClassifier()

	got := ic.Classify([]string{"goal/new_handler.py"}, nil, 50, 0)
	if got != model.IntentFeat {
		t.Errorf("Classify = %v, want feat", got)
	}
}

func TestClassifyEntityNamesCount(t *testing.T) {
	ic := newIntentClassifier()

	entities := []model.Entity{{Name: "push", Kind: model.EntityFunction, File: "goal/cli.py"}}
	got := ic.Classify([]string{"goal/cli.py"}, entities, 20, 0)
	if got != model.IntentFeat {
		t.Errorf("Classify = %v, want feat", got)
	}
}

func TestClassifyFixKeywords(t *testing.T) {
	ic := newIntentClassifier()

	got := ic.Classify([]string{"src/bugfix_patch.py"}, nil, 12, 4)
	if got != model.IntentFix {
		t.Errorf("Classify = %v, want fix", got)
	}
}

// With meaningful deletion behind it, a refactor score that ties the other
// intents wins.
func TestClassifyRefactorTieWithDeletion(t *testing.T) {
	ic := newIntentClassifier()

	got := ic.Classify([]string{"goal/analyzer.py", "goal/new_feature.py"}, nil, 130, 120)
	if got != model.IntentRefactor {
		t.Errorf("Classify = %v, want refactor", got)
	}
}

func TestClassifyTiePrefersRefactor(t *testing.T) {
	ic := newIntentClassifier()

	// refactor and feat both score 1; no deletion signal either way.
	got := ic.Classify([]string{"goal/analyzer.py", "goal/new_thing.py"}, nil, 50, 0)
	if got != model.IntentRefactor {
		t.Errorf("Classify = %v, want refactor", got)
	}
}

func TestClassifyNoSignals(t *testing.T) {
	ic := newIntentClassifier()

	if got := ic.Classify([]string{"goal/misc.py"}, nil, 10, 0); got != model.IntentFeat {
		t.Errorf("positive net with no keywords = %v, want feat", got)
	}
	if got := ic.Classify([]string{"goal/misc.py"}, nil, 3, 3); got != model.IntentRefactor {
		t.Errorf("zero net with no keywords = %v, want refactor", got)
	}
}

func TestClassifyManyFilesShrinking(t *testing.T) {
	ic := newIntentClassifier()

	var files []string
	for i := 0; i < 11; i++ {
		files = append(files, fmt.Sprintf("goal/part%02d.py", i))
	}
	got := ic.Classify(files, nil, 5, 10)
	if got != model.IntentRefactor {
		t.Errorf("Classify = %v, want refactor", got)
	}
}

func TestClassifyDeterministic(t *testing.T) {
	ic := newIntentClassifier()

	files := []string{"goal/analyzer.py", "goal/new_handler.py", "src/bugfix.py"}
	first := ic.Classify(files, nil, 80, 20)
	for i := 0; i < 10; i++ {
		if got := ic.Classify(files, nil, 80, 20); got != first {
			t.Fatalf("run %d: Classify = %v, first was %v", i, got, first)
		}
	}
}
