package summary

import (
	"fmt"
	"strings"
	"testing"

	"github.com/gitgoal/gitgoal/internal/config"
	"github.com/gitgoal/gitgoal/internal/model"
)

func validSummary() *model.Summary {
	return &model.Summary{
		Title:  "smart commit generation system",
		Body:   "IMPACT:\n🔗 Relations: 1 dependencies detected\n⭐ Value score: 75/100",
		Intent: model.IntentFeat,
		Scope:  model.DomainCore,
		Capabilities: []model.Capability{
			{ID: "ast_analysis", Label: "deep code analysis engine", Priority: 10},
		},
		Relations: []model.Relation{{From: "cli", To: "analyzer", Type: "imports"}},
		Files:     []string{"goal/cli.py", "goal/analyzer.py"},
		Metrics:   model.Metrics{OldComplexity: 10, NewComplexity: 12, LinesAdded: 100, LinesDeleted: 20, ValueScore: 75},
	}
}

func TestValidateCleanSummary(t *testing.T) {
	v := NewValidator(config.Default())

	r := v.Validate(validSummary())
	if !r.Valid || len(r.Errors) != 0 || len(r.Warnings) != 0 {
		t.Fatalf("result = %+v", r)
	}
	if r.Score != 100 {
		t.Errorf("score = %d, want 100", r.Score)
	}
}

func TestValidateBannedWords(t *testing.T) {
	v := NewValidator(config.Default())

	s := validSummary()
	s.Title = "update logging"
	r := v.Validate(s)

	if r.Valid {
		t.Fatal("banned-word title passed validation")
	}
	found := false
	for _, e := range r.Errors {
		if strings.Contains(e, "logging") || strings.Contains(e, "update") {
			found = true
		}
	}
	if !found {
		t.Errorf("errors = %v", r.Errors)
	}
	if len(r.Fixes) == 0 || r.Fixes[0].Kind != "remove_banned_words" {
		t.Errorf("fixes = %v", r.Fixes)
	}
}

// Banned-word matching is whole-word: "improvements" is not "improve", and
// the type token in a full header would not trip it because only the
// description segment is checked.
func TestValidateBannedWordsWholeWord(t *testing.T) {
	v := NewValidator(config.Default())

	s := validSummary()
	s.Title = "production-grade improvements for updates"
	if r := v.Validate(s); !r.Valid {
		t.Errorf("substring false-positive: %v", r.Errors)
	}
}

func TestValidateShortTitleWarns(t *testing.T) {
	v := NewValidator(config.Default())

	s := validSummary()
	s.Title = "new parser"
	r := v.Validate(s)
	if !r.Valid || len(r.Warnings) != 1 {
		t.Errorf("result = %+v", r)
	}
	if r.Score != 95 {
		t.Errorf("score = %d, want 95", r.Score)
	}
}

func TestValidateGenericNodes(t *testing.T) {
	v := NewValidator(config.Default())

	s := validSummary()
	s.Relations = []model.Relation{
		{From: "cli", To: "utils"},
		{From: "analyzer", To: "base"},
	}
	r := v.Validate(s)
	if r.Valid {
		t.Fatalf("two generic-node relations passed: %+v", r)
	}
}

func TestValidateDuplicateRelations(t *testing.T) {
	v := NewValidator(config.Default())

	s := validSummary()
	s.Relations = []model.Relation{
		{From: "cli", To: "analyzer"},
		{From: "cli", To: "analyzer"},
	}
	r := v.Validate(s)
	if r.Valid {
		t.Fatalf("duplicate relations passed: %+v", r)
	}
}

// A relation list that is merely long is not a duplicate; only repeated
// (from, to) edges trip the gate.
func TestValidateManyUniqueRelations(t *testing.T) {
	v := NewValidator(config.Default())

	s := validSummary()
	s.Relations = nil
	for i := 0; i < 11; i++ {
		s.Relations = append(s.Relations, model.Relation{
			From: fmt.Sprintf("mod%02d", i), To: "core", Type: "imports",
		})
	}
	r := v.Validate(s)
	for _, e := range r.Errors {
		if strings.Contains(e, "duplicate relations") {
			t.Fatalf("unique relations flagged as duplicates: %+v", r)
		}
	}
}

func TestValidateDuplicateFiles(t *testing.T) {
	v := NewValidator(config.Default())

	s := validSummary()
	s.Files = []string{"goal/cli.py", "old/cli.py"}
	r := v.Validate(s)
	if r.Valid {
		t.Fatalf("duplicate basenames passed: %+v", r)
	}
}

func TestValidateMissingCapabilitiesAndMetrics(t *testing.T) {
	v := NewValidator(config.Default())

	s := validSummary()
	s.Capabilities = nil
	s.Body = "plain prose with no numbers"
	r := v.Validate(s)
	if !r.Valid {
		t.Fatalf("warnings should not invalidate: %+v", r)
	}
	if len(r.Warnings) != 2 {
		t.Errorf("warnings = %v", r.Warnings)
	}
	if r.Score != 90 {
		t.Errorf("score = %d, want 90", r.Score)
	}
}

func TestValidateIntentChurnMismatch(t *testing.T) {
	v := NewValidator(config.Default())

	s := validSummary()
	s.Intent = model.IntentFeat
	s.Metrics.LinesAdded = 50
	s.Metrics.LinesDeleted = 900
	r := v.Validate(s)
	if r.Valid {
		t.Fatalf("feat with 900 deletions passed: %+v", r)
	}

	s.Intent = model.IntentRefactor
	if r := v.Validate(s); !r.Valid {
		t.Errorf("refactor with heavy churn should pass: %v", r.Errors)
	}
}

func TestValidateLargeDeletionNonRefactor(t *testing.T) {
	v := NewValidator(config.Default())

	// 300 deleted of 2300 churn: no churn rule forces refactor, but the
	// large-deletion gate still rejects a non-refactor intent.
	s := validSummary()
	s.Intent = model.IntentFix
	s.Metrics.LinesAdded = 2000
	s.Metrics.LinesDeleted = 300
	r := v.Validate(s)
	if r.Valid {
		t.Fatalf("fix with 300 deletions passed: %+v", r)
	}
}

func TestValidateComplexityWarning(t *testing.T) {
	v := NewValidator(config.Default())

	s := validSummary()
	s.Metrics.OldComplexity = 2
	s.Metrics.NewComplexity = 20
	r := v.Validate(s)
	if !r.Valid {
		t.Fatalf("complexity delta should only warn: %+v", r)
	}
	if len(r.Warnings) != 1 || !strings.Contains(r.Warnings[0], "normalized") {
		t.Errorf("warnings = %v", r.Warnings)
	}
}

func TestValidateScoreBounds(t *testing.T) {
	v := NewValidator(config.Default())

	s := validSummary()
	s.Title = "update stuff"
	s.Intent = model.IntentFeat
	s.Metrics.LinesDeleted = 2000
	s.Relations = []model.Relation{
		{From: "cli", To: "utils"}, {From: "cli", To: "utils"}, {From: "a", To: "base"},
	}
	s.Files = []string{"a/x.py", "b/x.py", "c/x.py"}
	s.Capabilities = nil
	s.Body = ""
	r := v.Validate(s)
	if r.Score < 0 || r.Score > 100 {
		t.Errorf("score out of bounds: %d", r.Score)
	}
	if r.Valid {
		t.Error("heavily broken summary validated")
	}
}

func TestValidateDeterministic(t *testing.T) {
	v := NewValidator(config.Default())

	s := validSummary()
	s.Title = "update various logging stuff"
	first := v.Validate(s)
	for i := 0; i < 5; i++ {
		r := v.Validate(s)
		if r.Score != first.Score || len(r.Errors) != len(first.Errors) {
			t.Fatalf("diverged on run %d", i)
		}
		for j := range r.Errors {
			if r.Errors[j] != first.Errors[j] {
				t.Fatalf("error order diverged: %v vs %v", r.Errors, first.Errors)
			}
		}
	}
}
