package summary

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gitgoal/gitgoal/internal/analysis"
	"github.com/gitgoal/gitgoal/internal/config"
	"github.com/gitgoal/gitgoal/internal/diff"
	"github.com/gitgoal/gitgoal/internal/model"
)

// Validator runs the quality gates over a Summary. Gate failures are data,
// not errors: the caller decides whether to block, auto-fix, or let the user
// override.
type Validator struct {
	gates      config.Gates
	thresholds config.IntentThresholds
	banned     map[string]bool
	indicators []string
	generic    map[string]bool
}

func NewValidator(cfg *config.Config) *Validator {
	v := &Validator{
		gates:      cfg.Gates,
		thresholds: cfg.Intent,
		banned:     make(map[string]bool, len(cfg.BannedTitleWords)),
		indicators: cfg.MetricIndicators,
		generic:    make(map[string]bool, len(cfg.GenericNodes)),
	}
	for _, w := range cfg.BannedTitleWords {
		v.banned[strings.ToLower(w)] = true
	}
	for _, n := range cfg.GenericNodes {
		v.generic[n] = true
	}
	return v
}

// Validate runs every gate independently and aggregates errors, warnings,
// and suggested fixes. Score is 100 minus 20 per error and 5 per warning,
// clamped to [0,100]; the result is valid iff there are no errors.
func (v *Validator) Validate(s *model.Summary) *model.ValidationResult {
	r := &model.ValidationResult{}

	// Banned words are checked against the description segment only, so the
	// conventional-commit type token never false-positives.
	if banned := v.BannedWords(s.Title); len(banned) > 0 {
		r.Errors = append(r.Errors, fmt.Sprintf("banned words in title: %s", strings.Join(banned, ", ")))
		r.Fixes = append(r.Fixes, model.SuggestedFix{Kind: "remove_banned_words", Detail: strings.Join(banned, ", ")})
	}

	if words := len(strings.Fields(s.Title)); words < v.gates.MinDescriptionWords {
		r.Warnings = append(r.Warnings, fmt.Sprintf("title too short: %d words (need %d)", words, v.gates.MinDescriptionWords))
		r.Fixes = append(r.Fixes, model.SuggestedFix{Kind: "regenerate_title", Detail: s.Title})
	}

	if n := v.genericCount(s.Relations); n > v.gates.MaxGenericNodes {
		r.Errors = append(r.Errors, fmt.Sprintf("generic dependency nodes: %d (max %d)", n, v.gates.MaxGenericNodes))
		r.Fixes = append(r.Fixes, model.SuggestedFix{Kind: "strip_generic_nodes", Detail: fmt.Sprintf("%d", n)})
	}

	if _, removed := analysis.DedupeRelations(s.Relations); removed > v.gates.MaxDuplicates {
		r.Errors = append(r.Errors, fmt.Sprintf("duplicate relations: %d", removed))
		r.Fixes = append(r.Fixes, model.SuggestedFix{Kind: "dedupe_relations", Detail: fmt.Sprintf("%d", removed)})
	}

	if dups := len(s.Files) - len(diff.DedupeFiles(s.Files)); dups > v.gates.MaxDuplicates {
		r.Errors = append(r.Errors, fmt.Sprintf("duplicate files: %d", dups))
		r.Fixes = append(r.Fixes, model.SuggestedFix{Kind: "dedupe_files", Detail: fmt.Sprintf("%d", dups)})
	}

	if len(s.Capabilities) < v.gates.MinCapabilities {
		r.Warnings = append(r.Warnings, fmt.Sprintf("only %d capabilities (need %d)", len(s.Capabilities), v.gates.MinCapabilities))
	}

	if n := v.metricCount(s.Body); n < v.gates.RequiredMetrics {
		r.Warnings = append(r.Warnings, fmt.Sprintf("only %d metrics in body (need %d)", n, v.gates.RequiredMetrics))
	}

	// Intent must match observed churn: keyword heuristics never outrank a
	// quarter-thousand deleted lines.
	if want, forced := ChurnIntent(v.thresholds, s.Metrics.LinesAdded, s.Metrics.LinesDeleted); forced && s.Intent != want {
		r.Errors = append(r.Errors, fmt.Sprintf("intent %s inconsistent with churn (expected %s)", s.Intent, want))
		r.Fixes = append(r.Fixes, model.SuggestedFix{Kind: "reclassify_intent", Detail: want.String()})
	} else if s.Metrics.LinesDeleted >= v.thresholds.LargeDeletion && s.Intent != model.IntentRefactor {
		r.Errors = append(r.Errors, fmt.Sprintf("intent %s with %d deletions (expected refactor)", s.Intent, s.Metrics.LinesDeleted))
		r.Fixes = append(r.Fixes, model.SuggestedFix{Kind: "reclassify_intent", Detail: model.IntentRefactor.String()})
	}

	if s.Metrics.OldComplexity > 0 {
		pct := float64(s.Metrics.NewComplexity-s.Metrics.OldComplexity) / float64(s.Metrics.OldComplexity) * 100
		if pct < 0 {
			pct = -pct
		}
		if pct > float64(v.gates.MaxComplexityPercent) {
			r.Warnings = append(r.Warnings, fmt.Sprintf("complexity delta %.0f%% > %d%% (will be normalized)", pct, v.gates.MaxComplexityPercent))
			r.Fixes = append(r.Fixes, model.SuggestedFix{Kind: "normalize_complexity", Detail: fmt.Sprintf("%.0f%%", pct)})
		}
	}

	r.Score = 100 - 20*len(r.Errors) - 5*len(r.Warnings)
	if r.Score < 0 {
		r.Score = 0
	}
	r.Valid = len(r.Errors) == 0
	return r
}

// BannedWords returns the banned words present in the title description,
// whole-word and case-insensitive, in banned-list order.
func (v *Validator) BannedWords(title string) []string {
	words := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(title)) {
		words[strings.Trim(w, ".,;:!?()[]{}\"'")] = true
	}

	var found []string
	for w := range v.banned {
		if words[w] {
			found = append(found, w)
		}
	}
	sort.Strings(found)
	return found
}

func (v *Validator) genericCount(relations []model.Relation) int {
	n := 0
	for _, r := range relations {
		if v.generic[r.From] || v.generic[r.To] {
			n++
		}
	}
	return n
}

func (v *Validator) metricCount(body string) int {
	lower := strings.ToLower(body)
	n := 0
	for _, ind := range v.indicators {
		if strings.Contains(lower, strings.ToLower(ind)) {
			n++
		}
	}
	return n
}

// ChurnIntent applies only the deletion-churn rules of intent
// classification. The second return reports whether churn alone forces an
// intent.
func ChurnIntent(t config.IntentThresholds, added, deleted int) (model.Intent, bool) {
	churn := added + deleted
	switch {
	case deleted >= t.MassiveDeletion:
		return model.IntentRefactor, true
	case deleted >= t.LargeDeletion && churn > 0 && float64(deleted)/float64(churn) >= t.DeletionRatio:
		return model.IntentRefactor, true
	case added-deleted < -t.NetDrop:
		return model.IntentRefactor, true
	}
	return model.IntentFeat, false
}
