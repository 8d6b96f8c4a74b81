package analysis

import (
	"regexp"
	"strings"

	"github.com/gitgoal/gitgoal/internal/config"
	"github.com/gitgoal/gitgoal/internal/model"
)

// IntentClassifier decides the conventional-commit type for a change. Churn
// outranks keywords: a file named analyzer.py is not automatically a
// refactor, but a thousand deleted lines always is.
type IntentClassifier struct {
	thresholds config.IntentThresholds
	refactorRe []*regexp.Regexp
	featRe     []*regexp.Regexp
	fixRe      []*regexp.Regexp
}

func NewIntentClassifier(cfg *config.Config) *IntentClassifier {
	return &IntentClassifier{
		thresholds: cfg.Intent,
		refactorRe: compileAll(cfg.RefactorPatterns),
		featRe:     compileAll(cfg.FeatPatterns),
		fixRe:      compileAll(cfg.FixPatterns),
	}
}

func compileAll(patterns []string) []*regexp.Regexp {
	var res []*regexp.Regexp
	for _, p := range patterns {
		if re, err := regexp.Compile("(?i)" + p); err == nil {
			res = append(res, re)
		}
	}
	return res
}

// Classify picks one of feat, fix, refactor, docs, chore. Rules are checked
// in order; each later rule only runs when the earlier ones are
// inconclusive:
//
//  1. all docs files            -> docs
//  2. all pure config files     -> chore
//  3. strong deletion churn     -> refactor
//  4. keyword scores with churn tie-breaks
func (ic *IntentClassifier) Classify(files []string, entities []model.Entity, added, deleted int) model.Intent {
	if len(files) > 0 && allDocs(files) {
		return model.IntentDocs
	}
	if len(files) > 0 && allConfig(files) {
		return model.IntentChore
	}

	net := added - deleted
	churn := added + deleted
	t := ic.thresholds

	// Strong refactor signal from deletion churn alone.
	if deleted >= t.MassiveDeletion {
		return model.IntentRefactor
	}
	if deleted >= t.LargeDeletion && churn > 0 &&
		float64(deleted)/float64(churn) >= t.DeletionRatio {
		return model.IntentRefactor
	}
	if net < -t.NetDrop {
		return model.IntentRefactor
	}

	combined := strings.Join(files, " ")
	for _, e := range entities {
		combined += " " + e.Name
	}

	refactorScore := score(ic.refactorRe, combined)
	featScore := score(ic.featRe, combined)
	fixScore := score(ic.fixRe, combined)

	if len(files) > t.ManyFiles && net < 0 {
		refactorScore += 2
	}

	if deleted >= t.RefactorTieDeletion &&
		refactorScore >= featScore && refactorScore >= fixScore {
		return model.IntentRefactor
	}

	if refactorScore == 0 && featScore == 0 && fixScore == 0 {
		if net <= 0 {
			return model.IntentRefactor
		}
		return model.IntentFeat
	}

	// Ties prefer refactor, then feat.
	switch {
	case refactorScore >= featScore && refactorScore >= fixScore:
		return model.IntentRefactor
	case featScore >= fixScore:
		return model.IntentFeat
	default:
		return model.IntentFix
	}
}

func score(res []*regexp.Regexp, text string) int {
	n := 0
	for _, re := range res {
		if re.MatchString(text) {
			n++
		}
	}
	return n
}

func allDocs(files []string) bool {
	for _, f := range files {
		lower := strings.ToLower(f)
		if strings.HasSuffix(lower, ".md") || strings.HasSuffix(lower, ".rst") ||
			strings.Contains(lower, "doc") {
			continue
		}
		return false
	}
	return true
}

func allConfig(files []string) bool {
	for _, f := range files {
		lower := strings.ToLower(f)
		if strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml") ||
			strings.HasSuffix(lower, ".toml") || strings.HasSuffix(lower, ".json") ||
			strings.HasSuffix(lower, ".ini") {
			continue
		}
		return false
	}
	return true
}
