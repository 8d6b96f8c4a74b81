package analysis

import (
	"regexp"
	"strings"
)

// Branch keywords counted toward the normalized complexity estimate.
var branchPattern = regexp.MustCompile(`\b(if|else|elif|for|while|case|switch|catch|except|when)\b|&&|\|\|`)

// EstimateComplexity derives a normalized before/after complexity pair from
// the diff text alone: one baseline point plus one per branch keyword in
// deleted (old) and added (new) lines. It is a coarse cyclomatic stand-in,
// good enough for delta-percentage reporting, not an absolute measure.
func EstimateComplexity(diffText string) (oldC, newC int) {
	oldC, newC = 1, 1
	for _, line := range strings.Split(diffText, "\n") {
		switch {
		case strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++"):
			newC += len(branchPattern.FindAllString(line, -1))
		case strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "---"):
			oldC += len(branchPattern.FindAllString(line, -1))
		}
	}
	return oldC, newC
}
