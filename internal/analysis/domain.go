package analysis

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/gitgoal/gitgoal/internal/config"
	"github.com/gitgoal/gitgoal/internal/model"
)

// DomainClassifier maps file paths to coarse domain labels using an ordered
// glob table with an extension-based fallback. Always returns a label; never
// errors.
type DomainClassifier struct {
	rules []domainRule
}

type domainRule struct {
	pattern string
	domain  model.Domain
}

// NewDomainClassifier compiles the configured glob table. Rules whose domain
// label is unknown are kept with DomainOther so ordering stays intact.
func NewDomainClassifier(rules []config.DomainRule) *DomainClassifier {
	c := &DomainClassifier{}
	for _, r := range rules {
		d, _ := model.ParseDomain(r.Domain)
		c.rules = append(c.rules, domainRule{pattern: r.Pattern, domain: d})
	}
	return c
}

var sourceExtensions = map[string]bool{
	".py": true, ".js": true, ".jsx": true, ".ts": true, ".tsx": true,
	".rs": true, ".go": true, ".rb": true, ".java": true, ".c": true,
	".cpp": true, ".h": true,
}

// Classify returns the domain for path. First matching rule wins; a bad glob
// pattern is skipped rather than surfaced.
func (c *DomainClassifier) Classify(path string) model.Domain {
	for _, r := range c.rules {
		ok, err := doublestar.Match(r.pattern, path)
		if err != nil {
			continue
		}
		if !ok {
			// Also try the basename so "*.md" style rules match nested files.
			if ok2, err2 := doublestar.Match(r.pattern, filepath.Base(path)); err2 != nil || !ok2 {
				continue
			}
		}
		return r.domain
	}

	// Extension fallback.
	base := strings.ToLower(filepath.Base(path))
	switch ext := filepath.Ext(base); {
	case ext == ".md" || ext == ".rst" || ext == ".txt":
		return model.DomainDocs
	case sourceExtensions[ext]:
		return model.DomainCore
	case strings.HasPrefix(base, "test") || strings.HasPrefix(base, "spec"):
		return model.DomainTest
	default:
		return model.DomainOther
	}
}

// Primary returns the majority domain over files, ties broken by the lower
// Domain value for determinism. Empty input maps to core.
func (c *DomainClassifier) Primary(files []string) model.Domain {
	if len(files) == 0 {
		return model.DomainCore
	}

	counts := make(map[model.Domain]int)
	for _, f := range files {
		counts[c.Classify(f)]++
	}

	best := model.DomainCore
	bestCount := -1
	for d := model.DomainCore; d <= model.DomainOther; d++ {
		if counts[d] > bestCount {
			best = d
			bestCount = counts[d]
		}
	}
	return best
}

// Categorize groups files by domain label, preserving input order within each
// group. Empty groups are omitted.
func (c *DomainClassifier) Categorize(files []string) map[model.Domain][]string {
	out := make(map[model.Domain][]string)
	for _, f := range files {
		d := c.Classify(f)
		out[d] = append(out[d], f)
	}
	return out
}
