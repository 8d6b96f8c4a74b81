package analysis

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gitgoal/gitgoal/internal/config"
	"github.com/gitgoal/gitgoal/internal/model"
)

// MaxEntities caps the entities reported per file.
const MaxEntities = 10

// EntityExtractor pulls function/class/heading names out of the added lines
// of a diff using per-language pattern tables. Malformed input yields an
// empty list, never an error.
type EntityExtractor struct {
	parsers    map[string]compiledParser
	extensions map[string]string
	mdNoise    []*regexp.Regexp
}

type compiledParser struct {
	extract []string
	ignore  []string
	entity  *regexp.Regexp
}

// NewEntityExtractor compiles the configured parser tables. Languages with an
// invalid entity regex fall back to substring extraction.
func NewEntityExtractor(cfg *config.Config) *EntityExtractor {
	e := &EntityExtractor{
		parsers:    make(map[string]compiledParser, len(cfg.Parsers)),
		extensions: cfg.Extensions,
	}

	for lang, rule := range cfg.Parsers {
		p := compiledParser{extract: rule.Extract, ignore: rule.Ignore}
		if rule.EntityPattern != "" {
			if re, err := regexp.Compile(rule.EntityPattern); err == nil {
				p.entity = re
			}
		}
		e.parsers[lang] = p
	}

	for _, pat := range cfg.MarkdownNoise {
		if re, err := regexp.Compile("(?i)" + pat); err == nil {
			e.mdNoise = append(e.mdNoise, re)
		}
	}

	return e
}

// Language returns the configured language for a path, or "" when unknown.
func (e *EntityExtractor) Language(path string) string {
	return e.extensions[strings.ToLower(filepath.Ext(path))]
}

// Extract scans the added lines of diffText for entities, capped at
// MaxEntities, in order of first appearance. Markdown files go through the
// heading extractor; unknown languages yield nothing.
func (e *EntityExtractor) Extract(path, diffText string) []model.Entity {
	lang := e.Language(path)
	if lang == "markdown" {
		return e.extractHeadings(path, diffText)
	}

	parser, ok := e.parsers[lang]
	if !ok {
		return nil
	}

	seen := make(map[string]bool)
	var entities []model.Entity

	for _, line := range addedLines(diffText) {
		if hasAny(line, parser.ignore) {
			continue
		}

		for _, pattern := range parser.extract {
			if !strings.Contains(line, pattern) {
				continue
			}

			name := extractName(line, pattern, parser.entity)
			if name != "" && len(name) > 1 && !seen[name] {
				seen[name] = true
				entities = append(entities, model.Entity{
					Name: name,
					Kind: kindFor(pattern),
					File: path,
				})
			}
			break
		}

		if len(entities) >= MaxEntities {
			break
		}
	}

	return entities
}

// extractHeadings pulls markdown headings from added lines, filtering
// changelog boilerplate so changelog self-edits do not pollute the entity
// list.
func (e *EntityExtractor) extractHeadings(path, diffText string) []model.Entity {
	seen := make(map[string]bool)
	var entities []model.Entity

	for _, line := range addedLines(diffText) {
		if !strings.HasPrefix(line, "#") {
			continue
		}

		topic := strings.TrimSpace(strings.TrimLeft(line, "#"))
		if len(topic) <= 2 || seen[topic] {
			continue
		}
		if e.isChangelogNoise(topic) {
			continue
		}

		seen[topic] = true
		entities = append(entities, model.Entity{Name: topic, Kind: model.EntityHeading, File: path})
		if len(entities) >= MaxEntities {
			break
		}
	}

	return entities
}

func (e *EntityExtractor) isChangelogNoise(topic string) bool {
	for _, re := range e.mdNoise {
		if re.MatchString(topic) {
			return true
		}
	}
	return false
}

// addedLines returns the insertion lines of a unified diff, prefix stripped,
// excluding the +++ file-header pseudo-lines.
func addedLines(diffText string) []string {
	var lines []string
	for _, line := range strings.Split(diffText, "\n") {
		if strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++") {
			lines = append(lines, strings.TrimSpace(line[1:]))
		}
	}
	return lines
}

func hasAny(line string, subs []string) bool {
	for _, s := range subs {
		if strings.Contains(line, s) {
			return true
		}
	}
	return false
}

// extractName pulls the identifier from a matched line, preferring the
// language's capturing regex and falling back to the token after the pattern.
func extractName(line, pattern string, entity *regexp.Regexp) string {
	if entity != nil {
		if m := entity.FindStringSubmatch(line); len(m) > 1 {
			return m[1]
		}
		return ""
	}

	rest := line[strings.Index(line, pattern)+len(pattern):]
	for _, sep := range []string{"(", ":", "=", "{"} {
		if idx := strings.Index(rest, sep); idx >= 0 {
			rest = rest[:idx]
		}
	}
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return ""
	}
	if !isIdentifier(fields[0]) {
		return ""
	}
	return fields[0]
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func kindFor(pattern string) model.EntityKind {
	switch strings.TrimSpace(pattern) {
	case "class", "struct", "interface", "type", "impl", "enum", "module":
		return model.EntityClass
	default:
		return model.EntityFunction
	}
}
