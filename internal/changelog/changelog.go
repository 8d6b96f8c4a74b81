// Package changelog maintains a keep-a-changelog style CHANGELOG.md, turning
// commit summaries into dated, versioned entries.
package changelog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gitgoal/gitgoal/internal/analysis"
	"github.com/gitgoal/gitgoal/internal/config"
	"github.com/gitgoal/gitgoal/internal/model"
)

const preamble = "# Changelog\n\nAll notable changes to this project are documented in this file.\n"

// Entry is one released (or unreleased) changelog section.
type Entry struct {
	Version string // "" renders as Unreleased
	Date    time.Time
	Hash    string // short commit hash, omitted when empty
	Summary *model.Summary
}

// Writer renders entries and prepends them to the changelog file.
type Writer struct {
	cfg     config.Changelog
	domains *analysis.DomainClassifier
}

func NewWriter(cfg *config.Config) *Writer {
	return &Writer{
		cfg:     cfg.Changelog,
		domains: analysis.NewDomainClassifier(cfg.DomainMapping),
	}
}

// Render produces the markdown block for one entry. Section choice follows
// the commit intent: feat lands under Added, fix under Fixed, everything
// else under Changed.
func (w *Writer) Render(e Entry) string {
	var b strings.Builder

	version := e.Version
	if version == "" {
		version = "Unreleased"
	}
	fmt.Fprintf(&b, "## [%s] - %s\n\n", version, e.Date.Format("2006-01-02"))
	fmt.Fprintf(&b, "### %s\n\n", sectionFor(e.Summary.Intent))

	line := e.Summary.Header()
	if w.cfg.IncludeHash && e.Hash != "" {
		line += fmt.Sprintf(" (%s)", e.Hash)
	}
	b.WriteString("- " + line + "\n")

	if names := w.keyChanges(e.Summary); len(names) > 0 {
		fmt.Fprintf(&b, "\n**Key Changes:** %s\n", strings.Join(names, ", "))
	}

	if files := w.fileBullets(e.Summary.Files); files != "" {
		b.WriteString("\n" + files)
	}

	return b.String()
}

func (w *Writer) keyChanges(s *model.Summary) []string {
	var names []string
	for _, r := range s.Roles {
		names = append(names, fmt.Sprintf("`%s`", r.Entity))
		if len(names) >= w.cfg.MaxEntities {
			break
		}
	}
	return names
}

// fileBullets groups the changed files by domain, one sub-heading per
// non-empty domain in enum order.
func (w *Writer) fileBullets(files []string) string {
	byDomain := w.domains.Categorize(files)
	var b strings.Builder
	for d := model.DomainCore; d <= model.DomainOther; d++ {
		group := byDomain[d]
		if len(group) == 0 {
			continue
		}
		fmt.Fprintf(&b, "#### %s\n", capitalize(d.String()))
		for _, f := range group {
			fmt.Fprintf(&b, "- %s\n", f)
		}
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// Update prepends the rendered entry to the changelog file in dir, creating
// the file with a preamble when it does not exist. Existing entries are
// preserved below the new one.
func (w *Writer) Update(dir string, e Entry) error {
	path := filepath.Join(dir, w.cfg.Path)

	existing, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading changelog: %w", err)
	}

	content := Insert(string(existing), w.Render(e))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing changelog: %w", err)
	}
	return nil
}

// Insert places entry before the first existing version heading, keeping any
// preamble text above it. An empty document gets the standard preamble.
func Insert(existing, entry string) string {
	entry = strings.TrimRight(entry, "\n") + "\n"

	if strings.TrimSpace(existing) == "" {
		return preamble + "\n" + entry
	}

	idx := strings.Index(existing, "\n## ")
	if strings.HasPrefix(existing, "## ") {
		idx = 0
	} else if idx >= 0 {
		idx++ // keep the newline with the preamble
	}

	if idx < 0 {
		return strings.TrimRight(existing, "\n") + "\n\n" + entry
	}
	return existing[:idx] + entry + "\n" + existing[idx:]
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}

func sectionFor(intent model.Intent) string {
	switch intent {
	case model.IntentFeat:
		return "Added"
	case model.IntentFix:
		return "Fixed"
	default:
		return "Changed"
	}
}
