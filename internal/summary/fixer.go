package summary

import (
	"fmt"
	"strings"

	"github.com/gitgoal/gitgoal/internal/analysis"
	"github.com/gitgoal/gitgoal/internal/config"
	"github.com/gitgoal/gitgoal/internal/diff"
	"github.com/gitgoal/gitgoal/internal/model"
)

// rescueTitle is the floor when stripping banned words leaves nothing usable.
const rescueTitle = "production-grade improvements"

// Fixer applies deterministic, non-interactive corrections to a Summary. It
// always attempts every fix and records the ones that changed anything; it
// does not guarantee the result re-passes validation, so callers re-run the
// Validator and surface remaining failures instead of looping.
type Fixer struct {
	cfg       *config.Config
	gen       *Generator
	validator *Validator
	relations *analysis.RelationDetector
}

func NewFixer(cfg *config.Config) *Fixer {
	return &Fixer{
		cfg:       cfg,
		gen:       NewGenerator(cfg),
		validator: NewValidator(cfg),
		relations: analysis.NewRelationDetector(cfg.GenericNodes),
	}
}

// Fix mutates s in place, appending a human-readable log line to
// s.AppliedFixes for every correction that changed something.
func (f *Fixer) Fix(s *model.Summary) {
	s.AppliedFixes = nil

	f.fixTitle(s)
	f.fixIntent(s)
	f.fixRelations(s)
	f.fixFiles(s)
	f.fixCapabilities(s)

	// Rebuild the body from the corrected parts, then attach the NET
	// descriptor and category counts.
	s.Body = f.gen.Body(s)
	s.Body = strings.TrimSuffix(s.Body, "\n")

	net := NetDescriptor(s.Metrics)
	s.Body += "\n\n" + net
	s.AppliedFixes = append(s.AppliedFixes, "attached NET descriptor: "+net)

	if footer := f.gen.FilesFooter(s.Files); footer != "" && !strings.Contains(s.Body, footer) {
		s.Body += "\n\n" + footer
		s.AppliedFixes = append(s.AppliedFixes, "recomputed file categorization")
	}
}

// fixTitle regenerates rather than merely deletes: stripping banned words
// from a two-word title leaves a stump, so the architecture-aware namer runs
// first and word removal is only the fallback.
func (f *Fixer) fixTitle(s *model.Summary) {
	banned := f.validator.BannedWords(s.Title)
	if len(banned) == 0 {
		return
	}

	title := f.gen.Title(s.Files, s.Capabilities)
	if len(f.validator.BannedWords(title)) > 0 {
		title = stripWords(title, banned)
	}
	if len(strings.Fields(title)) < 2 || len(title) < 5 {
		title = rescueTitle
	}

	s.Title = title
	s.AppliedFixes = append(s.AppliedFixes, fmt.Sprintf("removed banned words: %s", strings.Join(banned, ", ")))
}

func (f *Fixer) fixIntent(s *model.Summary) {
	want, forced := ChurnIntent(f.cfg.Intent, s.Metrics.LinesAdded, s.Metrics.LinesDeleted)
	if !forced && s.Metrics.LinesDeleted >= f.cfg.Intent.LargeDeletion {
		want, forced = model.IntentRefactor, true
	}
	if forced && s.Intent != want {
		s.AppliedFixes = append(s.AppliedFixes, fmt.Sprintf("reclassified intent: %s -> %s", s.Intent, want))
		s.Intent = want
	}
}

func (f *Fixer) fixRelations(s *model.Summary) {
	kept, generic := f.relations.FilterGenericNodes(s.Relations)
	if generic > 0 {
		s.AppliedFixes = append(s.AppliedFixes, fmt.Sprintf("stripped %d generic dependency nodes", generic))
	}

	deduped, dups := analysis.DedupeRelations(kept)
	if dups > 0 {
		s.AppliedFixes = append(s.AppliedFixes, fmt.Sprintf("deduped relations: %d -> %d", len(kept), len(deduped)))
	} else if len(deduped) != len(kept) {
		// Self-loops or cap truncation changed the list without any true
		// duplicates.
		s.AppliedFixes = append(s.AppliedFixes, fmt.Sprintf("trimmed relations: %d -> %d", len(kept), len(deduped)))
	}

	if generic > 0 || len(deduped) != len(kept) {
		s.Relations = deduped
		s.Chain = analysis.Chain(deduped)
	}
}

func (f *Fixer) fixFiles(s *model.Summary) {
	unique := diff.DedupeFiles(s.Files)
	if len(unique) != len(s.Files) {
		s.AppliedFixes = append(s.AppliedFixes, fmt.Sprintf("deduped files: %d -> %d", len(s.Files), len(unique)))
		s.Files = unique
	}
}

func (f *Fixer) fixCapabilities(s *model.Summary) {
	before := capOrder(s.Capabilities)
	analysis.SortCapabilities(s.Capabilities)
	if capOrder(s.Capabilities) != before {
		s.AppliedFixes = append(s.AppliedFixes, "reordered capabilities by priority")
	}
}

func capOrder(caps []model.Capability) string {
	ids := make([]string, len(caps))
	for i, c := range caps {
		ids[i] = c.ID
	}
	return strings.Join(ids, ",")
}

// stripWords removes each word (whole-word, case-insensitive) and collapses
// the remaining whitespace.
func stripWords(title string, words []string) string {
	drop := make(map[string]bool, len(words))
	for _, w := range words {
		drop[strings.ToLower(w)] = true
	}

	var kept []string
	for _, w := range strings.Fields(title) {
		if drop[strings.ToLower(strings.Trim(w, ".,;:!?()[]{}\"'"))] {
			continue
		}
		kept = append(kept, w)
	}
	return strings.Join(kept, " ")
}
