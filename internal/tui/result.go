package tui

import (
	"github.com/gitgoal/gitgoal/internal/diff"
	"github.com/gitgoal/gitgoal/internal/model"
)

// CommitResult holds the outcome of an interactive preview session.
type CommitResult struct {
	Accepted bool
	Summary  *model.Summary
	Included map[int]bool
	Files    []*diff.File
}

func (m Model) result() *CommitResult {
	included := make(map[int]bool, len(m.included))
	for i, in := range m.included {
		included[i] = in
	}
	return &CommitResult{
		Accepted: m.accepted,
		Summary:  m.summary,
		Included: included,
		Files:    m.diffSet.Files,
	}
}

// IncludedFiles returns the files the user kept in.
func (r *CommitResult) IncludedFiles() []*diff.File {
	var files []*diff.File
	for i, f := range r.Files {
		if r.Included[i] {
			files = append(files, f)
		}
	}
	return files
}

// ExcludedFiles returns the files the user toggled out.
func (r *CommitResult) ExcludedFiles() []*diff.File {
	var files []*diff.File
	for i, f := range r.Files {
		if !r.Included[i] {
			files = append(files, f)
		}
	}
	return files
}

// IncludedPaths returns the paths of included files for staging.
func (r *CommitResult) IncludedPaths() []string {
	var paths []string
	for _, f := range r.IncludedFiles() {
		if f.IsDeleted || f.NewName == "" {
			paths = append(paths, f.OldName)
		} else {
			paths = append(paths, f.NewName)
		}
	}
	return paths
}

// PartialSelection reports whether any file was excluded.
func (r *CommitResult) PartialSelection() bool {
	return len(r.ExcludedFiles()) > 0
}
