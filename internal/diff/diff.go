// Package diff collects git diffs and parses them into the structures the
// analysis pipeline consumes.
package diff

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/bluekeyes/go-gitdiff/gitdiff"
)

// File is a single changed file with its parsed fragments.
type File struct {
	OldName      string
	NewName      string
	IsNew        bool
	IsDeleted    bool
	IsRenamed    bool
	IsBinary     bool
	Fragments    []*gitdiff.TextFragment
	AddedLines   int
	DeletedLines int
}

// Name returns the display name for the file.
func (f *File) Name() string {
	if f.IsRenamed {
		return fmt.Sprintf("%s -> %s", f.OldName, f.NewName)
	}
	if f.IsDeleted {
		return f.OldName
	}
	if f.NewName != "" {
		return f.NewName
	}
	return f.OldName
}

// DiffSet holds the parsed diff for all files.
type DiffSet struct {
	Files []*File
	Raw   string
}

// Stats returns aggregate statistics.
func (ds *DiffSet) Stats() (files, added, deleted int) {
	files = len(ds.Files)
	for _, f := range ds.Files {
		added += f.AddedLines
		deleted += f.DeletedLines
	}
	return
}

// Parse reads a unified diff string and returns a DiffSet. Malformed input
// yields an error; callers in the heuristic pipeline are expected to degrade
// to an empty ChangeSet rather than abort.
func Parse(raw string) (*DiffSet, error) {
	parsed, _, err := gitdiff.Parse(strings.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parsing diff: %w", err)
	}

	ds := &DiffSet{Raw: raw}
	for _, f := range parsed {
		df := &File{
			OldName:   f.OldName,
			NewName:   f.NewName,
			IsNew:     f.IsNew,
			IsDeleted: f.IsDelete,
			IsRenamed: f.IsRename,
			IsBinary:  f.IsBinary,
		}

		for _, frag := range f.TextFragments {
			df.Fragments = append(df.Fragments, frag)
			for _, line := range frag.Lines {
				switch line.Op {
				case gitdiff.OpAdd:
					df.AddedLines++
				case gitdiff.OpDelete:
					df.DeletedLines++
				}
			}
		}

		ds.Files = append(ds.Files, df)
	}

	return ds, nil
}

// ChangeSet is the unit of work for one invocation: the deduplicated file
// list plus churn counts and the raw diff text. Immutable once built.
type ChangeSet struct {
	Files   []string // ordered, deduplicated by basename
	Added   int
	Deleted int
	Raw     string
}

// NewChangeSet builds a ChangeSet from a parsed DiffSet.
func NewChangeSet(ds *DiffSet) *ChangeSet {
	cs := &ChangeSet{Raw: ds.Raw}
	for _, f := range ds.Files {
		cs.Added += f.AddedLines
		cs.Deleted += f.DeletedLines
	}
	var names []string
	for _, f := range ds.Files {
		names = append(names, f.Name())
	}
	cs.Files = DedupeFiles(names)
	return cs
}

// DedupeFiles removes duplicate files by basename, preserving first-seen
// order. Idempotent.
func DedupeFiles(files []string) []string {
	seen := make(map[string]bool, len(files))
	var unique []string
	for _, f := range files {
		base := filepath.Base(f)
		if !seen[base] {
			seen[base] = true
			unique = append(unique, f)
		}
	}
	return unique
}

// SplitRaw splits a raw unified diff into per-file sections keyed by the
// new-side path. Sections keep their +/- line prefixes so they can feed
// entity extraction directly.
func SplitRaw(raw string) map[string]string {
	sections := make(map[string]string)
	var name string
	var buf strings.Builder

	flush := func() {
		if name != "" {
			sections[name] = buf.String()
		}
		buf.Reset()
	}

	for _, line := range strings.Split(raw, "\n") {
		if strings.HasPrefix(line, "diff --git ") {
			flush()
			name = ""
			// "diff --git a/path b/path" -> path from the b/ side.
			fields := strings.Fields(line)
			if len(fields) >= 4 {
				name = strings.TrimPrefix(fields[3], "b/")
			}
			continue
		}
		if name != "" {
			buf.WriteString(line)
			buf.WriteByte('\n')
		}
	}
	flush()

	return sections
}

// git runs a git subcommand in dir and returns stdout.
func git(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Stderr = os.Stderr

	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git %s: %w", args[0], err)
	}
	return string(out), nil
}

// Staged returns the unified diff of staged changes with the given number of
// context lines.
func Staged(repoDir string, contextLines int) (string, error) {
	return git(repoDir, "diff", "--cached", fmt.Sprintf("-U%d", contextLines))
}

// WorkingTree returns the unified diff of unstaged working-tree changes.
func WorkingTree(repoDir string, contextLines int) (string, error) {
	return git(repoDir, "diff", fmt.Sprintf("-U%d", contextLines))
}

// Range returns the diff for a commit range like "main...HEAD".
func Range(repoDir, commitRange string, contextLines int) (string, error) {
	return git(repoDir, "diff", fmt.Sprintf("-U%d", contextLines), commitRange)
}
