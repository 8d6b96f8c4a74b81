// Package gitx wraps the git subcommands the commit workflow needs: staging,
// file lists, numstat totals, commit, tag, and push.
package gitx

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// Repo is a handle to one working copy.
type Repo struct {
	Dir string
}

func Open(dir string) *Repo {
	return &Repo{Dir: dir}
}

func (r *Repo) run(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	cmd.Stderr = os.Stderr

	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git %s: %w", args[0], err)
	}
	return string(out), nil
}

// Root returns the repository top-level directory.
func (r *Repo) Root() (string, error) {
	out, err := r.run("rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// Head returns the abbreviated HEAD commit hash.
func (r *Repo) Head() (string, error) {
	out, err := r.run("rev-parse", "--short", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// Branch returns the current branch name.
func (r *Repo) Branch() (string, error) {
	out, err := r.run("rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// StagedFiles lists the paths with staged changes, in git's order.
func (r *Repo) StagedFiles() ([]string, error) {
	out, err := r.run("diff", "--cached", "--name-only")
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

// WorkingTreeFiles lists tracked paths with unstaged changes plus untracked
// files.
func (r *Repo) WorkingTreeFiles() ([]string, error) {
	out, err := r.run("diff", "--name-only")
	if err != nil {
		return nil, err
	}
	files := splitLines(out)

	out, err = r.run("ls-files", "--others", "--exclude-standard")
	if err != nil {
		return nil, err
	}
	return append(files, splitLines(out)...), nil
}

// Numstat sums lines added and deleted across the diff. Binary files report
// "-" in numstat output and count as zero.
func (r *Repo) Numstat(cached bool) (added, deleted int, err error) {
	args := []string{"diff", "--numstat"}
	if cached {
		args = []string{"diff", "--cached", "--numstat"}
	}
	out, err := r.run(args...)
	if err != nil {
		return 0, 0, err
	}
	added, deleted = parseNumstat(out)
	return added, deleted, nil
}

func parseNumstat(out string) (added, deleted int) {
	for _, line := range splitLines(out) {
		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}
		if a, err := strconv.Atoi(fields[0]); err == nil {
			added += a
		}
		if d, err := strconv.Atoi(fields[1]); err == nil {
			deleted += d
		}
	}
	return added, deleted
}

// StageAll stages every change in the working tree.
func (r *Repo) StageAll() error {
	_, err := r.run("add", "-A")
	return err
}

// Stage stages the given paths.
func (r *Repo) Stage(paths ...string) error {
	if len(paths) == 0 {
		return nil
	}
	_, err := r.run(append([]string{"add", "--"}, paths...)...)
	return err
}

// Commit records the staged changes with the given message.
func (r *Repo) Commit(message string) error {
	_, err := r.run("commit", "-m", message)
	return err
}

// CommitPaths records only the given paths, regardless of what else is
// staged.
func (r *Repo) CommitPaths(message string, paths ...string) error {
	if len(paths) == 0 {
		return r.Commit(message)
	}
	_, err := r.run(append([]string{"commit", "-m", message, "--"}, paths...)...)
	return err
}

// Tag creates an annotated tag at HEAD.
func (r *Repo) Tag(name, message string) error {
	_, err := r.run("tag", "-a", name, "-m", message)
	return err
}

// LatestTag returns the most recent tag reachable from HEAD, or "" when the
// repository has no tags.
func (r *Repo) LatestTag() string {
	out, err := r.run("describe", "--tags", "--abbrev=0")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// Push pushes the current branch, and optionally tags, to the remote.
func (r *Repo) Push(remote string, tags bool) error {
	if remote == "" {
		remote = "origin"
	}
	args := []string{"push", remote, "HEAD"}
	if tags {
		args = append(args, "--tags")
	}
	_, err := r.run(args...)
	return err
}

func splitLines(out string) []string {
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
