package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/gitgoal/gitgoal/internal/changelog"
	"github.com/gitgoal/gitgoal/internal/gitx"
	"github.com/gitgoal/gitgoal/internal/manifest"
	"github.com/gitgoal/gitgoal/internal/model"
)

var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Commit, bump, tag, and push in one pass",
	Long: `Run the full release workflow: stage everything, generate and
validate the commit message, bump the version across manifests, update the
changelog, commit, tag, and push to origin.

Use --dry-run to see the plan without touching the repository, and --yes to
skip the confirmation prompt.

Examples:
  gitgoal push                     # patch release, with confirmation
  gitgoal push -b minor -y         # minor release, no prompts
  gitgoal push --dry-run           # show the plan only`,
	Args: cobra.NoArgs,
	RunE: runPush,
}

func init() {
	pushCmd.Flags().StringP("bump", "b", "patch", "version part to bump (major, minor, patch)")
	pushCmd.Flags().Bool("no-tag", false, "skip creating the release tag")
	pushCmd.Flags().Bool("no-changelog", false, "skip updating the changelog")
	pushCmd.Flags().Bool("no-version-sync", false, "skip writing the new version to manifests")
	pushCmd.Flags().Bool("dry-run", false, "print the plan without doing anything")
	pushCmd.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")
	pushCmd.Flags().IntP("context", "C", 3, "lines of context around changes")
}

func runPush(cmd *cobra.Command, args []string) error {
	repoDir, err := repoRoot()
	if err != nil {
		return fmt.Errorf("not in a git repository: %w", err)
	}
	repo := gitx.Open(repoDir)

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	if !dryRun {
		if err := repo.StageAll(); err != nil {
			return err
		}
	}

	contextLines, _ := cmd.Flags().GetInt("context")
	raw, err := getDiff(nil, true, contextLines)
	if err != nil {
		return err
	}
	p, err := runPipeline(raw)
	if err != nil {
		return err
	}
	if p == nil {
		fmt.Println("No changes to commit.")
		return nil
	}

	// Gate failures get one automatic fix pass; a summary that still fails
	// afterwards blocks the release.
	res := p.validator.Validate(p.summary)
	if !res.Valid {
		p.fixer.Fix(p.summary)
		for _, f := range p.summary.AppliedFixes {
			fmt.Fprintf(os.Stderr, "fix: %s\n", f)
		}
		res = p.validator.Validate(p.summary)
	}
	if !res.Valid {
		printVerdict(res)
		return fmt.Errorf("summary failed %d quality gate(s)", len(res.Errors))
	}

	part, _ := cmd.Flags().GetString("bump")
	current, err := manifest.Current(repoDir)
	if err != nil {
		return fmt.Errorf("reading current version: %w", err)
	}
	next, err := manifest.Bump(current, part)
	if err != nil {
		return err
	}

	noTag, _ := cmd.Flags().GetBool("no-tag")
	noChangelog, _ := cmd.Flags().GetBool("no-changelog")

	plan := pushPlan(p.summary, len(p.cs.Files), current, next, noTag, noChangelog)
	if dryRun {
		fmt.Print(plan)
		return nil
	}

	yes, _ := cmd.Flags().GetBool("yes")
	if !yes {
		fmt.Print(plan)
		if !confirm(cmd.InOrStdin(), "Proceed?") {
			fmt.Fprintln(os.Stderr, "Aborted.")
			return nil
		}
	}

	// Version and changelog updates are staged before the commit so the
	// release lands as a single commit.
	noSync, _ := cmd.Flags().GetBool("no-version-sync")
	if !noSync {
		updated, err := manifest.SyncAll(repoDir, next)
		if err != nil {
			return fmt.Errorf("writing version: %w", err)
		}
		if err := repo.Stage(updated...); err != nil {
			return err
		}
		for _, f := range updated {
			fmt.Printf("  %s -> %s\n", f, next)
		}
	}

	if !noChangelog {
		w := changelog.NewWriter(p.cfg)
		entry := changelog.Entry{
			Version: next,
			Date:    time.Now(),
			Summary: p.summary,
		}
		if err := w.Update(repoDir, entry); err != nil {
			return fmt.Errorf("updating changelog: %w", err)
		}
		if err := repo.Stage(p.cfg.Changelog.Path); err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, "Changelog updated.")
	}

	message := p.summary.Header()
	if p.summary.Body != "" {
		message += "\n\n" + p.summary.Body
	}
	if err := repo.Commit(message); err != nil {
		return err
	}
	color.Green("Committed: %s", p.summary.Header())

	if !noTag {
		name := tagName(next)
		if err := repo.Tag(name, "release "+next); err != nil {
			return fmt.Errorf("tagging: %w", err)
		}
		fmt.Printf("Tagged %s\n", name)
	}

	if err := repo.Push("origin", !noTag); err != nil {
		return fmt.Errorf("pushing: %w", err)
	}
	color.Green("Pushed to origin (%s -> %s)", current, next)
	return nil
}

// pushPlan renders the workflow preview shown before the confirmation prompt
// and by --dry-run.
func pushPlan(s *model.Summary, files int, current, next string, noTag, noChangelog bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Files to commit: %d (+%d/-%d lines, NET %+d)\n",
		files, s.Metrics.LinesAdded, s.Metrics.LinesDeleted, s.Metrics.Net())
	fmt.Fprintf(&b, "Commit message: %s\n", s.Header())
	fmt.Fprintf(&b, "Version: %s -> %s\n", current, next)
	if !noChangelog {
		b.WriteString("Changelog: will be updated\n")
	}
	if noTag {
		b.WriteString("Tag: skipped\n")
	} else {
		fmt.Fprintf(&b, "Tag: %s\n", tagName(next))
	}
	return b.String()
}

func tagName(version string) string {
	if version == "" || version[0] == 'v' {
		return version
	}
	return "v" + version
}

// confirm reads one line and accepts y or yes, case-insensitive. EOF counts
// as a refusal.
func confirm(in io.Reader, prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	sc := bufio.NewScanner(in)
	if !sc.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(sc.Text()))
	return answer == "y" || answer == "yes"
}
