package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/gitgoal/gitgoal/internal/changelog"
	"github.com/gitgoal/gitgoal/internal/gitx"
	"github.com/gitgoal/gitgoal/internal/model"
	"github.com/gitgoal/gitgoal/internal/tui"
)

var commitCmd = &cobra.Command{
	Use:   "commit",
	Short: "Generate a commit message for the staged changes",
	Long: `Analyze the staged changes, generate a structured commit message,
and run the quality gates over it.

By default the message is printed for inspection. Use --create to record the
commit, --fix to auto-correct gate failures first, and --interactive to
preview the message next to the diff before committing.

Examples:
  gitgoal commit                   # print the generated message
  gitgoal commit --fix --create    # fix, then commit
  gitgoal commit -i                # interactive preview
  git diff --cached | gitgoal commit -   # pipe a diff (print only)`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCommit,
}

func init() {
	commitCmd.Flags().BoolP("all", "A", false, "stage all changes first")
	commitCmd.Flags().Bool("fix", false, "auto-fix quality gate failures")
	commitCmd.Flags().BoolP("create", "c", false, "create the commit")
	commitCmd.Flags().BoolP("interactive", "i", false, "interactive preview")
	commitCmd.Flags().Bool("changelog", false, "insert a changelog entry after committing")
	commitCmd.Flags().Bool("force", false, "commit even when quality gates fail")
	commitCmd.Flags().IntP("context", "C", 3, "lines of context around changes")
}

func runCommit(cmd *cobra.Command, args []string) error {
	stageAll, _ := cmd.Flags().GetBool("all")
	if stageAll {
		repoDir, err := repoRoot()
		if err != nil {
			return fmt.Errorf("not in a git repository: %w", err)
		}
		repo := gitx.Open(repoDir)
		if err := repo.StageAll(); err != nil {
			return err
		}
		if files, err := repo.StagedFiles(); err == nil {
			added, deleted, _ := repo.Numstat(true)
			fmt.Fprintf(os.Stderr, "Staged %d file(s), +%d -%d\n", len(files), added, deleted)
		}
	}

	contextLines, _ := cmd.Flags().GetInt("context")
	raw, err := getDiff(args, true, contextLines)
	if err != nil {
		return err
	}

	p, err := runPipeline(raw)
	if err != nil {
		return err
	}
	if p == nil {
		fmt.Println("No staged changes. Stage files first, or pass --all.")
		if repoDir, err := repoRoot(); err == nil {
			if files, err := gitx.Open(repoDir).WorkingTreeFiles(); err == nil && len(files) > 0 {
				fmt.Printf("(%d file(s) modified in the working tree)\n", len(files))
			}
		}
		return nil
	}

	autoFix, _ := cmd.Flags().GetBool("fix")
	if autoFix {
		p.fixer.Fix(p.summary)
		for _, f := range p.summary.AppliedFixes {
			fmt.Fprintf(os.Stderr, "fix: %s\n", f)
		}
	}

	res := p.validator.Validate(p.summary)

	interactive, _ := cmd.Flags().GetBool("interactive")
	if interactive {
		return runInteractiveCommit(cmd, p, res)
	}

	printSummary(p.summary)
	fmt.Println()
	printVerdict(res)

	create, _ := cmd.Flags().GetBool("create")
	if !create {
		return nil
	}
	force, _ := cmd.Flags().GetBool("force")
	if !res.Valid && !force {
		return fmt.Errorf("summary failed %d quality gate(s); re-run with --fix, or --force to override", len(res.Errors))
	}
	return createCommit(cmd, p.summary, nil)
}

func runInteractiveCommit(cmd *cobra.Command, p *pipeline, res *model.ValidationResult) error {
	result, err := tui.Run(p.ds, p.summary, res, p.fixer, p.validator)
	if err != nil {
		return err
	}
	if !result.Accepted {
		fmt.Fprintln(os.Stderr, "Aborted.")
		return nil
	}

	var paths []string
	if result.PartialSelection() {
		paths = result.IncludedPaths()
		if len(paths) == 0 {
			fmt.Fprintln(os.Stderr, "All files excluded; nothing to commit.")
			return nil
		}
	}
	return createCommit(cmd, result.Summary, paths)
}

// createCommit records the commit and, when requested, inserts the
// changelog entry. A non-empty paths list commits only those paths.
func createCommit(cmd *cobra.Command, s *model.Summary, paths []string) error {
	repoDir, err := repoRoot()
	if err != nil {
		return fmt.Errorf("not in a git repository: %w", err)
	}
	repo := gitx.Open(repoDir)

	message := s.Header()
	if s.Body != "" {
		message += "\n\n" + s.Body
	}

	if len(paths) > 0 {
		err = repo.CommitPaths(message, paths...)
	} else {
		err = repo.Commit(message)
	}
	if err != nil {
		return err
	}
	branch, berr := repo.Branch()
	if berr != nil {
		branch = "HEAD"
	}
	color.Green("Committed on %s: %s", branch, s.Header())

	updateChangelog, _ := cmd.Flags().GetBool("changelog")
	if !updateChangelog {
		return nil
	}

	hash, err := gitx.Open(repoDir).Head()
	if err != nil {
		hash = ""
	}
	w := changelog.NewWriter(loadConfig())
	entry := changelog.Entry{
		Date:    time.Now(),
		Hash:    hash,
		Summary: s,
	}
	if err := w.Update(repoDir, entry); err != nil {
		return fmt.Errorf("updating changelog: %w", err)
	}
	fmt.Fprintln(os.Stderr, "Changelog updated.")
	return nil
}

func printVerdict(res *model.ValidationResult) {
	if res.Valid {
		color.Green("✅ valid — score %d/100", res.Score)
	} else {
		color.Red("❌ invalid — score %d/100", res.Score)
	}
	for _, e := range res.Errors {
		color.Red("  error: %s", e)
	}
	for _, w := range res.Warnings {
		color.Yellow("  warning: %s", w)
	}
	for _, f := range res.Fixes {
		fmt.Printf("  fixable: %s (%s)\n", f.Detail, f.Kind)
	}
}
