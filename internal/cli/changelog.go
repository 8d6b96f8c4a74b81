package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gitgoal/gitgoal/internal/changelog"
	"github.com/gitgoal/gitgoal/internal/gitx"
)

var changelogCmd = &cobra.Command{
	Use:   "changelog [commit-range]",
	Short: "Generate a changelog entry for the changes",
	Long: `Generate a keep-a-changelog entry from the analyzed changes and
insert it at the top of the changelog file. With --dry-run the entry is
printed instead of written.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runChangelog,
}

func init() {
	changelogCmd.Flags().String("release", "", "version heading (default: Unreleased)")
	changelogCmd.Flags().Bool("dry-run", false, "print the entry without writing")
	changelogCmd.Flags().Bool("working-tree", false, "use unstaged changes instead of staged")
	changelogCmd.Flags().IntP("context", "C", 3, "lines of context around changes")
}

func runChangelog(cmd *cobra.Command, args []string) error {
	workingTree, _ := cmd.Flags().GetBool("working-tree")
	contextLines, _ := cmd.Flags().GetInt("context")

	raw, err := getDiff(args, !workingTree, contextLines)
	if err != nil {
		return err
	}

	p, err := runPipeline(raw)
	if err != nil {
		return err
	}
	if p == nil {
		fmt.Println("No changes.")
		return nil
	}

	version, _ := cmd.Flags().GetString("release")

	var hash string
	if repoDir, err := repoRoot(); err == nil {
		hash, _ = gitx.Open(repoDir).Head()
	}

	entry := changelog.Entry{
		Version: version,
		Date:    time.Now(),
		Hash:    hash,
		Summary: p.summary,
	}
	w := changelog.NewWriter(p.cfg)

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	if dryRun {
		fmt.Print(w.Render(entry))
		return nil
	}

	repoDir, err := repoRoot()
	if err != nil {
		return fmt.Errorf("not in a git repository: %w", err)
	}
	if err := w.Update(repoDir, entry); err != nil {
		return fmt.Errorf("updating changelog: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Changelog entry added to %s\n", p.cfg.Changelog.Path)
	return nil
}
