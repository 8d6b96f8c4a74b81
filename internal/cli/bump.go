package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/gitgoal/gitgoal/internal/gitx"
	"github.com/gitgoal/gitgoal/internal/manifest"
)

var bumpCmd = &cobra.Command{
	Use:   "bump {major|minor|patch}",
	Short: "Bump the project version across manifests",
	Long: `Read the current version from the first manifest found
(package.json, Cargo.toml, pyproject.toml, VERSION), bump the requested
part, and write the new version back to every manifest present.

With --tag an annotated v-prefixed tag is created at HEAD; --push pushes the
branch and tags to origin.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"major", "minor", "patch"},
	RunE:      runBump,
}

func init() {
	bumpCmd.Flags().Bool("dry-run", false, "print the new version without writing")
	bumpCmd.Flags().Bool("tag", false, "create an annotated tag after bumping")
	bumpCmd.Flags().Bool("push", false, "push the branch and tags to origin")
}

func runBump(cmd *cobra.Command, args []string) error {
	repoDir, err := repoRoot()
	if err != nil {
		return fmt.Errorf("not in a git repository: %w", err)
	}

	current, err := manifest.Current(repoDir)
	if err != nil {
		return fmt.Errorf("reading current version: %w", err)
	}

	next, err := manifest.Bump(current, args[0])
	if err != nil {
		return err
	}

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	if dryRun {
		fmt.Printf("%s -> %s\n", current, next)
		return nil
	}

	updated, err := manifest.SyncAll(repoDir, next)
	if err != nil {
		return fmt.Errorf("writing version: %w", err)
	}
	for _, f := range updated {
		fmt.Printf("  %s\n", f)
	}
	color.Green("Bumped %s -> %s", current, next)

	repo := gitx.Open(repoDir)

	tag, _ := cmd.Flags().GetBool("tag")
	if tag {
		name := next
		if name[0] != 'v' {
			name = "v" + name
		}
		if prev := repo.LatestTag(); prev != "" {
			fmt.Printf("Previous tag: %s\n", prev)
		}
		if err := repo.Tag(name, "release "+next); err != nil {
			return fmt.Errorf("tagging: %w", err)
		}
		fmt.Printf("Tagged %s\n", name)
	}

	push, _ := cmd.Flags().GetBool("push")
	if push {
		if err := repo.Push("origin", tag); err != nil {
			return fmt.Errorf("pushing: %w", err)
		}
		fmt.Println("Pushed to origin.")
	}
	return nil
}
