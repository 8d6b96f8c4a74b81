package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gitgoal/gitgoal/internal/diff"
)

var statCmd = &cobra.Command{
	Use:   "stat [commit-range]",
	Short: "Print change statistics for the diff",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runStat,
}

func init() {
	statCmd.Flags().Bool("working-tree", false, "use unstaged changes instead of staged")
	statCmd.Flags().IntP("context", "C", 3, "lines of context around changes")
}

func runStat(cmd *cobra.Command, args []string) error {
	workingTree, _ := cmd.Flags().GetBool("working-tree")
	contextLines, _ := cmd.Flags().GetInt("context")

	raw, err := getDiff(args, !workingTree, contextLines)
	if err != nil {
		return err
	}

	if strings.TrimSpace(raw) == "" {
		fmt.Println("No changes.")
		return nil
	}

	ds, err := diff.Parse(raw)
	if err != nil {
		return fmt.Errorf("parsing diff: %w", err)
	}

	files, added, deleted := ds.Stats()
	fmt.Printf("%d file(s) changed, %d insertions(+), %d deletions(-)\n\n", files, added, deleted)
	for _, f := range ds.Files {
		status := "M"
		if f.IsNew {
			status = "A"
		} else if f.IsDeleted {
			status = "D"
		} else if f.IsRenamed {
			status = "R"
		}
		fmt.Printf("  %s %-50s +%-4d -%d\n", status, f.Name(), f.AddedLines, f.DeletedLines)
	}
	return nil
}
