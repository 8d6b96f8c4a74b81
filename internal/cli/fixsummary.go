package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var fixSummaryCmd = &cobra.Command{
	Use:   "fix-summary [commit-range]",
	Short: "Auto-fix the generated summary and show the result",
	Long: `Generate a commit summary, run the auto-fix pass over it, and print
the corrected message. With --preview, the before and after versions are
shown side by side with the list of applied fixes.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFixSummary,
}

func init() {
	fixSummaryCmd.Flags().Bool("preview", false, "show before/after comparison")
	fixSummaryCmd.Flags().Bool("working-tree", false, "use unstaged changes instead of staged")
	fixSummaryCmd.Flags().IntP("context", "C", 3, "lines of context around changes")
}

func runFixSummary(cmd *cobra.Command, args []string) error {
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
		fmt.Println("No changes to fix.")
		return nil
	}

	preview, _ := cmd.Flags().GetBool("preview")
	before := p.summary.Header()
	beforeRes := p.validator.Validate(p.summary)

	p.fixer.Fix(p.summary)
	afterRes := p.validator.Validate(p.summary)

	if preview {
		color.New(color.Faint).Printf("before: %s (score %d)\n", before, beforeRes.Score)
		color.Cyan("after:  %s (score %d)", p.summary.Header(), afterRes.Score)
		fmt.Println()
		if len(p.summary.AppliedFixes) == 0 {
			fmt.Println("No fixes needed.")
		}
		for _, f := range p.summary.AppliedFixes {
			fmt.Printf("  • %s\n", f)
		}
		return nil
	}

	printSummary(p.summary)
	fmt.Println()
	printVerdict(afterRes)
	return nil
}
