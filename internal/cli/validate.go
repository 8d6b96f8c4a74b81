package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [commit-range]",
	Short: "Run the quality gates over the generated summary",
	Long: `Generate a commit summary for the changes and run every quality
gate over it: banned title words, duplicate relations and files, generic
dependency nodes, missing capabilities and metrics, intent consistency, and
complexity sanity.

By default the staged changes are validated. Pass a commit range to validate
past commits, or "-" to read a diff from stdin.

Exit codes:
  0 — all gates passed
  1 — one or more gates failed`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().Bool("fix", false, "auto-fix failures before the verdict")
	validateCmd.Flags().Bool("working-tree", false, "validate unstaged changes instead of staged")
	validateCmd.Flags().IntP("context", "C", 3, "lines of context around changes")
}

func runValidate(cmd *cobra.Command, args []string) error {
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
		fmt.Println("No changes to validate.")
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

	fmt.Println(p.summary.Header())
	fmt.Println()
	printVerdict(res)

	if !res.Valid {
		os.Exit(1)
	}
	return nil
}
