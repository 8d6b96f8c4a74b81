// Package cli wires the pipeline into cobra commands.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gitgoal/gitgoal/internal/analysis"
	"github.com/gitgoal/gitgoal/internal/config"
	"github.com/gitgoal/gitgoal/internal/diff"
	"github.com/gitgoal/gitgoal/internal/gitx"
	"github.com/gitgoal/gitgoal/internal/model"
	"github.com/gitgoal/gitgoal/internal/summary"
)

var rootCmd = &cobra.Command{
	Use:   "gitgoal",
	Short: "Goal-oriented commit messages from your diffs",
	Long: `gitgoal analyzes your changes and generates structured,
conventional-commit messages: intent classification, capability detection,
dependency relations, and quality gates that reject vague titles.

Typical flow:
  git add -A
  gitgoal commit --fix --create`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(
		commitCmd,
		pushCmd,
		validateCmd,
		fixSummaryCmd,
		statCmd,
		changelogCmd,
		bumpCmd,
		outdatedCmd,
		initCmd,
		serveCmd,
		versionCmd,
	)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// getDiff resolves the raw diff text for a command. A single "-" argument
// reads a diff from stdin; a commit-range argument diffs that range;
// otherwise the staged or working-tree changes are used.
func getDiff(args []string, cached bool, contextLines int) (string, error) {
	if len(args) == 1 && args[0] == "-" {
		data, err := os.ReadFile("/dev/stdin")
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}

	repoDir, err := repoRoot()
	if err != nil {
		return "", fmt.Errorf("not in a git repository (or git not installed): %w", err)
	}

	if len(args) == 1 {
		return diff.Range(repoDir, args[0], contextLines)
	}

	if cached {
		return diff.Staged(repoDir, contextLines)
	}
	return diff.WorkingTree(repoDir, contextLines)
}

func repoRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return gitx.Open(cwd).Root()
}

func loadConfig() *config.Config {
	dir, err := repoRoot()
	if err != nil {
		dir, _ = os.Getwd()
	}
	return config.Load(dir)
}

// pipeline holds the components and intermediate results shared by the
// summary-producing commands.
type pipeline struct {
	cfg       *config.Config
	ds        *diff.DiffSet
	cs        *diff.ChangeSet
	result    *analysis.Result
	summary   *model.Summary
	validator *summary.Validator
	fixer     *summary.Fixer
}

// runPipeline parses the raw diff and runs analysis, generation, and
// validation. Returns nil with no error when the diff is empty.
func runPipeline(raw string) (*pipeline, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	ds, err := diff.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing diff: %w", err)
	}
	if len(ds.Files) == 0 {
		return nil, nil
	}

	cfg := loadConfig()
	cs := diff.NewChangeSet(ds)

	// Changed-file paths are repo-root-relative; anchor the relation
	// scanner there so running from a subdirectory still finds them.
	repoDir, err := repoRoot()
	if err != nil {
		repoDir = ""
	}
	res := analysis.New(cfg).Run(cs, repoDir)
	sum := summary.NewGenerator(cfg).Generate(res, cs)

	return &pipeline{
		cfg:       cfg,
		ds:        ds,
		cs:        cs,
		result:    res,
		summary:   sum,
		validator: summary.NewValidator(cfg),
		fixer:     summary.NewFixer(cfg),
	}, nil
}

func printSummary(s *model.Summary) {
	fmt.Println(s.Header())
	if s.Body != "" {
		fmt.Println()
		fmt.Println(s.Body)
	}
}
