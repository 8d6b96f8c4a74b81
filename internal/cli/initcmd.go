package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gitgoal/gitgoal/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default goal.yaml configuration",
	Long: `Write the built-in defaults to goal.yaml in the repository root so
the pattern tables and thresholds can be tuned per project. Existing files
are left alone unless --force is given.`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().Bool("force", false, "overwrite an existing config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	dir, err := repoRoot()
	if err != nil {
		dir, err = os.Getwd()
		if err != nil {
			return err
		}
	}
	path := filepath.Join(dir, config.ConfigFileName)

	force, _ := cmd.Flags().GetBool("force")
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists; use --force to overwrite", path)
	}

	if err := config.WriteDefault(path, force); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}
