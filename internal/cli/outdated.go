package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/gitgoal/gitgoal/internal/manifest"
	"github.com/gitgoal/gitgoal/internal/registry"
)

var outdatedCmd = &cobra.Command{
	Use:   "outdated [package]",
	Short: "Compare the local version against the package registry",
	Long: `Look up the latest published version of the project package on its
registry (PyPI, npm, or crates.io) and compare it with the version in the
local manifests. The ecosystem and package name come from goal.yaml; an
explicit package argument overrides the configured name.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runOutdated,
}

func runOutdated(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	pkg := cfg.Registry.Package
	if len(args) == 1 {
		pkg = args[0]
	}
	if pkg == "" {
		return fmt.Errorf("no package configured; set registry.package in %s or pass a name", "goal.yaml")
	}

	timeout := time.Duration(cfg.Registry.TimeoutSeconds) * time.Second
	client := registry.New(timeout)

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	latest, err := client.Latest(ctx, cfg.Registry.Ecosystem, pkg)
	if err != nil {
		return fmt.Errorf("querying %s: %w", cfg.Registry.Ecosystem, err)
	}

	local := "unknown"
	if repoDir, err := repoRoot(); err == nil {
		if v, err := manifest.Current(repoDir); err == nil {
			local = v
		}
	}

	fmt.Printf("%s (%s)\n", pkg, cfg.Registry.Ecosystem)
	fmt.Printf("  published: %s\n", latest)
	fmt.Printf("  local:     %s\n", local)

	if local != "unknown" && local != latest {
		color.Yellow("Local version differs from the registry.")
	} else if local == latest {
		color.Green("Up to date.")
	}
	return nil
}
