package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/assafBarash/node-package-bootstrapper/internal/config"
	"github.com/assafBarash/node-package-bootstrapper/internal/doctor"
	"github.com/assafBarash/node-package-bootstrapper/internal/pkgmanager"
	"github.com/assafBarash/node-package-bootstrapper/internal/runner"
)

var (
	doctorManifest       string
	doctorPackageManager string
	doctorNodeConstraint string
)

func init() {
	doctorCmd.Flags().StringVar(&doctorManifest, "check-manifest", "", "Validate a package.json at the given path")
	doctorCmd.Flags().StringVar(&doctorPackageManager, "package-manager", "", "Package manager to check (default from config)")
	doctorCmd.Flags().StringVar(&doctorNodeConstraint, "node", doctor.DefaultNodeConstraint, "Required Node.js version range")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that node, npx and the package manager are usable",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		pmName := doctorPackageManager
		if pmName == "" {
			pmName = config.Current().PackageManager
		}
		pm, err := pkgmanager.Lookup(pmName)
		if err != nil {
			return err
		}

		shell := &runner.Shell{Logger: logger}
		checker := &doctor.Checker{Runner: shell, PackageManager: pm, NodeConstraint: doctorNodeConstraint}
		checks := checker.Toolchain(cmd.Context())
		doctor.Print(out, "Toolchain check", checks)
		healthy := doctor.Healthy(checks)

		if doctorManifest != "" {
			mchecks, err := doctor.CheckManifest(doctorManifest)
			doctor.Print(out, "Manifest validation", mchecks)
			if err != nil {
				return err
			}
			healthy = healthy && doctor.Healthy(mchecks)
		}

		if !healthy {
			return fmt.Errorf("doctor found problems")
		}
		return nil
	},
}
