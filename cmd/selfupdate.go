package cmd

import (
	"context"
	"fmt"

	"github.com/blang/semver"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"
)

const updateRepo = "lecterndev/lectern"

var (
	version   = "dev"
	buildTime = "unknown"

	checkOnly bool
)

// SetVersion records build information injected by the linker.
func SetVersion(v, t string) {
	if v != "" {
		version = v
	}
	if t != "" {
		buildTime = t
	}
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	// Version output needs no config or clients
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("lectern %s (built %s)\n", version, buildTime)
	},
}

// selfupdateCmd represents the selfupdate command
var selfupdateCmd = &cobra.Command{
	Use:               "selfupdate",
	Short:             "Update lectern to the latest release",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE:              runSelfupdate,
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(selfupdateCmd)

	selfupdateCmd.Flags().BoolVar(&checkOnly, "check", false, "only check for a newer release")
}

func runSelfupdate(cmd *cobra.Command, args []string) error {
	if _, err := semver.ParseTolerant(version); err != nil {
		return fmt.Errorf("cannot update a development build (version %q)", version)
	}

	ctx := context.Background()
	repo := selfupdate.ParseSlug(updateRepo)

	latest, found, err := selfupdate.DetectLatest(ctx, repo)
	if err != nil {
		return fmt.Errorf("failed to check for updates: %w", err)
	}
	if !found {
		fmt.Println("No release found.")
		return nil
	}

	if latest.LessOrEqual(version) {
		fmt.Printf("Already up to date (version %s).\n", version)
		return nil
	}

	fmt.Printf("New version available: %s\n", latest.Version())
	if checkOnly {
		return nil
	}

	if _, err := selfupdate.UpdateSelf(ctx, version, repo); err != nil {
		return fmt.Errorf("failed to update: %w", err)
	}

	fmt.Printf("✓ Updated to %s\n", latest.Version())
	return nil
}
