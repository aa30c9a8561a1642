package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change the defaults applied when a corpus is opened.

Command line flags override these per invocation.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Change a setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Print(renderSummary("[corpus]", []kv{
		{"editable", settings.Corpus.Editable},
	}))
	cmd.Print(renderSummary("[loader]", []kv{
		{"check_missing_sources", settings.Corpus.CheckMissingSources},
		{"create_missing_sources", settings.Corpus.CreateMissingSources},
		{"dataset_dir", settings.Corpus.DatasetDir},
	}))
	cmd.Print(renderSummary("[fetch]", []kv{
		{"retries", settings.Fetch.Retries},
		{"timeout", settings.Fetch.Timeout},
		{"requests_per_second", settings.Fetch.RequestsPerSecond},
	}))
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	if err := settingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("%w (known keys: %v)", err, settingsService.Keys())
	}
	cmd.Printf("%s set to %s\n", args[0], args[1])
	return nil
}
