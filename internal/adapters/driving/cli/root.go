// Package cli implements the cantus command line interface.
package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cantus-corpus/internal/core/ports/driven"
	"github.com/custodia-labs/cantus-corpus/internal/core/ports/driving"
	"github.com/custodia-labs/cantus-corpus/internal/logger"
	"github.com/custodia-labs/cantus-corpus/internal/transforms"
)

var version = "dev"

// Global flags.
var (
	verbose   bool
	configDir string
)

// Services used by commands. Set by the entrypoint through SetServiceFactory
// or directly by tests.
var (
	corpusOpener      driving.CorpusOpener
	settingsService   driving.SettingsService
	transformRegistry *transforms.Registry
	filterCodecFor    func(path string) driven.FilterCodec
)

// Services are the collaborators the commands need.
type Services struct {
	CorpusOpener    driving.CorpusOpener
	SettingsService driving.SettingsService
	Transforms      *transforms.Registry

	// FilterCodecFor picks the codec for a filter file path.
	FilterCodecFor func(path string) driven.FilterCodec
}

// ServiceFactory builds services once flags are parsed.
type ServiceFactory func(configDir string) (*Services, error)

var serviceFactory ServiceFactory

// SetServiceFactory registers the factory run before every command.
func SetServiceFactory(f ServiceFactory) {
	serviceFactory = f
}

// SetVersion sets the version reported by "cantus version".
func SetVersion(v string) {
	version = v
}

func setServices(s *Services) {
	corpusOpener = s.CorpusOpener
	settingsService = s.SettingsService
	transformRegistry = s.Transforms
	filterCodecFor = s.FilterCodecFor
}

func codecFor(path string) (driven.FilterCodec, error) {
	if filterCodecFor == nil {
		return nil, errors.New("filter codecs not configured")
	}
	return filterCodecFor(path), nil
}

var rootCmd = &cobra.Command{
	Use:   "cantus",
	Short: "Curate chant and source corpora",
	Long: `cantus loads chant and source tables exported from chant databases,
validates them, and runs auditable curation steps such as deduplication,
filtering and melody transforms before exporting the result.`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		if serviceFactory == nil {
			return nil
		}
		s, err := serviceFactory(configDir)
		if err != nil {
			return err
		}
		setServices(s)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print progress and debug output")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "settings directory (default ~/.cantus)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
