package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cantus-corpus/internal/core/domain"
	"github.com/custodia-labs/cantus-corpus/internal/core/ports/driving"
)

var curateFlags corpusFlags

var (
	curateKeepDuplicates bool
	curateKeepMelodic    bool
	curateFilterFile     string
	curateMinChants      int
	curateDropEmpty      bool
	curateTransforms     []string
	curateOutChants      string
	curateOutSources     string
)

var curateCmd = &cobra.Command{
	Use:   "curate",
	Short: "Run curation steps and export the result",
	Long: `Load a corpus, run the selected curation steps and export chants and sources.

Steps run in this order:
  1. drop duplicate chants and sources (unless --keep-duplicates)
  2. keep only chants with melodies (--keep-melodic)
  3. apply a filter file (--filter)
  4. drop sources with fewer chants than --min-chants, with their chants
  5. drop sources no chant refers to (--drop-empty-sources)
  6. rewrite melodies (--transform, needs --editable): clean,
     expand_accidentals, normalize_liquescents, discard_differentia,
     strip_boundaries

The operation history is printed when done.`,
	Args: cobra.NoArgs,
	RunE: runCurate,
}

func init() {
	curateFlags.bind(curateCmd)
	flags := curateCmd.Flags()
	flags.BoolVar(&curateKeepDuplicates, "keep-duplicates", false, "skip deduplication")
	flags.BoolVar(&curateKeepMelodic, "keep-melodic", false, "keep only chants with a melody")
	flags.StringVar(&curateFilterFile, "filter", "", "filter file (.yaml or .toml)")
	flags.IntVar(&curateMinChants, "min-chants", 0, "drop sources with fewer chants (0 disables)")
	flags.BoolVar(&curateDropEmpty, "drop-empty-sources", false, "drop sources without chants")
	flags.StringSliceVar(&curateTransforms, "transform", nil, "melody transforms to run, in order")
	flags.StringVarP(&curateOutChants, "out-chants", "o", "", "exported chants file (required)")
	flags.StringVar(&curateOutSources, "out-sources", "", "exported sources file")
	_ = curateCmd.MarkFlagRequired("out-chants")
	rootCmd.AddCommand(curateCmd)
}

func runCurate(cmd *cobra.Command, _ []string) error {
	var filter *domain.Filter
	if curateFilterFile != "" {
		f, err := readFilterFile(curateFilterFile)
		if err != nil {
			return err
		}
		filter = f
	}

	corpus, err := curateFlags.open(cmd)
	if err != nil {
		return err
	}
	if len(curateTransforms) > 0 && !corpus.Editable() {
		return fmt.Errorf("%w: --transform needs an editable corpus (use --editable)", domain.ErrPermission)
	}

	steps := []func() error{}
	if !curateKeepDuplicates {
		steps = append(steps, corpus.DropDuplicateChants, corpus.DropDuplicateSources)
	}
	if curateKeepMelodic {
		steps = append(steps, corpus.KeepMelodicChants)
	}
	if filter != nil {
		steps = append(steps, func() error { return corpus.ApplyFilter(filter) })
	}
	if curateMinChants > 0 {
		steps = append(steps, func() error { return corpus.DropSmallSourcesData(curateMinChants) })
	}
	if curateDropEmpty {
		steps = append(steps, corpus.DropEmptySources)
	}
	if len(curateTransforms) > 0 {
		if transformRegistry == nil {
			return errors.New("melody transforms not configured")
		}
		pipeline, err := transformRegistry.BuildPipeline(curateTransforms...)
		if err != nil {
			return err
		}
		steps = append(steps, func() error { return corpus.TransformMelodies(cmd.Context(), pipeline) })
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}

	report := corpus.Export(cmd.Context(), curateOutChants, curateOutSources)
	printReport(cmd, corpus, report)
	cmd.Println()
	cmd.Print(renderHistory(corpus.History()))
	return report.Err()
}

func printReport(cmd *cobra.Command, corpus driving.Corpus, report driving.ExportReport) {
	rows := []kv{{"Chants", fmt.Sprintf("%d -> %s", report.ChantsWritten, curateOutChants)}}
	if report.ChantsErr != nil {
		rows[0].value = errorStyle.Render(report.ChantsErr.Error())
	}
	if curateOutSources != "" {
		switch {
		case report.SourcesErr != nil:
			rows = append(rows, kv{"Sources", errorStyle.Render(report.SourcesErr.Error())})
		case len(corpus.Sources()) == 0:
			rows = append(rows, kv{"Sources", "none to export"})
		default:
			rows = append(rows, kv{"Sources", fmt.Sprintf("%d -> %s", report.SourcesWritten, curateOutSources)})
		}
	}
	cmd.Print(renderSummary("Export", rows))
}

func readFilterFile(path string) (*domain.Filter, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrConfiguration, err)
	}
	defer f.Close()

	codec, err := codecFor(path)
	if err != nil {
		return nil, err
	}
	filter := domain.NewFilter("")
	if err := codec.Decode(f, filter); err != nil {
		return nil, fmt.Errorf("reading filter %s: %w", path, err)
	}
	return filter, nil
}
