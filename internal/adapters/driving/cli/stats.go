package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cantus-corpus/internal/core/domain"
)

var statsFlags corpusFlags

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Load a corpus and print its size",
	Long: `Load a corpus and print how many chants, sources and melodies it holds.

The widest melody range is measured in steps below and above the final note.`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	statsFlags.bind(statsCmd)
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	corpus, err := statsFlags.open(cmd)
	if err != nil {
		return err
	}

	melodies := corpus.Melodies()
	rows := []kv{
		{"Chants", len(corpus.Chants())},
		{"Sources", len(corpus.Sources())},
		{"Melodies", len(melodies)},
		{"Editable", corpus.Editable()},
	}
	if widest, ok := widestRange(melodies); ok {
		rows = append(rows, kv{"Widest range", widest})
	}
	cmd.Print(renderSummary("Corpus", rows))
	return nil
}

// widestRange describes the melody spanning the most steps.
func widestRange(melodies []*domain.Melody) (string, bool) {
	var best *domain.Melody
	bestBelow, bestAbove := 0, 0
	for _, m := range melodies {
		below, above, ok := m.Range()
		if !ok {
			continue
		}
		if best == nil || below+above > bestBelow+bestAbove {
			best, bestBelow, bestAbove = m, below, above
		}
	}
	if best == nil {
		return "", false
	}
	return fmt.Sprintf("%d steps (-%d/+%d, %s)", bestBelow+bestAbove, bestBelow, bestAbove, best.ChantLink()), true
}
