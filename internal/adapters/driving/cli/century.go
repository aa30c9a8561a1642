package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cantus-corpus/internal/core/domain"
)

var centuryCmd = &cobra.Command{
	Use:   "century TEXT",
	Short: "Print the numeric century derived from a century description",
	Example: `  cantus century "12th century"      # 12
  cantus century "1150-1200"         # 12`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, ok := domain.NumericCentury(args[0])
		if !ok {
			return fmt.Errorf("%w: no century in %q", domain.ErrInvalidInput, args[0])
		}
		cmd.Println(n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(centuryCmd)
}
