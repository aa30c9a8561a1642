package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cantus-corpus/internal/core/domain"
)

var (
	filterIncludes []string
	filterExcludes []string
	filterOutput   string
	filterFormat   string
)

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Create and inspect filter files",
}

var filterNewCmd = &cobra.Command{
	Use:   "new NAME",
	Short: "Write a new filter file",
	Long: `Write a filter file from include and exclude constraints.

Each --include and --exclude takes FIELD=VALUE[,VALUE...] and may be repeated.
Chant fields: ` + strings.Join(domain.ChantFilterFields, ", ") + `
Source fields: ` + strings.Join(domain.SourceFilterFields, ", ") + `

Without --output the filter is printed in --format.`,
	Args: cobra.ExactArgs(1),
	RunE: runFilterNew,
}

var filterShowCmd = &cobra.Command{
	Use:   "show FILE",
	Short: "Print the configuration of a filter file",
	Args:  cobra.ExactArgs(1),
	RunE:  runFilterShow,
}

func init() {
	flags := filterNewCmd.Flags()
	flags.StringArrayVar(&filterIncludes, "include", nil, "FIELD=V1,V2 values to keep")
	flags.StringArrayVar(&filterExcludes, "exclude", nil, "FIELD=V1,V2 values to drop")
	flags.StringVarP(&filterOutput, "output", "o", "", "filter file to write (.yaml or .toml)")
	flags.StringVar(&filterFormat, "format", "yaml", "format used when printing (yaml or toml)")

	filterCmd.AddCommand(filterNewCmd)
	filterCmd.AddCommand(filterShowCmd)
	rootCmd.AddCommand(filterCmd)
}

func runFilterNew(cmd *cobra.Command, args []string) error {
	filter := domain.NewFilter(args[0])
	if err := addConstraints(filterIncludes, filter.AddValueInclude); err != nil {
		return err
	}
	if err := addConstraints(filterExcludes, filter.AddValueExclude); err != nil {
		return err
	}

	path := filterOutput
	if path == "" {
		path = "filter." + filterFormat
	}
	codec, err := codecFor(path)
	if err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if filterOutput != "" {
		f, err := os.Create(filterOutput)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	if err := codec.Encode(w, filter); err != nil {
		return err
	}
	if filterOutput != "" {
		cmd.Printf("Wrote filter %q to %s\n", filter.Name(), filterOutput)
	}
	return nil
}

func runFilterShow(cmd *cobra.Command, args []string) error {
	filter, err := readFilterFile(args[0])
	if err != nil {
		return err
	}
	cmd.Println(filter.String())
	return nil
}

// addConstraints parses FIELD=V1,V2 arguments into add.
func addConstraints(args []string, add func(field string, values ...string) error) error {
	for _, arg := range args {
		field, list, ok := strings.Cut(arg, "=")
		if !ok || field == "" || list == "" {
			return fmt.Errorf("%w: expected FIELD=VALUE[,VALUE...], got %q", domain.ErrInvalidInput, arg)
		}
		values := strings.Split(list, ",")
		for i := range values {
			values[i] = strings.TrimSpace(values[i])
		}
		if err := add(strings.TrimSpace(field), values...); err != nil {
			return err
		}
	}
	return nil
}
