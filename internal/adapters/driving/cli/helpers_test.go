package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cantus-corpus/internal/adapters/driven/config/file"
	"github.com/custodia-labs/cantus-corpus/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/cantus-corpus/internal/adapters/driven/tabular"
	"github.com/custodia-labs/cantus-corpus/internal/core/services"
	"github.com/custodia-labs/cantus-corpus/internal/transforms"
)

const testChants = `cantus_id,incipit,siglum,srclink,chantlink,folio,db,genre,melody
001,Ave maria,A-1,s1,c1,1r,CD,A,1---g--h---3
001,Ave maria,A-1,s1,c1,1r,CD,A,1---g--h---3
002,Salve regina,A-1,s1,c2,1v,CD,R,
003,Puer natus,B-2,s2,c3,2r,CD,In,1---Hj---3
`

const testSources = `title,srclink,siglum,century,provenance,cursus
Antiphonale A,s1,A-1,12th century,Paris,Secular
Graduale B,s2,B-2,1350-1400,Rome,Monastic
`

// setupTestServices writes a small corpus to a temp dir and wires real
// adapters around it. It returns the directory.
func setupTestServices(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "chants.csv"), testChants)
	writeTestFile(t, filepath.Join(dir, "sources.csv"), testSources)

	csv := tabular.NewCSV()
	setServices(&Services{
		CorpusOpener:    services.NewCorpusOpener(csv, csv, nil, file.YAMLFilterCodec{}),
		SettingsService: services.NewSettingsService(memory.NewConfigStore()),
		Transforms:      transforms.DefaultRegistry(),
		FilterCodecFor:  file.FilterCodecFor,
	})
	t.Cleanup(func() { setServices(&Services{}) })
	return dir
}

// executeCommand runs the root command with args and returns its output.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

// resetFlags restores every flag to its default so runs do not leak.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}
