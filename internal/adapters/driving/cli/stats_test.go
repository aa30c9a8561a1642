package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cantus-corpus/internal/core/domain"
)

func TestStatsCmd_RequiresChants(t *testing.T) {
	setupTestServices(t)

	_, err := executeCommand(t, "stats")

	require.Error(t, err)
	assert.Contains(t, err.Error(), `"chants" not set`)
}

func TestStatsCmd_PrintsCounts(t *testing.T) {
	dir := setupTestServices(t)

	out, err := executeCommand(t, "stats",
		"--chants", filepath.Join(dir, "chants.csv"),
		"--sources", filepath.Join(dir, "sources.csv"))

	require.NoError(t, err)
	assert.Contains(t, out, "Corpus")
	assert.Regexp(t, `Chants:\s+4`, out)
	assert.Regexp(t, `Sources:\s+2`, out)
	assert.Regexp(t, `Melodies:\s+3`, out)
	assert.Regexp(t, `Editable:\s+false`, out)
	assert.Regexp(t, `Widest range:\s+1 steps \(-1/\+0, c1\)`, out)
}

func TestStatsCmd_NoRangeWithoutMelodies(t *testing.T) {
	dir := setupTestServices(t)
	plain := filepath.Join(dir, "plain.csv")
	writeTestFile(t, plain, "cantus_id,incipit,siglum,srclink,chantlink,folio,db\n001,Ave,A-1,s1,c1,1r,CD\n")

	out, err := executeCommand(t, "stats", "--chants", plain)

	require.NoError(t, err)
	assert.Regexp(t, `Melodies:\s+0`, out)
	assert.NotContains(t, out, "Widest range")
}

func TestStatsCmd_MissingFile(t *testing.T) {
	dir := setupTestServices(t)

	_, err := executeCommand(t, "stats", "--chants", filepath.Join(dir, "nope.csv"))

	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestStatsCmd_SettingsDefaultsApply(t *testing.T) {
	dir := setupTestServices(t)
	require.NoError(t, settingsService.Set("corpus.editable", "true"))

	out, err := executeCommand(t, "stats", "--chants", filepath.Join(dir, "chants.csv"))
	require.NoError(t, err)
	assert.Regexp(t, `Editable:\s+true`, out)

	out, err = executeCommand(t, "stats", "--chants", filepath.Join(dir, "chants.csv"), "--editable=false")
	require.NoError(t, err)
	assert.Regexp(t, `Editable:\s+false`, out)
}

func TestStatsCmd_DatasetDir(t *testing.T) {
	dir := setupTestServices(t)

	out, err := executeCommand(t, "stats",
		"--dataset-dir", dir,
		"--chants", "chants.csv",
		"--sources", "sources.csv")
	require.NoError(t, err)
	assert.Regexp(t, `Chants:\s+4`, out)

	require.NoError(t, settingsService.Set("loader.dataset_dir", dir))
	out, err = executeCommand(t, "stats", "--chants", "chants.csv")
	require.NoError(t, err)
	assert.Regexp(t, `Chants:\s+4`, out)
}

func TestStatsCmd_ReferentialFlags(t *testing.T) {
	dir := setupTestServices(t)
	onlyS1 := filepath.Join(dir, "s1.csv")
	writeTestFile(t, onlyS1, "title,srclink,siglum\nAntiphonale A,s1,A-1\n")

	_, err := executeCommand(t, "stats",
		"--chants", filepath.Join(dir, "chants.csv"),
		"--sources", onlyS1,
		"--check-missing-sources")
	assert.ErrorIs(t, err, domain.ErrReferentialIntegrity)

	out, err := executeCommand(t, "stats",
		"--chants", filepath.Join(dir, "chants.csv"),
		"--sources", onlyS1,
		"--check-missing-sources", "--create-missing-sources")
	require.NoError(t, err)
	assert.Regexp(t, `Sources:\s+2`, out)
}
