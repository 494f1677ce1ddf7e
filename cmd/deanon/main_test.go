package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/handiism/deanon/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestConfigInit(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "conf", "deanon.yaml")

	out, err := execute(t, "config", "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path)

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultSettings(), loaded)

	_, err = execute(t, "config", "init", path)
	assert.ErrorContains(t, err, "already exists")
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	pending := filepath.Join(dir, "pending.csv")
	require.NoError(t, os.WriteFile(pending, []byte("id,open_nps_reason\n1,ok\n2,XXX and XXX\n"), 0644))
	done := filepath.Join(dir, "done.csv")
	require.NoError(t, os.WriteFile(done, []byte("id,open_nps_reason\n1,ok\n"), 0644))

	out, err := execute(t, "scan", "--log-file", filepath.Join(dir, "scan.log"), pending, done)
	require.NoError(t, err)
	assert.Contains(t, out, "FIRST UNRESOLVED")
	assert.Contains(t, out, "pending.csv")
	assert.Contains(t, out, "done.csv")

	_, err = execute(t, "scan", "--strict", "--log-file", filepath.Join(dir, "scan.log"), pending, done)
	assert.ErrorContains(t, err, "1 of 2 files still contain markers")

	_, err = execute(t, "scan", "--strict", "--log-file", filepath.Join(dir, "scan.log"), done)
	assert.NoError(t, err)

	logData, err := os.ReadFile(filepath.Join(dir, "scan.log"))
	require.NoError(t, err)
	assert.Contains(t, string(logData), "scan finished")
}

func TestScan_MissingFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	_, err := execute(t, "scan", "--log-file", filepath.Join(dir, "scan.log"), filepath.Join(dir, "missing.csv"))
	assert.ErrorContains(t, err, "1 of 1 files could not be scanned")
}

func TestSetup_FlagsOverrideConfig(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	cfgPath := filepath.Join(dir, "deanon.yaml")
	settings := config.DefaultSettings()
	settings.TextColumn = "from_file"
	settings.LogFile = filepath.Join(dir, "deanon.log")
	require.NoError(t, settings.Save(cfgPath))

	csvPath := filepath.Join(dir, "input.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("id,comment\n1,XXX\n"), 0644))

	// Column from the config does not exist, the flag fixes it
	_, err := execute(t, "scan", "--config", cfgPath, "--strict", csvPath)
	assert.ErrorContains(t, err, "could not be scanned")

	_, err = execute(t, "scan", "--config", cfgPath, "--column", "comment", "--strict", csvPath)
	assert.ErrorContains(t, err, "still contain markers")
}

func TestSetup_InvalidSettings(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	_, err := execute(t, "scan", "--concurrency", "0", "--log-file", filepath.Join(dir, "x.log"), "a.csv")
	assert.ErrorContains(t, err, "max_concurrent_scans")
}

func TestReview_MissingInput(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	_, err := execute(t, "--log-file", filepath.Join(dir, "x.log"), filepath.Join(dir, "missing.csv"))
	assert.ErrorContains(t, err, "load input")
}
