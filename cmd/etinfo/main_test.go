package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArthurRichard/energytrace/internal/logging"
)

func writeCSVCapture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	header := "Time(ms),Current(nA),Energy(uJ)\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "run.csv"), []byte(header+"1,10,100\n2,20,200\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "run_0.csv"), []byte(header+"3,5,300\n"), 0o600))

	return filepath.Join(dir, "run.csv")
}

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Cleanup(func() { logging.InitWithHandler(logging.Discard().Handler()) })

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), args, &stdout, &stderr)

	return stdout.String(), stderr.String(), err
}

func TestRun_Text(t *testing.T) {
	path := writeCSVCapture(t)

	out, _, err := runCLI(t, path)
	require.NoError(t, err)

	assert.Contains(t, out, path)
	assert.Regexp(t, `format:\s+CSV`, out)
	assert.Regexp(t, `shards:\s+2`, out)
	assert.Regexp(t, `samples:\s+3`, out)
	assert.Regexp(t, `timestamp:\s+\[1000, 3000\]`, out)
	assert.Regexp(t, `current:\s+\[5, 20\]`, out)
	assert.Contains(t, out, "LZ4")
}

func TestRun_JSON(t *testing.T) {
	path := writeCSVCapture(t)

	out, _, err := runCLI(t, "-json", "-compression", "zstd", "-delta", "-workers", "2", path, path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)

	var s summary
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &s))
	assert.Equal(t, 3, s.Samples)
	assert.Equal(t, "Zstd", s.Compression)
	assert.Equal(t, int64(3*3*4), s.RawBytes)
	require.Len(t, s.Channels, 3)
	assert.Equal(t, uint32(100), s.Channels[2].Min)
	assert.Equal(t, uint32(300), s.Channels[2].Max)
}

func TestRun_ConfigFile(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "etinfo.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("compression: s2\nlog:\n  level: warn\n"), 0o600))

	out, _, err := runCLI(t, "-config", cfgPath, writeCSVCapture(t))
	require.NoError(t, err)
	assert.Contains(t, out, "S2")
}

func TestRun_Errors(t *testing.T) {
	_, stderr, err := runCLI(t)
	require.Error(t, err)
	assert.Contains(t, stderr, "usage")

	_, _, err = runCLI(t, "-compression", "brotli", writeCSVCapture(t))
	require.Error(t, err)

	_, _, err = runCLI(t, filepath.Join(t.TempDir(), "nothing.csv"))
	require.Error(t, err)

	_, _, err = runCLI(t, "-bogus")
	require.Error(t, err)
}

func TestRun_Version(t *testing.T) {
	out, _, err := runCLI(t, "-version")
	require.NoError(t, err)
	assert.Equal(t, "etinfo dev\n", out)
}
