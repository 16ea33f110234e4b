package veil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger = zerolog.Nop()
	os.Exit(m.Run())
}

func TestScrubFile_InPlaceYAML(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte("db:\n  password: hunter2\n  host: localhost\n"), 0o644))

	require.NoError(t, scrubFile(p, p, scrubOptions{placeholder: "<REDACTED>"}))

	b, err := os.ReadFile(p)
	require.NoError(t, err)
	out := string(b)
	assert.Contains(t, out, "password: <REDACTED>")
	assert.Contains(t, out, "host: localhost")
	assert.NotContains(t, out, "hunter2")
}

func TestScrubFile_SeparateOutputJSON(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "config.yaml")
	out := filepath.Join(dir, "out.json")
	require.NoError(t, os.WriteFile(in, []byte("api_key: abc123\nname: svc\n"), 0o644))

	require.NoError(t, scrubFile(in, out, scrubOptions{placeholder: "****"}))

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"api_key": "****"`)
	assert.Contains(t, string(b), `"name": "svc"`)
	// input untouched
	orig, err := os.ReadFile(in)
	require.NoError(t, err)
	assert.Contains(t, string(orig), "abc123")
}

func TestScrubFile_DefaultPlaceholderLiteralInJSON(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "config.json")
	in := `{"db": {"password": "hunter2", "host": "localhost"}}`
	require.NoError(t, os.WriteFile(p, []byte(in), 0o644))

	require.NoError(t, scrubFile(p, p, scrubOptions{}))

	b, err := os.ReadFile(p)
	require.NoError(t, err)
	out := string(b)
	assert.Contains(t, out, `"password": "<REDACTED>"`, "angle brackets must not be HTML-escaped")
	assert.NotContains(t, out, `<`)
	assert.Contains(t, out, `"host": "localhost"`)
}

func TestScrubFile_UnrecognizedFormatLeavesFileAlone(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "garbage.yaml")
	content := []byte("{this is: not: valid: anything")
	require.NoError(t, os.WriteFile(p, content, 0o644))

	err := scrubFile(p, p, scrubOptions{})
	require.Error(t, err)

	b, rerr := os.ReadFile(p)
	require.NoError(t, rerr)
	assert.Equal(t, content, b, "failed load must not modify the file")
}

func TestRunScrub_NoColorFromLocalConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".veil.yml"), []byte("no_color: true\n"), 0o644))
	p := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte("password: x\n"), 0o644))
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(wd)
		flagNoColor = false
		logger = zerolog.Nop()
	})

	require.NoError(t, runScrub(nil, []string{p}))
	assert.True(t, flagNoColor, "no_color from the config file must reach the logger")
}

func TestScrubFile_SecondRunSkipsWrite(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte("token: abc\n"), 0o644))

	require.NoError(t, scrubFile(p, p, scrubOptions{}))
	first, err := os.Stat(p)
	require.NoError(t, err)

	require.NoError(t, scrubFile(p, p, scrubOptions{}))
	second, err := os.Stat(p)
	require.NoError(t, err)
	assert.Equal(t, first.ModTime(), second.ModTime(), "a clean rerun should not rewrite the file")
}

func TestScrubFile_Backup(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte("secret: s3cr3t\n"), 0o644))

	require.NoError(t, scrubFile(p, p, scrubOptions{backup: true}))

	bak, err := os.ReadFile(p + ".bak")
	require.NoError(t, err)
	assert.Equal(t, "secret: s3cr3t\n", string(bak))
}

func TestScrubFile_DryRun(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "config.yaml")
	content := []byte("password: hunter2\n")
	require.NoError(t, os.WriteFile(p, content, 0o644))

	require.NoError(t, scrubFile(p, p, scrubOptions{dryRun: true}))

	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, content, b)
}

func TestOutputFormat_ForceOverridesExtension(t *testing.T) {
	f, known := outputFormat("config.yaml", "json")
	assert.True(t, known)
	assert.Equal(t, "json", f.String())

	f, known = outputFormat("config.weird", "")
	assert.False(t, known)
	assert.Equal(t, "yaml", f.String())
}

func TestExpandArgs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), []byte("x: 1\n"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "b.yaml"), []byte("y: 2\n"), 0o644))

	got, err := expandArgs([]string{filepath.Join(dir, "**", "*.yaml")})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	// plain missing path passes through so the read error surfaces later
	got, err = expandArgs([]string{"no-such-file.yaml"})
	require.NoError(t, err)
	assert.Equal(t, []string{"no-such-file.yaml"}, got)

	_, err = expandArgs([]string{filepath.Join(dir, "*.nope")})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "matched no files"))
}
