package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCmd(t *testing.T, cmd string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := run(cmd, args, &out, io.Discard)
	return out.String(), err
}

func TestRunNew(t *testing.T) {
	isolate(t)
	root := t.TempDir()
	fixClock(t, time.Date(2024, 3, 7, 22, 1, 0, 0, time.Local))

	out, err := runCmd(t, "new", "-root", root)
	require.NoError(t, err)

	f := filepath.Join(root, "2024", "03", "0307.md")
	assert.FileExists(t, f)
	assert.True(t, strings.HasPrefix(out, "✅ TIL 파일 생성됨: "+f+"\n"))
	assert.Contains(t, out, "[2024-03-07 22:01:00] TIL created")
}

func TestRunNewFromEnv(t *testing.T) {
	isolate(t)
	root := t.TempDir()
	t.Setenv(rootEnv, root)

	_, err := runCmd(t, "new", "-date", "2023-12-31")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(root, "2023", "12", "1231.md"))
}

func TestRunNewInvalidDate(t *testing.T) {
	isolate(t)
	root := t.TempDir()

	_, err := runCmd(t, "new", "-root", root, "-date", "07/03/2024")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid date")

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRunPath(t *testing.T) {
	isolate(t)
	root := t.TempDir()

	out, err := runCmd(t, "path", "-root", root, "-date", "2024-03-07")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "2024", "03", "0307.md")+"\n", out)
	assert.NoDirExists(t, filepath.Join(root, "2024"))
}

func TestRunReadCommands(t *testing.T) {
	isolate(t)
	root := t.TempDir()
	_, err := runCmd(t, "new", "-root", root, "-date", "2024-03-07")
	require.NoError(t, err)
	f := filepath.Join(root, "2024", "03", "0307.md")

	out, err := runCmd(t, "check", "-root", root, "-date", "2024-03-07")
	require.NoError(t, err)
	assert.Equal(t, "ok: "+f+" (2024-03-07)\n", out)

	out, err = runCmd(t, "headings", f)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "## 📅 2024-03-07\n"))

	out, err = runCmd(t, "show", "-root", root, "-date", "2024-03-07")
	require.NoError(t, err)
	assert.Equal(t, shownEntry, out)

	out, err = runCmd(t, "ast", f)
	require.NoError(t, err)
	assert.Contains(t, out, "Document")
}

func TestRunCheckBrokenEntry(t *testing.T) {
	isolate(t)
	f := filepath.Join(t.TempDir(), "0307.md")
	require.NoError(t, os.WriteFile(f, []byte("## 📅 2024-03-07\n\n### "+sectionLearned+"\n"), 0o644))

	_, err := runCmd(t, "check", f)
	require.Error(t, err)
	assert.Contains(t, err.Error(), f)
	assert.Contains(t, err.Error(), sectionFelt)
}

func TestRunMissingEntry(t *testing.T) {
	isolate(t)
	_, err := runCmd(t, "headings", "-root", t.TempDir(), "-date", "2024-03-07")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRunConfig(t *testing.T) {
	isolate(t)
	out, err := runCmd(t, "config", "-root", "/srv/til")
	require.NoError(t, err)

	var cfg config
	require.NoError(t, json.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, "/srv/til", cfg.Root)
	assert.Equal(t, sourceFlag, cfg.Source)
}

func TestRunCheckWrongDay(t *testing.T) {
	isolate(t)
	root := t.TempDir()
	d := day(t, "2024-03-07")
	f := getEntryFilename(root, d)
	require.NoError(t, writeEntry(f, renderEntry(day(t, "1999-01-01"))))

	_, err := runCmd(t, "check", "-root", root, "-date", "2024-03-07")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dated 1999-01-01, want 2024-03-07")

	// An explicit file is only checked for structure.
	out, err := runCmd(t, "check", f)
	require.NoError(t, err)
	assert.Equal(t, "ok: "+f+" (1999-01-01)\n", out)
}

func TestRunUsageErrors(t *testing.T) {
	isolate(t)
	root := t.TempDir()

	tests := []struct {
		cmd  string
		args []string
	}{
		{"rollover", nil},
		{"new", []string{"-bogus"}},
		{"new", []string{"-root", root, "-date", "2024-03-07", "path"}},
		{"path", []string{"-root", root, "notes.md"}},
		{"config", []string{"-root", root, "junk.md"}},
		{"headings", []string{"a.md", "b.md"}},
		{"new", []string{"-root", root, "-log-level", "verbose"}},
	}
	for _, tt := range tests {
		t.Run(tt.cmd+" "+strings.Join(tt.args, " "), func(t *testing.T) {
			out, err := runCmd(t, tt.cmd, tt.args...)
			assert.ErrorIs(t, err, errUsage)
			assert.Empty(t, out)
		})
	}

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRunHelp(t *testing.T) {
	for _, args := range [][]string{{"help"}, {"new", "--help"}, {"new", "-h"}, {"check", "-help"}} {
		out, err := runCmd(t, args[0], args[1:]...)
		require.NoError(t, err, args)
		assert.Equal(t, usage, out, args)
	}
}
