package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	dateLayout = "2006-01-02"
	entryExt   = ".md"

	dirPerm  = 0o755
	filePerm = 0o644
)

// now is the clock entries are dated by.
var now = time.Now

func getEntryDir(root string, day time.Time) string {
	return filepath.Join(root, day.Format(filepath.Join("2006", "01")))
}

// getEntryFilename returns root/YYYY/MM/MMDD.md for the given day.
func getEntryFilename(root string, day time.Time) string {
	return filepath.Join(getEntryDir(root, day), day.Format("0102")+entryExt)
}

func parseDay(s string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD: %w", s, err)
	}
	return t, nil
}

func expandHome(p string) (string, error) {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve user home dir: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~")), nil
}

// writeEntry creates the entry's directory tree and writes content to it,
// replacing whatever the file held before.
func writeEntry(filename, content string) (err error) {
	if err := os.MkdirAll(filepath.Dir(filename), dirPerm); err != nil {
		return fmt.Errorf("create entry dir: %w", err)
	}
	f, err := os.OpenFile(filename, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, filePerm)
	if err != nil {
		return fmt.Errorf("open entry: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("close entry: %w", cerr))
		}
	}()
	if _, err := io.WriteString(f, content); err != nil {
		return fmt.Errorf("write entry: %w", err)
	}
	return nil
}

// createEntry writes the entry for day under root and reports it on w.
func createEntry(w io.Writer, root string, day time.Time) (string, error) {
	filename := getEntryFilename(root, day)
	if err := writeEntry(filename, renderEntry(day)); err != nil {
		return "", err
	}
	fmt.Fprintf(w, "✅ TIL 파일 생성됨: %s\n", filename)
	fmt.Fprintf(w, "[%s] TIL created\n", now().Format("2006-01-02 15:04:05"))
	return filename, nil
}
