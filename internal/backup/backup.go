// Package backup keeps a bounded set of timestamped copies of the guide
// document next to it.
package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/alnah/go-qaguide/internal/fileutil"
)

// TimestampLayout is the time layout embedded in backup names.
const TimestampLayout = "20060102-150405"

// infix separates the document stem from the timestamp.
const infix = "-backup-"

// Name returns the backup name for path taken at t:
// "<stem>-backup-YYYYMMDD-HHMMSS<ext>" in the same directory.
func Name(path string, t time.Time) string {
	dir, base := filepath.Split(path)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return filepath.Join(dir, stem+infix+t.Format(TimestampLayout)+ext)
}

// List returns the existing backups of path, oldest first.
func List(path string) ([]string, error) {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	prefix := strings.TrimSuffix(base, ext) + infix

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing backups: %w", err)
	}

	var backups []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, ext) {
			continue
		}
		stamp := strings.TrimSuffix(strings.TrimPrefix(name, prefix), ext)
		if _, err := time.Parse(TimestampLayout, stamp); err != nil {
			continue
		}
		backups = append(backups, filepath.Join(dir, name))
	}
	// The fixed-width timestamp sorts chronologically.
	sort.Strings(backups)
	return backups, nil
}

// Rotate copies path to a new timestamped backup, first deleting the oldest
// backups so that at most keep remain afterwards. keep <= 0 disables backups.
// Returns the name of the new backup, or "" when disabled.
func Rotate(path string, keep int, now time.Time) (string, error) {
	if keep <= 0 {
		return "", nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("backing up %s: %w", path, err)
	}

	backups, err := List(path)
	if err != nil {
		return "", err
	}
	for len(backups) >= keep {
		if err := os.Remove(backups[0]); err != nil {
			return "", fmt.Errorf("removing old backup: %w", err)
		}
		backups = backups[1:]
	}

	name := Name(path, now)
	if err := fileutil.CopyFile(path, name, info.Mode().Perm()); err != nil {
		return "", fmt.Errorf("writing backup: %w", err)
	}
	return name, nil
}
