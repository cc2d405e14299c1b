package backup

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

var base = time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)

func writeDoc(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "guide.html")
	if err := os.WriteFile(path, []byte("<html></html>"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestName(t *testing.T) {
	t.Parallel()

	got := Name(filepath.Join("docs", "guide.html"), base)
	want := filepath.Join("docs", "guide-backup-20240309-140507.html")
	if got != want {
		t.Errorf("Name() = %q, want %q", got, want)
	}
}

func TestList_IgnoresForeignFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeDoc(t, dir)
	for _, name := range []string{
		"guide-backup-20240101-000000.html",
		"guide-backup-notadate.html",
		"other-backup-20240101-000000.html",
		"guide-backup-20240101-000000.txt",
		"guide-backup-20231231-235959.html",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
			t.Fatal(err)
		}
	}

	got, err := List(path)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	want := []string{
		filepath.Join(dir, "guide-backup-20231231-235959.html"),
		filepath.Join(dir, "guide-backup-20240101-000000.html"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}
}

func TestRotate_NeverExceedsKeep(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeDoc(t, dir)
	const keep = 3

	var last string
	for i := range 6 {
		name, err := Rotate(path, keep, base.Add(time.Duration(i)*time.Minute))
		if err != nil {
			t.Fatalf("Rotate() #%d error: %v", i, err)
		}
		last = name

		backups, err := List(path)
		if err != nil {
			t.Fatal(err)
		}
		if len(backups) > keep {
			t.Fatalf("after rotation %d: %d backups, want at most %d", i, len(backups), keep)
		}
	}

	backups, _ := List(path)
	if len(backups) != keep {
		t.Errorf("backups = %d, want %d", len(backups), keep)
	}
	if backups[len(backups)-1] != last {
		t.Errorf("newest backup = %q, want %q", backups[len(backups)-1], last)
	}
	if backups[0] != Name(path, base.Add(3*time.Minute)) {
		t.Errorf("oldest kept backup = %q", backups[0])
	}

	data, err := os.ReadFile(last)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "<html></html>" {
		t.Errorf("backup content = %q", data)
	}
}

func TestRotate_Disabled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeDoc(t, dir)

	for _, keep := range []int{0, -1} {
		name, err := Rotate(path, keep, base)
		if err != nil || name != "" {
			t.Errorf("Rotate(keep=%d) = %q, %v; want no backup", keep, name, err)
		}
	}
	if backups, _ := List(path); len(backups) != 0 {
		t.Errorf("disabled rotation wrote %d backups", len(backups))
	}
}

func TestRotate_MissingDocument(t *testing.T) {
	t.Parallel()

	if _, err := Rotate(filepath.Join(t.TempDir(), "missing.html"), 2, base); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Rotate() error = %v, want os.ErrNotExist", err)
	}
}
