package main

// Notes:
// - runBuild: we test the write path (document replaced, backup rotated),
//   dry runs, stage dumps, and that failures leave the document untouched.
// - Progress output is only checked for the non-terminal case; buffers are
//   never terminals.

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	qaguide "github.com/alnah/go-qaguide"
	"github.com/alnah/go-qaguide/internal/backup"
)

// ---------------------------------------------------------------------------
// TestRunBuild - Write path
// ---------------------------------------------------------------------------

func TestRunBuild(t *testing.T) {
	t.Parallel()

	g := writeGuide(t, cliSource, cliDocument)
	env, _, stderr := testEnv()

	if err := runBuild(context.Background(), g.args(), env); err != nil {
		t.Fatalf("runBuild() error: %v\n%s", err, stderr)
	}

	got := readFile(t, g.document)
	for _, want := range []string{
		`id="node-1"`,
		`<span class="Minion">Poisoner</span>`,
		`<span class="Demon">Imp</span>`,
		`"Demon": [`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("document missing %q\n%s", want, got)
		}
	}
	if strings.Contains(got, "<p>old</p>") {
		t.Error("old container content kept")
	}

	// The backup holds the document as it was before the build.
	bak := backup.Name(g.document, fixedNow)
	if diff := cmp.Diff(cliDocument, readFile(t, bak)); diff != "" {
		t.Errorf("backup mismatch (-want +got):\n%s", diff)
	}

	if !strings.Contains(stderr.String(), "1 nodes, 3 highlights, 2 keywords indexed") {
		t.Errorf("summary missing from stderr:\n%s", stderr)
	}
}

func TestRunBuild_PositionalArgs(t *testing.T) {
	t.Parallel()

	g := writeGuide(t, cliSource, cliDocument)
	env, _, _ := testEnv()

	args := []string{g.source, g.document, "--keywords", g.keywords, "--no-backup", "--quiet"}
	if err := runBuild(context.Background(), args, env); err != nil {
		t.Fatalf("runBuild() error: %v", err)
	}
	if !strings.Contains(readFile(t, g.document), `id="node-1"`) {
		t.Error("document not rebuilt")
	}

	backups, err := backup.List(g.document)
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 0 {
		t.Errorf("--no-backup still wrote %v", backups)
	}
}

func TestRunBuild_DryRun(t *testing.T) {
	t.Parallel()

	g := writeGuide(t, cliSource, cliDocument)
	env, stdout, _ := testEnv()

	if err := runBuild(context.Background(), g.args("--dry-run"), env); err != nil {
		t.Fatalf("runBuild() error: %v", err)
	}
	if !strings.Contains(stdout.String(), `id="node-1"`) {
		t.Errorf("dry run did not print the result:\n%s", stdout)
	}
	if got := readFile(t, g.document); got != cliDocument {
		t.Errorf("dry run modified the document:\n%s", got)
	}
}

func TestRunBuild_Dump(t *testing.T) {
	t.Parallel()

	g := writeGuide(t, cliSource, cliDocument)
	dumpDir := filepath.Join(g.dir, "stages")
	env, _, _ := testEnv()

	if err := runBuild(context.Background(), g.args("--dump", dumpDir, "--no-backup"), env); err != nil {
		t.Fatalf("runBuild() error: %v", err)
	}

	entries, err := os.ReadDir(dumpDir)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	want := []string{
		"01-nodify.html",
		"02-merge.html",
		"03-highlight.html",
		"04-index.html",
		"05-emphasis.html",
		"06-normalize.html",
	}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("dump files mismatch (-want +got):\n%s", diff)
	}
	if readFile(t, filepath.Join(dumpDir, "06-normalize.html")) != readFile(t, g.document) {
		t.Error("final dump differs from the written document")
	}
}

// ---------------------------------------------------------------------------
// TestRunBuild_Failures - Nothing is written on failure
// ---------------------------------------------------------------------------

func TestRunBuild_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		source   string
		document string
		extra    []string
		wantErr  error
		wantCode int
	}{
		{
			name:     "malformed source",
			source:   "A answer first\nQ question\nA answer\n",
			document: cliDocument,
			wantErr:  qaguide.ErrMalformed,
			wantCode: ExitUsage,
		},
		{
			name:     "missing container",
			source:   cliSource,
			document: "<html><body><script>var keywords = {};</script></body></html>",
			wantErr:  qaguide.ErrContainerNotFound,
			wantCode: ExitStructure,
		},
		{
			name:     "missing index",
			source:   cliSource,
			document: "<html><body><main></main></body></html>",
			wantErr:  qaguide.ErrIndexNotFound,
			wantCode: ExitStructure,
		},
		{
			name:     "unknown grammar",
			source:   cliSource,
			document: cliDocument,
			extra:    []string{"--grammar", "markdown"},
			wantCode: ExitUsage,
		},
		{
			name:     "class selector",
			source:   cliSource,
			document: cliDocument,
			extra:    []string{"--container", ".vault"},
			wantCode: ExitUsage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			g := writeGuide(t, tt.source, tt.document)
			env, _, _ := testEnv()

			err := runBuild(context.Background(), g.args(tt.extra...), env)
			if err == nil {
				t.Fatal("runBuild() error = nil, want error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("runBuild() error = %v, want %v", err, tt.wantErr)
			}
			if code := exitCodeFor(err); code != tt.wantCode {
				t.Errorf("exitCodeFor() = %d, want %d (error: %v)", code, tt.wantCode, err)
			}
			if strings.Contains(err.Error(), "hint:") == (tt.wantErr == nil) {
				t.Errorf("hint presence unexpected in %q", err)
			}

			if got := readFile(t, g.document); got != tt.document {
				t.Errorf("failed build modified the document:\n%s", got)
			}
			backups, _ := backup.List(g.document)
			if len(backups) != 0 {
				t.Errorf("failed build wrote backups %v", backups)
			}
		})
	}
}

func TestRunBuild_MissingFiles(t *testing.T) {
	t.Parallel()

	g := writeGuide(t, cliSource, cliDocument)
	missing := filepath.Join(g.dir, "missing")

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"source", []string{"--source", missing, "--document", g.document}, qaguide.ErrSourceNotFound},
		{"document", []string{"--source", g.source, "--document", missing}, qaguide.ErrDocumentNotFound},
		{"vocabulary", g.args("--keywords", missing), qaguide.ErrVocabularyNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, _, _ := testEnv()
			err := runBuild(context.Background(), tt.args, env)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("runBuild() error = %v, want %v", err, tt.wantErr)
			}
			if code := exitCodeFor(err); code != ExitIO {
				t.Errorf("exitCodeFor() = %d, want %d", code, ExitIO)
			}
		})
	}
}

func TestRunBuild_Lenient(t *testing.T) {
	t.Parallel()

	doc := "<html><body><main></main></body></html>"
	g := writeGuide(t, cliSource, doc)
	env, _, stderr := testEnv()

	if err := runBuild(context.Background(), g.args("--lenient", "--no-backup"), env); err != nil {
		t.Fatalf("runBuild() error: %v", err)
	}
	if !strings.Contains(readFile(t, g.document), `id="node-1"`) {
		t.Error("document not rebuilt")
	}
	if !strings.Contains(stderr.String(), "stage skipped") {
		t.Errorf("skipped stage not logged:\n%s", stderr)
	}
}

func TestRunBuild_UsageErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"--nope"}},
		{"too many args", []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, _, _ := testEnv()
			err := runBuild(context.Background(), tt.args, env)
			if !errors.Is(err, ErrUsage) {
				t.Errorf("runBuild() error = %v, want ErrUsage", err)
			}
		})
	}
}
