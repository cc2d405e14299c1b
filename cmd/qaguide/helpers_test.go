package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// fixedNow is the clock used by CLI tests.
var fixedNow = time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

const cliSource = "Q Can the Poisoner poison the Imp?\nA Yes, the Imp can be poisoned.\n"

const cliVocabulary = `highlightOrder: [Minion, Demon]
categories:
  - name: Minion
    terms: [Poisoner]
  - name: Demon
    terms: [Imp]
`

const cliDocument = `<!DOCTYPE html>
<html>
<body>
<main><p>old</p></main>
<script>
  var keywords = {};
</script>
</body>
</html>
`

// testEnv returns an Environment writing to buffers with a fixed clock.
func testEnv() (*Environment, *bytes.Buffer, *bytes.Buffer) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	return &Environment{
		Now:    func() time.Time { return fixedNow },
		Stdout: stdout,
		Stderr: stderr,
	}, stdout, stderr
}

// guideFiles holds the paths of a temporary guide project.
type guideFiles struct {
	dir      string
	source   string
	document string
	keywords string
}

// writeGuide creates source, document and vocabulary files in a temp dir.
func writeGuide(t *testing.T, source, document string) guideFiles {
	t.Helper()
	dir := t.TempDir()
	g := guideFiles{
		dir:      dir,
		source:   filepath.Join(dir, "guide.txt"),
		document: filepath.Join(dir, "guide.html"),
		keywords: filepath.Join(dir, "keywords.yaml"),
	}
	writeFile(t, g.source, source)
	writeFile(t, g.document, document)
	writeFile(t, g.keywords, cliVocabulary)
	return g
}

// args returns the file flags for g followed by extra.
func (g guideFiles) args(extra ...string) []string {
	return append([]string{"--source", g.source, "--document", g.document, "--keywords", g.keywords}, extra...)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}
