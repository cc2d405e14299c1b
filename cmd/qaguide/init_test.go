package main

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	qaguide "github.com/alnah/go-qaguide"
	"github.com/alnah/go-qaguide/internal/config"
)

// ---------------------------------------------------------------------------
// TestRunInit - Starter files
// ---------------------------------------------------------------------------

func TestRunInit(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	doc := filepath.Join(dir, "guide.html")
	kw := filepath.Join(dir, "keywords.yaml")
	cfgPath := filepath.Join(dir, "qaguide.yaml")
	env, stdout, _ := testEnv()

	if err := runInit([]string{"--document", doc, "--keywords", kw, "--config", cfgPath}, env); err != nil {
		t.Fatalf("runInit() error: %v", err)
	}
	for _, path := range []string{doc, kw, cfgPath} {
		if !strings.Contains(stdout.String(), "created "+path) {
			t.Errorf("stdout missing creation of %s:\n%s", path, stdout)
		}
	}

	// The starter files are a working project.
	if _, err := qaguide.LoadVocabulary(kw); err != nil {
		t.Errorf("starter vocabulary does not load: %v", err)
	}
	if err := qaguide.New().Preflight(readFile(t, doc)); err != nil {
		t.Errorf("starter document fails preflight: %v", err)
	}
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		t.Fatalf("starter config does not load: %v", err)
	}
	if cfg.Document != doc || cfg.Keywords != kw {
		t.Errorf("starter config paths = %q, %q; want %q, %q", cfg.Document, cfg.Keywords, doc, kw)
	}

	src := filepath.Join(dir, "guide.txt")
	writeFile(t, src, cliSource)
	buildEnv, _, _ := testEnv()
	args := []string{"--source", src, "--document", doc, "--keywords", kw, "--no-backup"}
	if err := runBuild(context.Background(), args, buildEnv); err != nil {
		t.Fatalf("building the starter project: %v", err)
	}
	if !strings.Contains(readFile(t, doc), `class="Minion">Poisoner</span>`) {
		t.Error("starter project did not highlight the Poisoner")
	}
}

func TestRunInit_KeepsExistingFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	doc := filepath.Join(dir, "guide.html")
	writeFile(t, doc, "<p>mine</p>")
	env, stdout, _ := testEnv()

	args := []string{"--document", doc, "--keywords", filepath.Join(dir, "kw.yaml"), "--config", filepath.Join(dir, "qaguide.yaml")}
	if err := runInit(args, env); err != nil {
		t.Fatalf("runInit() error: %v", err)
	}
	if readFile(t, doc) != "<p>mine</p>" {
		t.Error("init overwrote an existing document")
	}
	if !strings.Contains(stdout.String(), "skipped "+doc) {
		t.Errorf("stdout should report the skip:\n%s", stdout)
	}
}
