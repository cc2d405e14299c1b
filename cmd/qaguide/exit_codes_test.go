package main

import (
	"errors"
	"fmt"
	"os"
	"testing"

	qaguide "github.com/alnah/go-qaguide"
	"github.com/alnah/go-qaguide/internal/config"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		// Success
		{"nil error", nil, ExitSuccess},

		// Document structure errors (exit 4)
		{"container not found", qaguide.ErrContainerNotFound, ExitStructure},
		{"index not found", qaguide.ErrIndexNotFound, ExitStructure},
		{"empty document", qaguide.ErrEmptyDocument, ExitStructure},
		{"joined structure errors", errors.Join(qaguide.ErrContainerNotFound, qaguide.ErrIndexNotFound), ExitStructure},

		// Usage/config/validation errors (exit 2)
		{"usage", ErrUsage, ExitUsage},
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"config invalid", config.ErrConfigInvalid, ExitUsage},
		{"malformed", qaguide.ErrMalformed, ExitUsage},
		{"format error", &qaguide.FormatError{Line: 3, Reason: "bad"}, ExitUsage},
		{"unknown grammar", qaguide.ErrUnknownGrammar, ExitUsage},
		{"vocabulary", qaguide.ErrVocabulary, ExitUsage},
		{"wrapped config parse", fmt.Errorf("loading config: %w", config.ErrConfigParse), ExitUsage},

		// I/O errors (exit 3)
		{"file not exist", os.ErrNotExist, ExitIO},
		{"permission denied", os.ErrPermission, ExitIO},
		{"source not found", qaguide.ErrSourceNotFound, ExitIO},
		{"document not found", qaguide.ErrDocumentNotFound, ExitIO},
		{"vocabulary not found", qaguide.ErrVocabularyNotFound, ExitIO},
		{"write document", ErrWriteDocument, ExitIO},
		{"wrapped write", fmt.Errorf("%w: %w", ErrWriteDocument, os.ErrPermission), ExitIO},

		// General errors (exit 1)
		{"unknown error", errors.New("boom"), ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodeConstants(t *testing.T) {
	t.Parallel()

	codes := []int{ExitSuccess, ExitGeneral, ExitUsage, ExitIO, ExitStructure}
	seen := make(map[int]bool)
	for _, c := range codes {
		if c >= 126 {
			t.Errorf("exit code %d collides with shell-reserved codes", c)
		}
		if seen[c] {
			t.Errorf("exit code %d used twice", c)
		}
		seen[c] = true
	}
	if ExitSuccess != 0 || ExitGeneral != 1 || ExitUsage != 2 {
		t.Error("exit codes 0, 1, 2 must follow Unix conventions")
	}
}
