package main

import (
	"errors"
	"os"

	qaguide "github.com/alnah/go-qaguide"
	"github.com/alnah/go-qaguide/internal/assets"
	"github.com/alnah/go-qaguide/internal/config"
)

// Exit codes for the qaguide CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess   = 0 // Successful build or check
	ExitGeneral   = 1 // General/unexpected error
	ExitUsage     = 2 // Invalid flags, config, vocabulary, or malformed source
	ExitIO        = 3 // File not found, permission denied, write failure
	ExitStructure = 4 // Document lacks the content container or index script
)

// ErrUsage marks invalid command lines.
var ErrUsage = errors.New("invalid usage")

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Document structure errors (exit 4)
	if errors.Is(err, qaguide.ErrContainerNotFound) ||
		errors.Is(err, qaguide.ErrIndexNotFound) ||
		errors.Is(err, qaguide.ErrEmptyDocument) {
		return ExitStructure
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrConfigInvalid) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, qaguide.ErrMalformed) ||
		errors.Is(err, qaguide.ErrUnknownGrammar) ||
		errors.Is(err, qaguide.ErrVocabulary) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, qaguide.ErrSourceNotFound) ||
		errors.Is(err, qaguide.ErrDocumentNotFound) ||
		errors.Is(err, qaguide.ErrVocabularyNotFound) ||
		errors.Is(err, assets.ErrTemplateNotFound) ||
		errors.Is(err, ErrWriteDocument) {
		return ExitIO
	}

	return ExitGeneral
}
