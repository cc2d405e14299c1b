package qaguide

import (
	"errors"

	"github.com/alnah/go-qaguide/internal/keywords"
	"github.com/alnah/go-qaguide/internal/markup"
	"github.com/alnah/go-qaguide/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrEmptyDocument    = errors.New("document cannot be empty")
	ErrSourceNotFound   = errors.New("source file not found")
	ErrDocumentNotFound = errors.New("document file not found")

	// Source validation errors. Malformed sources come back as *FormatError.
	ErrMalformed      = markup.ErrMalformed
	ErrUnknownGrammar = markup.ErrUnknownGrammar

	// Document structure errors.
	ErrContainerNotFound = pipeline.ErrContainerNotFound
	ErrIndexNotFound     = pipeline.ErrIndexNotFound

	// Vocabulary errors.
	ErrVocabulary         = keywords.ErrVocabulary
	ErrVocabularyNotFound = keywords.ErrVocabularyNotFound
)

// FormatError reports the first tag-ordering violation of a source and the
// line it occurred on. It matches ErrMalformed with errors.Is.
type FormatError = markup.FormatError
