package assets

import "errors"

// Sentinel errors for asset operations.
var (
	// ErrVocabularyNotFound indicates the requested vocabulary does not exist.
	ErrVocabularyNotFound = errors.New("vocabulary not found")

	// ErrTemplateNotFound indicates the requested template does not exist.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrInvalidAssetName indicates the asset name contains invalid characters
	// such as path separators or traversal sequences.
	ErrInvalidAssetName = errors.New("invalid asset name")
)
