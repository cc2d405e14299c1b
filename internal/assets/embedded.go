package assets

import (
	"embed"
	"fmt"
	"strings"
)

//go:embed vocabularies/*
var vocabularies embed.FS

//go:embed templates/*
var templates embed.FS

// EmbeddedLoader loads assets from the embedded filesystem.
// Implements AssetLoader interface.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadVocabulary loads a keyword vocabulary from embedded assets by name.
func (e *EmbeddedLoader) LoadVocabulary(name string) ([]byte, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	content, err := vocabularies.ReadFile("vocabularies/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrVocabularyNotFound, name)
	}
	return content, nil
}

// LoadTemplate loads a document shell from embedded assets by name.
func (e *EmbeddedLoader) LoadTemplate(name string) ([]byte, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	content, err := templates.ReadFile("templates/" + name + ".html")
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
	}
	return content, nil
}

// Compile-time interface check.
var _ AssetLoader = (*EmbeddedLoader)(nil)

// validateName rejects empty names and names that could escape the asset
// directory or change the extension.
func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
