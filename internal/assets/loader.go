package assets

// AssetLoader defines the contract for loading vocabularies and templates.
type AssetLoader interface {
	// LoadVocabulary loads a vocabulary by name (without .yaml extension).
	// Returns ErrVocabularyNotFound if the vocabulary doesn't exist.
	LoadVocabulary(name string) ([]byte, error)

	// LoadTemplate loads an HTML document shell by name (without .html extension).
	// Returns ErrTemplateNotFound if the template doesn't exist.
	LoadTemplate(name string) ([]byte, error)
}
