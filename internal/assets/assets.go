package assets

// DefaultName names the vocabulary and template used when none is configured.
const DefaultName = "default"

// defaultLoader is the package-level embedded loader.
var defaultLoader = NewEmbeddedLoader()

// LoadVocabulary loads a vocabulary by name using the embedded loader.
func LoadVocabulary(name string) ([]byte, error) {
	return defaultLoader.LoadVocabulary(name)
}

// LoadTemplate loads a document shell by name using the embedded loader.
func LoadTemplate(name string) ([]byte, error) {
	return defaultLoader.LoadTemplate(name)
}
