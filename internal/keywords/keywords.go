// Package keywords holds the vocabulary that drives highlighting and the
// embedded keyword index: ordered categories of terms, each term optionally
// carrying aliases.
package keywords

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/alnah/go-qaguide/internal/assets"
	"github.com/alnah/go-qaguide/internal/yamlutil"
)

// AliasSeparator joins a canonical term and its aliases in an encoded entry.
const AliasSeparator = "|"

// Sentinel errors for vocabulary operations.
var (
	ErrVocabulary         = errors.New("invalid vocabulary")
	ErrVocabularyNotFound = errors.New("vocabulary file not found")
)

// classPattern restricts category classes to plain CSS identifiers.
var classPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

// Entry is one keyword with optional aliases.
type Entry struct {
	Canonical string
	Aliases   []string
}

// ParseEntry decodes "canonical | alias1 | alias2".
func ParseEntry(encoded string) Entry {
	parts := strings.Split(encoded, AliasSeparator)
	e := Entry{Canonical: strings.TrimSpace(parts[0])}
	for _, alias := range parts[1:] {
		if alias = strings.TrimSpace(alias); alias != "" {
			e.Aliases = append(e.Aliases, alias)
		}
	}
	return e
}

// Encode returns the index form of the entry.
func (e Entry) Encode() string {
	if len(e.Aliases) == 0 {
		return e.Canonical
	}
	return e.Canonical + " " + AliasSeparator + " " + strings.Join(e.Aliases, " "+AliasSeparator+" ")
}

// Terms returns the canonical term followed by its aliases.
func (e Entry) Terms() []string {
	return append([]string{e.Canonical}, e.Aliases...)
}

// Category is a named, ordered list of encoded entries.
type Category struct {
	Name  string   `yaml:"name"`
	Class string   `yaml:"class,omitempty"` // CSS class, defaults to Name
	Terms []string `yaml:"terms"`
}

// CSSClass returns the class applied to highlighted terms of c.
func (c Category) CSSClass() string {
	if c.Class != "" {
		return c.Class
	}
	return c.Name
}

// Entries decodes the category's terms.
func (c Category) Entries() []Entry {
	entries := make([]Entry, 0, len(c.Terms))
	for _, t := range c.Terms {
		entries = append(entries, ParseEntry(t))
	}
	return entries
}

// Validate checks the category fields.
func (c Category) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Name, validation.Required),
		validation.Field(&c.Class, validation.Match(classPattern)),
		validation.Field(&c.Terms, validation.Required, validation.Each(validation.Required, validation.By(hasCanonical))),
	)
}

// hasCanonical rejects entries such as "| alias" that decode to no term.
func hasCanonical(value any) error {
	encoded, _ := value.(string)
	if ParseEntry(encoded).Canonical == "" {
		return errors.New("entry has no canonical term")
	}
	return nil
}

// Vocabulary is the full keyword configuration.
type Vocabulary struct {
	// HighlightOrder lists category names in the order highlighting applies
	// them. Empty means category order.
	HighlightOrder []string   `yaml:"highlightOrder,omitempty"`
	Categories     []Category `yaml:"categories"`
}

// Validate checks structure, uniqueness of names and terms, and that the
// highlight order is a permutation of the category names.
func (v *Vocabulary) Validate() error {
	if err := validation.ValidateStruct(v,
		validation.Field(&v.Categories, validation.Required),
	); err != nil {
		return fmt.Errorf("%w: %v", ErrVocabulary, err)
	}

	names := make(map[string]bool, len(v.Categories))
	for _, c := range v.Categories {
		if names[c.Name] {
			return fmt.Errorf("%w: duplicate category %q", ErrVocabulary, c.Name)
		}
		names[c.Name] = true
		if !classPattern.MatchString(c.CSSClass()) {
			return fmt.Errorf("%w: category %q needs a class (name is not a CSS identifier)", ErrVocabulary, c.Name)
		}
	}

	owners := make(map[string]string)
	for _, c := range v.Categories {
		for _, e := range c.Entries() {
			for _, term := range e.Terms() {
				if owner, ok := owners[term]; ok {
					return fmt.Errorf("%w: term %q appears in %s and %s", ErrVocabulary, term, owner, c.Name)
				}
				owners[term] = c.Name
			}
		}
	}

	if len(v.HighlightOrder) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(v.HighlightOrder))
	for _, name := range v.HighlightOrder {
		if !names[name] {
			return fmt.Errorf("%w: highlightOrder names unknown category %q", ErrVocabulary, name)
		}
		if seen[name] {
			return fmt.Errorf("%w: highlightOrder repeats %q", ErrVocabulary, name)
		}
		seen[name] = true
	}
	if len(seen) != len(names) {
		return fmt.Errorf("%w: highlightOrder must list all %d categories, got %d", ErrVocabulary, len(names), len(seen))
	}
	return nil
}

// Category returns the category called name.
func (v *Vocabulary) Category(name string) (Category, bool) {
	for _, c := range v.Categories {
		if c.Name == name {
			return c, true
		}
	}
	return Category{}, false
}

// HighlightCategories returns the categories in highlight order.
func (v *Vocabulary) HighlightCategories() []Category {
	if len(v.HighlightOrder) == 0 {
		return v.Categories
	}
	ordered := make([]Category, 0, len(v.HighlightOrder))
	for _, name := range v.HighlightOrder {
		if c, ok := v.Category(name); ok {
			ordered = append(ordered, c)
		}
	}
	return ordered
}

// Classes returns the set of CSS classes used by highlight spans.
func (v *Vocabulary) Classes() map[string]bool {
	classes := make(map[string]bool, len(v.Categories))
	for _, c := range v.Categories {
		classes[c.CSSClass()] = true
	}
	return classes
}

// Count returns the total number of entries across categories.
func (v *Vocabulary) Count() int {
	n := 0
	for _, c := range v.Categories {
		n += len(c.Terms)
	}
	return n
}

// Parse decodes and validates a YAML vocabulary.
func Parse(data []byte) (*Vocabulary, error) {
	var v Vocabulary
	if err := yamlutil.UnmarshalStrict(data, &v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVocabulary, err)
	}
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return &v, nil
}

// Load reads a vocabulary file. An empty path loads the embedded default.
func Load(path string) (*Vocabulary, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path) // #nosec G304 -- vocabulary path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrVocabularyNotFound, path)
		}
		return nil, fmt.Errorf("reading vocabulary: %w", err)
	}
	return Parse(data)
}

// Default returns the embedded vocabulary.
func Default() (*Vocabulary, error) {
	data, err := assets.LoadVocabulary(assets.DefaultName)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}
