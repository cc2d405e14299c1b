package qaguide

import (
	"log/slog"

	"github.com/alnah/go-qaguide/internal/htmldoc"
	"github.com/alnah/go-qaguide/internal/keywords"
	"github.com/alnah/go-qaguide/internal/markup"
	"github.com/alnah/go-qaguide/internal/pipeline"
)

// Grammar selects the tags a source may use.
type Grammar = markup.Grammar

// Shipped grammars.
var (
	Classic  = markup.Classic  // Q / A
	Extended = markup.Extended // Q, P, J, H / A, D
)

// GrammarByName returns "classic" or "extended". An empty name is classic.
func GrammarByName(name string) (Grammar, error) {
	return markup.GrammarByName(name)
}

// Vocabulary is the ordered set of keyword categories used for highlighting
// and the embedded index.
type Vocabulary = keywords.Vocabulary

// LoadVocabulary reads a YAML vocabulary file. An empty path returns the
// embedded default.
func LoadVocabulary(path string) (*Vocabulary, error) {
	return keywords.Load(path)
}

// ParseVocabulary decodes and validates a YAML vocabulary.
func ParseVocabulary(data []byte) (*Vocabulary, error) {
	return keywords.Parse(data)
}

// Selector picks the content container: a tag name ("main") or an id ("#vault").
type Selector = htmldoc.Selector

// ParseSelector parses "tag" or "#id".
func ParseSelector(s string) (Selector, error) {
	return htmldoc.ParseSelector(s)
}

// IndexShape selects how the keyword index literal is keyed.
type IndexShape = pipeline.IndexShape

// Index shapes.
const (
	ShapeCategory     = pipeline.ShapeCategory
	ShapeAlphabetical = pipeline.ShapeAlphabetical
)

// Defaults used by New.
const (
	DefaultContainer   = "main"
	DefaultIndexMarker = pipeline.DefaultIndexMarker
	DefaultIndexIndent = pipeline.DefaultIndexIndent
)

// Stage names a pipeline step that produces an interim result, in execution
// order. Validation produces none and has no Stage.
type Stage string

// Pipeline stages.
const (
	StageNodify    Stage = "nodify"
	StageMerge     Stage = "merge"
	StageHighlight Stage = "highlight"
	StageIndex     Stage = "index"
	StageEmphasis  Stage = "emphasis"
	StageNormalize Stage = "normalize"
)

// Inspector receives the interim result of each stage: fragment lines after
// StageNodify, the rendered tree after the tree stages, and the final HTML
// after StageNormalize. Used for debug dumps.
type Inspector func(stage Stage, content string)

// Input contains build parameters.
type Input struct {
	Source   string // markup source text
	Document string // current HTML document (required)
}

// Result contains the outcome of a build.
type Result struct {
	HTML       string         // the rewritten document
	Nodes      int            // nodes written into the container
	Discarded  int            // source lines dropped before the first node
	Keywords   int            // entries written to the index
	Wraps      map[string]int // highlight spans added per category
	Emphasised int            // _word_ runs converted to <em>
	Skipped    []Stage        // stages skipped in lenient mode
}

// Option configures a Service.
type Option func(*Service)

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	grammar   Grammar
	vocab     *Vocabulary
	container Selector
	index     pipeline.IndexOptions
	indent    int
	strict    bool
	logger    *slog.Logger
	inspect   Inspector
}

// WithGrammar sets the source grammar (default: Classic).
func WithGrammar(g Grammar) Option {
	return func(s *Service) {
		s.cfg.grammar = g
	}
}

// WithVocabulary sets the keyword vocabulary (default: embedded).
func WithVocabulary(v *Vocabulary) Option {
	return func(s *Service) {
		s.cfg.vocab = v
	}
}

// WithContainer sets the element whose children are replaced (default: <main>).
func WithContainer(sel Selector) Option {
	return func(s *Service) {
		s.cfg.container = sel
	}
}

// WithIndexMarker sets the text that opens the keyword literal.
// Panics if marker has no "{" (programmer error).
func WithIndexMarker(marker string) Option {
	if !containsBrace(marker) {
		panic("qaguide: WithIndexMarker marker must contain '{'")
	}
	return func(s *Service) {
		s.cfg.index.Marker = marker
	}
}

// WithIndexShape sets how the index literal is keyed (default: ShapeCategory).
func WithIndexShape(shape IndexShape) Option {
	return func(s *Service) {
		s.cfg.index.Shape = shape
	}
}

// WithIndexIndent sets the extra indentation of the literal lines.
// Panics if n < 0 (programmer error).
func WithIndexIndent(n int) Option {
	if n < 0 {
		panic("qaguide: WithIndexIndent must not be negative")
	}
	return func(s *Service) {
		s.cfg.indent = n
	}
}

// WithStrict controls missing container and index handling. Strict builds
// (the default) fail before any transformation; lenient builds log a warning
// and skip the stage.
func WithStrict(strict bool) Option {
	return func(s *Service) {
		s.cfg.strict = strict
	}
}

// WithLogger sets the structured logger (default: discard).
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.cfg.logger = l
		}
	}
}

// WithInspector registers a callback receiving each interim result.
func WithInspector(fn Inspector) Option {
	return func(s *Service) {
		s.cfg.inspect = fn
	}
}
