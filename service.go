package qaguide

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/net/html"

	"github.com/alnah/go-qaguide/internal/htmldoc"
	"github.com/alnah/go-qaguide/internal/keywords"
	"github.com/alnah/go-qaguide/internal/markup"
	"github.com/alnah/go-qaguide/internal/pipeline"
)

// Service orchestrates the source-to-guide pipeline.
type Service struct {
	cfg serviceConfig
}

// New creates a Service with default configuration: classic grammar,
// embedded vocabulary, <main> container, strict checks.
// Use options to customize behavior (e.g., WithGrammar).
func New(opts ...Option) *Service {
	s := &Service{
		cfg: serviceConfig{
			grammar:   Classic,
			container: htmldoc.MustSelector(DefaultContainer),
			index: pipeline.IndexOptions{
				Marker: DefaultIndexMarker,
				Shape:  ShapeCategory,
			},
			indent: DefaultIndexIndent,
			strict: true,
			logger: slog.New(slog.DiscardHandler),
		},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Check validates the tag alternation of source without building anything.
// Returns a *FormatError for the first violation.
func (s *Service) Check(source string) error {
	return markup.Validate(s.cfg.grammar, markup.Lines(source))
}

// Preflight parses document and reports a missing content container or
// index script. Strict builds run it before any transformation.
func (s *Service) Preflight(document string) error {
	doc, err := htmldoc.ParseString(document)
	if err != nil {
		return err
	}
	return s.preflight(doc)
}

func (s *Service) preflight(doc *html.Node) error {
	var errs []error
	if htmldoc.Find(doc, s.cfg.container.Match) == nil {
		errs = append(errs, fmt.Errorf("%w: %s", ErrContainerNotFound, s.cfg.container))
	}
	if htmldoc.FindScript(doc, s.cfg.index.Marker) == nil {
		errs = append(errs, fmt.Errorf("%w: no script contains %q", ErrIndexNotFound, s.cfg.index.Marker))
	}
	return errors.Join(errs...)
}

// Build runs the full pipeline and returns the rewritten document.
// The context is checked between stages. Input.Document is never modified
// in place; on error nothing is returned, so callers can keep the original.
func (s *Service) Build(ctx context.Context, input Input) (*Result, error) {
	if strings.TrimSpace(input.Document) == "" {
		return nil, ErrEmptyDocument
	}

	vocab, err := s.vocabulary()
	if err != nil {
		return nil, err
	}

	log := s.cfg.logger
	res := &Result{}

	// Validate
	lines := markup.Lines(input.Source)
	if err := markup.Validate(s.cfg.grammar, lines); err != nil {
		return nil, err
	}
	log.Debug("source validated", "lines", len(lines), "grammar", s.cfg.grammar.Name)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	doc, err := htmldoc.ParseString(input.Document)
	if err != nil {
		return nil, err
	}
	if s.cfg.strict {
		if err := s.preflight(doc); err != nil {
			return nil, err
		}
	}

	// Nodify
	parsed := markup.Parse(s.cfg.grammar, lines)
	fragments, nodes := pipeline.Nodify(parsed.Events)
	res.Nodes = nodes
	res.Discarded = parsed.Discarded
	if parsed.Discarded > 0 {
		log.Warn("content before the first node discarded", "lines", parsed.Discarded)
	}
	log.Info("nodes processed", "nodes", nodes)
	s.inspect(StageNodify, strings.Join(fragments, "\n"))
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	// Merge
	stats, err := pipeline.Merge(doc, s.cfg.container, fragments)
	switch {
	case err == nil:
		log.Debug("nodes merged", "container", s.cfg.container.String(),
			"replaced", stats.Replaced, "inserted", stats.Inserted, "dropped", stats.Dropped)
		s.inspectTree(StageMerge, doc)
	case s.lenient(err, ErrContainerNotFound):
		res.Skipped = append(res.Skipped, StageMerge)
	default:
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	// Highlight
	res.Wraps = pipeline.Highlight(doc, vocab)
	total := 0
	for _, c := range vocab.HighlightCategories() {
		if n := res.Wraps[c.Name]; n > 0 {
			log.Debug("keywords highlighted", "category", c.Name, "wraps", n)
			total += n
		}
	}
	log.Info("keywords highlighted", "wraps", total)
	s.inspectTree(StageHighlight, doc)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	// Index
	count, err := pipeline.RebuildIndex(doc, vocab, s.cfg.index)
	switch {
	case err == nil:
		res.Keywords = count
		log.Info("keyword index rebuilt", "keywords", count, "shape", string(s.cfg.index.Shape))
		s.inspectTree(StageIndex, doc)
	case s.lenient(err, ErrIndexNotFound):
		res.Skipped = append(res.Skipped, StageIndex)
	default:
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	// Emphasis
	res.Emphasised = pipeline.EmphasiseTree(doc)
	log.Debug("emphasis applied", "words", res.Emphasised)
	s.inspectTree(StageEmphasis, doc)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	// Normalize
	out, err := pipeline.Normalize(doc, pipeline.NormalizeOptions{
		Marker: s.cfg.index.Marker,
		Indent: s.cfg.indent,
	})
	if err != nil {
		return nil, fmt.Errorf("rendering document: %w", err)
	}
	s.inspect(StageNormalize, out)
	res.HTML = out

	return res, nil
}

// vocabulary returns the configured vocabulary or the embedded default.
func (s *Service) vocabulary() (*Vocabulary, error) {
	if s.cfg.vocab != nil {
		return s.cfg.vocab, nil
	}
	return keywords.Default()
}

// lenient reports whether err matches target and the service tolerates it.
// Tolerated errors are logged as warnings.
func (s *Service) lenient(err, target error) bool {
	if s.cfg.strict || !errors.Is(err, target) {
		return false
	}
	s.cfg.logger.Warn("stage skipped", "error", err.Error())
	return true
}

func (s *Service) inspect(stage Stage, content string) {
	if s.cfg.inspect != nil {
		s.cfg.inspect(stage, content)
	}
}

// inspectTree renders doc only when an inspector is registered.
func (s *Service) inspectTree(stage Stage, doc *html.Node) {
	if s.cfg.inspect == nil {
		return
	}
	out, err := htmldoc.RenderString(doc)
	if err != nil {
		s.cfg.logger.Warn("rendering interim result", "stage", string(stage), "error", err.Error())
		return
	}
	s.cfg.inspect(stage, out)
}

func containsBrace(s string) bool {
	return strings.Contains(s, "{")
}
