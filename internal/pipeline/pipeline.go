package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ppiankov/refdocs/internal/cache"
	"github.com/ppiankov/refdocs/internal/markdown"
	"github.com/ppiankov/refdocs/internal/model"
	"go.uber.org/zap"
)

// ErrStale is returned by check runs when a generated document on disk no
// longer matches its sources
var ErrStale = errors.New("generated documentation is stale")

// Kind names one generated document
type Kind string

const (
	KindConstants Kind = "constants"
	KindDefaults  Kind = "defaults"
	KindErrors    Kind = "errors"
	KindRPC       Kind = "rpc"
)

// AllKinds returns every document kind in generation order
func AllKinds() []Kind {
	return []Kind{KindConstants, KindDefaults, KindErrors, KindRPC}
}

// ParseKind validates a document kind name
func ParseKind(s string) (Kind, error) {
	for _, k := range AllKinds() {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown document kind %q (want constants, defaults, errors or rpc)", s)
}

// countNoun is what the status line says was extracted
func (k Kind) countNoun() string {
	switch k {
	case KindConstants:
		return "constants"
	case KindDefaults:
		return "defaults"
	case KindErrors:
		return "error codes"
	default:
		return "RPC methods"
	}
}

// Pipeline generates the reference documents described by a configuration
type Pipeline struct {
	config *model.Config
	loader *SourceLoader
	writer *Writer
	logger *zap.Logger
}

// NewPipeline creates a pipeline with an in-memory source cache
func NewPipeline(cfg *model.Config, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		config: cfg,
		loader: NewSourceLoader(cache.NewMemoryCache(cache.DefaultTTL, cache.DefaultCleanup), logger),
		writer: NewWriter(logger),
		logger: logger,
	}
}

// Result describes one generated document
type Result struct {
	Kind        Kind
	Path        string
	Count       int // number of extracted items
	Diagnostics []model.Diagnostic
	Stale       bool   // check runs only: the file on disk differs
	Diff        string // check runs only: unified diff from disk to generated
}

// Summary is the status line detail, e.g. "Extracted 12 constants"
func (r *Result) Summary() string {
	return fmt.Sprintf("Extracted %d %s", r.Count, r.Kind.countNoun())
}

// Generate renders the document of the given kind and writes it, replacing
// any previous content. The file is written even when its sources are
// missing, in which case it holds only the header.
func (p *Pipeline) Generate(ctx context.Context, kind Kind) (*Result, error) {
	res, content, err := p.render(ctx, kind)
	if err != nil {
		return nil, err
	}
	if err := p.writer.Write(res.Path, content); err != nil {
		return nil, fmt.Errorf("generate %s: %w", kind, err)
	}
	return res, nil
}

// Check renders the document of the given kind and compares it with the
// file on disk without writing anything
func (p *Pipeline) Check(ctx context.Context, kind Kind) (*Result, error) {
	res, content, err := p.render(ctx, kind)
	if err != nil {
		return nil, err
	}
	diff, err := p.writer.Diff(res.Path, content)
	if err != nil {
		return nil, fmt.Errorf("check %s: %w", kind, err)
	}
	res.Stale = diff != ""
	res.Diff = diff
	return res, nil
}

// Render returns the document text of the given kind without touching disk
func (p *Pipeline) Render(ctx context.Context, kind Kind) (string, error) {
	_, content, err := p.render(ctx, kind)
	return content, err
}

func (p *Pipeline) render(ctx context.Context, kind Kind) (*Result, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	var (
		doc    *markdown.Document
		output string
		res    = &Result{Kind: kind}
		err    error
	)
	switch kind {
	case KindConstants:
		output = p.config.Constants.Output
		doc, err = p.constantsDocument(res)
	case KindDefaults:
		output = p.config.Defaults.Output
		doc, err = p.defaultsDocument(res)
	case KindErrors:
		output = p.config.Errors.Output
		doc, err = p.errorsDocument(res)
	case KindRPC:
		output = p.config.RPC.Output
		doc, err = p.rpcDocument(res)
	default:
		return nil, "", fmt.Errorf("unknown document kind %q", kind)
	}
	if err != nil {
		return nil, "", fmt.Errorf("generate %s: %w", kind, err)
	}

	for _, d := range res.Diagnostics {
		p.logger.Warn("source diagnostic",
			zap.String("kind", string(kind)),
			zap.String("diagnostic", string(d.Kind)),
			zap.String("subject", d.Subject),
			zap.Int("line", d.Line),
			zap.String("message", d.Message),
		)
	}

	res.Path = p.config.DocsPath(output)
	return res, doc.Render(), nil
}

// load reads a source-relative file, returning found == false when absent
func (p *Pipeline) load(rel string) (string, bool, error) {
	return p.loader.Load(p.config.SourcePath(rel))
}

func generator(kind Kind) string {
	return "refdocs generate " + string(kind)
}

// component is the repository a source path belongs to, its first element
func component(rel string) string {
	rel = filepath.ToSlash(rel)
	if i := strings.Index(rel, "/"); i > 0 {
		return rel[:i]
	}
	return rel
}
