package worker

import (
	"context"
	"sort"

	"github.com/ppiankov/refdocs/internal/pipeline"
	"go.uber.org/zap"
)

// Generator defines the interface for producing one reference document
type Generator interface {
	Generate(ctx context.Context, kind pipeline.Kind) (*pipeline.Result, error)
	Check(ctx context.Context, kind pipeline.Kind) (*pipeline.Result, error)
}

// GenerateJob represents one document generation job
type GenerateJob struct {
	Index     int
	Kind      pipeline.Kind
	Check     bool
	Generator Generator
}

// Execute executes the generation job
func (j *GenerateJob) Execute(ctx context.Context) Result {
	run := j.Generator.Generate
	if j.Check {
		run = j.Generator.Check
	}
	res, err := run(ctx, j.Kind)
	return &GenerateResult{
		Index:  j.Index,
		Kind:   j.Kind,
		Result: res,
		Error:  err,
	}
}

// GenerateResult represents the result of a generation job
type GenerateResult struct {
	Index  int
	Kind   pipeline.Kind
	Result *pipeline.Result
	Error  error
}

// GetError returns the error from the generation result
func (r *GenerateResult) GetError() error {
	return r.Error
}

// BatchRunner generates several documents concurrently
type BatchRunner struct {
	generator   Generator
	concurrency int
	logger      *zap.Logger
}

// NewBatchRunner creates a new batch runner
func NewBatchRunner(generator Generator, concurrency int, logger *zap.Logger) *BatchRunner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BatchRunner{
		generator:   generator,
		concurrency: concurrency,
		logger:      logger,
	}
}

// Run generates (or, with check set, checks) every kind and returns the
// results in the order the kinds were given, whatever order they finish in.
// A failing kind does not stop the others.
func (b *BatchRunner) Run(ctx context.Context, kinds []pipeline.Kind, check bool) []*GenerateResult {
	if len(kinds) == 0 {
		return []*GenerateResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	for i, kind := range kinds {
		pool.Submit(&GenerateJob{
			Index:     i,
			Kind:      kind,
			Check:     check,
			Generator: b.generator,
		})
	}

	results := pool.Wait()

	out := make([]*GenerateResult, 0, len(kinds))
	done := make(map[int]bool, len(results))
	for _, result := range results {
		r := result.(*GenerateResult)
		done[r.Index] = true
		if r.Error != nil {
			b.logger.Debug("document failed", zap.String("kind", string(r.Kind)), zap.Error(r.Error))
		}
		out = append(out, r)
	}

	// kinds never picked up before cancellation still get a result
	if err := ctx.Err(); err != nil {
		for i, kind := range kinds {
			if !done[i] {
				out = append(out, &GenerateResult{Index: i, Kind: kind, Error: err})
			}
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}
