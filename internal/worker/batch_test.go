package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/ppiankov/refdocs/internal/model"
	"github.com/ppiankov/refdocs/internal/pipeline"
)

// mockGenerator implements Generator
type mockGenerator struct {
	mu      sync.Mutex
	delays  map[pipeline.Kind]time.Duration
	fail    map[pipeline.Kind]bool
	checked []pipeline.Kind
}

func (m *mockGenerator) run(ctx context.Context, kind pipeline.Kind) (*pipeline.Result, error) {
	if d := m.delays[kind]; d > 0 {
		time.Sleep(d)
	}
	if m.fail[kind] {
		return nil, errors.New("generate error")
	}
	return &pipeline.Result{Kind: kind, Count: 1}, nil
}

func (m *mockGenerator) Generate(ctx context.Context, kind pipeline.Kind) (*pipeline.Result, error) {
	return m.run(ctx, kind)
}

func (m *mockGenerator) Check(ctx context.Context, kind pipeline.Kind) (*pipeline.Result, error) {
	m.mu.Lock()
	m.checked = append(m.checked, kind)
	m.mu.Unlock()
	res, err := m.run(ctx, kind)
	if res != nil {
		res.Stale = true
	}
	return res, err
}

func TestBatchRunner_PreservesOrder(t *testing.T) {
	gen := &mockGenerator{delays: map[pipeline.Kind]time.Duration{
		pipeline.KindConstants: 30 * time.Millisecond,
		pipeline.KindDefaults:  20 * time.Millisecond,
		pipeline.KindErrors:    10 * time.Millisecond,
	}}
	runner := NewBatchRunner(gen, 4, nil)

	results := runner.Run(context.Background(), pipeline.AllKinds(), false)

	kinds := pipeline.AllKinds()
	if len(results) != len(kinds) {
		t.Fatalf("expected %d results, got %d", len(kinds), len(results))
	}
	for i, res := range results {
		if res.Kind != kinds[i] {
			t.Errorf("result %d: expected %s, got %s", i, kinds[i], res.Kind)
		}
		if res.Error != nil {
			t.Errorf("unexpected error for %s: %v", res.Kind, res.Error)
		}
		if res.Result == nil || res.Result.Stale {
			t.Errorf("expected a generate result for %s", res.Kind)
		}
	}
}

func TestBatchRunner_ErrorDoesNotStopOthers(t *testing.T) {
	gen := &mockGenerator{fail: map[pipeline.Kind]bool{pipeline.KindDefaults: true}}
	runner := NewBatchRunner(gen, 1, nil)

	results := runner.Run(context.Background(), pipeline.AllKinds(), false)

	failed := 0
	for _, res := range results {
		if res.GetError() != nil {
			failed++
			if res.Kind != pipeline.KindDefaults {
				t.Errorf("unexpected failure for %s", res.Kind)
			}
			if res.Result != nil {
				t.Error("expected nil result on error")
			}
		}
	}
	if failed != 1 {
		t.Errorf("expected 1 failure, got %d", failed)
	}
}

func TestBatchRunner_Check(t *testing.T) {
	gen := &mockGenerator{}
	runner := NewBatchRunner(gen, 2, nil)

	results := runner.Run(context.Background(), []pipeline.Kind{pipeline.KindRPC}, true)

	if len(results) != 1 || !results[0].Result.Stale {
		t.Fatalf("expected one stale check result, got %+v", results)
	}
	if len(gen.checked) != 1 {
		t.Errorf("expected Check to be called once, got %d", len(gen.checked))
	}
}

func TestBatchRunner_Empty(t *testing.T) {
	runner := NewBatchRunner(&mockGenerator{}, 2, nil)

	results := runner.Run(context.Background(), nil, false)
	if len(results) != 0 {
		t.Errorf("expected 0 results, got %d", len(results))
	}
}

func TestBatchRunner_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := NewBatchRunner(&mockGenerator{}, 2, nil)
	results := runner.Run(ctx, pipeline.AllKinds(), false)

	if len(results) != len(pipeline.AllKinds()) {
		t.Fatalf("expected a result per kind, got %d", len(results))
	}
	for _, res := range results {
		if !errors.Is(res.Error, context.Canceled) && res.Error != nil {
			t.Errorf("unexpected error for %s: %v", res.Kind, res.Error)
		}
	}
}

func TestBatchRunner_Pipeline(t *testing.T) {
	dir := t.TempDir()
	cfg := model.DefaultConfig()
	cfg.Root = filepath.Join(dir, "src")
	cfg.DocsDir = filepath.Join(dir, "docs")

	src := filepath.Join(cfg.Root, "bllvm-consensus", "src", "constants.rs")
	if err := os.MkdirAll(filepath.Dir(src), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(src, []byte("pub const MAX_BLOCK_SIZE: usize = 1_000_000;\n"), 0644); err != nil {
		t.Fatal(err)
	}

	runner := NewBatchRunner(pipeline.NewPipeline(cfg, nil), 4, nil)
	for _, res := range runner.Run(context.Background(), pipeline.AllKinds(), false) {
		if res.Error != nil {
			t.Fatalf("%s: %v", res.Kind, res.Error)
		}
		if _, err := os.Stat(res.Result.Path); err != nil {
			t.Errorf("%s: expected document at %s: %v", res.Kind, res.Result.Path, err)
		}
	}
}
