package pipeline_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"boardshelf/internal/collection"
	"boardshelf/internal/logging"
	"boardshelf/internal/pipeline"
	"boardshelf/internal/services"
)

type stubStage struct {
	name    string
	execute func(ctx context.Context, table *collection.Table) error
	calls   int
}

func (s *stubStage) Name() string { return s.name }

func (s *stubStage) Execute(ctx context.Context, table *collection.Table) error {
	s.calls++
	if s.execute != nil {
		return s.execute(ctx, table)
	}
	return nil
}

func newRunner(t *testing.T, stages ...pipeline.Stage) (*pipeline.Runner, string) {
	t.Helper()
	dir := t.TempDir()
	out := filepath.Join(dir, "collection.csv")
	writer := collection.NewIncrementalWriter(out, 10, logging.NewNop())
	return pipeline.NewRunner(dir, writer, logging.NewNop(), stages...), out
}

func TestRunExecutesStagesInOrder(t *testing.T) {
	var order []string
	record := func(name string) *stubStage {
		return &stubStage{name: name, execute: func(ctx context.Context, table *collection.Table) error {
			order = append(order, name)
			return nil
		}}
	}
	runner, out := newRunner(t, record("first"), record("second"), record("third"))

	table := &collection.Table{Rows: []*collection.Row{{OriginalLine: "Azul"}}}
	if err := runner.Run(context.Background(), table); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(order) != 3 || order[0] != "first" || order[2] != "third" {
		t.Fatalf("stage order = %v", order)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("expected checkpoint after run: %v", err)
	}
}

func TestRunAnnotatesContext(t *testing.T) {
	stage := &stubStage{name: "annotated", execute: func(ctx context.Context, table *collection.Table) error {
		if stageName, ok := services.StageFromContext(ctx); !ok || stageName != "annotated" {
			return errors.New("stage name missing from context")
		}
		if _, ok := services.RunIDFromContext(ctx); !ok {
			return errors.New("run id missing from context")
		}
		return nil
	}}
	runner, _ := newRunner(t, stage)
	if err := runner.Run(context.Background(), &collection.Table{}); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
}

func TestRunFlushesBeforeReturningStageError(t *testing.T) {
	boom := errors.New("stage blew up")
	failing := &stubStage{name: "failing", execute: func(ctx context.Context, table *collection.Table) error {
		table.Rows = append(table.Rows, &collection.Row{OriginalLine: "partial"})
		return boom
	}}
	after := &stubStage{name: "after"}
	runner, out := newRunner(t, failing, after)

	err := runner.Run(context.Background(), &collection.Table{})
	if err == nil || !errors.Is(err, boom) {
		t.Fatalf("Run error = %v, want wrapped stage error", err)
	}
	if after.calls != 0 {
		t.Fatal("stage after the failure still ran")
	}

	saved, loadErr := collection.Load(out)
	if loadErr != nil {
		t.Fatalf("load checkpoint: %v", loadErr)
	}
	if len(saved.Rows) != 1 || saved.Rows[0].OriginalLine != "partial" {
		t.Fatalf("partial progress not persisted: %#v", saved.Rows)
	}
}

func TestRunPropagatesCancellation(t *testing.T) {
	stage := &stubStage{name: "cancelled", execute: func(ctx context.Context, table *collection.Table) error {
		return context.Canceled
	}}
	runner, _ := newRunner(t, stage)

	err := runner.Run(context.Background(), &collection.Table{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run error = %v, want context.Canceled", err)
	}
	if services.IsTransient(err) {
		t.Fatal("cancellation must not be classified transient")
	}
}

func TestPace(t *testing.T) {
	if err := pipeline.Pace(context.Background(), 0); err != nil {
		t.Fatalf("zero delay returned error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := pipeline.Pace(ctx, time.Minute); !errors.Is(err, context.Canceled) {
		t.Fatalf("Pace on cancelled context = %v", err)
	}
}
