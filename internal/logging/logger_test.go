package logging_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"boardshelf/internal/logging"
	"boardshelf/internal/services"
)

func TestConsoleHandlerFormatsComponentPrefix(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logging.NewComponentLogger(logger, "resolver").Info("row resolved",
		logging.Int("bgg_id", 13),
		logging.String("confidence", "High"))

	line := buf.String()
	if !strings.Contains(line, "INFO resolver: row resolved") {
		t.Fatalf("unexpected line %q", line)
	}
	if !strings.Contains(line, "bgg_id=13") || !strings.Contains(line, "confidence=High") {
		t.Fatalf("missing attributes in %q", line)
	}
}

func TestConsoleHandlerQuotesValuesWithSpaces(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("match", logging.String("name", "Twilight Struggle"))
	if !strings.Contains(buf.String(), `name="Twilight Struggle"`) {
		t.Fatalf("expected quoted value, got %q", buf.String())
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestWithContextAddsRunFields(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ctx := services.WithRunID(context.Background(), "run-1")
	ctx = services.WithStage(ctx, "enrich")
	ctx = services.WithRowLine(ctx, 7)

	logging.WithContext(ctx, logger).Info("checkpoint")

	line := buf.String()
	for _, want := range []string{"run_id=run-1", "stage=enrich", "row_line=7"} {
		if !strings.Contains(line, want) {
			t.Fatalf("missing %q in %q", want, line)
		}
	}
}
