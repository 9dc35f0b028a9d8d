package logging_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"furrow/internal/logging"
)

func TestJSONFormatRenamesCoreKeys(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	logger.Info("allocation complete", logging.Int(logging.FieldCount, 3))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if record["msg"] != "allocation complete" {
		t.Fatalf("unexpected msg: %v", record["msg"])
	}
	if record["level"] != "info" {
		t.Fatalf("expected lowercase level, got %v", record["level"])
	}
	if _, ok := record["ts"]; !ok {
		t.Fatal("expected ts key in JSON output")
	}
	if record[logging.FieldCount] != float64(3) {
		t.Fatalf("unexpected count attr: %v", record[logging.FieldCount])
	}
}

func TestConsoleFormatIncludesComponentAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	logging.WithComponent(logger, "allocator").Warn("partial grant",
		logging.String(logging.FieldAnnotator, "u1"),
		logging.Int(logging.FieldCount, 2))

	line := buf.String()
	if !strings.Contains(line, "[allocator]") {
		t.Fatalf("expected component tag, got %q", line)
	}
	if !strings.Contains(line, "WARN") {
		t.Fatalf("expected level, got %q", line)
	}
	if !strings.Contains(line, "annotator_id=u1") || !strings.Contains(line, "count=2") {
		t.Fatalf("expected attrs, got %q", line)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "warn", Output: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	logger.Info("suppressed")
	logger.Warn("kept")
	if strings.Contains(buf.String(), "suppressed") {
		t.Fatalf("info record should be filtered: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "kept") {
		t.Fatalf("warn record missing: %q", buf.String())
	}
}

func TestUnknownFormatRejected(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestErrorAttr(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	logger.Error("store open failed", logging.Error(errors.New("disk full")))
	if !strings.Contains(buf.String(), `error="disk full"`) {
		t.Fatalf("expected quoted error attr, got %q", buf.String())
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := logging.NewNop()
	logger.Info("should not panic")
	logger.Error("still fine")
}
