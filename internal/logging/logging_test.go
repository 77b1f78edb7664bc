package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	t.Run("filters below level", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := New(&buf, "warn", "text")
		if err != nil {
			t.Fatal(err)
		}
		logger.Info("hidden")
		logger.Warn("shown", "id", 3)

		out := buf.String()
		if strings.Contains(out, "hidden") {
			t.Errorf("info message should be filtered: %q", out)
		}
		if !strings.Contains(out, "shown") || !strings.Contains(out, "id=3") {
			t.Errorf("warn message missing: %q", out)
		}
	})

	t.Run("json format", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := New(&buf, "debug", "json")
		if err != nil {
			t.Fatal(err)
		}
		logger.Debug("extracted section", "id", 1)

		var entry map[string]any
		if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
			t.Fatalf("expected a JSON line, got %q: %v", buf.String(), err)
		}
		if entry["msg"] != "extracted section" {
			t.Errorf("unexpected entry: %v", entry)
		}
	})

	t.Run("rejects unknown values", func(t *testing.T) {
		if _, err := New(&bytes.Buffer{}, "loud", "text"); err == nil {
			t.Error("expected error for unknown level")
		}
		if _, err := New(&bytes.Buffer{}, "info", "xml"); err == nil {
			t.Error("expected error for unknown format")
		}
	})
}
