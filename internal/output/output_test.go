package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/jackzampolin/tocsplit/internal/toc"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
		wantErr  bool
	}{
		{"", FormatYAML, false},
		{"yaml", FormatYAML, false},
		{"json", FormatJSON, false},
		{"toml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("unexpected error state: %v", err)
			}
			if got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestTo(t *testing.T) {
	sections := []toc.Section{{ID: 1, Title: "Ch1", Level: 1, Start: 0, End: 2}}

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		if err := To(&buf, FormatJSON, sections); err != nil {
			t.Fatal(err)
		}
		var decoded []toc.Section
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("invalid json %q: %v", buf.String(), err)
		}
		if len(decoded) != 1 || decoded[0] != sections[0] {
			t.Errorf("got %+v", decoded)
		}
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		if err := To(&buf, FormatYAML, sections); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(buf.String(), "title: Ch1") {
			t.Errorf("unexpected yaml: %q", buf.String())
		}
		var decoded []toc.Section
		if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("invalid yaml: %v", err)
		}
		if len(decoded) != 1 || decoded[0] != sections[0] {
			t.Errorf("got %+v", decoded)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		if err := To(&bytes.Buffer{}, Format("xml"), sections); err == nil {
			t.Error("expected error for unknown format")
		}
	})
}
