package logger

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestNewWithWriterLevels(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "prod")
	log.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug must be filtered in prod, got %q", buf.String())
	}

	log = NewWithWriter(&buf, "dev")
	log.Debug("visible", "k", 1)

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if rec["msg"] != "visible" || rec["service"] != service || rec["env"] != "dev" {
		t.Fatalf("unexpected record: %v", rec)
	}
}
