package logs

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func readLines(t *testing.T, path string) []map[string]any {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	defer f.Close()
	var out []map[string]any
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var rec map[string]any
		if err := json.Unmarshal(sc.Bytes(), &rec); err != nil {
			t.Fatalf("bad json line %q: %v", sc.Text(), err)
		}
		out = append(out, rec)
	}
	return out
}

func TestEventWritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.log")
	l, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	l.Event("open.success", map[string]any{"file": "a.txt", "lines": 3})
	l.Event("action", map[string]any{"name": "quit"})
	l.Close()

	recs := readLines(t, path)
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2", len(recs))
	}
	if recs[0]["event"] != "open.success" || recs[0]["file"] != "a.txt" {
		t.Fatalf("unexpected first record: %v", recs[0])
	}
	if n, ok := recs[0]["lines"].(float64); !ok || n != 3 {
		t.Fatalf("lines=%v, want 3", recs[0]["lines"])
	}
	ts, ok := recs[0]["time"].(string)
	if !ok {
		t.Fatalf("missing time in %v", recs[0])
	}
	if _, err := time.Parse(time.RFC3339Nano, ts); err != nil {
		t.Fatalf("time %q is not RFC3339: %v", ts, err)
	}
	if _, ok := recs[0]["level"]; ok {
		t.Fatalf("records should not carry a level: %v", recs[0])
	}
	if recs[1]["name"] != "quit" {
		t.Fatalf("unexpected second record: %v", recs[1])
	}
}

func TestNewFromEnvDisabledByDefault(t *testing.T) {
	t.Setenv("TERMEDIT_LOG", "")
	t.Setenv("TERMEDIT_LOG_FILE", "")
	l := NewFromEnv()
	if l.Enabled() {
		t.Fatalf("logger should be disabled without env")
	}
	l.Event("key", map[string]any{"key": "x"})
	l.Close()
}

func TestNewFromEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env.log")
	t.Setenv("TERMEDIT_LOG", "")
	t.Setenv("TERMEDIT_LOG_FILE", path)
	l := NewFromEnv()
	if !l.Enabled() {
		t.Fatalf("logger should be enabled by TERMEDIT_LOG_FILE")
	}
	l.Event("run.start", nil)
	l.Close()
	l.Event("after.close", nil)

	recs := readLines(t, path)
	if len(recs) != 1 || recs[0]["event"] != "run.start" {
		t.Fatalf("unexpected records: %v", recs)
	}
}

func TestNewFromEnvUnwritablePath(t *testing.T) {
	t.Setenv("TERMEDIT_LOG_FILE", filepath.Join(t.TempDir(), "missing", "dir", "x.log"))
	if NewFromEnv().Enabled() {
		t.Fatalf("logger should be disabled when the file cannot be opened")
	}
}

func TestNilLoggerIsSafe(t *testing.T) {
	var l *Logger
	l.Event("key", map[string]any{"key": "x"})
	l.Close()
}
