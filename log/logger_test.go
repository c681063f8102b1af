package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	type spec struct {
		in  string
		exp Level
	}
	specs := []spec{
		{"debug", Debug},
		{"INFO", Info},
		{"", Notice},
		{" warn ", Warning},
		{"error", Error},
	}

	for index, s := range specs {
		got, err := ParseLevel(s.in)
		if err != nil {
			t.Fatalf("[spec %d] unexpected error: %v", index, err)
		}
		if got != s.exp {
			t.Fatalf("[spec %d] expected level %d; got %d", index, s.exp, got)
		}
	}

	expError := `log: unknown level "loud"`
	if _, err := ParseLevel("loud"); err == nil || err.Error() != expError {
		t.Fatalf("expected to get %s; got %v", expError, err)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	SetSink(&buf)
	defer Discard()

	SetLevel(Warning)
	logger := New("filter-test")
	logger.Info("hidden message")
	logger.Warning("visible message")

	out := buf.String()
	if strings.Contains(out, "hidden message") {
		t.Fatalf("expected info message to be filtered; got %q", out)
	}
	if !strings.Contains(out, "visible message") || !strings.Contains(out, "[filter-test]") {
		t.Fatalf("expected warning message with module name; got %q", out)
	}
	SetLevel(Notice)
}
