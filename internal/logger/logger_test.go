package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "debug", false)
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	l.Debug().Str("url", "https://en.wikipedia.org/wiki/Paris").Msg("scraped")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["level"] != "debug" || entry["message"] != "scraped" {
		t.Errorf("unexpected entry: %v", entry)
	}
	if _, ok := entry["time"]; !ok {
		t.Error("missing timestamp")
	}
}

func TestNew_LevelFiltering(t *testing.T) {
	tests := []struct {
		level     string
		debugSeen bool
		warnSeen  bool
	}{
		{"debug", true, true},
		{"info", false, true},
		{"", false, true},
		{"bogus", false, true},
		{"ERROR", false, false},
	}
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	for _, tt := range tests {
		var buf bytes.Buffer
		l := New(&buf, tt.level, false)
		l.Debug().Msg("debug-line")
		l.Warn().Msg("warn-line")

		if got := strings.Contains(buf.String(), "debug-line"); got != tt.debugSeen {
			t.Errorf("level %q: debug seen = %v, want %v", tt.level, got, tt.debugSeen)
		}
		if got := strings.Contains(buf.String(), "warn-line"); got != tt.warnSeen {
			t.Errorf("level %q: warn seen = %v, want %v", tt.level, got, tt.warnSeen)
		}
	}
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "info", true)
	l.Info().Msg("hello")

	if json.Valid(buf.Bytes()) {
		t.Error("console output should not be JSON")
	}
	if !strings.Contains(buf.String(), "hello") {
		t.Errorf("missing message: %q", buf.String())
	}
}

func TestToFile(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	restore, err := ToFile("info")
	if err != nil {
		t.Fatalf("ToFile: %v", err)
	}
	log.Info().Msg("while the UI runs")
	restore()

	path, err := FilePath()
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "while the UI runs") {
		t.Errorf("log file missing entry: %q", data)
	}
}
