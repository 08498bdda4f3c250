package guide

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNewLoggerPrefixAndLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf, log.InfoLevel)
	l.Debug("hidden")
	l.Info("shown", "id", "welcome")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug message logged at info level: %q", out)
	}
	if !strings.Contains(out, "guide") || !strings.Contains(out, "shown") || !strings.Contains(out, "welcome") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestDebugLogOnlyWhenEnabled(t *testing.T) {
	var buf bytes.Buffer
	g := newTestGuide(t, WithLogger(NewLogger(&buf, log.DebugLevel)))
	o := newTestOverlay(g)
	stats := drawStats{id: "a", vertexCount: 120, triangleCount: 80, lineCount: 2, drawTime: time.Millisecond}

	o.debugLog(stats)
	if strings.Contains(buf.String(), "overlay draw") {
		t.Fatal("draw stats logged with debug off")
	}

	o.debug = true
	o.debugLog(stats)
	out := buf.String()
	if !strings.Contains(out, "overlay draw") || !strings.Contains(out, "vertices=120") {
		t.Errorf("draw stats missing from %q", out)
	}
}
