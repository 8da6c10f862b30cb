package log

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestLogger_LevelsAndSink(t *testing.T) {
	var buf bytes.Buffer
	SetSink(&buf)
	defer func() {
		SetSink(os.Stderr)
		SetLevel(Notice)
	}()

	SetLevel(Notice)
	logger := New("logtest")
	logger.Info("hidden at notice level")
	logger.Noticef("rendered %d rows", 3)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("Expected info message to be filtered, got %q", out)
	}
	if !strings.Contains(out, "[logtest]") || !strings.Contains(out, "rendered 3 rows") {
		t.Errorf("Expected formatted notice, got %q", out)
	}

	buf.Reset()
	SetLevel(Debug)
	logger.Debugf("bounce %d", 7)
	if !strings.Contains(buf.String(), "bounce 7") {
		t.Errorf("Expected debug message at debug level, got %q", buf.String())
	}
}

func TestSetSink_KeepsLevel(t *testing.T) {
	var first, second bytes.Buffer
	SetSink(&first)
	defer func() {
		SetSink(os.Stderr)
		SetLevel(Notice)
	}()

	SetLevel(Error)
	SetSink(&second)
	New("logtest").Warning("should be filtered")
	if second.Len() != 0 {
		t.Errorf("Expected level to survive a sink change, got %q", second.String())
	}
}

func TestSetLevel_UnknownFallsBackToNotice(t *testing.T) {
	var buf bytes.Buffer
	SetSink(&buf)
	defer func() {
		SetSink(os.Stderr)
		SetLevel(Notice)
	}()

	SetLevel(Level(42))
	logger := New("logtest")
	logger.Info("hidden")
	logger.Notice("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Errorf("Expected notice level for an unknown level, got %q", out)
	}
}
