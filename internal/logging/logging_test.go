package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewWithOutput_LevelAndFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithOutput("debug", "json", &buf)
	if logger.GetLevel() != logrus.DebugLevel {
		t.Errorf("level = %v, want debug", logger.GetLevel())
	}
	logger.Info("hello")
	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if line["msg"] != "hello" {
		t.Errorf("msg = %v, want hello", line["msg"])
	}
}

func TestNewWithOutput_UnknownLevelFallsBackToInfo(t *testing.T) {
	logger := NewWithOutput("loud", "", &bytes.Buffer{})
	if logger.GetLevel() != logrus.InfoLevel {
		t.Errorf("level = %v, want info", logger.GetLevel())
	}
}

func TestNewWithOutput_Text(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithOutput("info", "TEXT", &buf)
	logger.Info("hello")
	if !strings.Contains(buf.String(), "msg=hello") {
		t.Errorf("text output = %q, want msg=hello", buf.String())
	}
}

func TestLogError_Fields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithOutput("info", "json", &buf)
	LogError(logger, "report", "Sync", "fetch reports", map[string]int{"attempt": 1}, errors.New("connection refused"))

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if line["module"] != "report" || line["funcName"] != "Sync" || line["context"] != "fetch reports" {
		t.Errorf("fields = %v", line)
	}
	if line["msg"] != "connection refused" || line["level"] != "error" {
		t.Errorf("msg/level = %v/%v", line["msg"], line["level"])
	}
	if _, ok := line["data"]; !ok {
		t.Error("data field missing")
	}
}

func TestLogError_NilErrorIsNoop(t *testing.T) {
	var buf bytes.Buffer
	LogError(NewWithOutput("info", "json", &buf), "m", "f", "c", nil, nil)
	if buf.Len() != 0 {
		t.Errorf("output = %q, want empty", buf.String())
	}
}
