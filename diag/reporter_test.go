package diag

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/appbuilder/abcore/log"
	"github.com/stretchr/testify/require"
)

func TestLogReporter_Report(t *testing.T) {
	var buf bytes.Buffer
	r := NewLogReporter(slog.New(slog.NewJSONHandler(&buf, nil)))

	r.Report(errors.New("could not find object"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "ERROR", entry["level"])
	require.Equal(t, "could not find object", entry["msg"])
	require.Equal(t, "could not find object", entry[log.ErrorKey])
	require.NotEmpty(t, entry[log.StacktraceKey])
}

func TestLogReporter_IgnoresNil(t *testing.T) {
	var buf bytes.Buffer
	r := NewLogReporter(slog.New(slog.NewJSONHandler(&buf, nil)))

	r.Report(nil)
	require.Zero(t, buf.Len())
}

func TestMemoryReporter(t *testing.T) {
	r := &MemoryReporter{}
	r.Report(errors.New("a"))
	r.Report(nil)
	r.Report(errors.New("b"))

	require.Len(t, r.Errors(), 2)
}
