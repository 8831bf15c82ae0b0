package tracing

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider_DisabledIsNoop(t *testing.T) {
	p, err := NewProvider(Config{Enabled: false})

	require.NoError(t, err)
	assert.False(t, p.Enabled())
	assert.NotNil(t, p.Tracer())
	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestNewProvider_FileExporterRequiresPath(t *testing.T) {
	_, err := NewProvider(Config{Enabled: true, Exporter: "file"})

	assert.Error(t, err)
}

func TestNewProvider_UnsupportedExporter(t *testing.T) {
	_, err := NewProvider(Config{Enabled: true, Exporter: "carrier-pigeon"})

	assert.Error(t, err)
}

func TestNewProvider_NoneExporter(t *testing.T) {
	p, err := NewProvider(Config{Enabled: true, Exporter: "none"})

	require.NoError(t, err)
	assert.True(t, p.Enabled())
	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestFileExporter_WritesSpans(t *testing.T) {
	path := filepath.Join(t.TempDir(), "traces", "out.jsonl")
	p, err := NewProvider(Config{Enabled: true, Exporter: "file", FilePath: path})
	require.NoError(t, err)

	_, span := p.Tracer().Start(context.Background(), SpanPrefixResolve+"macro")
	span.End()
	require.NoError(t, p.Shutdown(context.Background()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	var record SpanRecord
	require.NoError(t, json.Unmarshal([]byte(splitFirstLine(data)), &record))
	assert.Equal(t, "resolve.macro", record.Name)
	assert.NotEmpty(t, record.TraceID)
}

func splitFirstLine(data []byte) string {
	for i, b := range data {
		if b == '\n' {
			return string(data[:i])
		}
	}
	return string(data)
}
