package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, Config{Env: "production", Level: "info", App: "biocol"})

	l.Component("entreposto").Info().Str("declaration_number", "DA-1").Msg("ok")
	l.Debug().Msg("descartado")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var ev map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &ev))
	assert.Equal(t, "biocol", ev["app"])
	assert.Equal(t, "entreposto", ev["component"])
	assert.Equal(t, "DA-1", ev["declaration_number"])
}

func TestParseLevel_Fallback(t *testing.T) {
	assert.Equal(t, "info", parseLevel("").String())
	assert.Equal(t, "info", parseLevel("barulho").String())
	assert.Equal(t, "debug", parseLevel("debug").String())
}
