package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aretw0/vigil/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsTerminal_Buffer(t *testing.T) {
	assert.False(t, IsTerminal(&bytes.Buffer{}))
}

func TestWriteMarkdown_PlainForNonTerminal(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMarkdown(&buf, "# Title\n"))
	assert.Equal(t, "# Title\n", buf.String())
}

func TestHealth_NoColourOffTerminal(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, "degraded", Health(&buf, domain.HealthDegraded))
	assert.Equal(t, "unknown", Health(&buf, domain.SystemHealth("unknown")))
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf)
	assert.True(t, strings.Contains(buf.String(), `\_/`))
	assert.NotContains(t, buf.String(), "\x1b[", "no escape codes when writing to a buffer")
}

func TestNewRenderer(t *testing.T) {
	out, err := NewRenderer()("**bold**")
	require.NoError(t, err)
	assert.Contains(t, out, "bold")
}
