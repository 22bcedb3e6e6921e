package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/vigil/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const demoScenario = "../../examples/scenarios/demo.yaml"

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	cfgPath := filepath.Join(t.TempDir(), "absent.yaml")
	rootCmd.SetArgs(append(args, "--config", cfgPath, "--log-level", "error"))
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestVersionCommand(t *testing.T) {
	out := execute(t, "version")
	assert.Contains(t, out, "vigil version ")
}

func TestSimulateJSON(t *testing.T) {
	out := execute(t, "simulate", demoScenario, "--format", "json", "--timeframe", "1h")

	var r domain.Report
	require.NoError(t, json.Unmarshal([]byte(out), &r))

	assert.NotEmpty(t, r.ID)
	assert.Equal(t, "1h", r.Timeframe)
	require.Len(t, r.Workflows, 1)
	assert.Equal(t, "workflow-demo-123", r.Workflows[0].ID)

	require.Len(t, r.Bottlenecks, 1)
	assert.Equal(t, "design", r.Bottlenecks[0].Phase)
	assert.Equal(t, 40, r.Bottlenecks[0].DurationMinutes)
	assert.Len(t, r.Predictions, 1)
}

func TestSimulateMarkdown(t *testing.T) {
	out := execute(t, "simulate", demoScenario, "--format", "markdown")
	assert.True(t, strings.HasPrefix(out, "# Vigil performance report"), out)
	assert.Contains(t, out, "workflow-demo-123")
}

func TestGraphCommand(t *testing.T) {
	out := execute(t, "graph", demoScenario, "--workflow", "workflow-demo-123")
	assert.True(t, strings.HasPrefix(out, "graph TD"))
	assert.Contains(t, out, "⏱️ 40 min")
}
