package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/vigil/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunReportStoreContract runs a suite of tests to verify that a ReportStore implementation
// adheres to the defined interface contract.
func RunReportStoreContract(t *testing.T, store ReportStore) {
	ctx := context.Background()
	reportID := "contract-test-report-" + time.Now().Format("20060102150405")
	generated := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	newReport := func(id string) *domain.Report {
		return &domain.Report{
			ID:        id,
			Kind:      "performance",
			Generated: generated,
			Metrics: domain.Metrics{
				WorkflowCount:    2,
				ActiveWorkflows:  1,
				AgentUtilization: map[string]int{"dev1": 42},
			},
			Bottlenecks: []domain.Alert{{
				Type:            domain.AlertLongRunningPhase,
				Phase:           "build",
				DurationMinutes: 45,
			}},
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		err := store.Save(ctx, reportID, newReport(reportID))
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, reportID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, "performance", loaded.Kind)
		assert.True(t, generated.Equal(loaded.Generated))
		assert.Equal(t, 42, loaded.Metrics.AgentUtilization["dev1"])
		require.Len(t, loaded.Bottlenecks, 1)
		assert.Equal(t, 45, loaded.Bottlenecks[0].DurationMinutes)
	})

	t.Run("Load Returns Independent Copy", func(t *testing.T) {
		loaded, err := store.Load(ctx, reportID)
		require.NoError(t, err)
		loaded.Metrics.AgentUtilization["dev1"] = 0

		again, err := store.Load(ctx, reportID)
		require.NoError(t, err)
		assert.Equal(t, 42, again.Metrics.AgentUtilization["dev1"])
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+reportID)
		assert.ErrorIs(t, err, domain.ErrReportNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, reportID, newReport(reportID))
		require.NoError(t, err)

		err = store.Delete(ctx, reportID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, reportID)
		assert.ErrorIs(t, err, domain.ErrReportNotFound, "Load after Delete should return ErrReportNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := reportID + "-1"
		id2 := reportID + "-2"
		_ = store.Save(ctx, id1, newReport(id1))
		_ = store.Save(ctx, id2, newReport(id2))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		reports, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, reports, id1)
		assert.Contains(t, reports, id2)
	})
}
