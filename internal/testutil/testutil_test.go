package testutil

import (
	"context"
	"testing"

	"github.com/caesgo22-droid/IA-Remates-CR/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleResultsAreValid(t *testing.T) {
	for _, p := range SampleResults() {
		assert.NoError(t, p.Validate(), p.ID)
	}
}

func TestBuilderReturnsCopies(t *testing.T) {
	b := NewProperty("x").WithAnalisis(model.Analisis{CostosLegales: 100})
	first := b.Build()
	first.Analisis.CostosLegales = 999

	second := b.Build()
	assert.InDelta(t, 100, second.Analisis.CostosLegales, 0.001)
}

func TestSetupTestDB(t *testing.T) {
	db := SetupTestDB(t)
	db.SeedResults(SampleResults()...)
	db.SeedSaved("u1", SampleResults()[0])

	results, err := db.Storage.GetResults(context.Background())
	require.NoError(t, err)
	assert.Len(t, results, 4)

	saved, err := db.Storage.GetSavedProperties(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, "lot-a", saved[0].ID)
}
