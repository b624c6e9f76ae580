package finance

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caesgo22-droid/IA-Remates-CR/internal/model"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestToCRC(t *testing.T) {
	assert.InDelta(t, 1000, ToCRC(1000, model.CRC), 0.001)
	assert.InDelta(t, 515_000, ToCRC(1000, model.USD), 0.001)
	assert.Zero(t, ToCRC(0, model.USD))
	assert.Zero(t, ToCRC(math.NaN(), model.CRC))
}

func TestParseDate(t *testing.T) {
	d, ok := ParseDate("2025-03-10")
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), d)

	_, ok = ParseDate("2025-03-10T14:30:00Z")
	assert.True(t, ok)

	_, ok = ParseDate("el diez de marzo")
	assert.False(t, ok)

	_, ok = ParseDate("")
	assert.False(t, ok)
}

func TestStatus(t *testing.T) {
	tests := []struct {
		name      string
		property  model.Property
		wantStage string
		wantPrice float64
		future    bool
	}{
		{
			name:      "first round in the future",
			property:  model.Property{FechaRemate: "2025-07-01", PrecioBaseNumerico: 100},
			wantStage: StagePrimero, wantPrice: 100, future: true,
		},
		{
			name: "second round active",
			property: model.Property{
				FechaRemate: "2025-05-01", PrecioBaseNumerico: 100,
				FechaSegundoRemate: "2025-06-15", MontoSegundoRemateNumerico: 75,
			},
			wantStage: StageSegundo, wantPrice: 75, future: true,
		},
		{
			name: "third round active with missing second date",
			property: model.Property{
				FechaRemate: "2025-05-01", PrecioBaseNumerico: 100,
				FechaTercerRemate: "2025-06-20", MontoTercerRemateNumerico: 50,
			},
			wantStage: StageTercero, wantPrice: 50, future: true,
		},
		{
			name: "all rounds past",
			property: model.Property{
				FechaRemate: "2025-01-01", FechaSegundoRemate: "2025-02-01", FechaTercerRemate: "2025-03-01",
				PrecioBaseNumerico: 100, MontoSegundoRemateNumerico: 75, MontoTercerRemateNumerico: 50,
			},
			wantStage: StageFinalized,
		},
		{
			name:      "no dates",
			property:  model.Property{PrecioBaseNumerico: 100},
			wantStage: StageFinalized,
		},
		{
			name:      "unreadable date skipped",
			property:  model.Property{FechaRemate: "por definir", PrecioBaseNumerico: 100},
			wantStage: StageFinalized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Status(&tt.property, now)
			assert.Equal(t, tt.wantStage, got.Stage)
			assert.InDelta(t, tt.wantPrice, got.Price, 0.001)
			assert.Equal(t, tt.future, got.IsFuture)
			if !tt.future {
				assert.True(t, got.Date.IsZero())
			}
		})
	}
}

func TestProject_SecondRoundStrategy(t *testing.T) {
	p := &model.Property{
		Estrategia:                 model.EstrategiaSegundo,
		MontoSegundoRemateNumerico: 7_500_000,
		Moneda:                     model.CRC,
		Analisis: &model.Analisis{
			PrecioVentaEstimado: 10_000_000,
			CostosLegales:       200_000,
		},
	}

	got := Project(p, now)
	assert.InDelta(t, 7_500_000, got.AcquisitionCost, 0.001)
	assert.InDelta(t, 7_700_000, got.TotalInvestment, 0.001)
	assert.InDelta(t, 2_300_000, got.NetProfit, 0.001)
	assert.InDelta(t, 29.87, got.ROI, 0.01)
	assert.Equal(t, StageFinalized, got.Stage)
}

func TestProject_StrategyWithoutPriceFallsBackToCalendar(t *testing.T) {
	p := &model.Property{
		Estrategia:         model.EstrategiaTercero,
		FechaRemate:        "2025-07-01",
		PrecioBaseNumerico: 1_000_000,
		Moneda:             model.CRC,
	}
	assert.InDelta(t, 1_000_000, Project(p, now).AcquisitionCost, 0.001)
}

func TestProject_NormalizesDollars(t *testing.T) {
	p := &model.Property{
		FechaRemate:        "2025-07-01",
		PrecioBaseNumerico: 10_000,
		Moneda:             model.USD,
		Analisis:           &model.Analisis{CostoRemodelacion: 150_000},
	}

	got := Project(p, now)
	assert.InDelta(t, 10_000, got.AcquisitionCost, 0.001)
	assert.InDelta(t, 5_150_000, got.AcquisitionCostCRC, 0.001)
	assert.InDelta(t, 5_300_000, got.TotalInvestment, 0.001)
	assert.True(t, got.IsFuture)
}

func TestProject_ZeroInvestmentHasZeroROI(t *testing.T) {
	p := &model.Property{
		Moneda:   model.CRC,
		Analisis: &model.Analisis{PrecioVentaEstimado: 5_000_000},
	}

	got := Project(p, now)
	assert.Zero(t, got.TotalInvestment)
	assert.Zero(t, got.ROI)
	assert.False(t, math.IsNaN(got.ROI))
	assert.False(t, math.IsInf(got.ROI, 0))
}

func TestSuggestedLegalCost(t *testing.T) {
	assert.InDelta(t, 400_000, SuggestedLegalCost(&model.Property{PrecioBaseNumerico: 10_000_000, Moneda: model.CRC}), 0.001)
	assert.InDelta(t, 20_600, SuggestedLegalCost(&model.Property{PrecioBaseNumerico: 1_000, Moneda: model.USD}), 0.001)
	assert.InDelta(t, 400_000, DefaultAnalysis(&model.Property{PrecioBaseNumerico: 10_000_000}).CostosLegales, 0.001)
}

func TestSeedAnalysis(t *testing.T) {
	p := &model.Property{PrecioBaseNumerico: 10_000_000, Moneda: model.CRC}
	assert.InDelta(t, 400_000, SeedAnalysis(p).CostosLegales, 0.001)

	p.Analisis = &model.Analisis{PrecioVentaEstimado: 15_000_000}
	seeded := SeedAnalysis(p)
	assert.InDelta(t, 400_000, seeded.CostosLegales, 0.001)
	assert.InDelta(t, 15_000_000, seeded.PrecioVentaEstimado, 0.001)
	assert.Zero(t, p.Analisis.CostosLegales, "input must not be modified")

	p.Analisis = &model.Analisis{CostosLegales: 250_000}
	assert.InDelta(t, 250_000, SeedAnalysis(p).CostosLegales, 0.001)
}

func TestSummarize(t *testing.T) {
	props := []*model.Property{
		{
			FechaRemate: "2025-07-01", PrecioBaseNumerico: 8_000_000, Moneda: model.CRC,
			Analisis: &model.Analisis{PrecioVentaEstimado: 12_000_000, CostosLegales: 2_000_000},
		},
		{
			FechaRemate: "2025-07-01", PrecioBaseNumerico: 10_000, Moneda: model.USD,
			Analisis: &model.Analisis{PrecioVentaEstimado: 6_000_000, CostoRemodelacion: 850_000},
		},
		nil,
	}

	got := Summarize(props, now)
	assert.Equal(t, 2, got.Count)
	assert.InDelta(t, 16_000_000, got.TotalInvested, 0.001)
	assert.InDelta(t, 18_000_000, got.PotentialValue, 0.001)
	assert.InDelta(t, 2_000_000, got.ProjectedGain, 0.001)
	assert.InDelta(t, 12.5, got.ROI, 0.001)

	assert.Zero(t, Summarize(nil, now).ROI)
}
