package sheets

import (
	"math"
	"time"

	"github.com/caesgo22-droid/IA-Remates-CR/internal/finance"
	"github.com/caesgo22-droid/IA-Remates-CR/internal/model"
)

// DetailHeader names the columns of the per-property table.
var DetailHeader = []any{
	"Expediente", "Tipo", "Provincia", "Cantón", "Etapa", "Fecha",
	"Adquisición (₡)", "Remodelación (₡)", "Legales (₡)", "Inversión total (₡)",
	"Venta estimada (₡)", "Ganancia neta (₡)", "ROI %", "Notas",
}

// detailStartRow is the zero-based row where DetailHeader is written.
const detailStartRow = 8

// preparePortfolioData lays out the summary block followed by one row per property.
func preparePortfolioData(props []*model.Property, summary finance.Summary, now time.Time) [][]any {
	values := make([][]any, 0, detailStartRow+1+len(props))
	values = append(values,
		[]any{"Portafolio de Remates", now.Format("2006-01-02 15:04")},
		[]any{},
		[]any{"Resumen"},
		[]any{"Propiedades", summary.Count},
		[]any{"Inversión total (₡)", summary.TotalInvested},
		[]any{"Valor potencial (₡)", summary.PotentialValue},
		[]any{"Ganancia proyectada (₡)", summary.ProjectedGain},
		[]any{"ROI %", roundTo(summary.ROI, 2)},
		DetailHeader,
	)

	for _, p := range props {
		proj := finance.Project(p, now)
		var remodel, legal, sale float64
		var notes string
		if a := p.Analisis; a != nil {
			remodel, legal, sale, notes = a.CostoRemodelacion, a.CostosLegales, a.PrecioVentaEstimado, a.Notas
		}
		date := ""
		if proj.IsFuture {
			date = proj.EffectiveDate.Format("2006-01-02")
		}
		values = append(values, []any{
			p.NumeroExpediente,
			string(p.TipoBien),
			p.Provincia,
			p.Canton,
			proj.Stage,
			date,
			proj.AcquisitionCostCRC,
			remodel,
			legal,
			proj.TotalInvestment,
			sale,
			proj.NetProfit,
			roundTo(proj.ROI, 2),
			notes,
		})
	}
	return values
}

func roundTo(v float64, places int) float64 {
	pow := math.Pow(10, float64(places))
	return math.Round(v*pow) / pow
}
