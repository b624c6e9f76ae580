package finance

import (
	"time"

	"github.com/caesgo22-droid/IA-Remates-CR/internal/model"
)

// Summary aggregates the projections of a set of saved properties.
type Summary struct {
	Count          int
	TotalInvested  float64
	PotentialValue float64
	ProjectedGain  float64
	// ROI is the portfolio-wide return: total gain over total invested.
	ROI float64
}

// Summarize totals the projections of props at now.
func Summarize(props []*model.Property, now time.Time) Summary {
	var s Summary

	for _, p := range props {
		if p == nil {
			continue
		}
		s.Count++
		s.TotalInvested += Project(p, now).TotalInvestment
		if p.Analisis != nil {
			s.PotentialValue += finite(p.Analisis.PrecioVentaEstimado)
		}
	}

	s.ProjectedGain = s.PotentialValue - s.TotalInvested
	s.ROI = ROI(s.ProjectedGain, s.TotalInvested)
	return s
}
