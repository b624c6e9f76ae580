// Package finance projects the cost and return of buying a property at
// auction. Every function is pure; amounts are computed in colones.
package finance

import (
	"math"
	"strings"
	"time"

	"github.com/caesgo22-droid/IA-Remates-CR/internal/model"
)

// Fixed rates used for projections. There is no live exchange-rate lookup.
const (
	ExchangeRate    = 515.0
	TransferTaxRate = 0.025
	LegalFeesRate   = 0.015
)

// Auction stage labels.
const (
	StagePrimero   = "1er Remate"
	StageSegundo   = "2do Remate (-25%)"
	StageTercero   = "3er Remate (-50%)"
	StageFinalized = "Finalizado"
)

// ToCRC converts amount to colones.
func ToCRC(amount float64, moneda model.Moneda) float64 {
	if amount == 0 || math.IsNaN(amount) {
		return 0
	}
	if moneda == model.USD {
		return amount * ExchangeRate
	}
	return amount
}

// AuctionStatus is the stage of an auction at a point in time.
// Date is zero when the auction is over.
type AuctionStatus struct {
	Date     time.Time
	Stage    string
	Price    float64
	IsFuture bool
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// ParseDate reads a stage date. Date-only values are midnight UTC.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Status resolves the active stage: the first of the three stage dates that
// is still after now. Missing or unreadable dates are skipped.
func Status(p *model.Property, now time.Time) AuctionStatus {
	stages := []struct {
		date  string
		stage string
		price float64
	}{
		{p.FechaRemate, StagePrimero, p.PrecioBaseNumerico},
		{p.FechaSegundoRemate, StageSegundo, p.MontoSegundoRemateNumerico},
		{p.FechaTercerRemate, StageTercero, p.MontoTercerRemateNumerico},
	}

	for _, s := range stages {
		date, ok := ParseDate(s.date)
		if ok && date.After(now) {
			return AuctionStatus{Stage: s.stage, Price: s.price, Date: date, IsFuture: true}
		}
	}
	return AuctionStatus{Stage: StageFinalized}
}

// Projection is the expected outcome of an investment.
type Projection struct {
	EffectiveDate      time.Time
	Stage              string
	AcquisitionCost    float64
	AcquisitionCostCRC float64
	TotalInvestment    float64
	NetProfit          float64
	ROI                float64
	IsFuture           bool
}

// AcquisitionPrice is what the investor expects to pay, in the property's own
// currency. A 2do or 3er strategy overrides the calendar when that round has a price.
func AcquisitionPrice(p *model.Property, status AuctionStatus) float64 {
	price := status.Price
	switch p.Estrategia {
	case model.EstrategiaSegundo:
		if p.MontoSegundoRemateNumerico > 0 {
			price = p.MontoSegundoRemateNumerico
		}
	case model.EstrategiaTercero:
		if p.MontoTercerRemateNumerico > 0 {
			price = p.MontoTercerRemateNumerico
		}
	}
	return price
}

// Project computes the investment projection of p at now. Remodeling, legal
// costs and the sale price are taken to be in colones already.
func Project(p *model.Property, now time.Time) Projection {
	status := Status(p, now)
	acquisition := AcquisitionPrice(p, status)
	acquisitionCRC := ToCRC(acquisition, p.Moneda)

	var remodel, legal, sale float64
	if a := p.Analisis; a != nil {
		remodel = finite(a.CostoRemodelacion)
		legal = finite(a.CostosLegales)
		sale = finite(a.PrecioVentaEstimado)
	}

	total := acquisitionCRC + remodel + legal
	profit := sale - total

	return Projection{
		Stage:              status.Stage,
		AcquisitionCost:    acquisition,
		AcquisitionCostCRC: acquisitionCRC,
		TotalInvestment:    total,
		NetProfit:          profit,
		ROI:                ROI(profit, total),
		EffectiveDate:      status.Date,
		IsFuture:           status.IsFuture,
	}
}

// ROI returns profit as a percentage of investment, or 0 when nothing is invested.
func ROI(profit, investment float64) float64 {
	if investment <= 0 {
		return 0
	}
	return finite(profit / investment * 100)
}

// SuggestedLegalCost estimates transfer tax plus legal fees on the base price.
func SuggestedLegalCost(p *model.Property) float64 {
	return math.Round(ToCRC(p.PrecioBaseNumerico, p.Moneda) * (TransferTaxRate + LegalFeesRate))
}

// DefaultAnalysis is the analysis a property starts with when it is saved.
func DefaultAnalysis(p *model.Property) *model.Analisis {
	return &model.Analisis{CostosLegales: SuggestedLegalCost(p)}
}

// SeedAnalysis returns a copy of the analysis of p with the suggested legal
// cost filled in when none was set. A missing analysis becomes DefaultAnalysis.
func SeedAnalysis(p *model.Property) *model.Analisis {
	if p.Analisis == nil {
		return DefaultAnalysis(p)
	}
	a := *p.Analisis
	if a.CostosLegales == 0 {
		a.CostosLegales = SuggestedLegalCost(p)
	}
	return &a
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
