package query

import (
	"sort"
	"time"

	"github.com/caesgo22-droid/IA-Remates-CR/internal/finance"
	"github.com/caesgo22-droid/IA-Remates-CR/internal/model"
)

// DashboardSize is how many entries each dashboard list holds.
const DashboardSize = 5

// ProvinceCount is the number of properties in one province.
type ProvinceCount struct {
	Provincia string
	Count     int
}

// Stats summarizes a result set.
type Stats struct {
	CheapestProperties []*model.Property
	CheapestVehicles   []*model.Property
	Upcoming           []*model.Property
	ByProvince         []ProvinceCount
	Total              int
}

// Dashboard computes the overview shown after an extraction: the cheapest
// real estate and vehicles, the next auctions after now, and a per-province
// count ordered from most to least.
func Dashboard(props []*model.Property, now time.Time) Stats {
	byPrice := append([]*model.Property(nil), props...)
	sort.SliceStable(byPrice, func(i, j int) bool {
		return finance.ToCRC(byPrice[i].PrecioBaseNumerico, byPrice[i].Moneda) <
			finance.ToCRC(byPrice[j].PrecioBaseNumerico, byPrice[j].Moneda)
	})

	type dated struct {
		p    *model.Property
		date time.Time
	}
	var upcoming []dated
	counts := make(map[string]int)
	for _, p := range props {
		if d, ok := finance.ParseDate(p.FechaRemate); ok && d.After(now) {
			upcoming = append(upcoming, dated{p: p, date: d})
		}
		prov := p.Provincia
		if prov == "" {
			prov = model.ProvinciaDesconocida
		}
		counts[prov]++
	}
	sort.SliceStable(upcoming, func(i, j int) bool { return upcoming[i].date.Before(upcoming[j].date) })

	stats := Stats{
		CheapestProperties: firstOfKind(byPrice, model.TipoPropiedad),
		CheapestVehicles:   firstOfKind(byPrice, model.TipoVehiculo),
		Upcoming:           []*model.Property{},
		ByProvince:         make([]ProvinceCount, 0, len(counts)),
		Total:              len(props),
	}
	for i := 0; i < len(upcoming) && i < DashboardSize; i++ {
		stats.Upcoming = append(stats.Upcoming, upcoming[i].p)
	}
	for prov, n := range counts {
		stats.ByProvince = append(stats.ByProvince, ProvinceCount{Provincia: prov, Count: n})
	}
	sort.Slice(stats.ByProvince, func(i, j int) bool {
		if stats.ByProvince[i].Count != stats.ByProvince[j].Count {
			return stats.ByProvince[i].Count > stats.ByProvince[j].Count
		}
		return stats.ByProvince[i].Provincia < stats.ByProvince[j].Provincia
	})
	return stats
}

func firstOfKind(sorted []*model.Property, kind model.TipoBien) []*model.Property {
	out := []*model.Property{}
	for _, p := range sorted {
		if p.TipoBien != kind {
			continue
		}
		out = append(out, p)
		if len(out) == DashboardSize {
			break
		}
	}
	return out
}
