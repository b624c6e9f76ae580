// Package query filters, orders and groups extracted properties for display.
// Every function is pure.
package query

import (
	"sort"
	"strings"

	"github.com/caesgo22-droid/IA-Remates-CR/internal/finance"
	"github.com/caesgo22-droid/IA-Remates-CR/internal/model"
)

// Set is a set of property ids or case numbers.
type Set map[string]struct{}

// NewSet builds a set from ids, ignoring empty strings.
func NewSet(ids ...string) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		if id != "" {
			s[id] = struct{}{}
		}
	}
	return s
}

// Has reports whether id is in the set. Empty ids are never members.
func (s Set) Has(id string) bool {
	if id == "" {
		return false
	}
	_, ok := s[id]
	return ok
}

// Group is the set of lots auctioned under one case.
type Group struct {
	Key        string
	Properties []*model.Property
}

// TotalBasePrice sums the first-round base prices of the group in colones.
func (g Group) TotalBasePrice() float64 {
	var total float64
	for _, p := range g.Properties {
		total += finance.ToCRC(p.PrecioBaseNumerico, p.Moneda)
	}
	return total
}

// Expediente returns the shared case number, or "" for a standalone record.
func (g Group) Expediente() string {
	if len(g.Properties) == 0 {
		return ""
	}
	return strings.TrimSpace(g.Properties[0].NumeroExpediente)
}

// Result holds the filtered properties and the same list grouped by case.
type Result struct {
	Properties []*model.Property
	Groups     []Group
}

// IsRejected reports whether p was discarded, either directly or through its case.
func IsRejected(p *model.Property, rejected Set) bool {
	return p.IsRejected || rejected.Has(p.ID) || rejected.Has(strings.TrimSpace(p.NumeroExpediente))
}

// Apply filters and orders props. Rejected properties sort after the rest;
// within each block the CRC-normalized base price decides, ties keep their
// input order. The input slice is not modified.
func Apply(props []*model.Property, filters model.FilterState, rejected, favorites Set) Result {
	out := make([]*model.Property, 0, len(props))
	for _, p := range props {
		if matches(p, filters, favorites) {
			out = append(out, p)
		}
	}

	desc := filters.SortOrder == model.SortDesc
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := IsRejected(out[i], rejected), IsRejected(out[j], rejected)
		if ri != rj {
			return !ri
		}
		pi := finance.ToCRC(out[i].PrecioBaseNumerico, out[i].Moneda)
		pj := finance.ToCRC(out[j].PrecioBaseNumerico, out[j].Moneda)
		if desc {
			return pi > pj
		}
		return pi < pj
	})

	return Result{Properties: out, Groups: GroupByExpediente(out)}
}

// GroupByExpediente groups props by case number (falling back to the id),
// in order of first appearance.
func GroupByExpediente(props []*model.Property) []Group {
	groups := []Group{}
	index := make(map[string]int)
	for _, p := range props {
		key := p.GroupKey()
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{Key: key})
		}
		groups[i].Properties = append(groups[i].Properties, p)
	}
	return groups
}

func matches(p *model.Property, f model.FilterState, favorites Set) bool {
	if q := strings.ToLower(strings.TrimSpace(f.SearchQuery)); q != "" {
		if !containsFold(p.Descripcion, q) &&
			!containsFold(p.NumeroExpediente, q) &&
			!containsFold(p.Provincia, q) &&
			!containsFold(p.Canton, q) {
			return false
		}
	}
	if f.Provincia != "" && p.Provincia != f.Provincia {
		return false
	}
	if f.Canton != "" && p.Canton != f.Canton {
		return false
	}
	if f.TipoBien != "" && p.TipoBien != f.TipoBien {
		return false
	}
	if j := strings.ToLower(strings.TrimSpace(f.Juzgado)); j != "" && !containsFold(p.Juzgado, j) {
		return false
	}
	if f.MinPrice != nil && p.PrecioBaseNumerico < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.PrecioBaseNumerico > *f.MaxPrice {
		return false
	}
	if f.MinDate != "" || f.MaxDate != "" {
		day := datePart(p.FechaRemate)
		if day == "" {
			return false
		}
		if f.MinDate != "" && day < f.MinDate {
			return false
		}
		if f.MaxDate != "" && day > f.MaxDate {
			return false
		}
	}
	if f.OnlyFavorites && !favorites.Has(p.ID) {
		return false
	}
	return true
}

func containsFold(s, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(s), lowerQuery)
}

func datePart(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < len("2006-01-02") {
		return ""
	}
	return s[:10]
}

// AvailableCantons returns the distinct non-empty cantons of props, sorted.
func AvailableCantons(props []*model.Property) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, p := range props {
		c := strings.TrimSpace(p.Canton)
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
