package testutil

import "github.com/caesgo22-droid/IA-Remates-CR/internal/model"

// PropertyBuilder assembles a valid property for tests.
type PropertyBuilder struct {
	p model.Property
}

// NewProperty starts a CRC real-estate lot in San José with the given id.
func NewProperty(id string) *PropertyBuilder {
	return &PropertyBuilder{p: model.Property{
		ID:           id,
		TipoBien:     model.TipoPropiedad,
		Moneda:       model.CRC,
		Provincia:    "San José",
		Canton:       "Escazú",
		Juzgado:      "Juzgado Civil de San José",
		Descripcion:  "Finca " + id,
		OriginalText: "Ver edicto original.",
	}}
}

// WithExpediente sets the case number.
func (b *PropertyBuilder) WithExpediente(exp string) *PropertyBuilder {
	b.p.NumeroExpediente = exp
	return b
}

// WithPrice sets the first-round base price and currency.
func (b *PropertyBuilder) WithPrice(price float64, moneda model.Moneda) *PropertyBuilder {
	b.p.PrecioBaseNumerico = price
	b.p.Moneda = moneda
	return b
}

// WithRounds sets the second and third round amounts.
func (b *PropertyBuilder) WithRounds(segundo, tercero float64) *PropertyBuilder {
	b.p.MontoSegundoRemateNumerico = segundo
	b.p.MontoTercerRemateNumerico = tercero
	return b
}

// WithDates sets the three auction dates (YYYY-MM-DD, empty for unknown).
func (b *PropertyBuilder) WithDates(primero, segundo, tercero string) *PropertyBuilder {
	b.p.FechaRemate = primero
	b.p.FechaSegundoRemate = segundo
	b.p.FechaTercerRemate = tercero
	return b
}

// InCanton sets the location.
func (b *PropertyBuilder) InCanton(provincia, canton string) *PropertyBuilder {
	b.p.Provincia = provincia
	b.p.Canton = canton
	return b
}

// WithTipo sets the asset kind.
func (b *PropertyBuilder) WithTipo(t model.TipoBien) *PropertyBuilder {
	b.p.TipoBien = t
	return b
}

// WithJuzgado sets the court.
func (b *PropertyBuilder) WithJuzgado(j string) *PropertyBuilder {
	b.p.Juzgado = j
	return b
}

// WithDescripcion sets the description.
func (b *PropertyBuilder) WithDescripcion(d string) *PropertyBuilder {
	b.p.Descripcion = d
	return b
}

// WithAnalisis attaches financial assumptions.
func (b *PropertyBuilder) WithAnalisis(a model.Analisis) *PropertyBuilder {
	b.p.Analisis = &a
	return b
}

// Rejected marks the property as discarded.
func (b *PropertyBuilder) Rejected() *PropertyBuilder {
	b.p.IsRejected = true
	return b
}

// Build returns a fresh copy of the assembled property.
func (b *PropertyBuilder) Build() *model.Property {
	return b.p.Clone()
}

// SampleResults returns a small extraction result: two lots under one case,
// a dollar-priced house and a vehicle.
func SampleResults() []*model.Property {
	return []*model.Property{
		NewProperty("lot-a").WithExpediente("19-000123-0164-CJ").
			WithPrice(10_000_000, model.CRC).WithRounds(7_500_000, 2_500_000).
			WithDates("2025-02-01", "2025-02-15", "2025-03-01").
			InCanton("Heredia", "Barva").Build(),
		NewProperty("lot-b").WithExpediente("19-000123-0164-CJ").
			WithPrice(6_000_000, model.CRC).
			WithDates("2025-02-01", "", "").
			InCanton("Heredia", "Barva").Build(),
		NewProperty("house").WithExpediente("20-000456-1157-CJ").
			WithPrice(80_000, model.USD).
			WithDates("2025-04-10", "", "").
			InCanton("Guanacaste", "Liberia").WithJuzgado("Juzgado de Liberia").Build(),
		NewProperty("car").WithExpediente("21-000789-0504-CJ").
			WithTipo(model.TipoVehiculo).
			WithPrice(3_000_000, model.CRC).
			WithDates("2025-01-20", "", "").
			InCanton("Cartago", "Paraíso").WithDescripcion("Toyota Corolla placa BXR123").Build(),
	}
}
