package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProperty() Property {
	return Property{
		ID:                 "p-1",
		NumeroExpediente:   "23-000123-1234-CI",
		TipoBien:           TipoPropiedad,
		Descripcion:        "Finca en Escazú",
		PrecioBaseNumerico: 50_000_000,
		Moneda:             CRC,
		Provincia:          "San José",
	}
}

func TestProperty_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *Property)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Property) {}},
		{name: "unknown province marker is valid", mutate: func(p *Property) { p.Provincia = ProvinciaDesconocida }},
		{name: "empty province before normalization", mutate: func(p *Property) { p.Provincia = "" }},
		{name: "missing id", mutate: func(p *Property) { p.ID = "" }, wantErr: true},
		{name: "negative price", mutate: func(p *Property) { p.PrecioBaseNumerico = -1 }, wantErr: true},
		{name: "unknown tipo", mutate: func(p *Property) { p.TipoBien = "Barco" }, wantErr: true},
		{name: "unknown moneda", mutate: func(p *Property) { p.Moneda = "EUR" }, wantErr: true},
		{name: "misspelled province", mutate: func(p *Property) { p.Provincia = "san jose" }, wantErr: true},
		{name: "unknown strategy", mutate: func(p *Property) { p.Estrategia = "4to" }, wantErr: true},
		{name: "second round strategy", mutate: func(p *Property) { p.Estrategia = EstrategiaSegundo }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProperty()
			tt.mutate(&p)
			err := p.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidProperty)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestProperty_GroupKey(t *testing.T) {
	p := validProperty()
	assert.Equal(t, "23-000123-1234-CI", p.GroupKey())

	p.NumeroExpediente = "  "
	assert.Equal(t, "p-1", p.GroupKey())
}

func TestProperty_CloneIsDeep(t *testing.T) {
	p := validProperty()
	p.Analisis = &Analisis{CostosLegales: 100}
	p.Riesgos = []string{"Ocupado"}

	c := p.Clone()
	c.Analisis.CostosLegales = 200
	c.Riesgos[0] = "Gravámenes"

	assert.InDelta(t, 100, p.Analisis.CostosLegales, 0.001)
	assert.Equal(t, "Ocupado", p.Riesgos[0])
}

func TestFormatMeasurement(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"MIDE: 250.5 m2", "250.5 m²"},
		{"1200", "1200 m²"},
		{"", "N/A"},
		{"sin medidas", "N/A"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMeasurement(tt.in))
		})
	}
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "Por definir", FormatDate(""))
	assert.Equal(t, "2025-03-10", FormatDate("2025-03-10"))
}
