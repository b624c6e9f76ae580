package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/caesgo22-droid/IA-Remates-CR/internal/model"
)

func TestFoldKey(t *testing.T) {
	assert.Equal(t, "perez zeledon", FoldKey("  Pérez Zeledón "))
	assert.Equal(t, "canas", FoldKey("Cañas"))
	assert.Equal(t, "limon", FoldKey("LIMÓN"))
}

func TestTitleCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"SAN josé", "San José"},
		{"pérez zeledón", "Pérez Zeledón"},
		{"LIMÓN", "Limón"},
		{"santa cruz-liberia", "Santa Cruz-Liberia"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, TitleCase(tt.in))
		})
	}
}

func TestResolveProvince(t *testing.T) {
	tests := []struct {
		name      string
		provincia string
		canton    string
		want      string
	}{
		{name: "inferred from canton", provincia: "", canton: "Pococí", want: "Limón"},
		{name: "unknown marker is inferred", provincia: "Desconocido", canton: "Grecia", want: "Alajuela"},
		{name: "accent insensitive", provincia: "", canton: "PEREZ ZELEDÓN", want: "San José"},
		{name: "canton containing a key", provincia: "", canton: "Ciudad de Quepos", want: "Puntarenas"},
		{name: "key containing the canton", provincia: "", canton: "Sarapiq", want: "Heredia"},
		{name: "explicit province wins", provincia: "Cartago", canton: "Escazú", want: "Cartago"},
		{name: "explicit province title cased", provincia: "SAN JOSÉ", canton: "", want: "San José"},
		{name: "accentless province canonicalized", provincia: "limon", canton: "", want: "Limón"},
		{name: "no signal", provincia: "", canton: "", want: "Desconocido"},
		{name: "unknown canton", provincia: "", canton: "Xyzzy", want: "Desconocido"},
		{name: "canton with eñe", provincia: "", canton: "Cañas", want: "Guanacaste"},
		{name: "province inside longer text", provincia: "Provincia de Alajuela", canton: "", want: "Alajuela"},
		{name: "province with district", provincia: "San Jose Centro", canton: "", want: "San José"},
		{name: "unlisted province falls back to canton", provincia: "Zona Norte", canton: "Upala", want: "Alajuela"},
		{name: "canton given as province", provincia: "Pérez Zeledón", canton: "", want: "San José"},
		{name: "unlisted province without signal", provincia: "Zona Norte", canton: "", want: "Desconocido"},
		{name: "lowercase unknown marker", provincia: "desconocido", canton: "", want: "Desconocido"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveProvince(tt.provincia, tt.canton))
		})
	}
}

func TestResolveProvince_AlwaysValid(t *testing.T) {
	inputs := []string{"", " ", "N/A", "Costa Rica", "PROVINCIA DE HEREDIA", "Heredía", "??", "Desconocido"}
	for _, provincia := range inputs {
		for _, canton := range []string{"", "Desconocido", "Barrio Amón"} {
			got := ResolveProvince(provincia, canton)
			assert.True(t, model.ValidProvincia(got), "%q/%q resolved to %q", provincia, canton, got)
		}
	}
}

func TestMatchProvince(t *testing.T) {
	got, ok := MatchProvince("limon")
	assert.True(t, ok)
	assert.Equal(t, "Limón", got)

	got, ok = MatchProvince("Provincia de Guanacaste")
	assert.True(t, ok)
	assert.Equal(t, "Guanacaste", got)

	_, ok = MatchProvince("Zona Norte")
	assert.False(t, ok)
}

func TestInferProvince_FirstMatchWins(t *testing.T) {
	// "San" is contained in several keys; table order decides.
	got, ok := InferProvince("San")
	assert.True(t, ok)
	assert.Equal(t, "San José", got)
}

func TestCantons_CoverEveryProvince(t *testing.T) {
	seen := map[string]int{}
	for _, c := range Cantons {
		seen[c.Provincia]++
	}
	assert.Len(t, seen, 7)
	assert.Equal(t, 20, seen["San José"])
	assert.Equal(t, 6, seen["Limón"])
}
