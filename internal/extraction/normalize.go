package extraction

import (
	"math"
	"regexp"
	"strings"

	"github.com/caesgo22-droid/IA-Remates-CR/internal/geo"
	"github.com/caesgo22-droid/IA-Remates-CR/internal/model"
)

// DefaultOriginalText is shown when the model did not quote the notice.
const DefaultOriginalText = "Ver detalle en boletín."

// filialPattern matches the "F" segment that registry numbers of condominium
// units (fincas filiales) carry, as in "1-123456-F-000".
var filialPattern = regexp.MustCompile(`(?i)(?:^|[\s\-])F[\s\-]*\d`)

// IsFilial reports whether a registry id belongs to a condominium unit.
func IsFilial(fincaID string) bool {
	return filialPattern.MatchString(strings.TrimSpace(fincaID))
}

// Normalize turns a raw model item into a Property with a fresh id.
func Normalize(raw RawItem, id string) *model.Property {
	canton := strings.TrimSpace(string(raw.Canton))
	fincaID := strings.TrimSpace(string(raw.FincaID))
	texto := strings.TrimSpace(string(raw.TextoEspecifico))

	p := &model.Property{
		ID:                         id,
		NumeroExpediente:           strings.TrimSpace(string(raw.NumeroExpediente)),
		TipoBien:                   normalizeTipo(string(raw.TipoBien)),
		Descripcion:                strings.TrimSpace(string(raw.Descripcion)),
		PrecioBaseNumerico:         nonNegative(float64(raw.PrecioBaseNumerico)),
		Moneda:                     normalizeMoneda(string(raw.Moneda)),
		FechaRemate:                strings.TrimSpace(string(raw.FechaRemate)),
		FechaSegundoRemate:         strings.TrimSpace(string(raw.FechaSegundoRemate)),
		FechaTercerRemate:          strings.TrimSpace(string(raw.FechaTercerRemate)),
		MontoSegundoRemateNumerico: nonNegative(float64(raw.MontoSegundoRemateNumerico)),
		MontoTercerRemateNumerico:  nonNegative(float64(raw.MontoTercerRemateNumerico)),
		ValorAvaluo:                nonNegative(float64(raw.ValorAvaluo)),
		Juzgado:                    strings.TrimSpace(string(raw.Juzgado)),
		Provincia:                  geo.ResolveProvince(string(raw.Provincia), canton),
		Canton:                     geo.TitleCase(canton),
		MedidasNumericas:           strings.TrimSpace(string(raw.MedidasNumericas)),
		FincaID:                    fincaID,
		Plano:                      strings.TrimSpace(string(raw.Plano)),
		Placa:                      strings.TrimSpace(string(raw.Placa)),
		Marca:                      strings.TrimSpace(string(raw.Marca)),
		Modelo:                     strings.TrimSpace(string(raw.Modelo)),
		Anio:                       strings.TrimSpace(string(raw.Anio)),
		EsCondominio:               bool(raw.EsCondominio) || IsFilial(fincaID),
		Riesgos:                    cleanList(raw.Riesgos),
		TextoEspecifico:            texto,
		OriginalText:               texto,
		Analisis:                   &model.Analisis{},
	}
	if p.OriginalText == "" {
		p.OriginalText = DefaultOriginalText
	}
	return p
}

func normalizeTipo(raw string) model.TipoBien {
	folded := geo.FoldKey(raw)
	if folded == "" {
		return model.TipoOtro
	}
	for _, t := range model.TiposBien {
		if geo.FoldKey(string(t)) == folded {
			return t
		}
	}
	return model.TipoOtro
}

func normalizeMoneda(raw string) model.Moneda {
	switch geo.FoldKey(raw) {
	case "usd", "$", "us$", "dolar", "dolares":
		return model.USD
	default:
		return model.CRC
	}
}

func nonNegative(v float64) float64 {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func cleanList(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
