package extraction

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"
)

// RawItem is one record as the model returned it, before normalization.
type RawItem struct {
	NumeroExpediente           FlexString  `json:"numeroExpediente"`
	TipoBien                   FlexString  `json:"tipoBien"`
	Descripcion                FlexString  `json:"descripcion"`
	Moneda                     FlexString  `json:"moneda"`
	FechaRemate                FlexString  `json:"fechaRemate"`
	Juzgado                    FlexString  `json:"juzgado"`
	Provincia                  FlexString  `json:"provincia"`
	Canton                     FlexString  `json:"canton"`
	MedidasNumericas           FlexString  `json:"medidasNumericas"`
	FechaSegundoRemate         FlexString  `json:"fechaSegundoRemate"`
	FechaTercerRemate          FlexString  `json:"fechaTercerRemate"`
	FincaID                    FlexString  `json:"fincaId"`
	Plano                      FlexString  `json:"plano"`
	Placa                      FlexString  `json:"placa"`
	Marca                      FlexString  `json:"marca"`
	Modelo                     FlexString  `json:"modelo"`
	Anio                       FlexString  `json:"anio"`
	TextoEspecifico            FlexString  `json:"textoEspecifico"`
	Riesgos                    FlexStrings `json:"riesgos"`
	PrecioBaseNumerico         FlexNumber  `json:"precioBaseNumerico"`
	MontoSegundoRemateNumerico FlexNumber  `json:"montoSegundoRemateNumerico"`
	MontoTercerRemateNumerico  FlexNumber  `json:"montoTercerRemateNumerico"`
	ValorAvaluo                FlexNumber  `json:"valorAvaluo"`
	EsCondominio               FlexBool    `json:"esCondominio"`
}

// Recovery records how a response was read.
type Recovery string

// Recovery outcomes.
const (
	RecoveryStrict Recovery = "strict"
	RecoveryQuotes Recovery = "quotes"
	RecoveryNoJSON Recovery = "no_json"
	RecoveryFailed Recovery = "failed"
)

// RawResponse is the sanitized model answer. Items is never nil.
type RawResponse struct {
	Recovery Recovery
	Items    []RawItem
	// Dropped counts array entries that were not objects.
	Dropped int
}

var (
	openingFence  = regexp.MustCompile("(?i)^```(?:json)?\\s*")
	closingFence  = regexp.MustCompile("\\s*```$")
	trailingComma = regexp.MustCompile(`,(\s*[}\]])`)
)

// ParseResponse recovers the {"items": [...]} object from free-form model
// output. It never fails: text with no usable JSON yields no items.
func ParseResponse(raw string) RawResponse {
	text := strings.TrimSpace(raw)
	text = openingFence.ReplaceAllString(text, "")
	text = closingFence.ReplaceAllString(text, "")

	first := strings.Index(text, "{")
	last := strings.LastIndex(text, "}")
	if first == -1 || last < first {
		return RawResponse{Recovery: RecoveryNoJSON, Items: []RawItem{}}
	}
	text = text[first : last+1]
	text = trailingComma.ReplaceAllString(text, "$1")

	if resp, ok := decodeEnvelope(text); ok {
		resp.Recovery = RecoveryStrict
		return resp
	}

	if strings.Contains(text, "'") {
		if resp, ok := decodeEnvelope(strings.ReplaceAll(text, "'", `"`)); ok {
			resp.Recovery = RecoveryQuotes
			return resp
		}
	}

	return RawResponse{Recovery: RecoveryFailed, Items: []RawItem{}}
}

func decodeEnvelope(text string) (RawResponse, bool) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &envelope); err != nil {
		return RawResponse{}, false
	}

	resp := RawResponse{Items: []RawItem{}}

	var entries []json.RawMessage
	if err := json.Unmarshal(envelope["items"], &entries); err != nil {
		// Missing, null or non-array items all mean "nothing extracted".
		return resp, true
	}

	for _, entry := range entries {
		if !bytes.HasPrefix(bytes.TrimSpace(entry), []byte("{")) {
			resp.Dropped++
			continue
		}
		var item RawItem
		if err := json.Unmarshal(entry, &item); err != nil {
			resp.Dropped++
			continue
		}
		resp.Items = append(resp.Items, item)
	}
	return resp, true
}
