package model

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// TipoBien is the kind of asset being auctioned.
type TipoBien string

// Asset kinds recognized by the extractor.
const (
	TipoPropiedad TipoBien = "Propiedad"
	TipoVehiculo  TipoBien = "Vehículo"
	TipoMueble    TipoBien = "Mueble"
	TipoOtro      TipoBien = "Otro"
)

// TiposBien lists every valid asset kind.
var TiposBien = []TipoBien{TipoPropiedad, TipoVehiculo, TipoMueble, TipoOtro}

// Valid reports whether t is one of the known asset kinds.
func (t TipoBien) Valid() bool {
	for _, v := range TiposBien {
		if t == v {
			return true
		}
	}
	return false
}

// Moneda is the currency a base price is expressed in.
type Moneda string

// Supported currencies.
const (
	CRC Moneda = "CRC"
	USD Moneda = "USD"
)

// Valid reports whether m is a supported currency.
func (m Moneda) Valid() bool {
	return m == CRC || m == USD
}

// Estrategia selects which auction round an investor targets.
// The empty value means "follow the calendar".
type Estrategia string

// Auction round strategies.
const (
	EstrategiaAuto    Estrategia = ""
	EstrategiaPrimero Estrategia = "1er"
	EstrategiaSegundo Estrategia = "2do"
	EstrategiaTercero Estrategia = "3er"
)

// Valid reports whether e is an accepted strategy.
func (e Estrategia) Valid() bool {
	switch e {
	case EstrategiaAuto, EstrategiaPrimero, EstrategiaSegundo, EstrategiaTercero:
		return true
	}
	return false
}

// ProvinciaDesconocida marks a record with no usable location signal.
const ProvinciaDesconocida = "Desconocido"

// Provincias lists the seven Costa Rican provinces in their canonical spelling.
var Provincias = []string{
	"San José", "Alajuela", "Cartago", "Heredia", "Guanacaste", "Puntarenas", "Limón",
}

// ValidProvincia reports whether p is a canonical province or the unknown marker.
func ValidProvincia(p string) bool {
	if p == ProvinciaDesconocida {
		return true
	}
	for _, v := range Provincias {
		if p == v {
			return true
		}
	}
	return false
}

// Analisis holds the investor's financial assumptions for a property.
type Analisis struct {
	Notas                string  `json:"notas,omitempty"`
	ValorMercadoEstimado float64 `json:"valorMercadoEstimado"`
	CostoRemodelacion    float64 `json:"costoRemodelacion"`
	CostosLegales        float64 `json:"costosLegales"`
	PrecioVentaEstimado  float64 `json:"precioVentaEstimado"`
	RentaMensualEstimada float64 `json:"rentaMensualEstimada"`
}

// Property is one auctioned asset extracted from a bulletin.
type Property struct {
	Analisis                   *Analisis  `json:"analisis,omitempty"`
	ID                         string     `json:"id"`
	NumeroExpediente           string     `json:"numeroExpediente"`
	TipoBien                   TipoBien   `json:"tipoBien"`
	Descripcion                string     `json:"descripcion"`
	Moneda                     Moneda     `json:"moneda"`
	FechaRemate                string     `json:"fechaRemate"`
	FechaSegundoRemate         string     `json:"fechaSegundoRemate,omitempty"`
	FechaTercerRemate          string     `json:"fechaTercerRemate,omitempty"`
	Juzgado                    string     `json:"juzgado"`
	Provincia                  string     `json:"provincia"`
	Canton                     string     `json:"canton"`
	MedidasNumericas           string     `json:"medidasNumericas,omitempty"`
	FincaID                    string     `json:"fincaId,omitempty"`
	Plano                      string     `json:"plano,omitempty"`
	Placa                      string     `json:"placa,omitempty"`
	Marca                      string     `json:"marca,omitempty"`
	Modelo                     string     `json:"modelo,omitempty"`
	Anio                       string     `json:"anio,omitempty"`
	Estrategia                 Estrategia `json:"estrategia,omitempty"`
	OriginalText               string     `json:"originalText"`
	TextoEspecifico            string     `json:"textoEspecifico,omitempty"`
	Riesgos                    []string   `json:"riesgos,omitempty"`
	PrecioBaseNumerico         float64    `json:"precioBaseNumerico"`
	MontoSegundoRemateNumerico float64    `json:"montoSegundoRemateNumerico,omitempty"`
	MontoTercerRemateNumerico  float64    `json:"montoTercerRemateNumerico,omitempty"`
	ValorAvaluo                float64    `json:"valorAvaluo,omitempty"`
	EsCondominio               bool       `json:"esCondominio"`
	IsRejected                 bool       `json:"isRejected,omitempty"`
}

// Property validation errors.
var (
	ErrInvalidProperty = errors.New("invalid property")
)

// Validate checks the invariants every stored property must satisfy.
func (p *Property) Validate() error {
	if p == nil {
		return fmt.Errorf("%w: nil property", ErrInvalidProperty)
	}
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidProperty)
	}
	if p.PrecioBaseNumerico < 0 {
		return fmt.Errorf("%w: negative base price %.2f", ErrInvalidProperty, p.PrecioBaseNumerico)
	}
	if !p.TipoBien.Valid() {
		return fmt.Errorf("%w: unknown tipoBien %q", ErrInvalidProperty, p.TipoBien)
	}
	if !p.Moneda.Valid() {
		return fmt.Errorf("%w: unknown moneda %q", ErrInvalidProperty, p.Moneda)
	}
	if p.Provincia != "" && !ValidProvincia(p.Provincia) {
		return fmt.Errorf("%w: unknown provincia %q", ErrInvalidProperty, p.Provincia)
	}
	if !p.Estrategia.Valid() {
		return fmt.Errorf("%w: unknown estrategia %q", ErrInvalidProperty, p.Estrategia)
	}
	return nil
}

// GroupKey identifies the auction a property belongs to. Lots from the same
// case share it; records without a case number stand alone.
func (p *Property) GroupKey() string {
	if key := strings.TrimSpace(p.NumeroExpediente); key != "" {
		return key
	}
	return p.ID
}

// Clone returns a deep copy of p.
func (p *Property) Clone() *Property {
	if p == nil {
		return nil
	}
	c := *p
	if p.Analisis != nil {
		a := *p.Analisis
		c.Analisis = &a
	}
	if p.Riesgos != nil {
		c.Riesgos = append([]string(nil), p.Riesgos...)
	}
	return &c
}

var measurementPattern = regexp.MustCompile(`(\d+(?:[.,]\d+)?)`)

// FormatMeasurement renders the area of a property as "250.5 m²".
func FormatMeasurement(medidas string) string {
	if strings.TrimSpace(medidas) == "" {
		return "N/A"
	}
	match := measurementPattern.FindString(medidas)
	if match == "" {
		return "N/A"
	}
	return match + " m²"
}

// FormatDate renders an auction date, falling back when none was published.
func FormatDate(date string) string {
	if strings.TrimSpace(date) == "" {
		return "Por definir"
	}
	return date
}
