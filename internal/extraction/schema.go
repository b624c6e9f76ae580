package extraction

import (
	"github.com/caesgo22-droid/IA-Remates-CR/internal/llm"
	"github.com/caesgo22-droid/IA-Remates-CR/internal/model"
)

// PromptPrefix precedes every chunk sent to the model.
const PromptPrefix = "Extrae datos de estos edictos:\n\n"

// SystemInstruction is the fixed instruction given to the model.
const SystemInstruction = `Eres un experto analista de edictos judiciales de Costa Rica. Tu misión es extraer datos estructurados con alta precisión geográfica.

Reglas de Extracción CRÍTICAS:
1.  **UBICACIÓN GEOGRÁFICA:**
    *   **PROVINCIA:** [San José, Alajuela, Cartago, Heredia, Guanacaste, Puntarenas, Limón].
    *   **IMPORTANTE:** Si la provincia NO está explícita, DEBES inferirla basada en el **CANTÓN**, **DISTRITO** o el nombre del **JUZGADO** mencionado (ej: "Juzgado de Pococí" -> Pococí es Limón; "Cantón de Grecia" -> Alajuela).
    *   NO uses "Desconocido" a menos que no haya absolutamente ninguna mención de lugar.

2.  **CANTÓN:** Extrae el cantón claramente.
3.  **NUMERO EXPEDIENTE:** Formatos "Referencia N°", "EXP", "Expediente".
4.  **PRECIO BASE:** El valor numérico.
5.  **FECHAS:** Formato YYYY-MM-DD.
6.  **TIPO BIEN:** 'Propiedad' (Fincas, Lotes, Casas), 'Vehículo', 'Mueble', 'Otro'.
7.  **RIESGOS:** Busca palabras clave: "Ocupado", "Gravamenes", "Servidumbres".

Ignora encabezados administrativos irrelevantes.`

// PropertySchema is the response shape requested from the model: an object
// with an "items" array of auction records.
func PropertySchema() *llm.Schema {
	tipos := make([]string, 0, len(model.TiposBien))
	for _, t := range model.TiposBien {
		tipos = append(tipos, string(t))
	}
	provincias := append(append([]string(nil), model.Provincias...), model.ProvinciaDesconocida)

	item := llm.Object(
		[]string{"numeroExpediente", "descripcion", "precioBaseNumerico"},
		llm.Field{Name: "numeroExpediente", Schema: llm.String("")},
		llm.Field{Name: "tipoBien", Schema: llm.Enum(tipos...)},
		llm.Field{Name: "descripcion", Schema: llm.String("")},
		llm.Field{Name: "precioBaseNumerico", Schema: llm.Number("")},
		llm.Field{Name: "moneda", Schema: llm.Enum(string(model.CRC), string(model.USD))},
		llm.Field{Name: "fechaRemate", Schema: llm.String("YYYY-MM-DD")},
		llm.Field{Name: "juzgado", Schema: llm.String("")},
		llm.Field{Name: "provincia", Schema: llm.Enum(provincias...)},
		llm.Field{Name: "canton", Schema: llm.String("")},
		llm.Field{Name: "medidasNumericas", Schema: llm.String("")},
		llm.Field{Name: "montoSegundoRemateNumerico", Schema: llm.Number("")},
		llm.Field{Name: "fechaSegundoRemate", Schema: llm.String("YYYY-MM-DD")},
		llm.Field{Name: "montoTercerRemateNumerico", Schema: llm.Number("")},
		llm.Field{Name: "fechaTercerRemate", Schema: llm.String("YYYY-MM-DD")},
		llm.Field{Name: "fincaId", Schema: llm.String("")},
		llm.Field{Name: "plano", Schema: llm.String("")},
		llm.Field{Name: "placa", Schema: llm.String("")},
		llm.Field{Name: "marca", Schema: llm.String("")},
		llm.Field{Name: "textoEspecifico", Schema: llm.String("")},
		llm.Field{Name: "esCondominio", Schema: llm.Boolean()},
		llm.Field{Name: "riesgos", Schema: llm.Array(llm.String(""))},
	)

	return llm.Object(nil, llm.Field{Name: "items", Schema: llm.Array(item)})
}
