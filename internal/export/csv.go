// Package export writes extraction results to files other tools can open.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/caesgo22-droid/IA-Remates-CR/internal/model"
)

// DescriptionLimit is how many characters of the description a row keeps.
const DescriptionLimit = 150

// Header is the first CSV row.
var Header = []string{
	"Expediente", "Tipo", "Provincia", "Canton", "Precio Base", "Moneda",
	"Fecha 1er Remate", "ID Finca", "Plano", "Descripcion",
}

// Row renders one property as CSV fields.
func Row(p *model.Property) []string {
	return []string{
		p.NumeroExpediente,
		string(p.TipoBien),
		p.Provincia,
		p.Canton,
		strconv.FormatFloat(p.PrecioBaseNumerico, 'f', -1, 64),
		string(p.Moneda),
		p.FechaRemate,
		p.FincaID,
		p.Plano,
		truncateDescription(p.Descripcion),
	}
}

func truncateDescription(s string) string {
	r := []rune(s)
	if len(r) <= DescriptionLimit {
		return s
	}
	return string(r[:DescriptionLimit]) + "..."
}

// WriteCSV writes props to w, header first.
func WriteCSV(w io.Writer, props []*model.Property) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(Header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, p := range props {
		if err := writer.Write(Row(p)); err != nil {
			return fmt.Errorf("failed to write CSV row for %s: %w", p.ID, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteCSVFile writes props to path, creating parent directories.
func WriteCSVFile(path string, props []*model.Property) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	return WriteCSV(file, props)
}
