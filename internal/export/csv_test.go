package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/caesgo22-droid/IA-Remates-CR/internal/model"
	"github.com/caesgo22-droid/IA-Remates-CR/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSV(t *testing.T) {
	long := strings.Repeat("á", 200)
	props := []*model.Property{
		testutil.NewProperty("p1").WithExpediente("19-000123-0164-CJ").
			WithPrice(12_500_000.5, model.CRC).WithDates("2025-02-01", "", "").
			InCanton("Heredia", "Barva").WithDescripcion("Lote, con \"casa\"").Build(),
		testutil.NewProperty("p2").WithDescripcion(long).Build(),
	}
	props[0].FincaID = "4-123456-000"
	props[0].Plano = "H-1234-2001"

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, props))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, Header, records[0])
	assert.Equal(t, []string{
		"19-000123-0164-CJ", "Propiedad", "Heredia", "Barva", "12500000.5", "CRC",
		"2025-02-01", "4-123456-000", "H-1234-2001", "Lote, con \"casa\"",
	}, records[1])

	desc := records[2][9]
	assert.True(t, strings.HasSuffix(desc, "..."))
	assert.Equal(t, DescriptionLimit+3, len([]rune(desc)))
}

func TestWriteCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "remates.csv")
	require.NoError(t, WriteCSVFile(path, testutil.SampleResults()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "Expediente,Tipo,Provincia"))
}
