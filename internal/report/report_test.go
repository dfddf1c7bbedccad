package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/centralviagens/viagens/internal/diarias"
	"github.com/centralviagens/viagens/internal/domain/entity"
)

func TestGenerator_Demonstrativo(t *testing.T) {
	dir := t.TempDir()
	gen := NewGenerator(dir, zap.NewNop())

	markers := []diarias.PeriodMarker{
		{Saida: time.Date(2026, 3, 10, 7, 0, 0, 0, time.UTC), DestinoCidade: "Curitiba", DestinoUF: "PR"},
	}
	chegada := time.Date(2026, 3, 11, 8, 0, 0, 0, time.UTC)
	resultado, err := diarias.CalculatePeriodized(markers, chegada, 2)
	require.NoError(t, err)

	oficio := &entity.Oficio{
		ID:         7,
		Numero:     "12/2026",
		Protocolo:  "2026/123456",
		SedeUF:     "PR",
		SedeCidade: "Francisco Beltrão",
	}

	path, err := gen.Demonstrativo(oficio, resultado)
	require.NoError(t, err)
	assert.Contains(t, path, "demonstrativo_12-2026_")

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue("Demonstrativo", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Demonstrativo de Diárias", title)

	numero, err := f.GetCellValue("Demonstrativo", "B3")
	require.NoError(t, err)
	assert.Equal(t, "12/2026", numero)

	tipo, err := f.GetCellValue("Demonstrativo", "A7")
	require.NoError(t, err)
	assert.Equal(t, "CAPITAL", tipo)
}

func TestGenerator_Demonstrativo_RequiresInputs(t *testing.T) {
	gen := NewGenerator(t.TempDir(), zap.NewNop())

	_, err := gen.Demonstrativo(nil, nil)
	assert.Error(t, err)
}
