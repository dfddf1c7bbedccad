// Package report exports the demonstrativo de diárias spreadsheet.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/centralviagens/viagens/internal/diarias"
	"github.com/centralviagens/viagens/internal/domain/entity"
)

const sheetName = "Demonstrativo"

// Generator writes demonstrativo spreadsheets to an output directory.
type Generator struct {
	outputDir string
	logger    *zap.Logger
}

// NewGenerator creates a new report generator
func NewGenerator(outputDir string, logger *zap.Logger) *Generator {
	return &Generator{outputDir: outputDir, logger: logger}
}

// Demonstrativo writes the periodized calculation of one oficio to an
// xlsx file and returns its path.
func (g *Generator) Demonstrativo(oficio *entity.Oficio, resultado *diarias.ResultadoPeriodizado) (string, error) {
	if oficio == nil || resultado == nil {
		return "", fmt.Errorf("oficio and resultado are required")
	}

	if err := os.MkdirAll(g.outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return "", fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDDDDD"}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create style: %w", err)
	}

	f.SetCellValue(sheetName, "A1", "Demonstrativo de Diárias")
	f.MergeCell(sheetName, "A1", "H1")
	f.SetCellStyle(sheetName, "A1", "H1", titleStyle)

	f.SetCellValue(sheetName, "A3", "Ofício:")
	f.SetCellValue(sheetName, "B3", oficio.Numero)
	f.SetCellValue(sheetName, "D3", "Protocolo:")
	f.SetCellValue(sheetName, "E3", oficio.Protocolo)
	f.SetCellValue(sheetName, "A4", "Sede:")
	f.SetCellValue(sheetName, "B4", fmt.Sprintf("%s - %s", oficio.SedeCidade, oficio.SedeUF))
	f.SetCellValue(sheetName, "D4", "Servidores:")
	f.SetCellValue(sheetName, "E4", resultado.Totais.QuantidadeServidores)

	headers := []string{"Tipo", "Saída", "Hora", "Chegada", "Hora", "Diárias", "Adicional", "Subtotal"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 6)
		f.SetCellValue(sheetName, cell, h)
	}
	f.SetCellStyle(sheetName, "A6", "H6", headerStyle)

	row := 7
	for _, p := range resultado.Periodos {
		values := []interface{}{
			p.Tipo, p.DataSaida, p.HoraSaida, p.DataChegada, p.HoraChegada,
			p.NDiarias, fmt.Sprintf("%d%%", p.PercentualAdicional), "R$ " + p.Subtotal,
		}
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			f.SetCellValue(sheetName, cell, v)
		}
		row++
	}

	row++
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), "Total de diárias:")
	f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), resultado.Totais.TotalDiarias)
	row++
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), "Valor unitário:")
	f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), "R$ "+resultado.Totais.ValorUnitarioReferencia)
	row++
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), "Valor por servidor:")
	f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), "R$ "+resultado.Totais.ValorPorServidor)
	row++
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), "Valor total:")
	f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), "R$ "+resultado.Totais.TotalValor)
	f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), headerStyle)

	f.SetColWidth(sheetName, "A", "A", 14)
	f.SetColWidth(sheetName, "B", "E", 12)
	f.SetColWidth(sheetName, "F", "H", 14)

	path := filepath.Join(g.outputDir, fileName(oficio))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save demonstrativo: %w", err)
	}

	g.logger.Info("demonstrativo generated",
		zap.Int64("oficio_id", oficio.ID),
		zap.String("path", path))
	return path, nil
}

// fileName builds "demonstrativo_NN-AAAA_<timestamp>.xlsx", replacing
// the slash the numero carries.
func fileName(oficio *entity.Oficio) string {
	numero := strings.ReplaceAll(oficio.Numero, "/", "-")
	if numero == "" {
		numero = fmt.Sprintf("oficio-%d", oficio.ID)
	}
	return fmt.Sprintf("demonstrativo_%s_%s.xlsx", numero, time.Now().Format("20060102150405"))
}
