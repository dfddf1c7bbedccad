package diarias

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// ErrDadosIncompletos is returned when the markers or the final arrival are
// missing or out of order. The message is user-facing.
var ErrDadosIncompletos = errors.New("preencha datas e horas para calcular")

// PeriodMarker is one destination stop: the departure towards it plus the
// city/state used to classify the period it opens.
type PeriodMarker struct {
	Saida         time.Time
	DestinoCidade string
	DestinoUF     string
}

// Periodo is one classified calculation period in wire format.
type Periodo struct {
	Tipo                string  `json:"tipo"`
	DataSaida           string  `json:"data_saida"`
	HoraSaida           string  `json:"hora_saida"`
	DataChegada         string  `json:"data_chegada"`
	HoraChegada         string  `json:"hora_chegada"`
	NDiarias            int     `json:"n_diarias"`
	HorasAdicionais     float64 `json:"horas_adicionais"`
	ValorDiaria         string  `json:"valor_diaria"`
	Subtotal            string  `json:"subtotal"`
	PercentualAdicional int     `json:"percentual_adicional"`

	subtotal   decimal.Decimal
	totalHoras float64
}

// Totais aggregates the periodized calculation.
type Totais struct {
	TotalDiarias            string  `json:"total_diarias"`
	TotalHoras              float64 `json:"total_horas"`
	TotalValor              string  `json:"total_valor"`
	QuantidadeServidores    int     `json:"quantidade_servidores"`
	DiariasPorServidor      string  `json:"diarias_por_servidor"`
	ValorPorServidor        string  `json:"valor_por_servidor"`
	ValorUnitarioReferencia string  `json:"valor_unitario_referencia"`
}

// ResultadoPeriodizado is the full response of the periodized calculation.
type ResultadoPeriodizado struct {
	Periodos []Periodo `json:"periodos"`
	Totais   Totais    `json:"totais"`
}

// BuildPeriods slices the trip into one period per destination marker. Each
// period runs from a marker's departure to the next marker's departure (the
// last runs to the final arrival at the home base) and is classified by its
// own destination. The period subtotal is already multiplied by servidores.
func BuildPeriods(markers []PeriodMarker, chegadaFinal time.Time, servidores int) ([]Periodo, error) {
	if len(markers) == 0 || chegadaFinal.IsZero() {
		return nil, ErrDadosIncompletos
	}

	sorted := make([]PeriodMarker, len(markers))
	copy(sorted, markers)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Saida.Before(sorted[j].Saida) })

	if servidores < 0 {
		servidores = 0
	}

	periodos := make([]Periodo, 0, len(sorted))
	for idx, marker := range sorted {
		start := marker.Saida
		end := chegadaFinal
		if idx+1 < len(sorted) {
			end = sorted[idx+1].Saida
		}
		if !end.After(start) {
			return nil, ErrDadosIncompletos
		}

		tipo := Classify(marker.DestinoCidade, marker.DestinoUF)
		dias, parcial, resto := breakdown(start, end)

		rate := RateFor(tipo)
		valorServidor := rate.Full.Mul(decimal.NewFromInt(int64(dias))).Add(rate.Partial(parcial))
		subtotal := valorServidor.Mul(decimal.NewFromInt(int64(servidores)))

		totalHoras := decimal.NewFromFloat(end.Sub(start).Hours()).Round(2)
		horasAdicionais := decimal.NewFromFloat(resto.Hours()).Round(2)

		periodos = append(periodos, Periodo{
			Tipo:                tipo.String(),
			DataSaida:           start.Format("02/01/2006"),
			HoraSaida:           start.Format("15:04"),
			DataChegada:         end.Format("02/01/2006"),
			HoraChegada:         end.Format("15:04"),
			NDiarias:            dias,
			HorasAdicionais:     horasAdicionais.InexactFloat64(),
			ValorDiaria:         FormatValor(rate.Full),
			Subtotal:            FormatValor(subtotal),
			PercentualAdicional: parcial,
			subtotal:            subtotal,
			totalHoras:          totalHoras.InexactFloat64(),
		})
	}

	return periodos, nil
}

// CalculatePeriodized runs BuildPeriods and aggregates the totals the
// calculation endpoint returns.
func CalculatePeriodized(markers []PeriodMarker, chegadaFinal time.Time, servidores int) (*ResultadoPeriodizado, error) {
	periodos, err := BuildPeriods(markers, chegadaFinal, servidores)
	if err != nil {
		return nil, err
	}

	totalValor := decimal.Zero
	totalHoras := 0.0
	for _, p := range periodos {
		totalValor = totalValor.Add(p.subtotal)
		totalHoras += p.totalHoras
	}

	if servidores < 1 {
		servidores = 1
	}
	valorPorServidor := totalValor.Div(decimal.NewFromInt(int64(servidores))).Round(2)

	return &ResultadoPeriodizado{
		Periodos: periodos,
		Totais: Totais{
			TotalDiarias:            resumoDiarias(periodos),
			TotalHoras:              decimal.NewFromFloat(totalHoras).Round(2).InexactFloat64(),
			TotalValor:              FormatValor(totalValor),
			QuantidadeServidores:    servidores,
			DiariasPorServidor:      resumoDiarias(periodos),
			ValorPorServidor:        FormatValor(valorPorServidor),
			ValorUnitarioReferencia: valorUnitarioReferencia(periodos),
		},
	}, nil
}

// resumoDiarias builds the "N x 100% + M x 15%" summary across periods.
func resumoDiarias(periodos []Periodo) string {
	full, p15, p30 := 0, 0, 0
	for _, p := range periodos {
		full += p.NDiarias
		switch p.PercentualAdicional {
		case 15:
			p15++
		case 30:
			p30++
		}
	}
	var partes []string
	if full > 0 {
		partes = append(partes, fmt.Sprintf("%d x 100%%", full))
	}
	if p15 > 0 {
		partes = append(partes, fmt.Sprintf("%d x 15%%", p15))
	}
	if p30 > 0 {
		partes = append(partes, fmt.Sprintf("%d x 30%%", p30))
	}
	out := ""
	for i, p := range partes {
		if i > 0 {
			out += " + "
		}
		out += p
	}
	return out
}

// valorUnitarioReferencia picks the unit rate shown in the summary: the
// shared rate when all periods agree, otherwise the first one flagged as
// variable.
func valorUnitarioReferencia(periodos []Periodo) string {
	var valores []string
	for _, p := range periodos {
		if v := p.ValorDiaria; v != "" {
			valores = append(valores, v)
		}
	}
	if len(valores) == 0 {
		return ""
	}
	for _, v := range valores[1:] {
		if v != valores[0] {
			return valores[0] + " (variavel por periodo)"
		}
	}
	return valores[0]
}
