package diarias

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ErrPeriodoInvalido is returned when a period's end does not come after
// its start.
var ErrPeriodoInvalido = errors.New("periodo invalido para calculo de diarias")

// Resultado is the outcome of a single whole-trip calculation.
type Resultado struct {
	Dias100       int
	Parcial       int // 0, 15 or 30
	QuantidadeStr string
	ValorServidor decimal.Decimal
	ValorTotal    decimal.Decimal
}

// breakdown splits an elapsed interval into full 24h units plus a partial
// tier. Remainder of up to 6h earns nothing, up to 8h earns 15%, more earns
// 30%. A trip that crosses midnight but lasts under 24h counts as exactly
// one full unit with no partial.
func breakdown(start, end time.Time) (dias int, parcial int, resto time.Duration) {
	elapsed := end.Sub(start)
	dias = int(elapsed / (24 * time.Hour))
	resto = elapsed - time.Duration(dias)*24*time.Hour

	sameDate := start.Year() == end.Year() && start.YearDay() == end.YearDay()
	if !sameDate && elapsed < 24*time.Hour {
		return 1, 0, 0
	}

	switch {
	case resto <= 6*time.Hour:
		parcial = 0
	case resto <= 8*time.Hour:
		parcial = 15
	default:
		parcial = 30
	}
	return dias, parcial, resto
}

// Calcular computes the per-diem units and values for one trip interval.
// Missing or non-positive intervals yield a zero Resultado, not an error:
// the form simply has nothing to show yet.
func Calcular(tipo Tipo, saida, chegada time.Time, servidores int) Resultado {
	if !tipo.IsValid() || saida.IsZero() || chegada.IsZero() || !chegada.After(saida) {
		return Resultado{ValorServidor: decimal.Zero, ValorTotal: decimal.Zero}
	}

	dias, parcial, _ := breakdown(saida, chegada)

	var partes []string
	if dias > 0 {
		partes = append(partes, fmt.Sprintf("%d x 100%%", dias))
	}
	if parcial > 0 {
		partes = append(partes, fmt.Sprintf("1 x %d%%", parcial))
	}

	rate := RateFor(tipo)
	valorServidor := rate.Full.Mul(decimal.NewFromInt(int64(dias))).Add(rate.Partial(parcial))

	if servidores < 0 {
		servidores = 0
	}
	valorTotal := valorServidor.Mul(decimal.NewFromInt(int64(servidores)))

	return Resultado{
		Dias100:       dias,
		Parcial:       parcial,
		QuantidadeStr: strings.Join(partes, " + "),
		ValorServidor: valorServidor,
		ValorTotal:    valorTotal,
	}
}
