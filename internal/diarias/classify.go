// Package diarias implements the per-diem ("diária") calculation for travel
// authorizations: destination classification, the rate table and the
// full/partial unit breakdown. The same code backs both the authoritative
// calculation endpoint and the form preview, so the two can never drift.
package diarias

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Tipo is the destination classification tier that selects the rate.
type Tipo string

const (
	TipoInterior Tipo = "INTERIOR"
	TipoCapital  Tipo = "CAPITAL"
	TipoBrasilia Tipo = "BRASILIA"
)

// String returns the string representation of the classification.
func (t Tipo) String() string {
	return string(t)
}

// IsValid returns true for one of the three known tiers.
func (t Tipo) IsValid() bool {
	switch t {
	case TipoInterior, TipoCapital, TipoBrasilia:
		return true
	}
	return false
}

// capitaisPorUF maps each state code to its capital, in the normalized
// (uppercase, unaccented) spelling Classify compares against.
var capitaisPorUF = map[string]string{
	"AC": "RIO BRANCO",
	"AL": "MACEIO",
	"AP": "MACAPA",
	"AM": "MANAUS",
	"BA": "SALVADOR",
	"CE": "FORTALEZA",
	"DF": "BRASILIA",
	"ES": "VITORIA",
	"GO": "GOIANIA",
	"MA": "SAO LUIS",
	"MT": "CUIABA",
	"MS": "CAMPO GRANDE",
	"MG": "BELO HORIZONTE",
	"PA": "BELEM",
	"PB": "JOAO PESSOA",
	"PR": "CURITIBA",
	"PE": "RECIFE",
	"PI": "TERESINA",
	"RJ": "RIO DE JANEIRO",
	"RN": "NATAL",
	"RS": "PORTO ALEGRE",
	"RO": "PORTO VELHO",
	"RR": "BOA VISTA",
	"SC": "FLORIANOPOLIS",
	"SP": "SAO PAULO",
	"SE": "ARACAJU",
	"TO": "PALMAS",
}

var unaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeCidade uppercases a city name and strips diacritics so
// "Brasília" and "BRASILIA" compare equal.
func NormalizeCidade(value string) string {
	raw := strings.ToUpper(strings.TrimSpace(value))
	out, _, err := transform.String(unaccent, raw)
	if err != nil {
		return raw
	}
	return out
}

// Destino is a classification input: a city/state pair.
type Destino struct {
	Cidade string
	UF     string
}

// Classify returns the tier for a single destination. The federal capital
// beats the state-capital match, which beats INTERIOR.
func Classify(cidade, uf string) Tipo {
	ufNorm := strings.ToUpper(strings.TrimSpace(uf))
	cidadeNorm := NormalizeCidade(cidade)
	if ufNorm == "DF" && cidadeNorm == "BRASILIA" {
		return TipoBrasilia
	}
	if ufNorm != "" && cidadeNorm != "" && capitaisPorUF[ufNorm] == cidadeNorm {
		return TipoCapital
	}
	return TipoInterior
}

// ClassifyAll folds a destination list into a single tier: any BRASILIA
// wins, then any CAPITAL, else INTERIOR. Order-independent.
func ClassifyAll(destinos []Destino) Tipo {
	tipo := TipoInterior
	for _, d := range destinos {
		switch Classify(d.Cidade, d.UF) {
		case TipoBrasilia:
			return TipoBrasilia
		case TipoCapital:
			tipo = TipoCapital
		}
	}
	return tipo
}
