// Package mask provides the input masks used across the viagens forms.
// Every formatter is a pure string transform: feed it raw user input, get
// back the canonical display text. Formatters are idempotent, so they can
// be re-applied on every keystroke.
package mask

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	nonDigitRe  = regexp.MustCompile(`\D+`)
	nonRGCharRe = regexp.MustCompile(`[^0-9xX]+`)
	nonOficioRe = regexp.MustCompile(`[^0-9/]`)
	multiSpace  = regexp.MustCompile(`\s+`)
)

// Digits strips everything but 0-9 from the input.
func Digits(value string) string {
	return nonDigitRe.ReplaceAllString(value, "")
}

// UpperText collapses runs of whitespace and uppercases the result.
func UpperText(value string) string {
	return strings.ToUpper(multiSpace.ReplaceAllString(strings.TrimSpace(value), " "))
}

// CPF formats up to 11 digits as DDD.DDD.DDD-DD, progressively: separators
// only appear once the group before them is complete.
func CPF(value string) string {
	raw := Digits(value)
	if len(raw) > 11 {
		raw = raw[:11]
	}
	switch {
	case len(raw) <= 3:
		return raw
	case len(raw) <= 6:
		return raw[:3] + "." + raw[3:]
	case len(raw) <= 9:
		return raw[:3] + "." + raw[3:6] + "." + raw[6:]
	default:
		return raw[:3] + "." + raw[3:6] + "." + raw[6:9] + "-" + raw[9:]
	}
}

// Phone formats 10 or 11 digits as (DD) DDDD-DDDD or (DD) DDDDD-DDDD.
// The second group grows to five digits once the 11th digit arrives.
func Phone(value string) string {
	raw := Digits(value)
	if len(raw) > 11 {
		raw = raw[:11]
	}
	switch {
	case len(raw) <= 2:
		return raw
	case len(raw) <= 6:
		return "(" + raw[:2] + ") " + raw[2:]
	case len(raw) <= 10:
		return "(" + raw[:2] + ") " + raw[2:6] + "-" + raw[6:]
	default:
		return "(" + raw[:2] + ") " + raw[2:7] + "-" + raw[7:]
	}
}

// NormalizeRG canonicalizes an RG: digits plus an optional trailing X check
// character. A trailing X caps the digit portion at 9, otherwise at 10.
func NormalizeRG(value string) string {
	raw := strings.ToUpper(nonRGCharRe.ReplaceAllString(value, ""))
	if raw == "" {
		return ""
	}
	trailingX := strings.HasSuffix(raw, "X")
	digits := strings.ReplaceAll(raw, "X", "")
	if trailingX {
		if len(digits) > 9 {
			digits = digits[:9]
		}
		return digits + "X"
	}
	if len(digits) > 10 {
		digits = digits[:10]
	}
	return digits
}

// RG formats a canonical RG with dotted groups and a -checkdigit suffix once
// at least 8 characters exist. Whether the leading group has one or two
// digits depends on the canonical length (and on an X check digit at 9).
func RG(value string) string {
	canon := NormalizeRG(value)
	if canon == "" {
		return ""
	}
	base, dv := canon[:len(canon)-1], canon[len(canon)-1:]
	switch len(canon) {
	case 8:
		return base[0:1] + "." + base[1:4] + "." + base[4:7] + "-" + dv
	case 9:
		if dv == "X" {
			return base[0:1] + "." + base[1:4] + "." + base[4:7] + "-" + dv
		}
		return base[0:2] + "." + base[2:5] + "." + base[5:8] + "-" + dv
	case 10:
		return base[0:2] + "." + base[2:5] + "." + base[5:8] + "-" + dv
	}
	return canon
}

// Protocolo formats a 9-digit protocol number as DD.DDD.DDD-D. Anything
// shorter is returned as bare digits so the user can keep typing.
func Protocolo(value string) string {
	digits := Digits(value)
	if len(digits) > 9 {
		digits = digits[:9]
	}
	if len(digits) != 9 {
		return digits
	}
	return digits[0:2] + "." + digits[2:5] + "." + digits[5:8] + "-" + digits[8:]
}

// CEP formats up to 8 digits as DDDDD-DDD.
func CEP(value string) string {
	digits := Digits(value)
	if len(digits) > 8 {
		digits = digits[:8]
	}
	if len(digits) <= 5 {
		return digits
	}
	return digits[:5] + "-" + digits[5:]
}

// Oficio constrains an oficio reference ("NN/AAAA") while the user types:
// digits and a single slash survive, the year side is capped at four digits
// and a lone trailing slash is preserved so the year can still be typed.
func Oficio(value string) string {
	var b strings.Builder
	seenSlash := false
	for _, ch := range value {
		switch {
		case ch >= '0' && ch <= '9':
			b.WriteRune(ch)
		case ch == '/' && !seenSlash:
			seenSlash = true
			b.WriteRune(ch)
		}
	}
	out := b.String()
	if !seenSlash {
		return out
	}
	parts := strings.SplitN(out, "/", 2)
	numero, ano := parts[0], parts[1]
	if len(ano) > 4 {
		ano = ano[:4]
	}
	return numero + "/" + ano
}

// NormalizeOficio reduces an oficio reference to its canonical "N/AAAA"
// form: leading zeros dropped, year taken from the last four digits.
func NormalizeOficio(value string) string {
	raw := strings.ReplaceAll(strings.TrimSpace(value), "\\", "/")
	raw = strings.ReplaceAll(raw, " ", "")
	raw = nonOficioRe.ReplaceAllString(raw, "")
	if raw == "" {
		return ""
	}
	if !strings.Contains(raw, "/") {
		digits := Digits(raw)
		if digits == "" {
			return ""
		}
		n, _ := strconv.Atoi(digits)
		return strconv.Itoa(n)
	}
	parts := strings.SplitN(raw, "/", 2)
	numero := Digits(parts[0])
	ano := Digits(parts[1])
	if numero == "" && ano == "" {
		return ""
	}
	if numero != "" {
		n, _ := strconv.Atoi(numero)
		numero = strconv.Itoa(n)
	}
	if ano == "" {
		return numero
	}
	if len(ano) > 4 {
		ano = ano[len(ano)-4:]
	}
	if numero == "" {
		return ano
	}
	return numero + "/" + ano
}

// FormatOficio renders a stored sequence/year pair as "NN/AAAA".
func FormatOficio(numero, ano int) string {
	if numero <= 0 || ano <= 0 {
		return ""
	}
	return fmt.Sprintf("%02d/%d", numero, ano)
}

// ApplyPattern fills a generic mask pattern where '0' consumes a digit and
// any other rune is a literal separator. Separators are only emitted between
// digits, never leading or trailing. Overflow digits are appended as-is.
func ApplyPattern(value, pattern string) string {
	digits := Digits(value)
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return digits
	}
	var out strings.Builder
	idx := 0
	for _, ch := range pattern {
		if ch == '0' {
			if idx >= len(digits) {
				break
			}
			out.WriteByte(digits[idx])
			idx++
			continue
		}
		if idx == 0 || idx >= len(digits) {
			continue
		}
		out.WriteRune(ch)
	}
	if idx < len(digits) {
		out.WriteString(digits[idx:])
	}
	return out.String()
}
