package mask

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCPF(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"partial first group", "12", "12"},
		{"first group complete", "123", "123"},
		{"second group", "12345", "123.45"},
		{"third group", "1234567", "123.456.7"},
		{"check digits", "1234567890", "123.456.789-0"},
		{"full", "12345678901", "123.456.789-01"},
		{"overflow truncated", "123456789012345", "123.456.789-01"},
		{"ignores separators", "123.456.789-01", "123.456.789-01"},
		{"ignores letters", "12a34b5", "123.45"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CPF(tt.input))
		})
	}
}

func TestCPF_Idempotent(t *testing.T) {
	// For digit strings of every length up to 15, re-formatting the
	// formatted output is a no-op and the digit count is capped at 11.
	digits := "123456789012345"
	for n := 0; n <= len(digits); n++ {
		in := digits[:n]
		once := CPF(in)
		assert.Equal(t, once, CPF(once), "CPF not idempotent for %q", in)

		want := n
		if want > 11 {
			want = 11
		}
		assert.Equal(t, want, len(Digits(once)), "digit count for %q", in)
	}
}

func TestPhone(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"4", "4"},
		{"41", "41"},
		{"413", "(41) 3"},
		{"413333", "(41) 3333"},
		{"4133334444", "(41) 3333-4444"},
		{"41999998888", "(41) 99999-8888"},
		{"419999988887", "(41) 99999-8888"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Phone(tt.input))
		})
	}
}

func TestNormalizeRG(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"digits only", "1234567", "1234567"},
		{"strips punctuation", "12.345.678-9", "123456789"},
		{"trailing x uppercased", "12345678x", "12345678X"},
		{"inner x dropped", "12x345678", "12345678"},
		{"digit cap with x", "123456789012X", "123456789X"},
		{"digit cap without x", "123456789012", "1234567890"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeRG(tt.input))
		})
	}
}

func TestRG(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"short stays raw", "1234567", "1234567"},
		{"eight chars one-digit lead", "12345678", "1.234.567-8"},
		{"nine digits two-digit lead", "123456789", "12.345.678-9"},
		{"nine with x keeps one-digit lead", "1234567X", "1.234.567-X"},
		{"ten digits", "1234567890", "12.345.678-0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RG(tt.input))
		})
	}
}

func TestProtocolo(t *testing.T) {
	assert.Equal(t, "12345678", Protocolo("12345678"))
	assert.Equal(t, "12.345.678-9", Protocolo("123456789"))
	assert.Equal(t, "12.345.678-9", Protocolo("12.345.678-9"))
}

func TestCEP(t *testing.T) {
	assert.Equal(t, "01310", CEP("01310"))
	assert.Equal(t, "01310-930", CEP("01310930"))
	assert.Equal(t, "01310-930", CEP("01310-930"))
	assert.Equal(t, "01310-930", CEP("013109304"))
}

func TestOficio(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"digits pass", "123", "123"},
		{"letters stripped", "12a3", "123"},
		{"trailing slash preserved", "123/", "123/"},
		{"second slash dropped", "12/20/24", "12/2024"},
		{"year capped at four", "12/20245", "12/2024"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Oficio(tt.input))
		})
	}
}

func TestNormalizeOficio(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"007", "7"},
		{"07/2024", "7/2024"},
		{"07/", "7"},
		{"/2024", "2024"},
		{"12 / 2024", "12/2024"},
		{"12\\2024", "12/2024"},
		{"12/202456", "12/2456"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeOficio(tt.input))
		})
	}
}

func TestFormatOficio(t *testing.T) {
	assert.Equal(t, "07/2024", FormatOficio(7, 2024))
	assert.Equal(t, "12/2024", FormatOficio(12, 2024))
	assert.Equal(t, "", FormatOficio(0, 2024))
	assert.Equal(t, "", FormatOficio(7, 0))
}

func TestApplyPattern(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		pattern string
		want    string
	}{
		{"empty pattern returns digits", "12a34", "", "1234"},
		{"full fill", "123456789", "00.000.000-0", "12.345.678-9"},
		{"partial fill stops at digits", "123", "00.000.000-0", "12.3"},
		{"no leading separator", "1", "-00", "1"},
		{"overflow appended", "1234567890123", "00.000.000-0", "12.345.678-90123"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ApplyPattern(tt.value, tt.pattern))
		})
	}
}

func TestUpperText(t *testing.T) {
	assert.Equal(t, "FOO BAR", UpperText("  foo   bar "))
}

func TestCaretAfterFormat(t *testing.T) {
	tests := []struct {
		name      string
		old       string
		caret     int
		formatted string
		want      int
	}{
		// Typing "1234" into a CPF field: caret sat after the 4th digit,
		// formatting inserts a dot, caret must land after the 4th digit.
		{"separator inserted", "1234", 4, "123.4", 5},
		{"caret mid string", "123.456", 3, "123.456", 3},
		{"caret after separator snaps to last digit", "123.456", 4, "123.456", 3},
		{"caret at start", "123.456", 0, "123.456", 0},
		{"separator removed", "123.", 4, "123", 3},
		{"caret past end clamped", "12", 5, "12", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CaretAfterFormat(tt.old, tt.caret, tt.formatted, DigitToken))
		})
	}
}

func TestCaretAfterFormat_NeverEndJumps(t *testing.T) {
	// Re-formatting with the caret in the middle must not push it to the
	// end, for every caret position of a fully formatted CPF.
	formatted := CPF("12345678901")
	for caret := 1; caret < len(formatted); caret++ {
		got := CaretAfterFormat(formatted, caret, formatted, DigitToken)
		meaningful := len(Digits(formatted[:caret]))
		assert.Equal(t, meaningful, len(Digits(formatted[:got])),
			"caret %d drifted across digits", caret)
	}
}
