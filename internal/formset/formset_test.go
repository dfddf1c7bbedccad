package formset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyBuilders(t *testing.T) {
	assert.Equal(t, "trechos-0-saida_data", Key("trechos", 0, "saida_data"))
	assert.Equal(t, "trechos-__prefix__-saida_data", TemplateKey("trechos", "saida_data"))
	assert.Equal(t, "destinos-TOTAL_FORMS", ManagementKey("destinos", TotalForms))
}

func TestForm_Total(t *testing.T) {
	f := Form{"destinos-TOTAL_FORMS": "3"}
	assert.Equal(t, 3, f.Total("destinos"))
	assert.Equal(t, 0, f.Total("trechos"))
	assert.Equal(t, 0, Form{"destinos-TOTAL_FORMS": "x"}.Total("destinos"))
}

func TestForm_SetManagement(t *testing.T) {
	f := Form{}
	f.SetManagement("trechos", 2)
	assert.Equal(t, "2", f["trechos-TOTAL_FORMS"])
	assert.Equal(t, "0", f["trechos-INITIAL_FORMS"])
	assert.Equal(t, "0", f["trechos-MIN_NUM_FORMS"])
	assert.Equal(t, "1000", f["trechos-MAX_NUM_FORMS"])
}

func TestForm_Renumber(t *testing.T) {
	f := Form{
		"trechos-TOTAL_FORMS":           "3",
		"trechos-0-saida_data":          "2024-03-01",
		"trechos-1-saida_data":          "2024-03-02",
		"trechos-2-saida_data":          "2024-03-03",
		"trechos-__prefix__-saida_data": "",
		"destinos-0-uf":                 "PR",
		"outro_campo":                   "x",
	}

	// Swap 0 and 1, drop 2.
	out := f.Renumber("trechos", map[int]int{0: 1, 1: 0})

	assert.Equal(t, "2024-03-02", out["trechos-0-saida_data"])
	assert.Equal(t, "2024-03-01", out["trechos-1-saida_data"])
	assert.NotContains(t, out, "trechos-2-saida_data")
	assert.Equal(t, "2", out["trechos-TOTAL_FORMS"])

	// Template keys and foreign prefixes pass through untouched.
	assert.Contains(t, out, "trechos-__prefix__-saida_data")
	assert.Equal(t, "PR", out["destinos-0-uf"])
	assert.Equal(t, "x", out["outro_campo"])
}

func TestForm_Renumber_DoesNotMutateReceiver(t *testing.T) {
	f := Form{"trechos-0-saida_data": "a", "trechos-TOTAL_FORMS": "1"}
	_ = f.Renumber("trechos", map[int]int{0: 5})
	assert.Equal(t, "a", f["trechos-0-saida_data"])
}

func TestOrderString(t *testing.T) {
	assert.Equal(t, "2,0,3,1", OrderString([]int{2, 0, 3, 1}))
	assert.Equal(t, "", OrderString(nil))
}

func TestParseOrder(t *testing.T) {
	order, err := ParseOrder("2, 0,3,1")
	require.NoError(t, err)
	assert.Equal(t, []int{2, 0, 3, 1}, order)

	order, err = ParseOrder("")
	require.NoError(t, err)
	assert.Nil(t, order)

	_, err = ParseOrder("2,x")
	assert.Error(t, err)
}

func TestForm_PruneTrailing(t *testing.T) {
	f := Form{
		"trechos-TOTAL_FORMS":      "3",
		"trechos-0-destino_cidade": "123",
		"trechos-1-destino_cidade": " ",
		"trechos-2-destino_cidade": "",
	}

	out := f.PruneTrailing("trechos", "destino_estado", "destino_cidade",
		"saida_data", "saida_hora", "chegada_data", "chegada_hora")
	assert.Equal(t, "1", out["trechos-TOTAL_FORMS"])

	// Original untouched.
	assert.Equal(t, "3", f["trechos-TOTAL_FORMS"])
}

func TestForm_PruneTrailing_KeepsMiddleGaps(t *testing.T) {
	f := Form{
		"trechos-TOTAL_FORMS":      "3",
		"trechos-0-destino_cidade": "",
		"trechos-1-destino_cidade": "",
		"trechos-2-destino_cidade": "123",
	}
	out := f.PruneTrailing("trechos", "destino_cidade")
	assert.Equal(t, "3", out["trechos-TOTAL_FORMS"])
}

func TestForm_PruneTrailing_NeverBelowOne(t *testing.T) {
	f := Form{
		"trechos-TOTAL_FORMS":      "2",
		"trechos-0-destino_cidade": "",
		"trechos-1-destino_cidade": "",
	}
	out := f.PruneTrailing("trechos", "destino_cidade")
	assert.Equal(t, "1", out["trechos-TOTAL_FORMS"])
}
