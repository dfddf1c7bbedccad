package cep

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/cep/01310930/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"logradouro":"Av. Paulista","bairro":"Bela Vista","cidade":"São Paulo","uf":"SP"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	addr, err := c.Lookup(context.Background(), "01310-930")
	require.NoError(t, err)
	assert.Equal(t, "Av. Paulista", addr.Logradouro)
	assert.Equal(t, "SP", addr.UF)
}

func TestLookup_InvalidInput(t *testing.T) {
	c := NewClient("http://unused")

	for _, raw := range []string{"", "123", "123456789"} {
		_, err := c.Lookup(context.Background(), raw)
		assert.ErrorIs(t, err, ErrCEPInvalido, "input %q", raw)
	}
}

func TestLookup_NotFound(t *testing.T) {
	t.Run("404 status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		c := NewClient(srv.URL)
		_, err := c.Lookup(context.Background(), "01310930")
		assert.ErrorIs(t, err, ErrCEPNaoEncontrado)
	})

	t.Run("error payload", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"error":"CEP não encontrado"}`))
		}))
		defer srv.Close()

		c := NewClient(srv.URL)
		_, err := c.Lookup(context.Background(), "01310930")
		assert.ErrorIs(t, err, ErrCEPNaoEncontrado)
	})
}

func TestAddressForm_Apply(t *testing.T) {
	form := AddressForm{
		Address: Address{Logradouro: "Rua Antiga", Cidade: "Londrina", UF: "PR"},
	}

	t.Run("error leaves fields untouched", func(t *testing.T) {
		form.Apply(nil, ErrCEPNaoEncontrado)
		assert.Equal(t, "Rua Antiga", form.Logradouro)
		assert.Equal(t, "Londrina", form.Cidade)
		assert.Equal(t, "CEP não encontrado", form.Status)
	})

	t.Run("success fills and clears status", func(t *testing.T) {
		form.Apply(&Address{Logradouro: "Av. Nova", Cidade: "Curitiba", UF: "PR"}, nil)
		assert.Equal(t, "Av. Nova", form.Logradouro)
		assert.Equal(t, "Curitiba", form.Cidade)
		assert.Equal(t, "", form.Status)
	})
}
