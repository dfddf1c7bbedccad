// Package cep formats CEP codes and resolves them to addresses through
// the lookup endpoint.
package cep

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/centralviagens/viagens/internal/mask"
)

var (
	// ErrCEPInvalido means the input does not hold 8 digits.
	ErrCEPInvalido = errors.New("CEP invalido")
	// ErrCEPNaoEncontrado is the user-facing not-found status.
	ErrCEPNaoEncontrado = errors.New("CEP não encontrado")
)

// Address is the resolved address of a CEP.
type Address struct {
	Logradouro string `json:"logradouro"`
	Bairro     string `json:"bairro"`
	Cidade     string `json:"cidade"`
	UF         string `json:"uf"`
}

// Client resolves CEPs against the lookup endpoint.
type Client struct {
	base   string
	http   *http.Client
	logger *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithLogger sets the client's logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// NewClient creates a lookup client for the given base URL.
func NewClient(base string, opts ...Option) *Client {
	c := &Client{
		base:   base,
		http:   &http.Client{Timeout: 10 * time.Second},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Lookup resolves a CEP. The input may be masked or raw; anything that
// does not hold exactly 8 digits fails with ErrCEPInvalido.
func (c *Client) Lookup(ctx context.Context, raw string) (*Address, error) {
	digits := mask.Digits(raw)
	if len(digits) != 8 {
		return nil, ErrCEPInvalido
	}

	url := fmt.Sprintf("%s/api/cep/%s/", c.base, digits)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build cep request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cep lookup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrCEPNaoEncontrado
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cep lookup: unexpected status %d", resp.StatusCode)
	}

	var payload struct {
		Address
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode cep response: %w", err)
	}
	if payload.Error != "" {
		return nil, ErrCEPNaoEncontrado
	}

	addr := payload.Address
	return &addr, nil
}

// AddressForm is the address block of a form, with the status line shown
// next to the CEP field.
type AddressForm struct {
	Address
	Status string
}

// Apply fills the form from a lookup result. On error the previously
// filled fields stay untouched and only the status line changes.
func (f *AddressForm) Apply(addr *Address, err error) {
	if err != nil {
		f.Status = ErrCEPNaoEncontrado.Error()
		return
	}
	f.Address = *addr
	f.Status = ""
}
