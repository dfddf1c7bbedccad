// Package roster tracks the travelers selected for an oficio and the
// vehicle selection, including the modal-creation success handlers.
package roster

import "strings"

// Viajante is one selected traveler.
type Viajante struct {
	ID        int64
	Nome      string
	RG        string
	CPF       string
	Cargo     string
	Telefone  string
	Motorista bool
}

// Roster is the ordered set of selected travelers. Its size feeds
// quantidade_servidores in the per-diem calculation.
type Roster struct {
	entries []Viajante
}

// Add appends a traveler, ignoring duplicates by id. asDriver optionally
// marks the new entry as the driver (the modal "save and set as driver"
// flow); at most one entry holds the flag.
func (r *Roster) Add(v Viajante, asDriver bool) bool {
	for _, e := range r.entries {
		if e.ID == v.ID {
			return false
		}
	}
	if asDriver {
		for i := range r.entries {
			r.entries[i].Motorista = false
		}
		v.Motorista = true
	}
	r.entries = append(r.entries, v)
	return true
}

// Remove drops a traveler by id.
func (r *Roster) Remove(id int64) bool {
	for i, e := range r.entries {
		if e.ID == id {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return true
		}
	}
	return false
}

// SetMotorista marks one traveler as the driver, clearing the flag on the
// others.
func (r *Roster) SetMotorista(id int64) bool {
	found := false
	for i := range r.entries {
		r.entries[i].Motorista = r.entries[i].ID == id
		if r.entries[i].Motorista {
			found = true
		}
	}
	return found
}

// Motorista returns the driver, if one is set.
func (r *Roster) Motorista() (Viajante, bool) {
	for _, e := range r.entries {
		if e.Motorista {
			return e, true
		}
	}
	return Viajante{}, false
}

// Count is the traveler count submitted as quantidade_servidores.
func (r *Roster) Count() int {
	return len(r.entries)
}

// IDs returns the selected ids in order.
func (r *Roster) IDs() []int64 {
	ids := make([]int64, len(r.entries))
	for i, e := range r.entries {
		ids[i] = e.ID
	}
	return ids
}

// Entries returns a snapshot of the roster.
func (r *Roster) Entries() []Viajante {
	out := make([]Viajante, len(r.entries))
	copy(out, r.entries)
	return out
}

// Combustiveis the vehicle form accepts.
var Combustiveis = []string{"GASOLINA", "ETANOL", "DIESEL", "FLEX"}

// AvisoCombustivel is the warning raised when a vehicle carries a fuel
// value outside the accepted list.
const AvisoCombustivel = "combustivel do veiculo nao reconhecido; selecione manualmente"

// VehicleSelection is the vehicle block of the form.
type VehicleSelection struct {
	Placa       string
	Modelo      string
	Combustivel string
	Aviso       string
}

// Fill applies a vehicle record to the form fields. An out-of-list fuel
// value is tolerated by clearing the field and raising a warning instead
// of failing the whole fill.
func (s *VehicleSelection) Fill(placa, modelo, combustivel string) {
	s.Placa = placa
	s.Modelo = modelo
	s.Aviso = ""

	normalized := strings.ToUpper(strings.TrimSpace(combustivel))
	for _, valid := range Combustiveis {
		if normalized == valid {
			s.Combustivel = normalized
			return
		}
	}
	s.Combustivel = ""
	if normalized != "" {
		s.Aviso = AvisoCombustivel
	}
}
