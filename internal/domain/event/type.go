package event

// Type identifies the type of domain event.
type Type string

const (
	TypeDestinoAdicionado    Type = "itinerario.destino_adicionado"
	TypeDestinoAlterado      Type = "itinerario.destino_alterado"
	TypeDestinoRemovido      Type = "itinerario.destino_removido"
	TypeDestinosReordenados  Type = "itinerario.destinos_reordenados"
	TypeHorarioAlterado      Type = "itinerario.horario_alterado"
	TypeTrechosReconstruidos Type = "itinerario.trechos_reconstruidos"
	TypeEstimativaConcluida  Type = "estimativa.concluida"
	TypeEstimativaFalhou     Type = "estimativa.falhou"
)

// String returns the string representation of the event type.
func (t Type) String() string {
	return string(t)
}

// IsValid checks if the event type is one of the defined constants.
func (t Type) IsValid() bool {
	switch t {
	case TypeDestinoAdicionado,
		TypeDestinoAlterado,
		TypeDestinoRemovido,
		TypeDestinosReordenados,
		TypeHorarioAlterado,
		TypeTrechosReconstruidos,
		TypeEstimativaConcluida,
		TypeEstimativaFalhou:
		return true
	default:
		return false
	}
}
