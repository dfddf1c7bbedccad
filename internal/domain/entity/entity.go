package entity

import "time"

// Oficio status constants
const (
	StatusRascunho  = "RASCUNHO"
	StatusEmitido   = "EMITIDO"
	StatusCancelado = "CANCELADO"
)

// Estado is one of the 27 federation units.
type Estado struct {
	ID    int64  `json:"id"`
	Sigla string `json:"sigla"`
	Nome  string `json:"nome"`
}

// Cidade belongs to an Estado.
type Cidade struct {
	ID       int64  `json:"id"`
	Nome     string `json:"nome"`
	EstadoID int64  `json:"estado_id"`
	UF       string `json:"uf"`
}

// Viajante is a traveler (servidor) that can be added to an oficio
// roster, optionally as the driver.
type Viajante struct {
	ID        int64     `json:"id"`
	Nome      string    `json:"nome"`
	RG        string    `json:"rg"`
	CPF       string    `json:"cpf"`
	Cargo     string    `json:"cargo"`
	Telefone  string    `json:"telefone"`
	Motorista bool      `json:"motorista"`
	CreatedAt time.Time `json:"created_at"`
}

// Veiculo is an official vehicle.
type Veiculo struct {
	ID          int64     `json:"id"`
	Placa       string    `json:"placa"`
	Modelo      string    `json:"modelo"`
	Combustivel string    `json:"combustivel"`
	TipoViatura string    `json:"tipo_viatura"`
	CreatedAt   time.Time `json:"created_at"`
}

// Cargo is a job title created inline from the viajante modal.
type Cargo struct {
	ID   int64  `json:"id"`
	Nome string `json:"nome"`
}

// Oficio is one travel-authorization document.
type Oficio struct {
	ID           int64     `json:"id"`
	Numero       string    `json:"numero"` // "NN/AAAA"
	Protocolo    string    `json:"protocolo"`
	Status       string    `json:"status"`
	SedeUF       string    `json:"sede_uf"`
	SedeCidade   string    `json:"sede_cidade"`
	Servidores   int       `json:"quantidade_servidores"`
	TipoDestino  string    `json:"tipo_destino"`
	ValorDiarias string    `json:"valor_diarias"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Trecho is one persisted leg of an oficio itinerary.
type Trecho struct {
	ID          int64  `json:"id"`
	OficioID    int64  `json:"oficio_id"`
	Posicao     int    `json:"posicao"`
	Origem      string `json:"origem"`
	Destino     string `json:"destino"`
	DestinoUF   string `json:"destino_uf"`
	DataSaida   string `json:"data_saida"`
	HoraSaida   string `json:"hora_saida"`
	DataChegada string `json:"data_chegada"`
	HoraChegada string `json:"hora_chegada"`
}
