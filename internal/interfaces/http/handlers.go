package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/centralviagens/viagens/internal/cep"
	"github.com/centralviagens/viagens/internal/dashboard"
	"github.com/centralviagens/viagens/internal/diarias"
	"github.com/centralviagens/viagens/internal/domain/entity"
	"github.com/centralviagens/viagens/internal/formset"
	"github.com/centralviagens/viagens/internal/itinerary"
	"github.com/centralviagens/viagens/internal/mask"
	"github.com/centralviagens/viagens/internal/report"
	"github.com/centralviagens/viagens/internal/repository"
	"github.com/centralviagens/viagens/internal/roster"
)

// Handlers contains all HTTP request handlers
type Handlers struct {
	estados   *repository.EstadoRepository
	viajantes *repository.ViajanteRepository
	veiculos  *repository.VeiculoRepository
	cargos    *repository.CargoRepository
	oficios   *repository.OficioRepository
	cep       *cep.Client
	dashboard *dashboard.Service
	reports   *report.Generator
	logger    *zap.Logger
}

// HandlerDeps bundles the dependencies the handlers call into.
type HandlerDeps struct {
	Estados   *repository.EstadoRepository
	Viajantes *repository.ViajanteRepository
	Veiculos  *repository.VeiculoRepository
	Cargos    *repository.CargoRepository
	Oficios   *repository.OficioRepository
	CEP       *cep.Client
	Dashboard *dashboard.Service
	Reports   *report.Generator
	Logger    *zap.Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(deps HandlerDeps) *Handlers {
	return &Handlers{
		estados:   deps.Estados,
		viajantes: deps.Viajantes,
		veiculos:  deps.Veiculos,
		cargos:    deps.Cargos,
		oficios:   deps.Oficios,
		cep:       deps.CEP,
		dashboard: deps.Dashboard,
		reports:   deps.Reports,
		logger:    deps.Logger,
	}
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "viagens",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// SearchUFs handles GET /api/ufs/?q=
func (h *Handlers) SearchUFs(c *gin.Context) {
	estados, err := h.estados.SearchUFs(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.logger.Error("failed to search ufs", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "falha ao consultar UFs"})
		return
	}

	results := make([]gin.H, 0, len(estados))
	for _, e := range estados {
		results = append(results, gin.H{
			"id":    e.ID,
			"sigla": e.Sigla,
			"nome":  e.Nome,
			"label": e.Sigla + " - " + e.Nome,
		})
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

// CidadesPorEstado handles GET /api/cidades/?estado=UF
func (h *Handlers) CidadesPorEstado(c *gin.Context) {
	uf := strings.ToUpper(strings.TrimSpace(c.Query("estado")))
	if uf == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "estado é obrigatório"})
		return
	}

	cidades, err := h.estados.CidadesPorEstado(c.Request.Context(), uf)
	if err != nil {
		h.logger.Error("failed to list cidades", zap.String("uf", uf), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "falha ao consultar cidades"})
		return
	}

	results := make([]gin.H, 0, len(cidades))
	for _, cid := range cidades {
		results = append(results, gin.H{"id": cid.ID, "nome": cid.Nome})
	}
	c.JSON(http.StatusOK, gin.H{"cidades": results})
}

// SearchCidades handles GET /api/cidades-busca/?uf=&q=
func (h *Handlers) SearchCidades(c *gin.Context) {
	uf := strings.ToUpper(strings.TrimSpace(c.Query("uf")))
	if uf == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Selecione primeiro a UF"})
		return
	}

	cidades, err := h.estados.SearchCidades(c.Request.Context(), uf, c.Query("q"), 20)
	if err != nil {
		h.logger.Error("failed to search cidades", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "falha ao consultar cidades"})
		return
	}

	results := make([]gin.H, 0, len(cidades))
	for _, cid := range cidades {
		results = append(results, gin.H{
			"id":    cid.ID,
			"nome":  cid.Nome,
			"uf":    cid.UF,
			"label": cid.Nome + " - " + cid.UF,
		})
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

// SearchServidores handles GET /api/servidores/?q=
func (h *Handlers) SearchServidores(c *gin.Context) {
	h.searchViajantes(c, false)
}

// SearchMotoristas handles GET /api/motoristas/?q=
func (h *Handlers) SearchMotoristas(c *gin.Context) {
	h.searchViajantes(c, true)
}

func (h *Handlers) searchViajantes(c *gin.Context, motoristaOnly bool) {
	found, err := h.viajantes.Search(c.Request.Context(), c.Query("q"), motoristaOnly, 20)
	if err != nil {
		h.logger.Error("failed to search viajantes", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "falha ao consultar servidores"})
		return
	}

	results := make([]gin.H, 0, len(found))
	for _, v := range found {
		label := v.Nome
		if v.CPF != "" {
			label += " (" + v.CPF + ")"
		}
		results = append(results, gin.H{
			"id":    v.ID,
			"nome":  v.Nome,
			"cpf":   v.CPF,
			"cargo": v.Cargo,
			"label": label,
		})
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

// GetServidor handles GET /api/servidores/:id/ and /api/motoristas/:id/
func (h *Handlers) GetServidor(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id inválido"})
		return
	}

	v, err := h.viajantes.GetByID(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("failed to get viajante", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "falha ao consultar servidor"})
		return
	}
	if v == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "servidor não encontrado"})
		return
	}
	c.JSON(http.StatusOK, v)
}

// ListViajantes handles GET /api/viajantes/?ids=1,2,3. Malformed ids
// are skipped.
func (h *Handlers) ListViajantes(c *gin.Context) {
	var ids []int64
	for _, part := range strings.Split(c.Query("ids"), ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err == nil {
			ids = append(ids, id)
		}
	}

	viajantes, err := h.viajantes.ListByIDs(c.Request.Context(), ids)
	if err != nil {
		h.logger.Error("failed to list viajantes", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "falha ao consultar viajantes"})
		return
	}
	if viajantes == nil {
		viajantes = []entity.Viajante{}
	}
	c.JSON(http.StatusOK, gin.H{"viajantes": viajantes})
}

// SearchVeiculos handles GET /api/veiculos/?placa=|q=
func (h *Handlers) SearchVeiculos(c *gin.Context) {
	q := c.Query("placa")
	if q == "" {
		q = c.Query("q")
	}

	veiculos, err := h.veiculos.Search(c.Request.Context(), q, 20)
	if err != nil {
		h.logger.Error("failed to search veiculos", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "falha ao consultar veículos"})
		return
	}

	results := make([]gin.H, 0, len(veiculos))
	for _, v := range veiculos {
		results = append(results, gin.H{
			"id":           v.ID,
			"placa":        v.Placa,
			"modelo":       v.Modelo,
			"combustivel":  v.Combustivel,
			"tipo_viatura": v.TipoViatura,
			"label":        v.Placa + " - " + v.Modelo,
		})
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

// GetVeiculoPorPlaca handles GET /api/veiculo/?plate=
func (h *Handlers) GetVeiculoPorPlaca(c *gin.Context) {
	plate := strings.TrimSpace(c.Query("plate"))
	if plate == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "plate é obrigatório"})
		return
	}

	v, err := h.veiculos.GetByPlaca(c.Request.Context(), plate)
	if err != nil {
		h.logger.Error("failed to get veiculo", zap.String("plate", plate), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "falha ao consultar veículo"})
		return
	}
	if v == nil {
		c.JSON(http.StatusOK, gin.H{"found": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"found":        true,
		"placa":        v.Placa,
		"modelo":       v.Modelo,
		"combustivel":  v.Combustivel,
		"tipo_viatura": v.TipoViatura,
	})
}

// LookupCEP handles GET /api/cep/:cep/
func (h *Handlers) LookupCEP(c *gin.Context) {
	addr, err := h.cep.Lookup(c.Request.Context(), c.Param("cep"))
	switch {
	case errors.Is(err, cep.ErrCEPInvalido):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, cep.ErrCEPNaoEncontrado):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case err != nil:
		h.logger.Error("cep lookup failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "falha na consulta de CEP"})
	default:
		c.JSON(http.StatusOK, addr)
	}
}

// CriarCargo handles POST /cargos/criar/
func (h *Handlers) CriarCargo(c *gin.Context) {
	var req struct {
		Nome string `form:"nome" json:"nome"`
	}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "requisição inválida"})
		return
	}
	if strings.TrimSpace(req.Nome) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nome é obrigatório"})
		return
	}

	cargo := &entity.Cargo{Nome: req.Nome}
	if err := h.cargos.Create(c.Request.Context(), cargo); err != nil {
		h.logger.Error("failed to create cargo", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "falha ao criar cargo"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": cargo.ID, "nome": cargo.Nome})
}

// CalcularDiarias handles POST /api/diarias/calcular/. The body is the
// re-indexed trechos formset plus quantidade_servidores.
func (h *Handlers) CalcularDiarias(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "requisição inválida"})
		return
	}

	form := make(formset.Form, len(c.Request.PostForm))
	for key, values := range c.Request.PostForm {
		if len(values) > 0 {
			form[key] = values[0]
		}
	}
	form = form.PruneTrailing(itinerary.PrefixTrechos,
		"destino", "data_saida", "hora_saida", "data_chegada", "hora_chegada")

	servidores, err := strconv.Atoi(form.Get("quantidade_servidores"))
	if err != nil || servidores < 1 {
		servidores = 1
	}

	markers, chegadaFinal, destinos, err := parseTrechos(form)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resultado, err := diarias.CalculatePeriodized(markers, chegadaFinal, servidores)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"periodos":     resultado.Periodos,
		"totais":       resultado.Totais,
		"tipo_destino": diarias.ClassifyAll(destinos).String(),
	})
}

// parseTrechos reads the trechos formset into period markers plus the
// final arrival and the classification inputs.
func parseTrechos(form formset.Form) ([]diarias.PeriodMarker, time.Time, []diarias.Destino, error) {
	total := form.Total(itinerary.PrefixTrechos)
	if total == 0 {
		return nil, time.Time{}, nil, diarias.ErrDadosIncompletos
	}

	var (
		markers      []diarias.PeriodMarker
		destinos     []diarias.Destino
		chegadaFinal time.Time
	)
	for i := 0; i < total; i++ {
		destino := strings.TrimSpace(form.Field(itinerary.PrefixTrechos, i, "destino"))
		uf := strings.TrimSpace(form.Field(itinerary.PrefixTrechos, i, "destino_uf"))

		saida, err := parseDateTime(
			form.Field(itinerary.PrefixTrechos, i, "data_saida"),
			form.Field(itinerary.PrefixTrechos, i, "hora_saida"))
		if err != nil {
			return nil, time.Time{}, nil, diarias.ErrDadosIncompletos
		}

		markers = append(markers, diarias.PeriodMarker{
			Saida:         saida,
			DestinoCidade: destino,
			DestinoUF:     uf,
		})
		destinos = append(destinos, diarias.Destino{Cidade: destino, UF: uf})

		if i == total-1 {
			chegadaFinal, err = parseDateTime(
				form.Field(itinerary.PrefixTrechos, i, "data_chegada"),
				form.Field(itinerary.PrefixTrechos, i, "hora_chegada"))
			if err != nil {
				return nil, time.Time{}, nil, diarias.ErrDadosIncompletos
			}
		}
	}
	return markers, chegadaFinal, destinos, nil
}

var dateTimeLayouts = []string{"2006-01-02 15:04", "02/01/2006 15:04"}

func parseDateTime(date, clock string) (time.Time, error) {
	value := strings.TrimSpace(date) + " " + strings.TrimSpace(clock)
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, diarias.ErrDadosIncompletos
}

// SalvarOficioRequest is the save payload of the oficio form.
type SalvarOficioRequest struct {
	ID           int64           `json:"id"`
	Numero       string          `json:"numero"`
	Protocolo    string          `json:"protocolo"`
	Status       string          `json:"status"`
	SedeUF       string          `json:"sede_uf"`
	SedeCidade   string          `json:"sede_cidade"`
	Servidores   int             `json:"quantidade_servidores"`
	TipoDestino  string          `json:"tipo_destino"`
	ValorDiarias string          `json:"valor_diarias"`
	Trechos      []entity.Trecho `json:"trechos"`
}

// SalvarOficio handles POST /api/oficios/
func (h *Handlers) SalvarOficio(c *gin.Context) {
	var req SalvarOficioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "requisição inválida"})
		return
	}
	if strings.TrimSpace(req.Numero) == "" || req.SedeUF == "" || req.SedeCidade == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "numero e sede são obrigatórios"})
		return
	}
	if req.Status == "" {
		req.Status = entity.StatusRascunho
	}
	if req.Servidores < 1 {
		req.Servidores = 1
	}

	oficio := &entity.Oficio{
		ID:           req.ID,
		Numero:       mask.NormalizeOficio(req.Numero),
		Protocolo:    mask.Protocolo(req.Protocolo),
		Status:       req.Status,
		SedeUF:       strings.ToUpper(req.SedeUF),
		SedeCidade:   req.SedeCidade,
		Servidores:   req.Servidores,
		TipoDestino:  req.TipoDestino,
		ValorDiarias: req.ValorDiarias,
	}
	if err := h.oficios.Save(c.Request.Context(), oficio, req.Trechos); err != nil {
		h.logger.Error("failed to save oficio", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "falha ao salvar ofício"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "oficio": oficio})
}

// GerarDemonstrativo handles POST /api/oficios/:id/demonstrativo/
func (h *Handlers) GerarDemonstrativo(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id inválido"})
		return
	}

	oficio, err := h.oficios.GetByID(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("failed to get oficio", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "falha ao consultar ofício"})
		return
	}
	if oficio == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "ofício não encontrado"})
		return
	}

	trechos, err := h.oficios.Trechos(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("failed to list trechos", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "falha ao consultar trechos"})
		return
	}

	var (
		markers      []diarias.PeriodMarker
		chegadaFinal time.Time
	)
	for i, t := range trechos {
		saida, perr := parseDateTime(t.DataSaida, t.HoraSaida)
		if perr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": diarias.ErrDadosIncompletos.Error()})
			return
		}
		markers = append(markers, diarias.PeriodMarker{
			Saida:         saida,
			DestinoCidade: t.Destino,
			DestinoUF:     t.DestinoUF,
		})
		if i == len(trechos)-1 {
			chegadaFinal, perr = parseDateTime(t.DataChegada, t.HoraChegada)
			if perr != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": diarias.ErrDadosIncompletos.Error()})
				return
			}
		}
	}

	resultado, err := diarias.CalculatePeriodized(markers, chegadaFinal, oficio.Servidores)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	path, err := h.reports.Demonstrativo(oficio, resultado)
	if err != nil {
		h.logger.Error("failed to generate demonstrativo", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "falha ao gerar demonstrativo"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "path": path})
}

// DashboardData handles GET /dashboard/data/?periodo=7|30|90
func (h *Handlers) DashboardData(c *gin.Context) {
	periodo, _ := strconv.Atoi(c.Query("periodo"))

	stats, err := h.dashboard.Stats(c.Request.Context(), periodo)
	if err != nil {
		h.logger.Error("failed to compute dashboard stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "falha ao montar o dashboard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"periodo": stats.PeriodoDias,
		"kpis": gin.H{
			"total":      stats.Total,
			"emitidos":   stats.Emitidos,
			"rascunhos":  stats.Rascunhos,
			"cancelados": stats.Cancelados,
		},
		"series":   stats.Serie,
		"recentes": stats.Recentes,
	})
}

const requiredFieldError = "Este campo é obrigatório."

// NovoViajanteRequest is the viajante modal payload.
type NovoViajanteRequest struct {
	Nome      string `form:"nome" json:"nome"`
	RG        string `form:"rg" json:"rg"`
	CPF       string `form:"cpf" json:"cpf"`
	Cargo     string `form:"cargo" json:"cargo"`
	Telefone  string `form:"telefone" json:"telefone"`
	Motorista bool   `form:"motorista" json:"motorista"`
}

// NovoViajante handles POST /modal/viajantes/novo/
func (h *Handlers) NovoViajante(c *gin.Context) {
	var req NovoViajanteRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "requisição inválida"})
		return
	}

	fieldErrors := gin.H{}
	if strings.TrimSpace(req.Nome) == "" {
		fieldErrors["nome"] = []string{requiredFieldError}
	}
	if strings.TrimSpace(req.CPF) == "" {
		fieldErrors["cpf"] = []string{requiredFieldError}
	}
	if len(fieldErrors) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "errors": fieldErrors})
		return
	}

	v := &entity.Viajante{
		Nome:      strings.TrimSpace(req.Nome),
		RG:        mask.RG(req.RG),
		CPF:       mask.CPF(req.CPF),
		Cargo:     strings.TrimSpace(req.Cargo),
		Telefone:  mask.Phone(req.Telefone),
		Motorista: req.Motorista,
	}
	if err := h.viajantes.Create(c.Request.Context(), v); err != nil {
		h.logger.Error("failed to create viajante", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "falha ao criar viajante"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "viajante": v})
}

// NovoVeiculoRequest is the veiculo modal payload.
type NovoVeiculoRequest struct {
	Placa       string `form:"placa" json:"placa"`
	Modelo      string `form:"modelo" json:"modelo"`
	Combustivel string `form:"combustivel" json:"combustivel"`
	TipoViatura string `form:"tipo_viatura" json:"tipo_viatura"`
}

// NovoVeiculo handles POST /modal/veiculos/novo/
func (h *Handlers) NovoVeiculo(c *gin.Context) {
	var req NovoVeiculoRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "requisição inválida"})
		return
	}

	fieldErrors := gin.H{}
	if strings.TrimSpace(req.Placa) == "" {
		fieldErrors["placa"] = []string{requiredFieldError}
	}
	if req.Combustivel != "" && !combustivelValido(req.Combustivel) {
		fieldErrors["combustivel"] = []string{roster.AvisoCombustivel}
	}
	if len(fieldErrors) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "errors": fieldErrors})
		return
	}

	v := &entity.Veiculo{
		Placa:       req.Placa,
		Modelo:      strings.TrimSpace(req.Modelo),
		Combustivel: strings.ToUpper(strings.TrimSpace(req.Combustivel)),
		TipoViatura: strings.TrimSpace(req.TipoViatura),
	}
	if err := h.veiculos.Create(c.Request.Context(), v); err != nil {
		h.logger.Error("failed to create veiculo", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "falha ao criar veículo"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "veiculo": v})
}

func combustivelValido(value string) bool {
	value = strings.ToUpper(strings.TrimSpace(value))
	for _, valid := range roster.Combustiveis {
		if value == valid {
			return true
		}
	}
	return false
}
