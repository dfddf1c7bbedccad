package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/centralviagens/viagens/internal/domain/entity"
	"github.com/centralviagens/viagens/pkg/database"
)

// EstadoRepository reads the estados/cidades reference tables.
type EstadoRepository struct {
	db     *database.DB
	logger *zap.Logger
}

// NewEstadoRepository creates a new estado repository
func NewEstadoRepository(db *database.DB, logger *zap.Logger) *EstadoRepository {
	return &EstadoRepository{db: db, logger: logger}
}

// SearchUFs lists federation units matching q by sigla or nome. Blank q
// lists all, ordered by sigla.
func (r *EstadoRepository) SearchUFs(ctx context.Context, q string) ([]entity.Estado, error) {
	query := `
		SELECT id, sigla, nome
		FROM estados
		WHERE (? = '' OR sigla LIKE ? OR nome LIKE ?)
		ORDER BY sigla
	`
	like := "%" + q + "%"

	rows, err := r.db.QueryContext(ctx, query, q, like, like)
	if err != nil {
		r.logger.Error("failed to search estados", zap.Error(err))
		return nil, fmt.Errorf("failed to search estados: %w", err)
	}
	defer rows.Close()

	var estados []entity.Estado
	for rows.Next() {
		var e entity.Estado
		if err := rows.Scan(&e.ID, &e.Sigla, &e.Nome); err != nil {
			return nil, fmt.Errorf("failed to scan estado: %w", err)
		}
		estados = append(estados, e)
	}
	return estados, rows.Err()
}

// CidadesPorEstado lists the cities of one UF ordered by name.
func (r *EstadoRepository) CidadesPorEstado(ctx context.Context, uf string) ([]entity.Cidade, error) {
	query := `
		SELECT c.id, c.nome, c.estado_id, e.sigla
		FROM cidades c
		JOIN estados e ON e.id = c.estado_id
		WHERE e.sigla = ?
		ORDER BY c.nome
	`

	rows, err := r.db.QueryContext(ctx, query, uf)
	if err != nil {
		r.logger.Error("failed to list cidades", zap.String("uf", uf), zap.Error(err))
		return nil, fmt.Errorf("failed to list cidades: %w", err)
	}
	defer rows.Close()

	return scanCidades(rows)
}

// SearchCidades searches cities by name prefix within an optional UF.
func (r *EstadoRepository) SearchCidades(ctx context.Context, uf, q string, limit int) ([]entity.Cidade, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT c.id, c.nome, c.estado_id, e.sigla
		FROM cidades c
		JOIN estados e ON e.id = c.estado_id
		WHERE (? = '' OR e.sigla = ?) AND c.nome LIKE ?
		ORDER BY c.nome
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, uf, uf, q+"%", limit)
	if err != nil {
		r.logger.Error("failed to search cidades", zap.Error(err))
		return nil, fmt.Errorf("failed to search cidades: %w", err)
	}
	defer rows.Close()

	return scanCidades(rows)
}

// GetCidade retrieves one city by id, nil when absent.
func (r *EstadoRepository) GetCidade(ctx context.Context, id int64) (*entity.Cidade, error) {
	query := `
		SELECT c.id, c.nome, c.estado_id, e.sigla
		FROM cidades c
		JOIN estados e ON e.id = c.estado_id
		WHERE c.id = ?
	`

	var c entity.Cidade
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Nome, &c.EstadoID, &c.UF)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cidade: %w", err)
	}
	return &c, nil
}

func scanCidades(rows *sql.Rows) ([]entity.Cidade, error) {
	var cidades []entity.Cidade
	for rows.Next() {
		var c entity.Cidade
		if err := rows.Scan(&c.ID, &c.Nome, &c.EstadoID, &c.UF); err != nil {
			return nil, fmt.Errorf("failed to scan cidade: %w", err)
		}
		cidades = append(cidades, c)
	}
	return cidades, rows.Err()
}
