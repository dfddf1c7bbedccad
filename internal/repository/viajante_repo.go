package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/centralviagens/viagens/internal/domain/entity"
	"github.com/centralviagens/viagens/pkg/database"
)

// ViajanteRepository persists travelers (servidores).
type ViajanteRepository struct {
	db     *database.DB
	logger *zap.Logger
}

// NewViajanteRepository creates a new viajante repository
func NewViajanteRepository(db *database.DB, logger *zap.Logger) *ViajanteRepository {
	return &ViajanteRepository{db: db, logger: logger}
}

const viajanteColumns = "id, nome, rg, cpf, cargo, telefone, motorista, created_at"

// Create inserts a traveler and assigns its generated id.
func (r *ViajanteRepository) Create(ctx context.Context, v *entity.Viajante) error {
	query := `
		INSERT INTO viajantes (nome, rg, cpf, cargo, telefone, motorista)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		v.Nome, v.RG, v.CPF, v.Cargo, v.Telefone, v.Motorista)
	if err != nil {
		r.logger.Error("failed to create viajante", zap.String("nome", v.Nome), zap.Error(err))
		return fmt.Errorf("failed to create viajante: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get viajante id: %w", err)
	}
	v.ID = id
	return nil
}

// GetByID retrieves a traveler by id, nil when absent.
func (r *ViajanteRepository) GetByID(ctx context.Context, id int64) (*entity.Viajante, error) {
	query := "SELECT " + viajanteColumns + " FROM viajantes WHERE id = ?"

	v, err := scanViajante(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get viajante: %w", err)
	}
	return v, nil
}

// Search matches travelers by name or CPF. motoristaOnly restricts the
// result to registered drivers.
func (r *ViajanteRepository) Search(ctx context.Context, q string, motoristaOnly bool, limit int) ([]entity.Viajante, error) {
	if limit <= 0 {
		limit = 20
	}
	query := "SELECT " + viajanteColumns + ` FROM viajantes
		WHERE (nome LIKE ? OR cpf LIKE ?)
	`
	if motoristaOnly {
		query += " AND motorista = 1"
	}
	query += " ORDER BY nome LIMIT ?"

	like := "%" + q + "%"
	rows, err := r.db.QueryContext(ctx, query, like, like, limit)
	if err != nil {
		r.logger.Error("failed to search viajantes", zap.Error(err))
		return nil, fmt.Errorf("failed to search viajantes: %w", err)
	}
	defer rows.Close()

	return collectViajantes(rows)
}

// ListByIDs retrieves the travelers whose ids are in the given set,
// preserving database order by name.
func (r *ViajanteRepository) ListByIDs(ctx context.Context, ids []int64) ([]entity.Viajante, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	query := "SELECT " + viajanteColumns + " FROM viajantes WHERE id IN (" + placeholders + ") ORDER BY nome"

	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to list viajantes", zap.Error(err))
		return nil, fmt.Errorf("failed to list viajantes: %w", err)
	}
	defer rows.Close()

	return collectViajantes(rows)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanViajante(row rowScanner) (*entity.Viajante, error) {
	var v entity.Viajante
	err := row.Scan(&v.ID, &v.Nome, &v.RG, &v.CPF, &v.Cargo, &v.Telefone, &v.Motorista, &v.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func collectViajantes(rows *sql.Rows) ([]entity.Viajante, error) {
	var viajantes []entity.Viajante
	for rows.Next() {
		v, err := scanViajante(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan viajante: %w", err)
		}
		viajantes = append(viajantes, *v)
	}
	return viajantes, rows.Err()
}
