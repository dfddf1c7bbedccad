package repository

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/centralviagens/viagens/internal/domain/entity"
	"github.com/centralviagens/viagens/pkg/database"
)

// CargoRepository persists job titles created from the viajante modal.
type CargoRepository struct {
	db     *database.DB
	logger *zap.Logger
}

// NewCargoRepository creates a new cargo repository
func NewCargoRepository(db *database.DB, logger *zap.Logger) *CargoRepository {
	return &CargoRepository{db: db, logger: logger}
}

// Create inserts a cargo. Re-creating an existing name returns the
// existing row instead of erroring, so the modal stays idempotent.
func (r *CargoRepository) Create(ctx context.Context, c *entity.Cargo) error {
	c.Nome = strings.TrimSpace(c.Nome)
	if c.Nome == "" {
		return fmt.Errorf("cargo nome is required")
	}

	query := `
		INSERT INTO cargos (nome) VALUES (?)
		ON CONFLICT(nome) DO UPDATE SET nome = excluded.nome
	`

	result, err := r.db.ExecContext(ctx, query, c.Nome)
	if err != nil {
		r.logger.Error("failed to create cargo", zap.String("nome", c.Nome), zap.Error(err))
		return fmt.Errorf("failed to create cargo: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get cargo id: %w", err)
	}
	c.ID = id
	return nil
}

// List returns all cargos ordered by name.
func (r *CargoRepository) List(ctx context.Context) ([]entity.Cargo, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, nome FROM cargos ORDER BY nome")
	if err != nil {
		r.logger.Error("failed to list cargos", zap.Error(err))
		return nil, fmt.Errorf("failed to list cargos: %w", err)
	}
	defer rows.Close()

	var cargos []entity.Cargo
	for rows.Next() {
		var c entity.Cargo
		if err := rows.Scan(&c.ID, &c.Nome); err != nil {
			return nil, fmt.Errorf("failed to scan cargo: %w", err)
		}
		cargos = append(cargos, c)
	}
	return cargos, rows.Err()
}
