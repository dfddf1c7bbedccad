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

// VeiculoRepository persists official vehicles.
type VeiculoRepository struct {
	db     *database.DB
	logger *zap.Logger
}

// NewVeiculoRepository creates a new veiculo repository
func NewVeiculoRepository(db *database.DB, logger *zap.Logger) *VeiculoRepository {
	return &VeiculoRepository{db: db, logger: logger}
}

// Create inserts a vehicle and assigns its generated id. Plates are
// stored uppercase.
func (r *VeiculoRepository) Create(ctx context.Context, v *entity.Veiculo) error {
	v.Placa = strings.ToUpper(strings.TrimSpace(v.Placa))

	query := `
		INSERT INTO veiculos (placa, modelo, combustivel, tipo_viatura)
		VALUES (?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, v.Placa, v.Modelo, v.Combustivel, v.TipoViatura)
	if err != nil {
		r.logger.Error("failed to create veiculo", zap.String("placa", v.Placa), zap.Error(err))
		return fmt.Errorf("failed to create veiculo: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get veiculo id: %w", err)
	}
	v.ID = id
	return nil
}

// GetByPlaca retrieves a vehicle by exact plate, nil when absent. The
// lookup is case-insensitive.
func (r *VeiculoRepository) GetByPlaca(ctx context.Context, placa string) (*entity.Veiculo, error) {
	query := `
		SELECT id, placa, modelo, combustivel, tipo_viatura, created_at
		FROM veiculos
		WHERE placa = ?
	`

	var v entity.Veiculo
	err := r.db.QueryRowContext(ctx, query, strings.ToUpper(strings.TrimSpace(placa))).
		Scan(&v.ID, &v.Placa, &v.Modelo, &v.Combustivel, &v.TipoViatura, &v.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get veiculo: %w", err)
	}
	return &v, nil
}

// Search matches vehicles by plate or model.
func (r *VeiculoRepository) Search(ctx context.Context, q string, limit int) ([]entity.Veiculo, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT id, placa, modelo, combustivel, tipo_viatura, created_at
		FROM veiculos
		WHERE placa LIKE ? OR modelo LIKE ?
		ORDER BY placa
		LIMIT ?
	`

	like := "%" + strings.ToUpper(q) + "%"
	rows, err := r.db.QueryContext(ctx, query, like, "%"+q+"%", limit)
	if err != nil {
		r.logger.Error("failed to search veiculos", zap.Error(err))
		return nil, fmt.Errorf("failed to search veiculos: %w", err)
	}
	defer rows.Close()

	var veiculos []entity.Veiculo
	for rows.Next() {
		var v entity.Veiculo
		if err := rows.Scan(&v.ID, &v.Placa, &v.Modelo, &v.Combustivel, &v.TipoViatura, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan veiculo: %w", err)
		}
		veiculos = append(veiculos, v)
	}
	return veiculos, rows.Err()
}
