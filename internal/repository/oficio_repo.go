package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/centralviagens/viagens/internal/domain/entity"
	"github.com/centralviagens/viagens/pkg/database"
)

// OficioRepository persists travel-authorization documents and their
// itinerary legs.
type OficioRepository struct {
	db     *database.DB
	logger *zap.Logger
}

// NewOficioRepository creates a new oficio repository
func NewOficioRepository(db *database.DB, logger *zap.Logger) *OficioRepository {
	return &OficioRepository{db: db, logger: logger}
}

// Save inserts or updates an oficio together with its trechos in one
// transaction. Existing trechos are replaced wholesale; position order
// follows the slice order.
func (r *OficioRepository) Save(ctx context.Context, o *entity.Oficio, trechos []entity.Trecho) error {
	return r.db.WithTransaction(func(tx *sql.Tx) error {
		if o.ID == 0 {
			result, err := tx.ExecContext(ctx, `
				INSERT INTO oficios (numero, protocolo, status, sede_uf, sede_cidade,
					quantidade_servidores, tipo_destino, valor_diarias)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			`, o.Numero, o.Protocolo, o.Status, o.SedeUF, o.SedeCidade,
				o.Servidores, o.TipoDestino, o.ValorDiarias)
			if err != nil {
				return fmt.Errorf("failed to insert oficio: %w", err)
			}
			id, err := result.LastInsertId()
			if err != nil {
				return fmt.Errorf("failed to get oficio id: %w", err)
			}
			o.ID = id
		} else {
			_, err := tx.ExecContext(ctx, `
				UPDATE oficios
				SET numero = ?, protocolo = ?, status = ?, sede_uf = ?, sede_cidade = ?,
					quantidade_servidores = ?, tipo_destino = ?, valor_diarias = ?,
					updated_at = CURRENT_TIMESTAMP
				WHERE id = ?
			`, o.Numero, o.Protocolo, o.Status, o.SedeUF, o.SedeCidade,
				o.Servidores, o.TipoDestino, o.ValorDiarias, o.ID)
			if err != nil {
				return fmt.Errorf("failed to update oficio: %w", err)
			}
			if _, err := tx.ExecContext(ctx, "DELETE FROM trechos WHERE oficio_id = ?", o.ID); err != nil {
				return fmt.Errorf("failed to clear trechos: %w", err)
			}
		}

		for i := range trechos {
			t := &trechos[i]
			t.OficioID = o.ID
			t.Posicao = i
			result, err := tx.ExecContext(ctx, `
				INSERT INTO trechos (oficio_id, posicao, origem, destino, destino_uf,
					data_saida, hora_saida, data_chegada, hora_chegada)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			`, t.OficioID, t.Posicao, t.Origem, t.Destino, t.DestinoUF,
				t.DataSaida, t.HoraSaida, t.DataChegada, t.HoraChegada)
			if err != nil {
				return fmt.Errorf("failed to insert trecho %d: %w", i, err)
			}
			id, err := result.LastInsertId()
			if err != nil {
				return fmt.Errorf("failed to get trecho id: %w", err)
			}
			t.ID = id
		}

		r.logger.Info("oficio saved",
			zap.Int64("oficio_id", o.ID),
			zap.Int("trechos", len(trechos)))
		return nil
	})
}

// GetByID retrieves an oficio by id, nil when absent.
func (r *OficioRepository) GetByID(ctx context.Context, id int64) (*entity.Oficio, error) {
	query := `
		SELECT id, numero, protocolo, status, sede_uf, sede_cidade,
			quantidade_servidores, tipo_destino, valor_diarias, created_at, updated_at
		FROM oficios
		WHERE id = ?
	`

	var o entity.Oficio
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&o.ID, &o.Numero, &o.Protocolo, &o.Status, &o.SedeUF, &o.SedeCidade,
		&o.Servidores, &o.TipoDestino, &o.ValorDiarias, &o.CreatedAt, &o.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get oficio: %w", err)
	}
	return &o, nil
}

// Trechos retrieves the legs of an oficio ordered by position.
func (r *OficioRepository) Trechos(ctx context.Context, oficioID int64) ([]entity.Trecho, error) {
	query := `
		SELECT id, oficio_id, posicao, origem, destino, destino_uf,
			data_saida, hora_saida, data_chegada, hora_chegada
		FROM trechos
		WHERE oficio_id = ?
		ORDER BY posicao
	`

	rows, err := r.db.QueryContext(ctx, query, oficioID)
	if err != nil {
		r.logger.Error("failed to list trechos", zap.Int64("oficio_id", oficioID), zap.Error(err))
		return nil, fmt.Errorf("failed to list trechos: %w", err)
	}
	defer rows.Close()

	var trechos []entity.Trecho
	for rows.Next() {
		var t entity.Trecho
		if err := rows.Scan(&t.ID, &t.OficioID, &t.Posicao, &t.Origem, &t.Destino, &t.DestinoUF,
			&t.DataSaida, &t.HoraSaida, &t.DataChegada, &t.HoraChegada); err != nil {
			return nil, fmt.Errorf("failed to scan trecho: %w", err)
		}
		trechos = append(trechos, t)
	}
	return trechos, rows.Err()
}

// Recent lists the newest oficios for the dashboard.
func (r *OficioRepository) Recent(ctx context.Context, limit int) ([]entity.Oficio, error) {
	if limit <= 0 {
		limit = 10
	}
	query := `
		SELECT id, numero, protocolo, status, sede_uf, sede_cidade,
			quantidade_servidores, tipo_destino, valor_diarias, created_at, updated_at
		FROM oficios
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		r.logger.Error("failed to list recent oficios", zap.Error(err))
		return nil, fmt.Errorf("failed to list recent oficios: %w", err)
	}
	defer rows.Close()

	var oficios []entity.Oficio
	for rows.Next() {
		var o entity.Oficio
		if err := rows.Scan(&o.ID, &o.Numero, &o.Protocolo, &o.Status, &o.SedeUF, &o.SedeCidade,
			&o.Servidores, &o.TipoDestino, &o.ValorDiarias, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan oficio: %w", err)
		}
		oficios = append(oficios, o)
	}
	return oficios, rows.Err()
}

// CountSince counts oficios created at or after the cutoff, optionally
// filtered by status (blank means any).
func (r *OficioRepository) CountSince(ctx context.Context, since time.Time, status string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM oficios
		WHERE created_at >= ? AND (? = '' OR status = ?)
	`

	var count int
	err := r.db.QueryRowContext(ctx, query, since.UTC().Format("2006-01-02 15:04:05"), status, status).
		Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count oficios: %w", err)
	}
	return count, nil
}

// DailyCount is one point of the dashboard series.
type DailyCount struct {
	Dia   string `json:"dia"` // "AAAA-MM-DD"
	Total int    `json:"total"`
}

// CountByDay groups oficio creation by calendar day since the cutoff.
// Days without rows are absent; the caller fills the gaps.
func (r *OficioRepository) CountByDay(ctx context.Context, since time.Time) ([]DailyCount, error) {
	query := `
		SELECT date(created_at) AS dia, COUNT(*)
		FROM oficios
		WHERE created_at >= ?
		GROUP BY dia
		ORDER BY dia
	`

	rows, err := r.db.QueryContext(ctx, query, since.UTC().Format("2006-01-02 15:04:05"))
	if err != nil {
		r.logger.Error("failed to count oficios by day", zap.Error(err))
		return nil, fmt.Errorf("failed to count oficios by day: %w", err)
	}
	defer rows.Close()

	var counts []DailyCount
	for rows.Next() {
		var dc DailyCount
		if err := rows.Scan(&dc.Dia, &dc.Total); err != nil {
			return nil, fmt.Errorf("failed to scan daily count: %w", err)
		}
		counts = append(counts, dc)
	}
	return counts, rows.Err()
}
