package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pribylovaa/reverb-scraper/internal/models"
	"github.com/pribylovaa/reverb-scraper/internal/storage"
)

const instrumentColumns = `id, type, make, model, date_created`

// InstrumentByID находит инструмент по ID.
func (s *Storage) InstrumentByID(ctx context.Context, id int64) (*models.Instrument, error) {
	const op = "storage.postgres.InstrumentByID"

	query := `SELECT ` + instrumentColumns + ` FROM instruments WHERE id = $1`

	inst, err := scanInstrument(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return inst, nil
}

// LinkUserToInstrument в одной транзакции создаёт инструмент (если ID == 0)
// и связь user_instruments. Существующая связь не дублируется.
// Отсутствующий пользователь или инструмент — storage.ErrNotFound.
func (s *Storage) LinkUserToInstrument(ctx context.Context, userID int64, instrument *models.Instrument) (*models.Instrument, error) {
	const op = "storage.postgres.LinkUserToInstrument"

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: begin: %w", op, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var inst *models.Instrument
	if instrument.ID == 0 {
		query := `
			INSERT INTO instruments(type, make, model)
			VALUES ($1, $2, $3)
			RETURNING ` + instrumentColumns

		inst, err = scanInstrument(tx.QueryRow(ctx, query, instrument.Type, instrument.Make, instrument.Model))
	} else {
		inst, err = scanInstrument(tx.QueryRow(ctx, `SELECT `+instrumentColumns+` FROM instruments WHERE id = $1`, instrument.ID))
	}
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: instrument: %w", op, err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO user_instruments(user_id, instrument_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, userID, inst.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: link: %w", op, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: commit: %w", op, err)
	}

	return inst, nil
}

// InstrumentsByUser возвращает инструменты пользователя.
// Пользователь без инструментов — пустой срез, без ошибки.
func (s *Storage) InstrumentsByUser(ctx context.Context, userID int64) ([]models.Instrument, error) {
	const op = "storage.postgres.InstrumentsByUser"

	query := `
		SELECT i.id, i.type, i.make, i.model, i.date_created
		FROM instruments i
		JOIN user_instruments ui ON ui.instrument_id = i.id
		WHERE ui.user_id = $1
		ORDER BY i.id
	`

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	output := make([]models.Instrument, 0)
	for rows.Next() {
		inst, err := scanInstrument(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		output = append(output, *inst)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return output, nil
}

// DeleteOrphanedInstruments удаляет инструменты, не связанные ни с одним пользователем.
func (s *Storage) DeleteOrphanedInstruments(ctx context.Context) (int64, error) {
	const op = "storage.postgres.DeleteOrphanedInstruments"

	query := `
		DELETE FROM instruments i
		WHERE NOT EXISTS (
			SELECT 1 FROM user_instruments ui WHERE ui.instrument_id = i.id
		)
	`

	tag, err := s.db.Exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return tag.RowsAffected(), nil
}

func scanInstrument(row pgx.Row) (*models.Instrument, error) {
	var i models.Instrument
	if err := row.Scan(&i.ID, &i.Type, &i.Make, &i.Model, &i.DateCreated); err != nil {
		return nil, err
	}

	i.DateCreated = i.DateCreated.UTC()
	return &i, nil
}
