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

// SaveUser создаёт пользователя. DateCreated проставляет БД.
func (s *Storage) SaveUser(ctx context.Context, user *models.User) (*models.User, error) {
	const op = "storage.postgres.SaveUser"

	query := `
		INSERT INTO users(email, active)
		VALUES ($1, $2)
		RETURNING id, email, active, date_created
	`

	saved, err := scanUser(s.db.QueryRow(ctx, query, user.Email, user.Active))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return saved, nil
}

// UserByEmail находит пользователя по email.
func (s *Storage) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.postgres.UserByEmail"

	query := `
		SELECT id, email, active, date_created
		FROM users
		WHERE email = $1
	`

	user, err := scanUser(s.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

// DeleteUserByEmail удаляет пользователя. Связи user_instruments удаляются каскадно,
// сами инструменты остаются (см. DeleteOrphanedInstruments).
func (s *Storage) DeleteUserByEmail(ctx context.Context, email string) error {
	const op = "storage.postgres.DeleteUserByEmail"

	tag, err := s.db.Exec(ctx, `DELETE FROM users WHERE email = $1`, email)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	if err := row.Scan(&u.ID, &u.Email, &u.Active, &u.DateCreated); err != nil {
		return nil, err
	}

	u.DateCreated = u.DateCreated.UTC()
	return &u, nil
}
