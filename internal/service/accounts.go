package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/pribylovaa/reverb-scraper/internal/models"
	"github.com/pribylovaa/reverb-scraper/internal/pkg/log"
	"github.com/pribylovaa/reverb-scraper/internal/pkg/redact"
	"github.com/pribylovaa/reverb-scraper/internal/storage"
)

// Accounts — операции над пользователями и их инструментами.
type Accounts struct {
	storage storage.Storage
}

// NewAccounts создаёт Accounts поверх хранилища.
func NewAccounts(st storage.Storage) *Accounts {
	return &Accounts{storage: st}
}

// RegisterUser создаёт активного пользователя.
func (a *Accounts) RegisterUser(ctx context.Context, email string) (*models.User, error) {
	const op = "service.accounts.RegisterUser"

	norm, err := validateEmail(email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user, err := a.storage.SaveUser(ctx, &models.User{Email: norm, Active: true})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapStorageErr(err))
	}

	log.From(ctx).Info("user_registered",
		slog.String("op", op),
		slog.Int64("user_id", user.ID),
		slog.String("email", redact.Email(norm)),
	)

	return user, nil
}

// UserByEmail находит пользователя.
func (a *Accounts) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "service.accounts.UserByEmail"

	norm, err := validateEmail(email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user, err := a.storage.UserByEmail(ctx, norm)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapStorageErr(err))
	}

	return user, nil
}

// Instrument находит инструмент по ID.
func (a *Accounts) Instrument(ctx context.Context, id int64) (*models.Instrument, error) {
	const op = "service.accounts.Instrument"

	if id <= 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	inst, err := a.storage.InstrumentByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapStorageErr(err))
	}

	return inst, nil
}

// AddInstrument привязывает инструмент к пользователю.
// Инструмент без ID создаётся; для нового обязательны type, make и model.
func (a *Accounts) AddInstrument(ctx context.Context, email string, inst models.Instrument) (*models.Instrument, error) {
	const op = "service.accounts.AddInstrument"

	if inst.ID == 0 {
		inst.Type = strings.TrimSpace(inst.Type)
		inst.Make = strings.TrimSpace(inst.Make)
		inst.Model = strings.TrimSpace(inst.Model)
		if inst.Type == "" || inst.Make == "" || inst.Model == "" {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
		}
	} else if inst.ID < 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	user, err := a.UserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	linked, err := a.storage.LinkUserToInstrument(ctx, user.ID, &inst)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapStorageErr(err))
	}

	log.From(ctx).Info("instrument_linked",
		slog.String("op", op),
		slog.Int64("user_id", user.ID),
		slog.Int64("instrument_id", linked.ID),
	)

	return linked, nil
}

// UserInstruments возвращает инструменты пользователя по email.
func (a *Accounts) UserInstruments(ctx context.Context, email string) ([]models.Instrument, error) {
	const op = "service.accounts.UserInstruments"

	user, err := a.UserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	list, err := a.storage.InstrumentsByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapStorageErr(err))
	}

	return list, nil
}

// DeleteUser удаляет пользователя и затем инструменты, оставшиеся без владельцев.
// Возвращает число удалённых инструментов.
func (a *Accounts) DeleteUser(ctx context.Context, email string) (int64, error) {
	const op = "service.accounts.DeleteUser"

	norm, err := validateEmail(email)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if err := a.storage.DeleteUserByEmail(ctx, norm); err != nil {
		return 0, fmt.Errorf("%s: %w", op, mapStorageErr(err))
	}

	removed, err := a.storage.DeleteOrphanedInstruments(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: prune: %w", op, mapStorageErr(err))
	}

	log.From(ctx).Info("user_deleted",
		slog.String("op", op),
		slog.String("email", redact.Email(norm)),
		slog.Int64("instruments_removed", removed),
	)

	return removed, nil
}

// PruneInstruments удаляет инструменты без владельцев.
func (a *Accounts) PruneInstruments(ctx context.Context) (int64, error) {
	const op = "service.accounts.PruneInstruments"

	removed, err := a.storage.DeleteOrphanedInstruments(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, mapStorageErr(err))
	}

	log.From(ctx).Info("instruments_pruned",
		slog.String("op", op),
		slog.Int64("removed", removed),
	)

	return removed, nil
}

// validateEmail проверяет формат email, обрезает пробелы и приводит к нижнему регистру.
func validateEmail(raw string) (string, error) {
	email := strings.TrimSpace(raw)
	if email == "" {
		return "", ErrInvalidArgument
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", ErrInvalidArgument
	}

	return strings.ToLower(email), nil
}

// mapStorageErr переводит ошибки хранилища в ошибки сервиса.
func mapStorageErr(err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, storage.ErrAlreadyExists):
		return ErrAlreadyExists
	default:
		return err
	}
}
