// storage описывает контракты хранилищ reverb-scraper:
// реляционное хранилище пользователей и инструментов и
// объектное хранилище дампов.
package storage

import (
	"context"
	"errors"

	"github.com/pribylovaa/reverb-scraper/internal/models"
)

var (
	// ErrNotFound — запись не найдена (пользователь/инструмент).
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists — нарушение уникальности (email).
	ErrAlreadyExists = errors.New("already exists")
)

// UsersStorage — операции над пользователями.
type UsersStorage interface {
	// SaveUser создаёт пользователя и возвращает его с присвоенным ID.
	SaveUser(ctx context.Context, user *models.User) (*models.User, error)
	// UserByEmail находит пользователя по email.
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	// DeleteUserByEmail удаляет пользователя; связи с инструментами удаляются каскадно.
	DeleteUserByEmail(ctx context.Context, email string) error
}

// InstrumentsStorage — операции над инструментами и связями с пользователями.
type InstrumentsStorage interface {
	// InstrumentByID находит инструмент по ID.
	InstrumentByID(ctx context.Context, id int64) (*models.Instrument, error)
	// LinkUserToInstrument связывает пользователя с инструментом.
	// Инструмент с ID == 0 сначала создаётся. Повторная связь — no-op.
	LinkUserToInstrument(ctx context.Context, userID int64, instrument *models.Instrument) (*models.Instrument, error)
	// InstrumentsByUser возвращает инструменты пользователя в порядке ID.
	InstrumentsByUser(ctx context.Context, userID int64) ([]models.Instrument, error)
	// DeleteOrphanedInstruments удаляет инструменты без единой связи и возвращает их число.
	DeleteOrphanedInstruments(ctx context.Context) (int64, error)
}

// Storage — контракт реляционного хранилища.
type Storage interface {
	UsersStorage
	InstrumentsStorage
	Close()
}

// DumpsStorage — контракт объектного хранилища дампов.
type DumpsStorage interface {
	// UploadDump загружает файл дампа и возвращает ключ объекта.
	UploadDump(ctx context.Context, localPath string) (key string, err error)
}
