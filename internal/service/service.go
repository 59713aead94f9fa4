// service содержит бизнес-логику reverb-scraper:
//   - Scraper — обход страниц категории, агрегация и сортировка объявлений,
//     запись дампов и их загрузка в объектное хранилище;
//   - Accounts — операции над пользователями и их инструментами.
//
// Ошибки скрапинга возвращаются как *ScrapeError с видом (Kind) и
// человекочитаемым сообщением; решение о завершении процесса принимает вызывающий.
package service

import (
	"context"
	"errors"

	"github.com/pribylovaa/reverb-scraper/internal/models"
)

var (
	// ErrNotFound — пользователь или инструмент отсутствует.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument — некорректные входные аргументы (email, поля инструмента).
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrAlreadyExists — пользователь с таким email уже существует.
	ErrAlreadyExists = errors.New("already exists")
)

// Fetcher — загрузка одной страницы выдачи категории.
// page <= 0 — первичный запрос без параметра page.
type Fetcher interface {
	FetchPage(ctx context.Context, categoryID string, page int) (*models.ResultsPage, error)
}
