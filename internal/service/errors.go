package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/pribylovaa/reverb-scraper/internal/reverb"
	"github.com/pribylovaa/reverb-scraper/internal/storage/file"
)

// Kind — вид фатальной ошибки скрапинга.
type Kind string

const (
	KindUnknownCategory Kind = "unknown_category"
	KindTimeout         Kind = "timeout"
	KindAPI             Kind = "api"
	KindDecode          Kind = "decode"
	KindSchema          Kind = "schema"
	KindNetwork         Kind = "network"
	KindCanceled        Kind = "canceled"
	KindIO              Kind = "io"
	KindUpload          Kind = "upload"
)

// Фиксированные сообщения.
const (
	msgTimeout = "request has timed out"
	msgDecode  = "response could not be serialized"
)

// ScrapeError — прерывание всего прогона. Частичный результат не возвращается.
type ScrapeError struct {
	Kind     Kind
	Category string
	// Page — номер страницы, на которой произошла ошибка (0 — первичный запрос).
	Page    int
	Message string
	Err     error
}

func (e *ScrapeError) Error() string {
	return e.Message
}

func (e *ScrapeError) Unwrap() error {
	return e.Err
}

// classify переводит ошибку загрузки страницы в *ScrapeError.
func classify(err error) *ScrapeError {
	var (
		apiErr    *reverb.APIError
		schemaErr *reverb.SchemaError
	)

	switch {
	case errors.As(err, &apiErr):
		return &ScrapeError{Kind: KindAPI, Message: apiErr.Error(), Err: err}
	case errors.Is(err, reverb.ErrTimeout):
		return &ScrapeError{Kind: KindTimeout, Message: msgTimeout, Err: err}
	case errors.Is(err, reverb.ErrDecode):
		return &ScrapeError{Kind: KindDecode, Message: msgDecode, Err: err}
	case errors.As(err, &schemaErr):
		return &ScrapeError{Kind: KindSchema, Message: "response failed schema validation: " + schemaErr.Path, Err: err}
	case errors.Is(err, context.Canceled):
		return &ScrapeError{Kind: KindCanceled, Message: "scrape canceled", Err: err}
	case errors.Is(err, file.ErrIO):
		return &ScrapeError{Kind: KindIO, Message: fmt.Sprintf("dump could not be written: %v", err), Err: err}
	default:
		return &ScrapeError{Kind: KindNetwork, Message: fmt.Sprintf("request failed: %v", err), Err: err}
	}
}
