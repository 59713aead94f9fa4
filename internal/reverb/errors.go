package reverb

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

var (
	// ErrTimeout — запрос к API не уложился в таймаут.
	ErrTimeout = errors.New("request has timed out")
	// ErrDecode — тело ответа не является корректным JSON.
	ErrDecode = errors.New("response could not be serialized")
	// ErrTransport — сетевая ошибка, не связанная с таймаутом.
	ErrTransport = errors.New("request failed")
)

// APIError — ответ API со статусом, отличным от 200.
// Message и Errors берутся из тела вида {"message": ..., "errors": {...}}.
type APIError struct {
	StatusCode int
	Message    string
	Errors     map[string][]string
}

// Error возвращает сообщение API и детализацию errors в детерминированном порядке.
func (e *APIError) Error() string {
	var b strings.Builder

	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	fmt.Fprintf(&b, "api error (status %d): %s", e.StatusCode, msg)

	if details := e.Details(); details != "" {
		b.WriteString(": ")
		b.WriteString(details)
	}

	return b.String()
}

// Details форматирует карту errors как "field: m1, m2; field2: m3".
func (e *APIError) Details() string {
	if len(e.Errors) == 0 {
		return ""
	}

	keys := make([]string, 0, len(e.Errors))
	for k := range e.Errors {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Errors[k], ", "))
	}

	return strings.Join(parts, "; ")
}

// SchemaError — JSON ответа не содержит обязательного поля
// или поле имеет неверный тип. Path — путь до поля, например listings[0].price.amount.
type SchemaError struct {
	Path   string
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Reason == "" {
		return "schema validation failed: " + e.Path
	}
	return fmt.Sprintf("schema validation failed: %s: %s", e.Path, e.Reason)
}
