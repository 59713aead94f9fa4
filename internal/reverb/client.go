// reverb — клиент публичного API маркетплейса Reverb:
// загрузка страниц выдачи категорий и структурная валидация ответа.
package reverb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pribylovaa/reverb-scraper/internal/models"
	"github.com/pribylovaa/reverb-scraper/internal/pkg/log"
)

const (
	// DefaultBaseURL — корень публичного API Reverb.
	DefaultBaseURL = "https://api.reverb.com/api/"
	// DefaultTimeout — таймаут одного запроса.
	DefaultTimeout = 60 * time.Second
)

// Options — параметры клиента. Нулевые значения заменяются умолчаниями.
type Options struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

// Client загружает страницы категорий. Повторов нет:
// любая ошибка возвращается вызывающему как есть.
type Client struct {
	http *resty.Client
}

// New создаёт клиент API.
func New(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseURL)
	client.SetTimeout(opts.Timeout)
	client.SetHeader("Accept", "application/json")
	if opts.UserAgent != "" {
		client.SetHeader("User-Agent", opts.UserAgent)
	}

	return &Client{http: client}
}

// FetchPage выполняет GET {base}categories/{categoryID}?page={page}.
// page <= 0 — запрос без параметра page (первичный запрос для определения total_pages).
//
// Ошибки:
//   - ErrTimeout — истёк таймаут запроса или дедлайн контекста;
//   - ErrTransport — прочие сетевые ошибки;
//   - *APIError — статус ответа не 200;
//   - ErrDecode — тело не является JSON;
//   - *SchemaError — в JSON нет обязательных полей.
func (c *Client) FetchPage(ctx context.Context, categoryID string, page int) (*models.ResultsPage, error) {
	const op = "reverb.client.FetchPage"

	lg := log.From(ctx)

	req := c.http.R().
		SetContext(ctx).
		SetPathParam("category", categoryID)
	if page > 0 {
		req.SetQueryParam("page", strconv.Itoa(page))
	}

	started := time.Now()
	resp, err := req.Get("categories/{category}")
	if err != nil {
		lg.Warn("http_error",
			slog.String("op", op),
			slog.String("category", categoryID),
			slog.Int("page", page),
			slog.String("err", err.Error()),
		)
		if isTimeout(err) {
			return nil, fmt.Errorf("%s: %w", op, ErrTimeout)
		}
		return nil, fmt.Errorf("%s: %w: %w", op, ErrTransport, err)
	}

	lg.Debug("http_response",
		slog.String("op", op),
		slog.String("url", resp.Request.URL),
		slog.Int("status", resp.StatusCode()),
		slog.Duration("took", time.Since(started)),
	)

	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("%s: %w", op, parseAPIError(resp.StatusCode(), resp.Body()))
	}

	result, err := DecodePage(ctx, resp.Body())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return result, nil
}

// isTimeout распознаёт таймаут http.Client и истёкший дедлайн контекста.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// parseAPIError извлекает полезную нагрузку ошибки API.
// Если тело не JSON, сообщение остаётся пустым и Error() использует текст статуса.
func parseAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status}

	var payload struct {
		Message string              `json:"message"`
		Errors  map[string][]string `json:"errors"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		apiErr.Message = payload.Message
		apiErr.Errors = payload.Errors
	}

	return apiErr
}
