// Package backend клиент к HTTP API сервиса сокращения ссылок.
package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
	"github.com/zaz600/go-smartlink-web/internal/entity"
)

const (
	shortenPath   = "/shorten"
	analyticsPath = "/analytics/{shortCode}"

	shortenFallbackMsg   = "Failed to shorten URL"
	analyticsFallbackMsg = "Failed to fetch analytics"
)

//go:generate mockgen -destination=mocks/mock_backend.go -package=mocks . API

// API интерфейс бэкенда сервиса сокращения ссылок
type API interface {
	// Shorten сокращает ссылку. Пароль передается только если задан.
	Shorten(ctx context.Context, request entity.ShortenRequest) (*entity.ShortenResponse, error)

	// Analytics возвращает статистику по коду короткой ссылки
	Analytics(ctx context.Context, shortCode string) (*entity.Analytics, error)
}

// Check interface implementation explicitly
var _ API = (*Client)(nil)

// Client реализация API поверх resty.
// Повторы запросов не делаются: один вызов - один запрос.
type Client struct {
	rc *resty.Client
}

// NewClient создает клиент. baseURL - адрес API, к которому дописываются пути эндпоинтов.
func NewClient(baseURL string, timeout time.Duration) *Client {
	rc := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Accept", "application/json").
		SetLogger(zerologAdapter{})
	return &Client{rc: rc}
}

// BaseURL адрес API, с которым работает клиент
func (c *Client) BaseURL() string {
	return c.rc.BaseURL
}

func (c *Client) Shorten(ctx context.Context, request entity.ShortenRequest) (*entity.ShortenResponse, error) {
	res, err := c.rc.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(request).
		Post(shortenPath)
	if err != nil {
		return nil, &TransportError{Op: "shorten", err: err}
	}

	var result entity.ShortenResponse
	if err := decodeResponse(res, shortenFallbackMsg, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) Analytics(ctx context.Context, shortCode string) (*entity.Analytics, error) {
	res, err := c.rc.R().
		SetContext(ctx).
		SetPathParam("shortCode", shortCode).
		Get(analyticsPath)
	if err != nil {
		return nil, &TransportError{Op: "analytics", err: err}
	}

	var result entity.Analytics
	if err := decodeResponse(res, analyticsFallbackMsg, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// decodeResponse читает тело как текст, JSON разбирается только у успешного ответа
func decodeResponse(res *resty.Response, fallbackMsg string, v interface{}) error {
	body := res.String()
	log.Debug().
		Str("method", res.Request.Method).
		Str("url", res.Request.URL).
		Int("status", res.StatusCode()).
		Int("bytes_in", len(body)).
		Msg("backend response")

	if !res.IsSuccess() {
		return NewAPIError(res.StatusCode(), errorMessage(body, fallbackMsg))
	}

	if err := json.Unmarshal(res.Body(), v); err != nil {
		log.Warn().Err(err).Str("url", res.Request.URL).Msg("failed to parse backend response")
		return ErrInvalidResponse
	}
	return nil
}

// errorMessage извлекает поле error из JSON-тела ошибки.
// Если тело не JSON - возвращает сам текст, если пусто - fallbackMsg.
func errorMessage(body string, fallbackMsg string) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal([]byte(body), &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		return fallbackMsg
	}
	if text := strings.TrimSpace(body); text != "" {
		return text
	}
	return fallbackMsg
}

// StatusCode статус ответа бэкенда, если ошибка пришла от него, иначе http.StatusBadGateway
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return http.StatusBadGateway
}
