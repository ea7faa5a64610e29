// Package shortener сценарии сокращения ссылки и получения статистики поверх клиента бэкенда.
package shortener

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/zaz600/go-smartlink-web/internal/entity"
	"github.com/zaz600/go-smartlink-web/internal/infrastructure/backend"
)

var (
	// ErrInvalidURL ссылка не является абсолютным http/https адресом
	ErrInvalidURL = errors.New("invalid url")
	// ErrEmptyShortCode не задан код короткой ссылки
	ErrEmptyShortCode = errors.New("short code is required")
	// ErrNoBackend сервис создан без клиента бэкенда
	ErrNoBackend = errors.New("nil backend was passed to service initializer")
)

type Service struct {
	api         backend.API
	docsBaseURL string
}

func NewService(apiBaseURL string, opts ...Option) (*Service, error) {
	s := &Service{
		docsBaseURL: strings.TrimRight(apiBaseURL, "/"),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	if s.api == nil {
		return nil, ErrNoBackend
	}
	return s, nil
}

// Shorten проверяет ссылку и отправляет ее на сокращение.
// Невалидная ссылка до бэкенда не доходит.
func (s *Service) Shorten(ctx context.Context, rawURL string, password string) (entity.ShortenedLink, error) {
	rawURL = strings.TrimSpace(rawURL)
	if err := ValidateURL(rawURL); err != nil {
		return entity.ShortenedLink{}, err
	}

	res, err := s.api.Shorten(ctx, entity.ShortenRequest{URL: rawURL, Password: password})
	if err != nil {
		log.Warn().Err(err).Str("url", rawURL).Bool("password", password != "").Msg("shorten failed")
		return entity.ShortenedLink{}, err
	}
	link := entity.NewShortenedLink(*res)
	log.Info().Str("short_code", link.ShortCode).Bool("password_protected", link.PasswordProtected).Msg("link shortened")
	return link, nil
}

// Analytics возвращает статистику по коду. Пустой код до бэкенда не доходит.
func (s *Service) Analytics(ctx context.Context, shortCode string) (entity.Analytics, error) {
	shortCode = strings.TrimSpace(shortCode)
	if shortCode == "" {
		return entity.Analytics{}, ErrEmptyShortCode
	}

	res, err := s.api.Analytics(ctx, shortCode)
	if err != nil {
		log.Warn().Err(err).Str("short_code", shortCode).Msg("analytics failed")
		return entity.Analytics{}, err
	}
	return *res, nil
}

// DocsBaseURL адрес API для страницы документации
func (s *Service) DocsBaseURL() string {
	return s.docsBaseURL
}

// ValidateURL проверяет, что адрес абсолютный и со схемой http или https
func ValidateURL(value string) error {
	if value == "" {
		return ErrInvalidURL
	}
	u, err := url.Parse(value)
	if err != nil {
		return ErrInvalidURL
	}
	if !u.IsAbs() || u.Host == "" {
		return ErrInvalidURL
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ErrInvalidURL
	}
	return nil
}
