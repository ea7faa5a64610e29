package shortener

import (
	"strings"

	"github.com/zaz600/go-smartlink-web/internal/infrastructure/backend"
)

type Option func(*Service) error

// WithBackend указание клиента бэкенда для сервиса
func WithBackend(api backend.API) Option {
	return func(s *Service) error {
		s.api = api
		return nil
	}
}

// WithDocsBaseURL адрес API, который показывается в документации.
// По умолчанию совпадает с адресом, по которому работает клиент.
func WithDocsBaseURL(docsBaseURL string) Option {
	return func(s *Service) error {
		if docsBaseURL != "" {
			s.docsBaseURL = strings.TrimRight(docsBaseURL, "/")
		}
		return nil
	}
}
