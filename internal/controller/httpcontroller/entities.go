package httpcontroller

import "github.com/zaz600/go-smartlink-web/internal/entity"

// ShortenRequest тело запроса POST /api/shorten
type ShortenRequest struct {
	URL      string `json:"url"`
	Password string `json:"password,omitempty"`
}

// ShortenResponse ответ бэкенда, дополненный кодом для статистики
type ShortenResponse = entity.ShortenedLink

type AnalyticsResponse = entity.Analytics

type ErrorResponse struct {
	Error string `json:"error"`
}
