package entity

import (
	"strings"
	"time"
)

// ShortenRequest запрос к бэкенду на сокращение ссылки.
// Пароль не сериализуется, если не задан.
type ShortenRequest struct {
	URL      string `json:"url"`
	Password string `json:"password,omitempty"`
}

// ShortenResponse ответ бэкенда на сокращение ссылки
type ShortenResponse struct {
	ShortURL          string `json:"short_url"`
	OriginalURL       string `json:"original_url"`
	PasswordProtected bool   `json:"password_protected"`
}

// ShortCode возвращает код короткой ссылки - все, что после последнего "/" в ShortURL.
func (r ShortenResponse) ShortCode() string {
	return ShortCodeOf(r.ShortURL)
}

// ShortCodeOf извлекает из короткой ссылки последний сегмент пути
func ShortCodeOf(shortURL string) string {
	idx := strings.LastIndex(shortURL, "/")
	if idx < 0 {
		return shortURL
	}
	return shortURL[idx+1:]
}

// ShortenedLink сокращенная ссылка вместе с кодом для просмотра аналитики
type ShortenedLink struct {
	ShortURL          string `json:"short_url"`
	OriginalURL       string `json:"original_url"`
	PasswordProtected bool   `json:"password_protected"`
	ShortCode         string `json:"short_code"`
}

func NewShortenedLink(r ShortenResponse) ShortenedLink {
	return ShortenedLink{
		ShortURL:          r.ShortURL,
		OriginalURL:       r.OriginalURL,
		PasswordProtected: r.PasswordProtected,
		ShortCode:         r.ShortCode(),
	}
}

// Analytics статистика и метаданные короткой ссылки.
// CreatedAt и ExpiryTime - unix-время в секундах.
type Analytics struct {
	ShortCode         string `json:"short_code"`
	OriginalURL       string `json:"original_url"`
	Clicks            int64  `json:"clicks"`
	CreatedAt         int64  `json:"created_at"`
	ExpiryTime        int64  `json:"expiry_time"`
	PasswordProtected bool   `json:"password_protected"`
}

func (a Analytics) CreatedTime() time.Time {
	return time.Unix(a.CreatedAt, 0)
}

func (a Analytics) ExpiryTimeAt() time.Time {
	return time.Unix(a.ExpiryTime, 0)
}

// IsExpired истек ли срок жизни ссылки на момент now
func (a Analytics) IsExpired(now time.Time) bool {
	return !now.Before(a.ExpiryTimeAt())
}
