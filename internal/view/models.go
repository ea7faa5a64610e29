package view

import (
	"github.com/zaz600/go-smartlink-web/internal/entity"
)

// Toast всплывающее уведомление
type Toast struct {
	Title       string
	Description string
	Destructive bool
}

// ShortenerView состояние формы сокращения ссылки для отрисовки.
// Пароль обратно в форму не выводится.
type ShortenerView struct {
	URL     string
	Pending bool
	Link    *entity.ShortenedLink
}

// AnalyticsView состояние формы статистики для отрисовки
type AnalyticsView struct {
	ShortCode string
	Pending   bool
	Data      *entity.Analytics
	Expired   bool
}

// IndexData данные главной страницы
type IndexData struct {
	Shortener ShortenerView
	Analytics AnalyticsView
	Features  []Feature
}

// APIDocsData данные страницы документации API
type APIDocsData struct {
	BaseURL   string
	Endpoints []Endpoint
}

// AboutData данные страницы о проекте
type AboutData struct {
	Architecture []ArchitectureStep
	TechStack    []Tech
}
