package httpcontroller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
	"github.com/zaz600/go-smartlink-web/internal/infrastructure/backend"
	"github.com/zaz600/go-smartlink-web/internal/infrastructure/session"
	"github.com/zaz600/go-smartlink-web/internal/service/request"
	"github.com/zaz600/go-smartlink-web/internal/service/shortener"
	"github.com/zaz600/go-smartlink-web/internal/view"
)

const (
	defaultRequestTimeout = 10 * time.Second
	defaultSessionTTL     = 30 * time.Minute
	defaultSessionSecret  = "smartlink-secret"
)

type Option func(*SmartLinkController)

// WithSessions хранилище сессий посетителей. Без него создается собственное.
func WithSessions(sessions *session.Store[*Visitor]) Option {
	return func(c *SmartLinkController) {
		c.sessions = sessions
	}
}

// WithSessionSecret ключ подписи куки сессии и время ее жизни
func WithSessionSecret(secret string, ttl time.Duration) Option {
	return func(c *SmartLinkController) {
		c.cookies = NewCookieSigner(secret, ttl)
	}
}

// WithRequestTimeout таймаут запроса к бэкенду, от него считается таймаут обработки запроса
func WithRequestTimeout(timeout time.Duration) Option {
	return func(c *SmartLinkController) {
		c.requestTimeout = timeout
	}
}

type SmartLinkController struct {
	*chi.Mux
	service        *shortener.Service
	renderer       *view.Renderer
	sessions       *session.Store[*Visitor]
	cookies        *CookieSigner
	requestTimeout time.Duration
}

func New(service *shortener.Service, renderer *view.Renderer, opts ...Option) *SmartLinkController {
	c := &SmartLinkController{
		Mux:            chi.NewRouter(),
		service:        service,
		renderer:       renderer,
		requestTimeout: defaultRequestTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.sessions == nil {
		c.sessions = NewSessionStore(service, defaultSessionTTL)
	}
	if c.cookies == nil {
		c.cookies = NewCookieSigner(defaultSessionSecret, defaultSessionTTL)
	}
	c.setupHandlers()
	return c
}

// NewSessionStore хранилище сессий, в котором у каждого посетителя свои экземпляры форм
func NewSessionStore(service *shortener.Service, ttl time.Duration) *session.Store[*Visitor] {
	return session.NewStore(ttl, newVisitor(service))
}

// setupHandlers настройка роутинга и middleware
func (s SmartLinkController) setupHandlers() {
	s.Use(middleware.RequestID)
	s.Use(middleware.RealIP)
	s.Use(middleware.Logger)
	s.Use(middleware.Recoverer)
	s.Use(middleware.Timeout(s.requestTimeout + 5*time.Second))
	s.Use(middleware.Compress(5))
	s.Use(GzDecompressor)

	s.Get("/", s.Index())
	s.Post("/shorten", s.SubmitShorten())
	s.Post("/analytics", s.SubmitAnalytics())
	s.Get("/analytics/{shortCode}", s.AnalyticsPage())
	s.Get("/about", s.About())
	s.Get("/api-docs", s.APIDocs())
	s.Handle("/static/*", http.StripPrefix("/static/", view.StaticHandler()))

	s.Post("/api/shorten", s.ShortenJSON())
	s.Get("/api/analytics/{shortCode}", s.AnalyticsJSON())
	s.Get("/ping", s.Ping())
	s.Mount("/debug", middleware.Profiler())

	s.NotFound(s.NotFoundPage())
}

// Index главная страница с чистыми формами
func (s SmartLinkController) Index() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		forms := s.visitor(w, r)
		s.renderIndex(w, r, view.IndexData{
			Shortener: forms.shortener.View(),
			Analytics: forms.analytics.View(),
		}, nil)
	}
}

// SubmitShorten обработка отправки формы сокращения ссылки.
// Результат показывается один раз на перерисованной главной странице.
func (s SmartLinkController) SubmitShorten() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid request params", http.StatusBadRequest)
			return
		}
		forms := s.visitor(w, r)
		out := forms.shortener.Submit(r.Context(), r.PostFormValue("url"), r.PostFormValue("password"))
		s.renderIndex(w, r, view.IndexData{
			Shortener: out.View,
			Analytics: forms.analytics.View(),
		}, out.Toast)
	}
}

// SubmitAnalytics обработка отправки формы статистики
func (s SmartLinkController) SubmitAnalytics() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid request params", http.StatusBadRequest)
			return
		}
		s.analytics(w, r, r.PostFormValue("short_code"))
	}
}

// AnalyticsPage статистика по коду из адреса страницы
func (s SmartLinkController) AnalyticsPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.analytics(w, r, chi.URLParam(r, "shortCode"))
	}
}

func (s SmartLinkController) analytics(w http.ResponseWriter, r *http.Request, shortCode string) {
	forms := s.visitor(w, r)
	out := forms.analytics.Submit(r.Context(), shortCode)
	s.renderIndex(w, r, view.IndexData{
		Shortener: forms.shortener.View(),
		Analytics: out.View,
	}, out.Toast)
}

func (s SmartLinkController) About() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.render(w, r, http.StatusOK, view.PageAbout, view.PageData{Title: "About", Content: view.NewAboutData()})
	}
}

func (s SmartLinkController) APIDocs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.render(w, r, http.StatusOK, view.PageAPIDocs, view.PageData{
			Title:   "API Docs",
			Content: view.NewAPIDocsData(s.service.DocsBaseURL()),
		})
	}
}

func (s SmartLinkController) NotFoundPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Warn().Str("path", r.URL.Path).Msg("404: non-existent route")
		s.render(w, r, http.StatusNotFound, view.PageNotFound, view.PageData{Title: "Not Found"})
	}
}

// ShortenJSON возвращает http.HandlerFunc для сокращения ссылки из скриптов.
// Запрос в формате ShortenRequest, ответ в формате ShortenResponse.
func (s SmartLinkController) ShortenJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ShortenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request params"})
			return
		}

		forms := s.visitor(w, r)
		out := forms.shortener.Submit(r.Context(), req.URL, req.Password)
		if out.Err != nil {
			writeError(w, out.Err)
			return
		}
		writeJSON(w, http.StatusOK, ShortenResponse(*out.View.Link))
	}
}

// AnalyticsJSON возвращает http.HandlerFunc для получения статистики из скриптов
func (s SmartLinkController) AnalyticsJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		forms := s.visitor(w, r)
		out := forms.analytics.Submit(r.Context(), chi.URLParam(r, "shortCode"))
		if out.Err != nil {
			writeError(w, out.Err)
			return
		}
		if out.View.Data == nil {
			writeJSON(w, http.StatusConflict, ErrorResponse{Error: request.ErrInFlight.Error()})
			return
		}
		writeJSON(w, http.StatusOK, AnalyticsResponse(*out.View.Data))
	}
}

// Ping проверка, что сервис жив
func (s SmartLinkController) Ping() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeAnswer(w, "text/plain; charset=utf-8", http.StatusOK, "ok")
	}
}

// visitor возвращает формы посетителя, при необходимости заводя новую сессию
func (s SmartLinkController) visitor(w http.ResponseWriter, r *http.Request) *Visitor {
	sid, err := s.cookies.ExtractSessionID(r.Cookies())
	if err != nil {
		s.logCookieError(r, err)
	}
	sid, forms := s.sessions.GetOrCreate(sid)
	s.cookies.SetSessionCookie(w, sid)
	return forms
}

func (s SmartLinkController) renderIndex(w http.ResponseWriter, r *http.Request, data view.IndexData, toast *view.Toast) {
	data.Features = view.Features()
	page := view.PageData{Content: data}
	if toast != nil {
		page.Toasts = append(page.Toasts, *toast)
	}
	s.render(w, r, http.StatusOK, view.PageIndex, page)
}

func (s SmartLinkController) render(w http.ResponseWriter, r *http.Request, statusCode int, page view.Page, data view.PageData) {
	if err := s.renderer.Render(w, statusCode, page, data); err != nil {
		log.Error().Err(err).Str("url", r.URL.Path).Msg("render failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// errorStatus http статус ответа для ошибки формы
func errorStatus(err error) int {
	switch {
	case errors.Is(err, shortener.ErrInvalidURL), errors.Is(err, shortener.ErrEmptyShortCode):
		return http.StatusBadRequest
	case errors.Is(err, request.ErrInFlight):
		return http.StatusConflict
	}
	return backend.StatusCode(err)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, errorStatus(err), ErrorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	writeAnswer(w, "application/json", statusCode, string(data))
}

// writeAnswer обертка для упрощения записи ответа на запросы
func writeAnswer(w http.ResponseWriter, contentType string, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(statusCode)
	_, _ = fmt.Fprint(w, data)
}

// logCookieError логирует ErrInvalidCookieDigest, если она возникла
func (s SmartLinkController) logCookieError(r *http.Request, err error) {
	if errors.Is(err, ErrInvalidCookieDigest) {
		log.Warn().
			Err(err).
			Fields(map[string]interface{}{
				"remote_ip":  r.RemoteAddr,
				"url":        r.URL.Path,
				"proto":      r.Proto,
				"method":     r.Method,
				"user_agent": r.Header.Get("User-Agent"),
			}).
			Msg("")
	}
}
