package httpcontroller

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/zaz600/go-smartlink-web/internal/entity"
	"github.com/zaz600/go-smartlink-web/internal/service/request"
	"github.com/zaz600/go-smartlink-web/internal/service/shortener"
	"github.com/zaz600/go-smartlink-web/internal/view"
)

const (
	shortenErrorFallback   = "Failed to shorten URL. Please try again."
	analyticsErrorFallback = "Failed to retrieve analytics. Please check the short code."
)

var (
	toastInvalidURL = view.Toast{
		Title:       "Invalid URL",
		Description: "Please enter a valid URL including http:// or https://",
		Destructive: true,
	}
	toastShortenInFlight = view.Toast{
		Title:       "Please wait",
		Description: "A link is already being shortened.",
	}
	toastAnalyticsInFlight = view.Toast{
		Title:       "Please wait",
		Description: "Analytics are already being loaded.",
	}
	toastAnalyticsLoaded = view.Toast{
		Title:       "Analytics loaded",
		Description: "Link analytics retrieved successfully.",
	}
)

func errorToast(err error, fallback string) *view.Toast {
	msg := fallback
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return &view.Toast{Title: "Error", Description: msg, Destructive: true}
}

type shortenInput struct {
	URL      string
	Password string
}

// ShortenOutcome итог отправки формы сокращения ссылки
type ShortenOutcome struct {
	View  view.ShortenerView
	Toast *view.Toast
	Err   error
}

// URLShortenerForm форма сокращения ссылки одного посетителя.
// Одновременно выполняется не больше одного запроса.
type URLShortenerForm struct {
	mutation *request.Mutation[shortenInput, entity.ShortenedLink]
}

func NewURLShortenerForm(service *shortener.Service) *URLShortenerForm {
	return &URLShortenerForm{
		mutation: request.NewMutation[shortenInput, entity.ShortenedLink](func(ctx context.Context, in shortenInput) (entity.ShortenedLink, error) {
			return service.Shorten(ctx, in.URL, in.Password)
		}),
	}
}

// View состояние формы без отправки
func (f *URLShortenerForm) View() view.ShortenerView {
	return view.ShortenerView{Pending: f.mutation.IsPending()}
}

// Submit проверяет ссылку и отправляет ее на сокращение
func (f *URLShortenerForm) Submit(ctx context.Context, rawURL string, password string) ShortenOutcome {
	rawURL = strings.TrimSpace(rawURL)
	out := ShortenOutcome{View: view.ShortenerView{URL: rawURL}}

	if err := shortener.ValidateURL(rawURL); err != nil {
		t := toastInvalidURL
		out.Toast = &t
		out.Err = err
		return out
	}

	res := f.mutation.Mutate(ctx, shortenInput{URL: rawURL, Password: password}, request.Callbacks[shortenInput, entity.ShortenedLink]{
		OnSuccess: func(link entity.ShortenedLink, _ shortenInput) {
			description := "Your link is ready to share."
			if link.PasswordProtected {
				description = "Your link is password protected."
			}
			out.Toast = &view.Toast{Title: "Link shortened successfully!", Description: description}
		},
		OnError: func(err error, _ shortenInput) {
			out.Toast = errorToast(err, shortenErrorFallback)
		},
	})

	switch {
	case errors.Is(res.Err, request.ErrInFlight):
		t := toastShortenInFlight
		out.Toast = &t
		out.View.Pending = true
	case res.OK():
		link := res.Data
		out.View.Link = &link
	}
	out.Err = res.Err
	return out
}

// AnalyticsOutcome итог отправки формы статистики
type AnalyticsOutcome struct {
	View  view.AnalyticsView
	Toast *view.Toast
	Err   error
}

// AnalyticsForm форма просмотра статистики одного посетителя
type AnalyticsForm struct {
	query *request.Query[entity.Analytics]
	now   func() time.Time
}

func NewAnalyticsForm(service *shortener.Service) *AnalyticsForm {
	return &AnalyticsForm{
		query: request.NewQuery[entity.Analytics](service.Analytics),
		now:   time.Now,
	}
}

// View состояние формы без отправки. Данные прошлого запроса не показываются.
func (f *AnalyticsForm) View() view.AnalyticsView {
	return view.AnalyticsView{Pending: f.query.IsPending()}
}

// Submit запрашивает статистику по коду. Для пустого кода запрос не выполняется.
func (f *AnalyticsForm) Submit(ctx context.Context, shortCode string) AnalyticsOutcome {
	shortCode = strings.TrimSpace(shortCode)
	out := AnalyticsOutcome{View: view.AnalyticsView{ShortCode: shortCode}}

	f.query.SetKey(shortCode)
	res := f.query.Refetch(ctx)

	switch res.State {
	case request.Idle:
		if shortCode == "" {
			out.Err = shortener.ErrEmptyShortCode
		}
	case request.Pending:
		out.View.Pending = true
	case request.Error:
		if errors.Is(res.Err, request.ErrInFlight) {
			t := toastAnalyticsInFlight
			out.Toast = &t
			out.View.Pending = true
		} else {
			out.Toast = errorToast(res.Err, analyticsErrorFallback)
		}
		out.Err = res.Err
	case request.Success:
		data := res.Data
		out.View.Data = &data
		out.View.Expired = data.IsExpired(f.now())
		t := toastAnalyticsLoaded
		out.Toast = &t
	}
	return out
}

// Visitor формы одного посетителя
type Visitor struct {
	shortener *URLShortenerForm
	analytics *AnalyticsForm
}

func newVisitor(service *shortener.Service) func() *Visitor {
	return func() *Visitor {
		return &Visitor{
			shortener: NewURLShortenerForm(service),
			analytics: NewAnalyticsForm(service),
		}
	}
}
