package httpcontroller

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"
	"github.com/zaz600/go-smartlink-web/internal/entity"
	"github.com/zaz600/go-smartlink-web/internal/infrastructure/backend"
	"github.com/zaz600/go-smartlink-web/internal/infrastructure/backend/mocks"
	"github.com/zaz600/go-smartlink-web/internal/service/shortener"
	"github.com/zaz600/go-smartlink-web/internal/view"
)

const apiBaseURL = "https://api.example.com/$default"

type ControllerTestSuite struct {
	suite.Suite
	ctrl   *gomock.Controller
	api    *mocks.MockAPI
	ts     *httptest.Server
	client *resty.Client
}

func (suite *ControllerTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.api = mocks.NewMockAPI(suite.ctrl)

	service, err := shortener.NewService(apiBaseURL, shortener.WithBackend(suite.api))
	suite.Require().NoError(err)
	f, err := view.NewFormatter("en-US", "UTC")
	suite.Require().NoError(err)
	renderer, err := view.NewRenderer(f)
	suite.Require().NoError(err)

	controller := New(service, renderer,
		WithSessionSecret("test-secret", time.Hour),
		WithSessions(NewSessionStore(service, time.Hour)),
		WithRequestTimeout(time.Second),
	)
	suite.ts = httptest.NewServer(controller)
	// resty.New создает клиент со своим cookie jar, поэтому сессия сохраняется между запросами
	suite.client = resty.New().SetBaseURL(suite.ts.URL)
}

func (suite *ControllerTestSuite) TearDownTest() {
	suite.ts.Close()
	suite.ctrl.Finish()
}

func TestControllerTestSuite(t *testing.T) {
	suite.Run(t, new(ControllerTestSuite))
}

func (suite *ControllerTestSuite) TestPing() {
	res, err := suite.client.R().Get("/ping")
	suite.Require().NoError(err)
	suite.Equal(http.StatusOK, res.StatusCode())
	suite.Equal("ok", res.String())
}

func (suite *ControllerTestSuite) TestIndexSetsSessionCookie() {
	res, err := suite.client.R().Get("/")
	suite.Require().NoError(err)
	suite.Equal(http.StatusOK, res.StatusCode())
	suite.Contains(res.String(), "Shorten URL")
	suite.Contains(res.String(), `id="analytics"`)

	var sid *http.Cookie
	for _, c := range res.Cookies() {
		if c.Name == sessionCookieName {
			sid = c
		}
	}
	suite.Require().NotNil(sid)
	suite.True(sid.HttpOnly)
}

func (suite *ControllerTestSuite) TestStaticPages() {
	tests := []struct {
		name string
		path string
		code int
		want string
	}{
		{
			name: "about",
			path: "/about",
			code: http.StatusOK,
			want: "System Architecture",
		},
		{
			name: "api docs",
			path: "/api-docs",
			code: http.StatusOK,
			want: apiBaseURL,
		},
		{
			name: "static script",
			path: "/static/app.js",
			code: http.StatusOK,
			want: "Link copied to clipboard.",
		},
		{
			name: "unknown route",
			path: "/no/such/page",
			code: http.StatusNotFound,
			want: "Oops! Page not found",
		},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			res, err := suite.client.R().Get(tt.path)
			suite.Require().NoError(err)
			suite.Equal(tt.code, res.StatusCode())
			suite.Contains(res.String(), tt.want)
		})
	}
}

func (suite *ControllerTestSuite) TestSubmitShortenInvalidURL() {
	// мок без ожиданий: любой вызов бэкенда провалит тест
	res, err := suite.client.R().
		SetFormData(map[string]string{"url": "ya.ru"}).
		Post("/shorten")
	suite.Require().NoError(err)
	suite.Equal(http.StatusOK, res.StatusCode())
	suite.Contains(res.String(), "Invalid URL")
	suite.Contains(res.String(), "Please enter a valid URL including http:// or https://")
	suite.NotContains(res.String(), `id="shorten-result"`)
}

func (suite *ControllerTestSuite) TestSubmitShortenSuccess() {
	tests := []struct {
		name        string
		password    string
		protected   bool
		description string
	}{
		{
			name:        "public link",
			description: "Your link is ready to share.",
		},
		{
			name:        "password protected link",
			password:    "secret",
			protected:   true,
			description: "Your link is password protected.",
		},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.api.EXPECT().
				Shorten(gomock.Any(), entity.ShortenRequest{URL: "https://example.com/long", Password: tt.password}).
				Return(&entity.ShortenResponse{
					ShortURL:          "https://sl.io/abc123",
					OriginalURL:       "https://example.com/long",
					PasswordProtected: tt.protected,
				}, nil)

			res, err := suite.client.R().
				SetFormData(map[string]string{"url": " https://example.com/long ", "password": tt.password}).
				Post("/shorten")
			suite.Require().NoError(err)
			body := res.String()
			suite.Contains(body, "Link shortened successfully!")
			suite.Contains(body, tt.description)
			suite.Contains(body, `<p class="mono" id="short-code">abc123</p>`)
			suite.Contains(body, `data-copy="https://sl.io/abc123"`)
		})
	}
}

func (suite *ControllerTestSuite) TestSubmitShortenBackendError() {
	suite.api.EXPECT().
		Shorten(gomock.Any(), gomock.Any()).
		Return(nil, backend.NewAPIError(http.StatusBadRequest, "URL is required"))

	res, err := suite.client.R().
		SetFormData(map[string]string{"url": "https://example.com"}).
		Post("/shorten")
	suite.Require().NoError(err)
	suite.Contains(res.String(), "toast-destructive")
	suite.Contains(res.String(), "URL is required")
	suite.NotContains(res.String(), `id="shorten-result"`)
}

func (suite *ControllerTestSuite) TestResultIsNotPersisted() {
	suite.api.EXPECT().
		Shorten(gomock.Any(), gomock.Any()).
		Return(&entity.ShortenResponse{ShortURL: "https://sl.io/abc123", OriginalURL: "https://example.com"}, nil)

	res, err := suite.client.R().
		SetFormData(map[string]string{"url": "https://example.com"}).
		Post("/shorten")
	suite.Require().NoError(err)
	suite.Contains(res.String(), `id="shorten-result"`)

	res, err = suite.client.R().Get("/")
	suite.Require().NoError(err)
	suite.NotContains(res.String(), `id="shorten-result"`)
}

func (suite *ControllerTestSuite) TestSubmitAnalyticsEmptyCode() {
	res, err := suite.client.R().
		SetFormData(map[string]string{"short_code": "   "}).
		Post("/analytics")
	suite.Require().NoError(err)
	suite.Equal(http.StatusOK, res.StatusCode())
	suite.NotContains(res.String(), `role="status"`)
	suite.NotContains(res.String(), `id="analytics-result"`)
}

func (suite *ControllerTestSuite) TestAnalyticsPage() {
	suite.api.EXPECT().
		Analytics(gomock.Any(), "abc123").
		Return(&entity.Analytics{
			ShortCode:   "abc123",
			OriginalURL: "https://example.com/long",
			Clicks:      1234,
			CreatedAt:   1699219200,
			ExpiryTime:  1699824000,
		}, nil).
		Times(2)

	for _, send := range []func() (*resty.Response, error){
		func() (*resty.Response, error) {
			return suite.client.R().SetFormData(map[string]string{"short_code": "abc123"}).Post("/analytics")
		},
		func() (*resty.Response, error) {
			return suite.client.R().Get("/analytics/abc123")
		},
	} {
		res, err := send()
		suite.Require().NoError(err)
		body := res.String()
		suite.Contains(body, "Analytics loaded")
		suite.Contains(body, "1,234")
		suite.Contains(body, "Nov 5, 2023, 09:20 PM")
		suite.Contains(body, "Public Link")
		suite.Contains(body, "Expired")
	}
}

func (suite *ControllerTestSuite) TestAnalyticsPageError() {
	suite.api.EXPECT().
		Analytics(gomock.Any(), "nope").
		Return(nil, backend.NewAPIError(http.StatusNotFound, "Short code not found"))

	res, err := suite.client.R().Get("/analytics/nope")
	suite.Require().NoError(err)
	suite.Contains(res.String(), "Short code not found")
	suite.NotContains(res.String(), `id="analytics-result"`)
}

func (suite *ControllerTestSuite) TestShortenJSON() {
	suite.api.EXPECT().
		Shorten(gomock.Any(), entity.ShortenRequest{URL: "https://example.com/long"}).
		Return(&entity.ShortenResponse{ShortURL: "https://sl.io/abc123", OriginalURL: "https://example.com/long"}, nil)

	res, err := suite.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(`{"url":"https://example.com/long"}`).
		Post("/api/shorten")
	suite.Require().NoError(err)
	suite.Equal(http.StatusOK, res.StatusCode())
	suite.Equal("application/json", res.Header().Get("Content-Type"))

	var link ShortenResponse
	suite.Require().NoError(json.Unmarshal(res.Body(), &link))
	suite.Equal("abc123", link.ShortCode)
	suite.Equal("https://sl.io/abc123", link.ShortURL)
}

func (suite *ControllerTestSuite) TestShortenJSONErrors() {
	tests := []struct {
		name    string
		body    string
		mockErr error
		code    int
		message string
	}{
		{
			name:    "bad json",
			body:    `{"url":`,
			code:    http.StatusBadRequest,
			message: "invalid request params",
		},
		{
			name:    "invalid url",
			body:    `{"url":"ftp://example.com"}`,
			code:    http.StatusBadRequest,
			message: shortener.ErrInvalidURL.Error(),
		},
		{
			name:    "upstream status",
			body:    `{"url":"https://example.com"}`,
			mockErr: backend.NewAPIError(http.StatusInternalServerError, "boom"),
			code:    http.StatusInternalServerError,
			message: "boom",
		},
		{
			name:    "invalid upstream response",
			body:    `{"url":"https://example.com"}`,
			mockErr: backend.ErrInvalidResponse,
			code:    http.StatusBadGateway,
			message: "Invalid response format from server",
		},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			if tt.mockErr != nil {
				suite.api.EXPECT().Shorten(gomock.Any(), gomock.Any()).Return(nil, tt.mockErr)
			}
			res, err := suite.client.R().
				SetHeader("Content-Type", "application/json").
				SetBody(tt.body).
				Post("/api/shorten")
			suite.Require().NoError(err)
			suite.Equal(tt.code, res.StatusCode())

			var e ErrorResponse
			suite.Require().NoError(json.Unmarshal(res.Body(), &e))
			suite.Equal(tt.message, e.Error)
		})
	}
}

func (suite *ControllerTestSuite) TestShortenJSONGzipped() {
	suite.api.EXPECT().
		Shorten(gomock.Any(), entity.ShortenRequest{URL: "https://example.com/gz"}).
		Return(&entity.ShortenResponse{ShortURL: "https://sl.io/gz1", OriginalURL: "https://example.com/gz"}, nil)

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(`{"url":"https://example.com/gz"}`))
	suite.Require().NoError(err)
	suite.Require().NoError(zw.Close())

	res, err := suite.client.R().
		SetHeader("Content-Type", "application/x-gzip").
		SetBody(buf.Bytes()).
		Post("/api/shorten")
	suite.Require().NoError(err)
	suite.Equal(http.StatusOK, res.StatusCode())
	suite.Contains(res.String(), `"short_code":"gz1"`)
}

func (suite *ControllerTestSuite) TestAnalyticsJSON() {
	suite.api.EXPECT().
		Analytics(gomock.Any(), "abc123").
		Return(&entity.Analytics{ShortCode: "abc123", Clicks: 7, CreatedAt: 1699219200, ExpiryTime: 1699824000}, nil)
	suite.api.EXPECT().
		Analytics(gomock.Any(), "missing").
		Return(nil, backend.NewAPIError(http.StatusNotFound, "Short code not found"))

	res, err := suite.client.R().Get("/api/analytics/abc123")
	suite.Require().NoError(err)
	suite.Equal(http.StatusOK, res.StatusCode())
	var a AnalyticsResponse
	suite.Require().NoError(json.Unmarshal(res.Body(), &a))
	suite.Equal(int64(7), a.Clicks)
	suite.Equal(int64(1699219200), a.CreatedAt)

	res, err = suite.client.R().Get("/api/analytics/missing")
	suite.Require().NoError(err)
	suite.Equal(http.StatusNotFound, res.StatusCode())
	suite.Contains(res.String(), "Short code not found")
}

func (suite *ControllerTestSuite) TestSecondShortenWhilePending() {
	started := make(chan struct{})
	release := make(chan struct{})
	suite.api.EXPECT().
		Shorten(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, req entity.ShortenRequest) (*entity.ShortenResponse, error) {
			close(started)
			<-release
			return &entity.ShortenResponse{ShortURL: "https://sl.io/first", OriginalURL: req.URL}, nil
		}).
		Times(1)

	// сессия заводится заранее, чтобы оба запроса попали в одну форму
	_, err := suite.client.R().Get("/")
	suite.Require().NoError(err)

	first := make(chan *resty.Response, 1)
	go func() {
		res, _ := suite.client.R().
			SetHeader("Content-Type", "application/json").
			SetBody(`{"url":"https://example.com/first"}`).
			Post("/api/shorten")
		first <- res
	}()
	<-started

	res, err := suite.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(`{"url":"https://example.com/second"}`).
		Post("/api/shorten")
	suite.Require().NoError(err)
	suite.Equal(http.StatusConflict, res.StatusCode())

	res, err = suite.client.R().
		SetFormData(map[string]string{"url": "https://example.com/second"}).
		Post("/shorten")
	suite.Require().NoError(err)
	suite.Contains(res.String(), "A link is already being shortened.")
	suite.Contains(res.String(), `class="primary" disabled`)

	close(release)
	firstRes := <-first
	suite.Require().NotNil(firstRes)
	suite.Equal(http.StatusOK, firstRes.StatusCode())
}
