package view

import (
	"fmt"
)

type Feature struct {
	Title       string
	Description string
}

// Endpoint описание эндпоинта бэкенда для страницы документации
type Endpoint struct {
	Method      string
	Path        string
	Description string
	// RequestBody пустой, если тела запроса нет
	RequestBody  string
	ResponseBody string
}

type ArchitectureStep struct {
	Name        string
	Description string
}

type Tech struct {
	Name        string
	Description string
}

var features = []Feature{
	{
		Title:       "Password-Protected Links",
		Description: "Secure your shortened links with custom passwords. Only authorized users can access your content.",
	},
	{
		Title:       "Simple Analytics",
		Description: "Track clicks, monitor performance, and gain insights into your link usage with easy-to-understand analytics.",
	},
	{
		Title:       "Auto Expiry",
		Description: "Links expire automatically after 7 days. Perfect for time-sensitive content and campaigns.",
	},
	{
		Title:       "No Login Required",
		Description: "Start shortening links immediately. No registration, no lengthy sign-up process - just simple, fast URL shortening.",
	},
}

var architecture = []ArchitectureStep{
	{
		Name:        "Web frontend.",
		Description: "This server renders the pages, validates input and calls the backend API. Results are shown once and never stored.",
	},
	{
		Name:        "API Gateway.",
		Description: "All backend requests hit an HTTP API which provides an HTTPS endpoint and handles CORS.",
	},
	{
		Name:        "Lambda Functions.",
		Description: "One function handles shorten / analytics and one handles redirect. They run only on demand.",
	},
	{
		Name:        "DynamoDB.",
		Description: "Stores the original URL, password hash, click counts, and TTL-based expiry (7 days).",
	},
	{
		Name:        "CI/CD.",
		Description: "Infrastructure is applied with Terraform on every push.",
	},
}

var techStack = []Tech{
	{Name: "Go", Description: "Web frontend and API client"},
	{Name: "AWS Lambda", Description: "Serverless compute functions"},
	{Name: "API Gateway", Description: "RESTful API management"},
	{Name: "DynamoDB", Description: "NoSQL database storage"},
	{Name: "Terraform", Description: "Infrastructure as Code"},
	{Name: "GitHub Actions", Description: "CI/CD automation"},
}

// Features список возможностей сервиса для главной страницы
func Features() []Feature {
	return features
}

// NewAboutData данные страницы о проекте
func NewAboutData() AboutData {
	return AboutData{Architecture: architecture, TechStack: techStack}
}

// NewAPIDocsData описание API бэкенда с примерами, построенными от baseURL
func NewAPIDocsData(baseURL string) APIDocsData {
	return APIDocsData{
		BaseURL: baseURL,
		Endpoints: []Endpoint{
			{
				Method:      "POST",
				Path:        "/shorten",
				Description: "Generate a new short URL. Optionally include a password to protect access.",
				RequestBody: `{
  "url": "https://example.com/really/long/path",
  "password": "optional-password"
}`,
				ResponseBody: fmt.Sprintf(`{
  "short_url": "%s/{short_code}",
  "original_url": "https://example.com/really/long/path",
  "password_protected": true
}`, baseURL),
			},
			{
				Method: "GET",
				Path:   "/{short_code}",
				Description: "Redirects the user to the original URL. If the link is password-protected and the password " +
					"query param isn't provided, an HTML password prompt will be returned instead of a redirect.",
				ResponseBody: "302 Redirect to original_url",
			},
			{
				Method:      "GET",
				Path:        "/analytics/{short_code}",
				Description: "Return analytics & metadata for a short link.",
				ResponseBody: `{
  "short_code": "abc123",
  "original_url": "https://example.com/really/long/path",
  "clicks": 42,
  "created_at": 1699219200,
  "expiry_time": 1699824000,
  "password_protected": false
}`,
			},
		},
	}
}
