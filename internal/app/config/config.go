// Package config настройки приложения: json-файл, переменные окружения и флаги командной строки.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config настройки приложения
type Config struct {
	// ServerAddress адрес для прослушивания входящих запросов
	ServerAddress string `json:"server_address" env:"SERVER_ADDRESS" env-default:"localhost:8080" env-description:"listen address"`
	// APIBaseURL адрес API бэкенда, к которому дописываются /shorten и /analytics/{code}
	APIBaseURL string `json:"api_base_url" env:"API_BASE_URL" env-default:"https://bhjrt72dfk.execute-api.us-east-1.amazonaws.com/$default" env-description:"backend api base url"`
	// DocsBaseURL адрес API для страницы документации. Если не задан, совпадает с APIBaseURL.
	DocsBaseURL string `json:"docs_base_url" env:"DOCS_BASE_URL" env-description:"api base url shown on the api docs page"`
	// RequestTimeout таймаут одного запроса к бэкенду
	RequestTimeout Duration `json:"request_timeout" env:"REQUEST_TIMEOUT" env-default:"10s" env-description:"backend request timeout"`
	// EnableHTTPS включать или нет ssl на прослушиваемом порту
	EnableHTTPS bool `json:"enable_https" env:"ENABLE_HTTPS" env-description:"enable https with self-signed certificate"`
	// SessionSecret ключ подписи куки сессии
	SessionSecret string `json:"session_secret" env:"SESSION_SECRET" env-default:"smartlink-secret" env-description:"session cookie hmac key"`
	// SessionTTL время жизни сессии посетителя без обращений
	SessionTTL      Duration `json:"session_ttl" env:"SESSION_TTL" env-default:"30m" env-description:"visitor session idle ttl"`
	DisplayLocale   string   `json:"display_locale" env:"DISPLAY_LOCALE" env-default:"en-US" env-description:"locale for dates and numbers"`
	DisplayTimezone string   `json:"display_timezone" env:"DISPLAY_TIMEZONE" env-default:"UTC" env-description:"time zone for dates"`
	LogLevel        string   `json:"log_level" env:"LOG_LEVEL" env-default:"info" env-description:"zerolog level"`
}

// String для логов, ключ сессии не выводится
func (c Config) String() string {
	masked := c
	if masked.SessionSecret != "" {
		masked.SessionSecret = "***"
	}
	type plain Config
	return fmt.Sprintf("%+v", plain(masked))
}

func (c Config) Timeout() time.Duration {
	return time.Duration(c.RequestTimeout)
}

func (c Config) TTL() time.Duration {
	return time.Duration(c.SessionTTL)
}

func getConfigFileName(args []string) string {
	for i := 0; i < len(args); i++ {
		if args[i] == "-c" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return os.Getenv("CONFIG")
}

// GetConfig возвращает конфигурацию приложения. Приоритет по возрастанию:
// значения по умолчанию -> файл конфигурации -> env -> аргументы командной строки.
// args - аргументы командной строки вместе с именем программы
func GetConfig(args []string) (*Config, error) {
	name := "smartlink"
	if len(args) > 0 {
		name, args = args[0], args[1:]
	}

	var cfg Config
	if configFile := getConfigFileName(args); configFile != "" {
		if err := cleanenv.ReadConfig(configFile, &cfg); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", configFile, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	_ = fs.String("c", "", "config file. env: CONFIG")
	fs.StringVar(&cfg.ServerAddress, "a", cfg.ServerAddress, "listen address. env: SERVER_ADDRESS")
	fs.StringVar(&cfg.APIBaseURL, "b", cfg.APIBaseURL, "backend api base url. env: API_BASE_URL")
	fs.StringVar(&cfg.DocsBaseURL, "docs", cfg.DocsBaseURL, "api base url for docs page. env: DOCS_BASE_URL")
	fs.Var(&cfg.RequestTimeout, "t", "backend request timeout. env: REQUEST_TIMEOUT")
	fs.BoolVar(&cfg.EnableHTTPS, "s", cfg.EnableHTTPS, "enable ssl. env: ENABLE_HTTPS")
	fs.StringVar(&cfg.SessionSecret, "k", cfg.SessionSecret, "session cookie secret. env: SESSION_SECRET")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level. env: LOG_LEVEL")
	fs.Usage = cleanenv.FUsage(fs.Output(), &cfg, nil, fs.PrintDefaults)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c Config) validate() error {
	if c.APIBaseURL == "" {
		return errors.New("api base url is required")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("session ttl must be positive, got %s", c.SessionTTL)
	}
	return nil
}
