package httpcontroller

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const sessionCookieName = "SMARTLINK_SID"

var (
	ErrInvalidCookieValue  = errors.New("invalid cookie value")
	ErrInvalidCookieDigest = errors.New("invalid cookie digest")
	ErrNoCookie            = errors.New("no cookie")
)

// CookieSigner подписывает идентификатор сессии посетителя HMAC-SHA256
type CookieSigner struct {
	secret []byte
	maxAge time.Duration
}

func NewCookieSigner(secret string, maxAge time.Duration) *CookieSigner {
	return &CookieSigner{secret: []byte(secret), maxAge: maxAge}
}

// CalcHash вычисление HMAC-SHA256 для переданной строки
func (c *CookieSigner) CalcHash(data string) string {
	h := hmac.New(sha256.New, c.secret)
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}

// checkHash проверка хеша
func (c *CookieSigner) checkHash(data string, hash string) bool {
	h := hmac.New(sha256.New, c.secret)
	h.Write([]byte(data))
	sign, err := hex.DecodeString(hash)
	if err != nil {
		return false
	}
	return hmac.Equal(sign, h.Sum(nil))
}

// ExtractSessionID извлекает из куки идентификатор сессии и проверяет подпись.
// Если куки нет или подпись невалидна, возвращает ошибку.
func (c *CookieSigner) ExtractSessionID(cookies []*http.Cookie) (string, error) {
	for _, cookie := range cookies {
		if cookie.Name == sessionCookieName {
			parts := strings.Split(cookie.Value, ":")
			if len(parts) != 2 {
				return "", ErrInvalidCookieValue
			}
			sid, hash := parts[0], parts[1]
			if c.checkHash(sid, hash) {
				return sid, nil
			}
			return "", ErrInvalidCookieDigest
		}
	}
	return "", ErrNoCookie
}

// SetSessionCookie сохраняет в куку идентификатор сессии вместе с его hmac
func (c *CookieSigner) SetSessionCookie(w http.ResponseWriter, sid string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    fmt.Sprintf("%s:%s", sid, c.CalcHash(sid)),
		Path:     "/",
		MaxAge:   int(c.maxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
