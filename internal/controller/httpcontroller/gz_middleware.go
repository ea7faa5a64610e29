package httpcontroller

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
)

// gzipRequestBody распакованное тело запроса, закрывает и распаковщик, и исходное тело
type gzipRequestBody struct {
	*gzip.Reader
	body io.Closer
}

func (gz gzipRequestBody) Close() error {
	_ = gz.Reader.Close()
	return gz.body.Close()
}

func isGzipped(r *http.Request) bool {
	return r.Header.Get("Content-Type") == "application/x-gzip" ||
		strings.EqualFold(r.Header.Get("Content-Encoding"), "gzip")
}

// GzDecompressor middleware для распаковки тела запроса, упакованного gzip.
// Скрипты могут прислать JSON для /api/* сжатым.
func GzDecompressor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isGzipped(r) {
			r.Header.Del("Content-Length")
			r.Header.Del("Content-Encoding")
			zr, err := gzip.NewReader(r.Body)
			if err != nil {
				writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "can't read gzipped data"})
				return
			}
			r.Body = gzipRequestBody{Reader: zr, body: r.Body}
		}
		next.ServeHTTP(w, r)
	})
}
