// Package httpserver запуск http.Server по https с самоподписанным сертификатом.
package httpserver

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"

	"github.com/zaz600/go-smartlink-web/internal/pkg/cert"
)

type tcpKeepAliveListener struct {
	*net.TCPListener
}

func (ln tcpKeepAliveListener) Accept() (net.Conn, error) {
	tc, err := ln.AcceptTCP()
	if err != nil {
		return nil, err
	}
	_ = tc.SetKeepAlive(true)
	_ = tc.SetKeepAlivePeriod(3 * time.Minute)
	return tc, nil
}

// ListenTLS слушает address и обслуживает server по https
func ListenTLS(server *http.Server, address string) error {
	ln, err := net.Listen("tcp", address)
	if err != nil {
		return err
	}
	return ServeTLS(server, ln)
}

// ServeTLS обслуживает server по https на уже открытом ln.
// Сертификат генерируется при каждом запуске.
func ServeTLS(server *http.Server, ln net.Listener) error {
	certificate, err := cert.New()
	if err != nil {
		_ = ln.Close()
		return err
	}

	tlsConfig := &tls.Config{
		NextProtos:   []string{"http/1.1"},
		Certificates: []tls.Certificate{certificate},
		MinVersion:   tls.VersionTLS12,
	}

	if tcpLn, ok := ln.(*net.TCPListener); ok {
		ln = tcpKeepAliveListener{tcpLn}
	}
	return server.Serve(tls.NewListener(ln, tlsConfig))
}
