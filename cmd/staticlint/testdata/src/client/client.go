package client

import (
	"net/http"
	"time"
)

func fetch(url string) error {
	res, err := http.Get(url) // want "don't use http.Get, use a configured client"
	if err != nil {
		return err
	}
	return res.Body.Close()
}

func defaultClient() *http.Client {
	return http.DefaultClient // want "don't use http.DefaultClient, use a configured client"
}

func configured(url string) error {
	client := &http.Client{Timeout: time.Second}
	res, err := client.Get(url)
	if err != nil {
		return err
	}
	return res.Body.Close()
}
