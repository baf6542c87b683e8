package http

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"
)

var client = &http.Client{Timeout: 30 * time.Second}

func GetRequest(ctx context.Context, url string) (statusCode int, resBody []byte, err error) {
	return doRequest(ctx, http.MethodGet, url, nil)
}

func PostRequest(ctx context.Context, url string, reqBody []byte) (statusCode int, resBody []byte, err error) {
	return doRequest(ctx, http.MethodPost, url, reqBody)
}

func DeleteRequest(ctx context.Context, url string, reqBody []byte) (statusCode int, resBody []byte, err error) {
	return doRequest(ctx, http.MethodDelete, url, reqBody)
}

func doRequest(ctx context.Context, method string, url string, reqBody []byte) (int, []byte, error) {
	var body io.Reader
	if reqBody != nil {
		body = bytes.NewReader(reqBody)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return res.StatusCode, nil, err
	}
	return res.StatusCode, resBody, nil
}
