package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/levigross/grequests"
)

const (
	acceptHeader = "application/vnd.github+json"
	apiVersion   = "2022-11-28"
	userAgent    = "cocov-actions/0.1"
)

func (i impl) headers() map[string]string {
	return map[string]string{
		"Accept":               acceptHeader,
		"Content-Type":         "application/json",
		"Authorization":        "token " + i.token,
		"X-GitHub-Api-Version": apiVersion,
	}
}

// send issues a single request. Any response outside the 2xx class is
// consumed and returned as a *StatusError.
func (i impl) send(ctx context.Context, op, method, url string, params map[string]string) (*grequests.Response, error) {
	r, err := grequests.DoRegularRequest(method, url, &grequests.RequestOptions{
		Context:    ctx,
		Params:     params,
		Headers:    i.headers(),
		UserAgent:  userAgent,
		HTTPClient: i.http,
	})
	if err != nil {
		return nil, transportError(op, err)
	}

	if r.StatusCode < 200 || r.StatusCode > 299 {
		body := r.String()
		_ = r.Close()
		return nil, transportError(op, &StatusError{StatusCode: r.StatusCode, Body: body})
	}

	return r, nil
}

// processRequest performs a request and decodes the JSON body into the wire
// shape T.
func processRequest[T any](ctx context.Context, i impl, op, method, url string, params map[string]string) (*T, error) {
	r, err := i.send(ctx, op, method, url, params)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()

	data := r.Bytes()
	if r.Error != nil {
		return nil, transportError(op, fmt.Errorf("read response: %w", r.Error))
	}

	// json.Unmarshal rejects trailing data after the document, and a null
	// document leaves into nil.
	var into *T
	if err = json.Unmarshal(data, &into); err != nil {
		return nil, transportError(op, fmt.Errorf("decode response: %w", err))
	}
	if into == nil {
		return nil, transportError(op, errors.New("decode response: empty document"))
	}

	return into, nil
}

func processRequestNoBody(ctx context.Context, i impl, op, method, url string, params map[string]string) error {
	r, err := i.send(ctx, op, method, url, params)
	if err != nil {
		return err
	}
	return r.Close()
}

// processRequestStream hands the response body to the caller untouched.
// Closing it does not drain the remaining data.
func processRequestStream(ctx context.Context, i impl, op, url string) (*ArtifactData, error) {
	r, err := i.send(ctx, op, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	return &ArtifactData{
		ContentType:   r.Header.Get("Content-Type"),
		ContentLength: r.RawResponse.ContentLength,
		Body:          r.RawResponse.Body,
	}, nil
}
