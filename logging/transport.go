package logging

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ClientRequestIDHeader carries the id Transport assigns to outbound requests.
const ClientRequestIDHeader = "X-Request-Id"

// Transport is an http.RoundTripper that tags and logs every request it
// forwards.
type Transport struct {
	Log  *zap.Logger
	Next http.RoundTripper
}

// NewTransport wraps next, or http.DefaultTransport when next is nil.
func NewTransport(log *zap.Logger, next http.RoundTripper) *Transport {
	if next == nil {
		next = http.DefaultTransport
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Transport{Log: log, Next: next}
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	rid := uuid.NewString()

	// RoundTrippers must not modify the caller's request.
	req = req.Clone(req.Context())
	req.Header.Set(ClientRequestIDHeader, rid)

	l := t.Log.With(
		zap.String("request_id", rid),
		zap.String("method", req.Method),
		zap.String("host", req.URL.Host),
		zap.String("path", req.URL.Path),
	)

	t1 := time.Now()
	resp, err := t.Next.RoundTrip(req)
	if err != nil {
		l.Warn("Request failed", zap.Duration("duration", time.Since(t1)), zap.Error(err))
		return nil, err
	}

	l.Debug("Request completed",
		zap.Int("status", resp.StatusCode),
		zap.String("github_request_id", resp.Header.Get(RequestIDHeader)),
		zap.Duration("duration", time.Since(t1)))
	return resp, nil
}
