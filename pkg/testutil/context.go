package testutil

import (
	"net/http"

	"onboard/pkg/requestcontext"
)

// WithClientIP sets the client IP the metadata middleware would have stored.
func WithClientIP(req *http.Request, ip string) *http.Request {
	ctx := requestcontext.WithClientMetadata(req.Context(), ip, req.UserAgent())
	return req.WithContext(ctx)
}

// WithRequestID sets the request ID the RequestID middleware would have stored.
func WithRequestID(req *http.Request, requestID string) *http.Request {
	return req.WithContext(requestcontext.WithRequestID(req.Context(), requestID))
}
