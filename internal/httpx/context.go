package httpx

import (
	"context"
	"net/http"
	"sync"
)

type contextKey string

const (
	requestIDKey contextKey = "requestID"
	infoKey      contextKey = "requestInfo"
)

// requestInfo is filled in by inner handlers and read by the access log
// after the request completes.
type requestInfo struct {
	mu     sync.Mutex
	user   string
	action string
}

// RequestIDFrom retrieves the request ID from the request context.
func RequestIDFrom(r *http.Request) string {
	return RequestIDFromContext(r.Context())
}

func RequestIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

// ContextWithRequestID returns a new context carrying the request ID.
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func contextWithInfo(ctx context.Context) (context.Context, *requestInfo) {
	info := &requestInfo{}
	return context.WithValue(ctx, infoKey, info), info
}

// SetUser records the authenticated caller for the access log.
func SetUser(ctx context.Context, email string) {
	if info, ok := ctx.Value(infoKey).(*requestInfo); ok {
		info.mu.Lock()
		info.user = email
		info.mu.Unlock()
	}
}

// SetAction records the dispatched action for the access log.
func SetAction(ctx context.Context, action string) {
	if info, ok := ctx.Value(infoKey).(*requestInfo); ok {
		info.mu.Lock()
		info.action = action
		info.mu.Unlock()
	}
}

func (i *requestInfo) snapshot() (user, action string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.user, i.action
}
