package logger

import "context"

// contextKey is a private type for context keys to avoid collisions.
type contextKey struct{}

var logContextKey = contextKey{}

// LogContext holds request-scoped logging context for the ingestion API.
type LogContext struct {
	RequestID string // chi request ID
	UserID    string // authenticated user, once resolved
	ClientID  string // originating device/replica, once resolved
}

// WithContext returns a new context carrying the given LogContext.
func WithContext(ctx context.Context, lc *LogContext) context.Context {
	return context.WithValue(ctx, logContextKey, lc)
}

// FromContext retrieves the LogContext from ctx, or nil if not present.
func FromContext(ctx context.Context) *LogContext {
	if ctx == nil {
		return nil
	}
	lc, _ := ctx.Value(logContextKey).(*LogContext)
	return lc
}

// Clone returns a copy of the LogContext.
func (lc *LogContext) Clone() *LogContext {
	if lc == nil {
		return nil
	}
	clone := *lc
	return &clone
}

// WithUser returns a copy with user/client identity set.
func (lc *LogContext) WithUser(userID, clientID string) *LogContext {
	clone := lc.Clone()
	if clone == nil {
		clone = &LogContext{}
	}
	clone.UserID = userID
	clone.ClientID = clientID
	return clone
}

// appendContextFields adds LogContext fields to args, context fields first.
func appendContextFields(ctx context.Context, args []any) []any {
	lc := FromContext(ctx)
	if lc == nil {
		return args
	}

	ctxArgs := make([]any, 0, 6+len(args))
	if lc.RequestID != "" {
		ctxArgs = append(ctxArgs, KeyRequestID, lc.RequestID)
	}
	if lc.UserID != "" {
		ctxArgs = append(ctxArgs, KeyUserID, lc.UserID)
	}
	if lc.ClientID != "" {
		ctxArgs = append(ctxArgs, KeyClientID, lc.ClientID)
	}
	ctxArgs = append(ctxArgs, args...)
	return ctxArgs
}
