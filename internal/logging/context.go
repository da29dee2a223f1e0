package logging

import "context"

type contextKey struct{}

// WithLogData attaches a request-scoped LogData to the context.
func WithLogData(ctx context.Context, logData *LogData) context.Context {
	return context.WithValue(ctx, contextKey{}, logData)
}

// GetLogData returns the request-scoped LogData, or nil when the call is
// not running under the logging middleware.
func GetLogData(ctx context.Context) *LogData {
	logData, ok := ctx.Value(contextKey{}).(*LogData)
	if !ok {
		return nil
	}
	return logData
}
