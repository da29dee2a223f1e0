package logging

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/sirupsen/logrus"
)

// Middleware injects a fresh LogData into every huma request context and
// flushes it with the operation name and total duration once the handler
// completes.
func Middleware(log *logrus.Logger) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		logData := NewLogData(log)
		endTimer := logData.AddTiming("duration")

		next(huma.WithContext(ctx, WithLogData(ctx.Context(), logData)))

		endTimer()
		logData.Log().WithField("operation", ctx.Operation().OperationID).Info("Handler.Complete")
	}
}

// LoggingWrapper adapts a plain HTTP handler, logging start, completion,
// and errors with the accumulated LogData. Used for routes that live
// outside the huma API, like /status.
func LoggingWrapper(
	loggingName string,
	log *logrus.Logger,
	handler func(http.ResponseWriter, *http.Request, *LogData) error,
) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		logData := NewLogData(log)
		log.Infof("Handler.%v.Start", loggingName)

		endTimer := logData.AddTiming("duration")
		defer endTimer()
		err := handler(w, req, logData)
		if err != nil {
			logData.Log().WithError(err).Errorf("Handler.%v.Error", loggingName)
			return
		}

		logData.Log().Infof("Handler.%v.Complete", loggingName)
	}
}
