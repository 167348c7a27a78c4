package middleware

import (
	"net/http"

	"go.uber.org/zap"

	"perfeval/internal/platform/apperror"
	"perfeval/internal/requestctx"
	"perfeval/internal/transport/http/api"
)

func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			requestctx.Logger(r.Context()).Error("panic recovered",
				zap.Any("panic", rec),
				zap.Stack("stack"),
			)
			api.Fail(w, http.StatusInternalServerError, apperror.CodeInternal, "internal server error", GetRequestID(r.Context()))
		}()
		next.ServeHTTP(w, r)
	})
}
