package handlers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/felixge/httpsnoop"
	gorillahandlers "github.com/gorilla/handlers"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/markjakearzadon/cohorttools-gobackend/internal/auth"
)

type responseState struct {
	started bool
}

type responseStateKey struct{}

// TrackResponse records whether the wrapped handler has begun writing, so
// WriteError never sends a second response.
func TrackResponse(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		state := &responseState{}
		wrapped := httpsnoop.Wrap(w, httpsnoop.Hooks{
			WriteHeader: func(next httpsnoop.WriteHeaderFunc) httpsnoop.WriteHeaderFunc {
				return func(code int) {
					if code >= 200 {
						state.started = true
					}
					next(code)
				}
			},
			Write: func(next httpsnoop.WriteFunc) httpsnoop.WriteFunc {
				return func(b []byte) (int, error) {
					state.started = true
					return next(b)
				}
			},
			ReadFrom: func(next httpsnoop.ReadFromFunc) httpsnoop.ReadFromFunc {
				return func(src io.Reader) (int64, error) {
					state.started = true
					return next(src)
				}
			},
		})

		ctx := context.WithValue(r.Context(), responseStateKey{}, state)
		next.ServeHTTP(wrapped, r.WithContext(ctx))
	})
}

func responseStarted(r *http.Request) bool {
	state, ok := r.Context().Value(responseStateKey{}).(*responseState)
	return ok && state.started
}

// RequireIdentity runs verifier before next and stores the identity in the
// request context. Failures never reach next.
func RequireIdentity(verifier auth.Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := verifier.Verify(r)
			if err != nil {
				WriteError(w, r, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), identity)))
		})
	}
}

// Recover turns a panic in next into a translated 500 response.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			hlog.FromRequest(r).Error().Bytes("stack", debug.Stack()).Msg("panic recovered")
			WriteError(w, r, fmt.Errorf("panic: %v", rec))
		}()
		next.ServeHTTP(w, r)
	})
}

// Stack wraps h in the middleware shared by every route. Forwarded headers
// are honoured so access logs carry the client address.
func Stack(logger zerolog.Logger, origins []string, h http.Handler) http.Handler {
	h = Recover(h)

	h = cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(h)

	h = TrackResponse(h)
	h = hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Stringer("url", r.URL).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("request")
	})(h)
	h = hlog.RemoteAddrHandler("ip")(h)
	h = hlog.RequestIDHandler("req_id", "X-Request-Id")(h)
	h = hlog.NewHandler(logger)(h)
	return gorillahandlers.ProxyHeaders(h)
}
