package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/Dadukaka/MFIPPA-Tracker/internal/storage"
)

type ctxKey int

const userKey ctxKey = 1

func (s *Server) withCORS(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if origin := s.pickCORSOrigin(r); origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Methods", "GET, HEAD, OPTIONS, POST")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		h(w, r)
	}
}

func (s *Server) pickCORSOrigin(r *http.Request) string {
	origin := r.Header.Get("Origin")
	for _, ao := range s.AllowedOrigins {
		if ao == "*" {
			return "*"
		}
		if origin != "" && strings.EqualFold(origin, ao) {
			return origin
		}
	}
	return ""
}

func withAuth(s *Server, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.UserStore == nil {
			s.err(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		tok, err := readSessionCookie(r)
		if err != nil {
			s.err(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		u, err := s.UserStore.GetSession(tok)
		if err != nil {
			s.err(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		ctx := context.WithValue(r.Context(), userKey, u)
		next(w, r.WithContext(ctx))
	}
}

// guard applies withAuth only when the server is configured to require it.
func (s *Server) guard(next http.HandlerFunc) http.HandlerFunc {
	if !s.RequireAuth {
		return next
	}
	return withAuth(s, next)
}

func userFromCtx(ctx context.Context) (storage.User, bool) {
	u, ok := ctx.Value(userKey).(storage.User)
	return u, ok
}
