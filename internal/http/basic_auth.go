package http

import (
	"crypto/sha256"
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/bornholm/go-x/slogx"
)

func (s *Server) basicAuth(next http.Handler) http.Handler {
	expectedUsername := sha256.Sum256([]byte(s.opts.BasicAuth.Username))
	expectedPassword := sha256.Sum256([]byte(s.opts.BasicAuth.Password))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		username, password, ok := r.BasicAuth()
		if ok {
			usernameHash := sha256.Sum256([]byte(username))
			passwordHash := sha256.Sum256([]byte(password))

			usernameMatch := subtle.ConstantTimeCompare(usernameHash[:], expectedUsername[:]) == 1
			passwordMatch := subtle.ConstantTimeCompare(passwordHash[:], expectedPassword[:]) == 1

			if usernameMatch && passwordMatch {
				ctx = slogx.WithAttrs(ctx, slog.String("user", username))
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			slog.WarnContext(ctx, "invalid credentials", slog.String("user", username), slog.String("remoteAddr", r.RemoteAddr))
		}

		w.Header().Set("WWW-Authenticate", `Basic realm="mountns", charset="UTF-8"`)
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
	})
}
