package service

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// GenerateToken mints a session token for the given subject; the seed and
// dashboard commands use it when pointed at a local service.
func GenerateToken(secret, subject string, ttl time.Duration) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func (s *service) validateToken(tokenString string) error {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method: %v",
				token.Header["alg"])
		}
		return []byte(s.config.sessionSecret), nil
	})
	if err != nil {
		return err
	}
	if !token.Valid {
		return errors.New("invalid token")
	}
	return nil
}

// sessionHandler rejects requests to everything but the default endpoint
// unless they carry a valid bearer token.
func (s *service) sessionHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.Path == "/" || request.Method == http.MethodOptions {
			next.ServeHTTP(writer, request)
			return
		}
		authorization := request.Header.Get("Authorization")
		if authorization == "" {
			handleResponse(writer, errUnauthorized, nil)
			return
		}
		tokenString, found := strings.CutPrefix(authorization, "Bearer ")
		if !found {
			handleResponse(writer, errUnauthorized, nil)
			return
		}
		if err := s.validateToken(tokenString); err != nil {
			s.Debug(request.Context(), "token rejected: %s", err)
			handleResponse(writer, errUnauthorized, nil)
			return
		}
		next.ServeHTTP(writer, request)
	})
}
