package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type ViewerIDKey struct{}

// GetViewerIDFromContext retrieves the viewer ID from the context.
func GetViewerIDFromContext(ctx context.Context) (string, bool) {
	viewerID, ok := ctx.Value(ViewerIDKey{}).(string)
	return viewerID, ok
}

// writeJSONError writes a JSON error response
func writeJSONError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// AuthMiddleware returns a middleware that checks for a valid HS256 JWT.
// The token is read from the "Authorization: Bearer <token>" header, or from the
// "token" query parameter because browsers cannot set headers on WebSocket upgrades.
// An empty secret disables the check and every viewer gets an anonymous ID.
func AuthMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" {
				ctx := context.WithValue(r.Context(), ViewerIDKey{}, "anonymous-"+uuid.New().String())
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			tokenString, err := extractToken(r)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, err.Error())
				return
			}

			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				// アルゴリズムがHMACであることを確認
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				log.Printf("[AuthMiddleware] JWT parse error: %v", err)
				writeJSONError(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				writeJSONError(w, http.StatusUnauthorized, "Invalid token claims")
				return
			}
			viewerID, ok := claims["sub"].(string)
			if !ok || viewerID == "" {
				log.Printf("[AuthMiddleware] JWT claims missing 'sub' or wrong type: %v", claims["sub"])
				writeJSONError(w, http.StatusUnauthorized, "Invalid token: missing viewer ID")
				return
			}

			ctx := context.WithValue(r.Context(), ViewerIDKey{}, viewerID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractToken(r *http.Request) (string, error) {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || tokenString == "" {
			return "", errors.New("Invalid Authorization header format. Must be 'Bearer <token>'")
		}
		return tokenString, nil
	}
	if tokenString := r.URL.Query().Get("token"); tokenString != "" {
		return tokenString, nil
	}
	return "", errors.New("Authorization header is required")
}
