package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"hrms/models"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

type contextKey string

const OperatorContextKey contextKey = "operator"

type Claims struct {
	OperatorID uint   `json:"operator_id"`
	Username   string `json:"username"`
	jwt.RegisteredClaims
}

var jwtSecret []byte

func SetJWTSecret(secret string) {
	jwtSecret = []byte(secret)
}

func GenerateToken(operator *models.Operator, expiration time.Duration) (string, error) {
	claims := &Claims{
		OperatorID: operator.ID,
		Username:   operator.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

func ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return jwtSecret, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrSignatureInvalid
}

// Auth resolves the operator from the token cookie or Authorization header
// and injects it into the request context.
func Auth(db *gorm.DB) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var tokenString string
			cookie, err := r.Cookie("token")
			if err == nil {
				tokenString = cookie.Value
			}

			if tokenString == "" {
				authHeader := r.Header.Get("Authorization")
				if authHeader != "" {
					parts := strings.Split(authHeader, " ")
					if len(parts) == 2 && parts[0] == "Bearer" {
						tokenString = parts[1]
					}
				}
			}

			if tokenString == "" {
				unauthorized(w)
				return
			}

			claims, err := ValidateToken(tokenString)
			if err != nil {
				// Clear invalid cookie
				http.SetCookie(w, &http.Cookie{
					Name:     "token",
					Value:    "",
					Path:     "/",
					MaxAge:   -1,
					HttpOnly: true,
				})
				unauthorized(w)
				return
			}

			var operator models.Operator
			if err := db.First(&operator, claims.OperatorID).Error; err != nil {
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), OperatorContextKey, &operator)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetOperatorFromContext(ctx context.Context) *models.Operator {
	operator, ok := ctx.Value(OperatorContextKey).(*models.Operator)
	if !ok {
		return nil
	}
	return operator
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"unauthorized"}`))
}
