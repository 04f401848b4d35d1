package utils

import (
	"class-registration-service/internal/pkg/constvars"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
	"github.com/golang-jwt/jwt/v4"
)

var ErrInvalidToken = errors.New("invalid token")

// ParseRegistrationJWT verifies an HS256 registration link token and returns
// the student id it was issued for.
func ParseRegistrationJWT(tokenString, secret string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return []byte(secret), nil
	})

	if err != nil {
		return "", err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		if studentID, ok := claims[constvars.JWTClaimStudentID].(string); ok && studentID != "" {
			return studentID, nil
		}
	}

	return "", ErrInvalidToken
}

// ExtractBearerToken reads the token from the Authorization header, falling
// back to the ?token= query parameter used by emailed registration links.
func ExtractBearerToken(r *http.Request) string {
	header := r.Header.Get(constvars.HeaderAuthorization)
	if strings.HasPrefix(header, constvars.AuthorizationBearerPrefix) {
		return strings.TrimSpace(strings.TrimPrefix(header, constvars.AuthorizationBearerPrefix))
	}
	return strings.TrimSpace(r.URL.Query().Get(constvars.QueryParamRegistrationKey))
}

// ParseJSONBody decodes a request body into dst, rejecting unknown fields.
func ParseJSONBody(r io.Reader, dst interface{}) error {
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}
