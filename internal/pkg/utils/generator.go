package utils

import (
	"class-registration-service/internal/pkg/constvars"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// GenerateRegistrationJWT issues the token embedded in a student's registration link.
func GenerateRegistrationJWT(studentID, secret string, jwtExpiryTime int) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		constvars.JWTClaimStudentID: studentID,
		"iss":                       constvars.RegistrationTokenIssuer,
		"iat":                       now.Unix(),
		"exp":                       now.Add(time.Duration(jwtExpiryTime) * time.Hour).Unix(),
	})

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func GenerateID() string {
	return uuid.New().String()
}

func GenerateFileName(prefix, owner, fileExtension string) string {
	timestamp := time.Now().Format("20060102_150405.000000000")
	return fmt.Sprintf("%s_%s_%s%s", prefix, owner, timestamp, fileExtension)
}
