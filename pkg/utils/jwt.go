package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// CallbackClaims binds a completion-callback token to a single video so a
// worker can only report for the job it was handed.
type CallbackClaims struct {
	VideoID string `json:"video_id"`
	JobID   string `json:"job_id"`
	jwt.RegisteredClaims
}

func GenerateCallbackToken(videoID, jobID, secret string, ttl time.Duration) (string, error) {
	claims := &CallbackClaims{
		VideoID: videoID,
		JobID:   jobID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signedToken, nil
}

func ValidateCallbackToken(tokenString, secret string) (*CallbackClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CallbackClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*CallbackClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}
