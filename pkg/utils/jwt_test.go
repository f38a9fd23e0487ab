package utils

import (
	"testing"
	"time"
)

func TestCallbackTokenRoundTrip(t *testing.T) {
	token, err := GenerateCallbackToken("video-1", "job-1", "secret", time.Minute)
	if err != nil {
		t.Fatalf("GenerateCallbackToken: %v", err)
	}

	claims, err := ValidateCallbackToken(token, "secret")
	if err != nil {
		t.Fatalf("ValidateCallbackToken: %v", err)
	}
	if claims.VideoID != "video-1" || claims.JobID != "job-1" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestCallbackTokenWrongSecret(t *testing.T) {
	token, err := GenerateCallbackToken("video-1", "job-1", "secret", time.Minute)
	if err != nil {
		t.Fatalf("GenerateCallbackToken: %v", err)
	}
	if _, err = ValidateCallbackToken(token, "other-secret"); err == nil {
		t.Fatal("token signed with a different secret must not validate")
	}
}

func TestCallbackTokenExpired(t *testing.T) {
	token, err := GenerateCallbackToken("video-1", "job-1", "secret", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateCallbackToken: %v", err)
	}
	if _, err = ValidateCallbackToken(token, "secret"); err == nil {
		t.Fatal("expired token must not validate")
	}
}

func TestCallbackTokenGarbage(t *testing.T) {
	if _, err := ValidateCallbackToken("not-a-jwt", "secret"); err == nil {
		t.Fatal("garbage token must not validate")
	}
}
