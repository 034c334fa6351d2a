package util

import (
	"testing"
	"time"

	"tms_backend/internal/model"
)

func TestGenerateAndParseJWT(t *testing.T) {
	user := &model.User{Email: "u@example.com", Role: model.Teacher}
	user.ID = model.GenerateUUID()

	token, err := GenerateJWT(user, "secret", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := ParseJWT(token, "secret")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != user.ID || claims.Role != model.Teacher || claims.Email != user.Email {
		t.Errorf("claims = %+v, want them to round-trip the user", claims)
	}

	if _, err := ParseJWT(token, "other-secret"); err == nil {
		t.Error("token verified with the wrong secret")
	}
}

func TestParseExpiredJWT(t *testing.T) {
	user := &model.User{Email: "u@example.com", Role: model.Student}
	user.ID = model.GenerateUUID()

	token, err := GenerateJWT(user, "secret", -time.Minute)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := ParseJWT(token, "secret"); err == nil {
		t.Error("expired token accepted")
	}
}
