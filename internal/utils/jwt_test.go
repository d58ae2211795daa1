package utils

import (
	"testing"
	"time"

	"github.com/example/retailops/internal/models"
)

func TestTokenCarriesIdentityAndRole(t *testing.T) {
	user := models.User{Email: "x@y.com", Role: models.RoleAdmin}
	user.BeforeCreate(nil)

	token, err := GenerateToken("secret", user, time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	claims, err := ParseToken("secret", token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != user.ID || claims.Email != "x@y.com" || claims.Role != models.RoleAdmin {
		t.Fatalf("claims mismatch: %+v", claims)
	}
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	user := models.User{Email: "x@y.com", Role: models.RoleCustomer}
	user.BeforeCreate(nil)

	token, err := GenerateToken("secret", user, time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	if _, err := ParseToken("other-secret", token); err == nil {
		t.Fatal("token signed with a different secret should not validate")
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	user := models.User{Email: "x@y.com", Role: models.RoleCustomer}
	user.BeforeCreate(nil)

	token, err := GenerateToken("secret", user, -time.Minute)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	if _, err := ParseToken("secret", token); err == nil {
		t.Fatal("expired token should not validate")
	}
}

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter22")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if hash == "hunter22" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !CheckPassword(hash, "hunter22") {
		t.Fatal("correct password should verify")
	}
	if CheckPassword(hash, "wrong") {
		t.Fatal("wrong password must not verify")
	}
}
