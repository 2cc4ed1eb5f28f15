package auth

import (
	"testing"
	"time"
)

var testCfg = TokenConfig{Secret: "test-secret", Issuer: "hotel-api", Audience: "hotel-backoffice", TTL: time.Hour}

func TestAccessToken_RoundTrip(t *testing.T) {
	token, expires, err := NewAccessToken("admin@admin", RoleAdmin, testCfg)
	if err != nil {
		t.Fatalf("failed to sign: %v", err)
	}
	if time.Until(expires) < 59*time.Minute {
		t.Fatalf("unexpected expiry %v", expires)
	}

	claims, err := Parse(token, testCfg)
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	if claims.Subject != "admin@admin" || claims.Role != RoleAdmin {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.ID == "" {
		t.Fatal("expected a token id")
	}
}

func TestParse_Rejects(t *testing.T) {
	token, _, err := NewAccessToken("admin@admin", RoleAdmin, testCfg)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		cfg  TokenConfig
	}{
		{"wrong secret", TokenConfig{Secret: "other", Issuer: testCfg.Issuer, Audience: testCfg.Audience}},
		{"wrong issuer", TokenConfig{Secret: testCfg.Secret, Issuer: "someone", Audience: testCfg.Audience}},
		{"wrong audience", TokenConfig{Secret: testCfg.Secret, Issuer: testCfg.Issuer, Audience: "public"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(token, tt.cfg); err == nil {
				t.Fatal("expected parse error")
			}
		})
	}

	expiredCfg := testCfg
	expiredCfg.TTL = -time.Minute
	expired, _, err := NewAccessToken("admin@admin", RoleAdmin, expiredCfg)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Parse(expired, testCfg); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("password")
	if err != nil {
		t.Fatal(err)
	}
	ok, err := VerifyPassword("password", hash)
	if err != nil || !ok {
		t.Fatalf("expected match, got ok=%v err=%v", ok, err)
	}
	ok, err = VerifyPassword("nope", hash)
	if err != nil || ok {
		t.Fatalf("expected mismatch, got ok=%v err=%v", ok, err)
	}
}
