package domain_test

import (
	"encoding/base64"
	"testing"
	"time"

	"logbook/internal/modules/auth/domain"
)

func makeToken(payload string) string {
	enc := base64.RawURLEncoding
	return enc.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`)) + "." + enc.EncodeToString([]byte(payload)) + ".sig"
}

func TestDecodeClaims(t *testing.T) {
	t.Parallel()
	claims, err := domain.DecodeClaims(makeToken(`{"id":"507f1f77","email":"ada@talenthub.com","exp":1767225600}`))
	if err != nil {
		t.Fatalf("decode claims: %v", err)
	}
	if claims.Subject != "507f1f77" || claims.Email != "ada@talenthub.com" {
		t.Fatalf("unexpected identity claims: %+v", claims)
	}
	want := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	if !claims.HasExpiry || !claims.ExpiresAt.Equal(want) {
		t.Fatalf("expected expiry %s, got %s", want, claims.ExpiresAt)
	}
	if !claims.Valid(want.Add(-time.Second)) {
		t.Fatalf("token should be valid before expiry")
	}
	if claims.Valid(want) || claims.Valid(want.Add(time.Minute)) {
		t.Fatalf("token should be invalid at and after expiry")
	}
}

func TestDecodeClaimsNumericIDAndFractionalExp(t *testing.T) {
	t.Parallel()
	claims, err := domain.DecodeClaims(makeToken(`{"id":42,"exp":1767225600.5}`))
	if err != nil {
		t.Fatalf("decode claims: %v", err)
	}
	if claims.Subject != "42" {
		t.Fatalf("expected numeric id rendered as string, got %q", claims.Subject)
	}
	want := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	if !claims.ExpiresAt.Equal(want) {
		t.Fatalf("expected exp truncated to %s, got %s", want, claims.ExpiresAt)
	}
}

func TestDecodeClaimsHugeExpStaysInFuture(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
	claims, err := domain.DecodeClaims(makeToken(`{"exp":1e300}`))
	if err != nil {
		t.Fatalf("decode claims: %v", err)
	}
	if !claims.Valid(now) {
		t.Fatalf("exp 1e300 should be valid, got expiry %s", claims.ExpiresAt)
	}

	claims, err = domain.DecodeClaims(makeToken(`{"exp":-1e300}`))
	if err != nil {
		t.Fatalf("decode claims: %v", err)
	}
	if claims.Valid(now) {
		t.Fatalf("exp -1e300 should be expired, got expiry %s", claims.ExpiresAt)
	}
}

func TestDecodeClaimsMissingExpNeverValid(t *testing.T) {
	t.Parallel()
	claims, err := domain.DecodeClaims(makeToken(`{"sub":"u-1"}`))
	if err != nil {
		t.Fatalf("decode claims: %v", err)
	}
	if claims.Subject != "u-1" {
		t.Fatalf("expected sub fallback, got %q", claims.Subject)
	}
	if claims.Valid(time.Unix(0, 0)) {
		t.Fatalf("token without exp must not be valid")
	}
}

func TestDecodeClaimsMalformed(t *testing.T) {
	t.Parallel()
	for _, token := range []string{
		"",
		"not-a-jwt",
		"a.b",
		"a.!!!.c",
		"a." + base64.RawURLEncoding.EncodeToString([]byte("not json")) + ".c",
		makeToken(`{"exp":"soon"}`),
		base64.RawURLEncoding.EncodeToString([]byte(`{"typ":"JWT"}`)) + "." + base64.RawURLEncoding.EncodeToString([]byte(`{"exp":1}`)) + ".c",
	} {
		if _, err := domain.DecodeClaims(token); err == nil {
			t.Fatalf("expected error for %q", token)
		}
	}
}

func TestStoreKindValidate(t *testing.T) {
	t.Parallel()
	for _, k := range []domain.StoreKind{domain.StoreLocal, domain.StoreSession, domain.StoreCookie} {
		if err := k.Validate(); err != nil {
			t.Fatalf("%s should be valid: %v", k, err)
		}
	}
	if err := domain.StoreKind("indexeddb").Validate(); err == nil {
		t.Fatalf("unknown store should fail")
	}
}
