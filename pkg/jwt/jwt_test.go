package jwt

import (
	"errors"
	"testing"
	"time"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(15*time.Minute, time.Hour, "test-issuer")
	if err != nil {
		t.Fatalf("NewManager error: %v", err)
	}
	return m
}

func TestManager_GenerateAndValidate(t *testing.T) {
	m := newTestManager(t)

	access, refresh, accessExp, refreshExp, err := m.GenerateTokenPair(42, "alice@example.com", "alice")
	if err != nil {
		t.Fatalf("GenerateTokenPair error: %v", err)
	}
	if accessExp >= refreshExp {
		t.Errorf("accessExp %d >= refreshExp %d", accessExp, refreshExp)
	}

	t.Run("access token claims", func(t *testing.T) {
		claims, err := m.ValidateToken(access)
		if err != nil {
			t.Fatalf("ValidateToken error: %v", err)
		}
		if claims.UserID != 42 || claims.Username != "alice" || claims.Type != "access" {
			t.Fatalf("claims = %+v", claims)
		}
		if claims.Issuer != "test-issuer" {
			t.Errorf("issuer = %q", claims.Issuer)
		}
	})

	t.Run("refresh token claims", func(t *testing.T) {
		claims, err := m.ValidateToken(refresh)
		if err != nil {
			t.Fatalf("ValidateToken error: %v", err)
		}
		if claims.UserID != 42 || claims.Type != "refresh" {
			t.Fatalf("claims = %+v", claims)
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		if _, err := m.ValidateToken("garbage"); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("error = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("token from another key pair", func(t *testing.T) {
		other := newTestManager(t)
		foreign, _, _, _, err := other.GenerateTokenPair(42, "", "")
		if err != nil {
			t.Fatalf("GenerateTokenPair error: %v", err)
		}
		if _, err := m.ValidateToken(foreign); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("error = %v, want ErrInvalidToken", err)
		}
	})
}

func TestManager_ExpiredToken(t *testing.T) {
	m, err := NewManager(-time.Minute, time.Hour, "test-issuer")
	if err != nil {
		t.Fatalf("NewManager error: %v", err)
	}

	access, _, _, _, err := m.GenerateTokenPair(42, "", "alice")
	if err != nil {
		t.Fatalf("GenerateTokenPair error: %v", err)
	}
	if _, err := m.ValidateToken(access); !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("error = %v, want ErrExpiredToken", err)
	}
}

func TestManager_RefreshTokens(t *testing.T) {
	m := newTestManager(t)
	access, refresh, _, _, err := m.GenerateTokenPair(42, "alice@example.com", "alice")
	if err != nil {
		t.Fatalf("GenerateTokenPair error: %v", err)
	}

	t.Run("refresh token mints a new pair", func(t *testing.T) {
		newAccess, newRefresh, _, _, err := m.RefreshTokens(refresh)
		if err != nil {
			t.Fatalf("RefreshTokens error: %v", err)
		}
		claims, err := m.ValidateToken(newAccess)
		if err != nil {
			t.Fatalf("ValidateToken error: %v", err)
		}
		if claims.UserID != 42 || claims.Type != "access" {
			t.Fatalf("claims = %+v", claims)
		}
		if _, err := m.ValidateToken(newRefresh); err != nil {
			t.Fatalf("new refresh token invalid: %v", err)
		}
	})

	t.Run("identity survives refresh", func(t *testing.T) {
		newAccess, newRefresh, _, _, err := m.RefreshTokens(refresh)
		if err != nil {
			t.Fatalf("RefreshTokens error: %v", err)
		}
		claims, err := m.ValidateToken(newAccess)
		if err != nil {
			t.Fatalf("ValidateToken error: %v", err)
		}
		if claims.Username != "alice" || claims.Email != "alice@example.com" {
			t.Fatalf("refreshed access claims lost identity: username=%q email=%q", claims.Username, claims.Email)
		}

		// A second rotation keeps it too.
		secondAccess, _, _, _, err := m.RefreshTokens(newRefresh)
		if err != nil {
			t.Fatalf("second RefreshTokens error: %v", err)
		}
		claims, err = m.ValidateToken(secondAccess)
		if err != nil {
			t.Fatalf("ValidateToken error: %v", err)
		}
		if claims.Username != "alice" || claims.Email != "alice@example.com" {
			t.Fatalf("second rotation lost identity: username=%q email=%q", claims.Username, claims.Email)
		}
	})

	t.Run("access token is rejected", func(t *testing.T) {
		if _, _, _, _, err := m.RefreshTokens(access); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("error = %v, want ErrInvalidToken", err)
		}
	})
}

func TestManager_Revocation(t *testing.T) {
	m := newTestManager(t)
	access, _, _, _, err := m.GenerateTokenPair(42, "", "alice")
	if err != nil {
		t.Fatalf("GenerateTokenPair error: %v", err)
	}

	m.RevokeUserTokens(42)

	if !m.IsRevoked(42) {
		t.Fatal("IsRevoked = false after revocation")
	}
	if _, err := m.ValidateToken(access); !errors.Is(err, ErrRevokedToken) {
		t.Fatalf("error = %v, want ErrRevokedToken", err)
	}
	if m.IsRevoked(7) {
		t.Fatal("unrelated user reported revoked")
	}
}
