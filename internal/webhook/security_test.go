package webhook

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"testing"
)

func sign256(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

func sign1(secret string, body []byte) string {
	mac := hmac.New(sha1.New, []byte(secret))
	mac.Write(body)
	return "sha1=" + hex.EncodeToString(mac.Sum(nil))
}

func TestValidateSignature(t *testing.T) {
	body := []byte(`{"ref":"refs/heads/main"}`)
	v := NewSecurityValidator(SecurityConfig{Secret: "s3cret"})

	tests := []struct {
		name    string
		v       *SecurityValidator
		body    []byte
		sig256  string
		sig1    string
		wantErr error
	}{
		{name: "valid sha256", v: v, body: body, sig256: sign256("s3cret", body)},
		{name: "valid legacy sha1", v: v, body: body, sig1: sign1("s3cret", body)},
		{name: "tampered body", v: v, body: []byte(`{"ref":"refs/heads/evil"}`), sig256: sign256("s3cret", body), wantErr: ErrInvalidSignature},
		{name: "wrong secret", v: v, body: body, sig256: sign256("other", body), wantErr: ErrInvalidSignature},
		{name: "missing prefix", v: v, body: body, sig256: "deadbeef", wantErr: ErrInvalidSignature},
		{name: "bad hex", v: v, body: body, sig256: "sha256=zz", wantErr: ErrInvalidSignature},
		{name: "missing headers", v: v, body: body, wantErr: ErrInvalidSignature},
		{name: "no secret", v: NewSecurityValidator(SecurityConfig{}), body: body, sig256: sign256("", body), wantErr: ErrSecretNotConfigured},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.v.ValidateSignature(tt.body, tt.sig256, tt.sig1)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateOrigin(t *testing.T) {
	v := NewSecurityValidator(SecurityConfig{AllowedIPs: []string{"203.0.113.7", "140.82.112.0/20", "bogus/99"}})

	tests := []struct {
		origin string
		ok     bool
	}{
		{"203.0.113.7", true},
		{"140.82.115.10", true},
		{"198.51.100.1", false},
		{"not-an-ip", false},
	}
	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			err := v.ValidateOrigin(tt.origin)
			if tt.ok && err != nil {
				t.Errorf("expected %s to be allowed: %v", tt.origin, err)
			}
			if !tt.ok && !errors.Is(err, ErrOriginNotAllowed) {
				t.Errorf("expected %s to be rejected, got %v", tt.origin, err)
			}
		})
	}

	if err := NewSecurityValidator(SecurityConfig{}).ValidateOrigin("198.51.100.1"); err != nil {
		t.Errorf("empty allow list should allow everyone: %v", err)
	}
}

func TestCheckRateLimit(t *testing.T) {
	v := NewSecurityValidator(SecurityConfig{RateLimitPerMin: 5})

	if err := v.CheckRateLimit("a"); err != nil {
		t.Fatalf("first request should pass: %v", err)
	}
	if err := v.CheckRateLimit("a"); !errors.Is(err, ErrRateLimited) {
		t.Errorf("second immediate request should be limited, got %v", err)
	}
	if err := v.CheckRateLimit("b"); err != nil {
		t.Errorf("other origin should have its own bucket: %v", err)
	}

	unlimited := NewSecurityValidator(SecurityConfig{})
	for i := 0; i < 100; i++ {
		if err := unlimited.CheckRateLimit("a"); err != nil {
			t.Fatalf("no limit configured but got %v", err)
		}
	}
}
