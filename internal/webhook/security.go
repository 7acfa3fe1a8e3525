package webhook

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"net"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

var (
	ErrSecretNotConfigured = errors.New("webhook secret not configured")
	ErrInvalidSignature    = errors.New("signature verification failed")
	ErrOriginNotAllowed    = errors.New("origin not allowed")
	ErrRateLimited         = errors.New("rate limit exceeded")
)

// SecurityValidator authenticates and throttles webhook deliveries.
type SecurityValidator struct {
	config      SecurityConfig
	allowedNets []*net.IPNet
	rateLimiter *rateLimiter
}

func NewSecurityValidator(config SecurityConfig) *SecurityValidator {
	v := &SecurityValidator{config: config}
	for _, allowed := range config.AllowedIPs {
		if !strings.Contains(allowed, "/") {
			continue
		}
		if _, ipNet, err := net.ParseCIDR(allowed); err == nil {
			v.allowedNets = append(v.allowedNets, ipNet)
		}
	}
	if config.RateLimitPerMin > 0 {
		v.rateLimiter = newRateLimiter(config.RateLimitPerMin)
	}
	return v
}

// ValidateSignature checks the X-Hub-Signature-256 header, falling back to
// the legacy SHA-1 X-Hub-Signature header sent by older GitHub Enterprise.
func (v *SecurityValidator) ValidateSignature(payload []byte, sig256, sig1 string) error {
	if v.config.Secret == "" {
		return ErrSecretNotConfigured
	}
	if sig256 != "" {
		return v.verify(payload, sig256, "sha256=", sha256.New)
	}
	if sig1 != "" {
		return v.verify(payload, sig1, "sha1=", sha1.New)
	}
	return fmt.Errorf("%w: missing signature header", ErrInvalidSignature)
}

func (v *SecurityValidator) verify(payload []byte, header, prefix string, h func() hash.Hash) error {
	hexSig, ok := strings.CutPrefix(header, prefix)
	if !ok {
		return fmt.Errorf("%w: expected %s prefix", ErrInvalidSignature, prefix)
	}
	expected, err := hex.DecodeString(hexSig)
	if err != nil {
		return fmt.Errorf("%w: invalid hex encoding", ErrInvalidSignature)
	}

	mac := hmac.New(h, []byte(v.config.Secret))
	mac.Write(payload)

	// Constant-time comparison on raw bytes
	if !hmac.Equal(expected, mac.Sum(nil)) {
		return ErrInvalidSignature
	}
	return nil
}

// ValidateOrigin checks the origin against the allow list. An empty list
// allows everyone.
func (v *SecurityValidator) ValidateOrigin(origin string) error {
	if len(v.config.AllowedIPs) == 0 {
		return nil
	}
	for _, allowed := range v.config.AllowedIPs {
		if origin == allowed {
			return nil
		}
	}
	if ip := net.ParseIP(origin); ip != nil {
		for _, ipNet := range v.allowedNets {
			if ipNet.Contains(ip) {
				return nil
			}
		}
	}
	return fmt.Errorf("%w: %s", ErrOriginNotAllowed, origin)
}

// CheckRateLimit throttles per origin. Disabled when no limit is configured.
func (v *SecurityValidator) CheckRateLimit(origin string) error {
	if v.rateLimiter == nil {
		return nil
	}
	return v.rateLimiter.Allow(origin)
}

// rateLimiter holds one token bucket per origin; idle buckets expire.
type rateLimiter struct {
	limiters *expirable.LRU[string, *rate.Limiter]
	rate     rate.Limit
	burst    int
}

func newRateLimiter(requestsPerMin int) *rateLimiter {
	return &rateLimiter{
		limiters: expirable.NewLRU[string, *rate.Limiter](
			1000,          // Max 1000 unique origins
			nil,           // No eviction callback
			time.Minute*5, // TTL: 5 minutes
		),
		rate:  rate.Limit(float64(requestsPerMin) / 60.0), // Per second
		burst: max(requestsPerMin/10, 1),
	}
}

func (rl *rateLimiter) Allow(key string) error {
	limiter, ok := rl.limiters.Get(key)
	if !ok {
		limiter = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters.Add(key, limiter)
	}
	if !limiter.Allow() {
		return fmt.Errorf("%w for %s", ErrRateLimited, key)
	}
	return nil
}
