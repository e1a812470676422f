// Package device derives a coarse device fingerprint from the User-Agent so
// anonymous viewers can be told apart for teaser session tracking.
package device

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"

	"github.com/mssola/useragent"

	"eyecandy/pkg/requestcontext"
)

// DefaultCookieName is the optional cookie carrying a client-generated device ID.
const DefaultCookieName = "ec_device"

// Fingerprint hashes browser family, major version, OS and form factor.
// Minor browser updates keep the same fingerprint. Returns "" for an empty User-Agent.
func Fingerprint(userAgentString string) string {
	if userAgentString == "" {
		return ""
	}

	ua := useragent.New(userAgentString)
	browser, version := ua.Browser()

	majorVersion := "unknown"
	if before, _, _ := strings.Cut(version, "."); before != "" {
		majorVersion = before
	}

	platform := "desktop"
	if ua.Mobile() {
		platform = "mobile"
	}

	data := fmt.Sprintf("%s|%s|%s|%s",
		normalize(browser), majorVersion, normalize(ua.OS()), platform)
	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}

// DisplayName returns "Browser on OS" for audit and log readability.
func DisplayName(userAgentString string) string {
	if userAgentString == "" {
		return "Unknown Device"
	}
	ua := useragent.New(userAgentString)
	browser, _ := ua.Browser()
	os := ua.OS()
	if browser == "" {
		browser = "Unknown Browser"
	}
	if os == "" {
		os = "Unknown OS"
	}
	return strings.TrimSpace(browser + " on " + os)
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "unknown"
	}
	return s
}

// Config holds configuration for the Device middleware.
type Config struct {
	// CookieName is the name of the device ID cookie. Empty disables cookie extraction.
	CookieName string
}

// Device extracts the device cookie and pre-computes the device fingerprint.
// It must be registered after the metadata middleware (which extracts User-Agent).
func Device(cfg Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if cfg.CookieName != "" {
				if cookie, err := r.Cookie(cfg.CookieName); err == nil && cookie.Value != "" {
					ctx = requestcontext.WithDeviceID(ctx, cookie.Value)
				}
			}

			if fp := Fingerprint(requestcontext.UserAgent(ctx)); fp != "" {
				ctx = requestcontext.WithDeviceFingerprint(ctx, fp)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
