// Package privacy provides utilities for handling personally identifiable information (PII)
// before it reaches logs, audit sinks or storage keys.
package privacy

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net"
	"strings"
)

// AnonymizeIP truncates an IP address to remove the host-identifying portion.
//
// For IPv4 addresses, the last octet is zeroed (e.g., "192.168.1.47" -> "192.168.1.0").
// For IPv6 addresses, only the /48 prefix is kept
// (e.g., "2001:db8:85a3::8a2e:370:7334" -> "2001:0db8:85a3::").
//
// Returns "invalid" for unparseable IP addresses, and "unknown" for empty strings.
func AnonymizeIP(ip string) string {
	if ip == "" || ip == "unknown" {
		return "unknown"
	}

	parsed := net.ParseIP(ip)
	if parsed == nil {
		return "invalid"
	}

	if v4 := parsed.To4(); v4 != nil {
		return fmt.Sprintf("%d.%d.%d.0", v4[0], v4[1], v4[2])
	}

	return fmt.Sprintf("%02x%02x:%02x%02x:%02x%02x::",
		parsed[0], parsed[1],
		parsed[2], parsed[3],
		parsed[4], parsed[5])
}

// Pseudonymize derives a stable opaque key from identifying parts (client IP,
// device fingerprint). The raw values cannot be recovered from the result.
// Returns "" when every part is empty.
func Pseudonymize(parts ...string) string {
	nonEmpty := false
	for _, p := range parts {
		if p != "" {
			nonEmpty = true
			break
		}
	}
	if !nonEmpty {
		return ""
	}
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}
