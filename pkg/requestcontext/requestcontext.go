// Package requestcontext carries request-scoped values (request ID, request time,
// client metadata, authenticated viewer) through context.Context.
package requestcontext

import (
	"context"
	"time"

	id "eyecandy/pkg/domain"
)

type (
	contextKeyRequestID   struct{}
	contextKeyRequestTime struct{}
	contextKeyClientIP    struct{}
	contextKeyUserAgent   struct{}
	contextKeyViewer      struct{}
	contextKeyDeviceID    struct{}
	contextKeyDeviceFP    struct{}
)

// Viewer is the authenticated principal attached by the auth middleware.
// Type is the raw claim value ("member" or "performer").
type Viewer struct {
	ID   id.ViewerID
	Type string
}

// WithRequestID stores the request ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, contextKeyRequestID{}, requestID)
}

// RequestID returns the request ID or an empty string.
func RequestID(ctx context.Context) string {
	if v, ok := ctx.Value(contextKeyRequestID{}).(string); ok {
		return v
	}
	return ""
}

// WithTime injects a specific time into a context.
// Useful for service tests that don't run the full HTTP middleware chain.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, contextKeyRequestTime{}, t)
}

// Now retrieves the request-scoped time from context.
// Falls back to time.Now() if not set (workers, CLI, tests).
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(contextKeyRequestTime{}).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithClientMetadata stores the client IP and User-Agent.
func WithClientMetadata(ctx context.Context, ip, userAgent string) context.Context {
	ctx = context.WithValue(ctx, contextKeyClientIP{}, ip)
	return context.WithValue(ctx, contextKeyUserAgent{}, userAgent)
}

// ClientIP returns the client IP extracted by the metadata middleware.
func ClientIP(ctx context.Context) string {
	if v, ok := ctx.Value(contextKeyClientIP{}).(string); ok {
		return v
	}
	return ""
}

// UserAgent returns the client User-Agent extracted by the metadata middleware.
func UserAgent(ctx context.Context) string {
	if v, ok := ctx.Value(contextKeyUserAgent{}).(string); ok {
		return v
	}
	return ""
}

// WithViewer attaches the authenticated viewer.
func WithViewer(ctx context.Context, v Viewer) context.Context {
	return context.WithValue(ctx, contextKeyViewer{}, v)
}

// ViewerFrom returns the authenticated viewer, if any.
func ViewerFrom(ctx context.Context) (Viewer, bool) {
	v, ok := ctx.Value(contextKeyViewer{}).(Viewer)
	if !ok || v.ID.IsNil() {
		return Viewer{}, false
	}
	return v, true
}

// WithDeviceID stores the device identifier read from the device cookie.
func WithDeviceID(ctx context.Context, deviceID string) context.Context {
	return context.WithValue(ctx, contextKeyDeviceID{}, deviceID)
}

// DeviceID returns the device cookie value or an empty string.
func DeviceID(ctx context.Context) string {
	if v, ok := ctx.Value(contextKeyDeviceID{}).(string); ok {
		return v
	}
	return ""
}

// WithDeviceFingerprint stores the User-Agent derived device fingerprint.
func WithDeviceFingerprint(ctx context.Context, fingerprint string) context.Context {
	return context.WithValue(ctx, contextKeyDeviceFP{}, fingerprint)
}

// DeviceFingerprint returns the device fingerprint or an empty string.
func DeviceFingerprint(ctx context.Context) string {
	if v, ok := ctx.Value(contextKeyDeviceFP{}).(string); ok {
		return v
	}
	return ""
}
