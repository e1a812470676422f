package auth

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	id "eyecandy/pkg/domain"
	"eyecandy/pkg/requestcontext"
)

// JWTValidator defines the interface for validating bearer tokens.
type JWTValidator interface {
	ValidateToken(tokenString string) (*JWTClaims, error)
}

// JWTClaims represents the claims we expect from the JWT validator.
type JWTClaims struct {
	ViewerID   string
	ViewerType string
}

// Viewer types carried in tokens. Anonymous viewers carry no token.
const (
	ViewerTypeMember    = "member"
	ViewerTypePerformer = "performer"
)

// writeJSONError writes a JSON error response with the given status code and error details.
func writeJSONError(w http.ResponseWriter, status int, errCode, errDesc string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(fmt.Appendf(nil, `{"error":"%s","error_description":"%s"}`, errCode, errDesc))
}

// parseClaims converts token claims into the request-scoped viewer.
func parseClaims(claims *JWTClaims) (requestcontext.Viewer, error) {
	viewerID, err := id.ParseViewerID(claims.ViewerID)
	if err != nil {
		return requestcontext.Viewer{}, fmt.Errorf("invalid viewer_id: %w", err)
	}
	switch claims.ViewerType {
	case ViewerTypeMember, ViewerTypePerformer:
	default:
		return requestcontext.Viewer{}, fmt.Errorf("invalid viewer_type %q", claims.ViewerType)
	}
	return requestcontext.Viewer{ID: viewerID, Type: claims.ViewerType}, nil
}

// authenticate validates the bearer token and returns the viewer it names.
// present is false when the request carries no Authorization header at all.
func authenticate(r *http.Request, validator JWTValidator, logger *slog.Logger) (viewer requestcontext.Viewer, present bool, ok bool) {
	ctx := r.Context()
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return requestcontext.Viewer{}, false, false
	}

	token, found := strings.CutPrefix(authHeader, "Bearer ")
	if !found {
		logger.WarnContext(ctx, "unauthorized access - malformed authorization header",
			"request_id", requestcontext.RequestID(ctx),
		)
		return requestcontext.Viewer{}, true, false
	}

	claims, err := validator.ValidateToken(token)
	if err != nil {
		logger.WarnContext(ctx, "unauthorized access - invalid token",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		return requestcontext.Viewer{}, true, false
	}

	viewer, err = parseClaims(claims)
	if err != nil {
		logger.WarnContext(ctx, "unauthorized access - malformed token claims",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		return requestcontext.Viewer{}, true, false
	}
	return viewer, true, true
}

// RequireAuth returns middleware that rejects requests without a valid bearer
// token and stores the authenticated viewer in the request context.
func RequireAuth(validator JWTValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			viewer, present, ok := authenticate(r, validator, logger)
			if !present {
				ctx := r.Context()
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", requestcontext.RequestID(ctx),
				)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Missing or invalid Authorization header")
				return
			}
			if !ok {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Invalid or expired token")
				return
			}
			next.ServeHTTP(w, r.WithContext(requestcontext.WithViewer(r.Context(), viewer)))
		})
	}
}

// OptionalAuth lets anonymous requests through untouched. A request that does
// present a token must present a valid one; a bad token is never downgraded
// to anonymous access.
func OptionalAuth(validator JWTValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			viewer, present, ok := authenticate(r, validator, logger)
			if !present {
				next.ServeHTTP(w, r)
				return
			}
			if !ok {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Invalid or expired token")
				return
			}
			next.ServeHTTP(w, r.WithContext(requestcontext.WithViewer(r.Context(), viewer)))
		})
	}
}

// RequireViewerType rejects authenticated viewers of any other type with 403.
// Must run after RequireAuth.
func RequireViewerType(viewerType string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			viewer, ok := requestcontext.ViewerFrom(ctx)
			if !ok {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
				return
			}
			if viewer.Type != viewerType {
				logger.WarnContext(ctx, "forbidden - wrong viewer type",
					"viewer_type", viewer.Type,
					"required_type", viewerType,
					"request_id", requestcontext.RequestID(ctx),
				)
				writeJSONError(w, http.StatusForbidden, "forbidden", "Insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
