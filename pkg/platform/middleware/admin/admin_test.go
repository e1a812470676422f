package admin

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"
)

// AdminMiddlewareSuite tests the internal token middleware.
// The invariant "wrong token never reaches handler" must be preserved.
type AdminMiddlewareSuite struct {
	suite.Suite
	logger *slog.Logger
}

func TestAdminMiddlewareSuite(t *testing.T) {
	suite.Run(t, new(AdminMiddlewareSuite))
}

func (s *AdminMiddlewareSuite) SetupTest() {
	s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (s *AdminMiddlewareSuite) serve(expected, sent, actor string) (called bool, gotActor string, code int) {
	handler := RequireAdminToken(expected, s.logger)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			gotActor = ActorID(r.Context())
			w.WriteHeader(http.StatusOK)
		}),
	)
	req := httptest.NewRequest(http.MethodPost, "/internal/entitlements", nil)
	if sent != "" {
		req.Header.Set("X-Admin-Token", sent)
	}
	if actor != "" {
		req.Header.Set("X-Admin-Actor-ID", actor)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return called, gotActor, w.Code
}

func (s *AdminMiddlewareSuite) TestTokenValidation() {
	s.Run("correct token passes and carries actor", func() {
		called, actor, code := s.serve("secret", "secret", "payments")
		s.True(called)
		s.Equal("payments", actor)
		s.Equal(http.StatusOK, code)
	})

	s.Run("wrong token returns 401 and blocks handler", func() {
		called, _, code := s.serve("secret", "guess", "")
		s.False(called)
		s.Equal(http.StatusUnauthorized, code)
	})

	s.Run("missing token returns 401", func() {
		called, _, code := s.serve("secret", "", "")
		s.False(called)
		s.Equal(http.StatusUnauthorized, code)
	})

	s.Run("unconfigured token rejects everything", func() {
		called, _, code := s.serve("", "", "")
		s.False(called)
		s.Equal(http.StatusUnauthorized, code)
	})
}
