package metadata

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eyecandy/pkg/requestcontext"
)

func TestMiddlewareHandler(t *testing.T) {
	tests := []struct {
		name           string
		headers        map[string]string
		remoteAddr     string
		trustedProxies []string
		expectedIP     string
		expectedUA     string
	}{
		{
			name:       "ignores XFF when no trusted proxies",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.1", "User-Agent": "Mozilla/5.0"},
			remoteAddr: "192.168.1.1:12345",
			expectedIP: "192.168.1.1",
			expectedUA: "Mozilla/5.0",
		},
		{
			name:           "trusts XFF from trusted proxy",
			headers:        map[string]string{"X-Forwarded-For": "203.0.113.1, 10.0.0.2", "User-Agent": "curl/7.64.1"},
			remoteAddr:     "10.0.0.1:12345",
			trustedProxies: []string{"10.0.0.0/8"},
			expectedIP:     "203.0.113.1",
			expectedUA:     "curl/7.64.1",
		},
		{
			name:           "client-supplied XFF hop is ignored behind appending proxy",
			headers:        map[string]string{"X-Forwarded-For": "8.8.8.8, 203.0.113.9"},
			remoteAddr:     "10.0.0.5:443",
			trustedProxies: []string{"10.0.0.0/8"},
			expectedIP:     "203.0.113.9",
		},
		{
			name:           "skips trusted hops from the right",
			headers:        map[string]string{"X-Forwarded-For": "8.8.8.8, 198.51.100.4, 10.1.2.3, 10.0.0.9"},
			remoteAddr:     "10.0.0.5:443",
			trustedProxies: []string{"10.0.0.0/8"},
			expectedIP:     "198.51.100.4",
		},
		{
			name:           "all hops trusted uses leftmost",
			headers:        map[string]string{"X-Forwarded-For": "10.9.9.9, 10.0.0.2"},
			remoteAddr:     "10.0.0.5:443",
			trustedProxies: []string{"10.0.0.0/8"},
			expectedIP:     "10.9.9.9",
		},
		{
			name:           "malformed hop right of the client falls back to remote address",
			headers:        map[string]string{"X-Forwarded-For": "203.0.113.9, bogus"},
			remoteAddr:     "10.0.0.5:443",
			trustedProxies: []string{"10.0.0.0/8"},
			expectedIP:     "10.0.0.5",
		},
		{
			name:           "trusts X-Real-IP from trusted proxy",
			headers:        map[string]string{"X-Real-IP": "198.51.100.7"},
			remoteAddr:     "10.0.0.1:12345",
			trustedProxies: []string{"10.0.0.1"},
			expectedIP:     "198.51.100.7",
		},
		{
			name:           "malformed XFF falls back to remote address",
			headers:        map[string]string{"X-Forwarded-For": "not-an-ip"},
			remoteAddr:     "10.0.0.1:12345",
			trustedProxies: []string{"10.0.0.0/8"},
			expectedIP:     "10.0.0.1",
		},
		{
			name:       "ipv6 remote address",
			remoteAddr: "[2001:db8::1]:443",
			expectedIP: "2001:db8::1",
		},
		{
			name:       "empty remote address",
			remoteAddr: "",
			expectedIP: "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefixes, err := ParseTrustedProxies(tt.trustedProxies)
			require.NoError(t, err)

			var ip, ua string
			handler := NewMiddleware(Config{TrustedProxies: prefixes}).Handler(
				http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					ip = requestcontext.ClientIP(r.Context())
					ua = requestcontext.UserAgent(r.Context())
				}))

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			req.RemoteAddr = tt.remoteAddr
			for key, value := range tt.headers {
				req.Header.Set(key, value)
			}
			handler.ServeHTTP(httptest.NewRecorder(), req)

			assert.Equal(t, tt.expectedIP, ip)
			assert.Equal(t, tt.expectedUA, ua)
		})
	}
}

func TestParseTrustedProxies(t *testing.T) {
	prefixes, err := ParseTrustedProxies([]string{"10.0.0.0/8", " 192.168.1.5 ", ""})
	require.NoError(t, err)
	require.Len(t, prefixes, 2)
	assert.Equal(t, "192.168.1.5/32", prefixes[1].String())

	_, err = ParseTrustedProxies([]string{"not-a-cidr/99"})
	assert.Error(t, err)
}
