package geolocation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"eyecandy/internal/access/models"
	"eyecandy/internal/platform/config"
	"eyecandy/pkg/platform/sentinel"
)

type ClientSuite struct {
	suite.Suite
	server  *httptest.Server
	hits    atomic.Int32
	handler http.HandlerFunc
	metrics *Metrics
	client  *Client
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientSuite))
}

func (s *ClientSuite) SetupTest() {
	s.hits.Store(0)
	s.handler = func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"success","countryCode":"US","region":"CA","city":"Los Angeles","zip":"90001"}`))
	}
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.hits.Add(1)
		s.handler(w, r)
	}))
	s.metrics = NewMetrics(prometheus.NewRegistry())
	s.client = New(config.GeolocationConfig{
		BaseURL:          s.server.URL,
		Timeout:          time.Second,
		CacheTTL:         time.Minute,
		FailureThreshold: 2,
		Cooldown:         time.Minute,
	}, WithMetrics(s.metrics))
}

func (s *ClientSuite) TearDownTest() {
	s.server.Close()
}

func (s *ClientSuite) TestResolvesAndMapsFields() {
	var gotPath, gotFields string
	base := s.handler
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotFields = r.URL.Query().Get("fields")
		base(w, r)
	}

	loc, err := s.client.Locate(context.Background(), " 8.8.8.8 ")
	s.Require().NoError(err)
	s.Equal(&models.GeoLocation{Country: "US", State: "CA", City: "Los Angeles", PostalCode: "90001"}, loc)
	s.Equal("/json/8.8.8.8", gotPath)
	s.Equal(lookupFields, gotFields)
	s.InDelta(1, promtest.ToFloat64(s.metrics.LookupsTotal.WithLabelValues(OutcomeResolved)), 0)
}

func (s *ClientSuite) TestCachesResolvedLocations() {
	ctx := context.Background()
	first, err := s.client.Locate(ctx, "8.8.8.8")
	s.Require().NoError(err)
	first.City = "mutated"

	second, err := s.client.Locate(ctx, "8.8.8.8")
	s.Require().NoError(err)
	s.Equal("Los Angeles", second.City, "cached copies are independent")
	s.Equal(int32(1), s.hits.Load())
	s.InDelta(1, promtest.ToFloat64(s.metrics.CacheHitsTotal), 0)
}

func (s *ClientSuite) TestNonRoutableAddressesAreUnresolvable() {
	for _, ip := range []string{"", "not-an-ip", "127.0.0.1", "10.1.2.3", "192.168.0.10", "::1", "fe80::1"} {
		_, err := s.client.Locate(context.Background(), ip)
		s.ErrorIs(err, sentinel.ErrUnresolvable, ip)
	}
	s.Equal(int32(0), s.hits.Load())
}

func (s *ClientSuite) TestProviderFailStatusIsUnresolvableAndNotCached() {
	s.handler = func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status":"fail","message":"reserved range"}`))
	}

	for range 2 {
		_, err := s.client.Locate(context.Background(), "198.51.100.4")
		s.ErrorIs(err, sentinel.ErrUnresolvable)
	}
	s.Equal(int32(2), s.hits.Load())
}

func (s *ClientSuite) TestProviderErrorsOpenCircuit() {
	s.handler = func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}
	ctx := context.Background()

	for range 2 {
		_, err := s.client.Locate(ctx, "8.8.4.4")
		s.ErrorIs(err, sentinel.ErrUnavailable)
	}
	s.Error(s.client.Ping(ctx))

	_, err := s.client.Locate(ctx, "8.8.4.4")
	s.ErrorIs(err, sentinel.ErrUnavailable)
	s.Equal(int32(2), s.hits.Load(), "open circuit fails fast")
	s.InDelta(1, promtest.ToFloat64(s.metrics.LookupsTotal.WithLabelValues(OutcomeCircuitOpen)), 0)
}

func (s *ClientSuite) TestMalformedBodyIsUnavailable() {
	s.handler = func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status":`))
	}
	_, err := s.client.Locate(context.Background(), "8.8.8.8")
	s.ErrorIs(err, sentinel.ErrUnavailable)
}

func (s *ClientSuite) TestConcurrentLookupsAreCoalesced() {
	release := make(chan struct{})
	base := s.handler
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		<-release
		base(w, r)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.client.Locate(context.Background(), "1.1.1.1")
			errs <- err
		}()
	}
	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()
	close(errs)

	for err := range errs {
		s.NoError(err)
	}
	s.Equal(int32(1), s.hits.Load())
}

func (s *ClientSuite) TestCallerCancellation() {
	release := make(chan struct{})
	defer close(release)
	s.handler = func(_ http.ResponseWriter, _ *http.Request) {
		<-release
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := s.client.Locate(ctx, "1.0.0.1")
	s.ErrorIs(err, context.DeadlineExceeded)
}

func TestInMemoryCacheExpiry(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cache := NewInMemoryCache(time.Minute)
	cache.now = func() time.Time { return now }

	cache.Save("8.8.8.8", &models.GeoLocation{Country: "US"})
	loc, ok := cache.Find("8.8.8.8")
	require.True(t, ok)
	assert.Equal(t, "US", loc.Country)

	now = now.Add(time.Minute)
	_, ok = cache.Find("8.8.8.8")
	assert.False(t, ok)
	assert.Equal(t, 0, cache.Purge())
}

func TestInMemoryCacheDisabled(t *testing.T) {
	cache := NewInMemoryCache(0)
	cache.Save("8.8.8.8", &models.GeoLocation{Country: "US"})
	_, ok := cache.Find("8.8.8.8")
	assert.False(t, ok)
}
