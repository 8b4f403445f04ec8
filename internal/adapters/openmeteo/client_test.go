package openmeteo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	headerContentType = "Content-Type"
	contentTypeJSON   = "application/json"
)

func testClient(baseURL string) *Client {
	return NewClient(
		WithBaseURL(baseURL),
		WithTimeout(5*time.Second),
		WithRateLimit(1000, 1000),
	)
}

func TestClient_Recent_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/forecast", r.URL.Path)
		assert.Equal(t, "23.810300", r.URL.Query().Get("latitude"))
		assert.Equal(t, "90.412500", r.URL.Query().Get("longitude"))
		assert.Equal(t, "14", r.URL.Query().Get("past_days"))
		assert.Equal(t, "precipitation_sum,temperature_2m_max", r.URL.Query().Get("daily"))

		w.Header().Set(headerContentType, contentTypeJSON)
		_, _ = w.Write([]byte(`{"daily":{
			"time":["2026-08-28","2026-08-29","2026-08-30"],
			"precipitation_sum":[12.5,0,3.2],
			"temperature_2m_max":[31.1,33.0,29.4]
		}}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	samples, err := c.Recent(context.Background(), 23.8103, 90.4125, 14)
	require.NoError(t, err)
	require.Len(t, samples, 3)

	assert.Equal(t, 12.5, samples[0].PrecipitationMM)
	assert.Equal(t, 31.1, samples[0].MaxTempC)
	assert.Equal(t, time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC), samples[0].Date)
	assert.False(t, samples[0].Missing)
	assert.Equal(t, 3.2, samples[2].PrecipitationMM)
}

func TestClient_Recent_NullDaysFlaggedMissing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(headerContentType, contentTypeJSON)
		_, _ = w.Write([]byte(`{"daily":{
			"time":["2026-08-29","2026-08-30"],
			"precipitation_sum":[null,3.2],
			"temperature_2m_max":[30.0,29.4]
		}}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	samples, err := c.Recent(context.Background(), 23.8103, 90.4125, 2)
	require.NoError(t, err)
	require.Len(t, samples, 2)

	assert.True(t, samples[0].Missing)
	assert.Equal(t, 0.0, samples[0].PrecipitationMM)
	assert.False(t, samples[1].Missing)
}

func TestClient_Recent_MismatchedArrays(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(headerContentType, contentTypeJSON)
		_, _ = w.Write([]byte(`{"daily":{
			"time":["2026-08-29","2026-08-30"],
			"precipitation_sum":[1.0],
			"temperature_2m_max":[30.0,29.4]
		}}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.Recent(context.Background(), 23.8103, 90.4125, 2)
	require.ErrorIs(t, err, ErrSourceUnavailable)
}

func TestClient_Recent_MalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(headerContentType, contentTypeJSON)
		_, _ = w.Write([]byte(`{"daily": not-json`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.Recent(context.Background(), 23.8103, 90.4125, 14)
	require.ErrorIs(t, err, ErrSourceUnavailable)
}

func TestClient_Recent_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.Recent(context.Background(), 23.8103, 90.4125, 14)
	require.ErrorIs(t, err, ErrSourceUnavailable)
	assert.Contains(t, err.Error(), "502")
}

func TestClient_Recent_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(
		WithBaseURL(srv.URL),
		WithTimeout(50*time.Millisecond),
		WithRateLimit(1000, 1000),
	)
	_, err := c.Recent(context.Background(), 23.8103, 90.4125, 14)
	require.ErrorIs(t, err, ErrSourceUnavailable)
}

func TestClient_Elevation_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/elevation", r.URL.Path)
		w.Header().Set(headerContentType, contentTypeJSON)
		_, _ = w.Write([]byte(`{"elevation":[10.5]}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	elevation, err := c.Elevation(context.Background(), 23.8103, 90.4125)
	require.NoError(t, err)
	assert.Equal(t, 10.5, elevation)
}

func TestClient_Elevation_Empty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(headerContentType, contentTypeJSON)
		_, _ = w.Write([]byte(`{"elevation":[]}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.Elevation(context.Background(), 23.8103, 90.4125)
	require.ErrorIs(t, err, ErrSourceUnavailable)
}

func TestClient_RateLimiter_HonorsContext(t *testing.T) {
	// One token total; the second call must block and then fail when the
	// context is cancelled rather than hanging.
	c := NewClient(WithBaseURL("http://127.0.0.1:0"), WithRateLimit(0.001, 1))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, _ = c.Elevation(ctx, 1, 1) // consumes the only token (request itself fails, which is fine)
	_, err := c.Elevation(ctx, 1, 1)
	require.Error(t, err)
}
