package treasury_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/SscSPs/purchase_converter_app/internal/adapters/treasury"
	"github.com/SscSPs/purchase_converter_app/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient points a treasury client at the given test server.
func newTestClient(t *testing.T, server *httptest.Server) *treasury.Client {
	t.Helper()
	u, err := url.Parse(server.URL)
	require.NoError(t, err)
	return treasury.NewClient(server.Client(), u.Scheme, u.Host, "/services/api/fiscal_service/v1/accounting/od/rates_of_exchange")
}

func TestGetRateForCountry_Success(t *testing.T) {
	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"data": [
				{"effective_date": "2024-02-29", "country": "Canada", "currency": "Dollar", "exchange_rate": "1.3333"},
				{"effective_date": "2023-12-31", "country": "Canada", "currency": "Dollar", "exchange_rate": "1.3200"}
			]
		}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	txDate := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	quote, err := client.GetRateForCountry(context.Background(), "Canada", txDate)

	require.NoError(t, err)
	require.NotNil(t, quote)
	assert.Equal(t, "Canada", quote.Country)
	assert.Equal(t, "Dollar", quote.Currency)
	assert.Equal(t, "1.3333", quote.Rate.String())
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), quote.EffectiveDate)

	// Query carries the projection, descending sort and the inclusive
	// 6-month window filter.
	assert.Equal(t, "effective_date,country,currency,exchange_rate", gotQuery.Get("fields"))
	assert.Equal(t, "-effective_date", gotQuery.Get("sort"))
	assert.Equal(t, "country:eq:Canada,effective_date:lte:2024-03-15,effective_date:gte:2023-09-15", gotQuery.Get("filter"))
}

func TestGetRateForCountry_NoQualifyingRate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": []}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	txDate := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	quote, err := client.GetRateForCountry(context.Background(), "Atlantis", txDate)

	// An empty result set is "no data", not a provider fault.
	require.NoError(t, err)
	assert.Nil(t, quote)
}

func TestGetRateForCountry_ProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := newTestClient(t, server)
	txDate := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	quote, err := client.GetRateForCountry(context.Background(), "Canada", txDate)

	require.Error(t, err)
	assert.Nil(t, quote)
	assert.ErrorIs(t, err, apperrors.ErrExternalService)
}

func TestGetRateForCountry_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": [`))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	txDate := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	quote, err := client.GetRateForCountry(context.Background(), "Canada", txDate)

	require.Error(t, err)
	assert.Nil(t, quote)
	assert.ErrorIs(t, err, apperrors.ErrExternalService)
}

func TestGetRateForCountry_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := newTestClient(t, server)
	server.Close() // connection refused from here on

	txDate := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	quote, err := client.GetRateForCountry(context.Background(), "Canada", txDate)

	require.Error(t, err)
	assert.Nil(t, quote)
	assert.ErrorIs(t, err, apperrors.ErrExternalService)
}

func TestGetRateForCountry_FutureDate(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	client := newTestClient(t, server)
	futureDate := time.Now().AddDate(0, 0, 7)

	quote, err := client.GetRateForCountry(context.Background(), "Canada", futureDate)

	require.Error(t, err)
	assert.Nil(t, quote)
	assert.ErrorIs(t, err, apperrors.ErrInvalidDate)
	assert.False(t, called, "future dates must be rejected before any provider call")
}

func TestGetRateForCountry_MalformedEffectiveDate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": [{"effective_date": "29-02-2024", "country": "Canada", "currency": "Dollar", "exchange_rate": "1.3333"}]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	txDate := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	quote, err := client.GetRateForCountry(context.Background(), "Canada", txDate)

	require.Error(t, err)
	assert.Nil(t, quote)
	assert.ErrorIs(t, err, apperrors.ErrExternalService)
}
