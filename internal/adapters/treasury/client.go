package treasury

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/SscSPs/purchase_converter_app/internal/apperrors"
	"github.com/SscSPs/purchase_converter_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// lookbackMonths bounds how far into the past a rate may be taken from.
const lookbackMonths = 6

// Client queries the Treasury "rates of exchange" API for historical
// exchange rates. It performs a single attempt per call: transport failures
// surface immediately as apperrors.ErrExternalService and the caller decides
// whether to retry out-of-band.
type Client struct {
	http   *http.Client
	scheme string
	host   string
	path   string
}

// NewClient creates a Treasury API client for the given endpoint.
func NewClient(httpClient *http.Client, scheme, host, path string) *Client {
	return &Client{http: httpClient, scheme: scheme, host: host, path: path}
}

type apiResponse struct {
	Data []apiRate `json:"data"`
}

type apiRate struct {
	EffectiveDate string          `json:"effective_date"`
	Country       string          `json:"country"`
	Currency      string          `json:"currency"`
	ExchangeRate  decimal.Decimal `json:"exchange_rate"`
}

// GetRateForCountry returns the most recent rate for country with an
// effective date within [transactionDate - 6 months, transactionDate], both
// bounds inclusive. The provider sorts descending by effective date, so the
// first row is the applicable rate. A (nil, nil) return means the provider
// answered and holds no qualifying rate.
func (c *Client) GetRateForCountry(ctx context.Context, country string, transactionDate time.Time) (*domain.RateQuote, error) {
	now := time.Now()
	if transactionDate.After(now) {
		return nil, fmt.Errorf("%w: got %s", apperrors.ErrInvalidDate, transactionDate.Format(time.DateOnly))
	}

	windowStart := transactionDate.AddDate(0, -lookbackMonths, 0)

	q := url.Values{}
	q.Set("fields", "effective_date,country,currency,exchange_rate")
	q.Set("sort", "-effective_date")
	q.Set("filter", fmt.Sprintf("country:eq:%s,effective_date:lte:%s,effective_date:gte:%s",
		country,
		transactionDate.Format(time.DateOnly),
		windowStart.Format(time.DateOnly),
	))

	u := url.URL{
		Scheme:   c.scheme,
		Host:     c.host,
		Path:     c.path,
		RawQuery: q.Encode(),
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create rates request for country %q: %v", apperrors.ErrExternalService, country, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch rates for country %q: %v", apperrors.ErrExternalService, country, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: unexpected status %d fetching rates for country %q", apperrors.ErrExternalService, resp.StatusCode, country)
	}

	var body apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: failed to decode rates response for country %q: %v", apperrors.ErrExternalService, country, err)
	}

	// Empty result set is a legitimate "no data" outcome, not an error.
	if len(body.Data) == 0 {
		return nil, nil
	}

	first := body.Data[0]
	effective, err := time.Parse(time.DateOnly, first.EffectiveDate)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed effective_date %q in rates response: %v", apperrors.ErrExternalService, first.EffectiveDate, err)
	}

	return &domain.RateQuote{
		EffectiveDate: effective,
		Country:       first.Country,
		Currency:      first.Currency,
		Rate:          first.ExchangeRate,
	}, nil
}
