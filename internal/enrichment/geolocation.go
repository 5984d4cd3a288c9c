// Package enrichment resolves a submitter's country from their IP address.
package enrichment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"complaint-service/internal/conf"
	"complaint-service/internal/domain"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"
)

// ProviderSet is enrichment providers.
var ProviderSet = wire.NewSet(NewGeoLocationClient)

const (
	defaultMaxAttempts = 3
	defaultBackoff     = time.Second
	requestTimeout     = 5 * time.Second

	paramAPIKey = "apiKey"
	paramIP     = "ip"
	paramFields = "fields"

	fieldCountryName = "country_name"
)

// GeoLocationClient looks up the country for an IP address against an
// external provider. ResolveCountry never fails outward: every failure mode
// collapses into the Unknown sentinel so the workflow never has to
// special-case enrichment.
type GeoLocationClient struct {
	httpClient  *http.Client
	endpoint    string
	apiKey      string
	maxAttempts int
	backoffWait time.Duration
	log         *log.Helper
}

// NewGeoLocationClient creates a geolocation client from configuration.
func NewGeoLocationClient(c *conf.Geolocation, logger log.Logger) *GeoLocationClient {
	maxAttempts := c.RetryMaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	wait := defaultBackoff
	if c.RetryBackoffMs > 0 {
		wait = time.Duration(c.RetryBackoffMs) * time.Millisecond
	}
	return &GeoLocationClient{
		httpClient:  &http.Client{Timeout: requestTimeout},
		endpoint:    c.Endpoint,
		apiKey:      c.APIKey,
		maxAttempts: maxAttempts,
		backoffWait: wait,
		log:         log.NewHelper(logger),
	}
}

// statusError marks a received non-2xx provider response. The provider
// answered, so the request is not retried.
type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("geolocation provider returned status %d", e.code)
}

// ResolveCountry resolves the country name for ipAddress. Transport-level
// failures are retried with a fixed backoff up to the configured attempt
// budget; any other failure resolves immediately to Unknown.
func (c *GeoLocationClient) ResolveCountry(ctx context.Context, ipAddress string) string {
	c.log.WithContext(ctx).Debugf("getting country for IP: %s", ipAddress)

	var country string
	attempt := func() error {
		resolved, err := c.fetchCountry(ctx, ipAddress)
		if err != nil {
			return err
		}
		country = resolved
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(c.backoffWait), uint64(c.maxAttempts)),
		ctx,
	)
	if err := backoff.Retry(attempt, policy); err != nil {
		c.log.WithContext(ctx).Errorf("error getting country for IP %s: %v", ipAddress, err)
		return domain.UnknownCountry
	}

	return country
}

func (c *GeoLocationClient) fetchCountry(ctx context.Context, ipAddress string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.buildURL(ipAddress), nil)
	if err != nil {
		return "", backoff.Permanent(err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Connectivity failure: the provider never answered, retry.
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", backoff.Permanent(&statusError{code: resp.StatusCode})
	}

	var body struct {
		CountryName string `json:"country_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", backoff.Permanent(err)
	}

	if body.CountryName == "" {
		// Provider is reachable but has no answer for this IP.
		c.log.WithContext(ctx).Warnf("country not found for IP: %s", ipAddress)
		return domain.UnknownCountry, nil
	}

	c.log.WithContext(ctx).Debugf("country found for IP %s: %s", ipAddress, body.CountryName)
	return body.CountryName, nil
}

func (c *GeoLocationClient) buildURL(ipAddress string) string {
	q := url.Values{}
	if c.apiKey != "" {
		q.Set(paramAPIKey, c.apiKey)
	}
	q.Set(paramIP, ipAddress)
	q.Set(paramFields, fieldCountryName)
	return c.endpoint + "?" + q.Encode()
}
