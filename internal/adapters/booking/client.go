// Package booking is the RapidAPI booking.com client behind the two provider
// capabilities: flight search and hotel search by coordinates.
package booking

import (
	"context"
	crand "crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"trip_concierge/internal/adapters/observability"
	"trip_concierge/internal/domain"
)

type Client struct {
	flightsBase string
	hotelsBase  string
	key         string
	hc          *http.Client
	rl          *rate.Limiter
}

var (
	ErrNotFound     = errors.New("booking: not found")
	ErrUnauthorized = errors.New("booking: unauthorized")
	ErrForbidden    = errors.New("booking: forbidden")
)

func New(flightsBase, hotelsBase, key string, rps int) (*Client, error) {
	if key == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		flightsBase: strings.TrimRight(flightsBase, "/"),
		hotelsBase:  strings.TrimRight(hotelsBase, "/"),
		key:         key,
		hc:          &http.Client{Timeout: 20 * time.Second},
		rl:          rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

// SearchFlights performs the round-trip flight query and returns the raw
// decoded payload.
func (c *Client) SearchFlights(ctx context.Context, p domain.FlightSearchParams) (map[string]any, error) {
	q := url.Values{}
	q.Set("fromId", p.FromID)
	q.Set("toId", p.ToID)
	q.Set("departDate", p.DepartDate)
	q.Set("returnDate", p.ReturnDate)
	q.Set("pageNo", strconv.Itoa(p.PageNo))
	q.Set("adults", strconv.Itoa(p.Adults))
	q.Set("children", strconv.Itoa(p.Children))
	q.Set("sort", p.Sort)
	q.Set("cabinClass", p.CabinClass)
	q.Set("currency_code", p.CurrencyCode)

	var out map[string]any
	start := time.Now()
	err := c.get(ctx, c.flightsBase+"/api/v1/flights/searchFlights?"+q.Encode(), &out)
	observability.ObserveExternal("flights", "searchFlights", statusOf(err), time.Since(start))
	return out, err
}

// SearchHotels performs the coordinate hotel query. Fixed constants arrive
// already attached to p by the parameter builder.
func (c *Client) SearchHotels(ctx context.Context, p domain.HotelSearchParams) (map[string]any, error) {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(p.Latitude, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(p.Longitude, 'f', -1, 64))
	q.Set("checkin_date", p.CheckinDate)
	q.Set("checkout_date", p.CheckoutDate)
	q.Set("room_number", strconv.Itoa(p.RoomNumber))
	q.Set("adults_number", strconv.Itoa(p.AdultsNumber))
	q.Set("children_number", strconv.Itoa(p.ChildrenNumber))
	q.Set("children_ages", p.ChildrenAges)
	q.Set("categories_filter_ids", p.CategoriesFilterIDs)
	q.Set("page_number", strconv.Itoa(p.PageNumber))
	q.Set("units", p.Units)
	q.Set("locale", p.Locale)
	q.Set("include_adjacency", strconv.FormatBool(p.IncludeAdjacency))
	q.Set("order_by", p.OrderBy)
	q.Set("filter_by_currency", p.FilterByCurrency)

	var out map[string]any
	start := time.Now()
	err := c.get(ctx, c.hotelsBase+"/v2/hotels/search-by-coordinates?"+q.Encode(), &out)
	observability.ObserveExternal("hotels", "searchByCoordinates", statusOf(err), time.Since(start))
	return out, err
}

func statusOf(err error) int {
	if err == nil {
		return http.StatusOK
	}
	return 0
}

// get performs a GET with client-side rate limiting, retries, and JSON
// decode into out. Retries on 429 and transient 5xx, honoring Retry-After
// when provided.
func (c *Client) get(ctx context.Context, u string, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	host := ""
	if parsed, err := url.Parse(u); err == nil {
		host = parsed.Host
	}

	var lastErr error
	for i := 0; i < 4; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return err
		}
		req.Header.Set("x-rapidapi-host", host)
		req.Header.Set("x-rapidapi-key", c.key)
		req.Header.Set("Accept", "application/json")

		resp, err := c.hc.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			if i < 3 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr
		}

		switch resp.StatusCode {
		case http.StatusOK:
			err := json.NewDecoder(resp.Body).Decode(out)
			resp.Body.Close()
			return err

		case http.StatusNotFound:
			resp.Body.Close()
			return ErrNotFound

		case http.StatusUnauthorized:
			resp.Body.Close()
			return ErrUnauthorized

		case http.StatusForbidden:
			resp.Body.Close()
			return ErrForbidden

		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			wait := retryAfter(resp)
			resp.Body.Close()
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = fmt.Errorf("remote %d", resp.StatusCode)
			if i < 3 && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr

		default:
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return fmt.Errorf("bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
		}
	}

	return lastErr
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After (seconds or HTTP-date). 0 if absent/invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff returns an exponential delay (200ms, 400ms, 800ms...) with up to
// +50% jitter from crypto/rand.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	j := time.Duration(0.5 * f * float64(base))
	return base + j
}
