package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"coinlake/internal/retry"
)

// MarketRecord is one coin entry exactly as the markets endpoint returned it.
// The payload is opaque to this system: never parsed into fields, stored
// verbatim.
type MarketRecord = json.RawMessage

// ErrEmptyResponse is returned when the endpoint answers 200 with zero
// records. "Connected but got nothing" is a failure, never an empty batch,
// and retrying it would not help.
var ErrEmptyResponse = errors.New("api returned 0 records")

// MarketsParams selects which coins to fetch. Zero values fall back to the
// fixed defaults the pipeline uses on every run.
type MarketsParams struct {
	Currency string // default "usd"
	Order    string // default "market_cap_desc"
	PerPage  int    // default 10
	Page     int    // default 1
}

func (p MarketsParams) values() url.Values {
	if p.Currency == "" {
		p.Currency = "usd"
	}
	if p.Order == "" {
		p.Order = "market_cap_desc"
	}
	if p.PerPage == 0 {
		p.PerPage = 10
	}
	if p.Page == 0 {
		p.Page = 1
	}

	q := url.Values{}
	q.Set("vs_currency", p.Currency)
	q.Set("order", p.Order)
	q.Set("per_page", strconv.Itoa(p.PerPage))
	q.Set("page", strconv.Itoa(p.Page))
	q.Set("sparkline", "false")
	return q
}

// GetCoinMarkets fetches one page of coin market records. Transport errors
// and non-2xx responses are retried per the client's policy; a malformed or
// empty body fails immediately.
func (c *Client) GetCoinMarkets(ctx context.Context, params MarketsParams) ([]MarketRecord, error) {
	query := params.values()

	attempts := 0
	var records []MarketRecord
	op := func() error {
		attempts++
		if attempts > 1 {
			c.logger.Debug("retrying fetch", "attempt", attempts)
		}

		body, err := c.doRequest(ctx, query)
		if err != nil {
			return err
		}

		var recs []MarketRecord
		if err := json.Unmarshal(body, &recs); err != nil {
			return retry.Permanent(fmt.Errorf("unmarshal response: %w", err))
		}
		if len(recs) == 0 {
			return retry.Permanent(ErrEmptyResponse)
		}

		records = recs
		return nil
	}

	if err := retry.Do(ctx, c.retryPolicy, op); err != nil {
		return nil, fmt.Errorf("fetch coin markets after %d attempt(s): %w", attempts, err)
	}

	c.logger.Debug("fetched coin markets", "records", len(records), "attempts", attempts)
	return records, nil
}
