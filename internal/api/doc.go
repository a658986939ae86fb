// Package api implements the CoinGecko markets client.
//
// One GET per run against /coins/markets with a fixed query (currency,
// ordering, page size, page number, sparkline disabled). Records are kept as
// raw JSON; the warehouse stores them untyped.
package api
