package models

import "time"

// SymbolProfile is a static catalog entry describing one listed symbol.
// Profiles are loaded once at startup and never mutated.
type SymbolProfile struct {
	Symbol     string  `json:"symbol"`
	BasePrice  float64 `json:"base_price"`
	Volatility float64 `json:"volatility"` // fractional stddev of daily percent change
	Sector     string  `json:"sector"`
}

// Quote is a single-point market quote. High/Low always bracket both Open
// and Price; price and volume are strictly positive.
type Quote struct {
	Symbol        string    `json:"symbol"` // exchange-qualified, e.g. "TCS.NS"
	Name          string    `json:"name"`   // bare symbol, e.g. "TCS"
	Price         float64   `json:"price"`
	PreviousClose float64   `json:"previous_close"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"change_percent"`
	Volume        int64     `json:"volume"`
	Open          float64   `json:"open"`
	High          float64   `json:"high"`
	Low           float64   `json:"low"`
	Sector        string    `json:"sector"`
	Currency      string    `json:"currency"`
	Exchange      string    `json:"exchange"`
	Timestamp     time.Time `json:"timestamp"`
}

// Bar is one daily OHLCV record.
type Bar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// HistoricalSeries is a contiguous run of daily bars, oldest first.
// Each bar opens at the previous bar's close.
type HistoricalSeries struct {
	Symbol string `json:"symbol"`
	Days   int    `json:"days"`
	Bars   []Bar  `json:"data"`
}

// RankedMovers holds the top gainers (percent change descending) and top
// losers (percent change ascending, most negative first). Either list may be
// shorter than requested when few symbols moved in that direction.
type RankedMovers struct {
	Gainers   []Quote   `json:"gainers"`
	Losers    []Quote   `json:"losers"`
	Timestamp time.Time `json:"timestamp"`
}

// IndexQuote is a single benchmark index reading.
type IndexQuote struct {
	Name          string    `json:"name"`
	Value         float64   `json:"value"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"change_percent"`
	Timestamp     time.Time `json:"timestamp"`
}

// MarketSummary groups the benchmark index readings, in a fixed order.
type MarketSummary struct {
	Indices   []IndexQuote `json:"indices"`
	Timestamp time.Time    `json:"timestamp"`
}

// PortfolioPosition is one valued holding inside a rollup.
type PortfolioPosition struct {
	Symbol   string  `json:"symbol"`
	Quantity int64   `json:"quantity"`
	Price    float64 `json:"price"`
	Value    float64 `json:"value"`
}

// PortfolioRollup values a set of holdings. Symbols that could not be
// resolved are listed in Skipped and excluded from TotalValue.
type PortfolioRollup struct {
	Positions  []PortfolioPosition `json:"positions"`
	TotalValue float64             `json:"total_value"`
	Skipped    []string            `json:"skipped,omitempty"`
}

// WatchlistResult is a batch quote lookup with partial-failure reporting.
type WatchlistResult struct {
	Quotes  []Quote  `json:"quotes"`
	Skipped []string `json:"skipped,omitempty"`
}

// IndexSnapshot is one persisted index reading, as stored by the recorder.
type IndexSnapshot struct {
	ID            int64     `json:"id"`
	Index         string    `json:"index"`
	Value         float64   `json:"value"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"change_percent"`
	TakenAt       time.Time `json:"taken_at"`
}
