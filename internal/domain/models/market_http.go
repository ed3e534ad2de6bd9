package models

// Requests for the market HTTP endpoints. Defined in domain for consistency and reuse.

type HistoricalRequest struct {
	Days int `query:"days" json:"days" default:"30" validate:"gte=1,lte=3650"`
}

type MoversRequest struct {
	Count int `query:"count" json:"count" default:"5" validate:"gte=1,lte=50"`
}

type WatchlistRequest struct {
	// Comma-separated symbol list, e.g. "RELIANCE,TCS,INFY".
	Symbols string `query:"symbols" json:"symbols" validate:"required"`
}

type Holding struct {
	Symbol   string `json:"symbol" validate:"required"`
	Quantity int64  `json:"quantity" validate:"gte=0"`
}

type PortfolioRequest struct {
	Holdings []Holding `json:"holdings" validate:"required,min=1,dive"`
}

type SnapshotsRequest struct {
	Index string `query:"index" json:"index"`
	From  string `query:"from" json:"from"`
	To    string `query:"to" json:"to"`
	Limit int    `query:"limit" json:"limit" default:"100" validate:"gte=1,lte=1000"`
}

type ExportRequest struct {
	// Empty means the full catalog.
	Symbols string `query:"symbols" json:"symbols"`
}
