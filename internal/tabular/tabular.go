// Package tabular flattens market data values into ordered-field records.
// Export layers (spreadsheet writers, CSV pipes) consume Sheets as-is and
// own all file-format concerns.
package tabular

import (
	"strconv"
	"time"

	"github.com/mandarab76/ATS-NSE-Stock-Suite/internal/domain/models"
)

// Sheet is one named table: a header row plus data rows, all strings,
// column order fixed.
type Sheet struct {
	Name   string     `json:"name"`
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

var quoteHeader = []string{
	"symbol", "name", "price", "previous_close", "change", "change_percent",
	"volume", "open", "high", "low", "sector", "currency", "exchange", "timestamp",
}

func quoteRow(q models.Quote) []string {
	return []string{
		q.Symbol,
		q.Name,
		money(q.Price),
		money(q.PreviousClose),
		money(q.Change),
		money(q.ChangePercent),
		strconv.FormatInt(q.Volume, 10),
		money(q.Open),
		money(q.High),
		money(q.Low),
		q.Sector,
		q.Currency,
		q.Exchange,
		q.Timestamp.Format(time.RFC3339),
	}
}

// QuotesSheet tabulates quotes in input order.
func QuotesSheet(quotes []models.Quote) Sheet {
	rows := make([][]string, 0, len(quotes))
	for _, q := range quotes {
		rows = append(rows, quoteRow(q))
	}
	return Sheet{Name: "Quotes", Header: quoteHeader, Rows: rows}
}

// HistoricalSheet tabulates a daily series oldest first.
func HistoricalSheet(s *models.HistoricalSeries) Sheet {
	rows := make([][]string, 0, len(s.Bars))
	for _, b := range s.Bars {
		rows = append(rows, []string{
			b.Date.Format("2006-01-02"),
			money(b.Open),
			money(b.High),
			money(b.Low),
			money(b.Close),
			strconv.FormatInt(b.Volume, 10),
		})
	}
	return Sheet{
		Name:   "Historical Data",
		Header: []string{"date", "open", "high", "low", "close", "volume"},
		Rows:   rows,
	}
}

// MoversSheets tabulates gainers and losers as two sheets, preserving rank
// order.
func MoversSheets(m *models.RankedMovers) []Sheet {
	gainers := QuotesSheet(m.Gainers)
	gainers.Name = "Top Gainers"
	losers := QuotesSheet(m.Losers)
	losers.Name = "Top Losers"
	return []Sheet{gainers, losers}
}

// SummarySheet tabulates the benchmark indices in their fixed order.
func SummarySheet(s *models.MarketSummary) Sheet {
	rows := make([][]string, 0, len(s.Indices))
	for _, idx := range s.Indices {
		rows = append(rows, []string{
			idx.Name,
			money(idx.Value),
			money(idx.Change),
			money(idx.ChangePercent),
			idx.Timestamp.Format(time.RFC3339),
		})
	}
	return Sheet{
		Name:   "Indices",
		Header: []string{"index", "value", "change", "change_percent", "timestamp"},
		Rows:   rows,
	}
}

// PortfolioSheets tabulates holdings plus a one-row total summary.
func PortfolioSheets(r *models.PortfolioRollup) []Sheet {
	rows := make([][]string, 0, len(r.Positions))
	for _, p := range r.Positions {
		rows = append(rows, []string{
			p.Symbol,
			strconv.FormatInt(p.Quantity, 10),
			money(p.Price),
			money(p.Value),
		})
	}
	holdings := Sheet{
		Name:   "Holdings",
		Header: []string{"symbol", "quantity", "price", "value"},
		Rows:   rows,
	}
	summary := Sheet{
		Name:   "Summary",
		Header: []string{"positions", "skipped", "total_value"},
		Rows: [][]string{{
			strconv.Itoa(len(r.Positions)),
			strconv.Itoa(len(r.Skipped)),
			money(r.TotalValue),
		}},
	}
	return []Sheet{holdings, summary}
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
