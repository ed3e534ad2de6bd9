package tabular

import (
	"context"
	"testing"

	"github.com/mandarab76/ATS-NSE-Stock-Suite/internal/domain/models"
	"github.com/mandarab76/ATS-NSE-Stock-Suite/internal/mockdata"
)

func TestQuotesSheetShape(t *testing.T) {
	g := mockdata.New(mockdata.WithSeed(1))
	q, err := g.Quote(context.Background(), "TCS")
	if err != nil {
		t.Fatalf("quote: %v", err)
	}

	sheet := QuotesSheet([]models.Quote{*q})
	if sheet.Name != "Quotes" {
		t.Fatalf("unexpected sheet name %q", sheet.Name)
	}
	if len(sheet.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(sheet.Rows))
	}
	if len(sheet.Rows[0]) != len(sheet.Header) {
		t.Fatalf("row width %d != header width %d", len(sheet.Rows[0]), len(sheet.Header))
	}
	if sheet.Header[0] != "symbol" || sheet.Rows[0][0] != "TCS.NS" {
		t.Fatalf("first column should be the symbol, got %q=%q", sheet.Header[0], sheet.Rows[0][0])
	}
}

func TestHistoricalSheetOrder(t *testing.T) {
	g := mockdata.New(mockdata.WithSeed(2))
	s, err := g.Historical(context.Background(), "INFY", 5)
	if err != nil {
		t.Fatalf("historical: %v", err)
	}

	sheet := HistoricalSheet(s)
	if sheet.Name != "Historical Data" {
		t.Fatalf("unexpected sheet name %q", sheet.Name)
	}
	if len(sheet.Rows) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(sheet.Rows))
	}
	for i, row := range sheet.Rows {
		if row[0] != s.Bars[i].Date.Format("2006-01-02") {
			t.Fatalf("row %d date %q out of order", i, row[0])
		}
	}
}

func TestMoversSheets(t *testing.T) {
	g := mockdata.New(mockdata.WithSeed(3))
	m, err := g.Movers(context.Background(), 4)
	if err != nil {
		t.Fatalf("movers: %v", err)
	}

	sheets := MoversSheets(m)
	if len(sheets) != 2 {
		t.Fatalf("expected 2 sheets, got %d", len(sheets))
	}
	if sheets[0].Name != "Top Gainers" || sheets[1].Name != "Top Losers" {
		t.Fatalf("unexpected names %q, %q", sheets[0].Name, sheets[1].Name)
	}
	if len(sheets[0].Rows) != len(m.Gainers) || len(sheets[1].Rows) != len(m.Losers) {
		t.Fatalf("row counts do not match mover lists")
	}
}

func TestPortfolioSheetsTotal(t *testing.T) {
	r := &models.PortfolioRollup{
		Positions: []models.PortfolioPosition{
			{Symbol: "TCS.NS", Quantity: 5, Price: 4000, Value: 20000},
		},
		TotalValue: 20000,
		Skipped:    []string{"NOPE"},
	}

	sheets := PortfolioSheets(r)
	if sheets[0].Name != "Holdings" || sheets[1].Name != "Summary" {
		t.Fatalf("unexpected names %q, %q", sheets[0].Name, sheets[1].Name)
	}
	summary := sheets[1].Rows[0]
	if summary[0] != "1" || summary[1] != "1" || summary[2] != "20000.00" {
		t.Fatalf("unexpected summary row %v", summary)
	}
}
