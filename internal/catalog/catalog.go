// Package catalog holds the fixed NSE symbol universe the suite generates
// data for. The catalog is ordered, read-only and safe for concurrent use.
package catalog

import (
	"strings"

	"github.com/mandarab76/ATS-NSE-Stock-Suite/internal/domain/models"
)

// ExchangeSuffix is the NSE marker accepted (and emitted) on symbol names.
const ExchangeSuffix = ".NS"

// Profiles returns the 20 catalog entries across the major NSE sectors.
// Order is fixed and meaningful: bounded operations such as mover ranking
// scan the catalog front to back.
func Profiles() []models.SymbolProfile {
	return []models.SymbolProfile{
		{Symbol: "RELIANCE", BasePrice: 2650.50, Volatility: 0.02, Sector: "Energy"},
		{Symbol: "TCS", BasePrice: 3850.75, Volatility: 0.015, Sector: "IT"},
		{Symbol: "INFY", BasePrice: 1580.30, Volatility: 0.018, Sector: "IT"},
		{Symbol: "HDFCBANK", BasePrice: 1685.90, Volatility: 0.02, Sector: "Banking"},
		{Symbol: "ICICIBANK", BasePrice: 1150.40, Volatility: 0.022, Sector: "Banking"},
		{Symbol: "HINDUNILVR", BasePrice: 2420.60, Volatility: 0.012, Sector: "FMCG"},
		{Symbol: "ITC", BasePrice: 465.80, Volatility: 0.015, Sector: "FMCG"},
		{Symbol: "SBIN", BasePrice: 785.50, Volatility: 0.025, Sector: "Banking"},
		{Symbol: "BHARTIARTL", BasePrice: 1545.20, Volatility: 0.018, Sector: "Telecom"},
		{Symbol: "KOTAKBANK", BasePrice: 1775.30, Volatility: 0.02, Sector: "Banking"},
		{Symbol: "LT", BasePrice: 3580.40, Volatility: 0.02, Sector: "Infrastructure"},
		{Symbol: "AXISBANK", BasePrice: 1120.90, Volatility: 0.023, Sector: "Banking"},
		{Symbol: "ASIANPAINT", BasePrice: 2890.50, Volatility: 0.015, Sector: "Paints"},
		{Symbol: "MARUTI", BasePrice: 12850.75, Volatility: 0.022, Sector: "Automobile"},
		{Symbol: "BAJFINANCE", BasePrice: 7250.60, Volatility: 0.025, Sector: "Finance"},
		{Symbol: "WIPRO", BasePrice: 565.40, Volatility: 0.018, Sector: "IT"},
		{Symbol: "TECHM", BasePrice: 1685.30, Volatility: 0.019, Sector: "IT"},
		{Symbol: "HCLTECH", BasePrice: 1890.80, Volatility: 0.017, Sector: "IT"},
		{Symbol: "SUNPHARMA", BasePrice: 1745.90, Volatility: 0.016, Sector: "Pharma"},
		{Symbol: "TITAN", BasePrice: 3420.50, Volatility: 0.02, Sector: "Jewellery"},
	}
}

// ByName returns a map from bare symbol to profile for quick lookups.
func ByName() map[string]models.SymbolProfile {
	profiles := Profiles()
	m := make(map[string]models.SymbolProfile, len(profiles))
	for _, p := range profiles {
		m[p.Symbol] = p
	}
	return m
}

// Symbols returns the bare symbol names in catalog order.
func Symbols() []string {
	profiles := Profiles()
	names := make([]string, len(profiles))
	for i, p := range profiles {
		names[i] = p.Symbol
	}
	return names
}

// Normalize maps user input to the catalog's bare form: case-insensitive,
// with an optional exchange suffix stripped ("tcs.ns" -> "TCS").
func Normalize(symbol string) string {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	return strings.TrimSuffix(s, ExchangeSuffix)
}

// Lookup resolves symbol (in any accepted form) against the catalog.
func Lookup(symbol string) (models.SymbolProfile, bool) {
	p, ok := ByName()[Normalize(symbol)]
	return p, ok
}
