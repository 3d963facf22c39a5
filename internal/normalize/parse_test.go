package normalize

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
		ok    bool
	}{
		{"iso", "2025-01-15", time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), true},
		{"iso slashes", "2025/01/15", time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), true},
		{"us", "01/15/2025", time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), true},
		{"us short", "1/5/2025", time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC), true},
		{"month name", "Jan 15, 2025", time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), true},
		{"day first", "15 Jan 2025", time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), true},
		{"whitespace", "  2025-01-15  ", time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), true},
		{"empty", "", time.Time{}, false},
		{"prose", "not a date", time.Time{}, false},
		{"bare number", "20250115", time.Time{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDate(tt.input)
			if ok != tt.ok {
				t.Fatalf("ParseDate(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"plain", "1200.50", "1200.5", true},
		{"negative", "-350", "-350", true},
		{"explicit plus", "+5200.00", "5200", true},
		{"dollar sign", "$1,200.50", "1200.5", true},
		{"euro sign", "€99.99", "99.99", true},
		{"parentheses", "(250.00)", "-250", true},
		{"parentheses with symbol", "($1,000)", "-1000", true},
		{"thousands", "12,345.67", "12345.67", true},
		{"zero", "0.00", "0", true},
		{"empty", "", "", false},
		{"prose", "lots", "", false},
		{"symbol only", "$", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseAmount(tt.input)
			if ok != tt.ok {
				t.Fatalf("ParseAmount(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if !ok {
				return
			}
			want, _ := decimal.NewFromString(tt.want)
			if !got.Equal(want) {
				t.Errorf("ParseAmount(%q) = %s, want %s", tt.input, got, want)
			}
		})
	}
}

func TestParseAmountKeepsSign(t *testing.T) {
	// The sign is read verbatim, never inferred from context.
	pos, ok := ParseAmount("+250.00")
	if !ok || !pos.IsPositive() {
		t.Fatalf("positive amount parsed as %s", pos)
	}
	neg, ok := ParseAmount("-250.00")
	if !ok || !neg.IsNegative() {
		t.Fatalf("negative amount parsed as %s", neg)
	}
}

func TestScanLine(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		ok       bool
		amount   string
		wantDesc string
	}{
		{
			name:     "statement row",
			line:     "2025-01-15  GROCERY MART  -84.12",
			ok:       true,
			amount:   "-84.12",
			wantDesc: "GROCERY MART",
		},
		{
			name:     "trailing amount wins",
			line:     "15 Jan 2025 Store 42 -19.99",
			ok:       true,
			amount:   "-19.99",
			wantDesc: "Store 42",
		},
		{
			name:   "parenthesized amount",
			line:   "01/15/2025 Rent payment (1,200.00)",
			ok:     true,
			amount: "-1200",
		},
		{name: "no date", line: "GROCERY MART -84.12", ok: false},
		{name: "no amount", line: "2025-01-15 opening note", ok: false},
		{name: "prose", line: "Dear customer, thank you for banking with us.", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ScanLine(tt.line)
			if ok != tt.ok {
				t.Fatalf("ScanLine(%q) ok = %v, want %v", tt.line, ok, tt.ok)
			}
			if !ok {
				return
			}
			want, _ := decimal.NewFromString(tt.amount)
			if !got.Amount.Equal(want) {
				t.Errorf("amount = %s, want %s", got.Amount, want)
			}
			if tt.wantDesc != "" && got.Description != tt.wantDesc {
				t.Errorf("description = %q, want %q", got.Description, tt.wantDesc)
			}
		})
	}
}
