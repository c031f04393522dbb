// Package money formats rupee amounts and rates for display.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// FormatINR renders an amount with the rupee sign, Indian digit grouping
// (12,34,567) and two decimal places.
func FormatINR(amount decimal.Decimal) string {
	return "₹" + Group(amount, 2)
}

// FormatINRWhole renders an amount rounded to whole rupees
func FormatINRWhole(amount decimal.Decimal) string {
	return "₹" + Group(amount, 0)
}

// Group applies Indian digit grouping: the last three digits, then pairs
func Group(amount decimal.Decimal, places int32) string {
	s := amount.Abs().StringFixed(places)
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}

	if len(intPart) > 3 {
		head, tail := intPart[:len(intPart)-3], intPart[len(intPart)-3:]
		var groups []string
		for len(head) > 2 {
			groups = append([]string{head[len(head)-2:]}, groups...)
			head = head[:len(head)-2]
		}
		if head != "" {
			groups = append([]string{head}, groups...)
		}
		intPart = strings.Join(groups, ",") + "," + tail
	}

	sign := ""
	if amount.IsNegative() && !amount.Round(places).IsZero() {
		sign = "-"
	}
	return sign + intPart + frac
}

// FormatRate renders a fractional rate (0.156) as a percentage ("15.60%")
func FormatRate(rate decimal.Decimal) string {
	return rate.Mul(hundred).StringFixed(2) + "%"
}

// FormatPercentage renders a value already expressed in percent
func FormatPercentage(pct decimal.Decimal) string {
	return pct.StringFixed(2) + "%"
}

// Short renders large amounts in lakh or crore, e.g. "16.00 L"
func Short(amount decimal.Decimal) string {
	crore := decimal.NewFromInt(10000000)
	lakh := decimal.NewFromInt(100000)
	switch {
	case amount.Abs().GreaterThanOrEqual(crore):
		return amount.Div(crore).StringFixed(2) + " Cr"
	case amount.Abs().GreaterThanOrEqual(lakh):
		return amount.Div(lakh).StringFixed(2) + " L"
	}
	return amount.StringFixed(0)
}
