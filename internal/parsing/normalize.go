package parsing

import (
	"strings"
	"time"
)

// dateLayouts are the three date shapes the reports use. Non-padded
// layouts also accept zero-padded input, so "03/5/24" and "3/5/24" both
// parse through the same entry.
var dateLayouts = []string{
	"1/2/2006",
	"1/2/06",
	"January 2, 2006",
}

// canonicalDateLayout is the single output format for every recognized date.
const canonicalDateLayout = "01/02/2006"

var currencyReplacer = strings.NewReplacer("$", "", ",", "")

// Normalize canonicalizes one extracted value: absence markers become the
// empty string, recognized dates are rewritten to MM/DD/YYYY, currency
// symbols and thousands separators are stripped, and anything else passes
// through trimmed. The function is pure and idempotent.
func Normalize(value string) string {
	v := strings.TrimSpace(value)
	if v == "" || v == "--" || strings.EqualFold(v, "N/A") {
		return ""
	}

	// Dates first: the comma in "March 5, 2024" must survive until the
	// layouts have had their chance.
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format(canonicalDateLayout)
		}
	}

	return strings.TrimSpace(currencyReplacer.Replace(v))
}
