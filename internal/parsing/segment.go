package parsing

import (
	"regexp"
	"strings"
)

const (
	// maxCreditorLineLen bounds how long a creditor-anchor line can be.
	maxCreditorLineLen = 40

	// anchorLookahead is how many lines past a candidate anchor are
	// scanned for an account marker before the candidate is accepted.
	anchorLookahead = 12
)

// creditorLineRe matches lines consisting only of uppercase letters,
// digits, punctuation, and spaces. Digit-free filtering happens separately
// so account-number lines never pass.
var creditorLineRe = regexp.MustCompile(`^[A-Z][A-Z0-9\s&.,'"/\-]+$`)

// accountMarkers are the phrases whose presence in the lookahead window
// confirms that an all-caps candidate line really opens a tradeline.
var accountMarkers = []string{
	"Account #",
	"High Balance",
	"Payment Status:",
	"Account Status:",
	"Date Opened:",
}

// boilerplatePhrases are known all-caps or heading lines that must never
// be mistaken for a creditor name.
var boilerplatePhrases = []string{
	"INQUIRIES",
	"ACCOUNT HISTORY",
	"PUBLIC INFORMATION",
	"CREDITOR CONTACTS",
	"TWO-YEAR PAYMENT HISTORY",
	"DAYS LATE",
	"TRANSUNION",
	"EXPERIAN",
	"EQUIFAX",
	"SUMMARY",
	"PERSONAL INFORMATION",
	"NONE REPORTED",
	"NO DATA",
}

// listingEndRe closes the account listing: page footers, the next major
// section headers, or the creditor contact appendix.
var listingEndRe = regexp.MustCompile(`(?i)^\s*page\s+\d+\s+of\s+\d+|creditor\s+contacts|public\s+information|^inquiries\b`)

func hasDigit(s string) bool {
	return strings.ContainsAny(s, "0123456789")
}

func isBoilerplate(line string) bool {
	upper := strings.ToUpper(strings.TrimSpace(line))
	if urlLineRe.MatchString(upper) || pageFooterRe.MatchString(upper) {
		return true
	}
	for _, phrase := range boilerplatePhrases {
		if strings.Contains(upper, phrase) {
			return true
		}
	}
	return false
}

// isCreditorAnchor applies the heading heuristic to lines[i]: short,
// uppercase, digit-free, not boilerplate, and confirmed by an account
// marker within the lookahead window. The lookahead keeps arbitrary
// all-caps text from opening a phantom account.
func isCreditorAnchor(lines []string, i int) bool {
	line := strings.TrimSpace(lines[i])
	if line == "" || len(line) >= maxCreditorLineLen {
		return false
	}
	if hasDigit(line) || !creditorLineRe.MatchString(line) || isBoilerplate(line) {
		return false
	}

	end := i + 1 + anchorLookahead
	if end > len(lines) {
		end = len(lines)
	}
	for _, next := range lines[i+1 : end] {
		for _, marker := range accountMarkers {
			if strings.Contains(next, marker) {
				return true
			}
		}
	}
	return false
}

// segmentAccounts slices the listing window into one sub-section per
// tradeline. Each creditor anchor opens a section; a section closes at the
// next anchor or at an end-of-listing marker.
func segmentAccounts(lines []string) [][]string {
	var sections [][]string
	var current []string

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case isCreditorAnchor(lines, i):
			if len(current) > 0 {
				sections = append(sections, current)
			}
			current = []string{trimmed}
		case listingEndRe.MatchString(trimmed) || isCollectionAnchor(trimmed):
			if len(current) > 0 {
				sections = append(sections, current)
				current = nil
			}
		case len(current) > 0:
			current = append(current, trimmed)
		}
	}
	if len(current) > 0 {
		sections = append(sections, current)
	}
	return sections
}

// collectionMarker keys collection anchor detection.
const collectionMarker = "Collection"

// isCollectionAnchor reports whether the line opens a collection entry:
// it carries the literal Collection marker, is not the plural section
// heading, and holds no digits (the summary counter line does).
func isCollectionAnchor(line string) bool {
	return strings.Contains(line, collectionMarker) &&
		!strings.Contains(line, "Collections") &&
		!hasDigit(line)
}

// segmentCollections slices out collection sub-sections. Anchors carry the
// literal "Collection" marker instead of the account lookahead; a section
// closes at a blank line, a footer, or the next anchor.
func segmentCollections(lines []string) [][]string {
	var sections [][]string
	var current []string
	inSection := false

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case isCollectionAnchor(trimmed):
			if len(current) > 0 {
				sections = append(sections, current)
			}
			current = []string{trimmed}
			inSection = true
		case inSection && trimmed != "" && !pageFooterRe.MatchString(trimmed):
			current = append(current, trimmed)
		case inSection:
			inSection = false
			if len(current) > 0 {
				sections = append(sections, current)
				current = nil
			}
		}
	}
	if len(current) > 0 {
		sections = append(sections, current)
	}
	return sections
}
