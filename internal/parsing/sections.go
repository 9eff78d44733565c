package parsing

import "regexp"

// Named sections the locator knows how to find.
const (
	SectionPersonalInfo = "personal_information"
	SectionSummary      = "summary"
	SectionInquiries    = "inquiries"
	SectionPublicInfo   = "public_information"
	SectionAccounts     = "account_history"
)

// sectionRule anchors one section: the body runs from just after the first
// line matching anchor to the first line matching any terminator, or to
// document end when none matches.
type sectionRule struct {
	name        string
	anchor      *regexp.Regexp
	terminators []*regexp.Regexp
}

var (
	pageFooterRe = regexp.MustCompile(`(?i)^\s*page\s+\d+\s+of\s+\d+`)
	urlLineRe    = regexp.MustCompile(`(?i)https?://`)
)

var sectionRules = []sectionRule{
	{
		name:   SectionPersonalInfo,
		anchor: regexp.MustCompile(`(?i)personal\s+information`),
		terminators: []*regexp.Regexp{
			regexp.MustCompile(`(?i)credit\s+score`),
			regexp.MustCompile(`(?i)^summary\b`),
			regexp.MustCompile(`(?i)account\s+history`),
			pageFooterRe,
		},
	},
	{
		name:   SectionSummary,
		anchor: regexp.MustCompile(`(?i)^summary\b`),
		terminators: []*regexp.Regexp{
			regexp.MustCompile(`(?i)account\s+history`),
			regexp.MustCompile(`(?i)^accounts?\b`),
			regexp.MustCompile(`(?i)^inquiries\b`),
			regexp.MustCompile(`(?i)public\s+information`),
			pageFooterRe,
		},
	},
	{
		name:   SectionInquiries,
		anchor: regexp.MustCompile(`(?i)inquiries.*(creditor\s+name|date\s+of\s+inquiry)`),
		terminators: []*regexp.Regexp{
			regexp.MustCompile(`(?i)^accounts?\b`),
			regexp.MustCompile(`(?i)public\s+(records|information)`),
			regexp.MustCompile(`(?i)^summary\b`),
			regexp.MustCompile(`(?i)creditor\s+contacts`),
			pageFooterRe,
		},
	},
	{
		name:   SectionPublicInfo,
		anchor: regexp.MustCompile(`(?i)public\s+information`),
		terminators: []*regexp.Regexp{
			regexp.MustCompile(`(?i)^inquiries\b`),
			regexp.MustCompile(`(?i)creditor\s+contacts`),
			pageFooterRe,
		},
	},
	{
		name:   SectionAccounts,
		anchor: regexp.MustCompile(`(?i)account\s+history`),
		terminators: []*regexp.Regexp{
			regexp.MustCompile(`(?i)creditor\s+contacts`),
		},
	},
}

// locateSection returns the body of the named section, or ok=false when the
// anchor never appears. Missing anchor is not an error; downstream
// extractors tolerate an empty input and keep their defaults.
func locateSection(lines []string, name string) (body []string, ok bool) {
	var rule *sectionRule
	for i := range sectionRules {
		if sectionRules[i].name == name {
			rule = &sectionRules[i]
			break
		}
	}
	if rule == nil {
		return nil, false
	}

	start := -1
	for i, line := range lines {
		if rule.anchor.MatchString(line) {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return nil, false
	}

	end := len(lines)
	for i := start; i < len(lines); i++ {
		if matchesAny(lines[i], rule.terminators) {
			end = i
			break
		}
	}
	return lines[start:end], true
}

func matchesAny(line string, patterns []*regexp.Regexp) bool {
	for _, re := range patterns {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// accountWindow returns the slice of lines to feed the account segmenter.
// When the account history header is missing the whole document is used;
// the segmenter's own anchor heuristic keeps false positives out.
func accountWindow(lines []string) []string {
	if body, ok := locateSection(lines, SectionAccounts); ok {
		return body
	}
	return lines
}
