package parsing

import (
	"log/slog"
	"regexp"
	"strings"

	"creditcli/pkg/contracts/domain"
)

// Options tunes the parser. The zero value is usable; New fills defaults.
type Options struct {
	// MinClusterWords is the floor below which the column clusterer
	// refuses to split a personal-info block.
	MinClusterWords int
	// TopTolerance is the vertical tolerance for grouping words into lines.
	TopTolerance float64
}

// Parser recovers a structured CreditReport from a decoded document. One
// Parser is safe for concurrent use; each Parse call builds a fresh
// aggregate and shares no state with other calls.
type Parser struct {
	logger     *slog.Logger
	classifier ColumnClassifier
	tolerance  float64
}

// New creates a Parser with the default k-means column classifier.
func New(logger *slog.Logger, opts Options) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	tolerance := opts.TopTolerance
	if tolerance <= 0 {
		tolerance = defaultTopTolerance
	}
	return &Parser{
		logger:     logger.With(slog.String("component", "parser")),
		classifier: newKMeansClassifier(opts.MinClusterWords),
		tolerance:  tolerance,
	}
}

// NewWithClassifier creates a Parser with a custom column strategy.
func NewWithClassifier(logger *slog.Logger, classifier ColumnClassifier, opts Options) *Parser {
	p := New(logger, opts)
	if classifier != nil {
		p.classifier = classifier
	}
	return p
}

// Parse runs the fixed extraction pipeline over the document and assembles
// the per-bureau aggregate. Every extractor takes its input slice and
// returns a sub-record; nothing here mutates shared state, so a malformed
// section can only ever lose its own output.
func (p *Parser) Parse(doc *domain.Document) *domain.CreditReport {
	report := domain.NewCreditReport()
	if doc == nil || len(doc.Lines) == 0 {
		return report
	}
	lines := doc.Lines

	report.Scores = p.extractScores(lines)
	report.PersonalInfo = p.extractPersonalInfo(doc)

	if body, ok := locateSection(lines, SectionSummary); ok {
		report.Summary = extractSummary(body)
	}
	if body, ok := locateSection(lines, SectionPublicInfo); ok {
		report.PublicInformation = extractFields(body, publicInfoFieldRules)
	}
	if body, ok := locateSection(lines, SectionInquiries); ok {
		report.Inquiries = p.extractInquiries(body)
	}

	window := accountWindow(lines)
	report.Accounts = p.extractAccounts(window)
	report.Collections = p.extractCollections(window)

	p.logger.Info("credit report assembled",
		slog.Int("accounts", len(report.Accounts)),
		slog.Int("collections", len(report.Collections)),
		slog.Int("inquiries", len(report.Inquiries)))
	return report
}

var (
	scoresHeaderRe = regexp.MustCompile(`(?i)vantage\s*scores?`)
	threeDigitRe   = regexp.MustCompile(`\b\d{3}\b`)
)

// extractScores finds the score table: the scores header, then within the
// next few lines a row naming all three bureaus, then a row of 3-digit
// scores in bureau column order.
func (p *Parser) extractScores(lines []string) domain.Bureaus[string] {
	scores := domain.Bureaus[string]{
		TransUnion: domain.ScoreUnavailable,
		Experian:   domain.ScoreUnavailable,
		Equifax:    domain.ScoreUnavailable,
	}

	for i, line := range lines {
		if !scoresHeaderRe.MatchString(line) {
			continue
		}
		limit := i + 10
		if limit > len(lines) {
			limit = len(lines)
		}
		for j := i; j < limit; j++ {
			lower := strings.ToLower(lines[j])
			if !strings.Contains(lower, "transunion") ||
				!strings.Contains(lower, "experian") ||
				!strings.Contains(lower, "equifax") {
				continue
			}
			if j+1 < len(lines) {
				found := threeDigitRe.FindAllString(lines[j+1], -1)
				if len(found) >= 3 {
					for k, bureau := range domain.BureauOrder {
						scores.Set(bureau, found[k])
					}
				}
			}
			break
		}
		break
	}
	return scores
}

// personalInfoWindows are the clustered blocks of the personal information
// section: start keyword, then the first matching next-section marker ends
// the window.
var personalInfoWindows = []struct {
	key    string
	window clusterWindow
}{
	{key: "name", window: clusterWindow{
		start: "Name",
		ends:  []string{"Also Known As", "Date of Birth", "Current Address"},
	}},
	{key: "current_address", window: clusterWindow{
		start: "Current Address",
		ends:  []string{"Previous Address", "Employer"},
	}},
	{key: "previous_address", window: clusterWindow{
		start: "Previous",
		ends:  []string{"Employer", "Personal Statement", "Summary"},
	}},
	{key: "employer", window: clusterWindow{
		start: "Employer",
		ends:  []string{"Personal Statement", "Summary", "Credit Score", "Account History"},
	}},
}

var dobRe = regexp.MustCompile(`Date of Birth\s+(\d{4})`)

// extractPersonalInfo recovers name, addresses, and employer through the
// positional column clusterer; these blocks carry no delimiters, only
// glyph coordinates, so line-based splitting cannot work. Without a
// geometry layer the fields degrade to unavailable rather than failing
// the document.
func (p *Parser) extractPersonalInfo(doc *domain.Document) domain.Bureaus[domain.FieldMap] {
	info := domain.NewFieldMaps()

	for _, block := range personalInfoWindows {
		var values domain.Bureaus[string]
		if doc.HasGeometry() {
			inside := windowWords(doc.Words, block.window, p.tolerance)
			values = clusterBlockValues(p.classifier, inside, p.tolerance)
		} else {
			for _, bureau := range domain.BureauOrder {
				values.Set(bureau, Unavailable)
			}
		}
		for _, bureau := range domain.BureauOrder {
			info.Get(bureau)[block.key] = values.Get(bureau)
		}
	}

	// Year of birth rides on a plain labeled line and is reported once,
	// identically, for all bureaus.
	for _, line := range doc.Lines {
		if m := dobRe.FindStringSubmatch(line); m != nil {
			for _, bureau := range domain.BureauOrder {
				info.Get(bureau)["year_of_birth"] = m[1]
			}
			break
		}
	}
	return info
}

var threeWaySplitRe = regexp.MustCompile(`\t+|\s{2,}`)

// splitIntoThreeParts splits an inquiry row into creditor, date, and
// bureau on tab or multi-space runs, padding to three.
func splitIntoThreeParts(line string) [3]string {
	var parts [3]string
	fields := threeWaySplitRe.Split(strings.TrimSpace(line), -1)
	for i := 0; i < 3 && i < len(fields); i++ {
		parts[i] = strings.TrimSpace(fields[i])
	}
	return parts
}

// extractInquiries converts each inquiry row into a flat entry. Header
// rows and rows missing any of the three cells are skipped.
func (p *Parser) extractInquiries(lines []string) []domain.Inquiry {
	inquiries := []domain.Inquiry{}
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		parts := splitIntoThreeParts(line)
		if parts[0] == "" || parts[1] == "" || parts[2] == "" {
			continue
		}
		creditor := parts[0]
		lower := strings.ToLower(creditor)
		if lower == "creditor name" || lower == "inquiries" {
			continue
		}
		bureau := strings.ToLower(parts[2])
		if !domain.ValidBureau(bureau) {
			continue
		}
		inquiries = append(inquiries, domain.Inquiry{
			Creditor: creditor,
			Date:     Normalize(parts[1]),
			Bureau:   bureau,
		})
	}
	return inquiries
}

// extractAccounts parses every segmented tradeline. A malformed
// sub-section is logged and skipped; all other accounts still come
// through.
func (p *Parser) extractAccounts(window []string) []domain.Account {
	accounts := []domain.Account{}
	for _, section := range segmentAccounts(window) {
		account, err := parseAccount(section)
		if err != nil {
			p.logger.Warn("skipping malformed account section",
				slog.String("error", err.Error()),
				slog.Int("lines", len(section)))
			continue
		}
		accounts = append(accounts, account)
	}
	return accounts
}

// parseAccount populates one tradeline from its sub-section: the anchor
// line is the creditor, labeled lines feed the field extractor, and the
// history block feeds the state machine.
func parseAccount(section []string) (domain.Account, error) {
	if len(section) == 0 || strings.TrimSpace(section[0]) == "" {
		return domain.Account{}, errEmptySection
	}
	account := domain.NewAccount(strings.TrimSpace(section[0]))
	account.Bureaus = extractFields(section[1:], accountFieldRules)
	account.PaymentHistory = extractPaymentHistories(section)
	return account, nil
}

// extractCollections parses every segmented collection entry.
func (p *Parser) extractCollections(window []string) []domain.Collection {
	collections := []domain.Collection{}
	for _, section := range segmentCollections(window) {
		collection, err := parseCollection(section)
		if err != nil {
			p.logger.Warn("skipping malformed collection section",
				slog.String("error", err.Error()),
				slog.Int("lines", len(section)))
			continue
		}
		collections = append(collections, collection)
	}
	return collections
}

// parseCollection strips the Collection marker off the anchor to get the
// agency name, then reuses the shared field extractor.
func parseCollection(section []string) (domain.Collection, error) {
	if len(section) == 0 {
		return domain.Collection{}, errEmptySection
	}
	agency := strings.TrimSpace(strings.ReplaceAll(section[0], collectionMarker, ""))
	if agency == "" {
		return domain.Collection{}, errNoAgency
	}
	collection := domain.NewCollection(agency)
	collection.Bureaus = extractFields(section[1:], collectionFieldRules)
	return collection, nil
}
