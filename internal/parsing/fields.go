package parsing

import (
	"strings"

	"creditcli/pkg/contracts/domain"
)

// fieldRule binds a label as it appears on a composite line to the field
// key the extracted values are stored under. One table per listing type;
// the extraction routine itself is shared by every call site.
type fieldRule struct {
	label string
	key   string
}

// accountFieldRules covers the labeled lines of a tradeline sub-section.
var accountFieldRules = []fieldRule{
	{label: "Account #", key: "account_number"},
	{label: "Account Type:", key: "account_type"},
	{label: "Account Type - Detail:", key: "account_type_detail"},
	{label: "Bureau Code:", key: "bureau_code"},
	{label: "Account Status:", key: "account_status"},
	{label: "Monthly Payment:", key: "monthly_payment"},
	{label: "Date Opened:", key: "date_opened"},
	{label: "Balance Owed:", key: "balance_owed"},
	{label: "No. of Months (terms):", key: "term_months"},
	{label: "High Balance:", key: "high_balance"},
	{label: "Credit Limit:", key: "credit_limit"},
	{label: "Past Due Amount:", key: "past_due_amount"},
	{label: "Payment Status:", key: "payment_status"},
	{label: "Dispute Status:", key: "dispute_status"},
	{label: "Creditor Remarks:", key: "remarks"},
	{label: "Date of Last Payment:", key: "date_of_last_payment"},
	{label: "Amount of Last Payment:", key: "amount_of_last_payment"},
	{label: "Date of Last Activity:", key: "date_of_last_activity"},
	{label: "Date Closed:", key: "date_closed"},
	{label: "Date Reported:", key: "date_reported"},
	{label: "Last Reported:", key: "last_reported"},
}

// collectionFieldRules is the subset reported for collection entries.
var collectionFieldRules = []fieldRule{
	{label: "Account #", key: "account_number"},
	{label: "Account Status:", key: "account_status"},
	{label: "Original Creditor:", key: "original_creditor"},
	{label: "Balance Owed:", key: "balance_owed"},
	{label: "High Balance:", key: "high_balance"},
	{label: "Date Opened:", key: "date_opened"},
	{label: "Payment Status:", key: "payment_status"},
	{label: "Last Reported:", key: "last_reported"},
	{label: "Creditor Remarks:", key: "remarks"},
}

// summaryFieldRules covers the per-bureau summary counters.
var summaryFieldRules = []fieldRule{
	{label: "Total Accounts", key: "total_accounts"},
	{label: "Open Accounts:", key: "open_accounts"},
	{label: "Closed Accounts:", key: "closed_accounts"},
	{label: "Delinquent:", key: "delinquent"},
	{label: "Derogatory:", key: "derogatory"},
	{label: "Collection:", key: "collection"},
	{label: "Balances:", key: "balances"},
	{label: "Payments:", key: "monthly_payments"},
	{label: "Monthly Payments:", key: "monthly_payments"},
	{label: "Credit Utilization:", key: "credit_utilization"},
	{label: "Public Records:", key: "public_records"},
	{label: "Inquiries (2 years):", key: "inquiries_2y"},
}

// publicInfoFieldRules covers the labeled lines of the public information
// section.
var publicInfoFieldRules = []fieldRule{
	{label: "Type:", key: "type"},
	{label: "Status:", key: "status"},
	{label: "Date Filed/Reported:", key: "date_filed"},
	{label: "Reference #", key: "reference_number"},
	{label: "Closing Date:", key: "closing_date"},
	{label: "Asset Amount:", key: "asset_amount"},
	{label: "Court:", key: "court"},
	{label: "Liability:", key: "liability"},
	{label: "Exempt Amount:", key: "exempt_amount"},
}

// matchLabel reports whether the line carries the given label and returns
// the remainder after it. Matching is case-insensitive on a trimmed line;
// a stray colon after the label is consumed as well.
func matchLabel(line, label string) (rest string, ok bool) {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) < len(label) || !strings.EqualFold(trimmed[:len(label)], label) {
		return "", false
	}
	rest = trimmed[len(label):]
	rest = strings.TrimPrefix(rest, ":")
	return strings.TrimSpace(rest), true
}

// fanOut applies the composite-line decomposition policy to the label-free
// remainder of a line: exactly three whitespace-separated tokens map
// positionally onto the fixed bureau order, a single token is broadcast to
// all three bureaus, and any other count leaves every bureau unset rather
// than guessing. Values are normalized before assignment.
func fanOut(rest string) (values domain.Bureaus[string], ok bool) {
	tokens := strings.Fields(rest)
	switch len(tokens) {
	case 3:
		for i, bureau := range domain.BureauOrder {
			values.Set(bureau, Normalize(tokens[i]))
		}
		return values, true
	case 1:
		v := Normalize(tokens[0])
		for _, bureau := range domain.BureauOrder {
			values.Set(bureau, v)
		}
		return values, true
	default:
		return values, false
	}
}

// extractFields runs one rule table over a slice of lines, merging every
// matched composite line into per-bureau field maps. First matching rule
// per line wins. Empty normalized values are not stored: an absent field
// means an absent key.
func extractFields(lines []string, rules []fieldRule) domain.Bureaus[domain.FieldMap] {
	fields := domain.NewFieldMaps()
	for _, line := range lines {
		for _, rule := range rules {
			rest, ok := matchLabel(line, rule.label)
			if !ok {
				continue
			}
			if values, ok := fanOut(rest); ok {
				for _, bureau := range domain.BureauOrder {
					if v := values.Get(bureau); v != "" {
						fields.Get(bureau)[rule.key] = v
					}
				}
			}
			break
		}
	}
	return fields
}

// stripPercent removes a trailing percent sign so utilization counters
// store bare numbers.
func stripPercent(values domain.Bureaus[string]) domain.Bureaus[string] {
	for _, bureau := range domain.BureauOrder {
		values.Set(bureau, strings.TrimSuffix(values.Get(bureau), "%"))
	}
	return values
}

// extractSummary is extractFields with the summary rule table plus percent
// stripping on utilization values.
func extractSummary(lines []string) domain.Bureaus[domain.FieldMap] {
	summary := domain.NewFieldMaps()
	for _, line := range lines {
		for _, rule := range summaryFieldRules {
			rest, ok := matchLabel(line, rule.label)
			if !ok {
				continue
			}
			if values, ok := fanOut(rest); ok {
				values = stripPercent(values)
				for _, bureau := range domain.BureauOrder {
					if v := values.Get(bureau); v != "" {
						summary.Get(bureau)[rule.key] = v
					}
				}
			}
			break
		}
	}
	return summary
}
