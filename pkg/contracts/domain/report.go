package domain

import (
	"encoding/json"
	"fmt"
)

// Bureau identifies one of the three credit reporting agencies whose data
// appears in parallel columns throughout a tri-bureau report.
type Bureau string

const (
	BureauTransUnion Bureau = "transunion"
	BureauExperian   Bureau = "experian"
	BureauEquifax    Bureau = "equifax"
)

// BureauOrder is the fixed left-to-right column order used by the source
// documents. Every positional assignment in the parser follows this order.
var BureauOrder = [3]Bureau{BureauTransUnion, BureauExperian, BureauEquifax}

// ValidBureau reports whether s names one of the three bureaus.
func ValidBureau(s string) bool {
	switch Bureau(s) {
	case BureauTransUnion, BureauExperian, BureauEquifax:
		return true
	}
	return false
}

// FieldMap is an open mapping of field name to normalized string value.
// A field the document does not report is absent from the map, never
// present with an empty placeholder.
type FieldMap map[string]string

// Bureaus holds exactly one value per bureau. All three keys are always
// present in the serialized form, never four, never fewer.
type Bureaus[T any] struct {
	TransUnion T `json:"transunion"`
	Experian   T `json:"experian"`
	Equifax    T `json:"equifax"`
}

// Get returns the value stored for the given bureau.
func (b Bureaus[T]) Get(bureau Bureau) T {
	switch bureau {
	case BureauExperian:
		return b.Experian
	case BureauEquifax:
		return b.Equifax
	default:
		return b.TransUnion
	}
}

// Set stores v under the given bureau.
func (b *Bureaus[T]) Set(bureau Bureau, v T) {
	switch bureau {
	case BureauTransUnion:
		b.TransUnion = v
	case BureauExperian:
		b.Experian = v
	case BureauEquifax:
		b.Equifax = v
	}
}

// NewFieldMaps returns a Bureaus with an initialized empty map per bureau.
func NewFieldMaps() Bureaus[FieldMap] {
	return Bureaus[FieldMap]{
		TransUnion: FieldMap{},
		Experian:   FieldMap{},
		Equifax:    FieldMap{},
	}
}

// HistorySlots is the fixed size of the two-year payment history grid.
const HistorySlots = 24

// NoDataStatus is the default status for a month slot no bureau reported.
const NoDataStatus = "NO DATA"

// NoneReportedSentinel replaces the entire grid when a bureau explicitly
// reports that no payment history exists for the tradeline.
const NoneReportedSentinel = "NONE REPORTED"

// PaymentHistory is a right-aligned 24-slot month/status grid for one
// bureau, or the NONE REPORTED sentinel when the bureau reports no history.
// The zero value means the bureau never appeared in the history block.
type PaymentHistory struct {
	Months       []string `json:"months"`
	Statuses     []string `json:"statuses"`
	NoneReported bool     `json:"-"`
}

// IsZero reports whether no history was found for the bureau at all.
func (h PaymentHistory) IsZero() bool {
	return !h.NoneReported && len(h.Months) == 0 && len(h.Statuses) == 0
}

// MarshalJSON serializes the sentinel case as the literal "NONE REPORTED"
// string, an absent history as null, and a populated grid as an object.
func (h PaymentHistory) MarshalJSON() ([]byte, error) {
	if h.NoneReported {
		return json.Marshal(NoneReportedSentinel)
	}
	if h.IsZero() {
		return []byte("null"), nil
	}
	type grid struct {
		Months   []string `json:"months"`
		Statuses []string `json:"statuses"`
	}
	return json.Marshal(grid{Months: h.Months, Statuses: h.Statuses})
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (h *PaymentHistory) UnmarshalJSON(data []byte) error {
	*h = PaymentHistory{}
	if string(data) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != NoneReportedSentinel {
			return fmt.Errorf("unexpected payment history string %q", s)
		}
		h.NoneReported = true
		return nil
	}
	type grid struct {
		Months   []string `json:"months"`
		Statuses []string `json:"statuses"`
	}
	var g grid
	if err := json.Unmarshal(data, &g); err != nil {
		return fmt.Errorf("decode payment history: %w", err)
	}
	h.Months = g.Months
	h.Statuses = g.Statuses
	return nil
}

// Account represents a single tradeline sliced out of the account history
// listing. Per-bureau field maps sit at the top level alongside the
// creditor, matching the shape downstream writers consume.
type Account struct {
	Creditor         string `json:"creditor" validate:"required"`
	Bureaus[FieldMap]
	PaymentHistory Bureaus[PaymentHistory] `json:"payment_history"`
}

// NewAccount creates an account with initialized field maps.
func NewAccount(creditor string) Account {
	return Account{Creditor: creditor, Bureaus: NewFieldMaps()}
}

// Collection represents a collection agency entry. Same shape discipline
// as Account but without payment history.
type Collection struct {
	Agency string `json:"agency" validate:"required"`
	Bureaus[FieldMap]
}

// NewCollection creates a collection with initialized field maps.
func NewCollection(agency string) Collection {
	return Collection{Agency: agency, Bureaus: NewFieldMaps()}
}

// Inquiry is one inquiry row: who pulled the report, when, and at which
// bureau. Collected flat, independent of account association.
type Inquiry struct {
	Creditor string `json:"creditor" validate:"required"`
	Date     string `json:"date"`
	Bureau   string `json:"bureau" validate:"oneof=transunion experian equifax"`
}

// ScoreUnavailable is the default per-bureau score when none is found.
const ScoreUnavailable = "N/A"

// CreditReport is the root aggregate produced once per document. It is
// immutable after assembly completes; downstream writers only read it.
type CreditReport struct {
	PersonalInfo      Bureaus[FieldMap] `json:"personal_info"`
	Summary           Bureaus[FieldMap] `json:"summary"`
	Scores            Bureaus[string]   `json:"scores"`
	PublicInformation Bureaus[FieldMap] `json:"public_information"`
	Accounts          []Account         `json:"accounts"`
	Collections       []Collection      `json:"collections"`
	Inquiries         []Inquiry         `json:"inquiries"`
}

// NewCreditReport creates an empty report with every bureau key present
// and scores at their unavailable default.
func NewCreditReport() *CreditReport {
	return &CreditReport{
		PersonalInfo:      NewFieldMaps(),
		Summary:           NewFieldMaps(),
		PublicInformation: NewFieldMaps(),
		Scores: Bureaus[string]{
			TransUnion: ScoreUnavailable,
			Experian:   ScoreUnavailable,
			Equifax:    ScoreUnavailable,
		},
		Accounts:    []Account{},
		Collections: []Collection{},
		Inquiries:   []Inquiry{},
	}
}
