package parsing

import (
	"regexp"
	"strings"

	"creditcli/pkg/contracts/domain"
)

// historyState tracks progress through one account's two-year history
// block: find the header, find a bureau, accumulate that bureau's tokens,
// repeat until the block ends.
type historyState int

const (
	seekingHeader historyState = iota
	seekingBureau
	accumulating
)

var (
	historyHeaderRe = regexp.MustCompile(`(?i)two[- ]year payment history`)

	// Month tokens: three-letter abbreviations and 'YY year shorthand.
	monthTokenRe = regexp.MustCompile(`(?i)\b(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)\b|'\d{2}`)

	// Status vocabulary. Longer alternatives come first so COLLECTION wins
	// over CO and NO DATA over NO.
	statusTokenRe = regexp.MustCompile(`\b(COLLECTION|NO DATA|OK|30|60|90|120|150|CO|NO)\b`)

	noneReportedRe = regexp.MustCompile(`(?i)none reported|no history`)

	// historyTerminators end the whole block regardless of state.
	historyTerminators = regexp.MustCompile(`(?i)days late|creditor contacts|account history`)
)

// bureauToken returns the bureau named on the line, skipping scorecard
// headers that also mention a score.
func bureauToken(line string) (domain.Bureau, bool) {
	lower := strings.ToLower(line)
	if strings.Contains(lower, "score") {
		return "", false
	}
	for _, bureau := range domain.BureauOrder {
		if strings.Contains(lower, string(bureau)) {
			return bureau, true
		}
	}
	return "", false
}

// historyAccumulator buffers one bureau's tokens until finalization.
type historyAccumulator struct {
	months   []string
	statuses []string
}

func (a *historyAccumulator) consume(line string) {
	for _, m := range monthTokenRe.FindAllString(line, -1) {
		a.months = append(a.months, m)
	}
	for _, s := range statusTokenRe.FindAllString(line, -1) {
		if s == "NO" {
			s = domain.NoDataStatus
		}
		a.statuses = append(a.statuses, s)
	}
}

func (a *historyAccumulator) empty() bool {
	return len(a.months) == 0 && len(a.statuses) == 0
}

// finalize right-aligns the most recent 24 months and statuses into the
// fixed grid. Older excess is discarded; unfilled leading slots stay empty
// for months and NO DATA for statuses, so a month/status length mismatch
// pads out instead of failing.
func (a *historyAccumulator) finalize() domain.PaymentHistory {
	months := make([]string, domain.HistorySlots)
	statuses := make([]string, domain.HistorySlots)
	for i := range statuses {
		statuses[i] = domain.NoDataStatus
	}

	fillRight(months, a.months)
	fillRight(statuses, a.statuses)
	return domain.PaymentHistory{Months: months, Statuses: statuses}
}

// fillRight copies the last len(dst) items of src into dst, right-aligned.
func fillRight(dst, src []string) {
	if len(src) > len(dst) {
		src = src[len(src)-len(dst):]
	}
	copy(dst[len(dst)-len(src):], src)
}

// extractPaymentHistories runs the state machine over one account's lines
// and returns the per-bureau grids. An account without the history header
// keeps all three bureaus at their zero value; that is not an error.
func extractPaymentHistories(lines []string) domain.Bureaus[domain.PaymentHistory] {
	var histories domain.Bureaus[domain.PaymentHistory]

	state := seekingHeader
	var current domain.Bureau
	var acc historyAccumulator

	store := func() {
		if !acc.empty() {
			histories.Set(current, acc.finalize())
		}
		acc = historyAccumulator{}
	}

	for _, line := range lines {
		switch state {
		case seekingHeader:
			if historyHeaderRe.MatchString(line) {
				state = seekingBureau
			}

		case seekingBureau:
			if historyTerminators.MatchString(line) {
				return histories
			}
			if bureau, ok := bureauToken(line); ok {
				current = bureau
				acc = historyAccumulator{}
				state = accumulating
			}

		case accumulating:
			if historyTerminators.MatchString(line) {
				store()
				return histories
			}
			if noneReportedRe.MatchString(line) {
				histories.Set(current, domain.PaymentHistory{NoneReported: true})
				acc = historyAccumulator{}
				state = seekingBureau
				continue
			}
			if bureau, ok := bureauToken(line); ok {
				store()
				current = bureau
				state = accumulating
				continue
			}
			acc.consume(line)
		}
	}

	if state == accumulating {
		store()
	}
	return histories
}
