package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsCreditorAnchor(t *testing.T) {
	lines := []string{
		"CAPITAL ONE",
		"Account # 1234 5678 9012",
		"SOME RANDOM SHOUTING",
		"nothing account-like follows this line",
		"even twelve lines later there is still no marker",
	}

	assert.True(t, isCreditorAnchor(lines, 0))
	assert.False(t, isCreditorAnchor(lines, 2), "no marker in lookahead window")
}

func TestIsCreditorAnchorRejections(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{name: "contains digits", line: "ROUTE 66 FUNDING"},
		{name: "lowercase", line: "Capital One"},
		{name: "too long", line: "THIS CREDITOR NAME IS WAY TOO LONG TO BE AN ANCHOR LINE AT ALL"},
		{name: "bureau name", line: "TRANSUNION"},
		{name: "section heading", line: "ACCOUNT HISTORY"},
		{name: "inquiries heading", line: "INQUIRIES"},
		{name: "empty", line: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := []string{tt.line, "Account # 1234"}
			assert.False(t, isCreditorAnchor(lines, 0))
		})
	}
}

func TestSegmentAccounts(t *testing.T) {
	lines := []string{
		"CAPITAL ONE",
		"Account # 1111 2222 3333",
		"Balance Owed: $100 $200 $300",
		"DISCOVER BANK",
		"Account # 4444 5555 6666",
		"High Balance: $900 $900 $900",
		"Creditor Contacts",
		"CAPITAL ONE N.A.",
	}

	sections := segmentAccounts(lines)
	require.Len(t, sections, 2)
	assert.Equal(t, "CAPITAL ONE", sections[0][0])
	assert.Len(t, sections[0], 3)
	assert.Equal(t, "DISCOVER BANK", sections[1][0])
	assert.Len(t, sections[1], 3)
}

func TestSegmentAccountsClosesAtPageFooter(t *testing.T) {
	lines := []string{
		"CAPITAL ONE",
		"Account # 1111 2222 3333",
		"Page 4 of 9",
		"Balance Owed: $100 $200 $300",
	}
	sections := segmentAccounts(lines)
	require.Len(t, sections, 1)
	assert.Len(t, sections[0], 2)
}

func TestSegmentAccountsEmptyInput(t *testing.T) {
	assert.Empty(t, segmentAccounts(nil))
	assert.Empty(t, segmentAccounts([]string{"nothing here", "at all"}))
}

func TestSegmentCollections(t *testing.T) {
	lines := []string{
		"PORTFOLIO RECOVERY Collection",
		"Account # 777 777 777",
		"Balance Owed: $50 $50 $50",
		"",
		"MIDLAND FUNDING Collection",
		"Account # 888 888 888",
		"Page 7 of 9",
	}

	sections := segmentCollections(lines)
	require.Len(t, sections, 2)
	assert.Equal(t, "PORTFOLIO RECOVERY Collection", sections[0][0])
	assert.Len(t, sections[0], 3)
	assert.Equal(t, "MIDLAND FUNDING Collection", sections[1][0])
	assert.Len(t, sections[1], 2)
}

func TestSegmentAccountsClosesAtCollectionAnchor(t *testing.T) {
	lines := []string{
		"CAPITAL ONE",
		"Account # 1111 2222 3333",
		"PORTFOLIO RECOVERY Collection",
		"Account # 777 777 777",
	}
	sections := segmentAccounts(lines)
	require.Len(t, sections, 1)
	assert.Equal(t, []string{"CAPITAL ONE", "Account # 1111 2222 3333"}, sections[0])
}

func TestSegmentCollectionsIgnoresSummaryCounter(t *testing.T) {
	sections := segmentCollections([]string{"Collection: 0 1 0"})
	assert.Empty(t, sections)
}
