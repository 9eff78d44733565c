package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocateSection(t *testing.T) {
	lines := []string{
		"Personal Information",
		"Name JOHN DOE",
		"Date of Birth 1985",
		"Summary",
		"Total Accounts 5 7 6",
		"Open Accounts: 2 3 2",
		"Account History",
		"CAPITAL ONE",
		"Account # 1234",
		"Creditor Contacts",
		"Page 9 of 9",
	}

	t.Run("personal info stops at summary", func(t *testing.T) {
		body, ok := locateSection(lines, SectionPersonalInfo)
		require.True(t, ok)
		assert.Equal(t, []string{"Name JOHN DOE", "Date of Birth 1985"}, body)
	})

	t.Run("summary stops at account history", func(t *testing.T) {
		body, ok := locateSection(lines, SectionSummary)
		require.True(t, ok)
		assert.Equal(t, []string{"Total Accounts 5 7 6", "Open Accounts: 2 3 2"}, body)
	})

	t.Run("accounts stop at creditor contacts", func(t *testing.T) {
		body, ok := locateSection(lines, SectionAccounts)
		require.True(t, ok)
		assert.Equal(t, []string{"CAPITAL ONE", "Account # 1234"}, body)
	})

	t.Run("missing anchor is not an error", func(t *testing.T) {
		body, ok := locateSection(lines, SectionInquiries)
		assert.False(t, ok)
		assert.Nil(t, body)
	})

	t.Run("unknown section name", func(t *testing.T) {
		_, ok := locateSection(lines, "no_such_section")
		assert.False(t, ok)
	})
}

func TestLocateSectionRunsToDocumentEnd(t *testing.T) {
	lines := []string{
		"Inquiries Creditor Name Date of Inquiry Credit Bureau",
		"CAPITAL ONE  01/15/2024  TransUnion",
		"DISCOVER  02/20/2024  Experian",
	}
	body, ok := locateSection(lines, SectionInquiries)
	require.True(t, ok)
	assert.Len(t, body, 2)
}

func TestLocateSectionStopsAtPageFooter(t *testing.T) {
	lines := []string{
		"Summary",
		"Total Accounts 5 7 6",
		"Page 2 of 9",
		"Balances: $100 $200 $300",
	}
	body, ok := locateSection(lines, SectionSummary)
	require.True(t, ok)
	assert.Equal(t, []string{"Total Accounts 5 7 6"}, body)
}

func TestAccountWindowFallsBackToWholeDocument(t *testing.T) {
	lines := []string{"CAPITAL ONE", "Account # 1234"}
	assert.Equal(t, lines, accountWindow(lines))
}
