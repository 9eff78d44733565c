package pdfdoc

import (
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupRowsOrdersTopDown(t *testing.T) {
	texts := []pdf.Text{
		{S: "lower", X: 10, Y: 100, W: 30},
		{S: "upper", X: 10, Y: 700, W: 30},
		{S: "right", X: 60, Y: 700.5, W: 30},
		{S: "   ", X: 90, Y: 700, W: 5},
	}

	rows := groupRows(texts)
	require.Len(t, rows, 2)
	assert.Equal(t, "upper", rows[0].fragments[0].S)
	assert.Equal(t, "right", rows[0].fragments[1].S)
	assert.Equal(t, "lower", rows[1].fragments[0].S)
}

func TestMergeFragments(t *testing.T) {
	fragments := []pdf.Text{
		{S: "CAP", X: 10, W: 15},
		{S: "ITAL", X: 25.2, W: 20},
		{S: "ONE", X: 60, W: 18},
	}

	words := mergeFragments(fragments)
	require.Len(t, words, 2)
	assert.Equal(t, "CAPITAL", words[0].text)
	assert.Equal(t, "ONE", words[1].text)
	assert.Equal(t, 10.0, words[0].x)
}

func TestJoinRowColumnGaps(t *testing.T) {
	words := []word{
		{text: "Balance", x: 10, endX: 45},
		{text: "Owed:", x: 47, endX: 70},
		{text: "100", x: 200, endX: 215},
		{text: "200", x: 300, endX: 315},
	}
	assert.Equal(t, "Balance Owed:  100  200", joinRow(words))
}

func TestExtractMissingFile(t *testing.T) {
	_, err := Extract("testdata/does-not-exist.pdf")
	assert.Error(t, err)
}
