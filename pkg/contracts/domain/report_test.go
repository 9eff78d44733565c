package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBureausGetSet(t *testing.T) {
	var b Bureaus[string]
	b.Set(BureauTransUnion, "a")
	b.Set(BureauExperian, "b")
	b.Set(BureauEquifax, "c")

	assert.Equal(t, "a", b.Get(BureauTransUnion))
	assert.Equal(t, "b", b.Get(BureauExperian))
	assert.Equal(t, "c", b.Get(BureauEquifax))
}

func TestBureausJSONAlwaysThreeKeys(t *testing.T) {
	data, err := json.Marshal(NewFieldMaps())
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Len(t, m, 3)
	assert.Contains(t, m, "transunion")
	assert.Contains(t, m, "experian")
	assert.Contains(t, m, "equifax")
}

func TestPaymentHistoryJSON(t *testing.T) {
	tests := []struct {
		name    string
		history PaymentHistory
		want    string
	}{
		{
			name:    "sentinel",
			history: PaymentHistory{NoneReported: true},
			want:    `"NONE REPORTED"`,
		},
		{
			name:    "absent",
			history: PaymentHistory{},
			want:    `null`,
		},
		{
			name: "populated",
			history: PaymentHistory{
				Months:   []string{"Jan", "Feb"},
				Statuses: []string{"OK", "30"},
			},
			want: `{"months":["Jan","Feb"],"statuses":["OK","30"]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.history)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(data))

			var back PaymentHistory
			require.NoError(t, json.Unmarshal(data, &back))
			assert.Equal(t, tt.history.NoneReported, back.NoneReported)
			assert.Equal(t, tt.history.Months, back.Months)
		})
	}
}

func TestPaymentHistoryUnmarshalRejectsUnknownString(t *testing.T) {
	var h PaymentHistory
	err := h.UnmarshalJSON([]byte(`"SOMETHING ELSE"`))
	assert.Error(t, err)
}

func TestAccountJSONShape(t *testing.T) {
	acct := NewAccount("CAPITAL ONE")
	acct.TransUnion["balance_owed"] = "100"

	data, err := json.Marshal(acct)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Equal(t, "CAPITAL ONE", m["creditor"])
	assert.Contains(t, m, "transunion")
	assert.Contains(t, m, "experian")
	assert.Contains(t, m, "equifax")
	assert.Contains(t, m, "payment_history")
}

func TestNewCreditReportDefaults(t *testing.T) {
	r := NewCreditReport()
	assert.Equal(t, ScoreUnavailable, r.Scores.TransUnion)
	assert.Equal(t, ScoreUnavailable, r.Scores.Experian)
	assert.Equal(t, ScoreUnavailable, r.Scores.Equifax)
	assert.NotNil(t, r.PersonalInfo.TransUnion)
	assert.Empty(t, r.Accounts)
}

func TestValidBureau(t *testing.T) {
	assert.True(t, ValidBureau("transunion"))
	assert.True(t, ValidBureau("experian"))
	assert.True(t, ValidBureau("equifax"))
	assert.False(t, ValidBureau("innovis"))
	assert.False(t, ValidBureau(""))
}
