package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperationRecord_UnmarshalAppliesDefaults(t *testing.T) {
	raw := `{"operationType":"DIVIDEND","date":"2025-04-01","checksum":"0a1b2c3d","dividendPerShare":0.25,"applicableShares":100}`

	var rec OperationRecord
	require.NoError(t, json.Unmarshal([]byte(raw), &rec))
	assert.Equal(t, OpDividend, rec.OperationType)
	assert.Equal(t, 1.0, rec.ExchangeRate)
	assert.Equal(t, 0.0, rec.Taxes)
	require.NoError(t, rec.Validate())
}

func TestOperationRecord_MarshalOmitsForeignFields(t *testing.T) {
	rec := OperationRecord{
		OperationType: OpBuy,
		Date:          "2025-01-15",
		Checksum:      "deadbeef",
		Shares:        10,
		PricePerShare: 50,
		Fees:          5,
	}
	data, err := json.Marshal(rec)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.NotContains(t, fields, "taxes")
	assert.NotContains(t, fields, "dividendPerShare")
	assert.NotContains(t, fields, "splitRatio")
	assert.Equal(t, 10.0, fields["shares"])
}

func TestOperationRecord_Validate(t *testing.T) {
	tests := []struct {
		name string
		rec  OperationRecord
		ok   bool
	}{
		{
			"valid buy",
			OperationRecord{OperationType: OpBuy, Date: "2025-01-15", Checksum: "deadbeef", Shares: 10, PricePerShare: 50},
			true,
		},
		{
			"buy without shares",
			OperationRecord{OperationType: OpBuy, Date: "2025-01-15", Checksum: "deadbeef", PricePerShare: 50},
			false,
		},
		{
			"sell with negative taxes",
			OperationRecord{OperationType: OpSell, Date: "2025-01-15", Checksum: "deadbeef", Shares: 5, PricePerShare: 60, Taxes: -1},
			false,
		},
		{
			"dividend without applicable shares",
			OperationRecord{OperationType: OpDividend, Date: "2025-01-15", Checksum: "deadbeef", DividendPerShare: 0.5, ExchangeRate: 1},
			false,
		},
		{
			"valid split",
			OperationRecord{OperationType: OpSplit, Date: "2025-01-15", Checksum: "deadbeef", SplitRatio: 4},
			true,
		},
		{
			"split without ratio",
			OperationRecord{OperationType: OpSplit, Date: "2025-01-15", Checksum: "deadbeef"},
			false,
		},
		{
			"bad checksum format",
			OperationRecord{OperationType: OpBuy, Date: "2025-01-15", Checksum: "DEADBEEF", Shares: 10, PricePerShare: 50},
			false,
		},
		{
			"bad date format",
			OperationRecord{OperationType: OpBuy, Date: "15.01.2025", Checksum: "deadbeef", Shares: 10, PricePerShare: 50},
			false,
		},
		{
			"unknown operation type",
			OperationRecord{OperationType: "TRANSFER", Date: "2025-01-15", Checksum: "deadbeef"},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rec.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestSnapshot_Validate(t *testing.T) {
	snap := NewSnapshot()
	snap.Securities = append(snap.Securities, validSecurity())
	snap.Operations["US0378331005"] = []OperationRecord{
		{OperationType: OpBuy, Date: "2025-01-15", Checksum: "deadbeef", Shares: 10, PricePerShare: 50},
	}
	require.NoError(t, snap.Validate())

	snap.Operations["US0378331005"][0].Shares = 0
	assert.Error(t, snap.Validate())
}

func TestTaxData_Rate(t *testing.T) {
	var td *TaxData
	_, ok := td.Rate("US")
	assert.False(t, ok)

	td = &TaxData{WithholdingTax: map[string]float64{"US": 0.15}}
	rate, ok := td.Rate("US")
	require.True(t, ok)
	assert.Equal(t, 0.15, rate)

	assert.NoError(t, td.Validate())
	td.WithholdingTax["XX"] = 1.5
	assert.Error(t, td.Validate())
}
