package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthHelpers(t *testing.T) {
	assert.True(t, IsValidMonth("January"))
	assert.True(t, IsValidMonth("December"))
	assert.False(t, IsValidMonth("january"))
	assert.False(t, IsValidMonth("Jan"))

	assert.Equal(t, 0, MonthIndex("January"))
	assert.Equal(t, 11, MonthIndex("December"))
	assert.Equal(t, -1, MonthIndex("Smarch"))
}

func TestFeeRecordMarkAsPaid(t *testing.T) {
	fee := &FeeRecord{Status: FeePending, Amount: decimal.NewFromInt(3000)}
	require.True(t, fee.IsPending())

	fee.MarkAsPaid("CH-2026-03-1001")
	assert.Equal(t, FeePaid, fee.Status)
	assert.False(t, fee.IsPending())
	require.NotNil(t, fee.PaymentDate)
	require.NotNil(t, fee.ChallanNumber)
	assert.Equal(t, "CH-2026-03-1001", *fee.ChallanNumber)

	// Without a challan the existing value is left alone.
	fee2 := &FeeRecord{Status: FeePending}
	fee2.MarkAsPaid("")
	assert.Nil(t, fee2.ChallanNumber)
}

func TestStudentContactHelpers(t *testing.T) {
	s := &Student{}
	assert.False(t, s.HasEmail())
	assert.False(t, s.HasPhone())

	s.Email = "a@college.test"
	s.Phone = "0300-1234567"
	assert.True(t, s.HasEmail())
	assert.True(t, s.HasPhone())
}

func TestStudentPendingFees(t *testing.T) {
	s := &Student{FeeRecords: []*FeeRecord{
		{Status: FeePending, Amount: decimal.NewFromInt(3000)},
		{Status: FeePaid, Amount: decimal.NewFromInt(3000)},
		{Status: FeePending, Amount: decimal.NewFromInt(4000)},
	}}

	pending := s.PendingFees()
	require.Len(t, pending, 2)
	for _, f := range pending {
		assert.Equal(t, FeePending, f.Status)
	}
}

func TestCustomTimeJSON(t *testing.T) {
	ct := CustomTime{Time: time.Date(2026, 3, 10, 15, 4, 5, 0, time.UTC)}
	out, err := json.Marshal(ct)
	require.NoError(t, err)
	assert.Equal(t, `"2026-03-10"`, string(out))

	var parsed CustomTime
	require.NoError(t, json.Unmarshal([]byte(`"2026-08-01"`), &parsed))
	assert.Equal(t, 2026, parsed.Year())
	assert.Equal(t, time.August, parsed.Month())

	require.NoError(t, json.Unmarshal([]byte(`null`), &parsed))
	assert.True(t, parsed.IsZero())
}
