package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	for _, in := range []string{
		"2025-03-10",
		" 2025-03-10 ",
		"2025-03-10T00:00:00Z",
		"2025-03-10T18:30:00+03:00",
		"2025-03-10T09:15:00",
		"2025-03-10 09:15:00",
	} {
		d, err := ParseDate(in)
		require.NoError(t, err, in)
		assert.Equal(t, "2025-03-10", d.String(), in)
	}

	for _, in := range []string{"", "10/03/2025", "2025-02-30", "tomorrow"} {
		_, err := ParseDate(in)
		assert.ErrorIs(t, err, ErrInvalidDate, in)
	}
}

func TestDateArithmetic(t *testing.T) {
	a := NewDate(2025, time.February, 27)
	b := NewDate(2025, time.March, 2)

	assert.Equal(t, 3, a.DaysUntil(b))
	assert.Equal(t, -3, b.DaysUntil(a))
	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
}

func TestDateJSON(t *testing.T) {
	var payload struct {
		Start Date `json:"start"`
		End   Date `json:"end"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"start":"2025-03-10","end":null}`), &payload))
	assert.Equal(t, "2025-03-10", payload.Start.String())
	assert.True(t, payload.End.IsZero())

	out, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"start":"2025-03-10","end":null}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"start":"03/10/2025"}`), &payload))
}
