package money

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "integer", input: "1000", want: "1000.00"},
		{name: "two decimals", input: "9999.99", want: "9999.99"},
		{name: "one decimal", input: "10.5", want: "10.50"},
		{name: "trailing zeros beyond scale", input: "10.500", want: "10.50"},
		{name: "surrounding spaces", input: " 42.10 ", want: "42.10"},
		{name: "too precise", input: "10.005", wantErr: ErrPrecision},
		{name: "not a number", input: "ten", wantErr: ErrInvalid},
		{name: "empty", input: "", wantErr: ErrInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestMoney_Arithmetic(t *testing.T) {
	a := MustParse("1000.00")
	b := MustParse("0.10")

	assert.Equal(t, "1000.10", a.Add(b).String())

	diff, err := a.Sub(b)
	require.NoError(t, err)
	assert.Equal(t, "999.90", diff.String())

	_, err = b.Sub(a)
	assert.ErrorIs(t, err, ErrNegativeBalance)

	assert.Equal(t, "-999.90", b.Delta(a).String())
}

func TestMoney_NoFloatingPointDrift(t *testing.T) {
	sum := Zero
	for i := 0; i < 10; i++ {
		sum = sum.Add(MustParse("0.10"))
	}
	assert.True(t, sum.Equal(MustParse("1.00")), "0.10 added ten times must equal 1.00 exactly")
}

func TestMoney_Compare(t *testing.T) {
	limit := MustParse("10000.00")

	assert.Equal(t, 0, limit.Cmp(MustParse("10000")))
	assert.Equal(t, -1, MustParse("9999.99").Cmp(limit))
	assert.Equal(t, 1, MustParse("10000.01").Cmp(limit))
	assert.True(t, MustParse("9999.99").LessThan(limit))
	assert.True(t, MustParse("10050").GreaterThan(limit))
	assert.False(t, limit.LessThan(limit))
}

func TestMoney_PercentOf(t *testing.T) {
	tests := []struct {
		name    string
		balance string
		pct     string
		want    string
	}{
		{name: "ninety percent of thousand", balance: "1000.00", pct: "0.90", want: "900.00"},
		{name: "rounds half up", balance: "100.05", pct: "0.90", want: "90.05"},
		{name: "rounds down below half", balance: "100.01", pct: "0.90", want: "90.01"},
		{name: "zero balance", balance: "0", pct: "0.90", want: "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MustParse(tt.balance).PercentOf(decimal.RequireFromString(tt.pct))
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestMoney_Cents(t *testing.T) {
	assert.Equal(t, int64(123456), MustParse("1234.56").Cents())
	assert.Equal(t, "1234.56", FromCents(123456).String())
}

func TestMoney_JSON(t *testing.T) {
	var payload struct {
		Amount Money `json:"amount"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"amount":"1000.00"}`), &payload))
	assert.Equal(t, "1000.00", payload.Amount.String())

	require.NoError(t, json.Unmarshal([]byte(`{"amount":2000.5}`), &payload))
	assert.Equal(t, "2000.50", payload.Amount.String())

	assert.Error(t, json.Unmarshal([]byte(`{"amount":"1.234"}`), &payload))

	out, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"2000.50"}`, string(out))
}

func TestMoney_SQL(t *testing.T) {
	m := MustParse("15.20")

	v, err := m.Value()
	require.NoError(t, err)
	assert.Equal(t, "15.20", v)

	var scanned Money
	require.NoError(t, scanned.Scan([]byte("15.20")))
	assert.True(t, scanned.Equal(m))

	require.NoError(t, scanned.Scan("7"))
	assert.Equal(t, "7.00", scanned.String())
}
