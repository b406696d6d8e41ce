package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	m, err := NewMoney(decimal.NewFromInt(100), USD)

	assert.NoError(t, err)
	assert.True(t, m.Amount().Equal(decimal.NewFromInt(100)))
	assert.Equal(t, USD, m.Currency())
}

func TestNewMoney_EmptyCurrency(t *testing.T) {
	_, err := NewMoney(decimal.NewFromInt(100), "")

	assert.Error(t, err)
}

func TestNewMoneyFromString(t *testing.T) {
	m, err := NewMoneyFromString("1234.5678", EUR)

	assert.NoError(t, err)
	assert.True(t, m.Amount().Equal(decimal.RequireFromString("1234.5678")))
	assert.Equal(t, EUR, m.Currency())
}

func TestNewMoneyFromString_Invalid(t *testing.T) {
	_, err := NewMoneyFromString("not-a-number", USD)

	assert.Error(t, err)
}

func TestCurrency_IsValid(t *testing.T) {
	assert.True(t, USD.IsValid())
	assert.True(t, EUR.IsValid())
	assert.True(t, INR.IsValid())
	assert.False(t, Currency("BTC").IsValid())
	assert.False(t, Currency("").IsValid())
}

func TestMoney_Predicates(t *testing.T) {
	positive, _ := NewMoney(decimal.NewFromInt(10), USD)
	negative, _ := NewMoney(decimal.NewFromInt(-10), USD)
	zero := Zero(USD)

	assert.True(t, positive.IsPositive())
	assert.False(t, positive.IsNegative())
	assert.True(t, negative.IsNegative())
	assert.True(t, zero.IsZero())
	assert.False(t, zero.IsPositive())
}

func TestMoney_Add(t *testing.T) {
	a, _ := NewMoney(decimal.RequireFromString("10.50"), USD)
	b, _ := NewMoney(decimal.RequireFromString("4.25"), USD)

	sum, err := a.Add(b)

	assert.NoError(t, err)
	assert.True(t, sum.Amount().Equal(decimal.RequireFromString("14.75")))
}

func TestMoney_Add_CurrencyMismatch(t *testing.T) {
	a, _ := NewMoney(decimal.NewFromInt(10), USD)
	b, _ := NewMoney(decimal.NewFromInt(10), EUR)

	_, err := a.Add(b)

	assert.Error(t, err)
}

func TestMoney_Subtract(t *testing.T) {
	a, _ := NewMoney(decimal.NewFromInt(100), GBP)
	b, _ := NewMoney(decimal.NewFromInt(30), GBP)

	diff, err := a.Subtract(b)

	assert.NoError(t, err)
	assert.True(t, diff.Amount().Equal(decimal.NewFromInt(70)))
}

func TestMoney_Comparisons(t *testing.T) {
	small, _ := NewMoney(decimal.NewFromInt(10), USD)
	large, _ := NewMoney(decimal.NewFromInt(20), USD)
	foreign, _ := NewMoney(decimal.NewFromInt(10), JPY)

	less, err := small.LessThan(large)
	assert.NoError(t, err)
	assert.True(t, less)

	greater, err := large.GreaterThan(small)
	assert.NoError(t, err)
	assert.True(t, greater)

	_, err = small.LessThan(foreign)
	assert.Error(t, err)

	assert.True(t, small.Equals(small))
	assert.False(t, small.Equals(foreign))
}

func TestMoney_String(t *testing.T) {
	m, _ := NewMoney(decimal.RequireFromString("1234.5"), USD)

	assert.Equal(t, "1234.50 USD", m.String())
}

func TestMoney_JSONRoundTrip(t *testing.T) {
	m, _ := NewMoney(decimal.RequireFromString("99.99"), SGD)

	data, err := json.Marshal(m)
	require.NoError(t, err)

	var decoded Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, m.Equals(decoded))
}

func TestMoney_Scan(t *testing.T) {
	var m Money
	require.NoError(t, m.Scan("123.45"))

	assert.True(t, m.Amount().Equal(decimal.RequireFromString("123.45")))
	assert.Equal(t, DefaultCurrency, m.Currency())
}

func TestMoney_Scan_Nil(t *testing.T) {
	var m Money
	require.NoError(t, m.Scan(nil))

	assert.True(t, m.IsZero())
}
