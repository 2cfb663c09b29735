// Package vnd provides display-safe arithmetic for Vietnamese đồng amounts.
// VND has no minor unit, so values are whole đồng; decimal handles the
// float-to-integer rounding and go-money the locale formatting.
package vnd

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money is a VND amount in whole đồng.
type Money struct {
	m *money.Money
}

// Zero is the zero đồng amount.
func Zero() Money {
	return Money{m: money.New(0, money.VND)}
}

// FromFloat rounds a floating amount to whole đồng.
func FromFloat(v float64) Money {
	return Money{m: money.New(decimal.NewFromFloat(v).Round(0).IntPart(), money.VND)}
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	sum, err := m.m.Add(other.m)
	if err != nil {
		// Both operands are VND by construction; Add only fails on a
		// currency mismatch.
		return m
	}
	return Money{m: sum}
}

// Amount returns the value in whole đồng.
func (m Money) Amount() int64 {
	return m.m.Amount()
}

// Display formats the amount with the VND symbol and grouping separators.
func (m Money) Display() string {
	return m.m.Display()
}

// Sum totals a slice of floating amounts into whole đồng.
func Sum(values []float64) Money {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(decimal.NewFromFloat(v))
	}
	return Money{m: money.New(total.Round(0).IntPart(), money.VND)}
}
