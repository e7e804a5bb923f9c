package format

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurrency(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  string
	}{
		{name: "zero is canonical", value: 0, want: "R$ 0,00"},
		{name: "thousands grouping", value: 1234.5, want: "R$ 1.234,50"},
		{name: "millions", value: 1234567.89, want: "R$ 1.234.567,89"},
		{name: "small amount", value: 42, want: "R$ 42,00"},
		{name: "three digits", value: 999.99, want: "R$ 999,99"},
		{name: "four digits", value: 1000, want: "R$ 1.000,00"},
		{name: "negative", value: -1234.5, want: "-R$ 1.234,50"},
		{name: "nan renders as zero", value: math.NaN(), want: "R$ 0,00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Currency(tt.value))
		})
	}
}

func TestCurrencyPtr(t *testing.T) {
	assert.Equal(t, "R$ 0,00", CurrencyPtr(nil))
	v := 1234.5
	assert.Equal(t, "R$ 1.234,50", CurrencyPtr(&v))
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  string
	}{
		{name: "rounds to one decimal", value: 12.34, want: "12,3%"},
		{name: "rounds half up", value: 12.36, want: "12,4%"},
		{name: "zero", value: 0, want: "0,0%"},
		{name: "negative", value: -20.0, want: "-20,0%"},
		{name: "whole number", value: 70, want: "70,0%"},
		{name: "nan renders as zero", value: math.NaN(), want: "0,0%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Percentage(tt.value))
		})
	}
}

func TestPercentagePtr(t *testing.T) {
	assert.Equal(t, "0,0%", PercentagePtr(nil))
	v := 12.34
	assert.Equal(t, "12,3%", PercentagePtr(&v))
}
