package utils

import (
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in       time.Duration
		expected string
	}{
		{500 * time.Microsecond, "500.00µs"},
		{250 * time.Millisecond, "250.00ms"},
		{1500 * time.Millisecond, "1.50s"},
		{125 * time.Second, "2m5s"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatDuration(tt.in))
	}
}

func TestFormatEther(t *testing.T) {
	assert.Equal(t, "0.01", FormatEther(big.NewInt(10000000000000000)))
	assert.Equal(t, "0.0001", FormatEther(big.NewInt(100000000000000)))
	assert.Equal(t, "0", FormatEther(big.NewInt(0)))
	assert.Equal(t, "0", FormatEther(nil))
}

func TestFormatUnits(t *testing.T) {
	price, _ := new(big.Int).SetString("200000000000000000000", 10)
	assert.Equal(t, "200", FormatUnits(price, 18))
	assert.Equal(t, "1.5", FormatUnits(big.NewInt(150000000), 8))
}
