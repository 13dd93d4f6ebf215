package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsIBAN(t *testing.T) {
	tests := []struct {
		name  string
		iban  string
		valid bool
	}{
		{"Valid German IBAN", "DE89370400440532013000", true},
		{"Valid with spaces", "GB82 WEST 1234 5698 7654 32", true},
		{"Valid lowercase", "de89370400440532013000", true},
		{"Bad checksum", "DE89370400440532013001", false},
		{"Too short", "DE8937", false},
		{"Digits where country expected", "1289370400440532013000", false},
		{"Illegal characters", "DE89-3704-0044-0532-0130", false},
		{"Empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsIBAN(tt.iban))
		})
	}
}
