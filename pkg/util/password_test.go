package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPIN(t *testing.T) {
	tests := []struct {
		name string
		pin  string
	}{
		{name: "Numeric PIN", pin: "4821"},
		{name: "Empty PIN", pin: ""}, // bcrypt can hash empty strings
		{name: "Passphrase", pin: "correct horse battery staple"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPIN(tt.pin)
			require.NoError(t, err)
			assert.NotEqual(t, tt.pin, hash)
			assert.Contains(t, hash, "$2a$")
			assert.True(t, VerifyPINHash(hash, tt.pin))
		})
	}
}

func TestVerifyPINHash(t *testing.T) {
	hash, err := HashPIN("4821")
	require.NoError(t, err)

	tests := []struct {
		name   string
		hashed string
		pin    string
		want   bool
	}{
		{name: "Correct PIN", hashed: hash, pin: "4821", want: true},
		{name: "Wrong PIN", hashed: hash, pin: "1111", want: false},
		{name: "Empty PIN", hashed: hash, pin: "", want: false},
		{name: "Invalid hash", hashed: "not-a-hash", pin: "4821", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VerifyPINHash(tt.hashed, tt.pin))
		})
	}
}

func TestComparePIN(t *testing.T) {
	assert.True(t, ComparePIN("4821", "4821"))
	assert.False(t, ComparePIN("4821", "48210"))
	assert.False(t, ComparePIN("4821", ""))
	assert.False(t, ComparePIN("", ""))
}
