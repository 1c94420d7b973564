package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEditDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"stripe", "stripe", 0},
		{"stripe", "stripey", 1},
		{"kitten", "sitting", 3},
		{"café", "cafe", 1},
	}
	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, EditDistance(tt.a, tt.b))
			assert.Equal(t, tt.want, EditDistance(tt.b, tt.a))
		})
	}
}

func TestPhoneticKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"a", "a"},
		{"Phone", "fn"},
		{"Knight", "ngt"},
		{"stripe", "strp"},
		{"stripey", "strp"},
		{"Lyft", "lft"},
		{"apple", "appl"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, PhoneticKey(tt.in))
		})
	}
}

func TestPhoneticKey_KeepsLeadingVowel(t *testing.T) {
	assert.Equal(t, "ubr", PhoneticKey("uber"))
}

func TestSharedPrefixRatio(t *testing.T) {
	assert.Equal(t, 0.0, SharedPrefixRatio("", "stripe"))
	assert.Equal(t, 0.0, SharedPrefixRatio("stripe", ""))
	assert.Equal(t, 1.0, SharedPrefixRatio("zoom", "zoom"))
	assert.InDelta(t, 0.5, SharedPrefixRatio("abcd", "abxy"), 1e-9)
	assert.InDelta(t, 6.0/7.0, SharedPrefixRatio("stripe", "stripey"), 1e-9)
	assert.Equal(t, 0.0, SharedPrefixRatio("slack", "zoom"))
}
