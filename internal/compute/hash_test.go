package compute

import (
	"math"
	"math/big"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

var hexDigest = regexp.MustCompile(`^[0-9a-f]{16}$`)

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name       string
		password   string
		iterations uint32
		want       string
	}{
		{"empty, zero iterations", "", 0, "0000000000000000"},
		{"empty, many iterations", "", 1000, "0000000000000000"},
		{"empty, max iterations", "", math.MaxUint32, "0000000000000000"},
		{"zero iterations", "secret", 0, "0000000000000000"},
		{"single byte", "a", 1, "0000000000000061"},
		{"two bytes", "ab", 1, "0000000000000c22"},
		{"two bytes twice", "ab", 2, "00000000002d97c4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HashPassword(tt.password, tt.iterations))
		})
	}
}

func TestHashPasswordFormat(t *testing.T) {
	inputs := []string{"", "a", "password", "pässwörd", "🔑🔑🔑", strings.Repeat("x", 4096)}
	for _, in := range inputs {
		for _, iters := range []uint32{0, 1, 7, 1000} {
			got := HashPassword(in, iters)
			assert.Regexp(t, hexDigest, got, "HashPassword(%q, %d)", in, iters)
			assert.Equal(t, got, HashPassword(in, iters), "not deterministic")
		}
	}
}

func TestHashPasswordMatchesModularReference(t *testing.T) {
	mod := new(big.Int).Lsh(big.NewInt(1), 64)
	thirtyOne := big.NewInt(31)

	reference := func(data []byte, iterations uint32) uint64 {
		acc := new(big.Int)
		for iter := uint32(0); iter < iterations; iter++ {
			for i, b := range data {
				acc.Mul(acc, thirtyOne)
				acc.Add(acc, big.NewInt(int64(b)))
				acc.Add(acc, big.NewInt(int64(i)))
				acc.Mod(acc, mod)
			}
		}
		return acc.Uint64()
	}

	inputs := []struct {
		password   string
		iterations uint32
	}{
		{"hunter2", 1},
		{"hunter2", 50},
		{"\xff\xfe\x80", 9},
		{"naïve café", 13},
		{strings.Repeat("overflow", 64), 3},
	}

	for _, in := range inputs {
		assert.Equal(t, reference([]byte(in.password), in.iterations), hashBytes([]byte(in.password), in.iterations),
			"password=%q iterations=%d", in.password, in.iterations)
	}
}

func TestHashPasswordBytesAreUnsigned(t *testing.T) {
	// 0xff must contribute 255, not a sign-extended value.
	assert.Equal(t, "00000000000000ff", HashPassword("\xff", 1))
}
