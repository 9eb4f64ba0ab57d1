package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidBTCAddress(t *testing.T) {
	t.Run("legacy", func(t *testing.T) {
		assert.True(t, ValidBTCAddress("1BvBMSEYstWetqTFn5Au4m4GFg7xJaNVN2"))
		assert.False(t, ValidBTCAddress("1short"))
		assert.False(t, ValidBTCAddress("1"+strings.Repeat("a", 40)))
	})

	t.Run("script", func(t *testing.T) {
		assert.True(t, ValidBTCAddress("3J98t1WpEZ73CNmQviecrnyiWrnqRhWNLy"))
		assert.False(t, ValidBTCAddress("3abc"))
	})

	t.Run("bech32", func(t *testing.T) {
		assert.True(t, ValidBTCAddress("bc1qar0srrr7xfkvy5l643lydnw9re59gtzzwf5mdq"))
		assert.False(t, ValidBTCAddress("bc1short"))
		assert.False(t, ValidBTCAddress("bc1"+strings.Repeat("q", 75)))
	})

	t.Run("unknown prefix", func(t *testing.T) {
		assert.False(t, ValidBTCAddress("2NEpo7TZRRrLZSi2U"))
		assert.False(t, ValidBTCAddress(""))
	})
}

func TestValidETHAddress(t *testing.T) {
	assert.True(t, ValidETHAddress("0x742d35Cc6634C0532925a3b844Bc454e4438f44e"))
	assert.False(t, ValidETHAddress("0x742d35Cc6634C0532925a3b844Bc454e4438f44"))   // 41 chars
	assert.False(t, ValidETHAddress("1x742d35Cc6634C0532925a3b844Bc454e4438f44e"))  // wrong prefix
	assert.False(t, ValidETHAddress(""))
}

func TestValidatePhone(t *testing.T) {
	assert.True(t, phoneRegexp.MatchString("+48123123123"))
	assert.True(t, phoneRegexp.MatchString("123 456 789"))
	assert.False(t, phoneRegexp.MatchString("12"))
	assert.False(t, phoneRegexp.MatchString("abc123456"))
}
