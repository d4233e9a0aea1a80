package redis_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	redisstore "github.com/vesran/guildboard/internal/store/redis"
)

func TestSessionKey(t *testing.T) {
	t.Parallel()

	t.Run("prefix", func(t *testing.T) {
		t.Parallel()

		got := redisstore.SessionKey("abc123")
		assert.True(t, strings.HasPrefix(got, "guildboard:session:"), "expected session prefix, got %q", got)
	})

	t.Run("contains session id", func(t *testing.T) {
		t.Parallel()

		got := redisstore.SessionKey("abc123")
		assert.Equal(t, "guildboard:session:abc123", got)
	})

	t.Run("deterministic", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, redisstore.SessionKey("x"), redisstore.SessionKey("x"))
	})

	t.Run("different ids produce different keys", func(t *testing.T) {
		t.Parallel()

		assert.NotEqual(t, redisstore.SessionKey("a"), redisstore.SessionKey("b"))
	})
}
