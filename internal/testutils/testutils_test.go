package testutils_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fullstack-nd/trivia-coffee-api/internal/testutils"
)

func TestTestSlogHandler(t *testing.T) {
	log, h := testutils.NewTestLogger()
	child := log.With(slog.String("component", "drink_handler"))

	child.InfoContext(context.Background(), "drink created", slog.Int("drink_id", 3))
	log.Warn("other")

	entries := h.Entries()
	require.Len(t, entries, 2)

	entry, ok := h.Find("drink created")
	require.True(t, ok)
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "drink_handler", entry["component"])
	assert.Equal(t, int64(3), entry["drink_id"])

	_, ok = h.Find("missing")
	assert.False(t, ok)

	h.Clear()
	assert.Empty(t, h.Entries())
}

func TestMintHS256(t *testing.T) {
	raw := testutils.MintHS256(t, testutils.TestJWTSecret,
		testutils.PermissionClaims("barista|1", "post:drinks"))

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testutils.TestJWTSecret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	require.NoError(t, err)
	assert.Equal(t, "barista|1", claims["sub"])
	assert.Equal(t, []interface{}{"post:drinks"}, claims["permissions"])

	assert.NotContains(t, testutils.PermissionClaims("barista|2"), "permissions")
}
