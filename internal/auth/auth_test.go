package auth_test

import (
	"testing"

	"meetgogo/backend/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := auth.NewService("test-secret")
	want := auth.Identity{UserID: "user-1", UserName: "Alice", UserImage: "https://example.com/a.png"}

	token, err := svc.Token(want)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestTokenWithoutImage(t *testing.T) {
	svc := auth.NewService("test-secret")

	token, err := svc.Token(auth.Identity{UserID: "user-1", UserName: "Alice"})
	require.NoError(t, err)

	got, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Empty(t, got.UserImage)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := auth.NewService("secret-a").Token(auth.Identity{UserID: "user-1", UserName: "Alice"})
	require.NoError(t, err)

	_, err = auth.NewService("secret-b").Verify(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	svc := auth.NewService("test-secret")

	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := svc.Verify(token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	}
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	svc := auth.NewService("test-secret")
	token, err := svc.Token(auth.Identity{UserID: "user-1", UserName: "Alice"})
	require.NoError(t, err)

	_, err = svc.Verify(token + "x")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
