package jwt

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestIssueParseRoundTrip(t *testing.T) {
	id := uuid.New()

	tok, err := Issue("secret", id, "staff@example.com", 1)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := ParseAuth("Bearer "+tok, "secret")
	require.NoError(t, err)
	require.Equal(t, "staff@example.com", claims["email"])

	sub, err := Subject(claims)
	require.NoError(t, err)
	require.Equal(t, id, sub)
}

func TestParseAuth_WrongSecret(t *testing.T) {
	tok, err := Issue("secret", uuid.New(), "staff@example.com", 1)
	require.NoError(t, err)

	_, err = ParseAuth("Bearer "+tok, "other-secret")
	require.Error(t, err)
}

func TestParseAuth_MissingHeader(t *testing.T) {
	_, err := ParseAuth("", "secret")
	require.Error(t, err)

	_, err = ParseAuth("Bearer ", "secret")
	require.Error(t, err)
}

func TestSubject_BadClaims(t *testing.T) {
	tok, err := Issue("secret", uuid.New(), "staff@example.com", 1)
	require.NoError(t, err)

	claims, err := ParseAuth(tok, "secret")
	require.NoError(t, err)

	claims["sub"] = "not-a-uuid"
	_, err = Subject(claims)
	require.Error(t, err)

	delete(claims, "sub")
	_, err = Subject(claims)
	require.Error(t, err)
}
