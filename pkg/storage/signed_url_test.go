package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSignedURLSignerGenerateAndParse(t *testing.T) {
	signer := NewSignedURLSigner("secret", time.Hour)
	token, expiresAt, err := signer.Generate("export-1", "audit_logs/file.csv")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	file, err := signer.Parse(token, false)
	require.NoError(t, err)
	require.Equal(t, "export-1", file.ID)
	require.Equal(t, "audit_logs/file.csv", file.Path)
	require.WithinDuration(t, expiresAt, file.ExpiresAt, time.Second)
}

func TestSignedURLSignerExpired(t *testing.T) {
	signer := NewSignedURLSigner("secret", time.Minute)
	token, _, err := signer.Generate("export-1", "reports/file.csv")
	require.NoError(t, err)
	signer.now = func() time.Time { return time.Now().Add(2 * time.Minute) }

	_, err = signer.Parse(token, false)
	require.ErrorIs(t, err, ErrTokenExpired)

	file, err := signer.Parse(token, true)
	require.NoError(t, err)
	require.Equal(t, "reports/file.csv", file.Path)
}

func TestSignedURLSignerRejectsTampering(t *testing.T) {
	signer := NewSignedURLSigner("secret", time.Hour)
	token, _, err := signer.Generate("export-1", "reports/file.csv")
	require.NoError(t, err)

	other := NewSignedURLSigner("other", time.Hour)
	_, err = other.Parse(token, false)
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = signer.Parse("garbage", false)
	require.ErrorIs(t, err, ErrInvalidToken)
}
