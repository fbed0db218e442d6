package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateOTP_Format(t *testing.T) {
	for i := 0; i < 100; i++ {
		otp, err := GenerateOTP()
		require.NoError(t, err)
		require.Len(t, otp, 6)
		for _, c := range otp {
			require.True(t, c >= '0' && c <= '9', "otp %q contains non-digit", otp)
		}
	}
}

func TestGenerateOTP_InRange(t *testing.T) {
	for i := 0; i < 100; i++ {
		otp, err := GenerateOTP()
		require.NoError(t, err)
		require.GreaterOrEqual(t, otp, "100000")
		require.LessOrEqual(t, otp, "999999")
	}
}

func TestGenerateResetToken_Format(t *testing.T) {
	tok, err := GenerateResetToken()
	require.NoError(t, err)
	require.Len(t, tok, resetTokenBytes*2)
}

func TestGenerateResetToken_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		tok, err := GenerateResetToken()
		require.NoError(t, err)
		require.False(t, seen[tok], "duplicate reset token generated")
		seen[tok] = true
	}
}
