package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"go.trai.ch/mason/internal/core/domain"
)

func TestArtifact_EncodeDecode(t *testing.T) {
	artifact := domain.NewArtifact([]byte("built output"))
	require.True(t, artifact.Verify())

	decoded, err := domain.DecodeArtifact(artifact.Encode())
	require.NoError(t, err)
	require.Equal(t, artifact.Checksum, decoded.Checksum)
	require.Equal(t, artifact.Content, decoded.Content)
	require.True(t, decoded.Verify())
}

func TestArtifact_EmptyContent(t *testing.T) {
	artifact := domain.NewArtifact(nil)
	decoded, err := domain.DecodeArtifact(artifact.Encode())
	require.NoError(t, err)
	require.True(t, decoded.Verify())
	require.Empty(t, decoded.Content)
}

func TestDecodeArtifact_Truncated(t *testing.T) {
	_, err := domain.DecodeArtifact([]byte{0x01, 0x02, 0x03})
	require.ErrorIs(t, err, domain.ErrArtifactTruncated)
}

func TestArtifact_CorruptionDetected(t *testing.T) {
	blob := domain.NewArtifact([]byte("built output")).Encode()
	blob[len(blob)-1] ^= 0xff

	decoded, err := domain.DecodeArtifact(blob)
	require.NoError(t, err, "decoding does not verify")
	require.False(t, decoded.Verify())
	require.NotEqual(t, decoded.Checksum, decoded.ActualChecksum())
}
