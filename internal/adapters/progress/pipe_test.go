package progress_test

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vito/progrock"

	"go.trai.ch/mason/internal/adapters/progress"
)

func TestPipe_ReadAfterCloseDrainsBuffer(t *testing.T) {
	pipe := progress.NewPipe()

	require.NoError(t, pipe.WriteStatus(&progrock.StatusUpdate{}))
	require.NoError(t, pipe.WriteStatus(&progrock.StatusUpdate{}))
	require.NoError(t, pipe.Close())

	for range 2 {
		update, err := pipe.Read()
		require.NoError(t, err)
		require.NotNil(t, update)
	}
	_, err := pipe.Read()
	require.ErrorIs(t, err, io.EOF)
}

func TestPipe_WriteAfterClose(t *testing.T) {
	pipe := progress.NewPipe()
	require.NoError(t, pipe.Close())
	require.ErrorIs(t, pipe.WriteStatus(&progrock.StatusUpdate{}), io.ErrClosedPipe)
	require.NoError(t, pipe.Close())
}
