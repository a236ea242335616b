package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRun_Version(t *testing.T) {
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })
	os.Args = []string{"mason", "version"}

	require.Equal(t, 0, run())
}
