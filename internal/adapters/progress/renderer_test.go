package progress_test

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vito/progrock"

	"go.trai.ch/mason/internal/adapters/progress"
	"go.trai.ch/mason/internal/core/domain"
)

func mustTarget(t *testing.T, name string) domain.BuildTarget {
	t.Helper()
	target, err := domain.ParseTarget(name)
	require.NoError(t, err)
	return target
}

// drain reads the pipe to EOF and returns the last observed state per vertex.
func drain(t *testing.T, pipe *progress.Pipe) map[string]*progrock.Vertex {
	t.Helper()
	vertices := map[string]*progrock.Vertex{}
	for {
		update, err := pipe.Read()
		if err == io.EOF {
			return vertices
		}
		require.NoError(t, err)
		for _, v := range update.Vertexes {
			vertices[v.Id] = v
		}
	}
}

func TestRenderer_RuleLifecycle(t *testing.T) {
	pipe := progress.NewPipe()
	renderer := progress.NewRenderer(pipe)
	target := mustTarget(t, "//lib:core")

	renderer.HandleEvent(domain.RuleStartedEvent{Target: target})
	renderer.HandleEvent(domain.LogEvent{Level: domain.LogLevelInfo, Target: target, Message: "compiling"})
	renderer.HandleEvent(domain.RuleFinishedEvent{Target: target})
	require.NoError(t, renderer.Close())

	vertices := drain(t, pipe)
	require.Len(t, vertices, 1)
	for _, v := range vertices {
		require.Equal(t, "//lib:core", v.Name)
		require.NotNil(t, v.Completed)
		require.Nil(t, v.Error)
	}
}

func TestRenderer_FailureCarriesError(t *testing.T) {
	pipe := progress.NewPipe()
	renderer := progress.NewRenderer(pipe)
	target := mustTarget(t, "//app:bin")

	renderer.HandleEvent(domain.RuleStartedEvent{Target: target})
	renderer.HandleEvent(domain.RuleFinishedEvent{Target: target, Err: errors.New("compiler exploded")})
	require.NoError(t, renderer.Close())

	vertices := drain(t, pipe)
	require.Len(t, vertices, 1)
	for _, v := range vertices {
		require.NotNil(t, v.Completed)
		require.NotNil(t, v.Error)
	}
}

func TestRenderer_CachedRule(t *testing.T) {
	pipe := progress.NewPipe()
	renderer := progress.NewRenderer(pipe)
	target := mustTarget(t, "//lib:core")

	renderer.HandleEvent(domain.RuleStartedEvent{Target: target})
	renderer.HandleEvent(domain.RuleFinishedEvent{Target: target, Cached: true})
	require.NoError(t, renderer.Close())

	vertices := drain(t, pipe)
	require.Len(t, vertices, 1)
	for _, v := range vertices {
		require.True(t, v.Cached)
		require.NotNil(t, v.Completed)
	}
}

func TestRenderer_SkippedRuleFails(t *testing.T) {
	pipe := progress.NewPipe()
	renderer := progress.NewRenderer(pipe)

	renderer.HandleEvent(domain.RuleSkippedEvent{
		Target: mustTarget(t, "//app:bin"),
		Cause:  mustTarget(t, "//lib:core"),
	})
	require.NoError(t, renderer.Close())

	vertices := drain(t, pipe)
	require.Len(t, vertices, 1)
	for _, v := range vertices {
		require.NotNil(t, v.Error)
	}
}

func TestRenderer_IgnoresLogsForUnknownTarget(t *testing.T) {
	pipe := progress.NewPipe()
	renderer := progress.NewRenderer(pipe)

	renderer.HandleEvent(domain.LogEvent{Level: domain.LogLevelInfo, Target: mustTarget(t, "//app:bin"), Message: "orphan"})
	require.NoError(t, renderer.Close())

	require.Empty(t, drain(t, pipe))
}
