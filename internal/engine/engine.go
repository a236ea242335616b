// Package engine implements the incremental build engine: a bounded worker
// loop driving each rule through key computation, cache lookup and step
// execution, with failure propagation to dependents.
package engine

import (
	"context"
	"errors"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/mason/internal/core/ports"
	"go.trai.ch/zerr"
)

// Engine executes one validated rule graph. Construct one per invocation;
// statuses and the key memo are not reusable across graphs.
type Engine struct {
	graph    *domain.Graph
	keys     ports.KeyBuilder
	cache    ports.ArtifactCache
	executor ports.StepExecutor
	fs       ports.Filesystem
	bus      ports.EventBus

	parallelism int

	mu       sync.RWMutex
	statuses map[domain.BuildTarget]RuleStatus
}

// New creates an Engine over a validated graph. Parallelism <= 0 means one
// worker per CPU.
func New(
	graph *domain.Graph,
	keys ports.KeyBuilder,
	cache ports.ArtifactCache,
	executor ports.StepExecutor,
	filesystem ports.Filesystem,
	bus ports.EventBus,
	parallelism int,
) *Engine {
	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}
	e := &Engine{
		graph:       graph,
		keys:        keys,
		cache:       cache,
		executor:    executor,
		fs:          filesystem,
		bus:         bus,
		parallelism: parallelism,
		statuses:    make(map[domain.BuildTarget]RuleStatus, graph.RuleCount()),
	}
	for rule := range graph.Walk() {
		e.statuses[rule.Target()] = StatusPending
	}
	return e
}

// Status returns the current status of a target.
func (e *Engine) Status(t domain.BuildTarget) RuleStatus {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.statuses[t]
}

func (e *Engine) setStatus(t domain.BuildTarget, status RuleStatus) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.statuses[t] = status
}

// Run builds the whole graph rooted at the given workspace directory. It
// returns the joined failures; a non-nil error means at least one rule failed
// or the context was cancelled.
func (e *Engine) Run(ctx context.Context, root string) error {
	state := e.newRunState(ctx, root)

	for !state.isDone() {
		state.schedule()

		if state.isDone() {
			break
		}

		// Cancellation stops scheduling; once nothing is in flight the
		// remaining ready rules will never run.
		if state.ctx.Err() != nil && state.active == 0 {
			break
		}

		// Workers always deliver to the buffered results channel, so a
		// blocking receive drains in-flight work after cancellation
		// without polling.
		state.handleResult(<-state.resultsCh)
	}

	if state.ctx.Err() != nil {
		state.errs = errors.Join(state.errs, state.ctx.Err())
	}
	if state.errs != nil {
		return errors.Join(domain.ErrBuildFailed, state.errs)
	}
	return nil
}

type result struct {
	target domain.BuildTarget
	key    domain.RuleKey
	cached bool
	err    error
}

type runState struct {
	inDegree  map[domain.BuildTarget]int
	rules     map[domain.BuildTarget]domain.Rule
	ready     []domain.BuildTarget
	active    int
	resultsCh chan result
	errs      error
	ctx       context.Context
	root      string
	e         *Engine
}

func (e *Engine) newRunState(ctx context.Context, root string) *runState {
	count := e.graph.RuleCount()
	inDegree := make(map[domain.BuildTarget]int, count)
	rules := make(map[domain.BuildTarget]domain.Rule, count)

	for rule := range e.graph.Walk() {
		rules[rule.Target()] = rule
		inDegree[rule.Target()] = len(domain.AllDeps(rule))
	}

	var ready []domain.BuildTarget
	for rule := range e.graph.Walk() {
		if inDegree[rule.Target()] == 0 {
			ready = append(ready, rule.Target())
		}
	}

	return &runState{
		inDegree:  inDegree,
		rules:     rules,
		ready:     ready,
		resultsCh: make(chan result, e.parallelism),
		ctx:       ctx,
		root:      root,
		e:         e,
	}
}

func (state *runState) isDone() bool {
	return state.active == 0 && len(state.ready) == 0
}

func (state *runState) schedule() {
	for len(state.ready) > 0 && state.active < state.e.parallelism && state.ctx.Err() == nil {
		target := state.ready[0]
		state.ready = state.ready[1:]

		state.active++
		state.e.bus.Post(domain.RuleStartedEvent{Target: target})

		go func(rule domain.Rule) {
			state.resultsCh <- state.e.buildRule(state.ctx, rule, state.root)
		}(state.rules[target])
	}
}

func (state *runState) handleResult(res result) {
	state.active--

	if res.err != nil {
		state.errs = errors.Join(state.errs, zerr.With(res.err, "target", res.target.FullName()))
		state.e.setStatus(res.target, StatusFailed)
		state.e.bus.Post(domain.RuleFinishedEvent{
			Target: res.target,
			Status: string(StatusFailed),
			Key:    res.key,
			Err:    res.err,
		})
		state.skipDependents(res.target, res.target)
		return
	}

	state.e.setStatus(res.target, StatusDone)
	state.e.bus.Post(domain.RuleFinishedEvent{
		Target: res.target,
		Status: string(StatusDone),
		Key:    res.key,
		Cached: res.cached,
	})
	for _, dep := range state.e.graph.Dependents(res.target) {
		state.inDegree[dep]--
		if state.inDegree[dep] == 0 {
			state.ready = append(state.ready, dep)
		}
	}
}

// skipDependents marks everything transitively downstream of a failed target
// as Skipped. Skipped rules never enter the ready queue, so the loop drains
// without evaluating them.
func (state *runState) skipDependents(failed, cause domain.BuildTarget) {
	for _, dep := range state.e.graph.Dependents(failed) {
		if state.e.Status(dep) == StatusSkipped {
			continue
		}
		state.e.setStatus(dep, StatusSkipped)
		state.e.bus.Post(domain.RuleSkippedEvent{Target: dep, Cause: cause})
		state.skipDependents(dep, cause)
	}
}

// buildRule drives one rule through the state machine on a worker goroutine.
func (e *Engine) buildRule(ctx context.Context, rule domain.Rule, root string) result {
	target := rule.Target()
	res := result{target: target}

	key, err := e.keys.ComputeKey(rule)
	if err != nil {
		res.err = err
		return res
	}
	res.key = key
	e.setStatus(target, StatusKeyComputed)

	outPath, hasOutput := rule.OutputPath()

	// Rules without an output only gate ordering; the cache has nothing to
	// hold for them.
	if hasOutput {
		fetchResult, content := e.cache.Fetch(ctx, key)
		e.setStatus(target, StatusCacheChecked)
		if fetchResult.Kind() == domain.CacheResultHit {
			if err := e.materialize(root, outPath, key, content); err != nil {
				res.err = err
				return res
			}
			e.setStatus(target, StatusCacheHit)
			e.bus.Post(domain.CacheHitEvent{Key: key, Source: fetchResult.Source()})
			res.cached = true
			return res
		}
		e.bus.Post(domain.CacheMissEvent{Key: key})
	}

	e.setStatus(target, StatusBuilding)
	bctx := domain.BuildContext{
		Root:   root,
		Stdout: &eventWriter{bus: e.bus, target: target, level: domain.LogLevelInfo},
		Stderr: &eventWriter{bus: e.bus, target: target, level: domain.LogLevelWarn},
	}
	if err := e.executor.RunSteps(ctx, rule, bctx); err != nil {
		res.err = err
		return res
	}

	if hasOutput {
		content, err := e.fs.Read(absolutize(root, outPath))
		if err != nil {
			res.err = zerr.With(zerr.Wrap(domain.ErrMissingOutput, err.Error()), "output", outPath)
			return res
		}
		if e.cache.StoreSupported() {
			e.cache.Store(ctx, key, domain.NewArtifact(content))
		}
	}
	return res
}

// materialize lands cache-hit content at the output path through a sibling
// temp file and an atomic move, so a crash never leaves a half-written
// output behind.
func (e *Engine) materialize(root, outPath string, key domain.RuleKey, content []byte) error {
	dst := absolutize(root, outPath)
	tmp := dst + ".tmp-" + key.Hex()[:8]
	if err := e.fs.Write(tmp, content); err != nil {
		return err
	}
	return e.fs.Move(tmp, dst)
}

func absolutize(root, path string) string {
	if root == "" {
		return path
	}
	return filepath.Join(root, path)
}

// eventWriter turns step output into LogEvents, one per line.
type eventWriter struct {
	bus    ports.EventBus
	target domain.BuildTarget
	level  domain.LogLevel
}

func (w *eventWriter) Write(p []byte) (int, error) {
	for line := range strings.SplitSeq(strings.TrimSuffix(string(p), "\n"), "\n") {
		w.bus.Post(domain.LogEvent{Level: w.level, Target: w.target, Message: line})
	}
	return len(p), nil
}
