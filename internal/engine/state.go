package engine

// RuleStatus tracks a rule through the build lifecycle. Transitions only move
// forward: Pending -> KeyComputed -> CacheChecked -> (CacheHit | Building) ->
// (Done | Failed). A rule whose transitive dependency failed goes straight
// from Pending to Skipped.
type RuleStatus string

const (
	// StatusPending indicates the rule has not started.
	StatusPending RuleStatus = "Pending"
	// StatusKeyComputed indicates the rule key is known.
	StatusKeyComputed RuleStatus = "KeyComputed"
	// StatusCacheChecked indicates the cache lookup finished.
	StatusCacheChecked RuleStatus = "CacheChecked"
	// StatusCacheHit indicates the output was materialized from the cache.
	StatusCacheHit RuleStatus = "CacheHit"
	// StatusBuilding indicates the rule's steps are running.
	StatusBuilding RuleStatus = "Building"
	// StatusDone indicates the rule finished successfully.
	StatusDone RuleStatus = "Done"
	// StatusFailed indicates the rule failed.
	StatusFailed RuleStatus = "Failed"
	// StatusSkipped indicates the rule was never evaluated because a
	// transitive dependency failed.
	StatusSkipped RuleStatus = "Skipped"
)

// Terminal reports whether the status is an end state.
func (s RuleStatus) Terminal() bool {
	return s == StatusDone || s == StatusFailed || s == StatusSkipped
}
