package application

import "expvar"

// Counters are published under "ui" at /api/debug/vars.
var metrics = expvar.NewMap("ui")

const (
	mHealthChecks      = "health_checks"
	mHealthDown        = "health_down"
	mListLoads         = "list_loads"
	mListLoadFailures  = "list_load_failures"
	mReloadsDiscarded  = "reloads_discarded"
	mMutations         = "mutations"
	mMutationFailures  = "mutation_failures"
	mDeletesDeclined   = "deletes_declined"
	mEventPublishError = "event_publish_errors"
)
