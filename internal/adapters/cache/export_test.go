package cache

// NewSQLCacheWithOpener exposes the opener-injecting constructor so tests
// can stand in an unreachable or pre-provisioned database.
var NewSQLCacheWithOpener = newSQLCache
