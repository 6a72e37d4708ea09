package cache

import "errors"

// ErrCacheMiss is returned by helpers that treat a miss as an error
// condition rather than a boolean.
var ErrCacheMiss = errors.New("cache miss")
