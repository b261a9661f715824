// File: utils/constants.go
package utils

import "time"

// DistanceCachePrefix is the prefix used for Redis distance cache keys.
const DistanceCachePrefix = "distance:"

// DistanceCacheTTL is the default time-to-live for distance cache entries.
const DistanceCacheTTL = 24 * time.Hour

// DateLayout is the calendar date format used across requests and stored jobs.
const DateLayout = "2006-01-02"
