package swagger

import "github.com/tablestaff/tablestaff/internal/data"

// swagger:route DELETE /cache Cache ClearCache
// Clears the cache.
//
// responses:
//   204: description:Cache cleared

// swagger:route GET /cache/counters Cache ReadCacheCounters
// Reads the cache hit/miss counters.
//
//     Produces:
//     - application/json
//
// responses:
//   200: CacheCountersGetResponseOk

// swagger:response CacheCountersGetResponseOk
type CacheCountersGetResponseOk struct {
	// in:body
	CacheCounters data.CacheCounters `json:"cache_counters"`
}

// swagger:route DELETE /cache/counters Cache ClearCacheCounters
// Resets the cache hit/miss counters.
//
// responses:
//   204: description:Counters reset
