package constants

import (
	"time"
)

// Redis Cache Configuration
// Pattern: seatbook:{module}:{operation}

// ================== CACHE TTL DURATIONS ==================

// Highly Dynamic (Micro TTL: every booking changes these)
const (
	TTL_REALTIME_SHORT = 30 * time.Second // 30 seconds - for live seat counts
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "seatbook"
)

// ================== SEATS MODULE ==================

// Seat Cache Keys
const (
	CACHE_KEY_SEATS_COUNT     = CACHE_PREFIX + ":seats:count"
	CACHE_KEY_SEATS_AVAILABLE = CACHE_PREFIX + ":seats:available"
)

// Seat Cache TTLs (default when REDIS_CACHE_TTL is unset)
const (
	TTL_SEATS_COUNT = TTL_REALTIME_SHORT
)

// ================== ANALYTICS MODULE ==================

// Kept under the seats namespace so availability invalidation clears it too
const (
	CACHE_KEY_ANALYTICS_DASHBOARD = CACHE_PREFIX + ":seats:analytics:dashboard"
	TTL_ANALYTICS_DASHBOARD       = 5 * time.Minute
)

// ================== RATE LIMIT ==================

const (
	RATE_LIMIT_PREFIX = CACHE_PREFIX + ":ratelimit:"
)

// ================== CACHE INVALIDATION PATTERNS ==================

const (
	// Any booking, cancellation or reset changes seat availability
	PATTERN_INVALIDATE_SEATS_ALL = CACHE_PREFIX + ":seats:*"

	// Second delete that clears values written back by readers racing a commit
	CACHE_INVALIDATION_REPLAY = 200 * time.Millisecond
)
