package cache

import "time"

// BytesCache is a minimal cache API storing raw bytes with TTL. The market
// usecases keep marshaled quote and summary payloads in it so repeated
// dashboard polls within the TTL see one consistent reading.
type BytesCache interface {
	GetBytes(key string) (b []byte, ok bool, err error)
	SetBytes(key string, value []byte, ttl time.Duration) error
}
