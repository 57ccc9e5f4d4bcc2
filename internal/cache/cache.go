package cache

import "time"

// Cache - TTL-кеш для ответов upstream-провайдеров.
type Cache interface {
	Get(key string) (any, bool)
	Set(key string, value any, ttl time.Duration)
	Delete(key string)
}
