package providers

import (
	"blockd/internal/structures"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type cacheTestLogger struct{}

func (c *cacheTestLogger) Errorf(_ TypeEnum, _ string, _ ...interface{}) {}
func (c *cacheTestLogger) Warnf(_ TypeEnum, _ string, _ ...interface{})  {}
func (c *cacheTestLogger) Debugf(_ TypeEnum, _ string, _ ...interface{}) {}
func (c *cacheTestLogger) Infof(_ TypeEnum, _ string, _ ...interface{})  {}
func (c *cacheTestLogger) Fatalf(_ TypeEnum, _ string, _ ...interface{}) {}
func (c *cacheTestLogger) Close()                                        {}

func cacheConfig(enabled bool, size int) *structures.Config {
	return &structures.Config{
		Cache:  structures.CacheConfig{Enabled: enabled, Size: size},
		Shield: structures.ShieldConfig{CheckInterval: 60 * time.Second},
	}
}

func TestCacheProvider_SetAndGet(t *testing.T) {
	cache := NewCacheProvider(cacheConfig(true, 1), &cacheTestLogger{})

	cache.Set("plan", []byte("cached"))

	val, ok := cache.Get("plan")
	assert.True(t, ok)
	assert.Equal(t, []byte("cached"), val)
}

func TestCacheProvider_MissingKey(t *testing.T) {
	cache := NewCacheProvider(cacheConfig(true, 1), &cacheTestLogger{})

	_, ok := cache.Get("absent")
	assert.False(t, ok)
}

func TestCacheProvider_Del(t *testing.T) {
	cache := NewCacheProvider(cacheConfig(true, 1), &cacheTestLogger{})

	cache.Set("plan", []byte("cached"))
	cache.Del("plan")

	_, ok := cache.Get("plan")
	assert.False(t, ok)
}

func TestCacheProvider_DisabledIsNoop(t *testing.T) {
	cache := NewCacheProvider(cacheConfig(false, 1), &cacheTestLogger{})

	cache.Set("plan", []byte("cached"))

	_, ok := cache.Get("plan")
	assert.False(t, ok)
}

func TestCacheProvider_ZeroSizeIsNoop(t *testing.T) {
	cache := NewCacheProvider(cacheConfig(true, 0), &cacheTestLogger{})

	cache.Set("plan", []byte("cached"))

	_, ok := cache.Get("plan")
	assert.False(t, ok)
}
