package redis

import "fmt"

// KeyBuilder provides environment-aware Redis key building functionality
type KeyBuilder struct {
	prefix string // Environment prefix (staging/prod)
}

// NewKeyBuilder creates a new key builder with environment-based prefix
func NewKeyBuilder(environment string) *KeyBuilder {
	prefix := "prod"
	if environment == "development" || environment == "staging" {
		prefix = "staging"
	}

	return &KeyBuilder{
		prefix: prefix,
	}
}

// BuildKey constructs a Redis key with the environment prefix
func (kb *KeyBuilder) BuildKey(key string) string {
	return fmt.Sprintf("%s:%s", kb.prefix, key)
}

// GetPrefix returns the current environment prefix
func (kb *KeyBuilder) GetPrefix() string {
	return kb.prefix
}

// KeyPartnersActive caches the serialized active partner list.
func (kb *KeyBuilder) KeyPartnersActive() string {
	return kb.BuildKey(KeyPartnersActive)
}

// KeyVisitorSeen marks one counted visit per visitor per day.
func (kb *KeyBuilder) KeyVisitorSeen(date, visitorHash string) string {
	return kb.BuildKey(fmt.Sprintf(KeyVisitorSeen, date, visitorHash))
}

// KeyClickLimit is the per-IP click rate-limit counter.
func (kb *KeyBuilder) KeyClickLimit(ipHash string) string {
	return kb.BuildKey(fmt.Sprintf(KeyClickLimit, ipHash))
}

// KeyConversionGuard marks one counted conversion per visitor per partner.
func (kb *KeyBuilder) KeyConversionGuard(partnerID, visitorHash string) string {
	return kb.BuildKey(fmt.Sprintf(KeyConversionGuard, partnerID, visitorHash))
}

// KeyCustom builds a key from an arbitrary pattern.
func (kb *KeyBuilder) KeyCustom(pattern string, args ...interface{}) string {
	key := fmt.Sprintf(pattern, args...)
	return kb.BuildKey(key)
}
