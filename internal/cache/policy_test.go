package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTTLFor(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want time.Duration
	}{
		{"auth permission", "auth_permission:user42:read", 5 * time.Minute},
		{"user profile", "user_profile:42", 15 * time.Minute},
		{"llm response", "llm_response:prompt:model=gpt-4", time.Hour},
		{"embedding", "embedding:doc-7", 24 * time.Hour},
		{"prometheus query", "prometheus_query:up", time.Minute},
		{"knowledge base", "knowledge_base:article:9", 30 * time.Minute},
		{"feature flag", "feature_flag:beta", time.Minute},
		{"unknown type", "zzz:whatever", DefaultTTL},
		{"bare key without separator", "standalone", DefaultTTL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TTLFor(tt.key))
		})
	}
}

func TestKeyType(t *testing.T) {
	assert.Equal(t, "user_profile", KeyType("user_profile:42"))
	assert.Equal(t, "embedding", KeyType("embedding:doc:part:3"))
	assert.Equal(t, "standalone", KeyType("standalone"))
	assert.Equal(t, "", KeyType(":leading"))
}
