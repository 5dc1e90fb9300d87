package core

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hpmalabs/hpma/internal/contract"
	"github.com/hpmalabs/hpma/schema"
)

// currentCacheVersion defines the version of the cached profile schema
const currentCacheVersion = 1

// profileCacheTTL bounds how long a cached profile is trusted
const profileCacheTTL = 7 * 24 * time.Hour

// cachedProfile returns the profile of a response set, reusing a cached copy when possible.
func cachedProfile(rs schema.ResponseSet, bank contract.QuestionBank, opts ProfileOptions, store contract.CacheStore) *schema.Profile {
	if store == nil {
		// Fallback to direct computation
		return ComputeProfile(rs, bank, opts)
	}

	key, err := generateCacheKey(rs, bank.Version(), opts)
	if err != nil {
		contract.LogWarn("Cannot build profile cache key", err)
		return ComputeProfile(rs, bank, opts)
	}

	// Check for cache hit
	if p := checkCacheHit(store, key); p != nil {
		p.Respondent = rs.Respondent
		return p
	}

	// Cache miss: compute and store
	return computeAndStore(rs, bank, opts, store, key)
}

// checkCacheHit attempts to retrieve and validate a cached profile
func checkCacheHit(store contract.CacheStore, key string) *schema.Profile {
	data, version, ts, err := store.Get(key)
	if err != nil {
		return nil // Cache miss
	}

	// Validate version and staleness
	if version == currentCacheVersion {
		entryTimestamp := time.Unix(ts, 0)
		if time.Since(entryTimestamp) <= profileCacheTTL {
			var p schema.Profile
			if err := json.Unmarshal(data, &p); err == nil {
				return &p // Cache hit
			}
		}
	}

	return nil // Cache miss (stale or version mismatch)
}

// computeAndStore computes the profile and stores it in cache
func computeAndStore(rs schema.ResponseSet, bank contract.QuestionBank, opts ProfileOptions, store contract.CacheStore, key string) *schema.Profile {
	p := ComputeProfile(rs, bank, opts)

	if data, err := json.Marshal(p); err == nil {
		if err := store.Set(key, data, currentCacheVersion, time.Now().Unix()); err != nil {
			contract.LogWarn("Cannot store cached profile", err)
		}
	}

	return p
}

// cacheKeyInput is the canonical content a profile depends on.
// encoding/json writes map keys in sorted order, so equal answers hash equally.
type cacheKeyInput struct {
	Baseline       schema.Responses                        `json:"baseline"`
	Contexts       map[schema.ContextType]schema.Responses `json:"contexts"`
	BankVersion    string                                  `json:"bank_version"`
	RosterVersion  string                                  `json:"roster_version"`
	FaultOnInvalid bool                                    `json:"fault_on_invalid"`
}

// generateCacheKey creates a unique key from the answers and the scoring versions
func generateCacheKey(rs schema.ResponseSet, bankVersion string, opts ProfileOptions) (string, error) {
	data, err := json.Marshal(cacheKeyInput{
		Baseline:       rs.Baseline,
		Contexts:       rs.Contexts,
		BankVersion:    bankVersion,
		RosterVersion:  schema.RosterVersion,
		FaultOnInvalid: opts.FaultOnInvalid,
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", sha256.Sum256(data)), nil
}
