// Package iocache persists scored profiles and assessment history.
package iocache

import (
	"sync"

	"github.com/hpmalabs/hpma/internal/contract"
)

// CacheStoreManager manages the profile cache and the history store.
type CacheStoreManager struct {
	sync.RWMutex // Protects the store pointers during initialization
	profile      contract.CacheStore
	history      contract.HistoryStore
}

var _ contract.CacheManager = &CacheStoreManager{} // Compile-time check

// GetProfileStore returns the profile CacheStore.
func (mgr *CacheStoreManager) GetProfileStore() contract.CacheStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.profile
}

// GetHistoryStore returns the assessment HistoryStore.
func (mgr *CacheStoreManager) GetHistoryStore() contract.HistoryStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.history
}
