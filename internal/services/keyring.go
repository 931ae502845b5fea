package services

import (
	"sync"

	"github.com/dmitrijs2005/diarykeeper/internal/common"
)

// Keyring holds derived entry keys for users authenticated in this process.
// Keys never leave memory and are wiped when forgotten.
type Keyring struct {
	mu   sync.RWMutex
	keys map[int64][]byte
}

func NewKeyring() *Keyring {
	return &Keyring{keys: make(map[int64][]byte)}
}

// Put stores a copy of key for userID, wiping any previous key.
func (k *Keyring) Put(userID int64, key []byte) {
	cp := make([]byte, len(key))
	copy(cp, key)

	k.mu.Lock()
	defer k.mu.Unlock()
	common.WipeByteArray(k.keys[userID])
	k.keys[userID] = cp
}

// Get returns a copy of the key held for userID.
func (k *Keyring) Get(userID int64) ([]byte, bool) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	key, ok := k.keys[userID]
	if !ok {
		return nil, false
	}
	cp := make([]byte, len(key))
	copy(cp, key)
	return cp, true
}

// Has reports whether a key is held for userID.
func (k *Keyring) Has(userID int64) bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	_, ok := k.keys[userID]
	return ok
}

// Forget wipes and drops the key of userID.
func (k *Keyring) Forget(userID int64) {
	k.mu.Lock()
	defer k.mu.Unlock()
	common.WipeByteArray(k.keys[userID])
	delete(k.keys, userID)
}

// Clear wipes every key.
func (k *Keyring) Clear() {
	k.mu.Lock()
	defer k.mu.Unlock()
	for id, key := range k.keys {
		common.WipeByteArray(key)
		delete(k.keys, id)
	}
}
