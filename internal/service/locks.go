package service

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/jmcrae/attire/internal/domain"
)

// allocKey identifies one lockable inventory bucket.
type allocKey struct {
	productID uuid.UUID
	size      domain.Size
}

func (k allocKey) less(other allocKey) bool {
	if k.productID != other.productID {
		return k.productID.String() < other.productID.String()
	}
	return k.size < other.size
}

// keyedLocks hands out one mutex per inventory bucket. Mutexes are never
// removed from the map; the key space is bounded by catalog size.
type keyedLocks struct {
	mu    sync.Mutex
	locks map[allocKey]*sync.Mutex
}

func newKeyedLocks() *keyedLocks {
	return &keyedLocks{locks: make(map[allocKey]*sync.Mutex)}
}

func (l *keyedLocks) get(key allocKey) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	return m
}

// lockAll acquires the mutex for every distinct key in a globally consistent
// order, so two allocations over overlapping buckets can never deadlock.
// The returned function releases the mutexes in reverse order.
func (l *keyedLocks) lockAll(keys []allocKey) func() {
	distinct := make([]allocKey, 0, len(keys))
	seen := make(map[allocKey]struct{}, len(keys))
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		distinct = append(distinct, k)
	}
	sort.Slice(distinct, func(i, j int) bool { return distinct[i].less(distinct[j]) })

	held := make([]*sync.Mutex, 0, len(distinct))
	for _, k := range distinct {
		m := l.get(k)
		m.Lock()
		held = append(held, m)
	}

	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Unlock()
		}
	}
}
