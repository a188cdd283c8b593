package utils

import (
	"sync"
	"time"
)

// Limiter bounds how many callers run a section at once and enforces a
// minimum interval between entries. Used to keep concurrent browser sessions
// from stampeding the source site.
type Limiter struct {
	semaphore   chan struct{}
	rateLimitMs int
	mu          sync.Mutex
	lastEntry   time.Time
}

// NewLimiter creates a Limiter with the given concurrency and rate limit.
func NewLimiter(maxConcurrent, rateLimitMs int) *Limiter {
	return &Limiter{
		semaphore:   make(chan struct{}, maxConcurrent),
		rateLimitMs: rateLimitMs,
		lastEntry:   time.Now(),
	}
}

// Acquire blocks until a slot is free and the rate-limit interval has passed.
func (l *Limiter) Acquire() {
	l.semaphore <- struct{}{}
	l.enforceRateLimit()
}

// Release frees a slot taken by Acquire.
func (l *Limiter) Release() {
	<-l.semaphore
}

func (l *Limiter) enforceRateLimit() {
	l.mu.Lock()
	defer l.mu.Unlock()

	minInterval := time.Duration(l.rateLimitMs) * time.Millisecond
	elapsed := time.Since(l.lastEntry)
	if elapsed < minInterval {
		time.Sleep(minInterval - elapsed)
	}
	l.lastEntry = time.Now()
}

// URLSet is a thread-safe set for tracking URLs, e.g. imports currently in
// flight.
type URLSet struct {
	mu   sync.RWMutex
	seen map[string]struct{}
}

// NewURLSet creates an empty URLSet.
func NewURLSet() *URLSet {
	return &URLSet{seen: make(map[string]struct{})}
}

// Add returns true if the URL was newly added, false if already present.
func (s *URLSet) Add(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.seen[url]; exists {
		return false
	}
	s.seen[url] = struct{}{}
	return true
}

// Remove deletes the URL from the set.
func (s *URLSet) Remove(url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.seen, url)
}

// Contains returns true if the URL is present.
func (s *URLSet) Contains(url string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.seen[url]
	return exists
}

// Size returns the number of unique URLs tracked.
func (s *URLSet) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.seen)
}
