package store

import (
	"context"
	"sync"
)

// Compile-time interface verification.
var _ Sink = (*MemorySink)(nil)

// Digest is the summary/translation pair held by MemorySink.
type Digest struct {
	Summary     string
	Translation string
}

// MemorySink keeps results in process memory. Used in tests and as the
// default sink when no persistence is configured. Safe for concurrent use.
type MemorySink struct {
	mu       sync.RWMutex
	articles map[string]string
	digests  map[string]Digest
}

// NewMemorySink creates an empty MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{
		articles: make(map[string]string),
		digests:  make(map[string]Digest),
	}
}

// SaveArticle stores the full text for a URL.
func (m *MemorySink) SaveArticle(_ context.Context, url, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.articles[url] = text
	return nil
}

// SaveDigest stores the summary/translation pair for a URL.
func (m *MemorySink) SaveDigest(_ context.Context, url, summary, translation string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.digests[url] = Digest{Summary: summary, Translation: translation}
	return nil
}

// Article returns the stored text for a URL.
func (m *MemorySink) Article(url string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	text, ok := m.articles[url]
	return text, ok
}

// DigestFor returns the stored digest for a URL.
func (m *MemorySink) DigestFor(url string) (Digest, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.digests[url]
	return d, ok
}
