package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/custodia-labs/frmr-oscal/internal/core/domain"
)

// mockConnector serves documents from memory. Each name may be preceded
// by a queue of failures returned before the document is served.
type mockConnector struct {
	names    []string
	docs     map[string]string
	failures map[string][]domain.FetchResult
	listErr  error
	fetches  map[string]int
}

func newMockConnector(docs map[string]string, names ...string) *mockConnector {
	return &mockConnector{
		names:    names,
		docs:     docs,
		failures: make(map[string][]domain.FetchResult),
		fetches:  make(map[string]int),
	}
}

func (m *mockConnector) Type() string { return "mock" }

func (m *mockConnector) List(_ context.Context) ([]string, error) {
	return m.names, m.listErr
}

func (m *mockConnector) Fetch(_ context.Context, name string) domain.FetchResult {
	m.fetches[name]++
	if queue := m.failures[name]; len(queue) > 0 {
		m.failures[name] = queue[1:]
		return queue[0]
	}
	content, ok := m.docs[name]
	if !ok {
		return domain.FetchFailed(domain.FailureNotFound, name, nil)
	}
	return domain.Fetched(domain.RawDocument{Name: name, URI: "mock://" + name, Content: []byte(content)})
}

func (m *mockConnector) Close() error { return nil }

// mockArtifactStore keeps artifacts per version in memory.
type mockArtifactStore struct {
	mu      sync.Mutex
	files   map[string][]byte
	readErr error
	writes  int
}

func newMockArtifactStore() *mockArtifactStore {
	return &mockArtifactStore{files: make(map[string][]byte)}
}

func (m *mockArtifactStore) key(version, name string) string {
	return "v" + version + "/" + name
}

func (m *mockArtifactStore) Read(_ context.Context, version, name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readErr != nil {
		return nil, m.readErr
	}
	data, ok := m.files[m.key(version, name)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return data, nil
}

func (m *mockArtifactStore) Write(_ context.Context, version, name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
	m.files[m.key(version, name)] = append([]byte(nil), data...)
	return nil
}

func (m *mockArtifactStore) Location(version string) string {
	return "mem://v" + version
}

func (m *mockArtifactStore) get(version, name string) []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.files[m.key(version, name)]
}

// mockLedger records entries in memory.
type mockLedger struct {
	records   []domain.PublicationRecord
	recordErr error
}

func (m *mockLedger) Record(_ context.Context, records []domain.PublicationRecord) error {
	if m.recordErr != nil {
		return m.recordErr
	}
	m.records = append(m.records, records...)
	return nil
}

func (m *mockLedger) List(_ context.Context, version string) ([]domain.PublicationRecord, error) {
	var out []domain.PublicationRecord
	for i := len(m.records) - 1; i >= 0; i-- {
		if version == "" || m.records[i].Version == version {
			out = append(out, m.records[i])
		}
	}
	return out, nil
}

func (m *mockLedger) Close() error { return nil }

// mockConfigStore is a flat in-memory ConfigStore.
type mockConfigStore struct {
	data   map[string]any
	setErr error
}

func newMockConfigStore(data map[string]any) *mockConfigStore {
	if data == nil {
		data = make(map[string]any)
	}
	return &mockConfigStore{data: data}
}

func (m *mockConfigStore) Get(key string) (any, bool) {
	v, ok := m.data[key]
	return v, ok
}

func (m *mockConfigStore) GetString(key string) string {
	v, _ := m.data[key].(string)
	return v
}

func (m *mockConfigStore) GetInt(key string) int {
	switch v := m.data[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	default:
		return 0
	}
}

func (m *mockConfigStore) GetBool(key string) bool {
	v, _ := m.data[key].(bool)
	return v
}

func (m *mockConfigStore) GetStringSlice(key string) []string {
	v, _ := m.data[key].([]string)
	return v
}

func (m *mockConfigStore) Keys(prefix string) []string {
	var keys []string
	for k := range m.data {
		if len(k) > len(prefix)+1 && k[:len(prefix)+1] == prefix+"." {
			keys = append(keys, k[len(prefix)+1:])
		}
	}
	return keys
}

func (m *mockConfigStore) Set(key string, value any) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	return nil
}

func (m *mockConfigStore) Save() error  { return nil }
func (m *mockConfigStore) Load() error  { return nil }
func (m *mockConfigStore) Path() string { return "mock.toml" }

// fixedClock returns a clock that advances by step on every call.
func fixedClock(start time.Time, step time.Duration) func() time.Time {
	var mu sync.Mutex
	now := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t := now
		now = now.Add(step)
		return t
	}
}

var errBoom = errors.New("boom")
