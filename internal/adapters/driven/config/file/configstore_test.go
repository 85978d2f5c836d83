package file

import (
	"sync"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[source]
type = "filesystem"
timeout_seconds = 30

[filesystem]
paths = ["./docs"]
patterns = ["**/FRMR.*.json"]

[ledger]
enabled = false

[group_titles]
CNA = "Cloud Native"
ADS = "Data Sharing"
`

func newStore(t *testing.T, content string) (*ConfigStore, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	if content != "" {
		require.NoError(t, afero.WriteFile(fs, "frmr-oscal.toml", []byte(content), 0o600))
	}
	store, err := NewConfigStore(fs, "")
	require.NoError(t, err)
	return store, fs
}

func TestNewConfigStore_DefaultPath(t *testing.T) {
	store, _ := newStore(t, "")
	assert.Equal(t, DefaultConfigName, store.Path())
}

func TestNewConfigStore_MissingFileIsEmpty(t *testing.T) {
	store, err := NewConfigStore(afero.NewMemMapFs(), "/etc/frmr/config.toml")
	require.NoError(t, err)

	_, ok := store.Get("source.type")
	assert.False(t, ok)
	assert.Equal(t, "/etc/frmr/config.toml", store.Path())
}

func TestNewConfigStore_InvalidTOML(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "bad.toml", []byte("[source\ntype ="), 0o600))

	_, err := NewConfigStore(fs, "bad.toml")
	assert.Error(t, err)
}

func TestConfigStore_FlattensTables(t *testing.T) {
	store, _ := newStore(t, sampleConfig)

	assert.Equal(t, "filesystem", store.GetString("source.type"))
	assert.Equal(t, 30, store.GetInt("source.timeout_seconds"))
	assert.Equal(t, []string{"./docs"}, store.GetStringSlice("filesystem.paths"))
	assert.False(t, store.GetBool("ledger.enabled"))

	val, ok := store.Get("ledger.enabled")
	assert.True(t, ok)
	assert.Equal(t, false, val)
}

func TestConfigStore_TypeMismatch(t *testing.T) {
	store, _ := newStore(t, sampleConfig)

	assert.Equal(t, "", store.GetString("source.timeout_seconds"))
	assert.Equal(t, 0, store.GetInt("source.type"))
	assert.False(t, store.GetBool("source.type"))
	assert.Nil(t, store.GetStringSlice("source.type"))
	assert.Nil(t, store.GetStringSlice("missing"))
}

func TestConfigStore_Keys(t *testing.T) {
	store, _ := newStore(t, sampleConfig)

	assert.Equal(t, []string{"ADS", "CNA"}, store.Keys("group_titles"))
	assert.Empty(t, store.Keys("nothing"))
}

func TestConfigStore_SetPersistsTables(t *testing.T) {
	store, fs := newStore(t, "")

	require.NoError(t, store.Set("output.dir", "public"))
	require.NoError(t, store.Set("retry.attempts", 5))

	data, err := afero.ReadFile(fs, DefaultConfigName)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[output]")

	reloaded, err := NewConfigStore(fs, "")
	require.NoError(t, err)
	assert.Equal(t, "public", reloaded.GetString("output.dir"))
	assert.Equal(t, 5, reloaded.GetInt("retry.attempts"))
}

func TestConfigStore_SaveCreatesDirectory(t *testing.T) {
	fs := afero.NewMemMapFs()
	store, err := NewConfigStore(fs, "conf/dir/frmr.toml")
	require.NoError(t, err)

	require.NoError(t, store.Set("output.dir", "out"))

	exists, err := afero.Exists(fs, "conf/dir/frmr.toml")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, _ := newStore(t, sampleConfig)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = store.GetString("source.type")
		}()
		go func() {
			defer wg.Done()
			_ = store.Set("output.dir", "out")
		}()
	}
	wg.Wait()

	assert.Equal(t, "out", store.GetString("output.dir"))
}

func TestNestMap(t *testing.T) {
	nested := nestMap(map[string]any{"a.b": 1, "a.c": "x", "d": true})
	assert.Equal(t, map[string]any{
		"a": map[string]any{"b": 1, "c": "x"},
		"d": true,
	}, nested)
}
