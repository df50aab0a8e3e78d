package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("transcript.interviewer_name", "Hoorad Abootalebi"))
	require.NoError(t, store.Set("transcript.leading_boundary", 4))
	require.NoError(t, store.Set("output.metadata", true))

	val, ok := store.Get("transcript.interviewer_name")
	assert.True(t, ok)
	assert.Equal(t, "Hoorad Abootalebi", val)
	assert.Equal(t, 4, store.GetInt("transcript.leading_boundary"))
	assert.True(t, store.GetBool("output.metadata"))

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("string", "value")
	_ = store.Set("int", 42)
	_ = store.Set("int64", int64(43))
	_ = store.Set("float", 3.9)
	_ = store.Set("bool", true)

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"string", store.GetString("string"), "value"},
		{"string from int", store.GetString("int"), ""},
		{"int", store.GetInt("int"), 42},
		{"int from int64", store.GetInt("int64"), 43},
		{"int from float truncates", store.GetInt("float"), 3},
		{"int from string", store.GetInt("string"), 0},
		{"bool", store.GetBool("bool"), true},
		{"bool from string", store.GetBool("string"), false},
		{"missing string", store.GetString("nope"), ""},
		{"missing int", store.GetInt("nope"), 0},
		{"missing bool", store.GetBool("nope"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestConfigStore_SaveLoadPath(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("output.format", "text")

	assert.NoError(t, store.Save())
	assert.NoError(t, store.Load())
	assert.Equal(t, "text", store.GetString("output.format"))
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(id int) {
			defer wg.Done()
			_ = store.Set("transcript.leading_boundary", id)
		}(i)
		go func() {
			defer wg.Done()
			_ = store.GetInt("transcript.leading_boundary")
		}()
	}
	wg.Wait()

	_, ok := store.Get("transcript.leading_boundary")
	assert.True(t, ok)
}

func TestConfigStore_SeedAndKeys(t *testing.T) {
	store := NewConfigStore(map[string]any{
		"output.format":               "yaml",
		"transcript.interviewer_name": "Alex Morgan",
	})
	require.NoError(t, store.Set("ledger.enabled", false))

	assert.Equal(t, "yaml", store.GetString("output.format"))
	assert.Equal(t, []string{"ledger.enabled", "output.format", "transcript.interviewer_name"}, store.Keys())
	assert.Equal(t, ":memory:", store.Path())
}
