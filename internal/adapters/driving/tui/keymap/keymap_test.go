package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap_Bindings(t *testing.T) {
	km := DefaultKeyMap()
	require.NotNil(t, km)

	tests := []struct {
		name    string
		binding key.Binding
		keys    []string
	}{
		{"quit", km.Quit, []string{"q", "ctrl+c"}},
		{"help", km.Help, []string{"?"}},
		{"up", km.Up, []string{"up", "k"}},
		{"down", km.Down, []string{"down", "j"}},
		{"top", km.Top, []string{"g"}},
		{"bottom", km.Bottom, []string{"G"}},
		{"next entry", km.NextEntry, []string{"n"}},
		{"prev entry", km.PrevEntry, []string{"p"}},
		{"filter", km.Filter, []string{"f"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range tt.keys {
				assert.Contains(t, tt.binding.Keys(), k)
			}
			assert.NotEmpty(t, tt.binding.Help().Desc)
		})
	}
}

func TestKeyMap_Help(t *testing.T) {
	km := DefaultKeyMap()

	assert.NotEmpty(t, km.ShortHelp())
	full := km.FullHelp()
	require.Len(t, full, 3)
	total := 0
	for _, group := range full {
		total += len(group)
	}
	assert.Equal(t, 11, total)
}
