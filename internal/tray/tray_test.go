package tray

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMenuCallbacks(t *testing.T) {
	opened, quit := 0, 0
	menu := Menu(Callbacks{
		OnOpen: func() { opened++ },
		OnQuit: func() { quit++ },
	})

	require.Len(t, menu.Items, 3)
	menu.Items[0].Action()
	menu.Items[2].Action()

	assert.Equal(t, 1, opened)
	assert.Equal(t, 1, quit)
	assert.True(t, menu.Items[1].IsSeparator)
}

func TestMenuWithoutCallbacks(t *testing.T) {
	menu := Menu(Callbacks{})
	assert.NotPanics(t, func() {
		menu.Items[0].Action()
		menu.Items[2].Action()
	})
}
