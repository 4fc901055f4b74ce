package layout

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PixPMusic/gopher-chroma/internal/device"
	"github.com/PixPMusic/gopher-chroma/internal/matrix"
)

func loadTiny(t *testing.T) Description {
	t.Helper()
	desc, err := NewLoader(nil, "testdata").Load("tiny")
	require.NoError(t, err)
	return desc
}

func TestForDimensions(t *testing.T) {
	tests := []struct {
		dims matrix.Dimensions
		want string
		ok   bool
	}{
		{matrix.Dimensions{Rows: 6, Cols: 16}, "razerblade16", true},
		{matrix.Dimensions{Rows: 6, Cols: 22}, "razerdefault22", true},
		{matrix.Dimensions{Rows: 6, Cols: 25}, "razerblade25", true},
		{matrix.Dimensions{Rows: 6, Cols: 21}, "", false},
		{matrix.Dimensions{Rows: 1, Cols: 15}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.dims.String(), func(t *testing.T) {
			got, ok := ForDimensions(tt.dims)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseArrayAndObjectRows(t *testing.T) {
	desc := loadTiny(t)
	assert.Equal(t, []string{"de_DE", "en_GB"}, desc.Locales())

	gb := desc["en_GB"]
	require.Len(t, gb, 2)
	require.Len(t, gb[0], 3)
	assert.Equal(t, "Esc", *gb[0][0].Label)
	assert.Nil(t, gb[0][1].Label)
	assert.Equal(t, 90, gb[0][2].Width)
	assert.Equal(t, &matrix.Position{Row: 0, Col: 2}, gb[0][2].Matrix)
	assert.True(t, gb[1][0].Disabled)
	assert.Nil(t, gb[1][1].Matrix)

	// Named rows come out ordered by name
	de := desc["de_DE"]
	require.Len(t, de, 2)
	assert.Equal(t, "Q", *de[0][0].Label)
	assert.Equal(t, "Y", *de[1][0].Label)
}

func TestParseRejectsBadMatrix(t *testing.T) {
	_, err := Parse([]byte(`{"en_US": [[{"label": "A", "matrix": [1]}]]}`))
	assert.ErrorIs(t, err, ErrLayoutMalformed)

	_, err = Parse([]byte(`null`))
	assert.ErrorIs(t, err, ErrLayoutMalformed)
}

func TestKeyMarshalRoundTrip(t *testing.T) {
	desc := loadTiny(t)
	data, err := desc["en_GB"][0][2].MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"label": "F1", "width": 90, "matrix": [0, 2]}`, string(data))
}

func TestLoaderSearchOrder(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(second, "kb.json"), []byte(`{"en_US": []}`), 0644))

	desc, err := NewLoader(nil, first, second).Load("kb")
	require.NoError(t, err)
	assert.Contains(t, desc, "en_US")

	require.NoError(t, os.WriteFile(filepath.Join(first, "kb.json"), []byte(`{"de_DE": []}`), 0644))
	desc, err = NewLoader(nil, first, second).Load("kb")
	require.NoError(t, err)
	assert.Contains(t, desc, "de_DE")
}

func TestLoaderErrors(t *testing.T) {
	_, err := NewLoader(nil, t.TempDir()).Load("missing")
	assert.ErrorIs(t, err, ErrLayoutNotFound)

	_, err = NewLoader(nil).Load("missing")
	assert.ErrorIs(t, err, ErrLayoutNotFound)

	_, err = NewLoader(nil, "testdata").Load("broken")
	assert.ErrorIs(t, err, ErrLayoutMalformed)
}

func TestBundledDefaultLayout(t *testing.T) {
	desc, err := NewLoader(nil, filepath.Join("..", "..", "data", "matrix_layouts")).Load("razerdefault22")
	require.NoError(t, err)

	res, err := ResolveLocale(desc, "en_US")
	require.NoError(t, err)
	require.Len(t, res.Rows, 6)

	dims := matrix.Dimensions{Rows: 6, Cols: 22}
	seen := map[matrix.Position]bool{}
	for _, n := range Keyboard(res.Rows).Buttons() {
		require.NotNil(t, n.Pos, n.Label)
		assert.True(t, dims.Contains(*n.Pos), "%s at %s", n.Label, n.Pos)
		assert.False(t, seen[*n.Pos], "duplicate position %s", n.Pos)
		seen[*n.Pos] = true
	}
}

func TestResolveLocale(t *testing.T) {
	desc := loadTiny(t)

	tests := []struct {
		name     string
		desc     Description
		reported string
		want     string
		notice   bool
		err      error
	}{
		{"reported present", desc, "en_GB", "en_GB", false, nil},
		{"unknown falls back in preference order", desc, device.LayoutUnknown, "de_DE", true, nil},
		{"empty treated as unknown", desc, "", "de_DE", true, nil},
		{"unknown falls back to en_GB", Description{"en_GB": {}}, device.LayoutUnknown, "en_GB", true, nil},
		{"reported absent", desc, "fr_FR", "", false, ErrLocaleUnsupported},
		{"no fallback", Description{"xx_YY": {}}, device.LayoutUnknown, "", false, ErrNoFallbackLocale},
		{"absent with no fallback", Description{"pt_BR": {}}, "xx_YY", "", false, ErrLocaleUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := ResolveLocale(tt.desc, tt.reported)
			if tt.err != nil {
				assert.True(t, errors.Is(err, tt.err), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Name)
			assert.Equal(t, tt.notice, res.Notice != "")
		})
	}
}

func TestKeyboardTree(t *testing.T) {
	tree := Keyboard(loadTiny(t)["en_GB"])

	require.Len(t, tree.Rows, 2)
	row := tree.Rows[0]
	require.Len(t, row, 3)

	assert.Equal(t, Node{Kind: NodeButton, Label: "Esc", Width: DefaultKeyWidth, Height: KeyHeight,
		Pos: &matrix.Position{Row: 0, Col: 0}}, row[0])
	assert.Equal(t, Node{Kind: NodeSpacer, Width: SpacerWidth, Height: SpacerHeight}, row[1])
	assert.Equal(t, 90, row[2].Width)

	fn := tree.Rows[1][0]
	assert.True(t, fn.Disabled)
	logo := tree.Rows[1][1]
	assert.Nil(t, logo.Pos)

	assert.Len(t, tree.Buttons(), 4)
}

func TestMousematTree(t *testing.T) {
	tree := Mousemat(matrix.Dimensions{Rows: 1, Cols: 15})

	require.Len(t, tree.Rows, 1)
	require.Len(t, tree.Rows[0], 15)
	for col, n := range tree.Rows[0] {
		assert.Equal(t, NodeButton, n.Kind)
		assert.Equal(t, matrix.Position{Row: 0, Col: col}, *n.Pos)
	}
	assert.Equal(t, "14", tree.Rows[0][14].Label)
}

func TestDiscoveryTree(t *testing.T) {
	tree := Discovery(matrix.Dimensions{Rows: 3, Cols: 4})

	require.Len(t, tree.Rows, 3)
	buttons := tree.Buttons()
	require.Len(t, buttons, 12)
	assert.Equal(t, "2_3", buttons[11].Label)
	assert.Equal(t, matrix.Position{Row: 2, Col: 3}, *buttons[11].Pos)
}

func TestMouseTreeIsEmpty(t *testing.T) {
	assert.Empty(t, Mouse().Buttons())
}
