package typelist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalSortedKeyOrder(t *testing.T) {
	v := map[string]any{
		"zeta":       1,
		"properties": []any{},
		"name":       "Account",
		"alpha":      true,
		"mapping":    map[string]any{},
	}

	out, err := MarshalSorted(v)
	require.NoError(t, err)

	want := `{
  "name": "Account",
  "alpha": true,
  "zeta": 1,
  "mapping": {},
  "properties": []
}
`
	assert.Equal(t, want, string(out))
}

func TestMarshalSortedNamedRecordArray(t *testing.T) {
	v := []any{
		map[string]any{"name": "zebra"},
		map[string]any{"name": "account"},
		map[string]any{"name": "membership"},
	}

	out, err := MarshalSorted(v)
	require.NoError(t, err)

	want := `[
  {
    "name": "account"
  },
  {
    "name": "membership"
  },
  {
    "name": "zebra"
  }
]
`
	assert.Equal(t, want, string(out))
}

func TestMarshalSortedScalarArrayKeepsOrder(t *testing.T) {
	out, err := MarshalSorted([]string{"zebra", "account"})
	require.NoError(t, err)
	assert.Equal(t, "[\n  \"zebra\",\n  \"account\"\n]\n", string(out))
}

func TestMarshalSortedMixedArrayKeepsOrder(t *testing.T) {
	// One element without a name field disables by-name ordering for the
	// whole array.
	v := []any{
		map[string]any{"name": "zebra"},
		map[string]any{"id": 1},
	}

	out, err := MarshalSorted(v)
	require.NoError(t, err)

	want := `[
  {
    "name": "zebra"
  },
  {
    "id": 1
  }
]
`
	assert.Equal(t, want, string(out))
}

func TestMarshalSortedNumbersSurviveRoundTrip(t *testing.T) {
	out, err := MarshalSorted(map[string]any{"big": int64(9007199254740993), "frac": 0.5})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"big": 9007199254740993`)
	assert.Contains(t, string(out), `"frac": 0.5`)
}

func TestMarshalSortedDeterministic(t *testing.T) {
	v := map[string]any{
		"types": []any{
			map[string]any{"name": "b", "kind": "table", "properties": []any{
				map[string]any{"name": "y"}, map[string]any{"name": "x"},
			}},
			map[string]any{"name": "a", "kind": "enum"},
		},
	}

	first, err := MarshalSorted(v)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := MarshalSorted(v)
		require.NoError(t, err)
		assert.Equal(t, string(first), string(again))
	}
}

func TestMarshalSortedEmptyContainers(t *testing.T) {
	out, err := MarshalSorted(map[string]any{"a": map[string]any{}, "b": []any{}})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": {},\n  \"b\": []\n}\n", string(out))
}
