package fallback

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMissingKeyIsNotAnError(t *testing.T) {
	st := New(t.TempDir())

	var out map[string]string
	found, err := st.Get("calendar_notes_v1", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSetGetRoundTrip(t *testing.T) {
	st := New(t.TempDir())

	in := map[string]string{"2025-03-01": "桌遊之夜"}
	require.NoError(t, st.Set("calendar_notes_v1", in))

	var out map[string]string
	found, err := st.Get("calendar_notes_v1", &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, in, out)
}

func TestRemoveMissingKey(t *testing.T) {
	st := New(t.TempDir())
	assert.NoError(t, st.Remove("tidak_ada"))
}

func TestAppendCappedDropsOldestFirst(t *testing.T) {
	st := New(t.TempDir())

	for i := 0; i < 250; i++ {
		entry, _ := json.Marshal(map[string]int{"n": i})
		require.NoError(t, st.AppendCapped("chat_messages_v1", entry, 200))
	}

	entries, err := st.ReadLog("chat_messages_v1")
	require.NoError(t, err)
	require.Len(t, entries, 200)

	var first, last map[string]int
	require.NoError(t, json.Unmarshal(entries[0], &first))
	require.NoError(t, json.Unmarshal(entries[199], &last))
	assert.Equal(t, 50, first["n"], "entri paling lama harus terbuang")
	assert.Equal(t, 249, last["n"])
}

func TestKeySanitized(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Set("aneh/../key dengan spasi", "v"))

	var out string
	found, err := st.Get("aneh/../key dengan spasi", &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "v", out)
}
