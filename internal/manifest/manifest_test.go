package manifest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []ClipRecord {
	return []ClipRecord{
		{
			ClipIndex:        1,
			Start:            0,
			End:              95,
			Duration:         95,
			Title:            "First clip",
			Description:      "Description one",
			TextPreview:      "preview one",
			FileName:         "vid_clip_01.mp4",
			OriginalVideoURL: "https://youtu.be/vid",
		},
		{
			ClipIndex:        2,
			Start:            95,
			End:              200,
			Duration:         105,
			Title:            "Second clip",
			Description:      "Description two",
			TextPreview:      "preview two",
			FileName:         "vid_clip_02.mp4",
			OriginalVideoURL: "https://youtu.be/vid",
		},
	}
}

func TestStoreSaveLoadRoundtrip(t *testing.T) {
	store := NewStore(t.TempDir())
	records := sampleRecords()

	require.NoError(t, store.Save("vid", records))

	loaded, err := store.Load("vid")
	require.NoError(t, err)
	assert.Equal(t, records, loaded)
}

func TestStoreLoadMissing(t *testing.T) {
	store := NewStore(t.TempDir())

	_, err := store.Load("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStorePath(t *testing.T) {
	store := NewStore("/data/out")
	assert.Equal(t, filepath.Join("/data/out", "vid", "manifest.json"), store.Path("vid"))
}

func TestStoreSaveIsWholeFileReplacement(t *testing.T) {
	store := NewStore(t.TempDir())

	require.NoError(t, store.Save("vid", sampleRecords()))
	require.NoError(t, store.Save("vid", sampleRecords()[:1]))

	loaded, err := store.Load("vid")
	require.NoError(t, err)
	assert.Len(t, loaded, 1)
}

func TestStoreSaveLeavesNoTempFiles(t *testing.T) {
	root := t.TempDir()
	store := NewStore(root)
	require.NoError(t, store.Save("vid", sampleRecords()))

	entries, err := os.ReadDir(filepath.Join(root, "vid"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "manifest.json", entries[0].Name())
}

func TestStoreSaveWritesIndentedJSON(t *testing.T) {
	root := t.TempDir()
	store := NewStore(root)
	require.NoError(t, store.Save("vid", sampleRecords()))

	data, err := os.ReadFile(store.Path("vid"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "[\n  {"))

	var records []ClipRecord
	require.NoError(t, json.Unmarshal(data, &records))
	assert.Len(t, records, 2)
}

func TestStoreLoadBackfillsTextPreview(t *testing.T) {
	root := t.TempDir()
	store := NewStore(root)

	longDescription := strings.Repeat("d", 400)
	records := sampleRecords()
	records[0].TextPreview = ""
	records[0].Description = longDescription
	require.NoError(t, store.Save("vid", records))

	loaded, err := store.Load("vid")
	require.NoError(t, err)
	assert.Equal(t, longDescription[:300], loaded[0].TextPreview)
	assert.Equal(t, "preview two", loaded[1].TextPreview)
}

func TestStoreLoadBackfillsMultiBytePreview(t *testing.T) {
	root := t.TempDir()
	store := NewStore(root)

	records := sampleRecords()[:1]
	records[0].TextPreview = ""
	records[0].Description = strings.Repeat("…", 400)
	require.NoError(t, store.Save("vid", records))

	loaded, err := store.Load("vid")
	require.NoError(t, err)
	assert.True(t, utf8.ValidString(loaded[0].TextPreview))
	assert.Equal(t, strings.Repeat("…", 300), loaded[0].TextPreview)
}

func TestSortByIndex(t *testing.T) {
	records := []ClipRecord{
		{ClipIndex: 3},
		{ClipIndex: 1},
		{ClipIndex: 2},
	}

	SortByIndex(records)

	assert.Equal(t, 1, records[0].ClipIndex)
	assert.Equal(t, 2, records[1].ClipIndex)
	assert.Equal(t, 3, records[2].ClipIndex)
}

func TestSelectWindow(t *testing.T) {
	records := []ClipRecord{
		{ClipIndex: 1},
		{ClipIndex: 2},
		{ClipIndex: 3},
		{ClipIndex: 4},
	}

	tests := []struct {
		name       string
		startIndex int
		maxClips   int
		want       []int
	}{
		{"all from start", 1, 0, []int{1, 2, 3, 4}},
		{"offset start", 3, 0, []int{3, 4}},
		{"capped", 1, 2, []int{1, 2}},
		{"offset and capped", 2, 2, []int{2, 3}},
		{"start beyond end", 9, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			selected := SelectWindow(records, tt.startIndex, tt.maxClips)
			var got []int
			for _, r := range selected {
				got = append(got, r.ClipIndex)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMergeByIndex(t *testing.T) {
	records := sampleRecords()

	MergeByIndex(records, ClipRecord{ClipIndex: 2, Title: "Rewritten"})

	assert.Equal(t, "First clip", records[0].Title)
	assert.Equal(t, "Rewritten", records[1].Title)
}

func TestMergeByIndexUnknownIndexIsNoop(t *testing.T) {
	records := sampleRecords()
	before := make([]ClipRecord, len(records))
	copy(before, records)

	MergeByIndex(records, ClipRecord{ClipIndex: 99, Title: "ghost"})

	assert.Equal(t, before, records)
}
