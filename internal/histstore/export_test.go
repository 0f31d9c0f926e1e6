package histstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aaronvstory/photochop-progress-analyzer/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exportSnapshots builds a small fixed history for export tests.
func exportSnapshots() []schema.Snapshot {
	return []schema.Snapshot{sampleSnapshot(0), sampleSnapshot(1), sampleSnapshot(2)}
}

func TestConvertSnapshots(t *testing.T) {
	records := ConvertSnapshots(exportSnapshots())
	require.Len(t, records, 3)

	assert.Equal(t, int32(10), records[0].TotalFolders)
	assert.Equal(t, int32(0), records[0].ProcessedCount)
	assert.Equal(t, "[]", records[0].CompletedNames)
	assert.Equal(t, int32(2), records[2].ProcessedCount)
	assert.JSONEq(t, `["user_01"]`, records[2].CompletedNames)
	assert.InDelta(t, 20.0, records[2].ProgressPercent, 0.001)
}

func TestWriteHistoryParquetRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.parquet")
	records := ConvertSnapshots(exportSnapshots())
	require.NoError(t, WriteHistoryParquet(records, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	reader := parquet.NewGenericReader[HistoryRecord](f)
	defer func() { _ = reader.Close() }()

	out := make([]HistoryRecord, 4)
	n, _ := reader.Read(out)
	require.Equal(t, 3, n)
	assert.Equal(t, records, out[:3])
}

func TestExecuteHistoryExportEmpty(t *testing.T) {
	store := NewLogStore(filepath.Join(t.TempDir(), "h.jsonl"))
	err := ExecuteHistoryExport(store, filepath.Join(t.TempDir(), "out.parquet"))
	assert.Error(t, err)
}

func TestExecuteHistoryExportMissingOutput(t *testing.T) {
	store := NewLogStore(filepath.Join(t.TempDir(), "h.jsonl"))
	assert.Error(t, ExecuteHistoryExport(store, ""))
}

func TestExecuteHistoryExport(t *testing.T) {
	dir := t.TempDir()
	store := NewLogStore(filepath.Join(dir, "h.jsonl"))
	for i := range 3 {
		require.NoError(t, store.Append(sampleSnapshot(i)))
	}

	out := filepath.Join(dir, "out.parquet")
	require.NoError(t, ExecuteHistoryExport(store, out))

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
