package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/KaramelBytes/drillchem-cli/internal/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFrame_ReplacesTable(t *testing.T) {
	ctx := context.Background()
	db, err := Open(filepath.Join(t.TempDir(), "out.sqlite"))
	require.NoError(t, err)
	defer db.Close()

	f := &table.Frame{
		Columns: []table.Column{{Name: "DRILLHOLE_NUMBER", Kind: table.Integer}, {Name: "converted_ppm", Kind: table.Real}, {Name: "EAST\"ING", Kind: table.Text}},
		Rows: [][]any{
			{int64(1), 0.5, "500"},
			{int64(2), 1.5, nil},
		},
	}
	require.NoError(t, db.WriteFrame(ctx, "Au_dh_max", f))
	n, err := db.Count(ctx, "Au_dh_max")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	var ppm float64
	var east *string
	require.NoError(t, db.db.QueryRowContext(ctx, `SELECT converted_ppm, "EAST""ING" FROM Au_dh_max WHERE DRILLHOLE_NUMBER = 2`).Scan(&ppm, &east))
	assert.Equal(t, 1.5, ppm)
	assert.Nil(t, east)

	f.Rows = f.Rows[:1]
	require.NoError(t, db.WriteFrame(ctx, "Au_dh_max", f))
	n, err = db.Count(ctx, "Au_dh_max")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestWriteFrame_NoColumns(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "out.sqlite"))
	require.NoError(t, err)
	defer db.Close()
	assert.Error(t, db.WriteFrame(context.Background(), "empty", &table.Frame{}))
}

func TestTableName(t *testing.T) {
	assert.Equal(t, "TOT_C_dh_interval_10", TableName("TOT_C_dh_interval_10"))
	assert.Equal(t, "a_b_c", TableName("a-b.c"))
}
