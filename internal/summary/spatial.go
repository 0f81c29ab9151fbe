package summary

// Attributes are a drillhole's spatial columns aligned with SpatialTable.Columns.
// nil means the drillhole had no row in the spatial table.
type Attributes []string

// SpatialTable holds drillhole spatial attributes keyed by drillhole number.
// The nil *SpatialTable matches nothing.
type SpatialTable struct {
	Columns []string
	rows    map[int64][]string
}

// NewSpatialTable returns an empty table with the given attribute columns.
func NewSpatialTable(columns []string) *SpatialTable {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &SpatialTable{Columns: cols, rows: map[int64][]string{}}
}

// Add stores the attributes for a drillhole. The first row for a drillhole
// wins; Add reports false for a duplicate. Values are padded or cut to the
// column count.
func (t *SpatialTable) Add(drillhole int64, values []string) bool {
	if _, dup := t.rows[drillhole]; dup {
		return false
	}
	row := make([]string, len(t.Columns))
	copy(row, values)
	t.rows[drillhole] = row
	return true
}

// Len returns the number of drillholes in the table.
func (t *SpatialTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// Lookup returns a copy of the attributes for drillhole, or nil when absent.
func (t *SpatialTable) Lookup(drillhole int64) Attributes {
	if t == nil {
		return nil
	}
	row, ok := t.rows[drillhole]
	if !ok {
		return nil
	}
	out := make(Attributes, len(row))
	copy(out, row)
	return out
}

// ColumnNames returns the attribute columns; empty for a nil table.
func (t *SpatialTable) ColumnNames() []string {
	if t == nil {
		return nil
	}
	return t.Columns
}
