package assay

const (
	// MissingMethodCode stands in for an absent method code before resolution.
	MissingMethodCode = "unk"
	// UnknownCategory is the category of any unmapped method code.
	UnknownCategory = "unknown"
)

// MethodCategories are the high-level groupings of a laboratory method code.
type MethodCategories struct {
	Determination string
	Digestion     string
	Fusion        string
}

// MethodResolver maps a method code to its categories. Implementations must
// return UnknownCategory for anything they cannot map and must be safe for
// concurrent use.
type MethodResolver interface {
	Resolve(code string) MethodCategories
}

// MethodTable is a MethodResolver backed by the method reference table. Each
// category is an independent mapping, so a code may resolve its determination
// while its fusion type stays unknown. The nil *MethodTable resolves everything
// to UnknownCategory.
type MethodTable struct {
	determination map[string]string
	digestion     map[string]string
	fusion        map[string]string
}

// NewMethodTable returns an empty table.
func NewMethodTable() *MethodTable {
	return &MethodTable{
		determination: map[string]string{},
		digestion:     map[string]string{},
		fusion:        map[string]string{},
	}
}

// Add records the categories for code. Blank categories are left unmapped and
// later rows for the same code replace earlier ones.
func (t *MethodTable) Add(code string, c MethodCategories) {
	put := func(m map[string]string, v string) {
		if v == "" {
			delete(m, code)
			return
		}
		m[code] = v
	}
	put(t.determination, c.Determination)
	put(t.digestion, c.Digestion)
	put(t.fusion, c.Fusion)
}

// Len returns the number of distinct codes with at least one mapped category.
func (t *MethodTable) Len() int {
	if t == nil {
		return 0
	}
	seen := map[string]struct{}{}
	for _, m := range []map[string]string{t.determination, t.digestion, t.fusion} {
		for k := range m {
			seen[k] = struct{}{}
		}
	}
	return len(seen)
}

// Resolve implements MethodResolver.
func (t *MethodTable) Resolve(code string) MethodCategories {
	out := MethodCategories{Determination: UnknownCategory, Digestion: UnknownCategory, Fusion: UnknownCategory}
	if t == nil {
		return out
	}
	if v, ok := t.determination[code]; ok {
		out.Determination = v
	}
	if v, ok := t.digestion[code]; ok {
		out.Digestion = v
	}
	if v, ok := t.fusion[code]; ok {
		out.Fusion = v
	}
	return out
}
