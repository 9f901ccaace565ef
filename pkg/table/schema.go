package table

// Kind is the inferred storage class of a column, ordered by widening:
// null ⊂ integer ⊂ float ⊂ string. Bytes sit outside the numeric chain and
// widen to string when mixed with anything else.
type Kind int

const (
	KindNull Kind = iota
	KindInt
	KindFloat
	KindString
	KindBytes
)

// SQLType returns the column type name used in CREATE TABLE statements.
func (k Kind) SQLType() string {
	switch k {
	case KindInt:
		return "BIGINT"
	case KindFloat:
		return "DOUBLE PRECISION"
	case KindBytes:
		return "BLOB"
	default:
		return "TEXT"
	}
}

// Column pairs a column name with its inferred kind.
type Column struct {
	Name string
	Kind Kind
}

// TypeInferenceError reports a table for which no schema can be inferred.
type TypeInferenceError struct {
	Reason string
}

func (e *TypeInferenceError) Error() string {
	return "cannot infer schema: " + e.Reason
}

// InferSchema scans every row per column and widens each column's kind across
// the observed values. A column with no non-null values infers to string.
// An empty table (zero rows or zero columns) fails with *TypeInferenceError.
func (t *Table) InferSchema() ([]Column, error) {
	if len(t.header) == 0 {
		return nil, &TypeInferenceError{Reason: "table has no columns"}
	}
	if len(t.rows) == 0 {
		return nil, &TypeInferenceError{Reason: "table has no rows"}
	}

	kinds := make([]Kind, len(t.header))
	for _, row := range t.rows {
		for i, v := range row {
			kinds[i] = widen(kinds[i], kindOf(v))
		}
	}

	cols := make([]Column, len(t.header))
	for i, name := range t.header {
		k := kinds[i]
		if k == KindNull {
			k = KindString
		}
		cols[i] = Column{Name: name, Kind: k}
	}
	return cols, nil
}

func kindOf(v Value) Kind {
	switch v.(type) {
	case nil:
		return KindNull
	case int64:
		return KindInt
	case float64:
		return KindFloat
	case []byte:
		return KindBytes
	default:
		return KindString
	}
}

// widen folds a newly observed kind into the running kind for a column.
// The engine never rejects a value, it only widens.
func widen(have, got Kind) Kind {
	switch {
	case have == got:
		return have
	case have == KindNull:
		return got
	case got == KindNull:
		return have
	case have == KindBytes || got == KindBytes:
		return KindString
	case have < got:
		return got
	default:
		return have
	}
}

// String returns the SQL type name for the kind.
func (k Kind) String() string { return k.SQLType() }
