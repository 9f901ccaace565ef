package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInferSchema(t *testing.T) {
	tests := []struct {
		name string
		rows [][]Value
		want []Kind
	}{
		{
			name: "single kinds",
			rows: [][]Value{{int64(1), 1.5, "s", []byte("b")}},
			want: []Kind{KindInt, KindFloat, KindString, KindBytes},
		},
		{
			name: "int widens to float",
			rows: [][]Value{{int64(1)}, {2.5}},
			want: []Kind{KindFloat},
		},
		{
			name: "float widens to string",
			rows: [][]Value{{1.5}, {"x"}},
			want: []Kind{KindString},
		},
		{
			name: "int widens to string",
			rows: [][]Value{{int64(1)}, {"x"}},
			want: []Kind{KindString},
		},
		{
			name: "null does not narrow",
			rows: [][]Value{{nil}, {int64(1)}, {nil}},
			want: []Kind{KindInt},
		},
		{
			name: "all-null column defaults to string",
			rows: [][]Value{{nil}, {nil}},
			want: []Kind{KindString},
		},
		{
			name: "bytes mixed with string widens to string",
			rows: [][]Value{{[]byte("b")}, {"s"}},
			want: []Kind{KindString},
		},
		{
			name: "bytes mixed with int widens to string",
			rows: [][]Value{{[]byte("b")}, {int64(1)}},
			want: []Kind{KindString},
		},
		{
			name: "widening is order independent",
			rows: [][]Value{{"x"}, {int64(1)}},
			want: []Kind{KindString},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := make([]string, len(tt.rows[0]))
			for i := range header {
				header[i] = "c" + string(rune('0'+i))
			}
			tbl, err := FromParts(header, tt.rows)
			require.NoError(t, err)

			cols, err := tbl.InferSchema()
			require.NoError(t, err)
			require.Len(t, cols, len(tt.want))
			for i, want := range tt.want {
				assert.Equal(t, want, cols[i].Kind, "column %d", i)
				assert.Equal(t, header[i], cols[i].Name)
			}
		})
	}
}

func TestInferSchemaEmptyTable(t *testing.T) {
	var inferErr *TypeInferenceError

	tbl, err := FromParts([]string{"a"}, nil)
	require.NoError(t, err)
	_, err = tbl.InferSchema()
	require.ErrorAs(t, err, &inferErr)
	assert.Contains(t, inferErr.Error(), "no rows")

	tbl, err = FromParts(nil, nil)
	require.NoError(t, err)
	_, err = tbl.InferSchema()
	require.ErrorAs(t, err, &inferErr)
	assert.Contains(t, inferErr.Error(), "no columns")
}

func TestKindSQLType(t *testing.T) {
	assert.Equal(t, "BIGINT", KindInt.SQLType())
	assert.Equal(t, "DOUBLE PRECISION", KindFloat.SQLType())
	assert.Equal(t, "TEXT", KindString.SQLType())
	assert.Equal(t, "BLOB", KindBytes.SQLType())
	assert.Equal(t, "TEXT", KindNull.SQLType())
}
