package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoveDuplicates(t *testing.T) {
	tests := []struct {
		name string
		csv  string
		want [][]string
	}{
		{
			name: "keeps first occurrence in order",
			csv:  "a,b\n1,x\n2,y\n1,x\n3,z\n2,y\n",
			want: [][]string{{"1", "x"}, {"2", "y"}, {"3", "z"}},
		},
		{
			name: "missing equals missing",
			csv:  "a,b\n1,\n1,\n1,2\n",
			want: [][]string{{"1", "<nil>"}, {"1", "2"}},
		},
		{
			name: "partial matches are kept",
			csv:  "a,b\n1,x\n1,y\n",
			want: [][]string{{"1", "x"}, {"1", "y"}},
		},
		{
			name: "numeric spellings compare by value",
			csv:  "a\n1\n1.0\n01\n",
			want: [][]string{{"1"}},
		},
		{
			name: "separator inside text does not collide",
			csv:  "a,b\n\"x;\",y\nx,\";y\"\n",
			want: [][]string{{"x;", "y"}, {"x", ";y"}},
		},
		{
			name: "no rows",
			csv:  "a,b\n",
			want: [][]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := mustParseCSV(t, tt.csv)
			out := RemoveDuplicates(in)

			require.NoError(t, out.Validate())
			assert.Equal(t, tt.want, cells(out))
			assert.Equal(t, in.ColumnNames(), out.ColumnNames())
		})
	}
}

func TestRemoveDuplicates_Idempotent(t *testing.T) {
	in := mustParseCSV(t, "a,b\n1,x\n1,x\n2,\n2,\n3,z\n")

	once := RemoveDuplicates(in)
	twice := RemoveDuplicates(once)

	assert.Equal(t, cells(once), cells(twice))
}

func TestRemoveDuplicates_NegativeZero(t *testing.T) {
	in := Table{Columns: []Column{numCol("a", num(0), num(math.Copysign(0, -1)))}}

	assert.Equal(t, 1, RemoveDuplicates(in).NumRows())
}

func TestRemoveDuplicates_DoesNotMutateInput(t *testing.T) {
	in := mustParseCSV(t, "a\n1\n1\n")
	before := cells(in)

	RemoveDuplicates(in)

	assert.Equal(t, before, cells(in))
}

func TestFillMissingWithMean(t *testing.T) {
	in := Table{Columns: []Column{
		numCol("a", num(1), nan(), num(3)),
		textCol("name", txt("x"), nan(), txt("z")),
		numCol("b", nan(), num(2), nan()),
	}}

	out, err := FillMissingWithMean(in)
	require.NoError(t, err)
	require.NoError(t, out.Validate())

	assert.Equal(t, [][]string{
		{"1", "x", "2"},
		{"2", "<nil>", "2"},
		{"3", "z", "2"},
	}, cells(out))

	// input untouched
	assert.True(t, in.Columns[0].Values[1].Missing)
}

func TestFillMissingWithMean_PresentValuesUnchanged(t *testing.T) {
	in := mustParseCSV(t, "a\n1.5\n\n2.25\n-4\n")

	out, err := FillMissingWithMean(in)
	require.NoError(t, err)

	for i, v := range in.Columns[0].Values {
		if !v.Missing {
			assert.Equal(t, v.Num, out.Columns[0].Values[i].Num)
		}
	}
	for _, v := range out.Columns[0].Values {
		assert.False(t, v.Missing)
	}
	assert.InDelta(t, (1.5+2.25-4)/3, out.Columns[0].Values[1].Num, 1e-12)
}

func TestFillMissingWithMean_UndefinedMean(t *testing.T) {
	in := Table{Columns: []Column{
		numCol("a", num(1), nan()),
		numCol("empty", nan(), nan()),
		numCol("empty2", nan(), nan()),
	}}

	out, err := FillMissingWithMean(in)
	require.Error(t, err)
	assert.True(t, IsRecoverable(err))

	var um *UndefinedMeanError
	require.ErrorAs(t, err, &um)
	assert.Equal(t, "empty", um.Column)
	assert.Len(t, unjoin(err), 2)

	// other columns are still filled
	assert.Equal(t, [][]string{{"1", "<nil>", "<nil>"}, {"1", "<nil>", "<nil>"}}, cells(out))
}

func TestFillMissingWithMean_NothingMissing(t *testing.T) {
	in := Table{Columns: []Column{numCol("empty")}}

	_, err := FillMissingWithMean(in)
	assert.NoError(t, err, "a column without rows has nothing to fill")
}

func TestColumnMean(t *testing.T) {
	mean, ok := ColumnMean(numCol("a", num(1), nan(), num(2)))
	assert.True(t, ok)
	assert.Equal(t, 1.5, mean)

	_, ok = ColumnMean(numCol("a", nan()))
	assert.False(t, ok)

	_, ok = ColumnMean(textCol("t", txt("1")))
	assert.False(t, ok)
}

func TestSelectColumns(t *testing.T) {
	in := mustParseCSV(t, "a,b,c\n1,2,3\n4,5,6\n")

	tests := []struct {
		name      string
		names     []string
		wantNames []string
	}{
		{"nil keeps all", nil, []string{"a", "b", "c"}},
		{"empty keeps none", []string{}, []string{}},
		{"subset in requested order", []string{"c", "a"}, []string{"c", "a"}},
		{"duplicate pick is ignored", []string{"b", "b"}, []string{"b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := SelectColumns(in, tt.names)
			require.NoError(t, err)
			require.NoError(t, out.Validate())
			assert.Equal(t, tt.wantNames, out.ColumnNames())
			assert.Equal(t, in.NumRows(), out.NumRows())
		})
	}
}

func TestSelectColumns_PreservesRowOrder(t *testing.T) {
	in := mustParseCSV(t, "a,b\n3,x\n1,y\n2,z\n")

	out, err := SelectColumns(in, []string{"b"})
	require.NoError(t, err)

	assert.Equal(t, [][]string{{"x"}, {"y"}, {"z"}}, cells(out))
}

func TestSelectColumns_EmptyKeepsRows(t *testing.T) {
	in := mustParseCSV(t, "a,b\n1,2\n3,4\n5,6\n")

	out, err := SelectColumns(in, []string{})
	require.NoError(t, err)
	assert.Empty(t, out.Columns)
	assert.Equal(t, 3, out.NumRows())
	assert.Equal(t, 3, out.Clone().NumRows())
	assert.Equal(t, 2, out.Head(2).NumRows())
	assert.Len(t, out.Records(), 3)
}

func TestSelectColumns_Unknown(t *testing.T) {
	in := mustParseCSV(t, "a,b\n1,2\n")

	_, err := SelectColumns(in, []string{"a", "zzz"})

	var cnf *ColumnNotFoundError
	require.ErrorAs(t, err, &cnf)
	assert.Equal(t, "zzz", cnf.Column)
	assert.Equal(t, []string{"a", "b"}, cnf.Available)
}
