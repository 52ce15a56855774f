package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBarChart(t *testing.T) {
	tbl := mustParseCSV(t, "name,a,b,c\nx,1,,7\ny,2,5,8\n")

	tests := []struct {
		name       string
		columns    []string
		wantSeries []string
	}{
		{"defaults to first two numeric", nil, []string{"a", "b"}},
		{"explicit order", []string{"c", "a"}, []string{"c", "a"}},
		{"single column", []string{"b"}, []string{"b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chart, err := NewBarChart(tbl, tt.columns)
			require.NoError(t, err)

			got := make([]string, len(chart.Series))
			for i, s := range chart.Series {
				got[i] = s.Column
				assert.Len(t, s.Values, tbl.NumRows())
			}
			assert.Equal(t, tt.wantSeries, got)
			assert.Equal(t, []int{0, 1}, chart.Labels)
			assert.Equal(t, []string{"a", "b", "c"}, chart.Available)
		})
	}
}

func TestNewBarChart_MissingIsGap(t *testing.T) {
	tbl := mustParseCSV(t, "a,b\n1,\n2,5\n")

	chart, err := NewBarChart(tbl, []string{"b"})
	require.NoError(t, err)

	vals := chart.Series[0].Values
	assert.Nil(t, vals[0])
	require.NotNil(t, vals[1])
	assert.Equal(t, 5.0, *vals[1])
}

func TestNewBarChart_Errors(t *testing.T) {
	numeric := mustParseCSV(t, "a,name\n1,x\n")
	textOnly := mustParseCSV(t, "name\nx\n")

	_, err := NewBarChart(textOnly, nil)
	assert.ErrorIs(t, err, ErrNoNumericColumns)

	_, err = NewBarChart(numeric, []string{})
	assert.ErrorIs(t, err, ErrNoChartColumns)

	_, err = NewBarChart(numeric, []string{"name"})
	var cnf *ColumnNotFoundError
	require.ErrorAs(t, err, &cnf)
	assert.Equal(t, "name", cnf.Column)
	assert.Equal(t, []string{"a"}, cnf.Available)
}
