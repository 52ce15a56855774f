package core

// DefaultChartColumns is how many numeric columns a chart shows when the
// caller does not choose.
const DefaultChartColumns = 2

// ChartSeries is one bar series: a numeric column's values by row position.
// Missing cells are nil so a renderer can leave a gap.
type ChartSeries struct {
	Column string     `json:"column"`
	Values []*float64 `json:"values"`
}

// BarChart is the data behind a bar chart of numeric columns. Drawing it is
// left to the caller.
type BarChart struct {
	Labels []int         `json:"labels"`
	Series []ChartSeries `json:"series"`
	// Available lists every numeric column that could be plotted.
	Available []string `json:"available"`
}

// NewBarChart builds chart data for the given numeric columns of t.
// A nil columns picks the first DefaultChartColumns numeric columns.
// Non-numeric names are reported as *ColumnNotFoundError against the
// numeric columns.
func NewBarChart(t Table, columns []string) (BarChart, error) {
	numeric := t.NumericColumns()
	if len(numeric) == 0 {
		return BarChart{}, ErrNoNumericColumns
	}

	if columns == nil {
		n := min(DefaultChartColumns, len(numeric))
		columns = numeric[:n]
	}
	if len(columns) == 0 {
		return BarChart{}, ErrNoChartColumns
	}

	chart := BarChart{
		Labels:    make([]int, t.NumRows()),
		Available: numeric,
	}
	for i := range chart.Labels {
		chart.Labels[i] = i
	}

	for _, name := range columns {
		idx := t.ColumnIndex(name)
		if idx < 0 || t.Columns[idx].Kind != KindNumeric {
			return BarChart{}, &ColumnNotFoundError{Column: name, Available: numeric}
		}
		col := t.Columns[idx]
		s := ChartSeries{Column: name, Values: make([]*float64, len(col.Values))}
		for i, v := range col.Values {
			if v.Missing {
				continue
			}
			num := v.Num
			s.Values[i] = &num
		}
		chart.Series = append(chart.Series, s)
	}
	return chart, nil
}
