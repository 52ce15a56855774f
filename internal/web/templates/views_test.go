package templates

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/TableConverter/internal/core"
)

func ptr(f float64) *float64 { return &f }

func TestNewChartView(t *testing.T) {
	view := newChartView(core.BarChart{
		Labels: []int{0, 1},
		Series: []core.ChartSeries{
			{Column: "a", Values: []*float64{ptr(2), ptr(-4)}},
			{Column: "b", Values: []*float64{nil, ptr(1)}},
		},
	})

	assert.Equal(t, 2*(2*barWidth+barGap)+barGap, view.Width)
	assert.Equal(t, chartHeight, view.Height)
	assert.Equal(t, "a, b", view.Legend)
	require.Len(t, view.Bars, 3, "missing values leave a gap")

	assert.Equal(t, chartHeight/2, view.Bars[0].Height)
	assert.Equal(t, chartHeight, view.Bars[1].Height, "the largest absolute value fills the chart")
	assert.Equal(t, seriesFills[1], view.Bars[2].Fill)
	assert.Equal(t, "b[1] = 1", view.Bars[2].Title)
}

func TestNewChartView_AllZero(t *testing.T) {
	view := newChartView(core.BarChart{
		Labels: []int{0},
		Series: []core.ChartSeries{{Column: "z", Values: []*float64{ptr(0)}}},
	})
	require.Len(t, view.Bars, 1)
	assert.Zero(t, view.Bars[0].Height)
}

func TestResults(t *testing.T) {
	tbl, err := core.Parse(core.SourceFile{Name: "d.csv", Data: []byte("a,b\n1,\n<i>,2\n"), Format: core.FormatCSV})
	require.NoError(t, err)

	var b strings.Builder
	err = Results([]FileView{{
		Result: core.FileResult{
			ID:       "file-1",
			FileName: "d.csv",
			RunResult: core.RunResult{
				Stages: []core.StageResult{
					{Stage: core.StageParse, Rows: 2, Preview: tbl},
					{Stage: core.StageExport},
				},
				Err: &core.StageError{File: "d.csv", Stage: core.StageSelectColumns, Err: &core.ColumnNotFoundError{Column: "zzz"}},
			},
		},
	}}).Render(context.Background(), &b)
	require.NoError(t, err)

	html := b.String()
	assert.Contains(t, html, `data-file-id="file-1"`)
	assert.Contains(t, html, "Uploaded data")
	assert.NotContains(t, html, "Exported")
	assert.Contains(t, html, `<td class="missing">None</td>`)
	assert.Contains(t, html, "&lt;i&gt;")
	assert.Contains(t, html, `data-level="error"`)
}

func TestResults_Empty(t *testing.T) {
	var b strings.Builder
	require.NoError(t, Results(nil).Render(context.Background(), &b))
	assert.Contains(t, b.String(), "No files uploaded.")
}

func TestErrorAlert(t *testing.T) {
	var b strings.Builder
	require.NoError(t, ErrorAlert("Bad <file>", "", "FILE004").Render(context.Background(), &b))

	html := b.String()
	assert.Contains(t, html, `role="alert"`)
	assert.Contains(t, html, "Bad &lt;file&gt;")
	assert.Contains(t, html, "<code>FILE004</code>")
	assert.NotContains(t, html, "<span>", "an empty detail is not rendered")
}

func TestPage(t *testing.T) {
	var b strings.Builder
	require.NoError(t, Page(PageData{MaxFiles: 3, MaxFileSizeMB: 10, PreviewRows: 5}).Render(context.Background(), &b))

	html := b.String()
	assert.Contains(t, html, "Upload up to 3 CSV or Excel files (max 10 MB each)")
	assert.Contains(t, html, `hx-post="/preview"`)
}
