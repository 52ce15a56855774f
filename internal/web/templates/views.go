// Package templates holds the HTML views of the converter. The markup lives
// in .templ files; run `templ generate` after editing them.
package templates

//go:generate templ generate

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/JonMunkholm/TableConverter/internal/core"
)

// PageData configures the upload page.
type PageData struct {
	MaxFiles      int
	MaxFileSizeMB int64
	PreviewRows   int
}

// FileView is one processed file as shown in the results partial.
type FileView struct {
	Result core.FileResult
	Chart  *core.BarChart
}

var stageTitles = map[core.Stage]string{
	core.StageParse:            "Uploaded data",
	core.StageRemoveDuplicates: "After removing duplicates",
	core.StageFillMissing:      "After filling missing values",
	core.StageSelectColumns:    "Selected columns",
	core.StageExport:           "Exported",
}

// previewStages drops the export stage, which has no table to show.
func previewStages(stages []core.StageResult) []core.StageResult {
	out := make([]core.StageResult, 0, len(stages))
	for _, st := range stages {
		if st.Stage != core.StageExport {
			out = append(out, st)
		}
	}
	return out
}

const (
	chartHeight = 200
	barWidth    = 12
	barGap      = 4
)

var seriesFills = []string{"#2563eb", "#f59e0b"}

type chartBar struct {
	X, Y, Width, Height int
	Fill                string
	Title               string
}

// chartView is a bar chart laid out in SVG coordinates.
type chartView struct {
	Width, Height int
	Bars          []chartBar
	Legend        string
}

func (c chartView) ViewBox() string {
	return fmt.Sprintf("0 0 %d %d", c.Width, c.Height)
}

// newChartView lays out grouped bars, one group per row index, scaled to the
// largest absolute value. Missing values leave a gap.
func newChartView(c core.BarChart) chartView {
	peak := 0.0
	for _, s := range c.Series {
		for _, v := range s.Values {
			if v != nil {
				peak = math.Max(peak, math.Abs(*v))
			}
		}
	}
	if peak == 0 {
		peak = 1
	}

	group := len(c.Series)*barWidth + barGap
	view := chartView{
		Width:  len(c.Labels)*group + barGap,
		Height: chartHeight,
	}
	names := make([]string, len(c.Series))
	for si, s := range c.Series {
		names[si] = s.Column
		for i, v := range s.Values {
			if v == nil {
				continue
			}
			h := int(math.Abs(*v) / peak * float64(chartHeight))
			view.Bars = append(view.Bars, chartBar{
				X:      barGap + i*group + si*barWidth,
				Y:      chartHeight - h,
				Width:  barWidth,
				Height: h,
				Fill:   seriesFills[si%len(seriesFills)],
				Title:  fmt.Sprintf("%s[%d] = %s", s.Column, c.Labels[i], strconv.FormatFloat(*v, 'f', -1, 64)),
			})
		}
	}
	view.Legend = strings.Join(names, ", ")
	return view
}
