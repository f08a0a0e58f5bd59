package fairpay

import (
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// ScatterEstimates generates an echart scatter chart plotting each player's
// actual and estimated salary side by side.
func ScatterEstimates(title string, res *Results) *charts.Scatter {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: title,
			},
		),
	)

	actualData := make([]opts.ScatterData, 0, len(res.Names))
	estimateData := make([]opts.ScatterData, 0, len(res.Names))
	for i := range res.Names {
		actualData = append(actualData, opts.ScatterData{Value: res.Actual[i]})
		estimateData = append(estimateData, opts.ScatterData{Value: res.Estimate[i]})
	}

	scatter.SetXAxis(res.Names).
		AddSeries("Actual", actualData).
		AddSeries("Estimated", estimateData)
	return scatter
}

// BarResiduals generates an echart bar chart of the salary difference for a
// ranked set of players.
func BarResiduals(title string, ranked []PlayerEstimate) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: title,
			},
		),
	)

	names := make([]string, 0, len(ranked))
	barData := make([]opts.BarData, 0, len(ranked))
	for _, pe := range ranked {
		names = append(names, pe.Name)
		barData = append(barData, opts.BarData{Value: pe.Residual})
	}

	bar.SetXAxis(names).AddSeries("Actual - Estimated", barData)
	return bar
}

// PlotResults uses the Apache Echarts library to generate an html file
// showing the fit against every player along with the top over and underpaid
// rankings.
func (e *Estimator) PlotResults(path string) error {
	res, err := e.Results()
	if err != nil {
		return err
	}

	page := components.NewPage()
	page.AddCharts(
		ScatterEstimates("Salary Estimates", res),
		BarResiduals("Most Overpaid", res.Overpaid(e.opt.TopN)),
		BarResiduals("Most Underpaid", res.Underpaid(e.opt.TopN)),
	)
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return page.Render(io.MultiWriter(file))
}
