package engine

import (
	"github.com/spektr-org/statboard/dataset"
	"github.com/spektr-org/statboard/stats"
)

// ComputeSummary computes the summary statistics of one column, missing
// values dropped. No column selected → nil, nil.
//
// Mean and standard deviation are rounded to 2 decimals; median, minimum
// and maximum to 0. The standard deviation is the sample (N-1) one.
func ComputeSummary(ds *dataset.Dataset, column string) (*SummaryStatistics, error) {
	if column == "" {
		return nil, nil
	}
	if err := ds.Require(column); err != nil {
		return nil, err
	}

	view, err := ds.DropMissing(column)
	if err != nil {
		return nil, err
	}
	xs, err := view.Floats(column)
	if err != nil {
		return nil, err
	}

	d := stats.Describe(xs)
	return &SummaryStatistics{
		Column:  column,
		Columns: []string{"Metric", "Value"},
		Data: []StatRow{
			{Metric: MetricMean, Value: stats.Round(d.Mean, 2)},
			{Metric: MetricMedian, Value: stats.Round(d.Median, 0)},
			{Metric: MetricStdDev, Value: stats.Round(d.StdDev, 2)},
			{Metric: MetricMin, Value: stats.Round(d.Min, 0)},
			{Metric: MetricMax, Value: stats.Round(d.Max, 0)},
			{Metric: MetricCount, Value: float64(d.N), Count: true},
		},
	}, nil
}
