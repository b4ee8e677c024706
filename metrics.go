package buildindex

import "github.com/prometheus/client_golang/prometheus"

var (
	generationDesc = prometheus.NewDesc("buildindex_generation",
		"Latest fully-applied generation.", nil, nil)
	commitsDesc = prometheus.NewDesc("buildindex_commits",
		"Commit identifiers recorded, including no-op commits.", nil, nil)
	packagesDesc = prometheus.NewDesc("buildindex_packages",
		"Build packages present at the latest generation.", nil, nil)
	rulesDesc = prometheus.NewDesc("buildindex_rules",
		"Build rules present at the latest generation.", nil, nil)
	internedDesc = prometheus.NewDesc("buildindex_interned_targets",
		"Interned build targets; grows monotonically.", nil, nil)
	readersDesc = prometheus.NewDesc("buildindex_active_readers",
		"Read sections currently holding the read lock.", nil, nil)
	readsDesc = prometheus.NewDesc("buildindex_reads_total",
		"Read-lock acquisitions.", nil, nil)
	queriesDesc = prometheus.NewDesc("buildindex_queries_total",
		"Query operations served.", nil, nil)
	appliedDesc = prometheus.NewDesc("buildindex_commits_applied_total",
		"Commits that produced a new generation.", nil, nil)
	emptyDesc = prometheus.NewDesc("buildindex_commits_empty_total",
		"Commits recorded without advancing the generation.", nil, nil)
)

// MetricsCollector returns a prometheus collector exposing the index's
// gauges and counters. Register it with the host's registry; collection
// takes the read lock briefly to count packages and rules.
func (idx *Index[T, C]) MetricsCollector() prometheus.Collector {
	return collector[T, C]{idx}
}

type collector[T comparable, C comparable] struct {
	idx *Index[T, C]
}

func (c collector[T, C]) Describe(ch chan<- *prometheus.Desc) {
	prometheus.DescribeByCollect(c, ch)
}

func (c collector[T, C]) Collect(ch chan<- prometheus.Metric) {
	s := c.idx.Stats()
	ch <- prometheus.MustNewConstMetric(generationDesc, prometheus.GaugeValue, float64(s.Generation))
	ch <- prometheus.MustNewConstMetric(commitsDesc, prometheus.GaugeValue, float64(s.Commits))
	ch <- prometheus.MustNewConstMetric(packagesDesc, prometheus.GaugeValue, float64(s.Packages))
	ch <- prometheus.MustNewConstMetric(rulesDesc, prometheus.GaugeValue, float64(s.Rules))
	ch <- prometheus.MustNewConstMetric(internedDesc, prometheus.GaugeValue, float64(s.InternedTargets))
	ch <- prometheus.MustNewConstMetric(readersDesc, prometheus.GaugeValue, float64(c.idx.ReaderCount.Load()))
	ch <- prometheus.MustNewConstMetric(readsDesc, prometheus.CounterValue, float64(c.idx.ReadCount.Load()))
	ch <- prometheus.MustNewConstMetric(queriesDesc, prometheus.CounterValue, float64(c.idx.QueryCount.Load()))
	ch <- prometheus.MustNewConstMetric(appliedDesc, prometheus.CounterValue, float64(c.idx.CommitCount.Load()))
	ch <- prometheus.MustNewConstMetric(emptyDesc, prometheus.CounterValue, float64(c.idx.EmptyCommitCount.Load()))
}
