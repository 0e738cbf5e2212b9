package searcher

import (
	"sync/atomic"
	"time"
)

type SearchMetrics struct {
	StartTime    time.Time
	Duration     time.Duration
	Threads      int
	Iterations   int64
	FullPlayouts int64
	KomiChanges  int64
	Nodes        int64
}

type MetricsCollector interface {
	Start(threads int)
	AddEpisode()
	AddFullPlayout()
	AddKomiChange()
	SetNodes(n int64)
	Complete() SearchMetrics
}

type metricsCollector struct {
	startTime    time.Time
	threads      int
	episodes     atomic.Int64
	fullPlayouts atomic.Int64
	komiChanges  atomic.Int64
	nodes        atomic.Int64
}

func NewMetricsCollector() MetricsCollector {
	return &metricsCollector{}
}

func (m *metricsCollector) Start(threads int) {
	m.startTime = time.Now()
	m.threads = threads
	m.episodes.Store(0)
	m.fullPlayouts.Store(0)
	m.komiChanges.Store(0)
	m.nodes.Store(0)
}

func (m *metricsCollector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *metricsCollector) AddFullPlayout() {
	m.fullPlayouts.Add(1)
}

func (m *metricsCollector) AddKomiChange() {
	m.komiChanges.Add(1)
}

func (m *metricsCollector) SetNodes(n int64) {
	m.nodes.Store(n)
}

func (m *metricsCollector) Complete() SearchMetrics {
	return SearchMetrics{
		StartTime:    m.startTime,
		Duration:     time.Since(m.startTime),
		Threads:      m.threads,
		Iterations:   m.episodes.Load(),
		FullPlayouts: m.fullPlayouts.Load(),
		KomiChanges:  m.komiChanges.Load(),
		Nodes:        m.nodes.Load(),
	}
}

type noMetricsCollector struct{}

func NewNoMetricsCollector() MetricsCollector {
	return &noMetricsCollector{}
}

func (m *noMetricsCollector) Start(int)               {}
func (m *noMetricsCollector) AddEpisode()             {}
func (m *noMetricsCollector) AddFullPlayout()         {}
func (m *noMetricsCollector) AddKomiChange()          {}
func (m *noMetricsCollector) SetNodes(int64)          {}
func (m *noMetricsCollector) Complete() SearchMetrics { return SearchMetrics{} }
