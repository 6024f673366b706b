package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Workers     int
	Trials      int // Total playouts budget per evaluation
	Duration    time.Duration
	Evaluations int
	Playouts    int
}

func (m SearchMetric) PlayoutsPerSecond() float64 {
	if m.Duration <= 0 {
		return 0
	}
	return float64(m.Playouts) / m.Duration.Seconds()
}

type MoveMetric struct {
	Step    int
	Player  string
	Cell    int
	Score   float64
	Swapped bool
	SearchMetric
}

type GameMetric struct {
	StartingPlayer string
	Winner         string
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

// AgentConfig identifies one computer player setup in an experiment.
type AgentConfig struct {
	ID      int
	Workers int
	Trials  int
}

type Collector interface {
	Start(workers, trials int)
	AddEvaluation()
	AddPlayouts(n int)
	Complete() SearchMetric
}

type collector struct {
	workers     int
	trials      int
	startTime   time.Time
	evaluations atomic.Int32
	playouts    atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(workers, trials int) {
	m.startTime = time.Now()
	m.workers = workers
	m.trials = trials
	m.evaluations.Store(0)
	m.playouts.Store(0)
}

func (m *collector) AddEvaluation() {
	m.evaluations.Add(1)
}

func (m *collector) AddPlayouts(n int) {
	m.playouts.Add(int64(n))
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Workers:     m.workers,
		Trials:      m.trials,
		Duration:    time.Since(m.startTime),
		Evaluations: int(m.evaluations.Load()),
		Playouts:    int(m.playouts.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(workers, trials int) {}
func (m *dummyCollector) AddEvaluation()           {}
func (m *dummyCollector) AddPlayouts(n int)        {}
func (m *dummyCollector) Complete() SearchMetric   { return SearchMetric{} }
