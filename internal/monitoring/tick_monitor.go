package monitoring

import (
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// TickStats summarises the simulation ticks of one hosted session.
type TickStats struct {
	Ticks int           `json:"ticks"`
	Slow  int           `json:"slow"`
	Total time.Duration `json:"total"`
	Max   time.Duration `json:"max"`
	Last  time.Duration `json:"last"`
}

// Average returns the mean tick duration.
func (s TickStats) Average() time.Duration {
	if s.Ticks == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Ticks)
}

// Metrics is a point-in-time copy of everything the monitor tracks.
type Metrics struct {
	Goroutines         int                  `json:"goroutines"`
	GoroutineBaseline  int                  `json:"goroutine_baseline"`
	GoroutinePeak      int                  `json:"goroutine_peak"`
	Sessions           map[string]TickStats `json:"sessions"`
	SlowTickThreshold  time.Duration        `json:"slow_tick_threshold"`
	GoroutineThreshold int                  `json:"goroutine_threshold"`
}

// TickMonitor tracks tick latency per session and samples the goroutine
// count of the host process.
type TickMonitor struct {
	mu                 sync.RWMutex
	sessions           map[string]*TickStats
	slowThreshold      time.Duration
	baseline           int
	current            int
	peak               int
	goroutineThreshold int
	checkInterval      time.Duration
	lastAlert          time.Time
	alertCooldown      time.Duration
	stopOnce           sync.Once
	stopChan           chan struct{}
	logger             zerolog.Logger
}

// NewTickMonitor creates a monitor that flags ticks slower than slowThreshold.
func NewTickMonitor(slowThreshold time.Duration, logger zerolog.Logger) *TickMonitor {
	baseline := runtime.NumGoroutine()
	return &TickMonitor{
		sessions:           make(map[string]*TickStats),
		slowThreshold:      slowThreshold,
		baseline:           baseline,
		current:            baseline,
		peak:               baseline,
		goroutineThreshold: 1000,
		checkInterval:      30 * time.Second,
		alertCooldown:      5 * time.Minute,
		stopChan:           make(chan struct{}),
		logger:             logger.With().Str("component", "TickMonitor").Logger(),
	}
}

// ObserveTick records one tick of sessionID.
func (m *TickMonitor) ObserveTick(sessionID string, d time.Duration) {
	m.mu.Lock()
	s, ok := m.sessions[sessionID]
	if !ok {
		s = &TickStats{}
		m.sessions[sessionID] = s
	}
	s.Ticks++
	s.Total += d
	s.Last = d
	if d > s.Max {
		s.Max = d
	}
	slow := m.slowThreshold > 0 && d > m.slowThreshold
	if slow {
		s.Slow++
	}
	m.mu.Unlock()

	if slow {
		m.logger.Warn().
			Str("session_id", sessionID).
			Dur("duration", d).
			Dur("threshold", m.slowThreshold).
			Msg("Slow simulation tick")
	}
}

// Forget drops the stats of a closed session.
func (m *TickMonitor) Forget(sessionID string) {
	m.mu.Lock()
	delete(m.sessions, sessionID)
	m.mu.Unlock()
}

// Start begins periodic goroutine sampling.
func (m *TickMonitor) Start() {
	go m.run()
	m.logger.Info().Int("baseline", m.baseline).Msg("Started tick monitoring")
}

// Stop ends sampling. It is safe to call more than once.
func (m *TickMonitor) Stop() {
	m.stopOnce.Do(func() { close(m.stopChan) })
}

func (m *TickMonitor) run() {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error().Interface("panic", r).Msg("Tick monitor panicked")
		}
	}()

	ticker := time.NewTicker(m.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.sample()
		case <-m.stopChan:
			return
		}
	}
}

// sample reads the goroutine count and logs a summary of every session.
func (m *TickMonitor) sample() {
	current := runtime.NumGoroutine()

	m.mu.Lock()
	m.current = current
	if current > m.peak {
		m.peak = current
	}
	alert := current > m.goroutineThreshold && time.Since(m.lastAlert) > m.alertCooldown
	if alert {
		m.lastAlert = time.Now()
	}
	sessions := len(m.sessions)
	m.mu.Unlock()

	m.logger.Debug().
		Int("goroutines", current).
		Int("baseline", m.baseline).
		Int("sessions", sessions).
		Msg("Host metrics")
	if alert {
		m.logger.Warn().
			Int("goroutines", current).
			Int("threshold", m.goroutineThreshold).
			Msg("High goroutine count detected - possible leak")
	}
}

// GetMetrics returns a copy of the current metrics.
func (m *TickMonitor) GetMetrics() Metrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sessions := make(map[string]TickStats, len(m.sessions))
	for id, s := range m.sessions {
		sessions[id] = *s
	}
	return Metrics{
		Goroutines:         m.current,
		GoroutineBaseline:  m.baseline,
		GoroutinePeak:      m.peak,
		Sessions:           sessions,
		SlowTickThreshold:  m.slowThreshold,
		GoroutineThreshold: m.goroutineThreshold,
	}
}
