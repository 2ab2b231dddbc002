package metrics

import (
	"sort"
	"sync"
	"time"

	"github.com/nakabonne/tstorage"
	"github.com/pkg/errors"
)

var (
	mu      sync.RWMutex
	storage tstorage.Storage
	gauges  = map[string]int64{}
)

// InitMetrics opens the time-series storage under dir. An empty dir keeps
// the series in memory only.
func InitMetrics(dir string) error {
	opts := []tstorage.Option{
		tstorage.WithTimestampPrecision(tstorage.Seconds),
		tstorage.WithRetention(7 * 24 * time.Hour),
	}
	if dir != "" {
		opts = append(opts, tstorage.WithDataPath(dir))
	}
	s, err := tstorage.NewStorage(opts...)
	if err != nil {
		return errors.Wrap(err, "open metrics storage")
	}
	mu.Lock()
	old := storage
	storage = s
	gauges = map[string]int64{}
	mu.Unlock()
	if old != nil {
		_ = old.Close()
	}
	return nil
}

// SetGauge records value as the current reading of name.
func SetGauge(name string, value int64) {
	mu.Lock()
	defer mu.Unlock()
	setLocked(name, value)
}

// Incr adds one to the gauge name.
func Incr(name string) {
	mu.Lock()
	defer mu.Unlock()
	setLocked(name, gauges[name]+1)
}

// setLocked requires mu held for writing.
func setLocked(name string, value int64) {
	gauges[name] = value
	if storage == nil {
		return
	}
	_ = storage.InsertRows([]tstorage.Row{{
		Metric:    name,
		DataPoint: tstorage.DataPoint{Timestamp: time.Now().Unix(), Value: float64(value)},
	}})
}

// GetGauge returns the last value set in this process.
func GetGauge(name string) (int64, bool) {
	mu.RLock()
	defer mu.RUnlock()
	v, ok := gauges[name]
	return v, ok
}

// Snapshot returns every gauge known to this process.
func Snapshot() map[string]int64 {
	mu.RLock()
	defer mu.RUnlock()
	out := make(map[string]int64, len(gauges))
	for k, v := range gauges {
		out[k] = v
	}
	return out
}

// Point is one stored sample.
type Point struct {
	Timestamp int64   `json:"timestamp"`
	Value     float64 `json:"value"`
}

// Series reads the stored samples of name within the last window.
func Series(name string, window time.Duration) ([]Point, error) {
	mu.RLock()
	s := storage
	mu.RUnlock()
	if s == nil {
		return nil, nil
	}
	end := time.Now().Unix() + 1
	points, err := s.Select(name, nil, end-int64(window.Seconds()), end)
	if errors.Is(err, tstorage.ErrNoDataPoints) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "select %s", name)
	}
	out := make([]Point, 0, len(points))
	for _, p := range points {
		out = append(out, Point{Timestamp: p.Timestamp, Value: p.Value})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp < out[j].Timestamp })
	return out, nil
}

func Close() error {
	mu.Lock()
	s := storage
	storage = nil
	mu.Unlock()
	if s == nil {
		return nil
	}
	return s.Close()
}
