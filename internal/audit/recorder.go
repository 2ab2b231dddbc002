package audit

import (
	"context"
	"sync"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/panjf2000/ants/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/talkincode/streamstore/internal/domain"
)

const TopicOperation = "audit:operation"

// Entry describes one admin operation.
type Entry struct {
	Operator    string
	IP          string
	Action      string
	Description string
	Time        time.Time
}

// Recorder persists operation log entries published on the event bus.
// Writes happen on a bounded worker pool so request handlers never wait on
// the audit table.
type Recorder struct {
	db      *gorm.DB
	bus     EventBus.Bus
	pool    *ants.Pool
	wg      sync.WaitGroup
	handler func(Entry)
}

func NewRecorder(db *gorm.DB, bus EventBus.Bus, workers int) (*Recorder, error) {
	if workers <= 0 {
		workers = 4
	}
	pool, err := ants.NewPool(workers, ants.WithPanicHandler(func(p interface{}) {
		zap.S().Errorf("audit worker panic: %v", p)
	}))
	if err != nil {
		return nil, errors.Wrap(err, "create audit pool")
	}
	r := &Recorder{db: db, bus: bus, pool: pool}
	r.handler = r.dispatch
	if err := bus.Subscribe(TopicOperation, r.handler); err != nil {
		pool.Release()
		return nil, errors.Wrap(err, "subscribe audit topic")
	}
	return r, nil
}

// Record publishes e; the write happens asynchronously.
func (r *Recorder) Record(e Entry) {
	if e.Time.IsZero() {
		e.Time = time.Now()
	}
	r.bus.Publish(TopicOperation, e)
}

func (r *Recorder) dispatch(e Entry) {
	r.wg.Add(1)
	err := r.pool.Submit(func() {
		defer r.wg.Done()
		r.write(e)
	})
	if err != nil {
		// pool closed or overloaded, write inline
		defer r.wg.Done()
		r.write(e)
	}
}

func (r *Recorder) write(e Entry) {
	row := domain.SysOprLog{
		OprName:   e.Operator,
		OprIp:     e.IP,
		OptAction: e.Action,
		OptDesc:   e.Description,
		OptTime:   e.Time,
	}
	if err := r.db.Create(&row).Error; err != nil {
		zap.L().Error("write operation log failed",
			zap.String("action", e.Action),
			zap.Error(err))
	}
}

// Flush waits until every published entry has been written.
func (r *Recorder) Flush() {
	r.wg.Wait()
}

// List returns entries newer than since, newest first.
func (r *Recorder) List(ctx context.Context, since time.Time, limit int) ([]domain.SysOprLog, error) {
	if limit <= 0 || limit > 1000 {
		limit = 100
	}
	db := r.db.WithContext(ctx).Model(&domain.SysOprLog{})
	if !since.IsZero() {
		db = db.Where("opt_time >= ?", since)
	}
	var rows []domain.SysOprLog
	if err := db.Order("opt_time DESC, id DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "list operation log")
	}
	return rows, nil
}

// Prune deletes entries older than before.
func (r *Recorder) Prune(ctx context.Context, before time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("opt_time < ?", before).Delete(&domain.SysOprLog{})
	if res.Error != nil {
		return 0, errors.Wrap(res.Error, "prune operation log")
	}
	return res.RowsAffected, nil
}

func (r *Recorder) Close() {
	_ = r.bus.Unsubscribe(TopicOperation, r.handler)
	r.Flush()
	r.pool.Release()
}
