package app

import (
	"context"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shirou/gopsutil/mem"
	"github.com/shirou/gopsutil/process"
	"go.uber.org/zap"

	"github.com/talkincode/streamstore/pkg/metrics"
)

// Gauge names written by the jobs.
const (
	MetricServices   = "catalog_services"
	MetricProducts   = "catalog_products"
	MetricSlides     = "catalog_slides"
	MetricSystemMem  = "system_memuse"
	MetricProcessCPU = "streamstore_cpuuse"
	MetricProcessMem = "streamstore_memuse"
	MetricOrders     = "checkout_orders"
)

const jobTimeout = time.Minute

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() {
	a.sched = cron.New(cron.WithLocation(time.Local), cron.WithParser(cronParser))

	jobs := []struct {
		spec string
		fn   func()
	}{
		{"@every 1m", func() {
			go a.SchedCatalogGaugeTask()
			go a.SchedProcessMonitorTask()
		}},
		{"@hourly", a.SchedSweepOrphansTask},
		{"@hourly", a.SchedPruneRevokedTask},
		{"@daily", a.SchedAuditPruneTask},
	}
	for _, j := range jobs {
		if _, err := a.sched.AddFunc(j.spec, j.fn); err != nil {
			zap.S().Errorf("init job error %s", err.Error())
		}
	}
	a.sched.Start()
}

func recoverJob(name string) {
	if err := recover(); err != nil {
		zap.S().Errorf("job %s panic: %v", name, err)
	}
}

// SchedCatalogGaugeTask records the catalog size.
func (a *Application) SchedCatalogGaugeTask() {
	defer recoverJob("catalog_gauge")
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	counts, err := a.catalog.Counts(ctx)
	if err != nil {
		zap.L().Error("catalog gauge failed", zap.Error(err))
		return
	}
	metrics.SetGauge(MetricServices, counts.Services)
	metrics.SetGauge(MetricProducts, counts.Products)
	metrics.SetGauge(MetricSlides, counts.Slides)
}

// SchedProcessMonitorTask app process monitor
func (a *Application) SchedProcessMonitorTask() {
	defer recoverJob("process_monitor")

	if vm, err := mem.VirtualMemory(); err == nil {
		metrics.SetGauge(MetricSystemMem, int64(vm.Used/1024/1024))
	}

	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return
	}
	if cpuuse, err := p.CPUPercent(); err == nil {
		// percentage * 100
		metrics.SetGauge(MetricProcessCPU, int64(cpuuse*100))
	}
	if meminfo, err := p.MemoryInfo(); err == nil {
		metrics.SetGauge(MetricProcessMem, int64(meminfo.RSS/1024/1024))
	}
}

// SchedSweepOrphansTask removes products whose service is gone.
func (a *Application) SchedSweepOrphansTask() {
	defer recoverJob("sweep_orphans")
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	n, err := a.catalog.SweepOrphans(ctx)
	if err != nil {
		zap.L().Error("orphan sweep failed", zap.Error(err))
		return
	}
	if n > 0 {
		zap.L().Warn("removed orphan products", zap.Int64("count", n))
	}
}

func (a *Application) SchedPruneRevokedTask() {
	defer recoverJob("prune_revoked")
	n, err := a.authMgr.PruneRevoked()
	if err != nil {
		zap.L().Error("revocation prune failed", zap.Error(err))
		return
	}
	zap.L().Debug("pruned revoked sessions", zap.Int("count", n))
}

// SchedAuditPruneTask drops operation log rows past the retention window.
func (a *Application) SchedAuditPruneTask() {
	defer recoverJob("audit_prune")
	days := a.appConfig.Jobs.AuditRetentionDays
	if days <= 0 {
		days = 365
	}
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	n, err := a.auditor.Prune(ctx, time.Now().Add(-24*time.Hour*time.Duration(days)))
	if err != nil {
		zap.L().Error("audit prune failed", zap.Error(err))
		return
	}
	zap.L().Info("pruned operation log", zap.Int64("count", n), zap.Int("retention_days", days))
}
