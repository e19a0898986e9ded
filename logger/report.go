package logger

import (
	"context"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/aws/aws-sdk-go-v2/aws"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

var (
	errorCount   int64
	warnCount    int64
	rowsRead     int64
	rowsRejected int64
	rowsWritten  int64
)

func recordWarn(string) {
	atomic.AddInt64(&warnCount, 1)
}

func recordError(string) {
	atomic.AddInt64(&errorCount, 1)
}

// RecordRowsRead counts raw rows handed to the pipeline.
func RecordRowsRead(n int) {
	atomic.AddInt64(&rowsRead, int64(n))
}

// RecordRowsRejected counts rows routed to the rejected sets.
func RecordRowsRejected(n int) {
	atomic.AddInt64(&rowsRejected, int64(n))
}

// RecordRowsWritten counts revenue rows produced for output.
func RecordRowsWritten(n int) {
	atomic.AddInt64(&rowsWritten, int64(n))
}

// StartReport begins periodic logging of system and pipeline statistics
// until the context is cancelled. Batch runs usually prefer LogRunReport.
func StartReport(ctx context.Context, log *Log, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		for {
			select {
			case <-ctx.Done():
				ticker.Stop()
				return
			case <-ticker.C:
				logReport(ctx, log)
			}
		}
	}()
}

// LogRunReport emits one runtime report immediately; main calls it once the
// run has finished so short batch invocations still produce a report line.
func LogRunReport(ctx context.Context, log *Log) {
	logReport(ctx, log)
}

func logReport(ctx context.Context, log *Log) {
	cpuPercent, _ := cpu.Percent(0, false)
	memStats, _ := mem.VirtualMemory()
	diskStats, _ := disk.Usage("/")

	cpuPct := 0.0
	if len(cpuPercent) > 0 {
		cpuPct = cpuPercent[0]
	}

	fields := Fields{
		"errors":        atomic.LoadInt64(&errorCount),
		"warns":         atomic.LoadInt64(&warnCount),
		"rows_read":     atomic.LoadInt64(&rowsRead),
		"rows_rejected": atomic.LoadInt64(&rowsRejected),
		"rows_written":  atomic.LoadInt64(&rowsWritten),
		"goroutines":    runtime.NumGoroutine(),
		"cpu_percent":   cpuPct,
		"memory_mb":     int64(memStats.Used) / 1024 / 1024,
		"disk_mb":       int64(diskStats.Used) / 1024 / 1024,
	}

	log.WithComponent("report").WithFields(fields).Info("runtime report")

	data := []cwtypes.MetricDatum{
		{MetricName: aws.String("CPUPercent"), Unit: cwtypes.StandardUnitPercent, Value: aws.Float64(cpuPct)},
		{MetricName: aws.String("MemoryMB"), Unit: cwtypes.StandardUnitMegabytes, Value: aws.Float64(float64(memStats.Used) / 1024 / 1024)},
		{MetricName: aws.String("Errors"), Unit: cwtypes.StandardUnitCount, Value: aws.Float64(float64(atomic.LoadInt64(&errorCount)))},
		{MetricName: aws.String("Warns"), Unit: cwtypes.StandardUnitCount, Value: aws.Float64(float64(atomic.LoadInt64(&warnCount)))},
		{MetricName: aws.String("RowsRead"), Unit: cwtypes.StandardUnitCount, Value: aws.Float64(float64(atomic.LoadInt64(&rowsRead)))},
		{MetricName: aws.String("RowsRejected"), Unit: cwtypes.StandardUnitCount, Value: aws.Float64(float64(atomic.LoadInt64(&rowsRejected)))},
		{MetricName: aws.String("RevenueRowsWritten"), Unit: cwtypes.StandardUnitCount, Value: aws.Float64(float64(atomic.LoadInt64(&rowsWritten)))},
	}

	publishMetrics(ctx, data)
}
