package database

import (
	"time"

	"gorm.io/gorm"
)

const startTimeKey = "metrics:start_time"

// MetricsRecorder is an interface for recording database metrics
type MetricsRecorder interface {
	RecordDBQuery(operation, table string, duration time.Duration, err error)
	UpdateDBStats(stats interface{})
}

// RegisterMetricsCallbacks times every query, insert, update, delete and raw statement
func RegisterMetricsCallbacks(db *gorm.DB, recorder MetricsRecorder) error {
	cb := db.Callback()

	before, after := timingCallbacks("select", recorder)
	if err := cb.Query().Before("gorm:query").Register("metrics:select_before", before); err != nil {
		return err
	}
	if err := cb.Query().After("gorm:query").Register("metrics:select_after", after); err != nil {
		return err
	}

	before, after = timingCallbacks("insert", recorder)
	if err := cb.Create().Before("gorm:create").Register("metrics:insert_before", before); err != nil {
		return err
	}
	if err := cb.Create().After("gorm:create").Register("metrics:insert_after", after); err != nil {
		return err
	}

	before, after = timingCallbacks("update", recorder)
	if err := cb.Update().Before("gorm:update").Register("metrics:update_before", before); err != nil {
		return err
	}
	if err := cb.Update().After("gorm:update").Register("metrics:update_after", after); err != nil {
		return err
	}

	before, after = timingCallbacks("delete", recorder)
	if err := cb.Delete().Before("gorm:delete").Register("metrics:delete_before", before); err != nil {
		return err
	}
	if err := cb.Delete().After("gorm:delete").Register("metrics:delete_after", after); err != nil {
		return err
	}

	before, after = timingCallbacks("raw", recorder)
	if err := cb.Raw().Before("gorm:raw").Register("metrics:raw_before", before); err != nil {
		return err
	}
	return cb.Raw().After("gorm:raw").Register("metrics:raw_after", after)
}

func timingCallbacks(operation string, recorder MetricsRecorder) (func(*gorm.DB), func(*gorm.DB)) {
	before := func(db *gorm.DB) {
		db.InstanceSet(startTimeKey, time.Now())
	}
	after := func(db *gorm.DB) {
		startTime, ok := db.InstanceGet(startTimeKey)
		if !ok {
			return
		}
		table := db.Statement.Table
		if table == "" {
			table = "unknown"
		}
		recorder.RecordDBQuery(operation, table, time.Since(startTime.(time.Time)), db.Error)
	}
	return before, after
}

// StartDBStatsCollector pushes connection pool stats every interval until done is closed
func StartDBStatsCollector(db *gorm.DB, recorder MetricsRecorder, interval time.Duration) chan struct{} {
	done := make(chan struct{})

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				sqlDB, err := db.DB()
				if err != nil {
					continue
				}
				recorder.UpdateDBStats(sqlDB.Stats())
			case <-done:
				return
			}
		}
	}()

	return done
}
