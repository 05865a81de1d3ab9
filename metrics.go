package asyncio

import "sync/atomic"

// Stats is a point-in-time snapshot of an Engine's metrics. It is only
// populated when the Engine was constructed with WithMetrics(true); the
// zero value is returned otherwise.
type Stats struct {
	TasksExecuted   int64
	TasksPanicked   int64
	OutstandingWork int64
	QueueDepth      int64
}

// stats holds the atomic counters backing Stats. Every field is safe to
// update regardless of whether metrics collection is enabled; the cost is
// a handful of always-resident int64s, so enabling WithMetrics only changes
// whether Stats reports them.
type stats struct {
	tasksExecuted   atomic.Int64
	tasksPanicked   atomic.Int64
	outstandingWork atomic.Int64
	queueDepth      atomic.Int64
}

func (s *stats) incTasksExecuted()      { s.tasksExecuted.Add(1) }
func (s *stats) incTasksPanicked()      { s.tasksPanicked.Add(1) }
func (s *stats) setOutstanding(v int64) { s.outstandingWork.Store(v) }
func (s *stats) setQueueDepth(v int64)  { s.queueDepth.Store(v) }

func (s *stats) snapshot(e *Engine) Stats {
	if !e.cfg.metrics {
		return Stats{}
	}
	return Stats{
		TasksExecuted:   s.tasksExecuted.Load(),
		TasksPanicked:   s.tasksPanicked.Load(),
		OutstandingWork: s.outstandingWork.Load(),
		QueueDepth:      s.queueDepth.Load(),
	}
}
