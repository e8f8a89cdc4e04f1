package server

import (
	"log/slog"

	"github.com/puzpuzpuz/xsync/v3"
)

const queueDepth = 64

// dispatcher hands each event to a per-guild worker so events for the
// same guild are processed strictly in arrival order, even though the
// gateway library runs every handler on its own goroutine. Distinct
// guilds still interleave freely.
type dispatcher struct {
	queues *xsync.MapOf[string, *guildQueue]
	logger *slog.Logger
}

type guildQueue struct {
	jobs chan func()
}

func newDispatcher(logger *slog.Logger) *dispatcher {
	return &dispatcher{
		queues: xsync.NewMapOf[string, *guildQueue](),
		logger: logger,
	}
}

// enqueue schedules the job on the guild's worker, creating the
// worker on first use. A full queue drops the event rather than
// blocking the gateway reader.
func (d *dispatcher) enqueue(guildID string, job func()) {
	q, _ := d.queues.LoadOrCompute(guildID, func() *guildQueue {
		q := &guildQueue{jobs: make(chan func(), queueDepth)}
		go q.run()
		return q
	})
	select {
	case q.jobs <- job:
	default:
		d.logger.Error("guild queue full, dropping event", "guild_id", guildID)
		queueDroppedCounter.Inc()
	}
}

// Workers live for the rest of the process; there is nothing to clean
// up when the event loop stops.
func (q *guildQueue) run() {
	for job := range q.jobs {
		job()
	}
}
