package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var queueDroppedCounter = promauto.NewCounter(prometheus.CounterOpts{
	Name: "guildwatch_queue_dropped",
	Help: "The total number of gateway events dropped by full guild queues",
})
