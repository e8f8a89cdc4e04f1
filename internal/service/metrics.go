package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var eventsReceivedCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "guildwatch_events_received",
	Help: "The total number of gateway events handed to the engine",
}, []string{"type"})

var scopeSuppressedCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "guildwatch_scope_suppressed",
	Help: "The total number of events suppressed by the scope filter",
}, []string{"type"})

var transitionsRelayedCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "guildwatch_transitions_relayed",
	Help: "The total number of transitions relayed to the output channel",
}, []string{"kind"})

var relayDroppedCounter = promauto.NewCounter(prometheus.CounterOpts{
	Name: "guildwatch_relay_dropped",
	Help: "The total number of relay lines dropped before or during send",
})
