package server

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/soypat/svo"
)

const (
	outcomeLabel = "outcome"
	depthLabel   = "depth"

	outcomeOK      = "ok"
	outcomeInvalid = "invalid"
	outcomeError   = "error"
)

var (
	buildsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "svo_builds_total",
		Help: "The number of octree builds by outcome.",
	}, []string{
		outcomeLabel,
	})

	buildDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "svo_build_duration_seconds",
		Help:    "The time to build an octree.",
		Buckets: prometheus.ExponentialBuckets(0.0005, 4, 10),
	}, []string{
		depthLabel,
	})

	leavesGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "svo_leaves",
		Help: "The number of leaves in the most recently built octree.",
	})

	wsConnectedClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "svo_ws_connected_clients",
		Help: "The number of connected WebSocket clients.",
	})

	wsDiscardedBuilds = promauto.NewCounter(prometheus.CounterOpts{
		Name: "svo_ws_discarded_builds_total",
		Help: "The number of builds superseded by a newer request before being sent.",
	})
)

func outcome(err error) string {
	switch {
	case err == nil:
		return outcomeOK
	case errors.Is(err, svo.ErrInvalidArgument):
		return outcomeInvalid
	}
	return outcomeError
}

func instrumentBuild(depth int, start time.Time, stats svo.TreeStats, err error) {
	buildsTotal.With(prometheus.Labels{
		outcomeLabel: outcome(err),
	}).Inc()
	if err != nil {
		return
	}
	buildDuration.With(prometheus.Labels{
		depthLabel: strconv.Itoa(depth),
	}).Observe(time.Since(start).Seconds())
	leavesGauge.Set(float64(stats.Leaves))
}
