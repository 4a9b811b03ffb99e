package service

import "github.com/prometheus/client_golang/prometheus"

var (
	toggleTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "memeow_toggle_total",
			Help: "Like/favorite toggles by resulting state",
		},
		[]string{"kind", "state"},
	)

	toggleConflictTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "memeow_toggle_conflict_total",
			Help: "Toggle inserts that lost a unique constraint race",
		},
		[]string{"kind"},
	)

	pickCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "memeow_pick_cache_total",
			Help: "Daily/personal pick cache lookups",
		},
		[]string{"pick", "result"},
	)
)

func init() {
	prometheus.MustRegister(toggleTotal, toggleConflictTotal, pickCacheTotal)
}

func stateLabel(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
