// Package metrics registers the prometheus instruments for screening runs.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ScreensTotal = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "screens_total", Help: "Screening runs executed"},
	)
	TickersScreenedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "tickers_screened_total", Help: "Tickers fed into the filter pipeline"},
	)
	FilterDropsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "filter_drops_total", Help: "Tickers dropped, by pipeline stage"},
		[]string{"stage"},
	)
	PicksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "picks_total", Help: "Classified picks emitted, by setup"},
		[]string{"setup"},
	)
)

func init() {
	prometheus.MustRegister(ScreensTotal, TickersScreenedTotal, FilterDropsTotal, PicksTotal)
}

// Handler returns the scrape endpoint handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
