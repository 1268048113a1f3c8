package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics agrupa los collectors del servicio sobre un registry propio
// (así los tests pueden crear varios routers sin colisiones de registro).
type Metrics struct {
	registry *prometheus.Registry

	requests *prometheus.CounterVec
	animals  prometheus.GaugeFunc
}

// New registra los collectors. countAnimals se evalúa en cada scrape.
func New(countAnimals func() float64) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "livestock_http_requests_total",
			Help: "HTTP requests served, by route pattern, method and status code.",
		}, []string{"route", "method", "code"}),
	}

	if countAnimals != nil {
		m.animals = prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "livestock_animals",
			Help: "Animals currently held by the record store.",
		}, countAnimals)
		reg.MustRegister(m.animals)
	}
	reg.MustRegister(m.requests)

	return m
}

func (m *Metrics) ObserveRequest(route, method string, status int) {
	if route == "" {
		route = "unmatched"
	}
	m.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
}

// Handler expone /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
