package listing

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var fetchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "krisik_bazar",
	Name:      "listing_fetch_total",
	Help:      "Price board fetches by result (ok or fallback).",
}, []string{"result"})
