package middleware

import (
	"net/http"
	"regexp"
	"strconv"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/felixge/httpsnoop"

	"github.com/faciam-dev/formfields/pkg/metrics"
)

// MetricsMW records API request metrics.
func MetricsMW(ctx huma.Context, next func(huma.Context)) {
	r, w := humachi.Unwrap(ctx)
	m := httpsnoop.CaptureMetricsFn(w, func(w http.ResponseWriter) {
		next(humachi.NewContext(ctx.Operation(), r, w))
	})
	path := routePath(ctx.Operation(), r.URL.Path)
	metrics.APIRequests.WithLabelValues(r.Method, path, strconv.Itoa(m.Code)).Inc()
	metrics.APILatency.WithLabelValues(r.Method, path).Observe(m.Duration.Seconds())
}

var idRe = regexp.MustCompile(`\d+`)

// routePath prefers the operation template so that field names do not
// explode the label cardinality.
func routePath(op *huma.Operation, path string) string {
	if op != nil && op.Path != "" {
		return op.Path
	}
	return normalizePath(path)
}

func normalizePath(path string) string {
	return idRe.ReplaceAllString(path, ":id")
}
