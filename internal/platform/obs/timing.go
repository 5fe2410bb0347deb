package obs

import (
	"context"
	"log"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type ctxKey string

const RequestIDKey ctxKey = "req_id"

var opDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "obs_operation_duration_seconds",
		Help:    "Duration of named service and storage operations.",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"op", "outcome"},
)

// WithRequestID attaches a request id that Time includes in its log lines.
func WithRequestID(ctx context.Context, reqID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, reqID)
}

func RequestID(ctx context.Context) string {
	reqID, _ := ctx.Value(RequestIDKey).(string)
	return reqID
}

// Time starts timing an operation. The returned func logs and records the
// duration; pass the address of the caller's named error result.
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	reqID := RequestID(ctx)

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			opDuration.WithLabelValues(name, "error").Observe(dur.Seconds())
			log.Printf("req_id=%s op=%s dur=%dms err=%v", reqID, name, dur.Milliseconds(), *errp)
			return
		}
		opDuration.WithLabelValues(name, "ok").Observe(dur.Seconds())
		log.Printf("req_id=%s op=%s dur=%dms", reqID, name, dur.Milliseconds())
	}
}
