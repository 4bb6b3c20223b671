package monitoring

import (
	"context"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
)

const (
	LayerRepository = "repositories"
	LayerService    = "services"
	LayerDelivery   = "deliveries"
	LayerUnknown    = "unknown"
)

// Monitor wraps one New Relic segment plus the timing/log fields emitted on
// Finish. Callers create one at the top of a method and defer Finish.
type Monitor struct {
	ctx         context.Context
	segmentName string
	layer       string
	start       time.Time
	segment     *newrelic.Segment
}

type initOptions struct {
	layer       string
	segmentName string
}

type InitOption func(*initOptions)

func WithLayer(layer string) InitOption {
	return func(o *initOptions) {
		o.layer = layer
	}
}

func WithSegmentName(segmentName string) InitOption {
	return func(o *initOptions) {
		o.segmentName = segmentName
	}
}

// layerOf infers the architectural layer from the caller's file path.
func layerOf(file string) string {
	switch {
	case strings.Contains(file, LayerRepository):
		return LayerRepository
	case strings.Contains(file, LayerService):
		return LayerService
	case strings.Contains(file, LayerDelivery):
		return LayerDelivery
	default:
		return LayerUnknown
	}
}

func New(ctx context.Context, opts ...InitOption) *Monitor {
	o := &initOptions{}
	for _, opt := range opts {
		opt(o)
	}

	if o.segmentName == "" {
		// Caller(1) must stay in this function, moving it breaks the
		// derived segment name.
		pc, file, _, ok := runtime.Caller(1)
		if !ok {
			pc = 0
		}

		o.segmentName = "unknown"
		if fn := runtime.FuncForPC(pc); fn != nil {
			o.segmentName = getSegmentName(fn.Name())
		}
		o.layer = layerOf(file)
	}

	txn := newrelic.FromContext(ctx)
	segment := txn.StartSegment(o.segmentName)
	if segment != nil {
		segment.AddAttribute("layer", o.layer)
	}

	return &Monitor{
		ctx:         ctx,
		segmentName: o.segmentName,
		layer:       o.layer,
		start:       time.Now(),
		segment:     segment,
	}
}

// NewMiddlewareRoundTripper instruments an outbound http transport; the NR
// transaction is read from the request context.
func NewMiddlewareRoundTripper(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}

	return newrelic.NewRoundTripper(next)
}
