package middleware

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/withhover/pkg/session"
)

const defaultTracerName = "withhover"

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "withhover").
	TracerName string

	// Provider supplies the tracer. Nil means the global provider.
	Provider trace.TracerProvider

	// Filter determines which events to trace. Nil traces everything.
	Filter func(d *session.Dispatch) bool

	// AttributeExtractor adds custom attributes to each span.
	AttributeExtractor func(d *session.Dispatch) []attribute.KeyValue
}

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the provider the tracer is taken from.
func WithTracerProvider(tp trace.TracerProvider) OTelOption {
	return func(c *OTelConfig) {
		c.Provider = tp
	}
}

// WithEventFilter sets a filter function for events.
func WithEventFilter(filter func(d *session.Dispatch) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(d *session.Dispatch) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

// OpenTelemetry creates middleware that traces every dispatched event.
// The span is stored in d.Context so inner middleware can add to it.
func OpenTelemetry(opts ...OTelOption) session.Middleware {
	config := OTelConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}

	var tracer trace.Tracer
	if config.Provider != nil {
		tracer = config.Provider.Tracer(config.TracerName)
	} else {
		tracer = otel.Tracer(config.TracerName)
	}

	return session.MiddlewareFunc(func(d *session.Dispatch, next func() error) error {
		if config.Filter != nil && !config.Filter(d) {
			return next()
		}

		spanName := "withhover.event"
		attrs := []attribute.KeyValue{
			attribute.String("withhover.session_id", d.SessionID),
		}
		if d.Event != nil {
			spanName = fmt.Sprintf("withhover.%s", d.Event.Type)
			attrs = append(attrs,
				attribute.String("withhover.event_type", d.Event.Type.String()),
				attribute.String("withhover.hid", d.Event.HID),
				attribute.Int64("withhover.seq", int64(d.Event.Seq)),
			)
		}
		if config.AttributeExtractor != nil {
			attrs = append(attrs, config.AttributeExtractor(d)...)
		}

		parent := d.Context
		if parent == nil {
			parent = context.Background()
		}
		spanCtx, span := tracer.Start(parent, spanName,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(attrs...),
		)
		defer span.End()

		restore := d.Context
		d.Context = spanCtx
		defer func() { d.Context = restore }()

		err := next()
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.SetAttributes(attribute.Int("withhover.patch_count", d.Patches))
		return err
	})
}

// SpanFromDispatch returns the span started for d, or a non-recording span
// when the event is not traced.
func SpanFromDispatch(d *session.Dispatch) trace.Span {
	if d.Context == nil {
		return trace.SpanFromContext(context.Background())
	}
	return trace.SpanFromContext(d.Context)
}
