// Package resolve exposes text object resolution as a service: a registry
// bound to the current document snapshot, fronted by a revision-keyed cache
// and wrapped in OpenTelemetry spans.
package resolve

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/texel/internal/cachemanager"
	"github.com/zjrosen/texel/internal/document"
	"github.com/zjrosen/texel/internal/log"
	"github.com/zjrosen/texel/internal/textobject"
	"github.com/zjrosen/texel/internal/tracing"
)

// cacheTTL bounds how long a memoized resolution lives. Entries are also
// keyed by revision, so the TTL only caps memory growth across revisions.
const cacheTTL = 5 * time.Minute

// Resolution is the outcome of a successful resolution.
type Resolution struct {
	Kind  rune
	Outer bool
	Span  textobject.Span
	Text  string
}

// Service resolves text objects against the current snapshot.
type Service struct {
	snap      *document.Snapshot
	inner     map[rune]textobject.Resolver
	outer     map[rune]textobject.Resolver
	cache     cachemanager.CacheManager[string, Resolution]
	skipCache bool
	cached    *cachemanager.ReadThroughCache[string, Resolution, resolveInput]
	tracer    trace.Tracer
}

type resolveInput struct {
	kind rune
	req  textobject.Request
}

// Option configures a Service.
type Option func(*options)

type options struct {
	cacheEnabled bool
	tracer       trace.Tracer
}

// WithCache toggles the resolution cache.
func WithCache(enabled bool) Option {
	return func(o *options) { o.cacheEnabled = enabled }
}

// WithTracer sets the tracer spans are created on.
func WithTracer(t trace.Tracer) Option {
	return func(o *options) { o.tracer = t }
}

// NewService builds a service over snap.
func NewService(snap *document.Snapshot, opts ...Option) *Service {
	o := options{cacheEnabled: true}
	for _, opt := range opts {
		opt(&o)
	}
	if o.tracer == nil {
		p, _ := tracing.NewProvider(tracing.Config{Enabled: false})
		o.tracer = p.Tracer()
	}

	s := &Service{
		snap:      snap,
		inner:     make(map[rune]textobject.Resolver),
		outer:     make(map[rune]textobject.Resolver),
		cache:     cachemanager.NewInMemoryCacheManager[string, Resolution]("resolve", cacheTTL, cachemanager.DefaultCleanupInterval),
		skipCache: !o.cacheEnabled,
		tracer:    o.tracer,
	}
	textobject.NewRegistry(snap, snap, snap).Install(s.inner, s.outer)
	s.cached = cachemanager.NewReadThroughCache[string, Resolution, resolveInput](s.cache, s.resolve, s.skipCache)
	return s
}

// Snapshot returns the snapshot the service resolves against.
func (s *Service) Snapshot() *document.Snapshot { return s.snap }

// WithSnapshot returns a service bound to a new snapshot. The cache and
// tracer carry over; stale entries age out because keys embed the revision.
func (s *Service) WithSnapshot(snap *document.Snapshot) *Service {
	next := &Service{
		snap:      snap,
		inner:     make(map[rune]textobject.Resolver),
		outer:     make(map[rune]textobject.Resolver),
		cache:     s.cache,
		skipCache: s.skipCache,
		tracer:    s.tracer,
	}
	textobject.NewRegistry(snap, snap, snap).Install(next.inner, next.outer)
	next.cached = cachemanager.NewReadThroughCache[string, Resolution, resolveInput](next.cache, next.resolve, next.skipCache)
	return next
}

// Resolve resolves the kind's inner or outer object for req.
func (s *Service) Resolve(ctx context.Context, kind rune, req textobject.Request) (Resolution, error) {
	ctx, span := s.tracer.Start(ctx, tracing.SpanPrefixResolve+kindName(kind),
		trace.WithAttributes(
			attribute.String(tracing.AttrObjectKind, string(kind)),
			attribute.String(tracing.AttrVariant, variantName(req.Outer)),
			attribute.Int(tracing.AttrCursor, req.Cursor),
			attribute.Int(tracing.AttrCount, req.EffectiveCount()),
			attribute.Int64(tracing.AttrDocRevision, int64(s.snap.Revision())),
			attribute.Int(tracing.AttrDocLength, s.snap.Len()),
		))
	defer span.End()

	res, err := s.cached.Get(ctx, s.cacheKey(kind, req), resolveInput{kind: kind, req: req}, cacheTTL)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.String(tracing.AttrErrorMessage, err.Error()))
		log.Debug(log.CatResolve, "resolution failed",
			"kind", string(kind), "variant", variantName(req.Outer), "cursor", req.Cursor, "error", err)
		return Resolution{}, err
	}

	span.SetAttributes(
		attribute.Int(tracing.AttrSpanStart, res.Span.Start),
		attribute.Int(tracing.AttrSpanEnd, res.Span.End),
	)
	log.Debug(log.CatResolve, "resolved",
		"kind", string(kind), "variant", variantName(req.Outer),
		"cursor", req.Cursor, "span", res.Span.String())
	return res, nil
}

// resolve is the uncached path behind the read-through cache.
func (s *Service) resolve(_ context.Context, in resolveInput) (Resolution, error) {
	table := s.inner
	if in.req.Outer {
		table = s.outer
	}
	resolver, ok := table[in.kind]
	if !ok {
		return Resolution{}, fmt.Errorf("unknown text object kind %q", in.kind)
	}

	span, err := resolver(in.req)
	if err != nil {
		return Resolution{}, err
	}
	return Resolution{
		Kind:  in.kind,
		Outer: in.req.Outer,
		Span:  span,
		Text:  s.snap.Slice(span),
	}, nil
}

// cacheKey embeds everything a resolution depends on, revision first so
// stale entries can never be served for edited text.
func (s *Service) cacheKey(kind rune, req textobject.Request) string {
	bounds := "-"
	if req.Bounds != nil {
		bounds = req.Bounds.String()
	}
	return fmt.Sprintf("%d:%c:%s:%d:%d:%s",
		s.snap.Revision(), kind, variantName(req.Outer), req.Cursor, req.EffectiveCount(), bounds)
}

func variantName(outer bool) string {
	if outer {
		return "outer"
	}
	return "inner"
}

func kindName(kind rune) string {
	switch kind {
	case textobject.KindQuote:
		return "quote"
	case textobject.KindDollarMath:
		return "dollar-math"
	case textobject.KindBracketMath:
		return "bracket-math"
	case textobject.KindMacro:
		return "macro"
	case textobject.KindEnvironment:
		return "environment"
	default:
		return "unknown"
	}
}
