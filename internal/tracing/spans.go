package tracing

// Span attribute keys for resolution tracing. These constants define the
// semantic conventions for span attributes across texel.
const (
	// Resolution attributes
	AttrObjectKind   = "textobject.kind"
	AttrVariant      = "textobject.variant"
	AttrCursor       = "textobject.cursor"
	AttrCount        = "textobject.count"
	AttrSpanStart    = "textobject.span.start"
	AttrSpanEnd      = "textobject.span.end"
	AttrDocRevision  = "document.revision"
	AttrDocLength    = "document.length"
	AttrCacheHit     = "cache.hit"
	AttrErrorMessage = "error.message"
)

// Span name prefix for resolution operations.
const SpanPrefixResolve = "resolve."
