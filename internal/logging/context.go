package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// Field names set by the scoping helpers.
const (
	ComponentKey = "component"
	WindowKey    = "window_id"
	TabKey       = "tab_id"
	URLKey       = "url"
)

// URLLen caps URLs written with URL.
const URLLen = 60

// FromContext returns the logger carried by ctx, or zerolog's disabled
// logger when there is none.
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// WithContext attaches logger to ctx.
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return logger.WithContext(ctx)
}

// WithComponent names the subsystem on every line logged through ctx.
func WithComponent(ctx context.Context, name string) context.Context {
	return scoped(ctx, ComponentKey, name)
}

// WithWindowID scopes ctx to one browser window.
func WithWindowID(ctx context.Context, windowID string) context.Context {
	return scoped(ctx, WindowKey, windowID)
}

// WithTab scopes ctx to one tab of the window already on ctx.
func WithTab(ctx context.Context, tabID string) context.Context {
	return scoped(ctx, TabKey, tabID)
}

// URL adds url to e, shortened to URLLen.
func URL(e *zerolog.Event, url string) *zerolog.Event {
	return e.Str(URLKey, TruncateURL(url, URLLen))
}

func scoped(ctx context.Context, key, value string) context.Context {
	l := FromContext(ctx).With().Str(key, value).Logger()
	return l.WithContext(ctx)
}
