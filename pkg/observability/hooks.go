// Package observability lets a host program observe a sync run without the
// libraries depending on any particular logging or metrics backend.
//
// Libraries emit events through the registered hooks:
//
//	observability.Pipeline().OnStepComplete(ctx, pkg, "add-missing", d, err)
//
// The command registers its implementations once at startup:
//
//	observability.SetPipelineHooks(cli.NewLogHooks(logger))
//
// Every hook set defaults to a no-op implementation.
package observability

import (
	"context"
	"sync"
	"time"
)

// PipelineHooks receives events from package reconciliation.
type PipelineHooks interface {
	// OnPackageStart is called before the first step of a package runs.
	OnPackageStart(ctx context.Context, pkg string)

	// OnPackageComplete is called once a package is done, with the number
	// of messages it produced.
	OnPackageComplete(ctx context.Context, pkg string, messages int, duration time.Duration, err error)

	// OnStepComplete is called after each reconciliation step.
	OnStepComplete(ctx context.Context, pkg, step string, duration time.Duration, err error)

	// OnFileParsed is called after a source file has been scanned for
	// import references.
	OnFileParsed(ctx context.Context, file string, refs int, err error)
}

// CacheHooks receives events from registry response caching.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives events from registry HTTP requests.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, host, path string)
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)
	OnError(ctx context.Context, method, host, path string, err error)
}

// NoopPipelineHooks ignores every pipeline event.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnPackageStart(context.Context, string)                               {}
func (NoopPipelineHooks) OnPackageComplete(context.Context, string, int, time.Duration, error) {}
func (NoopPipelineHooks) OnStepComplete(context.Context, string, string, time.Duration, error) {}
func (NoopPipelineHooks) OnFileParsed(context.Context, string, int, error)                     {}

// NoopCacheHooks ignores every cache event.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks ignores every HTTP event.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

var (
	hooksMu       sync.RWMutex
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	httpHooks     HTTPHooks     = NoopHTTPHooks{}
)

// SetPipelineHooks registers h. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetCacheHooks registers h. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers h. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores the no-op hooks.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
