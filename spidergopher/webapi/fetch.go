package webapi

import (
	"io"
	"net/http"
	"time"

	"gockobrowser/gocko/netcache"
	"gockobrowser/spidergopher/core"

	"github.com/dop251/goja"
)

// FetchAPI provides the fetch function
type FetchAPI struct {
	loop  *core.EventLoop
	vm    *goja.Runtime
	cache *netcache.Cache
}

// NewFetchAPI creates a new FetchAPI backed by cache for GET responses.
// A nil cache disables caching entirely (every fetch hits the network).
func NewFetchAPI(loop *core.EventLoop, vm *goja.Runtime, cache *netcache.Cache) *FetchAPI {
	return &FetchAPI{loop: loop, vm: vm, cache: cache}
}

// Fetch implements the fetch() function
// Returns a Promise-like object
func (f *FetchAPI) Fetch(call goja.FunctionCall) goja.Value {
	if len(call.Arguments) < 1 {
		return goja.Undefined()
	}

	url := call.Argument(0).String()

	// Create a promise-like object
	promiseObj := f.vm.NewObject()

	var thenCallback goja.Callable
	var catchCallback goja.Callable

	promiseObj.Set("then", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) > 0 {
			if fn, ok := goja.AssertFunction(call.Argument(0)); ok {
				thenCallback = fn
			}
		}
		return promiseObj // Allow chaining
	})

	promiseObj.Set("catch", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) > 0 {
			if fn, ok := goja.AssertFunction(call.Argument(0)); ok {
				catchCallback = fn
			}
		}
		return promiseObj
	})

	// Make the HTTP request asynchronously, consulting the response
	// cache first so repeated fetches of the same GET URL within its
	// freshness lifetime never touch the network.
	go func() {
		key := netcache.NewKey(url)
		if f.cache != nil {
			if entry, ok := f.cache.Get(key); ok {
				f.loop.Schedule(func() {
					responseObj := f.createResponse(entry.Status, entry.Headers, entry.Body)
					if thenCallback != nil {
						thenCallback(goja.Undefined(), responseObj)
					}
				})
				return
			}
		}

		resp, err := http.Get(url)

		// Schedule the callback on the event loop
		f.loop.Schedule(func() {
			if err != nil {
				if catchCallback != nil {
					catchCallback(goja.Undefined(), f.vm.ToValue(err.Error()))
				}
				return
			}
			defer resp.Body.Close()

			bodyBytes, _ := io.ReadAll(resp.Body)
			f.storeInCache(key, resp, bodyBytes)

			// Create Response object
			responseObj := f.createResponse(resp.StatusCode, resp.Header, bodyBytes)

			if thenCallback != nil {
				thenCallback(goja.Undefined(), responseObj)
			}
		})
	}()

	return promiseObj
}

// storeInCache caches a GET response body under key, honoring the
// response's Cache-Control header when present and falling back to the
// cache's configured default TTL otherwise. A no-store/no-cache
// directive skips caching entirely.
func (f *FetchAPI) storeInCache(key netcache.Key, resp *http.Response, body []byte) {
	if f.cache == nil || resp.Request == nil || resp.Request.Method != http.MethodGet {
		return
	}
	ttl, hasDirective := netcache.ParseCacheControl(resp.Header)
	if hasDirective && ttl == 0 {
		return
	}
	if !hasDirective {
		ttl = netcache.DefaultConfig().DefaultTTL
	}
	now := time.Now()
	f.cache.Put(key, netcache.Entry{
		Status:    resp.StatusCode,
		Headers:   resp.Header,
		Body:      body,
		CachedAt:  now,
		ExpiresAt: now.Add(ttl),
		Size:      int64(len(body)),
	})
}

// createResponse creates a JS Response object from response parts,
// shared between live network fetches and cache hits.
func (f *FetchAPI) createResponse(status int, header http.Header, bodyBytes []byte) goja.Value {
	responseObj := f.vm.NewObject()

	responseObj.Set("ok", status >= 200 && status < 300)
	responseObj.Set("status", status)
	responseObj.Set("statusText", http.StatusText(status))
	responseObj.Set("headers", header.Get("Content-Type"))

	bodyStr := string(bodyBytes)

	// text() returns a promise-like that resolves with the body as text
	responseObj.Set("text", func(call goja.FunctionCall) goja.Value {
		textPromise := f.vm.NewObject()
		var thenCb goja.Callable

		textPromise.Set("then", func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) > 0 {
				if fn, ok := goja.AssertFunction(call.Argument(0)); ok {
					thenCb = fn
				}
			}
			// Immediately resolve since we have the data
			if thenCb != nil {
				f.loop.Schedule(func() {
					thenCb(goja.Undefined(), f.vm.ToValue(bodyStr))
				})
			}
			return textPromise
		})

		return textPromise
	})

	// json() returns a promise-like that resolves with parsed JSON
	responseObj.Set("json", func(call goja.FunctionCall) goja.Value {
		jsonPromise := f.vm.NewObject()
		var thenCb goja.Callable

		jsonPromise.Set("then", func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) > 0 {
				if fn, ok := goja.AssertFunction(call.Argument(0)); ok {
					thenCb = fn
				}
			}
			if thenCb != nil {
				f.loop.Schedule(func() {
					// Parse JSON using Goja's JSON.parse
					jsonParse := f.vm.Get("JSON").ToObject(f.vm).Get("parse")
					if parseFn, ok := goja.AssertFunction(jsonParse); ok {
						result, err := parseFn(goja.Undefined(), f.vm.ToValue(bodyStr))
						if err != nil {
							// Return the raw string on parse error
							thenCb(goja.Undefined(), f.vm.ToValue(bodyStr))
						} else {
							thenCb(goja.Undefined(), result)
						}
					}
				})
			}
			return jsonPromise
		})

		return jsonPromise
	})

	return responseObj
}
