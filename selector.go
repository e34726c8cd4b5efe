package blockweaver

import (
	"github.com/andybalholm/cascadia"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/net/html"
)

// selectorCache memoizes compiled selectors. Schemas reuse a handful of
// selectors on every parse and serialize, so they are compiled once.
type selectorCache struct {
	cache *gocache.Cache
}

func newSelectorCache() *selectorCache {
	return &selectorCache{cache: gocache.New(gocache.NoExpiration, 0)}
}

func (c *selectorCache) compile(sel string) (cascadia.Selector, error) {
	if v, ok := c.cache.Get(sel); ok {
		return v.(cascadia.Selector), nil
	}
	compiled, err := cascadia.Compile(sel)
	if err != nil {
		return nil, err
	}
	c.cache.Set(sel, compiled, gocache.NoExpiration)
	return compiled, nil
}

// first returns the first element under ctx matching sel in document order.
// An empty selector names the context element itself, or the first top-level
// element when ctx is a fragment root.
func (c *selectorCache) first(ctx *html.Node, sel string) (*html.Node, error) {
	if sel == "" {
		if ctx.Type == html.ElementNode {
			return ctx, nil
		}
		return firstElement(ctx), nil
	}
	compiled, err := c.compile(sel)
	if err != nil {
		return nil, err
	}
	return cascadia.Query(ctx, compiled), nil
}

// all returns every element under ctx matching sel in document order.
func (c *selectorCache) all(ctx *html.Node, sel string) ([]*html.Node, error) {
	if sel == "" {
		if n, _ := c.first(ctx, ""); n != nil {
			return []*html.Node{n}, nil
		}
		return nil, nil
	}
	compiled, err := c.compile(sel)
	if err != nil {
		return nil, err
	}
	return cascadia.QueryAll(ctx, compiled), nil
}
