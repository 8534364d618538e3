package handler

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"sort"
	"strings"

	"alumni-gateway/common"
	"alumni-gateway/config"
	"alumni-gateway/logger"
)

type proxyRoute struct {
	prefix string
	proxy  *httputil.ReverseProxy
}

// ProxyHandler forwards authenticated traffic to the upstream services
// using longest-prefix matching over the configured route table.
type ProxyHandler struct {
	routes []proxyRoute
}

// NewProxyHandler builds one reverse proxy per configured upstream. Routes
// are ordered longest prefix first so the most specific one wins.
func NewProxyHandler(routes []config.RouteConfig) (*ProxyHandler, error) {
	h := &ProxyHandler{}
	for _, rc := range routes {
		target, err := url.Parse(rc.Upstream)
		if err != nil {
			return nil, fmt.Errorf("invalid upstream URL %q for prefix %q: %w", rc.Upstream, rc.Prefix, err)
		}

		proxy := httputil.NewSingleHostReverseProxy(target)
		proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
			logger.Log.WithError(err).WithField("path", r.URL.Path).Error("Upstream request failed")
			common.NewAppError(http.StatusBadGateway, "Upstream service unavailable", err).Send(w)
		}

		h.routes = append(h.routes, proxyRoute{prefix: rc.Prefix, proxy: proxy})
	}

	sort.SliceStable(h.routes, func(i, j int) bool {
		return len(h.routes[i].prefix) > len(h.routes[j].prefix)
	})

	return h, nil
}

func (h *ProxyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	for _, route := range h.routes {
		if strings.HasPrefix(r.URL.Path, route.prefix) {
			route.proxy.ServeHTTP(w, r)
			return
		}
	}
	common.NewAppError(http.StatusNotFound, "No upstream route for path", nil).Send(w)
}
