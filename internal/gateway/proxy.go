package gateway

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/maximboltinov/ShareIt/internal/common/response"
)

// Proxy forwards validated requests unchanged to the rental server.
type Proxy struct {
	target *url.URL
	proxy  *httputil.ReverseProxy
	logger *zap.Logger
}

// NewProxy creates a Proxy for the server at serverURL.
func NewProxy(serverURL string, logger *zap.Logger) (*Proxy, error) {
	target, err := url.Parse(serverURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server URL %q: %w", serverURL, err)
	}
	if target.Scheme == "" || target.Host == "" {
		return nil, fmt.Errorf("server URL %q must include scheme and host", serverURL)
	}

	p := &Proxy{target: target, logger: logger}
	p.proxy = httputil.NewSingleHostReverseProxy(target)
	p.proxy.ErrorHandler = p.handleError
	return p, nil
}

// Forward is the terminal gin handler of every gateway route.
func (p *Proxy) Forward(c *gin.Context) {
	p.proxy.ServeHTTP(c.Writer, c.Request)
}

func (p *Proxy) handleError(w http.ResponseWriter, r *http.Request, err error) {
	p.logger.Error("upstream request failed",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("upstream", p.target.String()),
		zap.Error(err),
	)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadGateway)
	_, _ = fmt.Fprintf(w, `{"error":%q}`, "upstream unavailable")
}

// rejected writes the standard 400 body.
func rejected(c *gin.Context, message string) {
	response.BadRequest(c, message)
}
