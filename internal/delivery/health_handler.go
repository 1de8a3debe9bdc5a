package delivery

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler answers liveness and readiness checks. ping reports whether
// the backing store is reachable.
type HealthHandler struct {
	ping    func(ctx context.Context) error
	storage string
}

func NewHealthHandler(storage string, ping func(ctx context.Context) error) *HealthHandler {
	return &HealthHandler{ping: ping, storage: storage}
}

type HealthResponse struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services,omitempty"`
}

func (h *HealthHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)
	router.GET("/live", h.Live)
}

func (h *HealthHandler) Health(c *gin.Context) {
	services := map[string]string{h.storage: "healthy"}
	if err := h.ping(c.Request.Context()); err != nil {
		services[h.storage] = "unhealthy"
		c.JSON(http.StatusServiceUnavailable, HealthResponse{Status: "unhealthy", Services: services})
		return
	}
	c.JSON(http.StatusOK, HealthResponse{Status: "healthy", Services: services})
}

func (h *HealthHandler) Ready(c *gin.Context) {
	if err := h.ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}
