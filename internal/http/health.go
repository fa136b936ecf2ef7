package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chasecee/cut-calc/internal/circuitbreaker"
)

// HealthChecker reports whether one dependency is usable.
type HealthChecker interface {
	Check() error
}

// HealthCheckerFunc adapts a plain function to HealthChecker.
type HealthCheckerFunc func() error

func (f HealthCheckerFunc) Check() error { return f() }

// HealthHandler serves the liveness and readiness probes. Readiness
// aggregates registered checkers and circuit breaker states; an open
// breaker marks the service degraded so load balancers stop routing to it.
type HealthHandler struct {
	checkers map[string]HealthChecker
	breakers map[string]*circuitbreaker.CircuitBreaker
}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{
		checkers: make(map[string]HealthChecker),
		breakers: make(map[string]*circuitbreaker.CircuitBreaker),
	}
}

// AddChecker registers a dependency check under name.
func (h *HealthHandler) AddChecker(name string, checker HealthChecker) {
	h.checkers[name] = checker
}

// RegisterCircuitBreaker includes a breaker's state in readiness output.
func (h *HealthHandler) RegisterCircuitBreaker(name string, cb *circuitbreaker.CircuitBreaker) {
	h.breakers[name] = cb
}

// Register mounts the probe endpoints.
func (h *HealthHandler) Register(router *gin.Engine) {
	router.GET("/healthz", h.Liveness)
	router.GET("/readyz", h.Readiness)
}

// Liveness handles the liveness probe endpoint.
// @Summary     Liveness probe
// @Description Returns OK while the process is running. Orchestrators restart the service when this stops answering.
// @Tags        Health
// @Produce     json
// @Success     200 {object} map[string]string "Service is alive"
// @Router      /healthz [get]
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles the readiness probe endpoint.
// @Summary     Readiness probe
// @Description Returns OK when every dependency check passes and no circuit breaker is open. Load balancers use this to decide whether to route traffic here.
// @Tags        Health
// @Produce     json
// @Success     200 {object} map[string]interface{} "Service is ready"
// @Failure     503 {object} map[string]interface{} "Service is not ready"
// @Router      /readyz [get]
func (h *HealthHandler) Readiness(c *gin.Context) {
	ready := true
	checks := make(map[string]interface{})

	for name, checker := range h.checkers {
		if err := checker.Check(); err != nil {
			checks[name] = err.Error()
			ready = false
		} else {
			checks[name] = "ok"
		}
	}

	for name, cb := range h.breakers {
		stats := cb.GetStats()
		checks[name+"_circuit"] = stats.State
		if !stats.IsHealthy {
			ready = false
		}
	}

	if len(checks) == 0 {
		checks["service"] = "ok"
	}

	status := http.StatusOK
	overall := "ok"
	if !ready {
		status = http.StatusServiceUnavailable
		overall = "degraded"
	}

	c.JSON(status, gin.H{"status": overall, "checks": checks})
}
