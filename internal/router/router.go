package router

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	appointmenthandler "github.com/medportal/portal-api/internal/handler/appointment"
	authhandler "github.com/medportal/portal-api/internal/handler/auth"
	complainthandler "github.com/medportal/portal-api/internal/handler/complaint"
	doctorhandler "github.com/medportal/portal-api/internal/handler/doctor"
	healthhandler "github.com/medportal/portal-api/internal/handler/health"
	paymenthandler "github.com/medportal/portal-api/internal/handler/payment"
	prescriptionhandler "github.com/medportal/portal-api/internal/handler/prescription"
	transactionhandler "github.com/medportal/portal-api/internal/handler/transaction"
	userhandler "github.com/medportal/portal-api/internal/handler/user"
	"github.com/medportal/portal-api/internal/middleware"
	"github.com/medportal/portal-api/internal/model"
)

type Handlers struct {
	Auth         *authhandler.Handler
	User         *userhandler.Handler
	Doctor       *doctorhandler.Handler
	Appointment  *appointmenthandler.Handler
	Prescription *prescriptionhandler.Handler
	Payment      *paymenthandler.Handler
	Transaction  *transactionhandler.Handler
	Complaint    *complainthandler.Handler
	Health       *healthhandler.Handler
}

type Config struct {
	RateLimitRPS   float64
	RateLimitBurst int
	CORS           middleware.CORSConfig
}

type Router struct {
	engine   *gin.Engine
	registry *prometheus.Registry
	metrics  *routerMetrics
}

type routerMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	errorTotal      *prometheus.CounterVec
}

func New(h Handlers, auth *middleware.AuthMiddleware, config Config) *Router {
	gin.SetMode(gin.ReleaseMode)
	gin.EnableJsonDecoderDisallowUnknownFields()
	registerValidations()

	engine := gin.New()
	registry := prometheus.NewRegistry()

	r := &Router{
		engine:   engine,
		registry: registry,
		metrics:  initRouterMetrics(registry),
	}

	engine.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		r.metricsMiddleware(),
	)
	engine.Use(middleware.CORS(config.CORS))

	if config.RateLimitRPS > 0 {
		rateLimiter := middleware.NewRateLimiter(config.RateLimitRPS, config.RateLimitBurst)
		engine.Use(rateLimiter.RateLimit())
	}

	h.Health.RegisterRoutes(engine)
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	h.Auth.RegisterRoutes(engine, auth.Authenticate())
	h.User.RegisterRoutes(engine, auth.Authenticate(), auth.RequireRole(model.RoleAdmin))
	h.Doctor.RegisterRoutes(engine)
	h.Appointment.RegisterRoutes(engine)
	h.Prescription.RegisterRoutes(engine)
	h.Payment.RegisterRoutes(engine)
	h.Transaction.RegisterRoutes(engine)
	h.Complaint.RegisterRoutes(engine)

	return r
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// registerValidations installs the custom binding validators. Safe to call
// more than once.
func registerValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case model.RoleUser, model.RoleAdmin, model.RoleDoctor:
			return true
		}
		return false
	})
}

func initRouterMetrics(registry *prometheus.Registry) *routerMetrics {
	m := &routerMetrics{
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "http_request_duration_seconds",
				Help: "Duration of HTTP requests in seconds",
			},
			[]string{"method", "path", "status"},
		),
		requestTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		errorTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_errors_total",
				Help: "Total number of HTTP error responses",
			},
			[]string{"method", "path", "status"},
		),
	}

	registry.MustRegister(m.requestDuration, m.requestTotal, m.errorTotal)
	return m
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method
		status := strconv.Itoa(c.Writer.Status())

		r.metrics.requestDuration.WithLabelValues(method, path, status).Observe(time.Since(start).Seconds())
		r.metrics.requestTotal.WithLabelValues(method, path, status).Inc()
		if c.Writer.Status() >= 400 {
			r.metrics.errorTotal.WithLabelValues(method, path, status).Inc()
		}
	}
}
