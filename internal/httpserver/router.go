package httpserver

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"fleetmanager/internal/domain"
	customersvc "fleetmanager/internal/service/customer"
	ordersvc "fleetmanager/internal/service/order"
	stopsvc "fleetmanager/internal/service/stop"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Deps bundles the services the handlers dispatch to.
type Deps struct {
	CustomerSvc *customersvc.Service
	OrderSvc    *ordersvc.Service
	StopSvc     *stopsvc.Service
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps, corsOrigins []string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
	}))

	router.GET("/", rootHandler)
	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	api := router.Group("/api")
	api.POST("/customers", createCustomerHandler(deps.CustomerSvc))
	api.GET("/customers", listCustomersHandler(deps.CustomerSvc))
	api.GET("/customers/:id", getCustomerHandler(deps.CustomerSvc))

	api.POST("/orders", createOrderHandler(deps.OrderSvc))
	api.GET("/orders", listOrdersHandler(deps.OrderSvc))
	api.GET("/orders/:id", getOrderHandler(deps.OrderSvc))
	api.PUT("/orders/:id", updateOrderHandler(deps.OrderSvc))
	api.DELETE("/orders/:id", deleteOrderHandler(deps.OrderSvc))

	api.PATCH("/stops/:id/status", updateStopStatusHandler(deps.StopSvc))

	return router
}

// respondError maps the domain error taxonomy onto HTTP statuses. notFound
// is the detail used for a missing entity.
func respondError(c *gin.Context, err error, notFound string) {
	var vErr *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": notFound})
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"detail": vErr.Reason})
	case errors.Is(err, domain.ErrAlreadyExists):
		c.JSON(http.StatusBadRequest, gin.H{"detail": "already exists"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
	}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid id"})
		return 0, false
	}
	return id, true
}

func queryInt(c *gin.Context, key string, def int) (int, bool) {
	v := c.Query(key)
	if v == "" {
		return def, true
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid " + key})
		return 0, false
	}
	return n, true
}
