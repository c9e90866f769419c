package httpserver

import (
	"net/http"

	customersvc "fleetmanager/internal/service/customer"
	"github.com/gin-gonic/gin"
)

func createCustomerHandler(svc *customersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in customersvc.CreateInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request body"})
			return
		}
		created, err := svc.Create(c.Request.Context(), in)
		if err != nil {
			respondError(c, err, "Customer not found")
			return
		}
		c.JSON(http.StatusOK, created)
	}
}

func listCustomersHandler(svc *customersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		skip, ok := queryInt(c, "skip", 0)
		if !ok {
			return
		}
		limit, ok := queryInt(c, "limit", 100)
		if !ok {
			return
		}
		customers, err := svc.List(c.Request.Context(), skip, limit)
		if err != nil {
			respondError(c, err, "Customer not found")
			return
		}
		c.JSON(http.StatusOK, customers)
	}
}

func getCustomerHandler(svc *customersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		customer, err := svc.Get(c.Request.Context(), id)
		if err != nil {
			respondError(c, err, "Customer not found")
			return
		}
		c.JSON(http.StatusOK, customer)
	}
}
