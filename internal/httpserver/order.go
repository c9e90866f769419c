package httpserver

import (
	"net/http"

	ordersvc "fleetmanager/internal/service/order"
	"github.com/gin-gonic/gin"
)

func createOrderHandler(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in ordersvc.CreateInput
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

func listOrdersHandler(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, ok := queryInt(c, "page", 1)
		if !ok {
			return
		}
		limit, ok := queryInt(c, "limit", 10)
		if !ok {
			return
		}
		customerID, ok := queryInt(c, "customer_id", 0)
		if !ok {
			return
		}

		result, err := svc.List(c.Request.Context(), ordersvc.ListInput{
			Page:       page,
			Limit:      limit,
			Search:     c.Query("search"),
			Status:     c.Query("status"),
			CustomerID: int64(customerID),
			SortBy:     c.Query("sort_by"),
			SortOrder:  c.Query("sort_order"),
		})
		if err != nil {
			respondError(c, err, "Order not found")
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func getOrderHandler(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		order, err := svc.Get(c.Request.Context(), id)
		if err != nil {
			respondError(c, err, "Order not found")
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func updateOrderHandler(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		var in ordersvc.UpdateInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request body"})
			return
		}
		updated, err := svc.Update(c.Request.Context(), id, in)
		if err != nil {
			respondError(c, err, "Order not found")
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

func deleteOrderHandler(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		if err := svc.Delete(c.Request.Context(), id); err != nil {
			respondError(c, err, "Order not found")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
	}
}
