// internal/handlers/order.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/anenterprise-lab/pet-food-backend/internal/services"
	"github.com/anenterprise-lab/pet-food-backend/internal/utils"
)

type OrderHandler struct {
	orderService *services.OrderService
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// POST /api/orders
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req services.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid order payload", err.Error())
		return
	}

	order, err := h.orderService.PlaceOrder(userID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, order)
}

// GET /api/orders/myorders
func (h *OrderHandler) GetMyOrders(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	orders, err := h.orderService.GetMyOrders(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, orders)
}

// GET /api/orders (admin)
func (h *OrderHandler) GetAllOrders(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	orders, total, err := h.orderService.GetAllOrders(params)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(orders, total, params))
}

// POST /api/orders/generate-picklist (admin)
func (h *OrderHandler) GeneratePicklist(c *gin.Context) {
	var req services.GeneratePicklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid picklist payload", err.Error())
		return
	}

	updated, err := h.orderService.GeneratePicklist(&req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Orders moved to processing",
		"updated": updated,
	})
}

// POST /api/orders/scan-item (admin)
func (h *OrderHandler) ScanItem(c *gin.Context) {
	var req services.ScanItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid scan payload", err.Error())
		return
	}

	order, err := h.orderService.ScanItem(&req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, order)
}

// GET /api/orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}

	order, err := h.orderService.GetOrder(orderID, userID, utils.IsAdminFromContext(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, order)
}
