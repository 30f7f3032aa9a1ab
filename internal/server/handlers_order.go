package server

import (
	"github.com/gin-gonic/gin"

	"atelier-backend/internal/domain"
	"atelier-backend/internal/usecase"
)

func (s *Server) handleCreateOrder(c *gin.Context) {
	var in usecase.CreateOrderInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid json")
		return
	}
	if err := s.orders.CreateOrder(c.Request.Context(), currentUser(c), in); err != nil {
		fail(c, err)
		return
	}
	ok(c, nil)
}

func (s *Server) handleGetOrders(c *gin.Context) {
	in := usecase.GetOrdersInput{
		Status: domain.OrderStatus(c.Query("status")),
		Page:   queryPage(c),
	}
	orders, err := s.orders.GetOrders(c.Request.Context(), currentUser(c), in)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"orders": orders})
}

func (s *Server) handleGetOrder(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	order, err := s.orders.GetOrder(c.Request.Context(), currentUser(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"order": order})
}

func (s *Server) handleEditOrderStatus(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var in struct {
		Status domain.OrderStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid json")
		return
	}
	if err := s.orders.EditOrderStatus(c.Request.Context(), currentUser(c), id, in.Status); err != nil {
		fail(c, err)
		return
	}
	ok(c, nil)
}

func (s *Server) handleCreatePayment(c *gin.Context) {
	var in usecase.CreatePaymentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid json")
		return
	}
	if err := s.payments.CreatePayment(c.Request.Context(), currentUser(c), in); err != nil {
		fail(c, err)
		return
	}
	ok(c, nil)
}

func (s *Server) handleGetPayments(c *gin.Context) {
	payments, err := s.payments.GetPayments(c.Request.Context(), currentUser(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"payments": payments})
}
