package server

import (
	"github.com/gin-gonic/gin"

	"atelier-backend/internal/usecase"
)

func (s *Server) handleCreateAccount(c *gin.Context) {
	var in usecase.CreateAccountInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid json")
		return
	}
	if err := s.users.CreateAccount(c.Request.Context(), in); err != nil {
		fail(c, err)
		return
	}
	ok(c, nil)
}

func (s *Server) handleLogin(c *gin.Context) {
	var in usecase.LoginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid json")
		return
	}
	token, err := s.users.Login(c.Request.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"token": token})
}

func (s *Server) handleVerifyEmail(c *gin.Context) {
	var in struct {
		Code string `json:"code"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid json")
		return
	}
	if err := s.users.VerifyEmail(c.Request.Context(), in.Code); err != nil {
		fail(c, err)
		return
	}
	ok(c, nil)
}

func (s *Server) handleMe(c *gin.Context) {
	ok(c, gin.H{"user": currentUser(c)})
}

func (s *Server) handleEditProfile(c *gin.Context) {
	var in usecase.EditProfileInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid json")
		return
	}
	if err := s.users.EditProfile(c.Request.Context(), currentUser(c).ID, in); err != nil {
		fail(c, err)
		return
	}
	ok(c, nil)
}
