package server

import (
	"github.com/gin-gonic/gin"

	"atelier-backend/internal/usecase"
)

func (s *Server) handleCreateChatRoom(c *gin.Context) {
	var in usecase.CreateChatRoomInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid json")
		return
	}
	id, err := s.chats.CreateChatRoom(c.Request.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"chatRoomId": id})
}

func (s *Server) handleGetChatRooms(c *gin.Context) {
	rooms, err := s.chats.GetChatRooms(c.Request.Context(), currentUser(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"chatRooms": rooms})
}

func (s *Server) handleGetChatRoom(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	room, err := s.chats.GetChatRoom(c.Request.Context(), currentUser(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"chatRoom": room})
}

func (s *Server) handleCreateChat(c *gin.Context) {
	var in usecase.CreateChatInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid json")
		return
	}
	if err := s.chats.CreateChat(c.Request.Context(), currentUser(c), in); err != nil {
		fail(c, err)
		return
	}
	ok(c, nil)
}

func (s *Server) handleLoadChats(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	in := usecase.LoadChatsInput{ChatRoomID: id, Page: queryPage(c)}
	chats, err := s.chats.LoadChats(c.Request.Context(), currentUser(c), in)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"chats": chats})
}
