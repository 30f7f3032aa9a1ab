package server

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"atelier-backend/internal/usecase"
)

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, "invalid id")
		return 0, false
	}
	return id, true
}

func queryPage(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func (s *Server) handleCreateStore(c *gin.Context) {
	var in usecase.CreateStoreInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid json")
		return
	}
	id, err := s.stores.CreateStore(c.Request.Context(), currentUser(c), in)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"storeId": id})
}

func (s *Server) handleMyStores(c *gin.Context) {
	stores, err := s.stores.MyStores(c.Request.Context(), currentUser(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"stores": stores})
}

func (s *Server) handleEditStore(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var in usecase.EditStoreInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid json")
		return
	}
	in.StoreID = id
	if err := s.stores.EditStore(c.Request.Context(), currentUser(c), in); err != nil {
		fail(c, err)
		return
	}
	ok(c, nil)
}

func (s *Server) handleDeleteStore(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	if err := s.stores.DeleteStore(c.Request.Context(), currentUser(c), id); err != nil {
		fail(c, err)
		return
	}
	ok(c, nil)
}

func (s *Server) handleAllCategories(c *gin.Context) {
	categories, err := s.stores.AllCategories(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"categories": categories})
}

func (s *Server) handleCategoryBySlug(c *gin.Context) {
	page, err := s.stores.FindCategoryBySlug(c.Request.Context(), c.Param("slug"), queryPage(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{
		"category":     page.Category,
		"stores":       page.Stores,
		"totalPages":   page.TotalPages,
		"totalResults": page.TotalResults,
	})
}

func (s *Server) handleAllStores(c *gin.Context) {
	page, err := s.stores.AllStores(c.Request.Context(), queryPage(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"stores": page.Stores, "totalPages": page.TotalPages, "totalResults": page.TotalResults})
}

func (s *Server) handleSearchStores(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		badRequest(c, "query required")
		return
	}
	page, err := s.stores.SearchStoreByName(c.Request.Context(), query, queryPage(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"stores": page.Stores, "totalPages": page.TotalPages, "totalResults": page.TotalResults})
}

func (s *Server) handleGetStore(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	detail, err := s.stores.FindStoreByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"store": detail.Store, "commissions": detail.Commissions})
}

func (s *Server) handleCreateCommission(c *gin.Context) {
	var in usecase.CreateCommissionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid json")
		return
	}
	if err := s.stores.CreateCommission(c.Request.Context(), currentUser(c), in); err != nil {
		fail(c, err)
		return
	}
	ok(c, nil)
}

func (s *Server) handleEditCommission(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var in usecase.EditCommissionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid json")
		return
	}
	in.CommissionID = id
	if err := s.stores.EditCommission(c.Request.Context(), currentUser(c), in); err != nil {
		fail(c, err)
		return
	}
	ok(c, nil)
}

func (s *Server) handleDeleteCommission(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	if err := s.stores.DeleteCommission(c.Request.Context(), currentUser(c), id); err != nil {
		fail(c, err)
		return
	}
	ok(c, nil)
}
