package server

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"atelier-backend/internal/usecase"
)

func (s *Server) handleCreatePost(c *gin.Context) {
	var in usecase.CreatePostInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid json")
		return
	}
	if err := s.posts.CreatePost(c.Request.Context(), currentUser(c), in); err != nil {
		fail(c, err)
		return
	}
	ok(c, nil)
}

func (s *Server) handleGetPost(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	post, err := s.posts.GetPost(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"post": post})
}

func (s *Server) handleEditPost(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var in usecase.EditPostInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid json")
		return
	}
	in.PostID = id
	if err := s.posts.EditPost(c.Request.Context(), currentUser(c), in); err != nil {
		fail(c, err)
		return
	}
	ok(c, nil)
}

func (s *Server) handleDeletePost(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	if err := s.posts.DeletePost(c.Request.Context(), currentUser(c), id); err != nil {
		fail(c, err)
		return
	}
	ok(c, nil)
}

const maxUploadFiles = 5

func validImageName(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		return true
	}
	return false
}

func (s *Server) handleUploadFile(c *gin.Context) {
	hdr, err := c.FormFile("file")
	if err != nil {
		badRequest(c, "field 'file' required")
		return
	}
	name := filepath.Base(hdr.Filename)
	if !validImageName(name) {
		badRequest(c, "only image files allowed")
		return
	}
	f, err := hdr.Open()
	if err != nil {
		badRequest(c, "cannot read file")
		return
	}
	data, err := io.ReadAll(f)
	f.Close()
	if err != nil {
		badRequest(c, "cannot read file")
		return
	}
	url, err := s.uploads.Write(name, data)
	if err != nil {
		s.log.Error().Err(err).Str("file", name).Msg("upload: write failed")
		fail(c, usecase.ErrInternal("Could not save file"))
		return
	}
	ok(c, gin.H{"url": url})
}

func (s *Server) handleUploadImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		badRequest(c, "invalid multipart form")
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		badRequest(c, "field 'files' required")
		return
	}
	if len(files) > maxUploadFiles {
		badRequest(c, "too many files")
		return
	}

	urls := make([]string, 0, len(files))
	for _, hdr := range files {
		name := filepath.Base(hdr.Filename)
		if !validImageName(name) {
			badRequest(c, "only image files allowed")
			return
		}
		f, err := hdr.Open()
		if err != nil {
			badRequest(c, "cannot read file")
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			badRequest(c, "cannot read file")
			return
		}
		url, err := s.uploads.Write(name, data)
		if err != nil {
			s.log.Error().Err(err).Str("file", name).Msg("upload: write failed")
			fail(c, usecase.ErrInternal("Could not save file"))
			return
		}
		urls = append(urls, url)
	}
	ok(c, gin.H{"urls": urls})
}

// handleDeleteUploads removes every stored object matching a name prefix, so
// a post's images can be dropped in one call.
func (s *Server) handleDeleteUploads(c *gin.Context) {
	prefix := c.Query("prefix")
	if prefix == "" {
		badRequest(c, "prefix required")
		return
	}
	names, err := s.uploads.List(prefix)
	if err != nil {
		s.log.Error().Err(err).Str("prefix", prefix).Msg("upload: list failed")
		fail(c, usecase.ErrInternal("Could not delete files"))
		return
	}
	if err := s.uploads.Delete(names...); err != nil {
		s.log.Error().Err(err).Str("prefix", prefix).Msg("upload: delete failed")
		fail(c, usecase.ErrInternal("Could not delete files"))
		return
	}
	ok(c, gin.H{"deleted": names})
}
