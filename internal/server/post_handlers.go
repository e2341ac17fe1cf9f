package server

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"slices"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetPosts handles GET /api/posts?page=&limit=&search=
func (s *Server) GetPosts(c *fiber.Ctx) error {
	page := parsePageQuery(c, 6)
	search := strings.TrimSpace(c.Query("search"))

	result, err := s.postService.List(c.Context(), service.ListPostsInput{
		Page:   page.Page,
		Limit:  page.Limit,
		Search: search,
	})
	if err != nil {
		return models.RespondWithAppError(c, err, s.exposeDetails())
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    result,
	})
}

// GetPost handles GET /api/posts/:id. Reading a post bumps its view counter.
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.Get(c.Context(), id)
	if err != nil {
		return models.RespondWithAppError(c, err, s.exposeDetails())
	}
	observability.PostViewsTotal.Inc()

	return c.JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"post": post},
	})
}

// GetUserPosts handles GET /api/posts/user/:id
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	authorID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	page := parsePageQuery(c, 10)

	result, err := s.postService.GetByAuthor(c.Context(), authorID, page.Page, page.Limit)
	if err != nil {
		return models.RespondWithAppError(c, err, s.exposeDetails())
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    result,
	})
}

// postForm carries the parsed fields of a create/update request.
type postForm struct {
	Title         string
	Body          string
	Tags          string
	CoverImageURL string
}

// parsePostForm reads title/body (and an optional coverImage file) from a
// multipart form, or from a JSON body when the request is not multipart.
// A stored cover image yields a URL under /uploads.
func (s *Server) parsePostForm(c *fiber.Ctx) (*postForm, error) {
	contentType := c.Get("Content-Type")
	if !strings.HasPrefix(contentType, fiber.MIMEMultipartForm) {
		var req struct {
			Title string `json:"title"`
			Body  string `json:"body"`
			Tags  string `json:"tags"`
		}
		if err := c.BodyParser(&req); err != nil {
			return nil, models.NewValidationError("Invalid request body")
		}
		return &postForm{Title: req.Title, Body: req.Body, Tags: req.Tags}, nil
	}

	form := &postForm{
		Title: c.FormValue("title"),
		Body:  c.FormValue("body"),
		Tags:  c.FormValue("tags"),
	}

	file, err := c.FormFile("coverImage")
	if err != nil {
		// No file attached; the cover image is optional.
		return form, nil
	}

	url, err := s.storeCoverImage(c, file)
	if err != nil {
		return nil, err
	}
	form.CoverImageURL = url
	return form, nil
}

// storeCoverImage validates an uploaded cover image against the MIME
// allow-list and size cap, then writes it under the upload dir with a
// generated name.
func (s *Server) storeCoverImage(c *fiber.Ctx, file *multipart.FileHeader) (string, error) {
	if file.Size > s.config.MaxUploadSize {
		return "", models.NewPayloadTooLargeError(
			fmt.Sprintf("File too large. Maximum size is %dMB.", s.config.MaxUploadSize/(1024*1024)))
	}

	contentType := file.Header.Get("Content-Type")
	allowed := s.config.AllowedMIMETypes()
	if !slices.Contains(allowed, contentType) {
		return "", models.NewUnsupportedMediaTypeError(
			fmt.Sprintf("Invalid file type. Only %s are allowed.", strings.Join(allowed, ", ")))
	}

	name := uuid.NewString() + strings.ToLower(filepath.Ext(file.Filename))
	dest := filepath.Join(s.config.UploadDir, name)
	if err := c.SaveFile(file, dest); err != nil {
		return "", models.NewInternalError(err)
	}

	return "/uploads/" + name, nil
}

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	form, err := s.parsePostForm(c)
	if err != nil {
		return models.RespondWithAppError(c, err, s.exposeDetails())
	}

	post, err := s.postService.Create(c.Context(), service.CreatePostInput{
		AuthorID:      userID,
		Title:         form.Title,
		Body:          form.Body,
		CoverImageURL: form.CoverImageURL,
		Tags:          form.Tags,
	})
	if err != nil {
		return models.RespondWithAppError(c, err, s.exposeDetails())
	}
	observability.PostsCreatedTotal.Inc()

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Post created successfully",
		"data":    fiber.Map{"post": post},
	})
}

// UpdatePost handles PUT /api/posts/:id
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	form, err := s.parsePostForm(c)
	if err != nil {
		return models.RespondWithAppError(c, err, s.exposeDetails())
	}

	post, err := s.postService.Update(c.Context(), service.UpdatePostInput{
		PostID:        postID,
		RequesterID:   userID,
		Title:         form.Title,
		Body:          form.Body,
		CoverImageURL: form.CoverImageURL,
	})
	if err != nil {
		return models.RespondWithAppError(c, err, s.exposeDetails())
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Post updated successfully",
		"data":    fiber.Map{"post": post},
	})
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.Delete(c.Context(), postID, userID); err != nil {
		return models.RespondWithAppError(c, err, s.exposeDetails())
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Post deleted successfully",
		"data":    fiber.Map{},
	})
}
