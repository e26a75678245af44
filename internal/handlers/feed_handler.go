package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/graceworks/grace-backend/internal/models"
	"github.com/graceworks/grace-backend/internal/repositories"
	"github.com/graceworks/grace-backend/internal/services"
	"github.com/graceworks/grace-backend/validators"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxUploadSize is the per-file limit for the upload endpoint.
const MaxUploadSize = 10 << 20 // 10 MiB

// FeedHandler handles HTTP requests for the feed
type FeedHandler struct {
	feed *services.FeedService
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(feed *services.FeedService) *FeedHandler {
	return &FeedHandler{feed: feed}
}

// RegisterFeedRoutes registers feed routes on the given group
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.POST("/upload", h.Upload)
	g.POST("/create", h.Create)
	g.GET("", h.List)
	g.GET("/count", h.Count)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	g.POST("/:id/like", h.Like)
	g.POST("/:id/comment", h.Comment)
	g.POST("/:id/share", h.Share)
}

type uploadForm struct {
	User    string   `json:"user" form:"user" validate:"required,objectid"`
	Caption string   `json:"caption" form:"caption" validate:"omitempty,max=2000"`
	Size    string   `json:"size" form:"size" validate:"omitempty,oneof=small medium large"`
	Tags    []string `json:"tags" form:"tags" validate:"omitempty,dive,min=1,max=50"`
}

// Upload creates a post from an uploaded media file. The file must be
// image/* or video/* and at most 10 MiB; anything else is rejected before
// the service or the media store is touched.
func (h *FeedHandler) Upload(c echo.Context) error {
	var form uploadForm
	if err := c.Bind(&form); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
	}
	if err := c.Validate(&form); err != nil {
		return validationOrBadRequest(c, err)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return respondError(c, http.StatusBadRequest, "No file uploaded", err.Error())
	}
	if fileHeader.Size > MaxUploadSize {
		return respondError(c, http.StatusBadRequest, "File exceeds the 10 MiB limit", "file too large")
	}
	mimeType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(mimeType, "image/") && !strings.HasPrefix(mimeType, "video/") {
		return respondError(c, http.StatusBadRequest, "Only image and video files are accepted", "unsupported media type")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return respondError(c, http.StatusInternalServerError, "Failed to read uploaded file", err.Error())
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, "Failed to read uploaded file", err.Error())
	}

	post, err := h.feed.CreateFromUpload(c.Request().Context(), services.UploadInput{
		User:     form.User,
		Data:     data,
		MimeType: mimeType,
		Caption:  form.Caption,
		Size:     form.Size,
		Tags:     form.Tags,
	})
	if err != nil {
		return h.serviceFailure(c, err)
	}

	return respondSuccess(c, http.StatusCreated, "Post created", post)
}

// Create creates a post from already-resolved fields
func (h *FeedHandler) Create(c echo.Context) error {
	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return validationOrBadRequest(c, err)
	}

	post, err := h.feed.CreateDirect(c.Request().Context(), services.DirectInput{
		User:     req.User,
		Type:     req.Type,
		Content:  req.Content,
		Caption:  req.Caption,
		Size:     req.Size,
		Tags:     req.Tags,
		Category: req.Category,
	})
	if err != nil {
		return h.serviceFailure(c, err)
	}

	return respondSuccess(c, http.StatusCreated, "Post created", post)
}

// List returns all posts matching the optional user/category query filter.
// The full matching result set is returned on every call.
func (h *FeedHandler) List(c echo.Context) error {
	filter, fieldErrs := parseFilter(c)
	if fieldErrs != nil {
		return respondValidation(c, "Invalid query parameters", fieldErrs)
	}

	posts, err := h.feed.List(c.Request().Context(), filter)
	if err != nil {
		return h.serviceFailure(c, err)
	}

	return respondSuccess(c, http.StatusOK, "Posts retrieved", echo.Map{
		"posts":      posts,
		"totalPosts": len(posts),
	})
}

// Count returns the total number of posts
func (h *FeedHandler) Count(c echo.Context) error {
	filter, fieldErrs := parseFilter(c)
	if fieldErrs != nil {
		return respondValidation(c, "Invalid query parameters", fieldErrs)
	}

	count, err := h.feed.Count(c.Request().Context(), filter)
	if err != nil {
		return h.serviceFailure(c, err)
	}

	return respondSuccess(c, http.StatusOK, "Post count retrieved", count)
}

// Get returns a single post by ID
func (h *FeedHandler) Get(c echo.Context) error {
	post, err := h.feed.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.serviceFailure(c, err)
	}
	return respondSuccess(c, http.StatusOK, "Post retrieved", post)
}

// Update applies the mutable fields of a post
func (h *FeedHandler) Update(c echo.Context) error {
	var req models.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return validationOrBadRequest(c, err)
	}

	post, err := h.feed.Update(c.Request().Context(), c.Param("id"), repositories.PostUpdate{
		Caption: req.Caption,
		Size:    req.Size,
		Tags:    req.Tags,
	})
	if err != nil {
		return h.serviceFailure(c, err)
	}

	return respondSuccess(c, http.StatusOK, "Post updated", post)
}

// Delete removes a post and, best effort, its backing media object
func (h *FeedHandler) Delete(c echo.Context) error {
	if err := h.feed.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return h.serviceFailure(c, err)
	}
	return respondSuccess(c, http.StatusOK, "Post deleted", nil)
}

// Like toggles the requesting user's like on a post
func (h *FeedHandler) Like(c echo.Context) error {
	var req models.LikeRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return validationOrBadRequest(c, err)
	}

	post, err := h.feed.ToggleLike(c.Request().Context(), c.Param("id"), req.UserID)
	if err != nil {
		return h.serviceFailure(c, err)
	}

	return respondSuccess(c, http.StatusOK, "Like toggled", post)
}

// Comment appends a comment to a post
func (h *FeedHandler) Comment(c echo.Context) error {
	var req models.CommentRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return validationOrBadRequest(c, err)
	}

	post, err := h.feed.AddComment(c.Request().Context(), c.Param("id"), req.UserID, req.Text)
	if err != nil {
		return h.serviceFailure(c, err)
	}

	return respondSuccess(c, http.StatusCreated, "Comment added", post)
}

// Share increments a post's share counter
func (h *FeedHandler) Share(c echo.Context) error {
	var req models.LikeRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return validationOrBadRequest(c, err)
	}

	post, err := h.feed.Share(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.serviceFailure(c, err)
	}

	return respondSuccess(c, http.StatusOK, "Post shared", post)
}

// serviceFailure maps service and storage errors to HTTP status. This is
// the single place that translation happens.
func (h *FeedHandler) serviceFailure(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repositories.ErrPostNotFound):
		return respondError(c, http.StatusNotFound, "Post not found", err.Error())
	case errors.Is(err, repositories.ErrInvalidID):
		return respondError(c, http.StatusBadRequest, "Invalid identifier", err.Error())
	case errors.Is(err, services.ErrUserRequired), errors.Is(err, services.ErrUnsupportedMedia):
		return respondError(c, http.StatusBadRequest, "Invalid request", err.Error())
	default:
		return respondError(c, http.StatusInternalServerError, "Something went wrong", err.Error())
	}
}

func parseFilter(c echo.Context) (repositories.PostFilter, []validators.FieldError) {
	var filter repositories.PostFilter
	var fieldErrs []validators.FieldError

	if user := c.QueryParam("user"); user != "" {
		id, err := primitive.ObjectIDFromHex(user)
		if err != nil {
			fieldErrs = append(fieldErrs, validators.FieldError{Field: "user", Message: "must be a valid identifier"})
		} else {
			filter.User = &id
		}
	}
	if category := c.QueryParam("category"); category != "" {
		id, err := primitive.ObjectIDFromHex(category)
		if err != nil {
			fieldErrs = append(fieldErrs, validators.FieldError{Field: "category", Message: "must be a valid identifier"})
		} else {
			filter.Category = &id
		}
	}
	return filter, fieldErrs
}
