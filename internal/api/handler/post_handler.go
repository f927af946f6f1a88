package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/VGOT23/rbac-project/internal/core/ports"
	"github.com/VGOT23/rbac-project/internal/pkg/metrics"
)

// PostHandler handles HTTP requests for post operations. Role checks happen in
// the route middleware; ownership is checked by the service.
type PostHandler struct {
	service ports.PostService
}

func NewPostHandler(service ports.PostService) *PostHandler {
	return &PostHandler{service: service}
}

// List handles GET /api/posts.
//
// @Summary      List posts
// @Description  Admins see every post; other roles see published posts and their own drafts.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "draft or published"
// @Param        author  query     string  false  "Author id"
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Page size (default 10, max 100)"
// @Success      200     {object}  envelope{data=listPostsResponse}
// @Failure      400     {object}  envelope
// @Failure      401     {object}  envelope
// @Failure      403     {object}  envelope
// @Router       /api/posts [get]
func (h *PostHandler) List(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	var q listPostsQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}
	if err := c.Validate(&q); err != nil {
		return err
	}

	result, err := h.service.List(c.Request().Context(), p, toListPostsInput(q))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, envelope{Success: true, Data: toListPostsResponse(result)})
}

// Get handles GET /api/posts/:id.
//
// @Summary      Get a post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Post id"
// @Success      200  {object}  envelope{data=postResponse}
// @Failure      401  {object}  envelope
// @Failure      403  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /api/posts/{id} [get]
func (h *PostHandler) Get(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	post, err := h.service.Get(c.Request().Context(), p, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, envelope{Success: true, Data: toPostResponse(post)})
}

// Create handles POST /api/posts. The caller becomes the author.
//
// @Summary      Create a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPostRequest  true  "Post"
// @Success      201   {object}  envelope{data=postResponse}
// @Failure      400   {object}  envelope
// @Failure      401   {object}  envelope
// @Failure      403   {object}  envelope
// @Router       /api/posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	var req createPostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post, err := h.service.Create(c.Request().Context(), p, toCreatePostInput(req))
	if err != nil {
		return err
	}

	metrics.PostsCreatedTotal.WithLabelValues(string(post.Status)).Inc()
	return c.JSON(http.StatusCreated, envelope{
		Success: true,
		Message: "post created",
		Data:    toPostResponse(post),
	})
}

// Update handles PUT /api/posts/:id.
//
// @Summary      Update a post
// @Description  Only the author or an admin may update a post. Omitted fields are left unchanged.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Post id"
// @Param        body  body      updatePostRequest  true  "Fields to change"
// @Success      200   {object}  envelope{data=postResponse}
// @Failure      400   {object}  envelope
// @Failure      401   {object}  envelope
// @Failure      403   {object}  envelope
// @Failure      404   {object}  envelope
// @Router       /api/posts/{id} [put]
func (h *PostHandler) Update(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	var req updatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post, err := h.service.Update(c.Request().Context(), p, c.Param("id"), toUpdatePostInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, envelope{
		Success: true,
		Message: "post updated",
		Data:    toPostResponse(post),
	})
}

// Delete handles DELETE /api/posts/:id.
//
// @Summary      Delete a post
// @Description  Only the author or an admin may delete a post.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Post id"
// @Success      200  {object}  envelope
// @Failure      401  {object}  envelope
// @Failure      403  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /api/posts/{id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), p, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, envelope{Success: true, Message: "post deleted"})
}
