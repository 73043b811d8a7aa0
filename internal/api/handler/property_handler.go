package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/imoveiscrm/realestate-api/internal/api/metrics"
	"github.com/imoveiscrm/realestate-api/internal/core/access"
	"github.com/imoveiscrm/realestate-api/internal/core/ports"
)

// PropertyHandler serves listings and favourites.
type PropertyHandler struct {
	service ports.PropertyService
}

func NewPropertyHandler(service ports.PropertyService) *PropertyHandler {
	return &PropertyHandler{service: service}
}

// List handles GET /api/properties.
//
// @Summary      List properties
// @Tags         properties
// @Produce      json
// @Success      200  {object}  propertyListResponse
// @Router       /api/properties [get]
func (h *PropertyHandler) List(c echo.Context) error {
	props, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, propertyListResponse{Properties: props})
}

// Get handles GET /api/properties/:id and counts one view.
//
// @Summary      Get a property
// @Tags         properties
// @Produce      json
// @Param        id   path      string  true  "Property ID"
// @Success      200  {object}  propertyResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/properties/{id} [get]
func (h *PropertyHandler) Get(c echo.Context) error {
	p, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	metrics.PropertyViewsTotal.Inc()
	return c.JSON(http.StatusOK, propertyResponse{Property: p})
}

// Create handles POST /api/properties.
//
// @Summary      Create a property
// @Tags         properties
// @Accept       json
// @Produce      json
// @Param        body  body      createPropertyRequest  true  "Listing"
// @Success      201   {object}  propertyResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/properties [post]
func (h *PropertyHandler) Create(c echo.Context) error {
	var req createPropertyRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	p, err := h.service.Create(c.Request().Context(), req.toDomain())
	if err != nil {
		return err
	}
	metrics.PropertyChangesTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusCreated, propertyResponse{Property: p, Message: "property created"})
}

// Update handles PATCH /api/properties/:id.
//
// @Summary      Update a property
// @Tags         properties
// @Accept       json
// @Produce      json
// @Param        id    path      string                 true  "Property ID"
// @Param        body  body      updatePropertyRequest  true  "Fields to change"
// @Success      200   {object}  propertyResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/properties/{id} [patch]
func (h *PropertyHandler) Update(c echo.Context) error {
	var req updatePropertyRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	p, err := h.service.Update(c.Request().Context(), c.Param("id"), req.toDomain())
	if err != nil {
		return err
	}
	metrics.PropertyChangesTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, propertyResponse{Property: p, Message: "property updated"})
}

// Delete handles DELETE /api/properties/:id.
//
// @Summary      Delete a property
// @Tags         properties
// @Produce      json
// @Param        id   path      string  true  "Property ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/properties/{id} [delete]
func (h *PropertyHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	metrics.PropertyChangesTotal.WithLabelValues("delete").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "property deleted"})
}

// Like handles POST /api/properties/:id/like. A repeat like answers 200
// with the existing record.
//
// @Summary      Like a property
// @Tags         likes
// @Produce      json
// @Param        id   path      string  true  "Property ID"
// @Success      201  {object}  likeResponse
// @Success      200  {object}  likeResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/properties/{id}/like [post]
func (h *PropertyHandler) Like(c echo.Context, who access.Resolution) error {
	user, err := signedIn(who)
	if err != nil {
		return err
	}

	like, created, err := h.service.Like(c.Request().Context(), user.ID, c.Param("id"))
	if err != nil {
		return err
	}
	if !created {
		return c.JSON(http.StatusOK, likeResponse{Like: like, Message: "property already liked"})
	}
	metrics.PropertyLikesTotal.WithLabelValues("like").Inc()
	return c.JSON(http.StatusCreated, likeResponse{Like: like, Message: "property liked"})
}

// Unlike handles DELETE /api/properties/:id/like.
//
// @Summary      Remove a like
// @Tags         likes
// @Produce      json
// @Param        id   path      string  true  "Property ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/properties/{id}/like [delete]
func (h *PropertyHandler) Unlike(c echo.Context, who access.Resolution) error {
	user, err := signedIn(who)
	if err != nil {
		return err
	}
	if err := h.service.Unlike(c.Request().Context(), user.ID, c.Param("id")); err != nil {
		return err
	}
	metrics.PropertyLikesTotal.WithLabelValues("unlike").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "like removed"})
}

// MyLikes handles GET /api/me/likes.
//
// @Summary      Liked property ids of the current client
// @Tags         likes
// @Produce      json
// @Success      200  {object}  likedPropertiesResponse
// @Router       /api/me/likes [get]
func (h *PropertyHandler) MyLikes(c echo.Context, who access.Resolution) error {
	user, err := signedIn(who)
	if err != nil {
		return err
	}
	ids, err := h.service.LikedPropertyIDs(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, likedPropertiesResponse{PropertyIDs: ids})
}
