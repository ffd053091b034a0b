package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	menudomain "github.com/abhayvishwakarma1111/bitezyqr/internal/menu/domain"
)

func (s *Server) GetRestaurantMenu(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))

	restaurant, err := s.restaurantSvc.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	items, err := s.menuSvc.List(c.Request.Context(), menudomain.ListItemsRequest{
		RestaurantID:  restaurant.ID.String(),
		AvailableOnly: true,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"restaurant": restaurant.Public(),
		"items":      items,
	})
}

func (s *Server) ListStaffMenu(c *gin.Context) {
	identity, _ := identityFrom(c)
	restaurantID, ok := restaurantScope(c, identity)
	if !ok {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	items, err := s.menuSvc.List(c.Request.Context(), menudomain.ListItemsRequest{
		RestaurantID: restaurantID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

type createMenuItemRequest struct {
	Name      string `json:"name"`
	Price     string `json:"price"`
	Available bool   `json:"available"`
	Addon     bool   `json:"addon"`
	ImageURL  string `json:"imageUrl"`
}

func (s *Server) CreateMenuItem(c *gin.Context) {
	identity, _ := identityFrom(c)
	restaurantID, ok := restaurantScope(c, identity)
	if !ok {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	var req createMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	price, err := parseAmount(req.Price)
	if err != nil {
		AbortWithError(c, menudomain.ErrInvalidPrice)
		return
	}

	item, err := s.menuSvc.Create(c.Request.Context(), menudomain.CreateItemRequest{
		RestaurantID: restaurantID,
		Name:         req.Name,
		Price:        price,
		Available:    req.Available,
		Addon:        req.Addon,
		ImageURL:     req.ImageURL,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"item": item})
}

type patchMenuItemRequest struct {
	Name      *string `json:"name"`
	Price     *string `json:"price"`
	Available *bool   `json:"available"`
	Addon     *bool   `json:"addon"`
	ImageURL  *string `json:"imageUrl"`
}

func (s *Server) PatchMenuItem(c *gin.Context) {
	identity, _ := identityFrom(c)
	restaurantID, ok := restaurantScope(c, identity)
	if !ok {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	var req patchMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	patch := menudomain.PatchItemRequest{
		RestaurantID: restaurantID,
		ID:           c.Param("id"),
		Name:         req.Name,
		Available:    req.Available,
		Addon:        req.Addon,
		ImageURL:     req.ImageURL,
	}
	if req.Price != nil {
		price, err := parseAmount(*req.Price)
		if err != nil {
			AbortWithError(c, menudomain.ErrInvalidPrice)
			return
		}
		patch.Price = &price
	}

	item, err := s.menuSvc.Patch(c.Request.Context(), patch)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": item})
}

func (s *Server) DeleteMenuItem(c *gin.Context) {
	identity, _ := identityFrom(c)
	restaurantID, ok := restaurantScope(c, identity)
	if !ok {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	if err := s.menuSvc.Delete(c.Request.Context(), restaurantID, c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
