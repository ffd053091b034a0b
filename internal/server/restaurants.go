package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	restaurantdomain "github.com/abhayvishwakarma1111/bitezyqr/internal/restaurant/domain"
)

func (s *Server) GetRestaurant(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))

	restaurant, err := s.restaurantSvc.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"restaurant": restaurant.Public()})
}

type provisionRestaurantRequest struct {
	Name              string `json:"name"`
	Slug              string `json:"slug"`
	Address           string `json:"address"`
	GSTIN             string `json:"gstin"`
	RazorpayKeyID     string `json:"razorpayKeyId"`
	RazorpayKeySecret string `json:"razorpayKeySecret"`
	TaxEnabled        bool   `json:"taxEnabled"`
	TaxType           string `json:"taxType"`
	TaxPercentage     string `json:"taxPercentage"`
	PackagingEnabled  bool   `json:"packagingEnabled"`
	PackagingCharge   string `json:"packagingCharge"`
}

func (s *Server) ProvisionRestaurant(c *gin.Context) {
	var req provisionRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	taxPct, err := parseAmount(req.TaxPercentage)
	if err != nil {
		AbortWithError(c, restaurantdomain.ErrInvalidTaxPercentage)
		return
	}
	packagingCharge, err := parseAmount(req.PackagingCharge)
	if err != nil {
		AbortWithError(c, restaurantdomain.ErrInvalidCharge)
		return
	}

	restaurant, err := s.restaurantSvc.Provision(c.Request.Context(), restaurantdomain.ProvisionRequest{
		Name:              req.Name,
		Slug:              req.Slug,
		Address:           req.Address,
		GSTIN:             req.GSTIN,
		RazorpayKeyID:     req.RazorpayKeyID,
		RazorpayKeySecret: req.RazorpayKeySecret,
		TaxEnabled:        req.TaxEnabled,
		TaxType:           restaurantdomain.TaxType(strings.TrimSpace(req.TaxType)),
		TaxPercentage:     taxPct,
		PackagingEnabled:  req.PackagingEnabled,
		PackagingCharge:   packagingCharge,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"restaurant": restaurant})
}

func (s *Server) ListRestaurants(c *gin.Context) {
	restaurants, err := s.restaurantSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"restaurants": restaurants})
}

func (s *Server) GetRestaurantByID(c *gin.Context) {
	restaurant, err := s.restaurantSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"restaurant": restaurant})
}

type updateRestaurantRequest struct {
	Name              *string `json:"name"`
	Address           *string `json:"address"`
	GSTIN             *string `json:"gstin"`
	RazorpayKeyID     *string `json:"razorpayKeyId"`
	RazorpayKeySecret *string `json:"razorpayKeySecret"`
	TaxEnabled        *bool   `json:"taxEnabled"`
	TaxType           *string `json:"taxType"`
	TaxPercentage     *string `json:"taxPercentage"`
	PackagingEnabled  *bool   `json:"packagingEnabled"`
	PackagingCharge   *string `json:"packagingCharge"`
	Active            *bool   `json:"active"`
}

func (s *Server) UpdateRestaurant(c *gin.Context) {
	var req updateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	update := restaurantdomain.UpdateRequest{
		ID:                c.Param("id"),
		Name:              req.Name,
		Address:           req.Address,
		GSTIN:             req.GSTIN,
		RazorpayKeyID:     req.RazorpayKeyID,
		RazorpayKeySecret: req.RazorpayKeySecret,
		TaxEnabled:        req.TaxEnabled,
		PackagingEnabled:  req.PackagingEnabled,
		Active:            req.Active,
	}
	if req.TaxType != nil {
		taxType := restaurantdomain.TaxType(strings.TrimSpace(*req.TaxType))
		update.TaxType = &taxType
	}
	if req.TaxPercentage != nil {
		pct, err := parseAmount(*req.TaxPercentage)
		if err != nil {
			AbortWithError(c, restaurantdomain.ErrInvalidTaxPercentage)
			return
		}
		update.TaxPercentage = &pct
	}
	if req.PackagingCharge != nil {
		charge, err := parseAmount(*req.PackagingCharge)
		if err != nil {
			AbortWithError(c, restaurantdomain.ErrInvalidCharge)
			return
		}
		update.PackagingCharge = &charge
	}

	restaurant, err := s.restaurantSvc.Update(c.Request.Context(), update)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"restaurant": restaurant})
}

// parseAmount reads a decimal sent as a JSON string; empty means zero.
func parseAmount(value string) (decimal.Decimal, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(value)
}
