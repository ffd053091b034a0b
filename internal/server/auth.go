package server

import (
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"

	authdomain "github.com/abhayvishwakarma1111/bitezyqr/internal/auth/domain"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID           string  `json:"id"`
	Email        string  `json:"email"`
	DisplayName  string  `json:"displayName"`
	Role         string  `json:"role"`
	RestaurantID *string `json:"restaurantId,omitempty"`
}

func toUserResponse(user authdomain.User) userResponse {
	resp := userResponse{
		ID:          user.ID.String(),
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        string(user.Role),
	}
	if user.RestaurantID != nil {
		rid := user.RestaurantID.String()
		resp.RestaurantID = &rid
	}
	return resp
}

func (s *Server) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	result, err := s.authSvc.Login(c.Request.Context(), authdomain.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.sessions.Set(c, result.RawToken, result.ExpiresAt)
	c.JSON(http.StatusOK, gin.H{"user": toUserResponse(result.User)})
}

func (s *Server) Logout(c *gin.Context) {
	if token, ok := s.sessions.ReadToken(c); ok {
		_ = s.authSvc.Logout(c.Request.Context(), token)
	}
	s.sessions.Clear(c)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) Me(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	resp := userResponse{
		ID:          identity.UserID.String(),
		Email:       identity.Email,
		DisplayName: identity.DisplayName,
		Role:        string(identity.Role),
	}
	if identity.RestaurantID != nil {
		rid := identity.RestaurantID.String()
		resp.RestaurantID = &rid
	}
	c.JSON(http.StatusOK, gin.H{"user": resp})
}

type createUserRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	DisplayName  string `json:"displayName"`
	Role         string `json:"role"`
	RestaurantID string `json:"restaurantId"`
}

func (s *Server) CreateStaffUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	var restaurantID *snowflake.ID
	if raw := strings.TrimSpace(req.RestaurantID); raw != "" {
		id, err := snowflake.ParseString(raw)
		if err != nil {
			AbortWithError(c, ErrInvalidRequest)
			return
		}
		restaurantID = &id
	}

	user, err := s.authSvc.CreateUser(c.Request.Context(), authdomain.CreateUserRequest{
		Email:        req.Email,
		Password:     req.Password,
		DisplayName:  req.DisplayName,
		Role:         authdomain.Role(strings.TrimSpace(req.Role)),
		RestaurantID: restaurantID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": toUserResponse(user)})
}
