package server

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	authdomain "github.com/abhayvishwakarma1111/bitezyqr/internal/auth/domain"
)

const (
	headerRequestID    = "X-Request-Id"
	contextIdentityKey = "identity"
)

// RequestLogger emits one structured line per request, tagging it with the
// inbound request id or a generated one.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	log = log.Named("http.access")
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(headerRequestID))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(headerRequestID, requestID)

		start := time.Now()
		c.Next()

		log.Info("request",
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}

// AuthRequired resolves the session cookie to an identity and stores it on
// the request context.
func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := s.sessions.ReadToken(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		identity, err := s.authSvc.Authenticate(c.Request.Context(), token)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		c.Set(contextIdentityKey, identity)
		c.Next()
	}
}

func (s *Server) RequireRole(roles ...authdomain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := identityFrom(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		for _, role := range roles {
			if identity.Role == role {
				c.Next()
				return
			}
		}
		AbortWithError(c, ErrForbidden)
	}
}

func identityFrom(c *gin.Context) (authdomain.Identity, bool) {
	value, ok := c.Get(contextIdentityKey)
	if !ok {
		return authdomain.Identity{}, false
	}
	identity, ok := value.(authdomain.Identity)
	return identity, ok
}

// restaurantScope resolves which restaurant a staff request operates on.
// Staff users are pinned to their own restaurant; superadmins pass the
// target explicitly.
func restaurantScope(c *gin.Context, identity authdomain.Identity) (string, bool) {
	if identity.Role == authdomain.RoleStaff {
		if identity.RestaurantID == nil {
			return "", false
		}
		return identity.RestaurantID.String(), true
	}
	target := strings.TrimSpace(c.Query("restaurant_id"))
	return target, target != ""
}
