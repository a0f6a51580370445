package handlers

import (
	"net/http"
	"strings"

	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yamboly/tutor-dashboard-service/internal/config"
	"github.com/yamboly/tutor-dashboard-service/internal/utils"
)

// TokenVerifier abstracts Casdoor token parsing so tests can stub it.
type TokenVerifier interface {
	ParseJwtToken(token string) (*casdoorsdk.Claims, error)
}

// NewCasdoorVerifier builds the Casdoor client used to verify bearer tokens.
func NewCasdoorVerifier(cfg *config.Config) TokenVerifier {
	return casdoorsdk.NewClient(
		cfg.CasdoorEndpoint,
		cfg.CasdoorClientID,
		cfg.CasdoorClientSecret,
		cfg.CasdoorCertificate,
		cfg.CasdoorOrganization,
		cfg.CasdoorApplication,
	)
}

// AuthMiddleware verifies the bearer token and stores the caller's identity
// in the request context. The Casdoor user tag carries the dashboard role.
func AuthMiddleware(verifier TokenVerifier, logger utils.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Missing or malformed Authorization header",
			})
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		claims, err := verifier.ParseJwtToken(token)
		if err != nil {
			logger.Warn("token verification failed", "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Invalid token",
			})
			return
		}

		role := claims.User.Tag
		if role == "" {
			role = "student"
		}

		c.Set("user_id", claims.User.Id)
		c.Set("user_name", claims.User.Name)
		c.Set("user_role", role)
		c.Next()
	}
}

// RequireRole guards teacher-facing endpoints.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get("user_role")
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
			Message: "Insufficient permissions",
		})
	}
}

// CORSMiddleware allows the dashboard frontend origins.
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = allowedOrigins
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization", "X-Request-ID")
	return cors.New(corsConfig)
}
