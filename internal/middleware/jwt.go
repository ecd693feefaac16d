package middleware

import (
	"context"
	"log"
	"net/http"

	"foodcourt/internal/common"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

// AuthConfig selects the token verification source. When JWKSURL is set the
// middleware verifies against the provider's published keys and refreshes
// them in the background; otherwise it falls back to the shared HS256 secret.
type AuthConfig struct {
	Secret  string
	JWKSURL string
}

// FoodcourtClaims carries the identity fields the services key off.
// The role decides which context keys are populated.
type FoodcourtClaims struct {
	Role     string `json:"role"`
	VendorID string `json:"vendor_id,omitempty"`
	jwt.RegisteredClaims
}

// NewJWTMiddleware builds the echo-jwt middleware for the protected groups.
func NewJWTMiddleware(cfg AuthConfig) (echo.MiddlewareFunc, error) {
	config := echojwt.Config{
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(FoodcourtClaims)
		},
		SuccessHandler: stashIdentity,
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
		},
	}

	if cfg.JWKSURL != "" {
		jwks, err := keyfunc.Get(cfg.JWKSURL, keyfunc.Options{
			RefreshErrorHandler: func(err error) {
				log.Printf("auth: jwks refresh: %v", err)
			},
		})
		if err != nil {
			return nil, err
		}
		config.KeyFunc = jwks.Keyfunc
	} else {
		config.SigningKey = []byte(cfg.Secret)
	}

	return echojwt.WithConfig(config), nil
}

// stashIdentity moves the verified claims into the request context so the
// service layer never touches echo or JWT types.
func stashIdentity(c echo.Context) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return
	}
	claims, ok := token.Claims.(*FoodcourtClaims)
	if !ok {
		return
	}

	ctx := c.Request().Context()

	role := claims.Role
	if role == "" {
		role = common.RoleCustomer
	}
	ctx = context.WithValue(ctx, common.RoleKey, role)

	if sub, err := uuid.Parse(claims.Subject); err == nil {
		ctx = context.WithValue(ctx, common.CustomerIDKey, sub)
	}
	if claims.VendorID != "" {
		if vendorID, err := uuid.Parse(claims.VendorID); err == nil {
			ctx = context.WithValue(ctx, common.VendorIDKey, vendorID)
		}
	}

	c.SetRequest(c.Request().WithContext(ctx))
}

// RequireRole gates a route group to one role.
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			got, ok := common.GetRoleFromContext(c.Request().Context())
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing role")
			}
			if got != role && got != common.RoleSuperadmin {
				return echo.NewHTTPError(http.StatusForbidden, "Insufficient role")
			}
			return next(c)
		}
	}
}
