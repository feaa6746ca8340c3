package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/wondergroup-de/wonder-events-backend/internal/auth"
	"github.com/wondergroup-de/wonder-events-backend/internal/booking"
	bookingHttp "github.com/wondergroup-de/wonder-events-backend/internal/booking/http"
	"github.com/wondergroup-de/wonder-events-backend/internal/catalog"
	catalogHttp "github.com/wondergroup-de/wonder-events-backend/internal/catalog/http"
	"github.com/wondergroup-de/wonder-events-backend/internal/discount"
	discountHttp "github.com/wondergroup-de/wonder-events-backend/internal/discount/http"
	"github.com/wondergroup-de/wonder-events-backend/internal/user"
	userHttp "github.com/wondergroup-de/wonder-events-backend/internal/user/http"
)

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, Auth) and registering routes for various modules.
func NewRouter(
	userService user.Service,
	catalogService catalog.Service,
	discountService discount.Service,
	bookingService booking.Service,
	jwtManager *auth.JWTManager,
	allowOrigins []string,
) *gin.Engine {

	r := gin.New()

	// Global Middleware:
	// - Logger: Logs request information to the console.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(gin.Logger(), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	config := cors.DefaultConfig()
	config.AllowOrigins = allowOrigins
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(config))

	// authMiddleware: Validates if the request contains a valid JWT.
	authMiddleware := auth.AuthRequired(jwtManager)
	// adminMiddleware: Further checks if the authenticated user has admin privileges.
	adminMiddleware := RequireAdmin(userService)

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	userHandler := userHttp.NewUserHandler(userService, jwtManager)
	catalogHandler := catalogHttp.NewHandler(catalogService)
	discountHandler := discountHttp.NewHandler(discountService)
	bookingHandler := bookingHttp.NewHandler(bookingService)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware, adminMiddleware)
		catalogHttp.RegisterRoutes(v1, catalogHandler, authMiddleware, adminMiddleware)
		discountHttp.RegisterRoutes(v1, discountHandler, authMiddleware, adminMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware)
	}

	return r
}
