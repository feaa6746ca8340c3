package app

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wondergroup-de/wonder-events-backend/internal/api"
	"github.com/wondergroup-de/wonder-events-backend/internal/auth"
	"github.com/wondergroup-de/wonder-events-backend/internal/booking"
	"github.com/wondergroup-de/wonder-events-backend/internal/catalog"
	"github.com/wondergroup-de/wonder-events-backend/internal/discount"
	"github.com/wondergroup-de/wonder-events-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher)

	// Catalog Module
	catalogRepo := catalog.NewPgxRepository(cfg.DBPool)
	catalogService := catalog.NewService(catalogRepo)

	// Discount Module
	discountRepo := discount.NewPgxRepository(cfg.DBPool)
	discountService := discount.NewService(discountRepo)

	// Booking Module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(bookingRepo, catalogService, discountService)

	// Allowed CORS origins. Development defaults to localhost frontends.
	allowOrigins := []string{"http://localhost:5173", "http://localhost:8081"}
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		allowOrigins = strings.Split(cfg.ProdOrigins, ",")
	}

	// Router
	router := api.NewRouter(
		userService,
		catalogService,
		discountService,
		bookingService,
		jwtManager,
		allowOrigins,
	)

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}
}
