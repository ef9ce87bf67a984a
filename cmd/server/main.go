package main

import (
	"log"

	"github.com/fsauth/gathering-api/internal/config"
	"github.com/fsauth/gathering-api/internal/constants"
	"github.com/fsauth/gathering-api/internal/database"
	"github.com/fsauth/gathering-api/internal/handlers"
	"github.com/fsauth/gathering-api/internal/middleware"
	"github.com/fsauth/gathering-api/internal/repository"
	"github.com/fsauth/gathering-api/internal/services"
	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if err := database.AddIndexes(database.GetDB()); err != nil {
		log.Fatalf("Failed to add indexes: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // username (empty for default user)
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   constants.SessionMaxAgeSeconds,
		HttpOnly: true,
		Secure:   isProduction, // true in production (HTTPS), false in development
		SameSite: 2,            // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Initialize repositories
	db := database.GetDB()
	groupRepo := repository.NewGroupRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	gatheringRepo := repository.NewGatheringRepository(db)
	registrationRepo := repository.NewRegistrationRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo)
	userService := services.NewUserService(userRepo)
	groupService := services.NewGroupService(groupRepo)
	memberService := services.NewMemberService(memberRepo, groupRepo, registrationRepo)
	gatheringService := services.NewGatheringService(gatheringRepo)
	admissionService := services.NewAdmissionService(registrationRepo, gatheringRepo, memberRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	groupHandler := handlers.NewGroupHandler(groupService)
	memberHandler := handlers.NewMemberHandler(memberService)
	gatheringHandler := handlers.NewGatheringHandler(gatheringService, admissionService)
	registrationHandler := handlers.NewRegistrationHandler(admissionService)
	publicHandler := handlers.NewPublicHandler(gatheringService, groupService, memberService, admissionService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Gathering Registration API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Public registration flow (no authentication)
		public := api.Group("/public")
		{
			public.GET("/gatherings", publicHandler.ListActiveGatherings)
			public.GET("/gatherings/:id/availability", publicHandler.GetGatheringAvailability)
			public.GET("/groups", publicHandler.ListGroups)
			public.GET("/groups/:id/members", publicHandler.ListGroupMembers)
			public.POST("/registrations", publicHandler.CreateRegistration)
		}

		// Group routes (protected)
		groups := api.Group("/groups")
		groups.Use(middleware.RequireAuth())
		{
			groups.POST("", groupHandler.CreateGroup)
			groups.GET("", groupHandler.ListGroups)
			groups.GET("/:id", groupHandler.GetGroup)
			groups.PUT("/:id", groupHandler.UpdateGroup)
			groups.DELETE("/:id", groupHandler.DeleteGroup)
		}

		// Member routes (protected)
		members := api.Group("/members")
		members.Use(middleware.RequireAuth())
		{
			members.POST("", memberHandler.CreateMember)
			members.GET("", memberHandler.ListMembers)
			members.GET("/:id", memberHandler.GetMember)
			members.PUT("/:id", memberHandler.UpdateMember)
			members.DELETE("/:id", memberHandler.DeleteMember)
		}

		// Gathering routes (protected)
		gatherings := api.Group("/gatherings")
		gatherings.Use(middleware.RequireAuth())
		{
			gatherings.POST("", gatheringHandler.CreateGathering)
			gatherings.GET("", gatheringHandler.ListGatherings)
			gatherings.GET("/:id", gatheringHandler.GetGathering)
			gatherings.GET("/:id/availability", gatheringHandler.GetAvailability)
			gatherings.PUT("/:id", gatheringHandler.UpdateGathering)
			gatherings.DELETE("/:id", gatheringHandler.DeleteGathering)
		}

		// Registration routes (protected)
		registrations := api.Group("/registrations")
		registrations.Use(middleware.RequireAuth())
		{
			registrations.POST("", registrationHandler.CreateRegistration)
			registrations.GET("", registrationHandler.ListRegistrations)
			registrations.GET("/:id", registrationHandler.GetRegistration)
			registrations.PATCH("/:id/status", registrationHandler.UpdateRegistrationStatus)
			registrations.DELETE("/:id", registrationHandler.DeleteRegistration)
		}

		// User management routes (admin only)
		users := api.Group("/users")
		users.Use(middleware.RequireAuth(), middleware.RequireAdmin(authService))
		{
			users.POST("", userHandler.CreateUser)
			users.GET("", userHandler.ListUsers)
			users.GET("/:id", userHandler.GetUser)
			users.PUT("/:id", userHandler.UpdateUser)
			users.DELETE("/:id", userHandler.DeleteUser)
		}
	}

	// Start server
	log.Printf("Server starting on %s", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
