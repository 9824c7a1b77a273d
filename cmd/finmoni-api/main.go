package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gerald0n/finmoni-api/internal/config"
	"github.com/gerald0n/finmoni-api/internal/database"
	"github.com/gerald0n/finmoni-api/internal/handlers"
	authmw "github.com/gerald0n/finmoni-api/internal/middleware"
	"github.com/gerald0n/finmoni-api/internal/services"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/m1z23r/drift/pkg/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	jwtService := services.NewJWTService(cfg.JWTSecret, cfg.JWTAccessExpiry, cfg.JWTRefreshExpiry)
	userService := services.NewUserService(db)
	authService := services.NewAuthService(db, jwtService)
	workspaceService := services.NewWorkspaceService(db)
	inviteService := services.NewInviteService(db)
	accountService := services.NewAccountService(db)
	transactionService := services.NewTransactionService(db)
	emailService := services.NewEmailService(cfg.SMTP)

	authHandler := handlers.NewAuthHandler(cfg, authService, userService, jwtService)
	userHandler := handlers.NewUserHandler(userService)
	workspaceHandler := handlers.NewWorkspaceHandler(workspaceService)
	inviteHandler := handlers.NewInviteHandler(cfg, inviteService, workspaceService, userService, emailService)
	accountHandler := handlers.NewAccountHandler(accountService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)

	app := drift.New()

	if cfg.IsProduction() {
		app.SetMode(drift.ReleaseMode)
	} else {
		app.SetMode(drift.DebugMode)
	}

	app.Use(middleware.Recovery())
	app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:       86400,
	}))
	app.Use(middleware.BodyParser())

	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/signup", authHandler.SignUp)
	auth.Post("/signin", authHandler.SignIn)
	auth.Post("/refresh", authHandler.Refresh)
	auth.Get("/google/consent", authHandler.GoogleConsentURL)
	auth.Get("/google/callback", authHandler.GoogleCallback)

	protected := api.Group("")
	protected.Use(authmw.Auth(jwtService))

	protected.Get("/users/me", userHandler.GetMe)

	protected.Get("/workspaces", workspaceHandler.List)
	protected.Post("/workspaces", workspaceHandler.Create)
	protected.Get("/workspaces/:workspaceId", workspaceHandler.Get)
	protected.Patch("/workspaces/:workspaceId", workspaceHandler.Update)
	protected.Delete("/workspaces/:workspaceId", workspaceHandler.Delete)
	protected.Post("/workspaces/:workspaceId/leave", workspaceHandler.Leave)

	protected.Get("/workspaces/:workspaceId/members", workspaceHandler.GetMembers)
	protected.Patch("/workspaces/:workspaceId/members/:memberId", workspaceHandler.UpdateMemberRole)
	protected.Delete("/workspaces/:workspaceId/members/:memberId", workspaceHandler.RemoveMember)

	protected.Get("/workspaces/:workspaceId/invites", inviteHandler.ListForWorkspace)
	protected.Post("/workspaces/:workspaceId/invites", inviteHandler.Invite)

	protected.Get("/invites", inviteHandler.ListMine)
	protected.Post("/invites/accept", inviteHandler.Accept)
	protected.Post("/invites/decline", inviteHandler.Decline)

	protected.Get("/workspaces/:workspaceId/accounts", accountHandler.List)
	protected.Post("/workspaces/:workspaceId/accounts", accountHandler.Create)
	protected.Get("/workspaces/:workspaceId/accounts/:accountId", accountHandler.Get)
	protected.Patch("/workspaces/:workspaceId/accounts/:accountId", accountHandler.Update)
	protected.Delete("/workspaces/:workspaceId/accounts/:accountId", accountHandler.Delete)

	protected.Get("/workspaces/:workspaceId/transactions", transactionHandler.List)
	protected.Post("/workspaces/:workspaceId/transactions", transactionHandler.Create)
	protected.Get("/workspaces/:workspaceId/transactions/:transactionId", transactionHandler.Get)
	protected.Patch("/workspaces/:workspaceId/transactions/:transactionId", transactionHandler.Update)
	protected.Delete("/workspaces/:workspaceId/transactions/:transactionId", transactionHandler.Delete)

	api.Get("/health", func(c *drift.Context) {
		_ = c.JSON(200, map[string]string{"status": "ok"})
	})

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		log.Printf("Server starting on %s", addr)
		if err := app.Run(addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
}
