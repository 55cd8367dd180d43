package router

import (
	"hope4ever-backend/internal/config"
	"hope4ever-backend/internal/handler"
	"hope4ever-backend/internal/middleware"
	"hope4ever-backend/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Options carries the optional collaborators of the router.
type Options struct {
	// Limiter throttles the public auth endpoints; nil disables throttling.
	Limiter middleware.RateLimiter
}

// New builds the HTTP engine with every route mounted under the API prefix.
func New(cfg *config.Config, svc *service.Service, opts Options, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg),
	)

	// Handlers
	healthHandler := handler.NewHealthHandler(cfg.App.Name)
	authHandler := handler.NewAuthHandler(svc.Auth)
	hospitalHandler := handler.NewHospitalHandler(svc.Hospital, svc.Authz)
	campaignHandler := handler.NewCampaignHandler(svc.Campaign, svc.Authz)
	mediaHandler := handler.NewCampaignMediaHandler(svc.CampaignMedia, svc.Authz)
	donationHandler := handler.NewDonationHandler(svc.Donation)
	scoreHandler := handler.NewScoreHandler(svc.Score)

	requireAuth := middleware.AuthMiddleware(svc.Auth)
	loginLimit := middleware.RateLimit(opts.Limiter, "auth", cfg.Login.RateLimit, cfg.Login.RateWindow, logger)

	r.GET("/health", healthHandler.Health)

	api := r.Group(cfg.Server.APIPrefix)
	api.GET("/health", healthHandler.Health)

	// Auth routes (public)
	auth := api.Group("/auth")
	{
		auth.POST("/register", loginLimit, authHandler.Register)
		auth.POST("/login", loginLimit, authHandler.Login)
		auth.GET("/me", authHandler.Me)
	}

	api.GET("/users/roles", authHandler.Roles)

	// Hospital routes
	hospitals := api.Group("/hospitals")
	{
		hospitals.GET("", hospitalHandler.ListHospitals)
		hospitals.GET("/:id", hospitalHandler.GetHospital)
		hospitals.POST("", requireAuth, hospitalHandler.CreateHospital)
		hospitals.PATCH("/:id", requireAuth, hospitalHandler.UpdateHospital)
		hospitals.DELETE("/:id", requireAuth, hospitalHandler.DeleteHospital)
	}

	// Campaign routes
	campaigns := api.Group("/campaigns")
	{
		campaigns.GET("", campaignHandler.ListCampaigns)
		campaigns.GET("/:id", campaignHandler.GetCampaign)
		campaigns.POST("", requireAuth, campaignHandler.CreateCampaign)
		campaigns.PATCH("/:id", requireAuth, campaignHandler.UpdateCampaign)
		campaigns.DELETE("/:id", requireAuth, campaignHandler.DeleteCampaign)

		campaigns.GET("/:id/images", mediaHandler.ListImages)
		campaigns.POST("/:id/images", requireAuth, mediaHandler.AddImage)
		campaigns.GET("/:id/documents", mediaHandler.ListDocuments)
		campaigns.POST("/:id/documents", requireAuth, mediaHandler.AddDocument)
		campaigns.GET("/:id/followers", mediaHandler.ListFollowers)
		campaigns.POST("/:id/followers", requireAuth, mediaHandler.Follow)
		campaigns.DELETE("/:id/followers", requireAuth, mediaHandler.Unfollow)
	}

	// Donation routes (read-only)
	donations := api.Group("/donations")
	{
		donations.GET("/by-campaign/:id", donationHandler.ListByCampaign)
		donations.GET("/by-user/:id", donationHandler.ListByUser)
	}

	// Score routes (read-only views)
	scores := api.Group("/scores")
	{
		scores.GET("/campaigns", scoreHandler.CampaignScores)
		scores.GET("/hospitals", scoreHandler.HospitalScores)
	}

	return r
}
