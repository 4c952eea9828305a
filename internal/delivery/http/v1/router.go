package v1

import (
	"net/http"
	"time"

	"go-posting-workflow/config"
	"go-posting-workflow/internal/delivery/http/middleware"
	"go-posting-workflow/internal/delivery/http/response"
	"go-posting-workflow/internal/domain"
	"go-posting-workflow/internal/usecase"

	"github.com/gin-gonic/gin"
)

type RouterDeps struct {
	Sessions      *usecase.SessionManager
	StepValidator *usecase.StepValidator
	Gate          *usecase.SubmissionGate
	Templates     *usecase.TemplateUsecase
	Postings      domain.PostingStore
	Config        *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware()) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimitMiddleware(middleware.GlobalRateLimitConfig(
		deps.Config.RateLimitGlobalThreshold,
		time.Duration(deps.Config.RateLimitWindowSeconds)*time.Second,
	)))

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Public routes
	NewPostingHandler(v1, deps.Postings)

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Config))
	{
		NewWorkflowHandler(protected, deps.Sessions, deps.StepValidator, deps.Gate, deps.Templates)
		NewTemplateHandler(protected, deps.Templates)
	}

	return r
}
