package http

import (
	"github.com/fredluz/Cupido/internal/delivery/http/handler"
	"github.com/fredluz/Cupido/internal/delivery/http/middleware"
	"github.com/fredluz/Cupido/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

type Router struct {
	quizHandler    *handler.QuizHandler
	profileHandler *handler.ProfileHandler
	matchHandler   *handler.MatchHandler
	chatHandler    *handler.ChatHandler
	groupHandler   *handler.GroupHandler
	revealHandler  *handler.RevealHandler
	adminHandler   *handler.AdminHandler
	operatorAuth   gin.HandlerFunc
}

func NewRouter(
	quizHandler *handler.QuizHandler,
	profileHandler *handler.ProfileHandler,
	matchHandler *handler.MatchHandler,
	chatHandler *handler.ChatHandler,
	groupHandler *handler.GroupHandler,
	revealHandler *handler.RevealHandler,
	adminHandler *handler.AdminHandler,
	operatorAuth gin.HandlerFunc,
) *Router {
	return &Router{
		quizHandler:    quizHandler,
		profileHandler: profileHandler,
		matchHandler:   matchHandler,
		chatHandler:    chatHandler,
		groupHandler:   groupHandler,
		revealHandler:  revealHandler,
		adminHandler:   adminHandler,
		operatorAuth:   operatorAuth,
	}
}

func (r *Router) Setup() *gin.Engine {
	registerValidations()

	router := gin.Default()

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	// API v1
	v1 := router.Group("/api/v1")
	{
		// Operator routes: login is public, the toggle is token-gated
		adminGroup := v1.Group("/admin")
		{
			adminGroup.POST("/login", r.adminHandler.Login)
			adminGroup.POST("/reveal", r.operatorAuth, r.adminHandler.SetReveal)
		}

		// Participant routes, keyed by the device identity header
		participant := v1.Group("")
		participant.Use(middleware.Identity())
		{
			quiz := participant.Group("/quiz")
			{
				quiz.POST("/submit", r.quizHandler.Submit)
			}

			profile := participant.Group("/profile")
			{
				profile.GET("/me", r.profileHandler.GetMe)
				profile.PATCH("/contact", r.profileHandler.UpdateContact)
			}

			participant.GET("/matches", r.matchHandler.GetMatches)

			threads := participant.Group("/threads")
			{
				threads.POST("", r.chatHandler.CreateThread)
				threads.GET("", r.chatHandler.ListThreads)
				threads.GET("/:thread_id/messages", r.chatHandler.ListMessages)
				threads.POST("/:thread_id/messages", r.chatHandler.SendMessage)
			}

			group := participant.Group("/group")
			{
				group.GET("/me", r.groupHandler.GetMyGroup)
				group.GET("/threads/:thread_id/messages", r.groupHandler.ListMessages)
				group.POST("/threads/:thread_id/messages", r.groupHandler.SendMessage)
			}

			reveal := participant.Group("/reveal")
			{
				reveal.GET("", r.revealHandler.GetState)
				reveal.GET("/stream", r.revealHandler.Stream)
			}
		}
	}

	return router
}

// registerValidations teaches the binding validator the quiz category tag so
// malformed answers are rejected at the edge.
func registerValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("quizcategory", func(fl validator.FieldLevel) bool {
		return domain.ValidCategory(fl.Field().String())
	})
}
