package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/elandref93/WiseBond-sub004/internal/middleware"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(
	e *echo.Echo,
	authMiddleware *middleware.AuthMiddleware,
	rateLimiter *middleware.RateLimiter,
	calculatorHandler *CalculatorHandler,
	calculationHandler *CalculationHandler,
	reportHandler *ReportHandler,
	profileHandler *ProfileHandler,
	otpHandler *OTPHandler,
	documentHandler *DocumentHandler,
	enquiryHandler *EnquiryHandler,
	applicationHandler *ApplicationHandler,
	wsHandler *WebSocketHandler,
) {
	rateLimit := middleware.RateLimitMiddleware(rateLimiter)

	api := e.Group("/api")

	// Calculator routes (public, rate limited by client IP)
	calculators := api.Group("/calculators", rateLimit)
	calculators.POST("/bond", calculatorHandler.Bond)
	calculators.POST("/affordability", calculatorHandler.Affordability)
	calculators.POST("/deposit", calculatorHandler.Deposit)
	calculators.POST("/additional", calculatorHandler.Additional)
	calculators.POST("/transfer", calculatorHandler.Transfer)
	calculators.POST("/amortisation", calculatorHandler.Amortisation)

	// Enquiry submission (public, rate limited)
	api.POST("/enquiries", enquiryHandler.Submit, rateLimit)

	// Auth routes (protected)
	auth := api.Group("/auth")
	auth.Use(authMiddleware.Authenticate())
	auth.GET("/me", profileHandler.Me)

	// Profile routes (protected)
	profile := api.Group("/profile")
	profile.Use(authMiddleware.Authenticate(), rateLimit)
	profile.GET("", profileHandler.Get)
	profile.PUT("", profileHandler.Update)
	profile.POST("/verify-email/send", otpHandler.SendCode)
	profile.POST("/verify-email/confirm", otpHandler.VerifyCode)

	// Saved calculation routes (protected)
	calculations := api.Group("/calculations")
	calculations.Use(authMiddleware.Authenticate(), rateLimit)
	calculations.POST("", calculationHandler.Save)
	calculations.GET("", calculationHandler.List)
	calculations.GET("/:id", calculationHandler.Get)
	calculations.DELETE("/:id", calculationHandler.Delete)

	// Report routes (protected)
	reports := api.Group("/reports")
	reports.Use(authMiddleware.Authenticate(), rateLimit)
	reports.POST("", reportHandler.Generate)
	reports.POST("/email", reportHandler.Email)

	// Document routes (protected)
	documents := api.Group("/documents")
	documents.Use(authMiddleware.Authenticate(), rateLimit)
	documents.POST("", documentHandler.Upload)
	documents.GET("", documentHandler.List)
	documents.GET("/:id", documentHandler.Get)
	documents.DELETE("/:id", documentHandler.Delete)

	// Customer view of their applications (protected)
	applications := api.Group("/applications")
	applications.Use(authMiddleware.Authenticate(), rateLimit)
	applications.GET("", applicationHandler.ListForCustomer)

	// Agent dashboard routes (protected, agent role required)
	agent := api.Group("/agent")
	agent.Use(authMiddleware.Authenticate(), middleware.RequireAgent(), rateLimit)
	agent.POST("/applications", applicationHandler.Create)
	agent.GET("/applications", applicationHandler.ListForAgent)
	agent.GET("/applications/:id", applicationHandler.Get)
	agent.PATCH("/applications/:id", applicationHandler.Update)
	agent.GET("/enquiries", enquiryHandler.List)

	// WebSocket endpoint (token authenticated via query parameter)
	e.GET("/ws", wsHandler.HandleWS)
}
