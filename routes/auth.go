package routes

import (
	"github.com/gin-gonic/gin"

	authControllers "github.com/essience-store/storefront-api/controllers/authc"
)

// SetupAuthRoutes registers all “/auth/*” endpoints.
func SetupAuthRoutes(r *gin.Engine, deps Deps) {
	authGroup := r.Group("/auth")
	{
		authGroup.GET("/state", authControllers.GetState(deps.Flow))
		authGroup.POST("/mode", authControllers.SwitchMode(deps.Flow))

		authGroup.POST("/login", authControllers.Login(deps.Flow, deps.Sessions))
		authGroup.POST("/signup", authControllers.Signup(deps.Flow))

		// ──────────────── Forgot Password Flow ────────────────
		authGroup.POST("/forgot", authControllers.StartForgot(deps.Flow))
		authGroup.POST("/forgot/mobile", authControllers.SubmitMobile(deps.Flow))
		authGroup.POST("/forgot/otp", authControllers.SubmitOTP(deps.Flow))
		authGroup.POST("/forgot/reset", authControllers.ResetPassword(deps.Flow))
		authGroup.POST("/forgot/back", authControllers.BackToLogin(deps.Flow))

		authGroup.GET("/session", authControllers.GetSession(deps.Sessions))
		authGroup.POST("/logout", authControllers.Logout(deps.Sessions))
	}
}
