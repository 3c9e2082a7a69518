package authControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/essience-store/storefront-api/auth"
	"github.com/essience-store/storefront-api/store"
)

type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type MobileInput struct {
	Mobile string `json:"mobile" binding:"required"`
}

type OTPInput struct {
	OTP string `json:"otp" binding:"required"`
}

type ResetPasswordInput struct {
	NewPassword     string `json:"new_password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// GET /auth/state
func GetState(flow *auth.Flow) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, flow.State())
	}
}

// POST /auth/mode
func SwitchMode(flow *auth.Flow) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"step": flow.SwitchMode()})
	}
}

// POST /auth/login
// On gateway success the service issues its own JWT for the /user routes.
func Login(flow *auth.Flow, sessions *store.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
			return
		}

		if err := flow.Login(c.Request.Context(), input.Email, input.Password); err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}

		session := sessions.Current()
		if session == nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Session was not established"})
			return
		}

		token, err := auth.IssueSessionToken(session.User.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"token": token, "user": session.User})
	}
}

// POST /auth/signup
func Signup(flow *auth.Flow) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form auth.SignupForm
		if err := c.ShouldBindJSON(&form); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": auth.ErrMissingFields.Error()})
			return
		}

		if err := flow.Signup(c.Request.Context(), form); err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, flow.State())
	}
}

// POST /auth/forgot
func StartForgot(flow *auth.Flow) gin.HandlerFunc {
	return func(c *gin.Context) {
		flow.StartForgot()
		c.JSON(http.StatusOK, flow.State())
	}
}

// POST /auth/forgot/mobile
func SubmitMobile(flow *auth.Flow) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input MobileInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Mobile number is required"})
			return
		}

		if err := flow.SubmitMobile(c.Request.Context(), input.Mobile); err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, flow.State())
	}
}

// POST /auth/forgot/otp
func SubmitOTP(flow *auth.Flow) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input OTPInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "OTP is required"})
			return
		}

		if err := flow.SubmitOTP(c.Request.Context(), input.OTP); err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, flow.State())
	}
}

// POST /auth/forgot/reset
func ResetPassword(flow *auth.Flow) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ResetPasswordInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Both password fields are required"})
			return
		}

		if err := flow.SubmitNewPassword(input.NewPassword, input.ConfirmPassword); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, flow.State())
	}
}

// POST /auth/forgot/back
func BackToLogin(flow *auth.Flow) gin.HandlerFunc {
	return func(c *gin.Context) {
		flow.Back()
		c.JSON(http.StatusOK, flow.State())
	}
}

// GET /auth/session
func GetSession(sessions *store.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Current()
		if session == nil {
			c.JSON(http.StatusOK, gin.H{"logged_in": false})
			return
		}
		c.JSON(http.StatusOK, gin.H{"logged_in": true, "user": session.User})
	}
}

// POST /auth/logout
func Logout(sessions *store.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessions.Logout()
		c.JSON(http.StatusOK, gin.H{"logged_in": false})
	}
}

// statusFor maps flow errors onto HTTP statuses: busy → 429, local
// validation → 400, everything else surfaces as 401 with the user-facing
// message.
func statusFor(err error) int {
	switch {
	case errors.Is(err, auth.ErrBusy):
		return http.StatusTooManyRequests
	case errors.Is(err, auth.ErrMissingFields), errors.Is(err, auth.ErrPasswordMismatch):
		return http.StatusBadRequest
	case errors.Is(err, auth.ErrOTPUnavailable), errors.Is(err, auth.ErrVerifyUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, auth.ErrServer), errors.Is(err, auth.ErrNetwork):
		return http.StatusBadGateway
	default:
		return http.StatusUnauthorized
	}
}
