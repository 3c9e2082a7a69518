package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/essience-store/storefront-api/models"
)

// User-facing failure messages. These surface verbatim in the UI, hence the
// full sentences.
var (
	ErrServer            = errors.New("Server error. Please try again.")
	ErrNetwork           = errors.New("An error occurred. Please try again.")
	ErrBadCredentials    = errors.New("Login failed. Please check your credentials.")
	ErrUserExists        = errors.New("Signup failed. User may already exist.")
	ErrInvalidOTP        = errors.New("Invalid OTP. Please try again.")
	ErrOTPUnavailable    = errors.New("Forgot password is not available currently.")
	ErrVerifyUnavailable = errors.New("Verification service unavailable.")
)

// LoginResult is a successful credential verification.
type LoginResult struct {
	Token string
	User  models.User
}

// SignupForm is the registration payload; every field is required.
type SignupForm struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Mobile   string `json:"mobile" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Gateway is the remote authentication backend.
type Gateway interface {
	LoginWithPassword(ctx context.Context, email, password string) (*LoginResult, error)
	Signup(ctx context.Context, form SignupForm) error
	SendOTP(ctx context.Context, mobile string) error
	VerifyOTP(ctx context.Context, mobile, otp string) (*LoginResult, error)
}

// HTTPGateway talks to the legacy PHP auth endpoints. The backend is known
// to prepend PHP warnings to JSON bodies and to answer signup with bare
// "1"/"2" sentinels, so every response goes through decodeLoose.
type HTTPGateway struct {
	base   string
	client *http.Client
}

func NewHTTPGateway(base string) *HTTPGateway {
	return &HTTPGateway{
		base:   strings.TrimRight(base, "/"),
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

// envelope is the common response shape of the PHP endpoints.
type envelope struct {
	Status  string           `json:"status"`
	Message string           `json:"message"`
	Token   string           `json:"token"`
	UserID  models.ProductID `json:"user_id"`
	User    *models.User     `json:"user"`
}

func (g *HTTPGateway) LoginWithPassword(ctx context.Context, email, password string) (*LoginResult, error) {
	body, err := g.post(ctx, "/loginwithpassword.php", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	env, err := decodeLoose(body)
	if err != nil {
		return nil, err
	}
	if env.Status != "success" {
		if env.Message != "" {
			return nil, errors.New(env.Message)
		}
		return nil, ErrBadCredentials
	}

	return loginResult(env, email), nil
}

func (g *HTTPGateway) Signup(ctx context.Context, form SignupForm) error {
	body, err := g.post(ctx, "/signup.php", map[string]string{
		"userName": form.Name,
		"email":    form.Email,
		"mobile":   form.Mobile,
		"password": form.Password,
	})
	if err != nil {
		return err
	}

	// Legacy sentinels predating the JSON envelope.
	switch strings.TrimSpace(string(body)) {
	case "1":
		return nil
	case "2":
		return ErrUserExists
	}

	env, err := decodeLoose(body)
	if err != nil {
		return err
	}
	if env.Status != "success" {
		if env.Message != "" {
			return errors.New(env.Message)
		}
		return ErrUserExists
	}
	return nil
}

func (g *HTTPGateway) SendOTP(ctx context.Context, mobile string) error {
	body, err := g.post(ctx, "/loginwithmobile.php", map[string]string{"mobile": mobile})
	if err != nil {
		return err
	}

	env, err := decodeLoose(body)
	if err != nil {
		return err
	}
	if env.Status != "success" {
		if env.Message != "" {
			return errors.New(env.Message)
		}
		return ErrOTPUnavailable
	}
	return nil
}

func (g *HTTPGateway) VerifyOTP(ctx context.Context, mobile, otp string) (*LoginResult, error) {
	body, err := g.post(ctx, "/verifyotp.php", map[string]string{
		"mobile": mobile,
		"otp":    otp,
	})
	if err != nil {
		return nil, err
	}

	env, err := decodeLoose(body)
	if err != nil {
		return nil, err
	}
	if env.Status != "success" {
		if env.Message != "" {
			return nil, errors.New(env.Message)
		}
		return nil, ErrInvalidOTP
	}

	return loginResult(env, ""), nil
}

// post sends a JSON body and returns the raw response bytes. Transport
// failures collapse to ErrNetwork; the raw error never reaches the user.
func (g *HTTPGateway) post(ctx context.Context, path string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, ErrNetwork
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.base+path, bytes.NewReader(raw))
	if err != nil {
		return nil, ErrNetwork
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, ErrNetwork
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, ErrNetwork
	}
	return body, nil
}

// decodeLoose extracts the JSON envelope from a body that may be wrapped in
// PHP warnings or be plain HTML. No recoverable JSON object means ErrServer.
func decodeLoose(body []byte) (*envelope, error) {
	start := bytes.IndexByte(body, '{')
	end := bytes.LastIndexByte(body, '}')
	if start < 0 || end < start {
		return nil, ErrServer
	}

	var env envelope
	if err := json.Unmarshal(body[start:end+1], &env); err != nil {
		return nil, ErrServer
	}
	return &env, nil
}

// loginResult fills in a minimal user record when the backend omits the
// "user" object but still reports user_id.
func loginResult(env *envelope, email string) *LoginResult {
	res := &LoginResult{Token: env.Token}
	if env.User != nil {
		res.User = *env.User
	} else {
		res.User = models.User{ID: string(env.UserID), Email: email}
	}
	if res.User.Email == "" {
		res.User.Email = email
	}
	return res
}
