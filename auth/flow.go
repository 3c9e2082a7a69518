package auth

import (
	"context"
	"errors"
	"sync"

	"github.com/essience-store/storefront-api/models"
	"github.com/essience-store/storefront-api/store"
)

// Step is the auth workflow's current view.
type Step string

const (
	StepLogin        Step = "login"
	StepSignup       Step = "signup"
	StepForgotMobile Step = "forgot_mobile"
	StepForgotOTP    Step = "forgot_otp"
	StepForgotReset  Step = "forgot_reset"
)

// Local validation failures; no network call is attempted for these.
var (
	ErrBusy             = errors.New("A request is already in progress.")
	ErrMissingFields    = errors.New("All fields are required.")
	ErrPasswordMismatch = errors.New("Passwords do not match")
)

// Verifier is the pluggable OTP strategy behind the forgot-password flow.
// The live deployment disables it; see DisabledVerifier.
type Verifier interface {
	SendOTP(ctx context.Context, mobile string) error
	VerifyOTP(ctx context.Context, mobile, otp string) (*LoginResult, error)
}

// GatewayVerifier dispatches OTPs through the auth gateway.
type GatewayVerifier struct {
	Gateway Gateway
}

func (v GatewayVerifier) SendOTP(ctx context.Context, mobile string) error {
	return v.Gateway.SendOTP(ctx, mobile)
}

func (v GatewayVerifier) VerifyOTP(ctx context.Context, mobile, otp string) (*LoginResult, error) {
	return v.Gateway.VerifyOTP(ctx, mobile, otp)
}

// DisabledVerifier surfaces the current deployment's state: the OTP backend
// is switched off, and the user must see that rather than a silent failure.
type DisabledVerifier struct{}

func (DisabledVerifier) SendOTP(context.Context, string) error {
	return ErrOTPUnavailable
}

func (DisabledVerifier) VerifyOTP(context.Context, string, string) (*LoginResult, error) {
	return nil, ErrVerifyUnavailable
}

// State is a snapshot of the workflow for the presentation layer.
type State struct {
	Step     Step   `json:"step"`
	Loading  bool   `json:"loading"`
	Error    string `json:"error"`
	Message  string `json:"message"`
	LoggedIn bool   `json:"logged_in"`
}

// Flow drives login, signup and the forgot-password sequence. One submission
// may be in flight at a time (the loading gate); responses carry the
// sequence number they were issued under and are discarded when a newer
// submission or a reset has taken over.
type Flow struct {
	mu       sync.Mutex
	gateway  Gateway
	verifier Verifier
	sessions *store.SessionStore
	notify   store.Notifier

	step    Step
	loading bool
	errMsg  string
	message string
	seq     uint64
	mobile  string
}

func NewFlow(gateway Gateway, verifier Verifier, sessions *store.SessionStore, notify store.Notifier) *Flow {
	return &Flow{
		gateway:  gateway,
		verifier: verifier,
		sessions: sessions,
		notify:   notify,
		step:     StepLogin,
	}
}

// State returns the current workflow snapshot.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return State{
		Step:     f.step,
		Loading:  f.loading,
		Error:    f.errMsg,
		Message:  f.message,
		LoggedIn: f.sessions.Current() != nil,
	}
}

// SwitchMode toggles between login and signup, clearing form-level state.
func (f *Flow) SwitchMode() Step {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step == StepLogin {
		f.step = StepSignup
	} else {
		f.step = StepLogin
	}
	f.resetLocked()
	return f.step
}

// StartForgot enters the forgot-password sequence. No network call.
func (f *Flow) StartForgot() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.step = StepForgotMobile
	f.resetLocked()
}

// Back abandons the forgot-password sequence and returns to login. Any
// in-flight request becomes stale and its response is discarded.
func (f *Flow) Back() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.step = StepLogin
	f.mobile = ""
	f.resetLocked()
}

// Login verifies the password credentials and, on success, replaces the
// session and notifies. The returned error is the user-facing message.
func (f *Flow) Login(ctx context.Context, email, password string) error {
	seq, ok := f.begin()
	if !ok {
		return ErrBusy
	}

	res, err := f.gateway.LoginWithPassword(ctx, email, password)

	var applied bool
	f.finish(seq, func() {
		applied = true
		if err != nil {
			f.errMsg = err.Error()
			return
		}
		f.step = StepLogin
	})
	if !applied {
		return ErrBusy
	}
	if err != nil {
		f.toast(err.Error(), models.ToastError)
		return err
	}

	f.sessions.SetSession(res.Token, res.User)
	f.toast("Login successful! Welcome back.", models.ToastSuccess)
	return nil
}

// Signup registers a new account. Success does not create a session; the
// flow returns to login so the user signs in with the new credentials.
func (f *Flow) Signup(ctx context.Context, form SignupForm) error {
	if form.Name == "" || form.Email == "" || form.Mobile == "" || form.Password == "" {
		f.setError(ErrMissingFields.Error())
		return ErrMissingFields
	}

	seq, ok := f.begin()
	if !ok {
		return ErrBusy
	}

	err := f.gateway.Signup(ctx, form)

	var applied bool
	f.finish(seq, func() {
		applied = true
		if err != nil {
			f.errMsg = err.Error()
			return
		}
		f.step = StepLogin
		f.message = "Signup success! Please login."
	})
	if !applied {
		return ErrBusy
	}
	if err != nil {
		f.toast(err.Error(), models.ToastError)
		return err
	}

	f.toast("Account created successfully! Please sign in.", models.ToastSuccess)
	return nil
}

// SubmitMobile dispatches an OTP to the given number and advances to the
// verification step. With the disabled verifier this surfaces the
// "unavailable" message and stays put.
func (f *Flow) SubmitMobile(ctx context.Context, mobile string) error {
	seq, ok := f.begin()
	if !ok {
		return ErrBusy
	}

	err := f.verifier.SendOTP(ctx, mobile)

	var applied bool
	f.finish(seq, func() {
		applied = true
		if err != nil {
			f.errMsg = err.Error()
			return
		}
		f.mobile = mobile
		f.step = StepForgotOTP
	})
	if !applied {
		return ErrBusy
	}
	return err
}

// SubmitOTP verifies the code for the mobile captured in the previous step.
// A wrong or expired code reports invalid and stays on the OTP step. When
// the gateway returns a token the session is established immediately.
func (f *Flow) SubmitOTP(ctx context.Context, otp string) error {
	f.mu.Lock()
	mobile := f.mobile
	f.mu.Unlock()

	seq, ok := f.begin()
	if !ok {
		return ErrBusy
	}

	res, err := f.verifier.VerifyOTP(ctx, mobile, otp)

	var applied bool
	f.finish(seq, func() {
		applied = true
		if err != nil {
			f.errMsg = err.Error()
			return
		}
		f.step = StepForgotReset
	})
	if !applied {
		return ErrBusy
	}
	if err != nil {
		return err
	}

	if res != nil && res.Token != "" {
		f.sessions.SetSession(res.Token, res.User)
	}
	return nil
}

// SubmitNewPassword finishes the forgot-password sequence. Validation is
// local only: the two fields must match. Success clears the flow and
// returns to the login view.
func (f *Flow) SubmitNewPassword(newPassword, confirmPassword string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if newPassword == "" || newPassword != confirmPassword {
		f.errMsg = ErrPasswordMismatch.Error()
		return ErrPasswordMismatch
	}

	f.step = StepLogin
	f.mobile = ""
	f.resetLocked()
	return nil
}

// begin claims the single in-flight submission slot. Callers must hand the
// returned sequence number to finish.
func (f *Flow) begin() (uint64, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.loading {
		return 0, false
	}
	f.loading = true
	f.errMsg = ""
	f.message = ""
	f.seq++
	return f.seq, true
}

// finish applies a response if it is still the latest issued; stale
// responses (a reset or newer submission bumped the sequence) are dropped.
func (f *Flow) finish(seq uint64, apply func()) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if seq != f.seq {
		return
	}
	f.loading = false
	apply()
}

// resetLocked clears transient submission state and invalidates any
// in-flight response. Caller holds the lock.
func (f *Flow) resetLocked() {
	f.loading = false
	f.errMsg = ""
	f.message = ""
	f.seq++
}

func (f *Flow) setError(msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errMsg = msg
}

func (f *Flow) toast(message string, kind models.ToastKind) {
	if f.notify != nil {
		f.notify.Show(message, kind)
	}
}
