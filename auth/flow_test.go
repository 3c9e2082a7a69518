package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/essience-store/storefront-api/models"
	"github.com/essience-store/storefront-api/store"
)

type fakeGateway struct {
	loginRes  *LoginResult
	loginErr  error
	signupErr error
	otpErr    error
	verifyRes *LoginResult
	verifyErr error
	block     chan struct{} // when set, LoginWithPassword waits on it
}

func (f *fakeGateway) LoginWithPassword(ctx context.Context, email, password string) (*LoginResult, error) {
	if f.block != nil {
		<-f.block
	}
	return f.loginRes, f.loginErr
}

func (f *fakeGateway) Signup(ctx context.Context, form SignupForm) error {
	return f.signupErr
}

func (f *fakeGateway) SendOTP(ctx context.Context, mobile string) error {
	return f.otpErr
}

func (f *fakeGateway) VerifyOTP(ctx context.Context, mobile, otp string) (*LoginResult, error) {
	return f.verifyRes, f.verifyErr
}

type toastRecorder struct {
	mu   sync.Mutex
	msgs []string
}

func (r *toastRecorder) Show(message string, kind models.ToastKind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, message)
}

func (r *toastRecorder) last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.msgs) == 0 {
		return ""
	}
	return r.msgs[len(r.msgs)-1]
}

func newTestFlow(gw Gateway, verifier Verifier) (*Flow, *store.SessionStore, *toastRecorder) {
	sessions := store.NewSessionStore(store.NewMemoryKV(), nil)
	rec := &toastRecorder{}
	if verifier == nil {
		verifier = GatewayVerifier{Gateway: gw}
	}
	return NewFlow(gw, verifier, sessions, rec), sessions, rec
}

func TestLoginSuccessEstablishesSession(t *testing.T) {
	gw := &fakeGateway{loginRes: &LoginResult{Token: "tok", User: models.User{ID: "u1"}}}
	flow, sessions, rec := newTestFlow(gw, nil)

	require.NoError(t, flow.Login(context.Background(), "a@b.c", "pw"))

	session := sessions.Current()
	require.NotNil(t, session)
	assert.Equal(t, "tok", session.Token)
	assert.Equal(t, "Login successful! Welcome back.", rec.last())
	assert.False(t, flow.State().Loading)
}

func TestLoginFailureSetsErrorAndToast(t *testing.T) {
	gw := &fakeGateway{loginErr: ErrBadCredentials}
	flow, sessions, rec := newTestFlow(gw, nil)

	err := flow.Login(context.Background(), "a@b.c", "wrong")
	require.Error(t, err)

	assert.Nil(t, sessions.Current())
	assert.Equal(t, ErrBadCredentials.Error(), flow.State().Error)
	assert.Equal(t, ErrBadCredentials.Error(), rec.last())
}

func TestLoadingGateRejectsConcurrentSubmission(t *testing.T) {
	gw := &fakeGateway{
		loginRes: &LoginResult{Token: "tok", User: models.User{ID: "u1"}},
		block:    make(chan struct{}),
	}
	flow, _, _ := newTestFlow(gw, nil)

	done := make(chan error, 1)
	go func() { done <- flow.Login(context.Background(), "a@b.c", "pw") }()

	// Wait for the first submission to claim the slot.
	require.Eventually(t, func() bool { return flow.State().Loading }, time.Second, 5*time.Millisecond)

	err := flow.Login(context.Background(), "a@b.c", "pw")
	require.ErrorIs(t, err, ErrBusy)

	close(gw.block)
	require.NoError(t, <-done)
}

func TestStaleResponseIsDiscardedAfterBack(t *testing.T) {
	gw := &fakeGateway{
		loginRes: &LoginResult{Token: "tok", User: models.User{ID: "u1"}},
		block:    make(chan struct{}),
	}
	flow, sessions, _ := newTestFlow(gw, nil)

	done := make(chan error, 1)
	go func() { done <- flow.Login(context.Background(), "a@b.c", "pw") }()
	require.Eventually(t, func() bool { return flow.State().Loading }, time.Second, 5*time.Millisecond)

	// The user abandons the flow while the request is in flight.
	flow.Back()
	close(gw.block)

	require.ErrorIs(t, <-done, ErrBusy)
	assert.Nil(t, sessions.Current(), "late response must not establish a session")
	assert.False(t, flow.State().Loading)
}

func TestSignupSuccessReturnsToLogin(t *testing.T) {
	flow, sessions, rec := newTestFlow(&fakeGateway{}, nil)
	flow.SwitchMode()
	require.Equal(t, StepSignup, flow.State().Step)

	form := SignupForm{Name: "Amy", Email: "a@b.c", Mobile: "9999999999", Password: "pw"}
	require.NoError(t, flow.Signup(context.Background(), form))

	state := flow.State()
	assert.Equal(t, StepLogin, state.Step)
	assert.Equal(t, "Signup success! Please login.", state.Message)
	assert.Nil(t, sessions.Current(), "signup never creates a session")
	assert.Equal(t, "Account created successfully! Please sign in.", rec.last())
}

func TestSignupValidatesRequiredFieldsLocally(t *testing.T) {
	flow, _, _ := newTestFlow(&fakeGateway{}, nil)

	err := flow.Signup(context.Background(), SignupForm{Name: "Amy"})
	require.ErrorIs(t, err, ErrMissingFields)
	assert.Equal(t, ErrMissingFields.Error(), flow.State().Error)
}

func TestSignupDuplicateUser(t *testing.T) {
	flow, _, _ := newTestFlow(&fakeGateway{signupErr: ErrUserExists}, nil)

	form := SignupForm{Name: "Amy", Email: "a@b.c", Mobile: "9999999999", Password: "pw"}
	err := flow.Signup(context.Background(), form)
	require.ErrorIs(t, err, ErrUserExists)
	assert.Equal(t, ErrUserExists.Error(), flow.State().Error)
}

func TestDisabledVerifierSurfacesUnavailable(t *testing.T) {
	flow, _, _ := newTestFlow(&fakeGateway{}, DisabledVerifier{})

	flow.StartForgot()
	require.Equal(t, StepForgotMobile, flow.State().Step)

	err := flow.SubmitMobile(context.Background(), "9999999999")
	require.ErrorIs(t, err, ErrOTPUnavailable)

	state := flow.State()
	assert.Equal(t, StepForgotMobile, state.Step, "must not advance")
	assert.Equal(t, ErrOTPUnavailable.Error(), state.Error)
}

func TestForgotFlowAdvancesThroughSteps(t *testing.T) {
	gw := &fakeGateway{verifyRes: &LoginResult{}}
	flow, _, _ := newTestFlow(gw, nil)

	flow.StartForgot()
	require.NoError(t, flow.SubmitMobile(context.Background(), "9999999999"))
	assert.Equal(t, StepForgotOTP, flow.State().Step)

	require.NoError(t, flow.SubmitOTP(context.Background(), "123456"))
	assert.Equal(t, StepForgotReset, flow.State().Step)

	require.NoError(t, flow.SubmitNewPassword("secret1", "secret1"))
	assert.Equal(t, StepLogin, flow.State().Step)
}

func TestWrongOTPStaysOnVerifyStep(t *testing.T) {
	gw := &fakeGateway{verifyErr: ErrInvalidOTP}
	flow, _, _ := newTestFlow(gw, nil)

	flow.StartForgot()
	require.NoError(t, flow.SubmitMobile(context.Background(), "9999999999"))

	err := flow.SubmitOTP(context.Background(), "000000")
	require.ErrorIs(t, err, ErrInvalidOTP)
	assert.Equal(t, StepForgotOTP, flow.State().Step)
	assert.Equal(t, ErrInvalidOTP.Error(), flow.State().Error)
}

func TestResetPasswordRequiresMatchingFields(t *testing.T) {
	gw := &fakeGateway{verifyRes: &LoginResult{}}
	flow, _, _ := newTestFlow(gw, nil)

	flow.StartForgot()
	require.NoError(t, flow.SubmitMobile(context.Background(), "9999999999"))
	require.NoError(t, flow.SubmitOTP(context.Background(), "123456"))

	err := flow.SubmitNewPassword("one", "two")
	require.ErrorIs(t, err, ErrPasswordMismatch)
	assert.Equal(t, StepForgotReset, flow.State().Step, "mismatch keeps the user on the reset step")
}

func TestBackResetsForgotState(t *testing.T) {
	flow, _, _ := newTestFlow(&fakeGateway{}, DisabledVerifier{})

	flow.StartForgot()
	_ = flow.SubmitMobile(context.Background(), "9999999999")
	require.NotEmpty(t, flow.State().Error)

	flow.Back()

	state := flow.State()
	assert.Equal(t, StepLogin, state.Step)
	assert.Empty(t, state.Error)
	assert.False(t, state.Loading)
}

func TestSwitchModeClearsFormState(t *testing.T) {
	flow, _, _ := newTestFlow(&fakeGateway{loginErr: ErrBadCredentials}, nil)

	_ = flow.Login(context.Background(), "a@b.c", "wrong")
	require.NotEmpty(t, flow.State().Error)

	assert.Equal(t, StepSignup, flow.SwitchMode())
	assert.Empty(t, flow.State().Error)
}
