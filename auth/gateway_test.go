package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gatewayFor(t *testing.T, handler http.HandlerFunc) *HTTPGateway {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHTTPGateway(srv.URL)
}

func TestLoginParsesCleanJSON(t *testing.T) {
	gw := gatewayFor(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"success","token":"tok123","user_id":7}`))
	})

	res, err := gw.LoginWithPassword(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)
	assert.Equal(t, "tok123", res.Token)
	assert.Equal(t, "7", res.User.ID)
	assert.Equal(t, "a@b.c", res.User.Email, "email backfilled when user object is absent")
}

func TestLoginExtractsJSONFromPHPWarnings(t *testing.T) {
	body := `<br /><b>Warning</b>: mysqli_connect(): in <b>/var/www/login.php</b> on line <b>12</b><br />` +
		`{"status":"success","token":"tok123","user":{"id":"u1","username":"amy"}}`
	gw := gatewayFor(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	})

	res, err := gw.LoginWithPassword(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)
	assert.Equal(t, "tok123", res.Token)
	assert.Equal(t, "amy", res.User.Username)
}

func TestLoginHTMLBodyIsGenericServerError(t *testing.T) {
	gw := gatewayFor(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<!DOCTYPE html><html><body>Fatal error</body></html>"))
	})

	_, err := gw.LoginWithPassword(context.Background(), "a@b.c", "pw")
	require.ErrorIs(t, err, ErrServer)
	assert.Equal(t, "Server error. Please try again.", err.Error())
}

func TestLoginFailureUsesBackendMessage(t *testing.T) {
	gw := gatewayFor(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"error","message":"Wrong password"}`))
	})

	_, err := gw.LoginWithPassword(context.Background(), "a@b.c", "pw")
	require.Error(t, err)
	assert.Equal(t, "Wrong password", err.Error())
}

func TestLoginNetworkFailureIsGeneric(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // gone before the request fires
	gw := NewHTTPGateway(srv.URL)

	_, err := gw.LoginWithPassword(context.Background(), "a@b.c", "pw")
	require.ErrorIs(t, err, ErrNetwork)
}

func TestSignupLegacySentinels(t *testing.T) {
	created := gatewayFor(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("1"))
	})
	require.NoError(t, created.Signup(context.Background(), SignupForm{Name: "a", Email: "a@b.c", Mobile: "9", Password: "x"}))

	duplicate := gatewayFor(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("2"))
	})
	err := duplicate.Signup(context.Background(), SignupForm{Name: "a", Email: "a@b.c", Mobile: "9", Password: "x"})
	require.ErrorIs(t, err, ErrUserExists)
}

func TestSignupJSONEnvelope(t *testing.T) {
	gw := gatewayFor(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"success"}`))
	})
	require.NoError(t, gw.Signup(context.Background(), SignupForm{Name: "a", Email: "a@b.c", Mobile: "9", Password: "x"}))
}

func TestVerifyOTPWrongCode(t *testing.T) {
	gw := gatewayFor(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"error"}`))
	})

	_, err := gw.VerifyOTP(context.Background(), "9999999999", "000000")
	require.ErrorIs(t, err, ErrInvalidOTP)
}
