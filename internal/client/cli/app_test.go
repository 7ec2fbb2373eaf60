package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophaccounts/internal/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

type fakeAccounts struct {
	signup   *api.SignupRequest
	username string
	password string
	update   *api.UpdateUserRequest
	avatar   string
	deleted  string

	err error
}

func (f *fakeAccounts) Signup(ctx context.Context, req *api.SignupRequest) (*api.User, error) {
	f.signup = req
	if f.err != nil {
		return nil, f.err
	}
	return &api.User{ID: "u1", Username: req.Username, Email: req.Email, FullName: req.FullName, Role: "USER"}, nil
}

func (f *fakeAccounts) Login(ctx context.Context, username, password string) (*api.LoginResponse, error) {
	f.username, f.password = username, password
	if f.err != nil {
		return nil, f.err
	}
	return &api.LoginResponse{AccessToken: "tok", User: &api.User{ID: "u1", Username: username}}, nil
}

func (f *fakeAccounts) Me(ctx context.Context) (*api.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &api.User{ID: "u1", Username: "alice", Role: "USER"}, nil
}

func (f *fakeAccounts) UpdateUser(ctx context.Context, req *api.UpdateUserRequest) (*api.User, error) {
	f.update = req
	return &api.User{ID: "u1"}, f.err
}

func (f *fakeAccounts) UpdateAvatar(ctx context.Context, dataURI string) (*api.User, error) {
	f.avatar = dataURI
	return &api.User{ID: "u1", Avatar: "https://cdn/x.jpg"}, f.err
}

func (f *fakeAccounts) ListUsers(ctx context.Context) ([]*api.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []*api.User{
		{ID: "u1", Username: "alice", Email: "a@example.com", Role: "ADMIN"},
		{ID: "u2", Username: "bob", Email: "b@example.com", Role: "USER"},
	}, nil
}

func (f *fakeAccounts) DeleteUser(ctx context.Context, userID string) error {
	f.deleted = userID
	return f.err
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	old := readPassword
	t.Cleanup(func() { readPassword = old })
	readPassword = func(int) ([]byte, error) { return []byte(pw), nil }
}

func writePNG(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "me.png")
	require.NoError(t, os.WriteFile(path, pngHeader, 0o600))
	return path
}

func newTestApp(f *fakeAccounts, input string) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	return NewApp(f, strings.NewReader(input), &out, time.Second), &out
}

func TestRun_Usage(t *testing.T) {
	app, _ := newTestApp(&fakeAccounts{}, "")

	assert.ErrorIs(t, app.Run(context.Background(), nil), ErrUsage)
	assert.ErrorIs(t, app.Run(context.Background(), []string{"frobnicate"}), ErrUsage)
	assert.Error(t, app.Run(context.Background(), []string{"delete"}))
	assert.Error(t, app.Run(context.Background(), []string{"avatar"}))
}

func TestSignup_WithAvatar(t *testing.T) {
	stubPassword(t, "secret1")
	path := writePNG(t)
	f := &fakeAccounts{}
	app, out := newTestApp(f, "alice\nalice@example.com\nAlice A\n"+path+"\n")

	require.NoError(t, app.Run(context.Background(), []string{"signup"}))

	require.NotNil(t, f.signup)
	assert.Equal(t, "alice", f.signup.Username)
	assert.Equal(t, "secret1", f.signup.Password)
	assert.Equal(t, "Alice A", f.signup.FullName)
	assert.True(t, strings.HasPrefix(f.signup.Avatar, "data:image/png;base64,"))
	assert.Contains(t, out.String(), "Signup successful")
	assert.NotContains(t, out.String(), "secret1")
}

func TestSignup_NoAvatar(t *testing.T) {
	stubPassword(t, "secret1")
	f := &fakeAccounts{}
	app, _ := newTestApp(f, "bob\nbob@example.com\nBob\n\n")

	require.NoError(t, app.Run(context.Background(), []string{"signup"}))
	assert.Empty(t, f.signup.Avatar)
}

func TestLogin_PrintsToken(t *testing.T) {
	stubPassword(t, "secret1")
	f := &fakeAccounts{}
	app, out := newTestApp(f, "alice\n")

	require.NoError(t, app.Run(context.Background(), []string{"login"}))
	assert.Equal(t, "alice", f.username)
	assert.Equal(t, "secret1", f.password)
	assert.Contains(t, out.String(), "Access token: tok")
}

func TestLogin_PropagatesError(t *testing.T) {
	stubPassword(t, "bad")
	boom := errors.New("unauthorized: invalid credentials")
	app, _ := newTestApp(&fakeAccounts{err: boom}, "alice\n")

	assert.ErrorIs(t, app.Run(context.Background(), []string{"login"}), boom)
}

func TestUpdate_EmptyAnswersKeepFields(t *testing.T) {
	f := &fakeAccounts{}
	app, _ := newTestApp(f, "\nAlice B\n")

	require.NoError(t, app.Run(context.Background(), []string{"update"}))
	require.NotNil(t, f.update)
	assert.Nil(t, f.update.Email)
	require.NotNil(t, f.update.FullName)
	assert.Equal(t, "Alice B", *f.update.FullName)
}

func TestAvatar(t *testing.T) {
	f := &fakeAccounts{}
	app, out := newTestApp(f, "")

	require.NoError(t, app.Run(context.Background(), []string{"avatar", writePNG(t)}))
	assert.True(t, strings.HasPrefix(f.avatar, "data:image/png;base64,"))
	assert.Contains(t, out.String(), "https://cdn/x.jpg")
}

func TestUsersAndDelete(t *testing.T) {
	f := &fakeAccounts{}
	app, out := newTestApp(f, "")

	require.NoError(t, app.Run(context.Background(), []string{"users"}))
	assert.Contains(t, out.String(), "USERNAME")
	assert.Contains(t, out.String(), "bob")

	require.NoError(t, app.Run(context.Background(), []string{"delete", "u2"}))
	assert.Equal(t, "u2", f.deleted)
	assert.Contains(t, out.String(), "User u2 deleted")
}

func TestMe(t *testing.T) {
	app, out := newTestApp(&fakeAccounts{}, "")

	require.NoError(t, app.Run(context.Background(), []string{"me"}))
	assert.Contains(t, out.String(), "Username:  alice")
}
