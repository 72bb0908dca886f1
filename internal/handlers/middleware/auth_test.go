package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafabene/carteira-backend/internal/domain/entities"
	"github.com/rafabene/carteira-backend/internal/domain/errors"
	"github.com/rafabene/carteira-backend/internal/infrastructure/logging"
	"github.com/rafabene/carteira-backend/internal/infrastructure/session"
)

type fakeUsers map[uint]*entities.User

func (f fakeUsers) GetUser(_ context.Context, id uint) (*entities.User, error) {
	if u, ok := f[id]; ok {
		return u, nil
	}
	return nil, errors.ErrUserNotFound
}

type fakeTokens map[string]*entities.APIToken

func (f fakeTokens) Authenticate(_ context.Context, plaintext string) (*entities.APIToken, error) {
	if t, ok := f[plaintext]; ok {
		return t, nil
	}
	return nil, errors.ErrUnauthorized
}

type fakeTracker struct {
	open       map[uint]bool
	terminated []uint
}

func (f *fakeTracker) IsOpen(_ context.Context, id uint) (bool, error) {
	return f.open[id], nil
}

func (f *fakeTracker) Terminate(_ context.Context, id uint) {
	f.terminated = append(f.terminated, id)
	f.open[id] = false
}

type authFixture struct {
	codec   *session.Codec
	users   fakeUsers
	tracker *fakeTracker
	logs    *bytes.Buffer
	router  *gin.Engine
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := &authFixture{
		codec: session.NewCodec("segredo-de-teste-com-tamanho-suficiente", time.Hour),
		users: fakeUsers{
			1: {ID: 1, Name: "Root", Role: entities.RoleSuperAdmin, Active: true},
			2: {ID: 2, Name: "Ana", Role: entities.RoleNormal, Active: true},
			3: {ID: 3, Name: "Inativo", Role: entities.RoleNormal, Active: false},
			4: {ID: 4, Name: "Admin", Role: entities.RoleAdmin, Active: true},
		},
		tracker: &fakeTracker{open: map[uint]bool{}},
		logs:    &bytes.Buffer{},
	}
	tokens := fakeTokens{"ct_valido": {ID: 9, UserID: 2}}
	authn := NewAuthenticator(f.codec, f.users, tokens, f.tracker, false, logging.NewSlogLoggerWithWriter(f.logs, "debug"))

	// Renderização mínima dos erros registrados pelos middlewares
	f.router = gin.New()
	f.router.Use(func(c *gin.Context) {
		c.Next()
		if len(c.Errors) > 0 && !c.Writer.Written() {
			status := http.StatusInternalServerError
			switch c.Errors.Last().Err {
			case errors.ErrUnauthorized:
				status = http.StatusUnauthorized
			case errors.ErrForbidden:
				status = http.StatusForbidden
			}
			c.String(status, c.Errors.Last().Err.Error())
		}
	})
	f.router.GET("/me", authn.RequireAuth(), func(c *gin.Context) {
		p := CurrentPrincipal(c)
		c.JSON(http.StatusOK, gin.H{
			"user":          p.User.ID,
			"actor":         p.Actor.ID,
			"impersonating": p.Impersonating(),
		})
	})
	f.router.GET("/audit", authn.RequireAuth(), RequirePermission(entities.PermissionAuditRead), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return f
}

func (f *authFixture) cookie(t *testing.T, s session.Session) *http.Cookie {
	t.Helper()
	raw, _, err := f.codec.Encode(s)
	require.NoError(t, err)
	return &http.Cookie{Name: session.CookieName, Value: raw}
}

func (f *authFixture) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

type meBody struct {
	User          uint `json:"user"`
	Actor         uint `json:"actor"`
	Impersonating bool `json:"impersonating"`
}

func readMe(t *testing.T, rec *httptest.ResponseRecorder) meBody {
	t.Helper()
	var body meBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func sessionCookieOf(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	return nil
}

func TestRequireAuth_Cookie(t *testing.T) {
	f := newAuthFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(f.cookie(t, session.Session{UserID: 2}))
	rec := f.do(req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := readMe(t, rec)
	assert.Equal(t, uint(2), body.User)
	assert.Equal(t, uint(2), body.Actor)
	assert.False(t, body.Impersonating)
}

func TestRequireAuth_APIKeyTakesPrecedence(t *testing.T) {
	f := newAuthFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(APIKeyHeader, "ct_valido")
	req.AddCookie(f.cookie(t, session.Session{UserID: 1}))
	rec := f.do(req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint(2), readMe(t, rec).User)
}

func TestRequireAuth_Rejects(t *testing.T) {
	f := newAuthFixture(t)

	tests := []struct {
		name  string
		setup func(*http.Request)
	}{
		{"sem credenciais", func(*http.Request) {}},
		{"apikey desconhecido", func(r *http.Request) { r.Header.Set(APIKeyHeader, "ct_errado") }},
		{"cookie adulterado", func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: session.CookieName, Value: "lixo"})
		}},
		{"usuário inexistente", func(r *http.Request) { r.AddCookie(f.cookie(t, session.Session{UserID: 99})) }},
		{"usuário inativo", func(r *http.Request) { r.AddCookie(f.cookie(t, session.Session{UserID: 3})) }},
		{"ator sem super admin", func(r *http.Request) {
			r.AddCookie(f.cookie(t, session.Session{UserID: 2, ActorID: 4, ImpersonationID: 5}))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			tt.setup(req)
			assert.Equal(t, http.StatusUnauthorized, f.do(req).Code)
		})
	}
}

func TestRequireAuth_InactiveUserClearsCookie(t *testing.T) {
	f := newAuthFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(f.cookie(t, session.Session{UserID: 3}))
	rec := f.do(req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	cleared := sessionCookieOf(rec)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
}

func TestRequireAuth_Impersonation(t *testing.T) {
	f := newAuthFixture(t)
	f.tracker.open[7] = true

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(f.cookie(t, session.Session{UserID: 2, ActorID: 1, ImpersonationID: 7}))
	rec := f.do(req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := readMe(t, rec)
	assert.Equal(t, uint(2), body.User)
	assert.Equal(t, uint(1), body.Actor)
	assert.True(t, body.Impersonating)
}

func TestRequireAuth_ClosedImpersonationRestoresActor(t *testing.T) {
	f := newAuthFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(f.cookie(t, session.Session{UserID: 2, ActorID: 1, ImpersonationID: 7}))
	rec := f.do(req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := readMe(t, rec)
	assert.Equal(t, uint(1), body.User)
	assert.False(t, body.Impersonating)

	reissued := sessionCookieOf(rec)
	require.NotNil(t, reissued)
	s, err := f.codec.Decode(reissued.Value)
	require.NoError(t, err)
	assert.Equal(t, uint(1), s.UserID)
	assert.False(t, s.Impersonating())
	assert.Contains(t, f.logs.String(), `"msg":"impersonation closed, restoring actor"`)
}

func TestRequireAuth_DeactivatedTargetEndsImpersonation(t *testing.T) {
	f := newAuthFixture(t)
	f.tracker.open[7] = true

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(f.cookie(t, session.Session{UserID: 3, ActorID: 1, ImpersonationID: 7}))
	rec := f.do(req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, []uint{7}, f.tracker.terminated)
	assert.Contains(t, f.logs.String(), `"msg":"session destroyed"`)
}

func TestRequirePermission_ChecksActor(t *testing.T) {
	f := newAuthFixture(t)
	f.tracker.open[7] = true

	tests := []struct {
		name   string
		sess   session.Session
		status int
	}{
		{"super admin", session.Session{UserID: 1}, http.StatusNoContent},
		{"admin sem auditoria", session.Session{UserID: 4}, http.StatusForbidden},
		{"usuário comum", session.Session{UserID: 2}, http.StatusForbidden},
		{"super admin personificando", session.Session{UserID: 2, ActorID: 1, ImpersonationID: 7}, http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/audit", nil)
			req.AddCookie(f.cookie(t, tt.sess))
			assert.Equal(t, tt.status, f.do(req).Code)
		})
	}
}

func TestRequirePermission_WithoutPrincipal(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	RequirePermission(entities.PermissionUsersRead)(c)

	assert.True(t, c.IsAborted())
	require.Len(t, c.Errors, 1)
	assert.Equal(t, errors.ErrUnauthorized, c.Errors.Last().Err)
}

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(origins string) *gin.Engine {
		r := gin.New()
		r.Use(CORS(origins))
		r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })
		return r
	}

	t.Run("origem liberada recebe credenciais", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/x", nil)
		req.Header.Set("Origin", "https://app.example.com")
		req.Header.Set("Access-Control-Request-Method", "POST")
		rec := httptest.NewRecorder()
		newRouter("https://app.example.com, https://outro.example.com").ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("origem desconhecida é recusada", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("Origin", "https://malicioso.example.com")
		rec := httptest.NewRecorder()
		newRouter("https://app.example.com").ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("curinga ecoa a origem", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("Origin", "https://qualquer.example.com")
		rec := httptest.NewRecorder()
		newRouter("*").ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "https://qualquer.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestSplitOrigins(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, SplitOrigins(" a, ,b ,"))
	assert.Empty(t, SplitOrigins(""))
}

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer

	r := gin.New()
	r.Use(RequestLogger(logging.NewSlogLoggerWithWriter(&buf, "debug")))
	r.GET("/items/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	req := httptest.NewRequest(http.MethodGet, "/items/42", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, "req-123", rec.Header().Get(RequestIDHeader))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line), buf.String())
	assert.Equal(t, "WARN", line["level"])
	assert.Equal(t, "req-123", line[logging.FieldRequestID])
	assert.Equal(t, "/items/:id", line[logging.FieldPath])
	assert.Equal(t, float64(http.StatusNotFound), line[logging.FieldStatusCode])
	assert.Equal(t, "http", line[logging.FieldComponent])
}

func TestRequestLogger_GeneratesID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestLogger(logging.NewNopLogger()))
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(RequestIDContextKey)) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	id := rec.Header().Get(RequestIDHeader)
	assert.Len(t, id, 36)
	assert.Equal(t, id, rec.Body.String())
}
