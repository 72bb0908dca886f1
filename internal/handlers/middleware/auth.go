package middleware

import (
	"context"
	errs "errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/carteira-backend/internal/domain/entities"
	"github.com/rafabene/carteira-backend/internal/domain/errors"
	"github.com/rafabene/carteira-backend/internal/domain/ports"
	"github.com/rafabene/carteira-backend/internal/infrastructure/logging"
	"github.com/rafabene/carteira-backend/internal/infrastructure/session"
)

const (
	// APIKeyHeader carrega o token de API em texto puro
	APIKeyHeader = "apikey"
	// PrincipalContextKey guarda o Principal autenticado no contexto do Gin
	PrincipalContextKey = "principal"
)

// Principal é a identidade resolvida de uma requisição.
// User é o usuário efetivo (regras de negócio); Actor é quem autenticou (autorização).
type Principal struct {
	User            *entities.User
	Actor           *entities.User
	ImpersonationID uint
	Token           *entities.APIToken
	ExpiresAt       *time.Time
}

// Impersonating indica se um super admin está atuando como outro usuário
func (p *Principal) Impersonating() bool {
	return p.ImpersonationID != 0 && p.Actor.ID != p.User.ID
}

// CurrentPrincipal retorna o Principal da requisição ou nil
func CurrentPrincipal(c *gin.Context) *Principal {
	value, exists := c.Get(PrincipalContextKey)
	if !exists {
		return nil
	}
	p, _ := value.(*Principal)
	return p
}

// UserLoader busca usuários; deve retornar errors.ErrUserNotFound para ids inexistentes
type UserLoader interface {
	GetUser(ctx context.Context, id uint) (*entities.User, error)
}

// TokenAuthenticator valida tokens de API
type TokenAuthenticator interface {
	Authenticate(ctx context.Context, plaintext string) (*entities.APIToken, error)
}

// ImpersonationTracker consulta e encerra sessões de personificação
type ImpersonationTracker interface {
	IsOpen(ctx context.Context, sessionID uint) (bool, error)
	Terminate(ctx context.Context, sessionID uint)
}

// Authenticator resolve a identidade pelo cookie de sessão ou pelo header apikey
type Authenticator struct {
	codec         *session.Codec
	users         UserLoader
	tokens        TokenAuthenticator
	impersonation ImpersonationTracker
	secureCookie  bool
	logger        ports.Logger
}

// NewAuthenticator cria um novo Authenticator
func NewAuthenticator(
	codec *session.Codec,
	users UserLoader,
	tokens TokenAuthenticator,
	impersonation ImpersonationTracker,
	secureCookie bool,
	logger ports.Logger,
) *Authenticator {
	return &Authenticator{
		codec:         codec,
		users:         users,
		tokens:        tokens,
		impersonation: impersonation,
		secureCookie:  secureCookie,
		logger:        logging.Component(logger, "auth"),
	}
}

// IssueSession grava o cookie de sessão assinado
func (a *Authenticator) IssueSession(c *gin.Context, s session.Session) error {
	token, _, err := a.codec.Encode(s)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(session.CookieName, token, int(a.codec.TTL().Seconds()), "/", "", a.secureCookie, true)
	return nil
}

// ClearSession remove o cookie de sessão
func (a *Authenticator) ClearSession(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(session.CookieName, "", -1, "/", "", a.secureCookie, true)
}

func abort(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// RequireAuth exige uma identidade válida e ativa
func (a *Authenticator) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		var (
			principal *Principal
			err       error
		)
		if key := c.GetHeader(APIKeyHeader); key != "" {
			principal, err = a.fromToken(c, key)
		} else {
			principal, err = a.fromCookie(c)
		}
		if err != nil {
			abort(c, err)
			return
		}

		c.Set(PrincipalContextKey, principal)
		c.Next()
	}
}

func (a *Authenticator) fromToken(c *gin.Context, key string) (*Principal, error) {
	ctx := c.Request.Context()

	token, err := a.tokens.Authenticate(ctx, key)
	if err != nil {
		return nil, err
	}
	user, err := a.activeUser(ctx, token.UserID)
	if err != nil {
		return nil, err
	}
	return &Principal{User: user, Actor: user, Token: token}, nil
}

func (a *Authenticator) fromCookie(c *gin.Context) (*Principal, error) {
	ctx := c.Request.Context()

	raw, err := c.Cookie(session.CookieName)
	if err != nil || raw == "" {
		return nil, errors.ErrUnauthorized
	}
	s, err := a.codec.Decode(raw)
	if err != nil {
		a.ClearSession(c)
		return nil, errors.ErrUnauthorized
	}

	user, err := a.activeUser(ctx, s.UserID)
	if err != nil {
		return nil, a.destroy(c, s, err)
	}

	actor := user
	if s.ActorID != s.UserID {
		actor, err = a.activeUser(ctx, s.ActorID)
		if err == nil && !actor.IsSuperAdmin() {
			err = errors.ErrUnauthorized
		}
		if err != nil {
			return nil, a.destroy(c, s, err)
		}
	}

	if s.Impersonating() {
		open, err := a.impersonation.IsOpen(ctx, s.ImpersonationID)
		if err != nil {
			return nil, err
		}
		if !open {
			// Sessão fechada por outro admin ou pelo próprio: volta a ser o ator
			a.logger.Info("impersonation closed, restoring actor",
				logging.FieldUserID, actor.ID, "session_id", s.ImpersonationID)
			if err := a.IssueSession(c, session.Session{UserID: actor.ID}); err != nil {
				return nil, err
			}
			return &Principal{User: actor, Actor: actor}, nil
		}
	}

	expiresAt := s.ExpiresAt
	return &Principal{
		User:            user,
		Actor:           actor,
		ImpersonationID: s.ImpersonationID,
		ExpiresAt:       &expiresAt,
	}, nil
}

// activeUser converte usuário inexistente ou desativado em 401
func (a *Authenticator) activeUser(ctx context.Context, id uint) (*entities.User, error) {
	user, err := a.users.GetUser(ctx, id)
	if err != nil {
		if errs.Is(err, errors.ErrUserNotFound) {
			return nil, errors.ErrUnauthorized
		}
		return nil, err
	}
	if !user.Active {
		return nil, errors.ErrUnauthorized
	}
	return user, nil
}

// destroy descarta a sessão quando o usuário efetivo ou o ator deixou de ser válido
func (a *Authenticator) destroy(c *gin.Context, s *session.Session, cause error) error {
	if !errs.Is(cause, errors.ErrUnauthorized) {
		return cause
	}
	a.ClearSession(c)
	if s.Impersonating() {
		a.impersonation.Terminate(c.Request.Context(), s.ImpersonationID)
	}
	a.logger.Warn("session destroyed", logging.FieldUserID, s.UserID, "actor_id", s.ActorID)
	return errors.ErrUnauthorized
}

// RequirePermission verifica a permissão no ator, não no usuário personificado
func RequirePermission(permission entities.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := CurrentPrincipal(c)
		if p == nil {
			abort(c, errors.ErrUnauthorized)
			return
		}
		if !p.Actor.HasPermission(permission) {
			abort(c, errors.ErrForbidden)
			return
		}
		c.Next()
	}
}
