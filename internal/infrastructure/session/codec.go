// Package session codifica a sessão do navegador num cookie JWT assinado (HS256).
package session

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName é o nome do cookie de sessão
const CookieName = "carteira_session"

var ErrInvalidSession = errors.New("invalid session")

// Session identifica quem está agindo em uma requisição.
// UserID é o usuário efetivo; ActorID é quem fez login (difere durante uma personificação).
type Session struct {
	UserID          uint
	ActorID         uint
	ImpersonationID uint
	ExpiresAt       time.Time
}

// Impersonating indica se a sessão pertence a uma personificação
func (s Session) Impersonating() bool {
	return s.ImpersonationID != 0 && s.ActorID != s.UserID
}

type claims struct {
	Actor         uint `json:"act,omitempty"`
	Impersonation uint `json:"imp,omitempty"`
	jwt.RegisteredClaims
}

// Codec assina e valida os tokens de sessão
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewCodec cria um Codec; ttl define a validade de cada token emitido
func NewCodec(secret string, ttl time.Duration) *Codec {
	return &Codec{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// TTL retorna a validade configurada
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Encode emite um token para a sessão; ActorID zero significa o próprio usuário
func (c *Codec) Encode(s Session) (string, time.Time, error) {
	if s.UserID == 0 {
		return "", time.Time{}, ErrInvalidSession
	}
	if s.ActorID == 0 {
		s.ActorID = s.UserID
	}

	now := c.now()
	expiresAt := now.Add(c.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Actor:         s.ActorID,
		Impersonation: s.ImpersonationID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(s.UserID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})

	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session: %w", err)
	}
	return signed, expiresAt, nil
}

// Decode valida assinatura e expiração e devolve a sessão
func (c *Codec) Decode(raw string) (*Session, error) {
	parsed := &claims{}
	token, err := jwt.ParseWithClaims(raw, parsed, func(*jwt.Token) (interface{}, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, ErrInvalidSession
	}

	userID, err := strconv.ParseUint(parsed.Subject, 10, 64)
	if err != nil || userID == 0 {
		return nil, ErrInvalidSession
	}

	s := &Session{
		UserID:          uint(userID),
		ActorID:         parsed.Actor,
		ImpersonationID: parsed.Impersonation,
	}
	if s.ActorID == 0 {
		s.ActorID = s.UserID
	}
	if parsed.ExpiresAt != nil {
		s.ExpiresAt = parsed.ExpiresAt.Time
	}
	return s, nil
}
