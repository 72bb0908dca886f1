package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"

	"github.com/rafabene/carteira-backend/internal/domain/entities"
	"github.com/rafabene/carteira-backend/internal/domain/errors"
	"github.com/rafabene/carteira-backend/internal/domain/ports"
	"github.com/rafabene/carteira-backend/internal/domain/repositories"
)

const (
	tokenPrefix     = "ct_"
	tokenPrefixSize = 8
	masterTokenName = "master"
)

// APITokenService gerencia os tokens enviados no header apikey
type APITokenService struct {
	tokens repositories.APITokenRepository
	clock  ports.Clock
	logger ports.Logger
}

// NewAPITokenService cria um novo APITokenService
func NewAPITokenService(tokens repositories.APITokenRepository, clock ports.Clock, logger ports.Logger) *APITokenService {
	if clock == nil {
		clock = ports.SystemClock
	}
	return &APITokenService{
		tokens: tokens,
		clock:  clock,
		logger: logger.With("component", "api_tokens"),
	}
}

// HashToken retorna o sha-256 em hexadecimal; é o único formato persistido
func HashToken(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}

// newPlaintext gera ct_ + 64 caracteres hexadecimais aleatórios
func newPlaintext() string {
	a := strings.ReplaceAll(uuid.NewString(), "-", "")
	b := strings.ReplaceAll(uuid.NewString(), "-", "")
	return tokenPrefix + a + b
}

func displayPrefix(plaintext string) string {
	return plaintext[:len(tokenPrefix)+tokenPrefixSize]
}

func (s *APITokenService) issue(ctx context.Context, userID uint, name string, master bool) (*entities.APIToken, error) {
	plaintext := newPlaintext()
	token := &entities.APIToken{
		UserID:    userID,
		Name:      name,
		TokenHash: HashToken(plaintext),
		Prefix:    displayPrefix(plaintext),
		Master:    master,
	}
	if err := s.tokens.Create(ctx, token); err != nil {
		return nil, err
	}
	token.Plaintext = plaintext
	return token, nil
}

// CreateMaster emite o token master do usuário (usado no cadastro)
func (s *APITokenService) CreateMaster(ctx context.Context, userID uint) (*entities.APIToken, error) {
	return s.issue(ctx, userID, masterTokenName, true)
}

// Create emite um token comum; o texto puro só é retornado aqui
func (s *APITokenService) Create(ctx context.Context, userID uint, name string) (*entities.APIToken, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.ErrValidation
	}
	token, err := s.issue(ctx, userID, name, false)
	if err != nil {
		return nil, err
	}
	s.logger.Info("api token created", "user_id", userID, "token_id", token.ID)
	return token, nil
}

func (s *APITokenService) List(ctx context.Context, userID uint) ([]*entities.APIToken, error) {
	return s.tokens.ListByUser(ctx, userID)
}

// Delete remove um token comum do usuário; o master não pode ser removido
func (s *APITokenService) Delete(ctx context.Context, userID, tokenID uint) error {
	token, err := s.tokens.FindByID(ctx, tokenID)
	if err != nil {
		return err
	}
	if token == nil || token.UserID != userID {
		return errors.ErrTokenNotFound
	}
	if token.Master {
		return errors.ErrMasterTokenImmutable
	}
	return s.tokens.Delete(ctx, tokenID)
}

// RotateMaster troca o segredo do token master; cria um se o usuário ainda não tiver
func (s *APITokenService) RotateMaster(ctx context.Context, userID uint) (*entities.APIToken, error) {
	master, err := s.tokens.FindMaster(ctx, userID)
	if err != nil {
		return nil, err
	}
	if master == nil {
		return s.CreateMaster(ctx, userID)
	}

	plaintext := newPlaintext()
	hash, prefix := HashToken(plaintext), displayPrefix(plaintext)
	if err := s.tokens.UpdateHash(ctx, master.ID, hash, prefix); err != nil {
		return nil, err
	}

	master.TokenHash = hash
	master.Prefix = prefix
	master.Plaintext = plaintext
	s.logger.Info("master token rotated", "user_id", userID, "token_id", master.ID)
	return master, nil
}

// Authenticate resolve o token pelo hash; ultimo_uso é atualizado sem bloquear a requisição
func (s *APITokenService) Authenticate(ctx context.Context, plaintext string) (*entities.APIToken, error) {
	plaintext = strings.TrimSpace(plaintext)
	if plaintext == "" {
		return nil, errors.ErrUnauthorized
	}

	token, err := s.tokens.FindByHash(ctx, HashToken(plaintext))
	if err != nil {
		return nil, err
	}
	if token == nil {
		return nil, errors.ErrUnauthorized
	}

	now := s.clock()
	if err := s.tokens.TouchLastUsed(ctx, token.ID, now); err != nil {
		s.logger.Warn("failed to update token last use", "token_id", token.ID, "error", err)
	} else {
		token.LastUsedAt = &now
	}
	return token, nil
}
