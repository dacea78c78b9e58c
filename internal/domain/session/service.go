package session

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"time"

	"golang.org/x/exp/slog"
)

// TokenTTL время жизни токена, примерно одна смена регистратуры.
const TokenTTL = 12 * time.Hour

type Servicer interface {
	Create(ctx context.Context, userID int) (Token, error)
	Validate(ctx context.Context, token string) (int, error)
}

// Service выдает непрозрачные bearer-токены. В базе хранится только
// sha256 от токена.
type Service struct {
	repo Repository
	log  *slog.Logger
}

func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With("component", "session_service"),
	}
}

func (s *Service) Create(ctx context.Context, userID int) (Token, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return Token{}, fmt.Errorf("generate token: %w", err)
	}

	tok := Token{
		Value:     base64.URLEncoding.EncodeToString(raw),
		ExpiresAt: time.Now().Add(TokenTTL).UTC(),
	}
	if err := s.repo.Create(ctx, userID, hashToken(tok.Value), tok.ExpiresAt); err != nil {
		return Token{}, fmt.Errorf("save session: %w", err)
	}

	s.log.Debug("session created", "user_id", userID, "expires_at", tok.ExpiresAt)

	return tok, nil
}

func (s *Service) Validate(ctx context.Context, token string) (int, error) {
	if token == "" {
		return 0, ErrInvalidSession
	}

	userID, err := s.repo.Validate(ctx, hashToken(token))
	if err != nil {
		return 0, fmt.Errorf("validate session: %w", err)
	}

	return userID, nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
