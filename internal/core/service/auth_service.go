package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/campuscal/calendar-system/internal/core/domain"
	"github.com/campuscal/calendar-system/internal/core/ports"
)

// hashCost is the bcrypt work factor applied to every stored password.
const hashCost = 12

// dummyHash is compared against when the email lookup misses, so the
// not-found path costs one bcrypt comparison like the mismatch path.
var dummyHash = func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte("calendar-timing-equalizer"), hashCost)
	if err != nil {
		panic(err)
	}
	return h
}()

// AuthService implements credential verification and session token issuance.
type AuthService struct {
	repo          ports.AccountRepository
	sessionSecret string
	tokenTTL      time.Duration
}

func NewAuthService(repo ports.AccountRepository, sessionSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, sessionSecret: sessionSecret, tokenTTL: tokenTTL}
}

// SignIn verifies the email/password pair and mints a session token.
// Unknown email and wrong password both return ErrInvalidCredentials.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (string, *domain.Account, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	account, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		// Burn a comparison anyway so both failure paths take similar time.
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return "", nil, domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, _, err := s.Issue(account)
	if err != nil {
		return "", nil, err
	}

	return token, account, nil
}

// Issue mints a signed HS256 session token for the account. The role claim
// is fixed for the life of the token; it is not re-read from the store on
// later requests.
func (s *AuthService) Issue(account *domain.Account) (string, domain.Claims, error) {
	now := time.Now().UTC()
	claims := domain.Claims{
		SubjectID: account.ID,
		Email:     account.Email,
		Name:      account.Name,
		Role:      domain.NormalizeRole(account.Role),
		TokenID:   newTokenID(),
		ExpiresAt: now.Add(s.tokenTTL),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   claims.SubjectID,
		"email": claims.Email,
		"name":  claims.Name,
		"role":  string(account.Role),
		"jti":   claims.TokenID,
		"exp":   claims.ExpiresAt.Unix(),
	})

	signed, err := t.SignedString([]byte(s.sessionSecret))
	if err != nil {
		return "", domain.Claims{}, err
	}
	return signed, claims, nil
}

// HashPassword applies the service-wide bcrypt work factor.
func HashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func newTokenID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return hex.EncodeToString([]byte(time.Now().UTC().Format(time.RFC3339Nano)))
	}
	return hex.EncodeToString(b)
}
