package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/ErlanBelekov/events-client/internal/domain"
	"github.com/ErlanBelekov/events-client/internal/email"
	"github.com/ErlanBelekov/events-client/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const defaultJWTTTL = 24 * time.Hour

// AccountUsecase is the reference server's side of authentication: it
// hashes passwords, checks them on login and issues HS256 access tokens.
type AccountUsecase struct {
	accounts repository.AccountStore
	email    email.Sender
	jwtKey   []byte
	jwtTTL   time.Duration
	logger   *slog.Logger
}

func NewAccountUsecase(accounts repository.AccountStore, emailSender email.Sender, jwtKey []byte, logger *slog.Logger) *AccountUsecase {
	return &AccountUsecase{
		accounts: accounts,
		email:    emailSender,
		jwtKey:   jwtKey,
		jwtTTL:   defaultJWTTTL,
		logger:   logger.With("component", "account"),
	}
}

// Register stores the user with a bcrypt hash of its password and sends a
// welcome mail. A failed mail does not fail the registration.
func (u *AccountUsecase) Register(ctx context.Context, user domain.User) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	created, err := u.accounts.CreateAccount(ctx, user, hash)
	if err != nil {
		return nil, err
	}

	subject, body := email.Welcome(created.Name)
	if err := u.email.Send(ctx, created.Email, subject, body); err != nil {
		u.logger.WarnContext(ctx, "send welcome email", "user_id", created.ID, "error", err)
	}
	return created, nil
}

// Login checks the password and returns a signed JWT. Coordinates, when
// sent, become the user's position for event distances.
func (u *AccountUsecase) Login(ctx context.Context, creds domain.Credentials) (string, error) {
	acc, err := u.accounts.FindAccountByEmail(ctx, creds.Email)
	if errors.Is(err, domain.ErrNotFound) {
		return "", domain.ErrInvalidCredentials
	}
	if err != nil {
		return "", fmt.Errorf("find account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(acc.PasswordHash, []byte(creds.Password)); err != nil {
		return "", domain.ErrInvalidCredentials
	}

	if creds.Lat != nil && creds.Lng != nil {
		if err := u.accounts.SetLocation(ctx, acc.User.ID, *creds.Lat, *creds.Lng); err != nil {
			return "", fmt.Errorf("set location: %w", err)
		}
	}

	return u.issue(acc.User)
}

func (u *AccountUsecase) ChangePassword(ctx context.Context, userID int64, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return u.accounts.UpdatePasswordHash(ctx, userID, hash)
}

func (u *AccountUsecase) issue(user domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   strconv.FormatInt(user.ID, 10),
		"email": user.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(u.jwtTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(u.jwtKey)
	if err != nil {
		return "", fmt.Errorf("sign jwt: %w", err)
	}
	return signed, nil
}
