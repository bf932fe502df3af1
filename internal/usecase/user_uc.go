package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/domain"
	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/platform/logger"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserUsecase is the credential store: signup, login and identity lookup.
type UserUsecase struct {
	users    domain.UserRepository
	hashCost int
	logger   *logger.Logger
}

func NewUserUsecase(users domain.UserRepository, log *logger.Logger) *UserUsecase {
	return &UserUsecase{users: users, hashCost: bcrypt.DefaultCost, logger: log.Named("UserUsecase")}
}

// WithHashCost overrides the bcrypt cost. Tests use bcrypt.MinCost.
func (uc *UserUsecase) WithHashCost(cost int) *UserUsecase {
	uc.hashCost = cost
	return uc
}

// Register creates an account. A taken username yields ErrDuplicateUsername.
func (uc *UserUsecase) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	ctx, span := tracer.Start(ctx, "UserUsecase.Register")
	defer span.End()

	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: username, email and password are required", domain.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), uc.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{Username: username, Email: email, PasswordHash: string(hash)}
	if err := uc.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateUsername) {
			return nil, err
		}
		span.RecordError(err)
		return nil, fmt.Errorf("create user: %w", err)
	}
	uc.logger.Info("User registered", zap.String("user_id", user.ID), zap.String("username", username))
	return user, nil
}

// Authenticate checks a username and password. Unknown users and wrong
// passwords both yield ErrInvalidCredentials.
func (uc *UserUsecase) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	ctx, span := tracer.Start(ctx, "UserUsecase.Authenticate")
	defer span.End()

	user, err := uc.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		uc.logger.Info("Login failed: wrong password", zap.String("username", username))
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

func (uc *UserUsecase) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return uc.users.GetByID(ctx, id)
}
