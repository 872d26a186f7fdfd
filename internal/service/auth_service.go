// internal/service/auth_service.go
//go:generate mockery --name AuthService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"errors"
	"time"

	"mood_diary/internal/config"
	"mood_diary/internal/middleware"
	"mood_diary/internal/model"
	"mood_diary/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenTypeBearer = "Bearer"

type AuthService interface {
	SignInAnonymously(ctx context.Context) (*model.AuthResponse, error)
	LinkEmail(ctx context.Context, userID uuid.UUID, req *model.LinkEmailRequest) (*model.AuthResponse, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error)
	GetUser(ctx context.Context, userID uuid.UUID) (*model.User, error)
}

type authService struct {
	db       *gorm.DB
	userRepo repository.UserRepository
	cfg      *config.Config
	now      Clock
}

func NewAuthService(db *gorm.DB, userRepo repository.UserRepository, cfg *config.Config, clock Clock) AuthService {
	if clock == nil {
		clock = time.Now
	}
	return &authService{
		db:       db,
		userRepo: userRepo,
		cfg:      cfg,
		now:      clock,
	}
}

// SignInAnonymously はゲストユーザーを作成してトークンを発行します。
func (s *authService) SignInAnonymously(ctx context.Context) (*model.AuthResponse, error) {
	logger := middleware.GetLogger(ctx)

	user := &model.User{
		UserID:      uuid.New(),
		IsAnonymous: true,
	}
	if err := s.userRepo.Create(ctx, s.db, user); err != nil {
		logger.Error("Failed to create anonymous user", "error", err)
		return nil, storageError(err)
	}

	resp, err := s.issueToken(ctx, user)
	if err != nil {
		return nil, err
	}
	logger.Info("Anonymous sign-in successful", "user_id", user.UserID.String())
	return resp, nil
}

// LinkEmail は匿名ユーザーにメールアドレスとパスワードを紐付けます。
// 紐付け後も user_id は変わらないので、それまでの記録はそのまま引き継がれます。
func (s *authService) LinkEmail(ctx context.Context, userID uuid.UUID, req *model.LinkEmailRequest) (*model.AuthResponse, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID.String())

	var linked *model.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := s.userRepo.FindByID(ctx, tx, userID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("USER_NOT_FOUND", "ユーザーが見つかりません。", "", model.ErrNotFound)
			}
			return storageError(err)
		}
		if !user.IsAnonymous {
			return model.NewAppError("ALREADY_LINKED", "このアカウントには既にメールアドレスが登録されています。", "", model.ErrConflict)
		}

		// 事前チェック (同時実行時は一意制約で検出)
		if _, err := s.userRepo.FindByEmail(ctx, tx, req.Email); err == nil {
			return duplicateEmailError()
		} else if !errors.Is(err, model.ErrNotFound) {
			return storageError(err)
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			logger.Error("Failed to hash password", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部エラー", "", err)
		}
		hash := string(hashedPassword)

		if err := s.userRepo.LinkCredentials(ctx, tx, userID, req.Email, hash); err != nil {
			switch {
			case errors.Is(err, model.ErrConflict):
				return duplicateEmailError()
			case errors.Is(err, model.ErrNotFound):
				return model.NewAppError("USER_NOT_FOUND", "ユーザーが見つかりません。", "", model.ErrNotFound)
			}
			return storageError(err)
		}

		email := req.Email
		user.Email = &email
		user.PasswordHash = &hash
		user.IsAnonymous = false
		linked = user
		return nil
	})
	if err != nil {
		logger.Warn("Link email failed", "error", err)
		return nil, err
	}

	logger.Info("Email linked to anonymous user")
	return s.issueToken(ctx, linked)
}

// Login はメールアドレスとパスワードで認証し、トークンを返します。
func (s *authService) Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
	logger := middleware.GetLogger(ctx).With("email", req.Email)

	user, err := s.userRepo.FindByEmail(ctx, s.db, req.Email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Warn("Login failed: user not found")
			return nil, authenticationFailedError()
		}
		logger.Error("Login failed: db error on FindByEmail", "error", err)
		return nil, storageError(err)
	}

	if user.PasswordHash == nil {
		logger.Warn("Login failed: no password registered", "user_id", user.UserID.String())
		return nil, authenticationFailedError()
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		logger.Warn("Login failed: password mismatch", "user_id", user.UserID.String())
		return nil, authenticationFailedError()
	}

	resp, err := s.issueToken(ctx, user)
	if err != nil {
		return nil, err
	}
	logger.Info("Login successful", "user_id", user.UserID.String())
	return resp, nil
}

func (s *authService) GetUser(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	logger := middleware.GetLogger(ctx)

	user, err := s.userRepo.FindByID(ctx, s.db, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Warn("User not found", "user_id", userID.String())
			return nil, model.NewAppError("USER_NOT_FOUND", "ユーザーが見つかりません。", "", model.ErrNotFound)
		}
		logger.Error("Error finding user by ID", "error", err)
		return nil, storageError(err)
	}
	return user, nil
}

// --- ヘルパー関数 ---

func (s *authService) issueToken(ctx context.Context, user *model.User) (*model.AuthResponse, error) {
	now := s.now()
	expiresAt := now.Add(s.cfg.Auth.TokenTTL)

	claims := &model.JWTCustomClaims{
		Anonymous: user.IsAnonymous,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    config.AppName,
			Subject:   user.UserID.String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(s.cfg.Auth.JWTSecret))
	if err != nil {
		middleware.GetLogger(ctx).Error("Failed to sign JWT", "error", err, "user_id", user.UserID.String())
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "トークンの生成に失敗しました。", "", err)
	}

	return &model.AuthResponse{
		AccessToken: signedToken,
		TokenType:   tokenTypeBearer,
		ExpiresAt:   expiresAt,
		User:        user,
	}, nil
}

func authenticationFailedError() error {
	return model.NewAppError("AUTHENTICATION_FAILED", "メールアドレスまたはパスワードが正しくありません。", "", model.ErrUnauthenticated)
}

func duplicateEmailError() error {
	return model.NewAppError("DUPLICATE_EMAIL", "このメールアドレスは既に使用されています。", "email", model.ErrConflict)
}
