package usecase

import (
	"context"
	"errors"
	"time"

	"atelier-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

type UserRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	CountByEmail(ctx context.Context, email string) (int, error)
	Save(ctx context.Context, u *domain.User) error
}

type VerificationRepo interface {
	GetByCode(ctx context.Context, code string) (*domain.Verification, error)
	Save(ctx context.Context, v *domain.Verification) error
	DeleteByUser(ctx context.Context, userID int64) error
	Delete(ctx context.Context, id int64) error
}

type EmailSender interface {
	SendVerificationEmail(ctx context.Context, email, code string) bool
}

type UserService struct {
	Users         UserRepo
	Verifications VerificationRepo
	Email         EmailSender
	Token         *TokenService
	Log           zerolog.Logger
}

type CreateAccountInput struct {
	Email    string          `json:"email"`
	Username string          `json:"username"`
	Password string          `json:"password"`
	Role     domain.UserRole `json:"role"`
}

func (s *UserService) CreateAccount(ctx context.Context, in CreateAccountInput) error {
	if in.Role != domain.RoleCreator && in.Role != domain.RoleClient {
		return ErrBadRequest("Invalid role")
	}
	_, err := s.Users.GetByEmail(ctx, in.Email)
	if err == nil {
		return ErrBadRequest("There is a user with that email already")
	}
	if !errors.Is(err, ErrNoRows) {
		s.Log.Error().Err(err).Msg("create account: lookup failed")
		return ErrInternal("Couldn't create an account")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), 10)
	if err != nil {
		s.Log.Error().Err(err).Msg("create account: hash failed")
		return ErrInternal("Couldn't create an account")
	}
	now := time.Now().UTC()
	u := &domain.User{
		Email:     in.Email,
		Username:  in.Username,
		Password:  string(hashed),
		Role:      in.Role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Users.Save(ctx, u); err != nil {
		s.Log.Error().Err(err).Msg("create account: save failed")
		return ErrInternal("Couldn't create an account")
	}

	v := &domain.Verification{
		Code:      uuid.NewString(),
		UserID:    u.ID,
		CreatedAt: now,
	}
	if err := s.Verifications.Save(ctx, v); err != nil {
		s.Log.Error().Err(err).Msg("create account: verification save failed")
		return ErrInternal("Couldn't create an account")
	}
	s.Email.SendVerificationEmail(ctx, u.Email, v.Code)
	return nil
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *UserService) Login(ctx context.Context, in LoginInput) (string, error) {
	u, err := s.Users.GetByEmail(ctx, in.Email)
	if errors.Is(err, ErrNoRows) {
		return "", ErrNotFound("User not found")
	}
	if err != nil {
		s.Log.Error().Err(err).Msg("login: lookup failed")
		return "", ErrInternal("Can't log user in.")
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(in.Password)) != nil {
		return "", ErrBadRequest("Wrong password")
	}
	token, err := s.Token.Sign(u.ID)
	if err != nil {
		s.Log.Error().Err(err).Msg("login: sign failed")
		return "", ErrInternal("Can't log user in.")
	}
	return token, nil
}

func (s *UserService) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	u, err := s.Users.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound("User Not Found")
	}
	return u, nil
}

type EditProfileInput struct {
	Email    string `json:"email,omitempty"`
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
}

func (s *UserService) EditProfile(ctx context.Context, userID int64, in EditProfileInput) error {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		s.Log.Error().Err(err).Int64("user_id", userID).Msg("edit profile: lookup failed")
		return ErrInternal("Could not update profile.")
	}

	if in.Email != "" {
		n, err := s.Users.CountByEmail(ctx, in.Email)
		if err != nil {
			s.Log.Error().Err(err).Msg("edit profile: email count failed")
			return ErrInternal("Could not update profile.")
		}
		if n > 0 {
			return ErrBadRequest("There is a user with that email already")
		}
		u.Email = in.Email
		u.Verified = false
		if err := s.Verifications.DeleteByUser(ctx, userID); err != nil {
			s.Log.Error().Err(err).Msg("edit profile: verification delete failed")
			return ErrInternal("Could not update profile.")
		}
		v := &domain.Verification{
			Code:      uuid.NewString(),
			UserID:    userID,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.Verifications.Save(ctx, v); err != nil {
			s.Log.Error().Err(err).Msg("edit profile: verification save failed")
			return ErrInternal("Could not update profile.")
		}
		s.Email.SendVerificationEmail(ctx, u.Email, v.Code)
	}

	if in.Username != "" {
		u.Username = in.Username
	}
	if in.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), 10)
		if err != nil {
			s.Log.Error().Err(err).Msg("edit profile: hash failed")
			return ErrInternal("Could not update profile.")
		}
		u.Password = string(hashed)
	}
	u.UpdatedAt = time.Now().UTC()
	if err := s.Users.Save(ctx, u); err != nil {
		s.Log.Error().Err(err).Msg("edit profile: save failed")
		return ErrInternal("Could not update profile.")
	}
	return nil
}

func (s *UserService) VerifyEmail(ctx context.Context, code string) error {
	v, err := s.Verifications.GetByCode(ctx, code)
	if errors.Is(err, ErrNoRows) {
		return ErrNotFound("Verification not found")
	}
	if err != nil {
		s.Log.Error().Err(err).Msg("verify email: lookup failed")
		return ErrInternal("Could not verify email")
	}
	u, err := s.Users.GetByID(ctx, v.UserID)
	if err != nil {
		s.Log.Error().Err(err).Msg("verify email: user lookup failed")
		return ErrInternal("Could not verify email")
	}
	u.Verified = true
	u.UpdatedAt = time.Now().UTC()
	if err := s.Users.Save(ctx, u); err != nil {
		s.Log.Error().Err(err).Msg("verify email: save failed")
		return ErrInternal("Could not verify email")
	}
	if err := s.Verifications.Delete(ctx, v.ID); err != nil {
		s.Log.Error().Err(err).Msg("verify email: verification delete failed")
		return ErrInternal("Could not verify email")
	}
	return nil
}
