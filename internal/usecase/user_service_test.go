package usecase

import (
	"context"
	"errors"
	"testing"

	"atelier-backend/internal/domain"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

func newUserService() (*UserService, *fakeUserRepo, *fakeVerificationRepo, *fakeEmail) {
	users := &fakeUserRepo{}
	verifications := &fakeVerificationRepo{}
	mail := &fakeEmail{}
	svc := &UserService{
		Users:         users,
		Verifications: verifications,
		Email:         mail,
		Token:         &TokenService{Secret: "test-secret"},
		Log:           zerolog.Nop(),
	}
	return svc, users, verifications, mail
}

func TestCreateAccount(t *testing.T) {
	svc, users, verifications, mail := newUserService()
	ctx := context.Background()

	err := svc.CreateAccount(ctx, CreateAccountInput{
		Email:    "a@b.c",
		Username: "ann",
		Password: "secret",
		Role:     domain.RoleCreator,
	})
	if err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}

	u, err := users.GetByEmail(ctx, "a@b.c")
	if err != nil {
		t.Fatalf("user not saved: %v", err)
	}
	if u.Password == "secret" {
		t.Fatal("password stored in plain text")
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("secret")) != nil {
		t.Fatal("stored hash does not match password")
	}
	if len(verifications.m) != 1 {
		t.Fatalf("verifications = %d, want 1", len(verifications.m))
	}
	if len(mail.sent) != 1 || mail.sent[0] != "a@b.c" {
		t.Fatalf("mail.sent = %v", mail.sent)
	}
}

func TestCreateAccountDuplicateEmail(t *testing.T) {
	svc, users, _, _ := newUserService()
	ctx := context.Background()
	users.put(&domain.User{Email: "a@b.c", Role: domain.RoleClient})

	err := svc.CreateAccount(ctx, CreateAccountInput{Email: "a@b.c", Password: "x", Role: domain.RoleClient})
	var bad ErrBadRequest
	if !errors.As(err, &bad) {
		t.Fatalf("err = %v, want ErrBadRequest", err)
	}
	if bad.Error() != "There is a user with that email already" {
		t.Fatalf("message = %q", bad.Error())
	}
}

func TestLogin(t *testing.T) {
	svc, _, _, _ := newUserService()
	ctx := context.Background()

	if err := svc.CreateAccount(ctx, CreateAccountInput{
		Email:    "a@b.c",
		Password: "secret",
		Role:     domain.RoleClient,
	}); err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}

	token, err := svc.Login(ctx, LoginInput{Email: "a@b.c", Password: "secret"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	id, err := svc.Token.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if id != 1 {
		t.Fatalf("id = %d, want 1", id)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _, _ := newUserService()
	ctx := context.Background()
	_ = svc.CreateAccount(ctx, CreateAccountInput{Email: "a@b.c", Password: "secret", Role: domain.RoleClient})

	_, err := svc.Login(ctx, LoginInput{Email: "a@b.c", Password: "nope"})
	if err == nil || err.Error() != "Wrong password" {
		t.Fatalf("err = %v, want Wrong password", err)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	svc, _, _, _ := newUserService()
	_, err := svc.Login(context.Background(), LoginInput{Email: "ghost@b.c", Password: "x"})
	if err == nil || err.Error() != "User not found" {
		t.Fatalf("err = %v, want User not found", err)
	}
}

func TestVerifyEmail(t *testing.T) {
	svc, users, verifications, _ := newUserService()
	ctx := context.Background()
	_ = svc.CreateAccount(ctx, CreateAccountInput{Email: "a@b.c", Password: "x", Role: domain.RoleClient})

	var code string
	for _, v := range verifications.m {
		code = v.Code
	}
	if err := svc.VerifyEmail(ctx, code); err != nil {
		t.Fatalf("VerifyEmail: %v", err)
	}

	u, _ := users.GetByEmail(ctx, "a@b.c")
	if !u.Verified {
		t.Fatal("user not verified")
	}
	if len(verifications.m) != 0 {
		t.Fatal("verification not consumed")
	}
}

func TestVerifyEmailUnknownCode(t *testing.T) {
	svc, _, _, _ := newUserService()
	err := svc.VerifyEmail(context.Background(), "nope")
	if err == nil || err.Error() != "Verification not found" {
		t.Fatalf("err = %v, want Verification not found", err)
	}
}

func TestEditProfileEmailChangeResetsVerification(t *testing.T) {
	svc, users, verifications, mail := newUserService()
	ctx := context.Background()
	_ = svc.CreateAccount(ctx, CreateAccountInput{Email: "a@b.c", Password: "x", Role: domain.RoleClient})

	var code string
	for _, v := range verifications.m {
		code = v.Code
	}
	_ = svc.VerifyEmail(ctx, code)

	if err := svc.EditProfile(ctx, 1, EditProfileInput{Email: "new@b.c"}); err != nil {
		t.Fatalf("EditProfile: %v", err)
	}
	u, _ := users.GetByID(ctx, 1)
	if u.Email != "new@b.c" {
		t.Fatalf("email = %q", u.Email)
	}
	if u.Verified {
		t.Fatal("verified flag must reset on email change")
	}
	if len(verifications.m) != 1 {
		t.Fatalf("verifications = %d, want a fresh one", len(verifications.m))
	}
	if len(mail.sent) != 2 {
		t.Fatalf("mail.sent = %v, want second verification mail", mail.sent)
	}
}
