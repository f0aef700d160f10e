package service

import (
	"context"
	"testing"

	"gamenexus/internal/models"

	"golang.org/x/crypto/bcrypt"
)

func hashFor(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	return string(hash)
}

func TestUserServiceLoginWrongPassword(t *testing.T) {
	users := noopUserRepo()
	users.getByUsernameFn = func(context.Context, string) (*models.User, error) {
		return &models.User{
			ID:           1,
			Username:     "player1",
			PasswordHash: hashFor(t, "correct horse 1"),
			Status:       models.UserStatusActive,
		}, nil
	}
	svc := NewUserService(users)

	_, err := svc.Login(context.Background(), "player1", "wrong")
	assertAppErrCode(t, err, models.CodeUnauthorized)
}

func TestUserServiceLoginUnknownUser(t *testing.T) {
	users := noopUserRepo()
	users.getByUsernameFn = func(context.Context, string) (*models.User, error) { return nil, nil }
	svc := NewUserService(users)

	_, err := svc.Login(context.Background(), "nobody", "whatever1")
	assertAppErrCode(t, err, models.CodeUnauthorized)
}

func TestUserServiceLoginLockedAccount(t *testing.T) {
	password := "rightpass1"
	users := noopUserRepo()
	users.getByUsernameFn = func(context.Context, string) (*models.User, error) {
		return &models.User{
			ID:           2,
			Username:     "banned",
			PasswordHash: hashFor(t, password),
			Status:       models.UserStatusLocked,
		}, nil
	}
	svc := NewUserService(users)

	// Even the right password does not get a locked account in.
	_, err := svc.Login(context.Background(), "banned", password)
	assertAppErrCode(t, err, models.CodeForbidden)
}

func TestUserServiceLoginSuccess(t *testing.T) {
	password := "rightpass1"
	users := noopUserRepo()
	users.getByUsernameFn = func(context.Context, string) (*models.User, error) {
		return &models.User{
			ID:           3,
			Username:     "legit",
			PasswordHash: hashFor(t, password),
			Status:       models.UserStatusActive,
		}, nil
	}
	svc := NewUserService(users)

	user, err := svc.Login(context.Background(), "legit", password)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != 3 {
		t.Fatalf("expected user 3, got %d", user.ID)
	}
}

func TestUserServiceRegisterValidation(t *testing.T) {
	svc := NewUserService(noopUserRepo())
	ctx := context.Background()

	cases := []RegisterInput{
		{Username: "x", Email: "a@b.com", Nickname: "A", Password: "longenough1"},
		{Username: "validname", Email: "not-an-email", Nickname: "A", Password: "longenough1"},
		{Username: "validname", Email: "a@b.com", Nickname: "", Password: "longenough1"},
		{Username: "validname", Email: "a@b.com", Nickname: "A", Password: "short"},
	}
	for _, input := range cases {
		_, err := svc.Register(ctx, input)
		assertAppErrCode(t, err, models.CodeValidation)
	}
}

func TestUserServiceRegisterHashesPassword(t *testing.T) {
	var created *models.User
	users := noopUserRepo()
	users.createFn = func(_ context.Context, u *models.User) error {
		created = u
		return nil
	}
	svc := NewUserService(users)

	_, err := svc.Register(context.Background(), RegisterInput{
		Username: "fresh_player",
		Email:    "fresh@example.com",
		Nickname: "Fresh",
		Password: "longenough1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created == nil {
		t.Fatal("expected Create to be called")
	}
	if created.PasswordHash == "longenough1" || created.PasswordHash == "" {
		t.Fatal("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("longenough1")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if created.Role != models.RoleMember || created.Status != models.UserStatusActive {
		t.Fatalf("expected member/active defaults, got %s/%s", created.Role, created.Status)
	}
}

func TestUserServiceResetPasswordUnknownEmailQuiet(t *testing.T) {
	users := noopUserRepo()
	users.getByEmailFn = func(context.Context, string) (*models.User, error) { return nil, nil }
	updated := false
	users.updateFn = func(context.Context, *models.User) error {
		updated = true
		return nil
	}
	svc := NewUserService(users)

	if err := svc.ResetPasswordByEmail(context.Background(), "ghost@example.com", "newpassword1"); err != nil {
		t.Fatalf("expected quiet success, got %v", err)
	}
	if updated {
		t.Fatal("expected no update for unknown email")
	}
}
