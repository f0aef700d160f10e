package service

import (
	"context"
	"errors"
	"testing"

	"gamenexus/internal/models"
)

type friendRepoStub struct {
	createFn                func(context.Context, *models.Friendship) error
	getBetweenUsersFn       func(context.Context, uint, uint) (*models.Friendship, error)
	getIncomingFn           func(context.Context, uint) ([]models.IncomingRequest, error)
	getFriendsFn            func(context.Context, uint) ([]models.UserSummary, error)
	deletePendingBySenderFn func(context.Context, uint, uint) (bool, error)
}

func (s *friendRepoStub) Create(ctx context.Context, friendship *models.Friendship) error {
	return s.createFn(ctx, friendship)
}
func (s *friendRepoStub) GetBetweenUsers(ctx context.Context, userID1, userID2 uint) (*models.Friendship, error) {
	return s.getBetweenUsersFn(ctx, userID1, userID2)
}
func (s *friendRepoStub) GetIncoming(ctx context.Context, userID uint) ([]models.IncomingRequest, error) {
	return s.getIncomingFn(ctx, userID)
}
func (s *friendRepoStub) GetFriends(ctx context.Context, userID uint) ([]models.UserSummary, error) {
	return s.getFriendsFn(ctx, userID)
}
func (s *friendRepoStub) DeletePendingBySender(ctx context.Context, senderID, receiverID uint) (bool, error) {
	return s.deletePendingBySenderFn(ctx, senderID, receiverID)
}

type userRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
	updateFn        func(context.Context, *models.User) error
	topByPointsFn   func(context.Context, int) ([]models.UserSummaryWithPoints, error)
	searchFn        func(context.Context, uint, string, int) ([]models.UserSearchResult, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) TopByPoints(ctx context.Context, limit int) ([]models.UserSummaryWithPoints, error) {
	return s.topByPointsFn(ctx, limit)
}
func (s *userRepoStub) Search(ctx context.Context, viewerID uint, query string, limit int) ([]models.UserSearchResult, error) {
	return s.searchFn(ctx, viewerID, query, limit)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:       func(context.Context, uint) (*models.User, error) { return &models.User{}, nil },
		getByEmailFn:    func(context.Context, string) (*models.User, error) { return &models.User{}, nil },
		getByUsernameFn: func(context.Context, string) (*models.User, error) { return &models.User{}, nil },
		createFn:        func(context.Context, *models.User) error { return nil },
		updateFn:        func(context.Context, *models.User) error { return nil },
		topByPointsFn: func(context.Context, int) ([]models.UserSummaryWithPoints, error) {
			return nil, nil
		},
		searchFn: func(context.Context, uint, string, int) ([]models.UserSearchResult, error) {
			return nil, nil
		},
	}
}

func noopFriendRepo() *friendRepoStub {
	return &friendRepoStub{
		createFn:                func(context.Context, *models.Friendship) error { return nil },
		getBetweenUsersFn:       func(context.Context, uint, uint) (*models.Friendship, error) { return nil, nil },
		getIncomingFn:           func(context.Context, uint) ([]models.IncomingRequest, error) { return nil, nil },
		getFriendsFn:            func(context.Context, uint) ([]models.UserSummary, error) { return nil, nil },
		deletePendingBySenderFn: func(context.Context, uint, uint) (bool, error) { return true, nil },
	}
}

func assertAppErrCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != code {
		t.Fatalf("expected %s app error, got %#v", code, err)
	}
}

func TestFriendServiceSendRequestSelf(t *testing.T) {
	svc := NewFriendService(noopFriendRepo(), noopUserRepo(), nil)
	_, err := svc.SendRequest(context.Background(), 3, 3)
	assertAppErrCode(t, err, models.CodeSelfReference)
}

func TestFriendServiceSendRequestUnknownReceiver(t *testing.T) {
	users := noopUserRepo()
	users.getByIDFn = func(context.Context, uint) (*models.User, error) {
		return nil, models.NewNotFoundError("User")
	}
	svc := NewFriendService(noopFriendRepo(), users, nil)
	_, err := svc.SendRequest(context.Background(), 1, 99)
	assertAppErrCode(t, err, models.CodeNotFound)
}

func TestFriendServiceSendRequestExistingRowConflicts(t *testing.T) {
	for _, status := range []models.FriendshipStatus{
		models.FriendshipStatusPending,
		models.FriendshipStatusAccepted,
	} {
		repo := noopFriendRepo()
		repo.getBetweenUsersFn = func(context.Context, uint, uint) (*models.Friendship, error) {
			return &models.Friendship{ID: 7, UserOneID: 2, UserTwoID: 1, Status: status}, nil
		}
		svc := NewFriendService(repo, noopUserRepo(), nil)
		_, err := svc.SendRequest(context.Background(), 1, 2)
		assertAppErrCode(t, err, models.CodeConflict)
	}
}

func TestFriendServiceSendRequestStoresSenderFirst(t *testing.T) {
	var created *models.Friendship
	repo := noopFriendRepo()
	repo.createFn = func(_ context.Context, f *models.Friendship) error {
		created = f
		return nil
	}
	svc := NewFriendService(repo, noopUserRepo(), nil)

	f, err := svc.SendRequest(context.Background(), 4, 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created == nil {
		t.Fatal("expected Create to be called")
	}
	if f.UserOneID != 4 || f.UserTwoID != 9 {
		t.Fatalf("expected sender-first row, got user_one=%d user_two=%d", f.UserOneID, f.UserTwoID)
	}
	if f.ActionUserID != 4 {
		t.Fatalf("expected action user to be the sender, got %d", f.ActionUserID)
	}
	if f.Status != models.FriendshipStatusPending {
		t.Fatalf("expected pending status, got %q", f.Status)
	}
}

func TestFriendServiceCancelRequestMiss(t *testing.T) {
	repo := noopFriendRepo()
	repo.deletePendingBySenderFn = func(context.Context, uint, uint) (bool, error) { return false, nil }
	svc := NewFriendService(repo, noopUserRepo(), nil)

	err := svc.CancelRequest(context.Background(), 2, 1)
	assertAppErrCode(t, err, models.CodeNotFound)
}

func TestFriendServiceRespondRejectsUnknownAction(t *testing.T) {
	svc := NewFriendService(noopFriendRepo(), noopUserRepo(), nil)
	_, err := svc.Respond(context.Background(), 1, 5, "block")
	assertAppErrCode(t, err, models.CodeValidation)
}
