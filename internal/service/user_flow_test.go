package service

import (
	"context"
	"testing"

	"gamenexus/internal/cache"
	"gamenexus/internal/models"
	"gamenexus/internal/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// withTestCache points the cache package at a throwaway redis so the
// cache-aside paths are actually exercised. Restored on cleanup so the
// other tests keep running with the nil-client bypass.
func withTestCache(t *testing.T) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache.SetClient(client)
	t.Cleanup(func() { cache.SetClient(nil) })
}

func TestLikePointsSurviveProfileUpdate(t *testing.T) {
	db := setupServiceTestDB(t)
	ctx := context.Background()
	withTestCache(t)

	author := seedUser(t, db, "cached_author")
	liker := seedUser(t, db, "cached_liker")
	post := seedPost(t, db, author, "clutch round")

	userRepo := repository.NewUserRepository(db)
	users := NewUserService(userRepo)
	interactions := NewInteractionService(repository.NewPostRepository(db), repository.NewCommentRepository(db), db)

	// Warm the author's cache entry before any likes land.
	if _, err := users.Me(ctx, author.ID); err != nil {
		t.Fatalf("prime cache: %v", err)
	}

	if _, err := interactions.ToggleLike(ctx, liker.ID, post.ID); err != nil {
		t.Fatalf("toggle like: %v", err)
	}

	if _, err := users.UpdateAvatar(ctx, author.ID, "https://img.example/new.webp"); err != nil {
		t.Fatalf("update avatar: %v", err)
	}

	var refreshed models.User
	if err := db.First(&refreshed, author.ID).Error; err != nil {
		t.Fatal(err)
	}
	if refreshed.Points != 1 {
		t.Fatalf("expected points to survive the avatar update, got %d", refreshed.Points)
	}
	if refreshed.AvatarURL == nil || *refreshed.AvatarURL != "https://img.example/new.webp" {
		t.Fatalf("expected avatar to be updated, got %v", refreshed.AvatarURL)
	}

	// The refreshed cache entry carries the new points too.
	me, err := users.Me(ctx, author.ID)
	if err != nil {
		t.Fatal(err)
	}
	if me.Points != 1 {
		t.Fatalf("expected cached profile to show 1 point, got %d", me.Points)
	}
}

func TestProfileWriteNeverTouchesPoints(t *testing.T) {
	db := setupServiceTestDB(t)
	ctx := context.Background()
	withTestCache(t)

	user := seedUser(t, db, "busy_author")

	userRepo := repository.NewUserRepository(db)
	users := NewUserService(userRepo)

	// Warm the cache, then move points underneath it, as a concurrent like
	// toggle would.
	if _, err := users.Me(ctx, user.ID); err != nil {
		t.Fatal(err)
	}
	if err := db.Model(&models.User{}).Where("id = ?", user.ID).
		Update("points", 5).Error; err != nil {
		t.Fatal(err)
	}

	bio := "grinding ranked"
	if _, err := users.UpdateProfile(ctx, user.ID, UpdateProfileInput{Bio: &bio}); err != nil {
		t.Fatalf("update profile: %v", err)
	}

	var refreshed models.User
	if err := db.First(&refreshed, user.ID).Error; err != nil {
		t.Fatal(err)
	}
	if refreshed.Points != 5 {
		t.Fatalf("expected profile write to leave points at 5, got %d", refreshed.Points)
	}
	if refreshed.Bio == nil || *refreshed.Bio != bio {
		t.Fatalf("expected bio to be updated, got %v", refreshed.Bio)
	}
}

func TestUpdateProfileFieldRules(t *testing.T) {
	t.Parallel()
	db := setupServiceTestDB(t)
	ctx := context.Background()

	user := seedUser(t, db, "profile_editor")
	users := NewUserService(repository.NewUserRepository(db))

	// No fields at all is rejected.
	_, err := users.UpdateProfile(ctx, user.ID, UpdateProfileInput{})
	assertAppErrCode(t, err, models.CodeValidation)

	// A malformed email is rejected before anything is written.
	bad := "not-an-email"
	_, err = users.UpdateProfile(ctx, user.ID, UpdateProfileInput{Email: &bad})
	assertAppErrCode(t, err, models.CodeValidation)

	email := "new-address@example.com"
	updated, err := users.UpdateProfile(ctx, user.ID, UpdateProfileInput{Email: &email})
	if err != nil {
		t.Fatalf("update email: %v", err)
	}
	if updated.Email != email {
		t.Fatalf("expected email %q, got %q", email, updated.Email)
	}

	var refreshed models.User
	if err := db.First(&refreshed, user.ID).Error; err != nil {
		t.Fatal(err)
	}
	if refreshed.Email != email {
		t.Fatalf("expected persisted email %q, got %q", email, refreshed.Email)
	}
}

func TestSearchFriendshipAnnotationsAndOrdering(t *testing.T) {
	t.Parallel()
	db := setupServiceTestDB(t)
	ctx := context.Background()

	viewer := seedUser(t, db, "viewer")
	exact := seedUser(t, db, "gamer")
	partial := seedUser(t, db, "agamer")

	// Pending request sent by the viewer to the exact match.
	if err := db.Create(&models.Friendship{
		UserOneID:    viewer.ID,
		UserTwoID:    exact.ID,
		Status:       models.FriendshipStatusPending,
		ActionUserID: viewer.ID,
	}).Error; err != nil {
		t.Fatal(err)
	}

	users := NewUserService(repository.NewUserRepository(db))

	results, err := users.Search(ctx, viewer.ID, "gamer")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 hits, got %d", len(results))
	}

	// Exact nickname match sorts first even though "agamer" precedes it
	// alphabetically.
	if results[0].Nickname != "gamer" {
		t.Fatalf("expected exact match first, got %q", results[0].Nickname)
	}

	first := results[0]
	if first.FriendshipID == nil || first.FriendshipStatus == nil || first.ActionUserID == nil {
		t.Fatalf("expected friendship annotations on %q, got %+v", first.Nickname, first)
	}
	if *first.FriendshipStatus != string(models.FriendshipStatusPending) {
		t.Fatalf("expected pending status, got %q", *first.FriendshipStatus)
	}
	if *first.ActionUserID != viewer.ID {
		t.Fatalf("expected action user %d (request sent by viewer), got %d", viewer.ID, *first.ActionUserID)
	}

	second := results[1]
	if second.ID != partial.ID || second.Nickname != "agamer" {
		t.Fatalf("expected substring match second, got %q", second.Nickname)
	}
	if second.FriendshipID != nil || second.FriendshipStatus != nil || second.ActionUserID != nil {
		t.Fatalf("expected no friendship annotations on %q, got %+v", second.Nickname, second)
	}
}
