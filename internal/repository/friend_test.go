package repository

import (
	"context"
	"regexp"
	"testing"

	"gamenexus/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestFriendRepository_GetBetweenUsers(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewFriendRepository(db)
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "user_one_id", "user_two_id", "status", "action_user_id"}).
			AddRow(5, 1, 2, "pending", 1)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "friendships" WHERE (user_one_id = $1 AND user_two_id = $2) OR (user_one_id = $3 AND user_two_id = $4) ORDER BY "friendships"."id" LIMIT $5`)).
			WithArgs(1, 2, 2, 1, 1).
			WillReturnRows(rows)

		f, err := repo.GetBetweenUsers(ctx, 1, 2)
		require.NoError(t, err)
		require.NotNil(t, f)
		assert.Equal(t, models.FriendshipStatusPending, f.Status)
		assert.Equal(t, uint(1), f.UserOneID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Missing Is Nil", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "friendships"`)).
			WithArgs(3, 4, 4, 3, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		f, err := repo.GetBetweenUsers(ctx, 3, 4)
		require.NoError(t, err)
		assert.Nil(t, f)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestFriendRepository_DeletePendingBySender(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewFriendRepository(db)
	ctx := context.Background()

	t.Run("Deleted", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "friendships" WHERE user_one_id = $1 AND user_two_id = $2 AND status = $3`)).
			WithArgs(1, 2, "pending").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		deleted, err := repo.DeletePendingBySender(ctx, 1, 2)
		require.NoError(t, err)
		assert.True(t, deleted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("No Matching Row", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "friendships"`)).
			WithArgs(2, 1, "pending").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		deleted, err := repo.DeletePendingBySender(ctx, 2, 1)
		require.NoError(t, err)
		assert.False(t, deleted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestFriendRepository_GetIncoming(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewFriendRepository(db)
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"friendship_id", "sender_id", "nickname", "avatar_url"}).
		AddRow(9, 4, "Luigi", nil).
		AddRow(8, 3, "Mario", nil)
	mock.ExpectQuery(regexp.QuoteMeta(`JOIN users ON users.id = friendships.user_one_id`)).
		WithArgs(2, "pending").
		WillReturnRows(rows)

	reqs, err := repo.GetIncoming(ctx, 2)
	require.NoError(t, err)
	require.Len(t, reqs, 2)
	assert.Equal(t, uint(9), reqs[0].FriendshipID)
	assert.Equal(t, "Luigi", reqs[0].Nickname)
	assert.NoError(t, mock.ExpectationsWereMet())
}
