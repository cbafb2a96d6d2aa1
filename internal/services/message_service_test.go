package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yukikurage/microblog-app/internal/constants"
	"github.com/yukikurage/microblog-app/internal/models"
)

func TestMessageService_Create(t *testing.T) {
	env := setupUserTestEnv(t)

	message, err := env.messageService.Create(env.u1.ID, "Test Text")
	require.NoError(t, err)
	require.NotZero(t, message.ID)
	require.Equal(t, "Test Text", message.Text)
	require.Equal(t, env.u1.ID, message.UserID)
}

func TestMessageService_CreateEmpty(t *testing.T) {
	env := setupUserTestEnv(t)

	_, err := env.messageService.Create(env.u1.ID, "   ")
	require.ErrorIs(t, err, models.ErrMessageTextEmpty)

	var count int64
	require.NoError(t, env.db.Model(&models.Message{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestMessageService_CreateTooLong(t *testing.T) {
	env := setupUserTestEnv(t)

	_, err := env.messageService.Create(env.u1.ID, strings.Repeat("a", constants.MaxMessageLength+1))
	require.ErrorIs(t, err, models.ErrMessageTextTooLong)

	var count int64
	require.NoError(t, env.db.Model(&models.Message{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestMessageService_CreateAtLimit(t *testing.T) {
	env := setupUserTestEnv(t)

	_, err := env.messageService.Create(env.u1.ID, strings.Repeat("a", constants.MaxMessageLength))
	require.NoError(t, err)
}

func TestMessageService_Get(t *testing.T) {
	env := setupUserTestEnv(t)

	created, err := env.messageService.Create(env.u1.ID, "m1-text")
	require.NoError(t, err)

	message, err := env.messageService.Get(created.ID)
	require.NoError(t, err)
	require.Equal(t, "m1-text", message.Text)
	require.Equal(t, "u1", message.User.Username)

	_, err = env.messageService.Get(987654321)
	require.ErrorIs(t, err, ErrMessageNotFound)
}

func TestMessageService_Delete(t *testing.T) {
	env := setupUserTestEnv(t)

	message, err := env.messageService.Create(env.u1.ID, "soon gone")
	require.NoError(t, err)
	_, err = env.messageService.ToggleLike(env.u2.ID, message.ID)
	require.NoError(t, err)

	require.NoError(t, env.messageService.Delete(message.ID, env.u1.ID))

	_, err = env.messageService.Get(message.ID)
	require.ErrorIs(t, err, ErrMessageNotFound)

	// No orphaned likes
	var likes int64
	require.NoError(t, env.db.Model(&models.Like{}).Count(&likes).Error)
	require.Zero(t, likes)
}

func TestMessageService_DeleteNotOwner(t *testing.T) {
	env := setupUserTestEnv(t)

	message, err := env.messageService.Create(env.u1.ID, "m1-text")
	require.NoError(t, err)

	require.ErrorIs(t, env.messageService.Delete(message.ID, env.u2.ID), ErrNotMessageOwner)

	// Message survives the denied attempt
	_, err = env.messageService.Get(message.ID)
	require.NoError(t, err)
}

func TestMessageService_ToggleLike(t *testing.T) {
	env := setupUserTestEnv(t)

	message, err := env.messageService.Create(env.u1.ID, "likeable")
	require.NoError(t, err)

	// An odd number of toggles leaves the edge present, an even number
	// removes it
	for i := 1; i <= 5; i++ {
		liked, err := env.messageService.ToggleLike(env.u2.ID, message.ID)
		require.NoError(t, err)
		require.Equal(t, i%2 == 1, liked)

		count, err := env.messageService.LikeCount(message.ID)
		require.NoError(t, err)
		require.EqualValues(t, i%2, count)
	}
}

func TestMessageService_ToggleLikeOwnMessage(t *testing.T) {
	env := setupUserTestEnv(t)

	message, err := env.messageService.Create(env.u1.ID, "mine")
	require.NoError(t, err)

	_, err = env.messageService.ToggleLike(env.u1.ID, message.ID)
	require.ErrorIs(t, err, ErrOwnMessageLike)
}

func TestMessageService_ToggleLikeUnknownMessage(t *testing.T) {
	env := setupUserTestEnv(t)

	_, err := env.messageService.ToggleLike(env.u1.ID, 987654321)
	require.ErrorIs(t, err, ErrMessageNotFound)
}

func TestMessageService_Timeline(t *testing.T) {
	env := setupUserTestEnv(t)

	u3, err := env.authService.Signup(SignupInput{Username: "u3", Email: "u3@email.com", Password: "password"})
	require.NoError(t, err)

	_, err = env.messageService.Create(env.u1.ID, "from u1")
	require.NoError(t, err)
	_, err = env.messageService.Create(env.u2.ID, "from u2")
	require.NoError(t, err)
	_, err = env.messageService.Create(u3.ID, "from u3")
	require.NoError(t, err)

	require.NoError(t, env.userService.Follow(env.u1.ID, env.u2.ID))

	// Timeline holds own messages plus followed users', not strangers'
	messages, err := env.messageService.Timeline(env.u1.ID)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	for _, m := range messages {
		require.NotEqual(t, u3.ID, m.UserID)
	}
}

func TestMessageService_ListLiked(t *testing.T) {
	env := setupUserTestEnv(t)

	m1, err := env.messageService.Create(env.u1.ID, "first")
	require.NoError(t, err)
	_, err = env.messageService.Create(env.u1.ID, "second")
	require.NoError(t, err)

	_, err = env.messageService.ToggleLike(env.u2.ID, m1.ID)
	require.NoError(t, err)

	liked, err := env.messageService.ListLiked(env.u2.ID)
	require.NoError(t, err)
	require.Len(t, liked, 1)
	require.Equal(t, m1.ID, liked[0].ID)

	ids, err := env.messageService.ListLikedIDs(env.u2.ID)
	require.NoError(t, err)
	require.Equal(t, []uint64{m1.ID}, ids)
}
