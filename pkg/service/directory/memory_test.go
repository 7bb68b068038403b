package directory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/skoll/pkg/domain/model"
	"github.com/secmon-lab/skoll/pkg/domain/types"
	"github.com/secmon-lab/skoll/pkg/service/directory"
)

func addUser(t *testing.T, dir *directory.Memory, email string, grants ...*model.OAuthGrant) {
	t.Helper()
	user, err := model.NewDirectoryUser(types.Email(email), "")
	gt.NoError(t, err)
	dir.AddUser(user, grants...)
}

func TestMemory_ListUsers(t *testing.T) {
	ctx := context.Background()
	dir := directory.NewMemory()
	addUser(t, dir, "a@example.com")
	addUser(t, dir, "b@example.com")
	addUser(t, dir, "c@example.com")

	t.Run("returns all users within the limit", func(t *testing.T) {
		users, err := dir.ListUsers(ctx, "my_customer", 10)
		gt.NoError(t, err)
		gt.Equal(t, len(users), 3)
		gt.Equal(t, users[0].PrimaryEmail, types.Email("a@example.com"))
	})

	t.Run("truncates to max results", func(t *testing.T) {
		users, err := dir.ListUsers(ctx, "my_customer", 2)
		gt.NoError(t, err)
		gt.Equal(t, len(users), 2)
	})

	t.Run("rejects non-positive max results", func(t *testing.T) {
		_, err := dir.ListUsers(ctx, "my_customer", 0)
		gt.Error(t, err)
	})

	t.Run("injected error", func(t *testing.T) {
		failing := directory.NewMemory()
		failing.SetUsersError(model.ErrPermissionDenied)
		_, err := failing.ListUsers(ctx, "my_customer", 10)
		gt.Error(t, err)
		gt.True(t, errors.Is(err, model.ErrPermissionDenied))
	})
}

func TestMemory_ListGrants(t *testing.T) {
	ctx := context.Background()
	dir := directory.NewMemory()
	addUser(t, dir, "a@example.com",
		&model.OAuthGrant{ClientID: "X"},
		&model.OAuthGrant{ClientID: "Y"},
	)

	t.Run("returns grants with owner set", func(t *testing.T) {
		grants, err := dir.ListGrants(ctx, "a@example.com")
		gt.NoError(t, err)
		gt.Equal(t, len(grants), 2)
		gt.Equal(t, grants[0].OwnerEmail, types.Email("a@example.com"))
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := dir.ListGrants(ctx, "ghost@example.com")
		gt.Error(t, err)
		gt.True(t, errors.Is(err, model.ErrUserNotFound))
	})
}

func TestMemory_RevokeGrant(t *testing.T) {
	ctx := context.Background()
	dir := directory.NewMemory()
	addUser(t, dir, "a@example.com", &model.OAuthGrant{ClientID: "X"})

	gt.NoError(t, dir.RevokeGrant(ctx, "a@example.com", "X"))

	grants, err := dir.ListGrants(ctx, "a@example.com")
	gt.NoError(t, err)
	gt.Equal(t, len(grants), 0)

	// Second revocation finds nothing
	err = dir.RevokeGrant(ctx, "a@example.com", "X")
	gt.Error(t, err)
	gt.True(t, errors.Is(err, model.ErrGrantNotFound))
}
