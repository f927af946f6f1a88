package mongo

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/VGOT23/rbac-project/internal/core/domain"
)

func newMock(t *testing.T) *mtest.T {
	return mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
}

func userDoc(id primitive.ObjectID, email string, role domain.Role) bson.D {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "name", Value: "Eve"},
		{Key: "email", Value: email},
		{Key: "password_hash", Value: "hash"},
		{Key: "role", Value: string(role)},
		{Key: "created_at", Value: now},
		{Key: "updated_at", Value: now},
	}
}

func TestUserRepository_FindByEmail(t *testing.T) {
	mt := newMock(t)

	mt.Run("found", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(1, "db.users", mtest.FirstBatch,
			userDoc(id, "editor@example.com", domain.RoleEditor)))

		u, err := NewUserRepository(mt.DB).FindByEmail(context.Background(), "editor@example.com")
		require.NoError(mt, err)
		assert.Equal(mt, id.Hex(), u.ID)
		assert.Equal(mt, domain.RoleEditor, u.Role)
		assert.Equal(mt, "hash", u.PasswordHash)
	})

	mt.Run("not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.users", mtest.FirstBatch))

		_, err := NewUserRepository(mt.DB).FindByEmail(context.Background(), "ghost@example.com")
		assert.ErrorIs(mt, err, domain.ErrUserNotFound)
		assert.ErrorIs(mt, err, domain.ErrNotFound)
	})

	mt.Run("store failure", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code: 91, Name: "ShutdownInProgress", Message: "shutting down",
		}))

		_, err := NewUserRepository(mt.DB).FindByEmail(context.Background(), "x@example.com")
		assert.ErrorIs(mt, err, domain.ErrStoreUnavailable)
		assert.NotErrorIs(mt, err, domain.ErrNotFound)
	})
}

func TestUserRepository_FindByID_InvalidHex(t *testing.T) {
	mt := newMock(t)

	mt.Run("invalid id", func(mt *mtest.T) {
		_, err := NewUserRepository(mt.DB).FindByID(context.Background(), "not-an-object-id")
		assert.ErrorIs(mt, err, domain.ErrUserNotFound)
	})

	// No mock responses are queued: any command reaching the driver would fail
	// with ErrStoreUnavailable instead of NotFound.
	mt.Run("non canonical hex", func(mt *mtest.T) {
		upper := strings.ToUpper(primitive.NewObjectID().Hex())
		repo := NewUserRepository(mt.DB)

		_, err := repo.FindByID(context.Background(), upper)
		assert.ErrorIs(mt, err, domain.ErrUserNotFound)

		_, err = repo.UpdateRole(context.Background(), upper, domain.RoleEditor)
		assert.ErrorIs(mt, err, domain.ErrUserNotFound)

		err = repo.Delete(context.Background(), upper)
		assert.ErrorIs(mt, err, domain.ErrUserNotFound)
	})
}

func TestUserRepository_Create(t *testing.T) {
	mt := newMock(t)

	mt.Run("success", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		u, err := NewUserRepository(mt.DB).Create(context.Background(), &domain.User{
			Name: "Eve", Email: "editor@example.com", PasswordHash: "hash", Role: domain.RoleEditor,
		})
		require.NoError(mt, err)
		assert.True(mt, primitive.IsValidObjectID(u.ID))
		assert.Equal(mt, domain.RoleEditor, u.Role)
	})

	mt.Run("duplicate email", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index: 0, Code: 11000, Message: "duplicate key error",
		}))

		_, err := NewUserRepository(mt.DB).Create(context.Background(), &domain.User{Email: "editor@example.com"})
		assert.ErrorIs(mt, err, domain.ErrUserExists)
	})
}

func TestUserRepository_UpdateRole(t *testing.T) {
	mt := newMock(t)

	mt.Run("updated", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{
			Key: "value", Value: userDoc(id, "editor@example.com", domain.RoleViewer),
		}))

		u, err := NewUserRepository(mt.DB).UpdateRole(context.Background(), id.Hex(), domain.RoleViewer)
		require.NoError(mt, err)
		assert.Equal(mt, domain.RoleViewer, u.Role)
	})

	mt.Run("missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		_, err := NewUserRepository(mt.DB).UpdateRole(context.Background(), primitive.NewObjectID().Hex(), domain.RoleViewer)
		assert.ErrorIs(mt, err, domain.ErrUserNotFound)
	})
}

func TestUserRepository_Delete(t *testing.T) {
	mt := newMock(t)

	mt.Run("deleted", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		err := NewUserRepository(mt.DB).Delete(context.Background(), primitive.NewObjectID().Hex())
		assert.NoError(mt, err)
	})

	mt.Run("already gone", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		err := NewUserRepository(mt.DB).Delete(context.Background(), primitive.NewObjectID().Hex())
		assert.ErrorIs(mt, err, domain.ErrUserNotFound)
	})
}
