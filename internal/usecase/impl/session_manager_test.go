package impl

import (
	"context"
	"testing"

	"ecofinds/internal/domain/entity"
	domainerrors "ecofinds/internal/domain/errors"
	"ecofinds/internal/domain/repository"
	mockRepo "ecofinds/internal/mocks/repository"
	"ecofinds/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSessionManager_Login_Success(t *testing.T) {
	fx := createTestManagers(t)
	ctx := context.Background()

	user, err := fx.session.Login(ctx, &usecase.LoginInput{Email: " ann@example.com ", Username: "ann"})
	require.NoError(t, err)
	assert.Equal(t, &entity.User{Email: "ann@example.com", Username: "ann"}, user)

	raw, err := fx.store.Get(ctx, "user")
	require.NoError(t, err)
	assert.JSONEq(t, `{"email":"ann@example.com","username":"ann"}`, raw)
}

func TestSessionManager_Login_Overwrites(t *testing.T) {
	fx := createTestManagers(t)
	ctx := context.Background()

	_, err := fx.session.Login(ctx, &usecase.LoginInput{Email: "ann@example.com", Username: "ann"})
	require.NoError(t, err)
	_, err = fx.session.Login(ctx, &usecase.LoginInput{Email: "bob@example.com", Username: "bob"})
	require.NoError(t, err)

	user, err := fx.session.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "bob", user.Username)
	assert.Len(t, fx.store.Snapshot(), 1)
}

func TestSessionManager_Login_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input usecase.LoginInput
	}{
		{name: "empty email", input: usecase.LoginInput{Email: "", Username: "ann"}},
		{name: "empty username", input: usecase.LoginInput{Email: "ann@example.com", Username: ""}},
		{name: "blank fields", input: usecase.LoginInput{Email: "  ", Username: "\t"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestManagers(t)

			user, err := fx.session.Login(context.Background(), &tt.input)
			assert.Nil(t, user)
			assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
			assert.Empty(t, fx.store.Snapshot())
		})
	}
}

func TestSessionManager_Logout_KeepsCollections(t *testing.T) {
	fx := createTestManagers(t)
	ctx := context.Background()

	_, err := fx.session.Login(ctx, &usecase.LoginInput{Email: "ann@example.com", Username: "ann"})
	require.NoError(t, err)
	_, err = fx.catalog.Create(ctx, &entity.ProductDraft{Title: "Chair", Price: "10", Category: "Other"})
	require.NoError(t, err)

	require.NoError(t, fx.session.Logout(ctx))

	_, err = fx.session.CurrentUser(ctx)
	assert.ErrorIs(t, err, domainerrors.ErrNoSession)

	products, err := fx.catalog.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, products, 1)
}

func TestSessionManager_CurrentUser_StoreFailure(t *testing.T) {
	txManager := mockRepo.NewMockTransactionManager(t)
	session := NewSessionManager(SessionManagerParams{TxManager: txManager, Logger: newDiscardLogger()})

	ctx := context.Background()
	storeErr := domainerrors.NewStoreExecuteError(errors.New("disk gone"), "failed to read user")
	txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Return(storeErr)

	user, err := session.CurrentUser(ctx)
	assert.Nil(t, user)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domainerrors.ErrNoSession)

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "STORE_EXECUTE_FAILED", appErr.ErrorCode())
}

func TestSessionManager_Logout_PropagatesStoreFailure(t *testing.T) {
	txManager := mockRepo.NewMockTransactionManager(t)
	session := NewSessionManager(SessionManagerParams{TxManager: txManager, Logger: newDiscardLogger()})

	ctx := context.Background()
	txManager.EXPECT().
		Execute(ctx, mock.Anything).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			return assert.AnError
		})

	err := session.Logout(ctx)
	assert.ErrorIs(t, err, assert.AnError)
}
