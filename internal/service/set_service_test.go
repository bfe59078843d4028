// internal/service/set_service_test.go
package service

import (
	"context"
	"testing"

	"total_recall/internal/model"
	"total_recall/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func Test_setService_CreateSet(t *testing.T) {
	ctx := context.Background()
	db := setupTxDB(t)

	callerID := uint(7)
	req := &model.NewSetRequest{Name: "Morning review", Deck: 10, Cards: []uint{30, 31}}

	t.Run("正常系: セットと結合行が同一トランザクションで作られる", func(t *testing.T) {
		mockSetRepo := new(mocks.SetRepository)
		setService := NewSetService(db, mockSetRepo)

		mockSetRepo.On("Create", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.Set")).
			Run(func(args mock.Arguments) {
				set := args.Get(2).(*model.Set)
				assert.Equal(t, "Morning review", set.Name)
				assert.Equal(t, uint(10), set.DeckID)
				// 所有者は強制的に呼び出し元になる
				assert.Equal(t, callerID, set.Owner)
				assert.NotZero(t, set.CreatedAt)
				set.ID = 60
			}).Return(nil).Once()
		mockSetRepo.On("AddCards", ctx, mock.AnythingOfType("*gorm.DB"), uint(60), []uint{30, 31}).
			Return(nil).Once()
		mockSetRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), uint(60)).
			Return(&model.Set{ID: 60, Name: "Morning review", DeckID: 10, Owner: callerID}, nil).Once()

		set, err := setService.CreateSet(ctx, &callerID, req)

		require.NoError(t, err)
		require.NotNil(t, set)
		assert.Equal(t, callerID, set.Owner)
		mockSetRepo.AssertExpectations(t)
	})

	t.Run("異常系: 匿名は作成できない", func(t *testing.T) {
		mockSetRepo := new(mocks.SetRepository)
		setService := NewSetService(db, mockSetRepo)

		set, err := setService.CreateSet(ctx, nil, req)

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrUnauthorized)
		assert.Nil(t, set)
		mockSetRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})
}

func Test_setService_CreateSets(t *testing.T) {
	ctx := context.Background()
	db := setupTxDB(t)

	callerID := uint(7)
	reqs := []model.NewSetRequest{
		{Name: "Morning", Deck: 10, Cards: []uint{30}},
		{Name: "Evening", Deck: 10, Cards: []uint{31, 32}},
	}

	t.Run("正常系: 各セットの結合行がリクエスト順に対応付く", func(t *testing.T) {
		mockSetRepo := new(mocks.SetRepository)
		setService := NewSetService(db, mockSetRepo)

		mockSetRepo.On("CreateBatch", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("[]*model.Set")).
			Run(func(args mock.Arguments) {
				sets := args.Get(2).([]*model.Set)
				require.Len(t, sets, 2)
				assert.Equal(t, sets[0].CreatedAt, sets[1].CreatedAt)
				sets[0].ID = 1
				sets[1].ID = 2
			}).Return(nil).Once()
		mockSetRepo.On("AddCards", ctx, mock.AnythingOfType("*gorm.DB"), uint(1), []uint{30}).
			Return(nil).Once()
		mockSetRepo.On("AddCards", ctx, mock.AnythingOfType("*gorm.DB"), uint(2), []uint{31, 32}).
			Return(nil).Once()
		mockSetRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), uint(1)).
			Return(&model.Set{ID: 1, Name: "Morning", Owner: callerID}, nil).Once()
		mockSetRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), uint(2)).
			Return(&model.Set{ID: 2, Name: "Evening", Owner: callerID}, nil).Once()

		sets, err := setService.CreateSets(ctx, &callerID, reqs)

		require.NoError(t, err)
		require.Len(t, sets, 2)
		mockSetRepo.AssertExpectations(t)
	})
}

func Test_setService_UpdateSet(t *testing.T) {
	ctx := context.Background()
	db := setupTxDB(t)

	owner := uint(7)
	stranger := uint(8)
	req := &model.PatchSetRequest{Name: "Renamed"}

	t.Run("正常系: 所有者による名前変更", func(t *testing.T) {
		mockSetRepo := new(mocks.SetRepository)
		setService := NewSetService(db, mockSetRepo)

		mockSetRepo.On("FindOwner", ctx, mock.AnythingOfType("*gorm.DB"), uint(60)).
			Return(owner, nil).Once()
		mockSetRepo.On("UpdateName", ctx, mock.AnythingOfType("*gorm.DB"), uint(60), "Renamed").
			Return(nil).Once()
		mockSetRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), uint(60)).
			Return(&model.Set{ID: 60, Name: "Renamed", Owner: owner}, nil).Once()

		set, err := setService.UpdateSet(ctx, &owner, 60, req)

		require.NoError(t, err)
		require.NotNil(t, set)
		assert.Equal(t, "Renamed", set.Name)
		mockSetRepo.AssertExpectations(t)
	})

	t.Run("異常系: 他人のセットは変更できない", func(t *testing.T) {
		mockSetRepo := new(mocks.SetRepository)
		setService := NewSetService(db, mockSetRepo)

		mockSetRepo.On("FindOwner", ctx, mock.AnythingOfType("*gorm.DB"), uint(60)).
			Return(owner, nil).Once()

		set, err := setService.UpdateSet(ctx, &stranger, 60, req)

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrUnauthorized)
		assert.Nil(t, set)
		mockSetRepo.AssertNotCalled(t, "UpdateName", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func Test_setService_DeleteSet(t *testing.T) {
	ctx := context.Background()
	db := setupTxDB(t)

	owner := uint(7)

	t.Run("正常系: 所有者による削除は削除行数を返す", func(t *testing.T) {
		mockSetRepo := new(mocks.SetRepository)
		setService := NewSetService(db, mockSetRepo)

		mockSetRepo.On("FindOwner", ctx, mock.AnythingOfType("*gorm.DB"), uint(60)).
			Return(owner, nil).Once()
		mockSetRepo.On("Delete", ctx, mock.AnythingOfType("*gorm.DB"), uint(60)).
			Return(int64(1), nil).Once()

		count, err := setService.DeleteSet(ctx, &owner, 60)

		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
		mockSetRepo.AssertExpectations(t)
	})

	t.Run("正常系: 存在しないセットの削除は0件を返す", func(t *testing.T) {
		mockSetRepo := new(mocks.SetRepository)
		setService := NewSetService(db, mockSetRepo)

		mockSetRepo.On("FindOwner", ctx, mock.AnythingOfType("*gorm.DB"), uint(99)).
			Return(uint(0), model.ErrNotFound).Once()

		count, err := setService.DeleteSet(ctx, &owner, 99)

		require.NoError(t, err)
		assert.Zero(t, count)
		mockSetRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("異常系: 匿名による存在しないセットの削除は拒否される", func(t *testing.T) {
		mockSetRepo := new(mocks.SetRepository)
		setService := NewSetService(db, mockSetRepo)

		mockSetRepo.On("FindOwner", ctx, mock.AnythingOfType("*gorm.DB"), uint(99)).
			Return(uint(0), model.ErrNotFound).Once()

		count, err := setService.DeleteSet(ctx, nil, 99)

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrUnauthorized)
		assert.Zero(t, count)
	})
}
