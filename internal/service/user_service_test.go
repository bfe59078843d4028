// internal/service/user_service_test.go
package service

import (
	"context"
	"errors"
	"testing"

	"total_recall/internal/model"
	"total_recall/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// --- テストヘルパー関数 ---
// トランザクションのラッパーを動かすためのインメモリDB。
// リポジトリはモックなので実際のSQLは流れない。
func setupTxDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db
}

// --- Test CreateUser ---
func Test_userService_CreateUser(t *testing.T) {
	ctx := context.Background()
	db := setupTxDB(t)
	mockUserRepo := new(mocks.UserRepository)
	userService := NewUserService(db, mockUserRepo)

	req := &model.NewUserRequest{Username: "alice", Password: "secret123"}

	tests := []struct {
		name      string
		setupMock func(m *mocks.UserRepository)
		wantErr   error
	}{
		{
			name: "正常系: ユーザー作成成功",
			setupMock: func(m *mocks.UserRepository) {
				m.On("Create", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.User")).
					Run(func(args mock.Arguments) {
						user := args.Get(2).(*model.User)
						assert.Equal(t, "alice", user.Username)
						// パスワードは平文では保存されない
						assert.NotEqual(t, "secret123", user.Password)
						assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret123")))
						// 作成時は created_at と updated_at が等しい
						assert.Equal(t, user.CreatedAt, user.UpdatedAt)
						assert.NotZero(t, user.CreatedAt)
						user.ID = 1
					}).Return(nil).Once()
				m.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), uint(1)).
					Return(&model.User{ID: 1, Username: "alice"}, nil).Once()
			},
			wantErr: nil,
		},
		{
			name: "異常系: ユーザー名の重複",
			setupMock: func(m *mocks.UserRepository) {
				m.On("Create", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.User")).
					Return(model.ErrConflict).Once()
			},
			wantErr: model.ErrConflict,
		},
		{
			name: "異常系: DBエラーは内部エラーに丸められる",
			setupMock: func(m *mocks.UserRepository) {
				m.On("Create", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.User")).
					Return(errors.New("db error")).Once()
			},
			wantErr: model.ErrInternalServer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUserRepo.Mock = mock.Mock{}
			tt.setupMock(mockUserRepo)

			createdUser, err := userService.CreateUser(ctx, req)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, createdUser)
			} else {
				require.NoError(t, err)
				require.NotNil(t, createdUser)
				assert.Equal(t, "alice", createdUser.Username)
			}
			mockUserRepo.AssertExpectations(t)
		})
	}
}

// --- Test CreateUsers ---
func Test_userService_CreateUsers(t *testing.T) {
	ctx := context.Background()
	db := setupTxDB(t)
	mockUserRepo := new(mocks.UserRepository)
	userService := NewUserService(db, mockUserRepo)

	reqs := []model.NewUserRequest{
		{Username: "alice", Password: "secret123"},
		{Username: "bob", Password: "secret456"},
	}

	t.Run("正常系: バッチ内の全行が同じタイムスタンプを共有する", func(t *testing.T) {
		mockUserRepo.Mock = mock.Mock{}
		mockUserRepo.On("CreateBatch", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("[]*model.User")).
			Run(func(args mock.Arguments) {
				users := args.Get(2).([]*model.User)
				require.Len(t, users, 2)
				assert.Equal(t, users[0].CreatedAt, users[1].CreatedAt)
				assert.Equal(t, users[0].CreatedAt, users[0].UpdatedAt)
				users[0].ID = 1
				users[1].ID = 2
			}).Return(nil).Once()
		mockUserRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), uint(1)).
			Return(&model.User{ID: 1, Username: "alice"}, nil).Once()
		mockUserRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), uint(2)).
			Return(&model.User{ID: 2, Username: "bob"}, nil).Once()

		createdUsers, err := userService.CreateUsers(ctx, reqs)

		require.NoError(t, err)
		require.Len(t, createdUsers, 2)
		mockUserRepo.AssertExpectations(t)
	})

	t.Run("異常系: 重複があればバッチ全体が失敗する", func(t *testing.T) {
		mockUserRepo.Mock = mock.Mock{}
		mockUserRepo.On("CreateBatch", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("[]*model.User")).
			Return(model.ErrConflict).Once()

		createdUsers, err := userService.CreateUsers(ctx, reqs)

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrConflict)
		assert.Nil(t, createdUsers)
		mockUserRepo.AssertExpectations(t)
	})
}

// --- Test UpdatePassword ---
func Test_userService_UpdatePassword(t *testing.T) {
	ctx := context.Background()
	db := setupTxDB(t)
	mockUserRepo := new(mocks.UserRepository)
	userService := NewUserService(db, mockUserRepo)

	callerID := uint(1)
	otherID := uint(2)
	req := &model.PatchUserRequest{Password: "newsecret"}

	tests := []struct {
		name      string
		callerID  *uint
		userID    uint
		setupMock func(m *mocks.UserRepository)
		wantErr   error
	}{
		{
			name:     "正常系: 本人によるパスワード変更",
			callerID: &callerID,
			userID:   1,
			setupMock: func(m *mocks.UserRepository) {
				m.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), uint(1)).
					Return(&model.User{ID: 1, Username: "alice"}, nil).Twice()
				m.On("UpdatePassword", ctx, mock.AnythingOfType("*gorm.DB"), uint(1), mock.AnythingOfType("string"), mock.AnythingOfType("int64")).
					Run(func(args mock.Arguments) {
						hash := args.Get(3).(string)
						assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("newsecret")))
					}).Return(nil).Once()
			},
			wantErr: nil,
		},
		{
			name:     "異常系: 他人のパスワードは変更できない",
			callerID: &otherID,
			userID:   1,
			setupMock: func(m *mocks.UserRepository) {
				m.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), uint(1)).
					Return(&model.User{ID: 1, Username: "alice"}, nil).Once()
			},
			wantErr: model.ErrUnauthorized,
		},
		{
			name:     "異常系: 匿名は拒否される",
			callerID: nil,
			userID:   1,
			setupMock: func(m *mocks.UserRepository) {
				m.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), uint(1)).
					Return(&model.User{ID: 1, Username: "alice"}, nil).Once()
			},
			wantErr: model.ErrUnauthorized,
		},
		{
			name:     "異常系: 対象ユーザーが存在しない",
			callerID: &callerID,
			userID:   99,
			setupMock: func(m *mocks.UserRepository) {
				m.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), uint(99)).
					Return(nil, model.ErrNotFound).Once()
			},
			wantErr: model.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUserRepo.Mock = mock.Mock{}
			tt.setupMock(mockUserRepo)

			updatedUser, err := userService.UpdatePassword(ctx, tt.callerID, tt.userID, req)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, updatedUser)
			} else {
				require.NoError(t, err)
				require.NotNil(t, updatedUser)
			}
			mockUserRepo.AssertExpectations(t)
		})
	}
}

// --- Test DeleteUser ---
func Test_userService_DeleteUser(t *testing.T) {
	ctx := context.Background()
	db := setupTxDB(t)
	mockUserRepo := new(mocks.UserRepository)
	userService := NewUserService(db, mockUserRepo)

	callerID := uint(1)
	otherID := uint(2)

	t.Run("正常系: 本人による削除は削除行数を返す", func(t *testing.T) {
		mockUserRepo.Mock = mock.Mock{}
		mockUserRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), uint(1)).
			Return(&model.User{ID: 1, Username: "alice"}, nil).Once()
		mockUserRepo.On("Delete", ctx, mock.AnythingOfType("*gorm.DB"), uint(1)).
			Return(int64(1), nil).Once()

		count, err := userService.DeleteUser(ctx, &callerID, 1)

		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
		mockUserRepo.AssertExpectations(t)
	})

	t.Run("異常系: 他人のアカウントは削除できない", func(t *testing.T) {
		mockUserRepo.Mock = mock.Mock{}
		mockUserRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), uint(1)).
			Return(&model.User{ID: 1, Username: "alice"}, nil).Once()

		count, err := userService.DeleteUser(ctx, &otherID, 1)

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrUnauthorized)
		assert.Zero(t, count)
		mockUserRepo.AssertExpectations(t)
	})

	t.Run("正常系: 削除済みアカウントへの再削除は0件を返す", func(t *testing.T) {
		mockUserRepo.Mock = mock.Mock{}
		mockUserRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), uint(1)).
			Return(nil, model.ErrNotFound).Once()

		count, err := userService.DeleteUser(ctx, &callerID, 1)

		require.NoError(t, err)
		assert.Zero(t, count)
		mockUserRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	})
}
