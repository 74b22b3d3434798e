package service

import (
	"context"
	"errors"
	"time"

	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shopcenter/internal/model"
	"github.com/RoyceAzure/rj/util/crypt"
	er "github.com/RoyceAzure/rj/util/rj_error"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IUserService interface {
	// CreateUser 創建用戶, email必須未被註冊過
	//
	// 錯誤:
	//   - er.InvalidOperationCode 405: email已被註冊
	//   - er.InvalidArgumentCode 460: 密碼強度不足
	//   - er.InternalErrorCode 500: 資料庫操作錯誤
	CreateUser(ctx context.Context, arg *model.RegisterUserModel) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

type UserService struct {
	dbDao db.UnifiedDB
}

func NewUserService(dbDao db.UnifiedDB) IUserService {
	return &UserService{
		dbDao: dbDao,
	}
}

func (u *UserService) CreateUser(ctx context.Context, arg *model.RegisterUserModel) (*model.User, error) {
	if arg.Email == "" || arg.Password == "" {
		return nil, er.New(er.InvalidArgumentCode, "email or password is empty")
	}

	if err := crypt.ValidateStringPassword(arg.Password); err != nil {
		return nil, er.New(er.InvalidArgumentCode, err.Error())
	}

	// 檢查email是否已存在
	existingUser, err := u.GetUserByEmail(ctx, arg.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, er.New(er.InternalErrorCode, err.Error())
	}
	if existingUser != nil {
		return nil, er.New(er.InvalidOperationCode, "email already in use")
	}

	hashPassword, err := crypt.HashPassword(arg.Password)
	if err != nil {
		return nil, er.New(er.InternalErrorCode, "hash password failed")
	}

	user, err := u.dbDao.CreateUser(ctx, &model.User{
		ID:           uuid.New(),
		Email:        arg.Email,
		Name:         arg.Name,
		PasswordHash: hashPassword,
		IsAdmin:      false,
		IsActive:     true,
		BaseModel: model.BaseModel{
			CreatedAt: time.Now().UTC(),
		},
	})
	if err != nil {
		return nil, er.New(er.InternalErrorCode, err.Error())
	}

	return user, nil
}

func (u *UserService) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return u.dbDao.GetUserByEmail(ctx, email)
}

func (u *UserService) GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return u.dbDao.GetUserByID(ctx, id)
}

var _ IUserService = (*UserService)(nil)
