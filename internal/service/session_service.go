package service

import (
	"context"
	"errors"
	"time"

	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shopcenter/internal/model"
	er "github.com/RoyceAzure/rj/util/rj_error"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ISessionService interface {
	// CreateSession 創建新的會話記錄
	//
	// 錯誤:
	//   - er.InternalErrorCode 500: 資料庫操作錯誤
	CreateSession(ctx context.Context, session *model.UserSession) (*model.UserSession, error)
	// 可能的錯誤:
	//   - er.DataNotExistsCode 462: 會話不存在
	//   - er.InternalErrorCode 500: 資料庫操作錯誤
	GetSessionByRefreshToken(ctx context.Context, refreshToken string) (*model.UserSession, error)
	// RotateSessionToken 換發refresh token並更新會話
	RotateSessionToken(ctx context.Context, sessionID uuid.UUID, refreshToken string, expiresAt time.Time) error
	RevokeSession(ctx context.Context, sessionID uuid.UUID) error
	DeleteExpiredSessions(ctx context.Context) error
}

// SessionService 實現會話服務
type SessionService struct {
	dbDao db.UnifiedDB
}

// NewSessionService 創建新的會話服務實例
func NewSessionService(dbDao db.UnifiedDB) ISessionService {
	return &SessionService{
		dbDao: dbDao,
	}
}

func (s *SessionService) CreateSession(ctx context.Context, session *model.UserSession) (*model.UserSession, error) {
	created, err := s.dbDao.CreateSession(ctx, session)
	if err != nil {
		return nil, er.New(er.InternalErrorCode, err.Error())
	}
	return created, nil
}

func (s *SessionService) GetSessionByRefreshToken(ctx context.Context, refreshToken string) (*model.UserSession, error) {
	session, err := s.dbDao.GetSessionByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, er.New(er.DataNotExistsCode, err.Error())
		}
		return nil, er.New(er.InternalErrorCode, err.Error())
	}
	return session, nil
}

func (s *SessionService) RotateSessionToken(ctx context.Context, sessionID uuid.UUID, refreshToken string, expiresAt time.Time) error {
	err := s.dbDao.UpdateSessionToken(ctx, sessionID, refreshToken, expiresAt)
	if err != nil {
		return er.New(er.InternalErrorCode, err.Error())
	}
	return nil
}

// RevokeSession 撤銷指定的會話
func (s *SessionService) RevokeSession(ctx context.Context, sessionID uuid.UUID) error {
	return s.dbDao.RevokeSession(ctx, sessionID)
}

// DeleteExpiredSessions 刪除所有過期的會話
func (s *SessionService) DeleteExpiredSessions(ctx context.Context) error {
	return s.dbDao.DeleteExpiredSessions(ctx)
}

var _ ISessionService = (*SessionService)(nil)
