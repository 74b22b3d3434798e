package db

import (
	"context"
	"time"

	"github.com/RoyceAzure/lab/shopcenter/internal/model"
	"github.com/google/uuid"
)

type SessionRepo struct {
	dbDao *DbDao
}

func NewSessionRepo(dbDao *DbDao) *SessionRepo {
	return &SessionRepo{dbDao: dbDao}
}

// Create - 創建會話
func (s *SessionRepo) CreateSession(ctx context.Context, session *model.UserSession) (*model.UserSession, error) {
	if err := s.dbDao.WithContext(ctx).Create(session).Error; err != nil {
		return nil, err
	}
	return session, nil
}

// Read - 根據refresh token查詢會話
func (s *SessionRepo) GetSessionByRefreshToken(ctx context.Context, refreshToken string) (*model.UserSession, error) {
	var session model.UserSession
	err := s.dbDao.WithContext(ctx).Where("refresh_token = ?", refreshToken).First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// Update - 撤銷會話
func (s *SessionRepo) RevokeSession(ctx context.Context, sessionID uuid.UUID) error {
	now := time.Now().UTC()
	return s.dbDao.WithContext(ctx).Model(&model.UserSession{}).
		Where("id = ?", sessionID).
		Updates(map[string]interface{}{"is_active": false, "revoked_at": now}).Error
}

// Update - 更新會話refresh token
func (s *SessionRepo) UpdateSessionToken(ctx context.Context, sessionID uuid.UUID, refreshToken string, expiresAt time.Time) error {
	return s.dbDao.WithContext(ctx).Model(&model.UserSession{}).
		Where("id = ?", sessionID).
		Updates(map[string]interface{}{"refresh_token": refreshToken, "expires_at": expiresAt}).Error
}

// Delete - 刪除過期會話
func (s *SessionRepo) DeleteExpiredSessions(ctx context.Context) error {
	return s.dbDao.WithContext(ctx).Where("expires_at < ?", time.Now().UTC()).
		Delete(&model.UserSession{}).Error
}
