package service

import (
	"context"
	"errors"
	"time"

	"github.com/RoyceAzure/lab/shopcenter/internal/constants"
	"github.com/RoyceAzure/lab/shopcenter/internal/model"
	"github.com/RoyceAzure/lab/shopcenter/internal/util"
	"github.com/RoyceAzure/rj/api/token"
	"github.com/RoyceAzure/rj/util/crypt"
	er "github.com/RoyceAzure/rj/util/rj_error"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IAuthService interface {
	// Register 使用者以email與密碼註冊帳號
	//
	// 參數:
	//   - ctx: 上下文，包含請求相關資訊
	//   - arg: 註冊資訊(名稱, email, 密碼明文)
	//
	// 返回值:
	//   - *model.User: 創建後的使用者
	//   - error: 可能發生的錯誤
	//
	// 錯誤:
	//   - er.InvalidOperationCode 405: email已被註冊
	//   - er.InvalidArgumentCode 460: 輸入不合法
	//   - er.InternalErrorCode 500: 資料庫操作錯誤
	Register(ctx context.Context, arg *model.RegisterUserModel) (*model.User, error)
	// Login 使用email與密碼登入
	//
	// 返回值:
	//   - *model.LoginResponseModel: 包含訪問令牌、刷新令牌和用戶資訊的響應模型
	//
	// 錯誤:
	//   - er.UnauthenticatedCode 401: 帳號不存在或密碼錯誤
	//   - er.UserDisabledCode 471: 帳號未啟用
	//   - er.InternalErrorCode 500: 令牌或會話創建錯誤
	Login(ctx context.Context, email, password string) (*model.LoginResponseModel, error)
	// AdminLogin 管理員登入, 流程同Login, 但非管理員帳號會被拒絕
	//
	// 錯誤:
	//   - er.UnauthenticatedCode 401: 帳號不存在或密碼錯誤
	//   - er.UnauthorizedCode 403: 非管理員帳號
	//   - er.UserDisabledCode 471: 帳號未啟用
	AdminLogin(ctx context.Context, email, password string) (*model.LoginResponseModel, error)
	// ReNewToken 使用刷新令牌換發新的令牌對
	//
	// 流程說明:
	//  1. 驗證刷新令牌的有效性(過期與格式錯誤為不同錯誤訊息)
	//  2. 檢查用戶是否有效
	//  3. 檢查會話是否存在且有效
	//  4. 確認提供的刷新令牌與會話中存儲的一致
	//  5. 創建新的令牌對並更新會話
	//
	// 錯誤:
	//   - er.UnauthenticatedCode 401: 刷新令牌無效或已過期
	//   - er.UnauthorizedCode 403: 用戶無權限或會話被撤銷
	//   - er.InternalErrorCode 500: 內部處理錯誤
	ReNewToken(ctx context.Context, refreshToken string) (*model.LoginResponseModel, error)
	// Logout 使用刷新令牌登出並撤銷用戶會話
	//
	// 錯誤:
	//   - er.UnauthenticatedCode 401: 刷新令牌無效或格式錯誤
	//   - er.UnauthorizedCode 403: 找不到對應的會話
	//   - er.InternalErrorCode 500: 撤銷會話時發生內部錯誤
	Logout(ctx context.Context, refreshToken string) error
	// Me 取得當前登入user資訊
	// 錯誤:
	//   - er.UnauthorizedCode 403: 未授權
	Me(ctx context.Context) (*model.User, error)
	CreateAccessToken(ctx context.Context, upn string, userID uuid.UUID) (string, *token.Payload[uuid.UUID], error)
}

type AuthService struct {
	userService    IUserService
	sessionService ISessionService
	tokenMaker     token.Maker[uuid.UUID]
}

var (
	ErrSessionExpired = errors.New("session has expired")
	ErrSessionRevoked = errors.New("session has been revoked")
)

func NewAuthService(userService IUserService, sessionService ISessionService, tokenMaker token.Maker[uuid.UUID]) IAuthService {
	if userService == nil {
		panic("auth service initialization failed: userService cannot be nil")
	}
	if sessionService == nil {
		panic("auth service initialization failed: sessionService cannot be nil")
	}
	if tokenMaker == nil {
		panic("auth service initialization failed: tokenMaker cannot be nil")
	}

	return &AuthService{
		userService:    userService,
		sessionService: sessionService,
		tokenMaker:     tokenMaker,
	}
}

func (a *AuthService) Register(ctx context.Context, arg *model.RegisterUserModel) (*model.User, error) {
	return a.userService.CreateUser(ctx, arg)
}

func (a *AuthService) Login(ctx context.Context, email, password string) (*model.LoginResponseModel, error) {
	user, err := a.checkCredentials(ctx, email, password)
	if err != nil {
		return nil, err
	}

	return a.createLoginSession(ctx, user)
}

func (a *AuthService) AdminLogin(ctx context.Context, email, password string) (*model.LoginResponseModel, error) {
	user, err := a.checkCredentials(ctx, email, password)
	if err != nil {
		return nil, err
	}

	if !user.IsAdmin {
		return nil, er.New(er.UnauthorizedCode, "admin privileges required")
	}

	return a.createLoginSession(ctx, user)
}

// checkCredentials 驗證帳號密碼與帳號狀態
// 帳號不存在與密碼錯誤回傳相同錯誤, 不洩漏帳號是否存在
//
// 錯誤:
//   - er.UnauthenticatedCode 401: 帳號不存在或密碼錯誤
//   - er.UserDisabledCode 471: 帳號未啟用
func (a *AuthService) checkCredentials(ctx context.Context, email, password string) (*model.User, error) {
	user, err := a.userService.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, er.New(er.UnauthenticatedCode, "invalid email or password")
		}
		return nil, er.New(er.InternalErrorCode, err.Error())
	}

	if err := crypt.CheckPassword(password, user.PasswordHash); err != nil {
		return nil, er.New(er.UnauthenticatedCode, "invalid email or password")
	}

	if !user.IsActive {
		return nil, er.New(er.UserDisabledCode, "account is not active")
	}

	return user, nil
}

// CheckUserValidate 驗證User合法性
//
// 錯誤:
//   - UserNotFoundCode 470: 用戶不存在
//   - UserDisabledCode 471: 用戶已禁用
func (a *AuthService) CheckUserValidate(ctx context.Context, email string) (*model.User, error) {
	user, err := a.userService.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, er.New(er.UserNotFoundCode, err.Error())
	}

	if !user.IsActive {
		return nil, er.New(er.UserDisabledCode, "user is not active")
	}

	return user, nil
}

// ValidateSession 檢查用戶會話是否有效
func (a *AuthService) ValidateSession(session *model.UserSession) error {
	if session.RevokedAt != nil && !session.RevokedAt.IsZero() {
		return er.New(er.UnauthorizedCode, ErrSessionRevoked.Error())
	}

	if !session.ExpiresAt.IsZero() && time.Now().After(session.ExpiresAt) {
		return er.New(er.UnauthorizedCode, ErrSessionExpired.Error())
	}

	if !session.IsActive {
		return er.New(er.UnauthorizedCode, ErrSessionRevoked.Error())
	}

	return nil
}

func (a *AuthService) ReNewToken(ctx context.Context, refreshToken string) (*model.LoginResponseModel, error) {
	payload, err := a.tokenMaker.VertifyToken(refreshToken)
	if err != nil {
		// 過期與格式錯誤為可區分的結果
		if errors.Is(err, token.ErrExpiredToken) {
			return nil, er.New(er.UnauthenticatedCode, "token expired")
		}
		return nil, er.New(er.UnauthenticatedCode, "token invalid")
	}

	//檢查使用者合法性
	user, err := a.CheckUserValidate(ctx, payload.UPN)
	if err != nil {
		return nil, er.New(er.UnauthorizedCode, "unauthorized")
	}

	//檢查session存在
	session, err := a.sessionService.GetSessionByRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, er.New(er.UnauthorizedCode, "unauthorized")
	}

	//檢查session合法
	if err := a.ValidateSession(session); err != nil {
		a.sessionService.RevokeSession(ctx, session.ID)
		return nil, er.New(er.UnauthorizedCode, "unauthorized")
	}

	//檢查refreshtoken 重放攻擊
	if refreshToken != session.RefreshToken {
		a.sessionService.RevokeSession(ctx, session.ID)
		return nil, er.New(er.UnauthorizedCode, "unauthorized")
	}

	accessToken, _, err := a.CreateAccessToken(ctx, user.Email, user.ID)
	if err != nil {
		return nil, er.New(er.InternalErrorCode, err.Error())
	}

	refreshTokenDur := time.Duration(constants.RefreshTokenDuration) * time.Hour
	newRefreshToken, _, err := a.tokenMaker.CreateToken(user.Email, user.ID, refreshTokenDur)
	if err != nil {
		return nil, er.New(er.InternalErrorCode, err.Error())
	}

	//換發refresh token並更新session
	err = a.sessionService.RotateSessionToken(ctx, session.ID, newRefreshToken, time.Now().UTC().Add(refreshTokenDur))
	if err != nil {
		return nil, er.New(er.InternalErrorCode, err.Error())
	}

	return &model.LoginResponseModel{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
		User:         *user,
	}, nil
}

func (a *AuthService) CreateAccessToken(ctx context.Context, upn string, userID uuid.UUID) (string, *token.Payload[uuid.UUID], error) {
	return a.tokenMaker.CreateToken(upn, userID, time.Duration(constants.AccessTokenDuration)*time.Hour)
}

func (a *AuthService) Logout(ctx context.Context, refreshToken string) error {
	// 驗證刷新令牌的格式和簽名，但可以忽略過期時間
	payload, err := a.tokenMaker.VertifyToken(refreshToken)
	if err != nil && !errors.Is(err, token.ErrExpiredToken) {
		return er.New(er.UnauthenticatedCode, "unauthenticated")
	}

	// 查找對應的會話
	session, err := a.sessionService.GetSessionByRefreshToken(ctx, refreshToken)
	if err != nil {
		return er.New(er.UnauthorizedCode, "session not found")
	}

	// 驗證會話屬於當前用戶
	if payload.UserId != session.UserID {
		return er.New(er.UnauthorizedCode, "unauthorized")
	}

	// 撤銷會話
	err = a.sessionService.RevokeSession(ctx, session.ID)
	if err != nil {
		return er.New(er.InternalErrorCode, "failed to revoke session")
	}

	return nil
}

func (a *AuthService) Me(ctx context.Context) (*model.User, error) {
	payload := util.GetTokenPayloadFromContext[uuid.UUID](ctx)
	if payload == nil {
		return nil, er.New(er.UnauthorizedCode, "unauthorized")
	}

	user, err := a.userService.GetUserByID(ctx, payload.UserId)
	if err != nil {
		return nil, er.New(er.UnauthorizedCode, "unauthorized")
	}

	return user, nil
}

// createLoginSession 創建會話並簽發令牌對
// 錯誤:
//   - er.InternalErrorCode 500: access token創建錯誤
//   - er.InternalErrorCode 500: refresh token創建錯誤
//   - er.InternalErrorCode 500: user session創建錯誤
func (a *AuthService) createLoginSession(ctx context.Context, user *model.User) (*model.LoginResponseModel, error) {
	accessToken, _, err := a.tokenMaker.CreateToken(user.Email, user.ID, time.Duration(constants.AccessTokenDuration)*time.Hour)
	if err != nil {
		return nil, er.New(er.InternalErrorCode, "created accessToken failed")
	}

	refreshTokenDur := time.Duration(constants.RefreshTokenDuration) * time.Hour
	refreshToken, _, err := a.tokenMaker.CreateToken(user.Email, user.ID, refreshTokenDur)
	if err != nil {
		return nil, er.New(er.InternalErrorCode, "created refreshToken failed")
	}

	_, err = a.sessionService.CreateSession(ctx, &model.UserSession{
		ID:           uuid.New(),
		UserID:       user.ID,
		RefreshToken: refreshToken,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
		ExpiresAt:    time.Now().UTC().Add(refreshTokenDur),
	})
	if err != nil {
		return nil, er.New(er.InternalErrorCode, "created user session failed")
	}

	return &model.LoginResponseModel{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         *user,
	}, nil
}

var _ IAuthService = (*AuthService)(nil)
