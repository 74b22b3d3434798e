package util

import (
	"context"

	"github.com/RoyceAzure/lab/shopcenter/internal/constants"
	"github.com/RoyceAzure/rj/api/token"
)

// GetTokenPayloadFromContext 從請求上下文中獲取token payload
//
// 參數:
//   - ctx: 包含token payload的上下文
//
// 返回值:
//   - *token.Payload[T]: token payload, 不存在時為nil
func GetTokenPayloadFromContext[T token.UserIDConstraint](ctx context.Context) *token.Payload[T] {
	var tokenPayload *token.Payload[T]

	if v := ctx.Value(constants.AuthorizationPayloadKey); v != nil {
		tokenPayload = v.(*token.Payload[T])
	}

	return tokenPayload
}
