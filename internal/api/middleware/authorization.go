package middleware

import (
	"net/http"

	"github.com/RoyceAzure/lab/shopcenter/internal/service"
	"github.com/RoyceAzure/lab/shopcenter/internal/util"
	"github.com/RoyceAzure/rj/api"
	er "github.com/RoyceAzure/rj/util/rj_error"
	"github.com/google/uuid"
)

// AdminMiddleware 管理員授權檢查
// 必須接在AuthMiddleware之後, 以payload的user id查db確認is_admin,
// 不信任token內容, 管理員權限被撤銷後舊token立即失效
func AdminMiddleware(userService service.IUserService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			payload := util.GetTokenPayloadFromContext[uuid.UUID](ctx)
			if payload == nil {
				api.ErrorJSON(w, int(er.UnauthenticatedCode), er.New(er.UnauthenticatedCode, "unauthenticated"), er.ErrStrMap[er.UnauthenticatedCode])
				return
			}

			user, err := userService.GetUserByID(ctx, payload.UserId)
			if err != nil {
				api.ErrorJSON(w, int(er.UnauthorizedCode), er.New(er.UnauthorizedCode, "permission denied"), er.ErrStrMap[er.UnauthorizedCode])
				return
			}
			if !user.IsAdmin {
				api.ErrorJSON(w, int(er.UnauthorizedCode), er.New(er.UnauthorizedCode, "permission denied"), er.ErrStrMap[er.UnauthorizedCode])
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
