package middleware

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/avdmitr/BCA-BookingChecker/internal/api/handlers"
	"github.com/avdmitr/BCA-BookingChecker/internal/domain"
)

const msgAdminOnly = "требуются права администратора"

// UserProvider источник данных о пользователях для проверки прав
type UserProvider interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// AdminOnly пропускает только пользователей с флагом is_admin.
// Должен стоять после Auth - берет ID пользователя из контекста.
func AdminOnly(users UserProvider, logger Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := GetUserID(r.Context())
			if !ok {
				handlers.RespondUnauthorized(w, msgMissingUserID)
				return
			}

			user, err := users.GetByID(r.Context(), userID)
			if err != nil {
				logger.Warn("AdminOnly - Failed to get user: user_id=%d, error=%v", userID, err)
				handlers.RespondForbidden(w, msgAdminOnly)
				return
			}

			if !user.IsAdmin {
				logger.Warn("AdminOnly - Access denied for non-admin: user_id=%d", userID)
				handlers.RespondForbidden(w, msgAdminOnly)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
