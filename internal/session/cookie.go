package session

import (
	"net/http"
	"time"
)

// SetCookie выставляет сессионную cookie с токеном.
// Атрибуты фиксированы: path=/, httpOnly, secure, sameSite=lax.
func SetCookie(w http.ResponseWriter, name, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie удаляет сессионную cookie на стороне клиента.
func ClearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}

// TokenFromRequest извлекает сессионный токен из cookie запроса.
// Отсутствие cookie возвращает пустую строку.
func TokenFromRequest(r *http.Request, name string) string {
	cookie, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}
