package shield

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// Flash message types.
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

const flashCookie = "pb_flash"

// Flash moves the flash cookie, if any, into the request context under
// FlashKey and clears it. Cookie values are "<type>:<message>".
func Flash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(flashCookie)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		http.SetCookie(w, &http.Cookie{Name: flashCookie, MaxAge: -1, Path: "/"})

		raw, _ := url.QueryUnescape(cookie.Value)
		flash := &FlashMessage{Type: FlashError, Message: raw}
		if kind, msg, ok := strings.Cut(raw, ":"); ok && (kind == FlashSuccess || kind == FlashError) {
			flash.Type = kind
			flash.Message = msg
		}

		ctx := context.WithValue(r.Context(), FlashKey, flash)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SetFlash sets the flash cookie read by Flash on the next request.
// The cookie is HttpOnly and SameSite=Lax with a 10-second TTL.
func SetFlash(w http.ResponseWriter, flashType, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(flashType + ":" + message),
		Path:     "/",
		MaxAge:   10,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
