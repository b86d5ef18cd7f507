package server

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
)

const flashCookie = "aceest_flash"

const (
	flashSuccess = "success"
	flashError   = "error"
)

// flash is a one-shot notice shown on the next page render.
type flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

func readFlashes(r *http.Request) []flash {
	c, err := r.Cookie(flashCookie)
	if err != nil {
		return nil
	}
	data, err := base64.RawURLEncoding.DecodeString(c.Value)
	if err != nil {
		return nil
	}
	var flashes []flash
	if err := json.Unmarshal(data, &flashes); err != nil {
		return nil
	}
	return flashes
}

// addFlash queues a notice, keeping any already pending on the request.
func addFlash(w http.ResponseWriter, r *http.Request, category, msg string) {
	flashes := append(readFlashes(r), flash{Category: category, Message: msg})
	data, err := json.Marshal(flashes)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    base64.RawURLEncoding.EncodeToString(data),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlashes returns pending notices and clears the cookie.
func popFlashes(w http.ResponseWriter, r *http.Request) []flash {
	flashes := readFlashes(r)
	if _, err := r.Cookie(flashCookie); err == nil {
		http.SetCookie(w, &http.Cookie{
			Name:     flashCookie,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return flashes
}
