package server

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"sync/atomic"

	"github.com/desertthunder/ytfolder/internal/shared"
	"golang.org/x/oauth2"
)

const callbackPath = "/callback"

var page = template.Must(template.New("callback").Parse(`<!DOCTYPE html>
<html>
<head><title>ytfolder: {{.Heading}}</title></head>
<body style="font-family: sans-serif; text-align: center; margin-top: 20vh">
<h1 style="color: {{.Color}}">{{.Heading}}</h1>
<p>{{.Detail}}</p>
</body>
</html>
`))

type pageData struct {
	Heading string
	Detail  string
	Color   string
}

// OAuthResult is the outcome of one loopback redirect: a token or an error.
type OAuthResult struct {
	Token *oauth2.Token
	err   error
}

func (o OAuthResult) Error() error {
	return o.err
}

// Exchanger trades an authorization code for a token.
type Exchanger interface {
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
}

// OAuthHandler accepts the first redirect to /callback and delivers its outcome on [OAuthHandler.Result].
// Later redirects are rejected.
type OAuthHandler struct {
	exchanger Exchanger
	state     string
	claimed   atomic.Bool
	results   chan OAuthResult
}

// NewOAuthHandler creates a handler expecting state back from the consent page.
func NewOAuthHandler(exchanger Exchanger, state string) *OAuthHandler {
	return &OAuthHandler{
		exchanger: exchanger,
		state:     state,
		results:   make(chan OAuthResult, 1),
	}
}

func (h *OAuthHandler) Routes() []string {
	return []string{callbackPath}
}

func (h *OAuthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !h.claimed.CompareAndSwap(false, true) {
		http.Error(w, "callback already handled", http.StatusBadRequest)
		return
	}

	token, status, err := h.authorize(r)
	h.results <- OAuthResult{Token: token, err: err}
	close(h.results)

	data := pageData{
		Heading: "Authorization Successful",
		Detail:  "ytfolder can now publish playlists. Return to the terminal.",
		Color:   "#04B575",
	}
	if err != nil {
		data = pageData{Heading: "Authorization Failed", Detail: err.Error(), Color: "#FF0033"}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	page.Execute(w, data)
}

// authorize checks the redirect and exchanges its code, returning the HTTP status to answer with.
func (h *OAuthHandler) authorize(r *http.Request) (*oauth2.Token, int, error) {
	q := r.URL.Query()

	if state := q.Get("state"); state == "" || state != h.state {
		return nil, http.StatusBadRequest, fmt.Errorf("%w: invalid state parameter", shared.ErrAuthFailed)
	}

	code := q.Get("code")
	if code == "" {
		return nil, http.StatusBadRequest, fmt.Errorf("%w: %s %s", shared.ErrAuthFailed, q.Get("error"), q.Get("error_description"))
	}

	token, err := h.exchanger.Exchange(r.Context(), code)
	if err != nil {
		return nil, http.StatusInternalServerError, fmt.Errorf("%w: token exchange failed: %v", shared.ErrAuthFailed, err)
	}
	return token, http.StatusOK, nil
}

// Result receives exactly one result, then is closed.
func (h *OAuthHandler) Result() <-chan OAuthResult {
	return h.results
}
