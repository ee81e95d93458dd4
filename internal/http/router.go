package http

import (
	"encoding/json"
	"net/http"
	"time"

	"workout-tracker/backend/internal/config"
	"workout-tracker/backend/internal/domain/invite"
	"workout-tracker/backend/internal/domain/profile"
	"workout-tracker/backend/internal/httpjson"
	"workout-tracker/backend/internal/middleware"
	"workout-tracker/backend/internal/remote"

	"firebase.google.com/go/v4/auth"
	"github.com/go-chi/chi/v5"
)

type RouterDeps struct {
	Cfg        config.Config
	AuthClient *auth.Client
	ProfileSvc *profile.Service
	InviteSvc  *invite.Service
}

func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.CORS(d.Cfg.AllowedOrigins))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		WriteJSON(w, 200, map[string]any{"ok": true, "ts": time.Now().UTC().Format(time.RFC3339)})
	})

	// The signup endpoints manage their own token handling: the invite
	// route accepts the dev persona token before any verification.
	r.Post("/api/create-profile", d.handleCreateProfile)
	r.Post("/api/invite", d.handleInvite)

	r.Group(func(pr chi.Router) {
		pr.Use(middleware.WithAuth(d.AuthClient))

		pr.Get("/v1/me", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())
			WriteJSON(w, 200, map[string]any{
				"uid":    au.UID,
				"email":  au.Email,
				"claims": au.Claims,
			})
		})
	})

	return r
}

func (d RouterDeps) verifyToken(w http.ResponseWriter, r *http.Request) (*auth.Token, bool) {
	idToken := middleware.BearerToken(r)
	if idToken == "" {
		Fail(w, 401, "Unauthorized")
		return nil, false
	}

	tok, err := d.AuthClient.VerifyIDToken(r.Context(), idToken)
	if err != nil {
		if auth.IsIDTokenExpired(err) {
			Fail(w, 401, "Authentication token has expired.")
			return nil, false
		}
		Fail(w, 401, "invalid token")
		return nil, false
	}
	return tok, true
}

func (d RouterDeps) handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	tok, ok := d.verifyToken(w, r)
	if !ok {
		return
	}

	var in profile.CreateProfileInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		Fail(w, 400, "invalid json")
		return
	}

	req := profile.Requester{UID: tok.UID}
	if v, ok := tok.Claims["email"].(string); ok {
		req.Email = v
	}
	if v, ok := tok.Claims["name"].(string); ok {
		req.Name = v
	}
	if v, ok := tok.Claims["picture"].(string); ok {
		req.Picture = v
	}

	if err := d.ProfileSvc.Create(r.Context(), req, in); err != nil {
		switch {
		case profile.IsErrBadRequest(err):
			Fail(w, 400, "Missing profile data.")
		case profile.IsErrAlreadyExists(err):
			Fail(w, 409, "User profile already exists.")
		case profile.IsErrInvalidInvite(err):
			httpjson.ErrorCode(w, 400, "invalid_invite", "This invitation is invalid or has already been used.")
		case profile.IsErrInvitationRequired(err):
			httpjson.ErrorCode(w, 403, "invitation_required", "An invitation is required to sign up.")
		case remote.IsPermissionDenied(err):
			Fail(w, 403, "Document store permission denied. Check your rules.")
		default:
			Fail(w, 500, "Internal Server Error: "+err.Error())
		}
		return
	}

	WriteJSON(w, 200, map[string]any{"success": true})
}

func (d RouterDeps) handleInvite(w http.ResponseWriter, r *http.Request) {
	idToken := middleware.BearerToken(r)
	if idToken == "" {
		Fail(w, 401, "Unauthorized")
		return
	}

	// Dev personas get a throwaway invite id without touching the store.
	if idToken == "dev-token" {
		id, err := invite.DevInviteID()
		if err != nil {
			Fail(w, 500, "Internal Server Error")
			return
		}
		WriteJSON(w, 200, map[string]any{"success": true, "inviteId": id})
		return
	}

	tok, ok := d.verifyToken(w, r)
	if !ok {
		return
	}

	id, err := d.InviteSvc.Issue(r.Context(), tok.UID)
	if err != nil {
		if invite.IsErrForbidden(err) {
			Fail(w, 403, "Forbidden: User is not an admin.")
			return
		}
		Fail(w, 500, "Internal Server Error: "+err.Error())
		return
	}

	WriteJSON(w, 200, map[string]any{"success": true, "inviteId": id})
}
