package service

import (
	"context"
	"log"
	"net/http"

	"github.com/mineboard/mineboard/internal/domain"
	"github.com/mineboard/mineboard/internal/transport/discord"
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "session_id"

// DiscordGateway is the slice of the bot client the auth layer needs.
type DiscordGateway interface {
	RequestAuth(ctx context.Context, userID, userName string) ([]byte, error)
	CheckAuth(ctx context.Context, token string) (*discord.CheckResult, error)
	Members(ctx context.Context) ([]discord.Member, error)
}

type AuthService struct {
	sessions *SessionService
	gateway  DiscordGateway
}

type UserInfo struct {
	Authenticated bool    `json:"authenticated"`
	UserID        string  `json:"userId,omitempty"`
	UserName      string  `json:"userName,omitempty"`
	Avatar        *string `json:"avatar"`
}

func NewAuthService(sessions *SessionService, gateway DiscordGateway) *AuthService {
	return &AuthService{sessions: sessions, gateway: gateway}
}

// Authenticate extracts the session cookie and validates it. A missing or
// malformed cookie is an anonymous request, not an error.
func (s *AuthService) Authenticate(ctx context.Context, r *http.Request) (*domain.SessionInfo, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil, nil
	}
	return s.sessions.ValidateAndTouch(ctx, cookie.Value)
}

// UserInfo resolves the logged-in user plus a display avatar from the guild
// roster. The roster lookup is best-effort: any failure degrades to a nil
// avatar rather than failing the request.
func (s *AuthService) UserInfo(ctx context.Context, r *http.Request) (*UserInfo, error) {
	info, err := s.Authenticate(ctx, r)
	if err != nil {
		return nil, err
	}
	if info == nil {
		return &UserInfo{Authenticated: false}, nil
	}

	result := &UserInfo{
		Authenticated: true,
		UserID:        info.UserID,
		UserName:      info.UserName,
	}

	members, err := s.gateway.Members(ctx)
	if err != nil {
		log.Printf("user-info: roster lookup failed: %v", err)
		return result, nil
	}
	for _, member := range members {
		if member.ID == info.UserID {
			result.Avatar = member.Avatar
			break
		}
	}
	return result, nil
}
