package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUpstream marks the identity service as unreachable or failing.
	ErrUpstream = errors.New("identity service unavailable")
	// ErrAuthValidation marks a handshake call missing required fields.
	ErrAuthValidation = errors.New("auth request validation failed")
)

// VerifyResult is the outcome of one poll of the handshake token.
type VerifyResult struct {
	// Verified is true once the user approved the request in Discord.
	Verified bool
	// SessionID is set only when Verified is true.
	SessionID string
	// Payload is the bot's response body, passed through verbatim when the
	// handshake is still pending or expired.
	Payload []byte
}

// DiscordAuthService brokers the two-phase out-of-band handshake:
// request a token from the bot, then poll until the user approves. All
// handshake state lives in the bot; all post-success state lives in the
// session store. The broker itself is stateless.
type DiscordAuthService struct {
	gateway  DiscordGateway
	sessions *SessionService
}

func NewDiscordAuthService(gateway DiscordGateway, sessions *SessionService) *DiscordAuthService {
	return &DiscordAuthService{gateway: gateway, sessions: sessions}
}

// RequestAuth forwards the request to the bot and returns its payload
// unchanged. No retry here: a human approval in Discord drives eventual
// success, and retrying belongs to the polling client.
func (s *DiscordAuthService) RequestAuth(ctx context.Context, userID, userName string) ([]byte, error) {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(userName) == "" {
		return nil, fmt.Errorf("%w: userId and userName are required", ErrAuthValidation)
	}
	payload, err := s.gateway.RequestAuth(ctx, userID, userName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return payload, nil
}

// PollVerify checks the token's status with the bot. Pending and expired
// tokens produce a verbatim passthrough; a verified token mints a session.
//
// Each verified poll mints a new session: the handshake is assumed
// single-use, so a client that keeps polling after success would accumulate
// sessions. Preserved as observed in the original service.
func (s *DiscordAuthService) PollVerify(ctx context.Context, token, userID, userName string) (*VerifyResult, error) {
	if strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("%w: token is required", ErrAuthValidation)
	}

	check, err := s.gateway.CheckAuth(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	if !check.Verified {
		return &VerifyResult{Verified: false, Payload: check.Payload}, nil
	}

	if strings.TrimSpace(userID) == "" || strings.TrimSpace(userName) == "" {
		return nil, fmt.Errorf("%w: userId and userName are required", ErrAuthValidation)
	}

	session, err := s.sessions.Create(ctx, userID, userName)
	if err != nil {
		return nil, err
	}
	return &VerifyResult{Verified: true, SessionID: session.SessionID}, nil
}
