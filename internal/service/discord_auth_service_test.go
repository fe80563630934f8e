package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mineboard/mineboard/internal/transport/discord"
)

type fakeGateway struct {
	requestPayload []byte
	requestErr     error
	requestUserID  string

	checkResult *discord.CheckResult
	checkErr    error
	checkToken  string

	members    []discord.Member
	membersErr error
}

func (f *fakeGateway) RequestAuth(ctx context.Context, userID, userName string) ([]byte, error) {
	f.requestUserID = userID
	return f.requestPayload, f.requestErr
}

func (f *fakeGateway) CheckAuth(ctx context.Context, token string) (*discord.CheckResult, error) {
	f.checkToken = token
	return f.checkResult, f.checkErr
}

func (f *fakeGateway) Members(ctx context.Context) ([]discord.Member, error) {
	return f.members, f.membersErr
}

func TestRequestAuthForwardsPayload(t *testing.T) {
	gateway := &fakeGateway{requestPayload: []byte(`{"token":"abc","expires_in":300}`)}
	svc := NewDiscordAuthService(gateway, NewSessionService(newMemSessionRepo(), time.Hour))

	payload, err := svc.RequestAuth(context.Background(), "user-1", "Alice")
	if err != nil {
		t.Fatalf("RequestAuth returned error: %v", err)
	}
	if string(payload) != `{"token":"abc","expires_in":300}` {
		t.Fatalf("expected the bot payload verbatim, got %s", payload)
	}
	if gateway.requestUserID != "user-1" {
		t.Fatalf("expected request forwarded for user-1, got %q", gateway.requestUserID)
	}
}

func TestRequestAuthValidatesFields(t *testing.T) {
	svc := NewDiscordAuthService(&fakeGateway{}, NewSessionService(newMemSessionRepo(), time.Hour))

	if _, err := svc.RequestAuth(context.Background(), "", "Alice"); !errors.Is(err, ErrAuthValidation) {
		t.Fatalf("expected validation error for missing userId, got %v", err)
	}
	if _, err := svc.RequestAuth(context.Background(), "user-1", "  "); !errors.Is(err, ErrAuthValidation) {
		t.Fatalf("expected validation error for missing userName, got %v", err)
	}
}

func TestRequestAuthWrapsUpstreamFailure(t *testing.T) {
	gateway := &fakeGateway{requestErr: errors.New("connection refused")}
	svc := NewDiscordAuthService(gateway, NewSessionService(newMemSessionRepo(), time.Hour))

	if _, err := svc.RequestAuth(context.Background(), "user-1", "Alice"); !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestPollVerifyPendingPassesBodyThrough(t *testing.T) {
	repo := newMemSessionRepo()
	gateway := &fakeGateway{
		checkResult: &discord.CheckResult{Verified: false, Payload: []byte(`{"verified":false,"status":"pending"}`)},
	}
	svc := NewDiscordAuthService(gateway, NewSessionService(repo, time.Hour))

	result, err := svc.PollVerify(context.Background(), "token-1", "user-1", "Alice")
	if err != nil {
		t.Fatalf("PollVerify returned error: %v", err)
	}
	if result.Verified {
		t.Fatalf("expected unverified result")
	}
	if string(result.Payload) != `{"verified":false,"status":"pending"}` {
		t.Fatalf("expected the bot payload verbatim, got %s", result.Payload)
	}
	if len(repo.rows) != 0 {
		t.Fatalf("expected no session for a pending handshake, got %d rows", len(repo.rows))
	}
	if gateway.checkToken != "token-1" {
		t.Fatalf("expected the token forwarded, got %q", gateway.checkToken)
	}
}

func TestPollVerifyVerifiedMintsSession(t *testing.T) {
	repo := newMemSessionRepo()
	gateway := &fakeGateway{
		checkResult: &discord.CheckResult{Verified: true, Payload: []byte(`{"verified":true}`)},
	}
	svc := NewDiscordAuthService(gateway, NewSessionService(repo, time.Hour))

	result, err := svc.PollVerify(context.Background(), "token-1", "user-1", "Alice")
	if err != nil {
		t.Fatalf("PollVerify returned error: %v", err)
	}
	if !result.Verified {
		t.Fatalf("expected verified result")
	}
	if result.SessionID == "" {
		t.Fatalf("expected a session id on verification")
	}

	row, ok := repo.rows[result.SessionID]
	if !ok {
		t.Fatalf("expected the minted session to be stored")
	}
	if row.UserID != "user-1" || row.UserName != "Alice" {
		t.Fatalf("unexpected session identity: %+v", row)
	}
}

func TestPollVerifyRequiresToken(t *testing.T) {
	svc := NewDiscordAuthService(&fakeGateway{}, NewSessionService(newMemSessionRepo(), time.Hour))

	if _, err := svc.PollVerify(context.Background(), " ", "user-1", "Alice"); !errors.Is(err, ErrAuthValidation) {
		t.Fatalf("expected validation error for missing token, got %v", err)
	}
}

func TestPollVerifyUpstreamFailureMintsNothing(t *testing.T) {
	repo := newMemSessionRepo()
	gateway := &fakeGateway{checkErr: errors.New("timeout")}
	svc := NewDiscordAuthService(gateway, NewSessionService(repo, time.Hour))

	if _, err := svc.PollVerify(context.Background(), "token-1", "user-1", "Alice"); !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
	if len(repo.rows) != 0 {
		t.Fatalf("expected no session on upstream failure")
	}
}
