package http

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mineboard/mineboard/internal/gameserver"
)

func newStatusTestEnv(t *testing.T, logPath string) (*echo.Echo, string) {
	t.Helper()
	statsDir := t.TempDir()
	reader := gameserver.NewStatsReader(statsDir, t.TempDir(), map[string]string{"Alice": "uuid-alice"})
	pinger := gameserver.NewPinger("127.0.0.1", 1, 50*time.Millisecond)

	e := echo.New()
	RegisterStatus(e, pinger, reader, &stubGateway{}, logPath)
	return e, statsDir
}

func TestTailFileReturnsLastLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "latest.log")
	var sb strings.Builder
	for i := 1; i <= 600; i++ {
		fmt.Fprintf(&sb, "[12:00:%02d] line %d\n", i%60, i)
	}
	if err := os.WriteFile(path, []byte(sb.String()), 0o600); err != nil {
		t.Fatalf("write log: %v", err)
	}

	lines, err := tailFile(path, 500)
	if err != nil {
		t.Fatalf("tailFile returned error: %v", err)
	}
	if len(lines) != 500 {
		t.Fatalf("expected 500 lines, got %d", len(lines))
	}
	if !strings.HasSuffix(lines[0], "line 101") {
		t.Fatalf("expected the tail to start at line 101, got %q", lines[0])
	}
	if !strings.HasSuffix(lines[len(lines)-1], "line 600") {
		t.Fatalf("expected the tail to end at line 600, got %q", lines[len(lines)-1])
	}
}

func TestTailFileShortFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "latest.log")
	if err := os.WriteFile(path, []byte("one\ntwo\n"), 0o600); err != nil {
		t.Fatalf("write log: %v", err)
	}

	lines, err := tailFile(path, 500)
	if err != nil {
		t.Fatalf("tailFile returned error: %v", err)
	}
	if len(lines) != 2 || lines[0] != "one" || lines[1] != "two" {
		t.Fatalf("unexpected lines: %v", lines)
	}
}

func TestLogsEndpoint(t *testing.T) {
	path := filepath.Join(t.TempDir(), "latest.log")
	if err := os.WriteFile(path, []byte("[12:00:00] started\n"), 0o600); err != nil {
		t.Fatalf("write log: %v", err)
	}
	e, _ := newStatusTestEnv(t, path)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/logs", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "started") {
		t.Fatalf("expected the log line in the payload, got %s", rec.Body.String())
	}
}

func TestLogsEndpointMissingFile(t *testing.T) {
	e, _ := newStatusTestEnv(t, filepath.Join(t.TempDir(), "absent.log"))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/logs", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 for an unreadable log, got %d", rec.Code)
	}
}

func TestPlayerStatsEndpointUnknownPlayer(t *testing.T) {
	e, _ := newStatusTestEnv(t, "unused.log")

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/player-stats/Mallory", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestPlayerStatsEndpoint(t *testing.T) {
	e, statsDir := newStatusTestEnv(t, "unused.log")
	content := `{"stats":{"minecraft:custom":{"minecraft:play_time":72000}}}`
	if err := os.WriteFile(filepath.Join(statsDir, "uuid-alice.json"), []byte(content), 0o600); err != nil {
		t.Fatalf("write stats: %v", err)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/player-stats/Alice", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"player":"Alice"`) || !strings.Contains(body, `"1h 0m"`) {
		t.Fatalf("unexpected payload: %s", body)
	}
}

func TestDiscordMembersEndpointDegrades(t *testing.T) {
	statsDir := t.TempDir()
	reader := gameserver.NewStatsReader(statsDir, t.TempDir(), nil)
	pinger := gameserver.NewPinger("127.0.0.1", 1, 50*time.Millisecond)
	gateway := &stubGateway{membersErr: fmt.Errorf("bot offline")}

	e := echo.New()
	RegisterStatus(e, pinger, reader, gateway, "unused.log")

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/discord/members", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"members":[]`) {
		t.Fatalf("expected an empty member list in the error body, got %s", rec.Body.String())
	}
}
