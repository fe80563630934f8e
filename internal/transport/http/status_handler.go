package http

import (
	"bufio"
	"errors"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"

	"github.com/mineboard/mineboard/internal/gameserver"
	"github.com/mineboard/mineboard/internal/service"
	"github.com/mineboard/mineboard/internal/sysmon"
	"github.com/mineboard/mineboard/internal/util"
)

// maxLogLines bounds the log tail payload.
const maxLogLines = 500

type StatusHandler struct {
	pinger  *gameserver.Pinger
	stats   *gameserver.StatsReader
	gateway service.DiscordGateway
	logPath string
}

func RegisterStatus(e *echo.Echo, pinger *gameserver.Pinger, stats *gameserver.StatsReader, gateway service.DiscordGateway, logPath string) {
	handler := &StatusHandler{
		pinger:  pinger,
		stats:   stats,
		gateway: gateway,
		logPath: logPath,
	}

	e.GET("/api/status", handler.serverStatus)
	e.GET("/api/system-metrics", handler.systemMetrics)
	e.GET("/api/logs", handler.logs)
	e.GET("/api/top-players", handler.topPlayers)
	e.GET("/api/player-stats/:name", handler.playerStats)
	e.GET("/api/discord/members", handler.discordMembers)
}

// serverStatus is fatal-tolerant: an unreachable game server answers 200
// with an error field so the status card can render "offline".
func (h *StatusHandler) serverStatus(c echo.Context) error {
	status, err := h.pinger.Status()
	if err != nil {
		c.Logger().Warnf("server status: %v", err)
		return c.JSON(http.StatusOK, util.Error(err.Error()))
	}
	return c.JSON(http.StatusOK, status)
}

func (h *StatusHandler) systemMetrics(c echo.Context) error {
	metrics, err := sysmon.Sample(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("system metrics: %v", err)
		return c.JSON(http.StatusInternalServerError, util.Error("unable to sample system metrics"))
	}
	return c.JSON(http.StatusOK, metrics)
}

func (h *StatusHandler) logs(c echo.Context) error {
	lines, err := tailFile(h.logPath, maxLogLines)
	if err != nil {
		c.Logger().Errorf("read logs: %v", err)
		return c.JSON(http.StatusInternalServerError, util.Fail("unable to read server log"))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":     true,
		"logs":        lines,
		"total_lines": len(lines),
	})
}

func (h *StatusHandler) topPlayers(c echo.Context) error {
	players := h.stats.TopPlayers(h.pinger.OnlinePlayers())

	onlineCount := 0
	for _, player := range players {
		if player.IsOnline {
			onlineCount++
		}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":       true,
		"players":       players,
		"online_count":  onlineCount,
		"total_players": len(players),
	})
}

func (h *StatusHandler) playerStats(c echo.Context) error {
	detail, err := h.stats.PlayerStats(c.Param("name"))
	if err != nil {
		if errors.Is(err, gameserver.ErrPlayerNotFound) {
			return c.JSON(http.StatusNotFound, util.Fail("player not found"))
		}
		c.Logger().Errorf("player stats: %v", err)
		return c.JSON(http.StatusInternalServerError, util.Fail("unable to read player stats"))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"player":  c.Param("name"),
		"stats":   detail,
	})
}

func (h *StatusHandler) discordMembers(c echo.Context) error {
	members, err := h.gateway.Members(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("discord members: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "discord bot unavailable", "members": []any{}})
	}
	return c.JSON(http.StatusOK, echo.Map{"members": members})
}

// tailFile reads the last up-to-limit lines of a log file.
func tailFile(path string, limit int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	lines := make([]string, 0, limit)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
		if len(lines) > limit {
			lines = lines[1:]
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
