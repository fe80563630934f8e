package gameserver

import (
	"fmt"
	"time"

	"github.com/dreamscached/minequery/v2"
)

// Status is the wire shape of the server status card on the landing page.
type Status struct {
	Version       string   `json:"version"`
	Protocol      int      `json:"protocol"`
	MOTD          string   `json:"motd"`
	PlayersOnline int      `json:"players_online"`
	PlayersMax    int      `json:"players_max"`
	Ping          float64  `json:"ping"`
	PlayersList   []string `json:"players_list"`
}

// Pinger probes a single fixed game server over Server List Ping.
type Pinger struct {
	host    string
	port    int
	pinger  *minequery.Pinger
	timeout time.Duration
}

func NewPinger(host string, port int, timeout time.Duration) *Pinger {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Pinger{
		host:    host,
		port:    port,
		pinger:  minequery.NewPinger(minequery.WithTimeout(timeout)),
		timeout: timeout,
	}
}

// Status pings the server. Unreachable or timed-out servers surface as an
// error; callers decide how to degrade.
func (p *Pinger) Status() (*Status, error) {
	start := time.Now()
	res, err := p.pinger.Ping17(p.host, p.port)
	if err != nil {
		return nil, fmt.Errorf("ping %s:%d: %w", p.host, p.port, err)
	}
	latency := float64(time.Since(start).Microseconds()) / 1000

	players := make([]string, 0, len(res.SamplePlayers))
	for _, player := range res.SamplePlayers {
		players = append(players, player.Nickname)
	}

	return &Status{
		Version:       res.VersionName,
		Protocol:      res.ProtocolVersion,
		MOTD:          fmt.Sprint(res.Description),
		PlayersOnline: res.OnlinePlayers,
		PlayersMax:    res.MaxPlayers,
		Ping:          latency,
		PlayersList:   players,
	}, nil
}

// OnlinePlayers returns just the sampled player names, empty on any failure.
func (p *Pinger) OnlinePlayers() []string {
	status, err := p.Status()
	if err != nil {
		return nil
	}
	return status.PlayersList
}
