package gameserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/mineboard/mineboard/internal/domain"
)

// ErrPlayerNotFound means the player is not in the configured roster or has
// no stats file yet.
var ErrPlayerNotFound = errors.New("player not found")

// Playtime is tracked by the game in ticks: 20 ticks per second.
const ticksPerSecond = 20

// fullProgressHours is the playtime that renders as a full progress bar.
const fullProgressHours = 500

// StatsReader reads the game server's per-player stats and advancements
// JSON files for a fixed roster of name -> player UUID.
type StatsReader struct {
	statsDir        string
	advancementsDir string
	roster          map[string]string
	now             func() time.Time
}

func NewStatsReader(statsDir, advancementsDir string, roster map[string]string) *StatsReader {
	return &StatsReader{
		statsDir:        statsDir,
		advancementsDir: advancementsDir,
		roster:          roster,
		now:             time.Now,
	}
}

type statsFile struct {
	Stats map[string]map[string]int64 `json:"stats"`
}

func (f *statsFile) section(name string) map[string]int64 {
	if f.Stats == nil {
		return nil
	}
	return f.Stats[name]
}

// TopPlayers ranks the roster by playtime. Players without a stats file yet
// still appear, at zero. onlineNow is the sampled player list from the
// status probe.
func (r *StatsReader) TopPlayers(onlineNow []string) []domain.PlayerSummary {
	online := make(map[string]bool, len(onlineNow))
	for _, name := range onlineNow {
		online[name] = true
	}

	players := make([]domain.PlayerSummary, 0, len(r.roster))
	for name, id := range r.roster {
		summary := domain.PlayerSummary{
			Name:     name,
			Playtime: "0h 0m",
			LastSeen: "Nunca",
			IsOnline: online[name],
		}

		path := filepath.Join(r.statsDir, id+".json")
		if stats, mtime, err := r.readStats(path); err == nil {
			custom := stats.section("minecraft:custom")
			totalSeconds := custom["minecraft:play_time"] / ticksPerSecond
			summary.PlaytimeSeconds = totalSeconds
			summary.Playtime = fmt.Sprintf("%dh %dm", totalSeconds/3600, (totalSeconds%3600)/60)
			summary.LastSeen = r.describeLastSeen(mtime, summary.IsOnline)

			hours := float64(totalSeconds) / 3600
			summary.Progress = roundTo(minFloat(100, hours/fullProgressHours*100), 1)
		}

		players = append(players, summary)
	}

	sort.Slice(players, func(i, j int) bool {
		if players[i].PlaytimeSeconds != players[j].PlaytimeSeconds {
			return players[i].PlaytimeSeconds > players[j].PlaytimeSeconds
		}
		return players[i].Name < players[j].Name
	})
	for i := range players {
		players[i].Rank = i + 1
	}
	return players
}

// PlayerStats builds the detail payload for one roster player.
func (r *StatsReader) PlayerStats(name string) (*domain.PlayerDetail, error) {
	id, ok := r.roster[name]
	if !ok {
		return nil, ErrPlayerNotFound
	}

	stats, _, err := r.readStats(filepath.Join(r.statsDir, id+".json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("read stats for %s: %w", name, err)
	}

	custom := stats.section("minecraft:custom")
	mined := stats.section("minecraft:mined")
	crafted := stats.section("minecraft:crafted")
	pickedUp := stats.section("minecraft:picked_up")

	playTicks := custom["minecraft:play_time"]
	playSeconds := playTicks / ticksPerSecond

	detail := &domain.PlayerDetail{
		Playtime:           fmt.Sprintf("%dh %dm", playSeconds/3600, (playSeconds/60)%60),
		PlaytimeMinutes:    playSeconds / 60,
		Deaths:             custom["minecraft:deaths"],
		MobKills:           custom["minecraft:mob_kills"],
		PlayerKills:        custom["minecraft:player_kills"],
		DamageDealt:        custom["minecraft:damage_dealt"],
		DamageTaken:        custom["minecraft:damage_taken"],
		Jumps:              custom["minecraft:jump"],
		DistanceWalkedKM:   roundTo(float64(custom["minecraft:walk_one_cm"])/100000, 2),
		DistanceSprintedKM: roundTo(float64(custom["minecraft:sprint_one_cm"])/100000, 2),
		DistanceSwamM:      roundTo(float64(custom["minecraft:swim_one_cm"])/100, 2),
		DistanceFlownKM:    roundTo(float64(custom["minecraft:aviate_one_cm"])/100000, 2),
		BlocksMined:        sumCounts(mined),
		ItemsCollected:     sumCounts(pickedUp),
		ItemsCrafted:       sumCounts(crafted),
		TopMobsKilled:      topCounts(stats.section("minecraft:killed"), 5),
		TopMined:           topCounts(mined, 5),
		KilledBy:           topCounts(stats.section("minecraft:killed_by"), 0),
	}

	detail.AdvancementsCompleted = r.completedAdvancements(filepath.Join(r.advancementsDir, id+".json"))
	return detail, nil
}

func (r *StatsReader) readStats(path string) (*statsFile, time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, time.Time{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, time.Time{}, err
	}
	var stats statsFile
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, time.Time{}, err
	}
	return &stats, info.ModTime(), nil
}

// completedAdvancements is best-effort: a missing or unreadable file counts
// as zero.
func (r *StatsReader) completedAdvancements(path string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0
	}
	var entries map[string]json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return 0
	}

	completed := 0
	for _, raw := range entries {
		var entry struct {
			Done bool `json:"done"`
		}
		if err := json.Unmarshal(raw, &entry); err == nil && entry.Done {
			completed++
		}
	}
	return completed
}

func (r *StatsReader) describeLastSeen(mtime time.Time, isOnline bool) string {
	if isOnline {
		return "Agora"
	}
	diff := r.now().Sub(mtime)
	switch {
	case diff < time.Hour:
		return fmt.Sprintf("Há %d min", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("Há %dh", int(diff.Hours()))
	case diff < 48*time.Hour:
		return "Ontem"
	default:
		return mtime.Format("02/01/2006")
	}
}

func topCounts(counts map[string]int64, limit int) []domain.KillCount {
	out := make([]domain.KillCount, 0, len(counts))
	for key, count := range counts {
		out = append(out, domain.KillCount{Name: prettifyIdentifier(key), Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// prettifyIdentifier turns "minecraft:zombie_villager" into "Zombie Villager".
func prettifyIdentifier(id string) string {
	if idx := strings.LastIndex(id, ":"); idx >= 0 {
		id = id[idx+1:]
	}
	words := strings.Split(strings.ReplaceAll(id, "_", " "), " ")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

func sumCounts(counts map[string]int64) int64 {
	var total int64
	for _, count := range counts {
		total += count
	}
	return total
}

func roundTo(value float64, decimals int) float64 {
	shift := 1.0
	for i := 0; i < decimals; i++ {
		shift *= 10
	}
	return float64(int64(value*shift+0.5)) / shift
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
