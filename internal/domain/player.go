package domain

// PlayerSummary is one row of the playtime leaderboard.
type PlayerSummary struct {
	Rank            int     `json:"rank"`
	Name            string  `json:"name"`
	Playtime        string  `json:"playtime"`
	PlaytimeSeconds int64   `json:"playtime_seconds"`
	LastSeen        string  `json:"last_seen"`
	IsOnline        bool    `json:"is_online"`
	Progress        float64 `json:"progress"`
}

// KillCount pairs a mob or block identifier with a counter value.
type KillCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// PlayerDetail is the per-player statistics page payload, derived from the
// game server's stats and advancements JSON files.
type PlayerDetail struct {
	Playtime              string      `json:"playtime"`
	PlaytimeMinutes       int64       `json:"playtime_minutes"`
	Deaths                int64       `json:"deaths"`
	MobKills              int64       `json:"mob_kills"`
	PlayerKills           int64       `json:"player_kills"`
	DamageDealt           int64       `json:"damage_dealt"`
	DamageTaken           int64       `json:"damage_taken"`
	Jumps                 int64       `json:"jumps"`
	DistanceWalkedKM      float64     `json:"distance_walked"`
	DistanceSprintedKM    float64     `json:"distance_sprinted"`
	DistanceSwamM         float64     `json:"distance_swam"`
	DistanceFlownKM       float64     `json:"distance_flown"`
	BlocksMined           int64       `json:"blocks_mined"`
	ItemsCollected        int64       `json:"items_collected"`
	ItemsCrafted          int64       `json:"items_crafted"`
	AdvancementsCompleted int         `json:"advancements_completed"`
	TopMobsKilled         []KillCount `json:"top_mobs_killed"`
	TopMined              []KillCount `json:"top_mined"`
	KilledBy              []KillCount `json:"killed_by"`
}
