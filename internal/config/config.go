package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                 string
	DatabaseURL          string
	AllowOrigins         []string
	LogstashTCPAddr      string
	SessionTTL           string
	DiscordBotURL        string
	DiscordTimeout       string
	DiscordServiceSecret string
	GameServerHost       string
	GameServerPort       int
	GameServerTimeout    string
	GameLogPath          string
	StatsDir             string
	AdvancementsDir      string
	PlayerRoster         map[string]string
	MinIOEndpoint        string
	MinIOAccessKey       string
	MinIOSecretKey       string
	MinIOUseSSL          bool
	MinIOPublicURL       string
	GalleryBucket        string
	GalleryImageMaxBytes int64
	FFMPEGPath           string
	NoticesFile          string
	StaticDir            string
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	gamePort := 25565
	if v, err := strconv.Atoi(getenv("GAME_SERVER_PORT", "25565")); err == nil && v > 0 {
		gamePort = v
	}

	imageMax := int64(5 * 1024 * 1024)
	if v, err := strconv.ParseInt(getenv("GALLERY_IMAGE_MAX_BYTES", "5242880"), 10, 64); err == nil && v > 0 {
		imageMax = v
	}

	return Config{
		Port:                 getenv("PORT", "3010"),
		DatabaseURL:          must("DATABASE_URL"),
		AllowOrigins:         splitAndTrim(getenv("ALLOW_ORIGINS", "*")),
		LogstashTCPAddr:      getenv("LOGSTASH_TCP_ADDR", ""),
		SessionTTL:           getenv("SESSION_TTL", "168h"),
		DiscordBotURL:        getenv("DISCORD_BOT_URL", "http://discord-bot:3011"),
		DiscordTimeout:       getenv("DISCORD_TIMEOUT", "5s"),
		DiscordServiceSecret: getenv("DISCORD_SERVICE_SECRET", ""),
		GameServerHost:       getenv("GAME_SERVER_HOST", "127.0.0.1"),
		GameServerPort:       gamePort,
		GameServerTimeout:    getenv("GAME_SERVER_TIMEOUT", "5s"),
		GameLogPath:          getenv("GAME_LOG_PATH", "/minecraft-logs/latest.log"),
		StatsDir:             getenv("STATS_DIR", "/minecraft-stats"),
		AdvancementsDir:      getenv("ADVANCEMENTS_DIR", "/minecraft-advancements"),
		PlayerRoster:         parseRoster(getenv("PLAYER_ROSTER", "")),
		MinIOEndpoint:        must("MINIO_ENDPOINT"),
		MinIOAccessKey:       must("MINIO_ACCESS_KEY"),
		MinIOSecretKey:       must("MINIO_SECRET_KEY"),
		MinIOUseSSL:          getenv("MINIO_USE_SSL", "false") == "true",
		MinIOPublicURL:       getenv("MINIO_PUBLIC_URL", ""),
		GalleryBucket:        getenv("MINIO_BUCKET_GALLERY", "mineboard-gallery"),
		GalleryImageMaxBytes: imageMax,
		FFMPEGPath:           getenv("FFMPEG_PATH", "ffmpeg"),
		NoticesFile:          getenv("NOTICES_FILE", "notices.yaml"),
		StaticDir:            getenv("STATIC_DIR", "html"),
	}
}

// parseRoster reads "name:uuid,name:uuid" pairs into a name->uuid map.
func parseRoster(input string) map[string]string {
	roster := make(map[string]string)
	for _, pair := range strings.Split(input, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		parts := strings.SplitN(pair, ":", 2)
		if len(parts) != 2 {
			continue
		}
		name := strings.TrimSpace(parts[0])
		id := strings.TrimSpace(parts[1])
		if name != "" && id != "" {
			roster[name] = id
		}
	}
	return roster
}

func splitAndTrim(input string) []string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("missing env: " + k)
	}
	return v
}
