package main

import (
	"context"
	"io"
	"log"
	"os"
	"time"

	"github.com/mineboard/mineboard/internal/config"
	"github.com/mineboard/mineboard/internal/gameserver"
	"github.com/mineboard/mineboard/internal/logging"
	"github.com/mineboard/mineboard/internal/media"
	miniorepo "github.com/mineboard/mineboard/internal/repository/minio"
	"github.com/mineboard/mineboard/internal/repository/postgres"
	"github.com/mineboard/mineboard/internal/service"
	"github.com/mineboard/mineboard/internal/transport/discord"
	transporthttp "github.com/mineboard/mineboard/internal/transport/http"
)

func main() {
	cfg := config.Load()

	if cfg.LogstashTCPAddr != "" {
		writer, err := logging.NewLogstashWriter(cfg.LogstashTCPAddr)
		if err != nil {
			log.Printf("logstash disabled: %v", err)
		} else {
			defer writer.Close()
			log.SetOutput(io.MultiWriter(os.Stdout, writer))
		}
	}

	db, err := postgres.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		cancel()
		log.Fatalf("ensure schema: %v", err)
	}
	cancel()

	minioClient, err := miniorepo.NewClient(cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOUseSSL)
	if err != nil {
		log.Fatalf("connect minio: %v", err)
	}
	storage := miniorepo.NewStorage(minioClient, cfg.MinIOPublicURL)
	bucketCtx, bucketCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := storage.EnsureBucket(bucketCtx, cfg.GalleryBucket); err != nil {
		bucketCancel()
		log.Fatalf("ensure gallery bucket: %v", err)
	}
	bucketCancel()

	catalog, err := service.LoadNoticeCatalog(cfg.NoticesFile)
	if err != nil {
		log.Fatalf("load notice catalog: %v", err)
	}

	gateway := discord.NewClient(cfg.DiscordBotURL, parseDuration(cfg.DiscordTimeout, 5*time.Second), cfg.DiscordServiceSecret)

	sessions := service.NewSessionService(postgres.NewSessionRepo(db), parseDuration(cfg.SessionTTL, service.DefaultSessionTTL))
	auth := service.NewAuthService(sessions, gateway)
	broker := service.NewDiscordAuthService(gateway, sessions)
	notices := service.NewNoticeService(postgres.NewNoticeRepo(db), catalog)
	gallery := service.NewGalleryService(postgres.NewCaptionRepo(db), storage, service.GalleryServiceConfig{
		Bucket:        cfg.GalleryBucket,
		MaxImageBytes: cfg.GalleryImageMaxBytes,
		Processor:     media.NewFFMPEGProcessor(cfg.FFMPEGPath, media.DefaultMaxDimension),
	})

	pinger := gameserver.NewPinger(cfg.GameServerHost, cfg.GameServerPort, parseDuration(cfg.GameServerTimeout, 5*time.Second))
	stats := gameserver.NewStatsReader(cfg.StatsDir, cfg.AdvancementsDir, cfg.PlayerRoster)

	e := transporthttp.NewRouter(cfg.AllowOrigins)
	transporthttp.RegisterAuth(e, auth, sessions, broker)
	transporthttp.RegisterNotices(e, auth, notices)
	transporthttp.RegisterGallery(e, auth, gallery)
	transporthttp.RegisterStatus(e, pinger, stats, gateway, cfg.GameLogPath)
	transporthttp.RegisterSwagger(e)
	transporthttp.RegisterPages(e, auth, cfg.StaticDir)

	e.Logger.Fatal(e.Start(":" + cfg.Port))
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
