package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/koolee1372/bpr-cms/internal/config"
	"github.com/koolee1372/bpr-cms/internal/es"
	"github.com/koolee1372/bpr-cms/internal/events"
	"github.com/koolee1372/bpr-cms/internal/hash"
	"github.com/koolee1372/bpr-cms/internal/httpserver"
	"github.com/koolee1372/bpr-cms/internal/kv"
	"github.com/koolee1372/bpr-cms/internal/models"
	"github.com/koolee1372/bpr-cms/internal/repo"
	"github.com/koolee1372/bpr-cms/internal/service"
	"github.com/koolee1372/bpr-cms/internal/session"
	"github.com/koolee1372/bpr-cms/internal/tenantdir"
	"github.com/koolee1372/bpr-cms/internal/tokens"
	"github.com/koolee1372/bpr-cms/pkg/db"
	"github.com/koolee1372/bpr-cms/pkg/logging"
	loggingmw "github.com/koolee1372/bpr-cms/pkg/middleware/logging"
	pkgredis "github.com/koolee1372/bpr-cms/pkg/redis"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	initCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	gormDB, err := db.Open(initCtx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	if err := gormDB.AutoMigrate(
		&models.Tenant{}, &models.Admin{},
		&models.Article{}, &models.Category{}, &models.ArticleCategory{},
	); err != nil {
		log.Fatalf("db migrate error: %v", err)
	}

	redisCfg := pkgredis.NewConfig(cfg.RedisAddr)
	redisCfg.Password = cfg.RedisPassword
	redisClient, err := pkgredis.Connect(initCtx, redisCfg)
	if err != nil {
		log.Fatalf("redis init error: %v", err)
	}
	defer redisClient.Close()

	store := kv.NewRedisStore(redisClient)
	directory := tenantdir.New(store)
	sessions := session.New(store)

	issuer := tokens.NewIssuer(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	hasher := hash.NewHasher(cfg.PasswordSalt)
	gormRepo := repo.New(gormDB)

	var searcher *es.Articles
	if cfg.ESURL != "" {
		esClient, err := es.NewClient(es.Config{URL: cfg.ESURL, User: cfg.ESUser, Password: cfg.ESPassword})
		if err != nil {
			log.Fatalf("elasticsearch init error: %v", err)
		}
		searcher = es.NewArticles(esClient)
	}

	var producer *events.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = events.NewProducer(cfg.KafkaBrokers, events.TopicContent)
		defer producer.Close()
	}

	authSvc := &service.AuthService{
		Repo:     gormRepo,
		Hasher:   hasher,
		Issuer:   issuer,
		Sessions: sessions,
	}
	contentSvc := &service.ContentService{Repo: gormRepo, Events: producer, Search: searcher}
	tenantSvc := &service.TenantService{Repo: gormRepo, Directory: directory}
	bootstrapSvc := &service.BootstrapService{Repo: gormRepo, Auth: authSvc, Directory: directory}

	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))

	httpserver.Register(e, &httpserver.Deps{
		Auth:       &httpserver.AuthHTTP{Svc: authSvc},
		Tenants:    &httpserver.TenantHTTP{Svc: tenantSvc},
		Admins:     &httpserver.AdminHTTP{Svc: authSvc, Repo: gormRepo},
		Articles:   &httpserver.ArticleHTTP{Svc: contentSvc, Repo: gormRepo},
		Categories: &httpserver.CategoryHTTP{Repo: gormRepo},
		Public:     &httpserver.PublicHTTP{Repo: gormRepo},
		Meta:       &httpserver.MetaHTTP{Repo: gormRepo, Bootstrap: bootstrapSvc, Seed: cfg.Bootstrap},
		Directory:  directory,
		Issuer:     issuer,
		Ready: func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if sqlDB, err := gormDB.DB(); err != nil {
				return err
			} else if err := sqlDB.PingContext(ctx); err != nil {
				return err
			}
			return redisClient.Ping(ctx).Err()
		},
	})

	go func() {
		addr := fmt.Sprintf(":%d", cfg.ServerPort)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("echo start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("echo shutdown: %v", err)
	}
}
