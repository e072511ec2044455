package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/userbase/userbase-server/internal/api/http/router"
	httpServer "github.com/userbase/userbase-server/internal/api/http/server"
	"github.com/userbase/userbase-server/internal/config"
	"github.com/userbase/userbase-server/internal/logger"
	"github.com/userbase/userbase-server/internal/model"
	"github.com/userbase/userbase-server/internal/repository/mongo"
	"github.com/userbase/userbase-server/internal/server"
	"github.com/userbase/userbase-server/internal/service"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := mongo.NewConnection(ctx, cfg.Database.URI, cfg.Database.Name, cfg.Database.Collection)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer func() {
		if err := db.Close(context.Background()); err != nil {
			logger.Error("failed to close storage connection", "error", err)
		}
	}()

	userRepo := mongo.NewUserRepository(db)

	userService := service.NewUser(userRepo, logger)
	bulkService := service.NewBulk(userRepo, logger)
	generator := service.NewGenerator()

	r := router.New(userService, bulkService, generator, cfg.Auth.APIKey, logger)
	srv := httpServer.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer

	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		err := s.Start(sl)
		if err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(srv)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
