package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"go.uber.org/zap"

	"github.com/talkincode/streamstore/config"
	"github.com/talkincode/streamstore/internal/app"
	"github.com/talkincode/streamstore/internal/storeapi"
	"github.com/talkincode/streamstore/internal/webserver"
)

const shutdownTimeout = 30 * time.Second

var (
	cfile   = flag.String("c", "", "config file (default streamstore.yml)")
	initdb  = flag.Bool("initdb", false, "drop and recreate all tables, seed the catalog and exit")
	hashpwd = flag.String("hashpwd", "", "print the bcrypt hash of a password for admin.password_hash and exit")
)

func main() {
	flag.Parse()

	if *hashpwd != "" {
		os.Exit(printHash(*hashpwd))
	}

	cfg, err := config.LoadConfig(*cfile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := cfg.InitDirs(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	application := app.NewApplication(cfg)
	if err := application.Init(cfg); err != nil {
		zap.S().Errorf("application init failed: %v", err)
		application.Release()
		os.Exit(1)
	}

	if *initdb {
		if err := application.InitDb(); err != nil {
			zap.S().Errorf("initdb failed: %v", err)
			application.Release()
			os.Exit(1)
		}
		zap.S().Info("database initialized")
		application.Release()
		return
	}

	server := webserver.Init(application)
	storeapi.Init()

	go func() {
		if err := server.Start(); err != nil {
			zap.S().Errorf("web server error: %v", err)
			os.Exit(1)
		}
	}()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			// the application closes the stores requests still use, so it
			// is released only after the server has drained
			"streamstore": inOrder(
				stopStep{name: "web server", stop: server.Shutdown},
				stopStep{name: "application", stop: application.Shutdown},
			),
		},
	)
	os.Exit(<-wait)
}
