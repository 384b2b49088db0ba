package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymtracker/internal/backup"
	"github.com/2beens/gymtracker/internal/logging"
	"github.com/2beens/gymtracker/internal/telemetry/tracing"
)

func main() {
	baseURL := flag.String("url", "http://localhost:9000", "gymtracker backend base url")
	username := flag.String("user", "", "username to back up")
	kinds := flag.String("kinds", "complete", "comma separated export kinds [data,charts,complete]")
	timeRange := flag.String("range", "all", "time range [week | month | all]")
	dir := flag.String("dir", "./backups", "directory the workbooks are stored to")
	logsPath := flag.String("logs-path", "", "logs file path (empty for stdout)")
	flag.Parse()

	logging.Setup(logging.LoggerSetupParams{
		LogFileName: *logsPath,
		LogToStdout: *logsPath == "",
		LogLevel:    "debug",
	})

	log.Println("starting gym backup ...")

	if *username == "" {
		log.Fatalln("username not specified")
	}
	password := os.Getenv("GYM_BACKUP_PASSWORD")
	if password == "" {
		log.Fatalln("password not set. use GYM_BACKUP_PASSWORD")
	}

	otelShutdown, err := tracing.HoneycombSetup(os.Getenv("HONEYCOMB_ENABLED") == "true", "gym-backup", nil)
	if err != nil {
		log.Fatalf("tracing setup: %s", err)
	}
	defer otelShutdown()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	ctx, timeoutCancel := context.WithTimeout(ctx, 5*time.Minute)
	defer timeoutCancel()

	written, err := backup.NewClient(*baseURL, nil).Run(ctx, backup.Params{
		Username:  *username,
		Password:  password,
		Kinds:     strings.Split(*kinds, ","),
		TimeRange: *timeRange,
		Dir:       *dir,
	})
	for _, path := range written {
		log.Printf("stored: %s", path)
	}
	if err != nil {
		log.Errorf("backup failed: %s", err)
		return
	}
	log.Println("backup done")
}
