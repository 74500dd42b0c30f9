package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/claim-management/internal/notification"
	notificationPostgres "github.com/frahmantamala/claim-management/internal/notification/postgres"
	"github.com/frahmantamala/claim-management/pkg/logger"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Start background workers",
	Long:  `Start and manage background workers like the email outbox dispatcher.`,
}

var mailerWorkerCmd = &cobra.Command{
	Use:   "mailer",
	Short: "Start the email outbox dispatcher",
	Long:  `Drain the email outbox on an interval, retrying failed deliveries up to the attempt budget`,
	Run: func(cmd *cobra.Command, args []string) {
		startMailerWorker()
	},
}

var dispatchBatchSize int

func startMailerWorker() {
	config, err := loadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(config.Observability.Logging.Level, config.Observability.Logging.Format)
	log := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize gorm: %v\n", err)
		os.Exit(1)
	}

	outboxRepo := notificationPostgres.NewOutboxRepository(gormDB)
	mailer := notification.NewSMTPMailer(config.Mail)
	outbox := notification.NewService(outboxRepo, mailer, config.Mail.MaxAttempts, log)

	interval := config.Mail.DispatchEach
	if interval <= 0 {
		interval = 30 * time.Second
	}

	log.Info("mailer worker started",
		"interval", interval,
		"batch_size", dispatchBatchSize,
		"max_attempts", config.Mail.MaxAttempts)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-ticker.C:
			if _, err := outbox.DispatchPending(dispatchBatchSize); err != nil {
				log.Error("outbox pass failed", "error", err)
			}
		case sig := <-sigChan:
			log.Info("received signal, shutting down mailer worker", "signal", sig)
			return
		}
	}
}

func init() {
	mailerWorkerCmd.Flags().IntVar(&dispatchBatchSize, "batch-size", 50, "Maximum emails picked up per pass")

	workerCmd.AddCommand(mailerWorkerCmd)
}
