package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/minhtrifit/hubtech-interview-api/config"
	"github.com/minhtrifit/hubtech-interview-api/event"
	"github.com/minhtrifit/hubtech-interview-api/kafka"
	"github.com/minhtrifit/hubtech-interview-api/outbox"
	"github.com/minhtrifit/hubtech-interview-api/seed"
)

const versionTimeFormat = "20060102150405"

func main() {
	rootCmd := &cobra.Command{}
	rootCmd.AddCommand(
		createMigrationCommand(),
		migrateCommand(),
		seedCommand(),
		relayOutboxCommand(),
		watchEventsCommand(),
	)

	err := rootCmd.Execute()
	if err != nil {
		panic(err)
	}
}

func createMigrationCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate-create [name]",
		Short: "create sql migrations",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			now := time.Now()
			version := now.Format(versionTimeFormat)
			name := args[0]
			migrationDir := config.DefaultConfig.MigrationDir
			up := fmt.Sprintf("%s/%s_%s.up.sql", migrationDir, version, name)
			down := fmt.Sprintf("%s/%s_%s.down.sql", migrationDir, version, name)

			err := os.WriteFile(up, []byte{}, 0644)
			if err != nil {
				panic(err)
			}

			err = os.WriteFile(down, []byte{}, 0644)
			if err != nil {
				panic(err)
			}

			fmt.Println("Created SQL up script:", up)
			fmt.Println("Created SQL down script:", down)
		},
	}
}

func migrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate-up",
		Short: "migrate all the way up",
		Run: func(cmd *cobra.Command, args []string) {
			conf := config.DefaultConfig
			m, err := migrate.New(
				fmt.Sprintf("file://%s", conf.MigrationDir),
				fmt.Sprintf("mysql://%s", conf.DatabaseDSN),
			)
			if err != nil {
				panic(err)
			}

			err = m.Up()
			if err == migrate.ErrNoChange {
				fmt.Println("No change in migration")
				return
			}
			if err != nil {
				panic(err)
			}
			fmt.Println("Migrated up")
		},
	}
}

func seedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "insert the seeded order statuses and payment methods",
		Run: func(cmd *cobra.Command, args []string) {
			db, err := sqlx.Connect("mysql", config.DefaultConfig.DatabaseDSN)
			if err != nil {
				panic(err)
			}

			err = seed.Apply(cmd.Context(), db, seed.DefaultTable())
			if err != nil {
				panic(err)
			}
			fmt.Println("Seeded reference data")
		},
	}
}

func relayOutboxCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "relay-outbox",
		Short: "relay pending outbox rows to kafka until interrupted",
		Run: func(cmd *cobra.Command, args []string) {
			conf := config.DefaultConfig

			db, err := sqlx.Connect("mysql", conf.DatabaseDSN)
			if err != nil {
				panic(err)
			}

			producer, err := kafka.NewProducer(conf.KafkaHost, conf.AggregateEventTopic)
			if err != nil {
				panic(err)
			}

			logger, err := zap.NewProduction()
			if err != nil {
				panic(err)
			}
			defer logger.Sync()

			relayer := outbox.NewRelayer(outbox.NewStore(db), producer, logger.Sugar())

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			ticker := time.NewTicker(time.Second)
			defer ticker.Stop()

			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					if err := relayer.Relay(ctx, conf.RelayBatchSize); err != nil {
						logger.Sugar().Errorw("relay failed", "err", err)
					}
				}
			}
		},
	}
}

func watchEventsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch-events",
		Short: "tail the aggregate change topic until interrupted",
		Run: func(cmd *cobra.Command, args []string) {
			conf := config.DefaultConfig

			consumer, err := kafka.NewConsumer(conf.KafkaHost, conf.AggregateEventTopic)
			if err != nil {
				panic(err)
			}

			logger, err := zap.NewProduction()
			if err != nil {
				panic(err)
			}
			defer logger.Sync()
			log := logger.Sugar()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			for {
				select {
				case <-ctx.Done():
					return
				case msg := <-consumer.Messages():
					var e event.AggregateChanged
					if err := json.Unmarshal(msg.Value, &e); err != nil {
						log.Errorw("malformed event", "err", err, "offset", msg.Offset)
						continue
					}
					log.Infow("aggregate changed", "aggregate", e.Aggregate, "op", e.Op, "id", e.AggregateID)
				case err := <-consumer.Errors():
					log.Errorw("consume failed", "err", err)
				}
			}
		},
	}
}
