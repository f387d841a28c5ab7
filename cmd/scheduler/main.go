package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"villa/config"
	"villa/di"
	"villa/shared/logger"
	"villa/shared/timezone"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	tasks := di.InitializeTaskService()

	hour, minute := parsePassTime(cfg.App.Housekeeping.DailyPassAt)

	scheduler, err := gocron.NewScheduler(
		gocron.WithLocation(timezone.GetLocation()),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create scheduler")
	}

	_, err = scheduler.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(hour, minute, 0),
			),
		),
		gocron.NewTask(func() {
			res, err := tasks.RunPeriodicCleaningPass(context.Background())
			if err != nil {
				log.Error().Err(err).Msg("Periodic cleaning pass failed")

				return
			}

			log.Info().
				Int("rooms_checked", res.RoomsChecked).
				Int("tasks_created", res.TasksCreated).
				Msg("Periodic cleaning pass completed")
		}),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to register periodic cleaning job")
	}

	scheduler.Start()

	log.Info().Str("at", cfg.App.Housekeeping.DailyPassAt).Msg("Housekeeping scheduler started")

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	if err := scheduler.Shutdown(); err != nil {
		log.Error().Err(err).Msg("Failed to shut down scheduler")
	}
}

func parsePassTime(at string) (uint, uint) {
	parts := strings.SplitN(at, ":", 2)
	if len(parts) != 2 {
		return 6, 0
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 6, 0
	}

	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 6, 0
	}

	return uint(hour), uint(minute)
}
