package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/jmhodges/clock"
	"go.uber.org/zap"

	"github.com/kristofferp8/paycut-reminder-bot/internal/config"
	"github.com/kristofferp8/paycut-reminder-bot/internal/discord"
	"github.com/kristofferp8/paycut-reminder-bot/internal/guildconfig"
	"github.com/kristofferp8/paycut-reminder-bot/internal/scheduler"
	"github.com/kristofferp8/paycut-reminder-bot/internal/store"
)

// Router doubles as the sweep's delivery capability.
var _ scheduler.Notifier = (*discord.Router)(nil)

type App struct {
	cfg     config.Config
	log     *zap.Logger
	session *discordgo.Session
	httpSrv *http.Server

	reminders *store.Store
	files     *store.FileStore
	guilds    *guildconfig.Registry
	router    *discord.Router
	sweeper   *scheduler.Sweeper
}

func New(cfg config.Config, log *zap.Logger) (*App, error) {
	session, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		return nil, err
	}
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentMessageContent

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}

	return &App{cfg: cfg, log: log, session: session, httpSrv: srv}, nil
}

func (a *App) Run(ctx context.Context) error {
	a.log.Info("starting paycut-reminder-bot",
		zap.String("dataFile", a.cfg.DataFile),
		zap.Duration("sweepInterval", a.cfg.SweepInterval),
		zap.String("http", a.cfg.HTTPAddr),
	)

	clk := clock.New()

	// Load persisted reminders. A missing or corrupt artifact starts empty;
	// an unwritable storage location is the one fatal startup fault.
	a.reminders = store.New()
	a.files = store.NewFileStore(a.cfg.DataFile, a.log)
	a.reminders.Replace(a.files.Load())
	if err := a.files.Save(a.reminders.Snapshot()); err != nil {
		a.log.Error("reminder storage unwritable", zap.Error(err))
		return fmt.Errorf("reminder storage: %w", err)
	}
	a.log.Info("reminders loaded", zap.Int("count", a.reminders.Len()))

	guilds, err := guildconfig.Open(ctx, a.cfg.GuildDBPath)
	if err != nil {
		a.log.Error("open guild registry failed", zap.Error(err))
		return err
	}
	a.guilds = guilds

	a.router = discord.NewRouter(a.session, a.log, a.reminders, a.files, a.guilds, clk)
	a.sweeper = scheduler.New(a.reminders, a.files, a.router, a.log, clk, a.cfg.SweepInterval)

	if err := a.session.Open(); err != nil {
		_ = a.guilds.Close()
		a.log.Error("discord gateway open failed", zap.Error(err))
		return err
	}
	a.log.Info("discord gateway connected")

	go func() {
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("http server error", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	sweepDone := make(chan struct{})
	go func() {
		a.sweeper.Run(ctx)
		close(sweepDone)
	}()

	<-ctx.Done()
	a.log.Info("shutdown signal received")

	// The sweeper finishes its in-flight tick before exiting.
	<-sweepDone

	if err := a.session.Close(); err != nil {
		a.log.Warn("discord gateway close error", zap.Error(err))
	}
	if err := a.files.Save(a.reminders.Snapshot()); err != nil {
		a.log.Warn("final save failed", zap.Error(err))
	}
	if err := a.guilds.Close(); err != nil {
		a.log.Warn("guild registry close error", zap.Error(err))
	}

	// Create a short-lived shutdown context and cancel it immediately after use.
	shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	err = a.httpSrv.Shutdown(shCtx)
	cancel()
	if err != nil {
		a.log.Warn("http server shutdown error", zap.Error(err))
	}
	return nil
}
