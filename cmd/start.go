package cmd

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"bunker/core/loader"
	"bunker/core/logger"
	"bunker/core/middleware/auth"
	"bunker/core/middleware/rayid"
	"bunker/feature/catalog"
	"bunker/feature/draw"
	"bunker/feature/integrity"
	"bunker/feature/room"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "bunker/docs/swagger"
)

// @title Bunker API
// @version 1.0
// @description Room sessions and content draws for the bunker party game.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the game server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap()
		if err != nil {
			return err
		}
		logg := rt.logger
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		if !rt.cfg.Server.AdminProtected() {
			logg.Warn("No API key configured, catalog and integrity routes are open")
		}

		engine := draw.NewEngine(draw.NewLockedSource(rt.cfg.Game.Seed))
		rooms := room.NewService(rt.db, engine, rt.catalogs, room.Config{
			StaleAfter:   rt.cfg.Game.StaleAfter,
			CodeAttempts: rt.cfg.Game.CodeAttempts,
		}, logg)

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		mgr := loader.NewManager(logg)
		guard := auth.New(auth.Config{ApiKey: rt.cfg.Server.ApiKey})
		mgr.Register(room.NewFeature(rooms, rt.cfg.Server.PublicURL))
		mgr.Register(catalog.NewFeature(rt.catalogs, guard))
		mgr.Register(integrity.NewFeature(rt.integrity(), guard))

		// RayID must be first to trace everything.
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			start := time.Now()
			err := c.Next()
			fields := []zap.Field{
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
				zap.Int("status", c.Response().StatusCode()),
				zap.Duration("latency", time.Since(start)),
			}
			if err != nil {
				l.Error("Request error", append(fields, zap.Error(err))...)
				return err
			}
			l.Info("Request completed", fields...)
			return nil
		})

		app.Get("/swagger/*", swagger.HandlerDefault)

		if err := mgr.LoadAll(app); err != nil {
			return err
		}

		go func() {
			logg.Info("Starting server", zap.String("port", rt.cfg.Server.Port))
			if err := app.Listen(rt.cfg.Server.Address()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		return app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
