package cmd

import (
	"bunker/feature/draw"
	"bunker/feature/room"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// roomsCmd groups room maintenance commands.
var roomsCmd = &cobra.Command{
	Use:   "rooms",
	Short: "Room maintenance",
}

// roomsSweepCmd represents the rooms sweep command
var roomsSweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Delete rooms idle longer than game.stale_after",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap()
		if err != nil {
			return err
		}

		svc := room.NewService(rt.db, draw.NewEngine(draw.NewLockedSource(rt.cfg.Game.Seed)), rt.catalogs, room.Config{
			StaleAfter:   rt.cfg.Game.StaleAfter,
			CodeAttempts: rt.cfg.Game.CodeAttempts,
		}, rt.logger)

		n, err := svc.SweepStale(cmd.Context())
		if err != nil {
			return err
		}
		rt.logger.Info("Sweep completed", zap.Int("deleted", n), zap.Duration("stale_after", rt.cfg.Game.StaleAfter))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(roomsCmd)
	roomsCmd.AddCommand(roomsSweepCmd)
}
