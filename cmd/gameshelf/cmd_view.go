package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jamesprial/gameshelf/internal/games"
	"github.com/jamesprial/gameshelf/internal/tui"
	"github.com/jamesprial/gameshelf/internal/view"
)

// errLoadFailed is returned when the list could not be fetched.
var errLoadFailed = errors.New("gameshelf: could not load games")

func newTUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Start the interactive terminal client (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd)
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the games collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, mgr, err := a.newManager()
			if err != nil {
				return err
			}
			return a.printList(cmd.Context(), cmd.OutOrStdout(), mgr)
		},
	}
}

func newAddCmd(a *app) *cobra.Command {
	var title, platform string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a game, then print the collection",
		Example: `  gameshelf add --title "Chrono Trigger" --platform SNES
  gameshelf add --title Hades --platform PC,Switch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, mgr, err := a.newManager()
			if err != nil {
				return err
			}
			game, err := mgr.Add(cmd.Context(), games.NewAddGameInput(title, platform))
			if err != nil {
				return err
			}
			a.logger.Info("game added", zap.String("id", game.ID), zap.String("title", game.Title))
			return a.printList(cmd.Context(), cmd.OutOrStdout(), mgr)
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "Game title")
	cmd.Flags().StringVarP(&platform, "platform", "p", "", "Platforms, comma separated")
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a game by id, then print the collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, mgr, err := a.newManager()
			if err != nil {
				return err
			}
			game, err := mgr.Delete(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			a.logger.Info("game deleted", zap.String("id", game.ID), zap.String("title", game.Title))
			return a.printList(cmd.Context(), cmd.OutOrStdout(), mgr)
		},
	}
}

// printList mounts a controller once and prints the rendered list.
func (a *app) printList(ctx context.Context, w io.Writer, mgr games.GameManager) error {
	ctrl := a.newController(mgr)
	if err := ctrl.Mount(ctx); err != nil {
		return err
	}
	ctrl.Wait()
	state := ctrl.State()
	ctrl.Unmount()

	screen := view.Render(state)
	screen.Form = nil
	if _, err := io.WriteString(w, view.Text(screen)); err != nil {
		return err
	}
	if state.Status != view.StatusReady {
		return errLoadFailed
	}
	return nil
}

func (a *app) newController(mgr games.GameManager) *view.Controller {
	return view.NewController(mgr,
		view.WithLogger(a.logger.Named("view")),
		view.WithClearFormOnAdd(a.cfg.UI.ClearFormOnAdd),
	)
}

func (a *app) runTUI(cmd *cobra.Command) error {
	_, mgr, err := a.newManager()
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	styles := tui.NewStyles(tui.ThemeByName(a.cfg.UI.Theme))
	if err := tui.Run(ctx, a.newController(mgr), styles); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("gameshelf: %w", err)
	}
	return nil
}
