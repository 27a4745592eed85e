package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jamesprial/gameshelf/internal/view"
)

// Run mounts ctrl, runs the terminal program until the user quits or ctx is
// done, then unmounts and waits for in-flight work.
func Run(ctx context.Context, ctrl *view.Controller, styles Styles, opts ...tea.ProgramOption) error {
	updates := NewUpdates()
	defer updates.Close()
	unsubscribe := ctrl.Subscribe(updates.Push)
	defer unsubscribe()

	if err := ctrl.Mount(ctx); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	defer func() {
		ctrl.Unmount()
		ctrl.Wait()
	}()

	opts = append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, opts...)
	p := tea.NewProgram(NewModel(ctrl, updates, styles), opts...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
