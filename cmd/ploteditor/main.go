package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"ploteditor/internal/config"
	"ploteditor/internal/logging"
	"ploteditor/internal/tui"
)

var cfgFile string

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ploteditor [data.json]",
		Short: "Edit land plot polygons over a site plan in the terminal",
		Long: `ploteditor draws land plots over a georeferenced site plan and lets you
create, reshape and describe them. Plots are read from and exported to a JSON
array; GeoJSON can be imported and exported as well.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}
	f := cmd.Flags()
	f.StringVarP(&cfgFile, "config", "c", "", "config file (default ./ploteditor.yaml)")
	f.String("data", "", "plots data file to open")
	f.String("plan", "", "site plan image")
	f.String("log-level", "", "debug, info, warn or error")
	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		if err := cmd.Flags().Set("data", args[0]); err != nil {
			return err
		}
	}
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	log, closeLog, err := logging.Setup(cfg.Log.Level, cfg.Log.Format, cfg.Log.File)
	if err != nil {
		return err
	}
	defer closeLog()
	log.Info("starting", "data", cfg.Data.File, "plan", cfg.Overlay.Image)

	w, err := tui.NewWatcher(cfg.Data.ImportDir)
	if err != nil {
		log.Warn("import dir not watched", "dir", cfg.Data.ImportDir, "err", err)
	} else {
		defer w.Close()
	}

	m := tui.New(cfg, log, w)
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run(); err != nil {
		log.Error("program exited", "err", err)
		return err
	}
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "ploteditor:", err)
		os.Exit(1)
	}
}
