package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-ascent/internal/replay"
	"github.com/vovakirdan/tui-ascent/internal/sim"
)

var (
	flagSimTicks  int
	flagSimScript string
	flagSimSave   bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <level>",
	Short: "Run a level headlessly and print the outcome",
	Long: `Replay an input script against a level without a terminal UI and
print the final state as YAML.

A script lists input spans; each holds keyboard, gamepad and touch input
for a number of ticks:

  dt_ms: 16.667
  steps:
    - ticks: 30
      keyboard: {right: true}
    - ticks: 1
      gamepad: {axis_x: 0.8, jump: true}
    - ticks: 60
      touch: {move: -1}

Without --ticks the run lasts for the script. It stops early on victory.

Examples:
  ascent simulate kirbys-ascent --script climb.yaml
  ascent simulate kirbys-ascent --ticks 600
  ascent simulate ./tower.yaml --script climb.yaml --save`,
	Args: cobra.ExactArgs(1),
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagSimTicks, "ticks", 0, "Ticks to run (script length when 0)")
	simulateCmd.Flags().StringVar(&flagSimScript, "script", "", "Input script YAML (idle input when empty)")
	simulateCmd.Flags().BoolVar(&flagSimSave, "save", false, "Record a finished run in the database")
}

func runSimulate(_ *cobra.Command, args []string) error {
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	id, _, err := resolveLevel(args[0])
	if err != nil {
		return err
	}
	tmpl, err := levelTemplate(id)
	if err != nil {
		return err
	}

	script := replay.Script{DtMs: replay.DefaultDtMs}
	if flagSimScript != "" {
		if script, err = replay.Load(flagSimScript); err != nil {
			return err
		}
	}
	if flagSimTicks <= 0 && script.TotalTicks() == 0 {
		return fmt.Errorf("nothing to simulate: give --ticks or a --script with steps")
	}

	sess := sim.NewSession(tmpl, ascentCfg, sim.Options{Logger: logger})
	snap := script.Run(sess, flagSimTicks)
	logger.Info("simulation done", "level", id, "ticks", snap.Ticks, "finished", snap.Finished)

	if flagSimSave && snap.Finished {
		if store == nil {
			return fmt.Errorf("--save needs a database")
		}
		if _, err := store.SaveRun(id, snap.Ticks, snap.Deaths, snap.ElapsedMs); err != nil {
			return err
		}
	}

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(replay.Summarize(snap)); err != nil {
		return err
	}
	return enc.Close()
}
