package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/signalnine/olsbench/internal/solver"
)

var methodDescriptions = map[string]string{
	solver.NameLstsq:  "gonum QR least-squares solve of y on X",
	solver.NameModel:  "OLS model object (construct, then QR fit)",
	solver.NameDirect: "explicit (XᵗX)⁻¹XᵗY with transpose, multiply, inverse",
}

var modeDescriptions = map[solver.Mode]string{
	solver.ModeConstruct: "time sample + model construction",
	solver.ModeSolve:     "time the fit only; sample + construction run untimed",
	solver.ModeBoth:      "time sample + construction + fit",
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List methods and model measurement modes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			selected := make(map[string]bool, len(cfg.Methods))
			for _, m := range cfg.Methods {
				selected[m] = true
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Methods:")
			for _, name := range solver.Names() {
				mark := " "
				if selected[name] {
					mark = "*"
				}
				fmt.Fprintf(out, "  %s %-7s %s\n", mark, name, methodDescriptions[name])
			}
			fmt.Fprintln(out, "\nModel measurement modes:")
			for _, m := range solver.Modes() {
				mark := " "
				if string(m) == cfg.ModelMode {
					mark = "*"
				}
				fmt.Fprintf(out, "  %s %-9s %s\n", mark, m, modeDescriptions[m])
			}
			return nil
		},
	}
}
