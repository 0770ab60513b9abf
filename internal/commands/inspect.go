package commands

import (
	"fmt"
	"os"

	"github.com/arthur-debert/modwiz/pkg/display"
	"github.com/arthur-debert/modwiz/pkg/filesystem"
	"github.com/arthur-debert/modwiz/pkg/moduleconfig"
	"github.com/arthur-debert/modwiz/pkg/paths"
	"github.com/spf13/cobra"
)

func newInspectCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "inspect <mod-dir>",
		Short:   MsgInspectShort,
		Long:    MsgInspectLong,
		Example: MsgInspectExample,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			module, err := moduleconfig.Load(filesystem.NewOS(), paths.ExpandHome(args[0]))
			if err != nil {
				return err
			}

			mode := outputMode(cmd)
			_, err = fmt.Fprint(cmd.OutOrStdout(), display.RenderMarkdown(display.Overview(module), mode, 0))
			return err
		},
	}
}

// outputMode styles output only when the command writes to a terminal
func outputMode(cmd *cobra.Command) display.Mode {
	if f, ok := cmd.OutOrStdout().(*os.File); ok {
		return display.DetectMode(f)
	}
	return display.ModeText
}
