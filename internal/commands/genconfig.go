package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arthur-debert/modwiz/pkg/config"
	"github.com/arthur-debert/modwiz/pkg/errors"
	"github.com/arthur-debert/modwiz/pkg/paths"
	"github.com/spf13/cobra"
)

func newGenConfigCmd() *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:     "gen-config",
		Short:   MsgGenConfigShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !write {
				_, err := fmt.Fprint(cmd.OutOrStdout(), config.DefaultContent())
				return err
			}

			path := paths.New().ConfigFilePath()
			if _, err := os.Stat(path); err == nil {
				return errors.Newf(errors.ErrInvalidInput, MsgConfigExists, path).WithDetail("path", path)
			}
			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return errors.Wrapf(err, errors.ErrFileAccess, "cannot create %s", filepath.Dir(path))
			}
			if err := os.WriteFile(path, []byte(config.DefaultContent()), 0644); err != nil {
				return errors.Wrapf(err, errors.ErrFileAccess, "cannot write %s", path)
			}
			fmt.Fprintf(cmd.OutOrStdout(), MsgConfigWritten, path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)
	return cmd
}
