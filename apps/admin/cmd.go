package main

import (
	"errors"
	"io"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	out      io.Writer
	validate *validator.Validate
}

func (cli *commandLine) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "admin",
		Short:         "Cryptgen administration tasks",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errHelp
		},
	}
	root.SetOut(cli.out)
	root.SetErr(cli.out)

	root.AddCommand(cli.hashPasswordCommand())
	root.AddCommand(cli.seedCheckCommand())
	root.AddCommand(cli.summaryCommand())
	return root
}

// run executes the command named by args (without the program name).
func (cli *commandLine) run(args []string) error {
	root := cli.rootCommand()
	root.SetArgs(args)
	return root.Execute()
}
