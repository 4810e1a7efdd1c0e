package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ardiann-eng/CryptgenFix122/core/user"
)

func (cli *commandLine) hashPasswordCommand() *cobra.Command {
	var uname string
	cmd := &cobra.Command{
		Use:   "hashpassword",
		Short: "Hash a password for the adminPasswordHash setting. The password is prompted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), "Enter password:")
			pwd, err := readPasswordFunc(int(os.Stdin.Fd()))
			fmt.Fprintln(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if len(pwd) == 0 {
				_ = cmd.Usage()
				return errHelp
			}

			hash, err := cli.hashPassword(string(pwd), uname)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
	cmd.Flags().StringVar(&uname, "username", "admin", "the admin username, the password must not look like it")
	return cmd
}

func (cli *commandLine) hashPassword(pwd, uname string) (string, error) {
	if err := user.ValidatePassword(pwd, uname); err != nil {
		return "", err
	}
	var usr user.User
	if err := usr.SetPassword(pwd); err != nil {
		return "", err
	}
	return string(usr.PasswordHash), nil
}
