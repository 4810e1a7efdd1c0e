package main

import (
	"log"
	"os"

	"github.com/ardiann-eng/CryptgenFix122/apps/shared"
)

func main() {
	logger := log.New(os.Stderr, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	validate, _ := shared.NewValidator()
	cli := commandLine{
		out:      os.Stdout,
		validate: validate,
	}
	if err := cli.run(os.Args[1:]); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}
