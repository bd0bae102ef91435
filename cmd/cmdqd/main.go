// Package main implements the cmdq daemon (cmdqd).
package main

import (
	"os"

	"github.com/angrypants/cmdq/cmd/cmdqd/commands"
)

func main() {
	commands.SetupCommands()

	if err := commands.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
