package main

import (
	"os"

	"github.com/simonhull/create-my-stack/internal/commands"
)

func main() {
	rootCmd := commands.RootCmd()

	rootCmd.AddCommand(commands.TemplateCmd())
	rootCmd.AddCommand(commands.ListCmd())

	if err := commands.Execute(rootCmd); err != nil {
		os.Exit(1)
	}
}
