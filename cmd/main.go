package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/neodocs/neodocs/cmd/service"
)

func main() {
	root := &cobra.Command{
		Use:   "neodocs",
		Short: "neodocs document vault service",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("empty command")
		},
	}

	root.AddCommand(service.NewCommand(), service.NewProcessCommand(), service.NewInitAdminCommand())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
