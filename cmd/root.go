package cmd

import (
	"fmt"
	"os"

	"github.com/crudgen/crudgen/cmd/generate"
	"github.com/crudgen/crudgen/cmd/inspect"
	"github.com/crudgen/crudgen/internal/logger"
	"github.com/crudgen/crudgen/internal/version"
	"github.com/spf13/cobra"
)

var (
	Debug   bool
	LogFile string
)

var RootCmd = &cobra.Command{
	Use:   "crudgen",
	Short: "CRUD stored procedure generator for PostgreSQL and SQL Server",
	Long: fmt.Sprintf(`crudgen generates insert, update, delete and select stored procedures
from table metadata, as PL/pgSQL functions or T-SQL procedures.

Version: %s

Commands:
  generate  Generate CRUD routines for database tables
  inspect   Show table metadata
  version   Show version information

Use "crudgen [command] --help" for more information about a command.`, version.String()),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogger()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Close()
	},
}

func init() {
	RootCmd.PersistentFlags().BoolVar(&Debug, "debug", false, "Enable debug logging")
	RootCmd.PersistentFlags().StringVar(&LogFile, "log-file", "", "Also write JSON logs to this file (rotated)")
	RootCmd.AddCommand(generate.GenerateCmd)
	RootCmd.AddCommand(inspect.InspectCmd)
	RootCmd.AddCommand(VersionCmd)
}

func setupLogger() {
	logger.Setup(logger.Config{
		Debug:          Debug,
		FilePath:       LogFile,
		FileMaxSizeMB:  10,
		FileMaxBackups: 3,
		FileMaxAgeDays: 28,
	})
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		logger.Close()
		os.Exit(1)
	}
}
