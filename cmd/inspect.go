package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sqlweft/sqlweft/internal/database/mysql"
	"github.com/sqlweft/sqlweft/internal/schema"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [table...]",
	Short: "Reflect tables and print them as CREATE TABLE statements",
	Long: `inspect reflects the named tables from the connected database and
prints each one as a CREATE TABLE statement. With no arguments it
inspects every base table in the current schema.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		log := newLogger()

		conn, err := connect(ctx)
		if err != nil {
			return err
		}
		defer conn.Close()

		d := mysql.NewDialect(mysql.WithLogger(log))

		names := args
		if len(names) == 0 {
			names, err = d.ListTables(ctx, conn)
			if err != nil {
				return err
			}
		}

		for _, name := range names {
			tbl := schema.NewTable(name)
			if err := d.ReflectTable(ctx, conn, tbl); err != nil {
				return err
			}
			fmt.Println(mysql.CreateTable(tbl))
			fmt.Println()
		}

		log.With().Int("tables", len(names)).Logger().Info("inspection complete")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
