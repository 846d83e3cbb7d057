package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sqlweft/sqlweft/internal/database/mysql"
	"github.com/sqlweft/sqlweft/internal/snapshot"
	snapminio "github.com/sqlweft/sqlweft/internal/snapshot/minio"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Reflect the full schema and archive it as a YAML snapshot",
	Long: `snapshot reflects every base table in the current schema, encodes
the result as a YAML document, and uploads it to the configured object
store under <database>/<timestamp>.yaml. Without a configured endpoint
the document is printed to stdout instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		log := newLogger()

		conn, err := connect(ctx)
		if err != nil {
			return err
		}
		defer conn.Close()

		d := mysql.NewDialect(mysql.WithLogger(log))
		info, err := d.InspectSchema(ctx, conn)
		if err != nil {
			return err
		}

		at := time.Now()
		doc := snapshot.Build(info, at)
		data, err := doc.Encode()
		if err != nil {
			return err
		}

		storeCfg := &snapshot.Config{
			Endpoint:  viper.GetString("snapshot.endpoint"),
			AccessKey: viper.GetString("snapshot.access_key"),
			SecretKey: viper.GetString("snapshot.secret_key"),
			UseSSL:    viper.GetBool("snapshot.use_ssl"),
			Region:    viper.GetString("snapshot.region"),
			Bucket:    viper.GetString("snapshot.bucket"),
		}

		if storeCfg.Endpoint == "" {
			fmt.Print(string(data))
			return nil
		}
		if storeCfg.Bucket == "" {
			return fmt.Errorf("snapshot.bucket is required when snapshot.endpoint is set")
		}

		store, err := snapminio.New(ctx, storeCfg)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.EnsureBucket(ctx, storeCfg.Bucket); err != nil {
			return err
		}

		key := snapshot.Key(info.Database, at)
		if err := store.Put(ctx, storeCfg.Bucket, key, data); err != nil {
			return err
		}

		log.With().
			Str("bucket", storeCfg.Bucket).
			Str("key", key).
			Int("tables", len(info.Tables)).
			Logger().Info("snapshot uploaded")
		return nil
	},
}

var fetchCmd = &cobra.Command{
	Use:   "fetch <key>",
	Short: "Download an archived snapshot and print it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		storeCfg := &snapshot.Config{
			Endpoint:  viper.GetString("snapshot.endpoint"),
			AccessKey: viper.GetString("snapshot.access_key"),
			SecretKey: viper.GetString("snapshot.secret_key"),
			UseSSL:    viper.GetBool("snapshot.use_ssl"),
			Region:    viper.GetString("snapshot.region"),
			Bucket:    viper.GetString("snapshot.bucket"),
		}
		if storeCfg.Endpoint == "" || storeCfg.Bucket == "" {
			return fmt.Errorf("snapshot.endpoint and snapshot.bucket are required")
		}

		store, err := snapminio.New(ctx, storeCfg)
		if err != nil {
			return err
		}
		defer store.Close()

		data, err := store.Get(ctx, storeCfg.Bucket, args[0])
		if err != nil {
			return err
		}
		fmt.Print(string(data))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(snapshotCmd)
	snapshotCmd.AddCommand(fetchCmd)

	snapshotCmd.PersistentFlags().String("bucket", "", "object store bucket for snapshots")
	_ = viper.BindPFlag("snapshot.bucket", snapshotCmd.PersistentFlags().Lookup("bucket"))
}
