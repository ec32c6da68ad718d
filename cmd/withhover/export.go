package main

import (
	"github.com/spf13/cobra"

	"github.com/vango-dev/withhover/pkg/export"
)

func exportCmd(flags *globalFlags) *cobra.Command {
	var (
		bucket string
		prefix string
		region string
		pretty bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Publish static snapshots to S3",
		Long: `Render the configured page in its default and hovered states and
upload <prefix>default.html and <prefix>hovered.html to S3.

Credentials are read from AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY and
AWS_SESSION_TOKEN.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}

			f := cmd.Flags()
			if f.Changed("bucket") {
				cfg.Export.Bucket = bucket
			}
			if f.Changed("prefix") {
				cfg.Export.Prefix = prefix
			}
			if f.Changed("region") {
				cfg.Export.Region = region
			}

			client, err := export.NewS3Client(cfg.Export.Region)
			if err != nil {
				return err
			}

			keys, err := export.Publish(cmd.Context(), client, export.Config{
				Bucket: cfg.Export.Bucket,
				Prefix: cfg.Export.Prefix,
				Title:  cfg.Page.Title,
				Texts:  cfg.Page.Texts,
				Pretty: pretty,
				Logger: logger,
			})
			if err != nil {
				return err
			}
			for _, key := range keys {
				success(cmd.OutOrStdout(), "s3://%s/%s", cfg.Export.Bucket, key)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&bucket, "bucket", "b", "", "Target bucket (default from config)")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Key prefix (default from config)")
	cmd.Flags().StringVar(&region, "region", "", "AWS region (default from config)")
	cmd.Flags().BoolVarP(&pretty, "pretty", "p", false, "Indent the HTML")

	return cmd
}
