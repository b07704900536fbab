package cmd

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/westbourne-advisory/website/api"
	"github.com/westbourne-advisory/website/cms"
	"github.com/westbourne-advisory/website/config"
	"github.com/westbourne-advisory/website/sitemap"
)

func newSitemapCommand() *cobra.Command {
	var siteURL string

	cmd := &cobra.Command{
		Use:   "sitemap",
		Short: "Print sitemap.xml to stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			if siteURL == "" {
				siteURL = config.GetString(appConfig, "SITE_URL", api.DefaultSiteURL)
			}

			client, closer, err := newCMSClient(cmd.Context(), appConfig, cms.NewMetrics(prometheus.NewRegistry()))
			if err != nil {
				return err
			}
			defer closer.Close()

			entries := sitemap.Generate(cmd.Context(), client, siteURL, time.Now())
			return sitemap.Write(cmd.OutOrStdout(), entries)
		},
	}

	cmd.Flags().StringVar(&siteURL, "site-url", "", "base URL of the site (defaults to SITE_URL)")
	return cmd
}
