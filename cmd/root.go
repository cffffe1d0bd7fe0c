package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"engagementAPI/internal/config"
	"engagementAPI/internal/localstore"
)

var (
	envFile   string
	apiURL    string
	cachePath string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "engagement",
	Short: "Engagement announcement page with a guestbook",
	Long: `engagement serves the announcement page and its guestbook API, and
doubles as a small client for the same API with an offline cache.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if envFile != "" {
			cfg, err = config.Load(envFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		config.Logging(cfg.LogLevel)

		if apiURL != "" {
			cfg.APIURL = apiURL
		}
		if cachePath != "" {
			cfg.CachePath = cachePath
		}
		if cfg.CachePath == "" {
			cfg.CachePath = config.DefaultCachePath()
		}
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file to load (default .env)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "base URL of the guestbook API (overrides API_URL)")
	rootCmd.PersistentFlags().StringVar(&cachePath, "cache", "", "path of the local cache database (overrides CACHE_PATH)")
}

func openCache() (*localstore.Store, error) {
	store, err := localstore.Open(cfg.CachePath)
	if err != nil {
		return nil, fmt.Errorf("opening local cache %s: %w", cfg.CachePath, err)
	}
	return store, nil
}
