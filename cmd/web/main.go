package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/BHUPESH003/research-paper-tracker/auth"
	"github.com/BHUPESH003/research-paper-tracker/bolt"
	"github.com/BHUPESH003/research-paper-tracker/log"
	"github.com/BHUPESH003/research-paper-tracker/papers"
	papershttp "github.com/BHUPESH003/research-paper-tracker/papers/http"
	"github.com/BHUPESH003/research-paper-tracker/ratelimit"
	"github.com/BHUPESH003/research-paper-tracker/web"
)

var (
	// flags
	env string

	// logger
	logger log.Logger

	// config
	cfg Configuration

	// drivers
	boltDriver *bolt.Driver
)

type Configuration struct {
	Server struct {
		Addr string `toml:"addr"`
	} `toml:"server"`
	Bolt struct {
		Store string `toml:"store"`
	} `toml:"bolt"`
	RateLimit struct {
		Read  int `toml:"read"`
		Write int `toml:"write"`
	} `toml:"ratelimit"`
}

var rootCmd = cobra.Command{
	Use:   "tracker-web",
	Short: "Serve the research paper tracker API",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Load configuration
		cfgData, err := os.ReadFile(fmt.Sprintf("configuration/config.%s.toml", env))
		if err != nil {
			fmt.Println("error reading configuration:", err)
			os.Exit(1)
		}

		err = toml.Unmarshal(cfgData, &cfg)
		if err != nil {
			fmt.Println("error unmarshalling configuration:", err)
			os.Exit(1)
		}

		// Create logger
		logger = log.New(env)

		// Open store
		boltDriver = &bolt.Driver{}
		if err := boltDriver.Open(cfg.Bolt.Store); err != nil {
			logger.Fatal("could not open bolt:", err)
		}
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		boltDriver.Close()
	},
	Run: func(cmd *cobra.Command, args []string) {
		paperStore := &bolt.PaperStore{Driver: boltDriver}
		credentialStore := &bolt.CredentialStore{Driver: boltDriver}

		// Create services
		paperService := papers.NewService(paperStore)
		credentialService := auth.NewCredentialService(credentialStore)
		authenticator := auth.NewAuthenticator(credentialService)
		limiter := ratelimit.New(cfg.RateLimit.Read, cfg.RateLimit.Write)

		// Register endpoints
		srv := web.NewServer(logger)
		papershttp.RegisterPaperEndpoints(srv, paperService, authenticator, limiter)
		auth.RegisterEndpoints(srv, credentialService)

		logger.Print("server started, listening on", cfg.Server.Addr)
		if err := srv.Run(cfg.Server.Addr); err != nil {
			logger.Fatal("server stopped:", err)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&env, "env", "dev", "")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
