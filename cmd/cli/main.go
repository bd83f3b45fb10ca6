package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/BHUPESH003/research-paper-tracker/auth"
	"github.com/BHUPESH003/research-paper-tracker/bolt"
)

var (
	env string

	cfg        Configuration
	boltDriver *bolt.Driver
)

type Configuration struct {
	Bolt struct {
		Store string `toml:"store"`
	} `toml:"bolt"`
}

var rootCmd = cobra.Command{
	Use:   "tracker",
	Short: "Research paper tracker admin commands",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfgData, err := os.ReadFile(fmt.Sprintf("configuration/config.%s.toml", env))
		if err != nil {
			fmt.Println("error reading configuration:", err)
			os.Exit(1)
		}

		if err := toml.Unmarshal(cfgData, &cfg); err != nil {
			fmt.Println("error unmarshalling configuration:", err)
			os.Exit(1)
		}

		boltDriver = &bolt.Driver{}
		if err := boltDriver.Open(cfg.Bolt.Store); err != nil {
			fmt.Println("could not open bolt:", err)
			os.Exit(1)
		}
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		boltDriver.Close()
	},
}

var credentialsCmd = cobra.Command{
	Use:   "credentials",
	Short: "Issue a new access credential and print its key",
	Run: func(cmd *cobra.Command, args []string) {
		service := auth.NewCredentialService(&bolt.CredentialStore{Driver: boltDriver})

		key, err := service.Issue()
		if err != nil {
			fmt.Println("could not issue credential:", err)
			os.Exit(1)
		}

		// The secret is only stored hashed: this is the one time the full
		// key is visible.
		fmt.Println(key)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&env, "env", "dev", "")
	rootCmd.AddCommand(&credentialsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
