package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/capiwear/storefront/internal/config"
	"github.com/capiwear/storefront/internal/constants"
	"github.com/capiwear/storefront/internal/log"
)

const logFile = "storefront.log"

func Start() {
	logger := log.Get(logFile, config.Application{Env: os.Getenv("STOREFRONT_ENV")}).
		With().
		Str(log.KeyAppName, constants.AppStorefront).
		Str(log.KeyTag, "main Start").
		Logger()

	logger.Info().Msg("adding listener for SIGINT and SIGTERM")
	c, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger.Info().Msg("added listener for SIGINT and SIGTERM")

	c = logger.WithContext(c)

	rootCmd := &cobra.Command{
		Use:   "storefront",
		Short: "CapiWear storefront client",
	}

	shopCmd := &cobra.Command{
		Use:   "shop [category]",
		Short: "Run an interactive shopping session",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			category := "camisetas"
			if len(args) > 0 {
				category = args[0]
			}
			runShop(cmd.Context(), category)
		},
	}

	productsCmd := &cobra.Command{
		Use:   "products",
		Short: "List products matching the given filters",
		Run: func(cmd *cobra.Command, args []string) {
			runProducts(cmd.Context(), cmd)
		},
	}
	productsCmd.Flags().String("category", "", "category slug")
	productsCmd.Flags().String("sub", "", "subcategory")
	productsCmd.Flags().StringArray("style", nil, "style tag, repeatable")
	productsCmd.Flags().String("min", "", "minimum price")
	productsCmd.Flags().String("max", "", "maximum price")
	productsCmd.Flags().Int("page", 1, "page")
	productsCmd.Flags().Int("page-size", 24, "page size")
	productsCmd.Flags().String("q", "", "free text search")

	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and persist the session",
		Run: func(cmd *cobra.Command, args []string) {
			runLogin(cmd.Context(), cmd)
		},
	}
	loginCmd.Flags().String("email", "", "account email")
	loginCmd.Flags().String("password", "", "account password")
	loginCmd.Flags().Bool("remember", true, "persist the session durably")

	registerCmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		Run: func(cmd *cobra.Command, args []string) {
			runRegister(cmd.Context(), cmd)
		},
	}
	registerCmd.Flags().String("name", "", "full name")
	registerCmd.Flags().String("email", "", "account email")
	registerCmd.Flags().String("password", "", "account password")
	registerCmd.Flags().String("confirm", "", "password confirmation")
	registerCmd.Flags().Bool("accept-terms", false, "accept the terms and privacy policy")
	registerCmd.Flags().Bool("remember", true, "persist the session durably")

	logoutCmd := &cobra.Command{
		Use:   "logout",
		Short: "Clear the persisted session",
		Run: func(cmd *cobra.Command, args []string) {
			runLogout(cmd.Context())
		},
	}

	whoamiCmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		Run: func(cmd *cobra.Command, args []string) {
			runWhoami(cmd.Context())
		},
	}

	rootCmd.AddCommand(shopCmd, productsCmd, loginCmd, registerCmd, logoutCmd, whoamiCmd)
	if err := rootCmd.ExecuteContext(c); err != nil {
		logger.Fatal().Err(err).Msgf("error when executing command=%s", err.Error())
	}
}
