package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kamal-hamza/shot/internal/adapters/cloudflare"
	"github.com/kamal-hamza/shot/internal/adapters/repository"
	"github.com/kamal-hamza/shot/internal/core/services"
	"github.com/kamal-hamza/shot/pkg/config"
	"github.com/kamal-hamza/shot/pkg/logging"
	"github.com/kamal-hamza/shot/pkg/paths"
	"github.com/kamal-hamza/shot/pkg/ui"
)

var (
	// Global paths and configuration
	appPaths  *paths.Paths
	appConfig *config.Config
	logger    *zap.Logger

	// Services
	uploadService *services.UploadService
	authService   *services.AuthService

	// Adapters
	apiClient *cloudflare.Client
	credStore *repository.ConfigRepository

	// Global flags
	dryRun     bool
	copyFormat string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "shot",
	Short: "shot - Upload screenshots to Cloudflare Images",
	Long: ui.StyleTitle.Render("shot") + " - Screenshot uploader\n\n" +
		"Upload the image in your clipboard, or a local image file, to Cloudflare Images.\n" +
		"Images are encoded to PNG and shrunk once if they exceed the upload limit.\n\n" +
		"Running shot without a subcommand is the same as 'shot paste'.",
	SilenceUsage:      true,
	PersistentPreRunE: initializeApp,
	RunE:              runDefault,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if logger != nil {
		_ = logger.Sync()
	}
	if err != nil {
		stop()
		os.Exit(1)
	}
}

func init() {
	// Add subcommands
	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(pasteCmd)
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&dryRun, "dry-run", "d", false, "Preview the command without performing any network or config writes")
	rootCmd.PersistentFlags().StringVar(&copyFormat, "copy", "", "Copy the first variant link after upload (url, markdown, html, none)")
}

// initializeApp initializes the application components
func initializeApp(cmd *cobra.Command, args []string) error {
	// Skip initialization for commands that need no config
	if cmd.Name() == "version" || cmd.Name() == "help" {
		return nil
	}

	logger = logging.FromEnv()

	p, err := paths.New()
	if err != nil {
		return fmt.Errorf("failed to resolve config path: %w", err)
	}
	appPaths = p

	cfg, err := config.Load(appPaths.ConfigPath)
	if err != nil {
		return err
	}
	appConfig = cfg

	if copyFormat == "" {
		copyFormat = appConfig.CopyFormat
	}
	if !config.IsValidCopyFormat(copyFormat) {
		return fmt.Errorf("invalid --copy value %q (use url, markdown, html or none)", copyFormat)
	}

	ui.SetTheme(appConfig.ColorTheme)

	logger.Debug("config loaded",
		zap.String("path", appPaths.ConfigPath),
		zap.String("api_base", appConfig.APIBase),
		zap.Bool("dry_run", dryRun))

	// Initialize adapters
	apiClient = cloudflare.New(appConfig.APIBase, appConfig.Timeout(), logger)
	credStore = repository.NewConfigRepository(appPaths.ConfigPath)

	// Initialize services
	fitService, err := services.NewFitService(services.Limits{
		HardLimit: appConfig.HardLimit,
		Target:    appConfig.ResizeTarget,
	}, logger)
	if err != nil {
		return err
	}
	uploadService = services.NewUploadService(fitService, apiClient, logger)
	authService = services.NewAuthService(apiClient, credStore, logger)

	return nil
}

// runDefault runs paste when no subcommand is given
func runDefault(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unknown command %q for %q", args[0], cmd.CommandPath())
	}

	fmt.Fprintln(cmd.OutOrStdout(), ui.FormatInfo(
		"Using `shot` without a subcommand defaults to `shot paste`. "+
			"If this is not intended, add a subcommand. Use `shot -h` for more information."))

	return runPaste(cmd, args)
}
