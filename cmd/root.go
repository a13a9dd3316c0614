package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"kubesh/internal/config"
	"kubesh/internal/kube"
	"kubesh/internal/shell"
	"kubesh/pkg/logging"
)

var (
	rootContext   string
	rootNamespace string
	rootVerbose   bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "kubesh",
	Short: "An interactive shell for your Kubernetes clusters",
	Long: `kubesh drops you into a prompt where cluster objects are listed with
indexes, selected by index or range, and acted on with short commands
(logs, exec, delete, port-forward and friends). Selections, the active
context and the active namespace live in the prompt so you always see
what a command will hit.`,
	Args: cobra.NoArgs,
	// SilenceUsage is set to true to prevent printing usage message on errors
	// handled by us (e.g. invalid arguments, failed connections)
	SilenceUsage: true,
	RunE:         runShell,
}

// SetVersion sets the version for the root command
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "kubesh version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		// Cobra prints the error, we just exit non-zero
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())
	rootCmd.AddCommand(newMCPCmd())

	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.Flags().StringVarP(&rootContext, "context", "c", "", "Kubeconfig context to start in (default: the kubeconfig's current context)")
	rootCmd.Flags().StringVarP(&rootNamespace, "namespace", "n", "", "Namespace to start in (default: all namespaces)")
}

func runShell(cmd *cobra.Command, args []string) error {
	settings, err := config.Load()
	if err != nil {
		// Run on defaults rather than refusing to start.
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	initLogging(settings.LogLevel)

	kubeContext, err := resolveStartContext(rootContext)
	if err != nil {
		return err
	}

	sh := shell.New(&settings, kubeContext, rootNamespace, os.Stdout, os.Stdin)
	return sh.Run(cmd.Context())
}

// initLogging points diagnostics at stderr so they never interleave with
// command output, at --verbose or the configured level.
func initLogging(configured string) {
	level := logging.ParseLevel(configured)
	if rootVerbose {
		level = logging.LevelDebug
	}
	logging.Init(level, os.Stderr)
}

// resolveStartContext picks the context the shell opens with: the --context
// flag when given (and present in the kubeconfig), the kubeconfig's current
// context otherwise. No kubeconfig at all just means starting disconnected.
func resolveStartContext(flagValue string) (string, error) {
	if flagValue != "" {
		ok, err := kube.HasContext(flagValue)
		if err != nil {
			return "", fmt.Errorf("reading kubeconfig: %w", err)
		}
		if !ok {
			return "", fmt.Errorf("context %q not found in kubeconfig", flagValue)
		}
		return flagValue, nil
	}

	_, current, err := kube.Contexts()
	if err != nil {
		logging.Warn("CLI", "No kubeconfig found, starting disconnected: %v", err)
		return "", nil
	}
	return current, nil
}
