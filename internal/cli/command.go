package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/ipacheck/internal"
	"codeberg.org/snonux/ipacheck/internal/ipa"
	"codeberg.org/snonux/ipacheck/internal/phonetic"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ipacheck [transcription...]",
		Short: "IPA transcription validator and normalizer",
		Long: `ipacheck checks that transcriptions only use International Phonetic
Alphabet symbols, optionally rewriting shorthand notation first.

Examples:
  ipacheck /ˈkæt/                                  # Strip delimiters and validate
  ipacheck --normalize "'kæt:"                     # Rewrite ' : , shorthand first
  ipacheck --normalize --speech-synthesis /pʰæt/   # Reduce to a TTS friendly symbol set
  ipacheck --batch words.txt --record              # Validate a file and keep the results
  ipacheck --lookup cat dog                        # Look up and validate dictionary words
  ipacheck --lookup --lookup-provider gemini cat   # Look up words with Google Gemini
  ipacheck --history 20                            # Show the last recorded results`,
		Version:       internal.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	return rootCmd
}

// DefaultDatabasePath returns the default location of the history database
func DefaultDatabasePath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", "ipacheck", "history.db")
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.ipacheck.yaml)")
	cmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "Log level: debug, info, warn, error")

	// Pipeline flags
	cmd.Flags().BoolVar(&flags.Strip, "strip", flags.Strip, "Remove '/', '[' and ']' delimiters before validating")
	cmd.Flags().BoolVar(&flags.Normalize, "normalize", flags.Normalize, "Rewrite ' : , shorthand into IPA stress and length marks")
	cmd.Flags().BoolVar(&flags.SpeechSynthesis, "speech-synthesis", flags.SpeechSynthesis, "Normalize for speech synthesis engines (requires --normalize)")
	cmd.Flags().BoolVar(&flags.Decompose, "decompose", flags.Decompose, "Decompose precomposed characters (NFD) before processing")

	// Input flags
	cmd.Flags().StringVar(&flags.BatchFile, "batch", "", "Validate transcriptions from file (one per line, optional 'label = ' prefix)")
	cmd.Flags().BoolVar(&flags.Lookup, "lookup", false, "Treat arguments as words and look up their IPA transcription via a language model")
	cmd.Flags().StringVar(&flags.LookupProvider, "lookup-provider", flags.LookupProvider, "Language model provider used for --lookup (openai, gemini)")
	cmd.Flags().StringVar(&flags.LookupModel, "lookup-model", flags.LookupModel, "Model used for --lookup (default: the provider's default model)")
	cmd.Flags().StringVar(&flags.LookupLanguage, "lookup-language", flags.LookupLanguage, "Language of the words looked up with --lookup")

	// History flags
	cmd.Flags().BoolVar(&flags.Record, "record", false, "Record results in the history database")
	cmd.Flags().StringVar(&flags.Database, "database", DefaultDatabasePath(), "History database file")
	cmd.Flags().BoolVar(&flags.Archive, "archive", false, "Move the history database into the archive directory and exit")
	cmd.Flags().IntVar(&flags.History, "history", 0, "Show the last N recorded results and exit")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("log.level", cmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("validate.strip", cmd.Flags().Lookup("strip"))
	viper.BindPFlag("validate.normalize", cmd.Flags().Lookup("normalize"))
	viper.BindPFlag("validate.speech_synthesis", cmd.Flags().Lookup("speech-synthesis"))
	viper.BindPFlag("validate.decompose", cmd.Flags().Lookup("decompose"))
	viper.BindPFlag("lookup.provider", cmd.Flags().Lookup("lookup-provider"))
	viper.BindPFlag("lookup.model", cmd.Flags().Lookup("lookup-model"))
	viper.BindPFlag("lookup.language", cmd.Flags().Lookup("lookup-language"))
	viper.BindPFlag("output.database", cmd.Flags().Lookup("database"))
	viper.BindPFlag("output.record", cmd.Flags().Lookup("record"))
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".ipacheck" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".ipacheck")
	}

	// Environment variables
	viper.SetEnvPrefix("IPACHECK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetOptions resolves the pipeline options from flags, config and environment
func GetOptions() ipa.Options {
	return ipa.Options{
		Strip:           viper.GetBool("validate.strip"),
		Normalize:       viper.GetBool("validate.normalize"),
		SpeechSynthesis: viper.GetBool("validate.speech_synthesis"),
	}
}

// GetDecompose reports whether input is NFD decomposed before processing
func GetDecompose() bool {
	return viper.GetBool("validate.decompose")
}

// GetRecord reports whether results are written to the history database
func GetRecord() bool {
	return viper.GetBool("output.record")
}

// GetDatabasePath returns the history database path
func GetDatabasePath() string {
	if path := viper.GetString("output.database"); path != "" {
		return path
	}
	return DefaultDatabasePath()
}

// GetLogLevel returns the configured log level
func GetLogLevel() string {
	return viper.GetString("log.level")
}

// GetLookupProvider returns the language model provider used for word lookups
func GetLookupProvider() string {
	return viper.GetString("lookup.provider")
}

// GetLookupModel returns the model used for word lookups. Empty selects the
// provider's default model.
func GetLookupModel() string {
	return viper.GetString("lookup.model")
}

// GetLookupLanguage returns the language of looked up words
func GetLookupLanguage() string {
	return viper.GetString("lookup.language")
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	// First check environment variable
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}

	// Then check config file
	return viper.GetString("lookup.openai_key")
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("lookup.gemini_key")
}

// GetLookupKey returns the API key of the given lookup provider
func GetLookupKey(provider string) string {
	if provider == phonetic.ProviderGemini {
		return GetGeminiKey()
	}
	return GetOpenAIKey()
}
