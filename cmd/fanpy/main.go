// Package main implements the fanpy transpiler entry point.
package main

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/trevadelman/fantom/errors"
	"github.com/trevadelman/fantom/internal/fir"
	"github.com/trevadelman/fantom/internal/pypod"
	"github.com/trevadelman/fantom/logger"
)

// Version information
const Version = "0.1.0-dev"

var (
	flagOutDir  string
	flagNatives []string
	flagConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "fanpy",
	Short: "fanpy - pod AST to Python transpiler",
	Long: `fanpy lowers semantically-analyzed pod ASTs into Python 3.12 source trees.

Each input is one pod AST document produced by the front-end. The output is a
directory tree rooted at <out-dir>/fan/<pod>/ with one .py file per type plus
a lazy-loading __init__.py per pod. Hand-written native files are merged in
when a natives directory is configured for the pod.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		if err := logger.Initialize(verbosity); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

var transpileCmd = &cobra.Command{
	Use:   "transpile [flags] <pod.ast.json>...",
	Short: "Transpile pod AST files to Python",
	RunE:  runTranspile,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("fanpy version %s\n", Version)
		fmt.Printf("go version %s\n", runtime.Version())
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail)")

	transpileCmd.Flags().StringVarP(&flagOutDir, "out-dir", "o", "", "Output root directory")
	transpileCmd.Flags().StringArrayVar(&flagNatives, "natives", nil, "Native file directory for a pod, as pod=dir (repeatable)")
	transpileCmd.Flags().StringVar(&flagConfig, "config", "", "Config file (default fanpy.yaml in the working directory)")

	rootCmd.AddCommand(transpileCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig merges the config file under the command-line flags. Flags win.
func loadConfig() (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault("outDir", ".")
	if flagConfig != "" {
		v.SetConfigFile(flagConfig)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrap(err, "reading config file")
		}
		return v, nil
	}
	v.SetConfigName("fanpy")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "reading config file")
		}
	}
	return v, nil
}

func runTranspile(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	v, err := loadConfig()
	if err != nil {
		return err
	}

	outDir := v.GetString("outDir")
	if flagOutDir != "" {
		outDir = flagOutDir
	}

	natives := v.GetStringMapString("natives")
	if natives == nil {
		natives = map[string]string{}
	}
	for _, spec := range flagNatives {
		pod, dir, ok := strings.Cut(spec, "=")
		if !ok {
			return errors.Newf("invalid --natives value %q, want pod=dir", spec)
		}
		natives[pod] = dir
	}

	inputs := args
	if len(inputs) == 0 {
		inputs = v.GetStringSlice("pods")
	}
	if len(inputs) == 0 {
		return errors.New("no pod AST files given (arguments or 'pods' in config)")
	}

	opts := pypod.Options{OutDir: outDir, Natives: natives}
	rows := pterm.TableData{{"Pod", "Types", "Natives"}}

	for _, path := range inputs {
		sum, err := transpileOne(path, opts)
		if err != nil {
			logger.Sync()
			fmt.Fprintf(os.Stderr, "fanpy: %v\n", err)
			os.Exit(1)
		}
		rows = append(rows, []string{sum.Pod, fmt.Sprint(sum.TypesEmitted), fmt.Sprint(sum.NativesMerged)})
	}

	logger.Sync()
	_ = pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
	return nil
}

func transpileOne(path string, opts pypod.Options) (*pypod.Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()

	pod, err := fir.DecodePod(f)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s", path)
	}
	return pypod.EmitPod(pod, opts)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "fanpy: %v\n", err)
		os.Exit(1)
	}
}
