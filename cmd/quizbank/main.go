package main

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pavelanni/quizbank/internal/bank"
	"github.com/pavelanni/quizbank/internal/handler"
	"github.com/pavelanni/quizbank/internal/model"
	"github.com/pavelanni/quizbank/internal/report"
)

//go:generate templ generate

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "quizbank",
		Short: "Build TOEFL reading question banks from Word documents",
	}
	root.AddCommand(extractCmd(), convertCmd(), serveCmd())
	return root
}

func extractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract <file.docx>",
		Short: "Print the paragraph text of a Word document, one paragraph per line",
		Args:  cobra.ExactArgs(1),
		RunE:  runExtract,
	}
	f := cmd.Flags()
	f.StringP("output", "o", "-", "Output file path (- for stdout)")
	addLogFlags(f)
	return cmd
}

func convertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <input>",
		Short: "Convert a .docx or extracted text file into a question bank",
		Args:  cobra.ExactArgs(1),
		RunE:  runConvert,
	}
	f := cmd.Flags()
	f.StringP("output", "o", "-", "Output file path (- for stdout)")
	f.StringP("format", "f", "", "Output format (json, yaml); default from output extension")
	f.Bool("strict", false, "Fail when any line is dropped or ids are irregular")
	f.Bool("report", true, "Print a conversion summary to stderr")
	f.Bool("no-color", false, "Disable colors in the summary")
	addLogFlags(f)
	return cmd
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the quiz front-end with a question bank",
		RunE:  runServe,
	}
	f := cmd.Flags()
	f.StringP("addr", "a", ":8080", "HTTP listen address")
	f.StringP("bank", "b", "", "Question bank file (JSON or YAML)")
	f.StringP("source", "s", "", "Convert this .docx or text file at startup instead of loading --bank")
	f.Bool("strict", false, "Fail when the source conversion reports diagnostics")
	f.String("static", "", "Directory with the static quiz front-end, served under /quiz/")
	f.String("quiz-url", handler.DefaultQuizURL, "Iframe source for the wrapper page")
	f.String("base-path", "", "URL prefix for sub-path deployments (e.g. /toefl)")
	f.StringSlice("cors-origins", []string{"*"}, "Allowed CORS origins (repeatable)")
	addLogFlags(f)
	return cmd
}

func addLogFlags(f *pflag.FlagSet) {
	f.String("log-level", "info", "Log level (debug, info, warn, error)")
	f.String("log-format", "text", "Log format (text, json)")
}

func setupLogging(cmd *cobra.Command) {
	v := viperForCmd(cmd)

	var logLevel slog.Level
	switch strings.ToLower(v.GetString("log-level")) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	handlerOpts := &slog.HandlerOptions{Level: logLevel}
	var logHandler slog.Handler
	switch strings.ToLower(v.GetString("log-format")) {
	case "json":
		logHandler = slog.NewJSONHandler(os.Stderr, handlerOpts)
	default:
		logHandler = slog.NewTextHandler(os.Stderr, handlerOpts)
	}
	slog.SetDefault(slog.New(logHandler))
}

// viperForCmd binds a command's flags and environment to a fresh viper instance.
func viperForCmd(cmd *cobra.Command) *viper.Viper {
	v := viper.New()
	_ = v.BindPFlags(cmd.Flags())

	v.SetEnvPrefix("QUIZBANK")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("quizbank")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/quizbank")
	v.AddConfigPath("/etc/quizbank")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Warn("error reading config file", "error", err)
		}
	} else {
		slog.Debug("loaded config file", "path", v.ConfigFileUsed())
	}

	return v
}

func runExtract(cmd *cobra.Command, args []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)

	lines, err := extractDocx(args[0])
	if err != nil {
		return err
	}

	return writeOutput(cmd, v.GetString("output"), func(w io.Writer) error {
		for _, line := range lines {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
		return nil
	})
}

func runConvert(cmd *cobra.Command, args []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)

	doc, err := convertSource(args[0], v.GetBool("strict"))
	if err != nil {
		return err
	}

	outPath := v.GetString("output")
	format := bank.FormatFromPath(outPath)
	if name := v.GetString("format"); name != "" {
		if format, err = bank.ParseFormat(name); err != nil {
			return err
		}
	}

	if outPath == "" || outPath == "-" {
		if err := bank.Write(cmd.OutOrStdout(), doc, format); err != nil {
			return err
		}
	} else {
		if err := bank.WriteFile(outPath, doc, format); err != nil {
			return err
		}
		slog.Info("wrote question bank", "path", outPath, "questions", len(doc.Questions), "format", format)
	}

	if v.GetBool("report") {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), report.Render(report.Summarize(doc), v.GetBool("no-color")))
	}
	return nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)

	doc, err := loadBank(v.GetString("bank"), v.GetString("source"), v.GetBool("strict"))
	if err != nil {
		return err
	}

	cfg := model.ServeConfig{
		StaticDir:   v.GetString("static"),
		QuizURL:     v.GetString("quiz-url"),
		BasePath:    handler.NormalizeBasePath(v.GetString("base-path")),
		CORSOrigins: v.GetStringSlice("cors-origins"),
	}
	if cfg.StaticDir != "" {
		if fi, err := os.Stat(cfg.StaticDir); err != nil || !fi.IsDir() {
			return fmt.Errorf("static dir %q is not a directory", cfg.StaticDir)
		}
	}

	h, err := handler.New(doc, cfg)
	if err != nil {
		return fmt.Errorf("create handler: %w", err)
	}

	addr := v.GetString("addr")
	slog.Info("starting server",
		"addr", addr,
		"title", doc.Title,
		"questions", len(doc.Questions),
		"static", cfg.StaticDir,
		"quiz_url", cfg.QuizURL,
		"base_path", cfg.BasePath,
	)
	return http.ListenAndServe(addr, h.Router())
}

// loadBank reads a bank file, or converts source when it is set.
func loadBank(bankPath, source string, strict bool) (*model.Document, error) {
	switch {
	case source != "":
		return convertSource(source, strict)
	case bankPath != "":
		doc, err := bank.ReadFile(bankPath)
		if err != nil {
			return nil, fmt.Errorf("load bank: %w", err)
		}
		slog.Info("loaded question bank", "path", bankPath, "questions", len(doc.Questions))
		return doc, nil
	}
	return nil, fmt.Errorf("one of --bank or --source is required")
}

// writeOutput runs write against stdout for "-" or "", else against a new file.
func writeOutput(cmd *cobra.Command, outPath string, write func(io.Writer) error) error {
	if outPath == "" || outPath == "-" {
		return write(cmd.OutOrStdout())
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write output: %w", err)
	}
	return f.Close()
}
