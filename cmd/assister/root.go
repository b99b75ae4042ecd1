package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"assister/internal/assistant"
	"assister/internal/config"
	"assister/internal/expert"
	"assister/internal/llm"
	"assister/internal/logger"
	"assister/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

const outputWidth = 100

var errEmptyQuestion = errors.New("質問内容を入力してください")

type rootOptions struct {
	mode       string
	configFile string
	raw        bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "assister [question]",
		Short: "assister asks a VSCode or Google Colab expert",
		Long: `assister forwards a programming question to an LLM acting as a VSCode or
Google Colab expert and shows the answer.

Without a question it opens an interactive form. With a question (as
arguments or on stdin) it prints the answer and exits.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, args, opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file (default $HOME/.config/assister/config.yaml)")
	cmd.Flags().StringVarP(&opts.mode, "mode", "m", "", "expert mode: vscode or colab (default from config)")
	cmd.Flags().BoolVar(&opts.raw, "raw", false, "print the answer without markdown rendering")

	cmd.AddCommand(newModesCmd(), newConfigCmd(&opts.configFile))
	return cmd
}

func loadConfig(configFile string) (*config.Config, error) {
	opts := config.DefaultOptions()
	opts.ConfigFile = configFile
	return config.Load(opts)
}

func runRoot(cmd *cobra.Command, args []string, opts *rootOptions) error {
	cfg, err := loadConfig(opts.configFile)
	if err != nil {
		return err
	}

	modeName := cfg.Mode
	if opts.mode != "" {
		modeName = opts.mode
	}
	mode, err := expert.ParseMode(modeName)
	if err != nil {
		return err
	}

	question := strings.Join(args, " ")

	in := cmd.InOrStdin()
	interactive := question == "" && isTerminal(in)
	if !interactive && !isTerminal(in) {
		b, err := io.ReadAll(in)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		if piped := string(b); strings.TrimSpace(piped) != "" {
			if question == "" {
				question = piped
			} else {
				question = fmt.Sprintf("%s\n\n%s", question, piped)
			}
		}
	}

	// The TUI owns the terminal, so it only logs to an explicit file.
	var fallback io.Writer = cmd.ErrOrStderr()
	if interactive {
		fallback = io.Discard
	}
	logOut, closeLog, err := logger.Open(cfg.Log.File, fallback)
	if err != nil {
		return err
	}
	defer closeLog()

	logCfg, err := logger.FromSettings(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	log := logger.New(logOut, logCfg)

	handler := assistant.New(assistant.Config{
		Provider:    cfg.Provider,
		APIKey:      cfg.OpenAI.APIKey,
		Model:       cfg.OpenAI.Model,
		Temperature: &cfg.OpenAI.Temperature,
		BaseURL:     cfg.OpenAI.BaseURL,
	}, llm.NewProvider, log)

	if interactive {
		return runInteractive(cmd, handler, mode, cfg.UI.Theme, log)
	}
	return runOnce(cmd, handler, question, mode, cfg.UI.Theme, opts.raw)
}

func runInteractive(cmd *cobra.Command, handler *assistant.Handler, mode expert.Mode, theme string, log *slog.Logger) error {
	// Resolve the background colour before the TUI takes over stdin.
	if theme == "" || theme == "auto" {
		theme = "light"
		if lipgloss.HasDarkBackground() {
			theme = "dark"
		}
	}
	log.Info("starting interactive form", "mode", mode.String(), "theme", theme)

	p := tea.NewProgram(
		ui.NewModel(cmd.Context(), handler.Answer, mode, theme),
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}

// runOnce prints a single answer. Failures are printed as warning lines and
// do not change the exit status.
func runOnce(cmd *cobra.Command, handler *assistant.Handler, question string, mode expert.Mode, theme string, raw bool) error {
	if strings.TrimSpace(question) == "" {
		return errEmptyQuestion
	}

	out := cmd.OutOrStdout()
	answer, err := handler.Answer(cmd.Context(), question, mode)
	if err != nil {
		_, werr := fmt.Fprintln(out, assistant.Display(err))
		return werr
	}

	if !raw {
		answer = ui.RenderMarkdown(answer, outputWidth, theme)
	}
	_, err = fmt.Fprintln(out, answer)
	return err
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return stat.Mode()&os.ModeCharDevice != 0
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
