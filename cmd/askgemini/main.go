package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/huh/spinner"
	"github.com/rafael-ulguim1/askgemini/pkg/appdir"
	"github.com/rafael-ulguim1/askgemini/pkg/config"
	"github.com/rafael-ulguim1/askgemini/pkg/credential"
	"github.com/rafael-ulguim1/askgemini/pkg/gemini"
	"github.com/rafael-ulguim1/askgemini/pkg/generation"
)

func main() {
	// Handle subcommands before flag parsing.
	if len(os.Args) > 1 && os.Args[1] == "init" {
		initCmd := flag.NewFlagSet("init", flag.ExitOnError)
		initCmd.Usage = func() {
			fmt.Fprintf(os.Stderr, "Usage: askgemini init [flags]\n\nInitialize a .askgemini directory with a starter config.\n\nFlags:\n")
			initCmd.PrintDefaults()
		}
		dir := initCmd.String("dir", ".askgemini", "path to the .askgemini directory")
		_ = initCmd.Parse(os.Args[2:])

		if err := runInit(*dir); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}

		return
	}

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: askgemini [flags] [prompt]\n       askgemini init [flags]\n\nSends a prompt to the Gemini API and prints the response. The prompt is\nread from the arguments, piped stdin, or an interactive form.\n\nFlags:\n")
		flag.PrintDefaults()
	}

	var o runOpts
	flag.StringVar(&o.configPath, "config", "", "path to configuration file (default: .askgemini/config.yaml or askgemini.yaml)")
	flag.StringVar(&o.envFile, "env", ".env", "path to .env file (ignored if missing)")
	flag.StringVar(&o.model, "model", "", "model to call (overrides config)")
	flag.StringVar(&o.system, "system", "", "system instruction (overrides config)")
	flag.Float64Var(&o.temperature, "temperature", -1, "sampling temperature in [0,1] (overrides config)")
	flag.IntVar(&o.maxTokens, "max-tokens", 0, "maximum output tokens (overrides config)")
	flag.DurationVar(&o.timeout, "timeout", 0, "request timeout (overrides config)")
	flag.BoolVar(&o.plain, "plain", false, "print the response without markdown rendering")
	flag.BoolVar(&o.verbose, "verbose", false, "enable debug logging")
	flag.Parse()
	o.args = flag.Args()

	if err := run(o); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

// runOpts carries the parsed command-line options into run.
type runOpts struct {
	configPath  string
	envFile     string
	model       string
	system      string
	temperature float64
	maxTokens   int
	timeout     time.Duration
	plain       bool
	verbose     bool
	args        []string
}

func runInit(dirPath string) error {
	d := appdir.New(dirPath)

	if err := appdir.Bootstrap(d); err != nil {
		return err
	}

	fmt.Printf("Initialized %s\n", d.Root())

	return nil
}

func run(o runOpts) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := loadDotEnv(o.envFile); err != nil {
		return err
	}

	logger := newLogger(o.verbose)

	cfgPath := resolveConfigPath(o.configPath, ".askgemini")

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	applyOverrides(&cfg, o)

	if err := cfg.Validate(); err != nil {
		return err
	}

	// Resolve the credential before touching the prompt so a missing key
	// fails fast, before any interactive input.
	cred, err := credential.Load(cfg.APIKey)
	if err != nil {
		return err
	}

	prompt, err := resolvePrompt(o.args, os.Stdin)
	if err != nil {
		return err
	}

	adapter := gemini.New(cfg.BaseURL, cred)
	adapter.Logger = logger
	adapter.Client = &http.Client{Timeout: cfg.TimeoutDuration()}

	gen := generation.NewRetrier(adapter, generation.RetryOpts{
		MaxRetries: cfg.Retry.MaxRetries,
		BaseDelay:  cfg.Retry.BaseDelayDuration(),
	})

	req := generation.Request{Prompt: prompt, Params: cfg.Params()}

	var res generation.Result
	call := func(ctx context.Context) error {
		var genErr error
		res, genErr = gen.Generate(ctx, req)

		return genErr
	}

	if isTerminal(os.Stdout) {
		err = spinner.New().
			Title("Waiting for " + cfg.Model + "...").
			Context(ctx).
			ActionWithErr(call).
			Run()
	} else {
		err = call(ctx)
	}

	if err != nil {
		return err
	}

	logger.Debug().
		Str("finish_reason", res.FinishReason).
		Int("total_tokens", res.Usage.TotalTokens).
		Msg("printing result")

	if isTerminal(os.Stdout) && !o.plain {
		fmt.Println(renderMarkdown(res.Text))
	} else {
		fmt.Println(res.Text)
	}

	return nil
}

// applyOverrides applies the command-line flags on top of the loaded
// config. Unset flags leave the config values untouched.
func applyOverrides(cfg *config.Config, o runOpts) {
	if o.model != "" {
		cfg.Model = o.model
	}
	if o.system != "" {
		cfg.SystemInstruction = o.system
	}
	if o.temperature >= 0 {
		cfg.Temperature = o.temperature
	}
	if o.maxTokens > 0 {
		cfg.MaxOutputTokens = o.maxTokens
	}
	if o.timeout > 0 {
		cfg.Timeout = o.timeout.String()
	}
}
