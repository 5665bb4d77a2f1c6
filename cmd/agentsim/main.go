// Command agentsim runs the agent simulator: a run engine backed by
// either the built-in mock content generator or a real OpenAI-backed
// executor, optionally exposing a read-only debug HTTP API and
// exporting OpenTelemetry traces/metrics.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"agentverse/config"
	"agentverse/debugserver"
	"agentverse/executor/openaiexec"
	"agentverse/internal/telemetry"
	"agentverse/log"
	"agentverse/runengine"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		log.Errorf("agentsim: %v", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "agentsim",
		Short: "Simulate interactive AI-agent runs",
		Long: `agentsim drives a fleet of simulated agents through the run
engine's pending -> running -> {completed | awaiting | failed} lifecycle,
either generating content from the built-in persona-aware mock or, with
--openai, by calling a real chat-completion model.`,
	}

	root.PersistentFlags().Bool("openai", false, "use the OpenAI-backed executor instead of the mock content engine")
	root.PersistentFlags().String("log-level", "", "override the configured log level")

	root.AddCommand(newRunCommand())
	root.AddCommand(newServeCommand())

	return root
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	mgr, err := config.NewManager(cmd.Flags())
	if err != nil {
		return config.Config{}, err
	}
	cfg := mgr.Get()
	if override, _ := cmd.Flags().GetString("log-level"); override != "" {
		cfg.LogLevel = override
	}
	log.SetLevel(cfg.LogLevel)
	return cfg, nil
}

func newRunCommand() *cobra.Command {
	var agentName, agentRole, task string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a single task against one ad hoc agent and print the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			engine, err := buildEngine(cfg)
			if err != nil {
				return err
			}
			defer engine.Close()

			exec, err := buildExecutor(cmd, cfg, agentName, agentRole, task)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
			defer cancel()

			run, err := engine.RunAsync(ctx, "adhoc", agentName, agentRole, task, exec, nil)
			if err != nil {
				return fmt.Errorf("agentsim: run failed: %w", err)
			}

			switch run.Status {
			case runengine.StatusCompleted:
				fmt.Println(deref(run.Result))
			case runengine.StatusAwaiting:
				fmt.Println("agent is awaiting an answer:", deref(run.Question))
			case runengine.StatusFailed:
				fmt.Println("run failed:", deref(run.Error))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&agentName, "agent-name", "Nova", "simulated agent's display name")
	cmd.Flags().StringVar(&agentRole, "agent-role", "Explorer", "simulated agent's role")
	cmd.Flags().StringVar(&task, "task", "", "task description to run")
	cmd.MarkFlagRequired("task")

	return cmd
}

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the debug HTTP API and keep the engine running",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			shutdownTelemetry, err := telemetry.Start(ctx,
				telemetry.WithProtocol(cfg.OTLPProtocol),
				telemetry.WithEndpoint(cfg.OTLPEndpoint),
				telemetry.WithServiceName("agentsim"),
			)
			if err != nil {
				return fmt.Errorf("agentsim: start telemetry: %w", err)
			}
			defer shutdownTelemetry()

			meterProvider, err := telemetry.NewMeterProvider(ctx,
				telemetry.WithProtocol(cfg.OTLPProtocol),
				telemetry.WithEndpoint(cfg.OTLPEndpoint),
				telemetry.WithServiceName("agentsim"),
			)
			if err != nil {
				return fmt.Errorf("agentsim: start meter provider: %w", err)
			}
			if err := telemetry.InitMeterProvider(meterProvider); err != nil {
				return fmt.Errorf("agentsim: init meter provider: %w", err)
			}

			engine, err := buildEngine(cfg)
			if err != nil {
				return err
			}
			defer engine.Close()

			srv := debugserver.New(engine, cfg.DebugServerAddr)
			errCh := make(chan error, 1)
			go func() { errCh <- srv.ListenAndServe() }()

			select {
			case <-ctx.Done():
				log.Infof("agentsim: shutting down")
				return nil
			case err := <-errCh:
				return err
			}
		},
	}
	return cmd
}

func buildEngine(cfg config.Config) (*runengine.Engine, error) {
	return runengine.New(
		runengine.WithMinDelay(cfg.MinDelay),
		runengine.WithMaxDelay(cfg.MaxDelay),
		runengine.WithMockQuestionProbability(cfg.MockQuestionProbability),
		runengine.WithWorkerPoolSize(cfg.WorkerPoolSize),
	)
}

func buildExecutor(cmd *cobra.Command, cfg config.Config, agentName, agentRole, task string) (runengine.Executor, error) {
	useOpenAI, _ := cmd.Flags().GetBool("openai")
	if !useOpenAI {
		return nil, nil
	}
	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("agentsim: --openai requires an API key (set OPENAI_API_KEY or AGENTSIM_OPENAI_API_KEY)")
	}
	model := openaiexec.New(cfg.OpenAIModel,
		openaiexec.WithAPIKey(cfg.OpenAIAPIKey),
		openaiexec.WithBaseURL(cfg.OpenAIBaseURL),
	)
	return model.Run(agentName, agentRole, task), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
