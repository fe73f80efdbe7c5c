package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"stratagem/internal/agent"
	"stratagem/internal/config"
	"stratagem/internal/provider"
	"stratagem/internal/render"
	"stratagem/internal/schema"
	"stratagem/internal/search"
)

const renderWidth = 100

var (
	promptStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	assistantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// newSession loads the configuration, wires the providers, and returns a
// ready consultant with a session-scoped logger.
func newSession(cmd *cobra.Command) (context.Context, *agent.Agent, *zap.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, nil, err
	}
	if providerName != "" {
		cfg.Completion.Provider = providerName
	}
	if modelName != "" {
		cfg.Completion.Model = modelName
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	completer, searcher, err := buildClients(ctx, cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	log := logger.With(zap.String("session_id", uuid.NewString()))
	return ctx, agent.New(completer, searcher, agent.WithLogger(log)), log, nil
}

// runConsultOnce runs a single consulting turn against an empty transcript
// and prints whatever came back.
func runConsultOnce(cmd *cobra.Command, message string) error {
	ctx, consultant, _, err := newSession(cmd)
	if err != nil {
		return err
	}

	out, err := consultant.Invoke(ctx, agent.Input{UserMessage: message})
	if err != nil {
		return err
	}

	if out.Intent == agent.IntentGenerateStrategy {
		_, display := strategyText(out.Strategy)
		fmt.Println(display)
		return nil
	}
	fmt.Println(assistantStyle.Render(out.ConversationResponse))
	return nil
}

// runConsult runs the interactive consulting session. The session owns the
// transcript: it appends the user turn before each invocation and the
// assistant-visible text afterwards, exactly the caller duties the agent
// expects.
func runConsult(cmd *cobra.Command) error {
	ctx, consultant, log, err := newSession(cmd)
	if err != nil {
		return err
	}

	fmt.Println(assistantStyle.Render("Tell me about your product and I'll help you build a 90-day marketing strategy."))
	fmt.Println(assistantStyle.Render("Type 'exit' to quit."))

	var history []agent.Turn
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	for {
		fmt.Print(promptStyle.Render("you> "))
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}

		out, err := consultant.Invoke(ctx, agent.Input{
			Messages:    history,
			UserMessage: line,
		})
		if err != nil {
			log.Error("invocation failed", zap.Error(err))
			fmt.Println(errorStyle.Render("Could not complete the request, please retry."))
			continue
		}
		history = append(history, agent.Turn{Role: agent.RoleUser, Content: line})

		switch out.Intent {
		case agent.IntentGenerateStrategy:
			markdown, display := strategyText(out.Strategy)
			fmt.Println(display)
			history = append(history, agent.Turn{Role: agent.RoleAssistant, Content: markdown})
		default:
			fmt.Println(assistantStyle.Render(out.ConversationResponse))
			history = append(history, agent.Turn{Role: agent.RoleAssistant, Content: out.ConversationResponse})
		}
	}

	return scanner.Err()
}

// strategyText renders a strategy as Markdown and as styled terminal text.
// The transcript stores the Markdown; styling is display-only.
func strategyText(s *schema.MarketingStrategy) (markdown, display string) {
	markdown = render.StrategyMarkdown(s)
	display, err := render.Terminal(markdown, renderWidth)
	if err != nil {
		display = markdown
	}
	return markdown, display
}

// buildClients wires the configured completion and search providers.
func buildClients(ctx context.Context, cfg config.Config) (provider.Client, search.Client, error) {
	timeout, err := cfg.CompletionTimeout()
	if err != nil {
		return nil, nil, err
	}

	var completer provider.Client
	switch cfg.Completion.Provider {
	case config.CompletionGemini:
		completer, err = provider.NewGeminiClient(ctx, provider.GeminiConfig{
			APIKey: cfg.Completion.APIKey,
			Model:  cfg.Completion.Model,
		})
		if err != nil {
			return nil, nil, err
		}
	default:
		groqCfg := provider.DefaultGroqConfig(cfg.Completion.APIKey)
		groqCfg.Timeout = timeout
		if cfg.Completion.Model != "" {
			groqCfg.Model = cfg.Completion.Model
		}
		if cfg.Completion.BaseURL != "" {
			groqCfg.BaseURL = cfg.Completion.BaseURL
		}
		completer = provider.NewGroqClientWithConfig(groqCfg)
	}

	var searcher search.Client
	switch cfg.Search.Provider {
	case config.SearchDuckDuckGo:
		searcher = search.NewDuckDuckGoClient()
	default:
		searcher = search.NewTavilyClient(cfg.Search.APIKey)
	}

	return completer, searcher, nil
}
