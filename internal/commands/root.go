package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/austiecodes/promptrec/internal/client"
	"github.com/austiecodes/promptrec/internal/logger"
	"github.com/austiecodes/promptrec/internal/provider"
	"github.com/austiecodes/promptrec/internal/store"
	"github.com/austiecodes/promptrec/internal/utils"
)

var logCloser io.Closer

var rootCmd = &cobra.Command{
	Use:   "promptrec",
	Short: "promptrec is a chat assistant that suggests previously answered prompts",
	Long: `promptrec is a chat assistant that suggests previously answered prompts as
you type. Run 'promptrec chat' for the interactive client, or pass a message
to get a single reply.`,
	Args: cobra.ArbitraryArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := utils.LoadEnv(".env"); err != nil {
			return err
		}
		config, err := utils.LoadConfig()
		if err != nil {
			// commands report config errors themselves; logging still works
			config = utils.DefaultConfig()
		}
		closer, err := logger.Setup(config)
		if err != nil {
			return fmt.Errorf("failed to set up logging: %w", err)
		}
		logCloser = closer
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCloser != nil {
			logCloser.Close()
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			cmd.Help()
			return
		}

		query := strings.Join(args, " ")
		if err := runQuery(cmd.Context(), query); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

// AddCommand adds a subcommand to the root command
func AddCommand(cmd *cobra.Command) {
	rootCmd.AddCommand(cmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runQuery(ctx context.Context, query string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	config, err := utils.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	c, err := provider.NewChatClient(config)
	if err != nil {
		return fmt.Errorf("failed to create chat client: %w", err)
	}

	reply, err := chatAndRecord(ctx, c, query)
	if err != nil {
		return err
	}

	fmt.Println(reply)
	return nil
}

func chatAndRecord(ctx context.Context, c client.ChatClient, query string) (string, error) {
	start := time.Now()
	reply, err := c.Chat(ctx, query)

	rec := &store.RequestRecord{
		Kind:        store.KindChat,
		Query:       query,
		Status:      store.StatusOK,
		ResultCount: 1,
		Latency:     time.Since(start),
	}
	if err != nil {
		rec.Status, rec.ResultCount, rec.Error = store.StatusFailed, 0, err.Error()
	}

	if st, openErr := store.NewStore(); openErr != nil {
		log.Warn("request log unavailable", "err", openErr)
	} else {
		if recErr := st.Record(rec); recErr != nil {
			log.Warn("failed to record request", "err", recErr)
		}
		st.Close()
	}

	if err != nil {
		return "", fmt.Errorf("chat failed: %w", err)
	}
	return reply, nil
}
