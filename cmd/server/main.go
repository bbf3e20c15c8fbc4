package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"

	"wavechat/api"
	"wavechat/auth"
	"wavechat/media"
	"wavechat/moderation"
	"wavechat/realtime"
	"wavechat/repositories"
	"wavechat/services"
)

// Exit codes to provide meaningful status to the operating system or service manager (e.g., systemd).
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	// The main function acts as a thin wrapper.
	// Its only responsibility is to call run() and handle the OS exit code.
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Server terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run initializes all components, manages the server lifecycle, and centralizes error reporting.
// Returning instead of calling os.Exit ensures every defer (database close,
// index flush) executes before the process exits.
func run() (int, error) {
	// 1. Configuration & Logger
	// A missing .env file is fine in production where the environment is real.
	_ = godotenv.Load()

	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}

	mask, err := config.MaskRune()
	if err != nil {
		return exitConfig, err
	}

	logger := newLogger(config.LogLevel)
	ctx := context.Background()

	// 2. Storage (BadgerDB + Bluge)
	db, err := badger.Open(buildBadgerOpts(config, logger, ctx))
	if err != nil {
		return exitRuntime, fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		// Defer ensures the database lock is released and buffers are flushed before the function returns.
		logger.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	blugeWriter, err := bluge.OpenWriter(bluge.DefaultConfig(config.BlugeFilepath))
	if err != nil {
		return exitRuntime, fmt.Errorf("failed to open bluge writer: %w", err)
	}
	defer func() {
		logger.Info("Closing Bluge...")
		_ = blugeWriter.Close()
	}()

	// 3. Repositories & Supporting Infrastructure
	userRepository := repositories.NewUserRepository(db)
	groupRepository := repositories.NewGroupRepository(db)
	directMessageRepository := repositories.NewDirectMessageRepository(db, logger)
	groupMessageRepository := repositories.NewGroupMessageRepository(db, logger)
	messageIndex := repositories.NewMessageIndex(blugeWriter, logger)

	uploads, err := media.NewDiskStore(config.MediaRoot, config.MediaBaseURL, logger)
	if err != nil {
		return exitRuntime, fmt.Errorf("media store init failed: %w", err)
	}

	words, err := loadCensoredWords(config.CensoredWordsFile)
	if err != nil {
		return exitConfig, err
	}
	filter, err := moderation.NewFilter(words, mask)
	if err != nil {
		return exitRuntime, fmt.Errorf("moderation filter init failed: %w", err)
	}

	// 4. Realtime Layer
	registry := realtime.NewRegistry(logger)
	broadcaster := realtime.NewBroadcaster(registry, logger)
	typing := realtime.NewTypingCoordinator(broadcaster, config.TypingTTL, logger)

	// 5. Services
	tokens := auth.NewTokenManager(config.JWTSecret, config.AuthTokenDuration)
	authService := services.NewAuthService(userRepository, tokens, uploads, broadcaster)
	messageService := services.NewMessageService(
		userRepository, groupRepository, directMessageRepository, messageIndex,
		uploads, filter, broadcaster, logger,
	)
	groupService := services.NewGroupService(
		groupRepository, groupMessageRepository, messageIndex,
		uploads, filter, registry, broadcaster, logger,
	)

	// 6. HTTP & Websocket Server
	server := api.NewServer(
		logger, authService, messageService, groupService,
		registry, broadcaster, typing, config.MediaRoot,
	)

	// 7. Context & Signals
	// NotifyContext captures OS signals and cancels the context to trigger a shutdown.
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 1)
	address := fmt.Sprintf(":%d", config.Port)
	go func() {
		logger.Info("Starting server", "address", address, "at", time.Now().UTC())
		if err := server.Listen(address); err != nil {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	// 8. Wait for Stop or Error
	// The execution blocks here until either a signal is received or the server crashes.
	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-errChan:
		return exitRuntime, err
	}

	// 9. Final Cleanup (Graceful Shutdown)
	// Active requests are allowed to finish; websocket peers see the close frame.
	logger.Info("Shutting down gracefully...")
	if err := server.Shutdown(); err != nil {
		logger.Warn("Shutdown incomplete", "error", err)
	}
	logger.Info("Program stopped cleanly")

	return exitOK, nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}

func buildBadgerOpts(config Config, logger *slog.Logger, ctx context.Context) badger.Options {
	options := badger.DefaultOptions(config.BadgerFilepath)

	if logger.Enabled(ctx, slog.LevelDebug) {
		options = options.WithLoggingLevel(badger.DEBUG).
			WithBypassLockGuard(true)
	} else {
		options = options.WithLoggingLevel(badger.INFO)
	}

	return options
}

// loadCensoredWords reads one word per line. No file configured means an
// empty list and a pass-through filter.
func loadCensoredWords(path string) ([]string, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("censored words file: %w", err)
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word != "" {
			words = append(words, word)
		}
	}
	return words, scanner.Err()
}
