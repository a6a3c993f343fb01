package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"TPWebsockets/internals/commons"
	"TPWebsockets/internals/plugin"
	"TPWebsockets/internals/statusapi"
	"TPWebsockets/internals/tp"
)

const pluginVersion = "1.0"

func main() {
	configPath := flag.String("config", "config.txt", "Path to the plugin configuration file")
	debug := flag.Bool("d", false, "Use debug logging")
	warn := flag.Bool("w", false, "Only log warnings and errors")
	quiet := flag.Bool("q", false, "Disable all logging (quiet)")
	logFile := flag.String("l", "", "Log file name (use 'none' to disable file logging)")
	logStream := flag.String("s", "", "Log to output stream: 'stdout', 'stderr', or 'none'")

	flag.Parse()

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		DisableColors: false,
		FullTimestamp: true,
	})
	logger.SetOutput(os.Stdout)
	logger.SetLevel(logrus.InfoLevel)

	if err := godotenv.Load(); err != nil {
		logger.Debug("No .env file loaded")
	}

	cfg, err := plugin.LoadConfig(*configPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to load config")
	}

	// Environment overrides; command line flags still win below.
	if host := commons.GetEnv("TP_HOST", ""); host != "" {
		cfg.TP.Host = host
	}
	if port := commons.GetEnv("TP_PORT", ""); port != "" {
		n, err := strconv.Atoi(port)
		if err != nil {
			logger.WithError(err).Fatal("Invalid TP_PORT value")
		}
		cfg.TP.Port = n
	}
	if addr := commons.GetEnv("STATUS_ADDR", ""); addr != "" {
		cfg.Status.Addr = addr
	}

	if *logFile != "" {
		cfg.Log.File = *logFile
	}
	if *logStream != "" {
		cfg.Log.Stream = *logStream
	}
	switch {
	case *quiet:
		cfg.Log.Level = "quiet"
	case *debug:
		cfg.Log.Level = "debug"
	case *warn:
		cfg.Log.Level = "warning"
	}

	setupLogging(logger, cfg.Log)

	p := plugin.New(logger)

	client := tp.NewClient(plugin.PluginID, logger, p.Handlers(),
		tp.WithAddr(fmt.Sprintf("%s:%d", cfg.TP.Host, cfg.TP.Port)))
	p.BindHost(client)

	if cfg.Status.Addr != "" {
		status := &statusapi.Server{
			Server: &commons.Server{Logger: logger},
			Plugin: p,
			Addr:   cfg.Status.Addr,
		}
		go func() {
			if err := status.ListenAndServe(); err != nil {
				logger.WithError(err).Error("Status endpoint stopped")
			}
		}()
	}

	// Set up channel to handle Ctrl+C
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-stop
		logger.Warn("Caught interrupt, exiting.")
		client.Close()
	}()

	logger.
		WithFields(logrus.Fields{"plugin": plugin.PluginID, "version": pluginVersion}).
		Info("Starting Websockets plugin")

	// Blocks until TouchPortal disconnects or asks us to close.
	if err := client.Connect(); err != nil {
		logger.WithError(err).Fatal("TouchPortal connection failed")
	}
	logger.Info("TouchPortal client closed.")
}

// setupLogging applies the resolved log configuration: level, output
// stream, and a size-rotated log file.
func setupLogging(logger *logrus.Logger, cfg plugin.LogConfig) {
	switch cfg.Level {
	case "quiet":
		logger.SetOutput(io.Discard)
		return
	case "debug":
		logger.SetLevel(logrus.DebugLevel)
	case "warning":
		logger.SetLevel(logrus.WarnLevel)
	default:
		logger.SetLevel(logrus.InfoLevel)
	}

	var writers []io.Writer
	switch cfg.Stream {
	case "none":
	case "stderr":
		writers = append(writers, os.Stderr)
	default:
		writers = append(writers, os.Stdout)
	}
	if cfg.File != "" && cfg.File != "none" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    10, // MB
			MaxBackups: 3,
		})
	}

	if len(writers) == 0 {
		logger.SetOutput(io.Discard)
		return
	}
	logger.SetOutput(io.MultiWriter(writers...))
}
