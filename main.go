package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	kingpin "gopkg.in/alecthomas/kingpin.v2"

	"github.com/Yester03/ipinfotool/api"
	"github.com/Yester03/ipinfotool/intellib"
)

const version = "0.1.0"

var (
	app = kingpin.New(
		"ipinfotool",
		"Redundant multi-provider IP geolocation service")

	debug = app.Flag("debug", "Run in debug mode.").
		Short('d').
		Envar("IPINFOTOOL_DEBUG").
		Bool()
	configFile = app.Arg("config-path", "Path to the config.").
			Required().
			ExistingFile()
)

func init() {
	app.Version(version)
}

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))

	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	mainLog := zerolog.New(os.Stderr).With().Timestamp().Logger()

	conf, err := parseConfig(*configFile)
	if err != nil {
		mainLog.Fatal().Err(err).Msg("Cannot read config")
	}

	providerList, err := makeProviders(conf)
	if err != nil {
		mainLog.Fatal().Err(err).Msg("Cannot initialize providers")
	}

	aggregator, err := intellib.NewAggregator(providerList,
		newLogger(),
		conf.GetLookupTimeout(),
		conf.GetWorkerPoolSize())
	if err != nil {
		mainLog.Fatal().Err(err).Msg("Cannot initialize aggregator")
	}

	defer aggregator.Shutdown()

	rootCtx, cancel := makeRootContext()
	defer cancel()

	srv := &http.Server{
		Addr:    conf.GetListen(),
		Handler: api.MakeServer(aggregator, intellib.DefaultSelfIPResolver(), mainLog),
	}

	go func() {
		<-rootCtx.Done()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()

		srv.Shutdown(shutdownCtx) // nolint: errcheck
	}()

	mainLog.Info().Str("listen", conf.GetListen()).Msg("Start server")

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		mainLog.Fatal().Err(err).Msg("Server failure")
	}
}
