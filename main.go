package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sunthewhat/easy-cert-form/api"
	"github.com/sunthewhat/easy-cert-form/common"
	"github.com/sunthewhat/easy-cert-form/common/config"
	"github.com/sunthewhat/easy-cert-form/common/util"
	"github.com/sunthewhat/easy-cert-form/internal/generator"
	"github.com/sunthewhat/easy-cert-form/internal/renderer"
)

func main() {
	renderSheet := flag.String("Render", "", "Render every row of a spreadsheet into the output directory and exit")
	college := flag.String("College", "", "College used for rows without a College column (with -Render)")
	event := flag.String("Event", "", "Event used for rows without an Event column (with -Render)")
	flag.Parse()
	config.LoadConfig()

	for _, dir := range []string{*common.Config.UploadDir, *common.Config.OutputDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			slog.Error("Failed to create directory", "dir", dir, "error", err)
			os.Exit(1)
		}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	gen := initGenerator(registry)

	if *renderSheet != "" {
		runBatch(gen, *renderSheet, *college, *event)
		return
	}

	if hours := common.Config.RetentionHours(); hours > 0 {
		util.StartOutputCleanupJob(
			[]string{*common.Config.OutputDir, *common.Config.UploadDir},
			time.Duration(hours)*time.Hour,
			time.Hour,
		)
	}

	api.InitFiber(api.Dependencies{
		Generator: gen,
		Registry:  registry,
		BodyLimit: common.Config.UploadLimit(),
		Cors:      common.Config.CorsOrigins(),
	})
}

func initGenerator(registry prometheus.Registerer) *generator.Generator {
	signer, err := renderer.NewCertificateSigner(common.Config.Signing)
	if err != nil {
		slog.Error("Failed to initialize PDF signer", "error", err)
		os.Exit(1)
	}

	metrics, err := generator.NewMetrics(registry)
	if err != nil {
		slog.Error("Failed to register certificate metrics", "error", err)
		os.Exit(1)
	}

	opts := generator.Options{
		OutputDir: *common.Config.OutputDir,
		UploadDir: *common.Config.UploadDir,
		Metrics:   metrics,
	}

	if common.Config.Storage.Enabled {
		archiver, err := util.InitMinIO(common.Config.Storage)
		if err != nil {
			slog.Error("Failed to initialize MinIO", "error", err)
			os.Exit(1)
		}
		opts.Archiver = archiver
	}

	if common.Config.Mail.Enabled {
		opts.Mailer = util.InitDialer(common.Config.Mail)
		slog.Info("Certificate mail enabled", "host", common.Config.Mail.Host)
	}

	return generator.New(renderer.NewRenderer(common.Config.Template, signer), opts)
}

func runBatch(gen generator.IGenerator, path string, college string, event string) {
	result, err := gen.Generate(context.Background(), generator.Request{
		College: college,
		Event:   event,
		Sheet:   &generator.Upload{Filename: path},
	})
	if err != nil {
		slog.Error("Batch render failed", "sheet", path, "kind", generator.KindOf(err).String(), "error", err)
		os.Exit(1)
	}

	slog.Info("Batch render completed", "sheet", path, "certificates", len(result.Files), "output", result.Path)
}
