package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	appconfig "revenueflow/config"
	"revenueflow/internal/pipeline"
	"revenueflow/logger"
	"revenueflow/models"
	"revenueflow/reader"
	"revenueflow/writer"
)

func main() {
	log := logger.GetLogger()

	// Load environment variables from .env if present
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.WithError(err).Warn("Error loading .env file")
	}

	configPath := flag.String("config", appconfig.DefaultPath(), "Path to configuration file")
	runDate := flag.String("run-date", "", "Run date in YYYY-MM-DD format (e.g. 2024-01-01)")
	inputDir := flag.String("input-dir", "", "Directory containing input CSV files (overrides config)")
	outputDir := flag.String("output-dir", "", "Directory for output files (overrides config)")

	flag.Parse()

	if *runDate == "" {
		log.Error("run-date is required")
		os.Exit(1)
	}
	if _, err := time.Parse("2006-01-02", *runDate); err != nil {
		log.WithError(err).Error("invalid run-date, expected YYYY-MM-DD")
		os.Exit(1)
	}

	cfg, err := appconfig.LoadConfig(*configPath)
	if err != nil {
		log.WithError(err).Error("Failed to load configuration")
		os.Exit(1)
	}
	if *inputDir != "" {
		cfg.Reader.InputDir = *inputDir
	}
	if *outputDir != "" {
		cfg.Writer.OutputDir = *outputDir
	}

	if err := log.Configure(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output, cfg.Logging.MaxAge); err != nil {
		log.WithError(err).Error("Failed to configure logger")
		os.Exit(1)
	}

	log.WithFields(logger.Fields{
		"service":  cfg.Revenueflow.Name,
		"version":  cfg.Revenueflow.Version,
		"run_date": *runDate,
	}).Info("starting revenueflow")

	ctx := context.Background()

	if cfg.Metrics.CloudWatch {
		logger.InitCloudWatch(cfg.Storage.S3.Region, cfg.Revenueflow.Name, cfg.Logging.DashboardName)
	}

	ordersPath := filepath.Join(cfg.Reader.InputDir, cfg.Reader.OrdersFile(*runDate))
	itemsPath := filepath.Join(cfg.Reader.InputDir, cfg.Reader.ItemsFile(*runDate))

	ordersRaw, err := reader.LoadTable(ordersPath, models.RequiredOrderColumns)
	if err != nil {
		log.WithError(err).Error("failed to load orders")
		os.Exit(1)
	}
	itemsRaw, err := reader.LoadTable(itemsPath, models.RequiredItemColumns)
	if err != nil {
		log.WithError(err).Error("failed to load order items")
		os.Exit(1)
	}

	result, err := pipeline.Run(*runDate, ordersRaw, itemsRaw)
	if err != nil {
		log.WithError(err).Error("pipeline failed; no outputs written")
		os.Exit(1)
	}

	if err := os.MkdirAll(cfg.Writer.OutputDir, 0755); err != nil {
		log.WithError(err).Error("failed to create output directory")
		os.Exit(1)
	}

	artifacts := []string{filepath.Join(cfg.Writer.OutputDir, writer.DailyRevenueFile)}
	if err := writer.WriteDailyRevenue(artifacts[0], result.DailyRevenue); err != nil {
		log.WithError(err).Error("failed to write daily revenue")
		os.Exit(1)
	}

	if len(result.RejectedOrders) > 0 {
		path := filepath.Join(cfg.Writer.OutputDir, writer.RejectedOrdersFile)
		if err := writer.WriteRejectedOrders(path, ordersRaw.Columns, result.RejectedOrders); err != nil {
			log.WithError(err).Error("failed to write rejected orders")
			os.Exit(1)
		}
		artifacts = append(artifacts, path)
	}
	if len(result.RejectedItems) > 0 {
		path := filepath.Join(cfg.Writer.OutputDir, writer.RejectedItemsFile)
		if err := writer.WriteRejectedItems(path, itemsRaw.Columns, result.RejectedItems); err != nil {
			log.WithError(err).Error("failed to write rejected items")
			os.Exit(1)
		}
		artifacts = append(artifacts, path)
	}

	if cfg.Writer.Formats.Parquet.Enabled {
		path := filepath.Join(cfg.Writer.OutputDir, writer.DailyRevenueParquetFile)
		if err := writer.WriteDailyRevenueParquet(path, result.DailyRevenue, cfg.Writer.Formats.Parquet.Compression); err != nil {
			log.WithError(err).Error("failed to write parquet daily revenue")
			os.Exit(1)
		}
		artifacts = append(artifacts, path)
	}

	reportPath := filepath.Join(cfg.Writer.OutputDir, writer.QualityReportFile)
	if err := writer.WriteQualityReport(reportPath, result.Report); err != nil {
		log.WithError(err).Error("failed to write quality report")
		os.Exit(1)
	}
	artifacts = append(artifacts, reportPath)

	if cfg.Storage.S3.Enabled {
		uploader, err := writer.NewUploader(cfg)
		if err != nil {
			log.WithError(err).Error("failed to create S3 uploader")
			os.Exit(1)
		}
		if err := uploader.UploadRun(ctx, *runDate, artifacts); err != nil {
			log.WithError(err).Error("failed to upload artifacts")
			os.Exit(1)
		}
	}

	rep := result.Report
	log.WithFields(logger.Fields{
		"input_orders":    rep.Input.Orders,
		"input_items":     rep.Input.OrderItems,
		"valid_orders":    rep.Valid.Orders,
		"valid_items":     rep.Valid.OrderItems,
		"rejected_orders": rep.Rejected.Orders,
		"rejected_items":  rep.Rejected.OrderItems,
		"total_revenue":   rep.Output.TotalRevenue,
	}).Info("pipeline completed successfully")

	logger.LogRunReport(ctx, log)
}
