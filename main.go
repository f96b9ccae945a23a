package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"quoter/config"
	"quoter/database"
	"quoter/loader"
	"quoter/logger"
	"quoter/menu"
	"quoter/quote"
	"quoter/render"
)

func main() {
	envFile := flag.String("env", ".env", "dotenv file read before the environment")
	checkOnly := flag.Bool("check", false, "verify the inventory cache and exit")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Options{Level: logger.ParseLevel(cfg.LogLevel), Format: cfg.LogFormat})
	ctx := context.Background()

	if *checkOnly {
		if !verifySetup(ctx, log, cfg.DBPath) {
			os.Exit(1)
		}
		return
	}

	dbConn, err := database.Open(cfg.DBPath)
	if err != nil {
		log.Error(ctx, "failed to open inventory cache", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	if err := database.Migrate(ctx, dbConn); err != nil {
		log.Error(ctx, "schema migration failed", err)
	} else {
		l := loader.New(dbConn, log, cfg.CSVEncoding)
		res, err := l.Load(ctx, loader.Sources{
			Products:     cfg.ProductsFile,
			Requirements: cfg.RequirementsFile,
			Rules:        cfg.RulesFile,
		})
		if err != nil {
			log.Error(ctx, "database initialization/sync error", err)
			fmt.Printf("Database initialization/sync error:\n%v\n", err)
		} else if res.RowErrors != nil {
			fmt.Printf("Some source rows were skipped:\n%v\n", res.RowErrors)
		}
	}

	// Keep going on a bad cache; the menu reports each failing query.
	verifySetup(ctx, log, cfg.DBPath)

	console := menu.NewConsole(os.Stdin, os.Stdout)
	store := database.NewStore(dbConn)
	engine := quote.NewEngine(store, console, log)

	if err := menu.NewController(console, engine, store, log).Run(ctx); err != nil {
		log.Error(ctx, "menu stopped", err)
		os.Exit(1)
	}
}

func verifySetup(ctx context.Context, log *logger.Logger, path string) bool {
	report, err := database.VerifySetup(ctx, path)
	if err != nil {
		log.Error(ctx, "database verification error", err)
		fmt.Printf("Database verification error:\n%v\n", err)
		return false
	}
	if err := render.SetupReport(os.Stdout, report); err != nil {
		log.Error(ctx, "failed to print setup report", err)
	}
	if !report.OK() {
		log.Warn(log.With(ctx, "error", report.Err().Error()), "inventory cache is not usable")
	}
	return report.OK()
}
