package app

import (
	"context"

	"reworn/config"
	"reworn/internal/controllers"
	"reworn/internal/database"
	"reworn/internal/handlers/middleware"
	"reworn/internal/jobs"
	"reworn/internal/logger"
	"reworn/internal/repositories"
	"reworn/internal/services"
)

type App struct {
	Database    database.DB
	Middleware  middleware.Middleware
	Config      config.Config
	Services    services.Service
	Repos       repositories.Repository
	Controllers controllers.Controllers
}

func New() (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.InitConfig()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	repos := repositories.New(db)

	service, err := services.New(db, config)
	if err != nil {
		return &App{}, log.Err("failed to create services", err)
	}

	middleware := middleware.New(db, config)
	controllers := controllers.New(service, repos, config, db)

	// Register jobs with scheduler if enabled
	if config.SchedulerEnabled {
		reconciliationJob := jobs.NewWearCountReconciliationJob(repos, db, services.Nightly)
		if err := service.Scheduler.AddJob(reconciliationJob); err != nil {
			return &App{}, log.Err("failed to register wear count reconciliation job", err)
		}
		log.Info("Registered wear count reconciliation job with scheduler")

		if err := service.Scheduler.Start(context.Background()); err != nil {
			return &App{}, log.Err("failed to start scheduler", err)
		}
	}

	app := &App{
		Database:    db,
		Config:      config,
		Middleware:  middleware,
		Services:    service,
		Repos:       repos,
		Controllers: controllers,
	}

	if err := app.validate(); err != nil {
		return &App{}, log.Err("failed to validate app", err)
	}

	return app, nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")
	if a.Database.SQL == nil {
		return log.ErrMsg("database is nil")
	}

	if a.Config == (config.Config{}) {
		return log.ErrMsg("config is nil")
	}

	nilChecks := []any{
		a.Services.Transaction,
		a.Services.Scheduler,
		a.Services.Analytics,
		a.Services.Goal,
		a.Services.Currency,
		a.Repos.Item,
		a.Repos.WearLog,
		a.Repos.Goal,
		a.Repos.Settings,
		a.Controllers.Auth,
		a.Controllers.Item,
		a.Controllers.Wear,
		a.Controllers.Goal,
		a.Controllers.Analytics,
		a.Controllers.Admin,
	}

	for _, check := range nilChecks {
		if check == nil {
			return log.ErrMsg("nil check failed")
		}
	}

	return nil
}

func (a *App) Close() (err error) {
	if a.Services.Scheduler != nil {
		if closeErr := a.Services.Scheduler.Stop(context.Background()); closeErr != nil {
			err = closeErr
		}
	}

	if dbErr := a.Database.Close(); dbErr != nil {
		err = dbErr
	}

	return err
}
