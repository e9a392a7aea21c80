package controllers

import (
	"reworn/config"
	"reworn/internal/database"
	"reworn/internal/repositories"
	"reworn/internal/services"

	adminController "reworn/internal/controllers/admin"
	analyticsController "reworn/internal/controllers/analytics"
	authController "reworn/internal/controllers/auth"
	goalController "reworn/internal/controllers/goals"
	itemController "reworn/internal/controllers/items"
	wearController "reworn/internal/controllers/wears"
)

type Controllers struct {
	Auth      authController.AuthControllerInterface
	Item      itemController.ItemControllerInterface
	Wear      wearController.WearControllerInterface
	Goal      goalController.GoalControllerInterface
	Analytics analyticsController.AnalyticsControllerInterface
	Admin     adminController.AdminControllerInterface
}

func New(
	services services.Service,
	repos repositories.Repository,
	config config.Config,
	db database.DB,
) Controllers {
	return Controllers{
		Auth:      authController.New(config, db),
		Item:      itemController.New(repos, services, config, db),
		Wear:      wearController.New(repos, services, config, db),
		Goal:      goalController.New(repos, services, config, db),
		Analytics: analyticsController.New(services, config, db),
		Admin:     adminController.New(repos, services, config, db),
	}
}
