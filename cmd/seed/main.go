package main

import (
	"flag"
	"os"
	"strings"

	"github.com/lshigami/classquiz/config"
	"github.com/lshigami/classquiz/database"
	"github.com/lshigami/classquiz/internal/logger"
	"github.com/lshigami/classquiz/internal/model"
	"github.com/lshigami/classquiz/internal/repository"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type seedUser struct {
	name  string
	email string
	role  model.Role
}

var defaultUsers = []seedUser{
	{name: "Siswa", email: "siswa@classquiz.test", role: model.RoleStudent},
	{name: "Guru", email: "guru@classquiz.test", role: model.RoleTeacher},
	{name: "Admin", email: "admin@classquiz.test", role: model.RoleAdmin},
}

func main() {
	logger.Init()

	password := flag.String("password", "password", "password given to every seeded account")
	migrate := flag.Bool("migrate", true, "run AutoMigrate before seeding")
	flag.Parse()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	db, err := database.NewDatabase(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	if *migrate {
		if err := db.AutoMigrate(model.All()...); err != nil {
			log.Fatal().Err(err).Msg("Database migration failed")
		}
	}

	users := repository.NewUserRepository(db)
	for _, u := range defaultUsers {
		created, err := addUser(users, u, *password)
		if err != nil {
			log.Error().Err(err).Str("email", u.email).Msg("Seed: failed")
			os.Exit(1)
		}
		log.Info().Str("email", u.email).Str("role", u.role.String()).Bool("created", created).Msg("Seed: user ready")
	}
}

// addUser creates the account when its email is free and leaves existing ones untouched.
func addUser(users repository.UserRepository, u seedUser, password string) (bool, error) {
	email := strings.ToLower(u.email)
	if _, err := users.FindByEmail(email); err == nil {
		return false, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, errors.Wrap(err, "lookup user")
	}

	usr := model.User{Name: u.name, Email: email, Role: u.role}
	if err := usr.SetPassword(password); err != nil {
		return false, err
	}
	if err := users.Create(&usr); err != nil {
		return false, errors.Wrap(err, "create user")
	}
	return true, nil
}
