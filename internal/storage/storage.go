package storage

import (
	"os"
	"sync"

	"taskboard/internal/config"
	projects_models "taskboard/internal/features/projects/models"
	tasks_models "taskboard/internal/features/tasks/models"
	users_models "taskboard/internal/features/users/models"
	"taskboard/internal/util/logger"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var (
	db   *gorm.DB
	once sync.Once
)

func GetDb() *gorm.DB {
	once.Do(connect)
	return db
}

func connect() {
	log := logger.GetLogger()
	env := config.GetEnv()

	var err error
	if env.IsTesting {
		// Shared in-memory database so every connection in the pool sees
		// the same schema and data during a test run.
		db, err = gorm.Open(
			sqlite.Open("file::memory:?cache=shared&_pragma=busy_timeout(10000)"),
			&gorm.Config{},
		)
	} else {
		db, err = gorm.Open(postgres.Open(env.DatabaseDsn), &gorm.Config{})
	}

	if err != nil {
		log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if env.IsTesting {
		if err := migrate(db); err != nil {
			log.Error("Failed to migrate test database", "error", err)
			os.Exit(1)
		}
	}
}

// RunMigrations creates or updates the schema for every registered model.
func RunMigrations() error {
	return migrate(GetDb())
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users_models.User{},
		&users_models.SecretKey{},
		&projects_models.Project{},
		&projects_models.ProjectMembership{},
		&tasks_models.Task{},
		&tasks_models.TaskAssignment{},
	)
}
