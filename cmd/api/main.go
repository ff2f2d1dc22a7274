package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/talenttrack/talenttrack-backend-go/internal/config"
	"github.com/talenttrack/talenttrack-backend-go/internal/domain/catalog"
	appHTTP "github.com/talenttrack/talenttrack-backend-go/internal/handler/http"
	"github.com/talenttrack/talenttrack-backend-go/internal/pkg/cron"
	"github.com/talenttrack/talenttrack-backend-go/internal/pkg/database"
	"github.com/talenttrack/talenttrack-backend-go/internal/pkg/jwt"
	"github.com/talenttrack/talenttrack-backend-go/internal/pkg/storage"
	"github.com/talenttrack/talenttrack-backend-go/internal/repository/postgresql"
	attendanceService "github.com/talenttrack/talenttrack-backend-go/internal/service/attendance"
	serviceAuth "github.com/talenttrack/talenttrack-backend-go/internal/service/auth"
	"github.com/talenttrack/talenttrack-backend-go/internal/service/file"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	loc := cfg.Location()

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	catalogRepo := postgresql.NewCatalogRepository(db)
	assignmentRepo := postgresql.NewAssignmentRepository(db)
	ruleRepo := postgresql.NewRuleRepository(db)
	deviceRepo := postgresql.NewDeviceRepository(db)
	eventRepo := postgresql.NewEventRepository(db)
	journalRepo := postgresql.NewJournalRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(
			cfg.Storage.BasePath,
			cfg.Storage.BaseURL,
		)
		if err != nil {
			log.Fatal("Failed to initialize local storage:", err)
		}
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}

	photoService := file.NewPhotoService(fileStorage)
	catalogResolver := catalog.NewResolver(catalogRepo)

	authService := serviceAuth.NewAuthService(userRepo, JWTService)
	attendanceSvc := attendanceService.NewAttendanceService(
		db,
		eventRepo,
		journalRepo,
		assignmentRepo,
		ruleRepo,
		catalogResolver,
		employeeRepo,
		deviceRepo,
		photoService,
		loc,
		cfg.Attendance.EnforceGeofence,
	)

	scheduler := cron.NewScheduler()
	journalJobs := cron.NewJournalJobs(attendanceSvc, employeeRepo, loc)
	journalJobs.RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	authHandler := appHTTP.NewAuthHandler(JWTService, authService)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)

	router := appHTTP.NewRouter(
		JWTService,
		authHandler,
		attendanceHandler,
		cfg.Storage.BasePath,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
