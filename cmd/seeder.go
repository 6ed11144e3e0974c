package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/frahmantamala/vacation-management/internal"
	refDatamodel "github.com/frahmantamala/vacation-management/internal/core/datamodel/reference"
	"github.com/frahmantamala/vacation-management/internal/project"
	projectPostgres "github.com/frahmantamala/vacation-management/internal/project/postgres"
	"github.com/frahmantamala/vacation-management/internal/user"
	userPostgres "github.com/frahmantamala/vacation-management/internal/user/postgres"
	"github.com/frahmantamala/vacation-management/internal/vacation"
	vacationPostgres "github.com/frahmantamala/vacation-management/internal/vacation/postgres"
	"github.com/frahmantamala/vacation-management/pkg/logger"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var clearData bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with reference tables and sample employees, vacations and projects for development.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		initLogger(cfg)

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		if err := seed(cmd.Context(), db, cfg.Auth.BCryptCost, clearData); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
		fmt.Println("Seeding complete")
	},
}

func init() {
	seedCmd.Flags().BoolVar(&clearData, "clear", false, "Clear existing data before seeding")
}

// Reference rows keep fixed ids; vacation.DefaultStatusID relies on "Pending" being 1.
var (
	seedRoles = []refDatamodel.UserRole{
		{ID: 1, Name: "Employee", Description: "Regular staff member"},
		{ID: 2, Name: "Manager", Description: "Approves team vacations"},
		{ID: 3, Name: "HR", Description: "Human resources"},
	}
	seedEmploymentTypes = []refDatamodel.EmploymentType{
		{ID: 1, Name: "Full-time"},
		{ID: 2, Name: "Part-time"},
		{ID: 3, Name: "Contractor"},
	}
	seedVacationStatuses = []refDatamodel.VacationStatus{
		{ID: 1, Name: "Pending", Description: "Waiting for approval"},
		{ID: 2, Name: "Approved"},
		{ID: 3, Name: "Rejected"},
		{ID: 4, Name: "Cancelled"},
	}
	seedVacationTypes = []refDatamodel.VacationType{
		{ID: 1, Name: "Annual leave"},
		{ID: 2, Name: "Sick leave"},
		{ID: 3, Name: "Unpaid leave"},
		{ID: 4, Name: "Parental leave"},
	}
)

func seed(ctx context.Context, db *gorm.DB, bcryptCost int, clear bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	lg := logger.LoggerWrapper()

	if clear {
		for _, table := range []string{"vacations", "user_credentials", "users", "projects", "vacation_types", "vacation_statuses", "employment_types", "user_roles"} {
			if err := db.WithContext(ctx).Exec("DELETE FROM " + table).Error; err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}
		fmt.Println("Cleared existing data")
	}

	for _, rows := range []any{&seedRoles, &seedEmploymentTypes, &seedVacationStatuses, &seedVacationTypes} {
		if err := db.WithContext(ctx).Save(rows).Error; err != nil {
			return fmt.Errorf("seed reference rows: %w", err)
		}
	}
	fmt.Println("Seeded reference tables")

	users := user.NewService(userPostgres.NewUserRepository(db), bcryptCost, lg)
	employee, manager := int64(1), int64(2)
	fullTime := int64(1)

	people := []user.CreateUserDTO{
		{Name: "Fadhil", Email: "fadhil@mail.com", Password: "password123", Position: "Backend Engineer", RoleID: &employee, EmploymentTypeID: &fullTime},
		{Name: "Padil Admin", Email: "padil@mail.com", Password: "password123", Position: "Engineering Manager", RoleID: &manager, EmploymentTypeID: &fullTime},
	}

	var firstUserID string
	for _, p := range people {
		u, err := users.CreateUser(ctx, p)
		switch {
		case errors.Is(err, internal.ErrEmailTaken):
			fmt.Println("user already exists:", p.Email)
			existing, err := users.GetUserByEmail(ctx, p.Email)
			if err != nil {
				return err
			}
			if firstUserID == "" && existing != nil {
				firstUserID = existing.ID
			}
		case err != nil:
			return fmt.Errorf("seed user %s: %w", p.Email, err)
		default:
			fmt.Println("Seeded user:", u.Email)
			if firstUserID == "" {
				firstUserID = u.ID
			}
		}
	}

	if firstUserID != "" {
		vacations := vacation.NewService(vacationPostgres.NewVacationRepository(db), lg)
		existing, err := vacations.ListUserVacations(ctx, firstUserID)
		if err != nil {
			return err
		}
		if len(existing) == 0 {
			start := time.Now().UTC().AddDate(0, 1, 0)
			if _, err := vacations.CreateVacation(ctx, vacation.CreateVacationDTO{
				UserID:         firstUserID,
				VacationTypeID: 1,
				StartDate:      start.Format(vacation.DateLayout),
				EndDate:        start.AddDate(0, 0, 4).Format(vacation.DateLayout),
				Comment:        "Summer trip",
			}); err != nil {
				return fmt.Errorf("seed vacation: %w", err)
			}
			fmt.Println("Seeded vacation for", firstUserID)
		}
	}

	projects := project.NewService(projectPostgres.NewProjectRepository(db), lg)
	for _, p := range []struct{ Name, Description string }{
		{"Apollo", "Customer portal rewrite"},
		{"My Project", "Internal tooling"},
	} {
		found, err := projects.GetProjectByName(ctx, url.PathEscape(p.Name))
		if err != nil {
			return err
		}
		if found != nil {
			continue
		}
		if _, err := projects.CreateProject(ctx, p.Name, p.Description); err != nil {
			return fmt.Errorf("seed project %s: %w", p.Name, err)
		}
		fmt.Println("Seeded project:", p.Name)
	}

	return nil
}
