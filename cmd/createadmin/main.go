// Command createadmin creates or replaces an admin account so the admin UI
// has a login after a fresh deployment.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/realkdc/top-thc-brands/internal/auth"
	"github.com/realkdc/top-thc-brands/internal/domain/entities"
	"github.com/realkdc/top-thc-brands/pkg/config"
)

func main() {
	email := flag.String("email", "admin@topthcbrands.com", "admin email address")
	password := flag.String("password", "", "admin password (required)")
	name := flag.String("name", "Admin User", "admin display name")
	flag.Parse()

	if *password == "" {
		fmt.Fprintln(os.Stderr, "error: -password is required")
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	db, err := sqlx.Connect("postgres", cfg.Database.DatabaseDSN())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := createAdmin(db, *email, *password, *name); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create admin user: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("admin user %s created\n", *email)
}

func createAdmin(db *sqlx.DB, email, password, name string) error {
	// Normalize the same way the login handler does, otherwise a mixed-case
	// email could never be looked up again.
	email = strings.ToLower(strings.TrimSpace(email))

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := entities.User{
		ID:        uuid.NewString(),
		Email:     email,
		Password:  hashed,
		Name:      name,
		Role:      entities.RoleAdmin,
		CreatedAt: time.Now().UTC(),
	}

	// Replace any existing account with the same email so the command can
	// also reset a lost password.
	if _, err := db.Exec(`DELETE FROM users WHERE email = $1`, email); err != nil {
		return fmt.Errorf("failed to remove existing user: %w", err)
	}

	_, err = db.NamedExec(`
		INSERT INTO users (id, email, password, name, role, created_at)
		VALUES (:id, :email, :password, :name, :role, :created_at)`,
		user,
	)
	return err
}
