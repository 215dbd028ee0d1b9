package main

import (
	"flag"
	"fmt"
	"log"

	"edutrack/app/config"
	"edutrack/app/database"
	"edutrack/app/models"
)

// Bootstraps a school and its first admin account. Run once per tenant.
func main() {
	schoolName := flag.String("school", "", "school name (creates the school if missing)")
	schoolCode := flag.String("code", "", "short unique school code")
	email := flag.String("email", "", "admin email")
	password := flag.String("password", "", "admin password")
	firstName := flag.String("first-name", "Admin", "first name")
	lastName := flag.String("last-name", "User", "last name")
	flag.Parse()

	if *schoolName == "" || *schoolCode == "" || *email == "" || *password == "" {
		log.Fatal("Usage: add_user -school <name> -code <code> -email <email> -password <password>")
	}

	config.InitDB()
	db := config.GetDB()
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		log.Fatal("Migration failed: ", err)
	}

	var schoolID string
	err := db.QueryRow(`INSERT INTO schools (name, code, created_at, updated_at)
						VALUES ($1, $2, NOW(), NOW())
						ON CONFLICT (code) DO UPDATE SET name = $1, updated_at = NOW()
						RETURNING id`, *schoolName, *schoolCode).Scan(&schoolID)
	if err != nil {
		log.Fatal("Failed to create school: ", err)
	}

	user := &models.User{
		SchoolID:  schoolID,
		Email:     *email,
		Password:  *password,
		FirstName: *firstName,
		LastName:  *lastName,
	}

	if err := database.CreateUser(db, user, []string{"admin"}); err != nil {
		log.Fatal("Failed to create user: ", err)
	}

	fmt.Printf("Admin created: %s %s (%s) in school %q\n", user.FirstName, user.LastName, user.Email, *schoolName)
}
