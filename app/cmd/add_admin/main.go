package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/farahtourait-ai/city-college-fee-system/app/config"
	"github.com/farahtourait-ai/city-college-fee-system/app/database"
	"github.com/farahtourait-ai/city-college-fee-system/app/models"
)

func main() {
	email := flag.String("email", "", "admin email address")
	password := flag.String("password", "", "admin password (min 8 characters)")
	firstName := flag.String("first-name", "Admin", "first name")
	lastName := flag.String("last-name", "User", "last name")
	flag.Parse()

	if *email == "" || len(*password) < 8 {
		fmt.Println("Usage: add_admin -email admin@college.test -password <at least 8 chars>")
		os.Exit(1)
	}

	config.LoadEnv()
	config.InitDB()
	db := config.GetDB()
	if db == nil {
		fmt.Println("Failed to connect to database")
		os.Exit(1)
	}
	defer db.Close()

	user := &models.User{
		Email:     *email,
		Password:  *password,
		FirstName: *firstName,
		LastName:  *lastName,
	}

	if err := database.CreateUser(db, user, "admin"); err != nil {
		fmt.Printf("Error creating admin user: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Admin user created: %s %s (%s)\n", user.FirstName, user.LastName, user.Email)
}
