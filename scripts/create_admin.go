package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"imobiliaria-server/models"
	"imobiliaria-server/storage"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Seeds the first admin account from ADMIN_EMAIL / ADMIN_PASSWORD.
// Safe to re-run: an existing account with the same email is left alone.
func main() {
	godotenv.Load()
	storage.InitializeDB()

	email := strings.ToLower(os.Getenv("ADMIN_EMAIL"))
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD must be set")
	}

	var existing models.User
	if err := storage.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		fmt.Printf("Admin %s already exists, nothing to do\n", email)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Error hashing password: %v", err)
	}

	admin := models.User{
		FirstName: os.Getenv("ADMIN_FIRST_NAME"),
		LastName:  os.Getenv("ADMIN_LAST_NAME"),
		Email:     email,
		Password:  string(hashed),
		Role:      "super_admin",
	}
	if err := storage.DB.Create(&admin).Error; err != nil {
		log.Fatalf("Error creating admin: %v", err)
	}

	fmt.Printf("Admin %s created successfully!\n", email)
}
