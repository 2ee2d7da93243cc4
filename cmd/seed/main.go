package main

import (
	"context"
	"log"
	"os"
	"time"

	"hr-assistant-be/internal/entity"
	"hr-assistant-be/internal/repository/implementation"
	"hr-assistant-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	ctx := context.Background()
	repo := implementation.NewRecordRepository(db)

	joinAlice := time.Date(2021, 3, 15, 0, 0, 0, 0, time.UTC)
	joinBob := time.Date(2019, 7, 1, 0, 0, 0, 0, time.UTC)
	joinHR := time.Date(2018, 1, 8, 0, 0, 0, 0, time.UTC)

	records := []*entity.EmployeeRecord{
		{
			Id:              uuid.New(),
			UserId:          uuid.MustParse("11111111-1111-1111-1111-111111111111"),
			Name:            "Alice Chen",
			Email:           "alice.chen@corp.example",
			Role:            entity.RoleEmployee,
			Position:        "Software Engineer",
			Department:      "Engineering",
			BaseSalary:      82000,
			Bonus:           6000,
			AnnualLeaveDays: 14,
			SickLeaveDays:   8,
			JoinDate:        &joinAlice,
		},
		{
			Id:              uuid.New(),
			UserId:          uuid.MustParse("22222222-2222-2222-2222-222222222222"),
			Name:            "Bob Martins",
			Email:           "bob.martins@corp.example",
			Role:            entity.RoleEmployee,
			Position:        "Account Manager",
			Department:      "Sales",
			BaseSalary:      64000,
			Bonus:           9500,
			AnnualLeaveDays: 9,
			SickLeaveDays:   12,
			JoinDate:        &joinBob,
		},
		{
			Id:              uuid.New(),
			UserId:          uuid.MustParse("33333333-3333-3333-3333-333333333333"),
			Name:            "Dana Whitfield",
			Email:           "dana.whitfield@corp.example",
			Role:            entity.RoleHR,
			Position:        "HR Business Partner",
			Department:      "People Operations",
			BaseSalary:      71000,
			Bonus:           4000,
			AnnualLeaveDays: 18,
			SickLeaveDays:   10,
			JoinDate:        &joinHR,
		},
		{
			Id:              uuid.New(),
			UserId:          uuid.MustParse("44444444-4444-4444-4444-444444444444"),
			Name:            "Evan Osei",
			Email:           "evan.osei@mail.example",
			Role:            entity.RoleApplicant,
			ApplicantStatus: "interview scheduled",
			UploadedDocuments: map[string]bool{
				"cv":             true,
				"cover_letter":   true,
				"certifications": false,
			},
			ResubmissionRequested: map[string]bool{
				"cover_letter": true,
			},
		},
	}

	for _, record := range records {
		if err := repo.Create(ctx, record); err != nil {
			log.Printf("Warn: Failed to seed record for %s: %v", record.Email, err)
			continue
		}
		log.Printf("Seeded %s record: %s (%s)", record.Role, record.Name, record.UserId)
	}

	log.Println("Seeding complete.")
}
