package main

import (
	"log"

	"github.com/Manel-Mahdjoubi/novexa/config"
	"github.com/Manel-Mahdjoubi/novexa/database"
	"github.com/Manel-Mahdjoubi/novexa/models"
	courseModels "github.com/Manel-Mahdjoubi/novexa/models/course"

	"golang.org/x/crypto/bcrypt"
)

// Seeds a demo admin, teacher, student and a small published course so a
// fresh environment is immediately usable. Safe to re-run: existing emails
// are skipped.
func main() {
	config.LoadConfig()
	database.ConnectDb()

	db := database.Database.Db

	admin := seedUser("Platform Admin", "admin@novexa.io", "admin12345", models.RoleAdmin)
	teacher := seedUser("Demo Teacher", "teacher@novexa.io", "teacher12345", models.RoleTeacher)
	seedUser("Demo Student", "student@novexa.io", "student12345", models.RoleStudent)
	log.Printf("Admin user ready: %s", admin.Email)

	var existing courseModels.Course
	if err := db.Where("title = ? AND teacher_id = ?", "Introduction to Go", teacher.ID).First(&existing).Error; err == nil {
		log.Println("Demo course already seeded, nothing to do")
		return
	}

	course := courseModels.Course{
		TeacherID:          teacher.ID,
		Title:              "Introduction to Go",
		Description:        "A short hands-on course covering Go fundamentals.",
		Category:           "Programming",
		Level:              "BEGINNER",
		Duration:           4,
		Status:             "ACTIVE",
		IsPublished:        true,
		CertificateEnabled: true,
	}
	if err := db.Create(&course).Error; err != nil {
		log.Fatalf("Failed to seed course: %v", err)
	}

	chapter := courseModels.Chapter{
		CourseID:    course.ID,
		Title:       "Getting Started",
		Description: "Toolchain, syntax and your first program.",
		OrderIndex:  1,
	}
	if err := db.Create(&chapter).Error; err != nil {
		log.Fatalf("Failed to seed chapter: %v", err)
	}

	lectures := []courseModels.Lecture{
		{
			CourseID:    course.ID,
			ChapterID:   chapter.ID,
			Title:       "Installing Go",
			ContentType: "TEXT",
			TextContent: "Download the toolchain from go.dev and verify with `go version`.",
			Duration:    10,
			OrderIndex:  1,
			IsPublished: true,
		},
		{
			CourseID:    course.ID,
			ChapterID:   chapter.ID,
			Title:       "Hello, World",
			ContentType: "TEXT",
			TextContent: "Write, build and run your first Go program.",
			Duration:    15,
			OrderIndex:  2,
			IsPublished: true,
		},
	}
	for i := range lectures {
		if err := db.Create(&lectures[i]).Error; err != nil {
			log.Fatalf("Failed to seed lecture: %v", err)
		}
	}

	quiz := courseModels.Quiz{
		CourseID:   course.ID,
		ChapterID:  chapter.ID,
		Title:      "Getting Started Quiz",
		OrderIndex: 1,
	}
	if err := db.Create(&quiz).Error; err != nil {
		log.Fatalf("Failed to seed quiz: %v", err)
	}

	question := courseModels.QuizQuestion{
		QuizID:       quiz.ID,
		QuestionText: "Which command compiles and runs a Go program in one step?",
		OrderIndex:   1,
	}
	if err := db.Create(&question).Error; err != nil {
		log.Fatalf("Failed to seed quiz question: %v", err)
	}

	options := []courseModels.QuizOption{
		{QuestionID: question.ID, OptionText: "go run", IsCorrect: true, OrderIndex: 1},
		{QuestionID: question.ID, OptionText: "go vet", OrderIndex: 2},
		{QuestionID: question.ID, OptionText: "go fmt", OrderIndex: 3},
	}
	for i := range options {
		if err := db.Create(&options[i]).Error; err != nil {
			log.Fatalf("Failed to seed quiz option: %v", err)
		}
	}

	log.Println("Demo data seeded successfully")
}

func seedUser(name, email, password, role string) *models.User {
	db := database.Database.Db

	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err == nil {
		return &user
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), config.AppConfig.SaltRound)
	if err != nil {
		log.Fatalf("Failed to hash password for %s: %v", email, err)
	}

	user = models.User{
		Name:            name,
		Email:           email,
		Password:        string(hashed),
		Role:            role,
		IsEmailVerified: true,
	}
	if err := db.Create(&user).Error; err != nil {
		log.Fatalf("Failed to seed user %s: %v", email, err)
	}
	log.Printf("Seeded %s user: %s", role, email)
	return &user
}
