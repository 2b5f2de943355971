package authController

import (
	"log"
	"time"

	"github.com/Manel-Mahdjoubi/novexa/config"
	"github.com/Manel-Mahdjoubi/novexa/database"
	"github.com/Manel-Mahdjoubi/novexa/middleware"
	"github.com/Manel-Mahdjoubi/novexa/models"
	"github.com/Manel-Mahdjoubi/novexa/utils"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	maxFailedLogins = 5
	lockoutWindow   = 15 * time.Minute
)

// Signup registers a new student or teacher account
func Signup(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedSignup").(*struct {
		Name     string `json:"name" validate:"required,min=2,max=100"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
		Role     string `json:"role" validate:"required,oneof=STUDENT TEACHER"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Check if email already exists
	if err := db.Where("email = ?", reqData.Email).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email is already registered!", nil)
	}

	// Hash Password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	newUser := models.User{
		Name:     reqData.Name,
		Email:    reqData.Email,
		Role:     reqData.Role,
		Password: string(hashedPassword),
	}

	if err := db.Create(&newUser).Error; err != nil {
		log.Printf("Error saving user to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to Signup user!", nil)
	}

	// Welcome mail is best-effort
	go func(user models.User) {
		if err := utils.SendWelcomeEmail(user.Name, user.Email); err != nil {
			log.Printf("Error sending welcome email to %s: %v", user.Email, err)
		}
	}(newUser)

	// Clean Response
	newUser.Password = ""

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User registered successfully.", newUser)
}

// Login authenticates a user and returns a JWT
func Login(c *fiber.Ctx) error {
	reqData := new(struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	})

	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to parse request body!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("email = ? AND is_deleted = ?", reqData.Email, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	if !user.IsEmailVerified {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Email not verified!", nil)
	}

	// Check if the user is blocked
	if user.IsBlocked && user.BlockedUntil != nil && user.BlockedUntil.After(time.Now()) {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Your account is temporarily blocked. Try again later.", nil)
	}

	if user.LastFailedLogin != nil && time.Since(*user.LastFailedLogin) > lockoutWindow {
		user.FailedLoginAttempts = 0
		user.LastFailedLogin = nil
		database.Database.Db.Save(&user)
	}

	// Validate password
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		user.FailedLoginAttempts++
		now := time.Now()
		user.LastFailedLogin = &now

		if user.FailedLoginAttempts >= maxFailedLogins {
			user.IsBlocked = true
			unblockTime := now.Add(lockoutWindow)
			user.BlockedUntil = &unblockTime
		}

		if err := database.Database.Db.Save(&user).Error; err != nil {
			log.Printf("Error saving failed login state: %v", err)
		}

		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	// Update last login time
	user.LastLogin = time.Now()
	user.FailedLoginAttempts = 0
	user.IsBlocked = false
	user.BlockedUntil = nil
	if err := database.Database.Db.Save(&user).Error; err != nil {
		log.Printf("Error saving last login time: %v", err)
	}

	ip := c.IP()
	if forwarded := c.Get("X-Forwarded-For"); forwarded != "" {
		ip = forwarded
	}

	// Capture login tracking details
	loginTracking := models.LoginTracking{
		UserID:    user.ID,
		IPAddress: ip,
		Device:    c.Get("User-Agent"),
		Timestamp: time.Now(),
	}
	if err := database.Database.Db.Create(&loginTracking).Error; err != nil {
		log.Printf("Error saving login tracking details: %v", err)
	}

	// Sanitize user data
	user.Password = ""

	// Generate JWT token
	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate token", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful.", fiber.Map{
		"user":  user,
		"token": token,
	})
}

// SendOTP sends an email verification code to an unverified account
func SendOTP(c *fiber.Ctx) error {
	reqData := new(struct {
		Email string `json:"email"`
	})

	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to parse request body!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("email = ? AND is_deleted = ?", reqData.Email, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid email!", nil)
	}
	if user.IsEmailVerified {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Email already verified!", nil)
	}

	otp := utils.GenerateOTP()
	expiresAt := time.Now().Add(5 * time.Minute)

	otpRecord := models.OTP{
		UserID:      user.ID,
		Email:       reqData.Email,
		Code:        otp,
		ExpiresAt:   expiresAt,
		Description: "Email Verification OTP",
	}

	if err := utils.SendOTPEmail(otp, reqData.Email); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to send OTP to email!", nil)
	}

	if err := database.Database.Db.Create(&otpRecord).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to Create OTP!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "OTP sent successfully.", nil)
}

// VerifyOTP validates an email verification code and marks the email verified
func VerifyOTP(c *fiber.Ctx) error {
	reqData := new(struct {
		Email string `json:"email"`
		Code  string `json:"code"`
	})

	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to parse request body!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("email = ? AND is_deleted = ?", reqData.Email, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid email!", nil)
	}

	var otp models.OTP
	err := database.Database.Db.
		Where("user_id = ? AND code = ? AND is_used = ? AND is_deleted = ?", user.ID, reqData.Code, false, false).
		Order("created_at desc").
		First(&otp).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid OTP!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to verify OTP!", nil)
	}

	if otp.ExpiresAt.Before(time.Now()) {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "OTP has expired!", nil)
	}

	otp.IsUsed = true
	user.IsEmailVerified = true

	tx := database.Database.Db.Begin()
	if err := tx.Save(&otp).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to verify OTP!", nil)
	}
	if err := tx.Save(&user).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to verify OTP!", nil)
	}
	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Email verified successfully.", nil)
}

// LoginHistoryList returns the user's recent login records
func LoginHistoryList(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var history []models.LoginTracking
	if err := database.Database.Db.
		Where("user_id = ? AND is_deleted = ?", userId, false).
		Order("timestamp desc").
		Limit(20).
		Find(&history).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch login history!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login history fetched successfully!", history)
}
