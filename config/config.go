package config

import (
	"encoding/hex"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	JWTKey    string
	SaltRound int

	// Certificate pipeline
	CertEncryptionKey []byte // decoded from hex, 32 bytes for AES-256-GCM
	CertTemplatePath  string
	VerifyBaseURL     string // public base URL the QR verification links point at
	QuizPassThreshold int    // minimum best score (percent) per quiz for eligibility
	CertUploadFolder  string

	// Cloudinary (best-effort public hosting of certificate artifacts)
	CloudinaryCloudName    string
	CloudinaryUploadPreset string

	EmailSender string
	Password    string // SMTP app password
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:      getEnv("PORT", "3000"),
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		CertEncryptionKey: getEnvHexKey("CERT_ENCRYPTION_KEY"),
		CertTemplatePath:  getEnv("CERT_TEMPLATE_PATH", "assets/certificate_template.png"),
		VerifyBaseURL:     getEnv("VERIFY_BASE_URL", "http://localhost:3000"),
		QuizPassThreshold: getEnvInt("QUIZ_PASS_THRESHOLD", 50),
		CertUploadFolder:  getEnv("CERT_UPLOAD_FOLDER", "novexa/certificates"),

		CloudinaryCloudName:    getEnv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryUploadPreset: getEnv("CLOUDINARY_UPLOAD_PRESET", ""),

		EmailSender: getEnv("EMAIL_SENDER", "defaultSecret"),
		Password:    getEnv("PASSWORD", "defaultSecret"),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.CloudinaryCloudName == "" {
		log.Println("Warning: CLOUDINARY_CLOUD_NAME not set. Certificates will be stored encrypted-only.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}

// getEnvHexKey decodes a hex-encoded 32-byte key from the environment.
// A missing key gets a loud warning and a zeroed development key so the app
// can still boot locally; a malformed key is a deployment defect and fatal.
func getEnvHexKey(key string) []byte {
	value := os.Getenv(key)
	if value == "" {
		log.Printf("Warning: %s not set. Using an insecure development key.", key)
		return make([]byte, 32)
	}
	decoded, err := hex.DecodeString(value)
	if err != nil || len(decoded) != 32 {
		log.Fatalf("%s must be 64 hex characters (32 bytes)", key)
	}
	return decoded
}
