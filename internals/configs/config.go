package configs

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

var (
	JWTSecret     string
	ProcessAPIURL string
	ProcessAPIKey string
	FrontendURL   string

	MidtransServerKey string

	OSSEndpoint        string
	OSSAccessKeyID     string
	OSSAccessKeySecret string
	OSSBucket          string

	// module records can live in our own DB or in the low-code store
	ModuleSource string

	SmartSuiteAPIURL string
	SmartSuiteAPIKey string
	SmartSuiteTable  string

	SessionTTLMinutes int
	SessionReaperCron string

	// block_on_failure | proceed_regardless
	SubmissionFailurePolicy string

	QuestionCount int
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("[INFO] No .env file found, using system ENV")
		} else {
			log.Println("[INFO] .env file loaded")
		}
	} else {
		log.Println("[INFO] Running on Railway, using system ENV")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	ProcessAPIURL = GetEnv("PROCESS_API_URL")
	ProcessAPIKey = GetEnv("PROCESS_API_KEY")
	FrontendURL = GetEnvOrDefault("FRONTEND_URL", "https://clearproof.co.uk")

	MidtransServerKey = GetEnv("MIDTRANS_SERVER_KEY")

	OSSEndpoint = GetEnv("OSS_ENDPOINT")
	OSSAccessKeyID = GetEnv("OSS_ACCESS_KEY_ID")
	OSSAccessKeySecret = GetEnv("OSS_ACCESS_KEY_SECRET")
	OSSBucket = GetEnv("OSS_BUCKET")

	ModuleSource = GetEnvOrDefault("MODULE_SOURCE", "db")
	SmartSuiteAPIURL = GetEnv("SMARTSUITE_API_URL")
	SmartSuiteAPIKey = GetEnv("SMARTSUITE_API_KEY")
	SmartSuiteTable = GetEnv("SMARTSUITE_TABLE")

	SessionTTLMinutes = GetEnvInt("SESSION_TTL_MINUTES", 60)
	SessionReaperCron = GetEnvOrDefault("SESSION_REAPER_CRON", "@every 10m")

	SubmissionFailurePolicy = GetEnvOrDefault("SUBMISSION_FAILURE_POLICY", "block_on_failure")
	QuestionCount = GetEnvInt("QUESTION_COUNT", 3)

	if JWTSecret == "" {
		log.Println("[ERROR] JWT_SECRET is not set!")
	}
	if ProcessAPIURL == "" {
		log.Println("[ERROR] PROCESS_API_URL is not set, transform/translate/questions will fail!")
	}
}

func GetEnv(key string) string {
	return os.Getenv(key)
}

func GetEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func GetEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}
