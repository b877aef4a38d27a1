package main

import (
	"context"
	"os"
	"strconv"
	"time"

	"notestash/internal/domain/sqlite"
	"notestash/internal/domain/sqlite/repository"
	"notestash/internal/http/handler"
	custommw "notestash/internal/http/middleware"
	cognitoclient "notestash/internal/infrastructure/aws/cognito"
	"notestash/internal/infrastructure/aws/storage"
	"notestash/internal/service"
	"notestash/internal/service/jobs"
	"notestash/internal/utils"
	"notestash/internal/utils/uid"
	"notestash/internal/utils/validators"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

const envVarsPrefix = "/notestash/prod/"

func main() {
	validate := validator.New()
	registerValidators(validate)

	// Loads env vars depending on environment
	if os.Getenv("GO_ENV") == "production" {
		loadProdEnv() // AWS SSM Parameter Store
	} else {
		// Loads from .env
		err := godotenv.Load()
		if err != nil {
			panic(err)
		}
	}

	uid.Init(envInt64("NODE_ID", 1))

	// Init SQLite
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "database.db"
	}
	db, err := sqlite.Init(dbPath)
	if err != nil {
		panic(err)
	}

	// The token verifier only needs the pool's public keys
	err = utils.InitJWKS(os.Getenv("AWS_COGNITO_REGION"), os.Getenv("COGNITO_USER_POOL_ID"))
	if err != nil {
		panic(err)
	}

	// Init cognito client
	cogClient, err := cognitoclient.InitCognitoClient()
	if err != nil {
		panic(err)
	}

	// Init S3 client
	s3Client, err := storage.NewStorageClient()
	if err != nil {
		panic(err)
	}

	// Getting repos
	noteRepo := repository.NewNoteRepository(db)
	trashRepo := repository.NewTrashRepository(db)

	// Getting services
	noteService := service.NewNoteService(noteRepo, trashRepo, s3Client, validate)
	uploadService := service.NewUploadService(s3Client)
	authService := service.NewAuthService(cogClient, validate)

	// Getting handlers
	noteRoutes := handler.NewNoteDefault(noteService)
	trashRoutes := handler.NewTrashDefault(noteService)
	uploadRoutes := handler.NewUploadDefault(uploadService)
	authRoutes := handler.NewAuthDefault(authService)

	e := echo.New()
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit("30M"))

	// Account passthrough (no credentials required yet)
	e.POST("/auth/signup", authRoutes.SignUp)
	e.POST("/auth/login", authRoutes.Login)
	e.POST("/auth/confirm", authRoutes.ConfirmSignup)
	e.POST("/auth/confirm/resend", authRoutes.ResendConfirmation)

	// Owner-scoped routes
	owned := e.Group("", custommw.NewAuthMiddleware())

	// Notes
	owned.GET("/notes", noteRoutes.GetNotes)
	owned.POST("/notes", noteRoutes.CreateNote)
	owned.PUT("/notes/:id", noteRoutes.UpdateNote)
	owned.DELETE("/notes/:id", noteRoutes.DeleteNote)

	// Trash
	owned.GET("/trash", trashRoutes.GetTrash)
	owned.POST("/trash/restore/:id", trashRoutes.RestoreNote)
	owned.DELETE("/trash/:id", trashRoutes.PermanentDeleteNote)

	// Attachments
	owned.POST("/upload", uploadRoutes.UploadAttachment)

	// Docker Compose healthcheck
	e.GET("/health", healthCheckRoute)

	// Trash retention cron, disabled when TRASH_RETENTION_DAYS is 0
	if days := envInt64("TRASH_RETENTION_DAYS", 30); days > 0 {
		retention := time.Duration(days) * 24 * time.Hour
		sweeper := jobs.NewTrashSweeper(noteService, trashRepo, retention)
		go sweeper.Start(context.Background())
	}

	if err := e.Start(":7070"); err != nil {
		panic(err)
	}
}

func registerValidators(validate *validator.Validate) {
	_ = validate.RegisterValidation("hasupper", validators.HasUpper)
	_ = validate.RegisterValidation("haslower", validators.HasLower)
	_ = validate.RegisterValidation("hasdigit", validators.HasDigit)
	_ = validate.RegisterValidation("hasspecial", validators.HasSpecial)
	_ = validate.RegisterValidation("nospaces", validators.NoWhiteSpaces)
}

func envInt64(key string, fallback int64) int64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}

	val, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		log.Fatalf("invalid value for %s: %v", key, err)
	}
	return val
}

func loadProdEnv() {
	ctx := context.Background()
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion("us-east-2"))
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	client := ssm.NewFromConfig(cfg)
	out, err := client.GetParametersByPath(ctx, &ssm.GetParametersByPathInput{
		Path:           aws.String(envVarsPrefix),
		WithDecryption: aws.Bool(true),
		Recursive:      aws.Bool(true),
	})
	if err != nil {
		log.Fatalf("unable to load prod environment, %v", err)
	}

	prefixLength := len(envVarsPrefix)
	// Export vars
	for _, param := range out.Parameters {
		key := (*param.Name)[prefixLength:]
		value := *param.Value
		enverr := os.Setenv(key, value)
		if enverr != nil {
			log.Fatalf("unable to set environment variable, %v", enverr)
		}
	}
	log.Debugf("loaded %d prod environment variables", len(out.Parameters))
}

func healthCheckRoute(c echo.Context) error {
	return c.String(200, "OK")
}
