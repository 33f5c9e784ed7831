package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Abraxas-365/talentrelay/pkg/fiberx"
	"github.com/Abraxas-365/talentrelay/pkg/logx"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// bodyLimit leaves room for a 10 MB resume plus multipart overhead
const bodyLimit = 12 * 1024 * 1024

func main() {
	// 1. Initialize Logger
	logx.SetLevel(logx.ParseLevel(os.Getenv("LOG_LEVEL")))
	logx.Info("Starting TalentRelay API Server...")

	// 2. Initialize Dependency Container
	container := NewContainer()
	defer container.Close()

	// 3. Create Fiber App with Config
	app := fiberx.NewApp("TalentRelay ATS API", bodyLimit)

	// 4. Global Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*", // Configure for production
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, PUT, DELETE, PATCH, HEAD",
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// 5. Health Check
	app.Get("/health", func(c *fiber.Ctx) error {
		status := fiber.Map{
			"status":  "ok",
			"storage": container.StorageDriver,
			"async":   container.ResumeService.AsyncEnabled(),
		}
		if container.DB != nil {
			status["db"] = container.DB.Ping() == nil
		}
		if container.Redis != nil {
			status["redis"] = container.Redis.Ping(c.Context()).Err() == nil
		}
		return c.JSON(status)
	})

	// 6. Register Routes

	// Resumes: /api/resumes, /api/parse-cv
	container.ResumeHandlers.RegisterRoutes(app)

	// Jobs: /api/jobs
	container.JobHandlers.RegisterRoutes(app)

	// Duplicates before candidates, /api/candidates/:id would shadow them
	container.DuplicateHandlers.RegisterRoutes(app)
	container.CandidateHandlers.RegisterRoutes(app)

	// Questionnaires: /api/questionnaires/responses
	container.QuestionnaireHandlers.RegisterRoutes(app)

	// Screening and ranking: /api/screenings, /api/jobs/:id/ranking
	container.ScreeningHandlers.RegisterRoutes(app)
	container.RankingHandlers.RegisterRoutes(app)

	// 7. Start async parse workers
	ctx, cancel := context.WithCancel(context.Background())
	if container.ResumeService.AsyncEnabled() {
		container.ResumeWorker.Start(ctx)
	}

	// 8. Start Server with Graceful Shutdown
	port := getEnv("PORT", "8080")

	go func() {
		logx.Infof("Server listening on port %s", port)
		if err := app.Listen(":" + port); err != nil {
			logx.Fatalf("Server error: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	<-sig
	logx.Info("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		logx.Errorf("Server forced to shutdown: %v", err)
	}

	cancel()
	container.ResumeWorker.Wait()

	logx.Info("Server exited")
}
