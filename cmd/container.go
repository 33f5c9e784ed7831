package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/Abraxas-365/talentrelay/pkg/fsx"
	"github.com/Abraxas-365/talentrelay/pkg/fsx/fsxmem"
	"github.com/Abraxas-365/talentrelay/pkg/fsx/fsxs3"
	"github.com/Abraxas-365/talentrelay/pkg/logx"
	"github.com/Abraxas-365/talentrelay/recruitment/candidate"
	"github.com/Abraxas-365/talentrelay/recruitment/candidate/candidateapi"
	"github.com/Abraxas-365/talentrelay/recruitment/candidate/candidateinfra"
	"github.com/Abraxas-365/talentrelay/recruitment/candidate/candidatesrv"
	"github.com/Abraxas-365/talentrelay/recruitment/duplicate"
	"github.com/Abraxas-365/talentrelay/recruitment/duplicate/duplicateapi"
	"github.com/Abraxas-365/talentrelay/recruitment/duplicate/duplicatesrv"
	"github.com/Abraxas-365/talentrelay/recruitment/job"
	"github.com/Abraxas-365/talentrelay/recruitment/job/jobapi"
	"github.com/Abraxas-365/talentrelay/recruitment/job/jobinfra"
	"github.com/Abraxas-365/talentrelay/recruitment/job/jobsrv"
	"github.com/Abraxas-365/talentrelay/recruitment/questionnaire"
	"github.com/Abraxas-365/talentrelay/recruitment/questionnaire/questionnaireapi"
	"github.com/Abraxas-365/talentrelay/recruitment/questionnaire/questionnaireinfra"
	"github.com/Abraxas-365/talentrelay/recruitment/questionnaire/questionnairesrv"
	"github.com/Abraxas-365/talentrelay/recruitment/ranking"
	"github.com/Abraxas-365/talentrelay/recruitment/ranking/rankingapi"
	"github.com/Abraxas-365/talentrelay/recruitment/ranking/rankingsrv"
	"github.com/Abraxas-365/talentrelay/recruitment/resume"
	"github.com/Abraxas-365/talentrelay/recruitment/resume/resumeapi"
	"github.com/Abraxas-365/talentrelay/recruitment/resume/resumeinfra"
	"github.com/Abraxas-365/talentrelay/recruitment/resume/resumeparse"
	"github.com/Abraxas-365/talentrelay/recruitment/resume/resumesrv"
	"github.com/Abraxas-365/talentrelay/recruitment/resume/worker"
	"github.com/Abraxas-365/talentrelay/recruitment/screening"
	"github.com/Abraxas-365/talentrelay/recruitment/screening/screeningapi"
	"github.com/Abraxas-365/talentrelay/recruitment/screening/screeninginfra"
	"github.com/Abraxas-365/talentrelay/recruitment/screening/screeningsrv"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

const (
	storageMemory   = "memory"
	storagePostgres = "postgres"

	parseQueuePrefix = "talentrelay:parse"
	jobKeyPrefix     = "talentrelay:job"
)

// Container holds all application dependencies
type Container struct {
	// Config
	StorageDriver string
	Vocabulary    *resumeparse.Vocabulary

	// Infrastructure
	DB         *sqlx.DB
	Redis      *redis.Client
	FileSystem fsx.FileSystem
	S3Client   *s3.Client

	// Repositories
	resumeRepo        resume.Repository
	processingJobRepo resume.JobRepository
	parseQueue        resume.ParseQueue
	jobRepo           job.Repository
	candidateRepo     candidate.Repository
	responseRepo      questionnaire.Repository
	screeningRepo     screening.Repository

	// Recruitment Services
	ResumeService        *resumesrv.Service
	JobService           *jobsrv.JobService
	CandidateService     *candidatesrv.CandidateService
	QuestionnaireService *questionnairesrv.QuestionnaireService
	ScreeningService     *screeningsrv.ScreeningService
	RankingService       *rankingsrv.RankingService
	DuplicateService     *duplicatesrv.DuplicateService

	// Workers
	ResumeWorker *worker.ResumeWorker

	// API Handlers
	ResumeHandlers        *resumeapi.ResumeHandlers
	JobHandlers           *jobapi.Handlers
	CandidateHandlers     *candidateapi.CandidateHandlers
	QuestionnaireHandlers *questionnaireapi.QuestionnaireHandlers
	ScreeningHandlers     *screeningapi.Handlers
	RankingHandlers       *rankingapi.Handlers
	DuplicateHandlers     *duplicateapi.Handlers
}

// NewContainer initializes the dependency injection container
func NewContainer() *Container {
	c := &Container{
		StorageDriver: getEnv("STORAGE_DRIVER", storageMemory),
	}
	c.initInfrastructure()
	c.initRepositories()
	c.initServices()
	c.initHandlers()
	return c
}

func (c *Container) initInfrastructure() {
	// 1. Database Connection
	if c.StorageDriver == storagePostgres {
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			os.Getenv("DB_HOST"), getEnv("DB_PORT", "5432"), os.Getenv("DB_USER"), os.Getenv("DB_PASS"), os.Getenv("DB_NAME"))

		db, err := sqlx.Connect("postgres", dsn)
		if err != nil {
			logx.Fatalf("Failed to connect to database: %v", err)
		}
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
		c.DB = db
	} else if c.StorageDriver != storageMemory {
		logx.Fatalf("Unknown STORAGE_DRIVER %q (want memory or postgres)", c.StorageDriver)
	}

	// 2. Redis Connection
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		c.Redis = redis.NewClient(&redis.Options{
			Addr:     redisAddr,
			Password: os.Getenv("REDIS_PASS"),
			DB:       0,
		})
		if _, err := c.Redis.Ping(context.Background()).Result(); err != nil {
			logx.Warnf("Failed to connect to Redis: %v", err)
		}
	}

	// 3. AWS S3 Configuration
	if bucket := os.Getenv("AWS_BUCKET"); bucket != "" {
		cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(os.Getenv("AWS_REGION")))
		if err != nil {
			logx.Fatalf("unable to load SDK config, %v", err)
		}
		c.S3Client = s3.NewFromConfig(cfg)
		c.FileSystem = fsxs3.NewS3FileSystem(c.S3Client, bucket, "uploads")
	} else {
		logx.Infof("AWS_BUCKET not set, async uploads are kept in memory")
		c.FileSystem = fsxmem.NewMemoryFileSystem()
	}

	// 4. Vocabulary
	c.Vocabulary = resumeparse.DefaultVocabulary()
	if path := os.Getenv("VOCABULARY_FILE"); path != "" {
		vocab, err := resumeparse.LoadVocabulary(path)
		if err != nil {
			logx.Fatalf("Failed to load vocabulary: %v", err)
		}
		c.Vocabulary = vocab
	}
}

func (c *Container) initRepositories() {
	if c.DB != nil {
		c.resumeRepo = resumeinfra.NewPostgresResumeRepository(c.DB)
		c.processingJobRepo = resumeinfra.NewPostgresJobRepository(c.DB)
		c.jobRepo = jobinfra.NewPostgresJobRepository(c.DB)
		c.candidateRepo = candidateinfra.NewPostgresCandidateRepository(c.DB)
		c.responseRepo = questionnaireinfra.NewPostgresResponseRepository(c.DB)
		c.screeningRepo = screeninginfra.NewPostgresScreeningRepository(c.DB)
	} else {
		c.resumeRepo = resumeinfra.NewMemoryResumeRepository()
		c.jobRepo = jobinfra.NewMemoryJobRepository()
		c.candidateRepo = candidateinfra.NewMemoryCandidateRepository()
		c.responseRepo = questionnaireinfra.NewMemoryResponseRepository()
		c.screeningRepo = screeninginfra.NewMemoryScreeningRepository()
	}

	// Async parse queue and processing job status
	if c.Redis != nil {
		c.parseQueue = resumeinfra.NewRedisParseQueue(c.Redis, parseQueuePrefix)
		if c.processingJobRepo == nil {
			c.processingJobRepo = resumeinfra.NewRedisJobRepository(c.Redis, jobKeyPrefix)
		}
	} else {
		c.parseQueue = resumeinfra.NewMemoryParseQueue()
	}
	if c.processingJobRepo == nil {
		c.processingJobRepo = resumeinfra.NewMemoryJobRepository()
	}
}

func (c *Container) initServices() {
	// Resume parsing, server-then-local when a remote parser is configured
	var remote resume.RemoteParser
	if url := os.Getenv("REMOTE_PARSER_URL"); url != "" {
		remote = resumeinfra.NewRemoteParserClient(url, 30*time.Second)
	}
	c.ResumeService = resumesrv.NewService(
		c.resumeRepo,
		resumeparse.NewParser(c.Vocabulary),
		remote,
		c.processingJobRepo,
		c.FileSystem,
		c.parseQueue,
		resumesrv.DefaultConfig(),
	)

	workerCfg := worker.DefaultConfig()
	workerCfg.Workers = getEnvInt("PARSE_WORKERS", workerCfg.Workers)
	c.ResumeWorker = worker.NewResumeWorker(c.ResumeService, c.parseQueue, workerCfg)

	// Collaborators
	c.JobService = jobsrv.NewJobService(c.jobRepo)
	c.CandidateService = candidatesrv.NewCandidateService(c.candidateRepo, c.ResumeService)
	c.QuestionnaireService = questionnairesrv.NewQuestionnaireService(c.responseRepo, c.candidateRepo, c.jobRepo)

	// Screening, ranking and duplicate detection
	screeningCfg := screening.DefaultConfig(c.Vocabulary)
	screeningCfg.QualifiedThreshold = getEnvFloat("QUALIFIED_THRESHOLD", screening.DefaultQualifiedThreshold)
	c.ScreeningService = screeningsrv.NewScreeningService(c.screeningRepo, c.jobRepo, c.candidateRepo, c.ResumeService, screeningCfg)

	c.RankingService = rankingsrv.NewRankingService(c.screeningRepo, c.jobRepo, c.QuestionnaireService, ranking.DefaultConfig())

	duplicateCfg := duplicate.Config{Threshold: getEnvFloat("DUPLICATE_THRESHOLD", duplicate.DefaultThreshold)}
	if err := duplicateCfg.Validate(); err != nil {
		logx.Fatalf("Invalid DUPLICATE_THRESHOLD: %v", err)
	}
	c.DuplicateService = duplicatesrv.NewDuplicateService(c.ResumeService, duplicateCfg)
}

func (c *Container) initHandlers() {
	c.ResumeHandlers = resumeapi.NewResumeHandlers(c.ResumeService, resumesrv.DefaultConfig().MaxFileSize)
	c.JobHandlers = jobapi.NewHandlers(c.JobService)
	c.CandidateHandlers = candidateapi.NewCandidateHandlers(c.CandidateService)
	c.QuestionnaireHandlers = questionnaireapi.NewQuestionnaireHandlers(c.QuestionnaireService)
	c.ScreeningHandlers = screeningapi.NewHandlers(c.ScreeningService)
	c.RankingHandlers = rankingapi.NewHandlers(c.RankingService)
	c.DuplicateHandlers = duplicateapi.NewHandlers(c.DuplicateService)
}

// Close releases the database and redis connections
func (c *Container) Close() {
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			logx.Warnf("Failed to close database: %v", err)
		}
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logx.Warnf("Failed to close redis: %v", err)
		}
	}
}

// ============================================================================
// Environment helpers
// ============================================================================

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		logx.Warnf("Ignoring invalid %s=%q: %v", key, raw, err)
		return fallback
	}
	return v
}

func getEnvFloat(key string, fallback float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		logx.Warnf("Ignoring invalid %s=%q: %v", key, raw, err)
		return fallback
	}
	return v
}
