package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/joho/godotenv"
	"github.com/streadway/amqp"
	"google.golang.org/genai"

	"github.com/olamideoke/resumerag/internal/analysis"
	"github.com/olamideoke/resumerag/internal/chunker"
	"github.com/olamideoke/resumerag/internal/corpus"
	"github.com/olamideoke/resumerag/internal/database"
	"github.com/olamideoke/resumerag/internal/embedding"
	"github.com/olamideoke/resumerag/internal/extract"
	"github.com/olamideoke/resumerag/internal/ingest"
	"github.com/olamideoke/resumerag/internal/jobs"
	"github.com/olamideoke/resumerag/internal/llm"
	"github.com/olamideoke/resumerag/internal/rag"
	"github.com/olamideoke/resumerag/internal/vectorstore"
)

func main() {
	_ = godotenv.Load()
	dbUrl := os.Getenv("DB_URL")
	if dbUrl == "" {
		log.Fatal("empty DB_URL in environment")
	}

	rabbitmqUrl := os.Getenv("RABBITMQ_URL")
	if rabbitmqUrl == "" {
		log.Fatal("empty RABBITMQ_URL in env")
	}

	db, err := sql.Open("postgres", dbUrl)
	if err != nil {
		log.Fatal("error opening db. err: ", err)
	}

	dbqueries := database.New(db)

	r2AccountId := os.Getenv("R2_ACCOUNT_ID")
	if r2AccountId == "" {
		log.Fatal("empty R2_ACCOUNT_ID in environment")
	}
	r2Bucket := os.Getenv("R2_BUCKET")
	if r2Bucket == "" {
		log.Fatal("empty R2_BUCKET in environment")
	}
	r2SecretKey := os.Getenv("R2_SECRET_KEY")
	if r2SecretKey == "" {
		log.Fatal("empty R2_SECRET_KEY in environment")
	}
	r2AccessKey := os.Getenv("R2_ACCESS_KEY")
	if r2AccessKey == "" {
		log.Fatal("empty R2_ACCESS_KEY in environment")
	}
	r2Config := R2Config{
		AccountID: r2AccountId,
		AccessKey: r2AccessKey,
		SecretKey: r2SecretKey,
		Bucket:    r2Bucket,
	}
	awsConfig, err := config.LoadDefaultConfig(context.TODO(),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(r2Config.AccessKey, r2Config.SecretKey, "")),
		config.WithRegion("auto"),
	)
	if err != nil {
		log.Fatal("error creating aws config", err)
	}

	googleApiKey := os.Getenv("GOOGLE_API_KEY")
	if googleApiKey == "" {
		log.Fatal("empty GOOGLE_API_KEY in env")
	}
	genaiClient, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  googleApiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		log.Fatalf("failed to create genai client: %v", err)
	}

	rapidApiKey := os.Getenv("RAPIDAPI_KEY")
	if rapidApiKey == "" {
		log.Println("RAPIDAPI_KEY not set, job search will return no openings")
	}

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	corpusDir := filepath.Join(dataDir, "vectorstore")
	uploadDir := filepath.Join(dataDir, "uploads")

	// Assemble the pipeline: extractor -> chunker -> embedder -> store,
	// guarded by the corpus manager, with the RAG service reading from it.
	adapter := vectorstore.NewAdapter(embedding.NewGeminiEmbedder(genaiClient))
	pipeline := ingest.NewPipeline(extract.Pages, chunker.New(), adapter, corpusDir)
	corpusManager := corpus.NewManager(corpusDir, pipeline, adapter)

	model := llm.NewGeminiClient(genaiClient)
	ragService := rag.NewService(corpusManager, model)
	jobsClient := jobs.NewClient(rapidApiKey, model)

	conn, err := amqp.Dial(rabbitmqUrl)
	if err != nil {
		log.Fatalf("error connecting to RabbitMQ. err:  %v", err)
	}

	workerConfig := WorkerConfig{
		DB:          dbqueries,
		R2:          &r2Config,
		AwsConfig:   &awsConfig,
		RabbitConn:  conn,
		RabbitMQUrl: rabbitmqUrl,
		Corpus:      corpusManager,
		RAG:         ragService,
		Jobs:        jobsClient,
		Latest:      analysis.NewLatest(),
		UploadDir:   uploadDir,
	}

	// One consumer: ingestion is single-writer per corpus.
	go workerConfig.StartConsumerWorkerPool(1)

	fmt.Println("Resume analyzer API listening on :" + port)
	log.Fatal(http.ListenAndServe(":"+port, workerConfig.routes()))
}
