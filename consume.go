package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/lib/pq"
	"github.com/streadway/amqp"

	"github.com/olamideoke/resumerag/internal/database"
)

const ingestQueue = "resumes"

// processResume runs one ingest task end to end: download the uploaded file,
// replace the corpus with it, analyze, and persist the result. The corpus
// manager holds the writer lock across clear+ingest, so the single worker is
// the only writer the on-disk index ever sees.
func processResume(task IngestTask, workerConfig *WorkerConfig) error {
	ctx := context.Background()

	awsClient := workerConfig.r2Client()

	// Download retries: network failures are transient. Nothing past this
	// point retries.
	fileBytes, err := retry(3, func() ([]byte, error) {
		return DownloadFromR2(ctx, awsClient, workerConfig.R2.Bucket, task.ObjectKey)
	})
	if err != nil {
		return fmt.Errorf("file download error: %w", err)
	}

	if err := os.MkdirAll(workerConfig.UploadDir, 0o755); err != nil {
		return fmt.Errorf("create upload dir: %w", err)
	}
	path := filepath.Join(workerConfig.UploadDir, task.Filename)
	if err := os.WriteFile(path, fileBytes, 0o644); err != nil {
		return fmt.Errorf("save upload: %w", err)
	}

	result, err := workerConfig.Corpus.Replace(ctx, path)
	if err != nil {
		return fmt.Errorf("ingestion error: %w", err)
	}
	log.Printf("worker: ingested %s (%d chunks)", result.SourceFile, result.ChunksAdded)

	record, err := workerConfig.RAG.Analyze(ctx)
	if err != nil {
		return fmt.Errorf("analysis error: %w", err)
	}
	if record == nil {
		return fmt.Errorf("analysis ran against an absent corpus")
	}
	workerConfig.Latest.Set(record)
	log.Printf("analysis complete: ATS score = %d/100", record.ATSScore)

	recordJSON, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis record: %w", err)
	}
	_, err = retry(3, func() (any, error) {
		return nil, workerConfig.DB.CreateOrUpdateAnalysisResult(ctx, database.CreateOrUpdateAnalysisResultParams{
			Result:    recordJSON,
			SessionID: task.SessionID,
		})
	})
	if err != nil {
		return fmt.Errorf("failed to save analysis result after retries: %w", err)
	}

	return nil
}

func (workerConfig *WorkerConfig) setSessionStatus(task IngestTask, status, message string) {
	err := workerConfig.DB.UpdateSessionStatus(context.Background(), database.UpdateSessionStatusParams{
		Status: status,
		ID:     task.SessionID,
	})
	if err != nil {
		log.Printf("failed to update session status: %v", err)
	}

	update := map[string]any{
		"session_id": task.SessionID,
		"status":     status,
		"message":    message,
		"timestamp":  time.Now(),
	}
	if err := publishSessionUpdate(workerConfig.RabbitConn, task.SessionID.String(), update); err != nil {
		log.Println("failed to publish update:", err)
	}
}

func worker(id int, workerConfig *WorkerConfig, wg *sync.WaitGroup) {
	defer wg.Done()

	conn, err := amqp.Dial(workerConfig.RabbitMQUrl)
	if err != nil {
		log.Fatal("error dialling rabbitmq: " + err.Error())
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatal("error connecting to rabbitmq channel: " + err.Error())
	}
	defer ch.Close()

	_, err = ch.QueueDeclare(
		ingestQueue, // queue name
		true,        // durable (survives broker restarts)
		false,       // auto-delete when unused
		false,       // exclusive
		false,       // no-wait
		nil,         // arguments
	)
	if err != nil {
		log.Fatalf("Failed to declare queue: %v", err)
	}

	msgs, err := ch.Consume(
		ingestQueue, // queue name
		"",          // consumer tag
		true,        // auto-ack
		false,       // exclusive
		false,       // no-local
		false,       // no-wait
		nil,         // arguments
	)
	if err != nil {
		log.Fatal("error consuming rabbitmq message: " + err.Error())
	}

	for msg := range msgs {
		task := IngestTask{}
		if err := json.Unmarshal(msg.Body, &task); err != nil {
			log.Printf("error unmarshalling task body. err: %v", err)
			continue
		}
		log.Printf("Worker %d processing upload. session_id: %s file: %s", id+1, task.SessionID, task.Filename)

		workerConfig.setSessionStatus(task, statusProcessing, "analysis started")

		if err := processResume(task, workerConfig); err != nil {
			log.Printf("error processing session_id: %v. err: %v", task.SessionID, err)
			workerConfig.setSessionStatus(task, statusFailed, "analysis failed")
			continue
		}

		workerConfig.setSessionStatus(task, statusCompleted, "analysis completed")
	}
}

// StartConsumerWorkerPool starts numWorkers consumers and blocks. Ingestion
// must be serialized per corpus, so callers pass 1: a single consumer is the
// single writer.
func (workerConfig *WorkerConfig) StartConsumerWorkerPool(numWorkers int) {
	var wg sync.WaitGroup
	wg.Add(numWorkers)

	for i := range numWorkers {
		log.Println("worker id ", i+1, "started")
		go worker(i, workerConfig, &wg)
	}
	wg.Wait()
}
