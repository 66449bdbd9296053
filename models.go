package main

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/google/uuid"
	"github.com/streadway/amqp"

	"github.com/olamideoke/resumerag/internal/analysis"
	"github.com/olamideoke/resumerag/internal/corpus"
	"github.com/olamideoke/resumerag/internal/database"
	"github.com/olamideoke/resumerag/internal/jobs"
	"github.com/olamideoke/resumerag/internal/rag"
)

type R2Config struct {
	AccountID string
	Bucket    string
	AccessKey string
	SecretKey string
}

type WorkerConfig struct {
	DB          *database.Queries
	R2          *R2Config
	AwsConfig   *aws.Config
	RabbitConn  *amqp.Connection
	RabbitMQUrl string
	Corpus      *corpus.Manager
	RAG         *rag.Service
	Jobs        *jobs.Client
	Latest      *analysis.Latest
	UploadDir   string
}

// IngestTask is the queue message published on upload and consumed by the
// ingestion worker.
type IngestTask struct {
	SessionID uuid.UUID `json:"session_id"`
	ObjectKey string    `json:"object_key"`
	Filename  string    `json:"filename"`
}

// Session status values, in lifecycle order.
const (
	statusUploaded   = "uploaded"
	statusProcessing = "processing"
	statusCompleted  = "completed"
	statusFailed     = "failed"
)
