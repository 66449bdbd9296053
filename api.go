package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/streadway/amqp"

	"github.com/olamideoke/resumerag/internal/database"
)

const uploadPrefix = "uploads/"

// jobQueryKeywords route /ask questions to the job search flow instead of
// resume QA.
var jobQueryKeywords = []string{
	"find job",
	"find jobs",
	"job opening",
	"job openings",
	"job opportunities",
	"search jobs",
	"available jobs",
	"recommend jobs",
	"job listings",
}

func (workerConfig *WorkerConfig) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /upload", workerConfig.handleUpload)
	mux.HandleFunc("GET /analysis", workerConfig.handleAnalysis)
	mux.HandleFunc("POST /ask", workerConfig.handleAsk)
	mux.HandleFunc("GET /status", workerConfig.handleStatus)
	mux.HandleFunc("DELETE /clear", workerConfig.handleClear)
	return mux
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("error writing response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, detail string) {
	respondJSON(w, status, map[string]string{"detail": detail})
}

// handleUpload accepts a PDF, wipes every trace of the prior resume (corpus,
// object storage, latest analysis), stores the new file, and queues the
// ingest task for the worker.
func (workerConfig *WorkerConfig) handleUpload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	filename := filepath.Base(header.Filename)
	if !strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		respondError(w, http.StatusBadRequest, "Only PDF files allowed")
		return
	}

	content, err := io.ReadAll(file)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to read upload")
		return
	}

	ctx := r.Context()
	awsClient := workerConfig.r2Client()

	if err := workerConfig.Corpus.Clear(); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to clear previous corpus")
		return
	}
	if err := WipeR2Prefix(ctx, awsClient, workerConfig.R2.Bucket, uploadPrefix); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to clear previous upload")
		return
	}
	workerConfig.Latest.Invalidate()

	objectKey := uploadPrefix + filename
	if err := UploadToR2(ctx, awsClient, workerConfig.R2.Bucket, objectKey, content, "application/pdf"); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to store upload")
		return
	}

	session, err := workerConfig.DB.CreateSession(ctx, database.CreateSessionParams{
		ID:               uuid.New(),
		OriginalFilename: filename,
		ObjectKey:        objectKey,
		Status:           statusUploaded,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	task := IngestTask{SessionID: session.ID, ObjectKey: objectKey, Filename: filename}
	if err := workerConfig.publishIngestTask(task); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to queue ingestion")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"status":   "uploaded",
		"filename": filename,
		"message":  "Previous resume cleared. New resume is being analyzed.",
	})
}

func (workerConfig *WorkerConfig) publishIngestTask(task IngestTask) error {
	ch, err := workerConfig.RabbitConn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	if _, err := ch.QueueDeclare(ingestQueue, true, false, false, false, nil); err != nil {
		return err
	}

	body, err := json.Marshal(task)
	if err != nil {
		return err
	}
	return ch.Publish("", ingestQueue, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
}

func (workerConfig *WorkerConfig) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	record := workerConfig.Latest.Get()
	if record == nil {
		respondJSON(w, http.StatusOK, map[string]string{
			"status":  "processing",
			"message": "Analysis in progress...",
		})
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"status":   "complete",
		"analysis": record,
	})
}

func (workerConfig *WorkerConfig) handleAsk(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Question string `json:"question"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	question := strings.TrimSpace(payload.Question)
	if question == "" {
		respondError(w, http.StatusBadRequest, "Question cannot be empty")
		return
	}

	var answer string
	if isJobQuery(question) {
		record := workerConfig.Latest.Get()
		if record == nil {
			answer = "Please upload a resume first so I can find relevant jobs for you."
		} else {
			answer = workerConfig.Jobs.FormatJobs(r.Context(), record.PrimaryRole)
		}
	} else {
		answer = workerConfig.RAG.Answer(r.Context(), question)
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"question": payload.Question,
		"answer":   answer,
	})
}

func isJobQuery(question string) bool {
	lower := strings.ToLower(question)
	for _, keyword := range jobQueryKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

func (workerConfig *WorkerConfig) handleStatus(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"vectorstore_exists": workerConfig.Corpus.Exists(),
		"analysis_ready":     workerConfig.Latest.Get() != nil,
	}
	session, err := workerConfig.DB.GetLatestSession(r.Context())
	switch {
	case errors.Is(err, sql.ErrNoRows):
		// no upload yet
	case err != nil:
		log.Printf("failed to read latest session: %v", err)
	default:
		status["session_status"] = session.Status
		status["uploaded_file"] = session.OriginalFilename
	}
	respondJSON(w, http.StatusOK, status)
}

func (workerConfig *WorkerConfig) handleClear(w http.ResponseWriter, r *http.Request) {
	if err := workerConfig.Corpus.Clear(); err != nil {
		respondError(w, http.StatusInternalServerError, "Clear failed: "+err.Error())
		return
	}
	if err := WipeR2Prefix(context.Background(), workerConfig.r2Client(), workerConfig.R2.Bucket, uploadPrefix); err != nil {
		respondError(w, http.StatusInternalServerError, "Clear failed: "+err.Error())
		return
	}
	workerConfig.Latest.Invalidate()

	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": "All data cleared",
	})
}
