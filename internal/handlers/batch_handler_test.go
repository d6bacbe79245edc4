package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nagmanijha/ResumeRev.ai/internal/models"
)

type fakeBatchRepo struct {
	batches       map[uuid.UUID]*models.Batch
	statusUpdates map[uuid.UUID]models.CandidateStatus
	itemStatusErr error
	createErr     error
}

type fakeBatchStorage struct {
	saved   []string
	deleted []string
}

func (f *fakeBatchStorage) SaveFile(file *multipart.FileHeader) (string, string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".pdf" && ext != ".docx" {
		return "", "", fmt.Errorf("unsupported file extension: %s", ext)
	}
	path := filepath.Join("uploads", "resume_"+uuid.NewString()+ext)
	f.saved = append(f.saved, path)
	return file.Filename, path, nil
}

func (f *fakeBatchStorage) ReadFile(path string) ([]byte, error) { return nil, nil }

func (f *fakeBatchStorage) DeleteFile(path string) error {
	f.deleted = append(f.deleted, path)
	return nil
}

func (f *fakeBatchStorage) EnsureUploadDir() error { return nil }

type fakeWorker struct {
	enqueued []uuid.UUID
}

func (f *fakeWorker) Start(ctx context.Context)      {}
func (f *fakeWorker) Stop()                          {}
func (f *fakeWorker) EnqueueBatch(batchID uuid.UUID) { f.enqueued = append(f.enqueued, batchID) }

func newFakeBatchRepo() *fakeBatchRepo {
	return &fakeBatchRepo{
		batches:       make(map[uuid.UUID]*models.Batch),
		statusUpdates: make(map[uuid.UUID]models.CandidateStatus),
	}
}

func (f *fakeBatchRepo) Create(batch *models.Batch) error {
	if f.createErr != nil {
		return f.createErr
	}
	batch.ID = uuid.New()
	for i := range batch.Items {
		batch.Items[i].ID = uuid.New()
	}
	f.batches[batch.ID] = batch
	return nil
}

func (f *fakeBatchRepo) FindByID(id uuid.UUID) (*models.Batch, error) {
	if b, ok := f.batches[id]; ok {
		return b, nil
	}
	return nil, fmt.Errorf("batch not found")
}

func (f *fakeBatchRepo) UpdateStatus(id uuid.UUID, status models.BatchStatus) error { return nil }
func (f *fakeBatchRepo) UpdateError(id uuid.UUID, errorMsg string) error            { return nil }
func (f *fakeBatchRepo) UpdateItem(item *models.BatchItem) error                    { return nil }

func (f *fakeBatchRepo) UpdateItemStatus(batchID, itemID uuid.UUID, status models.CandidateStatus) error {
	if f.itemStatusErr != nil {
		return f.itemStatusErr
	}
	f.statusUpdates[itemID] = status
	return nil
}

func (f *fakeBatchRepo) FindPendingBatches(limit int) ([]models.Batch, error) { return nil, nil }

func newBatchTestApp(repo *fakeBatchRepo) (*fiber.App, *BatchHandler) {
	h := &BatchHandler{
		batchRepo: repo,
		maxFiles:  20,
	}

	app := fiber.New()
	app.Get("/api/v1/batch/:id", h.HandleGetBatch)
	app.Patch("/api/v1/batch/:id/candidates/:itemID", h.HandleUpdateCandidateStatus)
	return app, h
}

func patchStatus(t *testing.T, app *fiber.App, batchID, itemID, status string) *http.Response {
	t.Helper()

	body, err := json.Marshal(map[string]string{"status": status})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPatch,
		"/api/v1/batch/"+batchID+"/candidates/"+itemID,
		bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestHandleGetBatchNotFound(t *testing.T) {
	app, _ := newBatchTestApp(newFakeBatchRepo())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/batch/"+uuid.NewString(), nil)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHandleGetBatchInvalidID(t *testing.T) {
	app, _ := newBatchTestApp(newFakeBatchRepo())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/batch/not-a-uuid", nil)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandleGetBatchCompleted(t *testing.T) {
	repo := newFakeBatchRepo()
	missing, _ := json.Marshal([]string{"Kubernetes"})
	batch := &models.Batch{
		JobDescription: "backend role",
		Status:         models.BatchCompleted,
		Items: []models.BatchItem{
			{Filename: "a.pdf", Rank: 1, TotalScore: 88, SkillScore: 90, ExpScore: 70, MissingSkills: missing, Status: models.CandidateNeutral},
			{Filename: "b.pdf", Rank: 2, TotalScore: 61, Status: models.CandidateNeutral},
		},
	}
	require.NoError(t, repo.Create(batch))

	app, _ := newBatchTestApp(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/batch/"+batch.ID.String(), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got models.BatchResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))

	assert.Equal(t, "completed", got.Status)
	assert.Equal(t, 2, got.ProcessedCount)
	require.Len(t, got.Results, 2)
	assert.Equal(t, "a.pdf", got.Results[0].Filename)
	assert.Equal(t, []string{"Kubernetes"}, got.Results[0].MissingSkills)
}

func TestHandleGetBatchQueuedHasNoResults(t *testing.T) {
	repo := newFakeBatchRepo()
	batch := &models.Batch{Status: models.BatchQueued}
	require.NoError(t, repo.Create(batch))

	app, _ := newBatchTestApp(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/batch/"+batch.ID.String(), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	var got models.BatchResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))

	assert.Equal(t, "queued", got.Status)
	assert.Empty(t, got.Results)
}

func TestHandleUpdateCandidateStatus(t *testing.T) {
	repo := newFakeBatchRepo()
	app, _ := newBatchTestApp(repo)

	itemID := uuid.New()
	resp := patchStatus(t, app, uuid.NewString(), itemID.String(), "approved")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, models.CandidateApproved, repo.statusUpdates[itemID])
}

func TestHandleUpdateCandidateStatusInvalid(t *testing.T) {
	app, _ := newBatchTestApp(newFakeBatchRepo())

	resp := patchStatus(t, app, uuid.NewString(), uuid.NewString(), "maybe")

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandleUpdateCandidateStatusBadIDs(t *testing.T) {
	app, _ := newBatchTestApp(newFakeBatchRepo())

	resp := patchStatus(t, app, "nope", uuid.NewString(), "approved")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = patchStatus(t, app, uuid.NewString(), "nope", "approved")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func multipartBody(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestHandleCreateBatchMissingJobDescription(t *testing.T) {
	h := &BatchHandler{batchRepo: newFakeBatchRepo(), maxFiles: 20}
	app := fiber.New()
	app.Post("/api/v1/batch", h.HandleCreateBatch)

	body, contentType := multipartBody(t, map[string]string{"other": "field"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/batch", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandleCreateBatchNoFiles(t *testing.T) {
	h := &BatchHandler{batchRepo: newFakeBatchRepo(), maxFiles: 20}
	app := fiber.New()
	app.Post("/api/v1/batch", h.HandleCreateBatch)

	body, contentType := multipartBody(t, map[string]string{"job_description": testJobDescription})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/batch", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var payload map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.True(t, strings.Contains(payload["error"], "resume"))
}

func newCreateBatchApp(repo *fakeBatchRepo, storage *fakeBatchStorage, worker *fakeWorker) *fiber.App {
	h := &BatchHandler{
		batchRepo: repo,
		storage:   storage,
		worker:    worker,
		maxFiles:  20,
	}
	app := fiber.New()
	app.Post("/api/v1/batch", h.HandleCreateBatch)
	return app
}

func multipartBatchBody(t *testing.T, jobDescription string, filenames ...string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("job_description", jobDescription))
	for _, name := range filenames {
		fw, err := w.CreateFormFile("resumes", name)
		require.NoError(t, err)
		_, err = fw.Write([]byte("dummy resume content"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestHandleCreateBatchSkipsRejectedFiles(t *testing.T) {
	repo := newFakeBatchRepo()
	storage := &fakeBatchStorage{}
	worker := &fakeWorker{}
	app := newCreateBatchApp(repo, storage, worker)

	body, contentType := multipartBatchBody(t, testJobDescription, "good.pdf", "bad.exe", "also_good.docx")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/batch", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	var got models.BatchAcceptedResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))

	assert.Equal(t, 2, got.FileCount)
	assert.Equal(t, 1, got.SkippedCount)
	assert.Len(t, storage.saved, 2)
	assert.Empty(t, storage.deleted)
	require.Len(t, worker.enqueued, 1)

	batch, err := repo.FindByID(worker.enqueued[0])
	require.NoError(t, err)
	assert.Len(t, batch.Items, 2)
}

func TestHandleCreateBatchAllFilesRejected(t *testing.T) {
	repo := newFakeBatchRepo()
	storage := &fakeBatchStorage{}
	worker := &fakeWorker{}
	app := newCreateBatchApp(repo, storage, worker)

	body, contentType := multipartBatchBody(t, testJobDescription, "bad.exe", "worse.txt")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/batch", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, storage.saved)
	assert.Empty(t, worker.enqueued)
}

func TestHandleCreateBatchRemovesFilesWhenCreateFails(t *testing.T) {
	repo := newFakeBatchRepo()
	repo.createErr = fmt.Errorf("database unavailable")
	storage := &fakeBatchStorage{}
	worker := &fakeWorker{}
	app := newCreateBatchApp(repo, storage, worker)

	body, contentType := multipartBatchBody(t, testJobDescription, "good.pdf", "other.docx")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/batch", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.ElementsMatch(t, storage.saved, storage.deleted)
	assert.Empty(t, worker.enqueued)
}
