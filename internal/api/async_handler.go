package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync"

	"backoffice-service/internal/apperr"
	"backoffice-service/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Task lifecycle states reported by the status endpoint. Tasks are not
// persisted: a restart forgets them.
const (
	TaskStatusProcessing = "processing"
	TaskStatusCompleted  = "completed"
)

// maxTrackedTasks caps the tracker; once reached, finished entries are
// evicted to make room for new submissions.
const maxTrackedTasks = 1024

// taskTracker remembers the state of accepted tasks in memory.
type taskTracker struct {
	mu    sync.Mutex
	tasks map[string]string
}

func newTaskTracker() *taskTracker {
	return &taskTracker{tasks: map[string]string{}}
}

func (t *taskTracker) set(id, status string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, known := t.tasks[id]; !known && len(t.tasks) >= maxTrackedTasks {
		for staleID, staleStatus := range t.tasks {
			if staleStatus == TaskStatusCompleted {
				delete(t.tasks, staleID)
			}
		}
	}
	t.tasks[id] = status
}

func (t *taskTracker) remove(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.tasks, id)
}

func (t *taskTracker) len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.tasks)
}

func (t *taskTracker) get(id string) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	status, ok := t.tasks[id]
	return status, ok
}

// AsyncHandler exposes the fire-and-forget background job endpoints.
type AsyncHandler struct {
	pool    *worker.Pool
	tracker *taskTracker
}

func NewAsyncHandler(pool *worker.Pool) *AsyncHandler {
	return &AsyncHandler{pool: pool, tracker: newTaskTracker()}
}

func (h *AsyncHandler) Mount(group *gin.RouterGroup) {
	group.POST("/send-email", h.sendEmail)
	group.POST("/process-order/:orderId", h.processOrder)
	group.GET("/generate-report", h.generateReport)
	group.GET("/status/:taskId", h.status)
}

// submit queues the task and answers 202, or 503 when the pool is
// saturated.
func (h *AsyncHandler) submit(c *gin.Context, task worker.Task, message string) {
	taskID := uuid.New().String()
	h.tracker.set(taskID, TaskStatusProcessing)

	run := task.Run
	task.Run = func(ctx context.Context) {
		run(ctx)
		h.tracker.set(taskID, TaskStatusCompleted)
	}

	if err := h.pool.Submit(task); err != nil {
		// a rejected task never ran, so it must not linger as a
		// phantom "processing" entry
		h.tracker.remove(taskID)
		if errors.Is(err, worker.ErrQueueFull) {
			c.JSON(http.StatusServiceUnavailable, FailureResponse{
				Success: false,
				Message: "task queue is full, try again later",
				Path:    c.Request.URL.Path,
			})
			return
		}
		handleError(c, apperr.Internal(err))
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"success": true,
		"message": message,
		"taskId":  taskID,
		"status":  TaskStatusProcessing,
	})
}

type sendEmailRequest struct {
	To      string `json:"to" binding:"required"`
	Subject string `json:"subject" binding:"required"`
	Body    string `json:"body"`
}

func (h *AsyncHandler) sendEmail(c *gin.Context) {
	var req sendEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, apperr.Validation("validation failed",
			apperr.FieldError{Field: "body", Message: "to and subject are required"}))
		return
	}
	h.submit(c, worker.SendEmailTask(req.To, req.Subject, req.Body), "email dispatch accepted")
}

func (h *AsyncHandler) processOrder(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("orderId"), 10, 64)
	if err != nil {
		handleError(c, apperr.InvalidArgument("invalid order id: %s", c.Param("orderId")))
		return
	}
	h.submit(c, worker.ProcessOrderTask(orderID), "order processing accepted")
}

func (h *AsyncHandler) generateReport(c *gin.Context) {
	reportType := c.DefaultQuery("reportType", "summary")
	h.submit(c, worker.GenerateReportTask(reportType), "report generation accepted")
}

func (h *AsyncHandler) status(c *gin.Context) {
	taskID := c.Param("taskId")
	status, ok := h.tracker.get(taskID)
	if !ok {
		respondNotFound(c, "unknown task: "+taskID)
		return
	}
	respondOK(c, gin.H{"taskId": taskID, "status": status})
}
