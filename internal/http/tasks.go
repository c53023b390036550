package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"
)

const taskStatusTimeout = 5 * time.Second

// TaskStatuser looks up queued export tasks.
type TaskStatuser interface {
	Status(ctx context.Context, taskID string) (backlite.TaskStatus, error)
}

// TaskStatusResponse describes a queued export. Done is set once the task
// has either succeeded or exhausted its attempts.
type TaskStatusResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Done   bool   `json:"done"`
}

// TasksController reports the status of queued exports.
type TasksController struct {
	queue TaskStatuser
	log   *slog.Logger
}

func NewTasksController(queue TaskStatuser, log *slog.Logger) *TasksController {
	if log == nil {
		log = slog.Default()
	}
	return &TasksController{queue: queue, log: log}
}

// GetTaskStatus reports one export task. Unknown IDs are 404.
// GET /api/tasks/:id
func (tc *TasksController) GetTaskStatus(c *gin.Context) {
	taskID := c.Param("id")
	if taskID == "" {
		respondBadRequest(c, "task ID is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), taskStatusTimeout)
	defer cancel()

	status, err := tc.queue.Status(ctx, taskID)
	if err != nil {
		respondInternalError(c, tc.log, err, "task status")
		return
	}
	if status == backlite.TaskStatusNotFound {
		respondNotFound(c, "task")
		return
	}

	c.IndentedJSON(http.StatusOK, TaskStatusResponse{
		ID:     taskID,
		Status: taskStatusToString(status),
		Done:   status == backlite.TaskStatusSuccess || status == backlite.TaskStatusFailure,
	})
}

func taskStatusToString(status backlite.TaskStatus) string {
	switch status {
	case backlite.TaskStatusPending:
		return "pending"
	case backlite.TaskStatusRunning:
		return "running"
	case backlite.TaskStatusSuccess:
		return "success"
	case backlite.TaskStatusFailure:
		return "failure"
	case backlite.TaskStatusNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}
