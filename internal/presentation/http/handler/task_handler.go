package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/bizhub-api/internal/application/service"
	"github.com/sangkips/bizhub-api/internal/domain/repository"
	"github.com/sangkips/bizhub-api/internal/presentation/http/dto/request"
	"github.com/sangkips/bizhub-api/internal/presentation/http/dto/response"
)

// TaskHandler handles task-related HTTP requests
type TaskHandler struct {
	taskService *service.TaskService
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService *service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// List handles listing tasks, optionally by state (open, done, overdue)
func (h *TaskHandler) List(c *gin.Context) {
	leadID, ok := queryID(c, "lead_id")
	if !ok {
		return
	}
	customerID, ok := queryID(c, "customer_id")
	if !ok {
		return
	}

	result, err := h.taskService.ListTasks(c.Request.Context(), &repository.TaskFilterParams{
		Pagination: pageParams(c),
		Search:     c.Query("search"),
		State:      strings.ToLower(c.Query("status")),
		LeadID:     leadID,
		CustomerID: customerID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Tasks retrieved successfully", result)
}

// Create handles creating a task
func (h *TaskHandler) Create(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req request.TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	dueDate, ok := bindDate(c, "due_date", req.DueDate)
	if !ok {
		return
	}

	input := &service.TaskInput{
		UserID:      userID,
		Description: req.Description,
		Priority:    req.Priority,
		DueDate:     dueDate,
		AssigneeID:  req.AssigneeID,
		LeadID:      req.LeadID,
		CustomerID:  req.CustomerID,
	}
	if req.Title != nil {
		input.Title = *req.Title
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Task created successfully", task)
}

// Get handles getting a single task
func (h *TaskHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id", "task")
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Task retrieved successfully", task)
}

// Update handles editing a task. An empty due_date clears it.
func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id", "task")
	if !ok {
		return
	}

	var req request.TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	dueDate, ok := bindDate(c, "due_date", req.DueDate)
	if !ok {
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), &service.UpdateTaskInput{
		ID:           id,
		Title:        req.Title,
		Description:  req.Description,
		Priority:     req.Priority,
		DueDate:      dueDate,
		ClearDueDate: req.DueDate != nil && dueDate == nil,
		AssigneeID:   req.AssigneeID,
		LeadID:       req.LeadID,
		CustomerID:   req.CustomerID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Task updated successfully", task)
}

// Complete marks a task done, or reopens it with {"completed": false}
func (h *TaskHandler) Complete(c *gin.Context) {
	id, ok := paramID(c, "id", "task")
	if !ok {
		return
	}

	completed := true
	var req request.CompleteTaskRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "Invalid request body")
			return
		}
		if req.Completed != nil {
			completed = *req.Completed
		}
	}

	task, err := h.taskService.SetCompleted(c.Request.Context(), id, completed)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Task updated successfully", task)
}

// Delete handles deleting a task
func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id", "task")
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
