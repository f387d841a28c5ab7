package task

import (
	"net/http"
	"villa/infras/otel"
	"villa/internal/domains/task/model"
	"villa/internal/domains/task/model/dto"
	"villa/internal/domains/task/service"
	"villa/shared/constant"
	gDto "villa/shared/dto"
	"villa/shared/validator"
	"villa/transport/http/middleware"
	"villa/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service    service.Task
	middleware middleware.AuthRole
	otel       otel.Otel
}

func New(service service.Task, middleware middleware.AuthRole, otel otel.Otel) Handler {
	return Handler{
		service:    service,
		middleware: middleware,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/tasks", func(routerGroup chi.Router) {
		routerGroup.Use(handler.middleware.APIKey, handler.middleware.Auth, handler.middleware.RBAC)

		routerGroup.Post("/", handler.CreateTask)
		routerGroup.Get("/", handler.GetTasks)
		routerGroup.Get("/my", handler.GetMyTasks)
		routerGroup.Get("/{id}", handler.GetTaskByID)
		routerGroup.Post("/{id}/complete", handler.CompleteTask)
		routerGroup.Delete("/{id}", handler.DeleteTask)
	})
}

// CreateTask handles the creation of a new housekeeping task.
// @Summary Create a new task
// @Description Create a housekeeping task. When no staff is given the least loaded staff member is assigned.
// @Tags Task
// @Accept json
// @Produce json
// @Param request body dto.CreateTaskRequest true "Create Task Request"
// @Success 201 {object} dto.TaskResponse "Task created successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tasks [post]
// @Security BearerAuth
func (handler *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateTask")
	defer scope.End()

	req := dto.CreateTaskRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create task")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Task created successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, res)
}

// GetTasks retrieves all tasks based on query parameters.
// @Summary Get all tasks
// @Description Retrieve all tasks with optional filtering and pagination.
// @Tags Task
// @Accept json
// @Produce json
// @Param status query string false "Filter by status"
// @Param task_type query string false "Filter by task type"
// @Param staff_id query string false "Filter by staff"
// @Param resource_type query string false "Filter by resource type"
// @Success 200 {object} dto.GetTasksResponse "List of tasks"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tasks [get]
// @Security BearerAuth
func (handler *Handler) GetTasks(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTasks")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
	}

	for _, field := range []string{model.FieldStatus, model.FieldTaskType, model.FieldStaffID, model.FieldResourceType} {
		if value := r.URL.Query().Get(field); value != constant.Empty {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				Field:    field,
				Operator: gDto.FilterOperatorEq,
				Value:    value,
				Table:    model.TableName,
			})
		}
	}

	tasks, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get tasks")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Tasks retrieved successfully")

	response.WithJSON(w, http.StatusOK, tasks)
}

// GetMyTasks retrieves the tasks assigned to the authenticated staff member.
// @Summary Get my tasks
// @Description Retrieve the tasks assigned to the authenticated staff member.
// @Tags Task
// @Accept json
// @Produce json
// @Success 200 {object} dto.GetTasksResponse "List of tasks"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tasks/my [get]
// @Security BearerAuth
func (handler *Handler) GetMyTasks(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyTasks")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	staffID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	tasks, err := handler.service.MyTasks(ctx, queryParams, staffID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get my tasks")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Tasks retrieved successfully")

	response.WithJSON(w, http.StatusOK, tasks)
}

// GetTaskByID retrieves a task by its ID.
// @Summary Get a task by ID
// @Description Retrieve a task by its unique identifier.
// @Tags Task
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} dto.TaskResponse "Task details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tasks/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetTaskByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTaskByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	task, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get task by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Task retrieved successfully")

	response.WithJSON(w, http.StatusOK, task)
}

// CompleteTask marks a task as completed.
// @Summary Complete a task
// @Description Mark a task as completed. Cleaning tasks stamp the room's last cleaned time.
// @Tags Task
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} response.Message "Task completed successfully"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tasks/{id}/complete [post]
// @Security BearerAuth
func (handler *Handler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CompleteTask")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Complete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to complete task")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Task completed successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Task completed successfully")
}

// DeleteTask deletes a task by its ID.
// @Summary Delete a task by ID
// @Description Delete a task using its unique identifier.
// @Tags Task
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} response.Message "Task deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tasks/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteTask")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete task")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Task deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Task deleted successfully")
}
