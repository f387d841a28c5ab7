package service

import (
	"context"
	"fmt"
	"villa/config"
	"villa/infras/kafka"
	"villa/infras/mailer"
	"villa/infras/otel"
	hallModel "villa/internal/domains/hall/model"
	hallRepo "villa/internal/domains/hall/repository"
	roomModel "villa/internal/domains/room/model"
	roomRepo "villa/internal/domains/room/repository"
	"villa/internal/domains/task/model"
	"villa/internal/domains/task/model/dto"
	"villa/internal/domains/task/repository"
	userModel "villa/internal/domains/user/model"
	userRepo "villa/internal/domains/user/repository"
	"villa/shared"
	"villa/shared/cache"
	"villa/shared/constant"
	gDto "villa/shared/dto"
	"villa/shared/failure"
	"villa/shared/timezone"

	"github.com/rs/zerolog/log"
)

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

const (
	cacheGetTask    = "task:get"
	cacheGetAllTask = "task:gets"
	cacheCountTask  = "task:count"

	warningNotifyFailed = "task created but staff notification could not be sent"
)

type Task interface {
	Create(ctx context.Context, req dto.CreateTaskRequest) (dto.TaskResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetTasksResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.TaskResponse, error)
	MyTasks(ctx context.Context, req gDto.QueryParams, staffID string) (dto.GetTasksResponse, error)
	Complete(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	AssignLeastLoadedStaff(ctx context.Context, staff []userModel.User) (*string, error)
	RunPeriodicCleaningPass(ctx context.Context) (dto.PeriodicPassResponse, error)
}

type serviceImpl struct {
	repo     repository.Task
	userRepo userRepo.User
	roomRepo roomRepo.Room
	hallRepo hallRepo.Hall
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
	mailer   mailer.Mailer
	emitter  kafka.Emitter
}

func New(
	repo repository.Task,
	userRepo userRepo.User,
	roomRepo roomRepo.Room,
	hallRepo hallRepo.Hall,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	mailer mailer.Mailer,
	emitter kafka.Emitter,
) Task {
	return &serviceImpl{
		repo:     repo,
		userRepo: userRepo,
		roomRepo: roomRepo,
		hallRepo: hallRepo,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
		mailer:   mailer,
		emitter:  emitter,
	}
}

func pendingTasksByStaff(staffID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldStaffID,
				Operator: gDto.FilterOperatorEq,
				Value:    staffID,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "task_status",
				Field:    model.FieldStatus,
				Operator: gDto.FilterOperatorEq,
				Value:    constant.TaskStatusPending,
				Table:    model.TableName,
			},
		},
	}
}

func activeStaffFilter() gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    userModel.FieldRole,
				Operator: gDto.FilterOperatorEq,
				Value:    constant.RoleStaff,
				Table:    userModel.TableName,
			},
			gDto.Filter{
				Field:    userModel.FieldActive,
				Operator: gDto.FilterOperatorEq,
				Value:    true,
				Table:    userModel.TableName,
			},
		},
	}
}

// AssignLeastLoadedStaff picks the staff member with the fewest pending tasks.
// Ties go to the earliest entry in the given list, so the caller's ordering is
// the tie-break. An empty list yields nil: the task stays unassigned.
func (s *serviceImpl) AssignLeastLoadedStaff(ctx context.Context, staff []userModel.User) (res *string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AssignLeastLoadedStaff")
	defer scope.End()
	defer scope.TraceIfError(err)

	bestCount := -1

	for _, member := range staff {
		count, err := s.repo.Count(ctx, pendingTasksByStaff(member.ID))
		if err != nil {
			log.Error().Err(err).Str("staff_id", member.ID).Msg("failed to count pending tasks")

			return nil, fmt.Errorf("failed to count pending tasks: %w", err)
		}

		if bestCount == -1 || count < bestCount {
			id := member.ID
			res = &id
			bestCount = count
		}
	}

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateTaskRequest) (res dto.TaskResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err = s.checkResource(ctx, req.ResourceType, req.ResourceID); err != nil {
		return res, err
	}

	staffID := req.StaffID
	if staffID == nil {
		staff, err := s.activeStaff(ctx)
		if err != nil {
			return res, err
		}

		staffID, err = s.AssignLeastLoadedStaff(ctx, staff)
		if err != nil {
			return res, err
		}
	}

	task, err := req.ToModel(user, staffID)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse task request")

		return res, failure.BadRequestFromString(fmt.Sprintf("invalid scheduled date: %v", err))
	}

	if err = s.repo.Insert(ctx, task); err != nil {
		log.Error().Err(err).Msg("failed to create task")

		return res, fmt.Errorf("failed to create task: %w", err)
	}

	res.FromModel(task)

	if warn := s.notifyAssignee(ctx, task); warn != constant.Empty {
		res.Warning = warn
	}

	s.emitter.EmitTaskEvent(ctx, task.ID, res)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllTask)
		shared.InvalidateCaches(c, s.cache, cacheCountTask)
	}()

	return res, nil
}

func (s *serviceImpl) checkResource(ctx context.Context, resourceType, resourceID string) error {
	var (
		exist bool
		err   error
	)

	switch resourceType {
	case constant.ResourceTypeRoom:
		exist, err = s.roomRepo.Exist(ctx, shared.FilterByID(resourceID, roomModel.FieldID, roomModel.TableName))
	case constant.ResourceTypeHall:
		exist, err = s.hallRepo.Exist(ctx, shared.FilterByID(resourceID, hallModel.FieldID, hallModel.TableName))
	default:
		return failure.BadRequestFromString("unknown resource type")
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to check task resource")

		return fmt.Errorf("failed to check task resource: %w", err)
	}

	if !exist {
		return failure.NotFound(resourceType + " not found")
	}

	return nil
}

func (s *serviceImpl) activeStaff(ctx context.Context) ([]userModel.User, error) {
	params := gDto.QueryParams{
		SortBy:  constant.FieldCreatedAt,
		SortDir: gDto.SortDirAsc,
	}

	staff, err := s.userRepo.GetAll(ctx, params, activeStaffFilter())
	if err != nil {
		log.Error().Err(err).Msg("failed to list staff")

		return nil, fmt.Errorf("failed to list staff: %w", err)
	}

	return staff, nil
}

func (s *serviceImpl) notifyAssignee(ctx context.Context, task model.Task) string {
	if task.StaffID == nil {
		return constant.Empty
	}

	staff, err := s.userRepo.Get(ctx, shared.FilterByID(*task.StaffID, userModel.FieldID, userModel.TableName))
	if err != nil || staff.ID == constant.Empty {
		log.Warn().Str("staff_id", *task.StaffID).Msg("assigned staff could not be loaded for notification")

		return warningNotifyFailed
	}

	subject := fmt.Sprintf("New %s task assigned", task.TaskType)
	body := fmt.Sprintf("You have been assigned a %s task for %s %s, scheduled on %s.",
		task.TaskType, task.ResourceType, task.ResourceID, task.ScheduledDate.Format(constant.DayFormat))

	if err := s.mailer.Send(ctx, staff.Email, subject, body); err != nil {
		log.Warn().Err(err).Str("staff_id", staff.ID).Msg("failed to notify assigned staff")

		return warningNotifyFailed
	}

	return constant.Empty
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetTasksResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllTask, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for tasks")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count tasks")

		return res, fmt.Errorf("failed to count tasks: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get tasks")

		return res, fmt.Errorf("failed to get tasks: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save tasks to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountTask, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for task count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count tasks")

		return res, fmt.Errorf("failed to count tasks: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save task count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.TaskResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(nil)

	cacheKey := shared.BuildCacheKey(cacheGetTask, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for task")

		return res, nil
	}

	task, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get task")

		return res, fmt.Errorf("failed to get task: %w", err)
	}

	if task.ID == constant.Empty {
		return res, failure.NotFound("task not found")
	}

	res.FromModel(task)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save task to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) MyTasks(ctx context.Context, req gDto.QueryParams, staffID string) (res dto.GetTasksResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MyTasks")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldStaffID,
				Operator: gDto.FilterOperatorEq,
				Value:    staffID,
				Table:    model.TableName,
			},
		},
	}

	return s.GetAll(ctx, req, filter)
}

func (s *serviceImpl) Complete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Complete")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	task, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get task")

		return fmt.Errorf("failed to get task: %w", err)
	}

	if task.ID == constant.Empty {
		return failure.NotFound("task not found")
	}

	if task.Status == constant.TaskStatusCompleted {
		return failure.Conflict("task already completed")
	}

	if role != constant.RoleAdmin && (task.StaffID == nil || *task.StaffID != user) {
		return failure.ResourceRestrictedError
	}

	updatedFields := map[string]any{
		model.FieldStatus:        constant.TaskStatusCompleted,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to complete task")

		return fmt.Errorf("failed to complete task: %w", err)
	}

	if s.isCleaning(task) {
		s.stampRoomCleaned(ctx, task.ResourceID, user)
	}

	task.Status = constant.TaskStatusCompleted

	var res dto.TaskResponse
	res.FromModel(task)
	s.emitter.EmitTaskEvent(ctx, task.ID, res)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetTask, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete task from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllTask)
		shared.InvalidateCaches(c, s.cache, cacheCountTask)
	}()

	return nil
}

func (s *serviceImpl) isCleaning(task model.Task) bool {
	if task.ResourceType != constant.ResourceTypeRoom {
		return false
	}

	switch task.TaskType {
	case constant.TaskTypeCleaning, constant.TaskTypePeriodic, constant.TaskTypePostCheckOut:
		return true
	default:
		return false
	}
}

func (s *serviceImpl) stampRoomCleaned(ctx context.Context, roomID, user string) {
	updatedFields := map[string]any{
		roomModel.FieldLastCleanedAt: timezone.Now(),
		constant.FieldModifiedAt:     timezone.Now(),
		constant.FieldModifiedBy:     user,
	}

	filter := shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName)

	if err := s.roomRepo.Update(ctx, updatedFields, filter); err != nil {
		log.Warn().Err(err).Str("room_id", roomID).Msg("failed to stamp room last cleaned at")
	}
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(nil)

	exist, err := s.repo.Exist(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if task exists")

		return fmt.Errorf("failed to check if task exists: %w", err)
	}

	if !exist {
		return failure.NotFound("task not found")
	}

	if err := s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete task")

		return fmt.Errorf("failed to delete task: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetTask, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete task from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllTask)
		shared.InvalidateCaches(c, s.cache, cacheCountTask)
	}()

	return nil
}

// RunPeriodicCleaningPass creates a periodic cleaning task for every active
// room whose last cleaning is older than the configured staleness window.
// Assignment re-balances per room, so a pass over many rooms spreads the work
// across the staff.
func (s *serviceImpl) RunPeriodicCleaningPass(ctx context.Context) (res dto.PeriodicPassResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RunPeriodicCleaningPass")
	defer scope.End()
	defer scope.TraceIfError(err)

	cutoff := timezone.Now().AddDate(0, 0, -s.cfg.App.Housekeeping.StalenessDays)

	staleFilter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    roomModel.FieldActive,
				Operator: gDto.FilterOperatorEq,
				Value:    true,
				Table:    roomModel.TableName,
			},
			gDto.FilterGroup{
				Operator: gDto.FilterGroupOperatorOr,
				Filters: []any{
					gDto.Filter{
						Field:    roomModel.FieldLastCleanedAt,
						Operator: gDto.FilterIsNull,
						Table:    roomModel.TableName,
					},
					gDto.Filter{
						Field:    roomModel.FieldLastCleanedAt,
						Operator: gDto.FilterOperatorLessEq,
						Value:    cutoff,
						Table:    roomModel.TableName,
					},
				},
			},
		},
	}

	params := gDto.QueryParams{
		SortBy:  roomModel.FieldNumber,
		SortDir: gDto.SortDirAsc,
	}

	rooms, err := s.roomRepo.GetAll(ctx, params, staleFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to list stale rooms")

		return res, fmt.Errorf("failed to list stale rooms: %w", err)
	}

	res.RoomsChecked = len(rooms)
	if len(rooms) == 0 {
		return res, nil
	}

	staff, err := s.activeStaff(ctx)
	if err != nil {
		return res, err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	today := timezone.Now().Format(constant.DayFormat)

	for _, room := range rooms {
		open, err := s.repo.Exist(ctx, openPeriodicTaskByRoom(room.ID))
		if err != nil {
			log.Error().Err(err).Str("room_id", room.ID).Msg("failed to check open periodic task")

			return res, fmt.Errorf("failed to check open periodic task: %w", err)
		}

		if open {
			continue
		}

		staffID, err := s.AssignLeastLoadedStaff(ctx, staff)
		if err != nil {
			return res, err
		}

		req := dto.CreateTaskRequest{
			ResourceType:  constant.ResourceTypeRoom,
			ResourceID:    room.ID,
			Description:   fmt.Sprintf("Periodic cleaning for room %s", room.Number),
			TaskType:      constant.TaskTypePeriodic,
			ScheduledDate: today,
		}

		task, err := req.ToModel(user, staffID)
		if err != nil {
			return res, fmt.Errorf("failed to build periodic task: %w", err)
		}

		if err = s.repo.Insert(ctx, task); err != nil {
			log.Error().Err(err).Str("room_id", room.ID).Msg("failed to create periodic task")

			return res, fmt.Errorf("failed to create periodic task: %w", err)
		}

		res.TasksCreated++

		var taskRes dto.TaskResponse
		taskRes.FromModel(task)

		if warn := s.notifyAssignee(ctx, task); warn != constant.Empty {
			taskRes.Warning = warn
		}

		s.emitter.EmitTaskEvent(ctx, task.ID, taskRes)
	}

	if res.TasksCreated > 0 {
		go func() {
			c := context.WithoutCancel(ctx)

			shared.InvalidateCaches(c, s.cache, cacheGetAllTask)
			shared.InvalidateCaches(c, s.cache, cacheCountTask)
		}()
	}

	return res, nil
}

func openPeriodicTaskByRoom(roomID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldResourceID,
				Operator: gDto.FilterOperatorEq,
				Value:    roomID,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldTaskType,
				Operator: gDto.FilterOperatorEq,
				Value:    constant.TaskTypePeriodic,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "task_status",
				Field:    model.FieldStatus,
				Operator: gDto.FilterOperatorEq,
				Value:    constant.TaskStatusPending,
				Table:    model.TableName,
			},
		},
	}
}
