package service_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/sangkips/bizhub-api/internal/application/service"
	"github.com/sangkips/bizhub-api/internal/domain/enum"
	"github.com/sangkips/bizhub-api/internal/domain/repository"
	infraRepo "github.com/sangkips/bizhub-api/internal/infrastructure/repository"
	"github.com/sangkips/bizhub-api/internal/testutil"
	"github.com/sangkips/bizhub-api/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTaskService(db *gorm.DB) *service.TaskService {
	return service.NewTaskService(
		infraRepo.NewTaskRepository(db),
		infraRepo.NewLeadRepository(db),
		infraRepo.NewCustomerRepository(db),
	)
}

func TestTaskStates(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newTaskService(db)
	owner := testutil.CreateUser(t, db, "t@example.com", "user")
	_, ctx := testutil.CreateBusiness(t, db, owner, "Acme")

	yesterday := time.Now().AddDate(0, 0, -1)
	tomorrow := time.Now().AddDate(0, 0, 1)
	high := enum.TaskPriorityHigh

	late, err := svc.CreateTask(ctx, &service.TaskInput{UserID: owner.ID, Title: "Call supplier", DueDate: &yesterday})
	require.NoError(t, err)
	assert.Equal(t, enum.TaskPriorityMedium, late.Priority)
	_, err = svc.CreateTask(ctx, &service.TaskInput{UserID: owner.ID, Title: "Send invoice", DueDate: &tomorrow, Priority: &high})
	require.NoError(t, err)
	done, err := svc.CreateTask(ctx, &service.TaskInput{UserID: owner.ID, Title: "File return"})
	require.NoError(t, err)

	done, err = svc.SetCompleted(ctx, done.ID, true)
	require.NoError(t, err)
	assert.NotNil(t, done.CompletedAt)

	titles := func(state string) []string {
		page, err := svc.ListTasks(ctx, &repository.TaskFilterParams{
			Pagination: &pagination.PaginationParams{},
			State:      state,
		})
		require.NoError(t, err)
		var out []string
		for _, task := range page.Items {
			out = append(out, task.Title)
		}
		return out
	}

	assert.ElementsMatch(t, []string{"Call supplier", "Send invoice"}, titles(repository.TaskStateOpen))
	assert.Equal(t, []string{"File return"}, titles(repository.TaskStateDone))
	assert.Equal(t, []string{"Call supplier"}, titles(repository.TaskStateOverdue))
	assert.Len(t, titles(""), 3)

	_, err = svc.ListTasks(ctx, &repository.TaskFilterParams{Pagination: &pagination.PaginationParams{}, State: "someday"})
	assert.Equal(t, http.StatusUnprocessableEntity, appCode(t, err))

	reopened, err := svc.SetCompleted(ctx, done.ID, false)
	require.NoError(t, err)
	assert.Nil(t, reopened.CompletedAt)
}

func TestTaskLinksAndValidation(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newTaskService(db)
	leads := service.NewLeadService(infraRepo.NewLeadRepository(db))
	owner := testutil.CreateUser(t, db, "tl@example.com", "user")
	_, ctx := testutil.CreateBusiness(t, db, owner, "Acme")

	_, err := svc.CreateTask(ctx, &service.TaskInput{UserID: owner.ID, Title: ""})
	assert.Equal(t, http.StatusUnprocessableEntity, appCode(t, err))

	bogus := owner.ID
	_, err = svc.CreateTask(ctx, &service.TaskInput{UserID: owner.ID, Title: "Follow up", LeadID: &bogus})
	assert.Equal(t, http.StatusNotFound, appCode(t, err))

	lead, err := leads.CreateLead(ctx, &service.LeadInput{UserID: owner.ID, Name: "Prospect"})
	require.NoError(t, err)
	task, err := svc.CreateTask(ctx, &service.TaskInput{UserID: owner.ID, Title: "Follow up", LeadID: &lead.ID})
	require.NoError(t, err)

	loaded, err := svc.GetTask(ctx, task.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded.Lead)
	assert.Equal(t, "Prospect", loaded.Lead.Name)

	due := time.Date(2026, 5, 1, 15, 30, 0, 0, time.UTC)
	updated, err := svc.UpdateTask(ctx, &service.UpdateTaskInput{ID: task.ID, DueDate: &due})
	require.NoError(t, err)
	assert.Equal(t, 0, updated.DueDate.Hour())

	updated, err = svc.UpdateTask(ctx, &service.UpdateTaskInput{ID: task.ID, ClearDueDate: true})
	require.NoError(t, err)
	assert.Nil(t, updated.DueDate)

	require.NoError(t, svc.DeleteTask(ctx, task.ID))
	_, err = svc.GetTask(ctx, task.ID)
	assert.Equal(t, http.StatusNotFound, appCode(t, err))
}
