package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seojin-dev/todo-calendar-api/internal/domain"
	"github.com/seojin-dev/todo-calendar-api/internal/repository/postgres"
	"github.com/seojin-dev/todo-calendar-api/internal/service"
	"github.com/seojin-dev/todo-calendar-api/internal/testutil"
)

func TestTodoService_CreateAndGet(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	todos := service.NewTodoService(repos.Todo)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	t.Run("create starts active", func(t *testing.T) {
		description := "2 liters"
		created, err := todos.Create(ctx, user.ID, &domain.Todo{
			Title:       "Buy milk",
			Description: &description,
		})
		require.NoError(t, err)
		assert.False(t, created.IsCompleted)
		assert.False(t, created.IsDeleted)
		assert.Nil(t, created.DeletedAt)
		require.NotNil(t, created.UserID)
		assert.Equal(t, user.ID, *created.UserID)

		got, err := todos.Get(ctx, created.ID, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "Buy milk", got.Title)
	})

	t.Run("empty title rejected", func(t *testing.T) {
		_, err := todos.Create(ctx, user.ID, &domain.Todo{Title: "   "})
		require.Error(t, err)
		assert.True(t, domain.IsKind(err, domain.KindValidation))
	})

	t.Run("missing id reads as not found", func(t *testing.T) {
		_, err := todos.Get(ctx, uuid.New(), user.ID)
		require.Error(t, err)
		assert.True(t, domain.IsKind(err, domain.KindNotFound))
	})
}

func TestTodoService_OwnershipIsolation(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	todos := service.NewTodoService(repos.Todo)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	stranger, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	todo := testutil.NewTodoBuilder().WithOwner(owner).Build(t, testDB.DB)

	// Every cross-user operation reads as not found, never as forbidden
	_, err := todos.Get(ctx, todo.ID, stranger.ID)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))

	_, err = todos.Update(ctx, todo.ID, stranger.ID, &domain.Todo{Title: "hijacked"})
	assert.True(t, domain.IsKind(err, domain.KindNotFound))

	_, err = todos.ToggleComplete(ctx, todo.ID, stranger.ID, true)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))

	err = todos.SoftDelete(ctx, todo.ID, stranger.ID)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))

	_, err = todos.Restore(ctx, todo.ID, stranger.ID)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))

	err = todos.Purge(ctx, todo.ID, stranger.ID)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))

	// The row is untouched
	got, err := todos.Get(ctx, todo.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, todo.Title, got.Title)
	assert.False(t, got.IsDeleted)
}

func TestTodoService_CompletionGuards(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	todos := service.NewTodoService(repos.Todo)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	todo := testutil.NewTodoBuilder().WithOwner(user).WithTitle("Buy milk").Build(t, testDB.DB)

	// Active -> Completed
	completed, err := todos.ToggleComplete(ctx, todo.ID, user.ID, true)
	require.NoError(t, err)
	assert.True(t, completed.IsCompleted)

	// Completing again is a state conflict and leaves the row unchanged
	_, err = todos.ToggleComplete(ctx, todo.ID, user.ID, true)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindConflict))
	assert.Equal(t, "Todo is already completed", err.Error())

	// Completed rows take no field updates
	_, err = todos.Update(ctx, todo.ID, user.ID, &domain.Todo{Title: "changed"})
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindConflict))
	assert.Equal(t, "Cannot update completed todo", err.Error())

	// Completed rows cannot be soft-deleted
	err = todos.SoftDelete(ctx, todo.ID, user.ID)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindConflict))
	assert.Equal(t, "Cannot delete completed todo", err.Error())

	got, err := todos.Get(ctx, todo.ID, user.ID)
	require.NoError(t, err)
	assert.True(t, got.IsCompleted)
	assert.Equal(t, "Buy milk", got.Title)

	// Completed -> Active, then back-toggle conflicts
	reopened, err := todos.ToggleComplete(ctx, todo.ID, user.ID, false)
	require.NoError(t, err)
	assert.False(t, reopened.IsCompleted)

	_, err = todos.ToggleComplete(ctx, todo.ID, user.ID, false)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindConflict))
	assert.Equal(t, "Todo is already not completed", err.Error())
}

func TestTodoService_SoftDeleteRoundTrip(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	todos := service.NewTodoService(repos.Todo)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	created, err := todos.Create(ctx, user.ID, &domain.Todo{Title: "Water plants"})
	require.NoError(t, err)

	require.NoError(t, todos.SoftDelete(ctx, created.ID, user.ID))

	// Deleted rows leave the active listing and Get
	_, err = todos.Get(ctx, created.ID, user.ID)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))

	trash, err := todos.ListTrash(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, trash, 1)
	assert.True(t, trash[0].IsDeleted)
	assert.NotNil(t, trash[0].DeletedAt)

	// Deleting again reads as already deleted
	err = todos.SoftDelete(ctx, created.ID, user.ID)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))

	// Restore returns the pre-delete state
	restored, err := todos.Restore(ctx, created.ID, user.ID)
	require.NoError(t, err)
	assert.False(t, restored.IsDeleted)
	assert.Nil(t, restored.DeletedAt)
	assert.Equal(t, created.Title, restored.Title)
	assert.Equal(t, created.IsCompleted, restored.IsCompleted)

	// Restoring an active row reads as not-in-trash
	_, err = todos.Restore(ctx, created.ID, user.ID)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
	assert.Equal(t, "Todo not found in trash", err.Error())
}

func TestTodoService_PurgeIsTerminal(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	todos := service.NewTodoService(repos.Todo)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	created, err := todos.Create(ctx, user.ID, &domain.Todo{Title: "Old notes"})
	require.NoError(t, err)

	// Purging an active row is refused; only trash can be purged
	err = todos.Purge(ctx, created.ID, user.ID)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))

	require.NoError(t, todos.SoftDelete(ctx, created.ID, user.ID))
	require.NoError(t, todos.Purge(ctx, created.ID, user.ID))

	// Gone from both listings, and every further operation is not found
	active, err := todos.List(ctx, user.ID, domain.TodoFilter{})
	require.NoError(t, err)
	assert.Empty(t, active)

	trash, err := todos.ListTrash(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, trash)

	_, err = todos.Get(ctx, created.ID, user.ID)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
	_, err = todos.Restore(ctx, created.ID, user.ID)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
	err = todos.Purge(ctx, created.ID, user.ID)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
}

func TestTodoService_HolidaysAreReadOnly(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	todos := service.NewTodoService(repos.Todo)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	holiday := testutil.NewTodoBuilder().
		AsPublicHoliday().
		WithTitle("New Year's Day").
		WithDueDate(2026, 1, 1).
		Build(t, testDB.DB)

	// Everyone can read a holiday
	got, err := todos.Get(ctx, holiday.ID, user.ID)
	require.NoError(t, err)
	assert.True(t, got.IsPublicHoliday)
	assert.Nil(t, got.UserID)

	// Nobody can mutate one through the todo lifecycle
	_, err = todos.Update(ctx, holiday.ID, user.ID, &domain.Todo{Title: "Hacked"})
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
	_, err = todos.ToggleComplete(ctx, holiday.ID, user.ID, true)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
	err = todos.SoftDelete(ctx, holiday.ID, user.ID)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
	err = todos.Purge(ctx, holiday.ID, user.ID)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
}

func TestTodoService_ListFilters(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	todos := service.NewTodoService(repos.Todo)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	testutil.NewTodoBuilder().WithOwner(user).WithTitle("Buy milk").WithDueDate(2026, 3, 10).Build(t, testDB.DB)
	testutil.NewTodoBuilder().WithOwner(user).WithTitle("Pay rent").WithDueDate(2026, 4, 1).Completed().Build(t, testDB.DB)
	testutil.NewTodoBuilder().WithOwner(user).WithTitle("Call the dentist").WithDescription("about the milk tooth").Build(t, testDB.DB)
	testutil.NewTodoBuilder().WithOwner(user).WithTitle("Deleted errand").Deleted().Build(t, testDB.DB)

	t.Run("no filter returns active rows only", func(t *testing.T) {
		got, err := todos.List(ctx, user.ID, domain.TodoFilter{})
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})

	t.Run("completion filter", func(t *testing.T) {
		completed := true
		got, err := todos.List(ctx, user.ID, domain.TodoFilter{IsCompleted: &completed})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Pay rent", got[0].Title)
	})

	t.Run("keyword searches title and description", func(t *testing.T) {
		got, err := todos.List(ctx, user.ID, domain.TodoFilter{Keyword: "milk"})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("due date range", func(t *testing.T) {
		start := testutil.Date(2026, 3, 1)
		end := testutil.Date(2026, 3, 31)
		got, err := todos.List(ctx, user.ID, domain.TodoFilter{StartDate: &start, EndDate: &end})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Buy milk", got[0].Title)
	})
}
