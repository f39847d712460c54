package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/list-task-api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func newMongoTasks(mt *mtest.T) *MongoCollection[models.Task, *models.Task] {
	return &MongoCollection[models.Task, *models.Task]{coll: mt.Coll}
}

func taskDocument(id, listID, taskID string, done bool) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: models.ColumnName, Value: "Milk"},
		{Key: models.ColumnList, Value: listID},
		{Key: models.ColumnDone, Value: done},
		{Key: models.ColumnTaskID, Value: taskID},
	}
}

func TestMongoCollection(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("insert assigns id", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		task := &models.Task{Name: "Milk", ListID: NewID(), TaskID: "t1"}
		require.NoError(mt, newMongoTasks(mt).Insert(ctx, task))
		assert.True(mt, IsValidID(task.ID))

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "insert", started.CommandName)
	})

	mt.Run("insert duplicate key", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: tasks index: task_id_1",
		}))

		err := newMongoTasks(mt).Insert(ctx, &models.Task{Name: "Milk", ListID: NewID(), TaskID: "t1"})
		assert.ErrorIs(mt, err, ErrDuplicateKey)
	})

	mt.Run("find one sends id as _id", func(mt *mtest.T) {
		id, listID := NewID(), NewID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.tasks", mtest.FirstBatch, taskDocument(id, listID, "t1", false)))

		found, err := newMongoTasks(mt).FindOne(ctx, Filter{models.ColumnID: id})
		require.NoError(mt, err)
		assert.Equal(mt, models.Task{ID: id, Name: "Milk", ListID: listID, TaskID: "t1"}, *found)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "find", started.CommandName)
		assert.Equal(mt, id, started.Command.Lookup("filter", "_id").StringValue())
		_, err = started.Command.LookupErr("filter", models.ColumnID)
		assert.Error(mt, err)
	})

	mt.Run("find one miss", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.tasks", mtest.FirstBatch))

		_, err := newMongoTasks(mt).FindOne(ctx, Filter{models.ColumnTaskID: "missing"})
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("find many walks every batch", func(mt *mtest.T) {
		listID := NewID()
		first, second := NewID(), NewID()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(42, "db.tasks", mtest.FirstBatch, taskDocument(first, listID, "t1", false)),
			mtest.CreateCursorResponse(0, "db.tasks", mtest.NextBatch, taskDocument(second, listID, "t2", true)),
		)

		tasks, err := Collect(newMongoTasks(mt).FindMany(ctx, Filter{models.ColumnList: listID}))
		require.NoError(mt, err)
		require.Len(mt, tasks, 2)
		assert.Equal(mt, first, tasks[0].ID)
		assert.Equal(mt, second, tasks[1].ID)
		assert.True(mt, tasks[1].Done)
	})

	mt.Run("update returns the patched document", func(mt *mtest.T) {
		id, listID := NewID(), NewID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: taskDocument(id, listID, "t1", true)}))

		updated, err := newMongoTasks(mt).Update(ctx, Filter{models.ColumnTaskID: "t1"}, Patch{models.ColumnDone: true})
		require.NoError(mt, err)
		assert.True(mt, updated.Done)
		assert.Equal(mt, id, updated.ID)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "findAndModify", started.CommandName)
		assert.Equal(mt, "t1", started.Command.Lookup("query", models.ColumnTaskID).StringValue())
		assert.True(mt, started.Command.Lookup("update", "$set", models.ColumnDone).Boolean())
	})

	mt.Run("update miss", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		_, err := newMongoTasks(mt).Update(ctx, Filter{models.ColumnTaskID: "missing"}, Patch{models.ColumnDone: true})
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("update rejects immutable column", func(mt *mtest.T) {
		_, err := newMongoTasks(mt).Update(ctx, Filter{models.ColumnTaskID: "t1"}, Patch{models.ColumnName: "Eggs"})
		var notPatchable *models.ErrColumnNotPatchable
		assert.ErrorAs(mt, err, &notPatchable)
		assert.Nil(mt, mt.GetStartedEvent())
	})

	mt.Run("delete one reports count", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: int32(1)}))

		deleted, err := newMongoTasks(mt).DeleteOne(ctx, Filter{models.ColumnID: NewID()})
		require.NoError(mt, err)
		assert.Equal(mt, int64(1), deleted)
	})

	mt.Run("delete many reports count", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: int32(3)}))

		deleted, err := newMongoTasks(mt).DeleteMany(ctx, Filter{models.ColumnList: NewID()})
		require.NoError(mt, err)
		assert.Equal(mt, int64(3), deleted)
	})

	mt.Run("delete passes server errors through", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Name:    "BadValue",
			Message: "unknown operator: $foo",
		}))

		_, err := newMongoTasks(mt).DeleteMany(ctx, Filter{})
		require.Error(mt, err)
		assert.NotErrorIs(mt, err, ErrNotFound)
		assert.NotErrorIs(mt, err, ErrDuplicateKey)
	})

	mt.Run("ensure indexes", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(),
		)

		require.NoError(mt, EnsureIndexes(ctx, mt.DB))

		var unique []string
		for started := mt.GetStartedEvent(); started != nil; started = mt.GetStartedEvent() {
			assert.Equal(mt, "createIndexes", started.CommandName)
			if value, err := started.Command.LookupErr("indexes", "0", "unique"); err == nil && value.Boolean() {
				unique = append(unique, started.Command.Lookup("createIndexes").StringValue())
			}
		}
		assert.ElementsMatch(mt, []string{MongoUsersCollection, MongoTasksCollection}, unique)
	})

	mt.Run("ensure indexes failure", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    85,
			Name:    "IndexOptionsConflict",
			Message: "index already exists with different options",
		}))

		err := EnsureIndexes(ctx, mt.DB)
		require.Error(mt, err)
		assert.Contains(mt, err.Error(), MongoUsersCollection)
	})
}

func TestToBSON(t *testing.T) {
	doc := toBSON(Filter{models.ColumnID: "abc", models.ColumnName: "Groceries"})

	assert.Equal(t, bson.M{"_id": "abc", models.ColumnName: "Groceries"}, doc)
	assert.Empty(t, toBSON(nil))
}
