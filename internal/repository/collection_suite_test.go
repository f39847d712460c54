package repository

import (
	"context"

	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/list-task-api/internal/models"
)

// CollectionSuite exercises the Collection contract. Backends embed it and
// provide newStore.
type CollectionSuite struct {
	suite.Suite
	store    *Store
	newStore func() *Store
	ctx      context.Context
}

func (s *CollectionSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = s.newStore()
}

func (s *CollectionSuite) insertList(name, creator string) *models.List {
	list := &models.List{Name: name, Creator: creator}
	s.Require().NoError(s.store.Lists.Insert(s.ctx, list))
	return list
}

func (s *CollectionSuite) insertTask(listID, taskID string) *models.Task {
	task := &models.Task{Name: "task " + taskID, ListID: listID, TaskID: taskID}
	s.Require().NoError(s.store.Tasks.Insert(s.ctx, task))
	return task
}

func (s *CollectionSuite) TestInsertAssignsID() {
	list := s.insertList("Groceries", "alice")
	s.True(IsValidID(list.ID))

	found, err := s.store.Lists.FindOne(s.ctx, Filter{models.ColumnID: list.ID})
	s.Require().NoError(err)
	s.Equal(*list, *found)
}

func (s *CollectionSuite) TestInsertDuplicateKey() {
	user := &models.User{Username: "alice", Password: "pw", Email: "a@example.com"}
	s.Require().NoError(s.store.Users.Insert(s.ctx, user))

	again := &models.User{Username: "alice", Password: "other", Email: "b@example.com"}
	s.ErrorIs(s.store.Users.Insert(s.ctx, again), ErrDuplicateKey)

	list := s.insertList("Groceries", "alice")
	s.insertTask(list.ID, "t1")
	s.ErrorIs(s.store.Tasks.Insert(s.ctx, &models.Task{Name: "dup", ListID: list.ID, TaskID: "t1"}), ErrDuplicateKey)
}

func (s *CollectionSuite) TestFindOneByMultipleColumns() {
	s.insertList("Groceries", "alice")
	bobs := s.insertList("Groceries", "bob")

	found, err := s.store.Lists.FindOne(s.ctx, Filter{models.ColumnName: "Groceries", models.ColumnCreator: "bob"})
	s.Require().NoError(err)
	s.Equal(bobs.ID, found.ID)

	_, err = s.store.Lists.FindOne(s.ctx, Filter{models.ColumnName: "Groceries", models.ColumnCreator: "carol"})
	s.ErrorIs(err, ErrNotFound)
}

func (s *CollectionSuite) TestFindMany() {
	list := s.insertList("Groceries", "alice")
	other := s.insertList("Work", "alice")
	s.insertTask(list.ID, "t1")
	s.insertTask(list.ID, "t2")
	s.insertTask(other.ID, "w1")

	tasks, err := Collect(s.store.Tasks.FindMany(s.ctx, Filter{models.ColumnList: list.ID}))
	s.Require().NoError(err)
	s.Len(tasks, 2)

	all, err := Collect(s.store.Tasks.FindMany(s.ctx, nil))
	s.Require().NoError(err)
	s.Len(all, 3)

	none, err := Collect(s.store.Tasks.FindMany(s.ctx, Filter{models.ColumnList: "missing"}))
	s.Require().NoError(err)
	s.NotNil(none)
	s.Empty(none)
}

func (s *CollectionSuite) TestFindManyStopsEarly() {
	list := s.insertList("Groceries", "alice")
	s.insertTask(list.ID, "t1")
	s.insertTask(list.ID, "t2")

	seen := 0
	for task, err := range s.store.Tasks.FindMany(s.ctx, nil) {
		s.Require().NoError(err)
		s.NotEmpty(task.ID)
		seen++
		break
	}
	s.Equal(1, seen)

	// The store stays usable after an abandoned iteration.
	_, err := s.store.Lists.FindOne(s.ctx, Filter{models.ColumnID: list.ID})
	s.NoError(err)
}

func (s *CollectionSuite) TestUpdate() {
	list := s.insertList("Groceries", "alice")
	task := s.insertTask(list.ID, "t1")

	updated, err := s.store.Tasks.Update(s.ctx, Filter{models.ColumnTaskID: "t1"}, Patch{models.ColumnDone: true})
	s.Require().NoError(err)
	s.True(updated.Done)
	s.Equal(task.ID, updated.ID)

	updated, err = s.store.Tasks.Update(s.ctx, Filter{models.ColumnTaskID: "t1"}, Patch{models.ColumnDone: false})
	s.Require().NoError(err)
	s.False(updated.Done)

	_, err = s.store.Tasks.Update(s.ctx, Filter{models.ColumnTaskID: "missing"}, Patch{models.ColumnDone: true})
	s.ErrorIs(err, ErrNotFound)
}

func (s *CollectionSuite) TestUpdateRejectsImmutableColumn() {
	list := s.insertList("Groceries", "alice")
	s.insertTask(list.ID, "t1")

	_, err := s.store.Tasks.Update(s.ctx, Filter{models.ColumnTaskID: "t1"}, Patch{models.ColumnName: "Eggs", models.ColumnDone: true})
	var notPatchable *models.ErrColumnNotPatchable
	s.Require().ErrorAs(err, &notPatchable)

	found, err := s.store.Tasks.FindOne(s.ctx, Filter{models.ColumnTaskID: "t1"})
	s.Require().NoError(err)
	s.Equal("task t1", found.Name)
	s.False(found.Done)
}

func (s *CollectionSuite) TestDeleteOne() {
	list := s.insertList("Groceries", "alice")
	task := s.insertTask(list.ID, "t1")
	s.insertTask(list.ID, "t2")

	deleted, err := s.store.Tasks.DeleteOne(s.ctx, Filter{models.ColumnID: task.ID})
	s.Require().NoError(err)
	s.EqualValues(1, deleted)

	deleted, err = s.store.Tasks.DeleteOne(s.ctx, Filter{models.ColumnID: task.ID})
	s.Require().NoError(err)
	s.EqualValues(0, deleted)

	deleted, err = s.store.Tasks.DeleteOne(s.ctx, Filter{models.ColumnList: list.ID})
	s.Require().NoError(err)
	s.EqualValues(1, deleted)
}

func (s *CollectionSuite) TestDeleteMany() {
	list := s.insertList("Groceries", "alice")
	other := s.insertList("Work", "alice")
	s.insertTask(list.ID, "t1")
	s.insertTask(list.ID, "t2")
	s.insertTask(other.ID, "w1")

	deleted, err := s.store.Tasks.DeleteMany(s.ctx, Filter{models.ColumnList: list.ID})
	s.Require().NoError(err)
	s.EqualValues(2, deleted)

	deleted, err = s.store.Tasks.DeleteMany(s.ctx, Filter{models.ColumnList: list.ID})
	s.Require().NoError(err)
	s.EqualValues(0, deleted)

	remaining, err := Collect(s.store.Tasks.FindMany(s.ctx, nil))
	s.Require().NoError(err)
	s.Len(remaining, 1)
}
