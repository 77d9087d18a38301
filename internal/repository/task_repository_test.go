package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/reliefops/disaster-relief-api/internal/models"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func openTaskRows(id uint64, required, current int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "status", "required_volunteers", "current_volunteers"}).
		AddRow(id, "Open", required, current)
}

// TestApply_GuardedUpdateConflict drives the path where a concurrent applicant
// consumes the last slot between the read and the guarded counter update. The
// update matches zero rows and the whole transaction must roll back.
func TestApply_GuardedUpdateConflict(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTaskRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `tasks`").
		WillReturnRows(openTaskRows(1, 2, 1))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `assignments`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("INSERT INTO `assignments`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE `tasks` SET `current_volunteers`=current_volunteers \\+ 1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	assignment, err := repo.Apply(7, 1, time.Now().UTC())

	assert.ErrorIs(t, err, ErrApplyConflict)
	assert.Nil(t, assignment)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestApply_GuardedUpdateSuccess checks the happy path issues the counter
// update and the conditional status flip inside one transaction.
func TestApply_GuardedUpdateSuccess(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTaskRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `tasks`").
		WillReturnRows(openTaskRows(1, 2, 0))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `assignments`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("INSERT INTO `assignments`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE `tasks` SET `current_volunteers`=current_volunteers \\+ 1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE `tasks` SET `status`=").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	assignment, err := repo.Apply(7, 1, time.Now().UTC())

	assert.NoError(t, err)
	require.NotNil(t, assignment)
	assert.Equal(t, uint64(7), assignment.VolunteerID)
	assert.Equal(t, uint64(1), assignment.TaskID)
	assert.Equal(t, models.AssignmentStatusAssigned, assignment.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestApply_ClosedTaskDoesNotWrite checks no insert or update is issued once
// the status precondition fails.
func TestApply_ClosedTaskDoesNotWrite(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTaskRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `tasks`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "required_volunteers", "current_volunteers"}).
			AddRow(1, "Cancelled", 2, 0))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `assignments`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectRollback()

	_, err := repo.Apply(7, 1, time.Now().UTC())

	assert.ErrorIs(t, err, ErrApplyTaskClosed)
	assert.NoError(t, mock.ExpectationsWereMet())
}
