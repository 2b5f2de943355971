package controllers

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/Manel-Mahdjoubi/novexa/database"
	courseModels "github.com/Manel-Mahdjoubi/novexa/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newProgressTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "progress.db")), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&courseModels.Lecture{},
		&courseModels.LectureCompletion{},
		&courseModels.Enrollment{},
	))
	database.Database = database.DbInstance{Db: db}
	return db
}

func TestUpdateEnrollmentProgress(t *testing.T) {
	db := newProgressTestDB(t)

	const userID, courseID = 1, 1
	lectures := []courseModels.Lecture{
		{CourseID: courseID, ChapterID: 1, Title: "First", IsPublished: true},
		{CourseID: courseID, ChapterID: 1, Title: "Second", IsPublished: true},
	}
	require.NoError(t, db.Create(&lectures).Error)

	enrollment := courseModels.Enrollment{UserID: userID, CourseID: courseID, Status: "ENROLLED", TotalLectures: 2}
	require.NoError(t, db.Create(&enrollment).Error)

	require.NoError(t, db.Create(&courseModels.LectureCompletion{
		UserID: userID, CourseID: courseID, LectureID: lectures[0].ID,
	}).Error)
	updateEnrollmentProgress(userID, courseID)

	require.NoError(t, db.First(&enrollment, enrollment.ID).Error)
	assert.Equal(t, "IN_PROGRESS", enrollment.Status)
	assert.Equal(t, 50.0, enrollment.Progress)
	assert.Nil(t, enrollment.CompletedAt)

	// Backdate the row so the completion timestamp provably comes from the
	// clock at completion time, not from the last save.
	stale := time.Now().AddDate(0, 0, -7)
	require.NoError(t, db.Model(&courseModels.Enrollment{}).Where("id = ?", enrollment.ID).
		UpdateColumn("updated_at", stale).Error)

	require.NoError(t, db.Create(&courseModels.LectureCompletion{
		UserID: userID, CourseID: courseID, LectureID: lectures[1].ID,
	}).Error)
	updateEnrollmentProgress(userID, courseID)

	require.NoError(t, db.First(&enrollment, enrollment.ID).Error)
	assert.Equal(t, "COMPLETED", enrollment.Status)
	assert.Equal(t, 100.0, enrollment.Progress)
	require.NotNil(t, enrollment.CompletedAt)
	assert.WithinDuration(t, time.Now(), *enrollment.CompletedAt, 10*time.Second)

	// A later recompute must not move the completion timestamp.
	first := *enrollment.CompletedAt
	updateEnrollmentProgress(userID, courseID)
	require.NoError(t, db.First(&enrollment, enrollment.ID).Error)
	require.NotNil(t, enrollment.CompletedAt)
	assert.True(t, enrollment.CompletedAt.Equal(first))
}
