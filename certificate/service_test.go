package certificate

import (
	"bytes"
	"errors"
	"image/png"
	"path/filepath"
	"testing"
	"time"

	"github.com/Manel-Mahdjoubi/novexa/models"
	courseModels "github.com/Manel-Mahdjoubi/novexa/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakeUploader struct {
	result *UploadResult
	err    error
	calls  int
}

func (f *fakeUploader) Upload(data []byte, format, folder, publicID string) (*UploadResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&courseModels.Course{},
		&courseModels.Chapter{},
		&courseModels.Quiz{},
		&courseModels.QuizAttempt{},
		&courseModels.Enrollment{},
		&courseModels.Certificate{},
	))
	return db
}

type serviceFixture struct {
	db       *gorm.DB
	svc      *Service
	cipher   *Cipher
	uploader *fakeUploader
	student  models.User
	course   courseModels.Course
}

func newServiceFixture(t *testing.T, uploader *fakeUploader, passThreshold int) *serviceFixture {
	t.Helper()
	db := newTestDB(t)

	cipher, err := NewCipher(testKey(t))
	require.NoError(t, err)

	renderer, err := NewTemplateRenderer(writeTestTemplate(t, 1100, 780))
	require.NoError(t, err)

	var up Uploader
	if uploader != nil {
		up = uploader
	}
	svc := NewService(db, cipher, renderer, up, Config{
		VerifyBaseURL: "https://novexa.app",
		PassThreshold: passThreshold,
		UploadFolder:  "novexa/certificates",
	})

	student := models.User{Name: "Ada Lovelace", Email: "ada@novexa.app", Role: models.RoleStudent, Password: "x"}
	require.NoError(t, db.Create(&student).Error)

	course := courseModels.Course{TeacherID: 99, Title: "Intro to Computing", CertificateEnabled: true, IsPublished: true}
	require.NoError(t, db.Create(&course).Error)

	return &serviceFixture{db: db, svc: svc, cipher: cipher, uploader: uploader, student: student, course: course}
}

func (f *serviceFixture) enroll(t *testing.T, progress float64) {
	t.Helper()
	enrollment := courseModels.Enrollment{UserID: f.student.ID, CourseID: f.course.ID, Progress: progress}
	if progress == 100 {
		done := time.Date(2026, time.January, 5, 10, 0, 0, 0, time.UTC)
		enrollment.Status = "COMPLETED"
		enrollment.CompletedAt = &done
	}
	require.NoError(t, f.db.Create(&enrollment).Error)
}

func (f *serviceFixture) addQuiz(t *testing.T, scores ...int) courseModels.Quiz {
	t.Helper()
	quiz := courseModels.Quiz{CourseID: f.course.ID, ChapterID: 1, Title: "Checkpoint"}
	require.NoError(t, f.db.Create(&quiz).Error)
	for i, score := range scores {
		attempt := courseModels.QuizAttempt{
			UserID:        f.student.ID,
			QuizID:        quiz.ID,
			Score:         score,
			AttemptNumber: i + 1,
			Status:        "COMPLETED",
		}
		require.NoError(t, f.db.Create(&attempt).Error)
	}
	return quiz
}

func TestGenerateEndToEnd(t *testing.T) {
	uploader := &fakeUploader{result: &UploadResult{URL: "https://cdn.example/c.png", PublicID: "novexa/abc"}}
	f := newServiceFixture(t, uploader, 50)
	f.enroll(t, 100)
	f.addQuiz(t, 60)

	result, decision, err := f.svc.Generate(f.student.ID, f.course.ID, FormatPNG)
	require.NoError(t, err)
	require.Nil(t, decision)
	require.True(t, result.Created)
	assert.Equal(t, "ada@novexa.app", result.StudentEmail)

	cert := result.Certificate
	assert.Regexp(t, certIDPattern, cert.CertificateID)
	assert.Equal(t, FormatPNG, cert.Format)
	assert.Equal(t, "Ada Lovelace", cert.StudentName)
	assert.Equal(t, "Intro to Computing", cert.CourseName)
	assert.True(t, cert.CompletionDate.Equal(time.Date(2026, time.January, 5, 10, 0, 0, 0, time.UTC)),
		"completion date must come from the enrollment, not issuance time")
	assert.Contains(t, cert.QRCodeData, "data:image/png;base64,")
	require.NotNil(t, cert.CloudinaryURL)
	assert.Equal(t, "https://cdn.example/c.png", *cert.CloudinaryURL)
	assert.Equal(t, 1, uploader.calls)

	// The stored blob is encrypted; decrypting it yields a well-formed PNG.
	plain, err := f.cipher.Decrypt(cert.FileData)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(plain))
	require.NoError(t, err)
	assert.Equal(t, 1100, img.Bounds().Dx())
}

func TestGenerateIdempotent(t *testing.T) {
	f := newServiceFixture(t, nil, 50)
	f.enroll(t, 100)
	f.addQuiz(t, 60)

	first, decision, err := f.svc.Generate(f.student.ID, f.course.ID, FormatPNG)
	require.NoError(t, err)
	require.Nil(t, decision)
	require.True(t, first.Created)

	second, decision, err := f.svc.Generate(f.student.ID, f.course.ID, FormatPNG)
	require.NoError(t, err)
	require.Nil(t, decision)
	assert.False(t, second.Created)
	assert.Equal(t, first.Certificate.CertificateID, second.Certificate.CertificateID)

	var count int64
	require.NoError(t, f.db.Model(&courseModels.Certificate{}).Count(&count).Error)
	assert.EqualValues(t, 1, count, "re-request must not persist a second row")
}

func TestGenerateAlreadyIssuedShortCircuitsEligibility(t *testing.T) {
	f := newServiceFixture(t, nil, 50)
	f.enroll(t, 100)

	first, _, err := f.svc.Generate(f.student.ID, f.course.ID, FormatPNG)
	require.NoError(t, err)

	// Even if the course stops offering certificates afterwards, the
	// existing record is still returned.
	require.NoError(t, f.db.Model(&courseModels.Course{}).Where("id = ?", f.course.ID).
		Update("certificate_enabled", false).Error)

	second, decision, err := f.svc.Generate(f.student.ID, f.course.ID, FormatPNG)
	require.NoError(t, err)
	require.Nil(t, decision)
	assert.Equal(t, first.Certificate.CertificateID, second.Certificate.CertificateID)
}

func TestGenerateQuizFailure(t *testing.T) {
	f := newServiceFixture(t, nil, 50)
	f.enroll(t, 100)
	f.addQuiz(t, 40)

	result, decision, err := f.svc.Generate(f.student.ID, f.course.ID, FormatPNG)
	require.NoError(t, err)
	require.Nil(t, result)
	require.NotNil(t, decision)
	assert.Equal(t, ReasonQuizzesFailed, decision.Reason)
	assert.Equal(t, 1, decision.Details["failedQuizzes"])
	assert.Equal(t, 1, decision.Details["totalQuizzes"])
}

func TestGenerateIncompleteProgress(t *testing.T) {
	f := newServiceFixture(t, nil, 50)
	f.enroll(t, 80)
	f.addQuiz(t, 100) // perfect quiz scores cannot compensate for progress

	_, decision, err := f.svc.Generate(f.student.ID, f.course.ID, FormatPNG)
	require.NoError(t, err)
	require.NotNil(t, decision)
	assert.Equal(t, ReasonIncomplete, decision.Reason)
	assert.Equal(t, 80.0, decision.Details["progress"])
}

func TestGenerateEligibilityFailures(t *testing.T) {
	t.Run("not enrolled", func(t *testing.T) {
		f := newServiceFixture(t, nil, 50)
		_, decision, err := f.svc.Generate(f.student.ID, f.course.ID, FormatPNG)
		require.NoError(t, err)
		require.NotNil(t, decision)
		assert.Equal(t, ReasonNotEnrolled, decision.Reason)
	})

	t.Run("certificates disabled", func(t *testing.T) {
		f := newServiceFixture(t, nil, 50)
		require.NoError(t, f.db.Model(&courseModels.Course{}).Where("id = ?", f.course.ID).
			Update("certificate_enabled", false).Error)
		f.enroll(t, 100)

		_, decision, err := f.svc.Generate(f.student.ID, f.course.ID, FormatPNG)
		require.NoError(t, err)
		require.NotNil(t, decision)
		assert.Equal(t, ReasonCertificatesDisabled, decision.Reason)
	})

	t.Run("unknown course", func(t *testing.T) {
		f := newServiceFixture(t, nil, 50)
		_, decision, err := f.svc.Generate(f.student.ID, 4242, FormatPNG)
		require.NoError(t, err)
		require.NotNil(t, decision)
		assert.Equal(t, ReasonNotFound, decision.Reason)
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newServiceFixture(t, nil, 50)
		_, decision, err := f.svc.Generate(4242, f.course.ID, FormatPNG)
		require.NoError(t, err)
		require.NotNil(t, decision)
		assert.Equal(t, ReasonNotFound, decision.Reason)
	})

	t.Run("unattempted quiz", func(t *testing.T) {
		f := newServiceFixture(t, nil, 50)
		f.enroll(t, 100)
		f.addQuiz(t) // no attempts at all

		_, decision, err := f.svc.Generate(f.student.ID, f.course.ID, FormatPNG)
		require.NoError(t, err)
		require.NotNil(t, decision)
		assert.Equal(t, ReasonQuizzesFailed, decision.Reason)
		assert.Equal(t, 1, decision.Details["failedQuizzes"])
	})
}

func TestGenerateZeroQuizzesTriviallyPasses(t *testing.T) {
	f := newServiceFixture(t, nil, 50)
	f.enroll(t, 100)

	result, decision, err := f.svc.Generate(f.student.ID, f.course.ID, FormatPDF)
	require.NoError(t, err)
	require.Nil(t, decision)
	assert.True(t, result.Created)
	assert.Equal(t, FormatPDF, result.Certificate.Format)
}

func TestGenerateBestScoreAcrossAttempts(t *testing.T) {
	f := newServiceFixture(t, nil, 50)
	f.enroll(t, 100)
	f.addQuiz(t, 30, 70, 45) // best attempt is 70

	result, decision, err := f.svc.Generate(f.student.ID, f.course.ID, FormatJPG)
	require.NoError(t, err)
	require.Nil(t, decision)
	assert.True(t, result.Created)
}

func TestGenerateConfigurablePassThreshold(t *testing.T) {
	f := newServiceFixture(t, nil, 80)
	f.enroll(t, 100)
	f.addQuiz(t, 60) // passes the default 50 but not the configured 80

	_, decision, err := f.svc.Generate(f.student.ID, f.course.ID, FormatPNG)
	require.NoError(t, err)
	require.NotNil(t, decision)
	assert.Equal(t, ReasonQuizzesFailed, decision.Reason)
}

func TestGenerateUnsupportedFormat(t *testing.T) {
	f := newServiceFixture(t, nil, 50)
	f.enroll(t, 100)

	_, _, err := f.svc.Generate(f.student.ID, f.course.ID, "gif")
	assert.ErrorIs(t, err, ErrBadFormat)
}

func TestGenerateUploadFailureTolerated(t *testing.T) {
	uploader := &fakeUploader{err: errors.New("cloudinary unreachable")}
	f := newServiceFixture(t, uploader, 50)
	f.enroll(t, 100)

	result, decision, err := f.svc.Generate(f.student.ID, f.course.ID, FormatPNG)
	require.NoError(t, err, "hosting failure must never block issuance")
	require.Nil(t, decision)
	assert.True(t, result.Created)
	assert.Nil(t, result.Certificate.CloudinaryURL)
	assert.Nil(t, result.Certificate.CloudinaryPublicID)
	assert.Equal(t, 1, uploader.calls)

	// The encrypted copy is still the authoritative record.
	plain, err := f.cipher.Decrypt(result.Certificate.FileData)
	require.NoError(t, err)
	assert.NotEmpty(t, plain)
}

func TestBestScore(t *testing.T) {
	f := newServiceFixture(t, nil, 50)
	quiz := f.addQuiz(t, 30, 70)

	best, err := bestScore(f.db, f.student.ID, quiz.ID)
	require.NoError(t, err)
	require.NotNil(t, best)
	assert.Equal(t, 70, *best)

	// In-progress attempts do not count toward the best score.
	require.NoError(t, f.db.Create(&courseModels.QuizAttempt{
		UserID: f.student.ID, QuizID: quiz.ID, Score: 100, AttemptNumber: 3, Status: "IN_PROGRESS",
	}).Error)
	best, err = bestScore(f.db, f.student.ID, quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, 70, *best)

	none, err := bestScore(f.db, f.student.ID, quiz.ID+100)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestUserCourseUniqueIndex(t *testing.T) {
	f := newServiceFixture(t, nil, 50)

	first := courseModels.Certificate{CertificateID: "NOVX-2026-AAAAAAAA", UserID: f.student.ID, CourseID: f.course.ID}
	require.NoError(t, f.db.Create(&first).Error)

	second := courseModels.Certificate{CertificateID: "NOVX-2026-BBBBBBBB", UserID: f.student.ID, CourseID: f.course.ID}
	err := f.db.Create(&second).Error
	require.Error(t, err, "the composite unique index is the race backstop")
	assert.True(t, isDuplicateKey(err))
}

func TestIsDuplicateKey(t *testing.T) {
	assert.True(t, isDuplicateKey(gorm.ErrDuplicatedKey))
	assert.True(t, isDuplicateKey(errors.New("UNIQUE constraint failed: certificates.certificate_id")))
	assert.True(t, isDuplicateKey(errors.New(`ERROR: duplicate key value violates unique constraint "idx_certificates_user_course"`)))
	assert.False(t, isDuplicateKey(errors.New("connection refused")))
}

func TestDownloadAuthorization(t *testing.T) {
	f := newServiceFixture(t, nil, 50)
	f.enroll(t, 100)

	result, _, err := f.svc.Generate(f.student.ID, f.course.ID, FormatPNG)
	require.NoError(t, err)
	certID := result.Certificate.CertificateID

	t.Run("owner", func(t *testing.T) {
		data, cert, err := f.svc.Download(certID, f.student.ID, models.RoleStudent)
		require.NoError(t, err)
		assert.Equal(t, FormatPNG, cert.Format)
		_, err = png.Decode(bytes.NewReader(data))
		assert.NoError(t, err)
	})

	t.Run("admin", func(t *testing.T) {
		_, _, err := f.svc.Download(certID, 4242, models.RoleAdmin)
		assert.NoError(t, err)
	})

	t.Run("stranger", func(t *testing.T) {
		_, _, err := f.svc.Download(certID, 4242, models.RoleStudent)
		assert.ErrorIs(t, err, ErrNotOwner)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, _, err := f.svc.Download("NOVX-2026-00000000", f.student.ID, models.RoleStudent)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDownloadRejectsCorruptBlob(t *testing.T) {
	f := newServiceFixture(t, nil, 50)
	f.enroll(t, 100)

	result, _, err := f.svc.Generate(f.student.ID, f.course.ID, FormatPNG)
	require.NoError(t, err)

	require.NoError(t, f.db.Model(&courseModels.Certificate{}).
		Where("certificate_id = ?", result.Certificate.CertificateID).
		Update("file_data", []byte("corrupted")).Error)

	_, _, err = f.svc.Download(result.Certificate.CertificateID, f.student.ID, models.RoleStudent)
	assert.ErrorIs(t, err, ErrDecrypt, "corrupted bytes are never returned")
}

func TestVerify(t *testing.T) {
	f := newServiceFixture(t, nil, 50)
	f.enroll(t, 100)

	result, _, err := f.svc.Generate(f.student.ID, f.course.ID, FormatPNG)
	require.NoError(t, err)

	verified, pub, err := f.svc.Verify(result.Certificate.CertificateID)
	require.NoError(t, err)
	assert.True(t, verified)
	require.NotNil(t, pub)
	assert.Equal(t, "Ada Lovelace", pub.StudentName)
	assert.Equal(t, "Intro to Computing", pub.CourseName)
	assert.Equal(t, result.Certificate.CertificateID, pub.CertificateID)
}

func TestVerifyNonLeakage(t *testing.T) {
	f := newServiceFixture(t, nil, 50)

	// A malformed ID and a well-formed but unassigned ID must be
	// indistinguishable from the response shape.
	for _, id := range []string{"totally-made-up-id", "NOVX-2026-00000000"} {
		verified, pub, err := f.svc.Verify(id)
		require.NoError(t, err, id)
		assert.False(t, verified, id)
		assert.Nil(t, pub, id)
	}
}

func TestListByStudent(t *testing.T) {
	f := newServiceFixture(t, nil, 50)
	f.enroll(t, 100)

	other := courseModels.Course{TeacherID: 99, Title: "Advanced Computing", CertificateEnabled: true}
	require.NoError(t, f.db.Create(&other).Error)
	done := time.Now()
	require.NoError(t, f.db.Create(&courseModels.Enrollment{
		UserID: f.student.ID, CourseID: other.ID, Progress: 100, Status: "COMPLETED", CompletedAt: &done,
	}).Error)

	_, _, err := f.svc.Generate(f.student.ID, f.course.ID, FormatPNG)
	require.NoError(t, err)
	_, _, err = f.svc.Generate(f.student.ID, other.ID, FormatPDF)
	require.NoError(t, err)

	certs, err := f.svc.ListByStudent(f.student.ID)
	require.NoError(t, err)
	require.Len(t, certs, 2)
	for _, cert := range certs {
		assert.Empty(t, cert.FileData, "listing must not load the encrypted blobs")
	}

	empty, err := f.svc.ListByStudent(4242)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
