package certificate

import (
	"time"

	courseModels "github.com/Manel-Mahdjoubi/novexa/models/course"

	"gorm.io/gorm"
)

// Eligibility failure reasons, machine-readable for UI rendering.
const (
	ReasonNotFound             = "not_found"
	ReasonCertificatesDisabled = "certificates_disabled"
	ReasonNotEnrolled          = "not_enrolled"
	ReasonIncomplete           = "incomplete"
	ReasonQuizzesFailed        = "quizzes_failed"
)

// Decision is the outcome of the eligibility gate. A failed decision is an
// expected business outcome, not an error; Details carries whatever the
// caller needs to render actionable UI.
type Decision struct {
	OK      bool
	Reason  string
	Message string
	Details map[string]interface{}
}

func failed(reason, message string, details map[string]interface{}) *Decision {
	return &Decision{OK: false, Reason: reason, Message: message, Details: details}
}

// eligibilityContext carries the rows the gate already loaded so the
// generation pipeline does not re-query them.
type eligibilityContext struct {
	course         courseModels.Course
	enrollment     courseModels.Enrollment
	completionDate time.Time
}

// checkEligibility runs the ordered eligibility checks for a (student,
// course) pair: course exists and offers certificates, enrollment exists,
// progress is exactly 100, and every quiz of the course has a best score at
// or above the passing threshold. Read-only; short-circuits on the first
// failure. The "already issued" check is handled by the caller since it is
// an idempotent success, not a failure.
func checkEligibility(db *gorm.DB, passThreshold int, userID, courseID uint) (*eligibilityContext, *Decision, error) {
	var crs courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&crs).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, failed(ReasonNotFound, "Course not found!", nil), nil
		}
		return nil, nil, err
	}

	if !crs.CertificateEnabled {
		return nil, failed(ReasonCertificatesDisabled, "This course does not offer certificates!", nil), nil
	}

	var enrollment courseModels.Enrollment
	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, failed(ReasonNotEnrolled, "User not enrolled in this course!", nil), nil
		}
		return nil, nil, err
	}

	// Progress must be exactly 100, not merely close.
	if enrollment.Progress != 100 {
		return nil, failed(ReasonIncomplete, "Please complete the course before requesting a certificate!", map[string]interface{}{
			"progress": enrollment.Progress,
		}), nil
	}

	var quizzes []courseModels.Quiz
	if err := db.Where("course_id = ? AND is_deleted = ?", courseID, false).Find(&quizzes).Error; err != nil {
		return nil, nil, err
	}

	// A course with zero quizzes trivially passes this step.
	failedQuizzes := 0
	for _, quiz := range quizzes {
		best, err := bestScore(db, userID, quiz.ID)
		if err != nil {
			return nil, nil, err
		}
		if best == nil || *best < passThreshold {
			failedQuizzes++
		}
	}
	if failedQuizzes > 0 {
		return nil, failed(ReasonQuizzesFailed, "Some quizzes are failed or unattempted!", map[string]interface{}{
			"failedQuizzes": failedQuizzes,
			"totalQuizzes":  len(quizzes),
		}), nil
	}

	completionDate := nowFunc()
	if enrollment.CompletedAt != nil {
		completionDate = *enrollment.CompletedAt
	}

	return &eligibilityContext{
		course:         crs,
		enrollment:     enrollment,
		completionDate: completionDate,
	}, nil, nil
}

// bestScore returns the maximum score across the student's completed
// attempts for a quiz, or nil when no attempts exist.
func bestScore(db *gorm.DB, userID, quizID uint) (*int, error) {
	var attempts int64
	if err := db.Model(&courseModels.QuizAttempt{}).
		Where("user_id = ? AND quiz_id = ? AND status = ? AND is_deleted = ?", userID, quizID, "COMPLETED", false).
		Count(&attempts).Error; err != nil {
		return nil, err
	}
	if attempts == 0 {
		return nil, nil
	}

	var best int
	if err := db.Model(&courseModels.QuizAttempt{}).
		Where("user_id = ? AND quiz_id = ? AND status = ? AND is_deleted = ?", userID, quizID, "COMPLETED", false).
		Select("MAX(score)").Scan(&best).Error; err != nil {
		return nil, err
	}
	return &best, nil
}
