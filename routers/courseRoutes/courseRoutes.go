package courseRoutes

import (
	controllers "github.com/Manel-Mahdjoubi/novexa/controllers/course"
	"github.com/Manel-Mahdjoubi/novexa/middleware"
	"github.com/Manel-Mahdjoubi/novexa/models"
	validators "github.com/Manel-Mahdjoubi/novexa/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all student-facing course routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/courses")

	// Catalogue
	courseGroup.Get("/list", middleware.JWTMiddleware, validators.CourseList(), controllers.GetAllCourses)
	courseGroup.Get("/:courseId", middleware.JWTMiddleware, validators.CourseID(), controllers.GetCourseDetails)

	// Enrollment and content
	courseGroup.Post("/:courseId/enroll", middleware.JWTMiddleware, validators.CourseID(), controllers.EnrollInCourse)
	courseGroup.Get("/:courseId/content", middleware.JWTMiddleware, validators.CourseID(), controllers.GetCourseContent)
	courseGroup.Post("/:courseId/lecture/:lectureId/complete", middleware.JWTMiddleware, validators.CourseID(), validators.LectureID(), controllers.MarkLectureComplete)
	courseGroup.Get("/:courseId/progress", middleware.JWTMiddleware, validators.CourseID(), controllers.GetUserProgress)

	// Quizzes
	quizGroup := app.Group("/quiz")
	quizGroup.Get("/:quizId", middleware.JWTMiddleware, validators.QuizID(), controllers.GetQuiz)
	quizGroup.Post("/:quizId/submit", middleware.JWTMiddleware, validators.QuizID(), controllers.SubmitQuizAttempt)
	quizGroup.Get("/:quizId/attempts", middleware.JWTMiddleware, validators.QuizID(), controllers.GetQuizAttempts)

	// Feedback
	courseGroup.Get("/:courseId/feedback", middleware.JWTMiddleware, validators.CourseID(), controllers.ListCourseFeedback)
	app.Post("/feedback", middleware.JWTMiddleware, validators.SubmitFeedback(), controllers.SubmitFeedback)

	// User enrollments
	app.Get("/user/enrollments", middleware.JWTMiddleware, controllers.GetEnrollments)
}

// SetupTeacherRoutes sets up course authoring routes for teachers
func SetupTeacherRoutes(app *fiber.App) {
	teacherOnly := middleware.RequireRoles(models.RoleTeacher, models.RoleAdmin)
	teacherGroup := app.Group("/teacher/course", middleware.JWTMiddleware, teacherOnly)

	// Course CRUD
	teacherGroup.Post("/create", validators.CreateCourse(), controllers.CreateCourse)
	teacherGroup.Get("/list", controllers.GetMyCourses)
	teacherGroup.Put("/:courseId", validators.CourseID(), controllers.UpdateCourse)
	teacherGroup.Post("/:courseId/publish", validators.CourseID(), controllers.PublishCourse)
	teacherGroup.Delete("/:courseId", validators.CourseID(), controllers.DeleteCourse)

	// Chapter management
	teacherGroup.Post("/:courseId/chapter", validators.CourseID(), controllers.CreateChapter)
	teacherGroup.Put("/:courseId/chapter/:chapterId", validators.CourseID(), validators.ChapterID(), controllers.UpdateChapter)
	teacherGroup.Delete("/:courseId/chapter/:chapterId", validators.CourseID(), validators.ChapterID(), controllers.DeleteChapter)

	// Lecture management
	teacherGroup.Post("/:courseId/chapter/:chapterId/lecture", validators.CourseID(), validators.ChapterID(), validators.CreateLecture(), controllers.CreateLecture)
	teacherGroup.Put("/:courseId/lecture/:lectureId", validators.CourseID(), validators.LectureID(), controllers.UpdateLecture)

	// Quiz management
	teacherGroup.Post("/:courseId/chapter/:chapterId/quiz", validators.CourseID(), validators.ChapterID(), controllers.CreateQuiz)
	teacherGroup.Delete("/:courseId/quiz/:quizId", validators.CourseID(), validators.QuizID(), controllers.DeleteQuiz)
}
