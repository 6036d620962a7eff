package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lms/models"
)

func newCatalogService(t *testing.T) (*CatalogService, *stubStore) {
	db := newTestDB(t)
	files := &stubStore{}
	return NewCatalogService(db, files), files
}

func TestCreateCourseRequiresInstructor(t *testing.T) {
	svc, _ := newCatalogService(t)
	db := svc.db

	instructor := createUser(t, db, "bob", models.RoleInstructor)
	student := createUser(t, db, "alice", models.RoleStudent)
	admin := createUser(t, db, "root", models.RoleAdmin)

	course, err := svc.CreateCourse(instructor.ID, CourseInput{Title: "Go 101", Description: "Intro"}, nil, nil)
	require.NoError(t, err)
	assert.True(t, course.IsActive)
	assert.False(t, course.IsHidden)
	assert.Equal(t, instructor.ID, course.InstructorID)

	_, err = svc.CreateCourse(student.ID, CourseInput{Title: "Nope", Description: "x"}, nil, nil)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.CreateCourse(admin.ID, CourseInput{Title: "Nope", Description: "x"}, nil, nil)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCreateCourseWithFiles(t *testing.T) {
	svc, files := newCatalogService(t)
	db := svc.db

	instructor := createUser(t, db, "bob", models.RoleInstructor)

	course, err := svc.CreateCourse(instructor.ID, CourseInput{Title: "Go 101", Description: "Intro"},
		fileHeader(t, "intro.mp4"), fileHeader(t, "slides.pdf"))
	require.NoError(t, err)
	assert.NotEmpty(t, course.VideoFile)
	assert.NotEmpty(t, course.ResourceFile)
	assert.NotEqual(t, course.VideoFile, course.ResourceFile)
	assert.Equal(t, 2, files.saved)
}

func TestUpdateCourseOwnershipAndFiles(t *testing.T) {
	svc, files := newCatalogService(t)
	db := svc.db

	owner := createUser(t, db, "bob", models.RoleInstructor)
	other := createUser(t, db, "carol", models.RoleInstructor)

	course, err := svc.CreateCourse(owner.ID, CourseInput{Title: "Go 101", Description: "Intro"},
		fileHeader(t, "intro.mp4"), nil)
	require.NoError(t, err)
	original := course.VideoFile

	// A non-owner is refused and nothing changes.
	_, err = svc.UpdateCourse(other.ID, course.ID, CourseInput{Title: "Hijacked", Description: "x"}, nil, nil)
	assert.ErrorIs(t, err, ErrForbidden)

	var unchanged models.Course
	require.NoError(t, db.First(&unchanged, course.ID).Error)
	assert.Equal(t, "Go 101", unchanged.Title)

	// The owner replaces the video; the old file is removed from storage.
	updated, err := svc.UpdateCourse(owner.ID, course.ID,
		CourseInput{Title: "Go 102", Description: "Intro, revised", Price: 1999},
		fileHeader(t, "intro-v2.mp4"), nil)
	require.NoError(t, err)
	assert.NotEqual(t, original, updated.VideoFile)
	assert.Equal(t, []string{original}, files.deletions())

	var stored models.Course
	require.NoError(t, db.First(&stored, course.ID).Error)
	assert.Equal(t, "Go 102", stored.Title)
	assert.EqualValues(t, 1999, stored.Price)
}

func TestArchiveCourse(t *testing.T) {
	svc, _ := newCatalogService(t)
	db := svc.db

	owner := createUser(t, db, "bob", models.RoleInstructor)
	student := createUser(t, db, "alice", models.RoleStudent)
	course := createCourse(t, db, owner.ID, 0)

	require.NoError(t, svc.ArchiveCourse(owner.ID, course.ID))

	// Gone from the public catalog and from detail views, the owner's
	// included.
	_, err := svc.GetCourse(student.ID, course.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.GetCourse(owner.ID, course.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	published, err := svc.ListPublished()
	require.NoError(t, err)
	assert.Empty(t, published)

	// Still listed for its instructor.
	mine, err := svc.ListByInstructor(owner.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.False(t, mine[0].IsActive)

	// No further mutation reaches an archived course.
	_, err = svc.UpdateCourse(owner.ID, course.ID, CourseInput{Title: "Back", Description: "x"}, nil, nil)
	assert.ErrorIs(t, err, ErrNotFound)
	err = svc.ArchiveCourse(owner.ID, course.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.CreateLesson(owner.ID, course.ID, LessonInput{Title: "Late"}, nil, nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestToggleHideVisibility(t *testing.T) {
	svc, _ := newCatalogService(t)
	db := svc.db

	owner := createUser(t, db, "bob", models.RoleInstructor)
	student := createUser(t, db, "alice", models.RoleStudent)
	course := createCourse(t, db, owner.ID, 0)

	hidden, err := svc.ToggleHide(owner.ID, course.ID)
	require.NoError(t, err)
	assert.True(t, hidden)

	// Hidden from students, still visible to the owner.
	_, err = svc.GetCourse(student.ID, course.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	got, err := svc.GetCourse(owner.ID, course.ID)
	require.NoError(t, err)
	assert.True(t, got.IsHidden)

	published, err := svc.ListPublished()
	require.NoError(t, err)
	assert.Empty(t, published)

	// Toggling back restores public visibility.
	hidden, err = svc.ToggleHide(owner.ID, course.ID)
	require.NoError(t, err)
	assert.False(t, hidden)

	_, err = svc.GetCourse(student.ID, course.ID)
	assert.NoError(t, err)
}

func TestToggleCertificate(t *testing.T) {
	svc, _ := newCatalogService(t)
	db := svc.db

	owner := createUser(t, db, "bob", models.RoleInstructor)
	other := createUser(t, db, "carol", models.RoleInstructor)
	course := createCourse(t, db, owner.ID, 0)

	enabled, err := svc.ToggleCertificate(owner.ID, course.ID)
	require.NoError(t, err)
	assert.True(t, enabled)

	enabled, err = svc.ToggleCertificate(owner.ID, course.ID)
	require.NoError(t, err)
	assert.False(t, enabled)

	_, err = svc.ToggleCertificate(other.ID, course.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestListPublishedOrder(t *testing.T) {
	svc, _ := newCatalogService(t)
	db := svc.db

	owner := createUser(t, db, "bob", models.RoleInstructor)
	createCourse(t, db, owner.ID, 0)
	second := createCourse(t, db, owner.ID, 0)
	require.NoError(t, db.Model(second).Update("title", "Newer").Error)

	hidden := createCourse(t, db, owner.ID, 0)
	require.NoError(t, db.Model(hidden).Update("is_hidden", true).Error)

	published, err := svc.ListPublished()
	require.NoError(t, err)
	require.Len(t, published, 2)
	for _, c := range published {
		assert.False(t, c.IsHidden)
	}
}

func TestLessonLifecycle(t *testing.T) {
	svc, files := newCatalogService(t)
	db := svc.db

	owner := createUser(t, db, "bob", models.RoleInstructor)
	other := createUser(t, db, "carol", models.RoleInstructor)
	course := createCourse(t, db, owner.ID, 0)

	lesson, err := svc.CreateLesson(owner.ID, course.ID,
		LessonInput{Title: "Setup", Content: "Install the toolchain"},
		fileHeader(t, "setup.mp4"), nil)
	require.NoError(t, err)
	firstVideo := lesson.VideoFile
	require.NotEmpty(t, firstVideo)

	_, err = svc.CreateLesson(owner.ID, course.ID, LessonInput{Title: "Basics"}, nil, nil)
	require.NoError(t, err)

	// Non-owner cannot touch the lesson.
	_, err = svc.UpdateLesson(other.ID, lesson.ID, LessonInput{Title: "Hijacked"}, nil, nil)
	assert.ErrorIs(t, err, ErrForbidden)

	// Replacing the video discards the old one.
	updated, err := svc.UpdateLesson(owner.ID, lesson.ID,
		LessonInput{Title: "Setup, revised", Content: "Install the toolchain"},
		fileHeader(t, "setup-v2.mp4"), nil)
	require.NoError(t, err)
	assert.NotEqual(t, firstVideo, updated.VideoFile)
	assert.Equal(t, []string{firstVideo}, files.deletions())

	lessons, err := svc.ListLessons(course.ID)
	require.NoError(t, err)
	require.Len(t, lessons, 2)
	assert.Equal(t, "Setup, revised", lessons[0].Title)
	assert.Equal(t, "Basics", lessons[1].Title)

	// Deleting removes the lesson and its files.
	require.NoError(t, svc.DeleteLesson(owner.ID, lesson.ID))
	_, err = svc.GetLesson(lesson.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	lessons, err = svc.ListLessons(course.ID)
	require.NoError(t, err)
	require.Len(t, lessons, 1)
	assert.Contains(t, files.deletions(), updated.VideoFile)
}

func TestDiscardFailureIsNotFatal(t *testing.T) {
	svc, files := newCatalogService(t)
	db := svc.db
	files.failDelete = true

	owner := createUser(t, db, "bob", models.RoleInstructor)
	course := createCourse(t, db, owner.ID, 0)

	lesson, err := svc.CreateLesson(owner.ID, course.ID, LessonInput{Title: "Setup"},
		fileHeader(t, "setup.mp4"), nil)
	require.NoError(t, err)

	// Storage refusing the delete must not fail the update.
	_, err = svc.UpdateLesson(owner.ID, lesson.ID, LessonInput{Title: "Setup v2"},
		fileHeader(t, "setup-v2.mp4"), nil)
	assert.NoError(t, err)
	assert.Len(t, files.deletions(), 1)
}

func TestGetLessonRequiresActiveCourse(t *testing.T) {
	svc, _ := newCatalogService(t)
	db := svc.db

	owner := createUser(t, db, "bob", models.RoleInstructor)
	course := createCourse(t, db, owner.ID, 0)
	lesson := createLesson(t, db, course.ID, "Setup")

	_, err := svc.GetLesson(lesson.ID)
	require.NoError(t, err)

	require.NoError(t, svc.ArchiveCourse(owner.ID, course.ID))
	_, err = svc.GetLesson(lesson.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
