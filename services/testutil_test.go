package services

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"lms/config"
	"lms/database"
	"lms/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// One shared in-memory database per test, named after the test so
	// parallel tests never collide.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTKey:           "test-secret",
		SaltRound:        bcrypt.MinCost,
		BaseURL:          "http://localhost:3000",
		ResetTokenMaxAge: 1800,
	}
}

// stubMailer records sends; safe for the fire-and-forget goroutines.
type stubMailer struct {
	mu   sync.Mutex
	sent []string // recipients
}

func (m *stubMailer) Send(to, subject, htmlBody string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, to)
	return nil
}

func (m *stubMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

// stubStore hands out sequential names and records deletions.
type stubStore struct {
	mu         sync.Mutex
	saved      int
	deleted    []string
	failDelete bool
}

func (s *stubStore) Save(file *multipart.FileHeader) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved++
	return fmt.Sprintf("stored-%d.bin", s.saved), nil
}

func (s *stubStore) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, name)
	if s.failDelete {
		return fmt.Errorf("storage unavailable")
	}
	return nil
}

func (s *stubStore) deletions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.deleted...)
}

// fileHeader builds a real multipart header for upload tests.
func fileHeader(t *testing.T, name string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = fw.Write([]byte("test content"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	return form.File["file"][0]
}

func createUser(t *testing.T, db *gorm.DB, username string, role models.Role) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
		Role:         role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createCourse(t *testing.T, db *gorm.DB, instructorID uint, price uint) *models.Course {
	t.Helper()

	course := &models.Course{
		Title:        "Test Course",
		Description:  "A course used in tests",
		Price:        price,
		InstructorID: instructorID,
		IsActive:     true,
	}
	require.NoError(t, db.Create(course).Error)
	return course
}

func createLesson(t *testing.T, db *gorm.DB, courseID uint, title string) *models.Lesson {
	t.Helper()

	lesson := &models.Lesson{
		CourseID: courseID,
		Title:    title,
		Content:  "lesson body",
	}
	require.NoError(t, db.Create(lesson).Error)
	return lesson
}
