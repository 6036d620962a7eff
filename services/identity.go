package services

import (
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"lms/config"
	"lms/mailer"
	"lms/models"
	"lms/storage"
	"lms/utils"
)

// IdentityService owns registration, authentication, profile editing and
// the two multi-step flows: password reset by signed token and email change
// by one-time code.
type IdentityService struct {
	db     *gorm.DB
	mail   mailer.Mailer
	files  storage.Store
	signer *TokenSigner
	cfg    *config.Config
}

func NewIdentityService(db *gorm.DB, mail mailer.Mailer, files storage.Store, cfg *config.Config) *IdentityService {
	return &IdentityService{
		db:     db,
		mail:   mail,
		files:  files,
		signer: NewTokenSigner(cfg.JWTKey),
		cfg:    cfg,
	}
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     models.Role
}

// Register creates a new account. Input shape is validated upstream; here
// only the uniqueness checks against the store remain.
func (s *IdentityService) Register(in RegisterInput) (*models.User, error) {
	if in.Role == "" {
		in.Role = models.RoleStudent
	}
	// Admin accounts are not self-assignable.
	switch in.Role {
	case models.RoleStudent, models.RoleInstructor:
	default:
		return nil, fmt.Errorf("%w: role must be student or instructor", ErrValidation)
	}

	if err := s.db.Where("username = ?", in.Username).First(&models.User{}).Error; err == nil {
		return nil, ErrUsernameTaken
	}
	if err := s.db.Where("email = ?", in.Email).First(&models.User{}).Error; err == nil {
		return nil, ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cfg.SaltRound)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hashed),
		Role:         in.Role,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	mailer.SendWelcomeEmail(s.mail, user.Email, user.Username)
	return &user, nil
}

// Authenticate checks email+password and returns the matching user.
func (s *IdentityService) Authenticate(email, password string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// GetUser fetches a user by id.
func (s *IdentityService) GetUser(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

type ProfileInput struct {
	Bio           string
	Qualification string
	Institution   string
	Website       string
	Twitter       string
	LinkedIn      string
}

// UpdateProfile overwrites the user's profile fields.
func (s *IdentityService) UpdateProfile(userID uint, in ProfileInput) (*models.User, error) {
	user, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"bio":           in.Bio,
		"qualification": in.Qualification,
		"institution":   in.Institution,
		"website":       in.Website,
		"twitter":       in.Twitter,
		"linked_in":     in.LinkedIn,
	}
	if err := s.db.Model(user).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return user, nil
}

// SetProfileImage stores a new profile picture and schedules the previous
// one for deletion. Storage failures on the old file are logged only.
func (s *IdentityService) SetProfileImage(userID uint, file *multipart.FileHeader) (*models.User, error) {
	return s.replaceUserFile(userID, file, "profile_image")
}

// SetSignatureFile stores a new signature image, same replacement rules as
// the profile picture.
func (s *IdentityService) SetSignatureFile(userID uint, file *multipart.FileHeader) (*models.User, error) {
	return s.replaceUserFile(userID, file, "signature_file")
}

func (s *IdentityService) replaceUserFile(userID uint, file *multipart.FileHeader, column string) (*models.User, error) {
	user, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}

	stored, err := s.files.Save(file)
	if err != nil {
		return nil, fmt.Errorf("save upload: %w", err)
	}

	previous := user.ProfileImage
	if column == "signature_file" {
		previous = user.SignatureFile
	}

	if err := s.db.Model(user).Update(column, stored).Error; err != nil {
		return nil, fmt.Errorf("update %s: %w", column, err)
	}

	if previous != "" && previous != "default.jpg" {
		if err := s.files.Delete(previous); err != nil {
			log.Printf("Error deleting replaced file %s: %v", previous, err)
		}
	}
	return user, nil
}

// RequestPasswordReset reports success whether or not the email is known,
// so the endpoint cannot be used to enumerate accounts. A reset link is
// only sent when a matching user exists.
func (s *IdentityService) RequestPasswordReset(email string) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return
	}

	token := s.signer.Sign(user.ID)
	resetURL := fmt.Sprintf("%s/auth/reset-password?token=%s", s.cfg.BaseURL, token)
	mailer.SendPasswordResetEmail(s.mail, user.Email, user.Username, resetURL)
}

// ResetPassword verifies the signed token and overwrites the password hash.
func (s *IdentityService) ResetPassword(token, newPassword string) error {
	maxAge := time.Duration(s.cfg.ResetTokenMaxAge) * time.Second
	userID, err := s.signer.Verify(token, maxAge)
	if err != nil {
		return ErrInvalidToken
	}

	user, err := s.GetUser(userID)
	if err != nil {
		return ErrInvalidToken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.cfg.SaltRound)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.db.Model(user).Update("password_hash", string(hashed)).Error
}

// RequestEmailChange stores a pending new email plus a 6-digit code and
// mails the code to the new address.
func (s *IdentityService) RequestEmailChange(userID uint, newEmail string) error {
	user, err := s.GetUser(userID)
	if err != nil {
		return err
	}

	if newEmail == user.Email {
		return ErrSameEmail
	}
	if err := s.db.Where("email = ? AND id <> ?", newEmail, userID).First(&models.User{}).Error; err == nil {
		return ErrEmailTaken
	}

	code := utils.GenerateOTP()
	now := NowFunc()
	updates := map[string]interface{}{
		"pending_email":        newEmail,
		"email_change_code":    code,
		"email_change_sent_at": &now,
	}
	if err := s.db.Model(user).Updates(updates).Error; err != nil {
		return fmt.Errorf("store email change request: %w", err)
	}

	mailer.SendEmailChangeCode(s.mail, newEmail, user.Username, code)
	return nil
}

// ConfirmEmailChange swaps in the pending email when the code matches and
// clears the transient state in the same update.
func (s *IdentityService) ConfirmEmailChange(userID uint, code string) (*models.User, error) {
	user, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}

	if user.EmailChangeCode == "" || user.PendingEmail == "" || code != user.EmailChangeCode {
		return nil, ErrInvalidCode
	}

	updates := map[string]interface{}{
		"email":                user.PendingEmail,
		"pending_email":        "",
		"email_change_code":    "",
		"email_change_sent_at": nil,
	}
	if err := s.db.Model(user).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("confirm email change: %w", err)
	}

	user.Email = user.PendingEmail
	user.PendingEmail = ""
	user.EmailChangeCode = ""
	user.EmailChangeSentAt = nil
	return user, nil
}
