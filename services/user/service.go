package user

import (
	"errors"
	"fmt"
	"strings"
	"time"

	userRepo "evcare/database/repository/user"
	"evcare/models"
	"evcare/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 72 * time.Hour

var (
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrNotVerified        = errors.New("account email is not verified")
)

// DefaultUserService is the production UserService implementation.
type DefaultUserService struct {
	Repo userRepo.UserRepository
}

func (s *DefaultUserService) Register(data models.UserRegistrationData) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(data.Email))

	existing, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &models.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		FullName:     data.FullName,
		PhoneNumber:  data.PhoneNumber,
		Role:         models.RoleCustomer,
		Verified:     false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := utils.MarkPendingVerification(user.ID, email); err != nil {
		utils.GetLogger().Warn("Failed to mark pending verification", zap.Error(err))
	}
	if err := utils.InitiateEmailOTP(email); err != nil {
		return nil, err
	}

	utils.GetLogger().Info("User registered", zap.String("userID", user.ID))
	return user, nil
}

func (s *DefaultUserService) VerifyEmail(email, otp string, device models.Device) (*models.AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if err := utils.VerifyEmailOTP(email, otp); err != nil {
		return nil, err
	}

	user.Verified = true
	resp, err := s.signIn(user, device)
	if err != nil {
		return nil, err
	}
	utils.ClearPendingVerification(user.ID)
	return resp, nil
}

func (s *DefaultUserService) ResendOTP(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.Repo.GetByEmail(email)
	if err != nil {
		return fmt.Errorf("failed to fetch user: %w", err)
	}
	if user == nil {
		return ErrUserNotFound
	}
	if user.Verified {
		return errors.New("account is already verified")
	}
	return utils.InitiateEmailOTP(email)
}

func (s *DefaultUserService) Login(email, password string, device models.Device) (*models.AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.Verified {
		return nil, ErrNotVerified
	}

	return s.signIn(user, device)
}

func (s *DefaultUserService) Logout(userID, deviceID string) error {
	user, err := s.Repo.GetByID(userID)
	if err != nil {
		return fmt.Errorf("failed to fetch user: %w", err)
	}
	if user == nil {
		return ErrUserNotFound
	}

	found := false
	for i := range user.Devices {
		if user.Devices[i].DeviceID == deviceID {
			user.Devices[i].TokenHash = ""
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("device %s is not registered for this account", deviceID)
	}

	user.UpdatedAt = time.Now()
	if err := s.Repo.Update(user); err != nil {
		utils.GetLogger().Error("Failed to revoke auth token", zap.String("userID", userID), zap.Error(err))
		return fmt.Errorf("failed to log out, please try again")
	}
	return nil
}

func (s *DefaultUserService) ForgotPassword(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.Repo.GetByEmail(email)
	if err != nil {
		return fmt.Errorf("failed to fetch user: %w", err)
	}
	if user == nil {
		// Do not reveal whether the email is registered.
		return nil
	}
	return utils.InitiateEmailOTP(email)
}

func (s *DefaultUserService) ResetPassword(email, otp, newPassword string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.Repo.GetByEmail(email)
	if err != nil {
		return fmt.Errorf("failed to fetch user: %w", err)
	}
	if user == nil {
		return ErrUserNotFound
	}

	if err := utils.VerifyEmailOTP(email, otp); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.Repo.UpdateSetDocument(user.ID, bson.M{
		"passwordHash": string(hash),
		"updatedAt":    time.Now(),
	})
}

func (s *DefaultUserService) GetProfile(userID string) (*models.User, error) {
	return s.Repo.GetByID(userID)
}

// allowedProfileFields guards partial profile updates.
var allowedProfileFields = map[string]bool{
	"fullName":    true,
	"phoneNumber": true,
}

func (s *DefaultUserService) UpdateProfile(userID string, updates map[string]interface{}) (*models.User, error) {
	doc := bson.M{}
	for field, value := range updates {
		if allowedProfileFields[field] {
			doc[field] = value
		}
	}
	if len(doc) == 0 {
		return nil, errors.New("no updatable fields provided")
	}
	doc["updatedAt"] = time.Now()

	if err := s.Repo.UpdateSetDocument(userID, doc); err != nil {
		return nil, err
	}
	return s.Repo.GetByID(userID)
}

func (s *DefaultUserService) RegisterDeviceToken(userID, deviceID, fcmToken string) error {
	user, err := s.Repo.GetByID(userID)
	if err != nil {
		return err
	}
	for i := range user.Devices {
		if user.Devices[i].DeviceID == deviceID {
			user.Devices[i].FCMToken = fcmToken
			user.Devices[i].LastLogin = time.Now()
			return s.Repo.Update(user)
		}
	}
	return fmt.Errorf("device %s is not registered for this account", deviceID)
}

// signIn issues a token bound to the device and records the device on the
// user record. Tokens are only honored while the device holds their hash, so
// clearing the hash on logout revokes them.
func (s *DefaultUserService) signIn(user *models.User, device models.Device) (*models.AuthResponse, error) {
	token, err := utils.GenerateToken(user.ID, user.Role, tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	if device.DeviceID == "" {
		device.DeviceID = uuid.New().String()
	}
	device.TokenHash = utils.HashToken(token)
	s.recordDevice(user, device)

	user.UpdatedAt = time.Now()
	if err := s.Repo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to record login device: %w", err)
	}

	return &models.AuthResponse{Token: token, DeviceID: device.DeviceID, User: user}, nil
}

// recordDevice upserts the signing-in device on the user record.
func (s *DefaultUserService) recordDevice(user *models.User, device models.Device) {
	device.LastLogin = time.Now()
	for i := range user.Devices {
		if user.Devices[i].DeviceID == device.DeviceID {
			if device.FCMToken == "" {
				device.FCMToken = user.Devices[i].FCMToken
			}
			user.Devices[i] = device
			return
		}
	}
	user.Devices = append(user.Devices, device)
}
