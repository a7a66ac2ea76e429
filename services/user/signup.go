package user

import (
	"fmt"

	"handimatch/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Register creates a new client or artisan account.
func (s *DefaultUserService) Register(in RegistrationInput) (*models.User, error) {
	if in.Email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}
	if in.UserType != models.UserTypeClient && in.UserType != models.UserTypeArtisan {
		return nil, fmt.Errorf("%w: unknown user type %q", ErrInvalidInput, in.UserType)
	}

	existing, err := s.Repo.GetByEmail(in.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	newUser := &models.User{
		ID:           uuid.NewString(),
		Email:        in.Email,
		PasswordHash: string(hash),
		UserType:     in.UserType,
		Phone:        in.Phone,
	}
	switch in.UserType {
	case models.UserTypeClient:
		newUser.FirstName = in.FirstName
		newUser.LastName = in.LastName
	case models.UserTypeArtisan:
		newUser.Name = in.Name
		newUser.Profession = in.Profession
		newUser.Location = in.Location
		newUser.Description = in.Description
		newUser.Photo = in.Photo
		newUser.Stats = &models.ArtisanStats{}
	}

	if err := s.Repo.Create(newUser); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return newUser, nil
}
