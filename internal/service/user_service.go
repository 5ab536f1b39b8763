package service

import (
	"context"

	"tastebook/internal/models"
	"tastebook/internal/repository"
	"tastebook/internal/validation"
)

// UserService implements registration and profile management.
type UserService struct {
	userRepo repository.UserRepository
	auth     *AuthService
}

// RegisterInput carries the fields accepted when creating an account.
type RegisterInput struct {
	Email     string
	FirstName string
	LastName  string
	Password  string
	Phone     string
	ImageURL  string
}

// UpdateProfileInput carries the fields accepted when updating the caller's account.
// Empty fields are left untouched.
type UpdateProfileInput struct {
	UserID    uint
	FirstName string
	LastName  string
	Phone     string
	Password  string
	ImageURL  string
}

// NewUserService returns a UserService backed by the given repository.
func NewUserService(userRepo repository.UserRepository, auth *AuthService) *UserService {
	return &UserService{userRepo: userRepo, auth: auth}
}

// Register validates the input, hashes the password and persists the user.
// The stored record never contains the plaintext password.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateName("first_name", in.FirstName); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateName("last_name", in.LastName); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePhone(in.Phone); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	hashed, err := s.auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Password:  hashed,
		Phone:     in.Phone,
		ImageURL:  in.ImageURL,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Profile loads the caller's account together with their posts and recipes.
func (s *UserService) Profile(ctx context.Context, userID uint) (*models.User, error) {
	return s.userRepo.GetByIDWithContent(ctx, userID)
}

// UpdateProfile applies the non-empty fields to the caller's own account.
// A password change is re-hashed before it is stored.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) error {
	fields := map[string]interface{}{}

	if in.FirstName != "" {
		if err := validation.ValidateName("first_name", in.FirstName); err != nil {
			return models.NewValidationError(err.Error())
		}
		fields["first_name"] = in.FirstName
	}
	if in.LastName != "" {
		if err := validation.ValidateName("last_name", in.LastName); err != nil {
			return models.NewValidationError(err.Error())
		}
		fields["last_name"] = in.LastName
	}
	if in.Phone != "" {
		if err := validation.ValidatePhone(in.Phone); err != nil {
			return models.NewValidationError(err.Error())
		}
		fields["phone"] = in.Phone
	}
	if in.Password != "" {
		if err := validation.ValidatePassword(in.Password); err != nil {
			return models.NewValidationError(err.Error())
		}
		hashed, err := s.auth.HashPassword(in.Password)
		if err != nil {
			return err
		}
		fields["password"] = hashed
	}
	if in.ImageURL != "" {
		fields["image_url"] = in.ImageURL
	}

	if len(fields) == 0 {
		return models.NewValidationError("No fields to update")
	}

	return s.userRepo.Update(ctx, in.UserID, fields)
}
