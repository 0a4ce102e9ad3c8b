package seller

import (
	"regexp"
	"strings"
	"time"

	"qr-seat-reservation/internal/pkg/errs"

	"github.com/google/uuid"
)

const (
	MaxNameRunes        = 100
	MaxAddressRunes     = 255
	MaxDescriptionRunes = 500
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^\+?[0-9][0-9 \-]{6,18}$`)
)

type Seller struct {
	id          uuid.UUID
	name        string
	address     string
	email       string
	phone       string
	description string
	createdAt   time.Time
	updatedAt   time.Time
}

// NewSeller requires a name; email and phone are optional but checked when given.
func NewSeller(name, address, email, phone, description string, now time.Time) (*Seller, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errs.Detailf(errs.ErrValidation, "seller name is required")
	}
	if len([]rune(name)) > MaxNameRunes {
		return nil, errs.Detailf(errs.ErrValidation, "seller name exceeds %d characters", MaxNameRunes)
	}
	address = strings.TrimSpace(address)
	if len([]rune(address)) > MaxAddressRunes {
		return nil, errs.Detailf(errs.ErrValidation, "address exceeds %d characters", MaxAddressRunes)
	}
	email = strings.TrimSpace(email)
	if email != "" && !emailRegex.MatchString(email) {
		return nil, errs.Detailf(errs.ErrValidation, "invalid email %q", email)
	}
	phone = strings.TrimSpace(phone)
	if phone != "" && !phoneRegex.MatchString(phone) {
		return nil, errs.Detailf(errs.ErrValidation, "invalid phone number %q", phone)
	}
	description = strings.TrimSpace(description)
	if len([]rune(description)) > MaxDescriptionRunes {
		return nil, errs.Detailf(errs.ErrValidation, "description exceeds %d characters", MaxDescriptionRunes)
	}

	return &Seller{
		id:          uuid.Must(uuid.NewV7()),
		name:        name,
		address:     address,
		email:       email,
		phone:       phone,
		description: description,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructSeller(id uuid.UUID, name, address, email, phone, description string, createdAt, updatedAt time.Time) *Seller {
	return &Seller{
		id:          id,
		name:        name,
		address:     address,
		email:       email,
		phone:       phone,
		description: description,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (s *Seller) ID() uuid.UUID        { return s.id }
func (s *Seller) Name() string         { return s.name }
func (s *Seller) Address() string      { return s.address }
func (s *Seller) Email() string        { return s.email }
func (s *Seller) Phone() string        { return s.phone }
func (s *Seller) Description() string  { return s.description }
func (s *Seller) CreatedAt() time.Time { return s.createdAt }
func (s *Seller) UpdatedAt() time.Time { return s.updatedAt }
