package repository

import (
	"github.com/fsauth/gathering-api/internal/models"
)

// GroupRepository defines the interface for group data access
type GroupRepository interface {
	// Create creates a new group
	Create(group *models.Group) error

	// FindByID finds a group by ID
	FindByID(id uint64) (*models.Group, error)

	// List returns all groups with their member counts, ordered by name
	List() ([]GroupWithMemberCount, error)

	// Update updates a group
	Update(group *models.Group) error

	// Delete deletes a group after detaching its members
	Delete(id uint64) error
}

// GroupWithMemberCount pairs a group with the number of members
// referencing it.
type GroupWithMemberCount struct {
	models.Group
	MemberCount int64 `json:"member_count"`
}

// MemberRepository defines the interface for member data access
type MemberRepository interface {
	// Create creates a new member
	Create(member *models.Member) error

	// FindByID finds a member by ID with its group preloaded
	FindByID(id uint64) (*models.Member, error)

	// List returns members ordered by name, optionally scoped to a group
	List(groupID *uint64) ([]models.Member, error)

	// Update updates a member
	Update(member *models.Member) error

	// Delete soft deletes a member
	Delete(id uint64) error
}

// GatheringRepository defines the interface for gathering data access
type GatheringRepository interface {
	// Create creates a new gathering
	Create(gathering *models.Gathering) error

	// FindByID finds a gathering by ID
	FindByID(id uint64) (*models.Gathering, error)

	// List returns all gatherings, most recent date first
	List() ([]models.Gathering, error)

	// ListActive returns active gatherings, soonest date first
	ListActive() ([]models.Gathering, error)

	// Update updates a gathering
	Update(gathering *models.Gathering) error

	// Delete deletes a gathering and its registrations
	Delete(id uint64) error
}

// RegistrationFilter holds filtering options for listing registrations
type RegistrationFilter struct {
	GatheringID *uint64
	MemberID    *uint64
	Status      *models.RegistrationStatus
	Page        int
	PageSize    int
}

// RegistrationRepository defines the interface for registration data
// access. Admit and UpdateStatus are the only paths that mutate the
// registration set for a gathering; both serialize on the gathering row.
type RegistrationRepository interface {
	// Admit atomically checks uniqueness and capacity for the pair and
	// creates (or revives) the registration. Returns
	// ErrGatheringMissing, ErrDuplicateRegistration, ErrQuotaExceeded
	// or ErrRegistrationConflict.
	Admit(reg *models.Registration) error

	// FindByID finds a registration with optional preloading
	FindByID(id uint64, preload ...string) (*models.Registration, error)

	// FindActive finds the non-cancelled registration for a
	// (gathering, member) pair, if any
	FindActive(gatheringID, memberID uint64) (*models.Registration, error)

	// CountConfirmed counts confirmed registrations for a gathering
	CountConfirmed(gatheringID uint64) (int64, error)

	// CountActiveByMember counts a member's non-cancelled registrations
	CountActiveByMember(memberID uint64) (int64, error)

	// List retrieves registrations with filtering and pagination
	List(filter RegistrationFilter) ([]models.Registration, int64, error)

	// UpdateStatus transitions a registration's status, re-checking
	// capacity under the gathering lock when promoting to confirmed
	UpdateStatus(id uint64, status models.RegistrationStatus) (*models.Registration, error)

	// Delete soft deletes a registration
	Delete(id uint64) error
}

// UserRepository defines the interface for dashboard account data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// List returns all users ordered by name
	List() ([]models.User, error)

	// Update updates a user
	Update(user *models.User) error

	// UpdateLastLogin stamps the user's last successful login
	UpdateLastLogin(id uint64) error

	// Delete soft deletes a user
	Delete(id uint64) error
}
