package testutil

import (
	"context"

	"github.com/garagelog/garagelog-backend/internal/domain"
	"github.com/garagelog/garagelog-backend/internal/identity"
)

// MockVerifier is a mock implementation of identity.Verifier. Tokens map to
// the subjects they attest to; unknown tokens fail verification.
type MockVerifier struct {
	Subjects map[string]*identity.Subject
}

// NewMockVerifier creates a new MockVerifier
func NewMockVerifier() *MockVerifier {
	return &MockVerifier{Subjects: make(map[string]*identity.Subject)}
}

// Verify resolves the token to a subject or fails as the provider would
func (m *MockVerifier) Verify(ctx context.Context, token string) (*identity.Subject, error) {
	if subject, ok := m.Subjects[token]; ok {
		return subject, nil
	}
	return nil, domain.ErrInvalidToken
}

// MockUserRepository is a mock implementation of domain.UserRepository
type MockUserRepository struct {
	Users  map[string]*domain.User
	NextID int32
}

// NewMockUserRepository creates a new MockUserRepository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{Users: make(map[string]*domain.User), NextID: 1}
}

// GetByFirebaseUID retrieves a user by Firebase UID
func (m *MockUserRepository) GetByFirebaseUID(ctx context.Context, firebaseUID string) (*domain.User, error) {
	if user, ok := m.Users[firebaseUID]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// CreateOrGet returns the existing user for the UID or inserts a new row
func (m *MockUserRepository) CreateOrGet(ctx context.Context, user *domain.User) (*domain.User, error) {
	if existing, ok := m.Users[user.FirebaseUID]; ok {
		return existing, nil
	}
	created := *user
	created.ID = m.NextID
	m.NextID++
	m.Users[created.FirebaseUID] = &created
	return &created, nil
}

// MockVehicleRepository is a mock implementation of domain.VehicleRepository
type MockVehicleRepository struct {
	Vehicles map[int32]*domain.Vehicle
	Order    []int32
	NextID   int32
	Err      error
}

// NewMockVehicleRepository creates a new MockVehicleRepository
func NewMockVehicleRepository() *MockVehicleRepository {
	return &MockVehicleRepository{Vehicles: make(map[int32]*domain.Vehicle), NextID: 1}
}

// Create inserts a new vehicle
func (m *MockVehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	created := *vehicle
	created.ID = m.NextID
	m.NextID++
	m.Vehicles[created.ID] = &created
	m.Order = append(m.Order, created.ID)
	return &created, nil
}

// GetByUserID retrieves all vehicles owned by a user
func (m *MockVehicleRepository) GetByUserID(ctx context.Context, userID int32) ([]*domain.Vehicle, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	vehicles := []*domain.Vehicle{}
	for _, id := range m.Order {
		if v, ok := m.Vehicles[id]; ok && v.UserID == userID {
			vehicles = append(vehicles, v)
		}
	}
	return vehicles, nil
}

// Update replaces every mutable field of the vehicle
func (m *MockVehicleRepository) Update(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	existing, ok := m.Vehicles[vehicle.ID]
	if !ok {
		return nil, domain.ErrVehicleNotFound
	}
	existing.Make = vehicle.Make
	existing.Model = vehicle.Model
	existing.Year = vehicle.Year
	existing.LicensePlate = vehicle.LicensePlate
	existing.Color = vehicle.Color
	existing.Category = vehicle.Category
	return existing, nil
}

// Delete removes the vehicle and returns the deleted row
func (m *MockVehicleRepository) Delete(ctx context.Context, id int32) (*domain.Vehicle, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	vehicle, ok := m.Vehicles[id]
	if !ok {
		return nil, domain.ErrVehicleNotFound
	}
	delete(m.Vehicles, id)
	for i, vid := range m.Order {
		if vid == id {
			m.Order = append(m.Order[:i], m.Order[i+1:]...)
			break
		}
	}
	return vehicle, nil
}

// MockJobRepository is a mock implementation of domain.JobRepository. Update
// applies the same set-reconciling semantics as the real repository: parts
// carrying an id are updated, parts without one are inserted, persisted
// parts absent from the request are deleted, and the total is recomputed
// from the parts actually stored.
type MockJobRepository struct {
	Jobs       map[int32]*domain.Job
	Order      []int32
	NextJobID  int32
	NextPartID int32
	Err        error
}

// NewMockJobRepository creates a new MockJobRepository
func NewMockJobRepository() *MockJobRepository {
	return &MockJobRepository{Jobs: make(map[int32]*domain.Job), NextJobID: 1, NextPartID: 1}
}

// Create inserts the job and all of its parts
func (m *MockJobRepository) Create(ctx context.Context, job *domain.Job) (int32, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	created := *job
	created.ID = m.NextJobID
	m.NextJobID++

	created.Parts = make([]*domain.Part, len(job.Parts))
	for i, part := range job.Parts {
		p := *part
		p.ID = m.NextPartID
		m.NextPartID++
		p.JobID = created.ID
		created.Parts[i] = &p
	}

	m.Jobs[created.ID] = &created
	m.Order = append(m.Order, created.ID)
	return created.ID, nil
}

// GetByVehicleID retrieves the vehicle's jobs with their parts
func (m *MockJobRepository) GetByVehicleID(ctx context.Context, vehicleID int32) ([]*domain.Job, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	jobs := []*domain.Job{}
	for _, id := range m.Order {
		if job, ok := m.Jobs[id]; ok && job.VehicleID == vehicleID {
			jobs = append(jobs, job)
		}
	}
	return jobs, nil
}

// Update reconciles the stored job and parts against the request
func (m *MockJobRepository) Update(ctx context.Context, job *domain.Job) error {
	if m.Err != nil {
		return m.Err
	}
	stored, ok := m.Jobs[job.ID]
	if !ok {
		return domain.ErrJobNotFound
	}

	stored.Name = job.Name
	stored.Date = job.Date
	stored.LaborCost = job.LaborCost
	stored.GeneralObservations = job.GeneralObservations

	existing := make(map[int32]*domain.Part, len(stored.Parts))
	for _, part := range stored.Parts {
		existing[part.ID] = part
	}

	incoming := make(map[int32]bool, len(job.Parts))
	for _, part := range job.Parts {
		if part.ID != 0 {
			incoming[part.ID] = true
		}
	}

	kept := []*domain.Part{}
	for _, part := range stored.Parts {
		if incoming[part.ID] {
			kept = append(kept, part)
		}
	}

	for _, part := range job.Parts {
		if part.ID != 0 {
			if target, ok := existing[part.ID]; ok {
				target.Name = part.Name
				target.Type = part.Type
				target.Cost = part.Cost
				target.Observations = part.Observations
			}
			continue
		}
		p := *part
		p.ID = m.NextPartID
		m.NextPartID++
		p.JobID = stored.ID
		kept = append(kept, &p)
	}

	stored.Parts = kept
	stored.TotalCost = domain.JobTotal(stored.LaborCost, stored.Parts)
	return nil
}

// Delete removes the job and all of its parts
func (m *MockJobRepository) Delete(ctx context.Context, id int32) error {
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.Jobs[id]; !ok {
		return domain.ErrJobNotFound
	}
	delete(m.Jobs, id)
	for i, jid := range m.Order {
		if jid == id {
			m.Order = append(m.Order[:i], m.Order[i+1:]...)
			break
		}
	}
	return nil
}
