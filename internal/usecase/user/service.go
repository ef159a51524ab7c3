package user

import (
	"context"
	"fmt"
	"time"

	"profile-api/internal/domain/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Patch carries the fields of a partial update. Nil means "leave as is";
// a non-nil list replaces the stored list wholesale.
type Patch struct {
	Name         *string
	Email        *string
	Age          *int
	Phone        *string
	LinkedInURL  *string
	GithubURL    *string
	PortfolioURL *string

	Experiences *[]user.Experience
	Projects    *[]user.Project
	Education   *[]user.Education
	Skills      *[]user.Skill
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func WithIDGenerator(gen func() uuid.UUID) Option {
	return func(s *Service) {
		if gen != nil {
			s.newID = gen
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

type Service struct {
	users user.Repository
	now   func() time.Time
	newID func() uuid.UUID
	log   *zap.Logger
}

func NewService(users user.Repository, opts ...Option) *Service {
	s := &Service{
		users: users,
		now:   time.Now,
		newID: uuid.New,
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates the candidate, assigns fresh ids to the user and every
// embedded item, stamps both timestamps and stores it.
func (s *Service) Create(ctx context.Context, in user.User) (user.User, error) {
	u := in
	user.Normalize(&u)
	if err := user.Validate(u); err != nil {
		return user.User{}, err
	}

	u.ID = s.newID()
	s.assignItemIDs(&u, user.User{})
	now := s.timestamp()
	u.CreatedAt = now
	u.UpdatedAt = now

	if err := s.users.Create(ctx, u); err != nil {
		return user.User{}, fmt.Errorf("create user: %w", err)
	}

	s.log.Debug("user created", zap.String("id", u.ID.String()))
	return u, nil
}

func (s *Service) List(ctx context.Context) ([]user.User, error) {
	items, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	if items == nil {
		items = []user.User{}
	}
	return items, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (user.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return user.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// Update merges the patch into the stored document and re-validates the
// merged result as a whole. Concurrent updates of the same id are last
// write wins.
func (s *Service) Update(ctx context.Context, id uuid.UUID, p Patch) (user.User, error) {
	current, err := s.users.GetByID(ctx, id)
	if err != nil {
		return user.User{}, fmt.Errorf("update user: %w", err)
	}

	next := merge(current, p)
	user.Normalize(&next)
	if err := user.Validate(next); err != nil {
		return user.User{}, err
	}

	next.ID = current.ID
	next.CreatedAt = current.CreatedAt
	next.UpdatedAt = s.timestamp()
	s.assignItemIDs(&next, current)

	if err := s.users.Update(ctx, next); err != nil {
		return user.User{}, fmt.Errorf("update user: %w", err)
	}

	s.log.Debug("user updated", zap.String("id", next.ID.String()))
	return next, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	s.log.Debug("user deleted", zap.String("id", id.String()))
	return nil
}

// timestamp drops sub-millisecond precision so a stored record reads back
// equal to what Create returned.
func (s *Service) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

func (s *Service) assignItemIDs(next *user.User, prev user.User) {
	reconcileIDs(next.Experiences, prev.Experiences, func(e *user.Experience) *uuid.UUID { return &e.ID }, s.newID)
	reconcileIDs(next.Projects, prev.Projects, func(p *user.Project) *uuid.UUID { return &p.ID }, s.newID)
	reconcileIDs(next.Education, prev.Education, func(e *user.Education) *uuid.UUID { return &e.ID }, s.newID)
	reconcileIDs(next.Skills, prev.Skills, func(sk *user.Skill) *uuid.UUID { return &sk.ID }, s.newID)
}

// reconcileIDs keeps an item's id only if it names an item already stored
// in the same list; everything else gets a new one. Duplicated ids keep the
// first occurrence.
func reconcileIDs[T any](next, prev []T, idOf func(*T) *uuid.UUID, newID func() uuid.UUID) {
	known := make(map[uuid.UUID]struct{}, len(prev))
	for i := range prev {
		known[*idOf(&prev[i])] = struct{}{}
	}

	seen := make(map[uuid.UUID]struct{}, len(next))
	for i := range next {
		id := idOf(&next[i])
		if *id != uuid.Nil {
			if _, ok := known[*id]; ok {
				if _, dup := seen[*id]; !dup {
					seen[*id] = struct{}{}
					continue
				}
			}
		}
		*id = newID()
	}
}

func merge(u user.User, p Patch) user.User {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Age != nil {
		age := *p.Age
		u.Age = &age
	}
	if p.Phone != nil {
		phone := *p.Phone
		u.Phone = &phone
	}
	if p.LinkedInURL != nil {
		u.LinkedInURL = *p.LinkedInURL
	}
	if p.GithubURL != nil {
		u.GithubURL = *p.GithubURL
	}
	if p.PortfolioURL != nil {
		u.PortfolioURL = *p.PortfolioURL
	}
	if p.Experiences != nil {
		u.Experiences = append([]user.Experience{}, (*p.Experiences)...)
	}
	if p.Projects != nil {
		u.Projects = append([]user.Project{}, (*p.Projects)...)
	}
	if p.Education != nil {
		u.Education = append([]user.Education{}, (*p.Education)...)
	}
	if p.Skills != nil {
		u.Skills = append([]user.Skill{}, (*p.Skills)...)
	}
	return u
}
