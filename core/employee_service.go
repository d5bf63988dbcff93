package core

import (
	"context"
	"errors"
	"fmt"
	"log"
)

// ErrEmployeeInvalid wraps field validation failures on create/update.
var ErrEmployeeInvalid = errors.New("invalid employee")

func validateEmployee(e Employee) error {
	if len(e.Name) < 1 || len(e.Name) > 50 {
		return fmt.Errorf("%w: name must be between 1 and 50 characters", ErrEmployeeInvalid)
	}
	if e.Salary <= 0 {
		return fmt.Errorf("%w: salary must be positive", ErrEmployeeInvalid)
	}
	if len(e.Department) < 1 || len(e.Department) > 50 {
		return fmt.Errorf("%w: department must be between 1 and 50 characters", ErrEmployeeInvalid)
	}
	return nil
}

// EmployeeService implements the employee CRUD operations with a
// read-through cache in front of the repository. The cache is optional;
// a nil cache means every read hits the repository.
type EmployeeService struct {
	repo  EmployeeRepository
	cache EmployeeCache
}

func NewEmployeeService(repo EmployeeRepository, cache EmployeeCache) *EmployeeService {
	return &EmployeeService{repo: repo, cache: cache}
}

func (s *EmployeeService) List(ctx context.Context) ([]Employee, error) {
	return s.repo.List(ctx)
}

func (s *EmployeeService) Get(ctx context.Context, id int64) (*Employee, error) {
	if s.cache != nil {
		if e, ok := s.cache.Get(ctx, id); ok {
			return e, nil
		}
	}
	e, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Put(ctx, *e)
	}
	return e, nil
}

func (s *EmployeeService) Create(ctx context.Context, e Employee) (int64, error) {
	if err := validateEmployee(e); err != nil {
		return 0, err
	}
	id, err := s.repo.Create(ctx, e)
	if err != nil {
		log.Printf("failed to save employee: %v", err)
		return 0, err
	}
	return id, nil
}

func (s *EmployeeService) Update(ctx context.Context, e Employee) error {
	if err := validateEmployee(e); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, e); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, e.ID)
	}
	return nil
}

func (s *EmployeeService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, id)
	}
	return nil
}
