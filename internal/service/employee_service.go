package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hrms-api/internal/auth"
	"github.com/hrms-api/internal/authz"
	"github.com/hrms-api/internal/calendar"
	"github.com/hrms-api/internal/domain"
	"github.com/hrms-api/internal/dto"
	"github.com/hrms-api/internal/metrics"
	"github.com/hrms-api/internal/repository"
	"github.com/hrms-api/internal/validate"
)

// AuthResult is an issued access token and the account it belongs to.
type AuthResult struct {
	Token    string
	Employee *domain.Employee
}

// EmployeeList is one page of employees.
type EmployeeList struct {
	Employees []domain.Employee
	Total     int64
	Page      repository.Page
}

// EmployeeService defines account and employee-record operations
type EmployeeService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*AuthResult, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*AuthResult, error)
	// Authenticate resolves a bearer token to the active employee behind it.
	Authenticate(ctx context.Context, token string) (domain.Actor, error)
	Me(ctx context.Context, actor domain.Actor) (*domain.Employee, error)
	UpdateProfile(ctx context.Context, actor domain.Actor, req *dto.UpdateProfileRequest) (*domain.Employee, error)
	List(ctx context.Context, actor domain.Actor, query *dto.EmployeeQuery) (*EmployeeList, error)
	Get(ctx context.Context, actor domain.Actor, id int64) (*domain.Employee, error)
	Update(ctx context.Context, actor domain.Actor, id int64, req *dto.UpdateEmployeeRequest) (*domain.Employee, error)
	ChangeRole(ctx context.Context, actor domain.Actor, id int64, req *dto.ChangeRoleRequest) (*domain.Employee, error)
	Deactivate(ctx context.Context, actor domain.Actor, id int64) error
	// EnsureAdmin creates the bootstrap admin account unless the email is taken.
	EnsureAdmin(ctx context.Context, code, email, password string) error
}

// LeaveDefaults are the balances granted to new accounts.
type LeaveDefaults struct {
	Paid float64
	Sick float64
}

type employeeService struct {
	empRepo  repository.EmployeeRepository
	tokens   *auth.TokenManager
	clock    *calendar.Clock
	defaults LeaveDefaults
	logger   *slog.Logger
}

// NewEmployeeService creates a new service instance
func NewEmployeeService(empRepo repository.EmployeeRepository, tokens *auth.TokenManager, clock *calendar.Clock, defaults LeaveDefaults, logger *slog.Logger) EmployeeService {
	return &employeeService{
		empRepo:  empRepo,
		tokens:   tokens,
		clock:    clock,
		defaults: defaults,
		logger:   logger,
	}
}

func (s *employeeService) Register(ctx context.Context, req *dto.RegisterRequest) (*AuthResult, error) {
	emp, err := s.newAccount(req.EmployeeCode, req.Email, req.Password, req.FirstName, req.LastName, domain.RoleEmployee)
	if err != nil {
		return nil, err
	}
	emp.Phone = strings.TrimSpace(req.Phone)

	if err := s.create(ctx, emp); err != nil {
		return nil, err
	}
	metrics.AuthEvents.WithLabelValues("register").Inc()

	token, err := s.tokens.Generate(emp)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return &AuthResult{Token: token, Employee: emp}, nil
}

func (s *employeeService) Login(ctx context.Context, req *dto.LoginRequest) (*AuthResult, error) {
	emp, err := s.empRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrEmployeeNotFound) {
			metrics.AuthEvents.WithLabelValues("login_failed").Inc()
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.VerifyPassword(emp.PasswordHash, req.Password) {
		metrics.AuthEvents.WithLabelValues("login_failed").Inc()
		return nil, domain.ErrInvalidCredentials
	}
	if !emp.IsActive {
		return nil, domain.ErrAccountDeactivated
	}

	now := s.clock.Now()
	emp.LastLoginAt = &now
	if err := s.empRepo.Update(ctx, emp, repository.FieldLastLoginAt); err != nil {
		return nil, fmt.Errorf("record login: %w", err)
	}
	metrics.AuthEvents.WithLabelValues("login").Inc()

	token, err := s.tokens.Generate(emp)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return &AuthResult{Token: token, Employee: emp}, nil
}

func (s *employeeService) Authenticate(ctx context.Context, token string) (domain.Actor, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return domain.Actor{}, domain.ErrUnauthenticated
	}

	emp, err := s.empRepo.GetByID(ctx, claims.EmployeeID)
	if err != nil {
		if errors.Is(err, domain.ErrEmployeeNotFound) {
			return domain.Actor{}, domain.ErrUnauthenticated
		}
		return domain.Actor{}, err
	}
	if !emp.IsActive {
		return domain.Actor{}, domain.ErrAccountDeactivated
	}

	// The stored role wins over the one in the token so role changes apply at once.
	return domain.Actor{EmployeeID: emp.ID, Role: emp.Role}, nil
}

func (s *employeeService) Me(ctx context.Context, actor domain.Actor) (*domain.Employee, error) {
	if err := authz.Authorize(actor, authz.ViewOwnProfile); err != nil {
		return nil, err
	}
	return s.empRepo.GetByID(ctx, actor.EmployeeID)
}

func (s *employeeService) UpdateProfile(ctx context.Context, actor domain.Actor, req *dto.UpdateProfileRequest) (*domain.Employee, error) {
	if err := authz.Authorize(actor, authz.UpdateOwnProfile); err != nil {
		return nil, err
	}

	emp, err := s.empRepo.GetByID(ctx, actor.EmployeeID)
	if err != nil {
		return nil, err
	}
	fields, err := applyPersonal(emp, req.FirstName, req.LastName, req.Phone, req.Address)
	if err != nil {
		return nil, err
	}

	if err := s.empRepo.Update(ctx, emp, fields...); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return emp, nil
}

func (s *employeeService) List(ctx context.Context, actor domain.Actor, query *dto.EmployeeQuery) (*EmployeeList, error) {
	if err := authz.Authorize(actor, authz.ViewEmployees); err != nil {
		return nil, err
	}

	filter := repository.EmployeeFilter{
		Search:     strings.TrimSpace(query.Search),
		Department: strings.TrimSpace(query.Department),
	}
	if query.Role != "" {
		role := domain.Role(query.Role)
		if !role.Valid() {
			return nil, domain.ErrInvalidRole
		}
		filter.Role = &role
	}
	page := Page(query.Page, query.Limit)

	employees, total, err := s.empRepo.List(ctx, filter, page)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return &EmployeeList{Employees: employees, Total: total, Page: page}, nil
}

func (s *employeeService) Get(ctx context.Context, actor domain.Actor, id int64) (*domain.Employee, error) {
	op := authz.ViewEmployees
	if id == actor.EmployeeID {
		op = authz.ViewOwnProfile
	}
	if err := authz.Authorize(actor, op); err != nil {
		return nil, err
	}
	return s.empRepo.GetByID(ctx, id)
}

func (s *employeeService) Update(ctx context.Context, actor domain.Actor, id int64, req *dto.UpdateEmployeeRequest) (*domain.Employee, error) {
	if err := authz.Authorize(actor, authz.UpdateEmployee); err != nil {
		return nil, err
	}

	emp, err := s.empRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	fields, err := applyPersonal(emp, req.FirstName, req.LastName, req.Phone, req.Address)
	if err != nil {
		return nil, err
	}

	if req.Department != nil {
		emp.Department = strings.TrimSpace(*req.Department)
		fields = append(fields, repository.FieldDepartment)
	}
	if req.Designation != nil {
		emp.Designation = strings.TrimSpace(*req.Designation)
		fields = append(fields, repository.FieldDesignation)
	}
	if req.EmploymentType != nil {
		emp.EmploymentType = *req.EmploymentType
		fields = append(fields, repository.FieldEmploymentType)
	}
	if req.DateOfJoining != nil {
		d, err := calendar.ParseDate(*req.DateOfJoining)
		if err != nil {
			return nil, err
		}
		emp.DateOfJoining = &d
		fields = append(fields, repository.FieldDateOfJoining)
	}
	if req.LeaveBalance != nil {
		b := req.LeaveBalance
		if b.Paid < 0 || b.Sick < 0 || b.Unpaid < 0 {
			return nil, domain.NewValidationError("leave balances cannot be negative")
		}
		emp.LeaveBalance = domain.LeaveBalance{Paid: b.Paid, Sick: b.Sick, Unpaid: b.Unpaid}
		fields = append(fields, repository.FieldLeaveBalance)
	}

	if err := s.empRepo.Update(ctx, emp, fields...); err != nil {
		return nil, fmt.Errorf("update employee: %w", err)
	}
	return emp, nil
}

func (s *employeeService) ChangeRole(ctx context.Context, actor domain.Actor, id int64, req *dto.ChangeRoleRequest) (*domain.Employee, error) {
	if err := authz.Authorize(actor, authz.ChangeRole); err != nil {
		return nil, err
	}

	role := domain.Role(req.Role)
	if !role.Valid() {
		return nil, domain.ErrInvalidRole
	}

	emp, err := s.empRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	emp.Role = role
	if err := s.empRepo.Update(ctx, emp, repository.FieldRole); err != nil {
		return nil, fmt.Errorf("change role: %w", err)
	}

	s.logger.Info("role changed",
		slog.Int64("employee_id", emp.ID),
		slog.String("role", string(role)),
		slog.Int64("by", actor.EmployeeID),
	)
	return emp, nil
}

func (s *employeeService) Deactivate(ctx context.Context, actor domain.Actor, id int64) error {
	if err := authz.Authorize(actor, authz.DeactivateEmployee); err != nil {
		return err
	}
	if id == actor.EmployeeID {
		return domain.ErrSelfDeactivation
	}

	emp, err := s.empRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	emp.IsActive = false
	if err := s.empRepo.Update(ctx, emp, repository.FieldIsActive); err != nil {
		return fmt.Errorf("deactivate employee: %w", err)
	}

	s.logger.Info("employee deactivated",
		slog.Int64("employee_id", emp.ID),
		slog.Int64("by", actor.EmployeeID),
	)
	return nil
}

func (s *employeeService) EnsureAdmin(ctx context.Context, code, email, password string) error {
	_, err := s.empRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrEmployeeNotFound) {
		return err
	}

	emp, err := s.newAccount(code, email, password, "Administrator", "", domain.RoleAdmin)
	if err != nil {
		return err
	}
	if err := s.create(ctx, emp); err != nil {
		return err
	}

	s.logger.Info("bootstrap admin created", slog.String("email", emp.Email))
	return nil
}

func (s *employeeService) newAccount(code, email, password, firstName, lastName string, role domain.Role) (*domain.Employee, error) {
	if !validate.EmployeeCode(code) {
		return nil, domain.ErrInvalidCode
	}
	if !validate.Email(email) {
		return nil, domain.ErrInvalidEmail
	}
	if !validate.Password(password) {
		return nil, domain.ErrWeakPassword
	}
	if !validate.Name(firstName) {
		return nil, domain.ErrInvalidName
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	joined := s.clock.Today()
	return &domain.Employee{
		EmployeeCode:   strings.TrimSpace(code),
		Email:          strings.ToLower(strings.TrimSpace(email)),
		PasswordHash:   hash,
		Role:           role,
		FirstName:      strings.TrimSpace(firstName),
		LastName:       strings.TrimSpace(lastName),
		EmploymentType: "full-time",
		DateOfJoining:  &joined,
		LeaveBalance:   domain.LeaveBalance{Paid: s.defaults.Paid, Sick: s.defaults.Sick},
		IsActive:       true,
	}, nil
}

// create inserts emp, telling apart which unique key was taken.
func (s *employeeService) create(ctx context.Context, emp *domain.Employee) error {
	if _, err := s.empRepo.GetByEmail(ctx, emp.Email); err == nil {
		return domain.ErrEmailTaken
	}
	if _, err := s.empRepo.GetByCode(ctx, emp.EmployeeCode); err == nil {
		return domain.ErrCodeTaken
	}

	if err := s.empRepo.Create(ctx, emp); err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("create employee: %w", err)
	}
	return nil
}

// applyPersonal sets the supplied personal fields on emp and returns the columns it touched.
func applyPersonal(emp *domain.Employee, firstName, lastName, phone, address *string) ([]repository.EmployeeField, error) {
	var fields []repository.EmployeeField
	if firstName != nil {
		if !validate.Name(*firstName) {
			return nil, domain.ErrInvalidName
		}
		emp.FirstName = strings.TrimSpace(*firstName)
		fields = append(fields, repository.FieldFirstName)
	}
	if lastName != nil {
		emp.LastName = strings.TrimSpace(*lastName)
		fields = append(fields, repository.FieldLastName)
	}
	if phone != nil {
		emp.Phone = strings.TrimSpace(*phone)
		fields = append(fields, repository.FieldPhone)
	}
	if address != nil {
		emp.Address = strings.TrimSpace(*address)
		fields = append(fields, repository.FieldAddress)
	}
	return fields, nil
}
