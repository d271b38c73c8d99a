package sql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/tablestaff/tablestaff/internal"
	"github.com/tablestaff/tablestaff/internal/data"
	"github.com/tablestaff/tablestaff/internal/utilities"

	_ "github.com/go-sql-driver/mysql"   //import for driver support
	_ "github.com/jackc/pgx/v5/stdlib"   //import for driver support
	_ "github.com/mattn/go-sqlite3"      //import for driver support
)

const (
	tableEmployees string = "employees"
	tableSchedules string = "schedules"
	tableShifts    string = "shifts"
)

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrScheduleNotFound = errors.New("schedule not found")
)

type Store interface {
	EmployeeCreate(ctx context.Context, employeePartial data.EmployeePartial) (*data.Employee, error)
	EmployeeRead(ctx context.Context, id string) (*data.Employee, error)
	EmployeesList(ctx context.Context) ([]*data.Employee, error)
	EmployeeUpdate(ctx context.Context, id string, employeePartial data.EmployeePartial) (*data.Employee, error)
	EmployeeDelete(ctx context.Context, id string) error
	ScheduleCreate(ctx context.Context, schedulePartial data.SchedulePartial) (*data.Schedule, error)
	ScheduleRead(ctx context.Context, id string) (*data.Schedule, error)
	SchedulesList(ctx context.Context) ([]*data.Schedule, error)
	ScheduleDelete(ctx context.Context, id string) error
}

type sqlStore struct {
	sync.RWMutex
	config struct {
		Driver         string        `json:"driver"` //mysql, pgx or sqlite3
		Hostname       string        `json:"hostname"`
		Port           string        `json:"port"`
		Username       string        `json:"username"`
		Password       string        `json:"password"`
		Database       string        `json:"database"`
		File           string        `json:"file"` //sqlite3 only
		QueryTimeout   time.Duration `json:"query_timeout"`
		Migrate        bool          `json:"migrate"`
	}
	*sql.DB
	utilities.Logger
	opened bool
}

func NewStore(parameters ...any) interface {
	internal.Configurer
	internal.Opener
	Store
} {
	s := &sqlStore{}
	for _, parameter := range parameters {
		switch v := parameter.(type) {
		case utilities.Logger:
			s.Logger = v
		}
	}
	return s
}

func (s *sqlStore) Configure(envs map[string]string) error {
	s.config.Driver = "mysql"
	if databaseDriver := envs["DATABASE_DRIVER"]; databaseDriver != "" {
		s.config.Driver = databaseDriver
	}
	if databaseHost := envs["DATABASE_HOST"]; databaseHost != "" {
		s.config.Hostname = databaseHost
	}
	if databasePort := envs["DATABASE_PORT"]; databasePort != "" {
		s.config.Port = databasePort
	}
	if database := envs["DATABASE_NAME"]; database != "" {
		s.config.Database = database
	}
	if username := envs["DATABASE_USER"]; username != "" {
		s.config.Username = username
	}
	if password := envs["DATABASE_PASSWORD"]; password != "" {
		s.config.Password = password
	}
	if databaseFile := envs["DATABASE_FILE"]; databaseFile != "" {
		s.config.File = databaseFile
	}
	if _, ok := envs["DATABASE_QUERY_TIMEOUT"]; ok {
		i, _ := strconv.ParseInt(envs["DATABASE_QUERY_TIMEOUT"], 10, 64)
		s.config.QueryTimeout = time.Duration(i) * time.Second
	}
	if _, ok := envs["DATABASE_MIGRATE"]; ok {
		s.config.Migrate, _ = strconv.ParseBool(envs["DATABASE_MIGRATE"])
	}
	return nil
}

func (s *sqlStore) dataSourceName() (string, error) {
	switch s.config.Driver {
	default:
		return "", fmt.Errorf("unsupported database driver: %s", s.config.Driver)
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s)/%s", s.config.Username, s.config.Password,
			net.JoinHostPort(s.config.Hostname, s.config.Port), s.config.Database), nil
	case "pgx":
		return fmt.Sprintf("postgres://%s:%s@%s/%s", s.config.Username, s.config.Password,
			net.JoinHostPort(s.config.Hostname, s.config.Port), s.config.Database), nil
	case "sqlite3":
		if s.config.File == "" {
			//KIM: the shared cache keeps every pooled connection on the
			// same in-memory database
			return "file::memory:?cache=shared", nil
		}
		return s.config.File, nil
	}
}

func (s *sqlStore) Open(ctx context.Context) error {
	dataSourceName, err := s.dataSourceName()
	if err != nil {
		return err
	}
	db, err := sql.Open(s.config.Driver, dataSourceName)
	if err != nil {
		return err
	}
	if err := db.Ping(); err != nil {
		return err
	}
	s.DB = db
	if s.config.Migrate {
		if err := s.migrate(ctx); err != nil {
			return err
		}
	}
	s.opened = true
	return nil
}

func (s *sqlStore) Close(ctx context.Context) error {
	if !s.opened {
		return nil
	}
	if err := s.DB.Close(); err != nil {
		s.Error(ctx, "error while closing sql: %s", err)
	}
	return nil
}

func (s *sqlStore) EmployeeCreate(ctx context.Context, employeePartial data.EmployeePartial) (*data.Employee, error) {
	var name, position, department, hireDate string
	var wage int64

	ctx, cancel := s.queryContext(ctx)
	defer cancel()

	if employeePartial.Name != nil {
		name = *employeePartial.Name
	}
	if employeePartial.Position != nil {
		position = *employeePartial.Position
	}
	if employeePartial.Department != nil {
		department = *employeePartial.Department
	}
	if employeePartial.HireDate != nil {
		hireDate = *employeePartial.HireDate
	}
	if employeePartial.Wage != nil {
		wage = *employeePartial.Wage
	}
	id := internal.GenerateId()
	//KIM: salary isn't part of the create contract, so every stored row
	// starts at zero
	query := s.rebind(fmt.Sprintf(`INSERT INTO %s (id, name, position, department,
		hire_date, salary, wage) VALUES (?, ?, ?, ?, ?, 0, ?)`, tableEmployees))
	if _, err := s.ExecContext(ctx, query, id, name, position,
		department, hireDate, wage); err != nil {
		return nil, err
	}
	return s.EmployeeRead(ctx, id)
}

func (s *sqlStore) EmployeeRead(ctx context.Context, id string) (*data.Employee, error) {
	ctx, cancel := s.queryContext(ctx)
	defer cancel()
	query := s.rebind(fmt.Sprintf(`SELECT id, name, position, department, hire_date,
		salary, wage FROM %s WHERE id = ?`, tableEmployees))
	row := s.QueryRowContext(ctx, query, id)
	employee, err := employeeScan(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	return employee, nil
}

func (s *sqlStore) EmployeesList(ctx context.Context) ([]*data.Employee, error) {
	var employees []*data.Employee

	ctx, cancel := s.queryContext(ctx)
	defer cancel()

	query := fmt.Sprintf(`SELECT id, name, position, department, hire_date,
		salary, wage FROM %s`, tableEmployees)
	rows, err := s.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		employee, err := employeeScan(rows.Scan)
		if err != nil {
			return nil, err
		}
		employees = append(employees, employee)
	}
	return employees, rows.Err()
}

func (s *sqlStore) EmployeeUpdate(ctx context.Context, id string, employeePartial data.EmployeePartial) (*data.Employee, error) {
	var updates []string
	var args []any

	ctx, cancel := s.queryContext(ctx)
	defer cancel()

	if employeePartial.Name != nil {
		args = append(args, *employeePartial.Name)
		updates = append(updates, "name = ?")
	}
	if employeePartial.Position != nil {
		args = append(args, *employeePartial.Position)
		updates = append(updates, "position = ?")
	}
	if employeePartial.Department != nil {
		args = append(args, *employeePartial.Department)
		updates = append(updates, "department = ?")
	}
	if employeePartial.HireDate != nil {
		args = append(args, *employeePartial.HireDate)
		updates = append(updates, "hire_date = ?")
	}
	if employeePartial.Wage != nil {
		args = append(args, *employeePartial.Wage)
		updates = append(updates, "wage = ?")
	}
	if len(updates) <= 0 {
		return s.EmployeeRead(ctx, id)
	}
	query := s.rebind(fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", tableEmployees,
		strings.Join(updates, ",")))
	args = append(args, id)
	result, err := s.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		//KIM: an update matching zero rows is indistinguishable from a
		// no-op update in mysql, so confirm via read
		if _, err := s.EmployeeRead(ctx, id); err != nil {
			return nil, err
		}
	}
	return s.EmployeeRead(ctx, id)
}

func (s *sqlStore) EmployeeDelete(ctx context.Context, id string) error {
	ctx, cancel := s.queryContext(ctx)
	defer cancel()
	query := s.rebind(fmt.Sprintf("DELETE FROM %s WHERE id = ?", tableEmployees))
	result, err := s.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrEmployeeNotFound
	}
	return nil
}

func (s *sqlStore) ScheduleCreate(ctx context.Context, schedulePartial data.SchedulePartial) (*data.Schedule, error) {
	var startTime, endTime int64

	ctx, cancel := s.queryContext(ctx)
	defer cancel()

	if schedulePartial.StartTime != nil {
		startTime = *schedulePartial.StartTime
	}
	if schedulePartial.EndTime != nil {
		endTime = *schedulePartial.EndTime
	}
	id, now := internal.GenerateId(), time.Now().UnixMilli()
	query := s.rebind(fmt.Sprintf(`INSERT INTO %s (id, start_time, end_time,
		created_at, updated_at, published) VALUES (?, ?, ?, ?, ?, ?)`, tableSchedules))
	if _, err := s.ExecContext(ctx, query, id, startTime, endTime,
		now, now, false); err != nil {
		return nil, err
	}
	return s.ScheduleRead(ctx, id)
}

func (s *sqlStore) ScheduleRead(ctx context.Context, id string) (*data.Schedule, error) {
	ctx, cancel := s.queryContext(ctx)
	defer cancel()
	query := s.rebind(fmt.Sprintf(`SELECT id, start_time, end_time, created_at,
		updated_at, published FROM %s WHERE id = ?`, tableSchedules))
	row := s.QueryRowContext(ctx, query, id)
	schedule, err := scheduleScan(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}
	return schedule, nil
}

func (s *sqlStore) SchedulesList(ctx context.Context) ([]*data.Schedule, error) {
	var schedules []*data.Schedule

	ctx, cancel := s.queryContext(ctx)
	defer cancel()

	query := fmt.Sprintf(`SELECT id, start_time, end_time, created_at,
		updated_at, published FROM %s ORDER BY start_time ASC`, tableSchedules)
	rows, err := s.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		schedule, err := scheduleScan(rows.Scan)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, schedule)
	}
	return schedules, rows.Err()
}

func (s *sqlStore) ScheduleDelete(ctx context.Context, id string) error {
	ctx, cancel := s.queryContext(ctx)
	defer cancel()
	query := s.rebind(fmt.Sprintf("DELETE FROM %s WHERE id = ?", tableSchedules))
	result, err := s.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrScheduleNotFound
	}
	return nil
}
