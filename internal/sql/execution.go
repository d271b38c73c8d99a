package sql

import (
	"context"
	"fmt"
	"strings"

	"github.com/tablestaff/tablestaff/internal/data"
)

func (s *sqlStore) queryContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.config.QueryTimeout > 0 {
		return context.WithTimeout(ctx, s.config.QueryTimeout)
	}
	return context.WithCancel(ctx)
}

// rebind rewrites mysql-style placeholders into the numbered form pgx
// expects; mysql and sqlite3 share the ? form.
func (s *sqlStore) rebind(query string) string {
	if s.config.Driver != "pgx" {
		return query
	}
	var b strings.Builder

	n := 0
	for _, r := range query {
		if r != '?' {
			b.WriteRune(r)
			continue
		}
		n++
		b.WriteString(fmt.Sprintf("$%d", n))
	}
	return b.String()
}

func employeeScan(scanFx func(...any) error) (*data.Employee, error) {
	employee := new(data.Employee)
	if err := scanFx(
		&employee.Id,
		&employee.Name,
		&employee.Position,
		&employee.Department,
		&employee.HireDate,
		&employee.Salary,
		&employee.Wage,
	); err != nil {
		return nil, err
	}
	return employee, nil
}

func scheduleScan(scanFx func(...any) error) (*data.Schedule, error) {
	schedule := new(data.Schedule)
	if err := scanFx(
		&schedule.Id,
		&schedule.StartTime,
		&schedule.EndTime,
		&schedule.CreatedAt,
		&schedule.UpdatedAt,
		&schedule.Published,
	); err != nil {
		return nil, err
	}
	return schedule, nil
}
