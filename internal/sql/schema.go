package sql

import (
	"context"
	"fmt"
)

// migrate creates the tables when they don't exist. The shifts table has
// no API surface yet; it exists for the employee/schedule foreign keys
// that future assignment features depend on.
func (s *sqlStore) migrate(ctx context.Context) error {
	queries := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id VARCHAR(255) NOT NULL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			position VARCHAR(255) NOT NULL,
			department VARCHAR(255) NOT NULL,
			hire_date VARCHAR(64) NOT NULL,
			salary BIGINT NOT NULL,
			wage BIGINT NOT NULL
		)`, tableEmployees),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id VARCHAR(255) NOT NULL PRIMARY KEY,
			start_time BIGINT NOT NULL,
			end_time BIGINT NOT NULL,
			created_at BIGINT NOT NULL,
			updated_at BIGINT NOT NULL,
			published BOOLEAN NOT NULL
		)`, tableSchedules),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id VARCHAR(255) NOT NULL PRIMARY KEY,
			employee_id VARCHAR(255) NOT NULL,
			schedule_id VARCHAR(255) NOT NULL,
			role VARCHAR(255) NOT NULL,
			start_time BIGINT NOT NULL,
			end_time BIGINT NOT NULL,
			break_required BOOLEAN NOT NULL,
			FOREIGN KEY (employee_id) REFERENCES %s(id),
			FOREIGN KEY (schedule_id) REFERENCES %s(id)
		)`, tableShifts, tableEmployees, tableSchedules),
	}
	for _, query := range queries {
		if _, err := s.ExecContext(ctx, query); err != nil {
			return err
		}
	}
	return nil
}
