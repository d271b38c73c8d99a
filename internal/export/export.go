package export

import (
	"fmt"
	"time"

	"github.com/tablestaff/tablestaff/internal/data"

	"github.com/xuri/excelize/v2"
)

const (
	sheetEmployees string = "Employees"
	sheetSchedules string = "Schedules"
)

// Employees builds a workbook with one row per employee; the caller owns
// saving and closing the file.
func Employees(employees []*data.Employee) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetEmployees); err != nil {
		return nil, err
	}
	headers := []any{"Name", "Position", "Department", "Hire Date", "Salary", "Wage"}
	if err := f.SetSheetRow(sheetEmployees, "A1", &headers); err != nil {
		return nil, err
	}
	for i, employee := range employees {
		cell := fmt.Sprintf("A%d", i+2)
		row := []any{
			employee.Name,
			employee.Position,
			employee.Department,
			employee.HireDate,
			employee.Salary,
			employee.Wage,
		}
		if err := f.SetSheetRow(sheetEmployees, cell, &row); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func Schedules(schedules []*data.Schedule) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetSchedules); err != nil {
		return nil, err
	}
	headers := []any{"Start", "End", "Published", "Created", "Updated"}
	if err := f.SetSheetRow(sheetSchedules, "A1", &headers); err != nil {
		return nil, err
	}
	for i, schedule := range schedules {
		cell := fmt.Sprintf("A%d", i+2)
		row := []any{
			time.UnixMilli(schedule.StartTime).UTC().Format(time.DateOnly),
			time.UnixMilli(schedule.EndTime).UTC().Format(time.DateOnly),
			schedule.Published,
			time.UnixMilli(schedule.CreatedAt).UTC().Format(time.RFC3339),
			time.UnixMilli(schedule.UpdatedAt).UTC().Format(time.RFC3339),
		}
		if err := f.SetSheetRow(sheetSchedules, cell, &row); err != nil {
			return nil, err
		}
	}
	return f, nil
}
