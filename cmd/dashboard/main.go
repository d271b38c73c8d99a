package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/tablestaff/tablestaff/internal/client"
	"github.com/tablestaff/tablestaff/internal/dashboard"
	"github.com/tablestaff/tablestaff/internal/data"
	"github.com/tablestaff/tablestaff/internal/export"
	"github.com/tablestaff/tablestaff/internal/utilities"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()
	envs := make(map[string]string)
	for _, env := range os.Environ() {
		if s := strings.Split(env, "="); len(s) > 1 {
			envs[s[0]] = strings.Join(s[1:], "=")
		}
	}
	if err := rootCommand(envs).Execute(); err != nil {
		os.Exit(1)
	}
}

func notify(message string) {
	color.New(color.FgRed).Fprintln(os.Stderr, message)
}

func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func createClient(envs map[string]string) (client.Client, error) {
	logger := utilities.NewLogger()
	_ = logger.Configure(envs)
	client := client.NewClient(logger)
	if err := client.Configure(envs); err != nil {
		return nil, err
	}
	if err := client.Open(context.Background()); err != nil {
		return nil, err
	}
	return client, nil
}

func rootCommand(envs map[string]string) *cobra.Command {
	command := &cobra.Command{
		Use:           "dashboard",
		Short:         "Terminal dashboard for tablestaff",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	command.AddCommand(employeesCommand(envs))
	command.AddCommand(schedulesCommand(envs))
	return command
}

func employeesCommand(envs map[string]string) *cobra.Command {
	var search, sortField, exportFile string
	var yes bool

	command := &cobra.Command{
		Use:   "employees",
		Short: "List employees",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(envs)
			if err != nil {
				return err
			}
			page := dashboard.NewEmployeePage(client, notify, confirm)
			if err := page.Load(cmd.Context()); err != nil {
				return err
			}
			page.Table.SetSearch(search)
			if sortField != "" {
				page.Table.SortBy(sortField)
			}
			if exportFile != "" {
				f, err := export.Employees(page.Table.Rows(page.Employees()))
				if err != nil {
					return err
				}
				defer f.Close()
				return f.SaveAs(exportFile)
			}
			page.Table.Render(os.Stdout, page.Employees())
			return nil
		},
	}
	command.Flags().StringVar(&search, "search", "", "filter employees by name, position or department")
	command.Flags().StringVar(&sortField, "sort", "", "sort by column (name, position, department, hire_date, wage)")
	command.Flags().StringVar(&exportFile, "export", "", "write the listing to an xlsx file")
	command.AddCommand(employeeAddCommand(envs))
	command.AddCommand(employeeEditCommand(envs))
	command.AddCommand(employeeDeleteCommand(envs, &yes))
	return command
}

func employeeAddCommand(envs map[string]string) *cobra.Command {
	var name, position, department, hireDate, wage string

	command := &cobra.Command{
		Use:   "add",
		Short: "Add an employee",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(envs)
			if err != nil {
				return err
			}
			page := dashboard.NewEmployeePage(client, notify, confirm)
			page.Add()
			page.Form.Name = name
			page.Form.Position = position
			page.Form.Department = department
			page.Form.HireDate = hireDate
			page.Form.Wage = wage
			if !page.Form.Validate() {
				for _, fieldError := range page.Form.Errors() {
					notify(fieldError.Error())
				}
				return fmt.Errorf("validation failed")
			}
			if !page.Submit(cmd.Context()) {
				return fmt.Errorf("unable to add employee")
			}
			fmt.Println("Employee added.")
			return nil
		},
	}
	command.Flags().StringVar(&name, "name", "", "employee name")
	command.Flags().StringVar(&position, "position", "", "employee position")
	command.Flags().StringVar(&department, "department", "", "employee department")
	command.Flags().StringVar(&hireDate, "hire-date", "", "hire date (YYYY-MM-DD)")
	command.Flags().StringVar(&wage, "wage", "", "hourly wage in whole dollars")
	return command
}

func employeeEditCommand(envs map[string]string) *cobra.Command {
	var name, position, department, hireDate, wage string

	command := &cobra.Command{
		Use:   "edit <employee-id>",
		Short: "Edit an employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(envs)
			if err != nil {
				return err
			}
			page := dashboard.NewEmployeePage(client, notify, confirm)
			if err := page.Load(cmd.Context()); err != nil {
				return err
			}
			employee := findEmployee(page.Employees(), args[0])
			if employee == nil {
				return fmt.Errorf("employee not found: %s", args[0])
			}
			//seed the form from the record, then apply only the flags
			// that were provided
			page.Edit(employee)
			if cmd.Flags().Changed("name") {
				page.Form.Name = name
			}
			if cmd.Flags().Changed("position") {
				page.Form.Position = position
			}
			if cmd.Flags().Changed("department") {
				page.Form.Department = department
			}
			if cmd.Flags().Changed("hire-date") {
				page.Form.HireDate = hireDate
			}
			if cmd.Flags().Changed("wage") {
				page.Form.Wage = wage
			}
			if !page.Form.Validate() {
				for _, fieldError := range page.Form.Errors() {
					notify(fieldError.Error())
				}
				return fmt.Errorf("validation failed")
			}
			if !page.Submit(cmd.Context()) {
				return fmt.Errorf("unable to update employee")
			}
			fmt.Println("Employee updated.")
			return nil
		},
	}
	command.Flags().StringVar(&name, "name", "", "employee name")
	command.Flags().StringVar(&position, "position", "", "employee position")
	command.Flags().StringVar(&department, "department", "", "employee department")
	command.Flags().StringVar(&hireDate, "hire-date", "", "hire date (YYYY-MM-DD)")
	command.Flags().StringVar(&wage, "wage", "", "hourly wage in whole dollars")
	return command
}

func employeeDeleteCommand(envs map[string]string, yes *bool) *cobra.Command {
	command := &cobra.Command{
		Use:   "delete <employee-id>",
		Short: "Delete an employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(envs)
			if err != nil {
				return err
			}
			confirmFx := confirm
			if *yes {
				confirmFx = func(string) bool { return true }
			}
			page := dashboard.NewEmployeePage(client, notify, confirmFx)
			if err := page.Load(cmd.Context()); err != nil {
				return err
			}
			employee := findEmployee(page.Employees(), args[0])
			if employee == nil {
				return fmt.Errorf("employee not found: %s", args[0])
			}
			if !page.Delete(cmd.Context(), employee) {
				return fmt.Errorf("unable to delete employee")
			}
			fmt.Println("Employee deleted.")
			return nil
		},
	}
	command.Flags().BoolVar(yes, "yes", false, "skip the confirmation prompt")
	return command
}

func schedulesCommand(envs map[string]string) *cobra.Command {
	var search, sortField, exportFile string
	var yes bool

	command := &cobra.Command{
		Use:   "schedules",
		Short: "List schedules",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(envs)
			if err != nil {
				return err
			}
			page := dashboard.NewSchedulePage(client, notify, confirm)
			if err := page.Load(cmd.Context()); err != nil {
				return err
			}
			page.Table.SetSearch(search)
			if sortField != "" {
				page.Table.SortBy(sortField)
			}
			if exportFile != "" {
				f, err := export.Schedules(page.Table.Rows(page.Schedules()))
				if err != nil {
					return err
				}
				defer f.Close()
				return f.SaveAs(exportFile)
			}
			page.Table.Render(os.Stdout, page.Schedules())
			return nil
		},
	}
	command.Flags().StringVar(&search, "search", "", "filter schedules by formatted start/end date")
	command.Flags().StringVar(&sortField, "sort", "", "sort by column (start_time, end_time)")
	command.Flags().StringVar(&exportFile, "export", "", "write the listing to an xlsx file")
	command.AddCommand(scheduleAddCommand(envs))
	command.AddCommand(scheduleDeleteCommand(envs, &yes))
	return command
}

func scheduleAddCommand(envs map[string]string) *cobra.Command {
	var startDate, endDate string

	command := &cobra.Command{
		Use:   "add",
		Short: "Add a schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(envs)
			if err != nil {
				return err
			}
			page := dashboard.NewSchedulePage(client, notify, confirm)
			page.Add()
			page.Form.StartDate = startDate
			page.Form.EndDate = endDate
			if !page.Form.Validate() {
				for _, fieldError := range page.Form.Errors() {
					notify(fieldError.Error())
				}
				return fmt.Errorf("validation failed")
			}
			if !page.Submit(cmd.Context()) {
				return fmt.Errorf("unable to add schedule")
			}
			fmt.Println("Schedule added.")
			return nil
		},
	}
	command.Flags().StringVar(&startDate, "start", "", "start date (YYYY-MM-DD)")
	command.Flags().StringVar(&endDate, "end", "", "end date (YYYY-MM-DD)")
	return command
}

func scheduleDeleteCommand(envs map[string]string, yes *bool) *cobra.Command {
	command := &cobra.Command{
		Use:   "delete <schedule-id>",
		Short: "Delete a schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(envs)
			if err != nil {
				return err
			}
			confirmFx := confirm
			if *yes {
				confirmFx = func(string) bool { return true }
			}
			page := dashboard.NewSchedulePage(client, notify, confirmFx)
			if err := page.Load(cmd.Context()); err != nil {
				return err
			}
			schedule := findSchedule(page.Schedules(), args[0])
			if schedule == nil {
				return fmt.Errorf("schedule not found: %s", args[0])
			}
			if !page.Delete(cmd.Context(), schedule) {
				return fmt.Errorf("unable to delete schedule")
			}
			fmt.Println("Schedule deleted.")
			return nil
		},
	}
	command.Flags().BoolVar(yes, "yes", false, "skip the confirmation prompt")
	return command
}

func findEmployee(employees []*data.Employee, id string) *data.Employee {
	for _, employee := range employees {
		if employee.Id == id {
			return employee
		}
	}
	return nil
}

func findSchedule(schedules []*data.Schedule, id string) *data.Schedule {
	for _, schedule := range schedules {
		if schedule.Id == id {
			return schedule
		}
	}
	return nil
}
