package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/tablestaff/tablestaff/internal"
	"github.com/tablestaff/tablestaff/internal/client"
	"github.com/tablestaff/tablestaff/internal/data"
	"github.com/tablestaff/tablestaff/internal/service"
	"github.com/tablestaff/tablestaff/internal/utilities"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	envs := make(map[string]string)
	for _, env := range os.Environ() {
		if s := strings.Split(env, "="); len(s) > 1 {
			envs[s[0]] = strings.Join(s[1:], "=")
		}
	}
	osSignal := make(chan os.Signal, 1)
	signal.Notify(osSignal, syscall.SIGINT, syscall.SIGTERM)
	if err := Main(envs, osSignal); err != nil {
		os.Stderr.WriteString(err.Error())
		os.Exit(1)
	}
}

type employeeSeed struct {
	name       string
	position   string
	department string
	hireDate   string
	wage       int64
}

var employeeSeeds = []employeeSeed{
	{"Ava Moreno", "Head Chef", "Kitchen", "2021-03-15", 34},
	{"Marcus Lee", "Sous Chef", "Kitchen", "2022-07-01", 27},
	{"Priya Natarajan", "Line Cook", "Kitchen", "2023-11-20", 21},
	{"Daniel Okafor", "Server", "Front of House", "2023-02-09", 16},
	{"Sofia Reyes", "Server", "Front of House", "2024-05-30", 16},
	{"Tom Whitfield", "Host", "Front of House", "2024-08-12", 15},
	{"Elena Petrova", "Bartender", "Bar", "2022-10-03", 19},
	{"Jun Park", "Dishwasher", "Kitchen", "2025-01-27", 15},
}

func seedEmployees(ctx context.Context, c client.Client, logger utilities.Logger) error {
	for _, seed := range employeeSeeds {
		employee, err := c.EmployeeCreate(ctx, data.EmployeePartial{
			Name:       &seed.name,
			Position:   &seed.position,
			Department: &seed.department,
			HireDate:   &seed.hireDate,
			Wage:       &seed.wage,
		})
		if err != nil {
			return err
		}
		logger.Info(ctx, "seeded employee %s (%s)", employee.Name, employee.Id)
	}
	return nil
}

// seedSchedules creates one schedule per week for the next four weeks,
// Monday through Sunday.
func seedSchedules(ctx context.Context, c client.Client, logger utilities.Logger) error {
	start := time.Now().UTC().Truncate(24 * time.Hour)
	for start.Weekday() != time.Monday {
		start = start.AddDate(0, 0, 1)
	}
	for week := 0; week < 4; week++ {
		startTime := start.AddDate(0, 0, week*7).UnixMilli()
		endTime := start.AddDate(0, 0, week*7+6).UnixMilli()
		schedule, err := c.ScheduleCreate(ctx, data.SchedulePartial{
			StartTime: &startTime,
			EndTime:   &endTime,
		})
		if err != nil {
			return err
		}
		logger.Info(ctx, "seeded schedule %s -> %s (%s)",
			time.UnixMilli(schedule.StartTime).Format(time.DateOnly),
			time.UnixMilli(schedule.EndTime).Format(time.DateOnly), schedule.Id)
	}
	return nil
}

func Main(envs map[string]string, osSignal chan os.Signal) error {
	var wg sync.WaitGroup

	ctx, cancel := internal.LaunchContext(&wg, osSignal)
	defer cancel()

	logger := utilities.NewLogger()
	_ = logger.Configure(envs)

	//mint a session token locally when a secret is available and no
	// token was provided
	if envs["SESSION_TOKEN"] == "" && envs["SESSION_SECRET"] != "" {
		token, err := service.GenerateToken(envs["SESSION_SECRET"], "seed", time.Hour)
		if err != nil {
			return err
		}
		envs["SESSION_TOKEN"] = token
	}

	c := client.NewClient(logger)
	if err := c.Configure(envs); err != nil {
		return err
	}
	if err := c.Open(ctx); err != nil {
		return err
	}
	defer c.Close(context.Background())

	ctx = internal.CtxWithCorrelationId(ctx, "seed")
	if err := seedEmployees(ctx, c, logger); err != nil {
		return err
	}
	if err := seedSchedules(ctx, c, logger); err != nil {
		return err
	}
	cancel()
	wg.Wait()
	return nil
}
