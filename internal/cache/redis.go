package cache

import (
	"context"
	"errors"
	"net"
	"strconv"
	"time"

	"github.com/tablestaff/tablestaff/internal"
	"github.com/tablestaff/tablestaff/internal/data"
	"github.com/tablestaff/tablestaff/internal/utilities"

	"github.com/redis/go-redis/v9"
)

const (
	hashKeyEmployees       string = "employees"
	hashKeySchedules       string = "schedules"
	markerKeyEmployeesList string = "employees_listed"
	markerKeySchedulesList string = "schedules_listed"
)

type redisCache struct {
	redisClient *redis.Client
	config      struct {
		address  string
		port     string
		password string
		database int
		timeout  time.Duration
	}
	utilities.Logger
}

func NewRedis(parameters ...any) interface {
	internal.Configurer
	internal.Opener
	internal.Clearer
	Cache
} {
	c := &redisCache{}
	for _, parameter := range parameters {
		switch p := parameter.(type) {
		case utilities.Logger:
			c.Logger = p
		}
	}
	return c
}

func (c *redisCache) Configure(envs map[string]string) error {
	c.config.timeout = 10 * time.Second
	if redisAddress, ok := envs["REDIS_ADDRESS"]; ok {
		c.config.address = redisAddress
	}
	if redisPort, ok := envs["REDIS_PORT"]; ok {
		c.config.port = redisPort
	}
	if redisPassword, ok := envs["REDIS_PASSWORD"]; ok {
		c.config.password = redisPassword
	}
	if redisDatabase, ok := envs["REDIS_DATABASE"]; ok {
		i, _ := strconv.ParseInt(redisDatabase, 10, 64)
		c.config.database = int(i)
	}
	if redisTimeout, ok := envs["REDIS_TIMEOUT"]; ok {
		if i, _ := strconv.ParseInt(redisTimeout, 10, 64); i > 0 {
			c.config.timeout = time.Duration(i) * time.Second
		}
	}
	return nil
}

func (c *redisCache) Open(ctx context.Context) error {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(c.config.address, c.config.port),
		Password: c.config.password,
		DB:       c.config.database,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		return err
	}
	c.redisClient = redisClient
	return nil
}

func (c *redisCache) Close(ctx context.Context) error {
	if err := c.redisClient.Close(); err != nil {
		c.Error(ctx, "error while shutting down redis client: %s", err)
	}
	return nil
}

func (c *redisCache) Clear(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.config.timeout)
	defer cancel()
	keys := []string{hashKeyEmployees, hashKeySchedules,
		markerKeyEmployeesList, markerKeySchedulesList}
	if _, err := c.redisClient.Del(ctx, keys...).Result(); err != nil {
		return err
	}
	return nil
}

func (c *redisCache) EmployeeRead(ctx context.Context, id string) (*data.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.timeout)
	defer cancel()
	value, err := c.redisClient.HGet(ctx, hashKeyEmployees, id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrEmployeeNotCached
		}
		return nil, err
	}
	employee := &data.Employee{}
	if err := employee.UnmarshalBinary([]byte(value)); err != nil {
		return nil, err
	}
	return employee, nil
}

func (c *redisCache) EmployeesRead(ctx context.Context) ([]*data.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.timeout)
	defer cancel()
	if _, err := c.redisClient.Get(ctx, markerKeyEmployeesList).Result(); err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrEmployeesNotListed
		}
		return nil, err
	}
	values, err := c.redisClient.HGetAll(ctx, hashKeyEmployees).Result()
	if err != nil {
		return nil, err
	}
	employees := make([]*data.Employee, 0, len(values))
	for _, value := range values {
		employee := &data.Employee{}
		if err := employee.UnmarshalBinary([]byte(value)); err != nil {
			return nil, err
		}
		employees = append(employees, employee)
	}
	return employees, nil
}

func (c *redisCache) EmployeesWrite(ctx context.Context, complete bool, employees ...*data.Employee) error {
	ctx, cancel := context.WithTimeout(ctx, c.config.timeout)
	defer cancel()
	if complete {
		if _, err := c.redisClient.Del(ctx, hashKeyEmployees).Result(); err != nil {
			return err
		}
	}
	for _, employee := range employees {
		bytes, err := employee.MarshalBinary()
		if err != nil {
			return err
		}
		if _, err := c.redisClient.HSet(ctx, hashKeyEmployees,
			employee.Id, string(bytes)).Result(); err != nil {
			return err
		}
	}
	if complete {
		return c.redisClient.Set(ctx, markerKeyEmployeesList, "1", 0).Err()
	}
	if _, err := c.redisClient.Del(ctx, markerKeyEmployeesList).Result(); err != nil {
		return err
	}
	return nil
}

func (c *redisCache) EmployeesDelete(ctx context.Context, ids ...string) error {
	if len(ids) <= 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, c.config.timeout)
	defer cancel()
	if _, err := c.redisClient.HDel(ctx, hashKeyEmployees, ids...).Result(); err != nil {
		return err
	}
	return nil
}

func (c *redisCache) ScheduleRead(ctx context.Context, id string) (*data.Schedule, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.timeout)
	defer cancel()
	value, err := c.redisClient.HGet(ctx, hashKeySchedules, id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrScheduleNotCached
		}
		return nil, err
	}
	schedule := &data.Schedule{}
	if err := schedule.UnmarshalBinary([]byte(value)); err != nil {
		return nil, err
	}
	return schedule, nil
}

func (c *redisCache) SchedulesRead(ctx context.Context) ([]*data.Schedule, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.timeout)
	defer cancel()
	if _, err := c.redisClient.Get(ctx, markerKeySchedulesList).Result(); err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSchedulesNotListed
		}
		return nil, err
	}
	values, err := c.redisClient.HGetAll(ctx, hashKeySchedules).Result()
	if err != nil {
		return nil, err
	}
	schedules := make([]*data.Schedule, 0, len(values))
	for _, value := range values {
		schedule := &data.Schedule{}
		if err := schedule.UnmarshalBinary([]byte(value)); err != nil {
			return nil, err
		}
		schedules = append(schedules, schedule)
	}
	return sortSchedules(schedules), nil
}

func (c *redisCache) SchedulesWrite(ctx context.Context, complete bool, schedules ...*data.Schedule) error {
	ctx, cancel := context.WithTimeout(ctx, c.config.timeout)
	defer cancel()
	if complete {
		if _, err := c.redisClient.Del(ctx, hashKeySchedules).Result(); err != nil {
			return err
		}
	}
	for _, schedule := range schedules {
		bytes, err := schedule.MarshalBinary()
		if err != nil {
			return err
		}
		if _, err := c.redisClient.HSet(ctx, hashKeySchedules,
			schedule.Id, string(bytes)).Result(); err != nil {
			return err
		}
	}
	if complete {
		return c.redisClient.Set(ctx, markerKeySchedulesList, "1", 0).Err()
	}
	if _, err := c.redisClient.Del(ctx, markerKeySchedulesList).Result(); err != nil {
		return err
	}
	return nil
}

func (c *redisCache) SchedulesDelete(ctx context.Context, ids ...string) error {
	if len(ids) <= 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, c.config.timeout)
	defer cancel()
	if _, err := c.redisClient.HDel(ctx, hashKeySchedules, ids...).Result(); err != nil {
		return err
	}
	return nil
}
