// Package redis provides a Redis-backed student store.
//
// Key layout:
//
//	students:seq   String : INCR counter handing out IDs
//	students       List   : IDs in insertion (= ascending) order
//	student:{id}   Hash   : id, name, birthDate, dni
package redis

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	goredis "github.com/go-redis/redis/v8"

	"github.com/aanand-mishra/students-service/internal/types"
)

const (
	seqKey           = "students:seq"
	studentsKey      = "students"
	studentKeyPrefix = "student:"
)

// Options holds connection settings.
type Options struct {
	Addr     string
	Password string
	DB       int
}

// Redis stores students in a Redis database.
type Redis struct {
	Client *goredis.Client
}

// New connects to Redis and verifies the connection with PING.
func New(ctx context.Context, opts Options) (*Redis, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis.New: ping %s: %w", opts.Addr, err)
	}

	return &Redis{Client: client}, nil
}

func studentKey(id int64) string {
	return studentKeyPrefix + strconv.FormatInt(id, 10)
}

// Save allocates an ID, then writes the hash and appends the ID to the
// index inside one MULTI/EXEC so a record is never half-visible.
func (s *Redis) Save(ctx context.Context, student types.Student) (types.Student, error) {
	id, err := s.Client.Incr(ctx, seqKey).Result()
	if err != nil {
		return types.Student{}, fmt.Errorf("Save: next id: %w", err)
	}

	_, err = s.Client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.HSet(ctx, studentKey(id), map[string]interface{}{
			"id":        id,
			"name":      student.Name,
			"birthDate": student.BirthDate,
			"dni":       student.DNI,
		})
		pipe.RPush(ctx, studentsKey, id)
		return nil
	})
	if err != nil {
		return types.Student{}, fmt.Errorf("Save: write student %d: %w", id, err)
	}

	student.ID = id
	return student, nil
}

// FindAll reads the ID index and fetches every hash in one pipeline.
func (s *Redis) FindAll(ctx context.Context) ([]types.Student, error) {
	ids, err := s.Client.LRange(ctx, studentsKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("FindAll: read index: %w", err)
	}

	students := make([]types.Student, 0, len(ids))
	if len(ids) == 0 {
		return students, nil
	}

	cmds := make([]*goredis.StringStringMapCmd, 0, len(ids))
	_, err = s.Client.Pipelined(ctx, func(pipe goredis.Pipeliner) error {
		for _, id := range ids {
			cmds = append(cmds, pipe.HGetAll(ctx, studentKeyPrefix+id))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("FindAll: fetch students: %w", err)
	}

	for i, cmd := range cmds {
		data := cmd.Val()
		if len(data) == 0 {
			// Index entry without a hash; skip rather than fail the listing.
			slog.WarnContext(ctx, "student index entry without record",
				slog.String("key", studentsKey), slog.String("id", ids[i]))
			continue
		}

		id, err := strconv.ParseInt(data["id"], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("FindAll: student %s: bad id: %w", ids[i], err)
		}

		students = append(students, types.Student{
			ID:        id,
			Name:      data["name"],
			BirthDate: data["birthDate"],
			DNI:       data["dni"],
		})
	}

	return students, nil
}

// Close closes the client and its connection pool.
func (s *Redis) Close() error {
	return s.Client.Close()
}
