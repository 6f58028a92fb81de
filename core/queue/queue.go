package queue

import (
	"encoding/json"
	"time"

	"github.com/EngStrategy/arenahub-backend-sub000/core/config"
	"github.com/EngStrategy/arenahub-backend-sub000/core/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// Payloads for the notification tasks. Bookings carry snapshots of the data
// the notifier needs so handlers never reach back into booking storage.
type BookingTaskPayload struct {
	BookingID      uuid.UUID `json:"booking_id"`
	ReferenceCode  string    `json:"reference_code"`
	AthleteID      uuid.UUID `json:"athlete_id"`
	AthleteEmail   string    `json:"athlete_email"`
	CourtName      string    `json:"court_name"`
	BookingDate    string    `json:"booking_date"`
	StartTime      string    `json:"start_time"`
	EndTime        string    `json:"end_time"`
	TotalPriceCent int64     `json:"total_price_cents"`
}

type SeriesTaskPayload struct {
	SeriesID     uuid.UUID `json:"series_id"`
	AthleteID    uuid.UUID `json:"athlete_id"`
	AthleteEmail string    `json:"athlete_email"`
	CourtName    string    `json:"court_name"`
	StartDate    string    `json:"start_date"`
	EndDate      string    `json:"end_date"`
	Occurrences  int       `json:"occurrences"`
	SkippedDates []string  `json:"skipped_dates"`
}

// Queue wraps the asynq client. A nil *Queue is a no-op; notification
// side-effects are fire-and-forget and never block or fail a booking.
type Queue struct {
	client *asynq.Client
}

var instance *Queue

func Init(cfg config.RedisConfig) *Queue {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	instance = &Queue{client: client}
	logger.Info("Task queue initialized", "addr", cfg.Addr)
	return instance
}

func Get() *Queue {
	return instance
}

// Enqueue serialises payload and submits the task. Failures are logged and
// swallowed: a lost notification must never abort a committed booking.
func (q *Queue) Enqueue(taskType string, payload any) {
	if q == nil {
		return
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Queue:Enqueue:Marshal", "task", taskType, "error", err)
		return
	}
	task := asynq.NewTask(taskType, raw)
	info, err := q.client.Enqueue(task,
		asynq.MaxRetry(5),
		asynq.Timeout(30*time.Second),
	)
	if err != nil {
		logger.Error("Queue:Enqueue", "task", taskType, "error", err)
		return
	}
	logger.Debug("Queue:Enqueue:Success", "task", taskType, "task_id", info.ID)
}

func (q *Queue) Close() error {
	if q == nil {
		return nil
	}
	return q.client.Close()
}

// NewServer builds the asynq worker that processes notification tasks.
func NewServer(cfg config.RedisConfig) *asynq.Server {
	return asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		},
		asynq.Config{
			Concurrency: 5,
			Queues:      map[string]int{"default": 1},
		},
	)
}
