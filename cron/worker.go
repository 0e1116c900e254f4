package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"auralynk/config"
	"auralynk/models"
	"auralynk/services/notification"
	"auralynk/services/schedule"
)

const (
	TypeSessionReminder   = "session:reminder"
	TypeAvailabilityPrune = "availability:prune"
)

// reminderPayload carries everything the reminder handler needs so it never
// has to reload a booking that may have been cancelled meanwhile.
type reminderPayload struct {
	BookingID    string    `json:"bookingId"`
	ClientID     string    `json:"clientId"`
	ReaderID     string    `json:"readerId"`
	SelectedTime time.Time `json:"selectedTime"`
}

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisJobQueueDB,
	}
}

// AsynqReminderScheduler enqueues session reminders to fire at the start of
// the join window.
type AsynqReminderScheduler struct {
	client *asynq.Client
}

func NewAsynqReminderScheduler() *AsynqReminderScheduler {
	return &AsynqReminderScheduler{client: asynq.NewClient(redisOpts())}
}

func (s *AsynqReminderScheduler) ScheduleSessionReminder(ctx context.Context, booking *models.Booking) error {
	payload, err := json.Marshal(reminderPayload{
		BookingID:    booking.ID,
		ClientID:     booking.ClientID,
		ReaderID:     booking.ReaderID,
		SelectedTime: booking.SelectedTime,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal reminder payload: %w", err)
	}

	fireAt := booking.SelectedTime.Add(-config.JoinLead())
	if fireAt.Before(time.Now()) {
		fireAt = time.Now()
	}

	task := asynq.NewTask(TypeSessionReminder, payload)
	if _, err := s.client.EnqueueContext(ctx, task, asynq.ProcessAt(fireAt)); err != nil {
		return fmt.Errorf("failed to enqueue reminder: %w", err)
	}
	return nil
}

// InitWorker runs the async worker and the periodic availability sweep in
// background.
func InitWorker(scheduleSvc schedule.ScheduleService, notifSvc notification.NotificationService) {
	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeSessionReminder, handleSessionReminder(notifSvc))
	mux.HandleFunc(TypeAvailabilityPrune, handleAvailabilityPrune(scheduleSvc))

	go func() {
		log.Println("[Worker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[Worker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[Worker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()

	go runPruneScheduler()
}

// runPruneScheduler enqueues the hourly availability sweep.
func runPruneScheduler() {
	scheduler := asynq.NewScheduler(redisOpts(), nil)
	if _, err := scheduler.Register("@every 1h", asynq.NewTask(TypeAvailabilityPrune, nil)); err != nil {
		log.Printf("[Worker] failed to register prune schedule: %v", err)
		return
	}
	if err := scheduler.Run(); err != nil {
		log.Printf("[Worker] prune scheduler stopped: %v", err)
	}
}

func handleSessionReminder(notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p reminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[Reminder] invalid payload: %v", err)
			return err
		}

		body := fmt.Sprintf("Your session starts at %s", p.SelectedTime.Local().Format("3:04 PM"))
		data := map[string]string{"bookingId": p.BookingID}

		for _, userID := range []string{p.ClientID, p.ReaderID} {
			if err := notifSvc.SendPush(ctx, userID, "Session starting soon", body, data); err != nil {
				log.Printf("[Reminder] failed to notify %s: %v", userID, err)
			}
		}
		return nil
	}
}

func handleAvailabilityPrune(scheduleSvc schedule.ScheduleService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		return scheduleSvc.PruneAllReaders(ctx)
	}
}
