package cron

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"evcare/config"
	bookingRepo "evcare/database/repository/booking"
	paymentRepo "evcare/database/repository/payment"
	"evcare/models"
	"evcare/services/notification"
	"evcare/services/payment"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

const TypeReminderSend = "reminder:send"

// InitReminderWorker runs the async worker in background.
func InitReminderWorker(notifSvc notification.NotificationService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeReminderSend, handleReminderTask(notifSvc))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Println("[ReminderWorker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReminderWorker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleReminderTask(notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReminderHandler] Invalid payload: %v", err)
			return err
		}

		data := map[string]string{
			"appointmentId": p.AppointmentID,
			"fireDate":      p.FireDate,
		}
		if err := notifSvc.SendUserPushNotification(ctx, p.UserID, p.Title, p.Body, data); err != nil {
			log.Printf("[ReminderHandler] Failed to send notification: %v", err)
			return err
		}
		return nil
	}
}

// NewTaskClient creates the asynq client used to enqueue reminder tasks.
func NewTaskClient() *asynq.Client {
	return asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
}

// StartReminderScheduler enqueues a reminder for every confirmed appointment
// happening tomorrow. It runs once per hour; asynq deduplicates by task ID so
// repeated scans do not double-remind.
func StartReminderScheduler(client *asynq.Client, bookings bookingRepo.BookingRepository) {
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
			appointments, err := bookings.GetUpcoming(tomorrow)
			if err != nil {
				log.Printf("[ReminderScheduler] Failed to load upcoming appointments: %v", err)
				continue
			}

			for _, a := range appointments {
				payload, err := json.Marshal(models.ReminderPayload{
					AppointmentID: a.ID,
					UserID:        a.UserID,
					Title:         "Service reminder",
					Body:          fmt.Sprintf("Your EV service is scheduled tomorrow at %s.", a.AppointmentTime),
					FireDate:      a.AppointmentDate,
				})
				if err != nil {
					continue
				}

				task := asynq.NewTask(TypeReminderSend, payload)
				_, err = client.Enqueue(task,
					asynq.TaskID("reminder:"+a.ID),
					asynq.ProcessIn(time.Minute),
				)
				if err != nil && !errors.Is(err, asynq.ErrDuplicateTask) && !errors.Is(err, asynq.ErrTaskIDConflict) {
					log.Printf("[ReminderScheduler] Failed to enqueue reminder for %s: %v", a.ID, err)
				}
			}
		}
	}()
}

// StartPaymentExpirySweep expires overdue pending payments whose in-process
// watcher is gone, e.g. after a restart.
func StartPaymentExpirySweep(paySvc payment.PaymentService, payments paymentRepo.PaymentRepository) {
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			overdue, err := payments.GetPendingExpiredBefore(time.Now().Unix())
			if err != nil {
				log.Printf("[PaymentSweep] Failed to load overdue payments: %v", err)
				continue
			}
			for _, p := range overdue {
				if err := paySvc.MarkExpired(p.PaymentID); err != nil {
					log.Printf("[PaymentSweep] Failed to expire payment %s: %v", p.PaymentID, err)
				}
			}
		}
	}()
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[ReminderWorker] Redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
