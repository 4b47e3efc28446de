package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"dentra/config"
	appointmentRepo "dentra/database/repository/appointment"
	"dentra/models"
	"dentra/services/notification"
	"dentra/services/tasks"

	"github.com/hibiken/asynq"
)

// InitReminderWorker runs the async reminder worker in the background.
func InitReminderWorker(notifSvc notification.NotificationService, appts appointmentRepo.AppointmentRepository) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderDB,
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
	mux.HandleFunc(tasks.TypeSendReminder, handleReminderTask(notifSvc, appts))

	go func() {
		log.Println("[ReminderWorker] starting async worker...")
		const maxAttempts = 5

		for attempt := 1; attempt <= maxAttempts; attempt++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] attempt %d/%d failed: %v", attempt, maxAttempts, err)

				if attempt == maxAttempts {
					log.Fatal("[ReminderWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempt*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

// handleReminderTask sends the push only while the appointment is still
// active. Cancelled or rescheduled visits drop their stale reminders here.
func handleReminderTask(notifSvc notification.NotificationService, appts appointmentRepo.AppointmentRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReminderHandler] invalid payload: %v", err)
			return err
		}

		a, err := appts.GetByID(p.AppointmentID)
		if err != nil {
			log.Printf("[ReminderHandler] appointment %s gone, dropping reminder: %v", p.AppointmentID, err)
			return nil
		}
		if a.Status != models.AppointmentScheduled && a.Status != models.AppointmentConfirmed {
			return nil
		}
		if !a.StartTime.Equal(p.StartTime) {
			// Rescheduled after this reminder was enqueued; the new
			// enqueue covers it.
			return nil
		}

		data := map[string]string{
			"appointmentId": p.AppointmentID,
			"startTime":     p.StartTime.Format(time.RFC3339),
		}
		if err := notifSvc.SendPatientPush(ctx, p.PatientID, p.Title, p.Body, data); err != nil {
			log.Printf("[ReminderHandler] failed to send reminder for %s: %v", p.AppointmentID, err)
			return err
		}
		return nil
	}
}
