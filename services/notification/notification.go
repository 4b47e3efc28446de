package notification

import (
	"context"
	"fmt"

	patientRepo "dentra/database/repository/patient"
	"dentra/utils"

	"firebase.google.com/go/v4/messaging"
)

// NotificationService sends FCM pushes to patient devices.
type NotificationService interface {
	SendPatientPush(ctx context.Context, patientID, title, body string, data map[string]string) error
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	patients patientRepo.PatientRepository
}

func NewDefaultNotificationService(patients patientRepo.PatientRepository) (*DefaultNotificationService, error) {
	if patients == nil {
		return nil, fmt.Errorf("notification service initialization error: patient repository is nil")
	}
	return &DefaultNotificationService{patients: patients}, nil
}

// SendPatientPush looks up the patient's FCM token and sends a push.
// Patients without a registered device token are skipped silently.
func (s *DefaultNotificationService) SendPatientPush(
	ctx context.Context,
	patientID, title, body string,
	data map[string]string,
) error {
	p, err := s.patients.GetByID(patientID)
	if err != nil {
		return fmt.Errorf("SendPatientPush: could not find patient %s: %w", patientID, err)
	}
	if p.FCMToken == "" {
		return nil
	}

	msg := &messaging.Message{
		Token: p.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "appointments",
				Sound:     "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority":  "10",
				"apns-push-type": "alert",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound: "default",
				},
			},
		},
	}

	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("SendPatientPush: failed to send FCM message: %w", err)
	}
	return nil
}
