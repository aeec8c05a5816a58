package email

import (
	"context"
	"fmt"
	"time"

	"attendancetracker/internal/domain"
)

type notificationSender struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewNotificationSender returns a NotificationSender that renders the
// "attendance" email template and delivers it through the given Mailer.
func NewNotificationSender(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.NotificationSender {
	return &notificationSender{mailer: mailer, renderer: renderer}
}

func (s *notificationSender) Send(ctx context.Context, event domain.NotificationEvent) error {
	data := &domain.AttendanceEmailData{
		EmployeeName: event.EmployeeName,
		Kind:         string(event.Kind),
		EventTime:    event.EventTime.Format(time.RFC1123),
	}
	subject, htmlBody, textBody, err := s.renderer.Render("attendance", data)
	if err != nil {
		return fmt.Errorf("render attendance template: %w", err)
	}
	if err := s.mailer.Send(event.EmployeeEmail, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDeliveryFailed, err)
	}
	return nil
}
