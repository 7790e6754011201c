// services/schedule_notifier.go
package services

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"coursemart-backend/models"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// ScheduleNotifier reminds buyers about course sessions starting within the
// next 24 hours, via WhatsApp or SMS.
type ScheduleNotifier struct {
	db     *gorm.DB
	client *twilio.RestClient
}

func NewScheduleNotifier(db *gorm.DB) *ScheduleNotifier {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &ScheduleNotifier{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

func (s *ScheduleNotifier) StartScheduler() {
	c := cron.New()

	// Run every day at 9 AM
	c.AddFunc("0 9 * * *", s.SendDailyReminders)

	c.Start()
	log.Println("Schedule reminder scheduler started")
}

type upcomingSession struct {
	ItemID       uint
	UserID       uint
	Username     string
	Email        string
	Phone        string
	ProductName  string
	ScheduleTime time.Time
}

func (s *ScheduleNotifier) SendDailyReminders() {
	log.Println("Starting daily session reminder processing...")

	sessions, err := s.upcomingSessions()
	if err != nil {
		log.Printf("Failed to fetch upcoming sessions: %v", err)
		return
	}

	for _, session := range sessions {
		s.sendReminder(session)
	}

	log.Println("Daily session reminder processing completed")
}

// upcomingSessions finds purchased line items whose schedule starts in the
// next 24 hours and that have not been notified yet.
func (s *ScheduleNotifier) upcomingSessions() ([]upcomingSession, error) {
	now := time.Now().UTC()
	until := now.Add(24 * time.Hour)

	var sessions []upcomingSession
	err := s.db.Model(&models.InvoiceItem{}).
		Select(`invoice_items.id AS item_id,
			invoices.user_id,
			users.username, users.email, users.phone,
			products.name AS product_name,
			schedules.time AS schedule_time`).
		Joins("JOIN invoices ON invoices.id = invoice_items.invoice_id").
		Joins("JOIN users ON users.id = invoices.user_id").
		Joins("JOIN products ON products.id = invoice_items.product_id").
		Joins("JOIN schedules ON schedules.id = invoice_items.schedule_id").
		Where("schedules.time BETWEEN ? AND ?", now, until).
		Where("invoice_items.id NOT IN (?)",
			s.db.Model(&models.NotificationLog{}).
				Select("invoice_item_id").
				Where("status = ?", "sent")).
		Scan(&sessions).Error
	return sessions, err
}

func (s *ScheduleNotifier) sendReminder(session upcomingSession) {
	message := fmt.Sprintf("Hi %s, your session %q starts at %s. See you there!",
		session.Username, session.ProductName,
		session.ScheduleTime.Format("15:04 on Jan 2"))

	channel := "sms"
	to := session.Phone

	// Prefer WhatsApp for E.164 numbers
	if strings.HasPrefix(session.Phone, "+") {
		to = "whatsapp:" + session.Phone
		channel = "whatsapp"
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetBody(message)

	if channel == "whatsapp" {
		params.SetFrom("whatsapp:" + os.Getenv("TWILIO_WHATSAPP_NUMBER"))
	} else {
		params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
	}

	status := "sent"
	errMsg := ""
	if _, err := s.client.Api.CreateMessage(params); err != nil {
		status = "failed"
		errMsg = err.Error()
		log.Printf("Failed to send session reminder to user %d: %v", session.UserID, err)
	}

	entry := models.NotificationLog{
		UserID:        session.UserID,
		InvoiceItemID: session.ItemID,
		Channel:       channel,
		Message:       message,
		Status:        status,
		ErrorMessage:  errMsg,
		SentAt:        time.Now().UTC(),
	}
	if err := s.db.Create(&entry).Error; err != nil {
		log.Printf("Failed to log reminder for item %d: %v", session.ItemID, err)
	}
}
