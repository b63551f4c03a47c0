package services

import (
	"database/sql"
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"github.com/farahtourait-ai/city-college-fee-system/app/config"
	"github.com/farahtourait-ai/city-college-fee-system/app/database"
	"github.com/farahtourait-ai/city-college-fee-system/app/models"
)

// sendFunc matches the signature of smtp.SendMail.
type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Mailer sends fee reminders and payment confirmations over SMTP and logs
// every attempt to the reminders table, failed or not.
type Mailer struct {
	db      *sql.DB
	smtp    config.SMTPConfig
	college config.CollegeConfig
	send    sendFunc
}

func NewMailer(db *sql.DB, cfg *config.Config) *Mailer {
	return &Mailer{
		db:      db,
		smtp:    cfg.SMTP,
		college: cfg.College,
		send:    smtp.SendMail,
	}
}

func (m *Mailer) deliver(to, subject, body string) error {
	if m.smtp.Username == "" || m.smtp.Password == "" {
		return fmt.Errorf("smtp credentials not configured")
	}

	msg := strings.Join([]string{
		"From: " + m.college.Name + " <" + m.smtp.From + ">",
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=utf-8",
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", m.smtp.Host, m.smtp.Port)
	auth := smtp.PlainAuth("", m.smtp.Username, m.smtp.Password, m.smtp.Host)
	return m.send(addr, auth, m.smtp.From, []string{to}, []byte(msg))
}

// logAttempt writes the reminders row. A logging failure is reported in
// the return but never masks the send outcome, which the caller already
// has in the reminder fields.
func (m *Mailer) logAttempt(reminder *models.Reminder) {
	if err := database.CreateReminder(m.db, reminder); err != nil {
		log.Printf("Failed to log reminder for student %s: %v", reminder.StudentID, err)
	}
}

// SendFeeReminder emails one defaulter about their pending balance. The
// attempt is logged whether or not the send succeeds; students without an
// email address get a logged skip instead of a sentinel address.
func (m *Mailer) SendFeeReminder(defaulter *models.Defaulter) *models.Reminder {
	student := defaulter.Student
	reminder := &models.Reminder{
		StudentID:    student.ID,
		StudentName:  student.Name,
		Amount:       defaulter.TotalPending,
		ReminderType: models.EmailReminder,
	}

	if !student.HasEmail() {
		reminder.EmailStatus = "skipped: no email address on file"
		m.logAttempt(reminder)
		return reminder
	}

	subject := fmt.Sprintf("Fee Reminder - %s", m.college.Name)
	body := fmt.Sprintf(
		"Dear %s,\n\n"+
			"This is a reminder that your fee payment of Rs. %s is pending.\n"+
			"Your earliest unpaid fee is %d day(s) overdue.\n\n"+
			"Please visit the office or contact us at %s to clear your dues.\n\n"+
			"Regards,\n%s\n%s",
		student.Name, defaulter.TotalPending.StringFixed(2), defaulter.OverdueDays,
		m.college.Phone, m.college.Name, m.college.Address,
	)

	if err := m.deliver(student.Email, subject, body); err != nil {
		reminder.EmailStatus = "failed: " + err.Error()
		log.Printf("Reminder email to %s failed: %v", student.Email, err)
	} else {
		reminder.EmailSent = true
		reminder.EmailStatus = "sent"
	}

	m.logAttempt(reminder)
	return reminder
}

// confirmationEmail builds the payment notification for the office. The
// recipient is the admin address, not the student.
func (m *Mailer) confirmationEmail(student *models.Student, fee *models.FeeRecord) (to, subject, body string) {
	challan := ""
	if fee.ChallanNumber != nil {
		challan = "\nChallan number: " + *fee.ChallanNumber
	}
	subject = fmt.Sprintf("Payment Received - %s", m.college.Name)
	body = fmt.Sprintf(
		"Payment of Rs. %s received from %s (roll %s) for %s %d.%s\n\n"+
			"%s\n%s",
		fee.Amount.StringFixed(2), student.Name, student.RollNumber, fee.Month, fee.Year, challan,
		m.college.Name, m.college.Address,
	)
	return m.college.AdminEmail, subject, body
}

// SendPaymentConfirmation notifies the admin address after a fee is
// marked paid.
func (m *Mailer) SendPaymentConfirmation(student *models.Student, fee *models.FeeRecord) *models.Reminder {
	reminder := &models.Reminder{
		StudentID:    student.ID,
		StudentName:  student.Name,
		Amount:       fee.Amount,
		ReminderType: models.PaymentConfirmation,
	}

	to, subject, body := m.confirmationEmail(student, fee)
	if to == "" {
		reminder.EmailStatus = "skipped: no admin email configured"
		m.logAttempt(reminder)
		return reminder
	}

	if err := m.deliver(to, subject, body); err != nil {
		reminder.EmailStatus = "failed: " + err.Error()
		log.Printf("Confirmation email to %s failed: %v", to, err)
	} else {
		reminder.EmailSent = true
		reminder.EmailStatus = "sent"
	}

	m.logAttempt(reminder)
	return reminder
}
