// Package catalog is the only way business code reaches the external
// channels. Each method formats one category of message and hands it to the
// dispatcher; broadcast helpers personalise a template per recipient and run
// the bulk throttler.
package catalog

import (
	"context"
	"time"

	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/bulk"
	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/dispatcher"
	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/phone"
)

//go:generate mockgen -source=catalog.go -destination=../mocks/catalog/mock.go -package=mocks
type recipientSender interface {
	SendToRecipient(ctx context.Context, rawPhone, message string) dispatcher.Result
}

type bulkSender interface {
	SendBulk(ctx context.Context, items []bulk.Item) bulk.Summary
}

// Catalog formats and sends templated notifications.
type Catalog struct {
	msg         Messages
	dispatcher  recipientSender
	bulk        bulkSender
	channels    map[string]bulkSender
	countryCode string
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithChannelSender registers b for broadcasts restricted to one channel.
func WithChannelSender(name string, b bulkSender) Option {
	return func(c *Catalog) { c.channels[name] = b }
}

// New creates a Catalog. b sends broadcasts over every channel.
func New(msg Messages, d recipientSender, b bulkSender, countryCode string, opts ...Option) *Catalog {
	c := &Catalog{
		msg:         msg,
		dispatcher:  d,
		bulk:        b,
		channels:    make(map[string]bulkSender),
		countryCode: countryCode,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Catalog) send(ctx context.Context, rawPhone, message string) dispatcher.Result {
	to := phone.Normalize(rawPhone, c.countryCode)
	if to == "" {
		to = rawPhone
	}
	return c.dispatcher.SendToRecipient(ctx, to, message)
}

// Absence notifies a guardian that the student was absent on date.
func (c *Catalog) Absence(ctx context.Context, rawPhone, guardian, student string, date time.Time) dispatcher.Result {
	return c.send(ctx, rawPhone, c.msg.Absence(guardian, student, date))
}

// LowAttendance warns a guardian about attendance below threshold.
func (c *Catalog) LowAttendance(ctx context.Context, rawPhone, guardian, student string, percentage, threshold float64) dispatcher.Result {
	return c.send(ctx, rawPhone, c.msg.LowAttendance(guardian, student, percentage, threshold))
}

// FeeReminder reminds a guardian of a pending fee.
func (c *Catalog) FeeReminder(ctx context.Context, rawPhone, guardian, student string, amount float64, due time.Time) dispatcher.Result {
	return c.send(ctx, rawPhone, c.msg.FeeReminder(guardian, student, amount, due))
}

// FeeReceipt confirms a fee payment.
func (c *Catalog) FeeReceipt(ctx context.Context, rawPhone, guardian, student string, amount float64, receiptNo string, paidOn time.Time) dispatcher.Result {
	return c.send(ctx, rawPhone, c.msg.FeeReceipt(guardian, student, amount, receiptNo, paidOn))
}

// LeaveStatus reports the outcome of a leave request to an employee.
func (c *Catalog) LeaveStatus(ctx context.Context, rawPhone, employee, status string, from, to time.Time, remarks string) dispatcher.Result {
	return c.send(ctx, rawPhone, c.msg.LeaveStatus(employee, status, from, to, remarks))
}

// SalaryProcessed tells an employee the salary was credited.
func (c *Catalog) SalaryProcessed(ctx context.Context, rawPhone, employee string, month time.Time, net float64) dispatcher.Result {
	return c.send(ctx, rawPhone, c.msg.SalaryProcessed(employee, month, net))
}

// EmergencyAlert sends an urgent notice to one person.
func (c *Catalog) EmergencyAlert(ctx context.Context, rawPhone, name, title, details string) dispatcher.Result {
	return c.send(ctx, rawPhone, c.msg.EmergencyAlert(name, title, details))
}

// EventAnnouncement invites one person to an event.
func (c *Catalog) EventAnnouncement(ctx context.Context, rawPhone, name, title string, date time.Time, venue string) dispatcher.Result {
	return c.send(ctx, rawPhone, c.msg.EventAnnouncement(name, title, date, venue))
}

// HolidayAnnouncement announces a holiday to one person.
func (c *Catalog) HolidayAnnouncement(ctx context.Context, rawPhone, name, occasion string, date time.Time) dispatcher.Result {
	return c.send(ctx, rawPhone, c.msg.HolidayAnnouncement(name, occasion, date))
}

// ExamSchedule tells a guardian when an exam starts.
func (c *Catalog) ExamSchedule(ctx context.Context, rawPhone, guardian, student, exam string, start time.Time) dispatcher.Result {
	return c.send(ctx, rawPhone, c.msg.ExamSchedule(guardian, student, exam, start))
}

// ResultPublished tells a guardian that results are out.
func (c *Catalog) ResultPublished(ctx context.Context, rawPhone, guardian, student, exam, result string) dispatcher.Result {
	return c.send(ctx, rawPhone, c.msg.ResultPublished(guardian, student, exam, result))
}
