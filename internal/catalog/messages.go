package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// MaxMessageLength is the longest body the gateway accepts.
const MaxMessageLength = 1600

const dateLayout = "02 Jan 2006"

// Messages formats the text of every notification category. It has no side
// effects and is safe to use on its own.
type Messages struct {
	Institution string // signature appended to every message
	Currency    string // symbol placed before amounts
}

// Absence tells a guardian that the student was absent.
func (m Messages) Absence(guardian, student string, date time.Time) string {
	return m.compose(guardian, "Parent",
		fmt.Sprintf("This is to inform you that %s was marked Absent on %s. "+
			"Please contact the class teacher if this is unexpected.", student, date.Format(dateLayout)))
}

// LowAttendance warns a guardian that attendance fell below the threshold.
func (m Messages) LowAttendance(guardian, student string, percentage, threshold float64) string {
	return m.compose(guardian, "Parent",
		fmt.Sprintf("%s's attendance is %s%%, below the required %s%%. "+
			"Regular attendance is needed to sit the examinations.",
			student, percent(percentage), percent(threshold)))
}

// FeeReminder reminds a guardian of a pending fee.
func (m Messages) FeeReminder(guardian, student string, amount float64, due time.Time) string {
	return m.compose(guardian, "Parent",
		fmt.Sprintf("Fee Reminder: a fee of %s for %s is due on %s. Please pay before the due date to avoid a late fee.",
			m.money(amount), student, due.Format(dateLayout)))
}

// FeeReceipt confirms a fee payment.
func (m Messages) FeeReceipt(guardian, student string, amount float64, receiptNo string, paidOn time.Time) string {
	return m.compose(guardian, "Parent",
		fmt.Sprintf("Payment received: %s towards fees for %s on %s. Receipt No: %s. Thank you.",
			m.money(amount), student, paidOn.Format(dateLayout), receiptNo))
}

// LeaveStatus tells an employee the outcome of a leave request.
func (m Messages) LeaveStatus(employee, status string, from, to time.Time, remarks string) string {
	body := fmt.Sprintf("Your leave request from %s to %s has been %s.",
		from.Format(dateLayout), to.Format(dateLayout), strings.ToUpper(status))
	if remarks != "" {
		body += " Remarks: " + remarks
	}
	return m.compose(employee, "Staff", body)
}

// SalaryProcessed tells an employee that the month's salary was credited.
func (m Messages) SalaryProcessed(employee string, month time.Time, net float64) string {
	return m.compose(employee, "Staff",
		fmt.Sprintf("Your salary for %s has been processed. Net amount credited: %s.",
			month.Format("January 2006"), m.money(net)))
}

// EmergencyAlert carries an urgent notice.
func (m Messages) EmergencyAlert(name, title, details string) string {
	return m.compose(name, "Parent/Staff",
		fmt.Sprintf("EMERGENCY ALERT: %s. %s Please follow instructions from the institution.", title, details))
}

// EventAnnouncement announces an institution event.
func (m Messages) EventAnnouncement(name, title string, date time.Time, venue string) string {
	body := fmt.Sprintf("You are invited to %s on %s", title, date.Format(dateLayout))
	if venue != "" {
		body += " at " + venue
	}
	return m.compose(name, "Parent/Staff", body+".")
}

// HolidayAnnouncement announces a holiday.
func (m Messages) HolidayAnnouncement(name, occasion string, date time.Time) string {
	return m.compose(name, "Parent/Staff",
		fmt.Sprintf("The institution will remain closed on %s (%s) on account of %s.",
			date.Format(dateLayout), date.Weekday(), occasion))
}

// ExamSchedule tells a guardian when an examination starts.
func (m Messages) ExamSchedule(guardian, student, exam string, start time.Time) string {
	return m.compose(guardian, "Parent",
		fmt.Sprintf("%s for %s begins on %s. Please ensure timely preparation and attendance.",
			exam, student, start.Format(dateLayout)))
}

// ResultPublished tells a guardian that results are available.
func (m Messages) ResultPublished(guardian, student, exam, result string) string {
	body := fmt.Sprintf("Results of %s are published for %s.", exam, student)
	if result != "" {
		body += " Result: " + result + "."
	}
	return m.compose(guardian, "Parent", body+" Log in to the portal for the full report card.")
}

func (m Messages) compose(name, fallback, body string) string {
	if strings.TrimSpace(name) == "" {
		name = fallback
	}

	var b strings.Builder
	b.WriteString("Dear ")
	b.WriteString(name)
	b.WriteString(",\n")
	b.WriteString(body)
	if m.Institution != "" {
		b.WriteString("\n- ")
		b.WriteString(m.Institution)
	}
	return truncate(b.String(), MaxMessageLength)
}

func (m Messages) money(amount float64) string {
	return m.Currency + humanize.FormatFloat("#,###.##", amount)
}

func percent(v float64) string {
	return humanize.FormatFloat("#.#", v)
}

func truncate(value string, limit int) string {
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return strings.TrimSpace(string(runes[:limit-3])) + "..."
}
