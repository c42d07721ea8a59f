package model

import (
	"time"

	"github.com/google/uuid"
)

// EventType is a business event category in "<domain>:<action>" form.
type EventType string

const (
	EventStudentCreated EventType = "student:created"
	EventStudentUpdated EventType = "student:updated"
	EventStudentDeleted EventType = "student:deleted"
	EventStaffCreated   EventType = "staff:created"
	EventStaffUpdated   EventType = "staff:updated"
	EventStaffDeleted   EventType = "staff:deleted"
	EventClassCreated   EventType = "class:created"
	EventClassUpdated   EventType = "class:updated"
	EventClassDeleted   EventType = "class:deleted"

	EventAttendanceMarked  EventType = "attendance:marked"
	EventAttendanceUpdated EventType = "attendance:updated"
	EventAttendanceLow     EventType = "attendance:low"

	EventFeeCreated  EventType = "fee:created"
	EventFeePaid     EventType = "fee:paid"
	EventFeeReminder EventType = "fee:reminder"
	EventFeeOverdue  EventType = "fee:overdue"

	EventLeaveRequested EventType = "leave:requested"
	EventLeaveApproved  EventType = "leave:approved"
	EventLeaveRejected  EventType = "leave:rejected"

	EventSalaryProcessed EventType = "salary:processed"

	EventExamScheduled   EventType = "exam:scheduled"
	EventResultPublished EventType = "exam:result_published"

	EventAnnouncementCreated  EventType = "communication:announcement"
	EventMessageSent          EventType = "communication:message"
	EventBroadcastCompleted   EventType = "communication:broadcast_completed"
	EventEmergencyDeclared    EventType = "communication:emergency"
	EventCalendarEventCreated EventType = "calendar:event_created"
	EventHolidayDeclared      EventType = "calendar:holiday"

	EventFacilityBooked    EventType = "facility:booked"
	EventFacilityReleased  EventType = "facility:released"
	EventTransportUpdated  EventType = "transport:updated"
	EventLibraryIssued     EventType = "library:issued"
	EventLibraryReturned   EventType = "library:returned"
	EventHostelAllocated   EventType = "hostel:allocated"
	EventInventoryLowStock EventType = "inventory:low_stock"

	EventSystemAlert EventType = "system:alert"
)

var eventTypes = map[EventType]struct{}{
	EventStudentCreated: {}, EventStudentUpdated: {}, EventStudentDeleted: {},
	EventStaffCreated: {}, EventStaffUpdated: {}, EventStaffDeleted: {},
	EventClassCreated: {}, EventClassUpdated: {}, EventClassDeleted: {},
	EventAttendanceMarked: {}, EventAttendanceUpdated: {}, EventAttendanceLow: {},
	EventFeeCreated: {}, EventFeePaid: {}, EventFeeReminder: {}, EventFeeOverdue: {},
	EventLeaveRequested: {}, EventLeaveApproved: {}, EventLeaveRejected: {},
	EventSalaryProcessed: {},
	EventExamScheduled: {}, EventResultPublished: {},
	EventAnnouncementCreated: {}, EventMessageSent: {}, EventBroadcastCompleted: {},
	EventEmergencyDeclared: {}, EventCalendarEventCreated: {}, EventHolidayDeclared: {},
	EventFacilityBooked: {}, EventFacilityReleased: {}, EventTransportUpdated: {},
	EventLibraryIssued: {}, EventLibraryReturned: {}, EventHostelAllocated: {},
	EventInventoryLowStock: {},
	EventSystemAlert: {},
}

// Valid reports whether t belongs to the closed event taxonomy.
func (t EventType) Valid() bool {
	_, ok := eventTypes[t]
	return ok
}

// TargetAll addresses every role of a tenant.
const TargetAll = "all"

// RoleAdmin sees every record and event of its tenant.
const RoleAdmin = "admin"

// Actor identifies who triggered an event.
type Actor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// SystemActor is used when the triggering context has no authenticated user.
var SystemActor = Actor{Name: "System"}

// Event is the canonical in-app event record published to realtime
// subscribers and mirrored into the notification store.
type Event struct {
	ID           uuid.UUID      `json:"id"`
	Type         EventType      `json:"type"`
	TenantID     string         `json:"tenant_id"`
	Title        string         `json:"title"`
	Message      string         `json:"message"`
	Module       string         `json:"module"`
	EntityID     string         `json:"entity_id,omitempty"`
	ActionURL    string         `json:"action_url,omitempty"`
	TargetRole   string         `json:"target_role"`
	TargetUserID string         `json:"target_user_id,omitempty"`
	Actor        Actor          `json:"actor"`
	Timestamp    time.Time      `json:"timestamp"`
	Metadata     map[string]any `json:"metadata,omitempty"`
}
