package models

import "strings"

// Record is a flat field→value mapping produced by the decoder, one per
// matched XML element. A missing key and an empty value both mean the
// upstream API did not supply the field; downstream code treats the two
// identically.
type Record map[string]string

// CallHandler is a voicemail answering entity. It may reference a schedule
// set that controls business/after-hours routing. Empty string means the
// field was absent from the API response.
type CallHandler struct {
	DisplayName         string
	ObjectID            string
	ScheduleSetObjectID string
	DtmfAccessID        string
	Undeletable         string
}

// Schedule is a named schedule; only used to map ObjectID to DisplayName.
type Schedule struct {
	ObjectID    string
	DisplayName string
}

// ScheduleSetMember links a schedule set to one schedule. Exclude is the
// raw API string; anything other than case-insensitive "true" (including
// absent) means the schedule counts.
type ScheduleSetMember struct {
	ScheduleObjectID string
	Exclude          string
}

// MemberIndex maps a schedule set id to its members, in fetch order.
// Built once per run and read-only afterwards.
type MemberIndex map[string][]ScheduleSetMember

// ResolvedRow is one line of the final report. Schedule is either a
// comma-joined list of schedule display names or the "No Schedule" sentinel.
type ResolvedRow struct {
	CallHandlerName string `json:"call_handler_name"`
	Schedule        string `json:"schedule"`
}

// CallHandlerFromRecord converts a decoded record into a typed CallHandler.
func CallHandlerFromRecord(r Record) CallHandler {
	return CallHandler{
		DisplayName:         r["DisplayName"],
		ObjectID:            r["ObjectId"],
		ScheduleSetObjectID: r["ScheduleSetObjectId"],
		DtmfAccessID:        r["DtmfAccessId"],
		Undeletable:         r["Undeletable"],
	}
}

// ScheduleFromRecord converts a decoded record into a typed Schedule.
func ScheduleFromRecord(r Record) Schedule {
	return Schedule{
		ObjectID:    r["ObjectId"],
		DisplayName: r["DisplayName"],
	}
}

// ScheduleSetMemberFromRecord converts a decoded record into a typed member.
func ScheduleSetMemberFromRecord(r Record) ScheduleSetMember {
	return ScheduleSetMember{
		ScheduleObjectID: r["ScheduleObjectId"],
		Exclude:          r["Exclude"],
	}
}

// Excluded reports whether the member is flagged out of its schedule set.
func (m ScheduleSetMember) Excluded() bool {
	return strings.EqualFold(m.Exclude, "true")
}

// IsUndeletable reports whether the handler carries Undeletable="true".
// Any other value, malformed or missing, is false.
func (h CallHandler) IsUndeletable() bool {
	return strings.EqualFold(h.Undeletable, "true")
}

// DedupKey is the composite key used to deduplicate classified handlers:
// trimmed lowercased display name joined with the DTMF access id.
func (h CallHandler) DedupKey() string {
	return strings.ToLower(strings.TrimSpace(h.DisplayName)) + "|" + h.DtmfAccessID
}
