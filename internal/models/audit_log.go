package models

// AuditAction is the kind of lifecycle event recorded in the audit log
type AuditAction string

const (
	AuditActionCreated       AuditAction = "Created"
	AuditActionUpdated       AuditAction = "Updated"
	AuditActionClassified    AuditAction = "Classified"
	AuditActionEvaluated     AuditAction = "Evaluated"
	AuditActionStatusChanged AuditAction = "StatusChanged"
	AuditActionApproved      AuditAction = "Approved"
	AuditActionRejected      AuditAction = "Rejected"
	AuditActionRerouted      AuditAction = "Rerouted"
)

// AuditLog represents the IDEA_AUDIT_LOG table. Entries are immutable.
type AuditLog struct {
	AuditID       string      `db:"AUDIT_ID" json:"id"`
	IdeaID        string      `db:"IDEA_ID" json:"ideaId"`
	Action        AuditAction `db:"ACTION" json:"action"`
	PerformedBy   string      `db:"PERFORMED_BY" json:"performedBy"`
	PerformedTime int64       `db:"PERFORMED_TIME" json:"performedAt"`
	Details       string      `db:"DETAILS" json:"details"`
}
