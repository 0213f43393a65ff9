package models

// PendingAssignment is the assignee of a workflow nobody has picked up yet
const PendingAssignment = "Pending Assignment"

// Workflow represents the IDEA_WORKFLOW table
type Workflow struct {
	WorkflowID    string     `db:"WORKFLOW_ID" json:"id"`
	IdeaID        string     `db:"IDEA_ID" json:"ideaId"`
	CurrentStatus IdeaStatus `db:"CURRENT_STATUS" json:"currentStatus"`
	AssignedTo    string     `db:"ASSIGNED_TO" json:"assignedTo"`
	Remarks       string     `db:"REMARKS" json:"remarks"`
	Decision      string     `db:"DECISION" json:"decision"`
	CreatedTime   int64      `db:"CREATED_TIME" json:"createdAt"`
	UpdatedTime   int64      `db:"UPDATED_TIME" json:"updatedAt"`
}
