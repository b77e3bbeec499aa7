package dynamo

// DynamoDB attribute names used in key, update and condition expressions.
// Using constants prevents silent runtime bugs caused by key typos.
const (
	fieldEmail     = "email"
	fieldIssueID   = "issue_id"
	fieldCode      = "code"
	fieldConsumed  = "consumed"
	fieldPurgeAt   = "purge_at"
)
