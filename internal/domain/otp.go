package domain

import "time"

// OTPRecord is the one-time passcode state for an email address.
// PK: email. A new issuance replaces the whole item.
//
// IssuedAt is authoritative for expiry; ExpiresAt is kept as part of the
// record and is never read by the verifier. PurgeAt is the storage TTL
// attribute (DynamoDB TTL, Mongo TTL index). It lies a retention period past
// expiry so expired and consumed records still answer as such until reaped.
type OTPRecord struct {
	Email     string    `dynamodbav:"email" bson:"_id"`
	IssueID   string    `dynamodbav:"issue_id" bson:"issue_id"`
	Code      string    `dynamodbav:"code" bson:"code"`
	IssuedAt  time.Time `dynamodbav:"issued_at,unixtime" bson:"issued_at"`
	ExpiresAt time.Time `dynamodbav:"expires_at,unixtime" bson:"expires_at"`
	PurgeAt   time.Time `dynamodbav:"purge_at,unixtime" bson:"purge_at"`
	Consumed  bool      `dynamodbav:"consumed" bson:"consumed"`
}

// Expired reports whether more than ttl has elapsed since issuance.
// Elapsed time is measured in whole seconds, so exactly ttl is still valid.
func (r *OTPRecord) Expired(now time.Time, ttl time.Duration) bool {
	elapsed := now.Unix() - r.IssuedAt.Unix()
	return elapsed > int64(ttl/time.Second)
}
