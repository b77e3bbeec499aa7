package dynamo

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-otp-mailer/internal/domain"
)

// itemAPI is the subset of the DynamoDB client used by OTPRepo.
type itemAPI interface {
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, in *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// OTPRepo stores one OTP record per email address.
// PK: email
type OTPRepo struct {
	client    itemAPI
	tableName string
}

func NewOTPRepo(client itemAPI, tableName string) *OTPRepo {
	return &OTPRepo{client: client, tableName: tableName}
}

// Put replaces any existing record for rec.Email.
func (r *OTPRepo) Put(ctx context.Context, rec *domain.OTPRecord) error {
	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return fmt.Errorf("marshal otp record: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

// Get returns domain.ErrNotFound when no record exists for email.
func (r *OTPRepo) Get(ctx context.Context, email string) (*domain.OTPRecord, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            strKey(fieldEmail, email),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, domain.ErrNotFound
	}
	var rec domain.OTPRecord
	if err := attributevalue.UnmarshalMap(out.Item, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal otp record: %w", err)
	}
	return &rec, nil
}

// MarkConsumed flips consumed to true only while the stored record is
// unconsumed and still holds code. Returns domain.ErrConflict otherwise.
func (r *OTPRepo) MarkConsumed(ctx context.Context, email, code string) error {
	ue, err := buildUpdateExpr(map[string]interface{}{fieldConsumed: true})
	if err != nil {
		return err
	}
	cond := ue.where(fieldConsumed, &types.AttributeValueMemberBOOL{Value: false}) +
		" AND " + ue.where(fieldCode, &types.AttributeValueMemberS{Value: code})

	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey(fieldEmail, email),
		UpdateExpression:          aws.String(ue.Expr),
		ConditionExpression:       aws.String(cond),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return conditional(err)
}

// DeleteIssue removes the record for email only if it still belongs to issueID,
// so a newer issuance is never removed. Returns domain.ErrConflict otherwise.
func (r *OTPRepo) DeleteIssue(ctx context.Context, email, issueID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:                aws.String(r.tableName),
		Key:                      strKey(fieldEmail, email),
		ConditionExpression:      aws.String("#iid = :iid"),
		ExpressionAttributeNames: map[string]string{"#iid": fieldIssueID},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":iid": &types.AttributeValueMemberS{Value: issueID},
		},
	})
	return conditional(err)
}

func conditional(err error) error {
	var ccf *types.ConditionalCheckFailedException
	if errors.As(err, &ccf) {
		return domain.ErrConflict
	}
	return err
}
