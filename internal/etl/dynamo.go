package etl

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"

	"github.com/dataplatform-io/dynoshift/pkg/logger"
	"github.com/dataplatform-io/dynoshift/pkg/models"
)

// DynamoGateway reads table names, key schemas and full table contents
// from DynamoDB.
type DynamoGateway struct {
	Client dynamodbiface.DynamoDBAPI
}

func NewDynamoGateway(sess *session.Session) *DynamoGateway {
	return &DynamoGateway{Client: dynamodb.New(sess)}
}

// ListTables returns every table name in the source store.
func (g *DynamoGateway) ListTables() ([]string, error) {
	var names []string
	input := &dynamodb.ListTablesInput{}

	for {
		out, err := g.Client.ListTables(input)
		if err != nil {
			if isCredentialFailure(err) {
				logger.Errorf("AWS credentials not found: %v", err)
				return nil, &CredentialError{Err: err}
			}
			logger.Errorf("Failed to list tables: %v", err)
			return nil, &SourceStoreError{Err: err}
		}
		for _, name := range out.TableNames {
			names = append(names, aws.StringValue(name))
		}
		if out.LastEvaluatedTableName == nil {
			break
		}
		input.ExclusiveStartTableName = out.LastEvaluatedTableName
	}

	return names, nil
}

// ScanTable discovers the table's partition key and pulls all of its items,
// following the continuation token until the scan is exhausted. All pages
// are accumulated before returning, so memory is bounded by full-table size.
func (g *DynamoGateway) ScanTable(name string) (*models.TableScan, error) {
	pk, err := g.partitionKey(name)
	if err != nil {
		return nil, err
	}

	var items []models.Record
	input := &dynamodb.ScanInput{TableName: aws.String(name)}

	for {
		out, err := g.Client.Scan(input)
		if err != nil {
			logger.Errorf("Scan of table %s failed: %v", name, err)
			return nil, &SourceStoreError{Table: name, Err: err}
		}
		for _, item := range out.Items {
			var rec models.Record
			if err := dynamodbattribute.UnmarshalMap(item, &rec); err != nil {
				return nil, &SourceStoreError{Table: name, Err: err}
			}
			items = append(items, rec)
		}
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}

	return &models.TableScan{
		Table: models.TableDescriptor{Name: name, PartitionKey: pk},
		Items: items,
	}, nil
}

// partitionKey inspects the table's key schema for the HASH key attribute.
func (g *DynamoGateway) partitionKey(name string) (string, error) {
	out, err := g.Client.DescribeTable(&dynamodb.DescribeTableInput{
		TableName: aws.String(name),
	})
	if err != nil {
		logger.Errorf("Describe of table %s failed: %v", name, err)
		return "", &SourceStoreError{Table: name, Err: err}
	}

	for _, key := range out.Table.KeySchema {
		if aws.StringValue(key.KeyType) == dynamodb.KeyTypeHash {
			return aws.StringValue(key.AttributeName), nil
		}
	}
	return "", &SchemaError{Table: name}
}

func isCredentialFailure(err error) bool {
	aerr, ok := err.(awserr.Error)
	if !ok {
		return false
	}
	switch aerr.Code() {
	case "NoCredentialProviders", "MissingAuthenticationToken",
		"UnrecognizedClientException", "ExpiredTokenException":
		return true
	}
	if orig := aerr.OrigErr(); orig != nil {
		return isCredentialFailure(orig)
	}
	return false
}
