package db

import (
	"strconv"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/jsphweid/pianoscribe/model"
	"github.com/jsphweid/pianoscribe/util"
	"github.com/pkg/errors"
)

// DynamoDB caps BatchGetItem at 100 keys
const maxBatch = 100

type MetadataStore struct {
	client dynamodbiface.DynamoDBAPI
	table  string
}

func NewMetadataStore(endpoint, table string) (*MetadataStore, error) {
	sess, err := session.NewSession(&aws.Config{
		Region:   aws.String("localhost"),
		Endpoint: aws.String(endpoint),
	})
	if err != nil {
		return nil, errors.Wrap(err, "could not create a new DynamoDB session")
	}
	return NewMetadataStoreWithClient(dynamodb.New(sess), table), nil
}

func NewMetadataStoreWithClient(client dynamodbiface.DynamoDBAPI, table string) *MetadataStore {
	return &MetadataStore{client: client, table: table}
}

// GetPieceMetadatas looks up metadata by media filename. Files without an
// entry are absent from the result.
func (m *MetadataStore) GetPieceMetadatas(filenames []string) (map[string]model.PieceMetadata, error) {
	res := make(map[string]model.PieceMetadata)

	for start := 0; start < len(filenames); start += maxBatch {
		end := util.Min(start+maxBatch, len(filenames))

		var keys []map[string]*dynamodb.AttributeValue
		for _, filename := range filenames[start:end] {
			keys = append(keys, map[string]*dynamodb.AttributeValue{
				"PK": {S: aws.String(filename)},
			})
		}

		input := &dynamodb.BatchGetItemInput{
			RequestItems: map[string]*dynamodb.KeysAndAttributes{
				m.table: {Keys: keys},
			},
		}
		out, err := m.client.BatchGetItem(input)
		if err != nil {
			return nil, errors.Wrap(err, "error from DynamoDB")
		}

		for _, item := range out.Responses[m.table] {
			pk, md := parseItem(item)
			if pk != "" {
				res[pk] = md
			}
		}
	}

	return res, nil
}

func str(item map[string]*dynamodb.AttributeValue, key string) string {
	if v, ok := item[key]; ok && v.S != nil {
		return *v.S
	}
	return ""
}

func parseItem(item map[string]*dynamodb.AttributeValue) (string, model.PieceMetadata) {
	var md model.PieceMetadata
	if v, ok := item["Year"]; ok && v.N != nil {
		year, _ := strconv.ParseUint(*v.N, 10, 32)
		md.Year = uint(year)
	}
	md.Artist = str(item, "Artist")
	md.Release = str(item, "Release")
	md.Title = str(item, "Title")
	return str(item, "PK"), md
}
