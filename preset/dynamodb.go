// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package preset

import (
	"errors"
	"time"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/guregu/dynamo"
)

type DynamoDBDatabase struct {
	db           *dynamo.DB
	presetsTable dynamo.Table
}

func NewDynamoDBDatabase(session *session.Session, stage string) (*DynamoDBDatabase, error) {
	return NewDynamoDBDatabaseFromIface(dynamodb.New(session), stage), nil
}

// NewDynamoDBDatabaseFromIface allows a custom or local DynamoDB client.
func NewDynamoDBDatabaseFromIface(svc dynamodbiface.DynamoDBAPI, stage string) *DynamoDBDatabase {
	ddb := &DynamoDBDatabase{db: dynamo.NewFromIface(svc)}
	ddb.presetsTable = ddb.db.Table(TableName(stage))
	return ddb
}

// TableName is the name of the presets table, keyed by "name".
func TableName(stage string) string {
	return "simplex-" + stage + "-presets"
}

func (ddb *DynamoDBDatabase) UpdatePreset(preset Preset) error {
	preset.Updated = time.Now().Unix()
	return ddb.presetsTable.Put(preset).Run()
}

func (ddb *DynamoDBDatabase) CreatePreset(preset Preset) error {
	preset.Updated = time.Now().Unix()
	err := ddb.presetsTable.Put(preset).If("attribute_not_exists($)", "name").Run()
	if err != nil {
		if _, ok := err.(*dynamodb.ConditionalCheckFailedException); ok {
			return ErrExists
		}
	}
	return err
}

func (ddb *DynamoDBDatabase) ReadPreset(name string) (preset Preset, err error) {
	err = ddb.presetsTable.Get("name", name).One(&preset)
	if errors.Is(err, dynamo.ErrNotFound) {
		err = ErrNotFound
	}
	return
}

func (ddb *DynamoDBDatabase) ReadPresets() (presets []Preset, err error) {
	query := ddb.presetsTable.Scan().Iter()

	for {
		var preset Preset
		ok := query.Next(&preset)
		if !ok {
			err = query.Err()
			return
		}
		presets = append(presets, preset)
	}
}

func (ddb *DynamoDBDatabase) DeletePreset(name string) error {
	return ddb.presetsTable.Delete("name", name).Run()
}
