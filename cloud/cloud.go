// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cloud connects the preset database and static file store to AWS.
package cloud

import (
	"strings"

	"github.com/SoftbearStudios/simplex/preset"
	"github.com/SoftbearStudios/simplex/store"
)

type Cloud struct {
	region   string
	stage    string
	Database *preset.DynamoDBDatabase
	FS       *store.S3Filesystem
}

func (cloud *Cloud) String() string {
	var builder strings.Builder
	builder.WriteByte('[')
	if cloud == nil {
		builder.WriteString("offline")
	} else {
		builder.WriteString(cloud.region)
		builder.WriteByte(' ')
		builder.WriteString(cloud.stage)
	}
	builder.WriteByte(']')
	return builder.String()
}

// New connects using region and stage, or the instance's user data if either is
// empty. Returns nil cloud on error.
func New(region, stage string) (*Cloud, error) {
	if region == "" || stage == "" {
		userData, err := loadUserData()
		if err != nil {
			return nil, err
		}
		if region == "" {
			region = userData.Region
		}
		if stage == "" {
			stage = userData.Stage
		}
	}

	session, err := getAWSSession(region)
	if err != nil {
		return nil, err
	}

	cloud := &Cloud{region: region, stage: stage}
	cloud.Database, err = preset.NewDynamoDBDatabase(session, stage)
	if err != nil {
		return nil, err
	}
	cloud.FS, err = store.NewS3Filesystem(session, stage)
	if err != nil {
		return nil, err
	}
	return cloud, nil
}
