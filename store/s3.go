// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"bytes"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

type S3Filesystem struct {
	svc          s3iface.S3API
	staticBucket string
}

func NewS3Filesystem(session *session.Session, stage string) (*S3Filesystem, error) {
	return NewS3FilesystemFromIface(s3.New(session), BucketName(stage)), nil
}

func NewS3FilesystemFromIface(svc s3iface.S3API, bucket string) *S3Filesystem {
	return &S3Filesystem{svc: svc, staticBucket: bucket}
}

func BucketName(stage string) string {
	return "simplex-" + stage + "-static"
}

func (s3Filesystem *S3Filesystem) UploadStaticFile(filename string, secondsCache int, data []byte) error {
	readSeeker := bytes.NewReader(data)

	// Patch S3's limited vocabulary of default content types
	var contentType *string
	if mime := ContentType(filename); mime != "" {
		contentType = aws.String(mime)
	}

	req, _ := s3Filesystem.svc.PutObjectRequest(&s3.PutObjectInput{
		Bucket:       aws.String(s3Filesystem.staticBucket),
		Key:          aws.String(filename),
		Body:         readSeeker,
		CacheControl: aws.String(cacheControl(secondsCache)),
		ContentType:  contentType,
	})
	err := req.Send()
	if err != nil {
		return fmt.Errorf("upload %s to %s: %w", filename, s3Filesystem.staticBucket, err)
	}
	return nil
}

func cacheControl(secondsCache int) string {
	return fmt.Sprintf("no-transform, public, max-age=%d", secondsCache)
}
