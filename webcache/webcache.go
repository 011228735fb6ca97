/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 *
 * Package webcache provides an implementation of httpcache.Cache that stores
 * and retrieves fetched ranking pages in Amazon S3. Keys are hashed so that
 * arbitrary URLs map onto valid object names.
 */
package webcache

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

const objectPrefix = "webcache/v1"

// Options configures a Cache.
type Options struct {
	// Bucket is the S3 bucket holding cached pages.
	Bucket string

	// Gzip compresses entries in Set and decompresses them in Get. Keys of
	// compressed entries carry a ".gz" suffix so both forms can coexist.
	Gzip bool

	// Quiet suppresses error logging; lookups then fail as plain misses.
	Quiet bool
}

// Cache objects store and retrieve data using Amazon S3.
type Cache struct {
	// Config is the Amazon S3 configuration.
	Config aws.Config

	// Client is the s3 client the cache uses. By default this is
	// initialized in Init() with the default Config, but callers can
	// optionally override it with their own client if desired.
	Client *s3.Client

	opts Options
	ctx  context.Context
}

// New returns a new Cache with underlying storage in the specified Amazon S3
// bucket. Callers should invoke Init() on the returned Cache before use.
func New(ctx context.Context, opts Options) *Cache {
	return &Cache{
		ctx:  ctx,
		opts: opts,
	}
}

// Init loads AWS configuration from the default sources (environment
// variables, shared config/credentials files) and probes the bucket for
// access. To use different credentials, modify the returned Cache object's
// Config and Client fields afterwards.
func (c *Cache) Init() error {
	var err error
	c.Config, err = config.LoadDefaultConfig(c.ctx)
	if err != nil {
		return fmt.Errorf("webcache.init: failed to load AWS config: %w", err)
	}
	c.Client = s3.NewFromConfig(c.Config)

	if _, err = c.Client.HeadBucket(c.ctx, &s3.HeadBucketInput{
		Bucket: aws.String(c.opts.Bucket),
	}); err != nil {
		return fmt.Errorf("webcache.init: head bucket failed for %s: %w",
			c.opts.Bucket, err)
	}
	if _, err = c.Client.ListObjectsV2(c.ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(c.opts.Bucket),
		MaxKeys: aws.Int32(1),
	}); err != nil {
		return fmt.Errorf("webcache.init: list objects failed for %s: %w",
			c.opts.Bucket, err)
	}

	return nil
}

func (c *Cache) Get(key string) ([]byte, bool) {
	input := &s3.GetObjectInput{
		Bucket: aws.String(c.opts.Bucket),
		Key:    aws.String(c.objectKey(key)),
	}

	resp, err := c.Client.GetObject(c.ctx, input)
	if err != nil {
		if !c.opts.Quiet {
			var apiErr smithy.APIError
			// no such key just indicates a cache miss
			if !(errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchKey") {
				log.Printf("webcache.get: failed to get object %v/%v: %v",
					*input.Bucket, *input.Key, err)
			}
		}
		return nil, false
	}
	defer resp.Body.Close()

	rdr := io.ReadCloser(resp.Body)
	if c.opts.Gzip {
		rdr, err = gzip.NewReader(rdr)
		if err != nil {
			if !c.opts.Quiet {
				log.Printf("webcache.get: failed to open compressed object %v/%v: %v",
					*input.Bucket, *input.Key, err)
			}
			return nil, false
		}
		defer rdr.Close()
	}

	data, err := io.ReadAll(rdr)
	if err != nil {
		if !c.opts.Quiet {
			log.Printf("webcache.get: failed to read object %v/%v: %v",
				*input.Bucket, *input.Key, err)
		}
		return nil, false
	}

	return data, true
}

// Set stores the provided data in the cache under the given key.
func (c *Cache) Set(key string, data []byte) {
	input := &s3.PutObjectInput{
		Bucket: aws.String(c.opts.Bucket),
		Key:    aws.String(c.objectKey(key)),
		Body:   bytes.NewReader(data),
	}

	if c.opts.Gzip {
		var buf bytes.Buffer
		gw := gzip.NewWriter(&buf)
		if _, err := gw.Write(data); err != nil {
			if !c.opts.Quiet {
				log.Printf("webcache.set: failed to gzip data for %v/%v: %v",
					*input.Bucket, *input.Key, err)
			}
			return
		}
		if err := gw.Close(); err != nil {
			if !c.opts.Quiet {
				log.Printf("webcache.set: failed to close gzip writer for %v/%v: %v",
					*input.Bucket, *input.Key, err)
			}
			return
		}
		input.Body = &buf
		input.ContentEncoding = aws.String("gzip")
	}

	if _, err := c.Client.PutObject(c.ctx, input); err != nil {
		if !c.opts.Quiet {
			log.Printf("webcache.set: put failed for %v/%v: %v", *input.Bucket,
				*input.Key, err)
		}
	}
}

func (c *Cache) Delete(key string) {
	input := &s3.DeleteObjectInput{
		Bucket: aws.String(c.opts.Bucket),
		Key:    aws.String(c.objectKey(key)),
	}

	if _, err := c.Client.DeleteObject(c.ctx, input); err != nil {
		if !c.opts.Quiet {
			log.Printf("webcache.delete: delete failed: %v", err)
		}
	}
}

func (c *Cache) objectKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	objKey := fmt.Sprintf("%v/%v", objectPrefix, hex.EncodeToString(sum[:]))
	if c.opts.Gzip {
		objKey += ".gz"
	}

	return objKey
}
