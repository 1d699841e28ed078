/*
Package redisdataset provides a set of samples
that uses a Redis list as backend.
*/
package redisdataset

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/pbanos/cart/dataset"
	"github.com/pbanos/cart/dataset/json"
	"github.com/pbanos/cart/feature"
	"gopkg.in/redis.v5"
)

// DefaultPrefix is the key prefix used when a redis URL does not specify one
const DefaultPrefix = "cart"

/*
Set is a set of samples to which samples can be added
and from which samples can be read
*/
type Set interface {
	Read(context.Context) ([]dataset.Sample, error)
	Write(context.Context, []dataset.Sample) (int, error)
	Count(context.Context) (int, error)
}

type redisSet struct {
	rc      *redis.Client
	prefix  string
	sencdec json.SampleEncodeDecoder
}

/*
New takes a redis client, a key prefix and a schema and returns a Set
whose samples are stored as JSON documents on the redis list with key
<prefix>:samples.
*/
func New(rc *redis.Client, prefix string, schema *feature.Schema) Set {
	return &redisSet{rc, prefix, json.New(schema)}
}

/*
ParseURL takes a redis URL in the form redis://[:password@]host[:port][/db][?prefix=p]
and returns the options to build a redis client for it and the key prefix to use.
*/
func ParseURL(rawurl string) (*redis.Options, string, error) {
	u, err := url.Parse(rawurl)
	if err != nil {
		return nil, "", fmt.Errorf("parsing redis URL: %v", err)
	}
	if u.Scheme != "redis" {
		return nil, "", fmt.Errorf("parsing redis URL: invalid scheme %q", u.Scheme)
	}
	opts := &redis.Options{Addr: u.Host}
	if u.Port() == "" {
		opts.Addr = u.Host + ":6379"
	}
	if u.User != nil {
		opts.Password, _ = u.User.Password()
	}
	if db := strings.Trim(u.Path, "/"); db != "" {
		opts.DB, err = strconv.Atoi(db)
		if err != nil {
			return nil, "", fmt.Errorf("parsing redis URL: invalid database %q", db)
		}
	}
	prefix := u.Query().Get("prefix")
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return opts, prefix, nil
}

func (rs *redisSet) Count(context.Context) (int, error) {
	n, err := rs.rc.LLen(rs.key()).Result()
	if err != nil {
		return 0, fmt.Errorf("counting samples in redis: %v", err)
	}
	return int(n), nil
}

func (rs *redisSet) Write(ctx context.Context, samples []dataset.Sample) (int, error) {
	if len(samples) == 0 {
		return 0, nil
	}
	docs := make([]interface{}, 0, len(samples))
	for i, s := range samples {
		data, err := rs.sencdec.Encode(s)
		if err != nil {
			return 0, fmt.Errorf("sample %d: %v", i, err)
		}
		docs = append(docs, string(data))
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := rs.rc.RPush(rs.key(), docs...).Err(); err != nil {
		return 0, fmt.Errorf("writing samples to redis: %v", err)
	}
	return len(samples), nil
}

func (rs *redisSet) Read(ctx context.Context) ([]dataset.Sample, error) {
	docs, err := rs.rc.LRange(rs.key(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("reading samples from redis: %v", err)
	}
	samples := make([]dataset.Sample, 0, len(docs))
	for i, data := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s, err := rs.sencdec.Decode([]byte(data))
		if err != nil {
			return nil, fmt.Errorf("sample %d: %v", i, err)
		}
		samples = append(samples, s)
	}
	return samples, nil
}

func (rs *redisSet) key() string {
	return fmt.Sprintf("%s:samples", rs.prefix)
}
