package cache

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
)

// fakeClient answers commands from an in-memory map.
type fakeClient struct {
	data map[string]string
	err  error
}

func newFakeClient() *fakeClient {
	return &fakeClient{data: map[string]string{}}
}

func (f *fakeClient) Ping(ctx context.Context) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx)
	cmd.SetVal("PONG")
	cmd.SetErr(f.err)
	return cmd
}

func (f *fakeClient) Set(ctx context.Context, key string, value interface{}, _ time.Duration) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx)
	if f.err != nil {
		cmd.SetErr(f.err)
		return cmd
	}
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	}
	cmd.SetVal("OK")
	return cmd
}

func (f *fakeClient) Get(ctx context.Context, key string) *redis.StringCmd {
	cmd := redis.NewStringCmd(ctx)
	if f.err != nil {
		cmd.SetErr(f.err)
		return cmd
	}
	v, ok := f.data[key]
	if !ok {
		cmd.SetErr(redis.Nil)
		return cmd
	}
	cmd.SetVal(v)
	return cmd
}

func (f *fakeClient) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx)
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	cmd.SetVal(n)
	return cmd
}

func (f *fakeClient) Exists(ctx context.Context, keys ...string) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx)
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			n++
		}
	}
	cmd.SetVal(n)
	return cmd
}

func (f *fakeClient) Close() error { return nil }

type point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func TestRedisCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := NewRedisCache(newFakeClient())

	var got point
	if err := c.Get(ctx, "missing", &got); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("Get(missing) err = %v, want ErrCacheMiss", err)
	}

	if err := c.Set(ctx, "k", point{Lat: 59.33, Lon: 18.06}, time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := c.Get(ctx, "k", &got); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Lat != 59.33 || got.Lon != 18.06 {
		t.Errorf("Get = %+v", got)
	}
	if ok, _ := c.Exists(ctx, "k"); !ok {
		t.Error("Exists(k) = false after Set")
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if ok, _ := c.Exists(ctx, "k"); ok {
		t.Error("Exists(k) = true after Delete")
	}
}

func TestRedisCacheErrorsAreWrapped(t *testing.T) {
	f := newFakeClient()
	f.err = errors.New("connection refused")
	c := NewRedisCache(f)

	var got point
	err := c.Get(context.Background(), "k", &got)
	var cerr *CacheError
	if !errors.As(err, &cerr) || cerr.Operation != "get" || !cerr.Retryable {
		t.Fatalf("Get err = %v, want retryable get CacheError", err)
	}
}

func TestGeocodeKey(t *testing.T) {
	a := GeocodeKey("nominatim", "Fleminggatan 7,  Stockholm")
	b := GeocodeKey("nominatim", "  fleminggatan 7, stockholm ")
	if a != b {
		t.Errorf("equivalent queries produced different keys: %s vs %s", a, b)
	}
	if !strings.HasPrefix(a, "geocode:v1:nominatim:") {
		t.Errorf("unexpected key %s", a)
	}
	if a == GeocodeKey("google", "Fleminggatan 7, Stockholm") {
		t.Error("providers must not share keys")
	}
}
