package clients

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/valkey-io/valkey-go"
)

const VALKEY_SCORE_PREFIX = "aspectflow:score:"

type ValkeyOptions struct {
	Address  string
	Password string
	UseTLS   bool
	TTL      time.Duration
}

// ValkeyClient stores sentiment class indexes keyed by text digest.
type ValkeyClient struct {
	Client valkey.Client
	ttl    time.Duration
}

func NewValkeyClient(ctx context.Context, o ValkeyOptions) (*ValkeyClient, error) {
	opts := valkey.ClientOption{
		InitAddress:      []string{o.Address},
		Password:         o.Password,
		ConnWriteTimeout: 5 * time.Second,
		SelectDB:         0,
	}
	if o.UseTLS {
		opts.TLSConfig = &tls.Config{InsecureSkipVerify: false}
	}

	client, err := valkey.NewClient(opts)
	if err != nil {
		return nil, fmt.Errorf("[ValkeyClient] failed to create Valkey: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, time.Second*3)
	defer cancel()

	if err := client.Do(pingCtx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("[ValkeyClient] failed to ping Valkey: %w", err)
	}

	slog.Info("[ValkeyClient] Successfully connected to valkey", slog.String("address", o.Address))
	return &ValkeyClient{Client: client, ttl: o.TTL}, nil
}

func (vc *ValkeyClient) Close() {
	vc.Client.Close()
}

// GetScore returns the cached class for digest; ok is false on a miss.
func (vc *ValkeyClient) GetScore(ctx context.Context, digest string) (int, bool, error) {
	res := vc.Client.Do(ctx, vc.Client.B().Get().Key(VALKEY_SCORE_PREFIX+digest).Build())
	raw, err := res.ToString()
	if valkey.IsValkeyNil(err) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	class, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, fmt.Errorf("corrupt cached score %q: %w", raw, err)
	}
	return class, true, nil
}

func (vc *ValkeyClient) SetScore(ctx context.Context, digest string, class int) error {
	key := VALKEY_SCORE_PREFIX + digest
	value := strconv.Itoa(class)

	var cmd valkey.Completed
	if vc.ttl > 0 {
		cmd = vc.Client.B().Set().Key(key).Value(value).ExSeconds(int64(vc.ttl.Seconds())).Build()
	} else {
		cmd = vc.Client.B().Set().Key(key).Value(value).Build()
	}
	return vc.Client.Do(ctx, cmd).Error()
}
