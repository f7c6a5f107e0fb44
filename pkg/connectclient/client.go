package connectclient

import (
	"context"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/connect"
)

// InstanceSummary is the subset of an Amazon Connect instance the console uses.
type InstanceSummary struct {
	ID    string
	Alias string
}

// Client lists Amazon Connect instances region by region. Each region gets
// its own SDK client and circuit breaker; rate limiting is shared.
type Client struct {
	cfg     Config
	aws     aws.Config
	retry   RetryPolicy
	limiter *RateLimiter

	mu       sync.Mutex
	regional map[string]*regionalClient
}

type regionalClient struct {
	api     *connect.Client
	breaker CircuitBreaker
}

func NewFromEnv(ctx context.Context) (*Client, error) {
	return New(ctx, LoadFromEnv())
}

func New(ctx context.Context, cfg Config) (*Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		// RetryPolicy owns retries so the breaker sees every attempt.
		awsconfig.WithRetryMaxAttempts(1),
	}
	if cfg.Profile != "" {
		opts = append(opts, awsconfig.WithSharedConfigProfile(cfg.Profile))
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, cfg.SessionToken),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &Client{
		cfg: cfg,
		aws: awsCfg,
		retry: RetryPolicy{
			MaxRetries: cfg.RetryCount,
			BaseDelay:  cfg.RetryDelay,
		},
		limiter:  NewRateLimiter(cfg.RateLimit, cfg.RateBurst),
		regional: make(map[string]*regionalClient),
	}, nil
}

// ListInstances returns every instance in region, following pagination.
func (c *Client) ListInstances(ctx context.Context, region string) ([]InstanceSummary, error) {
	if region == "" {
		return nil, fmt.Errorf("connect client: region is required")
	}
	rc := c.client(region)

	var out []InstanceSummary
	err := c.retry.Do(ctx, true, func() error {
		out = out[:0]
		return rc.breaker.Execute(func() error {
			return toAPIError(region, c.listAll(ctx, rc.api, &out))
		})
	})
	if err != nil {
		return nil, toAPIError(region, err)
	}
	return out, nil
}

func (c *Client) listAll(ctx context.Context, api *connect.Client, out *[]InstanceSummary) error {
	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	input := &connect.ListInstancesInput{}
	if c.cfg.PageSize > 0 {
		input.MaxResults = aws.Int32(c.cfg.PageSize)
	}

	pages := connect.NewListInstancesPaginator(api, input)
	for pages.HasMorePages() {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
		page, err := pages.NextPage(ctx)
		if err != nil {
			return err
		}
		for _, s := range page.InstanceSummaryList {
			*out = append(*out, InstanceSummary{
				ID:    aws.ToString(s.Id),
				Alias: aws.ToString(s.InstanceAlias),
			})
		}
	}
	return nil
}

func (c *Client) client(region string) *regionalClient {
	c.mu.Lock()
	defer c.mu.Unlock()

	if rc, ok := c.regional[region]; ok {
		return rc
	}

	api := connect.NewFromConfig(c.aws, func(o *connect.Options) {
		o.Region = region
		if c.cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(c.cfg.Endpoint)
		}
	})
	rc := &regionalClient{
		api:     api,
		breaker: NewCircuitBreaker(region, c.cfg),
	}
	c.regional[region] = rc
	return rc
}
