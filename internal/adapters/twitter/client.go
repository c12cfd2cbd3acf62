package twitter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/avkuznetsov/tweetlens/pkg/logger"
	"github.com/avkuznetsov/tweetlens/pkg/models"
)

const (
	defaultBaseURL = "https://api.twitter.com/2"

	// API page size bounds for the user-timeline endpoint
	minPageSize = 5
	maxPageSize = 100
)

var (
	// ErrAuth indicates missing or rejected credentials
	ErrAuth = errors.New("twitter: authentication failed")
	// ErrNotFound indicates an unknown or protected username
	ErrNotFound = errors.New("twitter: user not found")
)

// RateLimitError reports upstream throttling with an optional wait hint
// extracted from response headers
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("twitter: rate limit exceeded, retry after %s", e.RetryAfter)
	}
	return "twitter: rate limit exceeded"
}

// Client wraps the X API v2 endpoints used by the analysis pipeline
type Client struct {
	client      *http.Client
	limiter     *rate.Limiter
	bearerToken string
	baseURL     string
}

// NewClient creates an API client. Placeholder token values from example
// configs are rejected up front so they surface as an auth problem instead
// of a confusing 401 later.
func NewClient(bearerToken string) (*Client, error) {
	token := strings.TrimSpace(bearerToken)
	if token == "" {
		return nil, fmt.Errorf("%w: bearer token is required", ErrAuth)
	}
	switch strings.ToUpper(token) {
	case "YOUR_BEARER_TOKEN", "YOUR_BEARER_TOKEN_HERE":
		return nil, fmt.Errorf("%w: bearer token is a placeholder", ErrAuth)
	}

	return &Client{
		bearerToken: token,
		baseURL:     defaultBaseURL,
		client:      &http.Client{Timeout: 10 * time.Second},
		limiter:     rate.NewLimiter(rate.Every(time.Second), 2),
	}, nil
}

type userResponse struct {
	Data *struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	} `json:"data"`
}

type timelineResponse struct {
	Data []struct {
		ID            string `json:"id"`
		Text          string `json:"text"`
		CreatedAt     string `json:"created_at"`
		PublicMetrics struct {
			LikeCount    int `json:"like_count"`
			RetweetCount int `json:"retweet_count"`
			ReplyCount   int `json:"reply_count"`
			QuoteCount   int `json:"quote_count"`
		} `json:"public_metrics"`
		ReferencedTweets []struct {
			Type string `json:"type"`
		} `json:"referenced_tweets"`
	} `json:"data"`
	Meta struct {
		NextToken string `json:"next_token"`
	} `json:"meta"`
}

// LookupUser resolves a username to its user ID
func (c *Client) LookupUser(ctx context.Context, username string) (string, error) {
	endpoint := fmt.Sprintf("%s/users/by/username/%s", c.baseURL, url.PathEscape(username))

	var resp userResponse
	if err := c.get(ctx, endpoint, &resp); err != nil {
		return "", err
	}
	if resp.Data == nil {
		return "", fmt.Errorf("%w: %s", ErrNotFound, username)
	}

	return resp.Data.ID, nil
}

// FetchUserPosts fetches up to opts.MaxResults recent posts for a username,
// paginating the timeline endpoint. Posts with a malformed created_at are
// dropped before they can enter the pipeline.
func (c *Client) FetchUserPosts(ctx context.Context, username string, opts models.FetchOptions) ([]models.Post, error) {
	userID, err := c.LookupUser(ctx, username)
	if err != nil {
		return nil, err
	}

	var exclude []string
	if opts.ExcludeReplies {
		exclude = append(exclude, "replies")
	}
	if opts.ExcludeRetweets {
		exclude = append(exclude, "retweets")
	}

	remaining := opts.MaxResults
	if remaining < 1 {
		remaining = 1
	}

	posts := make([]models.Post, 0, remaining)
	paginationToken := ""

	for remaining > 0 {
		params := url.Values{}
		params.Set("max_results", strconv.Itoa(pageSize(remaining)))
		params.Set("tweet.fields", "created_at,public_metrics,referenced_tweets")
		if len(exclude) > 0 {
			params.Set("exclude", strings.Join(exclude, ","))
		}
		if opts.StartTime != nil {
			params.Set("start_time", opts.StartTime.UTC().Format(time.RFC3339))
		}
		if opts.EndTime != nil {
			params.Set("end_time", opts.EndTime.UTC().Format(time.RFC3339))
		}
		if paginationToken != "" {
			params.Set("pagination_token", paginationToken)
		}

		endpoint := fmt.Sprintf("%s/users/%s/tweets?%s", c.baseURL, userID, params.Encode())

		var page timelineResponse
		if err := c.get(ctx, endpoint, &page); err != nil {
			return nil, err
		}
		if len(page.Data) == 0 {
			break
		}

		for _, tweet := range page.Data {
			if remaining <= 0 {
				break
			}
			createdAt, err := time.Parse(time.RFC3339, tweet.CreatedAt)
			if err != nil || createdAt.IsZero() {
				logger.Warn("dropping post with malformed timestamp",
					zap.String("id", tweet.ID),
					zap.String("created_at", tweet.CreatedAt),
				)
				continue
			}

			post := models.Post{
				ID:        tweet.ID,
				Author:    username,
				CreatedAt: createdAt.UTC(),
				Text:      tweet.Text,
				Likes:     tweet.PublicMetrics.LikeCount,
				Retweets:  tweet.PublicMetrics.RetweetCount,
				Replies:   tweet.PublicMetrics.ReplyCount,
				Quotes:    tweet.PublicMetrics.QuoteCount,
			}
			for _, ref := range tweet.ReferencedTweets {
				switch ref.Type {
				case "retweeted":
					post.IsRetweet = true
				case "replied_to":
					post.IsReply = true
				}
			}

			posts = append(posts, post)
			remaining--
		}

		paginationToken = page.Meta.NextToken
		if paginationToken == "" {
			break
		}
	}

	logger.Debug("fetched user posts",
		zap.String("username", username),
		zap.Int("count", len(posts)),
	)

	return posts, nil
}

// get performs a paced, authenticated GET and decodes the JSON body,
// mapping upstream failures onto the client's error taxonomy
func (c *Client) get(ctx context.Context, endpoint string, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("twitter: request cancelled: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("twitter: failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.bearerToken)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("twitter: request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w (status %d)", ErrAuth, resp.StatusCode)
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusTooManyRequests:
		return &RateLimitError{RetryAfter: retryAfterFrom(resp.Header)}
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("twitter: unexpected status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("twitter: failed to decode response: %w", err)
	}

	return nil
}

// retryAfterFrom extracts a wait hint from Retry-After or the
// x-rate-limit-reset epoch header
func retryAfterFrom(header http.Header) time.Duration {
	if v := header.Get("Retry-After"); v != "" {
		if seconds, err := strconv.Atoi(v); err == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
	}
	if v := header.Get("x-rate-limit-reset"); v != "" {
		if epoch, err := strconv.ParseInt(v, 10, 64); err == nil {
			if wait := time.Until(time.Unix(epoch, 0)); wait > 0 {
				return wait.Round(time.Second)
			}
		}
	}
	return 0
}

func pageSize(remaining int) int {
	if remaining > maxPageSize {
		return maxPageSize
	}
	if remaining < minPageSize {
		return minPageSize
	}
	return remaining
}
