package twitter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/avkuznetsov/tweetlens/pkg/models"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient("test-token")
	if err != nil {
		t.Fatal(err)
	}
	client.baseURL = server.URL
	return client, server
}

func TestNewClient_RejectsMissingToken(t *testing.T) {
	for _, token := range []string{"", "   ", "YOUR_BEARER_TOKEN", "your_bearer_token_here"} {
		if _, err := NewClient(token); !errors.Is(err, ErrAuth) {
			t.Errorf("NewClient(%q) err = %v, want ErrAuth", token, err)
		}
	}
}

func TestClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		check  func(t *testing.T, err error)
		name   string
		status int
	}{
		{
			name:   "unauthorized",
			status: http.StatusUnauthorized,
			check: func(t *testing.T, err error) {
				if !errors.Is(err, ErrAuth) {
					t.Errorf("expected ErrAuth, got %v", err)
				}
			},
		},
		{
			name:   "forbidden",
			status: http.StatusForbidden,
			check: func(t *testing.T, err error) {
				if !errors.Is(err, ErrAuth) {
					t.Errorf("expected ErrAuth, got %v", err)
				}
			},
		},
		{
			name:   "not found",
			status: http.StatusNotFound,
			check: func(t *testing.T, err error) {
				if !errors.Is(err, ErrNotFound) {
					t.Errorf("expected ErrNotFound, got %v", err)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))

			_, err := client.LookupUser(context.Background(), "someone")
			if err == nil {
				t.Fatal("expected error")
			}
			tt.check(t, err)
		})
	}
}

func TestClient_RateLimitRetryAfter(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "120")
		w.WriteHeader(http.StatusTooManyRequests)
	}))

	_, err := client.LookupUser(context.Background(), "someone")

	var rle *RateLimitError
	if !errors.As(err, &rle) {
		t.Fatalf("expected RateLimitError, got %v", err)
	}
	if rle.RetryAfter != 2*time.Minute {
		t.Errorf("retry after = %s, want 2m", rle.RetryAfter)
	}
}

func TestClient_RateLimitResetHeader(t *testing.T) {
	reset := time.Now().Add(90 * time.Second).Unix()
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("x-rate-limit-reset", strconv.FormatInt(reset, 10))
		w.WriteHeader(http.StatusTooManyRequests)
	}))

	_, err := client.LookupUser(context.Background(), "someone")

	var rle *RateLimitError
	if !errors.As(err, &rle) {
		t.Fatalf("expected RateLimitError, got %v", err)
	}
	if rle.RetryAfter <= 0 || rle.RetryAfter > 2*time.Minute {
		t.Errorf("retry after out of expected range: %s", rle.RetryAfter)
	}
}

func TestClient_LookupUser_NullData(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data": null}`)
	}))

	_, err := client.LookupUser(context.Background(), "ghost")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for null user data, got %v", err)
	}
}

func TestClient_FetchUserPosts(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/by/username/gopher", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data": {"id": "42", "username": "gopher"}}`)
	})
	mux.HandleFunc("/users/42/tweets", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("pagination_token") == "page2" {
			fmt.Fprint(w, `{
				"data": [
					{"id": "3", "text": "third", "created_at": "2024-01-03T09:00:00Z",
					 "public_metrics": {"like_count": 1}}
				],
				"meta": {}
			}`)
			return
		}
		fmt.Fprint(w, `{
			"data": [
				{"id": "1", "text": "first", "created_at": "2024-01-01T10:00:00Z",
				 "public_metrics": {"like_count": 5, "retweet_count": 2}},
				{"id": "2", "text": "bad timestamp", "created_at": "not-a-time"},
				{"id": "r1", "text": "a reply", "created_at": "2024-01-02T08:00:00Z",
				 "referenced_tweets": [{"type": "replied_to"}]}
			],
			"meta": {"next_token": "page2"}
		}`)
	})

	client, _ := newTestClient(t, mux)

	posts, err := client.FetchUserPosts(context.Background(), "gopher", models.FetchOptions{MaxResults: 10})
	if err != nil {
		t.Fatalf("FetchUserPosts: %v", err)
	}

	if len(posts) != 3 {
		t.Fatalf("expected 3 posts (malformed timestamp dropped), got %d", len(posts))
	}
	if posts[0].ID != "1" || posts[0].Likes != 5 || posts[0].Retweets != 2 {
		t.Errorf("first post mapped wrong: %+v", posts[0])
	}
	if posts[0].Author != "gopher" {
		t.Errorf("author = %q, want gopher", posts[0].Author)
	}
	if !posts[1].IsReply {
		t.Error("referenced replied_to tweet must be flagged IsReply")
	}
	if posts[2].ID != "3" {
		t.Errorf("pagination did not reach second page: %+v", posts[2])
	}
}

func TestClient_FetchUserPosts_RespectsMaxResults(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/by/username/gopher", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data": {"id": "42", "username": "gopher"}}`)
	})
	mux.HandleFunc("/users/42/tweets", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"data": [
				{"id": "1", "text": "a", "created_at": "2024-01-01T10:00:00Z"},
				{"id": "2", "text": "b", "created_at": "2024-01-01T11:00:00Z"},
				{"id": "3", "text": "c", "created_at": "2024-01-01T12:00:00Z"}
			],
			"meta": {"next_token": "more"}
		}`)
	})

	client, _ := newTestClient(t, mux)

	posts, err := client.FetchUserPosts(context.Background(), "gopher", models.FetchOptions{MaxResults: 2})
	if err != nil {
		t.Fatalf("FetchUserPosts: %v", err)
	}
	if len(posts) != 2 {
		t.Errorf("expected fetch capped at 2 posts, got %d", len(posts))
	}
}

func TestPageSize(t *testing.T) {
	tests := []struct {
		remaining, expected int
	}{
		{1, 5},
		{5, 5},
		{50, 50},
		{100, 100},
		{250, 100},
	}
	for _, tt := range tests {
		if got := pageSize(tt.remaining); got != tt.expected {
			t.Errorf("pageSize(%d) = %d, want %d", tt.remaining, got, tt.expected)
		}
	}
}
