package asana

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/smallbiznis/invoicer/internal/invoice/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchCompletedNoToken(t *testing.T) {
	c := New("", "ws")

	tasks, err := c.FetchCompleted(context.Background(), time.Now(), time.Now())
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestFetchCompleted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		switch r.URL.Path {
		case "/projects":
			assert.Equal(t, "ws", r.URL.Query().Get("workspace"))
			fmt.Fprint(w, `{"data":[{"gid":"p1","name":"Platform"},{"gid":"p2","name":"Docs"}]}`)
		case "/tasks":
			assert.Equal(t, "me", r.URL.Query().Get("assignee"))
			assert.Equal(t, "2024-03-01", r.URL.Query().Get("completed_since"))
			fmt.Fprint(w, `{"data":[
				{"gid":"t1","name":"Fix build","completed":true,"completed_at":"2024-03-05T10:00:00Z","projects":[{"gid":"p1"}]},
				{"gid":"t2","name":"Write docs","completed":true,"completed_at":"2024-03-02T08:00:00Z","projects":[{"gid":"p2"}]},
				{"gid":"t3","name":"Still open","completed":false},
				{"gid":"t4","name":"Too late","completed":true,"completed_at":"2024-04-02T08:00:00Z"},
				{"gid":"t5","name":"Too early","completed":true,"completed_at":"2024-02-28T08:00:00Z"}
			]}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := New("tok", "ws", WithBaseURL(srv.URL))

	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	tasks, err := c.FetchCompleted(context.Background(), from, to)
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	// Sorted by completion time.
	assert.Equal(t, "t2", tasks[0].GID)
	assert.Equal(t, "t1", tasks[1].GID)
	assert.Equal(t, []string{"Platform"}, tasks[1].Projects)
	assert.Equal(t, "Fix build (Platform, 05.03.2024)", tasks[1].Description())
	assert.Equal(t, "Write docs (Docs, 02.03.2024)", tasks[0].Description())
}

func TestFetchCompletedPagination(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/projects":
			fmt.Fprint(w, `{"data":[]}`)
		case "/tasks":
			if r.URL.Query().Get("offset") == "" {
				fmt.Fprint(w, `{"data":[{"gid":"t1","name":"One","completed":true,"completed_at":"2024-03-02T00:00:00Z"}],"next_page":{"offset":"abc"}}`)
			} else {
				assert.Equal(t, "abc", r.URL.Query().Get("offset"))
				fmt.Fprint(w, `{"data":[{"gid":"t2","name":"Two","completed":true,"completed_at":"2024-03-03T00:00:00Z"}]}`)
			}
		}
	}))
	defer srv.Close()

	c := New("tok", "ws", WithBaseURL(srv.URL))
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	tasks, err := c.FetchCompleted(context.Background(), from, to)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "t2", tasks[1].GID)
}

func TestFetchCompletedRemoteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := New("bad-token", "ws", WithBaseURL(srv.URL))

	_, err := c.FetchCompleted(context.Background(), time.Now(), time.Now())
	assert.ErrorIs(t, err, domain.ErrRemote)
}

func TestBreakLongWords(t *testing.T) {
	assert.Equal(t, "short words stay", breakLongWords("short words stay", 20))

	got := breakLongWords("averyveryverylongidentifier", 10)
	assert.Equal(t, "averyveryv​erylongide​ntifier", got)
}
