package mfds

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jipbab-note/backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(Config{
		APIKey:     "test-key",
		BaseURL:    server.URL,
		RetryDelay: time.Millisecond,
	}, zap.NewNop())
	return client, server
}

// The zero Config must yield a working client; in particular a zero
// MaxRetries means the default retry budget, not "no retries".
func TestNewClient_Defaults(t *testing.T) {
	client := NewClient(Config{APIKey: "test-key"}, zap.NewNop())

	assert.Equal(t, defaultBaseURL, client.baseURL)
	assert.Equal(t, defaultTimeout, client.httpClient.Timeout)
	assert.Equal(t, defaultMaxRetries, client.retry.maxRetries)
	assert.Equal(t, defaultRetryDelay, client.retry.delay)
}

const listPayload = `{
	"COOKRCP01": {
		"total_count": "2",
		"RESULT": {"CODE": "INFO-000", "MSG": "정상 처리되었습니다."},
		"row": [
			{
				"RCP_SEQ": "28",
				"RCP_NM": "김치찌개",
				"RCP_PAT2": "국&찌개",
				"RCP_WAY2": "끓이기",
				"INFO_ENG": "320.5",
				"ATT_FILE_NO_MAIN": "http://www.foodsafetykorea.go.kr/uploadimg/kimchi.jpg",
				"RCP_PARTS_DTLS": "김치 300g, 돼지고기 200g",
				"HASH_TAG": "김치"
			},
			{
				"RCP_SEQ": "29",
				"RCP_NM": "된장찌개",
				"RCP_PAT2": "국&찌개",
				"RCP_WAY2": "끓이기",
				"INFO_ENG": "210",
				"RCP_PARTS_DTLS": "된장 2큰술, 두부 1모",
				"HASH_TAG": ""
			}
		]
	}
}`

func TestFetchRecipes_Success(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/test-key/COOKRCP01/json/1/2", r.URL.Path)
		fmt.Fprint(w, listPayload)
	}))

	chunk, err := client.FetchRecipes(context.Background(), 1, 2, domain.RecipeFilter{})
	require.NoError(t, err)

	assert.Equal(t, 2, chunk.TotalCount)
	assert.Equal(t, "INFO-000", chunk.Code)
	assert.Equal(t, "정상 처리되었습니다.", chunk.Message)
	require.Len(t, chunk.Recipes, 2)

	first := chunk.Recipes[0]
	assert.Equal(t, "28", first.ID)
	assert.Equal(t, "김치찌개", first.Name)
	assert.Equal(t, "국&찌개", first.Category)
	assert.Equal(t, "끓이기", first.Method)
	assert.Equal(t, "320.5", first.Calories)
	assert.Equal(t, "https://www.foodsafetykorea.go.kr/uploadimg/kimchi.jpg", first.ThumbnailURL)
	assert.Equal(t, "김치 300g, 돼지고기 200g", first.RawIngredients)
}

func TestFetchRecipes_FilterSegment(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/test-key/COOKRCP01/json/1/24/RCP_NM=김치&RCP_PAT2=국&찌개", r.URL.Path)
		fmt.Fprint(w, `{"COOKRCP01": {"total_count": "0", "row": []}}`)
	}))

	_, err := client.FetchRecipes(context.Background(), 1, 24, domain.RecipeFilter{
		Query:    "김치",
		Category: "국&찌개",
	})
	require.NoError(t, err)
}

// Some error responses wrap COOKRCP01 in an array; the element carrying
// rows must still be found.
func TestFetchRecipes_ArrayEnvelope(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"COOKRCP01": [
				{"RESULT": {"CODE": "INFO-000", "MSG": "ok"}},
				{"total_count": "1", "row": [{"RCP_SEQ": "7", "RCP_NM": "비빔밥"}]}
			]
		}`)
	}))

	chunk, err := client.FetchRecipes(context.Background(), 1, 1, domain.RecipeFilter{})
	require.NoError(t, err)

	assert.Equal(t, 1, chunk.TotalCount)
	require.Len(t, chunk.Recipes, 1)
	assert.Equal(t, "비빔밥", chunk.Recipes[0].Name)
}

func TestFetchRecipes_RetriesTransientFailure(t *testing.T) {
	calls := 0
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, listPayload)
	}))

	chunk, err := client.FetchRecipes(context.Background(), 1, 2, domain.RecipeFilter{})
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
	assert.Len(t, chunk.Recipes, 2)
}

func TestFetchRecipes_ClientErrorDoesNotRetry(t *testing.T) {
	calls := 0
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusForbidden)
	}))

	_, err := client.FetchRecipes(context.Background(), 1, 2, domain.RecipeFilter{})
	require.ErrorIs(t, err, domain.ErrUpstreamFailure)
	assert.Equal(t, 1, calls)
}

func TestFetchRecipes_ResultCodeError(t *testing.T) {
	calls := 0
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprint(w, `{"COOKRCP01": {"RESULT": {"CODE": "ERROR-300", "MSG": "필수 값 누락"}}}`)
	}))

	_, err := client.FetchRecipes(context.Background(), 1, 2, domain.RecipeFilter{})
	require.ErrorIs(t, err, domain.ErrUpstreamFailure)
	assert.Equal(t, 1, calls)
}

func TestFetchRecipes_NoDataCode(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"COOKRCP01": {"RESULT": {"CODE": "INFO-200", "MSG": "해당하는 데이터가 없습니다."}}}`)
	}))

	chunk, err := client.FetchRecipes(context.Background(), 1, 2, domain.RecipeFilter{})
	require.NoError(t, err)

	assert.Empty(t, chunk.Recipes)
	assert.Equal(t, 0, chunk.TotalCount)
	assert.Equal(t, "INFO-200", chunk.Code)
	assert.Equal(t, "해당하는 데이터가 없습니다.", chunk.Message)
}

func TestFetchRecipes_MissingAPIKey(t *testing.T) {
	calls := 0
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	client.apiKey = ""

	_, err := client.FetchRecipes(context.Background(), 1, 2, domain.RecipeFilter{})
	require.ErrorIs(t, err, domain.ErrMissingAPIKey)
	assert.Equal(t, 0, calls)
}

func TestFetchRecipeBySeq_Success(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/test-key/COOKRCP01/json/1/5/RCP_SEQ=29", r.URL.Path)
		fmt.Fprint(w, `{
			"COOKRCP01": {
				"total_count": "2",
				"row": [
					{"RCP_SEQ": "290", "RCP_NM": "다른 레시피"},
					{
						"RCP_SEQ": "29",
						"RCP_NM": "된장찌개",
						"RCP_PARTS_DTLS": "된장 2큰술, 두부 1모",
						"MANUAL01": "냄비에 물을 붓고 된장을 풉니다.",
						"MANUAL_IMG01": "http://www.foodsafetykorea.go.kr/step1.jpg",
						"MANUAL02": "두부를 넣고 끓입니다.",
						"HASH_TAG": "된장 찌개"
					}
				]
			}
		}`)
	}))

	detail, err := client.FetchRecipeBySeq(context.Background(), "29")
	require.NoError(t, err)

	assert.Equal(t, "29", detail.ID)
	assert.Equal(t, "된장찌개", detail.Name)
	assert.Equal(t, []string{"된장 2큰술", "두부 1모"}, detail.IngredientList)
	require.Len(t, detail.Steps, 2)
	assert.Equal(t, 1, detail.Steps[0].Index)
	assert.Equal(t, "https://www.foodsafetykorea.go.kr/step1.jpg", detail.Steps[0].ImageURL)
	assert.Equal(t, []string{"#된장", "#찌개"}, detail.HashTags)
}

func TestFetchRecipeBySeq_NotFound(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"COOKRCP01": {"RESULT": {"CODE": "INFO-200", "MSG": "해당하는 데이터가 없습니다."}}}`)
	}))

	_, err := client.FetchRecipeBySeq(context.Background(), "99999")
	require.ErrorIs(t, err, domain.ErrRecipeNotFound)
}
