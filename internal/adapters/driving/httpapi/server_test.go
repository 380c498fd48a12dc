package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redlinehq/redline/internal/adapters/driven/storage/memory"
	"github.com/redlinehq/redline/internal/core/domain"
	"github.com/redlinehq/redline/internal/core/services"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()

	annotations := services.NewAnnotationService(memory.NewAnnotationStore())
	workspace := services.NewWorkspaceService(memory.NewWorkspaceStore())
	server := NewServer("", annotations, workspace)

	ts := httptest.NewServer(server.routes())
	t.Cleanup(ts.Close)
	return server, ts
}

func createAnnotation(t *testing.T, baseURL string, draft domain.Annotation) domain.Annotation {
	t.Helper()

	body, err := json.Marshal(draft)
	require.NoError(t, err)

	resp, err := http.Post(baseURL+"/api/annotations", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created domain.Annotation
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	return created
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestCreateAndGetAnnotation(t *testing.T) {
	_, ts := newTestServer(t)

	created := createAnnotation(t, ts.URL, domain.Annotation{
		DocumentID:   "doc-1",
		PageNumber:   2,
		Rects:        []domain.Rect{{Top: 0.2, Left: 0.1, Width: 0.5, Height: 0.02}},
		SelectedText: "Limitation of Liability",
		Creator:      domain.CreatorUser,
	})
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, domain.CategoryGeneral, created.Category)

	resp, err := http.Get(ts.URL + "/api/annotations/" + created.ID)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got domain.Annotation
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Limitation of Liability", got.SelectedText)
}

func TestCreateAnnotationValidation(t *testing.T) {
	_, ts := newTestServer(t)

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/annotations", domain.Annotation{
		PageNumber: 2,
		Creator:    domain.CreatorUser,
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp2 := doJSON(t, http.MethodPost, ts.URL+"/api/annotations", domain.Annotation{
		DocumentID: "doc-1",
		Creator:    domain.CreatorUser,
		Rects:      []domain.Rect{{Top: 2, Left: 0, Width: 0.5, Height: 0.5}},
	})
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp2.StatusCode)
}

func TestGetAnnotationNotFound(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/annotations/missing")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	var apiErr errorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&apiErr))
	assert.Equal(t, "Not found", apiErr.Error)
}

func TestUpdateAnnotation(t *testing.T) {
	_, ts := newTestServer(t)

	created := createAnnotation(t, ts.URL, domain.Annotation{
		DocumentID: "doc-1",
		Creator:    domain.CreatorUser,
	})

	note := "revised"
	category := domain.CategoryRisk
	resp := doJSON(t, http.MethodPut, ts.URL+"/api/annotations/"+created.ID, domain.AnnotationPatch{
		Note:     &note,
		Category: &category,
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated domain.Annotation
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&updated))
	assert.Equal(t, "revised", updated.Note)
	assert.Equal(t, domain.CategoryRisk, updated.Category)

	missing := doJSON(t, http.MethodPut, ts.URL+"/api/annotations/missing", domain.AnnotationPatch{Note: &note})
	defer missing.Body.Close()
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
}

func TestDeleteAnnotation(t *testing.T) {
	_, ts := newTestServer(t)

	created := createAnnotation(t, ts.URL, domain.Annotation{
		DocumentID: "doc-1",
		Creator:    domain.CreatorUser,
	})

	resp := doJSON(t, http.MethodDelete, ts.URL+"/api/annotations/"+created.ID, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	again := doJSON(t, http.MethodDelete, ts.URL+"/api/annotations/"+created.ID, nil)
	defer again.Body.Close()
	assert.Equal(t, http.StatusNotFound, again.StatusCode)
}

func TestListAnnotations(t *testing.T) {
	_, ts := newTestServer(t)

	createAnnotation(t, ts.URL, domain.Annotation{
		DocumentID: "doc-1", PageNumber: 0, Creator: domain.CreatorUser,
		Category: domain.CategoryRisk,
	})
	createAnnotation(t, ts.URL, domain.Annotation{
		DocumentID: "doc-1", PageNumber: 3, Creator: domain.CreatorAI,
	})
	createAnnotation(t, ts.URL, domain.Annotation{
		DocumentID: "doc-2", PageNumber: 0, Creator: domain.CreatorUser,
	})

	var list []domain.Annotation

	resp, err := http.Get(ts.URL + "/api/annotations?documentId=doc-1")
	require.NoError(t, err)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	resp.Body.Close()
	assert.Len(t, list, 2)

	resp, err = http.Get(ts.URL + "/api/annotations?documentId=doc-1&creator=AI")
	require.NoError(t, err)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	resp.Body.Close()
	require.Len(t, list, 1)
	assert.Equal(t, domain.CreatorAI, list[0].Creator)

	resp, err = http.Get(ts.URL + "/api/annotations?pageNumber=zero")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// An empty match still serializes as a JSON array.
	resp, err = http.Get(ts.URL + "/api/annotations?documentId=doc-9")
	require.NoError(t, err)
	raw := json.RawMessage{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))
	resp.Body.Close()
	assert.JSONEq(t, "[]", string(raw))
}

func TestListAnnotationsThreaded(t *testing.T) {
	_, ts := newTestServer(t)

	parent := createAnnotation(t, ts.URL, domain.Annotation{
		DocumentID: "doc-1", Creator: domain.CreatorUser,
	})
	createAnnotation(t, ts.URL, domain.Annotation{
		DocumentID: "doc-1", Creator: domain.CreatorAI, ParentID: &parent.ID,
	})

	resp, err := http.Get(ts.URL + "/api/annotations?documentId=doc-1&threaded=true")
	require.NoError(t, err)
	defer resp.Body.Close()

	var threads []domain.Annotation
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&threads))
	require.Len(t, threads, 1)
	assert.Len(t, threads[0].Replies, 1)
}

func TestWorkspaceEndpoints(t *testing.T) {
	_, ts := newTestServer(t)

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/workspace/recent", touchRecentRequest{
		Path: "/contracts/msa.pdf",
	})
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	var files []domain.RecentFile
	getResp, err := http.Get(ts.URL + "/api/workspace/recent")
	require.NoError(t, err)
	require.NoError(t, json.NewDecoder(getResp.Body).Decode(&files))
	getResp.Body.Close()
	require.Len(t, files, 1)
	assert.Equal(t, "msa.pdf", files[0].Name)

	treeResp, err := http.Get(ts.URL + "/api/workspace/tree")
	require.NoError(t, err)
	treeResp.Body.Close()
	assert.Equal(t, http.StatusNotFound, treeResp.StatusCode)

	putResp := doJSON(t, http.MethodPut, ts.URL+"/api/workspace/tree", json.RawMessage(`[{"name":"contracts"}]`))
	putResp.Body.Close()
	require.Equal(t, http.StatusNoContent, putResp.StatusCode)

	treeResp, err = http.Get(ts.URL + "/api/workspace/tree")
	require.NoError(t, err)
	defer treeResp.Body.Close()
	require.Equal(t, http.StatusOK, treeResp.StatusCode)

	var snapshot domain.FileTreeSnapshot
	require.NoError(t, json.NewDecoder(treeResp.Body).Decode(&snapshot))
	assert.JSONEq(t, `[{"name":"contracts"}]`, string(snapshot.Tree))
}

func TestServerStartStop(t *testing.T) {
	annotations := services.NewAnnotationService(memory.NewAnnotationStore())
	workspace := services.NewWorkspaceService(memory.NewWorkspaceStore())
	server := NewServer("127.0.0.1:0", annotations, workspace)

	require.NoError(t, server.Start())
	defer server.Stop()

	resp, err := http.Get("http://" + server.Addr() + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, server.Stop())
}
