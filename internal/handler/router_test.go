package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lotuslab/internal/repository/memory"
	"lotuslab/internal/service/library"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	services := library.New(memory.NewStore(memory.New()), logger)
	srv := httptest.NewServer(NewRouter(NewDispatcher(logger, Commands(services)...), logger))
	t.Cleanup(srv.Close)
	return srv
}

func call(t *testing.T, srv *httptest.Server, command, body string) (int, map[string]any) {
	t.Helper()
	resp, err := http.Post(srv.URL+"/rpc/"+command, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out map[string]any
	if len(data) > 0 && string(data) != "null" {
		require.NoError(t, json.Unmarshal(data, &out), string(data))
	}
	return resp.StatusCode, out
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRootFolderAfterBootstrap(t *testing.T) {
	srv := newTestServer(t)

	status, folder := call(t, srv, "get_folder_metadata", `{"id":"folder:root"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "folder:root", folder["id"])
	assert.Nil(t, folder["parent"])
}

func TestFolderLifecycle(t *testing.T) {
	srv := newTestServer(t)

	status, a := call(t, srv, "new_folder", `{"new_folder":{"name":"A"}}`)
	require.Equal(t, http.StatusOK, status)
	aID := a["id"].(string)
	assert.Equal(t, "folder:root", a["parent"])

	status, b := call(t, srv, "new_folder", `{"new_folder":{"name":"B","parent":"`+aID+`"}}`)
	require.Equal(t, http.StatusOK, status)
	bID := b["id"].(string)

	status, renamed := call(t, srv, "rename_folder", `{"id":"`+bID+`","name":"Cubes"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Cubes", renamed["name"])

	status, problem := call(t, srv, "move_folder", `{"id":"`+aID+`","target_id":"`+bID+`"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, CodeCycleDetected, problem["code"])

	status, children := call(t, srv, "get_folder_children", `{"id":"`+aID+`"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, children["folders"], 1)
	assert.Len(t, children["projects"], 0)

	status, _ = call(t, srv, "delete_folder", `{"id":"`+aID+`"}`)
	require.Equal(t, http.StatusOK, status)

	status, problem = call(t, srv, "get_folder_metadata", `{"id":"`+bID+`"}`)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, CodeNotFound, problem["code"])
}

func TestGetFolderProjects(t *testing.T) {
	srv := newTestServer(t)

	_, folder := call(t, srv, "new_folder", `{"new_folder":{"name":"Constructed"}}`)
	folderID := folder["id"].(string)
	for _, name := range []string{"Modern", "Legacy"} {
		status, _ := call(t, srv, "new_project", `{"new_project":{"name":"`+name+`","folder":"`+folderID+`"}}`)
		require.Equal(t, http.StatusOK, status)
	}

	resp, err := http.Post(srv.URL+"/rpc/get_folder_projects", "application/json", strings.NewReader(`{"id":"`+folderID+`"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var projects []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&projects))
	require.Len(t, projects, 2)
	assert.Equal(t, "Legacy", projects[0]["name"])
	assert.Equal(t, folderID, projects[1]["folder"])

	status, problem := call(t, srv, "get_folder_projects", `{"id":"folder:nope"}`)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, CodeNotFound, problem["code"])
}

func TestErrorCodes(t *testing.T) {
	srv := newTestServer(t)
	_, existing := call(t, srv, "new_folder", `{"new_folder":{"name":"Decks"}}`)

	tests := []struct {
		name       string
		command    string
		body       string
		wantStatus int
		wantCode   string
	}{
		{"unknown command", "drop_everything", `{}`, http.StatusNotFound, CodeUnknownCommand},
		{"wrong id kind", "get_folder_metadata", `{"id":"project:root"}`, http.StatusBadRequest, CodeInvalidInput},
		{"missing id", "get_folder_metadata", `{}`, http.StatusBadRequest, CodeInvalidInput},
		{"malformed body", "get_folder_metadata", `{"id":`, http.StatusBadRequest, CodeInvalidInput},
		{"unknown argument", "get_tags", `{"all":true}`, http.StatusBadRequest, CodeInvalidInput},
		{"not found", "get_folder_metadata", `{"id":"folder:nope"}`, http.StatusNotFound, CodeNotFound},
		{"duplicate", "new_folder", `{"new_folder":{"name":"Decks"}}`, http.StatusConflict, CodeDuplicateName},
		{"root rename", "rename_folder", `{"id":"folder:root","name":"All"}`, http.StatusUnprocessableEntity, CodeRootFolder},
		{"root delete", "delete_folder", `{"id":"folder:root"}`, http.StatusUnprocessableEntity, CodeRootFolder},
		{"missing target", "move_folder", `{"id":"folder:root","target_id":"folder:nope"}`, http.StatusUnprocessableEntity, CodeTargetNotFound},
		{"empty patch", "update_tag", `{"id":"tag:x","patch":{}}`, http.StatusUnprocessableEntity, CodeNoOp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, problem := call(t, srv, tt.command, tt.body)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, problem["code"])
			assert.NotEmpty(t, problem["detail"])
		})
	}

	t.Run("conflict names the existing folder", func(t *testing.T) {
		_, problem := call(t, srv, "new_folder", `{"new_folder":{"name":"Decks"}}`)
		assert.Equal(t, existing["id"], problem["resource_id"])
	})
}

func TestPatchTriState(t *testing.T) {
	srv := newTestServer(t)

	_, tag := call(t, srv, "new_tag", `{"new_tag":{"name":"burn","color":"#ff0000"}}`)
	id := tag["id"].(string)

	status, renamed := call(t, srv, "update_tag", `{"id":"`+id+`","patch":{"name":"fire"}}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "fire", renamed["name"])
	assert.Equal(t, "#ff0000", renamed["color"])

	status, cleared := call(t, srv, "update_tag", `{"id":"`+id+`","patch":{"color":null}}`)
	require.Equal(t, http.StatusOK, status)
	assert.Nil(t, cleared["color"])
	assert.Equal(t, "fire", cleared["name"])

	status, problem := call(t, srv, "update_tag", `{"id":"`+id+`","patch":{"name":null}}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, CodeInvalidInput, problem["code"])
}

func TestDispatcherRejectsDuplicateNames(t *testing.T) {
	cmd := Command{Name: "ping", Handle: Exec(func(_ context.Context, _ noArgs) error { return nil })}
	assert.Panics(t, func() {
		NewDispatcher(slog.New(slog.NewJSONHandler(io.Discard, nil)), cmd, cmd)
	})
}
