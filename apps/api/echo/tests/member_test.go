package tests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	"image/png"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardiann-eng/CryptgenFix122/core/member"
	photosvc "github.com/ardiann-eng/CryptgenFix122/services/photo"
)

func (app *testApp) createMember(t *testing.T, name, studentID string, role member.Role) member.Member {
	t.Helper()
	mem, err := app.MemberSvc.Create(member.NewMember{Name: name, StudentID: studentID, Role: role})
	require.NoError(t, err)
	return mem
}

func TestMembersCRUD(t *testing.T) {
	app := setup(t)
	pres := app.createMember(t, "Ardian Pratama", "2201001", member.RolePresident)
	mem := app.createMember(t, "Budi Santoso", "2201002", member.RoleMember)

	newMem := []byte(`{"name":"  Citra Dewi ","studentId":"2201003","email":"CITRA@example.com"}`)
	created := member.Member{
		ID:        mem.ID + 1,
		Name:      "Citra Dewi",
		StudentID: "2201003",
		Email:     "citra@example.com",
		Role:      member.RoleMember,
	}
	renamed := mem
	renamed.Name = "Budi S."
	renamed.Role = member.RoleTreasurer

	tests := []httpTest{
		{
			name:     "list",
			method:   http.MethodGet,
			path:     "/api/members",
			wantCode: http.StatusOK,
			wantData: marchallList(t, pres, mem),
		},
		{
			name:     "filter by role",
			method:   http.MethodGet,
			path:     "/api/members?role=President",
			wantCode: http.StatusOK,
			wantData: marchallList(t, pres),
		},
		{
			name:     "search",
			method:   http.MethodGet,
			path:     "/api/members?search=santoso",
			wantCode: http.StatusOK,
			wantData: marchallList(t, mem),
		},
		{
			name:     "create without session",
			method:   http.MethodPost,
			path:     "/api/members",
			body:     newMem,
			wantCode: http.StatusUnauthorized,
			wantData: marchallObj(t, errNoAuth),
		},
		{
			name:     "create as regular user",
			method:   http.MethodPost,
			path:     "/api/members",
			body:     newMem,
			token:    app.userToken,
			wantCode: http.StatusForbidden,
			wantData: marchallObj(t, errNoPerm),
		},
		{
			name:     "create invalid",
			method:   http.MethodPost,
			path:     "/api/members",
			body:     []byte(`{"name":"X","studentId":"","email":"nope","role":"king"}`),
			token:    app.adminToken,
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"studentId": "this field is required",
				"email":     "email must be a valid email address",
				"role":      "role must be one of: president, vice_president, secretary, treasurer, member",
			}),
		},
		{
			name:     "create duplicate student id",
			method:   http.MethodPost,
			path:     "/api/members",
			body:     []byte(`{"name":"Someone","studentId":"2201001"}`),
			token:    app.adminToken,
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"studentId": member.ErrStudentIDExists.Error()}),
		},
		{
			name:     "create",
			method:   http.MethodPost,
			path:     "/api/members",
			body:     newMem,
			token:    app.adminToken,
			wantCode: http.StatusCreated,
			wantData: marchallObj(t, created),
		},
		{
			name:     "retrieve",
			method:   http.MethodGet,
			path:     fmt.Sprintf("/api/members/%d", created.ID),
			wantCode: http.StatusOK,
			wantData: marchallObj(t, created),
		},
		{
			name:     "update unknown without session",
			method:   http.MethodPut,
			path:     "/api/members/999",
			body:     []byte(`{"name":"Ghost"}`),
			wantCode: http.StatusUnauthorized,
			wantData: marchallObj(t, errNoAuth),
		},
		{
			name:     "update unknown",
			method:   http.MethodPut,
			path:     "/api/members/999",
			body:     []byte(`{"name":"Ghost"}`),
			token:    app.adminToken,
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, errNotFnd),
		},
		{
			name:     "update taking another student id",
			method:   http.MethodPut,
			path:     fmt.Sprintf("/api/members/%d", mem.ID),
			body:     []byte(`{"studentId":"2201001"}`),
			token:    app.adminToken,
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"studentId": member.ErrStudentIDExists.Error()}),
		},
		{
			name:     "update",
			method:   http.MethodPut,
			path:     fmt.Sprintf("/api/members/%d", mem.ID),
			body:     []byte(`{"name":"Budi S.","studentId":"2201002","role":"treasurer"}`),
			token:    app.adminToken,
			wantCode: http.StatusOK,
			wantData: marchallObj(t, renamed),
		},
		{
			name:     "delete as regular user",
			method:   http.MethodDelete,
			path:     fmt.Sprintf("/api/members/%d", mem.ID),
			token:    app.userToken,
			wantCode: http.StatusForbidden,
			wantData: marchallObj(t, errNoPerm),
		},
		{
			name:     "delete",
			method:   http.MethodDelete,
			path:     fmt.Sprintf("/api/members/%d", mem.ID),
			token:    app.adminToken,
			wantCode: http.StatusNoContent,
		},
		{
			name:     "list after delete",
			method:   http.MethodGet,
			path:     "/api/members",
			wantCode: http.StatusOK,
			wantData: marchallList(t, pres, created),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app.run(t, tt)
		})
	}
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestUploadMemberPhoto(t *testing.T) {
	app := setup(t)
	mem := app.createMember(t, "Ardian Pratama", "2201001", member.RolePresident)
	path := fmt.Sprintf("/api/members/%d/photo", mem.ID)
	photo := pngBytes(t, 200, 100)

	upload := func(t *testing.T, path, token, field, filename string, content []byte) *member.Member {
		t.Helper()
		req, rec := newUploadRequest(t, path, token, field, filename, content)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Logf("upload failed: %d %s", rec.Code, rec.Body.String())
			return nil
		}
		var got member.Member
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		return &got
	}

	errTests := []struct {
		name     string
		path     string
		token    string
		field    string
		filename string
		content  []byte
		wantCode int
		wantData []byte
	}{
		{"no session", path, "", "photo", "me.png", photo, http.StatusUnauthorized, marchallObj(t, errNoAuth)},
		{"regular user", path, app.userToken, "photo", "me.png", photo, http.StatusForbidden, marchallObj(t, errNoPerm)},
		{"unknown member", "/api/members/999/photo", app.adminToken, "photo", "me.png", photo, http.StatusNotFound, marchallObj(t, errNotFnd)},
		{
			"missing file", path, app.adminToken, "avatar", "me.png", photo, http.StatusBadRequest,
			marchallObj(t, map[string]string{"photo": "this field is required"}),
		},
		{
			"not an image extension", path, app.adminToken, "photo", "me.txt", []byte("hello"), http.StatusBadRequest,
			marchallObj(t, map[string]string{"photo": photosvc.ErrUnsupportedFile.Error()}),
		},
		{
			"corrupt image", path, app.adminToken, "photo", "me.png", []byte("not really a png"), http.StatusBadRequest,
			marchallObj(t, map[string]string{"photo": photosvc.ErrInvalidImage.Error()}),
		},
		{
			"too large", path, app.adminToken, "photo", "me.png", make([]byte, app.conf.Uploads.MaxSize+1), http.StatusBadRequest,
			marchallObj(t, map[string]string{"photo": fmt.Sprintf("the file must not be larger than %d bytes", app.conf.Uploads.MaxSize)}),
		},
	}
	for _, tt := range errTests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newUploadRequest(t, tt.path, tt.token, tt.field, tt.filename, tt.content)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, httpTest{wantCode: tt.wantCode, wantData: tt.wantData}, rec)
		})
	}

	first := upload(t, path, app.adminToken, "photo", "me.png", photo)
	require.NotNil(t, first)
	assert.True(t, strings.HasPrefix(first.PhotoURL, "/uploads/"), first.PhotoURL)
	firstFile := filepath.Join(app.conf.Uploads.Dir, filepath.Base(first.PhotoURL))
	assert.FileExists(t, firstFile)

	t.Run("served", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, first.PhotoURL)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		cfg, _, err := image.DecodeConfig(rec.Body)
		require.NoError(t, err)
		assert.Equal(t, 64, cfg.Width)
		assert.Equal(t, 32, cfg.Height)
	})

	t.Run("replace", func(t *testing.T) {
		second := upload(t, path, app.adminToken, "photo", "me-again.png", photo)
		require.NotNil(t, second)
		assert.NotEqual(t, first.PhotoURL, second.PhotoURL)
		assert.NoFileExists(t, firstFile)

		stored, err := app.MemberSvc.GetByID(mem.ID)
		require.NoError(t, err)
		assert.Equal(t, second.PhotoURL, stored.PhotoURL)

		req, rec := newAuthRequest(http.MethodDelete, fmt.Sprintf("/api/members/%d", mem.ID), app.adminToken)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.NoFileExists(t, filepath.Join(app.conf.Uploads.Dir, filepath.Base(second.PhotoURL)))
	})

	entries, err := os.ReadDir(app.conf.Uploads.Dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestUploadMemberPhotoWithoutUploadsDir(t *testing.T) {
	app := setup(t)
	mem := app.createMember(t, "Ardian Pratama", "2201001", member.RolePresident)
	require.NoError(t, os.RemoveAll(app.conf.Uploads.Dir))

	req, rec := newUploadRequest(t, fmt.Sprintf("/api/members/%d/photo", mem.ID), app.adminToken, "photo", "me.png", pngBytes(t, 8, 8))
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{
		wantCode: http.StatusInternalServerError,
		wantData: marchallObj(t, httpErr{Error: http.StatusText(http.StatusInternalServerError)}),
	}, rec)

	select {
	case <-app.ShutdownSignal():
	default:
		t.Error("server was not asked to shut down")
	}
	assert.NotEmpty(t, app.logger.Messages)
}

func TestDeleteMemberWithSharedPhoto(t *testing.T) {
	app := setup(t)
	owner := app.createMember(t, "Ardian Pratama", "2201001", member.RolePresident)
	other := app.createMember(t, "Budi Santoso", "2201002", member.RoleMember)

	req, rec := newUploadRequest(t, fmt.Sprintf("/api/members/%d/photo", owner.ID), app.adminToken, "photo", "me.png", pngBytes(t, 16, 16))
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var withPhoto member.Member
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &withPhoto))
	file := filepath.Join(app.conf.Uploads.Dir, filepath.Base(withPhoto.PhotoURL))

	body := marchallObj(t, map[string]string{"photoUrl": withPhoto.PhotoURL})
	rec = app.serve(t, http.MethodPut, fmt.Sprintf("/api/members/%d", other.ID), app.adminToken, body, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = app.serve(t, http.MethodDelete, fmt.Sprintf("/api/members/%d", other.ID), app.adminToken, nil, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.FileExists(t, file, "still shown by the owner")

	rec = app.serve(t, http.MethodDelete, fmt.Sprintf("/api/members/%d", owner.ID), app.adminToken, nil, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.NoFileExists(t, file)
}
