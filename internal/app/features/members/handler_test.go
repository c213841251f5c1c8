package members_test

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	uierrors "github.com/quangoinc/qscore/internal/app/features/errors"
	"github.com/quangoinc/qscore/internal/app/features/members"
	userstore "github.com/quangoinc/qscore/internal/app/store/users"
	"github.com/quangoinc/qscore/internal/testutil"
	"go.uber.org/zap"
)

func newHandler(t *testing.T, users *userstore.Store) *members.Handler {
	t.Helper()
	log := zap.NewNop()
	return members.NewHandler(users, nil, uierrors.NewErrorLogger(log), log)
}

func TestServeList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateMember(ctx, "alex@quangoinc.com", "Alex Rivera", userstore.Palette[0], 0)
	fx.CreateMember(ctx, "blair@quangoinc.com", "Blair Chen", userstore.Palette[1], 1)

	h := newHandler(t, userstore.New(db))

	req := testutil.NewAuthenticatedRequest("GET", "/api/members", testutil.TeamUser())
	rec := testutil.NewRecorder()
	h.ServeList(rec, req)

	rec.AssertStatus(t, http.StatusOK)

	var resp struct {
		Members []struct {
			ID    string `json:"id"`
			Name  string `json:"name"`
			Color string `json:"color"`
			Face  int    `json:"face"`
		} `json:"members"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Members) != 2 {
		t.Fatalf("got %d members, want 2", len(resp.Members))
	}
	if resp.Members[0].ID != "alex@quangoinc.com" || resp.Members[1].ID != "blair@quangoinc.com" {
		t.Errorf("join order wrong: %+v", resp.Members)
	}
	if resp.Members[0].Color != userstore.Palette[0] {
		t.Errorf("color = %q, want %q", resp.Members[0].Color, userstore.Palette[0])
	}
}

func TestServeUpdateProfile(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateMember(ctx, "alex@quangoinc.com", "Alex Rivera", userstore.Palette[0], 0)

	h := newHandler(t, userstore.New(db))

	body := strings.NewReader(`{"color":"` + userstore.Palette[3] + `","face":7}`)
	req := testutil.NewJSONRequest("POST", "/api/profile", body, testutil.TeamUser())
	rec := testutil.NewRecorder()
	h.ServeUpdateProfile(rec, req)

	rec.AssertStatus(t, http.StatusOK)

	var m struct {
		ID    string `json:"id"`
		Color string `json:"color"`
		Face  int    `json:"face"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&m); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if m.Color != userstore.Palette[3] || m.Face != 7 {
		t.Errorf("updated member = %+v", m)
	}

	got, err := userstore.New(db).GetByID(ctx, "alex@quangoinc.com")
	if err != nil {
		t.Fatalf("reload member: %v", err)
	}
	if got.Color != userstore.Palette[3] || got.Face != 7 {
		t.Errorf("persisted member = color %q face %d", got.Color, got.Face)
	}
}

func TestServeUpdateProfileRejectsBadValues(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateMember(ctx, "alex@quangoinc.com", "Alex Rivera", userstore.Palette[0], 0)

	h := newHandler(t, userstore.New(db))

	tests := []struct {
		name string
		body string
	}{
		{"unknown color", `{"color":"#123456","face":0}`},
		{"face out of range", `{"color":"` + userstore.Palette[0] + `","face":99}`},
		{"negative face", `{"color":"` + userstore.Palette[0] + `","face":-1}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := testutil.NewJSONRequest("POST", "/api/profile", strings.NewReader(tc.body), testutil.TeamUser())
			rec := testutil.NewRecorder()
			h.ServeUpdateProfile(rec, req)
			rec.AssertStatus(t, http.StatusBadRequest)
		})
	}
}

func TestServeUpdateProfileUnknownMember(t *testing.T) {
	db := testutil.SetupTestDB(t)

	h := newHandler(t, userstore.New(db))

	body := strings.NewReader(`{"color":"` + userstore.Palette[0] + `","face":0}`)
	req := testutil.NewJSONRequest("POST", "/api/profile", body, testutil.TeamUser())
	rec := testutil.NewRecorder()
	h.ServeUpdateProfile(rec, req)

	rec.AssertStatus(t, http.StatusNotFound)
}

func TestServeUpdateProfileRequiresUser(t *testing.T) {
	h := newHandler(t, nil)

	req := testutil.NewRequest("POST", "/api/profile")
	rec := testutil.NewRecorder()
	h.ServeUpdateProfile(rec, req)

	rec.AssertStatus(t, http.StatusUnauthorized)
}
