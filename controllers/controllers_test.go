package controllers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"bukarum/controllers"
	"bukarum/models"
	"bukarum/repositories"
	"bukarum/routes"
	"bukarum/services"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type fakeBookingStore struct {
	mu           sync.Mutex
	rooms        []models.Room
	cards        []models.CardProfile
	reservations []models.Reservation
}

func (f *fakeBookingStore) AvailableRooms(_ context.Context, typeID *uint, in, out time.Time) ([]models.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var free []models.Room
	for _, room := range f.rooms {
		if typeID != nil && room.RoomTypeID != *typeID {
			continue
		}
		busy := false
		for _, r := range f.reservations {
			if r.RoomID == room.ID && r.Overlaps(in, out) {
				busy = true
			}
		}
		if !busy {
			free = append(free, room)
		}
	}
	return free, nil
}

func (f *fakeBookingStore) LockRoomType(context.Context, uint) error { return nil }

func (f *fakeBookingStore) ListCardProfiles(context.Context) ([]models.CardProfile, error) {
	return f.cards, nil
}

func (f *fakeBookingStore) GetCardProfile(_ context.Context, id uint) (*models.CardProfile, error) {
	for _, c := range f.cards {
		if c.ID == id {
			card := c
			return &card, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeBookingStore) CreateReservation(_ context.Context, r *models.Reservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r.ID = uint(len(f.reservations) + 1)
	for _, room := range f.rooms {
		if room.ID == r.RoomID {
			r.Room = room
		}
	}
	f.reservations = append(f.reservations, *r)
	return nil
}

func (f *fakeBookingStore) GetReservation(_ context.Context, id, userID uint) (*models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.reservations {
		if r.ID == id && r.UserID == userID {
			res := r
			return &res, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeBookingStore) ListReservations(_ context.Context, userID uint) ([]models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Reservation
	for _, r := range f.reservations {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeBookingStore) Transaction(_ context.Context, fn func(tx repositories.BookingStore) error) error {
	return fn(f)
}

type fakeUsers struct{ users []*models.User }

func (f *fakeUsers) FindByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeUsers) GetByID(_ context.Context, id uint) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

type envelope struct {
	Success  bool            `json:"success"`
	Data     json.RawMessage `json:"data"`
	Redirect string          `json:"redirect"`
	Error    struct {
		Code     string `json:"code"`
		Redirect string `json:"redirect"`
	} `json:"error"`
}

type testApp struct {
	router *gin.Engine
	store  *fakeBookingStore
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt error: %v", err)
	}
	users := &fakeUsers{users: []*models.User{
		{ID: 1, Username: "ana", Password: string(hash), IsActive: true},
		{ID: 2, Username: "ben", Password: string(hash), IsActive: true},
	}}

	double := models.RoomType{ID: 1, Name: "Double", Capacity: 2, NightlyPrice: 90}
	store := &fakeBookingStore{
		rooms: []models.Room{{ID: 5, Number: 3, RoomTypeID: 1, RoomType: double}},
		cards: []models.CardProfile{{ID: 1, Name: "Visa"}},
	}

	auth := services.NewAuthService(users, "test-secret", time.Hour)
	searches := services.NewTokenSearchStore("test-secret", 30*time.Minute)
	availability := services.NewAvailabilityService(store)
	reservations := services.NewReservationService(store)
	catalog := services.NewCatalogService(nil, nil)

	router := routes.SetupRouter(
		auth,
		controllers.NewSearchController(availability, searches, 30*time.Minute, false),
		controllers.NewReservationController(reservations, searches, services.NewExportService()),
		controllers.NewAuthController(auth, searches, time.Hour, false),
		controllers.NewAdminController(catalog),
	)
	return &testApp{router: router, store: store}
}

func (a *testApp) do(t *testing.T, method, path, body string, cookies []*http.Cookie) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("%s %s: invalid json %q: %v", method, path, rec.Body.String(), err)
		}
	}
	return rec, env
}

func cookieNamed(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == name && ck.Value != "" {
			return ck
		}
	}
	return nil
}

func (a *testApp) login(t *testing.T, username string) *http.Cookie {
	t.Helper()
	rec, env := a.do(t, http.MethodPost, "/api/login", `{"username":"`+username+`","password":"secret123"}`, nil)
	if rec.Code != http.StatusOK || !env.Success {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	session := cookieNamed(rec, "bukarum_session")
	if session == nil {
		t.Fatalf("no session cookie set")
	}
	return session
}

func (a *testApp) search(t *testing.T, in, out string) *http.Cookie {
	t.Helper()
	rec, env := a.do(t, http.MethodPost, "/api/search", `{"checkIn":"`+in+`","checkOut":"`+out+`"}`, nil)
	if rec.Code != http.StatusOK || !env.Success {
		t.Fatalf("search failed: %d %s", rec.Code, rec.Body.String())
	}
	ck := cookieNamed(rec, controllers.SearchCookie)
	if ck == nil {
		t.Fatalf("no search cookie set")
	}
	return ck
}

func TestSearchRejectsBadDates(t *testing.T) {
	app := newTestApp(t)

	cases := map[string]string{
		`{"checkIn":"2024-06-01","checkOut":"04-06-2024"}`: "error.date_format",
		`{"checkIn":"31-04-2024","checkOut":"04-05-2024"}`: "error.date_format",
		`{"checkIn":"04-06-2024","checkOut":"01-06-2024"}`: "error.date_range",
		`{"checkIn":"01-06-2024"}`:                         "error.date_format",
	}
	for body, code := range cases {
		rec, env := app.do(t, http.MethodPost, "/api/search", body, nil)
		if rec.Code != http.StatusBadRequest || env.Error.Code != code {
			t.Fatalf("%s: expected 400 %s, got %d %s", body, code, rec.Code, rec.Body.String())
		}
	}
}

func TestSearchListsAvailableTypes(t *testing.T) {
	app := newTestApp(t)

	rec, env := app.do(t, http.MethodPost, "/api/search", `{"checkIn":"01x06x2024","checkOut":"03-06-2024"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d %s", rec.Code, rec.Body.String())
	}
	var data struct {
		Nights      int    `json:"nights"`
		NightsLabel string `json:"nightsLabel"`
		SearchToken string `json:"searchToken"`
		RoomTypes   []struct {
			ID         uint    `json:"id"`
			TotalPrice float64 `json:"totalPrice"`
		} `json:"roomTypes"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data.Nights != 2 || data.NightsLabel != "2 nights" {
		t.Fatalf("unexpected nights %d %q", data.Nights, data.NightsLabel)
	}
	if len(data.RoomTypes) != 1 || data.RoomTypes[0].TotalPrice != 180 {
		t.Fatalf("unexpected room types %+v", data.RoomTypes)
	}
	if data.SearchToken == "" {
		t.Fatalf("expected a search token")
	}
}

func TestBookingRequiresLogin(t *testing.T) {
	app := newTestApp(t)
	search := app.search(t, "01-06-2024", "03-06-2024")

	rec, env := app.do(t, http.MethodPost, "/api/book/1", `{}`, []*http.Cookie{search})
	if rec.Code != http.StatusUnauthorized || env.Error.Redirect != "/api/login" {
		t.Fatalf("expected 401 redirect /login, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestBookingWithoutSearchExpires(t *testing.T) {
	app := newTestApp(t)
	session := app.login(t, "ana")

	rec, env := app.do(t, http.MethodGet, "/api/book/1", "", []*http.Cookie{session})
	if rec.Code != http.StatusGone || env.Error.Redirect != "/api/" {
		t.Fatalf("expected 410 redirect /, got %d %s", rec.Code, rec.Body.String())
	}

	bogus := &http.Cookie{Name: controllers.SearchCookie, Value: "garbage"}
	rec, _ = app.do(t, http.MethodGet, "/api/book/1", "", []*http.Cookie{session, bogus})
	if rec.Code != http.StatusGone {
		t.Fatalf("expected 410 for corrupted search, got %d", rec.Code)
	}
}

func TestBookingFlow(t *testing.T) {
	app := newTestApp(t)
	session := app.login(t, "ana")
	search := app.search(t, "01-06-2024", "03-06-2024")
	cookies := []*http.Cookie{session, search}

	rec, env := app.do(t, http.MethodGet, "/api/book/1", "", cookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("quote failed: %d %s", rec.Code, rec.Body.String())
	}
	var quote services.BookingQuote
	if err := json.Unmarshal(env.Data, &quote); err != nil {
		t.Fatalf("decode quote: %v", err)
	}
	if quote.RoomLabel != "03 - D" || quote.TotalPrice != 180 {
		t.Fatalf("unexpected quote %+v", quote)
	}

	body := `{"cardProfileId":1,"cardNumber":4111111111111111,"expiryMonth":12,"expiryYear":2030,"notes":"quiet room"}`
	rec, env = app.do(t, http.MethodPost, "/api/book/1", body, cookies)
	if rec.Code != http.StatusCreated || env.Redirect != "/api/reservations" {
		t.Fatalf("booking failed: %d %s", rec.Code, rec.Body.String())
	}
	var created struct {
		ID         uint   `json:"id"`
		Locator    string `json:"locator"`
		TotalPrice string `json:"totalPrice"`
		CardNumber string `json:"cardNumber"`
	}
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("decode reservation: %v", err)
	}
	if created.TotalPrice != "180.00" || created.CardNumber != "**** 1111" || created.Locator == "" {
		t.Fatalf("unexpected reservation %+v", created)
	}

	rec, env = app.do(t, http.MethodPost, "/api/book/1", body, cookies)
	if rec.Code != http.StatusConflict || env.Error.Code != "error.no_availability" {
		t.Fatalf("expected 409 on second booking, got %d %s", rec.Code, rec.Body.String())
	}

	rec, env = app.do(t, http.MethodGet, "/api/reservations", "", []*http.Cookie{session})
	if rec.Code != http.StatusOK || !strings.Contains(string(env.Data), created.Locator) {
		t.Fatalf("list failed: %d %s", rec.Code, rec.Body.String())
	}

	path := "/api/reservations/" + jsonNumber(created.ID)
	rec, _ = app.do(t, http.MethodGet, path+"/pdf", "", []*http.Cookie{session})
	if rec.Code != http.StatusOK || rec.Header().Get("Content-Type") != "application/pdf" {
		t.Fatalf("pdf failed: %d %s", rec.Code, rec.Header().Get("Content-Type"))
	}
	if !strings.Contains(rec.Header().Get("Content-Disposition"), "reserva_bukarum.pdf") {
		t.Fatalf("unexpected disposition %q", rec.Header().Get("Content-Disposition"))
	}

	other := app.login(t, "ben")
	rec, env = app.do(t, http.MethodGet, path, "", []*http.Cookie{other})
	if rec.Code != http.StatusNotFound || env.Error.Redirect != "/api/" {
		t.Fatalf("expected 404 redirect / for other user, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestEmptyReservationListHasMessage(t *testing.T) {
	app := newTestApp(t)
	session := app.login(t, "ben")

	rec, env := app.do(t, http.MethodGet, "/api/reservations", "", []*http.Cookie{session})
	if rec.Code != http.StatusOK || !strings.Contains(string(env.Data), "no reservations") {
		t.Fatalf("expected empty-list message, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestLoginFailures(t *testing.T) {
	app := newTestApp(t)

	rec, env := app.do(t, http.MethodPost, "/api/login", `{"username":"ana","password":"nope"}`, nil)
	if rec.Code != http.StatusUnauthorized || env.Error.Code != "error.invalid_credentials" {
		t.Fatalf("expected 401 invalid credentials, got %d %s", rec.Code, rec.Body.String())
	}
	rec, _ = app.do(t, http.MethodPost, "/api/login", `{"username":"ana"}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing password, got %d", rec.Code)
	}
}

func TestAdminRequiresStaff(t *testing.T) {
	app := newTestApp(t)

	rec, _ := app.do(t, http.MethodGet, "/api/admin/room-types", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for anonymous admin access, got %d", rec.Code)
	}
	session := app.login(t, "ana")
	rec, _ = app.do(t, http.MethodGet, "/api/admin/room-types", "", []*http.Cookie{session})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-staff, got %d", rec.Code)
	}
}

func jsonNumber(id uint) string {
	b, _ := json.Marshal(id)
	return string(b)
}
