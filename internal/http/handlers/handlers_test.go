package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/diagnosis/hotel-backoffice/internal/booking"
	"github.com/diagnosis/hotel-backoffice/internal/clock"
	"github.com/diagnosis/hotel-backoffice/internal/http/handlers"
	"github.com/diagnosis/hotel-backoffice/internal/http/middleware"
	"github.com/diagnosis/hotel-backoffice/internal/repository/memory"
	"github.com/diagnosis/hotel-backoffice/internal/service"
	"github.com/diagnosis/hotel-backoffice/pkg/auth"
	"github.com/diagnosis/hotel-backoffice/pkg/events"
)

// ---------- Mocks ----------

type memIdempotency struct {
	mu   sync.Mutex
	data map[string]string
}

func (m *memIdempotency) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key], nil
}

func (m *memIdempotency) Set(_ context.Context, key, value string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

// ---------- Test Setup ----------

var tokens = auth.TokenConfig{Secret: "test-secret", Issuer: "hotel-api", Audience: "hotel-backoffice", TTL: time.Hour}

type testServer struct {
	*httptest.Server
	token string
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	store := memory.NewStore()
	store.Seed()
	clk := clock.NewFixed(time.Date(2030, 1, 1, 9, 0, 0, 0, time.UTC))
	pub := events.NopPublisher{}

	authSvc, err := service.NewAuthService("admin@admin", "password", "", tokens)
	if err != nil {
		t.Fatalf("auth service: %v", err)
	}

	router := handlers.NewRouter(handlers.RouterDeps{
		Availability:   service.NewAvailabilityService(store.Rooms(), store.Reservations()),
		Reservations:   service.NewReservationService(store, store.Rooms(), store.Guests(), store.Reservations(), pub, clk, booking.DefaultSettings()),
		Rooms:          service.NewRoomService(store, store.Rooms(), pub, clk),
		Guests:         service.NewGuestService(store.Guests()),
		Auth:           authSvc,
		Tokens:         tokens,
		AllowedOrigins: []string{"http://localhost:5173"},
		Idempotency:    &memIdempotency{data: map[string]string{}},
		IdempotencyTTL: time.Hour,
		LoginLimiter: middleware.NewRateLimiter(middleware.NewMemoryCounter(), middleware.RateLimitConfig{
			Requests: 5, Window: time.Minute, Prefix: "login",
		}),
	})

	srv := &testServer{Server: httptest.NewServer(router)}
	t.Cleanup(srv.Close)

	token, _, err := auth.NewAccessToken("admin@admin", auth.RoleAdmin, tokens)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	srv.token = token
	return srv
}

func (s *testServer) do(t *testing.T, method, path string, body any, authed bool, headers ...string) *http.Response {
	t.Helper()
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, s.URL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func expectStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		b, _ := io.ReadAll(resp.Body)
		t.Fatalf("%s %s: expected status %d, got %d: %s", resp.Request.Method, resp.Request.URL.Path, want, resp.StatusCode, b)
	}
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return v
}

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// ---------- Tests ----------

func TestAvailability(t *testing.T) {
	srv := setupTestServer(t)

	resp := srv.do(t, http.MethodGet, "/api/availability?checkIn=2030-01-11&checkOut=2030-01-12&minCapacity=3", nil, false)
	expectStatus(t, resp, http.StatusOK)
	rooms := decode[[]map[string]any](t, resp)

	var numbers []string
	for _, r := range rooms {
		numbers = append(numbers, r["number"].(string))
	}
	if strings.Join(numbers, ",") != "102,202,301" {
		t.Fatalf("unexpected rooms: %v", numbers)
	}

	tests := []struct {
		name  string
		query string
	}{
		{"empty range", "checkIn=2030-01-11&checkOut=2030-01-11"},
		{"inverted range", "checkIn=2030-01-12&checkOut=2030-01-11"},
		{"missing checkOut", "checkIn=2030-01-12"},
		{"bad date", "checkIn=11/01/2030&checkOut=2030-01-12"},
		{"bad capacity", "checkIn=2030-01-11&checkOut=2030-01-12&minCapacity=two"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectStatus(t, srv.do(t, http.MethodGet, "/api/availability?"+tt.query, nil, false), http.StatusBadRequest)
		})
	}
}

func TestReservations_CreateGetCancel(t *testing.T) {
	srv := setupTestServer(t)

	body := map[string]any{"roomId": 2, "guestId": 1, "checkIn": "2030-03-01", "checkOut": "2030-03-03", "guestsCount": 2}
	resp := srv.do(t, http.MethodPost, "/api/reservations", body, true)
	expectStatus(t, resp, http.StatusCreated)
	if loc := resp.Header.Get("Location"); loc != "/api/reservations/2" {
		t.Fatalf("Location = %q", loc)
	}

	raw, _ := io.ReadAll(resp.Body)
	if !bytes.Contains(raw, []byte(`"totalPrice":704.00`)) {
		t.Fatalf("expected totalPrice 704.00 in %s", raw)
	}
	var created map[string]any
	if err := json.Unmarshal(raw, &created); err != nil {
		t.Fatal(err)
	}
	if created["status"] != "Active" || created["checkIn"] != "2030-03-01" || created["nights"] != float64(2) {
		t.Fatalf("unexpected reservation: %v", created)
	}

	resp = srv.do(t, http.MethodGet, "/api/reservations/2", nil, false)
	expectStatus(t, resp, http.StatusOK)

	expectStatus(t, srv.do(t, http.MethodDelete, "/api/reservations/2", nil, true), http.StatusNoContent)
	expectStatus(t, srv.do(t, http.MethodDelete, "/api/reservations/2", nil, true), http.StatusNoContent)

	resp = srv.do(t, http.MethodGet, "/api/reservations/2", nil, false)
	got := decode[map[string]any](t, resp)
	if got["status"] != "Canceled" {
		t.Fatalf("status = %v", got["status"])
	}

	resp = srv.do(t, http.MethodGet, "/api/reservations/404", nil, false)
	expectStatus(t, resp, http.StatusNotFound)
	if e := decode[errorBody](t, resp); e.Code != "RESERVATION_NOT_FOUND" {
		t.Fatalf("code = %q", e.Code)
	}
	expectStatus(t, srv.do(t, http.MethodDelete, "/api/reservations/404", nil, true), http.StatusNotFound)
}

func TestReservations_CreateFailures(t *testing.T) {
	srv := setupTestServer(t)

	tests := []struct {
		name   string
		body   any
		status int
		code   string
	}{
		{"overlap", map[string]any{"roomId": 1, "guestId": 2, "checkIn": "2030-01-11", "checkOut": "2030-01-13", "guestsCount": 1}, http.StatusConflict, "ROOM_ALREADY_BOOKED"},
		{"same day", map[string]any{"roomId": 2, "guestId": 1, "checkIn": "2030-02-01", "checkOut": "2030-02-01", "guestsCount": 1}, http.StatusBadRequest, "INVALID_DATE_RANGE"},
		{"over capacity", map[string]any{"roomId": 1, "guestId": 1, "checkIn": "2030-02-01", "checkOut": "2030-02-02", "guestsCount": 5}, http.StatusBadRequest, "CAPACITY_EXCEEDED"},
		{"room missing", map[string]any{"roomId": 50, "guestId": 1, "checkIn": "2030-02-01", "checkOut": "2030-02-02", "guestsCount": 1}, http.StatusNotFound, "ROOM_NOT_FOUND"},
		{"guest missing", map[string]any{"roomId": 1, "guestId": 50, "checkIn": "2030-02-01", "checkOut": "2030-02-02", "guestsCount": 1}, http.StatusNotFound, "GUEST_NOT_FOUND"},
		{"no room id", map[string]any{"guestId": 1, "checkIn": "2030-02-01", "checkOut": "2030-02-02", "guestsCount": 1}, http.StatusBadRequest, "INVALID_ROOM_ID"},
		{"too long", map[string]any{"roomId": 1, "guestId": 1, "checkIn": "2030-02-01", "checkOut": "2030-04-01", "guestsCount": 1}, http.StatusBadRequest, "STAY_TOO_LONG"},
		{"bad date", map[string]any{"roomId": 1, "guestId": 1, "checkIn": "tomorrow", "checkOut": "2030-02-02", "guestsCount": 1}, http.StatusBadRequest, "INVALID_INPUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := srv.do(t, http.MethodPost, "/api/reservations", tt.body, true)
			expectStatus(t, resp, tt.status)
			if e := decode[errorBody](t, resp); e.Code != tt.code {
				t.Fatalf("code = %q, want %q (%s)", e.Code, tt.code, e.Error)
			}
		})
	}
}

func TestReservations_CancelOnCheckInDayRejected(t *testing.T) {
	srv := setupTestServer(t)

	// the fixed clock sits on 2030-01-01
	body := map[string]any{"roomId": 3, "guestId": 1, "checkIn": "2030-01-01", "checkOut": "2030-01-03", "guestsCount": 1}
	expectStatus(t, srv.do(t, http.MethodPost, "/api/reservations", body, true), http.StatusCreated)

	resp := srv.do(t, http.MethodDelete, "/api/reservations/2", nil, true)
	expectStatus(t, resp, http.StatusBadRequest)
	e := decode[errorBody](t, resp)
	if e.Code != "CANCEL_NOT_ALLOWED" || e.Error != "Cancellation is allowed only before check-in" {
		t.Fatalf("unexpected error: %+v", e)
	}
}

func TestReservations_ConcurrentCreate(t *testing.T) {
	srv := setupTestServer(t)
	body := map[string]any{"roomId": 4, "guestId": 2, "checkIn": "2030-05-01", "checkOut": "2030-05-03", "guestsCount": 2}

	statuses := make(chan int, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b, _ := json.Marshal(body)
			req, _ := http.NewRequest(http.MethodPost, srv.URL+"/api/reservations", bytes.NewReader(b))
			req.Header.Set("Authorization", "Bearer "+srv.token)
			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				t.Error(err)
				return
			}
			resp.Body.Close()
			statuses <- resp.StatusCode
		}()
	}
	wg.Wait()
	close(statuses)

	counts := map[int]int{}
	for s := range statuses {
		counts[s]++
	}
	if counts[http.StatusCreated] != 1 || counts[http.StatusConflict] != 1 {
		t.Fatalf("expected one 201 and one 409, got %v", counts)
	}
}

func TestReservations_IdempotentCreate(t *testing.T) {
	srv := setupTestServer(t)
	body := map[string]any{"roomId": 5, "guestId": 3, "checkIn": "2030-06-02", "checkOut": "2030-06-04", "guestsCount": 2}

	first := decode[map[string]any](t, srv.do(t, http.MethodPost, "/api/reservations", body, true, "Idempotency-Key", "k-1"))
	resp := srv.do(t, http.MethodPost, "/api/reservations", body, true, "Idempotency-Key", "k-1")
	expectStatus(t, resp, http.StatusCreated)
	second := decode[map[string]any](t, resp)

	if first["id"] != second["id"] {
		t.Fatalf("replay returned a different reservation: %v vs %v", first["id"], second["id"])
	}
	expectStatus(t, srv.do(t, http.MethodPost, "/api/reservations", body, true, "Idempotency-Key", "k-2"), http.StatusConflict)
}

func TestReservations_List(t *testing.T) {
	srv := setupTestServer(t)

	expectStatus(t, srv.do(t, http.MethodGet, "/api/reservations", nil, false), http.StatusUnauthorized)

	resp := srv.do(t, http.MethodGet, "/api/reservations?roomId=1&status=Active", nil, true)
	expectStatus(t, resp, http.StatusOK)
	if resp.Header.Get("X-Total-Count") != "1" {
		t.Fatalf("X-Total-Count = %q", resp.Header.Get("X-Total-Count"))
	}
	expectStatus(t, srv.do(t, http.MethodGet, "/api/reservations?status=Pending", nil, true), http.StatusBadRequest)
}

func TestRooms(t *testing.T) {
	srv := setupTestServer(t)

	expectStatus(t, srv.do(t, http.MethodGet, "/api/rooms", nil, false), http.StatusUnauthorized)

	resp := srv.do(t, http.MethodGet, "/api/rooms?sortBy=pricePerNight&sortDir=desc&onlyActive=true&pageSize=2", nil, true)
	expectStatus(t, resp, http.StatusOK)
	if resp.Header.Get("X-Total-Count") != "5" {
		t.Fatalf("X-Total-Count = %q", resp.Header.Get("X-Total-Count"))
	}
	rooms := decode[[]map[string]any](t, resp)
	if len(rooms) != 2 || rooms[0]["number"] != "301" || rooms[1]["number"] != "202" {
		t.Fatalf("unexpected rooms: %v", rooms)
	}

	expectStatus(t, srv.do(t, http.MethodGet, "/api/rooms?sort=floor", nil, true), http.StatusBadRequest)
	expectStatus(t, srv.do(t, http.MethodGet, "/api/rooms?sortDir=sideways", nil, true), http.StatusBadRequest)

	resp = srv.do(t, http.MethodPost, "/api/rooms", map[string]any{"number": "401", "capacity": 2, "pricePerNight": 199.5}, true)
	expectStatus(t, resp, http.StatusCreated)
	created := decode[map[string]any](t, resp)
	if created["type"] != "Standard" || created["isActive"] != true || created["pricePerNight"] != 199.5 {
		t.Fatalf("unexpected room: %v", created)
	}

	resp = srv.do(t, http.MethodPost, "/api/rooms", map[string]any{"number": "101", "capacity": 2, "pricePerNight": 100}, true)
	expectStatus(t, resp, http.StatusConflict)
	if e := decode[errorBody](t, resp); e.Error != "Room number must be unique" {
		t.Fatalf("error = %q", e.Error)
	}

	resp = srv.do(t, http.MethodPost, "/api/rooms", map[string]any{"number": "402", "capacity": 0}, true)
	expectStatus(t, resp, http.StatusBadRequest)

	expectStatus(t, srv.do(t, http.MethodPut, "/api/rooms/99", map[string]any{"number": "9", "capacity": 1}, true), http.StatusNotFound)
	expectStatus(t, srv.do(t, http.MethodPut, "/api/rooms/7", map[string]any{"number": "401", "type": "Suite", "capacity": 3, "pricePerNight": "210.00"}, true), http.StatusOK)

	expectStatus(t, srv.do(t, http.MethodDelete, "/api/rooms/7", nil, true), http.StatusNoContent)
	resp = srv.do(t, http.MethodGet, "/api/rooms/7", nil, true)
	expectStatus(t, resp, http.StatusOK)
	if got := decode[map[string]any](t, resp); got["isActive"] != false {
		t.Fatalf("room still active: %v", got)
	}
}

func TestGuests(t *testing.T) {
	srv := setupTestServer(t)

	resp := srv.do(t, http.MethodGet, "/api/guests", nil, true)
	expectStatus(t, resp, http.StatusOK)
	guests := decode[[]map[string]any](t, resp)
	if len(guests) != 3 || guests[0]["lastName"] != "Kowalski" {
		t.Fatalf("unexpected guests: %v", guests)
	}

	resp = srv.do(t, http.MethodPost, "/api/guests", map[string]any{"firstName": "Ewa", "lastName": "Lis", "email": "ewa@example.com", "phone": "  "}, true)
	expectStatus(t, resp, http.StatusCreated)
	created := decode[map[string]any](t, resp)
	if created["phone"] != nil {
		t.Fatalf("blank phone should be null, got %v", created["phone"])
	}

	resp = srv.do(t, http.MethodPost, "/api/guests", map[string]any{"firstName": "Ewa", "lastName": "Lis", "email": "nope"}, true)
	expectStatus(t, resp, http.StatusBadRequest)
	if e := decode[errorBody](t, resp); e.Error != "Email is invalid" {
		t.Fatalf("error = %q", e.Error)
	}

	expectStatus(t, srv.do(t, http.MethodGet, "/api/guests/99", nil, true), http.StatusNotFound)
	expectStatus(t, srv.do(t, http.MethodPut, "/api/guests/4", map[string]any{"firstName": "Ewa", "lastName": "Lisowska", "email": "ewa@example.com"}, true), http.StatusOK)
}

func TestLogin(t *testing.T) {
	srv := setupTestServer(t)

	resp := srv.do(t, http.MethodPost, "/api/auth/login", map[string]string{"email": "admin@admin", "password": "password"}, false)
	expectStatus(t, resp, http.StatusOK)
	out := decode[map[string]any](t, resp)
	token, _ := out["token"].(string)
	if _, err := auth.Parse(token, tokens); err != nil {
		t.Fatalf("issued token does not parse: %v", err)
	}

	expectStatus(t, srv.do(t, http.MethodPost, "/api/auth/login", map[string]string{"email": "admin@admin", "password": "nope"}, false), http.StatusUnauthorized)
	expectStatus(t, srv.do(t, http.MethodPost, "/api/auth/login", map[string]string{"email": "admin@admin"}, false), http.StatusBadRequest)
}

func TestLogin_RateLimited(t *testing.T) {
	srv := setupTestServer(t)

	last := 0
	for i := 0; i < 6; i++ {
		resp := srv.do(t, http.MethodPost, "/api/auth/login", map[string]string{"email": "admin@admin", "password": "nope"}, false)
		last = resp.StatusCode
	}
	if last != http.StatusTooManyRequests {
		t.Fatalf("sixth attempt got %d", last)
	}
}

func TestHealthz(t *testing.T) {
	srv := setupTestServer(t)
	expectStatus(t, srv.do(t, http.MethodGet, "/healthz", nil, false), http.StatusOK)
	expectStatus(t, srv.do(t, http.MethodGet, "/readyz", nil, false), http.StatusOK)
}
