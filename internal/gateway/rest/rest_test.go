package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace-admin-backend/internal/domain"
)

type staticToken string

func (s staticToken) Token(context.Context) (string, error) { return string(s), nil }

type recorded struct {
	method string
	path   string
	query  string
	auth   string
	body   map[string]any
}

func newServer(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) (*Client, *[]recorded) {
	t.Helper()
	var calls []recorded
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recorded{method: r.Method, path: r.URL.Path, query: r.URL.RawQuery, auth: r.Header.Get("Authorization")}
		if raw, _ := io.ReadAll(r.Body); len(raw) > 0 {
			_ = json.Unmarshal(raw, &rec.body)
		}
		calls = append(calls, rec)
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/api/", 5*time.Second, staticToken("tok-123")), &calls
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestUsers(t *testing.T) {
	c, calls := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/users/pending":
			writeJSON(w, 200, map[string]any{"data": []map[string]any{
				{"_id": "u2", "fullName": "Rahim", "type": "worker", "status": "pending", "createdAt": "2025-03-01T10:00:00.000Z", "city": "Dhaka", "district": "Mirpur"},
			}})
		case "/api/users":
			writeJSON(w, 200, []map[string]any{
				{"_id": "u1", "name": "Karim", "type": "employer", "status": "active", "rating": 4.2, "nidNumber": "123"},
				{"_id": "u9", "name": "Odd", "type": "worker", "status": "banned"},
			})
		default:
			writeJSON(w, 200, map[string]any{"success": true})
		}
	})
	gw := c.Gateway().Users
	ctx := context.Background()

	t.Run("list pending from envelope", func(t *testing.T) {
		users, err := gw.ListPending(ctx)
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, "Rahim", users[0].Name)
		assert.Equal(t, domain.UserStatusPending, users[0].Status)
		assert.Equal(t, "Dhaka, Mirpur", users[0].Location)
		assert.Equal(t, time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC), users[0].CreatedAt)
	})

	t.Run("list all tolerates unknown status", func(t *testing.T) {
		users, err := gw.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, domain.UserRoleEmployer, users[0].Role)
		assert.Equal(t, 4.2, users[0].Rating)
		assert.Equal(t, "123", users[0].Documents.NIDNumber)
		assert.Equal(t, domain.UserStatusUnknown, users[1].Status)
	})

	t.Run("mutations", func(t *testing.T) {
		*calls = nil
		require.NoError(t, gw.Approve(ctx, "u2"))
		require.NoError(t, gw.Suspend(ctx, "u1"))
		require.NoError(t, gw.Activate(ctx, "u1"))
		require.NoError(t, gw.Delete(ctx, "u2"))

		require.Len(t, *calls, 4)
		assert.Equal(t, recorded{method: "PUT", path: "/api/users/u2/approve", auth: "Bearer tok-123"}, (*calls)[0])
		assert.Equal(t, "/api/users/u1/suspend", (*calls)[1].path)
		assert.Equal(t, "/api/users/u1/activate", (*calls)[2].path)
		assert.Equal(t, "DELETE", (*calls)[3].method)
	})
}

func TestJobs(t *testing.T) {
	c, calls := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/jobs":
			writeJSON(w, 200, []map[string]any{
				{"_id": "j1", "title": "Electrician", "type": "employer", "status": "completed", "collection": "jobs",
					"budget": "2500.50", "skills": []string{"wiring"}, "applicants": []string{"a", "b"},
					"postedBy": map[string]any{"_id": "u1", "name": "Karim"}, "updatedAt": "2025-03-02T08:00:00Z"},
			})
		case r.Method == http.MethodGet && r.URL.Path == "/api/jobs/pending":
			writeJSON(w, 200, map[string]any{"jobs": []map[string]any{
				{"_id": "j2", "title": "Cook", "type": "worker", "budget": 800, "skills": []string{"bengali cuisine"}, "postedBy": "u7"},
			}})
		default:
			writeJSON(w, 200, nil)
		}
	})
	gw := c.Gateway().Jobs
	ctx := context.Background()

	approved, err := gw.ListApproved(ctx)
	require.NoError(t, err)
	require.Len(t, approved, 1)
	j := approved[0]
	assert.True(t, j.IsApproved)
	assert.Equal(t, "jobs", j.Collection)
	assert.Equal(t, domain.JobStatusCompleted, j.Status)
	require.NotNil(t, j.CompletedAt)
	offer, ok := j.Offer()
	require.True(t, ok)
	assert.True(t, offer.Budget.Equal(decimal.RequireFromString("2500.50")))
	assert.Equal(t, []string{"wiring"}, offer.RequiredSkills)
	assert.Equal(t, 2, offer.Applicants)
	assert.Equal(t, "Karim", j.PostedBy.Name)

	pending, err := gw.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	p := pending[0]
	assert.False(t, p.IsApproved)
	assert.Equal(t, domain.CollectionPending, p.Collection)
	assert.Equal(t, "u7", p.PostedBy.ID)
	seeker, ok := p.Seeker()
	require.True(t, ok)
	assert.True(t, seeker.ExpectedSalary.Equal(decimal.NewFromInt(800)))

	*calls = nil
	require.NoError(t, gw.Approve(ctx, "j2", "workerposts"))
	require.NoError(t, gw.SetStatus(ctx, "j1", domain.JobStatusClosed))
	require.NoError(t, gw.Delete(ctx, "j2", "workerposts"))

	require.Len(t, *calls, 3)
	assert.Equal(t, "/api/jobs/j2/approve", (*calls)[0].path)
	assert.Equal(t, map[string]any{"collection": "workerposts"}, (*calls)[0].body)
	assert.Equal(t, map[string]any{"status": "closed"}, (*calls)[1].body)
	assert.Equal(t, "DELETE", (*calls)[2].method)
	assert.Equal(t, "collection=workerposts", (*calls)[2].query)
}

func TestBookings(t *testing.T) {
	c, calls := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			writeJSON(w, 200, []map[string]any{
				{"_id": "b1", "status": "accepted", "workerName": "Rahim", "employerName": "Karim", "jobTitle": "Cook",
					"budget": 1200, "agreedRate": "300", "area": "Gulshan", "district": "Dhaka", "adminApproval": true},
				{"_id": "b2", "bookingStatus": "rejected", "status": "pending", "paymentStatus": "paid", "totalAmount": 50},
			})
			return
		}
		writeJSON(w, 200, map[string]any{"message": "ok"})
	})
	gw := c.Gateway().Bookings
	ctx := context.Background()

	bookings, err := gw.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, domain.BookingStatusAccepted, bookings[0].Status)
	assert.Equal(t, domain.PaymentStatusPending, bookings[0].PaymentStatus)
	assert.True(t, bookings[0].TotalAmount.Equal(decimal.NewFromInt(1200)))
	assert.Equal(t, "Gulshan, Dhaka", bookings[0].Location)
	assert.True(t, bookings[0].AwaitingWorker())
	assert.Equal(t, domain.BookingStatusRejected, bookings[1].Status)
	assert.Equal(t, domain.PaymentStatusPaid, bookings[1].PaymentStatus)

	*calls = nil
	require.NoError(t, gw.Approve(ctx, "b1", ""))
	require.NoError(t, gw.Reject(ctx, "b1", "duplicate"))
	require.NoError(t, gw.SetPaymentStatus(ctx, "b1", domain.PaymentStatusPaid))
	require.NoError(t, gw.Delete(ctx, "b1"))
	require.Len(t, *calls, 4)
	assert.Equal(t, map[string]any{"adminNotes": ""}, (*calls)[0].body)
	assert.Equal(t, map[string]any{"rejectionReason": "duplicate"}, (*calls)[1].body)
	assert.Equal(t, "/api/bookings/b1/payment", (*calls)[2].path)
	assert.Equal(t, map[string]any{"paymentStatus": "paid"}, (*calls)[2].body)
}

func TestErrors(t *testing.T) {
	c, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/users/u1/approve":
			writeJSON(w, 404, map[string]any{"message": "User not found"})
		case "/api/users/u2/approve":
			w.WriteHeader(500)
		case "/api/users":
			writeJSON(w, 401, map[string]any{"message": "Token expired"})
		case "/api/auth/login":
			writeJSON(w, 401, map[string]any{"message": "Invalid email or password"})
		}
	})
	gw := c.Gateway()
	ctx := context.Background()

	t.Run("backend message is kept verbatim", func(t *testing.T) {
		err := gw.Users.Approve(ctx, "u1")
		var gwErr *domain.GatewayError
		require.True(t, errors.As(err, &gwErr))
		assert.Equal(t, "User not found", gwErr.Message)
		assert.Equal(t, 404, gwErr.Status)
	})

	t.Run("no message leaves it empty", func(t *testing.T) {
		err := gw.Users.Approve(ctx, "u2")
		assert.Equal(t, "", domain.GatewayMessage(err))
		assert.Error(t, err)
	})

	t.Run("401 is unauthorized", func(t *testing.T) {
		_, err := gw.Users.ListAll(ctx)
		var unauth *domain.UnauthorizedError
		require.True(t, errors.As(err, &unauth))
		assert.Equal(t, domain.ReasonSessionExpired, unauth.Reason)
		assert.Equal(t, "Token expired", unauth.Error())
	})

	t.Run("login 401 is a credential failure", func(t *testing.T) {
		_, err := gw.Auth.Login(ctx, "a@b.c", "nope")
		var unauth *domain.UnauthorizedError
		require.True(t, errors.As(err, &unauth))
		assert.Equal(t, domain.ReasonInvalidCredentials, unauth.Reason)
		assert.Equal(t, "Invalid email or password", unauth.Message)
	})
}

func TestLogin(t *testing.T) {
	c, calls := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, map[string]any{"token": "jwt-abc", "_id": "a1", "name": "Admin", "email": "admin@x.io", "type": "admin", "status": "active"})
	})

	res, err := c.Gateway().Auth.Login(context.Background(), "admin@x.io", "pw")
	require.NoError(t, err)
	assert.Equal(t, "jwt-abc", res.Token)
	assert.Equal(t, domain.UserRoleAdmin, res.Role)
	assert.Equal(t, domain.UserStatusActive, res.Status)
	assert.Equal(t, "Admin", res.Profile.Name)
	assert.Equal(t, map[string]any{"email": "admin@x.io", "password": "pw"}, (*calls)[0].body)
}

func TestDecodeList(t *testing.T) {
	items, err := decodeList[userDTO](json.RawMessage(`null`), "users")
	assert.NoError(t, err)
	assert.Nil(t, items)

	_, err = decodeList[userDTO](json.RawMessage(`{"count": 3}`), "users")
	assert.Error(t, err)

	items, err = decodeList[userDTO](json.RawMessage(`{"data": {"users": [{"_id": "x"}]}}`), "users")
	require.NoError(t, err)
	assert.Equal(t, "x", items[0].ID)
}
