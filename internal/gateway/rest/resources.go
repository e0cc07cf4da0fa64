package rest

import (
	"context"
	"net/http"
	"net/url"

	"marketplace-admin-backend/internal/domain"
)

type userGateway struct {
	c *Client
}

func (g *userGateway) ListAll(ctx context.Context) ([]domain.User, error) {
	return listUsers(ctx, g.c, "users.listAll", "/users")
}

func (g *userGateway) ListPending(ctx context.Context) ([]domain.User, error) {
	return listUsers(ctx, g.c, "users.listPending", "/users/pending")
}

func listUsers(ctx context.Context, c *Client, op, path string) ([]domain.User, error) {
	dtos, err := listOf[userDTO](ctx, c, op, path, "users")
	if err != nil {
		return nil, err
	}
	users := make([]domain.User, 0, len(dtos))
	for _, d := range dtos {
		users = append(users, d.toDomain())
	}
	return users, nil
}

func (g *userGateway) Approve(ctx context.Context, id string) error {
	return g.c.do(ctx, "users.approve", http.MethodPut, "/users/"+url.PathEscape(id)+"/approve", nil, nil, nil)
}

func (g *userGateway) Suspend(ctx context.Context, id string) error {
	return g.c.do(ctx, "users.suspend", http.MethodPut, "/users/"+url.PathEscape(id)+"/suspend", nil, nil, nil)
}

func (g *userGateway) Activate(ctx context.Context, id string) error {
	return g.c.do(ctx, "users.activate", http.MethodPut, "/users/"+url.PathEscape(id)+"/activate", nil, nil, nil)
}

func (g *userGateway) Delete(ctx context.Context, id string) error {
	return g.c.do(ctx, "users.delete", http.MethodDelete, "/users/"+url.PathEscape(id), nil, nil, nil)
}

type jobGateway struct {
	c *Client
}

func (g *jobGateway) ListApproved(ctx context.Context) ([]domain.Job, error) {
	return listJobs(ctx, g.c, "jobs.listApproved", "/jobs", true)
}

func (g *jobGateway) ListPending(ctx context.Context) ([]domain.Job, error) {
	return listJobs(ctx, g.c, "jobs.listPending", "/jobs/pending", false)
}

func listJobs(ctx context.Context, c *Client, op, path string, approved bool) ([]domain.Job, error) {
	dtos, err := listOf[jobDTO](ctx, c, op, path, "jobs")
	if err != nil {
		return nil, err
	}
	jobs := make([]domain.Job, 0, len(dtos))
	for _, d := range dtos {
		jobs = append(jobs, d.toDomain(approved))
	}
	return jobs, nil
}

func (g *jobGateway) Approve(ctx context.Context, id, collection string) error {
	body := map[string]string{"collection": collection}
	return g.c.do(ctx, "jobs.approve", http.MethodPut, "/jobs/"+url.PathEscape(id)+"/approve", nil, body, nil)
}

func (g *jobGateway) SetStatus(ctx context.Context, id string, status domain.JobStatus) error {
	body := map[string]string{"status": string(status)}
	return g.c.do(ctx, "jobs.setStatus", http.MethodPut, "/jobs/"+url.PathEscape(id)+"/status", nil, body, nil)
}

func (g *jobGateway) Delete(ctx context.Context, id, collection string) error {
	q := url.Values{}
	q.Set("collection", collection)
	return g.c.do(ctx, "jobs.delete", http.MethodDelete, "/jobs/"+url.PathEscape(id), q, nil, nil)
}

type bookingGateway struct {
	c *Client
}

func (g *bookingGateway) ListAll(ctx context.Context) ([]domain.Booking, error) {
	dtos, err := listOf[bookingDTO](ctx, g.c, "bookings.listAll", "/bookings", "bookings")
	if err != nil {
		return nil, err
	}
	bookings := make([]domain.Booking, 0, len(dtos))
	for _, d := range dtos {
		bookings = append(bookings, d.toDomain())
	}
	return bookings, nil
}

func (g *bookingGateway) Approve(ctx context.Context, id, notes string) error {
	body := map[string]string{"adminNotes": notes}
	return g.c.do(ctx, "bookings.approve", http.MethodPut, "/bookings/"+url.PathEscape(id)+"/approve", nil, body, nil)
}

func (g *bookingGateway) Reject(ctx context.Context, id, reason string) error {
	body := map[string]string{"rejectionReason": reason}
	return g.c.do(ctx, "bookings.reject", http.MethodPut, "/bookings/"+url.PathEscape(id)+"/reject", nil, body, nil)
}

func (g *bookingGateway) SetPaymentStatus(ctx context.Context, id string, status domain.PaymentStatus) error {
	body := map[string]string{"paymentStatus": string(status)}
	return g.c.do(ctx, "bookings.setPaymentStatus", http.MethodPut, "/bookings/"+url.PathEscape(id)+"/payment", nil, body, nil)
}

func (g *bookingGateway) Delete(ctx context.Context, id string) error {
	return g.c.do(ctx, "bookings.delete", http.MethodDelete, "/bookings/"+url.PathEscape(id), nil, nil, nil)
}
